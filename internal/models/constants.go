// Package models contains data types and constants shared by the funland
// front-end and its companion backend.
package models

// Endpoint paths, relative to the configured base URL
const (
	PathChat   = "/api/chat"
	PathHealth = "/api/health"
)

// DefaultBaseURL is used when neither a flag, the environment nor the config
// file provides one.
const DefaultBaseURL = "http://localhost:8000"

// JSON field names of the chat endpoint contract
const (
	FieldMessage  = "message"
	FieldResponse = "response"
	FieldDetail   = "detail"
	FieldStatus   = "status"
)

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the body of a successful POST /api/chat.
type ChatResponse struct {
	Response string `json:"response"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status string `json:"status"`
}

// StatusOK is the health status reported by a running backend.
const StatusOK = "ok"

// Emojis is the fixed set of symbols the emoji button can insert.
var Emojis = []string{"😊", "🎈", "🎮", "🎨", "🎵", "🌟", "🌈", "🦄"}

// IsEmoji reports whether symbol belongs to Emojis.
func IsEmoji(symbol string) bool {
	for _, e := range Emojis {
		if e == symbol {
			return true
		}
	}
	return false
}

// DefaultHeaders returns the headers sent with every chat endpoint request.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type":    "application/json",
		"Accept":          "application/json",
		"Accept-Language": "en-US,en;q=0.9",
		"User-Agent":      "funland/" + Version,
	}
}

// Version is the release version, overridden at build time.
var Version = "0.1.0"

// SystemPrompt is sent upstream by the backend before every user message.
const SystemPrompt = `You are a friendly, enthusiastic AI friend for children.
Keep your responses short, positive, and engaging. Use simple language and
occasionally include emojis. Be encouraging and playful in your responses.`

// Generation parameters used by the backend
const (
	DefaultMaxTokens   = 100
	DefaultTemperature = 0.7
)
