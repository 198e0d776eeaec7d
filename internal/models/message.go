package models

// Message is one entry of the chat transcript.
// Messages are values; once appended to a transcript they are never changed.
type Message struct {
	Text   string
	IsUser bool
}

// UserMessage returns a message authored by the user.
func UserMessage(text string) Message {
	return Message{Text: text, IsUser: true}
}

// AssistantMessage returns a message authored by the assistant.
func AssistantMessage(text string) Message {
	return Message{Text: text}
}

// Author returns "user" or "assistant".
func (m Message) Author() string {
	if m.IsUser {
		return RoleUser
	}
	return RoleAssistant
}

// Roles used in logs and upstream provider requests
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Greetings are the assistant messages every new transcript starts with.
func Greetings() []Message {
	return []Message{
		AssistantMessage("Hi there! I'm your AI friend! 👋"),
		AssistantMessage("Let's chat and have fun! 🎈"),
	}
}
