package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"

	"github.com/funland/funland/internal/config"
	apierrors "github.com/funland/funland/internal/errors"
	"github.com/funland/funland/internal/models"
)

const (
	// HeaderRequestID carries the per-request ID in responses
	HeaderRequestID = "X-Request-ID"

	maxRequestBody  = 64 << 10
	shutdownTimeout = 10 * time.Second
)

type ctxKey struct{}

// RequestID returns the ID assigned to the request carried by ctx
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Server is the chat backend
type Server struct {
	cfg      config.ServerConfig
	provider Provider
	logger   *zap.Logger
	handler  http.Handler
}

// New creates a server. A nil provider answers every chat request with
// "API key not configured".
func New(cfg config.ServerConfig, provider Provider, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cfg:      cfg,
		provider: provider,
		logger:   logger,
	}

	router := mux.NewRouter()
	router.HandleFunc(models.PathChat, s.handleChat).Methods(http.MethodPost)
	router.HandleFunc(models.PathHealth, s.handleHealth).Methods(http.MethodGet)
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	// CORS wraps the router so preflight requests never reach route matching.
	s.handler = s.withRequestID(s.withLogging(s.withCORS(router)))
	return s
}

// Handler returns the HTTP handler with all middleware applied
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe listens on the configured address and serves until ctx is done
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.cfg.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, s.cfg.MaxConnections)
	}

	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	providerName := "none"
	if s.provider != nil {
		providerName = s.provider.Name()
	}
	s.logger.Info("server listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("provider", providerName),
		zap.Int("max_connections", s.cfg.MaxConnections))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("server shutting down")
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	logger := s.logger.With(zap.String("request_id", RequestID(r.Context())))

	var req struct {
		Message *string `json:"message"`
	}
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	if err := decoder.Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, apierrors.ErrInvalidRequest.Error())
		return
	}
	if req.Message == nil {
		writeDetail(w, http.StatusBadRequest, "field required: message")
		return
	}
	message := strings.TrimSpace(*req.Message)
	if message == "" {
		writeDetail(w, http.StatusBadRequest, apierrors.ErrEmptyMessage.Error())
		return
	}

	if s.provider == nil {
		logger.Error("chat request without provider", zap.Error(apierrors.ErrNotConfigured))
		writeDetail(w, http.StatusInternalServerError, apierrors.ErrNotConfigured.Error())
		return
	}

	ctx := r.Context()
	if timeout := s.cfg.UpstreamTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	reply, err := s.provider.Reply(ctx, message)
	if err != nil {
		logger.Error("upstream reply failed",
			zap.String("provider", s.provider.Name()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, apierrors.Describe(err))
		return
	}

	logger.Info("chat reply",
		zap.String("provider", s.provider.Name()),
		zap.Int("message_len", len(message)),
		zap.Int("reply_len", len(reply)),
		zap.Duration("elapsed", time.Since(start)))

	writeJSON(w, http.StatusOK, models.ChatResponse{Response: reply})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{Status: models.StatusOK})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	b, err := json.Marshal(v)
	if err != nil {
		_, _ = w.Write([]byte(`{"detail":"failed to marshal json"}`))
		return
	}
	_, _ = w.Write(b)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, models.ErrorResponse{Detail: detail})
}
