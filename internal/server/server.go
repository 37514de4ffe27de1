// ABOUTME: HTTP action API for the snippet library
// ABOUTME: Routes the five named actions through the store and the auth gate

package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/zenshell/zenshell/internal/auth"
	"github.com/zenshell/zenshell/internal/store"
)

// Options configures the action API.
type Options struct {
	// SessionTTL bounds the lifetime of tokens issued by verify and setup.
	SessionTTL time.Duration
	// MaxTags caps tags per snippet at write time; zero disables the cap.
	MaxTags int
}

// Server handles the stateless request/response actions. Each action is a
// complete round trip: load, act, respond. No protocol state is held across
// calls.
type Server struct {
	store      store.Store
	gate       *auth.Gate
	issuer     *auth.Issuer
	sessionTTL time.Duration
	maxTags    int
	logger     *slog.Logger
}

// New creates the action API server.
func New(st store.Store, gate *auth.Gate, issuer *auth.Issuer, opts Options) *Server {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Server{
		store:      st,
		gate:       gate,
		issuer:     issuer,
		sessionTTL: ttl,
		maxTags:    opts.MaxTags,
		logger:     slog.Default().With("component", "server"),
	}
}

// RegisterRoutes registers the action endpoint and health check on the mux.
// The actions ride on a single path with an ?action= query parameter,
// preserving the original wire contract.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", s.handleAction)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.logger.Info("action routes registered")
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAction dispatches on the action query parameter. Unknown actions and
// wrong methods produce an error envelope rather than silence.
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	action := r.URL.Query().Get("action")

	switch action {
	case "init_check":
		s.handleInitCheck(w, r)
	case "setup_password":
		if !requirePost(w, r) {
			return
		}
		s.handleSetupPassword(w, r)
	case "verify_password":
		if !requirePost(w, r) {
			return
		}
		s.handleVerifyPassword(w, r)
	case "get_data":
		s.handleGetData(w, r)
	case "save_data":
		if !requirePost(w, r) {
			return
		}
		s.handleSaveData(w, r)
	case "":
		writeError(w, http.StatusNotFound, "missing action")
	default:
		writeError(w, http.StatusNotFound, "unknown action: "+action)
	}
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the error envelope shared by all actions.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"status":  "error",
		"message": message,
	})
}
