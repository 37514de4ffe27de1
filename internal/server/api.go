// ABOUTME: Handlers for the five named actions of the snippet library API
// ABOUTME: JSON envelope responses with success/error status per the wire contract

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/zenshell/zenshell/internal/auth"
	"github.com/zenshell/zenshell/internal/document"
	"github.com/zenshell/zenshell/internal/store"
)

// PasswordRequest is the JSON request body for setup_password and
// verify_password.
type PasswordRequest struct {
	Password string `json:"password"`
}

// InitCheckResponse is the JSON response for init_check.
type InitCheckResponse struct {
	Status     string `json:"status"`
	NeedsSetup bool   `json:"needsSetup"`
}

// TokenResponse is the JSON response for successful setup_password and
// verify_password calls. The token authorizes subsequent save_data calls.
type TokenResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
}

// StatusResponse is the bare success envelope.
type StatusResponse struct {
	Status string `json:"status"`
}

// handleInitCheck reports whether the one-time bootstrap has run. This is
// the only place that discloses credential existence.
func (s *Server) handleInitCheck(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Load(r.Context())
	if err != nil {
		s.logger.Error("failed to load document", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, InitCheckResponse{
		Status:     "success",
		NeedsSetup: auth.NeedsSetup(doc),
	})
}

// handleSetupPassword runs the one-time credential bootstrap and hands the
// caller a session token.
func (s *Server) handleSetupPassword(w http.ResponseWriter, r *http.Request) {
	var req PasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := s.gate.Bootstrap(r.Context(), req.Password); err != nil {
		switch {
		case errors.Is(err, auth.ErrEmptyCredential):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, auth.ErrAlreadyBootstrapped):
			writeError(w, http.StatusConflict, err.Error())
		default:
			s.logger.Error("bootstrap failed", "error", err)
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	s.respondWithToken(w)
}

// handleVerifyPassword checks the credential. Missing and wrong credentials
// are both unauthorized; the response does not reveal which beyond what
// init_check already discloses.
func (s *Server) handleVerifyPassword(w http.ResponseWriter, r *http.Request) {
	var req PasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := s.gate.Verify(r.Context(), req.Password); err != nil {
		switch {
		case errors.Is(err, auth.ErrNoCredential), errors.Is(err, auth.ErrMismatch):
			writeError(w, http.StatusUnauthorized, "invalid password")
		default:
			s.logger.Error("verify failed", "error", err)
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	s.respondWithToken(w)
}

func (s *Server) respondWithToken(w http.ResponseWriter) {
	token, err := s.issuer.Issue(s.sessionTTL)
	if err != nil {
		s.logger.Error("failed to issue token", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	writeJSON(w, http.StatusOK, TokenResponse{Status: "success", Token: token})
}

// handleGetData returns the full snippet collection as a bare array, the
// shape existing clients expect. Share-link filtering happens client-side.
func (s *Server) handleGetData(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Load(r.Context())
	if err != nil {
		s.logger.Error("failed to load document", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, doc.Scripts)
}

// handleSaveData replaces the snippet collection with the posted payload.
// The whole document is the unit of atomicity: the payload entirely
// determines the post-state, and anything it omits is gone.
func (s *Server) handleSaveData(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var scripts []document.Snippet
	if err := json.NewDecoder(r.Body).Decode(&scripts); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if scripts == nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := document.ValidateScripts(scripts, s.maxTags); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	document.FillDefaults(scripts)

	doc, err := s.store.Load(r.Context())
	if err != nil {
		s.logger.Error("failed to load document", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	doc.Scripts = scripts
	if err := s.store.Save(r.Context(), doc); err != nil {
		var storeErr *store.StoreError
		if errors.As(err, &storeErr) {
			s.logger.Error("persistence failure", "kind", storeErr.Kind.String(), "path", storeErr.Path, "error", storeErr.Err)
		} else {
			s.logger.Error("persistence failure", "error", err)
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{Status: "success"})
}

// authorized checks the Bearer session token on privileged actions.
func (s *Server) authorized(r *http.Request) bool {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return false
	}
	return s.issuer.Check(token) == nil
}
