// ABOUTME: Credential gate for the single operator password
// ABOUTME: One-time bootstrap and constant-time verification over bcrypt

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/zenshell/zenshell/internal/document"
	"github.com/zenshell/zenshell/internal/store"
)

// Gate errors
var (
	ErrEmptyCredential     = errors.New("password must not be empty")
	ErrAlreadyBootstrapped = errors.New("password already set")
	ErrNoCredential        = errors.New("no password configured")
	ErrMismatch            = errors.New("invalid password")
)

// dummyHash is compared against when no credential exists, keeping
// verification timing flat regardless of bootstrap state.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Gate establishes and checks the single operator credential. Verification
// is stateless per call; the gate keeps no server-side session.
type Gate struct {
	store  store.Store
	logger *slog.Logger
}

// NewGate creates a gate backed by the given store.
func NewGate(st store.Store) *Gate {
	return &Gate{
		store:  st,
		logger: slog.Default().With("component", "auth"),
	}
}

// NeedsSetup reports whether the document still lacks a credential. Pure
// query, no side effects.
func NeedsSetup(doc *document.Document) bool {
	return !doc.HasCredential()
}

// Bootstrap sets the credential exactly once. It rejects an empty candidate
// and any attempt after a credential exists. This is the only path that
// ever sets the hash.
func (g *Gate) Bootstrap(ctx context.Context, password string) error {
	if password == "" {
		return ErrEmptyCredential
	}

	doc, err := g.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading document: %w", err)
	}
	if doc.HasCredential() {
		return ErrAlreadyBootstrapped
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	doc.SetCredential(string(hash))
	if err := g.store.Save(ctx, doc); err != nil {
		return err
	}

	g.logger.Info("credential bootstrapped")
	return nil
}

// Verify checks the candidate against the stored hash. It never mutates the
// document. A dummy comparison runs when no credential exists so that the
// response timing does not reveal bootstrap state beyond what init_check
// already discloses.
func (g *Gate) Verify(ctx context.Context, password string) error {
	doc, err := g.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading document: %w", err)
	}

	if !doc.HasCredential() {
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return ErrNoCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*doc.Meta.PasswordHash), []byte(password)); err != nil {
		return ErrMismatch
	}
	return nil
}
