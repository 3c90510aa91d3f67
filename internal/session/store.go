// Package session persists per-visitor SessionState keyed by an opaque
// session id.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

// DefaultTTL is how long an idle session lives.
const DefaultTTL = 24 * time.Hour

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrInvalidSessionID = errors.New("session id is required")
)

// Store defines the persistence contract for session state.
// Implementations never inspect the catalog or validate product ids.
type Store interface {
	// Load returns the state for sessionID. An absent session is created
	// empty and persisted atomically, so concurrent loads never clobber a
	// concurrent save.
	Load(ctx context.Context, sessionID string) (domain.SessionState, error)

	// Save overwrites the state and refreshes the session lifetime.
	Save(ctx context.Context, sessionID string, state domain.SessionState) error

	// Delete ends the session. Deleting an unknown session is not an error.
	Delete(ctx context.Context, sessionID string) error
}
