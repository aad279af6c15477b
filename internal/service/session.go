package service

import (
	"sync"

	"github.com/noah-isme/attendance-bridge/internal/models"
)

// SessionRegistry tracks the single active session in memory. The store
// keeps durable entities only; who is logged in is process state. Starting
// a session replaces whatever was active before, which preserves the
// at-most-one-active-session behaviour the UI relies on.
type SessionRegistry struct {
	mu     sync.Mutex
	claims *models.SessionClaims
}

// NewSessionRegistry constructs an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{}
}

// Start records claims as the active session, displacing any previous one.
func (r *SessionRegistry) Start(claims *models.SessionClaims) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.claims = claims
}

// Clear ends the active session.
func (r *SessionRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.claims = nil
}

// Current returns the active session claims, or nil when nobody is logged in.
func (r *SessionRegistry) Current() *models.SessionClaims {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.claims == nil {
		return nil
	}
	copied := *r.claims
	return &copied
}

// IsActive reports whether the token ID belongs to the active session.
func (r *SessionRegistry) IsActive(tokenID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.claims != nil && r.claims.ID == tokenID
}
