package ledger

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"techshop/domain"
	"techshop/storage"
)

// SessionKey is the durable-store key holding the persisted identity.
const SessionKey = "techshop_user"

// SessionLedger holds the optional authenticated identity and mirrors it to
// the durable store on every transition. Restoration fails closed: a missing
// or unparseable persisted value means no session, never a crash.
type SessionLedger struct {
	mu   sync.RWMutex
	user *domain.User
	kv   storage.KV
}

// NewSessionLedger constructs a session over the given store, restoring any
// previously persisted identity.
func NewSessionLedger(kv storage.KV) *SessionLedger {
	s := &SessionLedger{kv: kv}
	b, ok, err := kv.Get(SessionKey)
	if err != nil || !ok {
		return s
	}
	var u domain.User
	if err := json.Unmarshal(b, &u); err != nil {
		slog.Warn("discarding malformed persisted session", "key", SessionKey, "error", err)
		return s
	}
	if u.Email == "" {
		return s
	}
	s.user = &u
	return s
}

// compile-time assertion that SessionLedger implements domain.Session
var _ domain.Session = (*SessionLedger)(nil)

// Login stores the identity and persists it, overwriting any prior identity.
func (s *SessionLedger) Login(ctx context.Context, user domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := json.Marshal(user)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Set(SessionKey, b); err != nil {
		return err
	}
	s.user = &user
	return nil
}

// Logout clears the identity and removes the persisted copy.
func (s *SessionLedger) Logout(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Delete(SessionKey); err != nil {
		return err
	}
	s.user = nil
	return nil
}

// Current returns the identity and whether one is present.
func (s *SessionLedger) Current() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// IsAuthenticated reports whether an identity is present.
func (s *SessionLedger) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}
