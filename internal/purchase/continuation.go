package purchase

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ContinuationStore holds intents for attempts suspended at the
// authentication gate. Entries expire after the TTL; an expired entry is the
// silent cancel of an abandoned sign-in — no order, no outcome.
type ContinuationStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	pending map[string]pendingAttempt
}

type pendingAttempt struct {
	intent    PurchaseIntent
	expiresAt time.Time
}

func NewContinuationStore(ttl time.Duration) *ContinuationStore {
	return &ContinuationStore{
		ttl:     ttl,
		now:     time.Now,
		pending: make(map[string]pendingAttempt),
	}
}

// Suspend stores the intent verbatim and returns the opaque token the client
// presents after signing in.
func (s *ContinuationStore) Suspend(intent PurchaseIntent) string {
	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	s.pending[token] = pendingAttempt{intent: intent, expiresAt: s.now().Add(s.ttl)}
	return token
}

// Take removes and returns the suspended intent. A token is good for one
// resume only.
func (s *ContinuationStore) Take(token string) (PurchaseIntent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	p, ok := s.pending[token]
	if !ok {
		return PurchaseIntent{}, false
	}
	delete(s.pending, token)
	return p.intent, true
}

// Has reports whether the token refers to a live suspended attempt, without
// consuming it. Callers use it to reject stale tokens before doing any work
// on the buyer's behalf.
func (s *ContinuationStore) Has(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	_, ok := s.pending[token]
	return ok
}

// Abandon drops a suspended attempt without resuming it.
func (s *ContinuationStore) Abandon(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, token)
}

func (s *ContinuationStore) purgeLocked() {
	now := s.now()
	for token, p := range s.pending {
		if now.After(p.expiresAt) {
			delete(s.pending, token)
		}
	}
}
