package purchaseapi

import "sync"

// busyGuard serializes attempts per buyer: the orchestrator does not
// deduplicate concurrent intents, so the trigger surface must. Mirrors the
// storefront disabling its buy button while an attempt is in flight.
type busyGuard struct {
	mu     sync.Mutex
	active map[uint]bool
}

func (g *busyGuard) acquire(userID uint) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active[userID] {
		return false
	}
	g.active[userID] = true
	return true
}

func (g *busyGuard) release(userID uint) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, userID)
}
