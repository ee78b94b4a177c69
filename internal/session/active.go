package session

import (
	"sync"
	"time"

	"github.com/openkcm/report-wallet/internal/wallet"
)

// ActiveSession is a read-only handle on the session owned by the Manager.
// It may be invalidated at any time; check Valid before each use.
type ActiveSession struct {
	Provider    string
	Session     wallet.Session
	ConnectedAt time.Time

	generation uint64
	holder     *holder
}

// Valid reports whether the handle is still the active session.
func (a *ActiveSession) Valid() bool {
	return a != nil && a.holder.isCurrent(a.generation)
}

// holder owns the single active session. Only create/replace and clear mutate it.
type holder struct {
	mu         sync.RWMutex
	active     *ActiveSession
	generation uint64
}

func (h *holder) replace(provider string, s wallet.Session) *ActiveSession {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.generation++
	h.active = &ActiveSession{
		Provider:    provider,
		Session:     s,
		ConnectedAt: time.Now(),
		generation:  h.generation,
		holder:      h,
	}
	return h.active
}

func (h *holder) clear() *ActiveSession {
	h.mu.Lock()
	defer h.mu.Unlock()
	prev := h.active
	h.active = nil
	h.generation++
	return prev
}

func (h *holder) current() (*ActiveSession, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.active, h.active != nil
}

func (h *holder) isCurrent(generation uint64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.active != nil && h.active.generation == generation
}
