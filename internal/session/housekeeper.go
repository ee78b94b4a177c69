package session

import (
	"context"
	"fmt"
	"time"

	slogctx "github.com/veqryn/slog-context"

	"github.com/openkcm/report-wallet/internal/serviceerr"
)

// Verify asks the wallet whether the active session is still connected and drops it if not.
// It reports whether a session is active afterwards.
func (m *Manager) Verify(ctx context.Context) bool {
	m.ops.Lock()
	defer m.ops.Unlock()

	active, ok := m.Current()
	if !ok {
		return false
	}

	ctx = slogctx.With(ctx, "provider", active.Provider)
	status, err := active.Session.ConnectionStatus(ctx)
	if err == nil && status.Connected {
		return true
	}

	if err != nil {
		err = fmt.Errorf("%w: %w", serviceerr.ErrSessionInvalidated, err)
	} else {
		err = serviceerr.ErrSessionInvalidated
	}
	slogctx.Warn(ctx, "Wallet session is no longer connected", "error", err)

	m.sessions.clear()
	m.transition(ctx, Disconnected, active.Provider, err)

	return false
}

// Watch verifies the active session every interval until ctx ends.
func (m *Manager) Watch(ctx context.Context, interval time.Duration) {
	c := time.Tick(interval)
	for {
		select {
		case <-c:
			m.Verify(ctx)
		case <-ctx.Done():
			return
		}
	}
}
