// Package session owns the lifecycle of the single active wallet session.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	slogctx "github.com/veqryn/slog-context"

	"github.com/openkcm/report-wallet/internal/provider"
	"github.com/openkcm/report-wallet/internal/serviceerr"
	"github.com/openkcm/report-wallet/internal/wallet"
)

type Option func(*Manager)

// WithTransitionListener registers fn for every state change. Listeners run synchronously
// and must not call back into Connect, Reconnect or Disconnect.
func WithTransitionListener(fn func(context.Context, Transition)) Option {
	return func(m *Manager) { m.listeners = append(m.listeners, fn) }
}

// WithPreferredProvider selects the named provider whenever a scan finds it.
func WithPreferredProvider(name string) Option {
	return func(m *Manager) { m.preferred = name }
}

type Manager struct {
	registry  *provider.Registry
	networkID string
	preferred string
	listeners []func(context.Context, Transition)

	connects metric.Int64Counter

	// ops serializes Connect, Reconnect, Disconnect and Verify.
	ops sync.Mutex

	mu    sync.RWMutex
	state State

	sessions holder
}

func NewManager(registry *provider.Registry, networkID string, opts ...Option) (*Manager, error) {
	m := &Manager{
		registry:  registry,
		networkID: networkID,
		state:     Disconnected,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	connects, err := otel.Meter("report-wallet/session").Int64Counter(
		"wallet.connect_count",
		metric.WithDescription("Wallet connect attempts by outcome"),
		metric.WithUnit("attempt"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating connect counter: %w", err)
	}
	m.connects = connects

	return m, nil
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Manager) NetworkID() string {
	return m.networkID
}

// Current returns the active session, if any.
func (m *Manager) Current() (*ActiveSession, bool) {
	return m.sessions.current()
}

// Connect activates a discovered provider and makes its session the active one.
// When already connected it returns the current session without activating again.
func (m *Manager) Connect(ctx context.Context) (*ActiveSession, error) {
	m.ops.Lock()
	defer m.ops.Unlock()

	if active, ok := m.Current(); ok {
		slogctx.Debug(ctx, "Wallet already connected", "provider", active.Provider)
		return active, nil
	}

	return m.connect(ctx)
}

// Reconnect drops the active session and activates again. A failure leaves no active session.
func (m *Manager) Reconnect(ctx context.Context) (*ActiveSession, error) {
	m.ops.Lock()
	defer m.ops.Unlock()

	if prev := m.sessions.clear(); prev != nil {
		m.transition(ctx, Disconnected, prev.Provider, nil)
	}

	return m.connect(ctx)
}

func (m *Manager) connect(ctx context.Context) (*ActiveSession, error) {
	snapshot := m.registry.Scan(ctx)
	descriptor, ok := snapshot.Select(m.preferred)
	if !ok {
		m.recordConnect(ctx, string(serviceerr.CodeNoProviderFound))
		return nil, serviceerr.ErrNoProviderFound
	}

	ctx = slogctx.With(ctx, "provider", descriptor.Name, "network_id", m.networkID)
	slogctx.Info(ctx, "Connecting to wallet")
	m.transition(ctx, Connecting, descriptor.Name, nil)

	s, err := descriptor.Connector.Connect(ctx, m.networkID)
	if err != nil || s == nil {
		err = activationError(err)
		slogctx.Error(ctx, "Wallet connection failed", "error", err)
		m.recordConnect(ctx, string(serviceerr.Kind(err).Err))
		m.transition(ctx, Disconnected, descriptor.Name, err)
		return nil, err
	}

	active := m.sessions.replace(descriptor.Name, s)
	m.recordConnect(ctx, "connected")
	m.transition(ctx, Connected, descriptor.Name, nil)
	slogctx.Info(ctx, "Wallet connected")

	return active, nil
}

// activationError converts an activation outcome into a failure kind.
// A missing session counts as a rejection, as does the wallet's user-decline code.
func activationError(err error) error {
	switch {
	case err == nil:
		return serviceerr.ErrActivationRejected
	case wallet.IsUserRejection(err):
		return fmt.Errorf("%w: %w", serviceerr.ErrActivationRejected, err)
	default:
		return fmt.Errorf("%w: %w", serviceerr.ErrActivationFailed, err)
	}
}

// Disconnect ends the active session. The wallet is told best-effort; locally
// the session is always gone afterwards.
func (m *Manager) Disconnect(ctx context.Context) {
	m.ops.Lock()
	defer m.ops.Unlock()

	active, ok := m.Current()
	if !ok {
		return
	}

	ctx = slogctx.With(ctx, "provider", active.Provider)
	m.transition(ctx, Disconnecting, active.Provider, nil)
	m.sessions.clear()

	if err := active.Session.Disconnect(ctx); err != nil {
		slogctx.Warn(ctx, "Wallet disconnect failed, dropping the session anyway", "error", err)
	}

	m.transition(ctx, Disconnected, active.Provider, nil)
	slogctx.Info(ctx, "Wallet disconnected")
}

func (m *Manager) transition(ctx context.Context, to State, providerName string, err error) {
	m.mu.Lock()
	from := m.state
	m.state = to
	m.mu.Unlock()

	if from == to && err == nil {
		return
	}

	t := Transition{From: from, To: to, Provider: providerName, Err: err, At: time.Now()}
	slogctx.Debug(ctx, "Wallet session state changed", "from", from, "to", to)
	for _, fn := range m.listeners {
		fn(ctx, t)
	}
}

func (m *Manager) recordConnect(ctx context.Context, outcome string) {
	m.connects.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
