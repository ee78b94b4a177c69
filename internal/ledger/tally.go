package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openkcm/report-wallet/internal/serviceerr"
	"github.com/openkcm/report-wallet/internal/session"
)

var one = decimal.NewFromInt(1)

// Reading is a copy of the displayed count.
type Reading struct {
	Value decimal.Decimal `json:"value"`
	// Known is false until a ledger query succeeded, and after one failed.
	Known       bool      `json:"known"`
	RefreshedAt time.Time `json:"refreshedAt"`
}

// Tally mirrors the ledger count into presentation state. It is only reconciled with the
// ledger by Refresh; Increment is an optimistic local update.
type Tally struct {
	mu      sync.RWMutex
	reading Reading
}

func NewTally() *Tally {
	return &Tally{reading: Reading{Value: decimal.Zero}}
}

func (t *Tally) Reading() Reading {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.reading
}

func (t *Tally) Increment() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reading.Value = t.reading.Value.Add(one)
}

func (t *Tally) set(v decimal.Decimal) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reading = Reading{Value: v, Known: true, RefreshedAt: time.Now()}
}

func (t *Tally) markUnknown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reading.Known = false
	t.reading.RefreshedAt = time.Now()
}

// SessionSource hands out the active session.
type SessionSource interface {
	Current() (*session.ActiveSession, bool)
}

// Model is the read side exposed to the presentation layer.
type Model struct {
	reader   *Reader
	sessions SessionSource
	tally    *Tally
}

func NewModel(reader *Reader, sessions SessionSource, tally *Tally) *Model {
	return &Model{reader: reader, sessions: sessions, tally: tally}
}

func (m *Model) Tally() *Tally {
	return m.tally
}

// Refresh re-queries the ledger through the active session. On failure the last value
// stays displayed but is flagged unknown.
func (m *Model) Refresh(ctx context.Context) (Reading, error) {
	active, ok := m.sessions.Current()
	if !ok {
		return m.tally.Reading(), serviceerr.ErrNoActiveSession
	}

	total, err := m.reader.Query(ctx, active.Session)
	if err != nil {
		m.tally.markUnknown()
		return m.tally.Reading(), err
	}

	m.tally.set(total)
	return m.tally.Reading(), nil
}
