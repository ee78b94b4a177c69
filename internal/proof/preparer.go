// Package proof holds the proof-preparation capability used before a circuit call is signed.
package proof

import (
	"context"
	"time"

	slogctx "github.com/veqryn/slog-context"
)

// Preparer prepares the zero-knowledge proof for a call against contractAddress.
// Wallet sessions that prove on their own implement it as well.
type Preparer interface {
	PrepareProof(ctx context.Context, contractAddress string) error
}

// DefaultSimulatedDelay is the time a simulated preparation takes.
const DefaultSimulatedDelay = 2500 * time.Millisecond

// Simulated stands in for a prover that is not reachable from this process.
// It only waits, so the phase keeps its asynchronous shape.
type Simulated struct {
	Delay time.Duration
}

func (s Simulated) PrepareProof(ctx context.Context, contractAddress string) error {
	slogctx.Debug(ctx, "Simulating proof preparation", "contract_address", contractAddress, "delay", s.Delay)
	if s.Delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.Delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// For returns the session itself when it can prepare proofs, otherwise fallback.
func For(session any, fallback Preparer) Preparer {
	if p, ok := session.(Preparer); ok {
		return p
	}
	return fallback
}
