package proof_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkcm/report-wallet/internal/proof"
	"github.com/openkcm/report-wallet/internal/wallet/walletmock"
)

func TestSimulated(t *testing.T) {
	t.Run("waits for the configured delay", func(t *testing.T) {
		start := time.Now()
		err := proof.Simulated{Delay: 20 * time.Millisecond}.PrepareProof(t.Context(), "addr")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})

	t.Run("zero delay returns immediately", func(t *testing.T) {
		assert.NoError(t, proof.Simulated{}.PrepareProof(t.Context(), "addr"))
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		err := proof.Simulated{Delay: time.Hour}.PrepareProof(ctx, "addr")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFor(t *testing.T) {
	fallback := proof.Simulated{}

	t.Run("uses the session when it proves", func(t *testing.T) {
		s := walletmock.NewProvingSession()
		p := proof.For(s, fallback)
		require.NoError(t, p.PrepareProof(t.Context(), "addr"))
		assert.Equal(t, []string{"PrepareProof"}, s.CallsSnapshot())
	})

	t.Run("falls back otherwise", func(t *testing.T) {
		p := proof.For(walletmock.NewSession(), fallback)
		assert.Equal(t, fallback, p)
	})
}
