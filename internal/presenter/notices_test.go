package presenter_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkcm/report-wallet/internal/presenter"
)

func TestToneOf(t *testing.T) {
	tests := []struct {
		text string
		want presenter.Tone
	}{
		{text: "", want: presenter.ToneNone},
		{text: "Wallet connected successfully! You can now submit reports.", want: presenter.ToneSuccess},
		{text: "Preparing zero-knowledge proof...", want: presenter.ToneSuccess},
		{text: "Transaction signature declined", want: presenter.ToneError},
		{text: "Failed to submit report: boom", want: presenter.ToneError},
		{text: "Unexpected ERROR", want: presenter.ToneError},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, presenter.ToneOf(tt.text))
		})
	}
}

func TestNotices(t *testing.T) {
	t.Run("post stays until superseded", func(t *testing.T) {
		n := presenter.NewNotices(20 * time.Millisecond)
		n.Post("Transaction signature declined")

		time.Sleep(50 * time.Millisecond)
		got, ok := n.Current()
		require.True(t, ok)
		assert.Equal(t, "Transaction signature declined", got.Text)
		assert.Equal(t, presenter.ToneError, got.Tone)
	})

	t.Run("flash clears itself", func(t *testing.T) {
		n := presenter.NewNotices(20 * time.Millisecond)
		n.Flash("Report submitted")

		_, ok := n.Current()
		require.True(t, ok)

		assert.Eventually(t, func() bool {
			_, ok := n.Current()
			return !ok
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("a new message cancels the pending clear", func(t *testing.T) {
		n := presenter.NewNotices(20 * time.Millisecond)
		n.Flash("Report submitted")
		n.Post("Wallet disconnected")

		time.Sleep(50 * time.Millisecond)
		got, ok := n.Current()
		require.True(t, ok)
		assert.Equal(t, "Wallet disconnected", got.Text)
	})

	t.Run("empty text clears", func(t *testing.T) {
		n := presenter.NewNotices(0)
		n.Post("Wallet disconnected")
		n.Post("")

		_, ok := n.Current()
		assert.False(t, ok)
	})
}
