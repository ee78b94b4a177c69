package cmdutils

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/openkcm/common-sdk/pkg/health"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	slogctx "github.com/veqryn/slog-context"

	"github.com/openkcm/report-wallet/internal/config"
)

func TestCobraCommand(t *testing.T) {
	ran := false
	businessFunc := func(context.Context, *config.Config) error {
		ran = true
		return nil
	}

	cmd := CobraCommand("discover", "List wallet providers", "Prints every wallet provider found", "{}", RunAsJob, businessFunc)

	assert.Equal(t, "discover", cmd.Use)
	assert.Equal(t, "List wallet providers", cmd.Short)
	assert.Equal(t, "Prints every wallet provider found", cmd.Long)

	t.Run("does not run without a config file", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("HOME", t.TempDir())
		cmd.SetArgs([]string{})

		err := cmd.ExecuteContext(t.Context())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "loading config")
		assert.False(t, ran)
	})
}

func TestStatusListener(t *testing.T) {
	tests := []struct {
		name  string
		state health.State
		want  []string
	}{
		{
			name:  "Static providers only",
			state: health.State{Status: "up", CheckState: map[string]health.CheckState{}},
			want:  []string{`"status":"up"`},
		},
		{
			name: "Valkey discovery down",
			state: health.State{
				Status: "down",
				CheckState: map[string]health.CheckState{
					"valkey": {Status: "down", Result: errors.New("connection refused")},
				},
			},
			want: []string{`"status":"down"`, `"valkey":"down"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ctx := slogctx.NewCtx(t.Context(), slog.New(slog.NewJSONHandler(&buf, nil)))

			statusListener(ctx, tt.state)

			assert.Contains(t, buf.String(), "readiness status changed")
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}
