package business

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkcm/report-wallet/internal/config"
	"github.com/openkcm/report-wallet/internal/dbtest/valkeytest"
	"github.com/openkcm/report-wallet/internal/provider"
	providervalkey "github.com/openkcm/report-wallet/internal/provider/valkey"
)

var testAnnouncement = providervalkey.Announcement{
	Name:       "lace",
	APIVersion: "1.0.0",
	Endpoint:   "http://127.0.0.1:9944",
}

func TestAnnounceMain_ValkeyDisabled(t *testing.T) {
	err := AnnounceMain(t.Context(), testConfig(), testAnnouncement, time.Minute)
	assert.ErrorIs(t, err, ErrValkeyDisabled)
}

func TestAnnounceMain_InvalidTTL(t *testing.T) {
	cfg := testConfig()
	cfg.ValKey.Enabled = true

	for _, ttl := range []time.Duration{0, -time.Second, time.Nanosecond, MinAnnouncementTTL - time.Millisecond} {
		t.Run(ttl.String(), func(t *testing.T) {
			err := AnnounceMain(t.Context(), cfg, testAnnouncement, ttl)
			assert.ErrorIs(t, err, ErrAnnouncementTTL)
		})
	}
}

func TestAnnounceMain_InvalidValkeyConfig(t *testing.T) {
	cfg := testConfig()
	cfg.ValKey = config.ValKey{
		Enabled:  true,
		Host:     commoncfg.SourceRef{Source: "file", File: commoncfg.CredentialFile{Path: "/nonexistent/file"}},
		User:     commoncfg.SourceRef{Source: "embedded", Value: "user"},
		Password: commoncfg.SourceRef{Source: "embedded", Value: "pass"},
	}

	err := AnnounceMain(t.Context(), cfg, testAnnouncement, time.Minute)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialise the announcement store")
}

func TestAnnounceMain(t *testing.T) {
	ctx := t.Context()
	_, port, terminate := valkeytest.Start(ctx)
	defer terminate(ctx)

	cfg := testConfig()
	cfg.Wallet.Providers = nil
	cfg.ValKey = valkeyConfig(port.Port(), "announce-test")

	discovered := func() []string {
		var buf bytes.Buffer
		require.NoError(t, DiscoverMain(ctx, cfg, &buf, "yaml"))

		var got []provider.Descriptor
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))

		names := make([]string, 0, len(got))
		for _, d := range got {
			names = append(names, d.Name)
		}
		return names
	}

	t.Run("rejects an incomplete announcement", func(t *testing.T) {
		err := AnnounceMain(ctx, cfg, providervalkey.Announcement{Name: "lace"}, time.Minute)
		assert.ErrorIs(t, err, providervalkey.ErrInvalidAnnouncement)
	})

	t.Run("announces until cancelled", func(t *testing.T) {
		announceCtx, cancel := context.WithCancel(ctx)

		errChan := make(chan error, 1)
		go func() {
			errChan <- AnnounceMain(announceCtx, cfg, testAnnouncement, MinAnnouncementTTL)
		}()

		assert.Eventually(t, func() bool {
			return len(discovered()) == 1
		}, 5*time.Second, 50*time.Millisecond)

		// renewed past the original ttl
		time.Sleep(2 * MinAnnouncementTTL)
		assert.Equal(t, []string{"lace"}, discovered())

		cancel()
		require.NoError(t, <-errChan)
		assert.Empty(t, discovered())
	})
}
