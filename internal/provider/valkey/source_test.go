package providervalkey_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkcm/report-wallet/internal/dbtest/valkeytest"
	"github.com/openkcm/report-wallet/internal/provider"
	providervalkey "github.com/openkcm/report-wallet/internal/provider/valkey"
)

func TestSource(t *testing.T) {
	ctx := t.Context()
	valkeyClient, _, terminate := valkeytest.Start(ctx)
	defer terminate(ctx)

	wallet := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"sessionId": "s-1"}`))
	}))
	defer wallet.Close()

	prefix := "source-test-" + strings.ReplaceAll(time.Now().Format("20060102150405.000"), ".", "-")
	source := providervalkey.NewSource(valkeyClient, prefix, wallet.Client())
	registry := provider.NewRegistry(source)

	t.Run("nothing announced", func(t *testing.T) {
		assert.False(t, registry.Scan(ctx).HasAny())
	})

	t.Run("rejects incomplete announcements", func(t *testing.T) {
		err := source.Announce(ctx, providervalkey.Announcement{Name: "lace"}, 0)
		assert.ErrorIs(t, err, providervalkey.ErrInvalidAnnouncement)
	})

	t.Run("announced wallets are discovered sorted by name", func(t *testing.T) {
		require.NoError(t, source.Announce(ctx, providervalkey.Announcement{
			Name: "zeta", APIVersion: "1.0.0", Endpoint: wallet.URL,
		}, 0))
		require.NoError(t, source.Announce(ctx, providervalkey.Announcement{
			Name: "lace", APIVersion: "1.0.0", Endpoint: wallet.URL, RDNS: "io.lace",
		}, 0))

		snapshot := registry.Scan(ctx)
		assert.Equal(t, []string{"lace", "zeta"}, snapshot.Names())

		d, ok := snapshot.Get("lace")
		require.True(t, ok)

		want := provider.Descriptor{Name: "lace", APIVersion: "1.0.0", RDNS: "io.lace"}
		if diff := cmp.Diff(want, d, cmpopts.IgnoreFields(provider.Descriptor{}, "Connector")); diff != "" {
			t.Errorf("descriptor mismatch (-want +got):\n%s", diff)
		}

		s, err := d.Connector.Connect(ctx, "undeployed")
		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("withdrawn wallets disappear", func(t *testing.T) {
		require.NoError(t, source.Withdraw(ctx, "zeta"))
		assert.Equal(t, []string{"lace"}, registry.Scan(ctx).Names())
	})

	t.Run("announcements with a ttl expire", func(t *testing.T) {
		require.NoError(t, source.Announce(ctx, providervalkey.Announcement{
			Name: "ephemeral", APIVersion: "1.0.0", Endpoint: wallet.URL,
		}, time.Second))
		assert.Contains(t, registry.Scan(ctx).Names(), "ephemeral")

		time.Sleep(2 * time.Second)
		assert.NotContains(t, registry.Scan(ctx).Names(), "ephemeral")
	})

	t.Run("invalid endpoints are skipped", func(t *testing.T) {
		require.NoError(t, source.Announce(ctx, providervalkey.Announcement{
			Name: "broken", APIVersion: "1.0.0", Endpoint: "not-a-url",
		}, 0))
		assert.NotContains(t, registry.Scan(ctx).Names(), "broken")
	})
}
