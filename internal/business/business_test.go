package business

import (
	"bytes"
	"context"
	"net"
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

func testConfig() *config.Config {
	return &config.Config{
		BaseConfig: commoncfg.BaseConfig{
			Application: commoncfg.Application{Name: "test-app"},
		},
		HTTP: config.HTTPServer{
			Address:         "localhost:0",
			ShutdownTimeout: time.Second,
		},
		Wallet: config.Wallet{
			NetworkID:   "undeployed",
			SettleDelay: 10 * time.Millisecond,
			Providers: []config.StaticProvider{
				{Name: "lace", APIVersion: "1.0.0", Endpoint: "http://127.0.0.1:9944", RDNS: "io.lace"},
				{Name: "backup", APIVersion: "1.0.0", Endpoint: "http://127.0.0.1:9945"},
			},
		},
		Submission: config.Submission{
			PhaseTimeout: time.Second,
			NoticeTTL:    time.Second,
		},
	}
}

func TestInitRegistry_StaticProviders(t *testing.T) {
	registry, closeFn, err := initRegistry(testConfig(), nil)
	require.NoError(t, err)
	defer closeFn()

	snapshot := registry.Scan(t.Context())
	assert.Equal(t, []string{"lace", "backup"}, snapshot.Names())

	d, ok := snapshot.Get("lace")
	require.True(t, ok)
	assert.Equal(t, "io.lace", d.RDNS)
	assert.NotNil(t, d.Connector)
}

func TestInitRegistry_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Config)
	}{
		{
			name: "relative wallet endpoint",
			modify: func(cfg *config.Config) {
				cfg.Wallet.Providers = []config.StaticProvider{{Name: "lace", Endpoint: "/wallet"}}
			},
		},
		{
			name: "invalid valkey host",
			modify: func(cfg *config.Config) {
				cfg.ValKey = config.ValKey{
					Enabled:  true,
					Host:     commoncfg.SourceRef{Source: "file", File: commoncfg.CredentialFile{Path: "/nonexistent/file"}},
					User:     commoncfg.SourceRef{Source: "embedded", Value: "user"},
					Password: commoncfg.SourceRef{Source: "embedded", Value: "pass"},
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.modify(cfg)

			_, _, err := initRegistry(cfg, nil)
			assert.Error(t, err)
		})
	}
}

func TestInitApp(t *testing.T) {
	t.Run("wires the presenter", func(t *testing.T) {
		a, closeFn, err := initApp(t.Context(), testConfig())
		require.NoError(t, err)
		defer closeFn()

		a.registry.Scan(t.Context())
		v := a.presenter.View()
		assert.Equal(t, "f84c5ddd658f7292adee...", v.ContractAddress)
		assert.Equal(t, "Get Started", v.PrimaryAction.Label)
		assert.Equal(t, []string{"lace", "backup"}, v.Wallet.Providers)
	})

	t.Run("fails on an invalid contract address", func(t *testing.T) {
		cfg := testConfig()
		cfg.Contract.Address = commoncfg.SourceRef{Source: "embedded", Value: ""}

		_, _, err := initApp(t.Context(), cfg)
		assert.ErrorIs(t, err, config.ErrEmptyContractAddress)
	})
}

func TestDiscoverMain(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, DiscoverMain(t.Context(), testConfig(), &buf, "yaml"))

		var got []provider.Descriptor
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "lace", got[0].Name)
		assert.Equal(t, "io.lace", got[0].RDNS)
		assert.Equal(t, "backup", got[1].Name)
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, DiscoverMain(t.Context(), testConfig(), &buf, "json"))
		assert.Contains(t, buf.String(), `"name": "lace"`)
	})

	t.Run("no providers", func(t *testing.T) {
		cfg := testConfig()
		cfg.Wallet.Providers = nil

		var buf bytes.Buffer
		require.NoError(t, DiscoverMain(t.Context(), cfg, &buf, "yaml"))

		var got []provider.Descriptor
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Empty(t, got)
	})

	t.Run("unknown format", func(t *testing.T) {
		err := DiscoverMain(t.Context(), testConfig(), &bytes.Buffer{}, "xml")
		assert.Error(t, err)
	})
}

func TestMain_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())

	errChan := make(chan error, 1)
	go func() {
		errChan <- Main(ctx, testConfig())
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Main did not return within timeout")
	}
}

func TestMain_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Wallet.Providers = []config.StaticProvider{{Name: "lace", Endpoint: "::"}}

	err := Main(t.Context(), cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "initialising the application")
}

func TestDiscoverMain_Valkey(t *testing.T) {
	ctx := t.Context()
	valkeyClient, port, terminate := valkeytest.Start(ctx)
	defer terminate(ctx)

	cfg := testConfig()
	cfg.Wallet.Providers = nil
	cfg.ValKey = valkeyConfig(port.Port(), "discover-test")

	source := providervalkey.NewSource(valkeyClient, "discover-test", nil)
	require.NoError(t, source.Announce(ctx, providervalkey.Announcement{
		Name: "lace", APIVersion: "2.0.0", Endpoint: "http://127.0.0.1:9944",
	}, time.Minute))

	var buf bytes.Buffer
	require.NoError(t, DiscoverMain(ctx, cfg, &buf, "yaml"))

	var got []provider.Descriptor
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "lace", got[0].Name)
	assert.Equal(t, "2.0.0", got[0].APIVersion)
}

func valkeyConfig(port, prefix string) config.ValKey {
	return config.ValKey{
		Enabled:  true,
		Host:     commoncfg.SourceRef{Source: "embedded", Value: net.JoinHostPort("localhost", port)},
		User:     commoncfg.SourceRef{Source: "embedded", Value: ""},
		Password: commoncfg.SourceRef{Source: "embedded", Value: ""},
		Prefix:   prefix,
	}
}
