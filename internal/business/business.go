package business

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/valkey-io/valkey-go"

	slogctx "github.com/veqryn/slog-context"

	"github.com/openkcm/report-wallet/internal/business/server"
	"github.com/openkcm/report-wallet/internal/config"
	"github.com/openkcm/report-wallet/internal/ledger"
	"github.com/openkcm/report-wallet/internal/presenter"
	"github.com/openkcm/report-wallet/internal/proof"
	"github.com/openkcm/report-wallet/internal/provider"
	providervalkey "github.com/openkcm/report-wallet/internal/provider/valkey"
	"github.com/openkcm/report-wallet/internal/session"
	"github.com/openkcm/report-wallet/internal/submission"
	"github.com/openkcm/report-wallet/internal/wallet/httpwallet"
)

type app struct {
	registry  *provider.Registry
	manager   *session.Manager
	presenter *presenter.Presenter
}

// Main discovers wallets, then serves the API while watching the active session.
func Main(ctx context.Context, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a, closeFn, err := initApp(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialising the application: %w", err)
	}
	defer closeFn()

	snapshot := a.registry.Discover(ctx, cfg.Wallet.SettleDelay)
	slogctx.Info(ctx, "Wallet discovery finished", "providers", snapshot.Names())

	// errChan is used to capture the server error and stop the housekeeping.
	errChan := make(chan error, 1)

	var wg sync.WaitGroup

	wg.Go(func() {
		errChan <- server.StartHTTPServer(ctx, cfg, a.presenter)
	})

	wg.Go(func() {
		a.manager.Watch(ctx, cfg.Wallet.VerifyInterval)
	})

	if err := <-errChan; err != nil {
		slogctx.Error(ctx, "Shutting down", "error", err)
	}
	cancel()

	wg.Wait()

	return nil
}

// DiscoverMain runs one discovery and writes the providers found to w.
func DiscoverMain(ctx context.Context, cfg *config.Config, w io.Writer, format string) error {
	registry, closeFn, err := initRegistry(cfg, newHTTPClient(cfg))
	if err != nil {
		return fmt.Errorf("initialising wallet discovery: %w", err)
	}
	defer closeFn()

	descriptors := registry.Discover(ctx, cfg.Wallet.SettleDelay).Descriptors()

	var out []byte
	switch format {
	case "yaml":
		out, err = yaml.Marshal(descriptors)
	case "json":
		out, err = json.MarshalIndent(descriptors, "", "  ")
		out = append(out, '\n')
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return fmt.Errorf("encoding providers: %w", err)
	}

	_, err = w.Write(out)
	return err
}

func initApp(ctx context.Context, cfg *config.Config) (_ *app, closeFn func(), _ error) {
	contractAddress, err := config.LoadContractAddress(cfg.Contract)
	if err != nil {
		return nil, nil, err
	}

	registry, closeFn, err := initRegistry(cfg, newHTTPClient(cfg))
	if err != nil {
		return nil, nil, err
	}

	notices := presenter.NewNotices(cfg.Submission.NoticeTTL)

	manager, err := session.NewManager(registry, cfg.Wallet.NetworkID,
		session.WithPreferredProvider(cfg.Wallet.PreferredProvider),
		session.WithTransitionListener(presenter.TransitionListener(notices)),
	)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("creating session manager: %w", err)
	}

	tally := ledger.NewTally()
	coordinator, err := submission.NewCoordinator(manager, tally, contractAddress,
		submission.WithPhaseTimeout(cfg.Submission.PhaseTimeout),
		submission.WithProofPreparer(proof.Simulated{Delay: cfg.Submission.ProofDelay}),
		submission.WithNotifier(notices),
	)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("creating submission coordinator: %w", err)
	}

	model := ledger.NewModel(ledger.NewReader(contractAddress), manager, tally)

	slogctx.Info(ctx, "Application initialised",
		"contract_address", contractAddress,
		"network_id", cfg.Wallet.NetworkID,
		"static_providers", len(cfg.Wallet.Providers),
		"valkey_discovery", cfg.ValKey.Enabled,
	)

	return &app{
		registry:  registry,
		manager:   manager,
		presenter: presenter.New(registry, manager, coordinator, model, notices, contractAddress),
	}, closeFn, nil
}

// initRegistry injects the configured wallets into a fresh environment and adds the
// Valkey announcements when enabled.
func initRegistry(cfg *config.Config, httpClient *http.Client) (_ *provider.Registry, closeFn func(), _ error) {
	env := provider.NewEnvironment()
	for _, p := range cfg.Wallet.Providers {
		client, err := httpwallet.NewClient(p.Endpoint, httpClient)
		if err != nil {
			return nil, nil, fmt.Errorf("configuring wallet provider %q: %w", p.Name, err)
		}
		env.Inject(client.Descriptor(p.Name, p.APIVersion, p.Icon, p.RDNS))
	}

	if !cfg.ValKey.Enabled {
		return provider.NewRegistry(env), func() {}, nil
	}

	valkeyClient, err := newValkeyClient(cfg)
	if err != nil {
		return nil, nil, err
	}

	source := providervalkey.NewSource(valkeyClient, cfg.ValKey.Prefix, httpClient)
	return provider.NewRegistry(provider.Sources(env, source)), valkeyClient.Close, nil
}

func newValkeyClient(cfg *config.Config) (valkey.Client, error) {
	opts, err := config.MakeValkeyOptions(cfg.ValKey)
	if err != nil {
		return nil, fmt.Errorf("making valkey options from config: %w", err)
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("creating a new valkey client: %w", err)
	}
	return client, nil
}

func newHTTPClient(cfg *config.Config) *http.Client {
	timeout := cfg.Wallet.RequestTimeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &http.Client{Timeout: timeout}
}
