package business

import (
	"context"
	"errors"
	"fmt"
	"time"

	slogctx "github.com/veqryn/slog-context"

	"github.com/openkcm/report-wallet/internal/config"
	providervalkey "github.com/openkcm/report-wallet/internal/provider/valkey"
)

// MinAnnouncementTTL is the shortest ttl AnnounceMain accepts. Renewals run at half the ttl.
const MinAnnouncementTTL = time.Second

var (
	ErrValkeyDisabled  = errors.New("valkey discovery is not enabled")
	ErrAnnouncementTTL = errors.New("announcement ttl too short")
)

// AnnounceMain keeps a wallet daemon announced until ctx ends, then withdraws it.
// The announcement expires after ttl unless renewed, so a crashed daemon disappears.
func AnnounceMain(ctx context.Context, cfg *config.Config, a providervalkey.Announcement, ttl time.Duration) error {
	if !cfg.ValKey.Enabled {
		return ErrValkeyDisabled
	}
	if ttl < MinAnnouncementTTL {
		return fmt.Errorf("%w: got %s, need at least %s", ErrAnnouncementTTL, ttl, MinAnnouncementTTL)
	}

	valkeyClient, err := newValkeyClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialise the announcement store: %w", err)
	}
	defer valkeyClient.Close()

	source := providervalkey.NewSource(valkeyClient, cfg.ValKey.Prefix, nil)
	ctx = slogctx.With(ctx, "provider", a.Name, "endpoint", a.Endpoint)

	// Renew well before the record expires.
	c := time.Tick(ttl / 2)
	for {
		if err := source.Announce(ctx, a, ttl); err != nil {
			if errors.Is(err, providervalkey.ErrInvalidAnnouncement) {
				return err
			}
			slogctx.Error(ctx, "Error announcing the wallet provider", "error", err)
		}

		select {
		case <-c:
			continue
		case <-ctx.Done():
			if err := source.Withdraw(context.WithoutCancel(ctx), a.Name); err != nil {
				slogctx.Warn(ctx, "Failed to withdraw the wallet provider", "error", err)
			}
			slogctx.Info(ctx, "Wallet provider withdrawn")
			return nil
		}
	}
}
