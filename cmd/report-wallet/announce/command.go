package announce

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/openkcm/report-wallet/internal/business"
	"github.com/openkcm/report-wallet/internal/cmdutils"
	"github.com/openkcm/report-wallet/internal/config"

	providervalkey "github.com/openkcm/report-wallet/internal/provider/valkey"
)

func Cmd(buildInfo string) *cobra.Command {
	var (
		a   providervalkey.Announcement
		ttl time.Duration
	)

	cmd := cmdutils.CobraCommand(
		"announce",
		"Announce a wallet provider",
		"Publishes a wallet provider to valkey and keeps renewing it until stopped",
		buildInfo,
		cmdutils.RunAsService,
		func(ctx context.Context, cfg *config.Config) error {
			return business.AnnounceMain(ctx, cfg, a, ttl)
		},
	)

	flags := cmd.Flags()
	flags.StringVar(&a.Name, "name", "", "provider name")
	flags.StringVar(&a.APIVersion, "api-version", "", "wallet API version")
	flags.StringVar(&a.Endpoint, "endpoint", "", "wallet HTTP endpoint")
	flags.StringVar(&a.Icon, "icon", "", "provider icon URL")
	flags.StringVar(&a.RDNS, "rdns", "", "reverse DNS identifier")
	flags.DurationVar(&ttl, "ttl", 30*time.Second, "announcement lifetime, renewed at half this interval")

	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("endpoint")

	return cmd
}
