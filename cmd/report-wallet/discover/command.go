package discover

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/openkcm/report-wallet/internal/business"
	"github.com/openkcm/report-wallet/internal/cmdutils"
	"github.com/openkcm/report-wallet/internal/config"
)

func Cmd(buildInfo string) *cobra.Command {
	var output string

	cmd := cmdutils.CobraCommand(
		"discover",
		"List wallet providers",
		"Waits for the discovery settle delay and prints every wallet provider found",
		buildInfo,
		cmdutils.RunAsJob,
		func(ctx context.Context, cfg *config.Config) error {
			return business.DiscoverMain(ctx, cfg, os.Stdout, output)
		},
	)
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format: yaml or json")

	return cmd
}
