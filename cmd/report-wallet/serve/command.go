package serve

import (
	"github.com/spf13/cobra"

	"github.com/openkcm/report-wallet/internal/business"
	"github.com/openkcm/report-wallet/internal/cmdutils"
)

func Cmd(buildInfo string) *cobra.Command {
	return cmdutils.CobraCommand(
		"serve",
		"Report Wallet API server",
		"Report Wallet API server discovers wallet providers and serves the connect and submit flow over HTTP",
		buildInfo,
		cmdutils.RunAsService,
		business.Main,
	)
}
