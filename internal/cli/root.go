package cli

import (
	"github.com/spf13/cobra"

	"sla.service/internal/config"
)

// NewRootCmd creates the top-level "slactl" command. cfg supplies flag
// defaults such as the API URL and the token signing secret.
func NewRootCmd(cfg config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "slactl",
		Short:         "SLA duration reports for WorklyHub workspaces",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newReportCmd(cfg),
		newTokenCmd(cfg),
	)

	return root
}
