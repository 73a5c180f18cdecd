package commands

import (
	"github.com/spf13/cobra"

	"github.com/promokit/promotectl/cmd/promotectl/handlers"
)

// Promote returns the command driving a full promotion run.
//
// Optional flags:
//
//	--config, -c: Path to promotion configuration YAML file (default: promotectl.yaml)
//	--tag, -t:    Source tag to promote; skips the interactive approval prompt
//
// Environment variables:
//
//	PROMOTE_TIMEOUT_APPROVAL: Bound on the interactive approval prompt (default: 2m)
//	PROMOTE_TIMEOUT_ROLLOUT:  Bound on the rollout verification wait (default: 10m)
func Promote() *cobra.Command {
	var configPath string
	var sourceTag string

	cmd := &cobra.Command{
		Use:   "promote",
		Short: "Promote a tagged artifact to production",
		Long: `Promote a previously built, tagged artifact to production.

The run verifies the source tag exists, re-tags it as the release version and
"latest", applies the production topology, prunes build configurations,
triggers one rollout and waits for it to finish. Stakeholders are notified of
the outcome.

Examples:
  # Promote interactively, prompting for the source tag
  promotectl promote

  # Promote a known tag without prompting
  promotectl promote -t 2.1-8

  # Use a specific config file
  promotectl promote -c production.yaml -t 2.1-8`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Promote(cmd.Context(), configPath, sourceTag)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: promotectl.yaml)")
	cmd.Flags().StringVarP(&sourceTag, "tag", "t", "", "Source tag to promote (skips the approval prompt)")

	return cmd
}
