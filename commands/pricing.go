package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-claude-statusline/internal/core/pricing"
	"github.com/penwyp/go-claude-statusline/internal/presentation/formatter"
	"github.com/penwyp/go-claude-statusline/internal/util"
)

func newPricingCommand(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:          "pricing",
		Short:        "Show the active pricing table",
		Long:         `Prints the per-million-token prices of the selected pricing source.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, tp, err := setup(cmd, f)
			if err != nil {
				return err
			}
			defer util.CloseLogger()
			defer func() { logFailure(cmd, err) }()

			provider, err := pricing.CreatePricingProvider(&cfg.Pricing)
			if err != nil {
				return fmt.Errorf("failed to create pricing provider: %w", err)
			}
			entries, err := provider.GetAllPricings(cmd.Context())
			if err != nil {
				return err
			}
			return formatter.NewTableFormatter(cmd.OutOrStdout(), tp).FormatPricing(provider.GetProviderName(), entries)
		},
	}
}
