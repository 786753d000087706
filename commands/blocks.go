package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-claude-statusline/internal/analyzer"
	"github.com/penwyp/go-claude-statusline/internal/config"
	"github.com/penwyp/go-claude-statusline/internal/core/pricing"
	"github.com/penwyp/go-claude-statusline/internal/presentation/formatter"
	"github.com/penwyp/go-claude-statusline/internal/util"
)

func newBlocksCommand(f *rootFlags) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "List reconstructed 5-hour session blocks",
		Long: `Reconstructs the 5-hour session blocks from the usage logs and prints them as a table.

Block definition:
- Block start: first record timestamp floored to the hour (UTC)
- Block window: 5 hours from the start
- A new block starts after 5 hours from the start or 5 hours without activity

Only recent history is loaded unless --all is given.`,
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

			a := analyzer.New(&analyzer.Config{
				BaseDirs: config.ResolveBaseDirs(cfg.Dirs),
				NoCutoff: all,
			}, provider, tp)
			a.Now = now

			reports, err := a.Blocks(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([]formatter.BlockRow, len(reports))
			for i, r := range reports {
				rows[i] = formatter.BlockRow{Summary: r.Summary, Active: r.Active}
			}
			return formatter.NewTableFormatter(cmd.OutOrStdout(), tp).FormatBlocks(rows)
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false,
		"Load the full history instead of recent records only")
	return cmd
}
