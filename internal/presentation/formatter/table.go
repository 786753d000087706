package formatter

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/penwyp/go-claude-statusline/internal/core/model"
	"github.com/penwyp/go-claude-statusline/internal/core/pricing"
	"github.com/penwyp/go-claude-statusline/internal/util"
)

const blockTimeLayout = "2006-01-02 15:04"

// BlockRow is one session block in the blocks table
type BlockRow struct {
	Summary *model.BlockSummary
	Active  bool
}

// TableFormatter renders blocks and pricing as bordered tables
type TableFormatter struct {
	w  io.Writer
	tp *util.TimeProvider
}

func NewTableFormatter(w io.Writer, tp *util.TimeProvider) *TableFormatter {
	if tp == nil {
		tp = util.GetTimeProvider()
	}
	return &TableFormatter{w: w, tp: tp}
}

func (f *TableFormatter) newTable(headers []string, labelColumns int) *tablewriter.Table {
	table := tablewriter.NewTable(f.w,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.Off}},
		})))
	table.Header(headers)

	// Labels left, numbers right
	alignments := make([]tw.Align, len(headers))
	for i := range alignments {
		if i < labelColumns {
			alignments[i] = tw.AlignLeft
		} else {
			alignments[i] = tw.AlignRight
		}
	}
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.PerColumn = alignments
	})
	return table
}

// FormatBlocks writes every block with a total row
func (f *TableFormatter) FormatBlocks(rows []BlockRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(f.w, "No session blocks found")
		return err
	}

	table := f.newTable([]string{"Start", "End", "Records", "Tokens", "Cost", "Burn Rate", "Status"}, 2)

	var totalRecords int
	var totalTokens int64
	var totalCost model.Cost
	for _, row := range rows {
		s := row.Summary
		totalRecords += s.Records
		totalTokens += s.Tokens
		totalCost = totalCost.Add(s.TotalCost)

		burnRate := "-"
		status := ""
		if row.Active {
			status = remainingText(s.Remaining)
			if s.BurnRate != nil {
				burnRate = util.FormatCostRate(s.BurnRate.CostPerHour)
			}
		}

		if err := table.Append([]string{
			f.tp.Format(s.Start, blockTimeLayout),
			f.tp.Format(s.End, blockTimeLayout),
			util.FormatNumber(int64(s.Records)),
			util.FormatNumber(s.Tokens),
			s.TotalCost.String(),
			burnRate,
			status,
		}); err != nil {
			return err
		}
	}

	table.Footer([]string{
		"Total", "",
		util.FormatNumber(int64(totalRecords)),
		util.FormatNumber(totalTokens),
		totalCost.String(),
		"", "",
	})
	return table.Render()
}

// FormatPricing writes per-million-token prices for every entry
func (f *TableFormatter) FormatPricing(source string, entries []pricing.Entry) error {
	if _, err := fmt.Fprintf(f.w, "Pricing source: %s\n", source); err != nil {
		return err
	}

	table := f.newTable([]string{"Model", "Input", "Output", "Cache Write", "Cache Read"}, 1)
	for _, e := range entries {
		if err := table.Append([]string{
			e.Model,
			formatPerMillion(e.Pricing.Input),
			formatPerMillion(e.Pricing.Output),
			formatPerMillion(e.Pricing.CacheCreation),
			formatPerMillion(e.Pricing.CacheRead),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func formatPerMillion(p *model.Price) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("$%.2f", p.PerMillion())
}
