package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/exit-readiness/internal/model"
	"github.com/sells-group/exit-readiness/internal/research"
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Show the effective benchmark data",
	Long: `Show the benchmark values scoring and focus-area ranking will use after
the research file (research.path) and scoring threshold overrides are applied.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := researchDefaults(cfg)
		if err != nil {
			return err
		}
		return formatResearch(cmd.OutOrStdout(), data)
	},
}

func init() {
	rootCmd.AddCommand(researchCmd)
}

func formatResearch(w io.Writer, data research.Data) error {
	ctx := data.Context()
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bench := tablewriter.NewWriter(w)
	bench.Header([]string{"Benchmark", "Value"})
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, ctx[k]})
	}
	if err := bench.Bulk(rows); err != nil {
		return eris.Wrap(err, "research: benchmark table")
	}
	if err := bench.Render(); err != nil {
		return eris.Wrap(err, "research: render benchmarks")
	}

	fmt.Fprintln(w)

	cats := tablewriter.NewWriter(w)
	cats.Header([]string{"Category", "Timeline (months)", "Typical impact"})
	cats.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.PerColumn = []tw.Align{tw.AlignLeft, tw.AlignRight, tw.AlignRight}
	})
	rows = rows[:0]
	for _, c := range model.Categories {
		rows = append(rows, []string{
			c.Label(),
			fmt.Sprintf("%.0f", data.TimelineMonths(c)),
			fmt.Sprintf("%.0f%%", data.Impact(c)*100),
		})
	}
	if err := cats.Bulk(rows); err != nil {
		return eris.Wrap(err, "research: category table")
	}
	return eris.Wrap(cats.Render(), "research: render categories")
}
