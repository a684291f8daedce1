package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/yugabyte/cloud-resource-cleanup/model"
)

// DrawSummaryTable displays the per-pass outcomes and overall totals after
// every provider/kind combination has run.
func DrawSummaryTable(reports []model.RunReport, dryRun bool) {
	title := " 🧹 CLEANUP SUMMARY"
	if dryRun {
		title = " 🧹 CLEANUP SUMMARY (DRY RUN)"
	}
	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(title))
	fmt.Println(text.FgHiBlue.Sprint(" ------------------------------------------------"))

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Provider", "Resource", "Operation", "Deleted", "Stopped", "Skipped", "Failed"})
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})

	var total model.RunSummary
	for _, report := range reports {
		var summary model.RunSummary
		summary.Add(report.Results)
		total.Add(report.Results)

		failed := fmt.Sprint(summary.Failed)
		if summary.Failed > 0 {
			failed = text.FgHiRed.Sprint(summary.Failed)
		}
		tw.AppendRow(table.Row{
			text.FgHiYellow.Sprint(strings.ToUpper(report.Provider)),
			report.Kind,
			report.Operation,
			summary.Deleted,
			summary.Stopped,
			summary.Skipped,
			failed,
		})
	}

	tw.AppendFooter(table.Row{"", "", "Total", total.Deleted, total.Stopped, total.Skipped, total.Failed})
	tw.Render()
}
