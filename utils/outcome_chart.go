package utils

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/yugabyte/cloud-resource-cleanup/model"
)

const (
	colorDeleted = "#1a9850"
	colorStopped = "#66c2a5"
	colorSkipped = "#fee08b"
	colorFailed  = "#d73027"
)

var chartBorderStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("#F4D060"))

// DrawOutcomeChart renders a bar per outcome so a scheduled run's terminal
// capture shows the shape of the cleanup at a glance.
func DrawOutcomeChart(summary model.RunSummary) {
	if summary.Total() == 0 {
		return
	}

	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" 📊 OUTCOMES"))

	bc := barchart.New(60, 12)
	for _, bar := range []struct {
		label string
		value int
		color string
	}{
		{"deleted", summary.Deleted, colorDeleted},
		{"stopped", summary.Stopped, colorStopped},
		{"skipped", summary.Skipped, colorSkipped},
		{"failed", summary.Failed, colorFailed},
	} {
		bc.Push(barchart.BarData{
			Label: bar.label,
			Values: []barchart.BarValue{
				{
					Value: float64(bar.value),
					Style: lipgloss.NewStyle().Foreground(lipgloss.Color(bar.color)),
				},
			},
		})
	}

	bc.Draw()
	fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top, chartBorderStyle.Render(bc.View())))
}
