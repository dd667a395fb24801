package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Series is one named curve sampled at the beam stations
type Series struct {
	Name   string
	Values []float64
}

// ChartOptions size a terminal chart, in character cells
type ChartOptions struct {
	Width     int
	Height    int
	Precision uint
	Caption   string
}

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Blue,
	asciigraph.Red,
	asciigraph.Green,
	asciigraph.Goldenrod,
	asciigraph.DarkViolet,
	asciigraph.Teal,
}

// ASCIIChart plots one or more series as a terminal line chart. Series with
// no values are skipped.
func ASCIIChart(series []Series, opts ChartOptions) (string, error) {
	var data [][]float64
	var names []string
	var colors []asciigraph.AnsiColor
	for _, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		for _, v := range s.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return "", fmt.Errorf("series %q has a non-finite value", s.Name)
			}
		}
		data = append(data, s.Values)
		names = append(names, s.Name)
		colors = append(colors, seriesColors[len(colors)%len(seriesColors)])
	}
	if len(data) == 0 {
		return "", fmt.Errorf("nothing to plot")
	}

	if opts.Width <= 0 {
		opts.Width = 70
	}
	if opts.Height <= 0 {
		opts.Height = 12
	}
	if opts.Precision == 0 {
		opts.Precision = 2
	}

	options := []asciigraph.Option{
		asciigraph.Width(opts.Width),
		asciigraph.Height(opts.Height),
		asciigraph.Precision(opts.Precision),
		asciigraph.SeriesColors(colors...),
	}
	if len(data) > 1 {
		options = append(options, asciigraph.SeriesLegends(names...))
	}
	if opts.Caption != "" {
		options = append(options, asciigraph.Caption(opts.Caption))
	}
	return asciigraph.PlotMany(data, options...), nil
}

// BeamSketch draws the span with its supports and the stations holding
// water, scaled to width characters
//
//	≈≈≈≈≈≈≈≈≈≈
//	══════════════════════════════
//	▲                            ▲
//	0 ft                     20 ft
func BeamSketch(length float64, supports []float64, depth []float64, width int) string {
	if width < 10 {
		width = 10
	}
	col := func(x float64) int {
		if length <= 0 {
			return 0
		}
		c := int(math.Round(x / length * float64(width-1)))
		return min(max(c, 0), width-1)
	}

	water := []rune(strings.Repeat(" ", width))
	if len(depth) > 1 {
		for i, d := range depth {
			if d > 0 {
				water[col(length*float64(i)/float64(len(depth)-1))] = '≈'
			}
		}
	}

	marks := []rune(strings.Repeat(" ", width))
	for _, s := range supports {
		marks[col(s)] = '▲'
	}

	left := "0 ft"
	right := fmt.Sprintf("%g ft", length)
	gap := max(width-len(left)-len(right), 1)

	var sb strings.Builder
	sb.WriteString("  " + strings.TrimRight(string(water), " ") + "\n")
	sb.WriteString("  " + strings.Repeat("═", width) + "\n")
	sb.WriteString("  " + strings.TrimRight(string(marks), " ") + "\n")
	sb.WriteString("  " + left + strings.Repeat(" ", gap) + right + "\n")
	return sb.String()
}

// DrawSummaryBox frames a title and lines in a double-line box
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := lipgloss.Width(title)
	for _, line := range lines {
		maxLen = max(maxLen, lipgloss.Width(line))
	}
	maxLen += 4

	pad := func(s string) string {
		return s + strings.Repeat(" ", maxLen-4-lipgloss.Width(s))
	}

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
