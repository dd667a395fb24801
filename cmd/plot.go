package cmd

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gopond/internal/asce"
	"github.com/alexiusacademia/gopond/internal/beam"
	"github.com/alexiusacademia/gopond/internal/diagram"
	"github.com/spf13/cobra"
)

var (
	plotOutput string
	plotASCII  bool
	plotFamily string
	plotTrack  string
	plotWidth  int
	plotHeight int
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Plot the ponded depth or the moment and shear diagrams",
	Long: `Plot results of the last ponding analysis, either to an image file
(.png, .svg, .pdf or .jpg) or to the terminal with --ascii.

Subcommands:
  depth   - Deflected beam and ponded water
  moment  - Moment diagrams of the ASD or LRFD combinations
  shear   - Shear diagrams of the ASD or LRFD combinations

Examples:
  gopond plot depth -o ponding.png
  gopond plot moment --family lrfd -o moment.svg
  gopond plot shear --ascii`,
}

var plotDepthCmd = &cobra.Command{
	Use:   "depth",
	Short: "Plot the ponded water over the deflected beam",
	Run:   runPlotDepth,
}

var plotMomentCmd = &cobra.Command{
	Use:   "moment",
	Short: "Plot the moment diagrams",
	Run: func(cmd *cobra.Command, args []string) {
		runPlotDiagram("Moment", "Moment (kip-in)", func(d beam.Diagram) []float64 { return d.Moment })
	},
}

var plotShearCmd = &cobra.Command{
	Use:   "shear",
	Short: "Plot the shear diagrams",
	Run: func(cmd *cobra.Command, args []string) {
		runPlotDiagram("Shear", "Shear (kip)", func(d beam.Diagram) []float64 { return d.Shear })
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotCmd.AddCommand(plotDepthCmd, plotMomentCmd, plotShearCmd)

	plotCmd.PersistentFlags().StringVarP(&plotOutput, "output", "o", "", "Image file (.png, .svg, .pdf, .jpg)")
	plotCmd.PersistentFlags().BoolVar(&plotASCII, "ascii", false, "Draw in the terminal")
	plotCmd.PersistentFlags().IntVar(&plotWidth, "cols", 70, "Terminal chart width (characters)")
	plotCmd.PersistentFlags().IntVar(&plotHeight, "rows", 15, "Terminal chart height (lines)")

	plotDepthCmd.Flags().StringVarP(&plotTrack, "track", "t", "rain", "Ponding track: rain or snow")
	plotMomentCmd.Flags().StringVarP(&plotFamily, "family", "f", "lrfd", "Combination family: asd or lrfd")
	plotShearCmd.Flags().StringVarP(&plotFamily, "family", "f", "lrfd", "Combination family: asd or lrfd")
}

func checkPlotTarget() {
	if plotASCII == (plotOutput != "") {
		exitOnError(fmt.Errorf("give either --output or --ascii"))
	}
}

func runPlotDepth(cmd *cobra.Command, args []string) {
	checkPlotTarget()
	b := openModel()
	requireResults(b)

	depths := b.PondedDepthHistory()
	defls := b.DeflectionHistory()
	last := len(depths) - 1

	var depth, defl []float64
	switch strings.ToLower(plotTrack) {
	case "rain":
		depth, defl = depths[last].Rain, defls[last].Rain
	case "snow":
		depth, defl = depths[last].Snow, defls[last].Snow
	default:
		exitOnError(fmt.Errorf("track must be 'rain' or 'snow', got %q", plotTrack))
	}

	if plotASCII {
		chart, err := diagram.ASCIIChart([]diagram.Series{
			{Name: "ponded depth (in)", Values: depth},
			{Name: "deflection (in)", Values: defl},
		}, diagram.ChartOptions{
			Width:   plotWidth,
			Height:  plotHeight,
			Caption: fmt.Sprintf("%s - %s ponding over %g ft", b.Name(), plotTrack, b.Length()),
		})
		exitOnError(err)
		fmt.Println()
		fmt.Println(chart)
		fmt.Println()
		return
	}

	elev := b.Elevations()
	surface := make([]float64, len(elev))
	for i := range elev {
		surface[i] = elev[i] - defl[i]
	}
	var supports []float64
	for _, s := range b.Supports() {
		supports = append(supports, s.Location)
	}

	err := diagram.ExportPondingProfile(diagram.PondingProfile{
		Title:    fmt.Sprintf("%s - Ponded Water (%s)", b.Name(), plotTrack),
		Stations: b.Stations(),
		Surface:  surface,
		Head:     b.RainDepth().Total(),
		Supports: supports,
	}, plotOutput, plotSize())
	exitOnError(err)
	fmt.Printf("Ponding profile saved to %s\n", plotOutput)
}

func runPlotDiagram(title, ylabel string, values func(beam.Diagram) []float64) {
	checkPlotTarget()
	f, err := asce.ParseFamily(plotFamily)
	exitOnError(err)

	b := openModel()
	diagrams, err := b.Diagrams()
	exitOnError(err)

	var series []diagram.Series
	for _, d := range diagrams {
		if d.Family == f {
			series = append(series, diagram.Series{Name: d.Combo, Values: values(d)})
		}
	}

	if plotASCII {
		chart, err := diagram.ASCIIChart(series, diagram.ChartOptions{
			Width:   plotWidth,
			Height:  plotHeight,
			Caption: fmt.Sprintf("%s - %s, %s", b.Name(), ylabel, strings.ToUpper(string(f))),
		})
		exitOnError(err)
		fmt.Println()
		fmt.Println(chart)
		fmt.Println()
		return
	}

	err = diagram.ExportLineChart(diagram.LineChart{
		Title:    fmt.Sprintf("%s - %s (%s)", b.Name(), title, strings.ToUpper(string(f))),
		XLabel:   "Position (ft)",
		YLabel:   ylabel,
		Stations: b.Stations(),
		Series:   series,
	}, plotOutput, plotSize())
	exitOnError(err)
	fmt.Printf("%s diagram saved to %s\n", title, plotOutput)
}

func plotSize() diagram.Size {
	return diagram.Size{Width: cfg.Plot.Width, Height: cfg.Plot.Height}
}
