package cmd

import (
	"errors"
	"fmt"
	"slices"

	"github.com/alexiusacademia/gopond/internal/asce"
	"github.com/alexiusacademia/gopond/internal/beam"
	"github.com/alexiusacademia/gopond/internal/diagram"
	"github.com/spf13/cobra"
)

var (
	analyzeTolerance float64
	analyzeMaxIter   int
	analyzeNoSave    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the ponding analysis",
	Long: `Run the ponding analysis of the model.

Starting from the design rain depth over the undeflected roof, the beam
is solved under dead load plus rain (or snow) plus ponded water. The
deflected shape deepens the water, which is applied again, until the
ponded area changes by less than the tolerance between iterations.

A beam that keeps collecting more water than it sheds does not
converge: the analysis stops after the iteration limit and a stiffer
section is needed.

On convergence the results are saved to the model file.

Examples:
  gopond analyze -m roof.pond
  gopond analyze --tolerance 1e-6 --max-iterations 100 --log-level debug`,
	Run: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().Float64Var(&analyzeTolerance, "tolerance", 0, "Relative change of ponded area to stop at (default from config)")
	analyzeCmd.Flags().IntVar(&analyzeMaxIter, "max-iterations", 0, "Iteration limit (default from config)")
	analyzeCmd.Flags().BoolVar(&analyzeNoSave, "no-save", false, "Do not save the results to the model file")
}

func runAnalyze(cmd *cobra.Command, args []string) {
	b := openModel()

	solver := cfg.Solver()
	if cmd.Flags().Changed("tolerance") {
		solver.Tolerance = analyzeTolerance
	}
	if cmd.Flags().Changed("max-iterations") {
		solver.MaxIterations = analyzeMaxIter
	}
	if solver.Tolerance <= 0 || solver.MaxIterations < 2 {
		exitOnError(fmt.Errorf("tolerance must be positive and max-iterations at least 2"))
	}
	solver.Logger = logger

	err := solver.Solve(b)
	var ce *beam.ConvergenceError
	if errors.As(err, &ce) {
		fmt.Println()
		fmt.Print(diagram.DrawSummaryBox("PONDING DID NOT CONVERGE", []string{
			summaryLine("Iterations:", fmt.Sprint(ce.Iterations)),
			summaryLine("Rain rel. error:", fmt.Sprintf("%.3g", ce.RelErr.Rain)),
			summaryLine("Snow rel. error:", fmt.Sprintf("%.3g", ce.RelErr.Snow)),
			summaryLine("Section:", fmt.Sprintf("%s (Iz = %.1f in⁴)", b.Section().Designator, b.Section().Iz)),
			"Use a stiffer section or reduce the tributary width.",
		}))
		fmt.Println()
	}
	exitOnError(err)

	if !analyzeNoSave {
		saveModel(b, "analyze")
	}
	printAnalysisSummary(b)
}

func printAnalysisSummary(b *beam.Beam) {
	stats := b.Stats()
	depths := b.PondedDepthHistory()
	depth := depths[len(depths)-1]
	seedArea := stats.PondedArea[0]
	final := stats.PondedArea[len(stats.PondedArea)-1]
	env := b.Envelopes()

	fmt.Println()
	fmt.Print(diagram.DrawSummaryBox("PONDING ANALYSIS - "+b.Name(), []string{
		summaryLine("Converged after:", fmt.Sprintf("%d iterations", stats.Iterations)),
		summaryLine("Rain ponded area:", fmt.Sprintf("%.4f in·ft (initial %.4f)", final.Rain, seedArea.Rain)),
		summaryLine("Snow ponded area:", fmt.Sprintf("%.4f in·ft (initial %.4f)", final.Snow, seedArea.Snow)),
		summaryLine("Max rain depth:", fmt.Sprintf("%.3f in", slices.Max(depth.Rain))),
		summaryLine("Max deflection D+R+P:", fmt.Sprintf("%.4f in", env.MaxDeflection[beam.GroupASD][asce.RainPondingCombo])),
		summaryLine("Max moment 1.2D+1.6R+1.6P:", fmt.Sprintf("%.2f kip-in", env.MaxMoment[beam.GroupLRFD]["1.2D+1.6R+1.6P"])),
	}))
	fmt.Println()

	var supports []float64
	for _, s := range b.Supports() {
		supports = append(supports, s.Location)
	}
	fmt.Print(diagram.BeamSketch(b.Length(), supports, depth.Rain, 50))
	fmt.Println()
	fmt.Println("Use 'gopond results' for reactions, moments and deflections.")
	fmt.Println()
}

func summaryLine(label, value string) string {
	return fmt.Sprintf("%-27s%s", label, value)
}
