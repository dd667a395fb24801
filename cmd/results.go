package cmd

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/alexiusacademia/gopond/internal/asce"
	"github.com/alexiusacademia/gopond/internal/beam"
	"github.com/spf13/cobra"
)

var (
	resultsFamily    string
	pondingIteration int
	pondingEvery     int
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Print the results of the last ponding analysis",
	Long: `Print the results saved by 'gopond analyze'.

Subcommands:
  reactions    - Support reactions per combination (kip)
  moments      - Moment envelopes (kip-in)
  deflections  - Deflection envelopes (in, downward positive)
  ponding      - Ponded depth and deflection along the span
  convergence  - Ponded area and relative error per iteration

Any change to the model invalidates the results.`,
}

var resultsReactionsCmd = &cobra.Command{
	Use:   "reactions",
	Short: "Print support reactions",
	Run:   runResultsReactions,
}

var resultsMomentsCmd = &cobra.Command{
	Use:   "moments",
	Short: "Print moment envelopes",
	Run: func(cmd *cobra.Command, args []string) {
		b := openModel()
		requireResults(b)
		env := b.Envelopes()
		printEnvelope("MOMENT ENVELOPES (kip-in, sagging positive)", env.MaxMoment, env.MinMoment, "%.3f")
	},
}

var resultsDeflectionsCmd = &cobra.Command{
	Use:   "deflections",
	Short: "Print deflection envelopes",
	Run: func(cmd *cobra.Command, args []string) {
		b := openModel()
		requireResults(b)
		env := b.Envelopes()
		printEnvelope("DEFLECTION ENVELOPES (in, downward positive)", env.MaxDeflection, env.MinDeflection, "%.5f")
	},
}

var resultsPondingCmd = &cobra.Command{
	Use:   "ponding",
	Short: "Print the ponded depth and deflection along the span",
	Run:   runResultsPonding,
}

var resultsConvergenceCmd = &cobra.Command{
	Use:   "convergence",
	Short: "Print the ponded area and relative error per iteration",
	Run:   runResultsConvergence,
}

func init() {
	rootCmd.AddCommand(resultsCmd)
	resultsCmd.AddCommand(resultsReactionsCmd, resultsMomentsCmd, resultsDeflectionsCmd,
		resultsPondingCmd, resultsConvergenceCmd)

	resultsReactionsCmd.Flags().StringVarP(&resultsFamily, "family", "f", "all", "Combination family: asd, lrfd or all")

	resultsPondingCmd.Flags().IntVarP(&pondingIteration, "iteration", "i", -1, "Iteration to print (default the last)")
	resultsPondingCmd.Flags().IntVar(&pondingEvery, "every", 10, "Print every n-th station")
}

func runResultsReactions(cmd *cobra.Command, args []string) {
	b := openModel()
	requireResults(b)

	families := asce.Families[:]
	if !strings.EqualFold(resultsFamily, "all") {
		f, err := asce.ParseFamily(resultsFamily)
		exitOnError(err)
		families = []asce.Family{f}
	}

	nodes := b.SupportNodes()
	printHeader("SUPPORT REACTIONS (kip, upward positive)")

	printSection("LOAD CASES")
	w := newTable()
	printReactionHeader(w, nodes)
	env := b.Envelopes()
	for _, c := range asce.Cases() {
		fmt.Fprintf(w, "  %s", c.Name)
		for _, n := range nodes {
			fmt.Fprintf(w, "\t%.3f", env.Reactions[n.Name][c.Name])
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	fmt.Println()

	for _, f := range families {
		perNode := make([]map[string]float64, len(nodes))
		for i, n := range nodes {
			r, err := b.ReactionEnvelopeAtNode(n.Name, string(f))
			exitOnError(err)
			perNode[i] = r
		}

		printSection(strings.ToUpper(string(f)) + " COMBINATIONS")
		w = newTable()
		printReactionHeader(w, nodes)
		for _, c := range asce.Combinations(f) {
			fmt.Fprintf(w, "  %s", c.Name)
			for i := range nodes {
				fmt.Fprintf(w, "\t%.3f", perNode[i][c.Name])
			}
			fmt.Fprintln(w)
		}
		w.Flush()
		fmt.Println()
	}
}

func printReactionHeader(w io.Writer, nodes []beam.SupportNode) {
	fmt.Fprint(w, "  Combination")
	for _, n := range nodes {
		fmt.Fprintf(w, "\t%s @ %g ft", n.Name, n.Location)
	}
	fmt.Fprintln(w)
}

func printEnvelope(title string, maxEnv, minEnv beam.Envelope, format string) {
	printHeader(title)
	for _, g := range beam.Groups {
		combos := asce.Cases()
		label := "LOAD CASES"
		if g != beam.GroupCases {
			combos = asce.Combinations(asce.Family(g))
			label = strings.ToUpper(string(g)) + " COMBINATIONS"
		}

		printSection(label)
		w := newTable()
		fmt.Fprintln(w, "  Combination\tMax\tMin")
		for _, c := range combos {
			fmt.Fprintf(w, "  %s\t"+format+"\t"+format+"\n", c.Name, maxEnv[g][c.Name], minEnv[g][c.Name])
		}
		w.Flush()
		fmt.Println()
	}
}

func runResultsPonding(cmd *cobra.Command, args []string) {
	b := openModel()
	requireResults(b)

	depths := b.PondedDepthHistory()
	defls := b.DeflectionHistory()
	it := pondingIteration
	if it < 0 {
		it = len(depths) - 1
	}
	if it >= len(depths) {
		exitOnError(fmt.Errorf("iteration must be between 0 and %d", len(depths)-1))
	}
	every := max(pondingEvery, 1)

	printHeader(fmt.Sprintf("PONDED PROFILE - ITERATION %d", it))
	w := newTable()
	fmt.Fprintln(w, "  Station (ft)\tElevation (in)\tRain depth (in)\tSnow depth (in)\tRain defl. (in)\tSnow defl. (in)")
	st := b.Stations()
	elev := b.Elevations()
	for i := range st {
		if i%every != 0 && i != len(st)-1 {
			continue
		}
		fmt.Fprintf(w, "  %.2f\t%.3f\t%.4f\t%.4f\t%.5f\t%.5f\n", st[i], elev[i],
			depths[it].Rain[i], depths[it].Snow[i], defls[it].Rain[i], defls[it].Snow[i])
	}
	w.Flush()
	fmt.Println()
}

func runResultsConvergence(cmd *cobra.Command, args []string) {
	b := openModel()
	requireResults(b)

	stats := b.Stats()
	printHeader(fmt.Sprintf("CONVERGENCE - %d ITERATIONS", stats.Iterations))
	w := newTable()
	fmt.Fprintln(w, "  Iteration\tRain area (in·ft)\tSnow area (in·ft)\tRain rel. error\tSnow rel. error")
	for i := range stats.PondedArea {
		a, e := stats.PondedArea[i], stats.RelErr[i]
		fmt.Fprintf(w, "  %d\t%.5f\t%.5f\t%s\t%s\n", i, a.Rain, a.Snow, relErr(e.Rain), relErr(e.Snow))
	}
	w.Flush()
	fmt.Println()
}

func relErr(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.3e", v)
}
