package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gopond/internal/beam"
	"github.com/alexiusacademia/gopond/internal/diagram"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the beam model",
	Run:   runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) {
	b := openModel()

	printHeader("ROOF BEAM MODEL - " + b.Name())

	printSection("GEOMETRY")
	w := newTable()
	fmt.Fprintf(w, "  Span:\t%g ft\n", b.Length())
	fmt.Fprintf(w, "  Slope:\t%g in/ft\n", b.Slope())
	fmt.Fprintf(w, "  Tributary width:\t%g ft\n", b.TributaryWidth())
	w.Flush()
	fmt.Println()

	sec := b.Section()
	printSection("SECTION")
	w = newTable()
	fmt.Fprintf(w, "  Designator:\t%s (%s)\n", sec.Designator, sec.Family)
	fmt.Fprintf(w, "  A:\t%.3f in²\n", sec.A)
	fmt.Fprintf(w, "  Iz:\t%.2f in⁴\n", sec.Iz)
	fmt.Fprintf(w, "  Iy:\t%.2f in⁴\n", sec.Iy)
	fmt.Fprintf(w, "  J:\t%.4f in⁴\n", sec.J)
	if sec.Weight > 0 {
		fmt.Fprintf(w, "  Self weight:\t%.1f plf\n", sec.Weight)
	}
	w.Flush()
	fmt.Println()

	rd := b.RainDepth()
	printSection("DESIGN RAIN DEPTH")
	w = newTable()
	fmt.Fprintf(w, "  Static head (ds):\t%g in\n", rd.Static)
	fmt.Fprintf(w, "  Hydraulic head (dh):\t%g in\n", rd.Hydraulic)
	fmt.Fprintf(w, "  Wet length:\t%.3f ft\n", b.RainLoadLimit())
	w.Flush()
	fmt.Println()

	printSupports(b)
	printLoads(b)

	var supports []float64
	for _, s := range b.Supports() {
		supports = append(supports, s.Location)
	}
	var depth []float64
	if b.ValidResults() {
		h := b.PondedDepthHistory()
		depth = h[len(h)-1].Rain
	}
	fmt.Print(diagram.BeamSketch(b.Length(), supports, depth, 50))
	fmt.Println()

	status := "stale, run 'gopond analyze'"
	if b.ValidResults() {
		status = fmt.Sprintf("valid (%d iterations)", b.Stats().Iterations)
	}
	fmt.Printf("Results: %s\n", status)
	fmt.Println()
}

func printSupports(b *beam.Beam) {
	printSection("SUPPORTS")
	supports := b.Supports()
	if len(supports) == 0 {
		fmt.Println("  none")
		fmt.Println()
		return
	}
	w := newTable()
	fmt.Fprintln(w, "  #\tLocation (ft)\tTX (lb/ft)\tTY (lb/ft)\tRZ (lb-ft/rad)")
	for i, s := range supports {
		fmt.Fprintf(w, "  %d\t%g\t%s\t%s\t%s\n", i, s.Location,
			springLabel(s.TX, "fixed"), springLabel(s.TY, "fixed"), springLabel(s.RZ, "free"))
	}
	w.Flush()
	fmt.Println()
}

func printLoads(b *beam.Beam) {
	printDistLoads(b)
	printPointLoads(b)
}

func printDistLoads(b *beam.Beam) {
	printSection("LINE LOADS")
	loads := b.DistLoads()
	if len(loads) == 0 {
		fmt.Println("  none")
		fmt.Println()
		return
	}
	w := newTable()
	fmt.Fprintln(w, "  #\tCase\tStart (ft)\tStop (ft)\tStart (plf)\tStop (plf)")
	for i, d := range loads {
		fmt.Fprintf(w, "  %d\t%s\t%g\t%g\t%g\t%g\n", i, d.Case, d.Start, d.Stop, d.StartLoad, d.StopLoad)
	}
	w.Flush()
	fmt.Println()
}

func printPointLoads(b *beam.Beam) {
	printSection("POINT LOADS")
	loads := b.PointLoads()
	if len(loads) == 0 {
		fmt.Println("  none")
		fmt.Println()
		return
	}
	w := newTable()
	fmt.Fprintln(w, "  #\tCase\tLocation (ft)\tLoad (lb)")
	for i, p := range loads {
		fmt.Fprintf(w, "  %d\t%s\t%g\t%g\n", i, p.Case, p.Location, p.Load)
	}
	w.Flush()
	fmt.Println()
}
