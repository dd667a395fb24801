package cmd

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gopond/internal/section"
	"github.com/spf13/cobra"
)

var (
	sectionsFamily string
	sectionsSpan   float64
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List the section catalog",
	Long: `List the designators of the section catalog with their properties.

Joist properties depend on the span; give --span (ft) to see them for
a span, otherwise each joist's span range is shown.

Examples:
  gopond sections --family W
  gopond sections --family K --span 24`,
	Run: runSections,
}

func init() {
	rootCmd.AddCommand(sectionsCmd)

	sectionsCmd.Flags().StringVarP(&sectionsFamily, "family", "f", "", "Family: W, K or KCS (default all)")
	sectionsCmd.Flags().Float64VarP(&sectionsSpan, "span", "s", 0, "Span for joist properties (ft)")
}

func runSections(cmd *cobra.Command, args []string) {
	families := section.Families
	if sectionsFamily != "" {
		families = nil
		for _, f := range section.Families {
			if strings.EqualFold(string(f), sectionsFamily) {
				families = append(families, f)
			}
		}
		if families == nil {
			exitOnError(fmt.Errorf("unknown section family %q, expected W, K or KCS", sectionsFamily))
		}
	}

	for _, f := range families {
		printHeader(fmt.Sprintf("SECTION CATALOG - %s", f))
		w := newTable()
		if f == section.WideFlange {
			fmt.Fprintln(w, "  Designator\tA (in²)\tIz (in⁴)\tIy (in⁴)\tJ (in⁴)\tWeight (plf)")
		} else {
			fmt.Fprintln(w, "  Designator\tSpan (ft)\tIz (in⁴)\tWeight (plf)")
		}

		for _, d := range section.Designators(f) {
			if f == section.WideFlange {
				p, err := section.Lookup(d, 0)
				exitOnError(err)
				fmt.Fprintf(w, "  %s\t%.2f\t%.1f\t%.2f\t%.3f\t%.0f\n", d, p.A, p.Iz, p.Iy, p.J, p.Weight)
				continue
			}

			lo, hi, _ := section.SpanRange(d)
			if sectionsSpan <= 0 {
				fmt.Fprintf(w, "  %s\t%g - %g\t\t\n", d, lo, hi)
				continue
			}
			p, err := section.Lookup(d, sectionsSpan)
			if err != nil {
				fmt.Fprintf(w, "  %s\t%g - %g\tout of range\t\n", d, lo, hi)
				continue
			}
			fmt.Fprintf(w, "  %s\t%g\t%.1f\t%.1f\n", d, sectionsSpan, p.Iz, p.Weight)
		}
		w.Flush()
		fmt.Println()
	}
}
