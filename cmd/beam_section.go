package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gopond/internal/beam"
	"github.com/alexiusacademia/gopond/internal/section"
	"github.com/spf13/cobra"
)

var sectionFile string

var beamSectionCmd = &cobra.Command{
	Use:   "section [designator]",
	Short: "Assign the beam section",
	Long: `Assign a catalog section by designator, or a custom polygon section
from a YAML or JSON file.

Designators are matched without regard to case or spaces. Joist
properties depend on the span and are checked against the joist's
span range.

Examples:
  gopond beam section W12X26
  gopond beam section 14K1
  gopond beam section --file tee.yaml

Example shape file:
  name: WT-like
  vertices:
    - {x: -3, y: 0}
    - {x: 3, y: 0}
    - {x: 3, y: 0.5}
    - {x: 0.2, y: 0.5}
    - {x: 0.2, y: 8}
    - {x: -0.2, y: 8}
    - {x: -0.2, y: 0.5}
    - {x: -3, y: 0.5}

Use 'gopond sections' to list the catalog.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runBeamSection,
}

func init() {
	beamCmd.AddCommand(beamSectionCmd)

	beamSectionCmd.Flags().StringVarP(&sectionFile, "file", "f", "", "Shape definition file (YAML or JSON)")
}

func runBeamSection(cmd *cobra.Command, args []string) {
	if (len(args) == 1) == (sectionFile != "") {
		exitOnError(fmt.Errorf("give either a designator or --file"))
	}

	var assign func(b *beam.Beam) error
	if sectionFile != "" {
		shape, err := section.LoadShapeFile(sectionFile)
		exitOnError(err)
		assign = func(b *beam.Beam) error { return b.SetCustomSection(*shape) }
	} else {
		assign = func(b *beam.Beam) error { return b.AddOrUpdateSection(args[0]) }
	}

	b := edit("section", assign)
	sec := b.Section()

	fmt.Println()
	printSection("SECTION " + sec.Designator)
	w := newTable()
	fmt.Fprintf(w, "  Family:\t%s\n", sec.Family)
	fmt.Fprintf(w, "  A:\t%.3f in²\n", sec.A)
	fmt.Fprintf(w, "  Iz:\t%.2f in⁴\n", sec.Iz)
	fmt.Fprintf(w, "  Iy:\t%.2f in⁴\n", sec.Iy)
	fmt.Fprintf(w, "  J:\t%.4f in⁴\n", sec.J)
	w.Flush()
	fmt.Println()
}
