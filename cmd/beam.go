package cmd

import (
	"fmt"
	"strconv"

	"github.com/alexiusacademia/gopond/internal/beam"
	"github.com/spf13/cobra"
)

var beamCmd = &cobra.Command{
	Use:   "beam",
	Short: "Edit the beam geometry and section",
	Long: `Edit the beam of a model file.

Subcommands:
  length   - Change the span (ft)
  slope    - Set the roof slope along the beam (in/ft)
  width    - Set the tributary width (ft)
  name     - Rename the beam
  section  - Assign a catalog or custom section

Every change invalidates the analysis results.`,
}

var beamLengthCmd = &cobra.Command{
	Use:   "length <ft>",
	Short: "Change the span and re-divide the stations",
	Long: `Change the span of the beam. The stations are re-divided over the
new span and a joist section is re-read from the catalog for it.

The span cannot be shortened past a support or load; delete or move
those first.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		length := parseFloatArg("length", args[0])
		b := edit("length", func(b *beam.Beam) error {
			if err := b.SetLength(length); err != nil {
				return err
			}
			b.Resegment()
			return b.RefreshSection()
		})
		fmt.Printf("Span set to %g ft (section %s, Iz = %.2f in⁴)\n", b.Length(), b.Section().Designator, b.Section().Iz)
	},
}

var beamSlopeCmd = &cobra.Command{
	Use:   "slope <in/ft>",
	Short: "Set the beam slope",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		slope := parseFloatArg("slope", args[0])
		b := edit("slope", func(b *beam.Beam) error { return b.AddOrUpdateBeamSlope(slope) })
		fmt.Printf("Slope set to %g in/ft\n", b.Slope())
	},
}

var beamWidthCmd = &cobra.Command{
	Use:   "width <ft>",
	Short: "Set the tributary width",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		width := parseFloatArg("width", args[0])
		b := edit("width", func(b *beam.Beam) error { return b.AddOrUpdateTributaryWidth(width) })
		fmt.Printf("Tributary width set to %g ft\n", b.TributaryWidth())
	},
}

var beamNameCmd = &cobra.Command{
	Use:   "name <name>",
	Short: "Rename the beam",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		b := edit("name", func(b *beam.Beam) error { return b.SetName(args[0]) })
		fmt.Printf("Beam renamed to %q\n", b.Name())
	},
}

func init() {
	rootCmd.AddCommand(beamCmd)
	beamCmd.AddCommand(beamLengthCmd, beamSlopeCmd, beamWidthCmd, beamNameCmd)
}

func parseFloatArg(name, s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		exitOnError(fmt.Errorf("%s: %q is not a number", name, s))
	}
	return v
}

func parseIndexArg(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		exitOnError(fmt.Errorf("index: %q is not a whole number", s))
	}
	return i
}
