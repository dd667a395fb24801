package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gopond/internal/asce"
	"github.com/alexiusacademia/gopond/internal/beam"
	"github.com/alexiusacademia/gopond/internal/report"
	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Manage point and line loads",
	Long: `Manage the loads on the beam. Loads are positive downward.

Load cases:
  D   - dead
  Lr  - roof live
  R   - rain
  S   - snow

The ponding loads (PR, PS) are found by the analysis and cannot be
entered directly.

Subcommands:
  point   - concentrated loads (lb)
  line    - linearly varying line loads (plf)
  import  - read loads from an Excel workbook`,
}

var loadImportCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Import loads from an Excel workbook",
	Long: `Read loads from the "Loads" sheet of a workbook, or its first sheet.

The first row is a header. Each following row holds:
  Type | Case | Start (ft) | Stop (ft) | Start Load | Stop Load

Type is 'point' or 'line'. Point loads use Start as the location and
Start Load in lb. Line loads without a Stop Load are uniform. Every row
is checked before any load is added.

A workbook written by 'gopond export xlsx' can be imported as is.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var n int
		edit("load import", func(b *beam.Beam) (err error) {
			n, err = report.ImportLoads(b, args[0])
			return err
		})
		fmt.Printf("%d loads imported from %s\n", n, args[0])
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.AddCommand(loadImportCmd)
}

func parseLoadCase(s string) asce.Case {
	c, err := asce.ParseCase(s)
	exitOnError(err)
	return c
}
