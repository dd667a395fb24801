package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gopond/internal/beam"
	"github.com/spf13/cobra"
)

var (
	lineStart     float64
	lineStop      float64
	lineLoad      float64
	lineStopLoad  float64
	lineFullSpan  bool
	lineCase      string
	lineClearCase string
)

var loadLineCmd = &cobra.Command{
	Use:   "line",
	Short: "Add, delete, list or clear line loads",
}

var loadLineAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a line load",
	Long: `Add a line load (plf, positive downward) varying linearly from
--load at --start to --stop-load at --stop. Without --stop-load the
load is uniform.

Examples:
  # 100 plf dead load over the whole span
  gopond load line add --full --load 100 --case D

  # Snow drift from 30 plf to 0 over the first 8 ft
  gopond load line add --start 0 --stop 8 --load 30 --stop-load 0 --case S`,
	Run: runLoadLineAdd,
}

var loadLineDeleteCmd = &cobra.Command{
	Use:   "delete <index>",
	Short: "Delete a line load by index",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		i := parseIndexArg(args[0])
		var d beam.DistLoad
		edit("line load delete", func(b *beam.Beam) (err error) {
			d, err = b.DeleteDistLoad(i)
			return err
		})
		fmt.Printf("Line load %d (%s, %g to %g ft) deleted\n", i, d.Case, d.Start, d.Stop)
	},
}

var loadLineListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the line loads",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		printDistLoads(openModel())
	},
}

var loadLineClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every line load of a case",
	Run: func(cmd *cobra.Command, args []string) {
		c := parseLoadCase(lineClearCase)
		edit("line load clear", func(b *beam.Beam) error { return b.ClearDistLoads(c) })
		fmt.Printf("Line loads of case %s cleared\n", c)
	},
}

func init() {
	loadCmd.AddCommand(loadLineCmd)
	loadLineCmd.AddCommand(loadLineAddCmd, loadLineDeleteCmd, loadLineListCmd, loadLineClearCmd)

	loadLineAddCmd.Flags().Float64Var(&lineStart, "start", 0, "Start location (ft)")
	loadLineAddCmd.Flags().Float64Var(&lineStop, "stop", 0, "Stop location (ft)")
	loadLineAddCmd.Flags().BoolVar(&lineFullSpan, "full", false, "Apply over the whole span")
	loadLineAddCmd.Flags().Float64Var(&lineLoad, "load", 0, "Load at the start (plf) [required]")
	loadLineAddCmd.Flags().Float64Var(&lineStopLoad, "stop-load", 0, "Load at the stop (plf), defaults to --load")
	loadLineAddCmd.Flags().StringVarP(&lineCase, "case", "c", "D", "Load case: D, Lr, R or S")
	loadLineAddCmd.MarkFlagRequired("load")
	loadLineAddCmd.MarkFlagsMutuallyExclusive("full", "start")
	loadLineAddCmd.MarkFlagsMutuallyExclusive("full", "stop")

	loadLineClearCmd.Flags().StringVarP(&lineClearCase, "case", "c", "", "Load case: D, Lr, R or S [required]")
	loadLineClearCmd.MarkFlagRequired("case")
}

func runLoadLineAdd(cmd *cobra.Command, args []string) {
	c := parseLoadCase(lineCase)
	if !cmd.Flags().Changed("stop-load") {
		lineStopLoad = lineLoad
	}

	b := edit("line load add", func(b *beam.Beam) error {
		start, stop := lineStart, lineStop
		if lineFullSpan {
			start, stop = 0, b.Length()
		}
		return b.AddDistLoad(start, stop, lineLoad, lineStopLoad, c)
	})
	d := b.DistLoads()[len(b.DistLoads())-1]
	fmt.Printf("Line load %g to %g plf (%s) added from %g to %g ft\n", d.StartLoad, d.StopLoad, d.Case, d.Start, d.Stop)
}
