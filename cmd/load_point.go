package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gopond/internal/beam"
	"github.com/spf13/cobra"
)

var (
	pointLocation  float64
	pointLoad      float64
	pointCase      string
	pointClearCase string
)

var loadPointCmd = &cobra.Command{
	Use:   "point",
	Short: "Add, delete, list or clear point loads",
}

var loadPointAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a point load",
	Long: `Add a concentrated load (lb, positive downward).

Examples:
  # 400 lb roof live load at midspan of a 20 ft beam
  gopond load point add --at 10 --load 400 --case Lr`,
	Run: func(cmd *cobra.Command, args []string) {
		c := parseLoadCase(pointCase)
		edit("point load add", func(b *beam.Beam) error {
			return b.AddPointLoad(pointLocation, pointLoad, c)
		})
		fmt.Printf("Point load %g lb (%s) added at %g ft\n", pointLoad, c, pointLocation)
	},
}

var loadPointDeleteCmd = &cobra.Command{
	Use:   "delete <index>",
	Short: "Delete a point load by index",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		i := parseIndexArg(args[0])
		var p beam.PointLoad
		edit("point load delete", func(b *beam.Beam) (err error) {
			p, err = b.DeletePointLoad(i)
			return err
		})
		fmt.Printf("Point load %d (%g lb %s at %g ft) deleted\n", i, p.Load, p.Case, p.Location)
	},
}

var loadPointListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the point loads",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		printPointLoads(openModel())
	},
}

var loadPointClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every point load of a case",
	Run: func(cmd *cobra.Command, args []string) {
		c := parseLoadCase(pointClearCase)
		edit("point load clear", func(b *beam.Beam) error { return b.ClearPointLoads(c) })
		fmt.Printf("Point loads of case %s cleared\n", c)
	},
}

func init() {
	loadCmd.AddCommand(loadPointCmd)
	loadPointCmd.AddCommand(loadPointAddCmd, loadPointDeleteCmd, loadPointListCmd, loadPointClearCmd)

	loadPointAddCmd.Flags().Float64Var(&pointLocation, "at", 0, "Location from the left end (ft) [required]")
	loadPointAddCmd.Flags().Float64Var(&pointLoad, "load", 0, "Load (lb), positive downward [required]")
	loadPointAddCmd.Flags().StringVarP(&pointCase, "case", "c", "D", "Load case: D, Lr, R or S")
	loadPointAddCmd.MarkFlagRequired("at")
	loadPointAddCmd.MarkFlagRequired("load")

	loadPointClearCmd.Flags().StringVarP(&pointClearCase, "case", "c", "", "Load case: D, Lr, R or S [required]")
	loadPointClearCmd.MarkFlagRequired("case")
}
