package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gopond/internal/beam"
	"github.com/spf13/cobra"
)

var (
	supportLocation float64
	supportTX       float64
	supportTY       float64
	supportRZ       float64
)

var supportCmd = &cobra.Command{
	Use:   "support",
	Short: "Add, delete or list beam supports",
	Long: `Manage the point supports of the beam.

A zero translational spring (TX, TY) is a rigid restraint; a zero
rotational spring (RZ) leaves the rotation free (a pin).`,
}

var supportAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a support",
	Long: `Add a support at a location along the span.

Examples:
  # Pin at each end of a 30 ft beam
  gopond support add --at 0
  gopond support add --at 30

  # Support on a 5000 lb/ft vertical spring
  gopond support add --at 30 --ty 5000`,
	Run: func(cmd *cobra.Command, args []string) {
		edit("support add", func(b *beam.Beam) error {
			return b.AddSupport(supportLocation, supportTX, supportTY, supportRZ)
		})
		fmt.Printf("Support added at %g ft\n", supportLocation)
	},
}

var supportDeleteCmd = &cobra.Command{
	Use:   "delete <index>",
	Short: "Delete a support by index",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		i := parseIndexArg(args[0])
		var s beam.Support
		edit("support delete", func(b *beam.Beam) (err error) {
			s, err = b.DeleteSupport(i)
			return err
		})
		fmt.Printf("Support %d at %g ft deleted\n", i, s.Location)
	},
}

var supportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the supports",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		printSupports(openModel())
	},
}

func init() {
	rootCmd.AddCommand(supportCmd)
	supportCmd.AddCommand(supportAddCmd, supportDeleteCmd, supportListCmd)

	supportAddCmd.Flags().Float64Var(&supportLocation, "at", 0, "Location from the left end (ft) [required]")
	supportAddCmd.Flags().Float64Var(&supportTX, "tx", 0, "Horizontal spring (lb/ft), 0 = fixed")
	supportAddCmd.Flags().Float64Var(&supportTY, "ty", 0, "Vertical spring (lb/ft), 0 = fixed")
	supportAddCmd.Flags().Float64Var(&supportRZ, "rz", 0, "Rotational spring (lb-ft/rad), 0 = free")

	supportAddCmd.MarkFlagRequired("at")
}
