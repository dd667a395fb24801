package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/gopond/internal/beam"
	"github.com/alexiusacademia/gopond/internal/store"
	"github.com/spf13/cobra"
)

var (
	newLength float64
	newName   string
	newForce  bool
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new beam model file",
	Long: `Create a .pond model file holding a beam of the given span.

The beam starts with no supports or loads, zero slope, zero tributary
width and the W12X14 section.

Examples:
  # 30 ft roof beam
  gopond new --length 30 --name "Roof B1" -m roof.pond`,
	Run: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().Float64VarP(&newLength, "length", "l", 0, "Beam span (ft) [required]")
	newCmd.Flags().StringVarP(&newName, "name", "n", "", "Beam name")
	newCmd.Flags().BoolVarP(&newForce, "force", "f", false, "Overwrite an existing model file")

	newCmd.MarkFlagRequired("length")
}

func runNew(cmd *cobra.Command, args []string) {
	path := store.Path(modelFile)
	if _, err := os.Stat(path); err == nil {
		if !newForce {
			exitOnError(fmt.Errorf("%s already exists, use --force to replace it", path))
		}
		exitOnError(os.Remove(path))
	}

	b, err := beam.NewBeam(newLength, newName)
	exitOnError(err)
	saveModel(b, "new")

	fmt.Printf("Created %s: %q, %g ft span, section %s\n", path, b.Name(), b.Length(), b.Section().Designator)
}
