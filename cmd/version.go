package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gopond/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gopond",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
		fmt.Println("Roof Beam Ponding Analysis Tool")
		fmt.Println("Based on ASCE 7 Chapter 8 (Rain Loads)")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
