package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/gopond/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the settings file",
	Long: `gopond reads its settings from the file given with --config, else
from $GOPOND_CONFIG, else from <user config dir>/gopond/config.yaml
when it exists. Missing keys keep their default values.

Subcommands:
  show  - Print the settings in effect
  init  - Write the default settings file`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the settings in effect",
	Run: func(cmd *cobra.Command, args []string) {
		_, path, err := config.Resolve(configPath)
		exitOnError(err)
		if path == "" {
			path = "(defaults)"
		}
		data, err := yaml.Marshal(cfg)
		exitOnError(err)
		fmt.Printf("# %s\n%s", path, data)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default settings file",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var path string
		if len(args) == 1 {
			path = args[0]
		} else {
			p, err := config.DefaultPath()
			exitOnError(err)
			path = p
		}
		if _, err := os.Stat(path); err == nil && !configForce {
			exitOnError(fmt.Errorf("%s already exists, use --force to overwrite it", path))
		}
		exitOnError(config.WriteDefault(path))
		fmt.Printf("Default settings written to %s\n", path)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configInitCmd)

	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "Overwrite an existing file")
}
