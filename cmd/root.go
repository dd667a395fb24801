package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexiusacademia/gopond/internal/config"
	"github.com/alexiusacademia/gopond/internal/logging"
	"github.com/alexiusacademia/gopond/internal/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	logFormat  string
	modelFile  string

	// Resolved before every command runs
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gopond",
	Short: "Roof Beam Ponding Analysis Tool",
	Long: `gopond - Go Roof Beam Ponding Analyzer

A CLI tool for checking single-span roof beams against rainwater
and snow-melt ponding based on ASCE 7 Chapter 8.

This tool helps structural engineers:
  - Model a roof beam with its supports, loads and section
  - Iterate between beam deflection and ponded water depth
  - Detect progressive ponding (non-convergence)
  - Report reactions, moment and deflection envelopes for
    ASD and LRFD load combinations

Models are kept in .pond files; every change is saved as a new revision.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, _, err = config.Resolve(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.Log.Level = logLevel
		}
		if cmd.Flags().Changed("log-format") {
			cfg.Log.Format = logFormat
		}
		logger, err = logging.New(os.Stderr, logging.Options{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
			Color:  cfg.Log.Color,
		})
		return err
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gopond v%-48s║\n", version.Version)
		fmt.Println("  ║   Go Roof Beam Ponding Analyzer                           ║")
		fmt.Println("  ║   Alexius S. Academia ©  2025                             ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for checking single-span roof beams against")
		fmt.Println("  rainwater and snow ponding based on ASCE 7 Chapter 8.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Iterative ponding analysis of rain and snow tracks")
		fmt.Println("    • W-shapes, K and KCS joists, or custom polygon sections")
		fmt.Println("    • ASD and LRFD reaction, moment and deflection envelopes")
		fmt.Println("    • Terminal and image plots, Excel and PDF reports")
		fmt.Println()
		fmt.Println("  Use 'gopond --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $GOPOND_CONFIG or <config dir>/gopond/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, success, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().StringVarP(&modelFile, "model", "m", "beam.pond", "Model file")
}
