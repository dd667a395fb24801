package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexiusacademia/gopond/internal/diagram"
	"github.com/alexiusacademia/gopond/internal/report"
	"github.com/spf13/cobra"
)

var (
	pdfProject   string
	pdfAuthor    string
	pdfNoProfile bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the model and results to Excel or PDF",
	Long: `Export the model and the results of the last ponding analysis.

Subcommands:
  xlsx  - Workbook with the inputs, ponding histories, reactions and
          envelopes (inputs only when the results are stale)
  pdf   - Calculation report (requires valid results)`,
}

var exportXLSXCmd = &cobra.Command{
	Use:   "xlsx <file.xlsx>",
	Short: "Export an Excel workbook",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		b := openModel()
		path := withExt(args[0], ".xlsx")
		exitOnError(report.ExportWorkbook(b, path))
		if !b.ValidResults() {
			logger.Warn("results are stale, only the inputs were exported", "file", path)
		}
		fmt.Printf("Workbook saved to %s\n", path)
	},
}

var exportPDFCmd = &cobra.Command{
	Use:   "pdf <file.pdf>",
	Short: "Export a PDF calculation report",
	Long: `Export a PDF calculation report of the last ponding analysis,
including a plot of the ponded rain profile unless --no-profile is set.

Examples:
  gopond export pdf report.pdf --project "Warehouse" --author "R. Engineer"`,
	Args: cobra.ExactArgs(1),
	Run:  runExportPDF,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportXLSXCmd, exportPDFCmd)

	exportPDFCmd.Flags().StringVar(&pdfProject, "project", "", "Project name")
	exportPDFCmd.Flags().StringVar(&pdfAuthor, "author", "", "Report author")
	exportPDFCmd.Flags().BoolVar(&pdfNoProfile, "no-profile", false, "Leave out the ponding profile plot")
}

func runExportPDF(cmd *cobra.Command, args []string) {
	b := openModel()
	requireResults(b)
	path := withExt(args[0], ".pdf")

	opts := report.PDFOptions{
		Title:   "Ponding Analysis - " + b.Name(),
		Project: pdfProject,
		Author:  pdfAuthor,
		Date:    time.Now(),
	}

	if !pdfNoProfile {
		dir, err := os.MkdirTemp("", "gopond")
		exitOnError(err)
		defer os.RemoveAll(dir)

		defls := b.DeflectionHistory()
		defl := defls[len(defls)-1].Rain
		elev := b.Elevations()
		surface := make([]float64, len(elev))
		for i := range elev {
			surface[i] = elev[i] - defl[i]
		}
		var supports []float64
		for _, s := range b.Supports() {
			supports = append(supports, s.Location)
		}

		img := filepath.Join(dir, "profile.png")
		err = diagram.ExportPondingProfile(diagram.PondingProfile{
			Title:    "Ponded rain profile",
			Stations: b.Stations(),
			Surface:  surface,
			Head:     b.RainDepth().Total(),
			Supports: supports,
		}, img, diagram.Size{Width: 7, Height: 3})
		exitOnError(err)
		opts.ProfileImage = img
	}

	exitOnError(report.ExportPDF(b, path, opts))
	fmt.Printf("Report saved to %s\n", path)
}

func withExt(path, ext string) string {
	if strings.EqualFold(filepath.Ext(path), ext) {
		return path
	}
	return path + ext
}
