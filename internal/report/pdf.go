package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/alexiusacademia/gopond/internal/asce"
	"github.com/alexiusacademia/gopond/internal/beam"
)

// PDFOptions describe the report header
type PDFOptions struct {
	Title   string
	Project string
	Author  string
	Date    time.Time

	// ProfileImage is an optional PNG of the ponded profile to embed
	ProfileImage string
}

const (
	lineHeight = 6.0
	pageWidth  = 180.0 // A4 less the default margins, mm
)

// WritePDF writes a calculation report of a converged analysis
func WritePDF(b *beam.Beam, w io.Writer, opts PDFOptions) error {
	if !b.ValidResults() {
		return beam.ErrNoResults
	}
	if opts.Title == "" {
		opts.Title = "Ponding Analysis"
	}
	if opts.Date.IsZero() {
		opts.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(opts.Title, true)
	pdf.SetAuthor(opts.Author, true)
	pdf.SetCreationDate(opts.Date)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("%s - page %d of {nb}", tr(b.Name()), pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(opts.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	if opts.Project != "" {
		pdf.Cell(0, lineHeight, tr("Project: "+opts.Project))
		pdf.Ln(lineHeight)
	}
	if opts.Author != "" {
		pdf.Cell(0, lineHeight, tr("Author: "+opts.Author))
		pdf.Ln(lineHeight)
	}
	pdf.Cell(0, lineHeight, fmt.Sprintf("Date: %s", opts.Date.Format("2006-01-02")))
	pdf.Ln(10)

	sec := b.Section()
	rd := b.RainDepth()
	heading(pdf, "Beam")
	table(pdf, tr, []float64{60, 60, 60}, nil, [][]string{
		{"Name", b.Name(), ""},
		{"Span", fmt.Sprintf("%.2f", b.Length()), "ft"},
		{"Slope", fmt.Sprintf("%.4f", b.Slope()), "in/ft"},
		{"Tributary width", fmt.Sprintf("%.2f", b.TributaryWidth()), "ft"},
		{"Section", sec.Designator, fmt.Sprintf("Iz = %.1f in^4", sec.Iz)},
		{"Static / hydraulic head", fmt.Sprintf("%.3f / %.3f", rd.Static, rd.Hydraulic), "in"},
	})

	heading(pdf, "Supports")
	var rows [][]string
	for i, s := range b.Supports() {
		rows = append(rows, []string{fmt.Sprint(i), fmt.Sprintf("%.2f", s.Location),
			spring(s.TX), spring(s.TY), rotSpring(s.RZ)})
	}
	table(pdf, tr, []float64{15, 35, 40, 40, 50}, []string{"#", "Location (ft)", "TX (lb/ft)", "TY (lb/ft)", "RZ (lb-ft/rad)"}, rows)

	heading(pdf, "Loads")
	rows = nil
	for _, d := range b.DistLoads() {
		rows = append(rows, []string{"line", string(d.Case), fmt.Sprintf("%.2f - %.2f", d.Start, d.Stop),
			fmt.Sprintf("%.1f - %.1f plf", d.StartLoad, d.StopLoad)})
	}
	for _, p := range b.PointLoads() {
		rows = append(rows, []string{"point", string(p.Case), fmt.Sprintf("%.2f", p.Location), fmt.Sprintf("%.1f lb", p.Load)})
	}
	table(pdf, tr, []float64{30, 25, 55, 70}, []string{"Type", "Case", "Position (ft)", "Magnitude"}, rows)

	stats := b.Stats()
	final := stats.PondedArea[len(stats.PondedArea)-1]
	heading(pdf, "Ponding")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, lineHeight, fmt.Sprintf(
		"Converged after %d iterations. Ponded area: rain %.4f in-ft, snow %.4f in-ft (initial %.4f in-ft).",
		stats.Iterations, final.Rain, final.Snow, stats.PondedArea[0].Rain), "", "L", false)
	pdf.Ln(2)
	if opts.ProfileImage != "" {
		if _, err := os.Stat(opts.ProfileImage); err != nil {
			return fmt.Errorf("profile image: %w", err)
		}
		pdf.ImageOptions(opts.ProfileImage, pdf.GetX(), pdf.GetY(), pageWidth, 0, true,
			gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")
		pdf.Ln(4)
	}

	env := b.Envelopes()
	nodes := sortedNodes(b, env)
	for _, f := range asce.Families {
		heading(pdf, fmt.Sprintf("Reactions, %s (kip)", strings.ToUpper(string(f))))
		widths := []float64{50}
		header := []string{"Combination"}
		for _, n := range nodes {
			widths = append(widths, 130/float64(max(len(nodes), 1)))
			header = append(header, n)
		}
		rows = nil
		for _, c := range asce.Combinations(f) {
			row := []string{c.Name}
			for _, n := range nodes {
				row = append(row, fmt.Sprintf("%.3f", env.Reactions[n][c.Name]))
			}
			rows = append(rows, row)
		}
		table(pdf, tr, widths, header, rows)
	}

	heading(pdf, "Moment and deflection envelopes")
	rows = nil
	for _, g := range beam.Groups {
		for _, name := range comboNames(g) {
			rows = append(rows, []string{name,
				fmt.Sprintf("%.2f", env.MaxMoment[g][name]), fmt.Sprintf("%.2f", env.MinMoment[g][name]),
				fmt.Sprintf("%.4f", env.MaxDeflection[g][name]), fmt.Sprintf("%.4f", env.MinDeflection[g][name])})
		}
	}
	table(pdf, tr, []float64{50, 32, 32, 33, 33},
		[]string{"Combination", "Max M (kip-in)", "Min M (kip-in)", "Max defl (in)", "Min defl (in)"}, rows)

	if pdf.Err() {
		return fmt.Errorf("building report: %w", pdf.Error())
	}
	return pdf.Output(w)
}

// ExportPDF writes the report to path
func ExportPDF(b *beam.Beam, path string, opts PDFOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePDF(b, f, opts); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func heading(pdf *gofpdf.Fpdf, text string) {
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, text)
	pdf.Ln(8)
}

func table(pdf *gofpdf.Fpdf, tr func(string) string, widths []float64, header []string, rows [][]string) {
	if header != nil {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(220, 230, 241)
		for i, h := range header {
			pdf.CellFormat(widths[i], lineHeight, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.SetFont("Helvetica", "", 9)
	if len(rows) == 0 {
		pdf.CellFormat(sum(widths), lineHeight, "none", "1", 1, "C", false, 0, "")
		return
	}
	for _, row := range rows {
		for i, c := range row {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], lineHeight, tr(c), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func sum(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s
}

func spring(k float64) string {
	if k == 0 {
		return "fixed"
	}
	return fmt.Sprintf("%.0f", k)
}

func rotSpring(k float64) string {
	if k == 0 {
		return "free"
	}
	return fmt.Sprintf("%.0f", k)
}
