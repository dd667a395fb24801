// Package report exports beam models and their ponding results as Excel
// workbooks and PDF calculation reports, and imports loads from workbooks.
package report

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gopond/internal/asce"
	"github.com/alexiusacademia/gopond/internal/beam"
)

// Sheet names of an exported workbook
const (
	SheetModel       = "Model"
	SheetSupports    = "Supports"
	SheetLoads       = "Loads"
	SheetPonding     = "Ponding"
	SheetConvergence = "Convergence"
	SheetReactions   = "Reactions"
	SheetEnvelopes   = "Envelopes"
)

// LoadHeader is the header row of the Loads sheet, also expected by
// ImportLoads
var LoadHeader = []string{"Type", "Case", "Start (ft)", "Stop (ft)", "Start Load", "Stop Load"}

// cell converts non-finite numbers to text, which xlsx cannot store
func cell(v float64) any {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "nan"
	}
	return v
}

type sheetWriter struct {
	f      *excelize.File
	bold   int
	err    error
	sheets []string
}

func (w *sheetWriter) sheet(name string, header []string) {
	if w.err != nil {
		return
	}
	if len(w.sheets) == 0 {
		w.err = w.f.SetSheetName(w.f.GetSheetName(0), name)
	} else {
		_, w.err = w.f.NewSheet(name)
	}
	w.sheets = append(w.sheets, name)
	if header != nil {
		row := make([]any, len(header))
		for i, h := range header {
			row[i] = h
		}
		w.row(name, 1, row)
		if w.err == nil {
			w.err = w.f.SetRowStyle(name, 1, 1, w.bold)
		}
	}
}

func (w *sheetWriter) row(sheet string, r int, values []any) {
	if w.err != nil {
		return
	}
	addr, err := excelize.CoordinatesToCellName(1, r)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(sheet, addr, &values)
}

// ExportWorkbook writes the model inputs and, when the results are valid,
// the ponding histories, reactions and envelopes to an xlsx file
func ExportWorkbook(b *beam.Beam, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	w := &sheetWriter{f: f, bold: bold}

	sec := b.Section()
	rd := b.RainDepth()
	w.sheet(SheetModel, []string{"Property", "Value", "Unit"})
	model := [][]any{
		{"Name", b.Name(), ""},
		{"Length", b.Length(), "ft"},
		{"Slope", b.Slope(), "in/ft"},
		{"Tributary width", b.TributaryWidth(), "ft"},
		{"Section", sec.Designator, string(sec.Family)},
		{"A", sec.A, "in^2"},
		{"Iz", sec.Iz, "in^4"},
		{"Iy", sec.Iy, "in^4"},
		{"J", sec.J, "in^4"},
		{"Static head", rd.Static, "in"},
		{"Hydraulic head", rd.Hydraulic, "in"},
		{"Results valid", b.ValidResults(), ""},
	}
	for i, r := range model {
		w.row(SheetModel, i+2, r)
	}

	w.sheet(SheetSupports, []string{"#", "Location (ft)", "TX (lb/ft)", "TY (lb/ft)", "RZ (lb-ft/rad)"})
	for i, s := range b.Supports() {
		w.row(SheetSupports, i+2, []any{i, s.Location, s.TX, s.TY, s.RZ})
	}

	w.sheet(SheetLoads, LoadHeader)
	r := 2
	for _, d := range b.DistLoads() {
		w.row(SheetLoads, r, []any{"line", string(d.Case), d.Start, d.Stop, d.StartLoad, d.StopLoad})
		r++
	}
	for _, p := range b.PointLoads() {
		w.row(SheetLoads, r, []any{"point", string(p.Case), p.Location, "", p.Load, ""})
		r++
	}

	if b.ValidResults() {
		writeResults(w, b)
	}
	if w.err != nil {
		return fmt.Errorf("writing workbook: %w", w.err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writeResults(w *sheetWriter, b *beam.Beam) {
	stations := b.Stations()
	elev := b.Elevations()
	depths := b.PondedDepthHistory()
	defls := b.DeflectionHistory()
	depth := depths[len(depths)-1]
	defl := defls[len(defls)-1]

	w.sheet(SheetPonding, []string{"Station (ft)", "Elevation (in)",
		"Rain depth (in)", "Snow depth (in)", "Rain deflection (in)", "Snow deflection (in)"})
	for i, x := range stations {
		w.row(SheetPonding, i+2, []any{x, elev[i], depth.Rain[i], depth.Snow[i], defl.Rain[i], defl.Snow[i]})
	}

	stats := b.Stats()
	w.sheet(SheetConvergence, []string{"Iteration", "Rain area (in-ft)", "Snow area (in-ft)",
		"Rain rel. error", "Snow rel. error"})
	for i := range stats.PondedArea {
		a, e := stats.PondedArea[i], stats.RelErr[i]
		w.row(SheetConvergence, i+2, []any{i, cell(a.Rain), cell(a.Snow), cell(e.Rain), cell(e.Snow)})
	}

	env := b.Envelopes()
	nodes := b.SupportNodes()
	header := []string{"Group", "Combination"}
	for _, n := range nodes {
		header = append(header, fmt.Sprintf("%s @ %g ft (kip)", n.Name, n.Location))
	}
	w.sheet(SheetReactions, header)
	w.sheet(SheetEnvelopes, []string{"Group", "Combination", "Max moment (kip-in)", "Min moment (kip-in)",
		"Max deflection (in)", "Min deflection (in)"})

	r := 2
	for _, g := range beam.Groups {
		for _, name := range comboNames(g) {
			row := []any{string(g), name}
			for _, n := range nodes {
				row = append(row, env.Reactions[n.Name][name])
			}
			w.row(SheetReactions, r, row)
			w.row(SheetEnvelopes, r, []any{string(g), name,
				env.MaxMoment[g][name], env.MinMoment[g][name],
				env.MaxDeflection[g][name], env.MinDeflection[g][name]})
			r++
		}
	}
}

// comboNames lists the combinations of a group in table order
func comboNames(g beam.Group) []string {
	var combos []asce.Combination
	if g == beam.GroupCases {
		combos = asce.Cases()
	} else {
		combos = asce.Combinations(asce.Family(g))
	}
	out := make([]string, len(combos))
	for i, c := range combos {
		out[i] = c.Name
	}
	return out
}

type loadRow struct {
	row      int
	kind     string
	lc       asce.Case
	start    float64
	stop     float64
	load     float64
	stopLoad float64
}

// ImportLoads reads line and point loads from the Loads sheet of a workbook,
// or its first sheet, and adds them to the beam. Rows are validated on a copy
// first, so either every row is added or none is.
func ImportLoads(b *beam.Beam, path string) (int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := SheetLoads
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return 0, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return 0, fmt.Errorf("sheet %s has no load rows", sheet)
	}

	var loads []loadRow
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		lr, err := parseLoadRow(rows[i])
		if err != nil {
			return 0, fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
		lr.row = i + 1
		loads = append(loads, lr)
	}

	trial, err := beam.FromSnapshot(b.Snapshot())
	if err != nil {
		return 0, err
	}
	for _, lr := range loads {
		if err := addLoad(trial, lr); err != nil {
			return 0, fmt.Errorf("%s row %d: %w", sheet, lr.row, err)
		}
	}
	for _, lr := range loads {
		if err := addLoad(b, lr); err != nil {
			return 0, fmt.Errorf("%s row %d: %w", sheet, lr.row, err)
		}
	}
	return len(loads), nil
}

func addLoad(b *beam.Beam, lr loadRow) error {
	if lr.kind == "point" {
		return b.AddPointLoad(lr.start, lr.load, lr.lc)
	}
	return b.AddDistLoad(lr.start, lr.stop, lr.load, lr.stopLoad, lr.lc)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseLoadRow(row []string) (loadRow, error) {
	col := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	num := func(i int, name string) (float64, error) {
		v, err := strconv.ParseFloat(col(i), 64)
		if err != nil {
			return 0, fmt.Errorf("%s: %q is not a number", name, col(i))
		}
		return v, nil
	}

	var lr loadRow
	lr.kind = strings.ToLower(col(0))
	c, err := asce.ParseCase(col(1))
	if err != nil {
		return lr, err
	}
	lr.lc = c

	if lr.start, err = num(2, "start"); err != nil {
		return lr, err
	}
	if lr.load, err = num(4, "load"); err != nil {
		return lr, err
	}

	switch lr.kind {
	case "point":
		return lr, nil
	case "line", "dist", "distributed":
		lr.kind = "line"
		if lr.stop, err = num(3, "stop"); err != nil {
			return lr, err
		}
		lr.stopLoad = lr.load
		if col(5) != "" {
			if lr.stopLoad, err = num(5, "stop load"); err != nil {
				return lr, err
			}
		}
		return lr, nil
	}
	return lr, fmt.Errorf("type must be 'point' or 'line', got %q", col(0))
}

// sortedNodes returns reaction node names in support order, then any others
func sortedNodes(b *beam.Beam, env beam.Envelopes) []string {
	var out []string
	seen := make(map[string]bool)
	for _, n := range b.SupportNodes() {
		out = append(out, n.Name)
		seen[n.Name] = true
	}
	var rest []string
	for n := range env.Reactions {
		if !seen[n] {
			rest = append(rest, n)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}
