package report

import (
	"bytes"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gopond/internal/asce"
	"github.com/alexiusacademia/gopond/internal/beam"
	"github.com/alexiusacademia/gopond/internal/diagram"
)

func analyzedBeam(t *testing.T) *beam.Beam {
	t.Helper()
	b, err := beam.NewBeam(20, "Roof B1")
	require.NoError(t, err)
	require.NoError(t, b.AddSupport(0, 0, 0, 0))
	require.NoError(t, b.AddSupport(20, 0, 0, 0))
	require.NoError(t, b.AddOrUpdateBeamSlope(0.25))
	require.NoError(t, b.AddDistLoad(0, 20, 100, 100, asce.Dead))
	require.NoError(t, b.AddPointLoad(10, 400, asce.RoofLive))
	require.NoError(t, b.AnalyzePonding())
	return b
}

func TestExportWorkbook(t *testing.T) {
	b := analyzedBeam(t)
	path := filepath.Join(t.TempDir(), "roof.xlsx")
	require.NoError(t, ExportWorkbook(b, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetModel, SheetSupports, SheetLoads, SheetPonding,
		SheetConvergence, SheetReactions, SheetEnvelopes}, f.GetSheetList())

	name, err := f.GetCellValue(SheetModel, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Roof B1", name)

	ponding, err := f.GetRows(SheetPonding)
	require.NoError(t, err)
	assert.Len(t, ponding, beam.NumStations+1)

	// the first iteration's relative error is 0/0
	relErr, err := f.GetCellValue(SheetConvergence, "D3")
	require.NoError(t, err)
	assert.Equal(t, "inf", relErr)

	reactions, err := f.GetRows(SheetReactions)
	require.NoError(t, err)
	require.Len(t, reactions, len(asce.AllCombinations())+1)
	assert.Equal(t, "cases", reactions[1][0])
	assert.Equal(t, "1.0D", reactions[1][1])
	r, err := strconv.ParseFloat(reactions[1][2], 64)
	require.NoError(t, err)
	assert.InEpsilon(t, 1.0, r, 1e-9)
}

func TestExportWorkbookWithoutResults(t *testing.T) {
	b, err := beam.NewBeam(12, "")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "inputs.xlsx")
	require.NoError(t, ExportWorkbook(b, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SheetModel, SheetSupports, SheetLoads}, f.GetSheetList())
}

func TestImportLoadsRoundTrip(t *testing.T) {
	src := analyzedBeam(t)
	path := filepath.Join(t.TempDir(), "roof.xlsx")
	require.NoError(t, ExportWorkbook(src, path))

	dst, err := beam.NewBeam(20, "copy")
	require.NoError(t, err)
	n, err := ImportLoads(dst, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, src.DistLoads(), dst.DistLoads())
	assert.Equal(t, src.PointLoads(), dst.PointLoads())
}

func writeLoadSheet(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, r := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", addr, &r))
	}
	path := filepath.Join(t.TempDir(), "loads.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportLoads(t *testing.T) {
	header := []any{"Type", "Case", "Start", "Stop", "Load", "Stop Load"}

	t.Run("uniform line load and point load", func(t *testing.T) {
		path := writeLoadSheet(t, [][]any{
			header,
			{"line", "S", 0, 20, 30},
			{},
			{"Point", "Lr", 5, "", 250},
		})
		b, err := beam.NewBeam(20, "")
		require.NoError(t, err)

		n, err := ImportLoads(b, path)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		require.Len(t, b.DistLoads(), 1)
		assert.Equal(t, beam.DistLoad{Start: 0, Stop: 20, StartLoad: 30, StopLoad: 30, Case: asce.Snow}, b.DistLoads()[0])
		assert.Equal(t, []beam.PointLoad{{Location: 5, Load: 250, Case: asce.RoofLive}}, b.PointLoads())
	})

	t.Run("bad row adds nothing", func(t *testing.T) {
		path := writeLoadSheet(t, [][]any{
			header,
			{"line", "D", 0, 10, 15, 15},
			{"point", "D", 35, "", 100},
		})
		b, err := beam.NewBeam(20, "")
		require.NoError(t, err)

		_, err = ImportLoads(b, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "row 3")
		assert.Empty(t, b.DistLoads())
		assert.Empty(t, b.PointLoads())
	})

	t.Run("unknown case", func(t *testing.T) {
		path := writeLoadSheet(t, [][]any{header, {"line", "W", 0, 10, 15}})
		b, err := beam.NewBeam(20, "")
		require.NoError(t, err)
		_, err = ImportLoads(b, path)
		assert.ErrorContains(t, err, "row 2")
	})

	t.Run("unknown type", func(t *testing.T) {
		path := writeLoadSheet(t, [][]any{header, {"moment", "D", 0, 10, 15}})
		b, err := beam.NewBeam(20, "")
		require.NoError(t, err)
		_, err = ImportLoads(b, path)
		assert.ErrorContains(t, err, "type")
	})
}

func TestWritePDF(t *testing.T) {
	b := analyzedBeam(t)

	dir := t.TempDir()
	img := filepath.Join(dir, "profile.png")
	st := b.Stations()
	surface := make([]float64, len(st))
	for i, e := range b.Elevations() {
		surface[i] = e - b.DeflectionHistory()[b.Stats().Iterations].Rain[i]
	}
	require.NoError(t, diagram.ExportPondingProfile(diagram.PondingProfile{
		Stations: st, Surface: surface, Head: 0,
	}, img, diagram.Size{Width: 6, Height: 3}))

	var buf bytes.Buffer
	err := WritePDF(b, &buf, PDFOptions{
		Project:      "Warehouse",
		Author:       "R. Engineer",
		Date:         time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		ProfileImage: img,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	path := filepath.Join(dir, "report.pdf")
	require.NoError(t, ExportPDF(b, path, PDFOptions{}))
	assert.FileExists(t, path)

	require.NoError(t, b.AddOrUpdateTributaryWidth(5))
	assert.ErrorIs(t, WritePDF(b, &buf, PDFOptions{}), beam.ErrNoResults)
	assert.ErrorIs(t, ExportPDF(b, filepath.Join(dir, "stale.pdf"), PDFOptions{}), beam.ErrNoResults)
	assert.NoFileExists(t, filepath.Join(dir, "stale.pdf"))
}
