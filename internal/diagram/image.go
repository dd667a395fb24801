package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Size of an exported image, in inches
type Size struct {
	Width  float64
	Height float64
}

func (s Size) lengths() (vg.Length, vg.Length) {
	w, h := s.Width, s.Height
	if w <= 0 {
		w = 8
	}
	if h <= 0 {
		h = 4
	}
	return vg.Length(w) * vg.Inch, vg.Length(h) * vg.Inch
}

var (
	waterFill   = color.RGBA{R: 100, G: 149, B: 237, A: 150}
	waterEdge   = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	beamColor   = color.Black
	supportFill = color.RGBA{R: 139, G: 69, B: 19, A: 255}
	lineColors  = []color.Color{
		color.RGBA{R: 0, G: 90, B: 200, A: 255},
		color.RGBA{R: 200, G: 30, B: 30, A: 255},
		color.RGBA{R: 0, G: 130, B: 0, A: 255},
		color.RGBA{R: 230, G: 140, B: 0, A: 255},
		color.RGBA{R: 120, G: 0, B: 160, A: 255},
		color.RGBA{R: 0, G: 140, B: 140, A: 255},
	}
)

// PondingProfile describes the deflected beam and the water it holds
type PondingProfile struct {
	Title    string
	Stations []float64 // ft
	Surface  []float64 // top of beam at each station, in, elevation minus deflection
	Head     float64   // water level above the low end, in
	Supports []float64 // ft
}

// ExportPondingProfile draws the deflected beam with the ponded water region
func ExportPondingProfile(pp PondingProfile, filename string, size Size) error {
	n := len(pp.Stations)
	if n < 2 || len(pp.Surface) != n {
		return fmt.Errorf("need matching stations and surface values, got %d and %d", n, len(pp.Surface))
	}

	p := plot.New()
	p.Title.Text = pp.Title
	if p.Title.Text == "" {
		p.Title.Text = "Ponded Water"
	}
	p.X.Label.Text = "Position (ft)"
	p.Y.Label.Text = "Elevation (in)"
	p.Add(plotter.NewGrid())

	// Water: the head line forward, then the wetted beam surface back
	water := make(plotter.XYs, 0, 2*n)
	for i := 0; i < n; i++ {
		water = append(water, plotter.XY{X: pp.Stations[i], Y: pp.Head})
	}
	for i := n - 1; i >= 0; i-- {
		water = append(water, plotter.XY{X: pp.Stations[i], Y: min(pp.Surface[i], pp.Head)})
	}
	poly, err := plotter.NewPolygon(water)
	if err != nil {
		return err
	}
	poly.Color = waterFill
	poly.LineStyle.Color = waterEdge
	poly.LineStyle.Width = vg.Points(0.5)
	p.Add(poly)

	beam := make(plotter.XYs, n)
	for i := range beam {
		beam[i] = plotter.XY{X: pp.Stations[i], Y: pp.Surface[i]}
	}
	beamLine, err := plotter.NewLine(beam)
	if err != nil {
		return err
	}
	beamLine.LineStyle.Width = vg.Points(2)
	beamLine.LineStyle.Color = beamColor
	p.Add(beamLine)
	p.Legend.Add("beam", beamLine)
	p.Legend.Add("water", poly)

	if len(pp.Supports) > 0 {
		pts := make(plotter.XYs, len(pp.Supports))
		for i, s := range pp.Supports {
			pts[i] = plotter.XY{X: s, Y: surfaceAt(pp.Stations, pp.Surface, s)}
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		sc.GlyphStyle.Shape = draw.PyramidGlyph{}
		sc.GlyphStyle.Color = supportFill
		sc.GlyphStyle.Radius = vg.Points(6)
		p.Add(sc)
	}

	return save(p, filename, size)
}

// surfaceAt interpolates the surface at x
func surfaceAt(stations, surface []float64, x float64) float64 {
	for i := 1; i < len(stations); i++ {
		if x <= stations[i] {
			t := (x - stations[i-1]) / (stations[i] - stations[i-1])
			return surface[i-1] + t*(surface[i]-surface[i-1])
		}
	}
	return surface[len(surface)-1]
}

// LineChart is a set of curves over the span
type LineChart struct {
	Title    string
	XLabel   string
	YLabel   string
	Stations []float64
	Series   []Series
}

// ExportLineChart draws every series against the stations
func ExportLineChart(lc LineChart, filename string, size Size) error {
	p := plot.New()
	p.Title.Text = lc.Title
	p.X.Label.Text = lc.XLabel
	p.Y.Label.Text = lc.YLabel
	p.Add(plotter.NewGrid())

	drawn := 0
	for _, s := range lc.Series {
		if len(s.Values) != len(lc.Stations) {
			return fmt.Errorf("series %q has %d values for %d stations", s.Name, len(s.Values), len(lc.Stations))
		}
		xys := make(plotter.XYs, len(s.Values))
		for i, v := range s.Values {
			xys[i] = plotter.XY{X: lc.Stations[i], Y: v}
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("series %q: %w", s.Name, err)
		}
		l.LineStyle.Width = vg.Points(1.5)
		l.LineStyle.Color = lineColors[drawn%len(lineColors)]
		if drawn >= len(lineColors) {
			l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		}
		p.Add(l)
		p.Legend.Add(s.Name, l)
		drawn++
	}
	if drawn == 0 {
		return fmt.Errorf("nothing to plot")
	}

	// zero reference
	zero, err := plotter.NewLine(plotter.XYs{
		{X: lc.Stations[0], Y: 0},
		{X: lc.Stations[len(lc.Stations)-1], Y: 0},
	})
	if err != nil {
		return err
	}
	zero.LineStyle.Color = color.Gray{Y: 128}
	zero.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(zero)
	p.Legend.Top = true

	return save(p, filename, size)
}

// save writes the plot in the format given by the extension; a name without
// one is saved as PNG
func save(p *plot.Plot, filename string, size Size) error {
	w, h := size.lengths()

	if dir := filepath.Dir(filename); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf", ".jpg", ".jpeg":
		return p.Save(w, h, filename)
	case "":
		return p.Save(w, h, filename+".png")
	}
	return fmt.Errorf("unsupported image format %q, use .png, .svg, .pdf or .jpg", filepath.Ext(filename))
}
