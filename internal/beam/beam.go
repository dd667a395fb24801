// Package beam holds the single-span roof beam model and its ponding analysis.
//
// A Beam is built with NewBeam and then edited through its validating
// mutators. AnalyzePonding iterates between the beam's deflection and the
// depth of water it holds until the ponded area settles, then stores reaction,
// moment and deflection envelopes for every load case and combination.
//
// Units follow US roof design practice: lengths in feet, depths and
// deflections in inches, point loads in pounds, line loads in plf, beam slope
// in inches per foot. Results are reported in kip, kip-in and inches.
package beam

import (
	"math"

	"github.com/alexiusacademia/gopond/internal/numeric"
	"github.com/alexiusacademia/gopond/internal/section"
)

const (
	// NumStations is the number of equally spaced stations along the span
	NumStations = NumSegments + 1

	// NumSegments is the number of equal segments the span is divided into
	NumSegments = 100

	DefaultName    = "PondSys Beam"
	DefaultSection = "W12X14"

	// minLoadLength is the shortest line load (ft) the frame model can
	// place, its node tolerance of 1e-4 in
	minLoadLength = 1e-4 / 12
)

// Pair holds one value per ponding track
type Pair struct {
	Rain float64 `json:"rain" yaml:"rain"`
	Snow float64 `json:"snow" yaml:"snow"`
}

// Profile holds one value per station for each ponding track
type Profile struct {
	Rain []float64 `json:"rain" yaml:"rain"`
	Snow []float64 `json:"snow" yaml:"snow"`
}

func (p Profile) clone() Profile {
	return Profile{Rain: append([]float64(nil), p.Rain...), Snow: append([]float64(nil), p.Snow...)}
}

func zeroProfile() Profile {
	return Profile{Rain: make([]float64, NumStations), Snow: make([]float64, NumStations)}
}

// RainDepth is the design water depth above the drain inlet, in inches
type RainDepth struct {
	Static    float64 `json:"static" yaml:"static"`
	Hydraulic float64 `json:"hydraulic" yaml:"hydraulic"`
}

// Total returns the static plus hydraulic head
func (r RainDepth) Total() float64 {
	return r.Static + r.Hydraulic
}

// AnalysisStats describes the last ponding run. Index 0 of each history is
// the seed entry.
type AnalysisStats struct {
	Iterations int    `json:"iterations" yaml:"iterations"`
	PondedArea []Pair `json:"ponded_area" yaml:"ponded_area"`
	RelErr     []Pair `json:"rel_err" yaml:"rel_err"`
}

// Beam is a single-span roof beam
type Beam struct {
	name           string
	length         float64
	slope          float64
	tributaryWidth float64
	section        section.Properties
	rainDepth      RainDepth

	stations   []float64
	elevations []float64

	supports   []Support
	distLoads  []DistLoad
	pointLoads []PointLoad

	pondedDepth []Profile
	deflection  []Profile
	stats       AnalysisStats

	envelopes    Envelopes
	supportNodes []SupportNode
	diagrams     []Diagram
	validResults bool
}

func checkFinite(field string, vals ...float64) error {
	if !numeric.Finite(vals...) {
		return invalid(field, "must be a finite number")
	}
	return nil
}

// NewBeam returns a beam of the given length (ft) with no supports or loads,
// zero slope, zero tributary width and the default section.
func NewBeam(length float64, name string) (*Beam, error) {
	if err := checkFinite("length", length); err != nil {
		return nil, err
	}
	if length <= 0 {
		return nil, invalid("length", "must be positive, got %g", length)
	}
	if name == "" {
		name = DefaultName
	}

	b := &Beam{
		name:      name,
		length:    length,
		envelopes: newEnvelopes(),
	}
	b.segment()
	if err := b.AddOrUpdateSection(DefaultSection); err != nil {
		return nil, err
	}
	return b, nil
}

// segment divides the current length into equal segments and reseeds the
// histories
func (b *Beam) segment() {
	b.stations = numeric.Linspace(0, b.length, NumStations)
	b.elevations = numeric.Scale(b.slope, b.stations)
	b.pondedDepth = []Profile{zeroProfile()}
	b.deflection = []Profile{zeroProfile()}
	b.stats = AnalysisStats{}
}

func (b *Beam) invalidate() {
	b.validResults = false
}

// Name returns the beam name
func (b *Beam) Name() string { return b.name }

// Length returns the span in feet
func (b *Beam) Length() float64 { return b.length }

// Slope returns the beam slope in inches per foot
func (b *Beam) Slope() float64 { return b.slope }

// TributaryWidth returns the roof width draining onto the beam, in feet
func (b *Beam) TributaryWidth() float64 { return b.tributaryWidth }

// RainDepth returns the design rain heads
func (b *Beam) RainDepth() RainDepth { return b.rainDepth }

// Section returns the assigned section properties
func (b *Beam) Section() section.Properties { return b.section }

// Stations returns the station positions in feet
func (b *Beam) Stations() []float64 { return append([]float64(nil), b.stations...) }

// Elevations returns the station elevations in inches
func (b *Beam) Elevations() []float64 { return append([]float64(nil), b.elevations...) }

// ValidResults reports whether the stored results match the current inputs
func (b *Beam) ValidResults() bool { return b.validResults }

// Stats returns the statistics of the last ponding run
func (b *Beam) Stats() AnalysisStats {
	return AnalysisStats{
		Iterations: b.stats.Iterations,
		PondedArea: append([]Pair(nil), b.stats.PondedArea...),
		RelErr:     append([]Pair(nil), b.stats.RelErr...),
	}
}

// PondedDepthHistory returns the ponded depth at every station for the seed
// and each iteration of the last run
func (b *Beam) PondedDepthHistory() []Profile {
	out := make([]Profile, len(b.pondedDepth))
	for i, p := range b.pondedDepth {
		out[i] = p.clone()
	}
	return out
}

// DeflectionHistory returns the downward deflection at every station for the
// seed and each iteration of the last run
func (b *Beam) DeflectionHistory() []Profile {
	out := make([]Profile, len(b.deflection))
	for i, p := range b.deflection {
		out[i] = p.clone()
	}
	return out
}

// SetName renames the beam
func (b *Beam) SetName(name string) error {
	if name == "" {
		return invalid("name", "must not be empty")
	}
	b.name = name
	b.invalidate()
	return nil
}

// SetLength changes the span. It cannot cut off a support or load. The stations are kept until Resegment is
// called, and span-dependent joist properties until the section is reapplied.
func (b *Beam) SetLength(length float64) error {
	if err := checkFinite("length", length); err != nil {
		return err
	}
	if length <= 0 {
		return invalid("length", "must be positive, got %g", length)
	}
	if reach := b.furthestPosition(); length < reach {
		return invalid("length", "a support or load sits at %g ft, remove or move it before shortening the span to %g ft", reach, length)
	}
	b.length = length
	b.invalidate()
	return nil
}

// furthestPosition returns the largest support or load position (ft)
func (b *Beam) furthestPosition() float64 {
	var reach float64
	for _, s := range b.supports {
		reach = math.Max(reach, s.Location)
	}
	for _, d := range b.distLoads {
		reach = math.Max(reach, d.Stop)
	}
	for _, p := range b.pointLoads {
		reach = math.Max(reach, p.Location)
	}
	return reach
}

// Resegment rebuilds the stations, elevations and history seeds from the
// current length
func (b *Beam) Resegment() {
	b.segment()
	b.invalidate()
}

// segmented reports whether the stations still span the full length
func (b *Beam) segmented() bool {
	return len(b.stations) == NumStations && math.Abs(b.stations[NumSegments]-b.length) <= 1e-9*b.length
}
