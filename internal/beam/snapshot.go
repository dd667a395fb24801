package beam

import (
	"github.com/alexiusacademia/gopond/internal/section"
)

// SnapshotVersion is bumped when the snapshot layout changes incompatibly
const SnapshotVersion = 1

// Snapshot is the complete, serializable state of a Beam, including stale or
// converged analysis results
type Snapshot struct {
	Version        int                `json:"version" yaml:"version"`
	Name           string             `json:"name" yaml:"name"`
	Length         float64            `json:"length" yaml:"length"`
	Slope          float64            `json:"slope" yaml:"slope"`
	TributaryWidth float64            `json:"tributary_width" yaml:"tributary_width"`
	Section        section.Properties `json:"section" yaml:"section"`
	RainDepth      RainDepth          `json:"rain_depth" yaml:"rain_depth"`

	Stations   []float64 `json:"stations" yaml:"stations,flow"`
	Elevations []float64 `json:"elevations" yaml:"elevations,flow"`

	Supports   []Support   `json:"supports" yaml:"supports"`
	DistLoads  []DistLoad  `json:"dist_loads" yaml:"dist_loads"`
	PointLoads []PointLoad `json:"point_loads" yaml:"point_loads"`

	PondedDepth []Profile     `json:"ponded_depth" yaml:"ponded_depth"`
	Deflection  []Profile     `json:"deflection" yaml:"deflection"`
	Stats       AnalysisStats `json:"stats" yaml:"stats"`

	Envelopes    Envelopes     `json:"envelopes" yaml:"envelopes"`
	SupportNodes []SupportNode `json:"support_nodes" yaml:"support_nodes"`
	Diagrams     []Diagram     `json:"diagrams" yaml:"diagrams"`
	ValidResults bool          `json:"valid_results" yaml:"valid_results"`
}

// Snapshot returns a deep copy of the beam state
func (b *Beam) Snapshot() Snapshot {
	diagrams := make([]Diagram, len(b.diagrams))
	for i, d := range b.diagrams {
		diagrams[i] = Diagram{
			Combo:  d.Combo,
			Family: d.Family,
			Moment: append([]float64(nil), d.Moment...),
			Shear:  append([]float64(nil), d.Shear...),
		}
	}

	return Snapshot{
		Version:        SnapshotVersion,
		Name:           b.name,
		Length:         b.length,
		Slope:          b.slope,
		TributaryWidth: b.tributaryWidth,
		Section:        b.section,
		RainDepth:      b.rainDepth,
		Stations:       b.Stations(),
		Elevations:     b.Elevations(),
		Supports:       b.Supports(),
		DistLoads:      b.DistLoads(),
		PointLoads:     b.PointLoads(),
		PondedDepth:    b.PondedDepthHistory(),
		Deflection:     b.DeflectionHistory(),
		Stats:          b.Stats(),
		Envelopes:      b.envelopes.clone(),
		SupportNodes:   b.SupportNodes(),
		Diagrams:       diagrams,
		ValidResults:   b.validResults,
	}
}

// FromSnapshot rebuilds a beam. Geometry, supports and loads go through the
// validating mutators; results are restored as saved.
func FromSnapshot(s Snapshot) (*Beam, error) {
	if s.Version > SnapshotVersion {
		return nil, invalid("version", "snapshot version %d is newer than supported version %d", s.Version, SnapshotVersion)
	}

	b, err := NewBeam(s.Length, s.Name)
	if err != nil {
		return nil, err
	}
	if err := b.AddOrUpdateTributaryWidth(s.TributaryWidth); err != nil {
		return nil, err
	}
	if err := b.AddOrUpdateRainLoad(s.RainDepth.Static, s.RainDepth.Hydraulic, false); err != nil {
		return nil, err
	}
	if err := b.AddOrUpdateBeamSlope(s.Slope); err != nil {
		return nil, err
	}

	if err := b.restoreSection(s.Section); err != nil {
		return nil, err
	}

	if len(s.Stations) > 0 {
		if len(s.Stations) != NumStations || len(s.Elevations) != NumStations {
			return nil, invalid("stations", "expected %d stations and elevations, got %d and %d",
				NumStations, len(s.Stations), len(s.Elevations))
		}
		if err := checkFinite("stations", s.Stations...); err != nil {
			return nil, err
		}
		b.stations = append([]float64(nil), s.Stations...)
		b.elevations = append([]float64(nil), s.Elevations...)
	}

	for _, sp := range s.Supports {
		if err := b.AddSupport(sp.Location, sp.TX, sp.TY, sp.RZ); err != nil {
			return nil, err
		}
	}
	for _, d := range s.DistLoads {
		if err := b.AddDistLoad(d.Start, d.Stop, d.StartLoad, d.StopLoad, d.Case); err != nil {
			return nil, err
		}
	}
	for _, p := range s.PointLoads {
		if err := b.AddPointLoad(p.Location, p.Load, p.Case); err != nil {
			return nil, err
		}
	}

	if len(s.PondedDepth) > 0 {
		b.pondedDepth = make([]Profile, len(s.PondedDepth))
		for i, p := range s.PondedDepth {
			b.pondedDepth[i] = p.clone()
		}
	}
	if len(s.Deflection) > 0 {
		b.deflection = make([]Profile, len(s.Deflection))
		for i, p := range s.Deflection {
			b.deflection[i] = p.clone()
		}
	}
	b.stats = AnalysisStats{
		Iterations: s.Stats.Iterations,
		PondedArea: append([]Pair(nil), s.Stats.PondedArea...),
		RelErr:     append([]Pair(nil), s.Stats.RelErr...),
	}

	b.envelopes = newEnvelopes()
	if s.Envelopes.Reactions != nil {
		b.envelopes = mergeEnvelopes(b.envelopes, s.Envelopes)
	}
	b.supportNodes = append([]SupportNode(nil), s.SupportNodes...)
	b.diagrams = nil
	for _, d := range s.Diagrams {
		b.diagrams = append(b.diagrams, Diagram{
			Combo:  d.Combo,
			Family: d.Family,
			Moment: append([]float64(nil), d.Moment...),
			Shear:  append([]float64(nil), d.Shear...),
		})
	}
	b.validResults = s.ValidResults
	return b, nil
}

// restoreSection reapplies a catalog section by designator and keeps custom
// section properties as saved
func (b *Beam) restoreSection(p section.Properties) error {
	if p.Designator == "" {
		return nil
	}
	if p.Family != section.Custom {
		return b.AddOrUpdateSection(p.Designator)
	}
	if err := checkFinite("section", p.A, p.Iy, p.Iz, p.J); err != nil {
		return err
	}
	if p.A <= 0 || p.Iz <= 0 || p.Iy <= 0 || p.J < 0 {
		return invalid("section", "custom section %q has invalid properties", p.Designator)
	}
	b.section = p
	b.invalidate()
	return nil
}

// mergeEnvelopes copies saved envelopes over fresh ones so every group map
// exists even when the saved data lacks it
func mergeEnvelopes(dst, src Envelopes) Envelopes {
	for node, m := range src.Reactions {
		c := make(map[string]float64, len(m))
		for k, v := range m {
			c[k] = v
		}
		dst.Reactions[node] = c
	}
	pairs := []struct{ to, from Envelope }{
		{dst.MaxMoment, src.MaxMoment},
		{dst.MinMoment, src.MinMoment},
		{dst.MaxShear, src.MaxShear},
		{dst.MinShear, src.MinShear},
		{dst.MaxDeflection, src.MaxDeflection},
		{dst.MinDeflection, src.MinDeflection},
	}
	for _, p := range pairs {
		for g, m := range p.from {
			if p.to[g] == nil {
				p.to[g] = make(map[string]float64)
			}
			for k, v := range m {
				p.to[g][k] = v
			}
		}
	}
	return dst
}
