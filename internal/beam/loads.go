package beam

import (
	"github.com/alexiusacademia/gopond/internal/asce"
)

// DistLoad is a linearly varying line load, positive downward
type DistLoad struct {
	Start     float64   `json:"start" yaml:"start"`           // ft
	Stop      float64   `json:"stop" yaml:"stop"`             // ft
	StartLoad float64   `json:"start_load" yaml:"start_load"` // plf
	StopLoad  float64   `json:"stop_load" yaml:"stop_load"`   // plf
	Case      asce.Case `json:"case" yaml:"case"`
}

// PointLoad is a concentrated load, positive downward
type PointLoad struct {
	Location float64   `json:"location" yaml:"location"` // ft
	Load     float64   `json:"load" yaml:"load"`         // lb
	Case     asce.Case `json:"case" yaml:"case"`
}

func checkCase(c asce.Case) error {
	if !asce.IsUserCase(c) {
		return invalid("case", "must be one of dead (D), roof live (Lr), rain (R), or snow (S), got %q", c)
	}
	return nil
}

// AddDistLoad adds a line load from start to stop (ft) varying linearly from
// w1 to w2 (plf)
func (b *Beam) AddDistLoad(start, stop, w1, w2 float64, c asce.Case) error {
	if err := b.checkLocation("start", start); err != nil {
		return err
	}
	if err := b.checkLocation("stop", stop); err != nil {
		return err
	}
	if stop-start <= minLoadLength {
		return invalid("stop", "must be greater than start (%g ft), got %g", start, stop)
	}
	if err := checkFinite("load", w1, w2); err != nil {
		return err
	}
	if err := checkCase(c); err != nil {
		return err
	}
	b.distLoads = append(b.distLoads, DistLoad{Start: start, Stop: stop, StartLoad: w1, StopLoad: w2, Case: c})
	b.invalidate()
	return nil
}

// DeleteDistLoad removes and returns the line load at index i
func (b *Beam) DeleteDistLoad(i int) (DistLoad, error) {
	if i < 0 || i >= len(b.distLoads) {
		return DistLoad{}, invalid("index", "no distributed load at index %d", i)
	}
	d := b.distLoads[i]
	b.distLoads = append(b.distLoads[:i], b.distLoads[i+1:]...)
	b.invalidate()
	return d, nil
}

// DistLoads returns the line loads in insertion order
func (b *Beam) DistLoads() []DistLoad {
	return append([]DistLoad(nil), b.distLoads...)
}

// ClearDistLoads removes every line load of case c
func (b *Beam) ClearDistLoads(c asce.Case) error {
	if err := checkCase(c); err != nil {
		return err
	}
	kept := b.distLoads[:0]
	for _, d := range b.distLoads {
		if d.Case != c {
			kept = append(kept, d)
		}
	}
	b.distLoads = kept
	b.invalidate()
	return nil
}

// AddPointLoad adds a concentrated load p (lb) at location (ft)
func (b *Beam) AddPointLoad(location, p float64, c asce.Case) error {
	if err := b.checkLocation("location", location); err != nil {
		return err
	}
	if err := checkFinite("load", p); err != nil {
		return err
	}
	if err := checkCase(c); err != nil {
		return err
	}
	b.pointLoads = append(b.pointLoads, PointLoad{Location: location, Load: p, Case: c})
	b.invalidate()
	return nil
}

// DeletePointLoad removes and returns the point load at index i
func (b *Beam) DeletePointLoad(i int) (PointLoad, error) {
	if i < 0 || i >= len(b.pointLoads) {
		return PointLoad{}, invalid("index", "no point load at index %d", i)
	}
	p := b.pointLoads[i]
	b.pointLoads = append(b.pointLoads[:i], b.pointLoads[i+1:]...)
	b.invalidate()
	return p, nil
}

// PointLoads returns the point loads in insertion order
func (b *Beam) PointLoads() []PointLoad {
	return append([]PointLoad(nil), b.pointLoads...)
}

// ClearPointLoads removes every point load of case c
func (b *Beam) ClearPointLoads(c asce.Case) error {
	if err := checkCase(c); err != nil {
		return err
	}
	kept := b.pointLoads[:0]
	for _, p := range b.pointLoads {
		if p.Case != c {
			kept = append(kept, p)
		}
	}
	b.pointLoads = kept
	b.invalidate()
	return nil
}
