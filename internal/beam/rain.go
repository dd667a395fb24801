package beam

import (
	"math"

	"github.com/alexiusacademia/gopond/internal/asce"
	"github.com/alexiusacademia/gopond/internal/numeric"
)

// AddOrUpdateBeamSlope sets the slope (in/ft) and recomputes the station
// elevations
func (b *Beam) AddOrUpdateBeamSlope(slope float64) error {
	if err := checkFinite("slope", slope); err != nil {
		return err
	}
	if slope < 0 {
		return invalid("slope", "must not be negative, got %g", slope)
	}
	b.slope = slope
	b.elevations = numeric.Scale(slope, b.stations)
	b.invalidate()
	return nil
}

// AddOrUpdateTributaryWidth sets the roof width (ft) draining onto the beam
func (b *Beam) AddOrUpdateTributaryWidth(width float64) error {
	if err := checkFinite("tributary width", width); err != nil {
		return err
	}
	if width < 0 {
		return invalid("tributary width", "must not be negative, got %g", width)
	}
	b.tributaryWidth = width
	b.invalidate()
	return nil
}

// RainLoadLimit returns how far (ft) the design rain depth reaches up the
// slope: total head / slope, capped at the span. A flat beam is wet over its
// full length.
func (b *Beam) RainLoadLimit() float64 {
	limit := numeric.DivideByZero(b.rainDepth.Total(), b.slope)
	if limit <= b.length {
		return limit
	}
	return b.length
}

// AddOrUpdateRainLoad stores the static and hydraulic heads (in). With
// autoAdd, existing rain (R) line loads are replaced by the triangular or
// trapezoidal load of the design depth over the wet length. A wet length too
// short for the frame model gets no rain load.
func (b *Beam) AddOrUpdateRainLoad(static, hydraulic float64, autoAdd bool) error {
	if err := checkFinite("rain depth", static, hydraulic); err != nil {
		return err
	}
	if static < 0 || hydraulic < 0 {
		return invalid("rain depth", "heads must not be negative")
	}
	b.rainDepth = RainDepth{Static: static, Hydraulic: hydraulic}
	b.invalidate()

	if !autoAdd {
		return nil
	}

	total := b.rainDepth.Total()
	limit := b.RainLoadLimit()
	start := asce.RainLoad(total)
	end := asce.RainLoad(math.Max(total-limit*b.slope, 0))

	if err := b.ClearDistLoads(asce.Rain); err != nil {
		return err
	}
	if limit <= minLoadLength {
		return nil
	}
	return b.AddDistLoad(0, limit, start*b.tributaryWidth, end*b.tributaryWidth, asce.Rain)
}
