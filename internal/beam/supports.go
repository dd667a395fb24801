package beam

// Support is a point support along the beam. A zero translational spring
// constant means the direction is fully restrained; a zero rotational spring
// means the rotation is free.
type Support struct {
	Location float64 `json:"location" yaml:"location"` // ft from the left end
	TX       float64 `json:"tx" yaml:"tx"`             // lb/ft
	TY       float64 `json:"ty" yaml:"ty"`             // lb/ft
	RZ       float64 `json:"rz" yaml:"rz"`             // lb-ft/rad
}

// SupportNode names the solver node that carries a support
type SupportNode struct {
	Name     string  `json:"name" yaml:"name"`
	Location float64 `json:"location" yaml:"location"` // ft
}

func (b *Beam) checkLocation(field string, x float64) error {
	if err := checkFinite(field, x); err != nil {
		return err
	}
	if x < 0 || x > b.length {
		return invalid(field, "must lie within the span (0 to %g ft), got %g", b.length, x)
	}
	return nil
}

// AddSupport adds a support at location (ft) with spring constants tx, ty
// (lb/ft) and rz (lb-ft/rad)
func (b *Beam) AddSupport(location, tx, ty, rz float64) error {
	if err := b.checkLocation("location", location); err != nil {
		return err
	}
	if err := checkFinite("spring constant", tx, ty, rz); err != nil {
		return err
	}
	if tx < 0 || ty < 0 || rz < 0 {
		return invalid("spring constant", "must not be negative")
	}
	b.supports = append(b.supports, Support{Location: location, TX: tx, TY: ty, RZ: rz})
	b.invalidate()
	return nil
}

// DeleteSupport removes and returns the support at index i
func (b *Beam) DeleteSupport(i int) (Support, error) {
	if i < 0 || i >= len(b.supports) {
		return Support{}, invalid("index", "no support at index %d", i)
	}
	s := b.supports[i]
	b.supports = append(b.supports[:i], b.supports[i+1:]...)
	b.invalidate()
	return s, nil
}

// Supports returns the supports in insertion order
func (b *Beam) Supports() []Support {
	return append([]Support(nil), b.supports...)
}

// SupportNodes returns the solver nodes carrying supports in the converged
// model
func (b *Beam) SupportNodes() []SupportNode {
	return append([]SupportNode(nil), b.supportNodes...)
}
