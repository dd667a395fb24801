package fem

import (
	"fmt"
	"math"
)

// deflectionSamples is the number of intervals each element is sampled at
// when searching for extreme deflections
const deflectionSamples = 20

// weights returns the case factors of a combination in solution column order
func (m *Model) weights(combo string) ([]float64, error) {
	if m.sol == nil {
		return nil, ErrNotAnalyzed
	}
	i, ok := m.comboIndex[combo]
	if !ok {
		return nil, fmt.Errorf("fem: unknown load combination %q", combo)
	}
	w := make([]float64, m.sol.nCols)
	for lc, f := range m.combos[i].factors {
		w[m.sol.caseIndex[lc]] += f
	}
	return w, nil
}

func combine(src interface{ At(i, j int) float64 }, row int, w []float64) float64 {
	var sum float64
	for c, f := range w {
		if f != 0 {
			sum += f * src.At(row, c)
		}
	}
	return sum
}

// Displacement returns a nodal displacement for a combination
func (m *Model) Displacement(node string, dof DOF, combo string) (float64, error) {
	w, err := m.weights(combo)
	if err != nil {
		return 0, err
	}
	i, ok := m.nodeIndex[node]
	if !ok {
		return 0, fmt.Errorf("fem: unknown node %q", node)
	}
	return combine(m.sol.disp, i*dofsPerNode+int(dof), w), nil
}

// Reaction returns the support reaction of a node for a combination. Nodes
// without a restraint or spring on dof report zero.
func (m *Model) Reaction(node string, dof DOF, combo string) (float64, error) {
	w, err := m.weights(combo)
	if err != nil {
		return 0, err
	}
	i, ok := m.nodeIndex[node]
	if !ok {
		return 0, fmt.Errorf("fem: unknown node %q", node)
	}
	n := m.nodes[i]
	if !n.restrained[dof] && n.springs[dof] == 0 {
		return 0, nil
	}
	return combine(m.sol.react, i*dofsPerNode+int(dof), w), nil
}

func (m *Model) meshed(member string) (*meshedMember, error) {
	i, ok := m.memberIndex[member]
	if !ok {
		return nil, fmt.Errorf("fem: unknown member %q", member)
	}
	return &m.sol.members[i], nil
}

// state recovers an element's end displacements, span load and end forces
func (m *Model) state(e *element, w []float64) elementState {
	d := e.dofs()
	var u [6]float64
	for k, g := range d {
		u[k] = combine(m.sol.disp, g, w)
	}
	var qa, qb float64
	for c, f := range w {
		qa += f * e.q[c][0]
		qb += f * e.q[c][1]
	}

	ke := e.stiffness()
	fe := equivalentLoads(e.l, qa, qb)
	var f1, f2 float64
	for k := range u {
		f1 += ke[1][k] * u[k]
		f2 += ke[2][k] * u[k]
	}

	return elementState{
		l:  e.l,
		ei: e.ei,
		v1: u[1], t1: u[2], v2: u[4], t2: u[5],
		qa: qa, qb: qb,
		vi: f1 - fe[1],
		mi: f2 - fe[2],
	}
}

type quantity int

const (
	qtyShear quantity = iota
	qtyMoment
	qtyDeflection
)

func (s elementState) value(q quantity, a float64) float64 {
	switch q {
	case qtyShear:
		return s.shear(a)
	case qtyMoment:
		return s.moment(a)
	}
	return s.deflection(a)
}

// array samples a quantity at n evenly spaced points along a member
func (m *Model) array(member, combo string, n int, q quantity) ([]float64, error) {
	w, err := m.weights(combo)
	if err != nil {
		return nil, err
	}
	mm, err := m.meshed(member)
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, fmt.Errorf("fem: need at least one sample point, got %d", n)
	}

	out := make([]float64, n)
	for k := range out {
		x := 0.0
		if n > 1 {
			x = mm.length * float64(k) / float64(n-1)
		}
		e, a := mm.locate(x)
		out[k] = m.state(e, w).value(q, a)
	}
	return out, nil
}

// DeflectionArray returns the global Y displacement at n evenly spaced points
// from the member's i-node to its j-node.
func (m *Model) DeflectionArray(member, combo string, n int) ([]float64, error) {
	return m.array(member, combo, n, qtyDeflection)
}

// MomentArray returns the bending moment (sagging positive) at n evenly
// spaced points along a member.
func (m *Model) MomentArray(member, combo string, n int) ([]float64, error) {
	return m.array(member, combo, n, qtyMoment)
}

// ShearArray returns the shear force at n evenly spaced points along a member
func (m *Model) ShearArray(member, combo string, n int) ([]float64, error) {
	return m.array(member, combo, n, qtyShear)
}

// extremes returns the largest and smallest value of a quantity on a member
func (m *Model) extremes(member, combo string, q quantity) (hi, lo float64, err error) {
	w, err := m.weights(combo)
	if err != nil {
		return 0, 0, err
	}
	mm, err := m.meshed(member)
	if err != nil {
		return 0, 0, err
	}

	hi, lo = math.Inf(-1), math.Inf(1)
	for k := range mm.elements {
		s := m.state(&mm.elements[k], w)
		points := []float64{0, s.l}
		switch q {
		case qtyMoment:
			points = append(points, s.shearRoots()...)
		case qtyShear:
			// the shear is extreme where the load intensity crosses zero
			if s.qb != s.qa {
				if a := -s.qa * s.l / (s.qb - s.qa); a > 0 && a < s.l {
					points = append(points, a)
				}
			}
		case qtyDeflection:
			for i := 1; i < deflectionSamples; i++ {
				points = append(points, s.l*float64(i)/deflectionSamples)
			}
		}
		for _, a := range points {
			v := s.value(q, a)
			hi = math.Max(hi, v)
			lo = math.Min(lo, v)
		}
	}
	return hi, lo, nil
}

// MaxMoment returns the largest bending moment on a member
func (m *Model) MaxMoment(member, combo string) (float64, error) {
	hi, _, err := m.extremes(member, combo, qtyMoment)
	return hi, err
}

// MinMoment returns the smallest bending moment on a member
func (m *Model) MinMoment(member, combo string) (float64, error) {
	_, lo, err := m.extremes(member, combo, qtyMoment)
	return lo, err
}

// MaxShear returns the largest shear force on a member
func (m *Model) MaxShear(member, combo string) (float64, error) {
	hi, _, err := m.extremes(member, combo, qtyShear)
	return hi, err
}

// MinShear returns the smallest shear force on a member
func (m *Model) MinShear(member, combo string) (float64, error) {
	_, lo, err := m.extremes(member, combo, qtyShear)
	return lo, err
}

// MaxDeflection returns the largest global Y displacement along a member
func (m *Model) MaxDeflection(member, combo string) (float64, error) {
	hi, _, err := m.extremes(member, combo, qtyDeflection)
	return hi, err
}

// MinDeflection returns the smallest global Y displacement along a member
func (m *Model) MinDeflection(member, combo string) (float64, error) {
	_, lo, err := m.extremes(member, combo, qtyDeflection)
	return lo, err
}
