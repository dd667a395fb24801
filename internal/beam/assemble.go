package beam

import (
	"fmt"

	"github.com/alexiusacademia/gopond/internal/asce"
	"github.com/alexiusacademia/gopond/internal/fem"
	"github.com/alexiusacademia/gopond/internal/numeric"
)

// Steel properties in kip and inch units
const (
	steelE   = 29000.0  // ksi
	steelG   = 11200.0  // ksi
	steelNu  = 0.3
	steelRho = 2.836e-4 // kip/in³

	materialName = "Steel"
	memberName   = "M1"
	iNodeName    = "N1"
	jNodeName    = "N2"
)

// Unit conversions at the solver boundary
const (
	inPerFt       = 12.0
	lbPerKip      = 1000.0
	plfToKipPerIn = 1 / (inPerFt * lbPerKip) // plf and lb/ft springs to kip/in
	lbFtToKipIn   = inPerFt / lbPerKip       // lb-ft/rad to kip-in/rad
	downToSolverY = -1.0                     // user loads are positive downward
)

// StructuralModel is the frame solver API used by the assembler and the
// ponding iteration. *fem.Model satisfies it.
type StructuralModel interface {
	AddMaterial(name string, e, g, nu, rho float64) error
	AddSection(name string, a, iy, iz, j float64) error
	AddNode(name string, x, y float64) error
	NodeAt(x, y float64) (string, bool)
	AddMember(name, iNode, jNode, material, section string) error
	DefSupport(node string, dx, dy, rz bool) error
	DefSupportSpring(node string, dof fem.DOF, k float64) error
	AddMemberDistLoad(member string, w1, w2, x1, x2 float64, lc string) error
	AddMemberPtLoad(member string, p, x float64, lc string) error
	AddLoadCombo(name string, factors map[string]float64) error

	Analyze() error

	Reaction(node string, dof fem.DOF, combo string) (float64, error)
	DeflectionArray(member, combo string, n int) ([]float64, error)
	MomentArray(member, combo string, n int) ([]float64, error)
	ShearArray(member, combo string, n int) ([]float64, error)
	MaxMoment(member, combo string) (float64, error)
	MinMoment(member, combo string) (float64, error)
	MaxDeflection(member, combo string) (float64, error)
	MinDeflection(member, combo string) (float64, error)
}

// ModelFactory returns a new, empty structural model
type ModelFactory func() StructuralModel

// NewFEModel is the default ModelFactory
func NewFEModel() StructuralModel {
	return fem.NewModel()
}

// Segment is one linear piece of a ponding load sample
type Segment struct {
	Start     float64 // ft
	Stop      float64 // ft
	StartLoad float64 // psf
	StopLoad  float64 // psf
}

// PondingSample is the ponded water load of one iteration, per track
type PondingSample struct {
	Rain []Segment
	Snow []Segment
}

// PondingSample converts ponded depths (in) at the stations into linear water
// load segments between adjacent stations
func (b *Beam) PondingSample(depth Profile) PondingSample {
	build := func(d []float64) []Segment {
		segs := make([]Segment, 0, len(b.stations)-1)
		for i := 0; i+1 < len(b.stations) && i+1 < len(d); i++ {
			segs = append(segs, Segment{
				Start:     b.stations[i],
				Stop:      b.stations[i+1],
				StartLoad: asce.RainLoad(d[i]),
				StopLoad:  asce.RainLoad(d[i+1]),
			})
		}
		return segs
	}
	return PondingSample{Rain: build(depth.Rain), Snow: build(depth.Snow)}
}

// Assembly is a freshly built model and the nodes carrying the supports
type Assembly struct {
	Model        StructuralModel
	SupportNodes []SupportNode
}

// ModelAssembler translates a beam and one ponding sample into a new
// structural model
type ModelAssembler struct {
	NewModel ModelFactory
}

// Assemble builds a new model from scratch. Nothing is shared between calls.
func (a ModelAssembler) Assemble(b *Beam, sample PondingSample) (*Assembly, error) {
	if len(b.supports) == 0 {
		return nil, ErrNoSupports
	}
	if !b.segmented() {
		return nil, invalid("length", "stations span %g ft but the beam is %g ft long, resegment the beam first",
			b.stations[len(b.stations)-1], b.length)
	}

	newModel := a.NewModel
	if newModel == nil {
		newModel = NewFEModel
	}
	m := newModel()

	sec := b.section
	if err := m.AddMaterial(materialName, steelE, steelG, steelNu, steelRho); err != nil {
		return nil, fmt.Errorf("add material: %w", err)
	}
	if err := m.AddSection(sec.Designator, sec.A, sec.Iy, sec.Iz, sec.J); err != nil {
		return nil, fmt.Errorf("add section: %w", err)
	}

	// Member end nodes, then one node per distinct support location
	if err := m.AddNode(iNodeName, 0, 0); err != nil {
		return nil, err
	}
	if err := m.AddNode(jNodeName, b.length*inPerFt, 0); err != nil {
		return nil, err
	}
	nodes := 2
	for _, s := range b.supports {
		x := s.Location * inPerFt
		if _, ok := m.NodeAt(x, 0); ok {
			continue
		}
		nodes++
		if err := m.AddNode(fmt.Sprintf("N%d", nodes), x, 0); err != nil {
			return nil, err
		}
	}

	if err := m.AddMember(memberName, iNodeName, jNodeName, materialName, sec.Designator); err != nil {
		return nil, fmt.Errorf("add member: %w", err)
	}

	// Boundary conditions
	var supportNodes []SupportNode
	seen := make(map[string]bool)
	for _, s := range b.supports {
		name, ok := m.NodeAt(s.Location*inPerFt, 0)
		if !ok {
			return nil, fmt.Errorf("no node at support location %g ft", s.Location)
		}
		if !seen[name] {
			seen[name] = true
			supportNodes = append(supportNodes, SupportNode{Name: name, Location: s.Location})
		}

		if err := m.DefSupport(name, numeric.IsClose(s.TX, 0), numeric.IsClose(s.TY, 0), false); err != nil {
			return nil, err
		}
		springs := []struct {
			dof   fem.DOF
			value float64
			scale float64
		}{
			{fem.DX, s.TX, plfToKipPerIn},
			{fem.DY, s.TY, plfToKipPerIn},
			{fem.RZ, s.RZ, lbFtToKipIn},
		}
		for _, sp := range springs {
			if numeric.IsClose(sp.value, 0) {
				continue
			}
			if err := m.DefSupportSpring(name, sp.dof, sp.value*sp.scale); err != nil {
				return nil, err
			}
		}
	}

	// User loads
	for _, d := range b.distLoads {
		err := m.AddMemberDistLoad(memberName,
			downToSolverY*d.StartLoad*plfToKipPerIn, downToSolverY*d.StopLoad*plfToKipPerIn,
			d.Start*inPerFt, d.Stop*inPerFt, string(d.Case))
		if err != nil {
			return nil, fmt.Errorf("add distributed load: %w", err)
		}
	}
	for _, p := range b.pointLoads {
		err := m.AddMemberPtLoad(memberName, downToSolverY*p.Load/lbPerKip, p.Location*inPerFt, string(p.Case))
		if err != nil {
			return nil, fmt.Errorf("add point load: %w", err)
		}
	}

	// Ponded water over the tributary width
	tracks := []struct {
		lc   string
		segs []Segment
	}{
		{string(asce.PondingRain), sample.Rain},
		{string(asce.PondingSnow), sample.Snow},
	}
	for _, tr := range tracks {
		for _, s := range tr.segs {
			err := m.AddMemberDistLoad(memberName,
				downToSolverY*s.StartLoad*b.tributaryWidth*plfToKipPerIn,
				downToSolverY*s.StopLoad*b.tributaryWidth*plfToKipPerIn,
				s.Start*inPerFt, s.Stop*inPerFt, tr.lc)
			if err != nil {
				return nil, fmt.Errorf("add ponding load: %w", err)
			}
		}
	}

	for _, c := range asce.AllCombinations() {
		if err := m.AddLoadCombo(c.Name, c.Factors.Map()); err != nil {
			return nil, err
		}
	}

	return &Assembly{Model: m, SupportNodes: supportNodes}, nil
}
