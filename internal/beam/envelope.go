package beam

import (
	"fmt"

	"github.com/alexiusacademia/gopond/internal/asce"
	"github.com/alexiusacademia/gopond/internal/fem"
)

// Group keys the envelope maps
type Group string

const (
	GroupCases Group = "cases"
	GroupASD   Group = Group(asce.ASD)
	GroupLRFD  Group = Group(asce.LRFD)
)

// Groups lists the envelope groups in reporting order
var Groups = [3]Group{GroupCases, GroupASD, GroupLRFD}

// Envelope maps a group to combination name to value
type Envelope map[Group]map[string]float64

func newEnvelope() Envelope {
	e := make(Envelope, len(Groups))
	for _, g := range Groups {
		e[g] = make(map[string]float64)
	}
	return e
}

func (e Envelope) clone() Envelope {
	out := make(Envelope, len(e))
	for g, m := range e {
		c := make(map[string]float64, len(m))
		for k, v := range m {
			c[k] = v
		}
		out[g] = c
	}
	return out
}

// Envelopes holds the results of the converged model. Reactions are in kip,
// upward positive, keyed by support node then combination. Moments are in
// kip-in, sagging positive. Deflections are in inches, downward positive.
// The shear envelopes are allocated but not filled.
type Envelopes struct {
	Reactions     map[string]map[string]float64 `json:"reactions" yaml:"reactions"`
	MaxMoment     Envelope                      `json:"max_moment" yaml:"max_moment"`
	MinMoment     Envelope                      `json:"min_moment" yaml:"min_moment"`
	MaxShear      Envelope                      `json:"max_shear" yaml:"max_shear"`
	MinShear      Envelope                      `json:"min_shear" yaml:"min_shear"`
	MaxDeflection Envelope                      `json:"max_deflection" yaml:"max_deflection"`
	MinDeflection Envelope                      `json:"min_deflection" yaml:"min_deflection"`
}

func newEnvelopes() Envelopes {
	return Envelopes{
		Reactions:     make(map[string]map[string]float64),
		MaxMoment:     newEnvelope(),
		MinMoment:     newEnvelope(),
		MaxShear:      newEnvelope(),
		MinShear:      newEnvelope(),
		MaxDeflection: newEnvelope(),
		MinDeflection: newEnvelope(),
	}
}

func (e Envelopes) clone() Envelopes {
	r := make(map[string]map[string]float64, len(e.Reactions))
	for node, m := range e.Reactions {
		c := make(map[string]float64, len(m))
		for k, v := range m {
			c[k] = v
		}
		r[node] = c
	}
	return Envelopes{
		Reactions:     r,
		MaxMoment:     e.MaxMoment.clone(),
		MinMoment:     e.MinMoment.clone(),
		MaxShear:      e.MaxShear.clone(),
		MinShear:      e.MinShear.clone(),
		MaxDeflection: e.MaxDeflection.clone(),
		MinDeflection: e.MinDeflection.clone(),
	}
}

// Diagram is the moment (kip-in) and shear (kip) at every station for one
// design combination of the converged model
type Diagram struct {
	Combo  string      `json:"combo" yaml:"combo"`
	Family asce.Family `json:"family" yaml:"family"`
	Moment []float64   `json:"moment" yaml:"moment"`
	Shear  []float64   `json:"shear" yaml:"shear"`
}

type groupedCombo struct {
	group Group
	name  string
}

func groupedCombos() []groupedCombo {
	var out []groupedCombo
	for _, c := range asce.Cases() {
		out = append(out, groupedCombo{GroupCases, c.Name})
	}
	for _, f := range asce.Families {
		for _, c := range asce.Combinations(f) {
			out = append(out, groupedCombo{Group(f), c.Name})
		}
	}
	return out
}

// extractEnvelopes reads every result from the converged model
func (b *Beam) extractEnvelopes(asm *Assembly) error {
	m := asm.Model
	env := newEnvelopes()
	var diagrams []Diagram

	for _, n := range asm.SupportNodes {
		env.Reactions[n.Name] = make(map[string]float64)
	}

	for _, gc := range groupedCombos() {
		for _, n := range asm.SupportNodes {
			r, err := m.Reaction(n.Name, fem.DY, gc.name)
			if err != nil {
				return fmt.Errorf("reaction %s %s: %w", n.Name, gc.name, err)
			}
			env.Reactions[n.Name][gc.name] = r
		}

		hi, err := m.MaxMoment(memberName, gc.name)
		if err != nil {
			return err
		}
		lo, err := m.MinMoment(memberName, gc.name)
		if err != nil {
			return err
		}
		env.MaxMoment[gc.group][gc.name] = hi
		env.MinMoment[gc.group][gc.name] = lo

		// solver Y is upward, so the largest downward deflection is the
		// negated minimum
		up, err := m.MaxDeflection(memberName, gc.name)
		if err != nil {
			return err
		}
		down, err := m.MinDeflection(memberName, gc.name)
		if err != nil {
			return err
		}
		env.MaxDeflection[gc.group][gc.name] = -down
		env.MinDeflection[gc.group][gc.name] = -up

		if gc.group == GroupCases {
			continue
		}
		moment, err := m.MomentArray(memberName, gc.name, NumStations)
		if err != nil {
			return err
		}
		shear, err := m.ShearArray(memberName, gc.name, NumStations)
		if err != nil {
			return err
		}
		diagrams = append(diagrams, Diagram{
			Combo:  gc.name,
			Family: asce.Family(gc.group),
			Moment: moment,
			Shear:  shear,
		})
	}

	b.envelopes = env
	b.supportNodes = append([]SupportNode(nil), asm.SupportNodes...)
	b.diagrams = diagrams
	return nil
}

// ReactionEnvelopeAtNode returns the vertical reaction (kip) at a support node
// for every combination of one family ("asd" or "lrfd")
func (b *Beam) ReactionEnvelopeAtNode(node, family string) (map[string]float64, error) {
	f, err := asce.ParseFamily(family)
	if err != nil {
		return nil, invalid("family", "%v", err)
	}
	if !b.validResults {
		return nil, ErrNoResults
	}
	all, ok := b.envelopes.Reactions[node]
	if !ok {
		return nil, invalid("node", "no support node named %q", node)
	}

	out := make(map[string]float64)
	for _, c := range asce.Combinations(f) {
		if v, ok := all[c.Name]; ok {
			out[c.Name] = v
		}
	}
	return out, nil
}

// Envelopes returns a copy of the stored envelopes, which may be stale
func (b *Beam) Envelopes() Envelopes {
	return b.envelopes.clone()
}

// Diagrams returns the station diagrams of the last converged analysis
func (b *Beam) Diagrams() ([]Diagram, error) {
	if !b.validResults {
		return nil, ErrNoResults
	}
	out := make([]Diagram, len(b.diagrams))
	for i, d := range b.diagrams {
		out[i] = Diagram{
			Combo:  d.Combo,
			Family: d.Family,
			Moment: append([]float64(nil), d.Moment...),
			Shear:  append([]float64(nil), d.Shear...),
		}
	}
	return out, nil
}
