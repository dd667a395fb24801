package fem

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// solution holds the per-case response of an analyzed model
type solution struct {
	caseIndex map[string]int
	nCols     int
	members   []meshedMember
	disp      *mat.Dense // nDOF x nCols
	react     *mat.Dense // nDOF x nCols
}

// Analyze assembles and solves every load case. Previous results are discarded.
func (m *Model) Analyze() error {
	m.sol = nil
	if len(m.members) == 0 {
		return errors.New("fem: model has no members")
	}

	cases := m.LoadCases()
	caseIndex := make(map[string]int, len(cases))
	for i, c := range cases {
		caseIndex[c] = i
	}
	nCols := max(len(cases), 1)

	nMesh := len(m.nodes)
	meshed := make([]meshedMember, len(m.members))
	for k, mb := range m.members {
		mm, added := m.meshMember(mb, nMesh, caseIndex, nCols)
		meshed[k] = mm
		nMesh += added
	}

	nDOF := nMesh * dofsPerNode
	K := mat.NewDense(nDOF, nDOF, nil)
	F := mat.NewDense(nDOF, nCols, nil)

	for k, mb := range m.members {
		mm := &meshed[k]
		for e := range mm.elements {
			el := &mm.elements[e]
			ke := el.stiffness()
			dofs := el.dofs()
			for p, gp := range dofs {
				for q, gq := range dofs {
					K.Set(gp, gq, K.At(gp, gq)+ke[p][q])
				}
			}
			for c := 0; c < nCols; c++ {
				qa, qb := el.q[c][0], el.q[c][1]
				if qa == 0 && qb == 0 {
					continue
				}
				fe := equivalentLoads(el.l, qa, qb)
				for p, gp := range dofs {
					F.Set(gp, c, F.At(gp, c)+fe[p])
				}
			}
		}
		for _, p := range mb.pts {
			g := mm.nodeAt(p.x)*dofsPerNode + int(DY)
			c := caseIndex[p.lc]
			F.Set(g, c, F.At(g, c)+p.p)
		}
	}

	springs := make([]float64, nDOF)
	var free []int
	for d := 0; d < nDOF; d++ {
		n, dof := d/dofsPerNode, d%dofsPerNode
		if n < len(m.nodes) {
			if m.nodes[n].restrained[dof] {
				continue
			}
			springs[d] = m.nodes[n].springs[dof]
		}
		free = append(free, d)
	}

	U := mat.NewDense(nDOF, nCols, nil)
	if nf := len(free); nf > 0 {
		kff := mat.NewSymDense(nf, nil)
		fff := mat.NewDense(nf, nCols, nil)
		for a, ga := range free {
			for b := a; b < nf; b++ {
				v := K.At(ga, free[b])
				if a == b {
					v += springs[ga]
				}
				kff.SetSym(a, b, v)
			}
			for c := 0; c < nCols; c++ {
				fff.Set(a, c, F.At(ga, c))
			}
		}

		var chol mat.Cholesky
		if ok := chol.Factorize(kff); !ok {
			return ErrUnstable
		}
		if cond := chol.Cond(); math.IsNaN(cond) || cond > mat.ConditionTolerance {
			return fmt.Errorf("%w: condition number %.3g", ErrUnstable, cond)
		}
		var uf mat.Dense
		if err := chol.SolveTo(&uf, fff); err != nil {
			return fmt.Errorf("%w: %v", ErrUnstable, err)
		}
		for a, ga := range free {
			for c := 0; c < nCols; c++ {
				U.Set(ga, c, uf.At(a, c))
			}
		}
	}

	// R = K·U - F gives the support reactions, and -k·u at spring DOFs
	R := mat.NewDense(nDOF, nCols, nil)
	R.Mul(K, U)
	R.Sub(R, F)

	m.sol = &solution{
		caseIndex: caseIndex,
		nCols:     nCols,
		members:   meshed,
		disp:      U,
		react:     R,
	}
	return nil
}

// Analyzed reports whether results are available
func (m *Model) Analyzed() bool {
	return m.sol != nil
}
