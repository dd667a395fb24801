package fem

import (
	"math"
	"sort"
)

// element is one Euler-Bernoulli segment of a meshed member. Local and global
// axes coincide because members run along +X.
type element struct {
	i, j int     // mesh node indices
	x0   float64 // offset of the i-end from the member's i-node
	l    float64
	ea   float64
	ei   float64

	// q[c] holds the transverse intensity at both ends for load case c
	q [][2]float64
}

// dofs returns the global equation numbers of the element's six DOFs
func (e *element) dofs() [6]int {
	return [6]int{
		e.i*dofsPerNode + int(DX), e.i*dofsPerNode + int(DY), e.i*dofsPerNode + int(RZ),
		e.j*dofsPerNode + int(DX), e.j*dofsPerNode + int(DY), e.j*dofsPerNode + int(RZ),
	}
}

// stiffness returns the element stiffness matrix [u1 v1 θ1 u2 v2 θ2]
func (e *element) stiffness() [6][6]float64 {
	l := e.l
	m := e.ea / l
	n := e.ei / (l * l * l)
	return [6][6]float64{
		{m, 0, 0, -m, 0, 0},
		{0, 12 * n, 6 * l * n, 0, -12 * n, 6 * l * n},
		{0, 6 * l * n, 4 * l * l * n, 0, -6 * l * n, 2 * l * l * n},
		{-m, 0, 0, m, 0, 0},
		{0, -12 * n, -6 * l * n, 0, 12 * n, -6 * l * n},
		{0, 6 * l * n, 2 * l * l * n, 0, -6 * l * n, 4 * l * l * n},
	}
}

// equivalentLoads returns the consistent nodal loads of a transverse load
// varying linearly from qa at the i-end to qb at the j-end.
func equivalentLoads(l, qa, qb float64) [6]float64 {
	return [6]float64{
		0,
		l * (7*qa + 3*qb) / 20,
		l * l * (3*qa + 2*qb) / 60,
		0,
		l * (3*qa + 7*qb) / 20,
		-l * l * (2*qa + 3*qb) / 60,
	}
}

// elementState is an element's response to one combination
type elementState struct {
	l, ei          float64
	v1, t1, v2, t2 float64
	qa, qb         float64

	// shear and moment acting on the element at its i-end
	vi, mi float64
}

// shear returns the sum of transverse forces left of a cut at a
func (s elementState) shear(a float64) float64 {
	return s.vi + s.qa*a + (s.qb-s.qa)*a*a/(2*s.l)
}

// moment returns the bending moment at a, sagging positive
func (s elementState) moment(a float64) float64 {
	return -s.mi + s.vi*a + s.qa*a*a/2 + (s.qb-s.qa)*a*a*a/(6*s.l)
}

// deflection returns the transverse displacement at a: the Hermite
// interpolation of the end values plus the fixed-end solution for the span load.
func (s elementState) deflection(a float64) float64 {
	l := s.l
	xi := a / l
	xi2, xi3 := xi*xi, xi*xi*xi
	h := s.v1*(1-3*xi2+2*xi3) +
		s.t1*l*(xi-2*xi2+xi3) +
		s.v2*(3*xi2-2*xi3) +
		s.t2*l*(xi3-xi2)

	r := l - a
	p := s.qa*a*a*r*r/24 +
		(s.qb-s.qa)*(math.Pow(a, 5)/(120*l)-l*a*a*a/40+l*l*a*a/60)
	return h + p/s.ei
}

// shearRoots returns the positions inside (0, l) where the shear vanishes
func (s elementState) shearRoots() []float64 {
	qa2 := (s.qb - s.qa) / (2 * s.l)
	var roots []float64
	add := func(a float64) {
		if a > 0 && a < s.l {
			roots = append(roots, a)
		}
	}
	if math.Abs(qa2) < 1e-15 {
		if s.qa != 0 {
			add(-s.vi / s.qa)
		}
		return roots
	}
	disc := s.qa*s.qa - 4*qa2*s.vi
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	add((-s.qa + sq) / (2 * qa2))
	add((-s.qa - sq) / (2 * qa2))
	return roots
}

// meshedMember is a member split into elements
type meshedMember struct {
	length   float64
	stations []float64 // element boundaries measured from the i-node
	nodes    []int     // mesh node at each station
	elements []element
}

// locate returns the element containing x and the distance into it
func (mm *meshedMember) locate(x float64) (*element, float64) {
	k := sort.Search(len(mm.elements), func(i int) bool {
		e := mm.elements[i]
		return e.x0+e.l >= x
	})
	if k == len(mm.elements) {
		k--
	}
	e := &mm.elements[k]
	a := math.Min(math.Max(x-e.x0, 0), e.l)
	return e, a
}

// nodeAt returns the mesh node at station x
func (mm *meshedMember) nodeAt(x float64) int {
	best, dist := 0, math.Inf(1)
	for k, s := range mm.stations {
		if d := math.Abs(s - x); d < dist {
			best, dist = k, d
		}
	}
	return mm.nodes[best]
}

type station struct {
	x    float64
	node int // -1 until a mesh node is assigned
}

// meshMember splits a member at the model nodes lying on it and at every load
// breakpoint. New mesh nodes are numbered from next; the count added is returned.
func (m *Model) meshMember(mb *Member, next int, caseIndex map[string]int, nCases int) (meshedMember, int) {
	iIdx, jIdx := m.nodeIndex[mb.INode], m.nodeIndex[mb.JNode]
	ni := m.nodes[iIdx]
	l := m.memberLength(mb)

	stations := []station{{x: 0, node: iIdx}, {x: l, node: jIdx}}
	for idx, n := range m.nodes {
		x := n.X - ni.X
		if math.Abs(n.Y-ni.Y) <= nodeTol && x > nodeTol && x < l-nodeTol {
			stations = append(stations, station{x: x, node: idx})
		}
	}
	for _, d := range mb.dist {
		stations = append(stations, station{x: d.x1, node: -1}, station{x: d.x2, node: -1})
	}
	for _, p := range mb.pts {
		stations = append(stations, station{x: p.x, node: -1})
	}
	sort.SliceStable(stations, func(a, b int) bool { return stations[a].x < stations[b].x })

	merged := []station{stations[0]}
	for _, s := range stations[1:] {
		last := &merged[len(merged)-1]
		if s.x-last.x <= nodeTol {
			if last.node < 0 {
				last.node = s.node
			}
			continue
		}
		merged = append(merged, s)
	}
	// the ends may have been merged into a nearby breakpoint
	first, last := &merged[0], &merged[len(merged)-1]
	first.x, first.node = 0, iIdx
	last.x, last.node = l, jIdx

	added := 0
	mm := meshedMember{length: l}
	for _, s := range merged {
		if s.node < 0 {
			s.node = next + added
			added++
		}
		mm.stations = append(mm.stations, s.x)
		mm.nodes = append(mm.nodes, s.node)
	}

	mtl := m.materials[mb.Material]
	sec := m.sections[mb.Section]
	for k := 0; k+1 < len(mm.stations); k++ {
		mm.elements = append(mm.elements, element{
			i:  mm.nodes[k],
			j:  mm.nodes[k+1],
			x0: mm.stations[k],
			l:  mm.stations[k+1] - mm.stations[k],
			ea: mtl.E * sec.A,
			ei: mtl.E * sec.Iz,
			q:  make([][2]float64, nCases),
		})
	}

	for _, d := range mb.dist {
		c := caseIndex[d.lc]
		at := func(x float64) float64 {
			return d.w1 + (d.w2-d.w1)*(x-d.x1)/(d.x2-d.x1)
		}
		for k := range mm.elements {
			e := &mm.elements[k]
			a, b := e.x0, e.x0+e.l
			if a >= d.x1-nodeTol && b <= d.x2+nodeTol {
				e.q[c][0] += at(a)
				e.q[c][1] += at(b)
			}
		}
	}
	return mm, added
}
