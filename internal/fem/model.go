// Package fem is a small planar linear-elastic frame solver.
//
// A Model is built by registering materials, sections, nodes and members,
// boundary conditions and loads tagged by load case. Analyze solves every load
// case once and answers queries for any registered combination by
// superposition. Members are Euler-Bernoulli beam elements lying along the
// global X axis; internally each member is split at every model node lying on
// it and at every load breakpoint, so nodal results are exact and results
// between nodes are recovered in closed form.
//
// Units are whatever the caller uses consistently (gopond uses kip and inch).
package fem

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// DOF identifies a nodal degree of freedom of the planar model
type DOF int

const (
	DX DOF = iota // translation along global X
	DY            // translation along global Y
	RZ            // rotation about global Z
)

const dofsPerNode = 3

// nodeTol is the distance under which two points are treated as the same node
const nodeTol = 1e-4

func (d DOF) String() string {
	switch d {
	case DX:
		return "DX"
	case DY:
		return "DY"
	case RZ:
		return "RZ"
	}
	return fmt.Sprintf("DOF(%d)", int(d))
}

var (
	// ErrUnstable is returned by Analyze when the stiffness matrix is singular
	// or too badly conditioned to solve.
	ErrUnstable = errors.New("fem: structure is unstable")

	// ErrNotAnalyzed is returned by result queries before a successful Analyze
	ErrNotAnalyzed = errors.New("fem: model has not been analyzed")
)

// Material holds elastic constants
type Material struct {
	E   float64 // Young's modulus
	G   float64 // shear modulus
	Nu  float64 // Poisson's ratio
	Rho float64 // density
}

// Section holds cross-section properties. Iz is used for in-plane bending.
type Section struct {
	A  float64
	Iy float64
	Iz float64
	J  float64
}

// Node is a named point of the model
type Node struct {
	Name string
	X, Y float64

	restrained [dofsPerNode]bool
	springs    [dofsPerNode]float64
}

type distLoad struct {
	w1, w2 float64
	x1, x2 float64
	lc     string
}

type ptLoad struct {
	p  float64
	x  float64
	lc string
}

// Member is a beam element between two nodes
type Member struct {
	Name     string
	INode    string
	JNode    string
	Material string
	Section  string

	dist []distLoad
	pts  []ptLoad
}

type combo struct {
	name    string
	factors map[string]float64
}

// Model is a planar frame model
type Model struct {
	materials map[string]Material
	sections  map[string]Section

	nodes     []*Node
	nodeIndex map[string]int

	members     []*Member
	memberIndex map[string]int

	combos     []combo
	comboIndex map[string]int

	sol *solution
}

// NewModel returns an empty model
func NewModel() *Model {
	return &Model{
		materials:   make(map[string]Material),
		sections:    make(map[string]Section),
		nodeIndex:   make(map[string]int),
		memberIndex: make(map[string]int),
		comboIndex:  make(map[string]int),
	}
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// AddMaterial registers a named material
func (m *Model) AddMaterial(name string, e, g, nu, rho float64) error {
	if _, ok := m.materials[name]; ok {
		return fmt.Errorf("fem: material %q already exists", name)
	}
	if !finite(e, g, nu, rho) || e <= 0 {
		return fmt.Errorf("fem: material %q needs a positive, finite modulus", name)
	}
	m.materials[name] = Material{E: e, G: g, Nu: nu, Rho: rho}
	m.sol = nil
	return nil
}

// AddSection registers a named cross-section
func (m *Model) AddSection(name string, a, iy, iz, j float64) error {
	if _, ok := m.sections[name]; ok {
		return fmt.Errorf("fem: section %q already exists", name)
	}
	if !finite(a, iy, iz, j) || a <= 0 || iz <= 0 {
		return fmt.Errorf("fem: section %q needs positive, finite A and Iz", name)
	}
	m.sections[name] = Section{A: a, Iy: iy, Iz: iz, J: j}
	m.sol = nil
	return nil
}

// AddNode adds a named node at (x, y)
func (m *Model) AddNode(name string, x, y float64) error {
	if _, ok := m.nodeIndex[name]; ok {
		return fmt.Errorf("fem: node %q already exists", name)
	}
	if !finite(x, y) {
		return fmt.Errorf("fem: node %q has a non-finite coordinate", name)
	}
	m.nodeIndex[name] = len(m.nodes)
	m.nodes = append(m.nodes, &Node{Name: name, X: x, Y: y})
	m.sol = nil
	return nil
}

// NodeAt returns the name of the node lying within tolerance of (x, y)
func (m *Model) NodeAt(x, y float64) (string, bool) {
	for _, n := range m.nodes {
		if math.Hypot(n.X-x, n.Y-y) <= nodeTol {
			return n.Name, true
		}
	}
	return "", false
}

// Node returns a copy of the named node
func (m *Model) Node(name string) (Node, bool) {
	i, ok := m.nodeIndex[name]
	if !ok {
		return Node{}, false
	}
	return *m.nodes[i], true
}

func (m *Model) node(name string) (*Node, error) {
	i, ok := m.nodeIndex[name]
	if !ok {
		return nil, fmt.Errorf("fem: unknown node %q", name)
	}
	return m.nodes[i], nil
}

func (m *Model) member(name string) (*Member, error) {
	i, ok := m.memberIndex[name]
	if !ok {
		return nil, fmt.Errorf("fem: unknown member %q", name)
	}
	return m.members[i], nil
}

// AddMember adds a member from iNode to jNode. The member must run along the
// global +X direction.
func (m *Model) AddMember(name, iNode, jNode, material, section string) error {
	if _, ok := m.memberIndex[name]; ok {
		return fmt.Errorf("fem: member %q already exists", name)
	}
	ni, err := m.node(iNode)
	if err != nil {
		return err
	}
	nj, err := m.node(jNode)
	if err != nil {
		return err
	}
	if _, ok := m.materials[material]; !ok {
		return fmt.Errorf("fem: unknown material %q", material)
	}
	if _, ok := m.sections[section]; !ok {
		return fmt.Errorf("fem: unknown section %q", section)
	}
	if math.Abs(nj.Y-ni.Y) > nodeTol || nj.X-ni.X <= nodeTol {
		return fmt.Errorf("fem: member %q must run from %s to %s along +X", name, iNode, jNode)
	}

	m.memberIndex[name] = len(m.members)
	m.members = append(m.members, &Member{
		Name:     name,
		INode:    iNode,
		JNode:    jNode,
		Material: material,
		Section:  section,
	})
	m.sol = nil
	return nil
}

func (m *Model) memberLength(mb *Member) float64 {
	return m.nodes[m.nodeIndex[mb.JNode]].X - m.nodes[m.nodeIndex[mb.INode]].X
}

// DefSupport sets which degrees of freedom of a node are restrained
func (m *Model) DefSupport(node string, dx, dy, rz bool) error {
	n, err := m.node(node)
	if err != nil {
		return err
	}
	n.restrained = [dofsPerNode]bool{dx, dy, rz}
	m.sol = nil
	return nil
}

// DefSupportSpring attaches a linear spring of stiffness k to one degree of
// freedom of a node. A restrained degree of freedom ignores its spring.
func (m *Model) DefSupportSpring(node string, dof DOF, k float64) error {
	n, err := m.node(node)
	if err != nil {
		return err
	}
	if dof < DX || dof > RZ {
		return fmt.Errorf("fem: invalid degree of freedom %v", dof)
	}
	if !finite(k) || k < 0 {
		return fmt.Errorf("fem: spring at %s %v must be finite and non-negative", node, dof)
	}
	n.springs[dof] = k
	m.sol = nil
	return nil
}

func (m *Model) checkSpan(mb *Member, x ...float64) error {
	l := m.memberLength(mb)
	for _, v := range x {
		if !finite(v) || v < -nodeTol || v > l+nodeTol {
			return fmt.Errorf("fem: position %g lies outside member %s (length %g)", v, mb.Name, l)
		}
	}
	return nil
}

// AddMemberDistLoad adds a linearly varying load in global Y, from w1 at x1
// to w2 at x2, both measured from the member's i-node.
func (m *Model) AddMemberDistLoad(member string, w1, w2, x1, x2 float64, lc string) error {
	mb, err := m.member(member)
	if err != nil {
		return err
	}
	if !finite(w1, w2) {
		return fmt.Errorf("fem: load on %s has a non-finite intensity", member)
	}
	if err := m.checkSpan(mb, x1, x2); err != nil {
		return err
	}
	if x2-x1 <= nodeTol {
		return fmt.Errorf("fem: distributed load on %s must have x2 > x1", member)
	}
	mb.dist = append(mb.dist, distLoad{w1: w1, w2: w2, x1: x1, x2: x2, lc: lc})
	m.sol = nil
	return nil
}

// AddMemberPtLoad adds a concentrated force in global Y at x from the i-node
func (m *Model) AddMemberPtLoad(member string, p, x float64, lc string) error {
	mb, err := m.member(member)
	if err != nil {
		return err
	}
	if !finite(p) {
		return fmt.Errorf("fem: load on %s has a non-finite magnitude", member)
	}
	if err := m.checkSpan(mb, x); err != nil {
		return err
	}
	mb.pts = append(mb.pts, ptLoad{p: p, x: x, lc: lc})
	m.sol = nil
	return nil
}

// AddLoadCombo registers a named combination of load cases
func (m *Model) AddLoadCombo(name string, factors map[string]float64) error {
	if _, ok := m.comboIndex[name]; ok {
		return fmt.Errorf("fem: load combination %q already exists", name)
	}
	f := make(map[string]float64, len(factors))
	for k, v := range factors {
		if !finite(v) {
			return fmt.Errorf("fem: combination %q has a non-finite factor for %s", name, k)
		}
		f[k] = v
	}
	m.comboIndex[name] = len(m.combos)
	m.combos = append(m.combos, combo{name: name, factors: f})
	m.sol = nil
	return nil
}

// LoadCases returns the sorted names of every case referenced by a load or a
// combination.
func (m *Model) LoadCases() []string {
	set := make(map[string]struct{})
	for _, mb := range m.members {
		for _, d := range mb.dist {
			set[d.lc] = struct{}{}
		}
		for _, p := range mb.pts {
			set[p.lc] = struct{}{}
		}
	}
	for _, c := range m.combos {
		for k := range c.factors {
			set[k] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
