package fem

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	span = 240.0
	modE = 29000.0
	secA = 4.16
	secI = 88.6
)

// simpleBeam returns a pinned-roller member M1 from N1 to N2
func simpleBeam(t *testing.T) *Model {
	t.Helper()
	m := NewModel()
	require.NoError(t, m.AddMaterial("Steel", modE, 11200, 0.3, 2.836e-4))
	require.NoError(t, m.AddSection("W12X14", secA, 2.36, secI, 0.0704))
	require.NoError(t, m.AddNode("N1", 0, 0))
	require.NoError(t, m.AddNode("N2", span, 0))
	require.NoError(t, m.AddMember("M1", "N1", "N2", "Steel", "W12X14"))
	require.NoError(t, m.DefSupport("N1", true, true, false))
	require.NoError(t, m.DefSupport("N2", false, true, false))
	return m
}

func TestUniformLoadMatchesClosedForm(t *testing.T) {
	m := simpleBeam(t)
	w := 0.01
	require.NoError(t, m.AddMemberDistLoad("M1", -w, -w, 0, span, "D"))
	require.NoError(t, m.AddLoadCombo("1.0D", map[string]float64{"D": 1}))
	require.NoError(t, m.Analyze())

	ei := modE * secI
	wantDefl := 5 * w * math.Pow(span, 4) / (384 * ei)
	wantMoment := w * span * span / 8

	defl, err := m.DeflectionArray("M1", "1.0D", 101)
	require.NoError(t, err)
	require.Len(t, defl, 101)
	assert.InDelta(t, 0, defl[0], 1e-12)
	assert.InDelta(t, 0, defl[100], 1e-12)
	assert.InEpsilon(t, -wantDefl, defl[50], 1e-6)

	minDefl, err := m.MinDeflection("M1", "1.0D")
	require.NoError(t, err)
	assert.InEpsilon(t, -wantDefl, minDefl, 1e-6)

	maxM, err := m.MaxMoment("M1", "1.0D")
	require.NoError(t, err)
	assert.InEpsilon(t, wantMoment, maxM, 1e-9)

	minM, err := m.MinMoment("M1", "1.0D")
	require.NoError(t, err)
	assert.InDelta(t, 0, minM, 1e-9)

	moments, err := m.MomentArray("M1", "1.0D", 5)
	require.NoError(t, err)
	assert.InEpsilon(t, 3*wantMoment/4, moments[1], 1e-9)

	for _, node := range []string{"N1", "N2"} {
		r, err := m.Reaction(node, DY, "1.0D")
		require.NoError(t, err)
		assert.InEpsilon(t, w*span/2, r, 1e-9, node)
	}

	shear, err := m.ShearArray("M1", "1.0D", 3)
	require.NoError(t, err)
	assert.InEpsilon(t, w*span/2, shear[0], 1e-9)
	assert.InDelta(t, 0, shear[1], 1e-9)
	assert.InEpsilon(t, -w*span/2, shear[2], 1e-9)
}

func TestPointLoadAndSuperposition(t *testing.T) {
	m := simpleBeam(t)
	w, p := 0.01, 1.0
	require.NoError(t, m.AddMemberDistLoad("M1", -w, -w, 0, span, "D"))
	require.NoError(t, m.AddMemberPtLoad("M1", -p, span/2, "L"))
	require.NoError(t, m.AddLoadCombo("1.0L", map[string]float64{"L": 1}))
	require.NoError(t, m.AddLoadCombo("1.2D+1.6L", map[string]float64{"D": 1.2, "L": 1.6}))
	require.NoError(t, m.Analyze())

	ei := modE * secI
	wantDefl := p * span * span * span / (48 * ei)

	d, err := m.MinDeflection("M1", "1.0L")
	require.NoError(t, err)
	assert.InEpsilon(t, -wantDefl, d, 1e-6)

	maxM, err := m.MaxMoment("M1", "1.0L")
	require.NoError(t, err)
	assert.InEpsilon(t, p*span/4, maxM, 1e-9)

	r, err := m.Reaction("N1", DY, "1.2D+1.6L")
	require.NoError(t, err)
	assert.InEpsilon(t, 1.2*w*span/2+1.6*p/2, r, 1e-9)

	maxM, err = m.MaxMoment("M1", "1.2D+1.6L")
	require.NoError(t, err)
	assert.InEpsilon(t, 1.2*w*span*span/8+1.6*p*span/4, maxM, 1e-9)

	maxV, err := m.MaxShear("M1", "1.0L")
	require.NoError(t, err)
	assert.InEpsilon(t, p/2, maxV, 1e-9)
	minV, err := m.MinShear("M1", "1.0L")
	require.NoError(t, err)
	assert.InEpsilon(t, -p/2, minV, 1e-9)
}

func TestLinearlyVaryingLoad(t *testing.T) {
	m := simpleBeam(t)
	q := 0.01
	require.NoError(t, m.AddMemberDistLoad("M1", 0, -q, 0, span, "R"))
	require.NoError(t, m.AddLoadCombo("1.0R", map[string]float64{"R": 1}))
	require.NoError(t, m.Analyze())

	r1, err := m.Reaction("N1", DY, "1.0R")
	require.NoError(t, err)
	r2, err := m.Reaction("N2", DY, "1.0R")
	require.NoError(t, err)
	assert.InEpsilon(t, q*span/6, r1, 1e-9)
	assert.InEpsilon(t, q*span/3, r2, 1e-9)

	maxM, err := m.MaxMoment("M1", "1.0R")
	require.NoError(t, err)
	assert.InEpsilon(t, q*span*span/(9*math.Sqrt(3)), maxM, 1e-9)
}

func TestPartialLoadReactions(t *testing.T) {
	m := simpleBeam(t)
	require.NoError(t, m.AddMemberDistLoad("M1", -0.01, -0.01, 0, span/2, "D"))
	require.NoError(t, m.AddLoadCombo("1.0D", map[string]float64{"D": 1}))
	require.NoError(t, m.Analyze())

	r1, err := m.Reaction("N1", DY, "1.0D")
	require.NoError(t, err)
	r2, err := m.Reaction("N2", DY, "1.0D")
	require.NoError(t, err)
	assert.InEpsilon(t, 0.9, r1, 1e-9)
	assert.InEpsilon(t, 0.3, r2, 1e-9)

	d, err := m.DeflectionArray("M1", "1.0D", 5)
	require.NoError(t, err)
	assert.Less(t, d[1], d[3])
	assert.Less(t, d[2], 0.0)
}

func TestMidspanSpring(t *testing.T) {
	m := simpleBeam(t)
	ei := modE * secI
	kb := 48 * ei / (span * span * span)

	require.NoError(t, m.AddNode("N3", span/2, 0))
	require.NoError(t, m.DefSupportSpring("N3", DY, kb))
	require.NoError(t, m.AddMemberPtLoad("M1", -1, span/2, "D"))
	require.NoError(t, m.AddLoadCombo("1.0D", map[string]float64{"D": 1}))
	require.NoError(t, m.Analyze())

	u, err := m.Displacement("N3", DY, "1.0D")
	require.NoError(t, err)
	assert.InEpsilon(t, -1/(2*kb), u, 1e-9)

	r, err := m.Reaction("N3", DY, "1.0D")
	require.NoError(t, err)
	assert.InEpsilon(t, 0.5, r, 1e-9)

	r1, err := m.Reaction("N1", DY, "1.0D")
	require.NoError(t, err)
	assert.InEpsilon(t, 0.25, r1, 1e-9)

	name, ok := m.NodeAt(span/2+1e-6, 0)
	assert.True(t, ok)
	assert.Equal(t, "N3", name)
}

func TestUnstableStructure(t *testing.T) {
	m := simpleBeam(t)
	// a node off the member has no stiffness at all
	require.NoError(t, m.AddNode("N3", 0, 50))
	require.NoError(t, m.AddMemberPtLoad("M1", -1, span/2, "D"))
	require.NoError(t, m.AddLoadCombo("1.0D", map[string]float64{"D": 1}))

	err := m.Analyze()
	assert.ErrorIs(t, err, ErrUnstable)
	assert.False(t, m.Analyzed())

	require.NoError(t, m.DefSupport("N3", true, true, true))
	require.NoError(t, m.Analyze())
	assert.True(t, m.Analyzed())
}

func TestModelErrors(t *testing.T) {
	m := simpleBeam(t)

	_, err := m.Reaction("N1", DY, "1.0D")
	assert.ErrorIs(t, err, ErrNotAnalyzed)

	assert.Error(t, m.AddNode("N1", 5, 0))
	assert.Error(t, m.AddNode("N9", math.NaN(), 0))
	require.NoError(t, m.AddNode("N9", 0, 50))
	assert.Error(t, m.AddMember("M2", "N1", "N9", "Steel", "W12X14"))
	assert.Error(t, m.AddMember("M2", "N2", "N1", "Steel", "W12X14"))
	assert.Error(t, m.AddMember("M2", "N1", "N2", "Aluminum", "W12X14"))
	assert.Error(t, m.AddMemberDistLoad("M1", -1, -1, 0, span+10, "D"))
	assert.Error(t, m.AddMemberDistLoad("M1", -1, -1, 50, 50, "D"))
	assert.Error(t, m.AddMemberPtLoad("M1", -1, -5, "D"))
	assert.Error(t, m.AddMemberPtLoad("M9", -1, 5, "D"))
	assert.Error(t, m.DefSupportSpring("N1", DY, -1))

	m = simpleBeam(t)
	require.NoError(t, m.AddMemberPtLoad("M1", -1, 60, "D"))
	require.NoError(t, m.AddLoadCombo("1.0D", map[string]float64{"D": 1}))
	require.NoError(t, m.Analyze())
	_, err = m.MaxMoment("M1", "1.4D")
	assert.Error(t, err)
	_, err = m.MomentArray("M9", "1.0D", 3)
	assert.Error(t, err)

	// free nodes carry no reaction
	require.NoError(t, m.AddNode("N3", 60, 0))
	require.NoError(t, m.Analyze())
	r, err := m.Reaction("N3", DY, "1.0D")
	require.NoError(t, err)
	assert.Equal(t, 0.0, r)
	assert.Equal(t, []string{"D"}, m.LoadCases())
}
