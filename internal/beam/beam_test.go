package beam

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gopond/internal/asce"
	"github.com/alexiusacademia/gopond/internal/fem"
	"github.com/alexiusacademia/gopond/internal/section"
)

func newTestBeam(t *testing.T, length float64) *Beam {
	t.Helper()
	b, err := NewBeam(length, "")
	require.NoError(t, err)
	return b
}

func requireValidationError(t *testing.T, err error, field string) {
	t.Helper()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "expected *ValidationError, got %v", err)
	assert.Equal(t, field, ve.Field)
}

func TestNewBeam(t *testing.T) {
	b := newTestBeam(t, 20)

	assert.Equal(t, DefaultName, b.Name())
	assert.Equal(t, 20.0, b.Length())
	assert.Equal(t, "W12X14", b.Section().Designator)
	assert.False(t, b.ValidResults())

	st := b.Stations()
	require.Len(t, st, NumStations)
	assert.Equal(t, 0.0, st[0])
	assert.InDelta(t, 0.2, st[1], 1e-12)
	assert.Equal(t, 20.0, st[NumSegments])
	assert.Len(t, b.PondedDepthHistory(), 1)
	assert.Len(t, b.DeflectionHistory(), 1)

	for _, length := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		_, err := NewBeam(length, "x")
		requireValidationError(t, err, "length")
	}
}

func TestSlopeAndElevations(t *testing.T) {
	b := newTestBeam(t, 20)
	require.NoError(t, b.AddOrUpdateBeamSlope(0.25))

	el := b.Elevations()
	assert.Equal(t, 0.0, el[0])
	assert.InDelta(t, 2.5, el[50], 1e-12)
	assert.InDelta(t, 5.0, el[NumSegments], 1e-12)

	requireValidationError(t, b.AddOrUpdateBeamSlope(-0.1), "slope")
	requireValidationError(t, b.AddOrUpdateBeamSlope(math.NaN()), "slope")
	assert.Equal(t, 0.25, b.Slope())
}

func TestSupportsAndLoadsValidation(t *testing.T) {
	b := newTestBeam(t, 20)

	requireValidationError(t, b.AddSupport(-1, 0, 0, 0), "location")
	requireValidationError(t, b.AddSupport(21, 0, 0, 0), "location")
	t.Run("negative springs are rejected", func(t *testing.T) {
		// stricter than float coercion: a negative stiffness makes the frame
		// indefinite
		requireValidationError(t, b.AddSupport(5, -1, 0, 0), "spring constant")
		requireValidationError(t, b.AddSupport(5, 0, -1, 0), "spring constant")
		requireValidationError(t, b.AddSupport(5, 0, 0, -1), "spring constant")
	})
	requireValidationError(t, b.AddSupport(5, 0, math.Inf(1), 0), "spring constant")
	require.NoError(t, b.AddSupport(0, 0, 0, 0))
	require.NoError(t, b.AddSupport(20, 0, 0, 0))
	assert.Len(t, b.Supports(), 2)

	s, err := b.DeleteSupport(1)
	require.NoError(t, err)
	assert.Equal(t, 20.0, s.Location)
	_, err = b.DeleteSupport(5)
	requireValidationError(t, err, "index")

	t.Run("line loads need stop beyond start", func(t *testing.T) {
		// reversed and zero-length loads are rejected rather than swapped
		requireValidationError(t, b.AddDistLoad(10, 5, 100, 100, asce.Dead), "stop")
		requireValidationError(t, b.AddDistLoad(5, 5, 100, 100, asce.Dead), "stop")
		requireValidationError(t, b.AddDistLoad(5, 5+1e-7, 100, 100, asce.Dead), "stop")
	})
	requireValidationError(t, b.AddDistLoad(0, 25, 100, 100, asce.Dead), "stop")
	requireValidationError(t, b.AddDistLoad(0, 5, 100, 100, asce.PondingRain), "case")
	requireValidationError(t, b.AddPointLoad(5, 100, asce.Case("W")), "case")
	requireValidationError(t, b.AddPointLoad(5, math.NaN(), asce.Dead), "load")

	require.NoError(t, b.AddDistLoad(0, 20, 100, 100, asce.Dead))
	require.NoError(t, b.AddDistLoad(0, 10, 20, 20, asce.Snow))
	require.NoError(t, b.AddPointLoad(5, 500, asce.RoofLive))
	require.NoError(t, b.AddPointLoad(15, 500, asce.Dead))

	require.NoError(t, b.ClearDistLoads(asce.Dead))
	require.Len(t, b.DistLoads(), 1)
	assert.Equal(t, asce.Snow, b.DistLoads()[0].Case)

	p, err := b.DeletePointLoad(0)
	require.NoError(t, err)
	assert.Equal(t, asce.RoofLive, p.Case)
	require.NoError(t, b.ClearPointLoads(asce.Dead))
	assert.Empty(t, b.PointLoads())
}

func TestRainLoad(t *testing.T) {
	tests := []struct {
		name      string
		slope     float64
		static    float64
		hydraulic float64
		wantStop  float64
		wantW1    float64
		wantW2    float64
	}{
		{name: "limited by slope", slope: 0.25, static: 0.5, hydraulic: 0.5, wantStop: 4, wantW1: 52, wantW2: 0},
		{name: "flat roof", slope: 0, static: 1, hydraulic: 0.5, wantStop: 20, wantW1: 78, wantW2: 78},
		{name: "limited by span", slope: 0.01, static: 1, hydraulic: 0, wantStop: 20, wantW1: 52, wantW2: 41.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBeam(t, 20)
			require.NoError(t, b.AddOrUpdateTributaryWidth(10))
			require.NoError(t, b.AddOrUpdateBeamSlope(tt.slope))
			require.NoError(t, b.AddDistLoad(0, 20, 1, 1, asce.Rain))
			require.NoError(t, b.AddDistLoad(0, 20, 15, 15, asce.Dead))

			require.NoError(t, b.AddOrUpdateRainLoad(tt.static, tt.hydraulic, true))
			assert.InDelta(t, tt.wantStop, b.RainLoadLimit(), 1e-12)

			loads := b.DistLoads()
			require.Len(t, loads, 2)
			assert.Equal(t, asce.Dead, loads[0].Case)
			rain := loads[1]
			assert.Equal(t, asce.Rain, rain.Case)
			assert.Equal(t, 0.0, rain.Start)
			assert.InDelta(t, tt.wantStop, rain.Stop, 1e-12)
			assert.InDelta(t, tt.wantW1, rain.StartLoad, 1e-9)
			assert.InDelta(t, tt.wantW2, rain.StopLoad, 1e-9)
		})
	}

	t.Run("wet length too short for the frame model", func(t *testing.T) {
		b := newTestBeam(t, 20)
		require.NoError(t, b.AddSupport(0, 0, 0, 0))
		require.NoError(t, b.AddSupport(20, 0, 0, 0))
		require.NoError(t, b.AddOrUpdateTributaryWidth(10))
		require.NoError(t, b.AddOrUpdateBeamSlope(1000))
		require.NoError(t, b.AddDistLoad(0, 20, 1, 1, asce.Rain))

		require.NoError(t, b.AddOrUpdateRainLoad(0.0001, 0, true))
		assert.InDelta(t, 1e-7, b.RainLoadLimit(), 1e-12)
		assert.Empty(t, b.DistLoads())

		require.NoError(t, b.AddDistLoad(0, 20, 100, 100, asce.Dead))
		assert.NoError(t, b.AnalyzePonding())
	})

	t.Run("without auto add", func(t *testing.T) {
		b := newTestBeam(t, 20)
		require.NoError(t, b.AddOrUpdateRainLoad(0.5, 0.25, false))
		assert.Equal(t, RainDepth{Static: 0.5, Hydraulic: 0.25}, b.RainDepth())
		assert.Empty(t, b.DistLoads())
		requireValidationError(t, b.AddOrUpdateRainLoad(-1, 0, false), "rain depth")
	})
}

func TestSectionAssignment(t *testing.T) {
	b := newTestBeam(t, 22)

	require.NoError(t, b.AddOrUpdateSection("w12 x 26"))
	assert.Equal(t, "W12X26", b.Section().Designator)
	assert.Equal(t, 204.0, b.Section().Iz)

	err := b.AddOrUpdateSection("W99X1")
	requireValidationError(t, err, "section")
	assert.Equal(t, "W12X26", b.Section().Designator)

	require.NoError(t, b.AddOrUpdateSection("14k1"))
	at22 := b.Section()
	assert.True(t, at22.SpanDependent)
	assert.InDelta(t, 0.05*at22.Iz, at22.Iy, 1e-12)
	assert.InDelta(t, 1.05*at22.Iz, at22.J, 1e-12)

	require.NoError(t, b.SetLength(26))
	assert.Equal(t, at22.Iz, b.Section().Iz)
	require.NoError(t, b.RefreshSection())
	assert.NotEqual(t, at22.Iz, b.Section().Iz)
	assert.Equal(t, "14K1", b.Section().Designator)

	shape := section.IShape("BUILT-UP", 12, 6, 0.5, 0.25)
	require.NoError(t, b.SetCustomSection(shape))
	assert.Equal(t, section.Custom, b.Section().Family)
	require.NoError(t, b.RefreshSection())
	assert.Equal(t, "BUILT-UP", b.Section().Designator)
}

func TestSetLengthKeepsStationsUntilResegment(t *testing.T) {
	b := newTestBeam(t, 20)
	require.NoError(t, b.AddSupport(0, 0, 0, 0))
	require.NoError(t, b.SetLength(30))

	assert.Equal(t, 20.0, b.Stations()[NumSegments])
	_, err := ModelAssembler{}.Assemble(b, PondingSample{})
	requireValidationError(t, err, "length")

	b.Resegment()
	assert.Equal(t, 30.0, b.Stations()[NumSegments])
	_, err = ModelAssembler{}.Assemble(b, PondingSample{})
	assert.NoError(t, err)
}

func TestSetLengthKeepsSupportsAndLoadsInSpan(t *testing.T) {
	b := newTestBeam(t, 20)
	require.NoError(t, b.AddSupport(0, 0, 0, 0))
	require.NoError(t, b.AddSupport(20, 0, 0, 0))
	require.NoError(t, b.AddDistLoad(0, 20, 100, 100, asce.Dead))

	requireValidationError(t, b.SetLength(10), "length")
	assert.Equal(t, 20.0, b.Length())

	_, err := b.DeleteSupport(1)
	require.NoError(t, err)
	requireValidationError(t, b.SetLength(10), "length")
	_, err = b.DeleteDistLoad(0)
	require.NoError(t, err)
	require.NoError(t, b.AddDistLoad(0, 10, 100, 100, asce.Dead))
	require.NoError(t, b.AddPointLoad(12, 500, asce.RoofLive))
	requireValidationError(t, b.SetLength(10), "length")

	_, err = b.DeletePointLoad(0)
	require.NoError(t, err)
	require.NoError(t, b.SetLength(10))
	b.Resegment()
	require.NoError(t, b.AddSupport(10, 0, 0, 0))

	restored, err := FromSnapshot(b.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, 10.0, restored.Length())
	assert.Equal(t, b.Supports(), restored.Supports())
	assert.Equal(t, b.DistLoads(), restored.DistLoads())
	assert.NoError(t, restored.AnalyzePonding())
}

type distCall struct {
	w1, w2, x1, x2 float64
	lc             string
}

type ptCall struct {
	p, x float64
	lc   string
}

type springCall struct {
	node string
	dof  fem.DOF
	k    float64
}

type supportCall struct {
	node       string
	dx, dy, rz bool
}

// recordingModel is a real frame model that remembers the modeling calls
type recordingModel struct {
	*fem.Model
	nodes    map[string][2]float64
	dists    []distCall
	points   []ptCall
	springs  []springCall
	supports []supportCall
}

func newRecordingModel() *recordingModel {
	return &recordingModel{Model: fem.NewModel(), nodes: make(map[string][2]float64)}
}

func (r *recordingModel) AddNode(name string, x, y float64) error {
	r.nodes[name] = [2]float64{x, y}
	return r.Model.AddNode(name, x, y)
}

func (r *recordingModel) DefSupport(node string, dx, dy, rz bool) error {
	r.supports = append(r.supports, supportCall{node, dx, dy, rz})
	return r.Model.DefSupport(node, dx, dy, rz)
}

func (r *recordingModel) DefSupportSpring(node string, dof fem.DOF, k float64) error {
	r.springs = append(r.springs, springCall{node, dof, k})
	return r.Model.DefSupportSpring(node, dof, k)
}

func (r *recordingModel) AddMemberDistLoad(member string, w1, w2, x1, x2 float64, lc string) error {
	r.dists = append(r.dists, distCall{w1, w2, x1, x2, lc})
	return r.Model.AddMemberDistLoad(member, w1, w2, x1, x2, lc)
}

func (r *recordingModel) AddMemberPtLoad(member string, p, x float64, lc string) error {
	r.points = append(r.points, ptCall{p, x, lc})
	return r.Model.AddMemberPtLoad(member, p, x, lc)
}

func TestAssemble(t *testing.T) {
	b := newTestBeam(t, 20)
	require.NoError(t, b.AddOrUpdateTributaryWidth(10))
	require.NoError(t, b.AddSupport(0, 0, 0, 0))
	require.NoError(t, b.AddSupport(10, 0, 1200, 0))
	require.NoError(t, b.AddSupport(20, 0, 0, 0))
	require.NoError(t, b.AddSupport(20, 0, 0, 0))
	require.NoError(t, b.AddDistLoad(0, 20, 100, 100, asce.Dead))
	require.NoError(t, b.AddPointLoad(5, 500, asce.RoofLive))

	ones := zeroProfile()
	for i := range ones.Rain {
		ones.Rain[i] = 1
		ones.Snow[i] = 2
	}

	var built []*recordingModel
	asm := ModelAssembler{NewModel: func() StructuralModel {
		m := newRecordingModel()
		built = append(built, m)
		return m
	}}

	a, err := asm.Assemble(b, b.PondingSample(ones))
	require.NoError(t, err)
	require.Len(t, built, 1)
	rec := built[0]

	assert.Equal(t, [2]float64{0, 0}, rec.nodes["N1"])
	assert.Equal(t, [2]float64{240, 0}, rec.nodes["N2"])
	assert.Equal(t, [2]float64{120, 0}, rec.nodes["N3"])
	assert.Len(t, rec.nodes, 3)

	assert.Equal(t, []SupportNode{{"N1", 0}, {"N3", 10}, {"N2", 20}}, a.SupportNodes)
	assert.Contains(t, rec.supports, supportCall{"N3", true, false, false})
	assert.Contains(t, rec.supports, supportCall{"N1", true, true, false})
	require.Len(t, rec.springs, 1)
	assert.Equal(t, "N3", rec.springs[0].node)
	assert.Equal(t, fem.DY, rec.springs[0].dof)
	assert.InDelta(t, 0.1, rec.springs[0].k, 1e-12)

	byCase := make(map[string][]distCall)
	for _, d := range rec.dists {
		byCase[d.lc] = append(byCase[d.lc], d)
	}
	require.Len(t, byCase["D"], 1)
	assert.InDelta(t, -100.0/12000, byCase["D"][0].w1, 1e-15)
	assert.Equal(t, 240.0, byCase["D"][0].x2)

	require.Len(t, byCase["PR"], NumSegments)
	require.Len(t, byCase["PS"], NumSegments)
	assert.InDelta(t, -52.0/12000, byCase["PR"][0].w1, 1e-15)
	assert.InDelta(t, -104.0/12000, byCase["PS"][NumSegments-1].w2, 1e-15)
	assert.InDelta(t, 2.4, byCase["PR"][0].x2, 1e-12)

	require.Len(t, rec.points, 1)
	assert.Equal(t, ptCall{-0.5, 60, "Lr"}, rec.points[0])

	again, err := asm.Assemble(b, PondingSample{})
	require.NoError(t, err)
	require.Len(t, built, 2)
	assert.NotSame(t, a.Model, again.Model)
	assert.Empty(t, built[1].dists[1:])
}

func TestAssembleWithoutSupports(t *testing.T) {
	b := newTestBeam(t, 20)
	_, err := ModelAssembler{}.Assemble(b, PondingSample{})
	assert.ErrorIs(t, err, ErrNoSupports)
}
