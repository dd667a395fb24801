package beam

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gopond/internal/asce"
	"github.com/alexiusacademia/gopond/internal/logging"
)

// simplySupported returns a pinned 20 ft beam
func simplySupported(t *testing.T) *Beam {
	t.Helper()
	b := newTestBeam(t, 20)
	require.NoError(t, b.AddSupport(0, 0, 0, 0))
	require.NoError(t, b.AddSupport(20, 0, 0, 0))
	return b
}

func countingFactory(n *int) ModelFactory {
	return func() StructuralModel {
		*n++
		return NewFEModel()
	}
}

func TestPondingConvergesOnStiffBeam(t *testing.T) {
	b := simplySupported(t)
	require.NoError(t, b.AddOrUpdateTributaryWidth(10))
	require.NoError(t, b.AddOrUpdateBeamSlope(0.25))
	require.NoError(t, b.AddOrUpdateSection("W12X26"))
	require.NoError(t, b.AddOrUpdateRainLoad(0.5, 0.5, true))

	var buf bytes.Buffer
	logger, err := logging.New(&buf, logging.Options{Level: "debug"})
	require.NoError(t, err)

	models := 0
	solver := PondingSolver{NewModel: countingFactory(&models), Logger: logger}
	require.NoError(t, solver.Solve(b))
	assert.True(t, b.ValidResults())

	stats := b.Stats()
	assert.GreaterOrEqual(t, stats.Iterations, 2)
	assert.LessOrEqual(t, stats.Iterations, 10)
	assert.Equal(t, stats.Iterations, models)
	require.Len(t, stats.PondedArea, stats.Iterations+1)
	require.Len(t, stats.RelErr, stats.Iterations+1)
	assert.Len(t, b.PondedDepthHistory(), stats.Iterations+1)
	assert.Len(t, b.DeflectionHistory(), stats.Iterations+1)

	// seed: a 1 in deep wedge over the first 4 ft
	assert.InDelta(t, 2.0, stats.PondedArea[0].Rain, 1e-9)
	assert.Equal(t, Pair{}, stats.RelErr[0])
	last := stats.RelErr[stats.Iterations]
	assert.Less(t, last.Rain, DefaultTolerance)
	assert.Less(t, last.Snow, DefaultTolerance)

	// deflection only deepens the pond
	final := stats.PondedArea[stats.Iterations]
	assert.Greater(t, final.Rain, stats.PondedArea[0].Rain)
	depth := b.PondedDepthHistory()[stats.Iterations]
	assert.Greater(t, depth.Rain[0], 1.0-1e-12)
	assert.Equal(t, 0.0, depth.Rain[NumSegments])

	// the ponding case reactions carry the whole water load
	env := b.Envelopes()
	var total float64
	for _, n := range b.SupportNodes() {
		total += env.Reactions[n.Name]["1.0PR"]
	}
	want := asce.RainUnitWeight * 10 * stats.PondedArea[stats.Iterations-1].Rain / 1000
	assert.InEpsilon(t, want, total, 1e-2)

	assert.Contains(t, buf.String(), "DEBUG: ponding iteration")
	assert.Contains(t, buf.String(), "SUCCESS: convergence reached")
}

func TestPondingDivergesOnFlexibleBeam(t *testing.T) {
	b := simplySupported(t)
	require.NoError(t, b.AddOrUpdateTributaryWidth(100))
	require.NoError(t, b.AddOrUpdateSection("W6X9"))
	require.NoError(t, b.AddOrUpdateRainLoad(0.5, 0.5, false))

	models := 0
	err := PondingSolver{NewModel: countingFactory(&models)}.Solve(b)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotConverged)

	var ce *ConvergenceError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, DefaultMaxIterations+1, ce.Iterations)
	assert.Greater(t, ce.RelErr.Rain, DefaultTolerance)
	assert.Equal(t, DefaultMaxIterations+1, models)
	assert.False(t, b.ValidResults())

	stats := b.Stats()
	assert.Equal(t, ce.Iterations, stats.Iterations)
	for i := 1; i < len(stats.PondedArea); i++ {
		assert.Greater(t, stats.PondedArea[i].Rain, stats.PondedArea[i-1].Rain)
	}

	_, err = b.ReactionEnvelopeAtNode("N1", "asd")
	assert.ErrorIs(t, err, ErrNoResults)

	models = 0
	err = PondingSolver{NewModel: countingFactory(&models), MaxIterations: 5}.Solve(b)
	assert.ErrorIs(t, err, ErrNotConverged)
	assert.Equal(t, 6, models)
	assert.Len(t, b.PondedDepthHistory(), 7)
}

func TestPondingWithoutWater(t *testing.T) {
	b := simplySupported(t)
	require.NoError(t, b.AnalyzePonding())

	stats := b.Stats()
	assert.Equal(t, 2, stats.Iterations)
	assert.Equal(t, 0.0, stats.PondedArea[2].Rain)
	assert.True(t, math.IsInf(stats.RelErr[1].Rain, 1))
	assert.True(t, math.IsInf(stats.RelErr[2].Snow, 1))
	assert.True(t, b.ValidResults())
}

func TestPondingRequiresSupports(t *testing.T) {
	b := newTestBeam(t, 20)
	assert.ErrorIs(t, b.AnalyzePonding(), ErrNoSupports)
}

// deadLoadBeam converges at once: the slope drains the small dead load
// deflection
func deadLoadBeam(t *testing.T) *Beam {
	t.Helper()
	b := simplySupported(t)
	require.NoError(t, b.AddOrUpdateBeamSlope(0.25))
	require.NoError(t, b.AddDistLoad(0, 20, 100, 100, asce.Dead))
	require.NoError(t, b.AnalyzePonding())
	return b
}

func TestEnvelopes(t *testing.T) {
	b := deadLoadBeam(t)
	require.True(t, b.ValidResults())

	nodes := b.SupportNodes()
	require.Equal(t, []SupportNode{{"N1", 0}, {"N2", 20}}, nodes)

	env := b.Envelopes()
	for _, n := range nodes {
		assert.InEpsilon(t, 1.0, env.Reactions[n.Name]["1.0D"], 1e-9)
		assert.InEpsilon(t, 1.4, env.Reactions[n.Name]["1.4D"], 1e-9)
		assert.InDelta(t, 0, env.Reactions[n.Name]["1.0Lr"], 1e-12)
	}
	assert.Len(t, env.Reactions["N1"], len(asce.AllCombinations()))

	assert.InEpsilon(t, 60.0, env.MaxMoment[GroupCases]["1.0D"], 1e-9)
	assert.InDelta(t, 0, env.MinMoment[GroupCases]["1.0D"], 1e-9)
	assert.InEpsilon(t, 72.0, env.MaxMoment[GroupLRFD]["1.2D+1.6Lr"], 1e-9)

	w := 100.0 / 12000
	wantDefl := 5 * w * math.Pow(240, 4) / (384 * 29000 * b.Section().Iz)
	assert.InEpsilon(t, wantDefl, env.MaxDeflection[GroupCases]["1.0D"], 1e-6)
	assert.InDelta(t, 0, env.MinDeflection[GroupCases]["1.0D"], 1e-12)
	assert.InEpsilon(t, wantDefl, env.MaxDeflection[GroupASD]["1.0D+1.0S"], 1e-6)
	assert.Empty(t, env.MaxShear[GroupASD])

	asd, err := b.ReactionEnvelopeAtNode("N2", "ASD")
	require.NoError(t, err)
	assert.Len(t, asd, len(asce.Combinations(asce.ASD)))
	assert.InEpsilon(t, 1.0, asd["1.0D+1.0R"], 1e-9)
	assert.NotContains(t, asd, "1.4D")

	lrfd, err := b.ReactionEnvelopeAtNode("N1", "lrfd")
	require.NoError(t, err)
	assert.Len(t, lrfd, len(asce.Combinations(asce.LRFD)))

	_, err = b.ReactionEnvelopeAtNode("N9", "asd")
	requireValidationError(t, err, "node")
	_, err = b.ReactionEnvelopeAtNode("N1", "service")
	requireValidationError(t, err, "family")

	diagrams, err := b.Diagrams()
	require.NoError(t, err)
	require.Len(t, diagrams, len(asce.Combinations(asce.ASD))+len(asce.Combinations(asce.LRFD)))
	for _, d := range diagrams {
		require.Len(t, d.Moment, NumStations)
		require.Len(t, d.Shear, NumStations)
		if d.Combo == "1.4D" {
			assert.Equal(t, asce.LRFD, d.Family)
			assert.InEpsilon(t, 84.0, d.Moment[50], 1e-9)
			assert.InEpsilon(t, 1.4, d.Shear[0], 1e-9)
		}
	}
}

func TestMutatorsInvalidateResults(t *testing.T) {
	mutators := map[string]func(b *Beam) error{
		"add support":      func(b *Beam) error { return b.AddSupport(10, 0, 0, 0) },
		"delete support":   func(b *Beam) error { _, err := b.DeleteSupport(0); return err },
		"add line load":    func(b *Beam) error { return b.AddDistLoad(0, 5, 10, 10, asce.Snow) },
		"delete line load": func(b *Beam) error { _, err := b.DeleteDistLoad(0); return err },
		"clear line loads": func(b *Beam) error { return b.ClearDistLoads(asce.Rain) },
		"add point load":   func(b *Beam) error { return b.AddPointLoad(5, 10, asce.Dead) },
		"clear points":     func(b *Beam) error { return b.ClearPointLoads(asce.Dead) },
		"slope":            func(b *Beam) error { return b.AddOrUpdateBeamSlope(0.5) },
		"width":            func(b *Beam) error { return b.AddOrUpdateTributaryWidth(5) },
		"rain":             func(b *Beam) error { return b.AddOrUpdateRainLoad(0, 0, false) },
		"section":          func(b *Beam) error { return b.AddOrUpdateSection("W16X26") },
		"name":             func(b *Beam) error { return b.SetName("B2") },
		"length":           func(b *Beam) error { return b.SetLength(20) },
	}

	for name, mutate := range mutators {
		t.Run(name, func(t *testing.T) {
			b := deadLoadBeam(t)
			require.True(t, b.ValidResults())
			require.NoError(t, mutate(b))
			assert.False(t, b.ValidResults())

			_, err := b.ReactionEnvelopeAtNode("N1", "asd")
			assert.ErrorIs(t, err, ErrNoResults)
			_, err = b.Diagrams()
			assert.ErrorIs(t, err, ErrNoResults)
		})
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	b := deadLoadBeam(t)
	require.NoError(t, b.AddOrUpdateTributaryWidth(12))
	require.NoError(t, b.AddPointLoad(7.5, 250, asce.RoofLive))
	require.NoError(t, b.AnalyzePonding())

	snap := b.Snapshot()
	assert.Equal(t, SnapshotVersion, snap.Version)
	assert.True(t, math.IsInf(snap.Stats.RelErr[1].Rain, 1))

	restored, err := FromSnapshot(snap)
	require.NoError(t, err)
	assert.Equal(t, snap, restored.Snapshot())
	assert.True(t, restored.ValidResults())

	r, err := restored.ReactionEnvelopeAtNode("N1", "asd")
	require.NoError(t, err)
	want, err := b.ReactionEnvelopeAtNode("N1", "asd")
	require.NoError(t, err)
	assert.Equal(t, want, r)

	snap.Version = SnapshotVersion + 1
	_, err = FromSnapshot(snap)
	requireValidationError(t, err, "version")

	snap.Version = SnapshotVersion
	snap.Stations = snap.Stations[:10]
	_, err = FromSnapshot(snap)
	requireValidationError(t, err, "stations")
}
