package beam

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/alexiusacademia/gopond/internal/asce"
	"github.com/alexiusacademia/gopond/internal/logging"
	"github.com/alexiusacademia/gopond/internal/numeric"
)

const (
	DefaultTolerance     = 1e-4
	DefaultMaxIterations = 50
)

// PondingSolver runs the fixed-point iteration between beam deflection and
// ponded water depth. The zero value uses the finite element solver, the
// default tolerance and iteration cap, and discards its log output.
type PondingSolver struct {
	NewModel      ModelFactory
	Tolerance     float64 // relative change in ponded area
	MaxIterations int
	Logger        *slog.Logger
}

func (s PondingSolver) tolerance() float64 {
	if s.Tolerance > 0 {
		return s.Tolerance
	}
	return DefaultTolerance
}

func (s PondingSolver) maxIterations() int {
	if s.MaxIterations > 0 {
		return s.MaxIterations
	}
	return DefaultMaxIterations
}

func (s PondingSolver) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return logging.Discard()
}

// AnalyzePonding runs the ponding analysis with default settings
func (b *Beam) AnalyzePonding() error {
	return PondingSolver{}.Solve(b)
}

// seed resets the histories to the water standing on the undeflected beam
func (b *Beam) seed() {
	total := b.rainDepth.Total()
	depth := make([]float64, len(b.stations))
	for i, e := range b.elevations {
		depth[i] = math.Max(total-e, 0)
	}
	area := math.Abs(numeric.Simpson(b.stations, depth))

	b.pondedDepth = []Profile{{Rain: depth, Snow: append([]float64(nil), depth...)}}
	b.deflection = []Profile{zeroProfile()}
	b.stats = AnalysisStats{
		PondedArea: []Pair{{Rain: area, Snow: area}},
		RelErr:     []Pair{{}},
	}
}

// settled reports whether a track's ponded area has stopped changing. A beam
// holding no water at all is settled too, since its relative error is 0/0.
func settled(area, prev, relErr, tol float64) bool {
	return relErr < tol || (area == 0 && prev == 0)
}

// Solve iterates until the ponded area of both the rain and snow tracks
// settles, then stores the result envelopes on the beam. Each iteration
// builds and discards its own structural model.
func (s PondingSolver) Solve(b *Beam) error {
	log := s.logger().With(slog.String("beam", b.name))
	tol := s.tolerance()
	maxIter := s.maxIterations()
	assembler := ModelAssembler{NewModel: s.NewModel}

	b.invalidate()
	if len(b.supports) == 0 {
		return ErrNoSupports
	}
	if !b.segmented() {
		return invalid("length", "stations span %g ft but the beam is %g ft long, resegment the beam first",
			b.stations[len(b.stations)-1], b.length)
	}
	b.seed()

	total := b.rainDepth.Total()
	log.Info("starting ponding analysis",
		slog.Float64("length", b.length),
		slog.String("section", b.section.Designator),
		slog.Float64("head", total))

	for iteration := 1; ; iteration++ {
		current := b.pondedDepth[len(b.pondedDepth)-1]
		asm, err := assembler.Assemble(b, b.PondingSample(current))
		if err != nil {
			return fmt.Errorf("iteration %d: %w", iteration, err)
		}
		if err := asm.Model.Analyze(); err != nil {
			return fmt.Errorf("iteration %d: analyze: %w", iteration, err)
		}

		defl, err := downwardDeflection(asm.Model)
		if err != nil {
			return fmt.Errorf("iteration %d: %w", iteration, err)
		}

		depth := Profile{
			Rain: make([]float64, len(b.stations)),
			Snow: make([]float64, len(b.stations)),
		}
		for i, e := range b.elevations {
			depth.Rain[i] = math.Max(total-(e-defl.Rain[i]), 0)
			depth.Snow[i] = math.Max(total-(e-defl.Snow[i]), 0)
		}
		b.pondedDepth = append(b.pondedDepth, depth)
		b.deflection = append(b.deflection, defl)

		prev := b.stats.PondedArea[len(b.stats.PondedArea)-1]
		area := Pair{
			Rain: math.Abs(numeric.Simpson(b.stations, depth.Rain)),
			Snow: math.Abs(numeric.Simpson(b.stations, depth.Snow)),
		}
		rel := Pair{
			Rain: numeric.DivideByZero(math.Abs(area.Rain-prev.Rain), area.Rain),
			Snow: numeric.DivideByZero(math.Abs(area.Snow-prev.Snow), area.Snow),
		}
		b.stats.PondedArea = append(b.stats.PondedArea, area)
		b.stats.RelErr = append(b.stats.RelErr, rel)
		b.stats.Iterations = iteration

		log.Debug("ponding iteration",
			slog.Int("iteration", iteration),
			slog.Float64("rain_area", area.Rain),
			slog.Float64("snow_area", area.Snow),
			slog.Float64("rain_rel_err", rel.Rain),
			slog.Float64("snow_rel_err", rel.Snow))

		if iteration < 2 {
			continue
		}
		if settled(area.Rain, prev.Rain, rel.Rain, tol) && settled(area.Snow, prev.Snow, rel.Snow, tol) {
			if err := b.extractEnvelopes(asm); err != nil {
				return fmt.Errorf("extract results: %w", err)
			}
			b.validResults = true
			log.Log(context.Background(), logging.LevelSuccess, "convergence reached",
				slog.Int("iterations", iteration),
				slog.Float64("rain_area", area.Rain),
				slog.Float64("snow_area", area.Snow))
			return nil
		}
		if iteration > maxIter {
			log.Error("convergence not reached", slog.Int("iterations", iteration))
			return &ConvergenceError{Iterations: iteration, RelErr: rel}
		}
	}
}

// downwardDeflection reads the station deflections of both ponding
// combinations, downward positive
func downwardDeflection(m StructuralModel) (Profile, error) {
	read := func(combo string) ([]float64, error) {
		d, err := m.DeflectionArray(memberName, combo, NumStations)
		if err != nil {
			return nil, fmt.Errorf("deflection %s: %w", combo, err)
		}
		return numeric.Scale(-1, d), nil
	}
	rain, err := read(asce.RainPondingCombo)
	if err != nil {
		return Profile{}, err
	}
	snow, err := read(asce.SnowPondingCombo)
	if err != nil {
		return Profile{}, err
	}
	return Profile{Rain: rain, Snow: snow}, nil
}
