package beam

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSupports is returned when a model is assembled without supports
	ErrNoSupports = errors.New("no supports defined, define at least one support")

	// ErrNoResults is returned by result queries while the results are stale
	ErrNoResults = errors.New("no valid results, run the ponding analysis first")

	// ErrNotConverged matches every *ConvergenceError
	ErrNotConverged = errors.New("ponding analysis did not converge")
)

// ValidationError represents a rejected beam input
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// ConvergenceError is returned when the ponded area keeps changing after the
// iteration limit. A stiffer section usually fixes it.
type ConvergenceError struct {
	Iterations int
	RelErr     Pair
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("convergence not reached after %d iterations (relative error rain %.3g, snow %.3g), try a stiffer section",
		e.Iterations, e.RelErr.Rain, e.RelErr.Snow)
}

// Is makes errors.Is(err, ErrNotConverged) hold
func (e *ConvergenceError) Is(target error) bool {
	return target == ErrNotConverged
}
