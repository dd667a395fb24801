package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gopond/internal/beam"
	"github.com/alexiusacademia/gopond/internal/store"
)

const (
	banner  = "═══════════════════════════════════════════════════════════════"
	divider = "───────────────────────────────────────────────────────────────"
)

// exitOnError prints err and exits with status 1
func exitOnError(err error) {
	if err == nil {
		return
	}
	var ve *beam.ValidationError
	switch {
	case errors.As(err, &ve):
		fmt.Printf("Error: invalid %v\n", err)
	case errors.Is(err, store.ErrNotFound):
		fmt.Printf("Error: %v (%s), create one with 'gopond new'\n", err, store.Path(modelFile))
	default:
		fmt.Printf("Error: %v\n", err)
	}
	os.Exit(1)
}

// openModel loads the newest revision of the --model file
func openModel() *beam.Beam {
	b, err := store.Load(store.Path(modelFile))
	exitOnError(err)
	return b
}

// saveModel appends a revision to the --model file
func saveModel(b *beam.Beam, note string) {
	path := store.Path(modelFile)
	id, err := store.Save(path, b, note)
	exitOnError(err)
	logger.Debug("model saved", "file", path, "revision", id, "note", note)
}

// edit loads the model, applies fn and saves the result under note
func edit(note string, fn func(b *beam.Beam) error) *beam.Beam {
	b := openModel()
	exitOnError(fn(b))
	saveModel(b, note)
	return b
}

func printHeader(title string) {
	fmt.Println()
	fmt.Println(banner)
	fmt.Printf("     %s\n", title)
	fmt.Println(banner)
	fmt.Println()
}

func printSection(title string) {
	fmt.Printf("%s:\n", title)
	fmt.Println(divider)
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

// requireResults exits when the model has no valid analysis results
func requireResults(b *beam.Beam) {
	if !b.ValidResults() {
		exitOnError(beam.ErrNoResults)
	}
}

func springLabel(k float64, zero string) string {
	if k == 0 {
		return zero
	}
	return fmt.Sprintf("%g", k)
}
