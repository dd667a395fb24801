package beam

import (
	"errors"

	"github.com/alexiusacademia/gopond/internal/section"
)

func sectionError(err error) error {
	var ve *section.ValidationError
	if errors.As(err, &ve) {
		return &ValidationError{Field: "section", Msg: ve.Error()}
	}
	return err
}

// AddOrUpdateSection assigns a catalog section. Joist properties are taken
// at the current length.
func (b *Beam) AddOrUpdateSection(designator string) error {
	props, err := section.Lookup(designator, b.length)
	if err != nil {
		return sectionError(err)
	}
	b.section = props
	b.invalidate()
	return nil
}

// SetCustomSection assigns a user-defined polygon section
func (b *Beam) SetCustomSection(shape section.Shape) error {
	props, err := shape.Properties()
	if err != nil {
		return sectionError(err)
	}
	b.section = props
	b.invalidate()
	return nil
}

// RefreshSection reapplies a span-dependent section at the current length
func (b *Beam) RefreshSection() error {
	if !b.section.SpanDependent {
		return nil
	}
	return b.AddOrUpdateSection(b.section.Designator)
}
