package section

import "strings"

// Family groups section designators by how their properties are obtained
type Family string

const (
	WideFlange Family = "W"      // AISC W-shapes, tabulated properties
	KJoist     Family = "K"      // SJI K-series open web joists
	KCSJoist   Family = "KCS"    // SJI KCS joists
	Custom     Family = "custom" // polygon shapes defined by the user
)

// Families lists the catalog families in display order
var Families = []Family{WideFlange, KJoist, KCSJoist}

// Properties are the member properties handed to the frame model.
// Lengths in inches: A (in²), Iy, Iz (in⁴), J (in⁴). Iz is the strong axis.
type Properties struct {
	Designator string  `json:"designator" yaml:"designator"`
	Family     Family  `json:"family" yaml:"family"`
	A          float64 `json:"a" yaml:"a"`
	Iy         float64 `json:"iy" yaml:"iy"`
	Iz         float64 `json:"iz" yaml:"iz"`
	J          float64 `json:"j" yaml:"j"`

	// Weight is the self weight in lb/ft
	Weight float64 `json:"weight" yaml:"weight"`

	// SpanDependent is set for joists, whose properties change with the span
	SpanDependent bool `json:"span_dependent,omitempty" yaml:"span_dependent,omitempty"`
}

// Normalize returns the lookup key of a designator: trimmed, upper case and
// without inner spaces ("w12 x 14" becomes "W12X14").
func Normalize(designator string) string {
	return strings.ToUpper(strings.Join(strings.Fields(designator), ""))
}

// ValidationError represents a section lookup or definition error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
