package asce

import (
	"fmt"
	"strings"
)

// Case identifies a basic load case
type Case string

// Load cases. PR and PS hold the ponding load found by the analysis itself
// and are never entered by the user.
const (
	Dead         Case = "D"
	RoofLive     Case = "Lr"
	Rain         Case = "R"
	Snow         Case = "S"
	PondingRain  Case = "PR"
	PondingSnow  Case = "PS"
	numBaseCases      = 6
)

// BaseCases lists the cases in coefficient-vector order [D, Lr, R, S, PR, PS]
var BaseCases = [numBaseCases]Case{Dead, RoofLive, Rain, Snow, PondingRain, PondingSnow}

// IsUserCase reports whether c may be assigned to a user-defined load
func IsUserCase(c Case) bool {
	switch c {
	case Dead, RoofLive, Rain, Snow:
		return true
	}
	return false
}

// ParseCase converts a case tag such as "D" or "Lr" into a user load case
func ParseCase(s string) (Case, error) {
	c := Case(strings.TrimSpace(s))
	if !IsUserCase(c) {
		return "", fmt.Errorf("case must be one of dead (D), roof live (Lr), rain (R), or snow (S), got %q", s)
	}
	return c, nil
}

// Family is a load combination family
type Family string

const (
	ASD  Family = "asd"
	LRFD Family = "lrfd"
)

// Families lists the combination families in reporting order
var Families = [2]Family{ASD, LRFD}

// ParseFamily accepts "asd" or "lrfd" in any letter case
func ParseFamily(s string) (Family, error) {
	switch Family(strings.ToLower(strings.TrimSpace(s))) {
	case ASD:
		return ASD, nil
	case LRFD:
		return LRFD, nil
	}
	return "", fmt.Errorf("invalid load combination type %q, expected 'asd' or 'lrfd'", s)
}

// Factors are load factors over [D, Lr, R, S, PR, PS]
type Factors [numBaseCases]float64

// Map returns the factors keyed by case name, the form the frame solver expects
func (f Factors) Map() map[string]float64 {
	m := make(map[string]float64, numBaseCases)
	for i, c := range BaseCases {
		m[string(c)] = f[i]
	}
	return m
}

// Combination is a named set of load factors
type Combination struct {
	Name    string
	Factors Factors
}

// Combinations checked by the ponding iteration. Ponding is evaluated with
// unfactored dead plus rain or snow.
const (
	RainPondingCombo = "1.0D+1.0R+1.0P"
	SnowPondingCombo = "1.0D+1.0S+1.0P"
)

var loadCases = [...]Combination{
	{Name: "1.0D", Factors: Factors{1.0, 0, 0, 0, 0, 0}},
	{Name: "1.0Lr", Factors: Factors{0, 1.0, 0, 0, 0, 0}},
	{Name: "1.0R", Factors: Factors{0, 0, 1.0, 0, 0, 0}},
	{Name: "1.0PR", Factors: Factors{0, 0, 0, 0, 1.0, 0}},
	{Name: "1.0S", Factors: Factors{0, 0, 0, 1.0, 0, 0}},
	{Name: "1.0PS", Factors: Factors{0, 0, 0, 0, 0, 1.0}},
}

// ASCE 7 Section 2.4 - Allowable stress design combinations (gravity only)
var asdCombinations = [...]Combination{
	{Name: "1.0D+1.0Lr", Factors: Factors{1.0, 1.0, 0, 0, 0, 0}},
	{Name: "1.0D+1.0R", Factors: Factors{1.0, 0, 1.0, 0, 0, 0}},
	{Name: RainPondingCombo, Factors: Factors{1.0, 0, 1.0, 0, 1.0, 0}},
	{Name: "1.0D+1.0S", Factors: Factors{1.0, 0, 0, 1.0, 0, 0}},
	{Name: SnowPondingCombo, Factors: Factors{1.0, 0, 0, 1.0, 0, 1.0}},
}

// ASCE 7 Section 2.3 - Strength design combinations (gravity only)
var lrfdCombinations = [...]Combination{
	{Name: "1.4D", Factors: Factors{1.4, 0, 0, 0, 0, 0}},
	{Name: "1.2D+1.6Lr", Factors: Factors{1.2, 1.6, 0, 0, 0, 0}},
	{Name: "1.2D+1.6R", Factors: Factors{1.2, 0, 1.6, 0, 0, 0}},
	{Name: "1.2D+1.6R+1.6P", Factors: Factors{1.2, 0, 1.6, 0, 1.6, 0}},
	{Name: "1.2D+1.6S", Factors: Factors{1.2, 0, 0, 1.6, 0, 0}},
	{Name: "1.2D+1.6S+1.6P", Factors: Factors{1.2, 0, 0, 1.6, 0, 1.6}},
}

// Cases returns a copy of the unit load cases
func Cases() []Combination {
	out := make([]Combination, len(loadCases))
	copy(out, loadCases[:])
	return out
}

// Combinations returns a copy of the combinations of one family
func Combinations(f Family) []Combination {
	var src []Combination
	switch f {
	case ASD:
		src = asdCombinations[:]
	case LRFD:
		src = lrfdCombinations[:]
	}
	out := make([]Combination, len(src))
	copy(out, src)
	return out
}

// AllCombinations returns the unit cases followed by the ASD and LRFD combinations
func AllCombinations() []Combination {
	out := Cases()
	out = append(out, Combinations(ASD)...)
	return append(out, Combinations(LRFD)...)
}

// InFamily reports whether the named combination belongs to family f
func InFamily(name string, f Family) bool {
	for _, c := range Combinations(f) {
		if c.Name == name {
			return true
		}
	}
	return false
}
