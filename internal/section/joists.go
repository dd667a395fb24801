package section

import (
	"fmt"
	"sort"
)

const (
	// steelWeightPerArea converts an area in in² into lb/ft of steel (490 pcf / 144)
	steelWeightPerArea = 3.4

	// SJI effective moment of inertia: Ij = 26.767 (W360)(L - 0.33)³ 10⁻⁶
	sjiCoefficient = 26.767e-6
	sjiSpanOffset  = 0.33

	joistIyRatio = 0.05
	joistJRatio  = 1.05
)

// spanLoad is one column of a joist load table: the uniform live load (plf)
// producing a deflection of span/360 at the given span (ft)
type spanLoad struct {
	Span float64
	W360 float64
}

type joist struct {
	Weight float64 // plf
	W360   []spanLoad
}

// Abridged SJI standard load tables, L/360 live load columns
var kJoists = map[string]joist{
	"10K1": {Weight: 5.0, W360: []spanLoad{{10, 992}, {14, 351}, {18, 163}, {20, 118}}},
	"12K1": {Weight: 5.0, W360: []spanLoad{{12, 799}, {16, 330}, {20, 167}, {24, 96}}},
	"12K3": {Weight: 5.7, W360: []spanLoad{{12, 1058}, {16, 437}, {20, 221}, {24, 127}}},
	"14K1": {Weight: 5.2, W360: []spanLoad{{14, 731}, {18, 339}, {22, 184}, {26, 110}, {28, 88}}},
	"14K4": {Weight: 6.7, W360: []spanLoad{{14, 1024}, {18, 474}, {22, 257}, {26, 155}, {28, 123}}},
	"16K2": {Weight: 5.5, W360: []spanLoad{{16, 728}, {20, 368}, {24, 211}, {28, 132}, {32, 88}}},
	"16K5": {Weight: 7.5, W360: []spanLoad{{16, 971}, {20, 491}, {24, 282}, {28, 176}, {32, 118}}},
	"18K3": {Weight: 6.6, W360: []spanLoad{{18, 711}, {22, 385}, {26, 232}, {30, 150}, {34, 103}, {36, 86}}},
	"18K5": {Weight: 7.7, W360: []spanLoad{{18, 880}, {22, 477}, {26, 287}, {30, 186}, {34, 127}, {36, 107}}},
	"20K3": {Weight: 6.7, W360: []spanLoad{{20, 638}, {24, 366}, {28, 229}, {32, 153}, {36, 107}, {40, 78}}},
	"20K5": {Weight: 8.2, W360: []spanLoad{{20, 810}, {24, 465}, {28, 291}, {32, 194}, {36, 136}, {40, 99}}},
	"22K4": {Weight: 8.0, W360: []spanLoad{{22, 661}, {26, 398}, {30, 257}, {34, 176}, {38, 126}, {42, 93}, {44, 81}}},
	"22K6": {Weight: 9.2, W360: []spanLoad{{22, 826}, {26, 497}, {30, 322}, {34, 220}, {38, 157}, {42, 116}, {44, 101}}},
	"24K4": {Weight: 8.4, W360: []spanLoad{{24, 592}, {28, 370}, {32, 247}, {36, 173}, {40, 126}, {44, 94}, {48, 72}}},
	"24K6": {Weight: 9.7, W360: []spanLoad{{24, 761}, {28, 476}, {32, 318}, {36, 222}, {40, 162}, {44, 121}, {48, 93}}},
	"26K5": {Weight: 9.8, W360: []spanLoad{{26, 641}, {30, 415}, {34, 284}, {38, 203}, {42, 150}, {46, 114}, {50, 88}, {52, 79}}},
	"28K6": {Weight: 11.4, W360: []spanLoad{{28, 635}, {32, 423}, {36, 296}, {40, 215}, {44, 161}, {48, 124}, {52, 97}, {56, 78}}},
	"30K7": {Weight: 12.3, W360: []spanLoad{{30, 658}, {34, 450}, {38, 321}, {42, 238}, {46, 180}, {50, 140}, {54, 111}, {58, 90}, {60, 81}}},
}

var kcsJoists = map[string]joist{
	"10KCS1": {Weight: 6.0, W360: []spanLoad{{10, 1198}, {14, 424}, {18, 196}, {20, 142}}},
	"12KCS1": {Weight: 6.0, W360: []spanLoad{{12, 1011}, {16, 418}, {20, 211}, {24, 121}}},
	"14KCS1": {Weight: 6.6, W360: []spanLoad{{14, 863}, {18, 400}, {22, 217}, {26, 130}, {28, 104}}},
	"16KCS2": {Weight: 8.0, W360: []spanLoad{{16, 961}, {20, 486}, {24, 279}, {28, 175}, {32, 116}}},
	"18KCS2": {Weight: 8.5, W360: []spanLoad{{18, 840}, {22, 455}, {26, 274}, {30, 177}, {34, 121}, {36, 102}}},
	"20KCS3": {Weight: 10.0, W360: []spanLoad{{20, 928}, {24, 532}, {28, 333}, {32, 222}, {36, 156}, {40, 113}}},
	"22KCS3": {Weight: 10.3, W360: []spanLoad{{22, 844}, {26, 508}, {30, 329}, {34, 225}, {38, 161}, {42, 119}, {44, 103}}},
	"24KCS4": {Weight: 12.0, W360: []spanLoad{{24, 896}, {28, 561}, {32, 374}, {36, 262}, {40, 190}, {44, 143}, {48, 110}}},
	"26KCS4": {Weight: 12.2, W360: []spanLoad{{26, 824}, {30, 534}, {34, 365}, {38, 261}, {42, 193}, {46, 146}, {50, 114}, {52, 101}}},
	"28KCS5": {Weight: 14.0, W360: []spanLoad{{28, 866}, {32, 577}, {36, 404}, {40, 294}, {44, 220}, {48, 169}, {52, 133}, {56, 106}}},
	"30KCS5": {Weight: 14.5, W360: []spanLoad{{30, 808}, {34, 553}, {38, 395}, {42, 292}, {46, 222}, {50, 172}, {54, 137}, {58, 110}, {60, 99}}},
}

// spanRange returns the shortest and longest tabulated span (ft)
func (j joist) spanRange() (float64, float64) {
	return j.W360[0].Span, j.W360[len(j.W360)-1].Span
}

// w360 interpolates the L/360 live load at span (ft)
func (j joist) w360(span float64) (float64, bool) {
	lo, hi := j.spanRange()
	if span < lo || span > hi {
		return 0, false
	}
	k := sort.Search(len(j.W360), func(i int) bool { return j.W360[i].Span >= span })
	if j.W360[k].Span == span {
		return j.W360[k].W360, true
	}
	a, b := j.W360[k-1], j.W360[k]
	t := (span - a.Span) / (b.Span - a.Span)
	return a.W360 + t*(b.W360-a.W360), true
}

// momentOfInertia returns the SJI effective moment of inertia (in⁴) at span
func (j joist) momentOfInertia(span float64) (float64, bool) {
	w, ok := j.w360(span)
	if !ok {
		return 0, false
	}
	l := span - sjiSpanOffset
	return sjiCoefficient * w * l * l * l, true
}

func joistProperties(key string, family Family, j joist, span float64) (Properties, error) {
	iz, ok := j.momentOfInertia(span)
	if !ok {
		lo, hi := j.spanRange()
		return Properties{}, &ValidationError{
			msg: fmt.Sprintf("span %.2f ft is outside the %s load table (%.0f to %.0f ft)", span, key, lo, hi),
		}
	}
	return Properties{
		Designator:    key,
		Family:        family,
		A:             j.Weight / steelWeightPerArea,
		Iy:            joistIyRatio * iz,
		Iz:            iz,
		J:             joistJRatio * iz,
		Weight:        j.Weight,
		SpanDependent: true,
	}, nil
}
