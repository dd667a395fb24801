package section

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
)

// Lookup returns the properties of a catalog designator. The match is case
// insensitive. Joist properties depend on the span (ft); W-shapes ignore it.
func Lookup(designator string, spanFt float64) (Properties, error) {
	key := Normalize(designator)
	if p, ok := wShapeProperties(key); ok {
		return p, nil
	}
	if math.IsNaN(spanFt) || math.IsInf(spanFt, 0) || spanFt <= 0 {
		return Properties{}, &ValidationError{msg: fmt.Sprintf("span must be positive and finite, got %v", spanFt)}
	}
	if j, ok := kJoists[key]; ok {
		return joistProperties(key, KJoist, j, spanFt)
	}
	if j, ok := kcsJoists[key]; ok {
		return joistProperties(key, KCSJoist, j, spanFt)
	}
	return Properties{}, &ValidationError{msg: fmt.Sprintf("unrecognized section %q", designator)}
}

// IsValid reports whether designator names a catalog section
func IsValid(designator string) bool {
	key := Normalize(designator)
	_, w := wShapes[key]
	_, k := kJoists[key]
	_, kcs := kcsJoists[key]
	return w || k || kcs
}

// SpanRange returns the tabulated span range (ft) of a joist designator
func SpanRange(designator string) (lo, hi float64, ok bool) {
	key := Normalize(designator)
	if j, found := kJoists[key]; found {
		lo, hi = j.spanRange()
		return lo, hi, true
	}
	if j, found := kcsJoists[key]; found {
		lo, hi = j.spanRange()
		return lo, hi, true
	}
	return 0, 0, false
}

// Designators returns the designators of a family ordered by depth, then by
// weight or chord size.
func Designators(f Family) []string {
	var keys []string
	switch f {
	case WideFlange:
		for k := range wShapes {
			keys = append(keys, k)
		}
	case KJoist:
		for k := range kJoists {
			keys = append(keys, k)
		}
	case KCSJoist:
		for k := range kcsJoists {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(a, b int) bool {
		da, wa := designatorOrder(keys[a])
		db, wb := designatorOrder(keys[b])
		if da != db {
			return da < db
		}
		return wa < wb
	})
	return keys
}

var numberPattern = regexp.MustCompile(`\d+`)

// designatorOrder extracts the nominal depth and trailing size of a designator
func designatorOrder(key string) (depth, size int) {
	nums := numberPattern.FindAllString(key, -1)
	if len(nums) > 0 {
		depth, _ = strconv.Atoi(nums[0])
	}
	if len(nums) > 1 {
		size, _ = strconv.Atoi(nums[len(nums)-1])
	}
	return depth, size
}
