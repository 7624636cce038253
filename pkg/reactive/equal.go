package reactive

import (
	"math"
	"reflect"
	"strconv"
	"strings"
)

// LooseEqual reports whether a and b are equal under coercion:
//   - numbers of any kind compare by numeric value
//   - a string compared with a number is parsed as a number first
//     (surrounding space ignored, "" is 0, hex "0x" accepted)
//   - a bool compared with anything else is treated as 1 or 0
//   - nil equals only nil (including typed nil pointers, maps and slices)
//   - everything else is equal only if StrictEqual holds
func LooseEqual(a, b any) bool {
	an, bn := isNil(a), isNil(b)
	if an || bn {
		return an && bn
	}

	if af, ok := toNumber(a); ok {
		if bf, ok := toNumber(b); ok {
			return af == bf
		}
	}

	if ab, ok := a.(bool); ok {
		if _, same := b.(bool); !same {
			return LooseEqual(boolNumber(ab), b)
		}
	}
	if bb, ok := b.(bool); ok {
		if _, same := a.(bool); !same {
			return LooseEqual(a, boolNumber(bb))
		}
	}

	if as, ok := a.(string); ok {
		if bf, ok := toNumber(b); ok {
			return parseNumber(as) == bf
		}
	}
	if bs, ok := b.(string); ok {
		if af, ok := toNumber(a); ok {
			return af == parseNumber(bs)
		}
	}

	return StrictEqual(a, b)
}

// StrictEqual reports whether a and b have the same dynamic type and the
// same value. Maps and slices compare by reference, funcs never compare
// equal, NaN is unequal to itself.
func StrictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	return identical(a, b)
}

// identical compares two values of the same dynamic type.
func identical(a, b any) (eq bool) {
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)

	switch av.Kind() {
	case reflect.Map:
		return av.Pointer() == bv.Pointer()
	case reflect.Slice:
		return av.Pointer() == bv.Pointer() && av.Len() == bv.Len()
	case reflect.Func:
		return false
	}

	if !av.Type().Comparable() {
		return false
	}

	// Comparable struct or array types can still hold uncomparable values
	// behind interface fields; == panics on those.
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

// isNil reports whether v is nil or a nil pointer, map, slice, chan, func or interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// toNumber returns v as a float64 if v has a numeric kind.
func toNumber(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func boolNumber(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// parseNumber converts a string the way a coercive comparison does.
// Unparseable input yields NaN.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0o") || strings.HasPrefix(lower, "0b") {
		n, err := strconv.ParseUint(s[2:], prefixBase(lower[:2]), 64)
		if err != nil {
			return math.NaN()
		}
		return float64(n)
	}
	if strings.ContainsAny(lower, "_") || strings.Contains(lower, "inf") || strings.Contains(lower, "nan") {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func prefixBase(prefix string) int {
	switch prefix {
	case "0x":
		return 16
	case "0o":
		return 8
	default:
		return 2
	}
}
