package jsondoc

import (
	"math"
	"strconv"

	"golang.org/x/exp/constraints"
)

type number interface {
	constraints.Integer | constraints.Float
}

// AsInt reads v as an integer.
//
//	null, array, object -> 0
//	bool                -> 1 or 0
//	float               -> truncated, 0 if NaN or out of range
//	string              -> parsed integer, else parsed float truncated, else 0
func AsInt(v any) int64 {
	return asNumber[int64](v)
}

// AsFloat reads v as a float. Strings are parsed, bools are 1 or 0,
// everything else that is not a number is 0.
func AsFloat(v any) float64 {
	return asNumber[float64](v)
}

// AsBool reads v as a boolean. Numbers are true when non-zero, null is
// false, and strings, arrays and objects are true.
func AsBool(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case int64:
		return x != 0
	case float64:
		return x != 0
	default:
		return true
	}
}

// AsString returns strings unchanged and the compact JSON form of anything else.
func AsString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return string(appendValue(nil, v))
}

func asNumber[T number](v any) T {
	switch x := v.(type) {
	case bool:
		if x {
			return 1
		}
		return 0
	case int64:
		return T(x)
	case float64:
		return fromFloat[T](x)
	case string:
		return parseNumber[T](x)
	default:
		return 0
	}
}

func isInteger[T number]() bool {
	var one T = 1
	return one/2 == 0
}

func fromFloat[T number](f float64) T {
	if !isInteger[T]() {
		return T(f)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	t := math.Trunc(f)
	out := T(t)
	if float64(out) != t {
		return 0
	}
	return out
}

func parseNumber[T number](s string) T {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return T(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return fromFloat[T](f)
	}
	return 0
}
