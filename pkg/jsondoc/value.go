package jsondoc

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/pkg/errors"
)

// Kind identifies the JSON type of a document value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// KindOf returns the kind of a normalized value.
// Values stored in a document are always one of
// nil, bool, int64, float64, string, []any or *Object.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case int64:
		return KindInt
	case float64:
		return KindFloat
	case string:
		return KindString
	case []any:
		return KindArray
	case *Object:
		return KindObject
	default:
		return KindNull
	}
}

// normalize converts a Go value into the document representation.
func normalize(v any, depth int) (any, error) {
	if depth > MaxNesting {
		return nil, ErrTooDeep
	}
	switch x := v.(type) {
	case nil, bool, string, int64, float64:
		return x, nil
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case uint:
		return fromUint(uint64(x)), nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint64:
		return fromUint(x), nil
	case float32:
		return float64(x), nil
	case json.Number:
		return numberValue(x.String())
	case *Object:
		if depth == MaxNesting {
			return nil, ErrTooDeep
		}
		return x.Clone(), nil
	case []any:
		if depth == MaxNesting {
			return nil, ErrTooDeep
		}
		arr := make([]any, len(x))
		for i, e := range x {
			n, err := normalize(e, depth+1)
			if err != nil {
				return nil, err
			}
			arr[i] = n
		}
		return arr, nil
	case map[string]any:
		if depth == MaxNesting {
			return nil, ErrTooDeep
		}
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			n, err := normalize(x[k], depth+1)
			if err != nil {
				return nil, err
			}
			obj.Set(k, n)
		}
		return obj, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedType, "%T", v)
	}
}

func fromUint(u uint64) any {
	if u > math.MaxInt64 {
		return float64(u)
	}
	return int64(u)
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case *Object:
		return x.Clone()
	case []any:
		arr := make([]any, len(x))
		for i, e := range x {
			arr[i] = cloneValue(e)
		}
		return arr
	default:
		return v
	}
}

// ToInterface converts a document value into plain Go maps and slices,
// the shape expected by generic encoders. Key order is lost.
func ToInterface(v any) any {
	switch x := v.(type) {
	case *Object:
		m := make(map[string]any, x.Len())
		x.Range(func(k string, e any) bool {
			m[k] = ToInterface(e)
			return true
		})
		return m
	case []any:
		arr := make([]any, len(x))
		for i, e := range x {
			arr[i] = ToInterface(e)
		}
		return arr
	default:
		return v
	}
}
