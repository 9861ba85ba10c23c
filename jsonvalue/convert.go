package jsonvalue

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Equal reports whether a and b denote the same JSON value. Numbers compare
// by value ("1", "1.0" and "1e0" are equal); objects compare by key set,
// ignoring order.
func Equal(a, b Value) bool {
	if a == nil {
		a = Null{}
	}
	if b == nil {
		b = Null{}
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case Null:
		return true
	case Bool:
		return x == b.(Bool)
	case String:
		return x == b.(String)
	case Number:
		y := b.(Number)
		if x == y {
			return true
		}
		rx, ok1 := x.Rat()
		ry, ok2 := y.Rat()
		return ok1 && ok2 && rx.Cmp(ry) == 0
	case Array:
		y := b.(Array)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case *Object:
		y := b.(*Object)
		if x.Len() != y.Len() {
			return false
		}
		for k, xv := range x.All() {
			yv, ok := y.Get(k)
			if !ok || !Equal(xv, yv) {
				return false
			}
		}
		return true
	}
	return false
}

// FromGo converts a Go value as produced by encoding/json (or built by hand)
// into a Value. Map keys are sorted since Go maps carry no order.
func FromGo(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case json.Number:
		return Number(x), nil
	case float64:
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return nil, fmt.Errorf("jsonvalue: %v is not representable in JSON", x)
		}
		return Number(strconv.FormatFloat(x, 'g', -1, 64)), nil
	case float32:
		return FromGo(float64(x))
	case int:
		return Number(strconv.Itoa(x)), nil
	case int64:
		return Number(strconv.FormatInt(x, 10)), nil
	case int32:
		return Number(strconv.FormatInt(int64(x), 10)), nil
	case uint64:
		return Number(strconv.FormatUint(x, 10)), nil
	case []any:
		arr := make(Array, 0, len(x))
		for i, e := range x {
			ev, err := FromGo(e)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			arr = append(arr, ev)
		}
		return arr, nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		members := make([]Member, 0, len(keys))
		for _, k := range keys {
			ev, err := FromGo(x[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			members = append(members, Member{Key: k, Value: ev})
		}
		return NewObject(members...), nil
	}
	return nil, fmt.Errorf("jsonvalue: unsupported Go type %T", v)
}

// ToGo converts a Value into the shapes produced by encoding/json decoding
// into an any: nil, bool, float64, string, []any and map[string]any.
func ToGo(v Value) any {
	switch x := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(x)
	case String:
		return string(x)
	case Number:
		f, _ := x.Float64()
		return f
	case Array:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = ToGo(e)
		}
		return out
	case *Object:
		out := make(map[string]any, x.Len())
		for k, e := range x.All() {
			out[k] = ToGo(e)
		}
		return out
	}
	return nil
}
