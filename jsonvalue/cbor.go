package jsonvalue

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

var cborDecMode = sync.OnceValues(func() (cbor.DecMode, error) {
	return cbor.DecOptions{
		DupMapKey:       cbor.DupMapKeyEnforcedAPF,
		MaxNestedLevels: 256,
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
})

// ParseCBOR builds a Value from one CBOR data item. Map keys must be text
// and unique; they come out sorted since CBOR decoding does not keep map
// order. Byte strings, tags other than bignums, and non-finite floats are
// rejected.
func ParseCBOR(data []byte) (Value, error) {
	dm, err := cborDecMode()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("invalid CBOR: empty input")
	}
	var raw any
	if err := dm.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid CBOR: %w", err)
	}
	v, err := fromCBOR(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid CBOR: %w", err)
	}
	return v, nil
}

func fromCBOR(raw any) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case uint64:
		return Number(strconv.FormatUint(x, 10)), nil
	case int64:
		return Number(strconv.FormatInt(x, 10)), nil
	case float64:
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return nil, fmt.Errorf("%v is not representable in JSON", x)
		}
		return Number(strconv.FormatFloat(x, 'g', -1, 64)), nil
	case big.Int:
		return Number(x.String()), nil
	case *big.Int:
		return Number(x.String()), nil
	case []byte:
		return nil, errors.New("byte strings are not representable in JSON")
	case []any:
		arr := make(Array, 0, len(x))
		for i, e := range x {
			ev, err := fromCBOR(e)
			if err != nil {
				return nil, fmt.Errorf("/%d: %w", i, err)
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
			ev, err := fromCBOR(x[k])
			if err != nil {
				return nil, fmt.Errorf("/%s: %w", k, err)
			}
			members = append(members, Member{Key: k, Value: ev})
		}
		return NewObject(members...), nil
	case cbor.Tag:
		return nil, fmt.Errorf("tag %d is not representable in JSON", x.Number)
	}
	return nil, fmt.Errorf("unsupported CBOR item %T", raw)
}
