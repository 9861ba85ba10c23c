package jsonvalue_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/jdec/jsonvalue"
	"github.com/reoring/jdec/source/gojson"
	jsonsrc "github.com/reoring/jdec/source/json"
	"github.com/reoring/jdec/source/jsontext"
)

var drivers = []jsonvalue.Driver{gojson.Driver(), jsonsrc.Driver(), jsontext.Driver()}

func withDriver(d jsonvalue.Driver, opt jsonvalue.ParseOpt) jsonvalue.ParseOpt {
	opt.Driver = d
	return opt
}

func TestParse_AllDrivers(t *testing.T) {
	for _, d := range drivers {
		t.Run(d.Name(), func(t *testing.T) {
			v, err := jsonvalue.ParseString(` {"b": 1.50, "a": [true, null, "x", {"n": -2e3}]} `, withDriver(d, jsonvalue.ParseOpt{}))
			require.NoError(t, err)
			require.Equal(t, `{"b":1.50,"a":[true,null,"x",{"n":-2e3}]}`, v.String())

			o, ok := v.(*jsonvalue.Object)
			require.True(t, ok)
			require.Equal(t, []string{"b", "a"}, o.Keys())
		})
	}
}

func TestParse_Scalars(t *testing.T) {
	v, err := jsonvalue.ParseString(`"hi"`)
	require.NoError(t, err)
	require.Equal(t, jsonvalue.String("hi"), v)

	v, err = jsonvalue.ParseString(`null`)
	require.NoError(t, err)
	require.Equal(t, jsonvalue.Null{}, v)

	v, err = jsonvalue.ParseString(`[]`)
	require.NoError(t, err)
	require.Equal(t, jsonvalue.Array{}, v)
}

func TestParse_SyntaxErrors(t *testing.T) {
	inputs := map[string]string{
		"empty":     "",
		"blank":     "   ",
		"truncated": `{"a": [1, 2`,
		"trailing":  `1 2`,
	}
	for _, d := range drivers {
		for name, in := range inputs {
			t.Run(d.Name()+"/"+name, func(t *testing.T) {
				_, err := jsonvalue.ParseString(in, withDriver(d, jsonvalue.ParseOpt{}))
				require.Error(t, err)
				var se *jsonvalue.SyntaxError
				require.True(t, errors.As(err, &se), "got %T: %v", err, err)
				require.Equal(t, d.Name(), se.Driver)
			})
		}
	}
}

func TestParse_DuplicateKeys(t *testing.T) {
	const in = `{"a": 1, "b": {"c": 1, "c": 2}}`
	for _, d := range drivers {
		t.Run(d.Name(), func(t *testing.T) {
			v, err := jsonvalue.ParseString(in, withDriver(d, jsonvalue.ParseOpt{}))
			require.NoError(t, err)
			require.Equal(t, `{"a":1,"b":{"c":2}}`, v.String())

			var seen []jsonvalue.Issue
			_, err = jsonvalue.ParseString(in, withDriver(d, jsonvalue.ParseOpt{
				Strictness: jsonvalue.Strictness{OnDuplicateKey: jsonvalue.Warn},
				IssueSink:  func(i jsonvalue.Issue) { seen = append(seen, i) },
			}))
			require.NoError(t, err)
			require.Equal(t, []jsonvalue.Issue{{Code: "duplicate_key", Path: "/b/c", Message: "key 'c' duplicated"}}, seen)

			_, err = jsonvalue.ParseString(in, withDriver(d, jsonvalue.ParseOpt{
				Strictness: jsonvalue.Strictness{OnDuplicateKey: jsonvalue.Error},
			}))
			var ie *jsonvalue.IssueError
			require.True(t, errors.As(err, &ie), "got %T: %v", err, err)
			require.Equal(t, "duplicate_key", ie.Issue.Code)
			require.Equal(t, "/b/c", ie.Issue.Path)
		})
	}
}

func TestParse_MaxDepth(t *testing.T) {
	for _, d := range drivers {
		t.Run(d.Name(), func(t *testing.T) {
			_, err := jsonvalue.ParseString(`[[1]]`, withDriver(d, jsonvalue.ParseOpt{MaxDepth: 2}))
			require.NoError(t, err)

			_, err = jsonvalue.ParseString(`[{"k": [1]}]`, withDriver(d, jsonvalue.ParseOpt{MaxDepth: 2}))
			var ie *jsonvalue.IssueError
			require.True(t, errors.As(err, &ie), "got %T: %v", err, err)
			require.Equal(t, "max_depth", ie.Issue.Code)
			require.Equal(t, "/0/k", ie.Issue.Path)
		})
	}
}

func TestParse_MaxBytes(t *testing.T) {
	const in = `[1, 2, 3, 4, 5, 6, 7, 8, 9, 10]`
	for _, d := range drivers {
		t.Run(d.Name(), func(t *testing.T) {
			_, err := jsonvalue.ParseString(in, withDriver(d, jsonvalue.ParseOpt{MaxBytes: int64(len(in))}))
			require.NoError(t, err)

			_, err = jsonvalue.ParseString(in, withDriver(d, jsonvalue.ParseOpt{MaxBytes: 5}))
			var ie *jsonvalue.IssueError
			require.True(t, errors.As(err, &ie), "got %T: %v", err, err)
			require.Equal(t, "truncated", ie.Issue.Code)
		})
	}
}

func TestSetDriver(t *testing.T) {
	t.Cleanup(jsonvalue.UseDefaultDriver)
	require.Equal(t, gojson.Name, jsonvalue.CurrentDriver().Name())

	jsonvalue.SetDriver(jsontext.Driver())
	require.Equal(t, jsontext.Name, jsonvalue.CurrentDriver().Name())

	jsonvalue.SetDriver(nil)
	require.Equal(t, jsontext.Name, jsonvalue.CurrentDriver().Name())

	_, err := jsonvalue.ParseString(`{`)
	var se *jsonvalue.SyntaxError
	require.True(t, errors.As(err, &se))
	require.Equal(t, jsontext.Name, se.Driver)
}
