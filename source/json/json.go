// Package json provides a token driver backed by the standard library
// encoding/json tokenizer. It is the only driver that reports byte offsets,
// which the MaxBytes enforcement relies on.
package json

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	eng "github.com/reoring/jdec/internal/engine"
)

// Name identifies the driver in error messages and CLI flags.
const Name = "encoding/json"

// Driver returns an engine.Driver backed by encoding/json.
func Driver() eng.Driver { return driver{} }

type driver struct{}

func (driver) NewReader(r io.Reader) eng.TokenSource { return NewReader(r) }
func (driver) Name() string                          { return Name }

type jsonSource struct {
	dec        *json.Decoder
	frames     eng.Frames
	lastOffset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON.
func NewReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec, lastOffset: -1}
}

func (s *jsonSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.frames.Open(true)
			return s.token(eng.KindBeginObject), nil
		case '[':
			s.frames.Open(false)
			return s.token(eng.KindBeginArray), nil
		case '}':
			s.frames.Close()
			return s.token(eng.KindEndObject), nil
		case ']':
			s.frames.Close()
			return s.token(eng.KindEndArray), nil
		}
	case string:
		if s.frames.Key() {
			t := s.token(eng.KindKey)
			t.String = v
			return t, nil
		}
		s.frames.Value()
		t := s.token(eng.KindString)
		t.String = v
		return t, nil
	case bool:
		s.frames.Value()
		t := s.token(eng.KindBool)
		t.Bool = v
		return t, nil
	case json.Number:
		s.frames.Value()
		t := s.token(eng.KindNumber)
		t.Number = string(v)
		return t, nil
	case float64:
		s.frames.Value()
		t := s.token(eng.KindNumber)
		t.Number = strconv.FormatFloat(v, 'g', -1, 64)
		return t, nil
	case nil:
		s.frames.Value()
		return s.token(eng.KindNull), nil
	}
	return eng.Token{}, fmt.Errorf("encoding/json: unexpected token %v", tok)
}

func (s *jsonSource) token(k eng.Kind) eng.Token { return eng.Token{Kind: k, Offset: s.lastOffset} }

func (s *jsonSource) Location() int64 { return s.lastOffset }
