// Package jsontext provides a token driver backed by the
// go-json-experiment jsontext tokenizer.
package jsontext

import (
	"fmt"
	"io"

	"github.com/go-json-experiment/json/jsontext"

	eng "github.com/reoring/jdec/internal/engine"
)

// Name identifies the driver in error messages and CLI flags.
const Name = "jsontext"

// Driver returns an engine.Driver backed by jsontext.
func Driver() eng.Driver { return driver{} }

type driver struct{}

func (driver) NewReader(r io.Reader) eng.TokenSource { return NewReader(r) }
func (driver) Name() string                          { return Name }

type source struct {
	dec    *jsontext.Decoder
	frames eng.Frames
}

// NewReader wraps an io.Reader into an engine.TokenSource. jsontext rejects
// duplicate object names by default; that check is disabled here so the
// enforcement layer owns the duplicate key policy.
func NewReader(r io.Reader) eng.TokenSource {
	return &source{dec: jsontext.NewDecoder(r, jsontext.AllowDuplicateNames(true))}
}

func (s *source) NextToken() (eng.Token, error) {
	tok, err := s.dec.ReadToken()
	if err != nil {
		return eng.Token{}, err
	}
	off := s.dec.InputOffset()
	switch tok.Kind() {
	case '{':
		s.frames.Open(true)
		return eng.Token{Kind: eng.KindBeginObject, Offset: off}, nil
	case '[':
		s.frames.Open(false)
		return eng.Token{Kind: eng.KindBeginArray, Offset: off}, nil
	case '}':
		s.frames.Close()
		return eng.Token{Kind: eng.KindEndObject, Offset: off}, nil
	case ']':
		s.frames.Close()
		return eng.Token{Kind: eng.KindEndArray, Offset: off}, nil
	case '"':
		if s.frames.Key() {
			return eng.Token{Kind: eng.KindKey, String: tok.String(), Offset: off}, nil
		}
		s.frames.Value()
		return eng.Token{Kind: eng.KindString, String: tok.String(), Offset: off}, nil
	case '0':
		s.frames.Value()
		// String returns the raw literal for numbers.
		return eng.Token{Kind: eng.KindNumber, Number: tok.String(), Offset: off}, nil
	case 't', 'f':
		s.frames.Value()
		return eng.Token{Kind: eng.KindBool, Bool: tok.Bool(), Offset: off}, nil
	case 'n':
		s.frames.Value()
		return eng.Token{Kind: eng.KindNull, Offset: off}, nil
	}
	return eng.Token{}, fmt.Errorf("jsontext: unexpected token kind %v", tok.Kind())
}

func (s *source) Location() int64 { return s.dec.InputOffset() }
