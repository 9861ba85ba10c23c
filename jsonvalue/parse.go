package jsonvalue

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	eng "github.com/reoring/jdec/internal/engine"
	"github.com/reoring/jdec/source/gojson"
)

// Severity controls how duplicate object keys are treated.
type Severity int

const (
	// Ignore keeps the last value of a repeated key silently.
	Ignore Severity = iota
	// Warn keeps the last value and reports an Issue to the sink.
	Warn
	// Error rejects the document.
	Error
)

// Strictness groups the input policies applied while parsing.
type Strictness struct {
	OnDuplicateKey Severity
}

// Issue is a non-syntax problem found while parsing. Path is a JSON pointer.
type Issue struct {
	Code    string
	Path    string
	Message string
}

// IssueError is returned when an Issue aborts parsing.
type IssueError struct{ Issue Issue }

func (e *IssueError) Error() string { return e.Issue.Message + " at " + e.Issue.Path }

// SyntaxError reports malformed input. Offset is -1 when the driver does not
// track positions.
type SyntaxError struct {
	Driver string
	Offset int64
	Err    error
}

func (e *SyntaxError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("invalid JSON at offset %d: %v", e.Offset, e.Err)
	}
	return "invalid JSON: " + e.Err.Error()
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// ParseOpt configures a parse. When several are passed the last one wins.
type ParseOpt struct {
	Strictness Strictness
	// MaxDepth limits container nesting; 0 disables the check.
	MaxDepth int
	// MaxBytes limits consumed input; 0 disables the check. Drivers that
	// do not report offsets fall back to a byte count on the reader.
	MaxBytes int64
	// Driver overrides the process-wide driver for this call.
	Driver eng.Driver
	// IssueSink receives every Issue, including warnings.
	IssueSink func(Issue)
}

// Driver converts raw JSON into tokens. Implementations live under source/.
type Driver = eng.Driver

var (
	driverMu      sync.RWMutex
	currentDriver Driver = gojson.Driver()
)

// SetDriver replaces the process-wide driver; nil values are ignored.
func SetDriver(d Driver) {
	if d == nil {
		return
	}
	driverMu.Lock()
	currentDriver = d
	driverMu.Unlock()
}

// UseDefaultDriver restores the go-json driver.
func UseDefaultDriver() { SetDriver(gojson.Driver()) }

// CurrentDriver returns the process-wide driver.
func CurrentDriver() Driver {
	driverMu.RLock()
	d := currentDriver
	driverMu.RUnlock()
	return d
}

// Parse builds a Value from a complete JSON document.
func Parse(data []byte, opts ...ParseOpt) (Value, error) {
	return ParseReader(bytes.NewReader(data), opts...)
}

// ParseString is Parse for string input.
func ParseString(s string, opts ...ParseOpt) (Value, error) {
	return ParseReader(strings.NewReader(s), opts...)
}

// MustParse is Parse that panics on error; intended for tests and fixtures.
func MustParse(s string) Value {
	v, err := ParseString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// ParseReader consumes r fully and builds a Value. Trailing data after the
// first value is an error.
func ParseReader(r io.Reader, opts ...ParseOpt) (Value, error) {
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	d := opt.Driver
	if d == nil {
		d = CurrentDriver()
	}

	var counter *countingReader
	if opt.MaxBytes > 0 {
		counter = &countingReader{r: r}
		r = counter
	}

	var sink func(eng.SimpleIssue)
	if opt.IssueSink != nil {
		sink = func(si eng.SimpleIssue) { opt.IssueSink(Issue(si)) }
	}
	src := eng.WrapWithEnforcement(d.NewReader(r), eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		IssueSink:   sink,
	})
	b := &builder{src: src, driver: d.Name()}

	v, err := b.document()
	if err == nil && counter != nil && counter.n > opt.MaxBytes {
		err = &IssueError{Issue{Code: eng.CodeTruncated, Path: "/", Message: "max bytes exceeded"}}
		if opt.IssueSink != nil {
			opt.IssueSink(err.(*IssueError).Issue)
		}
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Warn:
		return eng.DupWarn
	case Error:
		return eng.DupError
	default:
		return eng.DupIgnore
	}
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

type builder struct {
	src    eng.TokenSource
	driver string
}

func (b *builder) document() (Value, error) {
	tok, err := b.next(true)
	if err != nil {
		return nil, err
	}
	v, err := b.value(tok)
	if err != nil {
		return nil, err
	}
	if _, err := b.src.NextToken(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, b.wrap(err)
	}
	return v, nil
}

// next reads a token. A clean EOF is only acceptable before the document
// starts, and still yields an error there since input must not be empty.
func (b *builder) next(first bool) (eng.Token, error) {
	tok, err := b.src.NextToken()
	if err == nil {
		return tok, nil
	}
	if errors.Is(err, io.EOF) {
		if first {
			return eng.Token{}, b.wrap(errors.New("unexpected end of input"))
		}
		err = io.ErrUnexpectedEOF
	}
	return eng.Token{}, b.wrap(err)
}

func (b *builder) wrap(err error) error {
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return &IssueError{Issue(ie.SimpleIssue)}
	}
	var se *SyntaxError
	if errors.As(err, &se) {
		return err
	}
	return &SyntaxError{Driver: b.driver, Offset: b.src.Location(), Err: err}
}

func (b *builder) value(tok eng.Token) (Value, error) {
	switch tok.Kind {
	case eng.KindBeginObject:
		return b.object()
	case eng.KindBeginArray:
		return b.array()
	case eng.KindString:
		return String(tok.String), nil
	case eng.KindNumber:
		return Number(tok.Number), nil
	case eng.KindBool:
		return Bool(tok.Bool), nil
	case eng.KindNull:
		return Null{}, nil
	}
	return nil, b.wrap(fmt.Errorf("unexpected %v", tok.Kind))
}

func (b *builder) object() (Value, error) {
	o := &Object{}
	for {
		tok, err := b.next(false)
		if err != nil {
			return nil, err
		}
		if tok.Kind == eng.KindEndObject {
			return o, nil
		}
		if tok.Kind != eng.KindKey {
			return nil, b.wrap(fmt.Errorf("expected object key, got %v", tok.Kind))
		}
		vt, err := b.next(false)
		if err != nil {
			return nil, err
		}
		v, err := b.value(vt)
		if err != nil {
			return nil, err
		}
		o.set(tok.String, v)
	}
}

func (b *builder) array() (Value, error) {
	arr := Array{}
	for {
		tok, err := b.next(false)
		if err != nil {
			return nil, err
		}
		if tok.Kind == eng.KindEndArray {
			return arr, nil
		}
		v, err := b.value(tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}
