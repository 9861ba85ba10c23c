package engine

import (
	"strconv"
	"strings"
)

// DuplicateStrictness controls duplicate key handling.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// Issue codes reported by the enforcement layer.
const (
	CodeDuplicateKey = "duplicate_key"
	CodeMaxDepth     = "max_depth"
	CodeTruncated    = "truncated"
)

// SimpleIssue is a minimal issue representation. Path is a JSON pointer.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string {
	return e.Message + " at " + e.Path
}

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
	MaxBytes    int64
	// IssueSink receives every issue, including the fatal one. Warnings are
	// only observable through it.
	IssueSink func(SimpleIssue)
}

// Disabled reports whether the options would never produce an issue.
func (o EnforceOptions) Disabled() bool {
	return o.OnDuplicate == DupIgnore && o.MaxDepth <= 0 && o.MaxBytes <= 0
}

type container struct {
	object    bool
	keys      map[string]struct{}
	path      string
	nextIndex int
	key       string
	inValue   bool
}

// WrapWithEnforcement returns a TokenSource that enforces the duplicate key
// policy, the maximum nesting depth and the maximum consumed bytes.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	if opt.Disabled() {
		return inner
	}
	return &enforcer{inner: inner, opt: opt}
}

type enforcer struct {
	inner TokenSource
	opt   EnforceOptions
	stack []container
}

func (e *enforcer) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		path := e.valuePath()
		c := container{object: tok.Kind == KindBeginObject, path: path}
		if c.object && e.opt.OnDuplicate != DupIgnore {
			c.keys = make(map[string]struct{})
		}
		e.stack = append(e.stack, c)
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			return Token{}, e.report(SimpleIssue{Code: CodeMaxDepth, Path: pointer(path), Message: "max depth exceeded"}, true)
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
		e.valueDone()
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if top.keys != nil {
				if _, dup := top.keys[tok.String]; dup {
					si := SimpleIssue{Code: CodeDuplicateKey, Path: pointer(join(top.path, tok.String)), Message: "key '" + tok.String + "' duplicated"}
					if err := e.report(si, e.opt.OnDuplicate == DupError); err != nil {
						return Token{}, err
					}
				}
				top.keys[tok.String] = struct{}{}
			}
			top.key = tok.String
			top.inValue = true
		}
	default:
		e.valuePath()
		e.valueDone()
	}

	if e.opt.MaxBytes > 0 {
		if off := e.inner.Location(); off > e.opt.MaxBytes {
			return Token{}, e.report(SimpleIssue{Code: CodeTruncated, Path: pointer(e.currentPath()), Message: "max bytes exceeded"}, true)
		}
	}
	return tok, nil
}

func (e *enforcer) Location() int64 { return e.inner.Location() }

func (e *enforcer) report(si SimpleIssue, fatal bool) error {
	if e.opt.IssueSink != nil {
		e.opt.IssueSink(si)
	}
	if fatal {
		return IssueError{si}
	}
	return nil
}

// valuePath returns the pointer of the value starting at the current token
// and advances the array index of the enclosing container.
func (e *enforcer) valuePath() string {
	n := len(e.stack)
	if n == 0 {
		return ""
	}
	top := &e.stack[n-1]
	if top.object {
		return join(top.path, top.key)
	}
	p := join(top.path, strconv.Itoa(top.nextIndex))
	top.nextIndex++
	return p
}

func (e *enforcer) valueDone() {
	if n := len(e.stack); n > 0 && e.stack[n-1].object {
		e.stack[n-1].inValue = false
	}
}

func (e *enforcer) currentPath() string {
	n := len(e.stack)
	if n == 0 {
		return ""
	}
	top := e.stack[n-1]
	if top.object && top.inValue {
		return join(top.path, top.key)
	}
	return top.path
}

func pointer(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func join(base, token string) string {
	return base + "/" + pointerEscaper.Replace(token)
}
