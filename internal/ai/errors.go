package ai

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse is returned when a provider answers without any text.
var ErrEmptyResponse = errors.New("empty response")

// CallError is an external-call failure (network, quota, model error).
type CallError struct {
	Provider string
	Err      error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s API error: %v", e.Provider, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// PrefixLen bounds the payload excerpt carried by ParseError.
const PrefixLen = 200

// ParseError reports model output that could not be parsed after fence
// stripping. Prefix holds the first PrefixLen characters of the payload.
type ParseError struct {
	Stage  string
	Prefix string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: malformed model output: %v (payload starts %q)", e.Stage, e.Err, e.Prefix)
}

func (e *ParseError) Unwrap() error { return e.Err }

func newParseError(stage, payload string, err error) *ParseError {
	prefix := payload
	if r := []rune(prefix); len(r) > PrefixLen {
		prefix = string(r[:PrefixLen])
	}
	return &ParseError{Stage: stage, Prefix: prefix, Err: err}
}
