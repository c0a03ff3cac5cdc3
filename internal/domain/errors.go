package domain

import (
	"github.com/pkg/errors"
)

// Failure kinds. Every error leaving a component is, or wraps, one of these
// so the transport can map it to a status without string matching.
var (
	ErrInputValidation    = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrUpstreamExtraction = errors.New("job description extraction failed")
	ErrUpstreamGeneration = errors.New("text generation failed")
	ErrEmptyOutput        = errors.New("text generation returned empty output")
	ErrConversion         = errors.New("pdf conversion failed")
	ErrNoText             = errors.New("no text could be extracted")
)

// Error attaches a human readable message to a failure kind.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	if e.Msg == "" {
		return e.Err.Error()
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == e.Kind }

// Invalid reports bad caller input.
func Invalid(msg string) error {
	return &Error{Kind: ErrInputValidation, Msg: msg}
}

// Invalidf is Invalid with formatting.
func Invalidf(format string, args ...interface{}) error {
	return &Error{Kind: ErrInputValidation, Msg: errors.Errorf(format, args...).Error()}
}

// Fail wraps err under kind with a message.
func Fail(kind error, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the failure kind carried by err, or nil if none.
func KindOf(err error) error {
	for _, k := range []error{
		ErrInputValidation,
		ErrNotFound,
		ErrNoText,
		ErrUpstreamExtraction,
		ErrUpstreamGeneration,
		ErrEmptyOutput,
		ErrConversion,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
