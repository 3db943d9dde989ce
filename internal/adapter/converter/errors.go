package converter

import (
	"errors"
	"fmt"
)

var (
	ErrZeroTotal     = errors.New("total count is zero")
	ErrTotalOverflow = errors.New("total count overflows int64")
)

// ParseError reports a table line that is not "<ngram> <count>".
// Line is 1-based over the non-empty lines.
type ParseError struct {
	Line   int
	Text   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse error on line %d %q: %s", e.Line, e.Text, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DomainError reports a table whose log-probabilities are undefined.
type DomainError struct {
	Reason string
	Err    error
}

func (e *DomainError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("domain error: %v", e.Err)
	}
	return fmt.Sprintf("domain error: %s: %v", e.Reason, e.Err)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}
