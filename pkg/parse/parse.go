// Package parse converts user-supplied text into bounded integers.
package parse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrEmpty is returned for blank input.
	ErrEmpty = errors.New("empty input")
	// ErrOutOfRange is returned by ParseInRange when the value is outside
	// the requested bounds.
	ErrOutOfRange = errors.New("value out of range")
)

// Error records a failed conversion and the input that caused it.
type Error struct {
	Input string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse %q: %v", e.Input, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ParseNumber parses a base-10 int32. Surrounding whitespace is ignored.
// Syntax and range failures unwrap to strconv.ErrSyntax / strconv.ErrRange.
func ParseNumber(s string) (int32, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, &Error{Input: s, Err: ErrEmpty}
	}
	n, err := strconv.ParseInt(trimmed, 10, 32)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return 0, &Error{Input: s, Err: err}
	}
	return int32(n), nil
}

// ParseInRange parses s and checks lo <= value <= hi.
func ParseInRange(s string, lo, hi int32) (int32, error) {
	if lo > hi {
		return 0, fmt.Errorf("invalid range [%d, %d]", lo, hi)
	}
	n, err := ParseNumber(s)
	if err != nil {
		return 0, err
	}
	if n < lo || n > hi {
		return n, &Error{Input: s, Err: fmt.Errorf("%d not in [%d, %d]: %w", n, lo, hi, ErrOutOfRange)}
	}
	return n, nil
}
