package domain

import (
	"errors"
	"fmt"
)

// Load-time error taxonomy. Every failure returned by the loader or by
// NewMachineSpec wraps exactly one of these.
var (
	// ErrLimitExceeded is returned when a declared count exceeds its fixed maximum.
	ErrLimitExceeded = errors.New("limit exceeded")
	// ErrUnknownState is returned when a state index does not name a declared state.
	ErrUnknownState = errors.New("unknown state")
	// ErrUnknownSymbol is returned when a transition uses a symbol outside the full alphabet.
	ErrUnknownSymbol = errors.New("unknown symbol")
	// ErrInvalidDirection is returned when a direction is not R, L or S.
	ErrInvalidDirection = errors.New("invalid direction")
	// ErrMalformedTransition is returned when a transition line does not have five fields.
	ErrMalformedTransition = errors.New("malformed transition")
	// ErrDuplicateTransition is returned when (state, read) is declared twice.
	ErrDuplicateTransition = errors.New("duplicate transition")
	// ErrMalformedField is returned when a field cannot be parsed (non-integer,
	// negative count, count not matching the listed symbols).
	ErrMalformedField = errors.New("malformed field")
	// ErrUnexpectedEOF is returned when the source ends before a declared line.
	ErrUnexpectedEOF = errors.New("unexpected end of input")
	// ErrTrailingInput is returned when non-blank lines follow the last input string.
	ErrTrailingInput = errors.New("trailing input")
)

// ErrReportNotFound is returned when a report ID cannot be found in the store.
var ErrReportNotFound = errors.New("report not found")

// LoadError locates a validation failure inside a machine description.
type LoadError struct {
	Line  int    // 1-based source line, 0 when the definition was not read from text
	Field string // e.g. "states", "transition 3", "input 2"
	Err   error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

var kinds = []struct {
	err  error
	name string
}{
	{ErrLimitExceeded, "LimitExceeded"},
	{ErrUnknownState, "UnknownState"},
	{ErrUnknownSymbol, "UnknownSymbol"},
	{ErrInvalidDirection, "InvalidDirection"},
	{ErrMalformedTransition, "MalformedTransition"},
	{ErrDuplicateTransition, "DuplicateTransition"},
	{ErrMalformedField, "MalformedField"},
	{ErrUnexpectedEOF, "UnexpectedEOF"},
	{ErrTrailingInput, "TrailingInput"},
}

// ErrorKind returns the taxonomy name of a load error, or "Unknown".
func ErrorKind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "Unknown"
}
