package domain

import (
	"fmt"
	"slices"
	"unicode/utf8"
)

// Fixed bounds of a machine description.
const (
	MaxStates      = 10
	MaxTerminals   = 10
	MaxTransitions = 50
	MaxInputs      = 10
	MaxInputLength = 20
)

// CheckCount validates a declared count against its maximum.
func CheckCount(field string, n, max int) error {
	if n < 0 {
		return fmt.Errorf("%w: %s must not be negative (got %d)", ErrMalformedField, field, n)
	}
	if n > max {
		return fmt.Errorf("%w: %s cannot be greater than %d (got %d)", ErrLimitExceeded, field, max, n)
	}
	return nil
}

// CheckState validates a state index against the number of declared states.
func CheckState(numStates, index int) error {
	if index < 0 || index >= numStates {
		return fmt.Errorf("%w: index %d is outside the declared states (%d)", ErrUnknownState, index, numStates)
	}
	return nil
}

// CheckSymbol validates that sym belongs to alphabet.
func CheckSymbol(alphabet []string, sym string) error {
	if !slices.Contains(alphabet, sym) {
		return fmt.Errorf("%w: %q is not in the extended tape alphabet", ErrUnknownSymbol, sym)
	}
	return nil
}

// CheckInput validates the length of an input string, counted in symbols.
func CheckInput(s string) error {
	if n := utf8.RuneCountInString(s); n > MaxInputLength {
		return fmt.Errorf("%w: input string length cannot be greater than %d (got %d)", ErrLimitExceeded, MaxInputLength, n)
	}
	return nil
}
