package compiler

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/tmsim/pkg/domain"
)

// MaxLineBytes is the longest line the loader accepts.
const MaxLineBytes = 1 << 20

// lineReader hands out trimmed lines and remembers the current line number.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func newLineReader(r io.Reader) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)
	return &lineReader{sc: sc}
}

// next returns the next line, or ErrUnexpectedEOF naming the missing field.
func (lr *lineReader) next(field string) (string, error) {
	if !lr.sc.Scan() {
		if err := lr.sc.Err(); err != nil {
			return "", lr.readErr(field, err)
		}
		return "", &domain.LoadError{
			Line:  lr.line + 1,
			Field: field,
			Err:   fmt.Errorf("%w: missing %s", domain.ErrUnexpectedEOF, field),
		}
	}
	lr.line++
	return strings.TrimSpace(lr.sc.Text()), nil
}

// count reads a line holding a single bounded integer.
func (lr *lineReader) count(field, label string, max int) (int, error) {
	line, err := lr.next(field)
	if err != nil {
		return 0, err
	}
	n, err := atoi(line)
	if err == nil {
		err = domain.CheckCount(label, n, max)
	}
	if err != nil {
		return 0, lr.fail(field, err)
	}
	return n, nil
}

// symbols reads "<count> <sym_1> ... <sym_count>".
func (lr *lineReader) symbols(field, label string, max int) ([]string, error) {
	line, err := lr.next(field)
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, lr.fail(field, fmt.Errorf("%w: expected a symbol count", domain.ErrMalformedField))
	}
	n, err := atoi(fields[0])
	if err == nil {
		err = domain.CheckCount(label, n, max)
	}
	if err == nil && len(fields)-1 != n {
		err = fmt.Errorf("%w: declared %d symbols, found %d", domain.ErrMalformedField, n, len(fields)-1)
	}
	if err != nil {
		return nil, lr.fail(field, err)
	}
	return fields[1:], nil
}

// rest fails if anything other than blank lines remains.
func (lr *lineReader) rest() error {
	for lr.sc.Scan() {
		lr.line++
		if strings.TrimSpace(lr.sc.Text()) != "" {
			return lr.fail("end of description", fmt.Errorf("%w: unexpected content after the last input string", domain.ErrTrailingInput))
		}
	}
	if err := lr.sc.Err(); err != nil {
		return lr.readErr("end of description", err)
	}
	return nil
}

// readErr reports a failed read at the line that could not be read.
func (lr *lineReader) readErr(field string, err error) error {
	if errors.Is(err, bufio.ErrTooLong) {
		err = fmt.Errorf("%w: line longer than %d bytes", domain.ErrMalformedField, MaxLineBytes)
	} else {
		err = fmt.Errorf("%w: failed to read machine description: %w", domain.ErrMalformedField, err)
	}
	return &domain.LoadError{Line: lr.line + 1, Field: field, Err: err}
}

func (lr *lineReader) fail(field string, err error) error {
	return &domain.LoadError{Line: lr.line, Field: field, Err: err}
}
