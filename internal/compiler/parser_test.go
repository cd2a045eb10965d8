package compiler_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/tmsim/internal/compiler"
	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const binaryMachine = `2
2 0 1
0
1
1
0 0 1 1 R
3
0
1
-
`

func parse(t *testing.T, src string) (*domain.MachineSpec, error) {
	t.Helper()
	return compiler.NewParser().Parse(strings.NewReader(src))
}

func TestParse_Valid(t *testing.T) {
	spec, err := parse(t, binaryMachine)
	require.NoError(t, err)

	assert.Equal(t, []string{"q0", "q1"}, spec.States())
	assert.Equal(t, []string{"0", "1"}, spec.TapeAlphabet())
	assert.Empty(t, spec.ExtendedAlphabet())
	assert.Equal(t, 1, spec.AcceptState())
	assert.Equal(t, "B", spec.Blank())
	assert.Equal(t, []string{"0", "1", ""}, spec.Inputs())

	tr, ok := spec.Lookup(0, "0")
	require.True(t, ok)
	assert.Equal(t, domain.Transition{From: 0, Read: "0", To: 1, Write: "1", Move: domain.Right}, tr)

	_, ok = spec.Lookup(0, "1")
	assert.False(t, ok)
}

func TestParse_ExtendedAlphabetAndWhitespace(t *testing.T) {
	src := "3\r\n2 a b\r\n2 X B\r\n2\r\n3\r\n0 a 1 X R\r\n1 B 2 B S\r\n1 b 1 b L\r\n1\r\n  ab  \r\n\r\n\r\n"
	spec, err := parse(t, src)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "X", "B"}, spec.FullAlphabet())
	assert.Len(t, spec.Transitions(), 3)
	assert.Equal(t, []string{"ab"}, spec.Inputs())
}

func TestParse_CustomOptions(t *testing.T) {
	src := "1\n1 a\n0\n0\n0\n1\n_\n"
	spec, err := compiler.NewParser(
		compiler.WithBlank("#"),
		compiler.WithEmptySentinel("_"),
	).Parse(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, "#", spec.Blank())
	assert.Equal(t, []string{""}, spec.Inputs())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
		line int
	}{
		{
			name: "Too Many States",
			src:  "11\n1 a\n0\n0\n0\n0\n",
			want: domain.ErrLimitExceeded,
			line: 1,
		},
		{
			name: "Too Many Terminals",
			src:  "1\n11 a b c d e f g h i j k\n0\n0\n0\n0\n",
			want: domain.ErrLimitExceeded,
			line: 2,
		},
		{
			name: "Terminal Count Mismatch",
			src:  "1\n3 a b\n0\n0\n0\n0\n",
			want: domain.ErrMalformedField,
			line: 2,
		},
		{
			name: "Non Integer Count",
			src:  "two\n",
			want: domain.ErrMalformedField,
			line: 1,
		},
		{
			name: "Accept State Out Of Range",
			src:  "2\n1 a\n0\n2\n0\n0\n",
			want: domain.ErrUnknownState,
			line: 4,
		},
		{
			name: "Too Many Transitions",
			src:  "1\n1 a\n0\n0\n51\n",
			want: domain.ErrLimitExceeded,
			line: 5,
		},
		{
			name: "Malformed Transition",
			src:  "2\n1 a\n0\n1\n1\n0 a 1 R\n0\n",
			want: domain.ErrMalformedTransition,
			line: 6,
		},
		{
			name: "Unknown Source State",
			src:  "2\n1 a\n0\n1\n1\n5 a 1 a R\n0\n",
			want: domain.ErrUnknownState,
			line: 6,
		},
		{
			name: "Unknown Target State",
			src:  "2\n1 a\n0\n1\n1\n0 a x a R\n0\n",
			want: domain.ErrUnknownState,
			line: 6,
		},
		{
			name: "Unknown Read Symbol",
			src:  "2\n1 a\n0\n1\n1\n0 z 1 a R\n0\n",
			want: domain.ErrUnknownSymbol,
			line: 6,
		},
		{
			name: "Unknown Write Symbol",
			src:  "2\n1 a\n0\n1\n1\n0 a 1 B R\n0\n",
			want: domain.ErrUnknownSymbol,
			line: 6,
		},
		{
			name: "Invalid Direction",
			src:  "2\n1 a\n0\n1\n1\n0 a 1 a U\n0\n",
			want: domain.ErrInvalidDirection,
			line: 6,
		},
		{
			name: "Duplicate Transition",
			src:  "2\n1 a\n0\n1\n2\n0 a 1 a R\n0 a 0 a L\n0\n",
			want: domain.ErrDuplicateTransition,
			line: 7,
		},
		{
			name: "Too Many Inputs",
			src:  "1\n1 a\n0\n0\n0\n11\n",
			want: domain.ErrLimitExceeded,
			line: 6,
		},
		{
			name: "Input Too Long",
			src:  "1\n1 a\n0\n0\n0\n1\n" + strings.Repeat("a", 21) + "\n",
			want: domain.ErrLimitExceeded,
			line: 7,
		},
		{
			name: "Missing Transition Line",
			src:  "2\n1 a\n0\n1\n2\n0 a 1 a R\n",
			want: domain.ErrUnexpectedEOF,
			line: 7,
		},
		{
			name: "Missing Input Line",
			src:  "1\n1 a\n0\n0\n0\n2\na\n",
			want: domain.ErrUnexpectedEOF,
			line: 8,
		},
		{
			name: "Trailing Content",
			src:  "1\n1 a\n0\n0\n0\n1\na\nb\n",
			want: domain.ErrTrailingInput,
			line: 8,
		},
		{
			name: "Empty Source",
			src:  "",
			want: domain.ErrUnexpectedEOF,
			line: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := parse(t, tt.src)
			require.Error(t, err)
			assert.Nil(t, spec)
			assert.ErrorIs(t, err, tt.want)

			var loadErr *domain.LoadError
			require.True(t, errors.As(err, &loadErr), "expected *domain.LoadError, got %T", err)
			assert.Equal(t, tt.line, loadErr.Line)
			assert.Contains(t, err.Error(), fmt.Sprintf("line %d", tt.line))
		})
	}
}

func TestParse_DuplicateRegardlessOfOrder(t *testing.T) {
	a := "0 a 1 a R"
	b := "0 a 0 b L"
	for _, order := range [][2]string{{a, b}, {b, a}} {
		src := fmt.Sprintf("2\n2 a b\n0\n1\n2\n%s\n%s\n0\n", order[0], order[1])
		_, err := parse(t, src)
		assert.ErrorIs(t, err, domain.ErrDuplicateTransition)
	}
}

func TestParse_LimitsAtBoundary(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("10\n10 0 1 2 3 4 5 6 7 8 9\n0\n9\n50\n")
	for s := 0; s < 5; s++ {
		for sym := 0; sym < 10; sym++ {
			fmt.Fprintf(&sb, "%d %d %d %d R\n", s, sym, s+1, sym)
		}
	}
	sb.WriteString("10\n")
	for i := 0; i < 10; i++ {
		sb.WriteString(strings.Repeat("0", 20) + "\n")
	}

	spec, err := parse(t, sb.String())
	require.NoError(t, err)
	assert.Len(t, spec.Transitions(), 50)
	assert.Len(t, spec.Inputs(), 10)
}

func TestParse_OverlongLine(t *testing.T) {
	src := "2\n2 0 1\n0\n1\n1\n0 0 1 1 R\n1\n" + strings.Repeat("0", compiler.MaxLineBytes+1) + "\n"

	_, err := parse(t, src)
	require.Error(t, err)

	var loadErr *domain.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, 8, loadErr.Line)
	assert.ErrorIs(t, err, domain.ErrMalformedField)
	assert.Equal(t, "MalformedField", domain.ErrorKind(err))
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entrada.txt")
	require.NoError(t, os.WriteFile(path, []byte(binaryMachine), 0o644))

	spec, err := compiler.NewParser().ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, spec.NumStates())

	_, err = compiler.NewParser().ParseFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
