package compiler

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/tmsim/pkg/domain"
)

// DefaultEmptySentinel is the line content that stands for the empty input string.
const DefaultEmptySentinel = "-"

// Parser converts the line-oriented machine description into a MachineSpec.
type Parser struct {
	blank         string
	emptySentinel string
}

// Option configures a Parser.
type Option func(*Parser)

// WithBlank overrides the blank symbol of the parsed machines.
func WithBlank(blank string) Option {
	return func(p *Parser) {
		if blank != "" {
			p.blank = blank
		}
	}
}

// WithEmptySentinel overrides the line content that denotes the empty string.
func WithEmptySentinel(s string) Option {
	return func(p *Parser) {
		if s != "" {
			p.emptySentinel = s
		}
	}
}

// NewParser creates a new parser instance.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		blank:         domain.DefaultBlank,
		emptySentinel: DefaultEmptySentinel,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile opens path and parses it.
func (p *Parser) ParseFile(path string) (*domain.MachineSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open machine description: %w", err)
	}
	defer f.Close()
	return p.Parse(f)
}

// Parse reads a machine description. Fields are consumed in a fixed order and
// validated as soon as they are read, so the first violation is reported with
// its line number. The returned error is a *domain.LoadError for any
// malformed description.
func (p *Parser) Parse(r io.Reader) (*domain.MachineSpec, error) {
	lr := newLineReader(r)
	def := domain.Definition{Blank: p.blank}

	// 1. States
	n, err := lr.count("states", "number of states", domain.MaxStates)
	if err != nil {
		return nil, err
	}
	def.NumStates = n

	// 2-3. Alphabets
	if def.Terminals, err = lr.symbols("tape alphabet", "number of terminal symbols", domain.MaxTerminals); err != nil {
		return nil, err
	}
	if def.Extended, err = lr.symbols("extended alphabet", "number of extended symbols", math.MaxInt); err != nil {
		return nil, err
	}
	full := append(append([]string{}, def.Terminals...), def.Extended...)

	// 4. Accept state
	line, err := lr.next("accept state")
	if err != nil {
		return nil, err
	}
	accept, err := atoi(line)
	if err == nil {
		err = domain.CheckState(n, accept)
	}
	if err != nil {
		return nil, lr.fail("accept state", err)
	}
	def.Accept = accept

	// 5-6. Transitions
	m, err := lr.count("transitions", "number of transitions", domain.MaxTransitions)
	if err != nil {
		return nil, err
	}
	seen := make(map[domain.TransitionKey]bool, m)
	for i := 1; i <= m; i++ {
		field := fmt.Sprintf("transition %d", i)
		line, err := lr.next(field)
		if err != nil {
			return nil, err
		}
		t, err := parseTransition(line, n, full)
		if err == nil && seen[t.Key()] {
			err = fmt.Errorf("%w: state '%s' and symbol '%s'", domain.ErrDuplicateTransition, domain.StateName(t.From), t.Read)
		}
		if err != nil {
			return nil, lr.fail(field, err)
		}
		seen[t.Key()] = true
		def.Transitions = append(def.Transitions, t)
	}

	// 7-8. Input strings
	k, err := lr.count("input strings", "number of input strings", domain.MaxInputs)
	if err != nil {
		return nil, err
	}
	for i := 1; i <= k; i++ {
		field := fmt.Sprintf("input %d", i)
		line, err := lr.next(field)
		if err != nil {
			return nil, err
		}
		if line == p.emptySentinel {
			line = ""
		}
		if err := domain.CheckInput(line); err != nil {
			return nil, lr.fail(field, err)
		}
		def.Inputs = append(def.Inputs, line)
	}

	if err := lr.rest(); err != nil {
		return nil, err
	}
	return domain.NewMachineSpec(def)
}

// parseTransition decodes "state read next write direction".
func parseTransition(line string, numStates int, alphabet []string) (domain.Transition, error) {
	fields := strings.Fields(line)
	if len(fields) != 5 {
		return domain.Transition{}, fmt.Errorf("%w: expected 5 fields, got %d", domain.ErrMalformedTransition, len(fields))
	}

	from, err := stateIndex(fields[0], numStates)
	if err != nil {
		return domain.Transition{}, err
	}
	to, err := stateIndex(fields[2], numStates)
	if err != nil {
		return domain.Transition{}, err
	}
	if err := domain.CheckSymbol(alphabet, fields[1]); err != nil {
		return domain.Transition{}, err
	}
	if err := domain.CheckSymbol(alphabet, fields[3]); err != nil {
		return domain.Transition{}, err
	}
	move, err := domain.ParseDirection(fields[4])
	if err != nil {
		return domain.Transition{}, err
	}

	return domain.Transition{From: from, Read: fields[1], To: to, Write: fields[3], Move: move}, nil
}

func stateIndex(s string, numStates int) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: 'q%s' is not defined", domain.ErrUnknownState, s)
	}
	return idx, domain.CheckState(numStates, idx)
}

func atoi(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: expected an integer, got %q", domain.ErrMalformedField, s)
	}
	return v, nil
}
