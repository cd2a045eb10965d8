package domain

import (
	"fmt"
	"slices"
)

// DefaultBlank is the symbol used to extend the tape past its materialized cells.
const DefaultBlank = "B"

// Definition is the raw, unvalidated description of a machine.
// It is turned into a MachineSpec by NewMachineSpec.
type Definition struct {
	NumStates   int          `json:"num_states" yaml:"num_states"`
	Terminals   []string     `json:"terminals" yaml:"terminals"`
	Extended    []string     `json:"extended" yaml:"extended"`
	Accept      int          `json:"accept" yaml:"accept"`
	Transitions []Transition `json:"transitions" yaml:"transitions"`
	Inputs      []string     `json:"inputs" yaml:"inputs"`

	// Blank overrides DefaultBlank when set.
	Blank string `json:"blank,omitempty" yaml:"blank,omitempty"`
}

// MachineSpec is a validated deterministic single-tape Turing machine.
// It is never mutated after construction and may be shared between
// concurrent simulations without synchronization.
type MachineSpec struct {
	states      []string
	terminals   []string
	extended    []string
	full        []string
	accept      int
	transitions []Transition
	table       map[TransitionKey]Transition
	inputs      []string
	blank       string
}

// NewMachineSpec validates def and builds the machine.
// Errors are *LoadError values wrapping the taxonomy sentinels.
func NewMachineSpec(def Definition) (*MachineSpec, error) {
	if err := CheckCount("number of states", def.NumStates, MaxStates); err != nil {
		return nil, &LoadError{Field: "states", Err: err}
	}
	if err := CheckCount("number of terminal symbols", len(def.Terminals), MaxTerminals); err != nil {
		return nil, &LoadError{Field: "tape alphabet", Err: err}
	}
	if err := CheckState(def.NumStates, def.Accept); err != nil {
		return nil, &LoadError{Field: "accept state", Err: err}
	}
	if err := CheckCount("number of transitions", len(def.Transitions), MaxTransitions); err != nil {
		return nil, &LoadError{Field: "transitions", Err: err}
	}
	if err := CheckCount("number of input strings", len(def.Inputs), MaxInputs); err != nil {
		return nil, &LoadError{Field: "input strings", Err: err}
	}

	m := &MachineSpec{
		states:    make([]string, def.NumStates),
		terminals: slices.Clone(def.Terminals),
		extended:  slices.Clone(def.Extended),
		accept:    def.Accept,
		table:     make(map[TransitionKey]Transition, len(def.Transitions)),
		inputs:    slices.Clone(def.Inputs),
		blank:     def.Blank,
	}
	if m.blank == "" {
		m.blank = DefaultBlank
	}
	for i := range m.states {
		m.states[i] = StateName(i)
	}
	m.full = slices.Concat(m.terminals, m.extended)

	for i, t := range def.Transitions {
		if err := m.add(t); err != nil {
			return nil, &LoadError{Field: fmt.Sprintf("transition %d", i+1), Err: err}
		}
	}
	for i, s := range m.inputs {
		if err := CheckInput(s); err != nil {
			return nil, &LoadError{Field: fmt.Sprintf("input %d", i+1), Err: err}
		}
	}
	return m, nil
}

// add validates t against the machine built so far and inserts it into the table.
func (m *MachineSpec) add(t Transition) error {
	if err := CheckState(len(m.states), t.From); err != nil {
		return err
	}
	if err := CheckSymbol(m.full, t.Read); err != nil {
		return err
	}
	if err := CheckState(len(m.states), t.To); err != nil {
		return err
	}
	if err := CheckSymbol(m.full, t.Write); err != nil {
		return err
	}
	if !t.Move.Valid() {
		return fmt.Errorf("%w: %q (use 'R', 'L' or 'S')", ErrInvalidDirection, string(t.Move))
	}
	if _, dup := m.table[t.Key()]; dup {
		return fmt.Errorf("%w: state '%s' and symbol '%s'", ErrDuplicateTransition, StateName(t.From), t.Read)
	}
	m.table[t.Key()] = t
	m.transitions = append(m.transitions, t)
	return nil
}

// States returns the state identifiers q0..q(n-1).
func (m *MachineSpec) States() []string { return slices.Clone(m.states) }

// NumStates returns the number of declared states.
func (m *MachineSpec) NumStates() int { return len(m.states) }

// TapeAlphabet returns the terminal symbols.
func (m *MachineSpec) TapeAlphabet() []string { return slices.Clone(m.terminals) }

// ExtendedAlphabet returns the symbols usable only on the tape.
func (m *MachineSpec) ExtendedAlphabet() []string { return slices.Clone(m.extended) }

// FullAlphabet returns TapeAlphabet followed by ExtendedAlphabet.
func (m *MachineSpec) FullAlphabet() []string { return slices.Clone(m.full) }

// AcceptState returns the index of the accept state.
func (m *MachineSpec) AcceptState() int { return m.accept }

// Blank returns the blank symbol.
func (m *MachineSpec) Blank() string { return m.blank }

// Inputs returns the input strings in declaration order.
func (m *MachineSpec) Inputs() []string { return slices.Clone(m.inputs) }

// Transitions returns the transitions in declaration order.
func (m *MachineSpec) Transitions() []Transition { return slices.Clone(m.transitions) }

// Lookup returns the transition for (state, symbol), if defined.
func (m *MachineSpec) Lookup(state int, symbol string) (Transition, bool) {
	t, ok := m.table[TransitionKey{State: state, Read: symbol}]
	return t, ok
}

// WithInputs returns a copy of the machine evaluating a different set of input strings.
// The new inputs are validated against the same limits.
func (m *MachineSpec) WithInputs(inputs []string) (*MachineSpec, error) {
	def := m.Definition()
	def.Inputs = inputs
	return NewMachineSpec(def)
}

// Definition returns the raw description the machine was built from.
func (m *MachineSpec) Definition() Definition {
	return Definition{
		NumStates:   len(m.states),
		Terminals:   slices.Clone(m.terminals),
		Extended:    slices.Clone(m.extended),
		Accept:      m.accept,
		Transitions: slices.Clone(m.transitions),
		Inputs:      slices.Clone(m.inputs),
		Blank:       m.blank,
	}
}
