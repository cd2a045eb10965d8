package dsl

import (
	"github.com/aretw0/tmsim/pkg/domain"
)

// Builder accumulates a machine definition.
type Builder struct {
	def domain.Definition
}

// New creates a builder for a machine with the given number of states.
// The accept state defaults to the last state.
func New(states int) *Builder {
	return &Builder{
		def: domain.Definition{
			NumStates: states,
			Accept:    states - 1,
		},
	}
}

// Terminals sets the tape alphabet.
func (b *Builder) Terminals(symbols ...string) *Builder {
	b.def.Terminals = symbols
	return b
}

// Extended sets the symbols usable only on the tape.
func (b *Builder) Extended(symbols ...string) *Builder {
	b.def.Extended = symbols
	return b
}

// Accept sets the accept state index.
func (b *Builder) Accept(state int) *Builder {
	b.def.Accept = state
	return b
}

// Blank overrides the blank symbol.
func (b *Builder) Blank(symbol string) *Builder {
	b.def.Blank = symbol
	return b
}

// Inputs sets the input strings evaluated by the machine.
func (b *Builder) Inputs(inputs ...string) *Builder {
	b.def.Inputs = inputs
	return b
}

// On starts a transition out of state when symbol is read.
// Until overridden, the rule rewrites the same symbol and keeps the head still.
func (b *Builder) On(state int, symbol string) *RuleBuilder {
	return &RuleBuilder{
		builder: b,
		t: domain.Transition{
			From:  state,
			Read:  symbol,
			Write: symbol,
			Move:  domain.Stay,
		},
	}
}

// Build validates the definition and returns the machine.
func (b *Builder) Build() (*domain.MachineSpec, error) {
	return domain.NewMachineSpec(b.def)
}

// MustBuild is like Build but panics on an invalid definition.
func (b *Builder) MustBuild() *domain.MachineSpec {
	spec, err := b.Build()
	if err != nil {
		panic(err)
	}
	return spec
}
