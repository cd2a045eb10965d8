package dsl

import "github.com/aretw0/tmsim/pkg/domain"

// RuleBuilder configures a single transition.
type RuleBuilder struct {
	builder *Builder
	t       domain.Transition
}

// Write sets the symbol written under the head.
func (r *RuleBuilder) Write(symbol string) *RuleBuilder {
	r.t.Write = symbol
	return r
}

// Move sets the head direction.
func (r *RuleBuilder) Move(d domain.Direction) *RuleBuilder {
	r.t.Move = d
	return r
}

func (r *RuleBuilder) Right() *RuleBuilder { return r.Move(domain.Right) }
func (r *RuleBuilder) Left() *RuleBuilder  { return r.Move(domain.Left) }
func (r *RuleBuilder) Stay() *RuleBuilder  { return r.Move(domain.Stay) }

// Goto sets the target state, records the transition and returns the machine builder.
func (r *RuleBuilder) Goto(state int) *Builder {
	r.t.To = state
	r.builder.def.Transitions = append(r.builder.def.Transitions, r.t)
	return r.builder
}
