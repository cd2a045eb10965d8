package domain

import "fmt"

// Transition is a single entry of the transition function:
// (From, Read) -> (To, Write, Move).
type Transition struct {
	From  int       `json:"from" yaml:"from"`
	Read  string    `json:"read" yaml:"read"`
	To    int       `json:"to" yaml:"to"`
	Write string    `json:"write" yaml:"write"`
	Move  Direction `json:"move" yaml:"move"`
}

// Key returns the lookup key of the transition.
func (t Transition) Key() TransitionKey {
	return TransitionKey{State: t.From, Read: t.Read}
}

func (t Transition) String() string {
	return fmt.Sprintf("δ(%s, %s) = (%s, %s, %s)", StateName(t.From), t.Read, StateName(t.To), t.Write, t.Move)
}

// TransitionKey identifies the domain element of the partial transition function.
type TransitionKey struct {
	State int
	Read  string
}

// StateName renders a state index as its identifier (q0, q1, ...).
func StateName(index int) string {
	return fmt.Sprintf("q%d", index)
}
