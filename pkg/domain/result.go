package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Verdict is the outcome of simulating one input string.
type Verdict int

const (
	Reject Verdict = iota
	Accept
)

func (v Verdict) String() string {
	if v == Accept {
		return "accept"
	}
	return "reject"
}

// MarshalText encodes the verdict as "accept" or "reject".
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText decodes "accept" or "reject".
func (v *Verdict) UnmarshalText(b []byte) error {
	switch string(b) {
	case "accept":
		*v = Accept
	case "reject":
		*v = Reject
	default:
		return fmt.Errorf("unknown verdict %q", b)
	}
	return nil
}

// Reason explains why a simulation halted.
type Reason string

const (
	ReasonAcceptState  Reason = "accept_state"  // reached the accept state
	ReasonNoTransition Reason = "no_transition" // δ undefined for (state, symbol)
	ReasonCycle        Reason = "cycle"         // configuration repeated
	ReasonStepLimit    Reason = "step_limit"    // step budget exhausted
)

// Result is the verdict for a single input string.
type Result struct {
	Input      string  `json:"input"`
	Verdict    Verdict `json:"verdict"`
	Reason     Reason  `json:"reason"`
	Steps      int     `json:"steps"`
	FinalState int     `json:"final_state"`
}

// Accepted reports whether the input was accepted.
func (r Result) Accepted() bool {
	return r.Verdict == Accept
}

// Tokens are the literal words written for each verdict.
type Tokens struct {
	Accept string `json:"accept" yaml:"accept"`
	Reject string `json:"reject" yaml:"reject"`
}

// DefaultTokens are the verdict words of the classic output format.
var DefaultTokens = Tokens{Accept: "aceita", Reject: "rejeita"}

// Format returns the token for v.
func (t Tokens) Format(v Verdict) string {
	if v == Accept {
		return t.Accept
	}
	return t.Reject
}

// Report is a persisted evaluation run over all input strings of a machine.
type Report struct {
	ID        string    `json:"id"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Results   []Result  `json:"results"`
}

// NewReport creates a report with a fresh identifier.
func NewReport(source string, results []Result) *Report {
	return &Report{
		ID:        uuid.NewString(),
		Source:    source,
		CreatedAt: time.Now().UTC(),
		Results:   results,
	}
}

// Summary counts accepted and rejected inputs.
func (r *Report) Summary() (accepted, rejected int) {
	for _, res := range r.Results {
		if res.Accepted() {
			accepted++
		} else {
			rejected++
		}
	}
	return accepted, rejected
}
