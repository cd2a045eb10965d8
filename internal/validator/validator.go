package validator

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/aretw0/tmsim/pkg/domain"
)

// Finding codes.
const (
	CodeUnreachableState     = "unreachable_state"
	CodeAcceptUnreachable    = "accept_unreachable"
	CodeAcceptOutgoing       = "accept_outgoing"
	CodeMultiCharSymbol      = "multi_char_symbol"
	CodeInputOutsideAlphabet = "input_outside_alphabet"
	CodeUnusedExtended       = "unused_extended"
)

// Finding is a warning about a machine that loads but is probably wrong.
type Finding struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}

// Analyze inspects a loaded machine and returns its findings in a stable order.
func Analyze(spec *domain.MachineSpec) []Finding {
	var findings []Finding
	add := func(code, format string, args ...any) {
		findings = append(findings, Finding{Code: code, Message: fmt.Sprintf(format, args...)})
	}

	transitions := spec.Transitions()
	accept := spec.AcceptState()

	// Crawl the state graph from q0.
	visited := make([]bool, spec.NumStates())
	queue := []int{0}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true
		if current == accept {
			continue // halts on entry
		}
		for _, t := range transitions {
			if t.From == current && !visited[t.To] {
				queue = append(queue, t.To)
			}
		}
	}

	for i, ok := range visited {
		if !ok && i != accept {
			add(CodeUnreachableState, "%s is not reachable from %s", domain.StateName(i), domain.StateName(0))
		}
	}
	if !visited[accept] {
		add(CodeAcceptUnreachable, "accept state %s is not reachable from %s; every input is rejected",
			domain.StateName(accept), domain.StateName(0))
	}

	for _, t := range transitions {
		if t.From == accept {
			add(CodeAcceptOutgoing, "%s is never taken: the machine halts on entering %s", t, domain.StateName(accept))
		}
	}

	for _, sym := range spec.FullAlphabet() {
		if utf8.RuneCountInString(sym) > 1 {
			add(CodeMultiCharSymbol, "symbol %q spans several characters; input cells hold one character each", sym)
		}
	}

	terminals := spec.TapeAlphabet()
	for i, in := range spec.Inputs() {
		for _, r := range in {
			if !slices.Contains(terminals, string(r)) {
				add(CodeInputOutsideAlphabet, "input %d (%q) uses %q, which is not in the tape alphabet", i+1, in, string(r))
				break
			}
		}
	}

	for _, sym := range spec.ExtendedAlphabet() {
		used := slices.ContainsFunc(transitions, func(t domain.Transition) bool {
			return t.Read == sym || t.Write == sym
		})
		if !used && sym != spec.Blank() {
			add(CodeUnusedExtended, "extended symbol %q is never read or written", sym)
		}
	}

	return findings
}
