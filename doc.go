/*
Package tmsim is a deterministic single-tape Turing machine simulator.

A machine is described in a small line-oriented text format: the number of
states, the tape alphabet, the extended (tape-only) alphabet, the accept state,
the transition function and the input strings to decide. tmsim loads and
validates the description, then runs every input string and reports whether
the machine accepts or rejects it.

# Text Format

	2            number of states (q0..q1)
	2 0 1        tape alphabet: count followed by symbols
	1 B          extended alphabet (0 when empty)
	1            accept state
	1            number of transitions
	0 0 1 1 R    from read to write move (R, L or S)
	3            number of input strings
	0
	1
	-            the empty string

# Semantics

The machine starts in q0 with the head on the first input symbol. The tape
grows with blanks in both directions as the head moves. A run accepts as soon
as it enters the accept state and rejects when no transition applies, when a
configuration (state, head, tape) repeats, or when the step budget runs out.

# Usage

	sim := tmsim.New(tmsim.WithWorkers(4))

	spec, err := sim.LoadFile("entrada.txt")
	if err != nil {
		log.Fatal(err)
	}

	report, err := sim.Run(ctx, spec, "entrada.txt")
	if err != nil {
		log.Fatal(err)
	}
	for _, r := range report.Results {
		fmt.Println(domain.DefaultTokens.Format(r.Verdict))
	}

Machines can also be built in Go with the pkg/dsl builder. The cmd/tmsim
binary exposes the same operations on the command line, over HTTP and as an
MCP server.
*/
package tmsim
