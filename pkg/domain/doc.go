/*
Package domain contains the core domain model of the tmsim Turing machine simulator.

It defines the machine definition, the transition function, the verdicts produced by a
simulation and the errors raised while a definition is being validated. This package is
kept pure and free of I/O, following the same hexagonal split as the rest of the module:
parsing lives in internal/compiler, execution in internal/runtime, persistence in
pkg/adapters.

# Key Entities

  - MachineSpec: an immutable, validated machine (states, alphabets, accept state,
    transition function, input strings). The only constructor is NewMachineSpec.
  - Transition: one entry of the partial transition function.
  - Configuration: a (state, head, tape) snapshot used for cycle detection.
  - Result / Report: the verdict for one input string and a persisted evaluation run.
*/
package domain
