/*
Package dsl provides a fluent Go API for constructing Turing machines without
writing the textual description format.

It is useful for tests, for generating machines programmatically and for
embedding small machines in Go programs. Build runs the same validation as the
text loader, so a built machine obeys every limit and invariant.

Example usage:

	spec, err := dsl.New(2).
		Terminals("0", "1").
		Accept(1).
		On(0, "0").Write("1").Right().Goto(1).
		Inputs("0", "1").
		Build()
*/
package dsl
