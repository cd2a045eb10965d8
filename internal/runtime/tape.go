package runtime

import "github.com/aretw0/tmsim/pkg/domain"

// tape is the materialized part of a conceptually infinite tape.
// head indexes cells and may sit one cell outside them until materialize
// is called.
type tape struct {
	cells []string
	head  int
	blank string
}

func newTape(input, blank string) *tape {
	t := &tape{blank: blank}
	for _, r := range input {
		t.cells = append(t.cells, string(r))
	}
	if len(t.cells) == 0 {
		t.cells = []string{blank}
	}
	return t
}

// materialize extends the tape with a blank on the side the head fell off.
// Extending to the left re-anchors the head at index 0.
func (t *tape) materialize() {
	switch {
	case t.head < 0:
		t.cells = append([]string{t.blank}, t.cells...)
		t.head = 0
	case t.head >= len(t.cells):
		t.cells = append(t.cells, t.blank)
	}
}

func (t *tape) read() string {
	return t.cells[t.head]
}

func (t *tape) write(sym string) {
	t.cells[t.head] = sym
}

func (t *tape) move(d domain.Direction) {
	t.head += d.Delta()
}

func (t *tape) snapshot() string {
	return domain.JoinTape(t.cells)
}
