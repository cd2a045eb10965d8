package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/tmsim/pkg/domain"
)

// Overlay contains trace data to highlight on the diagram.
type Overlay struct {
	Visited []int
	Current int
}

// GenerateMermaid produces a Mermaid stateDiagram-v2 of the transition function.
// q0 is entered from [*] and the accept state leaves to [*].
// Each edge is labelled "read/write, move".
func GenerateMermaid(spec *domain.MachineSpec, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")

	for _, name := range spec.States() {
		sb.WriteString(fmt.Sprintf("    %s\n", name))
	}

	sb.WriteString(fmt.Sprintf("    [*] --> %s\n", domain.StateName(0)))
	for _, t := range spec.Transitions() {
		sb.WriteString(fmt.Sprintf("    %s --> %s: %s/%s, %s\n",
			domain.StateName(t.From), domain.StateName(t.To),
			escapeLabel(t.Read), escapeLabel(t.Write), t.Move))
	}

	accept := domain.StateName(spec.AcceptState())
	sb.WriteString(fmt.Sprintf("    %s --> [*]\n", accept))

	sb.WriteString("\n    classDef accept stroke-width:4px,font-weight:bold;\n")
	sb.WriteString(fmt.Sprintf("    class %s accept\n", accept))

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast regardless of theme
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[int]bool)
		for _, s := range overlay.Visited {
			if seen[s] || s == overlay.Current || s < 0 || s >= spec.NumStates() {
				continue
			}
			seen[s] = true
			sb.WriteString(fmt.Sprintf("    class %s visited\n", domain.StateName(s)))
		}
		if overlay.Current >= 0 && overlay.Current < spec.NumStates() {
			sb.WriteString(fmt.Sprintf("    class %s current\n", domain.StateName(overlay.Current)))
		}
	}

	return sb.String()
}

// escapeLabel replaces characters Mermaid treats as statement syntax.
func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, ";", "#59;")
	s = strings.ReplaceAll(s, "%", "#37;")
	return s
}
