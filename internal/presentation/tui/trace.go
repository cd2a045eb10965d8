package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/muesli/termenv"
)

// TraceMarkdown renders a step trace and its verdict as a markdown document.
// The head cell is wrapped in brackets.
func TraceMarkdown(result domain.Result, steps []domain.StepEvent, tokens domain.Tokens) string {
	var sb strings.Builder

	input := result.Input
	if input == "" {
		input = "ε"
	}
	sb.WriteString(fmt.Sprintf("# Trace of `%s`\n\n", input))

	if len(steps) > 0 {
		sb.WriteString("| step | state | tape | transition |\n")
		sb.WriteString("|---:|---|---|---|\n")
		for _, s := range steps {
			sb.WriteString(fmt.Sprintf("| %d | %s | `%s` | %s |\n",
				s.Step, domain.StateName(s.State), escapeCell(formatTape(s.Tape, s.Head)),
				escapeCell(s.Transition.String())))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("**%s** in %s after %d steps (%s)\n",
		tokens.Format(result.Verdict), domain.StateName(result.FinalState), result.Steps, result.Reason))
	return sb.String()
}

func formatTape(cells []string, head int) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		if i == head {
			parts[i] = "[" + c + "]"
		} else {
			parts[i] = c
		}
	}
	return strings.Join(parts, " ")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

// ColorVerdict styles a verdict token green for accept and red for reject.
func ColorVerdict(v domain.Verdict, tokens domain.Tokens) string {
	p := termenv.ColorProfile()
	color := "#f87171"
	if v == domain.Accept {
		color = "#4ade80"
	}
	return termenv.String(tokens.Format(v)).Foreground(p.Color(color)).Bold().String()
}
