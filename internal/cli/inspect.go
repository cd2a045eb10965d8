package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/tmsim/internal/presentation/tui"
	"github.com/aretw0/tmsim/pkg/domain"
)

// ValidateFile loads path and prints the static-analysis findings.
// Findings are warnings; only a load error is returned.
func ValidateFile(app *App, path string, w io.Writer) error {
	spec, err := app.Sim.LoadFile(path)
	if err != nil {
		return err
	}

	findings := app.Sim.Validate(spec)
	for _, f := range findings {
		fmt.Fprintf(w, "warning: %s\n", f)
	}
	fmt.Fprintf(w, "Machine is valid: %d states, %d transitions, %d inputs (%d warnings)\n",
		spec.NumStates(), len(spec.Transitions()), len(spec.Inputs()), len(findings))
	return nil
}

// GraphFile prints the Mermaid diagram of the machine at path.
func GraphFile(app *App, path string, w io.Writer) error {
	spec, err := app.Sim.LoadFile(path)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, app.Sim.Graph(spec))
	return err
}

// TraceFile runs a single input string against the machine at path and prints
// every step as markdown. When pretty is set the markdown is rendered for the terminal.
func TraceFile(ctx context.Context, app *App, path, input string, w io.Writer, pretty bool) error {
	spec, err := app.Sim.LoadFile(path)
	if err != nil {
		return err
	}
	if err := domain.CheckInput(input); err != nil {
		return err
	}

	result, steps, err := app.Sim.Trace(ctx, spec, input)
	if err != nil {
		return err
	}

	md := tui.TraceMarkdown(result, steps, app.Config.Tokens())
	if pretty {
		if out, err := tui.NewRenderer()(md); err == nil {
			md = out
		}
	}
	_, err = io.WriteString(w, md)
	return err
}

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	return tui.IsTerminal(os.Stdout)
}
