package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aretw0/tmsim/internal/fsutil"
	"github.com/aretw0/tmsim/pkg/domain"
)

// Default file names of the classic invocation `tmsim [input] [output]`.
const (
	DefaultInputPath  = "entrada.txt"
	DefaultOutputPath = "saida.txt"
)

// RunFiles decides every input string described in inputPath and writes one
// verdict token per line to outputPath. Nothing is written when loading fails.
func RunFiles(ctx context.Context, app *App, inputPath, outputPath string) (*domain.Report, error) {
	spec, err := app.Sim.LoadFile(inputPath)
	if err != nil {
		return nil, err
	}

	report, err := app.Sim.Run(ctx, spec, inputPath)
	if err != nil {
		return nil, err
	}

	if err := fsutil.WriteFileAtomic(outputPath, FormatVerdicts(report.Results, app.Config.Tokens()), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write results: %w", err)
	}

	accepted, rejected := report.Summary()
	app.Logger.Info("results written",
		"output", outputPath,
		"report_id", report.ID,
		"accepted", accepted,
		"rejected", rejected,
	)
	return report, nil
}

// FormatVerdicts renders one verdict token per line, in input order.
func FormatVerdicts(results []domain.Result, tokens domain.Tokens) []byte {
	var buf bytes.Buffer
	for _, r := range results {
		buf.WriteString(tokens.Format(r.Verdict))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
