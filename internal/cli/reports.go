package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// ListReports prints the stored reports, one per line.
func ListReports(ctx context.Context, app *App, w io.Writer) error {
	store := app.Sim.Store()
	ids, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tSOURCE\tACCEPTED\tREJECTED")
	for _, id := range ids {
		r, err := store.Load(ctx, id)
		if err != nil {
			// Expired or deleted between List and Load.
			app.Logger.Debug("skipping report", "id", id, "error", err)
			continue
		}
		accepted, rejected := r.Summary()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Source, accepted, rejected)
	}
	return tw.Flush()
}

// ShowReport prints a stored report as indented JSON.
func ShowReport(ctx context.Context, app *App, id string, w io.Writer) error {
	r, err := app.Sim.Store().Load(ctx, id)
	if err != nil {
		return fmt.Errorf("report %s: %w", id, err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// DeleteReport removes a stored report.
func DeleteReport(ctx context.Context, app *App, id string) error {
	return app.Sim.Store().Delete(ctx, id)
}
