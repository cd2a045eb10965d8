package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	httpAdapter "github.com/aretw0/tmsim/pkg/adapters/http"
	"github.com/aretw0/tmsim/pkg/adapters/mcp"
)

// Serve runs the HTTP API on addr until ctx is cancelled.
func Serve(ctx context.Context, app *App, addr string) error {
	handler, err := httpAdapter.NewHandler(app.Sim,
		httpAdapter.WithGatherer(app.Registry),
		httpAdapter.WithLogger(app.Logger),
	)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		app.Logger.Info("starting tmsim server", "addr", addr, "store", app.Config.Store.Driver)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			srv.Close()
			return fmt.Errorf("graceful shutdown did not complete: %w", err)
		}
		app.Logger.Info("tmsim server stopped gracefully")
		return nil
	}
}

// ServeMCP runs the MCP server over stdio, or over SSE on addr when addr is set.
func ServeMCP(ctx context.Context, app *App, addr string) error {
	srv := mcp.NewServer(app.Sim)
	if addr == "" {
		app.Logger.Info("starting tmsim MCP server (stdio)")
		return srv.ServeStdio()
	}
	return srv.ServeSSE(ctx, addr)
}
