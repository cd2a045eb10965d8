package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/tmsim"
	"github.com/aretw0/tmsim/internal/config"
	"github.com/aretw0/tmsim/internal/logging"
	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/aretw0/tmsim/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
)

// Options are the global flags shared by every command.
type Options struct {
	ConfigPath     string
	ConfigExplicit bool
	Debug          bool
}

// App bundles the configured simulator and its collaborators for one command.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Sim      *tmsim.Simulator
	Registry *prometheus.Registry

	closers []io.Closer
}

// NewApp loads the configuration and wires logger, store, metrics and simulator.
func NewApp(ctx context.Context, opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath, opts.ConfigExplicit)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg}

	logger, closer, err := createLogger(cfg, opts.Debug)
	if err != nil {
		return nil, err
	}
	app.Logger = logger
	app.addCloser(closer)

	store, closer, err := OpenStore(ctx, cfg.Store)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.addCloser(closer)

	app.Registry = prometheus.NewRegistry()
	metrics := observability.NewMetrics(app.Registry)

	simOpts := []tmsim.Option{
		tmsim.WithLogger(logger),
		tmsim.WithStore(store),
		tmsim.WithMetrics(metrics),
		tmsim.WithMaxSteps(cfg.MaxSteps),
		tmsim.WithWorkers(cfg.Workers),
		tmsim.WithBlank(cfg.Blank),
		tmsim.WithEmptySentinel(cfg.EmptySentinel),
	}
	if opts.Debug {
		simOpts = append(simOpts, tmsim.WithLifecycleHooks(createDebugHooks(logger)))
	}
	app.Sim = tmsim.New(simOpts...)

	return app, nil
}

func (a *App) addCloser(c io.Closer) {
	if c != nil {
		a.closers = append(a.closers, c)
	}
}

// Close releases the log file and the store connection.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// createLogger writes text logs to stderr and, when log_file is set, JSON logs to that file.
// --debug lowers the stderr level to Debug.
func createLogger(cfg *config.Config, debug bool) (*slog.Logger, io.Closer, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if debug {
		level = slog.LevelDebug
	}

	if cfg.LogFile == "" {
		return logging.New(level), nil, nil
	}
	h, closer, err := logging.FileHandler(cfg.LogFile, slog.LevelDebug)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	return logging.New(level, h), closer, nil
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step",
				"input", e.Input,
				"step", e.Step,
				"state", domain.StateName(e.State),
				"head", e.Head,
				"transition", e.Transition.String(),
			)
		},
	}
}
