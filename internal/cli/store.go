package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/tmsim/internal/config"
	"github.com/aretw0/tmsim/pkg/adapters/file"
	"github.com/aretw0/tmsim/pkg/adapters/memory"
	"github.com/aretw0/tmsim/pkg/adapters/postgres"
	"github.com/aretw0/tmsim/pkg/adapters/redis"
	"github.com/aretw0/tmsim/pkg/ports"
)

// OpenStore builds the report store selected by cfg.Driver.
// The closer is nil for stores without a connection.
func OpenStore(ctx context.Context, cfg config.StoreConfig) (ports.ReportStore, io.Closer, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewStore(), nil, nil
	case config.DriverFile, "":
		return file.New(cfg.Path), nil, nil
	case config.DriverRedis:
		s := redis.New(cfg.Addr, cfg.Password, cfg.DB, redis.WithTTL(cfg.TTL))
		return s, s, nil
	case config.DriverPostgres:
		s, err := postgres.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
