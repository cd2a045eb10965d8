package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/aretw0/tmsim/pkg/adapters/postgres"
	"github.com/aretw0/tmsim/pkg/ports"
	"github.com/stretchr/testify/require"
)

// Set TMSIM_TEST_POSTGRES_DSN (e.g. "postgres://tmsim@127.0.0.1/tmsim?sslmode=disable")
// to run against a real database.
func TestPostgresStore_Contract(t *testing.T) {
	dsn := os.Getenv("TMSIM_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TMSIM_TEST_POSTGRES_DSN not set")
	}

	store, err := postgres.Open(context.Background(), dsn)
	require.NoError(t, err)
	defer store.Close()

	ports.RunReportStoreContract(t, store)
}
