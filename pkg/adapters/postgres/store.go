package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/tmsim/pkg/domain"
	_ "github.com/lib/pq"
)

const schema = `CREATE TABLE IF NOT EXISTS tmsim_reports (
	id         TEXT PRIMARY KEY,
	source     TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	results    JSONB NOT NULL
)`

// Store implements ports.ReportStore on a Postgres table.
type Store struct {
	db *sql.DB
}

// Open connects to Postgres using a lib/pq DSN and ensures the table exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewFromDB wraps an existing connection pool. The table must already exist
// or be created with Migrate.
func NewFromDB(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create reports table: %w", err)
	}
	return nil
}

// Migrate creates the reports table if needed.
func (s *Store) Migrate(ctx context.Context) error {
	return s.migrate(ctx)
}

// Save upserts the report.
func (s *Store) Save(ctx context.Context, report *domain.Report) error {
	results, err := json.Marshal(report.Results)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tmsim_reports (id, source, created_at, results)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET source = EXCLUDED.source, created_at = EXCLUDED.created_at, results = EXCLUDED.results`,
		report.ID, report.Source, report.CreatedAt, results)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// Load retrieves a report by ID.
func (s *Store) Load(ctx context.Context, id string) (*domain.Report, error) {
	var (
		report  domain.Report
		results []byte
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source, created_at, results FROM tmsim_reports WHERE id = $1`, id,
	).Scan(&report.ID, &report.Source, &report.CreatedAt, &results)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}

	if err := json.Unmarshal(results, &report.Results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal results: %w", err)
	}
	return &report, nil
}

// Delete removes a report.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tmsim_reports WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	return nil
}

// List returns report IDs, newest first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM tmsim_reports ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan report id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close closes the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
