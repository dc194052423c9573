package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/avikram/filingscope/pkg/models"
)

// PostgresStore keeps filing records in a single jsonb table, keyed by
// filing ID.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects, pings, and creates the schema when missing.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, errors.New("postgres store requires store.postgres_dsn")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS filings (
			filing_id   TEXT PRIMARY KEY,
			form_type   TEXT NOT NULL,
			filing_date TEXT NOT NULL,
			record      JSONB NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("create filings table: %w", err)
	}
	return nil
}

// Put saves or replaces a filing record.
func (s *PostgresStore) Put(ctx context.Context, rec *models.FilingRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal filing %s: %w", rec.ID, err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO filings (filing_id, form_type, filing_date, record, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (filing_id) DO UPDATE
		SET form_type = EXCLUDED.form_type,
		    filing_date = EXCLUDED.filing_date,
		    record = EXCLUDED.record,
		    updated_at = now()`,
		rec.ID, rec.FormType, rec.FilingDate, data)
	if err != nil {
		return fmt.Errorf("upsert filing %s: %w", rec.ID, err)
	}
	return nil
}

// GetAll returns every stored record ordered by filing date then ID. Rows
// that fail to decode are skipped with a warning.
func (s *PostgresStore) GetAll(ctx context.Context) ([]models.FilingRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT record FROM filings
		ORDER BY filing_date, filing_id`)
	if err != nil {
		return nil, fmt.Errorf("query filings: %w", err)
	}
	defer rows.Close()

	var records []models.FilingRecord
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan filing row: %w", err)
		}
		var rec models.FilingRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			log.Warn().Err(err).Msg("skipping corrupt filing row")
			continue
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate filings: %w", err)
	}
	return records, nil
}

// Exists reports whether a filing with the given ID is stored. Unlike the
// file backend, records are keyed by exact ID here.
func (s *PostgresStore) Exists(ctx context.Context, filingID string) (bool, error) {
	if filingID == "" {
		return false, nil
	}
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM filings WHERE filing_id = $1)`, filingID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check filing %s: %w", filingID, err)
	}
	return exists, nil
}

// Health checks if the database connection is healthy.
func (s *PostgresStore) Health(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the database connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
