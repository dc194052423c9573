// Package store persists parsed filing records. The default backend keeps
// one JSON file per filing; a Postgres backend exists for deployments where
// several tools share the same filings corpus.
package store

import (
	"context"
	"fmt"

	"github.com/avikram/filingscope/internal/config"
	"github.com/avikram/filingscope/pkg/models"
)

// Store persists parsed filing records for one company.
type Store interface {
	// Put saves or replaces a filing record.
	Put(ctx context.Context, rec *models.FilingRecord) error
	// GetAll returns every stored record, in storage order.
	GetAll(ctx context.Context) ([]models.FilingRecord, error)
	// Exists reports whether a filing with the given ID is already stored.
	Exists(ctx context.Context, filingID string) (bool, error)
	// Close releases any backing resources.
	Close()
}

// New builds the store selected by the config backend.
func New(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case "", "file":
		return NewFileStore(cfg.Dir)
	case "postgres":
		return NewPostgresStore(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
