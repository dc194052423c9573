package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/avikram/filingscope/pkg/models"
)

// FileStore keeps each filing as one JSON file named
// {form_type}_{filing_date}_{filing_id}.json in a flat directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the store directory when missing.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = filepath.Join("data", "filings")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Put saves or replaces a filing record.
func (s *FileStore) Put(ctx context.Context, rec *models.FilingRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal filing %s: %w", rec.ID, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, filename(rec)), data, 0644); err != nil {
		return fmt.Errorf("write filing %s: %w", rec.ID, err)
	}
	return nil
}

// GetAll returns every stored record. Files that fail to read or decode are
// skipped with a warning so one corrupt file cannot hide the rest.
func (s *FileStore) GetAll(ctx context.Context) ([]models.FilingRecord, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read store dir %s: %w", s.dir, err)
	}

	records := make([]models.FilingRecord, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Str("file", path).Err(err).Msg("skipping unreadable filing")
			continue
		}
		var rec models.FilingRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			log.Warn().Str("file", path).Err(err).Msg("skipping corrupt filing")
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Exists reports whether any stored file name contains the filing ID. File
// names embed the ID as their last segment, so a substring check is enough
// without opening files.
func (s *FileStore) Exists(ctx context.Context, filingID string) (bool, error) {
	if filingID == "" {
		return false, nil
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return false, fmt.Errorf("read store dir %s: %w", s.dir, err)
	}
	for _, e := range entries {
		if !e.IsDir() && strings.Contains(e.Name(), filingID) {
			return true, nil
		}
	}
	return false, nil
}

// Close is a no-op for the file backend.
func (s *FileStore) Close() {}

// filename builds the canonical store file name. Slashes in amended form
// types (10-K/A) would split the path, so they become dashes.
func filename(rec *models.FilingRecord) string {
	form := strings.ReplaceAll(rec.FormType, "/", "-")
	return fmt.Sprintf("%s_%s_%s.json", form, rec.FilingDate, rec.ID)
}
