package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/avikram/filingscope/internal/config"
	"github.com/avikram/filingscope/pkg/models"
)

func testRecord(id, form, date string) *models.FilingRecord {
	rec := models.NewFilingRecord(models.FilingSummary{
		ID:          id,
		FormType:    form,
		FilingDate:  date,
		CompanyName: "Alnylam Pharmaceuticals, Inc.",
		Ticker:      "ALNY",
	})
	rec.Metrics["revenue"] = 500.0
	return rec
}

func TestFileStorePutAndGetAll(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if err := s.Put(ctx, testRecord("abc123", "10-K", "2024-02-15")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, testRecord("def456", "10-Q", "2024-05-01")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	records, err := s.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("GetAll returned %d records, want 2", len(records))
	}
	for _, rec := range records {
		if rec.Metrics["revenue"] != 500.0 {
			t.Errorf("record %s lost its metrics: %v", rec.ID, rec.Metrics)
		}
	}
}

func TestFileStoreFilenamePattern(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := s.Put(context.Background(), testRecord("abc123", "10-K", "2024-02-15")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	want := filepath.Join(dir, "10-K_2024-02-15_abc123.json")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("expected file %s: %v", want, err)
	}
}

func TestFileStoreFilenameSanitizesSlashes(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := s.Put(context.Background(), testRecord("amd1", "10-K/A", "2024-03-01")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	want := filepath.Join(dir, "10-K-A_2024-03-01_amd1.json")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("expected sanitized file %s: %v", want, err)
	}
}

func TestFileStorePutReplaces(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	rec := testRecord("abc123", "10-K", "2024-02-15")
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	rec.Metrics["revenue"] = 999.0
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("second Put: %v", err)
	}

	records, err := s.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("GetAll returned %d records, want 1 after replace", len(records))
	}
	if records[0].Metrics["revenue"] != 999.0 {
		t.Errorf("revenue = %f, want the replaced value 999", records[0].Metrics["revenue"])
	}
}

func TestFileStoreExists(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if err := s.Put(ctx, testRecord("abc123", "10-K", "2024-02-15")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	ok, err := s.Exists(ctx, "abc123")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !ok {
		t.Error("expected abc123 to exist")
	}

	ok, err = s.Exists(ctx, "zzz999")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Error("zzz999 should not exist")
	}

	ok, err = s.Exists(ctx, "")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Error("empty ID should never exist")
	}
}

func TestFileStoreGetAllSkipsCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if err := s.Put(ctx, testRecord("good1", "10-K", "2024-02-15")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "10-Q_2024-05-01_bad.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0644); err != nil {
		t.Fatalf("write stray file: %v", err)
	}

	records, err := s.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("GetAll returned %d records, want 1 (corrupt and stray files skipped)", len(records))
	}
	if records[0].ID != "good1" {
		t.Errorf("surviving record = %q, want good1", records[0].ID)
	}
}

func TestFileStoreEmptyDir(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	records, err := s.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty store, got %d records", len(records))
	}
}

func TestNewUnknownBackend(t *testing.T) {
	_, err := New(context.Background(), config.StoreConfig{Backend: "bolt"})
	if err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestNewDefaultsToFile(t *testing.T) {
	s, err := New(context.Background(), config.StoreConfig{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()
	if _, ok := s.(*FileStore); !ok {
		t.Errorf("expected *FileStore, got %T", s)
	}
}

func TestNewPostgresRequiresDSN(t *testing.T) {
	_, err := NewPostgresStore(context.Background(), "")
	if err == nil {
		t.Error("expected error when DSN is empty")
	}
}
