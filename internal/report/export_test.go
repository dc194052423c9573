package report

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/avikram/filingscope/internal/config"
	"github.com/avikram/filingscope/internal/search"
	"github.com/avikram/filingscope/pkg/models"
)

func exportConfig() config.SearchConfig {
	return config.SearchConfig{
		ContextChars:        200,
		MaxMatchesPerFiling: 5,
		KeywordContextChars: 100,
		FormTypes:           models.SupportedFormTypes(),
		BiotechKeywords:     []string{"pipeline", "siRNA", "oncology"},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}

func TestExportCSV(t *testing.T) {
	st := sampleStore()
	st.records[0].Content = "Our pipeline advanced and siRNA programs grew."
	st.records[1].Content = "The pipeline includes new candidates."

	cfg := exportConfig()
	exp := NewExporter(st, search.NewEngine(st, cfg), cfg)

	dir := t.TempDir()
	written, err := exp.ExportCSV(context.Background(), dir)
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	if len(written) != 3 {
		t.Fatalf("wrote %d files, want 3: %v", len(written), written)
	}

	var timelinePath, summaryPath, keywordPath string
	for _, path := range written {
		switch {
		case strings.Contains(filepath.Base(path), "financial_timeline"):
			timelinePath = path
		case strings.Contains(filepath.Base(path), "filings_summary"):
			summaryPath = path
		case strings.Contains(filepath.Base(path), "keyword_analysis"):
			keywordPath = path
		}
	}
	if timelinePath == "" || summaryPath == "" || keywordPath == "" {
		t.Fatalf("missing expected files in %v", written)
	}

	timeline := readCSV(t, timelinePath)
	if len(timeline) != 4 {
		t.Fatalf("timeline rows = %d, want header + 3", len(timeline))
	}
	if timeline[0][0] != "filing_id" || timeline[0][6] != "revenue" {
		t.Errorf("timeline header = %v", timeline[0])
	}
	// Sorted by filing date, oldest first.
	if timeline[1][0] != "fk-2021" || timeline[3][0] != "fk-2023" {
		t.Errorf("timeline order = %v %v %v", timeline[1][0], timeline[2][0], timeline[3][0])
	}
	if timeline[3][6] != "1828.3" {
		t.Errorf("latest revenue cell = %q, want 1828.3", timeline[3][6])
	}

	summary := readCSV(t, summaryPath)
	// Storage order, not date order.
	if summary[1][0] != "fk-2022" {
		t.Errorf("summary first row = %q, want storage order", summary[1][0])
	}

	keywords := readCSV(t, keywordPath)
	if len(keywords) != 4 {
		t.Fatalf("keyword rows = %d, want header + 3 configured keywords", len(keywords))
	}
	byKeyword := map[string][]string{}
	for _, row := range keywords[1:] {
		byKeyword[row[0]] = row
	}
	if row := byKeyword["pipeline"]; row == nil || row[1] != "2" || row[2] != "2" {
		t.Errorf("pipeline row = %v, want 2 mentions in 2 filings", row)
	}
	if row := byKeyword["oncology"]; row == nil || row[1] != "0" || row[2] != "0" {
		t.Errorf("oncology row = %v, want zero counts", row)
	}
}

func TestExportCSVEmptyStore(t *testing.T) {
	st := &fakeStore{}
	cfg := exportConfig()
	exp := NewExporter(st, search.NewEngine(st, cfg), cfg)

	dir := t.TempDir()
	written, err := exp.ExportCSV(context.Background(), dir)
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	if len(written) != 1 {
		t.Fatalf("wrote %d files, want only the keyword analysis", len(written))
	}
	if !strings.Contains(filepath.Base(written[0]), "keyword_analysis") {
		t.Errorf("wrote %q, want keyword analysis", written[0])
	}

	rows := readCSV(t, written[0])
	if len(rows) != 4 {
		t.Errorf("keyword rows = %d, want header + 3 zero rows", len(rows))
	}
}

func TestExportCSVMissingMetricsLeaveEmptyCells(t *testing.T) {
	st := &fakeStore{records: []models.FilingRecord{
		record("f-1", "8-K", "2023-11-02", nil),
	}}
	cfg := exportConfig()
	exp := NewExporter(st, search.NewEngine(st, cfg), cfg)

	written, err := exp.ExportCSV(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	for _, path := range written {
		if !strings.Contains(filepath.Base(path), "financial_timeline") {
			continue
		}
		rows := readCSV(t, path)
		if len(rows) != 2 {
			t.Fatalf("timeline rows = %d, want header + 1", len(rows))
		}
		for col := 6; col < len(rows[1]); col++ {
			if rows[1][col] != "" {
				t.Errorf("metric cell %d = %q, want empty", col, rows[1][col])
			}
		}
	}
}
