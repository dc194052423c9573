package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/avikram/filingscope/internal/analysis"
	"github.com/avikram/filingscope/internal/config"
	"github.com/avikram/filingscope/internal/search"
	"github.com/avikram/filingscope/internal/store"
	"github.com/avikram/filingscope/pkg/models"
	"github.com/avikram/filingscope/pkg/utils"
)

// Exporter writes the stored data to timestamped CSV files: the financial
// timeline, the filings summary, and the keyword analysis.
type Exporter struct {
	store  store.Store
	engine *search.Engine
	cfg    config.SearchConfig
}

func NewExporter(st store.Store, engine *search.Engine, cfg config.SearchConfig) *Exporter {
	return &Exporter{store: st, engine: engine, cfg: cfg}
}

// ExportCSV writes the CSV files into dir and returns their paths. The
// timeline and summary files are only written when filings exist; the
// keyword file always is, with zero counts for unmentioned keywords.
func (e *Exporter) ExportCSV(ctx context.Context, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	records, err := e.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	ts := time.Now().Format("20060102_150405")
	var written []string

	timeline := analysis.BuildTimeline(records)
	if len(timeline) > 0 {
		path := filepath.Join(dir, fmt.Sprintf("financial_timeline_%s.csv", ts))
		if err := writeCSV(path, timelineHeader(), timelineRows(timeline)); err != nil {
			return written, fmt.Errorf("export timeline: %w", err)
		}
		written = append(written, path)
	}

	if len(records) > 0 {
		path := filepath.Join(dir, fmt.Sprintf("filings_summary_%s.csv", ts))
		if err := writeCSV(path, timelineHeader(), summaryRows(records)); err != nil {
			return written, fmt.Errorf("export summary: %w", err)
		}
		written = append(written, path)
	}

	path := filepath.Join(dir, fmt.Sprintf("keyword_analysis_%s.csv", ts))
	if err := writeCSV(path, []string{"keyword", "mentions", "filings_count"}, e.keywordRows(ctx)); err != nil {
		return written, fmt.Errorf("export keywords: %w", err)
	}
	written = append(written, path)

	log.Info().Strs("files", written).Msg("export complete")
	return written, nil
}

func timelineHeader() []string {
	return append([]string{
		"filing_id", "form_type", "filing_date", "period_of_report",
		"company_name", "ticker",
	}, analysis.TrendMetrics...)
}

// timelineRows renders the date-sorted timeline with parsed dates.
func timelineRows(timeline models.Timeline) [][]string {
	rows := make([][]string, 0, len(timeline))
	for _, r := range timeline {
		row := []string{
			r.FilingID, r.FormType, csvDate(r.FilingDate), csvDate(r.PeriodOfReport),
			r.CompanyName, r.Ticker,
		}
		for _, metric := range analysis.TrendMetrics {
			cell := ""
			if v, ok := r.Metric(metric); ok {
				cell = formatAmount(v)
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}
	return rows
}

// summaryRows renders the records in storage order with dates as stored.
func summaryRows(records []models.FilingRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := []string{
			rec.ID, rec.FormType, rec.FilingDate, rec.PeriodOfReport,
			rec.CompanyName, rec.Ticker,
		}
		for _, metric := range analysis.TrendMetrics {
			cell := ""
			if v, ok := rec.Metrics[metric]; ok {
				cell = formatAmount(v)
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}
	return rows
}

func (e *Exporter) keywordRows(ctx context.Context) [][]string {
	stats := e.engine.KeywordAnalysis(ctx)
	rows := make([][]string, 0, len(e.cfg.BiotechKeywords))
	for _, keyword := range e.cfg.BiotechKeywords {
		s := stats[keyword]
		rows = append(rows, []string{
			keyword,
			strconv.Itoa(s.TotalMentions),
			strconv.Itoa(s.FilingsCount),
		})
	}
	return rows
}

// --- helpers ---

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	return w.WriteAll(rows)
}

func csvDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return utils.FormatDate(t)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
