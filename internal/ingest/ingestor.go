// Package ingest orchestrates the fetch-and-store batch: list filings from
// EDGAR, download and normalize their content, run the extractors, and put
// the resulting records into the store.
package ingest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/avikram/filingscope/internal/config"
	"github.com/avikram/filingscope/internal/edgar"
	"github.com/avikram/filingscope/internal/extract"
	"github.com/avikram/filingscope/internal/store"
	"github.com/avikram/filingscope/pkg/models"
)

// Source lists filings and fetches their documents. *edgar.Client satisfies it.
type Source interface {
	ListFilings(ctx context.Context, opts edgar.ListOptions) ([]models.FilingSummary, error)
	FetchContent(ctx context.Context, filingURL string) (string, error)
}

// Ingestor runs fetch-and-store batches sequentially.
type Ingestor struct {
	source  Source
	store   store.Store
	metrics *extract.MetricExtractor
	signals *extract.SignalExtractor
}

// FetchOptions control one batch. Zero values fall back to the supported
// form types, a five year window, and a 200 filing cap.
type FetchOptions struct {
	FormTypes    []string
	YearsBack    int
	ForceRefresh bool
	Limit        int
}

// BatchResult summarizes one batch run.
type BatchResult struct {
	RunID   string   `json:"run_id"`
	Found   int      `json:"found"`
	Stored  []string `json:"stored"`
	Skipped int      `json:"skipped"`
	Failed  int      `json:"failed"`
}

func New(source Source, st store.Store, cfg config.ExtractionConfig) *Ingestor {
	return &Ingestor{
		source:  source,
		store:   st,
		metrics: extract.NewMetricExtractor(cfg),
		signals: extract.NewSignalExtractor(cfg),
	}
}

// FetchAndStore lists filings in the batch window and processes them one at
// a time. Filings already stored are skipped unless ForceRefresh is set.
// Per-filing failures are logged and counted, never fatal; a listing failure
// yields an empty result. The only error returned is context cancellation.
func (ing *Ingestor) FetchAndStore(ctx context.Context, opts FetchOptions) (BatchResult, error) {
	formTypes := opts.FormTypes
	if len(formTypes) == 0 {
		formTypes = models.SupportedFormTypes()
	}
	yearsBack := opts.YearsBack
	if yearsBack <= 0 {
		yearsBack = 5
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 200
	}

	result := BatchResult{RunID: uuid.NewString(), Stored: []string{}}

	log.Info().Str("run_id", result.RunID).Strs("form_types", formTypes).
		Int("years_back", yearsBack).Msg("fetching filings")

	listings, err := ing.source.ListFilings(ctx, edgar.ListOptions{
		FormTypes: formTypes,
		Since:     time.Now().AddDate(-yearsBack, 0, 0),
		Limit:     limit,
	})
	if err != nil {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		log.Error().Str("run_id", result.RunID).Err(err).Msg("listing filings failed")
		return result, nil
	}
	result.Found = len(listings)

	for _, f := range listings {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if !opts.ForceRefresh {
			exists, err := ing.store.Exists(ctx, f.ID)
			if err != nil {
				log.Error().Str("filing_id", f.ID).Err(err).Msg("existence check failed")
				result.Failed++
				continue
			}
			if exists {
				log.Debug().Str("filing_id", f.ID).Msg("filing already stored, skipping")
				result.Skipped++
				continue
			}
		}

		rec := models.NewFilingRecord(f)
		if f.FilingURL != "" {
			raw, err := ing.source.FetchContent(ctx, f.FilingURL)
			if err != nil {
				if ctx.Err() != nil {
					return result, ctx.Err()
				}
				log.Error().Str("filing_id", f.ID).Err(err).Msg("fetching content failed")
				result.Failed++
				continue
			}
			rec.Content = extract.CleanHTML(raw)
		}

		// Extraction only sees real content. A record without content keeps
		// its empty metric and signal sets.
		if rec.Content != "" {
			rec.Metrics = ing.metrics.Extract(rec.Content)
			sig := ing.signals.Extract(rec.Content)
			if v, ok := sig["pipeline"]; ok {
				rec.Pipeline = v
			}
			if v, ok := sig["partnerships"]; ok {
				rec.Partnerships = v
			}
			if v, ok := sig["patents"]; ok {
				rec.Patents = v
			}
		}

		if err := ing.store.Put(ctx, rec); err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			log.Error().Str("filing_id", f.ID).Err(err).Msg("storing filing failed")
			result.Failed++
			continue
		}

		result.Stored = append(result.Stored, f.ID)
		log.Info().Str("filing_id", f.ID).Str("form_type", f.FormType).
			Str("filing_date", f.FilingDate).Msg("stored filing")
	}

	log.Info().Str("run_id", result.RunID).Int("found", result.Found).
		Int("stored", len(result.Stored)).Int("skipped", result.Skipped).
		Int("failed", result.Failed).Msg("batch complete")

	return result, nil
}
