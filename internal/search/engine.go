// Package search runs full-text queries and keyword sweeps over stored
// filing content.
package search

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/avikram/filingscope/internal/config"
	"github.com/avikram/filingscope/internal/store"
	"github.com/avikram/filingscope/pkg/models"
)

// Engine searches stored filings. Queries are treated as literal text, never
// as regular expressions.
type Engine struct {
	store store.Store
	cfg   config.SearchConfig
}

// Options narrow a search. An empty FormTypes falls back to the configured
// allow-list.
type Options struct {
	FormTypes     []string
	CaseSensitive bool
	WholeWords    bool
}

func NewEngine(st store.Store, cfg config.SearchConfig) *Engine {
	return &Engine{store: st, cfg: cfg}
}

// Search finds filings whose content matches the query and ranks them by
// match count, then by filing date, both descending. Each result carries up
// to the configured number of context windows around the earliest matches;
// the match count is not capped.
func (e *Engine) Search(ctx context.Context, query string, opts Options) []models.SearchResult {
	return e.searchRecords(e.records(ctx), query, opts)
}

func (e *Engine) searchRecords(records []models.FilingRecord, query string, opts Options) []models.SearchResult {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	pat := regexp.QuoteMeta(query)
	if opts.WholeWords {
		pat = `\b` + pat + `\b`
	}
	if !opts.CaseSensitive {
		pat = `(?i)` + pat
	}
	re, err := regexp.Compile(pat)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("unusable search query")
		return nil
	}

	forms := opts.FormTypes
	if len(forms) == 0 {
		forms = e.cfg.FormTypes
	}
	allowed := make(map[string]bool, len(forms))
	for _, f := range forms {
		allowed[f] = true
	}

	var results []models.SearchResult
	for _, rec := range records {
		if !allowed[rec.FormType] || rec.Content == "" {
			continue
		}

		locs := re.FindAllStringIndex(rec.Content, -1)
		if len(locs) == 0 {
			continue
		}

		contexts := make([]models.SearchMatch, 0, e.cfg.MaxMatchesPerFiling)
		for i, loc := range locs {
			if i >= e.cfg.MaxMatchesPerFiling {
				break
			}
			start := loc[0] - e.cfg.ContextChars
			if start < 0 {
				start = 0
			}
			end := loc[1] + e.cfg.ContextChars
			if end > len(rec.Content) {
				end = len(rec.Content)
			}
			contexts = append(contexts, models.SearchMatch{
				Position:  loc[0],
				Context:   rec.Content[start:end],
				Highlight: rec.Content[loc[0]:loc[1]],
			})
		}

		results = append(results, models.SearchResult{
			FilingID:       rec.ID,
			FormType:       rec.FormType,
			FilingDate:     rec.FilingDate,
			PeriodOfReport: rec.PeriodOfReport,
			CompanyName:    rec.CompanyName,
			MatchCount:     len(locs),
			Contexts:       contexts,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].MatchCount != results[j].MatchCount {
			return results[i].MatchCount > results[j].MatchCount
		}
		return results[i].FilingDate > results[j].FilingDate
	})

	return results
}

// records loads every stored filing, returning nil on store failure so a
// search degrades to no results instead of an error.
func (e *Engine) records(ctx context.Context) []models.FilingRecord {
	records, err := e.store.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("loading filings for search")
		return nil
	}
	return records
}
