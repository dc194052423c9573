package search

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/avikram/filingscope/pkg/models"
	"github.com/avikram/filingscope/pkg/utils"
)

// maxKeywordContexts caps the context snippets kept per keyword across all
// filings.
const maxKeywordContexts = 5

// KeywordAnalysis counts, for each configured biotech keyword, the filings
// whose content mentions it, with a per-year breakdown and a context snippet
// per filing. Mentions are counted once per filing, so the per-filing
// average is 1 whenever a keyword appears at all. Keywords with no mentions
// are omitted. Matching and context extraction run over lowercased content.
func (e *Engine) KeywordAnalysis(ctx context.Context) map[string]models.KeywordStats {
	records := e.records(ctx)
	analysis := make(map[string]models.KeywordStats)

	for _, keyword := range e.cfg.BiotechKeywords {
		lower := strings.ToLower(keyword)
		mentions := 0
		yearly := make(map[string]int)
		var contexts []string

		for _, rec := range records {
			content := strings.ToLower(rec.Content)
			pos := strings.Index(content, lower)
			if pos < 0 {
				continue
			}
			mentions++
			if year := utils.Year(rec.FilingDate); year != "" {
				yearly[year]++
			}

			start := pos - e.cfg.KeywordContextChars
			if start < 0 {
				start = 0
			}
			end := pos + e.cfg.KeywordContextChars
			if end > len(content) {
				end = len(content)
			}
			contexts = append(contexts, content[start:end])
		}

		if mentions == 0 {
			continue
		}
		if len(contexts) > maxKeywordContexts {
			contexts = contexts[:maxKeywordContexts]
		}

		stats := models.KeywordStats{
			Keyword:        keyword,
			TotalMentions:  mentions,
			FilingsCount:   mentions,
			YearlyMentions: yearly,
			Contexts:       contexts,
		}
		stats.AveragePerFiling = float64(stats.TotalMentions) / float64(stats.FilingsCount)
		analysis[keyword] = stats
	}

	return analysis
}

// PipelineMentions sweeps the pipeline keywords as whole-word searches and
// aggregates the hits per filing, summing match counts and concatenating
// contexts. Filings appear in first-hit order.
func (e *Engine) PipelineMentions(ctx context.Context) []models.PipelineMention {
	records := e.records(ctx)
	byFiling := make(map[string]*models.PipelineMention)
	var order []string

	for _, keyword := range e.cfg.PipelineKeywords {
		for _, res := range e.searchRecords(records, keyword, Options{WholeWords: true}) {
			m, ok := byFiling[res.FilingID]
			if !ok {
				byFiling[res.FilingID] = &models.PipelineMention{
					FilingID:   res.FilingID,
					FormType:   res.FormType,
					FilingDate: res.FilingDate,
					MatchCount: res.MatchCount,
					Keywords:   []string{keyword},
					Contexts:   res.Contexts,
				}
				order = append(order, res.FilingID)
				continue
			}
			m.MatchCount += res.MatchCount
			m.Keywords = append(m.Keywords, keyword)
			m.Contexts = append(m.Contexts, res.Contexts...)
		}
	}

	mentions := make([]models.PipelineMention, 0, len(order))
	for _, id := range order {
		mentions = append(mentions, *byFiling[id])
	}
	return mentions
}

// RiskAnalysis scores each filing by its whole-word risk keyword mentions.
func (e *Engine) RiskAnalysis(ctx context.Context) []models.FilingScore {
	return e.scoreKeywords(e.records(ctx), e.cfg.RiskKeywords)
}

// PartnershipAnalysis scores each filing by its whole-word partnership
// keyword mentions.
func (e *Engine) PartnershipAnalysis(ctx context.Context) []models.FilingScore {
	return e.scoreKeywords(e.records(ctx), e.cfg.PartnershipKeywords)
}

// scoreKeywords aggregates whole-word keyword matches per filing and scores
// each filing as total mentions times the number of keywords found, sorted
// by score descending.
func (e *Engine) scoreKeywords(records []models.FilingRecord, keywords []string) []models.FilingScore {
	byFiling := make(map[string]*models.FilingScore)
	var order []string

	for _, keyword := range keywords {
		for _, res := range e.searchRecords(records, keyword, Options{WholeWords: true}) {
			s, ok := byFiling[res.FilingID]
			if !ok {
				s = &models.FilingScore{
					FilingID:   res.FilingID,
					FormType:   res.FormType,
					FilingDate: res.FilingDate,
				}
				byFiling[res.FilingID] = s
				order = append(order, res.FilingID)
			}
			s.Mentions += res.MatchCount
			s.KeywordsFound++
			s.Keywords = append(s.Keywords, keyword)
		}
	}

	scores := make([]models.FilingScore, 0, len(order))
	for _, id := range order {
		s := byFiling[id]
		s.Score = s.Mentions * s.KeywordsFound
		scores = append(scores, *s)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores
}

// BuildSearchReport assembles the keyword, pipeline, risk, and partnership
// analyses into one report. When a query is given its search results are
// included as well.
func (e *Engine) BuildSearchReport(ctx context.Context, query string) models.SearchReport {
	report := models.SearchReport{
		SearchQuery:         query,
		AnalysisDate:        time.Now().Format(time.RFC3339),
		KeywordAnalysis:     e.KeywordAnalysis(ctx),
		PipelineMentions:    e.PipelineMentions(ctx),
		RiskAnalysis:        e.RiskAnalysis(ctx),
		PartnershipAnalysis: e.PartnershipAnalysis(ctx),
	}
	if query != "" {
		report.SearchResults = e.Search(ctx, query, Options{})
	}
	return report
}
