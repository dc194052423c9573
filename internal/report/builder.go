// Package report assembles the complete analysis report from the store and
// exports stored data as CSV.
package report

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/avikram/filingscope/internal/analysis"
	"github.com/avikram/filingscope/internal/config"
	"github.com/avikram/filingscope/internal/store"
	"github.com/avikram/filingscope/pkg/models"
)

// Builder produces reports over the stored filings. Every method degrades to
// an empty result when the store is unreadable; a broken store never takes
// the reporting surface down with it.
type Builder struct {
	store   store.Store
	company config.CompanyConfig
}

func NewBuilder(st store.Store, company config.CompanyConfig) *Builder {
	return &Builder{store: st, company: company}
}

// Build assembles the full report. All fields are always present; sections
// without enough data hold their empty forms.
func (b *Builder) Build(ctx context.Context) *models.Report {
	records := b.records(ctx)
	timeline := analysis.BuildTimeline(records)

	trends := analysis.Trends(timeline)
	ratios := analysis.Ratios(timeline)
	rd := analysis.RDInvestment(timeline)
	cash := analysis.CashManagement(timeline)

	return &models.Report{
		Company:              b.company.Name,
		Ticker:               b.company.Ticker,
		AnalysisDate:         time.Now().Format(time.RFC3339),
		DataSummary:          summarize(records),
		FinancialTrends:      trends,
		FinancialRatios:      ratios,
		RDAnalysis:           rd,
		CashAnalysis:         cash,
		FinancialHealthScore: analysis.ScoreHealth(trends, ratios, rd, cash),
		QuarterlyPerformance: analysis.QuarterlyPerformance(timeline),
		AnnualPerformance:    analysis.AnnualPerformance(timeline),
	}
}

// Summary describes what the store currently holds.
func (b *Builder) Summary(ctx context.Context) models.DataSummary {
	return summarize(b.records(ctx))
}

// Trends computes the metric trends over the stored filings.
func (b *Builder) Trends(ctx context.Context) map[string]models.MetricTrend {
	return analysis.Trends(b.timeline(ctx))
}

// HealthScore computes the composite health score over the stored filings.
func (b *Builder) HealthScore(ctx context.Context) models.HealthScore {
	timeline := b.timeline(ctx)
	trends := analysis.Trends(timeline)
	ratios := analysis.Ratios(timeline)
	rd := analysis.RDInvestment(timeline)
	cash := analysis.CashManagement(timeline)
	return analysis.ScoreHealth(trends, ratios, rd, cash)
}

// RDInvestment analyzes research and development spending.
func (b *Builder) RDInvestment(ctx context.Context) *models.RDAnalysis {
	return analysis.RDInvestment(b.timeline(ctx))
}

// CashManagement analyzes the cash position over time.
func (b *Builder) CashManagement(ctx context.Context) *models.CashAnalysis {
	return analysis.CashManagement(b.timeline(ctx))
}

func (b *Builder) records(ctx context.Context) []models.FilingRecord {
	records, err := b.store.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("loading filings failed, reporting on empty data")
		return nil
	}
	return records
}

func (b *Builder) timeline(ctx context.Context) models.Timeline {
	return analysis.BuildTimeline(b.records(ctx))
}

// --- data summary ---

func summarize(records []models.FilingRecord) models.DataSummary {
	summary := models.DataSummary{
		TotalFilings: len(records),
		FilingTypes:  map[string]int{},
		LastUpdated:  time.Now().Format(time.RFC3339),
	}

	var earliest, latest string
	for _, rec := range records {
		form := rec.FormType
		if form == "" {
			form = "Unknown"
		}
		summary.FilingTypes[form]++

		if rec.FilingDate == "" {
			continue
		}
		if earliest == "" || rec.FilingDate < earliest {
			earliest = rec.FilingDate
		}
		if rec.FilingDate > latest {
			latest = rec.FilingDate
		}
	}
	if earliest != "" {
		summary.DateRange = &models.DateRange{Earliest: earliest, Latest: latest}
	}

	for _, rec := range records {
		if len(rec.Metrics) > 0 {
			summary.FinancialMetricsAvailable++
		}
	}

	return summary
}
