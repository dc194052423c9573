package analysis

import "github.com/avikram/filingscope/pkg/models"

// QuarterlyPerformance returns the quarterly filings in timeline order with
// quarter-over-quarter changes per metric.
func QuarterlyPerformance(timeline models.Timeline) []models.PerformanceRow {
	return performance(timeline, models.FormQuarterly)
}

// AnnualPerformance returns the annual filings in timeline order with
// year-over-year changes per metric.
func AnnualPerformance(timeline models.Timeline) []models.PerformanceRow {
	return performance(timeline, models.FormAnnual)
}

// performance filters the timeline to one form type and computes per-metric
// changes against the most recent earlier filing of the same form that
// reported the metric. The percent change is nil when that prior value is
// zero.
func performance(timeline models.Timeline, formType string) []models.PerformanceRow {
	rows := make([]models.PerformanceRow, 0)
	prior := make(map[string]float64)

	for _, r := range timeline {
		if r.FormType != formType {
			continue
		}

		row := models.PerformanceRow{
			FilingID:       r.FilingID,
			FormType:       r.FormType,
			FilingDate:     dateString(r.FilingDate),
			PeriodOfReport: dateString(r.PeriodOfReport),
			Metrics:        r.Metrics,
			Changes:        make(map[string]models.MetricChange),
		}

		for _, metric := range TrendMetrics {
			v, ok := r.Metric(metric)
			if !ok {
				continue
			}
			if prev, seen := prior[metric]; seen {
				abs := v - prev
				change := models.MetricChange{Absolute: &abs}
				if prev != 0 {
					pct := (v - prev) / prev * 100
					change.Percent = &pct
				}
				row.Changes[metric] = change
			}
			prior[metric] = v
		}

		rows = append(rows, row)
	}

	return rows
}
