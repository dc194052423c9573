package analysis

import (
	"math"
	"time"

	"github.com/avikram/filingscope/pkg/models"
)

// TrendMetrics lists the metrics tracked across filings, in report order.
var TrendMetrics = []string{
	"revenue",
	"net_income",
	"total_assets",
	"cash_and_equivalents",
	"research_development",
}

// Trends computes a MetricTrend for every tracked metric with at least two
// data points on the timeline. Growth against a zero prior value is
// undefined, not infinite, and is excluded from the average and volatility.
func Trends(timeline models.Timeline) map[string]models.MetricTrend {
	trends := make(map[string]models.MetricTrend)

	for _, metric := range TrendMetrics {
		dates, values := metricSeries(timeline, metric)
		if len(values) < 2 {
			continue
		}

		growth := pctChanges(values)
		kept := defined(growth)
		latestGrowth := growth[len(growth)-1]

		var avg *float64
		if len(kept) > 0 {
			m := mean(kept)
			avg = &m
		}

		trends[metric] = models.MetricTrend{
			LatestValue:       values[len(values)-1],
			LatestDate:        dateString(dates[len(dates)-1]),
			AverageGrowthRate: avg,
			LatestGrowthRate:  latestGrowth,
			Volatility:        sampleStd(kept),
			TrendDirection:    direction(latestGrowth, values[len(values)-1]),
			DataPoints:        len(values),
		}
	}

	return trends
}

// RDInvestment summarizes research and development spending across filings
// that report both R&D expense and revenue. Returns nil when no filing
// reports both.
func RDInvestment(timeline models.Timeline) *models.RDAnalysis {
	var rd, revenue []float64
	for _, row := range timeline {
		r, okRD := row.Metric("research_development")
		rev, okRev := row.Metric("revenue")
		if okRD && okRev {
			rd = append(rd, r)
			revenue = append(revenue, rev)
		}
	}
	if len(rd) == 0 {
		return nil
	}

	var total float64
	for _, v := range rd {
		total += v
	}

	var growthRate *float64
	if kept := defined(pctChanges(rd)); len(kept) > 0 {
		g := mean(kept)
		growthRate = &g
	}

	// Share of revenue, averaged over the filings where revenue is nonzero.
	var shares []float64
	for i := range rd {
		if revenue[i] != 0 {
			shares = append(shares, rd[i]/revenue[i])
		}
	}
	var pctOfRevenue *float64
	if len(shares) > 0 {
		p := mean(shares) * 100
		pctOfRevenue = &p
	}

	trend := models.TrendDecreasing
	if rd[len(rd)-1] > rd[0] {
		trend = models.TrendIncreasing
	}

	return &models.RDAnalysis{
		TotalInvestment:  total,
		AverageSpend:     mean(rd),
		GrowthRate:       growthRate,
		PercentOfRevenue: pctOfRevenue,
		Trend:            trend,
	}
}

// CashManagement summarizes the cash position across filings that report
// cash and equivalents. Returns nil when none do. Volatility here is the
// sample standard deviation of the cash levels themselves, not of growth.
func CashManagement(timeline models.Timeline) *models.CashAnalysis {
	_, cash := metricSeries(timeline, "cash_and_equivalents")
	if len(cash) == 0 {
		return nil
	}

	var growthRate *float64
	if kept := defined(pctChanges(cash)); len(kept) > 0 {
		g := mean(kept)
		growthRate = &g
	}

	trend := models.TrendDecreasing
	if cash[len(cash)-1] > cash[0] {
		trend = models.TrendIncreasing
	}

	return &models.CashAnalysis{
		CurrentCash: cash[len(cash)-1],
		Trend:       trend,
		Volatility:  sampleStd(cash),
		AverageCash: mean(cash),
		GrowthRate:  growthRate,
	}
}

// --- helpers ---

// metricSeries returns the dated values for one metric in timeline order.
func metricSeries(timeline models.Timeline, metric string) ([]time.Time, []float64) {
	var dates []time.Time
	var values []float64
	for _, row := range timeline {
		if v, ok := row.Metric(metric); ok {
			dates = append(dates, row.FilingDate)
			values = append(values, v)
		}
	}
	return dates, values
}

// pctChanges returns the percent change between consecutive values, aligned
// with values[1:]. An entry is nil when the prior value is zero.
func pctChanges(values []float64) []*float64 {
	if len(values) < 2 {
		return nil
	}
	changes := make([]*float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		prev := values[i-1]
		if prev == 0 {
			changes = append(changes, nil)
			continue
		}
		g := (values[i] - prev) / prev * 100
		changes = append(changes, &g)
	}
	return changes
}

// defined filters out the undefined entries of a change series.
func defined(changes []*float64) []float64 {
	out := make([]float64, 0, len(changes))
	for _, c := range changes {
		if c != nil {
			out = append(out, *c)
		}
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStd returns the sample standard deviation, nil with fewer than two
// values.
func sampleStd(values []float64) *float64 {
	if len(values) < 2 {
		return nil
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	std := math.Sqrt(sum / float64(len(values)-1))
	return &std
}

// direction maps the latest growth onto a trend direction. When the growth
// is undefined because the prior value was zero, the sign of the latest
// value stands in for the limit of the ratio.
func direction(latestGrowth *float64, latestValue float64) string {
	if latestGrowth != nil {
		if *latestGrowth > 0 {
			return models.TrendIncreasing
		}
		return models.TrendDecreasing
	}
	if latestValue > 0 {
		return models.TrendIncreasing
	}
	return models.TrendDecreasing
}
