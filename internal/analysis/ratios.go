package analysis

import "github.com/avikram/filingscope/pkg/models"

// Ratios computes the cross-metric ratios from the latest filing on the
// timeline. A ratio is absent when either operand is missing; a ratio whose
// denominator is present but zero is marked undefined rather than divided.
func Ratios(timeline models.Timeline) models.RatioSet {
	var rs models.RatioSet
	latest, ok := timeline.Latest()
	if !ok {
		return rs
	}

	rs.AssetTurnover = ratioOf(latest, "revenue", "total_assets")
	rs.NetProfitMargin = ratioOf(latest, "net_income", "revenue")
	rs.RDIntensity = ratioOf(latest, "research_development", "revenue")
	rs.CashRatio = ratioOf(latest, "cash_and_equivalents", "total_assets")
	return rs
}

func ratioOf(row models.TimelineRow, num, den string) *models.Ratio {
	n, okN := row.Metric(num)
	d, okD := row.Metric(den)
	if !okN || !okD {
		return nil
	}
	if d == 0 {
		return &models.Ratio{Undefined: true}
	}
	return &models.Ratio{Value: n / d}
}
