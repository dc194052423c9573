package analysis

import (
	"time"

	"github.com/avikram/filingscope/pkg/models"
)

// ScoreHealth combines trends, ratios, and the R&D and cash analyses into a
// composite health score with a letter grade. Each component is scored
// independently against fixed breakpoints; the component maxima accumulate
// into the maximum possible score.
func ScoreHealth(trends map[string]models.MetricTrend, ratios models.RatioSet, rd *models.RDAnalysis, cash *models.CashAnalysis) models.HealthScore {
	h := models.HealthScore{
		Components: make(map[string]int),
	}

	total := 0
	maxScore := 0

	// Revenue growth (25 points).
	revScore := 0
	if trend, ok := trends["revenue"]; ok {
		switch {
		case trend.LatestGrowthRate == nil:
			// Growth against a zero prior value: score on direction alone.
			if trend.TrendDirection == models.TrendIncreasing {
				revScore = 25
			} else {
				revScore = 5
			}
		case *trend.LatestGrowthRate > 20:
			revScore = 25
		case *trend.LatestGrowthRate > 10:
			revScore = 20
		case *trend.LatestGrowthRate > 0:
			revScore = 15
		default:
			revScore = 5
		}
	}
	h.Components["revenue_growth"] = revScore
	total += revScore
	maxScore += 25

	// R&D investment (20 points).
	rdScore := 0
	if rd != nil {
		if rd.Trend == models.TrendIncreasing {
			rdScore = 20
		} else {
			rdScore = 15
		}
	}
	h.Components["rd_investment"] = rdScore
	total += rdScore
	maxScore += 20

	// Cash position (20 points).
	cashScore := 0
	if cash != nil {
		switch {
		case cash.CurrentCash > 1000:
			cashScore = 20
		case cash.CurrentCash > 500:
			cashScore = 15
		default:
			cashScore = 10
		}
	}
	h.Components["cash_position"] = cashScore
	total += cashScore
	maxScore += 20

	// Profitability (15 points).
	profScore := 0
	if m := ratios.NetProfitMargin; m != nil {
		switch {
		case m.Undefined:
			profScore = 5
		case m.Value > 0.1:
			profScore = 15
		case m.Value > 0:
			profScore = 10
		default:
			profScore = 5
		}
	}
	h.Components["profitability"] = profScore
	total += profScore
	maxScore += 15

	// Asset efficiency (10 points).
	effScore := 0
	if at := ratios.AssetTurnover; at != nil {
		switch {
		case at.Undefined:
			effScore = 5
		case at.Value > 0.5:
			effScore = 10
		case at.Value > 0.3:
			effScore = 7
		default:
			effScore = 5
		}
	}
	h.Components["asset_efficiency"] = effScore
	total += effScore
	maxScore += 10

	// R&D intensity (10 points). No zero branch when the analysis is
	// present: intensity at or below 10% still scores 5.
	intensityScore := 0
	if rd != nil {
		pct := 0.0
		if rd.PercentOfRevenue != nil {
			pct = *rd.PercentOfRevenue
		}
		switch {
		case pct > 20:
			intensityScore = 10
		case pct > 10:
			intensityScore = 7
		default:
			intensityScore = 5
		}
	}
	h.Components["rd_intensity"] = intensityScore
	total += intensityScore
	maxScore += 10

	h.TotalScore = total
	h.MaxScore = maxScore
	if maxScore > 0 {
		h.Percentage = float64(total) / float64(maxScore) * 100
	}
	h.Grade = grade(h.Percentage)
	h.AnalysisDate = time.Now().Format(time.RFC3339)

	return h
}

// --- helpers ---

func grade(pct float64) string {
	switch {
	case pct >= 90:
		return "A"
	case pct >= 80:
		return "B"
	case pct >= 70:
		return "C"
	case pct >= 60:
		return "D"
	default:
		return "F"
	}
}
