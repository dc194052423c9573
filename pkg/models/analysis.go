package models

// --- Trends ---

// Trend directions reported for a metric series.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
)

// MetricTrend summarizes how one financial metric moved across filings.
// Growth and volatility fields are nil when the series is too short or a
// period-over-period change is undefined.
type MetricTrend struct {
	LatestValue       float64  `json:"latest_value"`
	LatestDate        string   `json:"latest_date"`
	AverageGrowthRate *float64 `json:"average_growth_rate,omitempty"`
	LatestGrowthRate  *float64 `json:"latest_growth_rate,omitempty"`
	Volatility        *float64 `json:"volatility,omitempty"`
	TrendDirection    string   `json:"trend_direction"`
	DataPoints        int      `json:"data_points"`
}

// --- Ratios ---

// Ratio is a single computed financial ratio. Undefined marks a ratio whose
// denominator was zero in the latest filing.
type Ratio struct {
	Value     float64 `json:"value"`
	Undefined bool    `json:"undefined,omitempty"`
}

// RatioSet holds the ratios computable from the latest filing. A nil field
// means one of its operands was not reported.
type RatioSet struct {
	AssetTurnover   *Ratio `json:"asset_turnover,omitempty"`
	NetProfitMargin *Ratio `json:"net_profit_margin,omitempty"`
	RDIntensity     *Ratio `json:"rd_intensity,omitempty"`
	CashRatio       *Ratio `json:"cash_ratio,omitempty"`
}

// Empty reports whether no ratio could be computed.
func (r RatioSet) Empty() bool {
	return r.AssetTurnover == nil && r.NetProfitMargin == nil &&
		r.RDIntensity == nil && r.CashRatio == nil
}

// --- R&D and cash ---

// RDAnalysis summarizes research and development spending across the filings
// that report both R&D expense and revenue.
type RDAnalysis struct {
	TotalInvestment  float64  `json:"total_rd_investment"`
	AverageSpend     float64  `json:"average_quarterly_rd"`
	GrowthRate       *float64 `json:"rd_growth_rate,omitempty"`
	PercentOfRevenue *float64 `json:"rd_as_percentage_of_revenue,omitempty"`
	Trend            string   `json:"rd_trend"`
}

// CashAnalysis summarizes the cash position across filings that report cash
// and equivalents.
type CashAnalysis struct {
	CurrentCash float64  `json:"current_cash"`
	Trend       string   `json:"cash_trend"`
	Volatility  *float64 `json:"cash_volatility,omitempty"`
	AverageCash float64  `json:"average_cash"`
	GrowthRate  *float64 `json:"cash_growth_rate,omitempty"`
}

// --- Health score ---

// HealthScore is the composite financial health assessment.
type HealthScore struct {
	TotalScore   int            `json:"total_score"`
	MaxScore     int            `json:"max_possible_score"`
	Percentage   float64        `json:"percentage"`
	Grade        string         `json:"grade"`
	Components   map[string]int `json:"components"`
	AnalysisDate string         `json:"analysis_date"`
}

// --- Performance rows ---

// MetricChange is the movement of one metric between consecutive filings of
// the same form type. Nil fields mean no prior value or an undefined
// percentage change.
type MetricChange struct {
	Percent  *float64 `json:"percent,omitempty"`
	Absolute *float64 `json:"absolute,omitempty"`
}

// PerformanceRow is one filing in the quarterly or annual performance table,
// with period-over-period changes for each metric it reports.
type PerformanceRow struct {
	FilingID       string                  `json:"filing_id"`
	FormType       string                  `json:"form_type"`
	FilingDate     string                  `json:"filing_date"`
	PeriodOfReport string                  `json:"period_of_report,omitempty"`
	Metrics        map[string]float64      `json:"financial_metrics"`
	Changes        map[string]MetricChange `json:"changes"`
}
