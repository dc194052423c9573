package models

// --- Report ---

// DateRange spans the filing dates covered by the store.
type DateRange struct {
	Earliest string `json:"earliest"`
	Latest   string `json:"latest"`
}

// DataSummary describes what the store currently holds.
type DataSummary struct {
	TotalFilings              int            `json:"total_filings"`
	FilingTypes               map[string]int `json:"filing_types"`
	DateRange                 *DateRange     `json:"date_range,omitempty"`
	FinancialMetricsAvailable int            `json:"financial_metrics_available"`
	LastUpdated               string         `json:"last_updated"`
}

// Report is the complete analysis of a company's stored filings. Every field
// is populated on every build; rd_analysis and cash_analysis are null when no
// filing reports the underlying metrics.
type Report struct {
	Company              string                 `json:"company"`
	Ticker               string                 `json:"ticker"`
	AnalysisDate         string                 `json:"analysis_date"`
	DataSummary          DataSummary            `json:"data_summary"`
	FinancialTrends      map[string]MetricTrend `json:"financial_trends"`
	FinancialRatios      RatioSet               `json:"financial_ratios"`
	RDAnalysis           *RDAnalysis            `json:"rd_analysis"`
	CashAnalysis         *CashAnalysis          `json:"cash_analysis"`
	FinancialHealthScore HealthScore            `json:"financial_health_score"`
	QuarterlyPerformance []PerformanceRow       `json:"quarterly_performance"`
	AnnualPerformance    []PerformanceRow       `json:"annual_performance"`
}
