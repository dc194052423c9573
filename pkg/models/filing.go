package models

import "time"

// --- Form types ---

// Form type constants for the SEC filings the analyzer understands.
const (
	FormAnnual       = "10-K"
	FormQuarterly    = "10-Q"
	FormCurrent      = "8-K"
	FormProxy        = "DEF 14A"
	FormRegistration = "S-1"
	FormShelf        = "S-3"
	FormProspectus   = "424B"
)

// SupportedFormTypes returns the form types eligible for ingestion and search.
func SupportedFormTypes() []string {
	return []string{
		FormAnnual,
		FormQuarterly,
		FormCurrent,
		FormProxy,
		FormRegistration,
		FormShelf,
		FormProspectus,
	}
}

// --- Filings ---

// FilingSummary identifies a single filing as listed by EDGAR, before any
// content has been fetched.
type FilingSummary struct {
	ID             string `json:"id"`
	FormType       string `json:"form_type"`
	FilingDate     string `json:"filing_date"`
	PeriodOfReport string `json:"period_of_report,omitempty"`
	CompanyName    string `json:"company_name"`
	Ticker         string `json:"ticker,omitempty"`
	FilingURL      string `json:"filing_url,omitempty"`
}

// FilingRecord is a stored filing: the summary plus fetched content and
// everything the extractors pulled out of it.
type FilingRecord struct {
	FilingSummary

	Content          string             `json:"content,omitempty"`
	Metrics          map[string]float64 `json:"financial_metrics"`
	Highlights       []string           `json:"key_highlights"`
	RiskFactors      []string           `json:"risk_factors"`
	BusinessOverview string             `json:"business_overview,omitempty"`
	Pipeline         []string           `json:"pipeline_info"`
	Partnerships     []string           `json:"partnerships"`
	Patents          []string           `json:"patents"`
}

// NewFilingRecord builds an empty record for a listed filing.
func NewFilingRecord(s FilingSummary) *FilingRecord {
	return &FilingRecord{
		FilingSummary: s,
		Metrics:       map[string]float64{},
		Highlights:    []string{},
		RiskFactors:   []string{},
		Pipeline:      []string{},
		Partnerships:  []string{},
		Patents:       []string{},
	}
}

// --- Timeline ---

// TimelineRow is one filing positioned on the company timeline, with parsed
// dates and the metrics extracted from it.
type TimelineRow struct {
	FilingID       string             `json:"filing_id"`
	FormType       string             `json:"form_type"`
	FilingDate     time.Time          `json:"filing_date"`
	PeriodOfReport time.Time          `json:"period_of_report,omitempty"`
	CompanyName    string             `json:"company_name"`
	Ticker         string             `json:"ticker,omitempty"`
	Metrics        map[string]float64 `json:"financial_metrics"`
}

// Metric returns the named metric and whether the filing reported it.
func (r TimelineRow) Metric(name string) (float64, bool) {
	v, ok := r.Metrics[name]
	return v, ok
}

// Timeline is the full set of filings ordered by filing date ascending.
type Timeline []TimelineRow

// Latest returns the most recent row, if any.
func (t Timeline) Latest() (TimelineRow, bool) {
	if len(t) == 0 {
		return TimelineRow{}, false
	}
	return t[len(t)-1], true
}
