package models

// --- Full text search ---

// SearchMatch is one occurrence of the search term inside a filing, with the
// surrounding context.
type SearchMatch struct {
	Position  int    `json:"position"`
	Context   string `json:"context"`
	Highlight string `json:"highlight"`
}

// SearchResult is one filing that matched a search, ranked by match count
// and recency.
type SearchResult struct {
	FilingID       string        `json:"filing_id"`
	FormType       string        `json:"form_type"`
	FilingDate     string        `json:"filing_date"`
	PeriodOfReport string        `json:"period_of_report,omitempty"`
	CompanyName    string        `json:"company_name,omitempty"`
	MatchCount     int           `json:"match_count"`
	Contexts       []SearchMatch `json:"contexts"`
}

// --- Keyword sweeps ---

// KeywordStats aggregates one domain keyword across the stored filings.
// TotalMentions counts filings whose content contains the keyword.
type KeywordStats struct {
	Keyword          string         `json:"keyword"`
	TotalMentions    int            `json:"total_mentions"`
	FilingsCount     int            `json:"filings_count"`
	YearlyMentions   map[string]int `json:"yearly_mentions"`
	AveragePerFiling float64        `json:"average_mentions_per_filing"`
	Contexts         []string       `json:"contexts"`
}

// PipelineMention is one filing that references drug pipeline keywords.
type PipelineMention struct {
	FilingID   string        `json:"filing_id"`
	FormType   string        `json:"form_type"`
	FilingDate string        `json:"filing_date"`
	MatchCount int           `json:"match_count"`
	Keywords   []string      `json:"keywords"`
	Contexts   []SearchMatch `json:"contexts"`
}

// FilingScore is one filing scored during a risk or partnership sweep.
// Score is mentions multiplied by the number of distinct keywords found.
type FilingScore struct {
	FilingID      string   `json:"filing_id"`
	FormType      string   `json:"form_type"`
	FilingDate    string   `json:"filing_date"`
	Mentions      int      `json:"mentions"`
	KeywordsFound int      `json:"keywords_found"`
	Score         int      `json:"score"`
	Keywords      []string `json:"keywords"`
}

// SearchReport bundles the keyword sweeps and, when a query was given, the
// full text search results.
type SearchReport struct {
	SearchQuery         string                  `json:"search_query,omitempty"`
	AnalysisDate        string                  `json:"analysis_date"`
	KeywordAnalysis     map[string]KeywordStats `json:"keyword_analysis"`
	PipelineMentions    []PipelineMention       `json:"pipeline_mentions"`
	RiskAnalysis        []FilingScore           `json:"risk_analysis"`
	PartnershipAnalysis []FilingScore           `json:"partnership_analysis"`
	SearchResults       []SearchResult          `json:"search_results,omitempty"`
}
