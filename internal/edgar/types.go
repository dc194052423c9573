package edgar

// --- submissions index (data.sec.gov) ---

type submissionsResponse struct {
	CIK     string       `json:"cik"`
	Name    string       `json:"name"`
	Tickers []string     `json:"tickers"`
	Filings filingsBlock `json:"filings"`
}

type filingsBlock struct {
	Recent filingIndex `json:"recent"`
}

// filingIndex holds the parallel arrays of the submissions endpoint; entry i
// of each array describes the same filing.
type filingIndex struct {
	AccessionNumber []string `json:"accessionNumber"`
	FilingDate      []string `json:"filingDate"`
	ReportDate      []string `json:"reportDate"`
	Form            []string `json:"form"`
	PrimaryDocument []string `json:"primaryDocument"`
}

// --- full-text search (efts.sec.gov) ---

type searchResponse struct {
	Hits searchHits `json:"hits"`
}

type searchHits struct {
	Total searchTotal `json:"total"`
	Hits  []searchHit `json:"hits"`
}

type searchTotal struct {
	Value int `json:"value"`
}

type searchHit struct {
	ID     string         `json:"_id"`
	Source searchDocument `json:"_source"`
}

type searchDocument struct {
	EntityName string   `json:"entity_name"`
	FormType   string   `json:"form_type"`
	FiledAt    string   `json:"filed_at"`
	FileDate   string   `json:"file_date"`
	Period     string   `json:"period_of_report"`
	CIKs       []string `json:"ciks"`
	Tickers    []string `json:"tickers"`
}
