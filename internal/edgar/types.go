package edgar

// --- EDGAR Full-Text Search (efts.sec.gov) ---

// searchResponse is the response from the EDGAR full-text search API.
type searchResponse struct {
	Query searchQuery `json:"query"`
	Hits  searchHits  `json:"hits"`
}

type searchQuery struct {
	From int    `json:"from"`
	Size int    `json:"size"`
	Q    string `json:"q"`
}

type searchHits struct {
	Total totalHits   `json:"total"`
	Hits  []searchHit `json:"hits"`
}

type totalHits struct {
	Value    int    `json:"value"`
	Relation string `json:"relation"`
}

type searchHit struct {
	ID     string         `json:"_id"` // "<accession>:<primary document>"
	Source searchDocument `json:"_source"`
}

type searchDocument struct {
	EntityName   string   `json:"entity_name"`
	FormType     string   `json:"form_type"`
	FiledAt      string   `json:"file_date"`
	Tickers      []string `json:"tickers"`
	CIKs         []string `json:"ciks"`
	DisplayNames []string `json:"display_names"`
}

// --- EDGAR Submissions (data.sec.gov/submissions) ---

// submissionsResponse is the response from the company submissions endpoint.
type submissionsResponse struct {
	CIK     string         `json:"cik"`
	Name    string         `json:"name"`
	Tickers []string       `json:"tickers"`
	Filings companyFilings `json:"filings"`
}

type companyFilings struct {
	Recent filingSet `json:"recent"`
}

// filingSet holds parallel arrays of filing attributes, newest first.
type filingSet struct {
	AccessionNumber []string `json:"accessionNumber"`
	FilingDate      []string `json:"filingDate"`
	Form            []string `json:"form"`
	PrimaryDocument []string `json:"primaryDocument"`
}
