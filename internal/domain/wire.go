package domain

// Wire-level payloads exchanged with the parsing backend. These mirror the
// backend's loosely-typed JSON; the materializer converts them into the view
// model, applying defaults for anything absent.

// Backend status strings. Anything else is treated as a failure, never
// silently ignored.
const (
	BackendStatusQueued     = "queued"
	BackendStatusProcessing = "processing"
	BackendStatusCompleted  = "completed"
	BackendStatusFailed     = "failed"
	BackendStatusNotFound   = "not_found"
)

// ParseAcceptedResponse is the body returned by POST /api/parse_async.
type ParseAcceptedResponse struct {
	JobID        string `json:"job_id"`
	Status       string `json:"status,omitempty"`
	StatusDetail string `json:"status_detail,omitempty"`
}

// ParseStatusResponse is the body returned by GET /api/parse_status/{job_id}.
// It is a union tagged by Status: Result is present only for "completed",
// Error only for "failed".
type ParseStatusResponse struct {
	Status       string     `json:"status"`
	StatusDetail string     `json:"status_detail,omitempty"`
	Error        string     `json:"error,omitempty"`
	Result       *RawResult `json:"result,omitempty"`
}

// RawResult is the untyped parse result attached to a completed job.
type RawResult struct {
	Meta           *RawMeta     `json:"meta"`
	Sections       []RawSection `json:"sections"`
	References     []RawRef     `json:"references"`
	Figures        []RawFigure  `json:"figures"`
	Tables         []RawTable   `json:"tables"`
	GoogleDriveURL string       `json:"google_drive_url,omitempty"`
}

// RawMeta is the backend's metadata block.
type RawMeta struct {
	Title           string             `json:"title"`
	Authors         []string           `json:"authors"`
	Journal         string             `json:"journal"`
	Issued          string             `json:"issued"`
	DOI             string             `json:"doi"`
	Abstract        string             `json:"abstract"`
	AbstractSummary string             `json:"abstract_summary"`
	SuggestedTags   []RawTagSuggestion `json:"suggested_tags"`
}

// RawTagSuggestion is one AI tag proposal from the backend.
type RawTagSuggestion struct {
	Tag     string `json:"tag"`
	Matched string `json:"matched_existing"`
}

// RawSection is one node of the backend's section tree.
type RawSection struct {
	Head        string             `json:"head"`
	Text        string             `json:"text"`
	Figures     []RawSectionFigure `json:"figures"`
	Subsections []RawSection       `json:"subsections"`
}

// RawSectionFigure is a per-section figure caption.
type RawSectionFigure struct {
	ID      string `json:"id"`
	Caption string `json:"caption"`
}

// RawRef is one reference entry.
type RawRef struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	SearchQuery string `json:"search_query"`
}

// RawFigure is one image extracted from the whole PDF.
type RawFigure struct {
	Page    int    `json:"page"`
	Index   int    `json:"index"`
	DataURI string `json:"data_uri"`
}

// RawTable is one table extracted from the whole PDF.
type RawTable struct {
	TableID string     `json:"table_id"`
	Data    [][]string `json:"data"`
}

// SummarizeResponse is the body returned by POST /summarize.
type SummarizeResponse struct {
	Summary string `json:"summary"`
}

// SaveToNotionRequest is the curated record sent to POST /api/save_to_notion.
type SaveToNotionRequest struct {
	Title             string   `json:"title"`
	Authors           []string `json:"authors"`
	Journal           string   `json:"journal"`
	PublishedDate     string   `json:"published_date"`
	DOI               string   `json:"doi"`
	PDFFilename       string   `json:"pdf_filename"`
	PDFGoogleDriveURL string   `json:"pdf_google_drive_url"`
	OriginalAbstract  string   `json:"original_abstract"`
	Tags              []string `json:"tags"`
	Rating            string   `json:"rating"`
	Memo              string   `json:"memo"`
}

// SaveToNotionResponse is the body returned by POST /api/save_to_notion.
type SaveToNotionResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url,omitempty"`
}
