package domain

// TagSuggestion pairs a tag proposed by the backend AI with the matching
// pre-existing knowledge-base tag, when one exists.
type TagSuggestion struct {
	Tag     string `json:"tag"`
	Matched string `json:"matched_existing,omitempty"`
}

// Meta holds the bibliographic metadata of a parsed paper.
type Meta struct {
	Title           string          `json:"title"`
	Authors         []string        `json:"authors,omitempty"`
	Journal         string          `json:"journal,omitempty"`
	Issued          string          `json:"issued,omitempty"`
	DOI             string          `json:"doi,omitempty"`
	Abstract        string          `json:"abstract,omitempty"`
	AbstractSummary string          `json:"abstract_summary,omitempty"`
	GoogleDriveURL  string          `json:"google_drive_url,omitempty"`
	SuggestedTags   []TagSuggestion `json:"suggested_tags,omitempty"`
}

// SectionFigure is a figure caption embedded inside one section of the paper.
type SectionFigure struct {
	ID      string `json:"id,omitempty"`
	Caption string `json:"caption"`
}

// Section is one node of the materialized section tree.
//
// ID is synthetic and stable: it is derived from the node's pre-order
// position path plus its normalized heading at materialization time, never
// from mutable display state, so it survives re-renders and stays unique
// within a document even for untitled sections.
type Section struct {
	ID          string          `json:"id"`
	Head        string          `json:"head,omitempty"`
	Anchor      string          `json:"anchor,omitempty"`
	Text        string          `json:"text"`
	PlainText   string          `json:"-"`
	Preview     string          `json:"preview,omitempty"`
	IsLong      bool            `json:"is_long"`
	Level       int             `json:"level"`
	IsReference bool            `json:"is_reference"`
	LastContent bool            `json:"last_content"`
	Figures     []SectionFigure `json:"figures,omitempty"`
	Subsections []Section       `json:"subsections,omitempty"`
}

// Reference is one entry of the paper's reference list, with search links
// precomputed from the backend-provided query (falling back to the citation
// text itself).
type Reference struct {
	ID               string `json:"id"`
	Text             string `json:"text"`
	SearchQuery      string `json:"search_query"`
	GoogleScholarURL string `json:"google_scholar_url"`
	PubMedURL        string `json:"pubmed_url"`
}

// Figure is an image extracted from the whole PDF.
type Figure struct {
	Page    int    `json:"page"`
	Index   int    `json:"index"`
	DataURI string `json:"data_uri"`
}

// Table is a table extracted from the whole PDF as a grid of cell strings.
type Table struct {
	ID   string     `json:"id"`
	Data [][]string `json:"data"`
}

// ParsedDocument is the view model materialized from one terminal poll
// response. It is built atomically, never incrementally, and persists until
// the next upload resets the session.
type ParsedDocument struct {
	Meta        Meta        `json:"meta"`
	PDFFilename string      `json:"pdf_filename"`
	Sections    []Section   `json:"sections"`
	References  []Reference `json:"references"`
	Figures     []Figure    `json:"figures"`
	Tables      []Table     `json:"tables"`
}

// FindSection returns the section with the given synthetic ID, searching the
// tree depth-first, or nil when the ID is unknown.
func (d *ParsedDocument) FindSection(id string) *Section {
	if d == nil {
		return nil
	}
	return findSection(d.Sections, id)
}

func findSection(sections []Section, id string) *Section {
	for i := range sections {
		if sections[i].ID == id {
			return &sections[i]
		}
		if found := findSection(sections[i].Subsections, id); found != nil {
			return found
		}
	}
	return nil
}

// WalkSections visits every section depth-first in pre-order.
func (d *ParsedDocument) WalkSections(visit func(*Section)) {
	if d == nil {
		return
	}
	walkSections(d.Sections, visit)
}

func walkSections(sections []Section, visit func(*Section)) {
	for i := range sections {
		visit(&sections[i])
		walkSections(sections[i].Subsections, visit)
	}
}
