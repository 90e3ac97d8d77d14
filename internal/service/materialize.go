package service

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"papelog/internal/domain"
)

const (
	// Cutoff for the collapsed plain-text preview of a section body.
	previewLength = 500

	// Data URIs at or below prefix length plus this margin carry no usable
	// image and are filtered out.
	minDataURIPayload = 100

	maxSlugLength = 48
)

var dataURIPrefixLen = len("data:image/png;base64,")

// Materialize converts one terminal parse result into the view model. It is
// a pure transformation: the input is never mutated, and materializing the
// same payload twice yields identical section identifiers.
func Materialize(raw *domain.RawResult, pdfFilename string) *domain.ParsedDocument {
	doc := &domain.ParsedDocument{PDFFilename: pdfFilename}
	if raw == nil {
		return doc
	}

	doc.Meta = materializeMeta(raw, pdfFilename)
	doc.Sections = materializeSections(raw.Sections, nil, 1)
	markLastContent(doc)
	doc.References = materializeReferences(raw.References)
	doc.Figures = materializeFigures(raw.Figures)
	doc.Tables = materializeTables(raw.Tables)
	return doc
}

func materializeMeta(raw *domain.RawResult, pdfFilename string) domain.Meta {
	meta := domain.Meta{GoogleDriveURL: raw.GoogleDriveURL}
	if raw.Meta != nil {
		meta.Title = strings.TrimSpace(raw.Meta.Title)
		meta.Authors = append([]string(nil), raw.Meta.Authors...)
		meta.Journal = raw.Meta.Journal
		meta.Issued = raw.Meta.Issued
		meta.DOI = raw.Meta.DOI
		meta.Abstract = raw.Meta.Abstract
		meta.AbstractSummary = raw.Meta.AbstractSummary
		for _, t := range raw.Meta.SuggestedTags {
			if strings.TrimSpace(t.Tag) == "" {
				continue
			}
			meta.SuggestedTags = append(meta.SuggestedTags, domain.TagSuggestion{
				Tag:     t.Tag,
				Matched: t.Matched,
			})
		}
	}
	// A paper without a parsed title still needs something to display and
	// to satisfy the save precondition: fall back to the PDF filename.
	if meta.Title == "" && pdfFilename != "" {
		base := filepath.Base(pdfFilename)
		meta.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return meta
}

func materializeSections(raw []domain.RawSection, path []int, level int) []domain.Section {
	if len(raw) == 0 {
		return nil
	}
	sections := make([]domain.Section, 0, len(raw))
	for i, rs := range raw {
		nodePath := append(path[:len(path):len(path)], i+1)
		plain := StripHTML(rs.Text)
		preview, isLong := PlainTextPreview(rs.Text, previewLength)

		section := domain.Section{
			ID:          sectionID(nodePath, rs.Head),
			Head:        rs.Head,
			Text:        rs.Text,
			PlainText:   plain,
			Preview:     preview,
			IsLong:      isLong,
			Level:       level,
			IsReference: isReferenceHeading(rs.Head),
		}
		if rs.Head != "" {
			section.Anchor = url.PathEscape(rs.Head)
		}
		for _, fig := range rs.Figures {
			if strings.TrimSpace(fig.Caption) == "" {
				continue
			}
			section.Figures = append(section.Figures, domain.SectionFigure{
				ID:      fig.ID,
				Caption: fig.Caption,
			})
		}
		section.Subsections = materializeSections(rs.Subsections, nodePath, level+1)
		sections = append(sections, section)
	}
	return sections
}

// sectionID builds the stable synthetic identifier from the node's pre-order
// position path plus its normalized heading. The path keeps identifiers
// unique even when headings repeat or are missing.
func sectionID(path []int, head string) string {
	parts := make([]string, 0, len(path)+2)
	parts = append(parts, "sec")
	for _, p := range path {
		parts = append(parts, strconv.Itoa(p))
	}
	parts = append(parts, headingSlug(head))
	return strings.Join(parts, "-")
}

func headingSlug(head string) string {
	head = strings.ToLower(strings.TrimSpace(head))
	var b strings.Builder
	pendingDash := false
	for _, r := range head {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		} else {
			pendingDash = true
		}
		if b.Len() >= maxSlugLength {
			break
		}
	}
	slug := b.String()
	if slug == "" {
		return "untitled"
	}
	return slug
}

func isReferenceHeading(head string) bool {
	lower := strings.ToLower(head)
	return strings.Contains(lower, "reference") || strings.Contains(head, "参考文献")
}

// markLastContent flags the final pre-order section carrying body text, which
// the UI uses as the jump target for its navigation shortcut. Computed once
// here, never during traversal.
func markLastContent(doc *domain.ParsedDocument) {
	var last *domain.Section
	doc.WalkSections(func(sec *domain.Section) {
		if !sec.IsReference && strings.TrimSpace(sec.PlainText) != "" {
			last = sec
		}
	})
	if last != nil {
		last.LastContent = true
	}
}

func materializeReferences(raw []domain.RawRef) []domain.Reference {
	if len(raw) == 0 {
		return nil
	}
	references := make([]domain.Reference, 0, len(raw))
	for i, rr := range raw {
		query := strings.TrimSpace(rr.SearchQuery)
		if query == "" {
			query = StripHTML(rr.Text)
		}
		ref := domain.Reference{
			ID:               rr.ID,
			Text:             rr.Text,
			SearchQuery:      query,
			GoogleScholarURL: "https://scholar.google.com/scholar?q=" + url.QueryEscape(query),
			PubMedURL:        "https://pubmed.ncbi.nlm.nih.gov/?term=" + url.QueryEscape(query),
		}
		if ref.ID == "" {
			ref.ID = fmt.Sprintf("ref-%d", i+1)
		}
		references = append(references, ref)
	}
	return references
}

func materializeFigures(raw []domain.RawFigure) []domain.Figure {
	var figures []domain.Figure
	for _, rf := range raw {
		if len(rf.DataURI) <= dataURIPrefixLen+minDataURIPayload {
			continue
		}
		figures = append(figures, domain.Figure{
			Page:    rf.Page,
			Index:   rf.Index,
			DataURI: rf.DataURI,
		})
	}
	return figures
}

func materializeTables(raw []domain.RawTable) []domain.Table {
	var tables []domain.Table
	for i, rt := range raw {
		var rows [][]string
		for _, row := range rt.Data {
			if rowHasContent(row) {
				rows = append(rows, append([]string(nil), row...))
			}
		}
		if len(rows) == 0 {
			continue
		}
		table := domain.Table{ID: rt.TableID, Data: rows}
		if table.ID == "" {
			table.ID = fmt.Sprintf("table-%d", i+1)
		}
		tables = append(tables, table)
	}
	return tables
}

func rowHasContent(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return true
		}
	}
	return false
}
