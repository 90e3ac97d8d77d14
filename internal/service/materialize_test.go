package service

import (
	"strings"
	"testing"

	"papelog/internal/domain"
)

func TestMaterialize_SectionIDsAreStableAndUnique(t *testing.T) {
	raw := &domain.RawResult{
		Sections: []domain.RawSection{
			{Head: "Intro", Text: "<p>one</p>"},
			{Head: "Methods", Text: "<p>two</p>", Subsections: []domain.RawSection{
				{Head: "Setup", Text: "<p>three</p>"},
				{Head: "Setup", Text: "<p>four</p>"},
			}},
			{Head: "", Text: "<p>five</p>"},
		},
	}

	first := Materialize(raw, "paper.pdf")
	second := Materialize(raw, "paper.pdf")

	var firstIDs, secondIDs []string
	first.WalkSections(func(sec *domain.Section) { firstIDs = append(firstIDs, sec.ID) })
	second.WalkSections(func(sec *domain.Section) { secondIDs = append(secondIDs, sec.ID) })

	if len(firstIDs) != 5 {
		t.Fatalf("expected 5 sections, got %d", len(firstIDs))
	}
	for i := range firstIDs {
		if firstIDs[i] != secondIDs[i] {
			t.Fatalf("IDs are not deterministic: %s vs %s", firstIDs[i], secondIDs[i])
		}
	}

	seen := map[string]bool{}
	for _, id := range firstIDs {
		if seen[id] {
			t.Fatalf("duplicate section ID %s", id)
		}
		seen[id] = true
	}

	if firstIDs[0] != "sec-1-intro" {
		t.Fatalf("unexpected ID for the intro section: %s", firstIDs[0])
	}
	// Duplicate headings stay distinct through the position path.
	if firstIDs[2] != "sec-2-1-setup" || firstIDs[3] != "sec-2-2-setup" {
		t.Fatalf("unexpected subsection IDs: %s, %s", firstIDs[2], firstIDs[3])
	}
	if firstIDs[4] != "sec-3-untitled" {
		t.Fatalf("unexpected ID for the untitled section: %s", firstIDs[4])
	}
}

func TestMaterialize_PreviewAndLongFlag(t *testing.T) {
	long := strings.Repeat("word ", 200)
	raw := &domain.RawResult{
		Sections: []domain.RawSection{
			{Head: "Short", Text: "<p>brief body</p>"},
			{Head: "Long", Text: "<p>" + long + "</p>"},
		},
	}

	doc := Materialize(raw, "paper.pdf")

	if doc.Sections[0].IsLong {
		t.Fatal("short section flagged as long")
	}
	if doc.Sections[0].Preview != "<p>brief body</p>" {
		t.Fatalf("short preview must keep markup, got %q", doc.Sections[0].Preview)
	}
	if !doc.Sections[1].IsLong {
		t.Fatal("long section not flagged")
	}
	if !strings.HasSuffix(doc.Sections[1].Preview, "…") {
		t.Fatalf("long preview missing ellipsis: %q", doc.Sections[1].Preview)
	}
	if strings.Contains(doc.Sections[1].Preview, "<p>") {
		t.Fatal("long preview must be plain text")
	}
}

func TestMaterialize_TitleFallsBackToFilename(t *testing.T) {
	doc := Materialize(&domain.RawResult{Meta: &domain.RawMeta{Title: "  "}}, "attention-is-all-you-need.pdf")
	if doc.Meta.Title != "attention-is-all-you-need" {
		t.Fatalf("unexpected fallback title: %q", doc.Meta.Title)
	}

	doc = Materialize(&domain.RawResult{Meta: &domain.RawMeta{Title: "Real Title"}}, "whatever.pdf")
	if doc.Meta.Title != "Real Title" {
		t.Fatalf("expected the parsed title to win, got %q", doc.Meta.Title)
	}
}

func TestMaterialize_ReferenceDetectionAndLastContent(t *testing.T) {
	raw := &domain.RawResult{
		Sections: []domain.RawSection{
			{Head: "Intro", Text: "<p>one</p>"},
			{Head: "Discussion", Text: "<p>two</p>"},
			{Head: "参考文献", Text: "<p>[1]</p>"},
		},
	}

	doc := Materialize(raw, "paper.pdf")

	if doc.Sections[2].IsReference != true {
		t.Fatal("japanese reference heading not detected")
	}
	if !doc.Sections[1].LastContent {
		t.Fatal("expected the discussion section to be the last content section")
	}
	if doc.Sections[2].LastContent {
		t.Fatal("the reference section must never be the last content section")
	}
}

func TestMaterialize_ReferenceLinks(t *testing.T) {
	raw := &domain.RawResult{
		References: []domain.RawRef{
			{ID: "r1", Text: "<i>Smith 2020</i>", SearchQuery: "smith attention 2020"},
			{Text: "<b>Jones 2021</b>"},
		},
	}

	doc := Materialize(raw, "paper.pdf")

	if doc.References[0].GoogleScholarURL != "https://scholar.google.com/scholar?q=smith+attention+2020" {
		t.Fatalf("unexpected scholar URL: %s", doc.References[0].GoogleScholarURL)
	}
	if !strings.Contains(doc.References[0].PubMedURL, "pubmed.ncbi.nlm.nih.gov") {
		t.Fatalf("unexpected pubmed URL: %s", doc.References[0].PubMedURL)
	}
	// Missing query falls back to the stripped citation text.
	if doc.References[1].SearchQuery != "Jones 2021" {
		t.Fatalf("unexpected fallback query: %q", doc.References[1].SearchQuery)
	}
	if doc.References[1].ID != "ref-2" {
		t.Fatalf("unexpected synthetic reference ID: %s", doc.References[1].ID)
	}
}

func TestMaterialize_FiltersEmptyFiguresAndTables(t *testing.T) {
	raw := &domain.RawResult{
		Figures: []domain.RawFigure{
			{Page: 1, Index: 0, DataURI: "data:image/png;base64,short"},
			{Page: 2, Index: 1, DataURI: "data:image/png;base64," + strings.Repeat("A", 400)},
		},
		Tables: []domain.RawTable{
			{TableID: "t1", Data: [][]string{{" ", ""}, {"", ""}}},
			{Data: [][]string{{"a", "b"}, {"", ""}}},
		},
	}

	doc := Materialize(raw, "paper.pdf")

	if len(doc.Figures) != 1 || doc.Figures[0].Page != 2 {
		t.Fatalf("unexpected figures: %+v", doc.Figures)
	}
	if len(doc.Tables) != 1 {
		t.Fatalf("expected the all-blank table to be dropped, got %+v", doc.Tables)
	}
	if len(doc.Tables[0].Data) != 1 {
		t.Fatalf("expected blank rows to be dropped, got %+v", doc.Tables[0].Data)
	}
	if doc.Tables[0].ID != "table-2" {
		t.Fatalf("unexpected synthetic table ID: %s", doc.Tables[0].ID)
	}
}

func TestMaterialize_SectionFiguresWithoutCaptionDropped(t *testing.T) {
	raw := &domain.RawResult{
		Sections: []domain.RawSection{
			{Head: "Results", Text: "<p>x</p>", Figures: []domain.RawSectionFigure{
				{ID: "f1", Caption: "Figure 1: things"},
				{ID: "f2", Caption: "   "},
			}},
		},
	}

	doc := Materialize(raw, "paper.pdf")

	if len(doc.Sections[0].Figures) != 1 || doc.Sections[0].Figures[0].ID != "f1" {
		t.Fatalf("unexpected section figures: %+v", doc.Sections[0].Figures)
	}
}

func TestMaterialize_NilResult(t *testing.T) {
	doc := Materialize(nil, "paper.pdf")
	if doc == nil || doc.PDFFilename != "paper.pdf" {
		t.Fatalf("unexpected document: %+v", doc)
	}
}

func TestHeadingSlug(t *testing.T) {
	cases := []struct {
		head string
		want string
	}{
		{"Introduction", "introduction"},
		{"2.1 Model Architecture", "2-1-model-architecture"},
		{"  Résumé & CV  ", "résumé-cv"},
		{"!!!", "untitled"},
		{"", "untitled"},
	}
	for _, c := range cases {
		if got := headingSlug(c.head); got != c.want {
			t.Errorf("headingSlug(%q) = %q, want %q", c.head, got, c.want)
		}
	}
}
