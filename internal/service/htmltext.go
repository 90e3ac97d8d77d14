package service

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHTML reduces a rich-text fragment to plain text: tags are dropped,
// entities are decoded and whitespace is collapsed to single spaces.
func StripHTML(input string) string {
	if input == "" {
		return ""
	}

	tokenizer := html.NewTokenizer(strings.NewReader(input))
	var b strings.Builder
	for {
		tokenType := tokenizer.Next()
		if tokenType == html.ErrorToken {
			break
		}
		if tokenType == html.TextToken {
			b.Write(tokenizer.Text())
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// PlainTextPreview decides how a section body should be previewed when
// collapsed. Short bodies are shown as-is (keeping their markup); long ones
// get a plain-text cutoff with an ellipsis and an "is long" flag driving the
// expansion affordance.
func PlainTextPreview(richText string, maxLength int) (preview string, isLong bool) {
	plain := StripHTML(richText)
	runes := []rune(plain)
	if len(runes) > maxLength {
		return string(runes[:maxLength]) + "…", true
	}
	return richText, false
}
