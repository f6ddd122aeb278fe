package parser

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFParser extracts text from PDF documents page by page.
type PDFParser struct{}

func (p *PDFParser) SupportedFormats() []string { return []string{"pdf"} }

func (p *PDFParser) Parse(ctx context.Context, data []byte) (*Result, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}

	totalPages := reader.NumPage()
	var b strings.Builder
	extracted := 0

	for i := 1; i <= totalPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip pages that fail to extract.
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		b.WriteString(fmt.Sprintf("PAGE %d:\n", i))
		b.WriteString(markHeadings(text))
		b.WriteString("\n\n")
		extracted++
	}

	if extracted == 0 {
		return nil, ErrNoText
	}

	return &Result{
		Text:   strings.TrimSpace(b.String()),
		Pages:  totalPages,
		Method: "pdf",
	}, nil
}

// markHeadings tags heading-looking lines so downstream structure rules fire
// even when the extractor loses font information.
func markHeadings(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isLikelyHeading(trimmed) && !strings.HasPrefix(trimmed, "SECTION") {
			lines[i] = "SECTION: " + trimmed
		}
	}
	return strings.Join(lines, "\n")
}

// isLikelyHeading reports whether a line reads as a section heading:
// short all-caps lines, numbered clauses, or common heading prefixes.
func isLikelyHeading(line string) bool {
	if len(line) < 3 || len(line) > 100 {
		return false
	}
	if line == strings.ToUpper(line) && strings.ContainsAny(line, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		return true
	}
	if line[0] >= '0' && line[0] <= '9' && strings.Contains(line[:min(10, len(line))], ".") {
		return true
	}
	lower := strings.ToLower(line)
	for _, prefix := range []string{"section ", "article ", "chapter ", "part ", "annexure ", "schedule "} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
