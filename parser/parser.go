// Package parser extracts plain text from fetched policy documents. Each
// supported format (PDF, DOCX, XLSX, HTML, email, plain text) has its own
// parser; the Registry picks one by sniffing the document bytes.
package parser

import (
	"context"
	"errors"
)

// ErrNoText is returned when a document yields no extractable text.
var ErrNoText = errors.New("parser: no extractable text")

// Result is what a parser produces from raw document bytes.
type Result struct {
	Text   string   // Extracted text with PAGE/SECTION/table markers
	Pages  int      // Page or sheet count, 0 when the format has none
	Tables []string // Flattened table blocks, also embedded in Text
	Method string   // Which parser produced the result
}

// Parser extracts text from one document format.
type Parser interface {
	Parse(ctx context.Context, data []byte) (*Result, error)
	SupportedFormats() []string
}
