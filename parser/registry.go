package parser

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Registry maps document formats to parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry returns a registry with all built-in parsers registered.
func NewRegistry() *Registry {
	r := &Registry{parsers: make(map[string]Parser)}
	for _, p := range []Parser{
		&PDFParser{},
		&DOCXParser{},
		&XLSXParser{},
		&HTMLParser{},
		&EmailParser{},
		&TextParser{},
	} {
		for _, f := range p.SupportedFormats() {
			r.parsers[f] = p
		}
	}
	return r
}

// Get returns the parser for a format.
func (r *Registry) Get(format string) (Parser, error) {
	p, ok := r.parsers[format]
	if !ok {
		return nil, fmt.Errorf("no parser for format: %s", format)
	}
	return p, nil
}

// Register adds or replaces the parser for a format.
func (r *Registry) Register(format string, p Parser) {
	r.parsers[format] = p
}

// Parse detects the document format and runs the matching parser.
// contentType and sourceURL are hints used when byte sniffing is ambiguous.
func (r *Registry) Parse(ctx context.Context, data []byte, contentType, sourceURL string) (*Result, error) {
	format := DetectFormat(data, contentType, sourceURL)
	p, err := r.Get(format)
	if err != nil {
		return nil, err
	}
	res, err := p.Parse(ctx, data)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(res.Text) == "" {
		return nil, ErrNoText
	}
	return res, nil
}

// DetectFormat sniffs the document format from its leading bytes, falling
// back to the Content-Type header and then the URL extension.
func DetectFormat(data []byte, contentType, sourceURL string) string {
	if len(data) >= 5 && bytes.HasPrefix(data, []byte("%PDF-")) {
		return "pdf"
	}
	if bytes.HasPrefix(data, []byte("PK\x03\x04")) {
		return sniffZip(data)
	}

	head := bytes.ToLower(bytes.TrimSpace(firstN(data, 512)))
	if bytes.HasPrefix(head, []byte("<!doctype html")) || bytes.HasPrefix(head, []byte("<html")) {
		return "html"
	}
	if looksLikeEmail(data) {
		return "email"
	}

	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "pdf"):
		return "pdf"
	case strings.Contains(ct, "wordprocessingml"):
		return "docx"
	case strings.Contains(ct, "spreadsheetml"):
		return "xlsx"
	case strings.Contains(ct, "html"):
		return "html"
	case strings.Contains(ct, "message/rfc822"):
		return "email"
	}

	if u, err := url.Parse(sourceURL); err == nil {
		switch strings.ToLower(path.Ext(u.Path)) {
		case ".pdf":
			return "pdf"
		case ".docx":
			return "docx"
		case ".xlsx":
			return "xlsx"
		case ".html", ".htm":
			return "html"
		case ".eml":
			return "email"
		}
	}

	return "text"
}

// sniffZip distinguishes OOXML containers by their internal layout.
func sniffZip(data []byte) string {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "text"
	}
	for _, f := range zr.File {
		switch {
		case strings.HasPrefix(f.Name, "word/"):
			return "docx"
		case strings.HasPrefix(f.Name, "xl/"):
			return "xlsx"
		}
	}
	return "text"
}

// looksLikeEmail reports whether the data starts with RFC 822 headers.
func looksLikeEmail(data []byte) bool {
	head := firstN(data, 2048)
	sep := bytes.Index(head, []byte("\n\n"))
	if sep < 0 {
		sep = bytes.Index(head, []byte("\r\n\r\n"))
	}
	if sep < 0 {
		sep = len(head)
	}
	headers := string(head[:sep])
	count := 0
	for _, h := range []string{"from:", "to:", "subject:", "date:", "received:", "return-path:", "mime-version:"} {
		if strings.Contains(strings.ToLower(headers), h) {
			count++
		}
	}
	return count >= 2
}

func firstN(data []byte, n int) []byte {
	if len(data) > n {
		return data[:n]
	}
	return data
}
