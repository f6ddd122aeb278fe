package parser

import (
	"context"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// TextParser handles plain text, decoding Windows-1252 when the bytes are
// not valid UTF-8.
type TextParser struct{}

func (p *TextParser) SupportedFormats() []string { return []string{"text"} }

func (p *TextParser) Parse(ctx context.Context, data []byte) (*Result, error) {
	var text string
	if utf8.Valid(data) {
		text = string(data)
	} else {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return nil, err
		}
		text = string(decoded)
	}

	return &Result{
		Text:   strings.TrimSpace(text),
		Method: "text",
	}, nil
}
