package parser

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXParser extracts spreadsheets as tagged table blocks, one per sheet.
type XLSXParser struct{}

func (p *XLSXParser) SupportedFormats() []string { return []string{"xlsx"} }

func (p *XLSXParser) Parse(ctx context.Context, data []byte) (*Result, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening XLSX: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	var tables []string
	sheets := f.GetSheetList()

	for _, sheet := range sheets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rows, err := f.GetRows(sheet)
		if err != nil {
			// Skip unreadable sheets.
			continue
		}

		block := formatTable(sheet, rows)
		if block == "" {
			continue
		}
		tables = append(tables, block)
		b.WriteString(block)
		b.WriteString("\n\n")
	}

	return &Result{
		Text:   strings.TrimSpace(b.String()),
		Pages:  len(sheets),
		Tables: tables,
		Method: "xlsx",
	}, nil
}
