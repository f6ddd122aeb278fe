package parser

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// DOCXParser extracts text and tables from Word documents.
type DOCXParser struct{}

func (p *DOCXParser) SupportedFormats() []string { return []string{"docx"} }

func (p *DOCXParser) Parse(ctx context.Context, data []byte) (*Result, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening DOCX: %w", err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return nil, fmt.Errorf("word/document.xml not found in DOCX")
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, fmt.Errorf("opening document.xml: %w", err)
	}
	defer rc.Close()

	xmlData, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}

	var doc docxDocument
	if err := xml.Unmarshal(xmlData, &doc); err != nil {
		return nil, fmt.Errorf("parsing DOCX XML: %w", err)
	}

	var b strings.Builder
	for _, para := range doc.Body.Paras {
		text := extractParaText(para)
		if text == "" {
			continue
		}

		style := ""
		if para.PPr != nil && para.PPr.PStyle != nil {
			style = strings.ToLower(para.PPr.PStyle.Val)
		}
		if strings.HasPrefix(style, "heading") || strings.HasPrefix(style, "title") {
			b.WriteString("\nSECTION: ")
			b.WriteString(text)
			b.WriteString("\n")
		} else {
			b.WriteString(text)
			b.WriteString("\n")
		}
	}

	var tables []string
	for _, tbl := range doc.Body.Tables {
		rows := make([][]string, 0, len(tbl.Rows))
		for _, row := range tbl.Rows {
			cells := make([]string, 0, len(row.Cells))
			for _, cell := range row.Cells {
				var cellText strings.Builder
				for _, cp := range cell.Paras {
					if t := extractParaText(cp); t != "" {
						if cellText.Len() > 0 {
							cellText.WriteString(" ")
						}
						cellText.WriteString(t)
					}
				}
				cells = append(cells, cellText.String())
			}
			rows = append(rows, cells)
		}
		if block := formatTable("", rows); block != "" {
			tables = append(tables, block)
			b.WriteString("\n")
			b.WriteString(block)
			b.WriteString("\n")
		}
	}

	return &Result{
		Text:   strings.TrimSpace(b.String()),
		Tables: tables,
		Method: "docx",
	}, nil
}

// DOCX XML structures (simplified).
type docxDocument struct {
	XMLName xml.Name `xml:"document"`
	Body    docxBody `xml:"body"`
}

type docxBody struct {
	XMLName xml.Name    `xml:"body"`
	Paras   []docxPara  `xml:"p"`
	Tables  []docxTable `xml:"tbl"`
}

type docxPara struct {
	XMLName xml.Name    `xml:"p"`
	PPr     *docxParaPr `xml:"pPr"`
	Runs    []docxRun   `xml:"r"`
}

type docxParaPr struct {
	PStyle *docxPStyle `xml:"pStyle"`
}

type docxPStyle struct {
	Val string `xml:"val,attr"`
}

type docxRun struct {
	Text []docxText `xml:"t"`
}

type docxText struct {
	Content string `xml:",chardata"`
}

type docxTable struct {
	Rows []docxRow `xml:"tr"`
}

type docxRow struct {
	Cells []docxCell `xml:"tc"`
}

type docxCell struct {
	Paras []docxPara `xml:"p"`
}

func extractParaText(para docxPara) string {
	var b strings.Builder
	for _, run := range para.Runs {
		for _, t := range run.Text {
			b.WriteString(t.Content)
		}
	}
	return strings.TrimSpace(b.String())
}
