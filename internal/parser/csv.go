package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVParser renders CSV rows as labeled lines so tabular data summarizes
// sensibly.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	doc := &Document{Title: titleFromFilename(filename)}
	if len(records) == 0 {
		return doc, nil
	}

	// First row is headers; each data row becomes one "header: cell" line.
	headers := records[0]
	var paragraphs []string
	paragraphs = append(paragraphs, "Headers: "+strings.Join(headers, ", "))

	for _, row := range records[1:] {
		var line strings.Builder
		for j, cell := range row {
			if j > 0 {
				line.WriteString(", ")
			}
			if j < len(headers) {
				line.WriteString(headers[j] + ": " + cell)
			} else {
				line.WriteString(cell)
			}
		}
		paragraphs = append(paragraphs, line.String())
	}

	doc.Text = joinParagraphs(paragraphs)
	return doc, nil
}
