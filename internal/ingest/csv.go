package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/dgallion1/infographic/internal/doctree"
)

type csvSource struct{}

// Extract turns each data row into a node. When the header names a title
// column ("title", "step" or "name") that cell becomes the node title; the
// remaining cells are written as "header: value" lines.
func (csvSource) Extract(data []byte, title string) (*doctree.DocTree, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	tree := &doctree.DocTree{Title: title}
	if len(records) == 0 {
		return tree, nil
	}

	headers := records[0]
	titleCol := -1
	for i, h := range headers {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "title", "step", "name":
			if titleCol < 0 {
				titleCol = i
			}
		}
	}

	for _, row := range records[1:] {
		node := &doctree.DocNode{}
		var lines []string
		for j, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			switch {
			case j == titleCol:
				node.Title = cell
			case j < len(headers) && headers[j] != "":
				lines = append(lines, headers[j]+": "+cell)
			default:
				lines = append(lines, cell)
			}
		}
		node.Text = strings.Join(lines, "\n")
		if node.Title != "" || node.Text != "" {
			tree.Children = append(tree.Children, node)
		}
	}
	return tree, nil
}
