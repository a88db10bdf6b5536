package annotation

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Table is an ordered, read-only collection of transcripts combined from one
// or more annotation files. Lookups preserve file order.
type Table struct {
	transcripts []*Transcript
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// ReadFrom parses one UCSC gene table and appends its transcripts: a
// tab-delimited file whose first line starts with '#' and names the columns.
// Returns an *InvalidAnnotationFileError on format violations.
func (tb *Table) ReadFrom(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var columns []string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if columns == nil {
			if !strings.HasPrefix(line, "#") {
				return &InvalidAnnotationFileError{
					Reason: "first line must be a #-prefixed header",
				}
			}
			columns = strings.Split(strings.TrimPrefix(line, "#"), "\t")
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != len(columns) {
			return &InvalidAnnotationFileError{
				Reason: fmt.Sprintf("row has %d fields, header has %d columns",
					len(fields), len(columns)),
			}
		}
		row := make(map[string]string, len(columns))
		for i, column := range columns {
			row[column] = fields[i]
		}
		transcript, err := NewTranscript(row)
		if err != nil {
			return err
		}
		tb.transcripts = append(tb.transcripts, transcript)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan annotation: %w", err)
	}
	if columns == nil {
		return &InvalidAnnotationFileError{Reason: "annotation file empty"}
	}
	return nil
}

// Add appends a transcript to the table.
func (tb *Table) Add(t *Transcript) {
	tb.transcripts = append(tb.transcripts, t)
}

// LookupGene returns every transcript whose gene id matches, in table order.
// The result may be empty.
func (tb *Table) LookupGene(geneID string) []*Transcript {
	var matches []*Transcript
	for _, t := range tb.transcripts {
		if t.GeneID == geneID {
			matches = append(matches, t)
		}
	}
	return matches
}

// Len returns the number of transcripts in the table.
func (tb *Table) Len() int {
	return len(tb.transcripts)
}
