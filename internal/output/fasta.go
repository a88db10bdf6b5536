// Package output provides probe output formatters.
package output

import (
	"bufio"
	"io"
)

// FastaWriter writes probes as FASTA records: the probe's canonical
// statement as the header line, its resolved sequence as the body.
type FastaWriter struct {
	w *bufio.Writer
}

// NewFastaWriter creates a new FASTA writer.
func NewFastaWriter(w io.Writer) *FastaWriter {
	return &FastaWriter{w: bufio.NewWriter(w)}
}

// WriteRecord writes a single header/sequence record.
func (fw *FastaWriter) WriteRecord(header, seq string) error {
	if _, err := fw.w.WriteString(">" + header + "\n"); err != nil {
		return err
	}
	_, err := fw.w.WriteString(seq + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (fw *FastaWriter) Flush() error {
	return fw.w.Flush()
}
