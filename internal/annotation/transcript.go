// Package annotation reads UCSC gene tables and models transcripts.
//
// Annotation files can be downloaded from the UCSC table browser with the
// output format "all fields from selected table". Supported tables are the
// ones carrying exonStarts/exonEnds/cdsStart/cdsEnd columns and exactly one
// gene-id column (name2 for RefSeq/UCSC Genes, proteinID for older tables).
package annotation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ahammel/probe-generator/internal/sequence"
)

// requiredFields are the columns every supported gene table must provide.
var requiredFields = []string{
	"name",
	"exonStarts",
	"exonEnds",
	"cdsStart",
	"cdsEnd",
	"chrom",
	"strand",
}

// geneNameFields are the columns that may carry the gene id. Exactly one
// must be present in a row.
var geneNameFields = []string{"name2", "proteinID"}

// Transcript is a read-only view over one annotation table row: the genomic
// description of one gene isoform. It is constructed once at load time and
// shared by every variant that refers to it.
type Transcript struct {
	Name       string
	GeneID     string
	Chrom      string
	PlusStrand bool

	cdsStart   int
	cdsEnd     int
	exonStarts []int
	exonEnds   []int
}

// NewTranscript builds a Transcript from one annotation row, keyed by column
// name. Returns an *InvalidAnnotationFileError when required columns are
// missing, the gene-id column is absent or ambiguous, or a coordinate column
// does not parse.
func NewTranscript(row map[string]string) (*Transcript, error) {
	var missing []string
	for _, field := range requiredFields {
		if _, ok := row[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &InvalidAnnotationFileError{
			Reason: fmt.Sprintf("missing required fields: %v", missing),
		}
	}

	var geneID string
	var geneFields []string
	for _, field := range geneNameFields {
		if value, ok := row[field]; ok {
			geneID = value
			geneFields = append(geneFields, field)
		}
	}
	if len(geneFields) != 1 {
		return nil, &InvalidAnnotationFileError{
			Reason: fmt.Sprintf("gene id fields %v, expected exactly one of %v",
				geneFields, geneNameFields),
		}
	}

	cdsStart, err := strconv.Atoi(row["cdsStart"])
	if err != nil {
		return nil, &InvalidAnnotationFileError{Reason: "cdsStart: " + err.Error()}
	}
	cdsEnd, err := strconv.Atoi(row["cdsEnd"])
	if err != nil {
		return nil, &InvalidAnnotationFileError{Reason: "cdsEnd: " + err.Error()}
	}
	exonStarts, err := parsePositions(row["exonStarts"])
	if err != nil {
		return nil, &InvalidAnnotationFileError{Reason: "exonStarts: " + err.Error()}
	}
	exonEnds, err := parsePositions(row["exonEnds"])
	if err != nil {
		return nil, &InvalidAnnotationFileError{Reason: "exonEnds: " + err.Error()}
	}
	if len(exonStarts) != len(exonEnds) {
		return nil, &InvalidAnnotationFileError{
			Reason: fmt.Sprintf("%d exon starts but %d exon ends",
				len(exonStarts), len(exonEnds)),
		}
	}
	for i := range exonStarts {
		if exonStarts[i] >= exonEnds[i] {
			return nil, &InvalidAnnotationFileError{
				Reason: fmt.Sprintf("exon %d is empty: [%d,%d)",
					i+1, exonStarts[i], exonEnds[i]),
			}
		}
	}

	return &Transcript{
		Name:       row["name"],
		GeneID:     geneID,
		Chrom:      strings.TrimPrefix(row["chrom"], "chr"),
		PlusStrand: row["strand"] == "+",
		cdsStart:   cdsStart,
		cdsEnd:     cdsEnd,
		exonStarts: exonStarts,
		exonEnds:   exonEnds,
	}, nil
}

// parsePositions splits a UCSC comma-separated position list ("20,30,40,")
// into ints, ignoring the trailing empty field.
func parsePositions(csv string) ([]int, error) {
	var positions []int
	for _, field := range strings.Split(csv, ",") {
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, err
		}
		positions = append(positions, n)
	}
	return positions, nil
}

// Exons returns the exons of the transcript in transcription order, so the
// first exon is always 5'-most: for minus-strand transcripts the genome-order
// list is reversed.
func (t *Transcript) Exons() []sequence.Range {
	exons := make([]sequence.Range, len(t.exonStarts))
	for i := range t.exonStarts {
		exons[i] = sequence.New(t.Chrom, t.exonStarts[i], t.exonEnds[i])
	}
	if !t.PlusStrand {
		reverseRanges(exons)
	}
	return exons
}

// CodingExons returns the exons in transcription order with the UTRs trimmed
// out: each exon is clipped to [cdsStart, cdsEnd) and exons entirely outside
// the CDS are dropped. An exon containing the whole CDS is clipped at both
// ends.
func (t *Transcript) CodingExons() []sequence.Range {
	var exons []sequence.Range
	for i := range t.exonStarts {
		start := max(t.exonStarts[i], t.cdsStart)
		end := min(t.exonEnds[i], t.cdsEnd)
		if start < end {
			exons = append(exons, sequence.New(t.Chrom, start, end))
		}
	}
	if !t.PlusStrand {
		reverseRanges(exons)
	}
	return exons
}

// Exon returns the exon at the 1-based transcription-order index. Returns a
// *NoFeatureError when the index is outside the transcript.
func (t *Transcript) Exon(index int) (sequence.Range, error) {
	exons := t.Exons()
	if index < 1 || index > len(exons) {
		return sequence.Range{}, &NoFeatureError{
			Transcript: t.Name, Index: index, Exons: len(exons),
		}
	}
	return exons[index-1], nil
}

// ExonCount returns the number of exons in the transcript.
func (t *Transcript) ExonCount() int {
	return len(t.exonStarts)
}

// Len returns the total number of coding nucleotides in the transcript.
func (t *Transcript) Len() int {
	length := 0
	for _, exon := range t.CodingExons() {
		length += exon.Len()
	}
	return length
}

// NucleotideIndex maps the 1-based index of a coding nucleotide to its
// 1-base genomic range, walking the coding exons in transcription order.
// Within a minus-strand exon nucleotides are counted right to left. Returns
// an *OutOfRangeError when the index exceeds the coding length.
func (t *Transcript) NucleotideIndex(index int) (sequence.Range, error) {
	coordinate, err := t.nucleotideCoordinate(index)
	if err != nil {
		return sequence.Range{}, err
	}
	return sequence.New(t.Chrom, coordinate, coordinate+1), nil
}

// nucleotideCoordinate returns the 0-based genomic coordinate of the 1-based
// coding nucleotide.
func (t *Transcript) nucleotideCoordinate(index int) (int, error) {
	if index >= 1 {
		offset := index - 1
		for _, exon := range t.CodingExons() {
			if offset < exon.Len() {
				if t.PlusStrand {
					return exon.Start + offset, nil
				}
				return exon.End - 1 - offset, nil
			}
			offset -= exon.Len()
		}
	}
	return 0, &OutOfRangeError{Transcript: t.Name, Index: index}
}

// CodonIndex maps a 1-based codon index to the 3-base genomic range of that
// codon: the first codon nucleotide (3i-2) is resolved and the window is
// widened to the strand-appropriate side. Minus-strand codons are flagged
// for reverse-complement extraction.
func (t *Transcript) CodonIndex(index int) (sequence.Range, error) {
	coordinate, err := t.nucleotideCoordinate(3*index - 2)
	if err != nil {
		return sequence.Range{}, err
	}
	if t.PlusStrand {
		return sequence.New(t.Chrom, coordinate, coordinate+3), nil
	}
	return sequence.NewReverse(t.Chrom, coordinate-2, coordinate+1), nil
}

// BaseIndex is the inverse of NucleotideIndex by linear scan: it returns the
// 1-based transcript offset of the 5'-most (in transcription order) base of
// the range. For an empty range it returns the offset of the base at the
// insertion point. Returns an *OutOfRangeError when no coding nucleotide
// falls in the range.
func (t *Transcript) BaseIndex(r sequence.Range) (int, error) {
	if r.Chrom == t.Chrom {
		target := -1
		if r.Start == r.End {
			// Insertion point: the base whose coordinate abuts the
			// empty range on the transcript's 5' side.
			if t.PlusStrand {
				target = r.Start
			} else {
				target = r.Start - 1
			}
		}
		index := 1
		for _, exon := range t.CodingExons() {
			for offset := 0; offset < exon.Len(); offset++ {
				coordinate := exon.Start + offset
				if !t.PlusStrand {
					coordinate = exon.End - 1 - offset
				}
				if coordinate == target ||
					(r.Start < r.End && coordinate >= r.Start && coordinate < r.End) {
					return index, nil
				}
				index++
			}
		}
	}
	return 0, &OutOfRangeError{Transcript: t.Name, Index: r.Start}
}

// TranscriptRange returns the genomic ranges covering the 1-based half-open
// transcript interval [start, end), in transcription order, condensed into
// maximal adjacent runs. The ranges span exon junctions when the interval
// does. Returns an *OutOfRangeError when the interval reaches outside the
// coding sequence.
func (t *Transcript) TranscriptRange(start, end int) ([]sequence.Range, error) {
	if start < 1 || start > end || end > t.Len()+1 {
		return nil, &OutOfRangeError{Transcript: t.Name, Index: start}
	}
	if start == end {
		return nil, nil
	}

	var ranges []sequence.Range
	offset := 0 // transcript bases before the current exon
	for _, exon := range t.CodingExons() {
		lo := max(start, offset+1)
		hi := min(end, offset+exon.Len()+1)
		if lo < hi {
			if t.PlusStrand {
				ranges = append(ranges, sequence.New(t.Chrom,
					exon.Start+(lo-offset-1),
					exon.Start+(hi-offset-1)))
			} else {
				ranges = append(ranges, sequence.New(t.Chrom,
					exon.End-(hi-offset-1),
					exon.End-(lo-offset-1)))
			}
		}
		offset += exon.Len()
	}
	return sequence.Condense(ranges...), nil
}

func reverseRanges(ranges []sequence.Range) {
	for i, j := 0, len(ranges)-1; i < j; i, j = i+1, j-1 {
		ranges[i], ranges[j] = ranges[j], ranges[i]
	}
}

// InvalidAnnotationFileError is returned when a gene table violates the
// format assumptions above. It is fatal: the run is aborted.
type InvalidAnnotationFileError struct {
	Reason string
}

func (e *InvalidAnnotationFileError) Error() string {
	return "invalid annotation file: " + e.Reason
}

// OutOfRangeError is returned when a base or codon index falls outside the
// coding sequence of a transcript.
type OutOfRangeError struct {
	Transcript string
	Index      int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("base %d is outside the range of transcript %q",
		e.Index, e.Transcript)
}

// NonFatal marks the error as recoverable: the candidate is skipped and
// processing continues.
func (e *OutOfRangeError) NonFatal() {}

// NoFeatureError is returned when an exon index is outside the transcript.
type NoFeatureError struct {
	Transcript string
	Index      int
	Exons      int
}

func (e *NoFeatureError) Error() string {
	return fmt.Sprintf("transcript %q has no exon %d (%d exons)",
		e.Transcript, e.Index, e.Exons)
}

// NonFatal marks the error as recoverable.
func (e *NoFeatureError) NonFatal() {}
