// Package variant computes the buffered sequence ranges of substitution
// variants: arbitrary-length replacements of a reference subsequence by a
// mutation subsequence, padded with flanking reference sequence to a
// requested total probe length.
package variant

import (
	"fmt"

	"github.com/ahammel/probe-generator/internal/annotation"
	"github.com/ahammel/probe-generator/internal/sequence"
)

// Variant describes one substitution on one transcript.
//
// Index is the minimal genomic range spanning the mutated bases (empty for a
// pure insertion). Reference and Mutation are in transcript sense (5'->3' of
// the gene); the mutation range produced by SequenceRanges carries the
// genomic-sense payload. Length is the total probe length, mutation plus
// flanks.
type Variant struct {
	Transcript *annotation.Transcript
	Index      sequence.Range
	Reference  string
	Mutation   string
	Length     int
}

func (v *Variant) init() error {
	if v.Length < len(v.Mutation) {
		return fmt.Errorf("probe length %d shorter than mutation %q",
			v.Length, v.Mutation)
	}
	return nil
}

// Coordinate returns the 1-based genomic coordinate of the variant start,
// used in probe headers.
func (v *Variant) Coordinate() int {
	return v.Index.Start + 1
}

// buffers returns the genomic-left and genomic-right flank lengths. The
// genomic-left flank always receives the floor half, for both variant kinds
// and all strands.
func (v *Variant) buffers() (left, right int) {
	total := v.Length - len(v.Mutation)
	left = total / 2
	return left, total - left
}

// mutationRange returns the range covering the mutated bases. The range is
// flagged for reverse-complement on minus-strand transcripts, which stores
// the payload in genomic sense and makes reference validation
// complement-aware.
func (v *Variant) mutationRange() sequence.Range {
	return sequence.NewMutant(
		v.Index.Chrom,
		v.Index.Start,
		v.Index.End,
		v.Reference,
		v.Mutation,
		!v.Transcript.PlusStrand,
	)
}

// GenomeVariant buffers the mutation with flanking bases taken directly from
// the surrounding genome sequence, with no exon awareness.
type GenomeVariant struct {
	Variant
}

// NewGenomeVariant builds a genome-buffered variant. Length must be at least
// the mutation length.
func NewGenomeVariant(t *annotation.Transcript, index sequence.Range,
	reference, mutation string, length int) (*GenomeVariant, error) {
	v := &GenomeVariant{Variant{t, index, reference, mutation, length}}
	if err := v.init(); err != nil {
		return nil, err
	}
	return v, nil
}

// SequenceRanges returns the flank, mutation, and flank ranges in ascending
// genomic order.
func (v *GenomeVariant) SequenceRanges() ([]sequence.Range, error) {
	left, right := v.buffers()
	return []sequence.Range{
		sequence.New(v.Index.Chrom, v.Index.Start-left, v.Index.Start),
		v.mutationRange(),
		sequence.New(v.Index.Chrom, v.Index.End, v.Index.End+right),
	}, nil
}

// TranscriptVariant buffers the mutation with flanking bases taken from the
// surrounding transcript sequence, so a flank continues into the next exon
// when the variant sits near an exon junction.
type TranscriptVariant struct {
	Variant
}

// NewTranscriptVariant builds a transcript-buffered variant. Length must be
// at least the mutation length.
func NewTranscriptVariant(t *annotation.Transcript, index sequence.Range,
	reference, mutation string, length int) (*TranscriptVariant, error) {
	v := &TranscriptVariant{Variant{t, index, reference, mutation, length}}
	if err := v.init(); err != nil {
		return nil, err
	}
	return v, nil
}

// SequenceRanges returns the flank, mutation, and flank ranges in ascending
// genomic order. Flanks are looked up in transcript coordinates, so they may
// contribute several genomic ranges each. On minus-strand transcripts the
// flank lengths are swapped before lookup and the list is reversed before
// return, keeping the output genome-ordered with the genomic-left flank at
// the floor length. A flank reaching outside the coding sequence fails with
// the transcript's OutOfRange error.
func (v *TranscriptVariant) SequenceRanges() ([]sequence.Range, error) {
	left, right := v.buffers()
	if !v.Transcript.PlusStrand {
		left, right = right, left
	}

	base, err := v.Transcript.BaseIndex(v.Index)
	if err != nil {
		return nil, err
	}
	referenceLen := v.Index.Len()

	upstream, err := v.Transcript.TranscriptRange(base-left, base)
	if err != nil {
		return nil, err
	}
	downstream, err := v.Transcript.TranscriptRange(
		base+referenceLen, base+referenceLen+right)
	if err != nil {
		return nil, err
	}

	ranges := make([]sequence.Range, 0, len(upstream)+len(downstream)+1)
	ranges = append(ranges, upstream...)
	ranges = append(ranges, v.mutationRange())
	ranges = append(ranges, downstream...)

	if !v.Transcript.PlusStrand {
		for i, j := 0, len(ranges)-1; i < j; i, j = i+1, j-1 {
			ranges[i], ranges[j] = ranges[j], ranges[i]
		}
	}
	return ranges, nil
}
