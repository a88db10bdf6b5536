// Package sequence provides the genomic range value type and DNA utilities.
package sequence

import "fmt"

// Range is a half-open, 0-based interval of base pairs on a chromosome.
//
// A Range may carry a mutation payload: at resolution time the genome slice
// under a mutant Range is replaced by the payload after validating the slice
// against the declared reference bases. Mutant is set even when the payload
// is empty (a pure deletion), which keeps deletions distinguishable from
// plain reference ranges.
type Range struct {
	Chrom     string
	Start     int
	End       int
	Reverse   bool // reverse-complement the slice on extraction
	Reference string
	Mutation  string
	Mutant    bool
}

// New returns a plain reference Range.
func New(chrom string, start, end int) Range {
	return Range{Chrom: chrom, Start: start, End: end}
}

// NewReverse returns a reference Range whose slice is reverse-complemented
// on extraction.
func NewReverse(chrom string, start, end int) Range {
	return Range{Chrom: chrom, Start: start, End: end, Reverse: true}
}

// NewMutant returns a Range carrying a mutation payload.
//
// When reverse is set the payload is stored already reverse-complemented, so
// the flag never re-transforms a stored mutation at read time. The reference
// is stored as declared; validation complements it on demand.
func NewMutant(chrom string, start, end int, reference, mutation string, reverse bool) Range {
	if reverse {
		mutation = ReverseComplement(mutation)
	}
	return Range{
		Chrom:     chrom,
		Start:     start,
		End:       end,
		Reverse:   reverse,
		Reference: reference,
		Mutation:  mutation,
		Mutant:    true,
	}
}

// Len returns the number of base pairs covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Adjacent reports whether one range ends where the other starts.
//
// The chromosome, mutation payload, and reverse-complement status must be
// equal for both ranges.
func (r Range) Adjacent(other Range) bool {
	return r.Chrom == other.Chrom &&
		r.Mutant == other.Mutant &&
		r.Mutation == other.Mutation &&
		r.Reverse == other.Reverse &&
		(r.Start == other.End || r.End == other.Start)
}

// Concat returns the combined genomic region of two adjacent ranges,
// preserving the mutation and reverse-complement tags of the receiver.
// Returns an *AdjacencyError if the ranges are not adjacent.
func (r Range) Concat(other Range) (Range, error) {
	if !r.Adjacent(other) {
		return Range{}, &AdjacencyError{A: r, B: other}
	}
	combined := r
	if r.End == other.Start {
		combined.End = other.End
	} else {
		combined.Start = other.Start
	}
	return combined, nil
}

// Condense folds a sequence of ranges into maximal runs of adjacent ranges,
// preserving order. Non-adjacent neighbours are left as separate ranges.
func Condense(ranges ...Range) []Range {
	if len(ranges) == 0 {
		return nil
	}
	condensed := make([]Range, 0, len(ranges))
	chunk := ranges[0]
	for _, r := range ranges[1:] {
		if chunk.Adjacent(r) {
			chunk, _ = chunk.Concat(r)
		} else {
			condensed = append(condensed, chunk)
			chunk = r
		}
	}
	return append(condensed, chunk)
}

// AdjacencyError is returned by Concat on non-adjacent input. It indicates a
// programming error in range construction and is always fatal.
type AdjacencyError struct {
	A, B Range
}

func (e *AdjacencyError) Error() string {
	return fmt.Sprintf("cannot concatenate non-adjacent ranges %v and %v", e.A, e.B)
}

func (r Range) String() string {
	tags := ""
	if r.Reverse {
		tags += ",rc"
	}
	if r.Mutant {
		tags += fmt.Sprintf(",%s>%s", r.Reference, r.Mutation)
	}
	return fmt.Sprintf("%s:[%d,%d)%s", r.Chrom, r.Start, r.End, tags)
}
