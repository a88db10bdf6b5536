// Package probe parses probe statements, expands them against a gene
// annotation table, and resolves the resulting probes to nucleotide
// sequences against a reference genome.
package probe

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ahammel/probe-generator/internal/genome"
	"github.com/ahammel/probe-generator/internal/sequence"
)

// Probe is one fully-expanded probe candidate: a stringification contract
// (the canonical re-serialization of its statement plus derived annotations,
// used as the FASTA header) and the ordered genomic ranges whose bases are
// concatenated into the probe sequence.
type Probe interface {
	String() string
	Ranges() ([]sequence.Range, error)
}

// Resolve concatenates the bases of the probe's ranges against the
// reference genome.
//
// Plain ranges are sliced from the genome and reverse-complemented when
// flagged. Mutant ranges are first validated: the genome slice must
// case-insensitively equal the declared reference (complemented when the
// range is flagged for reverse extraction), failing with a non-fatal
// *ReferenceMismatchError; the stored mutation payload is then emitted in
// place of the slice.
func Resolve(g *genome.Genome, p Probe) (string, error) {
	ranges, err := p.Ranges()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, r := range ranges {
		bases, err := g.Bases(r.Chrom, r.Start, r.End)
		if err != nil {
			return "", err
		}
		switch {
		case r.Mutant:
			if r.Reference != "" {
				want := r.Reference
				if r.Reverse {
					want = sequence.ReverseComplement(want)
				}
				if !strings.EqualFold(bases, want) {
					return "", &ReferenceMismatchError{
						Probe: p.String(), Range: r, Want: want, Got: bases,
					}
				}
			}
			b.WriteString(r.Mutation)
		case r.Reverse:
			b.WriteString(sequence.ReverseComplement(bases))
		default:
			b.WriteString(bases)
		}
	}
	return b.String(), nil
}

// nonFatal is implemented by error types which signal that, although one
// probe candidate cannot be resolved, processing of its siblings should
// continue.
type nonFatal interface {
	NonFatal()
}

// IsNonFatal reports whether the error (or any error it wraps) marks a
// recoverable per-candidate failure rather than a fatal one.
func IsNonFatal(err error) bool {
	var nf nonFatal
	return errors.As(err, &nf)
}

// InvalidStatementError is returned when a probe statement matches no
// grammar, or matches one but is semantically unusable. It aborts that one
// statement.
type InvalidStatementError struct {
	Statement string
	Reason    string
}

func (e *InvalidStatementError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("could not parse statement %q", e.Statement)
	}
	return fmt.Sprintf("invalid statement %q: %s", e.Statement, e.Reason)
}

// ReferenceMismatchError is returned when the declared reference bases of a
// mutation do not match the reference genome at the mutation range.
type ReferenceMismatchError struct {
	Probe string
	Range sequence.Range
	Want  string
	Got   string
}

func (e *ReferenceMismatchError) Error() string {
	return fmt.Sprintf("reference %q does not match genome %q at %v in probe %s",
		e.Want, e.Got, e.Range, e.Probe)
}

// NonFatal marks the error as recoverable.
func (e *ReferenceMismatchError) NonFatal() {}

// DiscontinuousIndelError is returned when the region deleted by an indel
// statement spans an exon junction, so no single genomic range covers it.
type DiscontinuousIndelError struct {
	Transcript string
	Ranges     []sequence.Range
}

func (e *DiscontinuousIndelError) Error() string {
	return fmt.Sprintf("indel region of transcript %q crosses an exon junction: %v",
		e.Transcript, e.Ranges)
}

// NonFatal marks the error as recoverable.
func (e *DiscontinuousIndelError) NonFatal() {}
