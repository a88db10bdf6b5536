package probe

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ahammel/probe-generator/internal/annotation"
	"github.com/ahammel/probe-generator/internal/sequence"
)

// Transcript indel: <gene>:c.<pos>[del<seq>][ins<seq>][ [trans]]/<length>
//
// At least one of the deletion and the insertion must be present. The
// deleted bases and the inserted bases are given in transcript sense.
var geneIndelRegex = regexp.MustCompile(
	`^\s*([a-zA-Z0-9_.-]+)\s*:\s*c\.(\d+)` +
		`\s*(del\s*[ACGTacgt]+)?\s*(ins\s*[ACGTacgt]+)?` +
		`\s*(\[trans\])?\s*/\s*(\d+)\s*(--.*)?$`)

// GeneIndelProbe is a probe for an insertion/deletion event starting at a
// nucleotide given relative to the start of a transcript's coding sequence.
type GeneIndelProbe struct {
	gene       string
	base       int
	deletion   string // "delACGT" or ""
	insertion  string // "insACGT" or ""
	trans      string
	length     int
	comment    string
	transcript string
	variant    sequenceRanger
	index      sequence.Range
}

type geneIndelSpec struct {
	gene      string
	base      int
	deletion  string
	insertion string
	reference string // deleted bases
	mutation  string // inserted bases
	trans     string
	length    int
	comment   string
}

func parseGeneIndel(statement string) (*geneIndelSpec, bool) {
	match := geneIndelRegex.FindStringSubmatch(statement)
	if match == nil {
		return nil, false
	}
	base, _ := strconv.Atoi(match[2])
	length, _ := strconv.Atoi(match[6])
	deletion := stripSpace(match[3])
	insertion := stripSpace(match[4])
	return &geneIndelSpec{
		gene:      match[1],
		base:      base,
		deletion:  deletion,
		insertion: insertion,
		reference: strings.TrimPrefix(deletion, "del"),
		mutation:  strings.TrimPrefix(insertion, "ins"),
		trans:     match[5],
		length:    length,
		comment:   match[7],
	}, true
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// explodeGeneIndel expands a transcript indel over every transcript of the
// gene. The deleted region must map to one contiguous genomic range;
// candidates whose region crosses an exon junction are skipped with a
// warning.
func (g *Generator) explodeGeneIndel(statement string, spec *geneIndelSpec) ([]Probe, error) {
	if spec.deletion == "" && spec.insertion == "" {
		return nil, &InvalidStatementError{
			Statement: statement, Reason: "indel requires a deletion or an insertion",
		}
	}

	var probes []Probe
	seen := map[dedupKey]bool{}

	for _, transcript := range g.table.LookupGene(spec.gene) {
		index, err := indelRegion(transcript, spec.base, len(spec.reference))
		if err != nil {
			g.warn(statement, transcript.Name, err)
			continue
		}

		key := dedupKey{
			chrom: index.Chrom, start: index.Start, end: index.End,
			plusStrand: transcript.PlusStrand,
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		v, err := newVariant(spec.trans != "", transcript, index,
			spec.reference, spec.mutation, spec.length)
		if err != nil {
			return nil, &InvalidStatementError{Statement: statement, Reason: err.Error()}
		}
		probes = append(probes, &GeneIndelProbe{
			gene:       spec.gene,
			base:       spec.base,
			deletion:   spec.deletion,
			insertion:  spec.insertion,
			trans:      spec.trans,
			length:     spec.length,
			comment:    spec.comment,
			transcript: transcript.Name,
			variant:    v,
			index:      index,
		})
	}
	return probes, nil
}

// indelRegion returns the minimal genomic range spanning referenceLen
// transcript bases starting at the 1-based coding nucleotide base. For a
// pure insertion (referenceLen == 0) it returns the empty range at the
// insertion point, between base-1 and base in transcript order.
func indelRegion(t *annotation.Transcript, base, referenceLen int) (sequence.Range, error) {
	if referenceLen == 0 {
		point, err := t.NucleotideIndex(base)
		if err != nil {
			return sequence.Range{}, err
		}
		if t.PlusStrand {
			return sequence.New(t.Chrom, point.Start, point.Start), nil
		}
		return sequence.New(t.Chrom, point.Start+1, point.Start+1), nil
	}

	ranges, err := t.TranscriptRange(base, base+referenceLen)
	if err != nil {
		return sequence.Range{}, err
	}
	if len(ranges) != 1 {
		return sequence.Range{}, &DiscontinuousIndelError{
			Transcript: t.Name, Ranges: ranges,
		}
	}
	return ranges[0], nil
}

func (p *GeneIndelProbe) String() string {
	return fmt.Sprintf("%s:c.%d%s%s%s/%d_%s_%s:%d%s",
		p.gene, p.base, p.deletion, p.insertion, p.trans, p.length,
		p.transcript, p.index.Chrom, p.index.Start+1, p.comment)
}

// Ranges delegates to the variant's buffer computation.
func (p *GeneIndelProbe) Ranges() ([]sequence.Range, error) {
	return p.variant.SequenceRanges()
}
