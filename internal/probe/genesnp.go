package probe

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/ahammel/probe-generator/internal/annotation"
	"github.com/ahammel/probe-generator/internal/sequence"
	"github.com/ahammel/probe-generator/internal/variant"
)

// Transcript point mutation: <gene>:c.<pos><ref>><mut>[ [trans]]/<length>
//
// <pos> is the 1-based index of the mutated nucleotide in the coding
// sequence of the gene. With [trans] the flanks follow the spliced
// transcript sequence instead of the genome.
var geneSnpRegex = regexp.MustCompile(
	`^\s*([a-zA-Z0-9_.-]+)\s*:\s*c\.(\d+)\s*([ACGTacgt])\s*>\s*([ACGTacgt])` +
		`\s*(\[trans\])?\s*/\s*(\d+)\s*(--.*)?$`)

// GeneSnpProbe is a probe for a single-nucleotide mutation at a coordinate
// given relative to the start of a transcript's coding sequence.
type GeneSnpProbe struct {
	gene       string
	base       int
	reference  string
	mutation   string
	trans      string
	length     int
	comment    string
	transcript string
	variant    sequenceRanger
	index      sequence.Range
}

// sequenceRanger is satisfied by both variant kinds.
type sequenceRanger interface {
	SequenceRanges() ([]sequence.Range, error)
}

type geneSnpSpec struct {
	gene      string
	base      int
	reference string
	mutation  string
	trans     string
	length    int
	comment   string
}

func parseGeneSnp(statement string) (*geneSnpSpec, bool) {
	match := geneSnpRegex.FindStringSubmatch(statement)
	if match == nil {
		return nil, false
	}
	base, _ := strconv.Atoi(match[2])
	length, _ := strconv.Atoi(match[6])
	return &geneSnpSpec{
		gene:      match[1],
		base:      base,
		reference: match[3],
		mutation:  match[4],
		trans:     match[5],
		length:    length,
		comment:   match[7],
	}, true
}

// explodeGeneSnp expands a transcript point mutation over every transcript
// of the gene, deduplicating by genomic coordinate.
func (g *Generator) explodeGeneSnp(statement string, spec *geneSnpSpec) ([]Probe, error) {
	var probes []Probe
	seen := map[dedupKey]bool{}

	for _, transcript := range g.table.LookupGene(spec.gene) {
		index, err := transcript.NucleotideIndex(spec.base)
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
		probes = append(probes, &GeneSnpProbe{
			gene:       spec.gene,
			base:       spec.base,
			reference:  spec.reference,
			mutation:   spec.mutation,
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

// newVariant builds the variant kind selected by the [trans] marker.
func newVariant(trans bool, t *annotation.Transcript, index sequence.Range,
	reference, mutation string, length int) (sequenceRanger, error) {
	if trans {
		return variant.NewTranscriptVariant(t, index, reference, mutation, length)
	}
	return variant.NewGenomeVariant(t, index, reference, mutation, length)
}

func (p *GeneSnpProbe) String() string {
	return fmt.Sprintf("%s:c.%d%s>%s%s/%d_%s_%s:%d%s",
		p.gene, p.base, p.reference, p.mutation, p.trans, p.length,
		p.transcript, p.index.Chrom, p.index.Start+1, p.comment)
}

// Ranges delegates to the variant's buffer computation.
func (p *GeneSnpProbe) Ranges() ([]sequence.Range, error) {
	return p.variant.SequenceRanges()
}
