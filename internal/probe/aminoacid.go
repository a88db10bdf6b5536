package probe

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ahammel/probe-generator/internal/sequence"
)

// Amino-acid substitution: <gene>:<aa><codon><aa>[ [trans]]/<length>
//
// The reference amino acid is an IUPAC single-letter code or '*' (stop); the
// mutation additionally accepts 'X' (any codon). Both are expanded to their
// degenerate codon sets.
var aminoAcidRegex = regexp.MustCompile(
	`^\s*([a-zA-Z0-9_.-]+)\s*:\s*([ACDEFGHIKLMNPQRSTVWYacdefghiklmnpqrstvwy*])` +
		`\s*(\d+)\s*([ACDEFGHIKLMNPQRSTVWXYacdefghiklmnpqrstvwxy*])` +
		`\s*(\[trans\])?\s*/\s*(\d+)\s*(--.*)?$`)

// AminoAcidProbe is a probe for a codon substitution given as an amino-acid
// change, one per (reference codon, mutation codon) candidate pair.
type AminoAcidProbe struct {
	gene         string
	referenceAA  string
	codon        int
	mutationAA   string
	referenceSeq string
	mutationSeq  string
	trans        string
	length       int
	comment      string
	transcript   string
	variant      sequenceRanger
	index        sequence.Range
}

type aminoAcidSpec struct {
	gene        string
	referenceAA string
	codon       int
	mutationAA  string
	trans       string
	length      int
	comment     string
}

func parseAminoAcid(statement string) (*aminoAcidSpec, bool) {
	match := aminoAcidRegex.FindStringSubmatch(statement)
	if match == nil {
		return nil, false
	}
	codon, _ := strconv.Atoi(match[3])
	length, _ := strconv.Atoi(match[6])
	return &aminoAcidSpec{
		gene:        match[1],
		referenceAA: match[2],
		codon:       codon,
		mutationAA:  match[4],
		trans:       match[5],
		length:      length,
		comment:     match[7],
	}, true
}

// explodeAminoAcid takes the Cartesian product of the gene's transcripts,
// the reference amino acid's codons, and the mutation amino acid's codons.
// Mutation codons still encoding the reference amino acid are excluded: a
// mutation must change the protein.
func (g *Generator) explodeAminoAcid(statement string, spec *aminoAcidSpec) ([]Probe, error) {
	referenceCodons := sequence.Codons(spec.referenceAA[0])
	mutationCodons := mutationCodons(spec.mutationAA[0], spec.referenceAA[0])

	var probes []Probe
	seen := map[dedupKey]bool{}

	for _, transcript := range g.table.LookupGene(spec.gene) {
		index, err := transcript.CodonIndex(spec.codon)
		if err != nil {
			g.warn(statement, transcript.Name, err)
			continue
		}

		for _, reference := range referenceCodons {
			for _, mutation := range mutationCodons {
				key := dedupKey{
					chrom: index.Chrom, start: index.Start, end: index.End,
					plusStrand: transcript.PlusStrand,
					reference:  reference, mutation: mutation,
				}
				if seen[key] {
					continue
				}
				seen[key] = true

				v, err := newVariant(spec.trans != "", transcript, index,
					reference, mutation, spec.length)
				if err != nil {
					return nil, &InvalidStatementError{
						Statement: statement, Reason: err.Error(),
					}
				}
				probes = append(probes, &AminoAcidProbe{
					gene:         spec.gene,
					referenceAA:  spec.referenceAA,
					codon:        spec.codon,
					mutationAA:   spec.mutationAA,
					referenceSeq: reference,
					mutationSeq:  mutation,
					trans:        spec.trans,
					length:       spec.length,
					comment:      spec.comment,
					transcript:   transcript.Name,
					variant:      v,
					index:        index,
				})
			}
		}
	}
	return probes, nil
}

// mutationCodons returns the codons of the mutation amino acid, excluding
// those that encode the reference amino acid.
func mutationCodons(mutationAA, referenceAA byte) []string {
	reference := strings.ToUpper(string(referenceAA))[0]
	var codons []string
	for _, codon := range sequence.Codons(mutationAA) {
		if sequence.TranslateCodon(codon) != reference {
			codons = append(codons, codon)
		}
	}
	return codons
}

func (p *AminoAcidProbe) String() string {
	return fmt.Sprintf("%s:%s%d%s(%s>%s)%s/%d_%s_%s:%d%s",
		p.gene, p.referenceAA, p.codon, p.mutationAA,
		p.referenceSeq, p.mutationSeq, p.trans, p.length,
		p.transcript, p.index.Chrom, p.index.Start+1, p.comment)
}

// Ranges delegates to the variant's buffer computation.
func (p *AminoAcidProbe) Ranges() ([]sequence.Range, error) {
	return p.variant.SequenceRanges()
}
