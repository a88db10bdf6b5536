package probe

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ahammel/probe-generator/internal/sequence"
)

// Amino-acid range indel:
// <gene>:[del]<aa><codon>-<aa><codon>[ins<aa...>][ [trans]]/<length>
//
// With "del" the codon range is deleted and replaced by the insertion
// peptide (if any); without it the insertion peptide is inserted between the
// two flanking amino acids, which are kept. The reference peptide covers the
// whole codon range, with interior positions wildcarded to 'X'.
var aminoAcidIndelRegex = regexp.MustCompile(
	`^\s*([a-zA-Z0-9_.-]+)\s*:\s*(del)?\s*` +
		`([ACDEFGHIKLMNPQRSTVWYacdefghiklmnpqrstvwy*])\s*(\d+)` +
		`\s*-\s*` +
		`([ACDEFGHIKLMNPQRSTVWYacdefghiklmnpqrstvwy*])\s*(\d+)` +
		`\s*(ins\s*[ACDEFGHIKLMNPQRSTVWYacdefghiklmnpqrstvwy*]+)?` +
		`\s*(\[trans\])?\s*/\s*(\d+)\s*(--.*)?$`)

// AminoAcidIndelProbe is a probe for an insertion/deletion event given as a
// range of amino acids, one per (reference sequence, mutation sequence)
// candidate pair from degenerate reverse translation.
type AminoAcidIndelProbe struct {
	gene         string
	leftCodon    int
	referenceSeq string
	mutationSeq  string
	trans        string
	length       int
	comment      string
	transcript   string
	variant      sequenceRanger
	index        sequence.Range
}

type aminoAcidIndelSpec struct {
	gene       string
	deletion   bool
	leftAA     string
	leftCodon  int
	rightAA    string
	rightCodon int
	insertion  string // inserted peptide, "" if none
	trans      string
	length     int
	comment    string
}

func parseAminoAcidIndel(statement string) (*aminoAcidIndelSpec, bool) {
	match := aminoAcidIndelRegex.FindStringSubmatch(statement)
	if match == nil {
		return nil, false
	}
	leftCodon, _ := strconv.Atoi(match[4])
	rightCodon, _ := strconv.Atoi(match[6])
	length, _ := strconv.Atoi(match[9])
	return &aminoAcidIndelSpec{
		gene:       match[1],
		deletion:   match[2] != "",
		leftAA:     strings.ToUpper(match[3]),
		leftCodon:  leftCodon,
		rightAA:    strings.ToUpper(match[5]),
		rightCodon: rightCodon,
		insertion:  strings.ToUpper(stripSpace(strings.TrimPrefix(stripSpace(match[7]), "ins"))),
		trans:      match[8],
		length:     length,
		comment:    match[10],
	}, true
}

// explodeAminoAcidIndel reverse-translates the reference and mutation
// peptides and takes the Cartesian product of the gene's transcripts and
// both degenerate sequence sets.
func (g *Generator) explodeAminoAcidIndel(statement string, spec *aminoAcidIndelSpec) ([]Probe, error) {
	if !spec.deletion && spec.insertion == "" {
		return nil, &InvalidStatementError{
			Statement: statement, Reason: "indel requires del or an insertion",
		}
	}
	if spec.rightCodon <= spec.leftCodon {
		return nil, &InvalidStatementError{
			Statement: statement,
			Reason: fmt.Sprintf("codon range %d-%d is not ascending",
				spec.leftCodon, spec.rightCodon),
		}
	}

	gap := spec.rightCodon - spec.leftCodon - 1
	referencePeptide := spec.leftAA + strings.Repeat("X", gap) + spec.rightAA
	mutationPeptide := spec.insertion
	if !spec.deletion {
		mutationPeptide = spec.leftAA + spec.insertion + spec.rightAA
	}

	referenceSeqs := sequence.ReverseTranslate(referencePeptide)
	mutationSeqs := sequence.ReverseTranslate(mutationPeptide)

	var probes []Probe
	seen := map[dedupKey]bool{}

	for _, transcript := range g.table.LookupGene(spec.gene) {
		index, err := indelRegion(transcript, 3*spec.leftCodon-2, 3*len(referencePeptide))
		if err != nil {
			g.warn(statement, transcript.Name, err)
			continue
		}

		for _, reference := range referenceSeqs {
			for _, mutation := range mutationSeqs {
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
				probes = append(probes, &AminoAcidIndelProbe{
					gene:         spec.gene,
					leftCodon:    spec.leftCodon,
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

func (p *AminoAcidIndelProbe) String() string {
	return fmt.Sprintf("%s:%d.%s%s(%s%s)%s/%d_%s_%s:%d%s",
		p.gene, p.leftCodon,
		tagged("del", sequence.Translate(p.referenceSeq)),
		tagged("ins", sequence.Translate(p.mutationSeq)),
		tagged("del", p.referenceSeq),
		tagged("ins", p.mutationSeq),
		p.trans, p.length,
		p.transcript, p.index.Chrom, p.index.Start+1, p.comment)
}

// tagged prefixes a non-empty sequence with its del/ins tag.
func tagged(tag, seq string) string {
	if seq == "" {
		return ""
	}
	return tag + seq
}

// Ranges delegates to the variant's buffer computation.
func (p *AminoAcidIndelProbe) Ranges() ([]sequence.Range, error) {
	return p.variant.SequenceRanges()
}
