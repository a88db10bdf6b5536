package probe

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/ahammel/probe-generator/internal/annotation"
	"github.com/ahammel/probe-generator/internal/sequence"
)

// Exon fusion:
// <gene>#exon[<n|*>](+|-|*)<n|*>(/|->)<gene>#exon[<n|*>](+|-|*)<n|*>
//
// Each half names an exon, the side of the exon holding the fusion junction
// ('+' for the transcription start, '-' for the end), and the number of
// junction-adjacent bases to keep ('*' keeps the whole exon). Wildcard exon
// numbers and sides are expanded over all possibilities. The '->'
// read-through separator marks a fusion annotated in transcription order.
var exonHalf = `([a-zA-Z0-9_.-]+)\s*#\s*exon\s*\[\s*(\d+|\*)\s*\]\s*([-+*])\s*(\d+|\*)`

var exonRegex = regexp.MustCompile(
	`^\s*` + exonHalf + `\s*(/|->)\s*` + exonHalf + `\s*(--.*)?$`)

// ExonProbe is a probe for a fusion of two exons, one per fully-expanded
// combination of transcripts, sides, and exon numbers.
type ExonProbe struct {
	spec        *exonSpec
	exon1       int
	side1       byte
	exon2       int
	side2       byte
	transcript1 string
	transcript2 string
	first       sequence.Range
	second      sequence.Range
	breakpoint1 string
	breakpoint2 string
}

type exonSpec struct {
	gene1     string
	exon1     string // number or "*"
	side1     string // "+", "-", or "*"
	bases1    string // number or "*"
	separator string
	gene2     string
	exon2     string
	side2     string
	bases2    string
	comment   string
}

func parseExon(statement string) (*exonSpec, bool) {
	match := exonRegex.FindStringSubmatch(statement)
	if match == nil {
		return nil, false
	}
	return &exonSpec{
		gene1:     match[1],
		exon1:     match[2],
		side1:     match[3],
		bases1:    match[4],
		separator: match[5],
		gene2:     match[6],
		exon2:     match[7],
		side2:     match[8],
		bases2:    match[9],
		comment:   match[10],
	}, true
}

// explodeExon expands wildcard sides and exon numbers over every transcript
// pair of the two genes, deduplicating by the coordinates and sides of both
// halves.
func (g *Generator) explodeExon(statement string, spec *exonSpec) ([]Probe, error) {
	var probes []Probe
	seen := map[exonDedupKey]bool{}

	for _, t1 := range g.table.LookupGene(spec.gene1) {
		for _, t2 := range g.table.LookupGene(spec.gene2) {
			for _, exon1 := range expandExonNumber(spec.exon1, t1) {
				for _, side1 := range expandSide(spec.side1) {
					for _, exon2 := range expandExonNumber(spec.exon2, t2) {
						for _, side2 := range expandSide(spec.side2) {
							probe, err := concreteExonProbe(
								spec, t1, t2, exon1, side1, exon2, side2)
							if err != nil {
								g.warn(statement, t1.Name+"/"+t2.Name, err)
								continue
							}
							key := probe.dedupKey()
							if seen[key] {
								continue
							}
							seen[key] = true
							probes = append(probes, probe)
						}
					}
				}
			}
		}
	}
	return probes, nil
}

// expandExonNumber expands a wildcard exon number to 1..exonCount.
func expandExonNumber(field string, t *annotation.Transcript) []int {
	if field == "*" {
		numbers := make([]int, t.ExonCount())
		for i := range numbers {
			numbers[i] = i + 1
		}
		return numbers
	}
	n, _ := strconv.Atoi(field)
	return []int{n}
}

// expandSide expands a wildcard side to both sides.
func expandSide(field string) []byte {
	if field == "*" {
		return []byte{'+', '-'}
	}
	return []byte{field[0]}
}

// concreteExonProbe resolves one fully-concrete combination against the
// annotation, computing the retained blocks, their orientations, and the
// breakpoint annotations.
func concreteExonProbe(spec *exonSpec,
	t1, t2 *annotation.Transcript, exon1 int, side1 byte, exon2 int, side2 byte,
) (*ExonProbe, error) {
	exonRange1, err := t1.Exon(exon1)
	if err != nil {
		return nil, err
	}
	exonRange2, err := t2.Exon(exon2)
	if err != nil {
		return nil, err
	}

	junction1 := junctionAtStart(side1, t1.PlusStrand)
	junction2 := junctionAtStart(side2, t2.PlusStrand)

	first := exonBlock(exonRange1, spec.bases1, junction1)
	second := exonBlock(exonRange2, spec.bases2, junction2)
	// The first half's junction belongs at the right edge of its block, the
	// second half's at the left edge.
	first.Reverse = junction1
	second.Reverse = !junction2

	breakpoint1 := breakpoint(first, junction1)
	breakpoint2 := breakpoint(second, junction2)
	if spec.separator == "->" && !t1.PlusStrand {
		breakpoint1, breakpoint2 = breakpoint2, breakpoint1
	}

	return &ExonProbe{
		spec:        spec,
		exon1:       exon1,
		side1:       side1,
		exon2:       exon2,
		side2:       side2,
		transcript1: t1.Name,
		transcript2: t2.Name,
		first:       first,
		second:      second,
		breakpoint1: breakpoint1,
		breakpoint2: breakpoint2,
	}, nil
}

// exonBlock returns the junction-adjacent block of the exon: the whole exon
// for '*' bases, otherwise n bases clamped to the exon.
func exonBlock(exon sequence.Range, bases string, junctionStart bool) sequence.Range {
	if bases == "*" {
		return exon
	}
	n, _ := strconv.Atoi(bases)
	if n >= exon.Len() {
		return exon
	}
	if junctionStart {
		return sequence.New(exon.Chrom, exon.Start, exon.Start+n)
	}
	return sequence.New(exon.Chrom, exon.End-n, exon.End)
}

// breakpoint returns the 1-based coordinate of the block's junction base.
func breakpoint(block sequence.Range, junctionStart bool) string {
	if junctionStart {
		return fmt.Sprintf("%s:%d", block.Chrom, block.Start+1)
	}
	return fmt.Sprintf("%s:%d", block.Chrom, block.End)
}

type exonDedupKey struct {
	chrom1       string
	start1, end1 int
	side1        byte
	chrom2       string
	start2, end2 int
	side2        byte
}

func (p *ExonProbe) dedupKey() exonDedupKey {
	return exonDedupKey{
		chrom1: p.first.Chrom, start1: p.first.Start, end1: p.first.End, side1: p.side1,
		chrom2: p.second.Chrom, start2: p.second.Start, end2: p.second.End, side2: p.side2,
	}
}

func (p *ExonProbe) String() string {
	return fmt.Sprintf("%s#exon[%d]%c%s%s%s#exon[%d]%c%s_%s/%s_%s_%s%s",
		p.spec.gene1, p.exon1, p.side1, p.spec.bases1,
		p.spec.separator,
		p.spec.gene2, p.exon2, p.side2, p.spec.bases2,
		p.breakpoint1, p.breakpoint2,
		p.transcript1, p.transcript2,
		p.spec.comment)
}

// Ranges returns the two fusion blocks in probe order.
func (p *ExonProbe) Ranges() ([]sequence.Range, error) {
	return []sequence.Range{p.first, p.second}, nil
}
