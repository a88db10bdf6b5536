package probe

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ahammel/probe-generator/internal/sequence"
)

// Genome point mutation: <chr>:<pos><ref>><mut>/<length>
//
// The reference and mutation bases may be '*' wildcards: a wildcard
// reference disables reference validation, a wildcard mutation expands to
// every base differing from the reference.
var snpRegex = regexp.MustCompile(
	`^\s*([a-zA-Z0-9.]+)\s*:\s*(\d+)\s*([ACGTacgt*])\s*>\s*([ACGTacgt*])` +
		`\s*/\s*(\d+)\s*(--.*)?$`)

// SnpProbe is a probe for a single-nucleotide mutation at an absolute
// genomic coordinate, buffered with flanking genome sequence.
type SnpProbe struct {
	chrom     string
	pos       int    // 1-based
	reference string // "" for a wildcard
	mutation  string
	length    int
	comment   string
}

type snpSpec struct {
	chrom     string
	pos       int
	reference string
	mutation  string
	length    int
	comment   string
}

func parseSnp(statement string) (*snpSpec, bool) {
	match := snpRegex.FindStringSubmatch(statement)
	if match == nil {
		return nil, false
	}
	pos, _ := strconv.Atoi(match[2])
	length, _ := strconv.Atoi(match[5])
	return &snpSpec{
		chrom:     match[1],
		pos:       pos,
		reference: match[3],
		mutation:  match[4],
		length:    length,
		comment:   match[6],
	}, true
}

// explodeSnp expands the wildcard mutation base, if any, and returns one
// probe per concrete mutation.
func explodeSnp(statement string, spec *snpSpec) ([]Probe, error) {
	if spec.length < 1 {
		return nil, &InvalidStatementError{
			Statement: statement, Reason: "probe length must be positive",
		}
	}

	reference := spec.reference
	if reference == "*" {
		reference = ""
	}

	var mutations []string
	if spec.mutation == "*" {
		for _, base := range []string{"a", "c", "g", "t"} {
			if !strings.EqualFold(base, reference) {
				mutations = append(mutations, base)
			}
		}
	} else {
		mutations = []string{spec.mutation}
	}

	probes := make([]Probe, 0, len(mutations))
	for _, mutation := range mutations {
		probes = append(probes, &SnpProbe{
			chrom:     spec.chrom,
			pos:       spec.pos,
			reference: reference,
			mutation:  mutation,
			length:    spec.length,
			comment:   spec.comment,
		})
	}
	return probes, nil
}

func (p *SnpProbe) String() string {
	reference := p.reference
	if reference == "" {
		reference = "*"
	}
	return fmt.Sprintf("%s:%d_%s>%s/%d%s",
		p.chrom, p.pos, reference, p.mutation, p.length, p.comment)
}

// Ranges centres the mutated base in the probe: the genomic-left flank
// receives the floor half of the buffer.
func (p *SnpProbe) Ranges() ([]sequence.Range, error) {
	left := (p.length - 1) / 2
	right := p.length - 1 - left
	start := p.pos - 1
	return []sequence.Range{
		sequence.New(p.chrom, start-left, start),
		sequence.NewMutant(p.chrom, start, start+1, p.reference, p.mutation, false),
		sequence.New(p.chrom, start+1, start+1+right),
	}, nil
}
