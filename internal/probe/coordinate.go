package probe

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/ahammel/probe-generator/internal/sequence"
)

// Coordinate pair: <chr>:<pos>(+|-)<n>/<chr>:<pos>(+|-)<n>
//
// <pos> is the 1-based breakpoint base; '+' keeps the n bases at and after
// it, '-' the n bases at and before it.
var coordinateRegex = regexp.MustCompile(
	`^\s*([a-zA-Z0-9.]+)\s*:\s*(\d+)\s*([+-])\s*(\d+)` +
		`\s*/\s*` +
		`([a-zA-Z0-9.]+)\s*:\s*(\d+)\s*([+-])\s*(\d+)\s*(--.*)?$`)

// CoordinateProbe is a probe for a fusion event given directly by the
// genomic coordinates of its two breakpoints. It needs no annotation.
type CoordinateProbe struct {
	first   sequence.Range
	second  sequence.Range
	comment string
}

// parseCoordinate parses a coordinate statement. The second return value is
// false when the statement does not match the coordinate grammar.
func parseCoordinate(statement string) (*CoordinateProbe, bool) {
	match := coordinateRegex.FindStringSubmatch(statement)
	if match == nil {
		return nil, false
	}
	first := coordinateBlock(match[1], match[2], match[3][0], match[4])
	second := coordinateBlock(match[5], match[6], match[7][0], match[8])
	// The first half's junction must end up at the right edge of its block
	// and the second half's at the left edge; a block whose junction sits
	// on the wrong edge is reverse-complemented.
	first.Reverse = junctionAtStart(match[3][0], true)
	second.Reverse = !junctionAtStart(match[7][0], true)
	return &CoordinateProbe{
		first:   first,
		second:  second,
		comment: match[9],
	}, true
}

// coordinateBlock converts a 1-based breakpoint plus a direction into a
// 0-based half-open range of n bases.
func coordinateBlock(chrom, posField string, side byte, nField string) sequence.Range {
	pos, _ := strconv.Atoi(posField)
	n, _ := strconv.Atoi(nField)
	if side == '+' {
		return sequence.New(chrom, pos-1, pos-1+n)
	}
	return sequence.New(chrom, pos-n, pos)
}

// String returns the breakpoint annotation of the probe: the 1-based far
// coordinate of the first block and near coordinate of the second.
func (p *CoordinateProbe) String() string {
	return fmt.Sprintf("%s:%d/%s:%d%s",
		p.first.Chrom, p.first.End,
		p.second.Chrom, p.second.Start+1,
		p.comment)
}

// Ranges returns the two breakpoint-adjacent blocks in probe order.
func (p *CoordinateProbe) Ranges() ([]sequence.Range, error) {
	return []sequence.Range{p.first, p.second}, nil
}
