package probe

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ahammel/probe-generator/internal/annotation"
	"github.com/ahammel/probe-generator/internal/genome"
	"github.com/ahammel/probe-generator/internal/sequence"
)

const testFasta = `>1
acgtacgt
>2
aaaagggg
`

// testAnnotation covers the transcript shapes the probe grammars exercise:
// a plus-strand CDS offset by one base (FOO, with FOO2 an identical isoform
// for deduplication), a spliced transcript (SP1), a minus-strand transcript
// (M1), and a fusion pair (L1/R1).
const testAnnotation = `#name	name2	chrom	strand	exonStarts	exonEnds	cdsStart	cdsEnd
FOO	ABC	chr1	+	0,	8,	1	8
FOO2	ABC	chr1	+	0,	8,	1	8
SP1	SPL	chr1	+	0,4,	2,8,	0	8
M1	MIN	chr2	-	0,	8,	0	8
L1	LEFT	chr1	+	0,6,	4,8,	0	8
R1	RIGHT	chr2	+	0,	8,	0	8
`

func testGenome(t *testing.T) *genome.Genome {
	t.Helper()
	g, err := genome.Load(strings.NewReader(testFasta))
	require.NoError(t, err, "loading test genome")
	return g
}

func testGenerator(t *testing.T) *Generator {
	t.Helper()
	table := annotation.NewTable()
	require.NoError(t, table.ReadFrom(strings.NewReader(testAnnotation)),
		"loading test annotation")
	return NewGenerator(table)
}

// explode expands one statement, failing the test on statement errors.
func explode(t *testing.T, statement string) []Probe {
	t.Helper()
	probes, err := testGenerator(t).Explode(statement)
	require.NoError(t, err, "exploding %q", statement)
	return probes
}

// resolveOne expands a statement expected to produce a single probe and
// resolves it.
func resolveOne(t *testing.T, statement string) (header, seq string) {
	t.Helper()
	probes := explode(t, statement)
	require.Len(t, probes, 1, "probes for %q", statement)
	seq, err := Resolve(testGenome(t), probes[0])
	require.NoError(t, err, "resolving %q", statement)
	return probes[0].String(), seq
}

// rangesProbe is a probe over fixed ranges, for testing Resolve directly.
type rangesProbe []sequence.Range

func (p rangesProbe) String() string { return "test probe" }

func (p rangesProbe) Ranges() ([]sequence.Range, error) { return p, nil }

func TestResolve(t *testing.T) {
	g := testGenome(t)

	tests := []struct {
		name   string
		ranges rangesProbe
		want   string
	}{
		{
			"plain ranges concatenate",
			rangesProbe{sequence.New("1", 0, 4), sequence.New("2", 4, 8)},
			"acgtgggg",
		},
		{
			"reverse range is reverse-complemented",
			rangesProbe{sequence.NewReverse("1", 0, 4)},
			"acgt",
		},
		{
			"mutant range validates and substitutes",
			rangesProbe{
				sequence.New("1", 0, 2),
				sequence.NewMutant("1", 2, 3, "g", "t", false),
				sequence.New("1", 3, 5),
			},
			"actta",
		},
		{
			"empty reference skips validation",
			rangesProbe{sequence.NewMutant("2", 0, 1, "", "t", false)},
			"t",
		},
		{
			"reverse mutant validates against the complement",
			// Genome has 'g' at 2:6; transcript-sense reference 'c'
			// complements to it, payload is stored in genomic sense.
			rangesProbe{sequence.NewMutant("2", 6, 7, "c", "a", true)},
			"t",
		},
		{
			"deletion emits nothing",
			rangesProbe{
				sequence.New("1", 0, 2),
				sequence.NewMutant("1", 2, 4, "gt", "", false),
				sequence.New("1", 4, 6),
			},
			"acac",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(g, tt.ranges)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestResolveReferenceMismatch(t *testing.T) {
	g := testGenome(t)

	_, err := Resolve(g, rangesProbe{sequence.NewMutant("1", 2, 3, "a", "t", false)})
	var mismatch *ReferenceMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.True(t, IsNonFatal(err))

	// Complement-aware: genomic 'g' at 1:2, transcript-sense 'g' does not
	// complement to it.
	_, err = Resolve(g, rangesProbe{sequence.NewMutant("1", 2, 3, "g", "t", true)})
	require.ErrorAs(t, err, &mismatch)
}

func TestResolveMissingChromosome(t *testing.T) {
	g := testGenome(t)

	_, err := Resolve(g, rangesProbe{sequence.New("17", 0, 4)})
	var missing *genome.MissingChromosomeError
	require.ErrorAs(t, err, &missing)
	require.True(t, IsNonFatal(err))
}

func TestIsNonFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"reference mismatch", &ReferenceMismatchError{}, true},
		{"discontinuous indel", &DiscontinuousIndelError{}, true},
		{"missing chromosome", &genome.MissingChromosomeError{}, true},
		{"out of range", &annotation.OutOfRangeError{}, true},
		{"invalid statement", &InvalidStatementError{}, false},
		{"invalid genome file", &genome.InvalidGenomeFileError{}, false},
		{"wrapped non-fatal", errors.Join(errors.New("context"), &ReferenceMismatchError{}), true},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsNonFatal(tt.err))
		})
	}
}
