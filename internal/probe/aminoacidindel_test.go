package probe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAminoAcidIndelDeletion(t *testing.T) {
	// Trp and Met are single-codon, so the deletion expands to one probe.
	probes := explode(t, "ABC:delW1-M2/9")
	require.Len(t, probes, 1)
	require.Equal(t, "ABC:1.delWM(delTGGATG)/9_FOO_1:2", probes[0].String())
}

func TestAminoAcidIndelDegenerateCounts(t *testing.T) {
	tests := []struct {
		statement string
		want      int
	}{
		// 6 Arg codons x 4 Thr codons, deletion only.
		{"ABC:delR1-T2/2", 24},
		// One reference sequence, 6 Leu insertion variants.
		{"ABC:delW1-M2insL/9", 6},
		// Keeping the flanking amino acids: W x 2 Phe codons x M.
		{"ABC:W1-M2insF/9", 2},
	}

	for _, tt := range tests {
		t.Run(tt.statement, func(t *testing.T) {
			require.Len(t, explode(t, tt.statement), tt.want)
		})
	}
}

func TestAminoAcidIndelResolution(t *testing.T) {
	// Codons 1-2 of FOO are cgtacg (Arg-Thr). Of the 24 deletion candidates
	// only the one matching the genome resolves.
	probes := explode(t, "ABC:delR1-T2/2")

	var resolved []string
	for _, p := range probes {
		seq, err := Resolve(testGenome(t), p)
		if err != nil {
			require.True(t, IsNonFatal(err), "unexpected fatal error: %v", err)
			continue
		}
		resolved = append(resolved, p.String()+" "+seq)
	}
	require.Equal(t, []string{"ABC:1.delRT(delCGTACG)/2_FOO_1:2 at"}, resolved)
}

func TestAminoAcidIndelInvalidStatements(t *testing.T) {
	generator := testGenerator(t)

	for _, statement := range []string{
		"ABC:W1-M2/9",    // neither del nor ins
		"ABC:delM2-W2/9", // range not ascending
		"ABC:delM2-W1/9",
	} {
		_, err := generator.Explode(statement)
		var invalid *InvalidStatementError
		require.ErrorAs(t, err, &invalid, "statement %q", statement)
	}
}

func TestAminoAcidIndelOutOfRange(t *testing.T) {
	// The codon range reaches past the end of every ABC transcript.
	probes := explode(t, "ABC:delW5-M6/9")
	require.Empty(t, probes)
}
