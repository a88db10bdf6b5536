package annotation

import (
	"errors"
	"strings"
	"testing"
)

const refGeneTable = `#name	name2	chrom	strand	exonStarts	exonEnds	cdsStart	cdsEnd
NM_1	GENE	chr1	+	0,20,40,	10,30,50,	5	45
NM_2	GENE	chr1	-	0,20,40,	10,30,50,	5	45
NM_3	OTHER	chr2	+	0,	100,	10	90
`

const proteinTable = `#name	proteinID	chrom	strand	exonStarts	exonEnds	cdsStart	cdsEnd
uc001aaa	GENE	chr3	+	0,	50,	0	50
`

func TestTableReadFrom(t *testing.T) {
	table := NewTable()
	if err := table.ReadFrom(strings.NewReader(refGeneTable)); err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	if got := table.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}

	transcripts := table.LookupGene("GENE")
	if len(transcripts) != 2 {
		t.Fatalf("LookupGene(GENE) returned %d transcripts, want 2", len(transcripts))
	}
	if transcripts[0].Name != "NM_1" || transcripts[1].Name != "NM_2" {
		t.Errorf("LookupGene(GENE) = [%s %s], want table order [NM_1 NM_2]",
			transcripts[0].Name, transcripts[1].Name)
	}

	if got := table.LookupGene("NO_SUCH_GENE"); got != nil {
		t.Errorf("LookupGene(NO_SUCH_GENE) = %v, want nil", got)
	}
}

func TestTableMergesFiles(t *testing.T) {
	// Lookups across several annotation files preserve load order.
	table := NewTable()
	if err := table.ReadFrom(strings.NewReader(refGeneTable)); err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	if err := table.ReadFrom(strings.NewReader(proteinTable)); err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}

	transcripts := table.LookupGene("GENE")
	if len(transcripts) != 3 {
		t.Fatalf("LookupGene(GENE) returned %d transcripts, want 3", len(transcripts))
	}
	if transcripts[2].Name != "uc001aaa" {
		t.Errorf("last transcript = %s, want uc001aaa", transcripts[2].Name)
	}
}

func TestTableReadFromErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty file", ""},
		{"missing header", "NM_1\tGENE\tchr1\t+\t0,\t10,\t0\t10\n"},
		{
			"field count mismatch",
			"#name\tname2\tchrom\tstrand\texonStarts\texonEnds\tcdsStart\tcdsEnd\nNM_1\tGENE\tchr1\t+\n",
		},
		{
			"bad row",
			"#name\tname2\tchrom\tstrand\texonStarts\texonEnds\tcdsStart\tcdsEnd\nNM_1\tGENE\tchr1\t+\t0,\t10,\tzero\t10\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewTable()
			err := table.ReadFrom(strings.NewReader(tt.input))
			var fileErr *InvalidAnnotationFileError
			if !errors.As(err, &fileErr) {
				t.Errorf("got %v, want *InvalidAnnotationFileError", err)
			}
		})
	}
}
