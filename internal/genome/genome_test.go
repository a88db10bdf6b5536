package genome

import (
	"errors"
	"strings"
	"testing"
)

const testFasta = `>1 assembled chromosome
acgtacgt
>2
aaaa
gggg
`

func TestLoad(t *testing.T) {
	g, err := Load(strings.NewReader(testFasta))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := g.Chromosomes(); got != 2 {
		t.Errorf("Chromosomes() = %d, want 2", got)
	}

	tests := []struct {
		name       string
		chrom      string
		start, end int
		want       string
	}{
		{"whole chromosome", "1", 0, 8, "acgtacgt"},
		{"interior slice", "1", 2, 5, "gta"},
		{"empty slice", "1", 3, 3, ""},
		{"multi-line record is concatenated", "2", 2, 6, "aagg"},
		{"header description is dropped from the key", "1", 0, 1, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.Bases(tt.chrom, tt.start, tt.end)
			if err != nil {
				t.Fatalf("Bases(%q, %d, %d): %v", tt.chrom, tt.start, tt.end, err)
			}
			if got != tt.want {
				t.Errorf("Bases(%q, %d, %d) = %q, want %q",
					tt.chrom, tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty file", ""},
		{"data before header", "acgt\n>1\nacgt\n"},
		{"header without name", ">\nacgt\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input))
			var fileErr *InvalidGenomeFileError
			if !errors.As(err, &fileErr) {
				t.Errorf("Load(%q): got %v, want *InvalidGenomeFileError", tt.input, err)
			}
		})
	}
}

func TestBasesErrors(t *testing.T) {
	g, err := Load(strings.NewReader(testFasta))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	_, err = g.Bases("17", 0, 1)
	var missingErr *MissingChromosomeError
	if !errors.As(err, &missingErr) {
		t.Errorf("Bases on missing chromosome: got %v, want *MissingChromosomeError", err)
	}

	tests := []struct {
		name       string
		start, end int
	}{
		{"negative start", -1, 4},
		{"end past chromosome", 0, 9},
		{"inverted interval", 5, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Bases("1", tt.start, tt.end)
			var rangeErr *NonContainedRangeError
			if !errors.As(err, &rangeErr) {
				t.Errorf("Bases(1, %d, %d): got %v, want *NonContainedRangeError",
					tt.start, tt.end, err)
			}
		})
	}
}
