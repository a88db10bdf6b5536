package sequence

import "strings"

// codonTable maps each DNA codon to its amino acid (single letter, '*' for
// stop).
var codonTable = map[string]byte{
	"TTT": 'F', "TTC": 'F', "TTA": 'L', "TTG": 'L',
	"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S',
	"TAT": 'Y', "TAC": 'Y', "TAA": '*', "TAG": '*',
	"TGT": 'C', "TGC": 'C', "TGA": '*', "TGG": 'W',

	"CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
	"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
	"CAT": 'H', "CAC": 'H', "CAA": 'Q', "CAG": 'Q',
	"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R',

	"ATT": 'I', "ATC": 'I', "ATA": 'I', "ATG": 'M',
	"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
	"AAT": 'N', "AAC": 'N', "AAA": 'K', "AAG": 'K',
	"AGT": 'S', "AGC": 'S', "AGA": 'R', "AGG": 'R',

	"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
	"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
	"GAT": 'D', "GAC": 'D', "GAA": 'E', "GAG": 'E',
	"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
}

// reverseCodonTable maps each amino acid to its degenerate codon set. The
// pseudo-amino-acid 'X' maps to all 64 codons and is used for wildcard
// peptide positions. Built once at process start from codonTable.
var reverseCodonTable = func() map[byte][]string {
	table := make(map[byte][]string)
	bases := []byte{'T', 'C', 'A', 'G'}
	for _, a := range bases {
		for _, b := range bases {
			for _, c := range bases {
				codon := string([]byte{a, b, c})
				aa := codonTable[codon]
				table[aa] = append(table[aa], codon)
				table['X'] = append(table['X'], codon)
			}
		}
	}
	return table
}()

// TranslateCodon translates a DNA codon to its amino acid. Returns 'X' for
// codons that are not three unambiguous bases and '*' for stop codons.
func TranslateCodon(codon string) byte {
	if len(codon) != 3 {
		return 'X'
	}
	if aa, ok := codonTable[strings.ToUpper(codon)]; ok {
		return aa
	}
	return 'X'
}

// Translate translates a DNA sequence to amino acids, truncating any
// trailing partial codon.
func Translate(seq string) string {
	n := (len(seq) / 3) * 3
	var b strings.Builder
	b.Grow(n / 3)
	for i := 0; i < n; i += 3 {
		b.WriteByte(TranslateCodon(seq[i : i+3]))
	}
	return b.String()
}

// Codons returns the degenerate codon set of an amino acid (IUPAC single
// letter, '*' for stop, 'X' for any codon). The returned slice is shared and
// must not be modified. Unknown amino acids return nil.
func Codons(aminoAcid byte) []string {
	if aminoAcid >= 'a' && aminoAcid <= 'z' {
		aminoAcid -= 'a' - 'A'
	}
	return reverseCodonTable[aminoAcid]
}

// ReverseTranslate returns every DNA sequence encoding the peptide, in
// codon-table order, as the Cartesian product of the degenerate codon sets
// of its amino acids. An empty peptide yields a single empty sequence.
func ReverseTranslate(peptide string) []string {
	sequences := []string{""}
	for i := 0; i < len(peptide); i++ {
		codons := Codons(peptide[i])
		if codons == nil {
			return nil
		}
		next := make([]string, 0, len(sequences)*len(codons))
		for _, seq := range sequences {
			for _, codon := range codons {
				next = append(next, seq+codon)
			}
		}
		sequences = next
	}
	return sequences
}

// Complement returns the complement of a single base, preserving case.
// Bases without a defined complement (including N) are returned unchanged.
func Complement(base byte) byte {
	switch base {
	case 'A':
		return 'T'
	case 'T':
		return 'A'
	case 'G':
		return 'C'
	case 'C':
		return 'G'
	case 'a':
		return 't'
	case 't':
		return 'a'
	case 'g':
		return 'c'
	case 'c':
		return 'g'
	default:
		return base
	}
}

// ReverseComplement returns the reverse complement of a DNA sequence,
// preserving case.
func ReverseComplement(seq string) string {
	n := len(seq)
	result := make([]byte, n)
	for i := 0; i < n; i++ {
		result[i] = Complement(seq[n-1-i])
	}
	return string(result)
}
