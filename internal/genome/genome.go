// Package genome loads a multi-FASTA reference genome and slices base pairs
// out of it.
package genome

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Genome maps chromosome names to base pair sequences, loaded once per run
// and read-only thereafter.
type Genome struct {
	chromosomes map[string]string
}

// Load parses a reference genome in multi-FASTA format.
//
// The first whitespace-delimited token after '>' in each record header
// becomes the chromosome key; sequence lines are concatenated verbatim with
// case preserved. Returns an *InvalidGenomeFileError when the input is empty
// or contains sequence data before the first header.
func Load(r io.Reader) (*Genome, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	chromosomes := make(map[string]string)
	var chrom string
	var seq strings.Builder

	flush := func() {
		if chrom != "" {
			chromosomes[chrom] = seq.String()
			seq.Reset()
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, ">"):
			flush()
			fields := strings.Fields(line[1:])
			if len(fields) == 0 {
				return nil, &InvalidGenomeFileError{
					Reason: fmt.Sprintf("header line %q has no chromosome name", line),
				}
			}
			chrom = fields[0]
			chromosomes[chrom] = ""
		case chrom == "":
			return nil, &InvalidGenomeFileError{
				Reason: fmt.Sprintf("sequence data before first header: %q", line),
			}
		default:
			seq.WriteString(strings.TrimSpace(line))
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan genome: %w", err)
	}
	if len(chromosomes) == 0 {
		return nil, &InvalidGenomeFileError{Reason: "genome file empty"}
	}
	return &Genome{chromosomes: chromosomes}, nil
}

// Bases returns the base pairs of chromosome chrom in the 0-based half-open
// interval [start, end), case preserved.
//
// Returns a *MissingChromosomeError when the chromosome is not in the
// genome, and a *NonContainedRangeError when the interval reaches outside
// the chromosome.
func (g *Genome) Bases(chrom string, start, end int) (string, error) {
	seq, ok := g.chromosomes[chrom]
	if !ok {
		return "", &MissingChromosomeError{Chrom: chrom}
	}
	if start < 0 || end > len(seq) || start > end {
		return "", &NonContainedRangeError{Chrom: chrom, Start: start, End: end, Length: len(seq)}
	}
	return seq[start:end], nil
}

// Chromosomes returns the number of chromosomes in the genome.
func (g *Genome) Chromosomes() int {
	return len(g.chromosomes)
}

// InvalidGenomeFileError is returned when a genome file cannot be parsed.
// It is fatal: the run is aborted before any output is produced.
type InvalidGenomeFileError struct {
	Reason string
}

func (e *InvalidGenomeFileError) Error() string {
	return "invalid genome file: " + e.Reason
}

// MissingChromosomeError is returned when a probe refers to a chromosome
// that is not present in the reference genome.
type MissingChromosomeError struct {
	Chrom string
}

func (e *MissingChromosomeError) Error() string {
	return fmt.Sprintf("no such chromosome: %q", e.Chrom)
}

// NonFatal marks the error as recoverable: the candidate is skipped and
// processing continues.
func (e *MissingChromosomeError) NonFatal() {}

// NonContainedRangeError is returned when a slice reaches outside the range
// of a chromosome.
type NonContainedRangeError struct {
	Chrom      string
	Start, End int
	Length     int
}

func (e *NonContainedRangeError) Error() string {
	return fmt.Sprintf("range [%d,%d) outside the range of chromosome %q (%d bp)",
		e.Start, e.End, e.Chrom, e.Length)
}

// NonFatal marks the error as recoverable.
func (e *NonContainedRangeError) NonFatal() {}
