package probe

import (
	"go.uber.org/zap"

	"github.com/ahammel/probe-generator/internal/annotation"
)

// Generator expands probe statements into probe candidates against a gene
// annotation table.
type Generator struct {
	table  *annotation.Table
	logger *zap.Logger
}

// NewGenerator creates a new generator over the given annotation table.
func NewGenerator(table *annotation.Table) *Generator {
	return &Generator{
		table:  table,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for per-candidate warnings.
func (g *Generator) SetLogger(l *zap.Logger) {
	g.logger = l
}

// Explode parses a statement against each grammar in turn and expands the
// first match into its probe candidates. A statement matching no grammar
// fails with an *InvalidStatementError.
//
// Expansion warns and skips candidates that cannot be realized on one
// particular transcript (a coordinate outside the coding sequence, an indel
// region crossing an exon junction); such a statement may expand to fewer
// probes than its wildcards suggest, or to none at all.
func (g *Generator) Explode(statement string) ([]Probe, error) {
	if probe, ok := parseCoordinate(statement); ok {
		return []Probe{probe}, nil
	}
	if spec, ok := parseSnp(statement); ok {
		return explodeSnp(statement, spec)
	}
	if spec, ok := parseGeneSnp(statement); ok {
		return g.explodeGeneSnp(statement, spec)
	}
	if spec, ok := parseGeneIndel(statement); ok {
		return g.explodeGeneIndel(statement, spec)
	}
	if spec, ok := parseAminoAcid(statement); ok {
		return g.explodeAminoAcid(statement, spec)
	}
	if spec, ok := parseAminoAcidIndel(statement); ok {
		return g.explodeAminoAcidIndel(statement, spec)
	}
	if spec, ok := parseExon(statement); ok {
		return g.explodeExon(statement, spec)
	}
	return nil, &InvalidStatementError{Statement: statement}
}

func (g *Generator) warn(statement, transcript string, err error) {
	g.logger.Warn("skipping probe candidate",
		zap.String("statement", statement),
		zap.String("transcript", transcript),
		zap.Error(err))
}

// dedupKey identifies a probe candidate for first-wins deduplication across
// the transcripts of a gene. Degenerate grammars additionally key on the
// expanded reference and mutation sequences.
type dedupKey struct {
	chrom      string
	start, end int
	plusStrand bool
	reference  string
	mutation   string
}
