package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ahammel/probe-generator/internal/annotation"
	"github.com/ahammel/probe-generator/internal/genome"
	"github.com/ahammel/probe-generator/internal/output"
	"github.com/ahammel/probe-generator/internal/probe"
)

// runGenerate is the main driver: it loads the genome and annotation,
// expands every statement, resolves every probe, and writes the FASTA
// output in statement order.
//
// Malformed statements and unresolvable probe candidates are logged and
// skipped; unreadable input files abort the run.
func runGenerate(statementFiles []string) error {
	logger, err := newLogger(viper.GetString("log-level"))
	if err != nil {
		return err
	}
	defer logger.Sync()

	genomePath := viper.GetString("genome")
	if genomePath == "" {
		return fmt.Errorf("a reference genome is required (--genome)")
	}
	annotationPaths := viper.GetStringSlice("annotation")
	if len(annotationPaths) == 0 {
		return fmt.Errorf("at least one annotation table is required (--annotation)")
	}

	ref, err := loadGenome(genomePath)
	if err != nil {
		return err
	}
	logger.Info("loaded reference genome",
		zap.String("file", genomePath),
		zap.Int("chromosomes", ref.Chromosomes()))

	table, err := loadAnnotation(annotationPaths)
	if err != nil {
		return err
	}
	logger.Info("loaded annotation",
		zap.Strings("files", annotationPaths),
		zap.Int("transcripts", table.Len()))

	statements, err := readStatements(statementFiles)
	if err != nil {
		return err
	}

	out := os.Stdout
	if path := viper.GetString("output"); path != "" {
		out, err = os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer out.Close()
	}

	generator := probe.NewGenerator(table)
	generator.SetLogger(logger)
	writer := output.NewFastaWriter(out)

	probeCount := 0
	for _, statement := range statements {
		probes, err := generator.Explode(statement)
		if err != nil {
			logger.Error("skipping statement",
				zap.String("statement", statement),
				zap.Error(err))
			continue
		}
		if len(probes) == 0 {
			logger.Warn("no probes generated",
				zap.String("statement", statement))
			continue
		}

		for _, p := range probes {
			seq, err := probe.Resolve(ref, p)
			if err != nil {
				if !probe.IsNonFatal(err) {
					return err
				}
				logger.Warn("skipping probe",
					zap.String("probe", p.String()),
					zap.Error(err))
				continue
			}
			if err := writer.WriteRecord(p.String(), seq); err != nil {
				return fmt.Errorf("writing probe: %w", err)
			}
			probeCount++
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	logger.Info("done",
		zap.Int("statements", len(statements)),
		zap.Int("probes", probeCount))
	return nil
}

func loadGenome(path string) (*genome.Genome, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening genome: %w", err)
	}
	defer f.Close()
	g, err := genome.Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading genome %s: %w", path, err)
	}
	return g, nil
}

func loadAnnotation(paths []string) (*annotation.Table, error) {
	table := annotation.NewTable()
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening annotation: %w", err)
		}
		if err := table.ReadFrom(f); err != nil {
			f.Close()
			return nil, fmt.Errorf("loading annotation %s: %w", path, err)
		}
		f.Close()
	}
	return table, nil
}

// readStatements reads probe statements, one per line, from the given files
// ('-' for stdin). Blank lines and comment-only lines are skipped.
func readStatements(paths []string) ([]string, error) {
	var statements []string
	for _, path := range paths {
		var r io.Reader
		if path == "-" {
			r = os.Stdin
		} else {
			f, err := os.Open(path)
			if err != nil {
				return nil, fmt.Errorf("opening statement file: %w", err)
			}
			defer f.Close()
			r = f
		}

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "--") {
				continue
			}
			statements = append(statements, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading statements from %s: %w", path, err)
		}
	}
	return statements, nil
}
