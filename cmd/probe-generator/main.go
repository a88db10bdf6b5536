// Package main provides the probe-generator command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe-generator [statement-file...]",
		Short: "Generate DNA probe sequences from mutation statements",
		Long: `Generate hybridization probe sequences from mutation statements.

Statements describe point mutations, indels, amino acid changes, exon
fusions, or raw breakpoint coordinates. Each statement is expanded against
a UCSC gene annotation table and resolved to a nucleotide sequence against
a reference genome, written as FASTA.`,
		Version: fmt.Sprintf("%s (%s) built %s", version, commit, date),
		Example: `  probe-generator -g hg19.fa -a refGene.txt statements.txt
  probe-generator -g hg19.fa -a refGene.txt -a ucscGenes.txt -o probes.fa statements.txt
  echo "ABC:c.52g>t/60" | probe-generator -g hg19.fa -a refGene.txt -`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(args)
		},
	}

	cmd.Flags().StringP("genome", "g", "", "Reference genome FASTA file (required)")
	cmd.Flags().StringSliceP("annotation", "a", nil, "UCSC annotation table, repeatable (required)")
	cmd.Flags().StringP("output", "o", "", "Output FASTA file (default: stdout)")
	cmd.Flags().String("log-level", "info", "Log level: debug, info, warn, error")

	cmd.AddCommand(newConfigCmd())

	return cmd
}

// initConfig merges flags, PROBEGEN_* environment variables, and the
// ~/.probe-generator.yaml config file, in that order of precedence.
func initConfig(cmd *cobra.Command) error {
	for _, key := range []string{"genome", "annotation", "output", "log-level"} {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(key)); err != nil {
			return err
		}
	}

	viper.SetEnvPrefix("PROBEGEN")
	viper.AutomaticEnv()

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".probe-generator")
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !os.IsNotExist(err) && !errors.As(err, &notFound) {
				return fmt.Errorf("reading config: %w", err)
			}
		}
	}
	return nil
}

// newLogger builds a console logger on stderr at the configured level.
func newLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.Set(level); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
