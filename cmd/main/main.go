package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/CTAG07/markovtext/pkg/corpus"
	"github.com/CTAG07/markovtext/pkg/markov"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// errNoCorpus is returned by commands that need a model when no corpus is configured.
var errNoCorpus = errors.New("no corpus configured: set --corpus-file or --corpus")

// app carries the state shared by every command once configuration is resolved.
type app struct {
	v      *viper.Viper
	config *Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "markovtext",
		Short: "Generate placeholder text from a word-pair Markov chain",
		Long: `markovtext builds a second-order Markov chain from a single plain-text corpus
and uses it to produce sentences and paragraphs that resemble the source.

The corpus is read from a file (--corpus-file) or from the SQLite corpus
library (--corpus), and the chain is rebuilt from it on every run.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			config, err := LoadConfig(a.v, path)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			a.config = config
			a.logger = newLogger(config.Server.LogLevel)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "./markovtext.json", "path to the JSON config file")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("corpus-file", "", "read the corpus from this text file")
	flags.String("corpus", "", "use this corpus from the corpus library")
	flags.String("db", "./markovtext.db", "path to the corpus library database")
	flags.Uint64("seed", 0, "seed for reproducible output (0 picks a random one)")

	for key, flag := range map[string]string{
		"server_config.log_level":     "log-level",
		"corpus_config.file":          "corpus-file",
		"corpus_config.name":          "corpus",
		"corpus_config.database_path": "db",
		"generate_config.seed":        "seed",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(
		a.newSentenceCmd(),
		a.newParagraphCmd(),
		a.newStatsCmd(),
		a.newInspectCmd(),
		a.newCorpusCmd(),
		a.newRenderCmd(),
		a.newServeCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "markovtext %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		},
	}
}

func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// source resolves the configured corpus. The returned cleanup func must be
// called once the source is no longer needed.
func (a *app) source() (corpus.Source, func(), error) {
	cfg := a.config.Corpus
	switch {
	case cfg.File != "":
		return corpus.FileSource{Path: cfg.File}, func() {}, nil
	case cfg.Name != "":
		store, closeStore, err := a.openStore()
		if err != nil {
			return nil, nil, err
		}
		return store.Source(cfg.Name), closeStore, nil
	default:
		return nil, nil, errNoCorpus
	}
}

// loadModel builds the model for the configured corpus.
func (a *app) loadModel(ctx context.Context) (*markov.Model, error) {
	src, cleanup, err := a.source()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	model, err := corpus.LoadModel(ctx, src, markov.NewDefaultTokenizer())
	if err != nil {
		return nil, fmt.Errorf("failed to build model from %s: %w", corpus.Describe(src), err)
	}
	model.SetLogger(a.logger)

	a.logger.DebugContext(ctx, "Model built",
		slog.String("source", corpus.Describe(src)),
		slog.Int("tokens", model.Len()),
		slog.Int("starts", len(model.Starts())),
	)
	return model, nil
}

// generateOptions returns the options implied by the config. A non-zero seed
// gives a fresh deterministic source on each call.
func (a *app) generateOptions() []markov.GenerateOption {
	opts := []markov.GenerateOption{markov.WithMaxWords(a.config.Generate.MaxWords)}
	if seed := a.config.Generate.Seed; seed != 0 {
		opts = append(opts, markov.WithRand(markov.NewSeededRand(seed)))
	}
	return opts
}

func main() {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
