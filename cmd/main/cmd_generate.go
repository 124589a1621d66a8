package main

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/CTAG07/markovtext/pkg/markov"
)

func (a *app) newSentenceCmd() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "sentence",
		Short: "Print generated sentences, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			model, err := a.loadModel(ctx)
			if err != nil {
				return err
			}

			sentences, err := model.SentenceStream(ctx, count, a.generateOptions()...)
			if err != nil {
				return err
			}
			printed := 0
			for s := range sentences {
				fmt.Fprintln(cmd.OutOrStdout(), s)
				printed++
			}
			if printed < count {
				return fmt.Errorf("generation stopped after %d of %d sentences (see log)", printed, count)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "c", 1, "number of sentences to print")
	return cmd
}

func (a *app) newParagraphCmd() *cobra.Command {
	var (
		sentences int
		count     int
		output    string
	)
	cmd := &cobra.Command{
		Use:   "paragraph",
		Short: "Print generated paragraphs",
		Long: `Print one or more paragraphs of generated sentences. With --count greater
than one the paragraphs are generated concurrently; with a seed the output is
still reproducible.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			model, err := a.loadModel(ctx)
			if err != nil {
				return err
			}

			var paragraphs []string
			if count == 1 {
				p, err := model.Paragraph(ctx, sentences, a.generateOptions()...)
				if err != nil {
					return err
				}
				paragraphs = []string{p}
			} else {
				seed := a.config.Generate.Seed
				if seed == 0 {
					seed = rand.Uint64()
				}
				paragraphs, err = model.Paragraphs(ctx, count, sentences, seed, markov.WithMaxWords(a.config.Generate.MaxWords))
				if err != nil {
					return err
				}
			}

			text := strings.Join(paragraphs, "\n\n") + "\n"
			if output == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), text)
				return err
			}
			if err = atomic.WriteFile(output, strings.NewReader(text)); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			a.logger.InfoContext(ctx, "Paragraphs written",
				slog.String("path", output),
				slog.Int("paragraphs", len(paragraphs)),
			)
			return nil
		},
	}
	cmd.Flags().IntVarP(&sentences, "sentences", "n", 3, "sentences per paragraph")
	cmd.Flags().IntVar(&count, "count", 1, "number of paragraphs")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file atomically instead of stdout")
	return cmd
}
