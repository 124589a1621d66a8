package markov

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Paragraphs generates count paragraphs of the given number of sentences
// concurrently. Paragraph i is drawn from its own NewSeededRand(seed+i), so
// the result is the same for the same model, arguments and seed no matter how
// the goroutines are scheduled. The first error cancels the remaining work.
func (m *Model) Paragraphs(ctx context.Context, count, sentences int, seed uint64, opts ...GenerateOption) ([]string, error) {
	if count < 0 {
		return nil, fmt.Errorf("paragraph count must not be negative: got %d", count)
	}
	if sentences < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSentenceCount, sentences)
	}

	out := make([]string, count)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < count; i++ {
		workerOpts := append(append([]GenerateOption(nil), opts...), WithRand(NewSeededRand(seed+uint64(i))))
		g.Go(func() error {
			paragraph, err := m.Paragraph(gctx, sentences, workerOpts...)
			if err != nil {
				return fmt.Errorf("paragraph %d: %w", i, err)
			}
			out[i] = paragraph
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m.logger.DebugContext(ctx, "Paragraph batch generated",
		slog.Int("paragraphs", count),
		slog.Int("sentences_per_paragraph", sentences),
	)
	return out, nil
}
