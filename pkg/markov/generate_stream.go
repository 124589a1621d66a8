package markov

import (
	"context"
	"fmt"
	"log/slog"
)

// SentenceStream generates n sentences in a background goroutine and returns a
// read-only channel that receives them one at a time. This is useful for
// writing long output incrementally. The channel is closed once all sentences
// have been sent, on the first generation error (which is logged), or when the
// context is cancelled.
func (m *Model) SentenceStream(ctx context.Context, n int, opts ...GenerateOption) (<-chan string, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSentenceCount, n)
	}
	if (len(m.starts) == 0 || len(m.ends) == 0) && n > 0 {
		return nil, ErrEmptyCorpus
	}
	options := newGenerateOptions(opts)

	sentenceChan := make(chan string)

	go func() {
		defer close(sentenceChan)

		for i := 0; i < n; i++ {
			sentence, err := m.sentence(ctx, options)
			if err != nil {
				if ctx.Err() == nil {
					m.logger.ErrorContext(ctx, "failed to generate sentence for stream",
						slog.Int("sentence_index", i),
						slog.Any("error", err),
					)
				}
				return
			}
			select {
			case <-ctx.Done():
				m.logger.DebugContext(ctx, "Sentence stream cancelled by context")
				return
			case sentenceChan <- sentence:
			}
		}
	}()

	return sentenceChan, nil
}
