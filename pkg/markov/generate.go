package markov

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// ErrEmptyCorpus is returned when the model has no words, or no sentence
	// in it is ever terminated.
	ErrEmptyCorpus = errors.New("markov: corpus has no complete sentence")
	// ErrNoContinuation is returned when the walk reaches a pair with no recorded successor.
	// It means the corpus ends in an unterminated fragment or the index is inconsistent.
	ErrNoContinuation = errors.New("markov: no continuation for pair")
	// ErrInvalidSentenceCount is returned when a negative sentence count is requested.
	ErrInvalidSentenceCount = errors.New("markov: sentence count must not be negative")
	// ErrSentenceTooLong is returned when a sentence exceeds the limit set by WithMaxWords.
	ErrSentenceTooLong = errors.New("markov: sentence exceeded maximum word count")
)

// generateOptions holds the settings shared by one generation call.
type generateOptions struct {
	rng      *rand.Rand
	maxWords int
}

// GenerateOption is a function that configures generation parameters. It's used
// as a variadic argument in generation functions like Sentence and Paragraph.
type GenerateOption func(*generateOptions)

// WithRand sets the random source used for every choice made during generation.
// A *rand.Rand is not safe for concurrent use, so each goroutine needs its own.
// Without this option the top-level math/rand/v2 functions are used.
func WithRand(rng *rand.Rand) GenerateOption {
	return func(o *generateOptions) { o.rng = rng }
}

// WithMaxWords caps the number of words in a single sentence. A value of 0,
// the default, lets a sentence grow until a sentence-ending word is drawn.
func WithMaxWords(n int) GenerateOption {
	return func(o *generateOptions) { o.maxWords = n }
}

// NewSeededRand returns a PCG-backed random source. Two sources created with
// the same seed produce identical output from the same Model.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func newGenerateOptions(opts []GenerateOption) *generateOptions {
	options := &generateOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// intN draws from the configured source, or the global one when none is set.
func (o *generateOptions) intN(n int) int {
	if o.rng != nil {
		return o.rng.IntN(n)
	}
	return rand.IntN(n)
}

// Sentence generates one sentence by walking the chain from a random sentence
// start until a sentence-ending word is drawn. Only the first character of the
// result is changed (upper-cased); every word is otherwise exactly as it
// appears in the corpus.
func (m *Model) Sentence(ctx context.Context, opts ...GenerateOption) (string, error) {
	return m.sentence(ctx, newGenerateOptions(opts))
}

func (m *Model) sentence(ctx context.Context, options *generateOptions) (string, error) {
	if len(m.tokens) == 0 || len(m.starts) == 0 || len(m.ends) == 0 {
		return "", ErrEmptyCorpus
	}

	start := m.starts[options.intN(len(m.starts))]
	first := m.tokens[start]
	if m.isEnd(start) {
		return capitalize(first), nil
	}
	if start+1 >= len(m.tokens) {
		return "", fmt.Errorf("%w: sentence starting at %q is never terminated", ErrNoContinuation, first)
	}

	pair := Pair{First: first, Second: m.tokens[start+1]}

	var builder strings.Builder
	builder.WriteString(pair.First)
	builder.WriteByte(' ')
	builder.WriteString(pair.Second)
	words := 2

	if m.isEnd(start + 1) {
		return capitalize(builder.String()), nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if options.maxWords > 0 && words >= options.maxWords {
			m.logger.DebugContext(ctx, "Sentence abandoned at word limit",
				slog.Int("max_words", options.maxWords),
				slog.Int("start_index", start),
			)
			return "", ErrSentenceTooLong
		}

		choices, ok := m.pairs[pair]
		if !ok {
			return "", fmt.Errorf("%w: (%q, %q)", ErrNoContinuation, pair.First, pair.Second)
		}
		next := choices[options.intN(len(choices))]
		word := m.tokens[next]

		builder.WriteByte(' ')
		builder.WriteString(word)
		words++

		if m.isEnd(next) {
			break
		}
		pair = Pair{First: pair.Second, Second: word}
	}

	m.logger.DebugContext(ctx, "Sentence generated",
		slog.Int("start_index", start),
		slog.Int("words", words),
	)

	return capitalize(builder.String()), nil
}

// Paragraph generates n sentences and joins them with single spaces.
// A count of zero yields an empty string.
func (m *Model) Paragraph(ctx context.Context, n int, opts ...GenerateOption) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("%w: got %d", ErrInvalidSentenceCount, n)
	}
	options := newGenerateOptions(opts)

	var builder strings.Builder
	for i := 0; i < n; i++ {
		sentence, err := m.sentence(ctx, options)
		if err != nil {
			return "", err
		}
		if i != 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(sentence)
	}
	return builder.String(), nil
}

// capitalize upper-cases the first rune of s and leaves the rest untouched.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	upper := unicode.ToUpper(r)
	if upper == r {
		return s
	}
	return string(upper) + s[size:]
}
