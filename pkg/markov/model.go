package markov

import (
	"context"
	"errors"
	"io"
	"log/slog"
)

// Pair is the two-word state of the chain: a word and the word that followed it.
type Pair struct {
	First  string
	Second string
}

// Model is a second-order Markov chain built from a single corpus.
//
// It keeps the corpus words in order, the positions that begin and end
// sentences, and for every pair of consecutive words inside a sentence the
// positions of the words observed right after them. All of it is built once
// by BuildModel or NewModel and never modified, so a Model is safe for
// concurrent use.
type Model struct {
	tokens []string
	starts []int
	ends   []int
	endSet map[int]struct{}
	pairs  map[Pair][]int
	logger *slog.Logger
}

// NewModel reads the whole of r with the given tokenizer and builds a Model
// from the resulting words. Read errors are returned unchanged. If tokenizer
// is nil a DefaultTokenizer is used.
func NewModel(ctx context.Context, r io.Reader, tokenizer Tokenizer) (*Model, error) {
	if tokenizer == nil {
		tokenizer = NewDefaultTokenizer()
	}
	stream := tokenizer.NewStream(r)

	var tokens []Token
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		token, err := stream.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		tokens = append(tokens, *token)
	}

	return BuildModel(tokens), nil
}

// BuildModel indexes an already tokenized corpus.
//
// Every EOC token is recorded as a sentence end, and the token after it (if
// any) as a sentence start. The first token of a non-empty corpus is a start
// as well. Then, for each position i with two successors, the pair
// (tokens[i], tokens[i+1]) records i+2 as a continuation unless i or i+1 ends
// a sentence, so no pair ever spans a sentence boundary.
func BuildModel(tokens []Token) *Model {
	m := &Model{
		tokens: make([]string, len(tokens)),
		endSet: make(map[int]struct{}),
		pairs:  make(map[Pair][]int),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	if len(tokens) > 0 {
		m.starts = append(m.starts, 0)
	}
	for i, token := range tokens {
		m.tokens[i] = token.Text
		if !token.EOC {
			continue
		}
		m.ends = append(m.ends, i)
		m.endSet[i] = struct{}{}
		if i+1 != len(tokens) {
			m.starts = append(m.starts, i+1)
		}
	}

	for i := 0; i < len(tokens)-2; i++ {
		if m.isEnd(i) || m.isEnd(i+1) {
			continue
		}
		pair := Pair{First: m.tokens[i], Second: m.tokens[i+1]}
		m.pairs[pair] = append(m.pairs[pair], i+2)
	}

	return m
}

// SetLogger sets the logger for the Model. By default, all logs are discarded.
// It must be called before the Model is shared between goroutines.
func (m *Model) SetLogger(logger *slog.Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// Len returns the number of tokens in the corpus.
func (m *Model) Len() int {
	return len(m.tokens)
}

// Token returns the word at corpus position i.
func (m *Model) Token(i int) string {
	return m.tokens[i]
}

// Starts returns a copy of the sentence start positions, in corpus order.
func (m *Model) Starts() []int {
	return append([]int(nil), m.starts...)
}

// Ends returns a copy of the sentence end positions, in corpus order.
func (m *Model) Ends() []int {
	return append([]int(nil), m.ends...)
}

// Continuations returns a copy of the positions recorded after pair, in the
// order they were observed. It returns nil for an unknown pair.
func (m *Model) Continuations(pair Pair) []int {
	next, ok := m.pairs[pair]
	if !ok {
		return nil
	}
	return append([]int(nil), next...)
}

func (m *Model) isEnd(i int) bool {
	_, ok := m.endSet[i]
	return ok
}
