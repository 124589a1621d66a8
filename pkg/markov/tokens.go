package markov

import (
	"errors"
	"io"
)

// Token represents a single whitespace-delimited word of a corpus. It contains
// the verbatim text and a boolean flag indicating if it ends a sentence.
type Token struct {
	Text string
	EOC  bool
}

// Tokenizer is an interface that defines the contract for splitting corpus
// text into tokens. This allows the model construction to be independent of
// the specific tokenization strategy.
type Tokenizer interface {
	// NewStream returns a stateful StreamTokenizer for processing an io.Reader.
	NewStream(io.Reader) StreamTokenizer
}

// StreamTokenizer is an interface for a stateful tokenizer that processes a
// stream of data, returning one token at a time.
type StreamTokenizer interface {
	// Next returns the next token from the stream. It returns io.EOF as the
	// error when the stream is fully consumed.
	Next() (*Token, error)
}

// Tokenize drains a stream created by t from r and returns every token in
// corpus order. Errors from the underlying reader are returned unchanged.
func Tokenize(t Tokenizer, r io.Reader) ([]Token, error) {
	stream := t.NewStream(r)
	var tokens []Token
	for {
		token, err := stream.Next()
		if errors.Is(err, io.EOF) {
			return tokens, nil
		}
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, *token)
	}
}
