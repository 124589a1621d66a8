package markov

import (
	"bufio"
	"io"
	"regexp"
)

// DefaultTokenizer is a default implementation of the Tokenizer interface.
// It splits text on runs of whitespace, keeping case and punctuation exactly
// as they appear, and marks any word ending with a period as an End-Of-Chain
// (EOC) token. Its behavior can be customized with functional options.
type DefaultTokenizer struct {
	eocRegex     *regexp.Regexp
	maxTokenSize int
}

// Option Is a function that configures a DefaultTokenizer.
type Option func(*DefaultTokenizer)

// WithEOCRegex sets the regex string to use when deciding whether a token is an EOC token or not.
// Default: `\.$`
func WithEOCRegex(eocRegex string) Option {
	return func(t *DefaultTokenizer) {
		t.eocRegex = regexp.MustCompile(eocRegex)
	}
}

// WithMaxTokenSize sets the largest single word, in bytes, the stream will accept.
// Default: 1MiB
func WithMaxTokenSize(n int) Option {
	return func(t *DefaultTokenizer) {
		t.maxTokenSize = n
	}
}

// NewDefaultTokenizer creates a new tokenizer with default settings, which can be
// overridden by providing one or more Option functions.
func NewDefaultTokenizer(opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{
		// A word ends a sentence when its last character is a period.
		eocRegex:     regexp.MustCompile(`\.$`),
		maxTokenSize: 1 << 20,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// IsEOC reports whether word ends a sentence under this tokenizer's rules.
func (t *DefaultTokenizer) IsEOC(word string) bool {
	return t.eocRegex.MatchString(word)
}

// NewStream Returns the stream processor.
func (t *DefaultTokenizer) NewStream(r io.Reader) StreamTokenizer {
	scanner := bufio.NewScanner(r)
	// The scanner's limit is the larger of max and the initial capacity.
	scanner.Buffer(make([]byte, 0, min(64*1024, t.maxTokenSize)), t.maxTokenSize)
	scanner.Split(bufio.ScanWords)
	return &DefaultStreamTokenizer{
		scanner:  scanner,
		eocRegex: t.eocRegex,
	}
}

// DefaultStreamTokenizer is the default implementation of the StreamTokenizer interface.
// It uses a word-splitting bufio.Scanner and a regular expression to read and tokenize a stream.
type DefaultStreamTokenizer struct {
	scanner  *bufio.Scanner
	eocRegex *regexp.Regexp
}

// Next returns the next token from the stream. It returns a Token and a nil error on
// success. When the stream is exhausted, it returns a nil Token and io.EOF.
// Any other error indicates a problem reading from the underlying stream.
func (s *DefaultStreamTokenizer) Next() (*Token, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	word := s.scanner.Text()
	return &Token{Text: word, EOC: s.eocRegex.MatchString(word)}, nil
}
