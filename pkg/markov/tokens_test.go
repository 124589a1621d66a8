package markov

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// failingReader returns some data and then a read error.
type failingReader struct {
	data []byte
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if len(r.data) > 0 {
		n := copy(p, r.data)
		r.data = r.data[n:]
		return n, nil
	}
	return 0, r.err
}

func TestDefaultTokenizer(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "Splits on runs of whitespace",
			input: "The  cat\tsat.\n\nThe dog ran.",
			expected: []Token{
				{Text: "The"}, {Text: "cat"}, {Text: "sat.", EOC: true},
				{Text: "The"}, {Text: "dog"}, {Text: "ran.", EOC: true},
			},
		},
		{
			name:  "Keeps case and punctuation verbatim",
			input: "Hello, World! e.g. done",
			expected: []Token{
				{Text: "Hello,"}, {Text: "World!"}, {Text: "e.g.", EOC: true}, {Text: "done"},
			},
		},
		{
			name:  "Only a trailing period ends a sentence",
			input: ".start mid.dle end.",
			expected: []Token{
				{Text: ".start"}, {Text: "mid.dle"}, {Text: "end.", EOC: true},
			},
		},
		{
			name:     "Empty input",
			input:    "  \n\t ",
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tokens, err := Tokenize(NewDefaultTokenizer(), strings.NewReader(tc.input))
			if err != nil {
				t.Fatalf("Tokenize() error = %v", err)
			}
			if !reflect.DeepEqual(tokens, tc.expected) {
				t.Errorf("Tokenize() = %+v, want %+v", tokens, tc.expected)
			}
		})
	}
}

func TestDefaultTokenizerOptions(t *testing.T) {
	tokenizer := NewDefaultTokenizer(WithEOCRegex(`[.!?]$`))
	tokens, err := Tokenize(tokenizer, strings.NewReader("Stop! Go? now."))
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	for _, token := range tokens {
		if !token.EOC {
			t.Errorf("expected %q to be an EOC token with custom regex", token.Text)
		}
	}
	if tokenizer.IsEOC("plain") {
		t.Error("IsEOC(\"plain\") = true, want false")
	}
}

func TestTokenizeReadError(t *testing.T) {
	readErr := errors.New("disk on fire")
	_, err := Tokenize(NewDefaultTokenizer(), &failingReader{data: []byte("a b "), err: readErr})
	if !errors.Is(err, readErr) {
		t.Errorf("expected the reader's error to be returned unchanged, got %v", err)
	}
}

func TestTokenizeTokenTooLong(t *testing.T) {
	tokenizer := NewDefaultTokenizer(WithMaxTokenSize(8))
	_, err := Tokenize(tokenizer, strings.NewReader("short averyveryverylongword."))
	if err == nil {
		t.Error("expected an error for a word larger than the max token size")
	}
}
