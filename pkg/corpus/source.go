// Package corpus provides the places a corpus text can come from: a plain
// file on disk, or a named entry in a SQLite-backed Store. It deals in raw
// text only; turning text into a model is left to package markov.
package corpus

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/CTAG07/markovtext/pkg/markov"
)

// Source is anything that can produce the raw text of exactly one corpus.
type Source interface {
	// Open returns a reader over the corpus text. The caller must close it.
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FileSource reads a corpus from a text file.
type FileSource struct {
	Path string
}

// Open opens the file. Errors from the filesystem are returned unchanged.
func (f FileSource) Open(_ context.Context) (io.ReadCloser, error) {
	return os.Open(f.Path)
}

func (f FileSource) String() string {
	return "file:" + f.Path
}

// TextSource serves a corpus held in memory.
type TextSource string

// Open returns a reader over the text.
func (t TextSource) Open(_ context.Context) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(string(t))), nil
}

// LoadModel opens src, builds a model from its text and closes it again.
// Errors opening or reading the source are returned unwrapped so callers can
// inspect them directly.
func LoadModel(ctx context.Context, src Source, tokenizer markov.Tokenizer) (*markov.Model, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rc io.ReadCloser) {
		_ = rc.Close()
	}(rc)

	return markov.NewModel(ctx, rc, tokenizer)
}

// Describe returns a short human readable name for src.
func Describe(src Source) string {
	if s, ok := src.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", src)
}
