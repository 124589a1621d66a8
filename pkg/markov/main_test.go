package markov

import (
	"context"
	"go/build"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

const fishCorpus = "one fish two fish. red fish blue fish."

// setupTestModel builds a Model from corpus for a single test.
func setupTestModel(tb testing.TB, corpus string) *Model {
	tb.Helper()
	m, err := NewModel(context.Background(), strings.NewReader(corpus), NewDefaultTokenizer())
	if err != nil {
		tb.Fatalf("NewModel() error = %v", err)
	}
	return m
}

// corpusWords returns the set of words in corpus, used to check that
// generated text only contains words that were actually observed.
func corpusWords(corpus string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(corpus) {
		words[w] = struct{}{}
	}
	return words
}

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for benchmarking.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = "this is a fallback corpus for benchmarking. it is not very long but will prevent a crash. "
				return
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		// Make sure the walk can always finish.
		sb.WriteString(" end of corpus.")
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}
