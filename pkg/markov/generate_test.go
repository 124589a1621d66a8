package markov

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"unicode"
	"unicode/utf8"
)

func TestSentence(t *testing.T) {
	ctx := context.Background()
	m := setupTestModel(t, fishCorpus)

	expected := map[string]bool{
		"One fish two fish.":  true,
		"Red fish blue fish.": true,
	}
	for i := 0; i < 50; i++ {
		sentence, err := m.Sentence(ctx)
		if err != nil {
			t.Fatalf("Sentence() failed: %v", err)
		}
		if !expected[sentence] {
			t.Errorf("Sentence() = %q, want one of %v", sentence, expected)
		}
	}
}

func TestSentenceTwoWordCorpus(t *testing.T) {
	m := setupTestModel(t, "Go now.")
	if m.Stats().Pairs != 0 {
		t.Fatalf("expected no pairs for a two word corpus")
	}

	sentence, err := m.Sentence(context.Background(), WithRand(NewSeededRand(1)))
	if err != nil {
		t.Fatalf("Sentence() failed: %v", err)
	}
	if sentence != "Go now." {
		t.Errorf("Sentence() = %q, want %q", sentence, "Go now.")
	}
}

func TestSentenceCapitalization(t *testing.T) {
	testCases := []struct {
		name     string
		corpus   string
		expected string
	}{
		{name: "Lowercase first letter", corpus: "hello world.", expected: "Hello world."},
		{name: "Internal casing kept", corpus: "iPhone and macOS.", expected: "IPhone and macOS."},
		{name: "Single terminal word", corpus: "stop.", expected: "Stop."},
		{name: "Non-ASCII first letter", corpus: "élan vital.", expected: "Élan vital."},
		{name: "Leading punctuation untouched", corpus: "\"quoted\" words.", expected: "\"quoted\" words."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := setupTestModel(t, tc.corpus)
			sentence, err := m.Sentence(context.Background())
			if err != nil {
				t.Fatalf("Sentence() failed: %v", err)
			}
			if sentence != tc.expected {
				t.Errorf("Sentence() = %q, want %q", sentence, tc.expected)
			}
		})
	}
}

func TestSentenceProperties(t *testing.T) {
	corpus := createBenchmarkCorpus()
	m := setupTestModel(t, corpus)
	words := corpusWords(corpus)
	rng := NewSeededRand(42)

	for i := 0; i < 200; i++ {
		sentence, err := m.Sentence(context.Background(), WithRand(rng))
		if errors.Is(err, ErrNoContinuation) {
			// The Go sources end mid-sentence in places; those walks are allowed to fail.
			continue
		}
		if err != nil {
			t.Fatalf("Sentence() failed: %v", err)
		}
		if !strings.HasSuffix(sentence, ".") {
			t.Fatalf("Sentence() = %q does not end with a period", sentence)
		}
		for j, word := range strings.Split(sentence, " ") {
			if _, ok := words[word]; ok {
				continue
			}
			if j == 0 {
				if _, ok := words[lowerFirst(word)]; ok {
					continue
				}
			}
			t.Fatalf("word %q of %q is not in the corpus", word, sentence)
		}
	}
}

// lowerFirst undoes the capitalization applied to the first word of a sentence.
func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

func TestSentenceDeterministic(t *testing.T) {
	ctx := context.Background()
	m := setupTestModel(t, createBenchmarkCorpus())

	run := func() []string {
		rng := NewSeededRand(7)
		var out []string
		for i := 0; i < 25; i++ {
			sentence, err := m.Sentence(ctx, WithRand(rng))
			if err != nil {
				out = append(out, "error: "+err.Error())
				continue
			}
			out = append(out, sentence)
		}
		return out
	}

	first, second := run(), run()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("sentence %d differs between seeded runs: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestSentenceErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty corpus", func(t *testing.T) {
		m := setupTestModel(t, "   ")
		if _, err := m.Sentence(ctx); !errors.Is(err, ErrEmptyCorpus) {
			t.Errorf("expected ErrEmptyCorpus, got %v", err)
		}
	})

	t.Run("Unterminated corpus", func(t *testing.T) {
		m := setupTestModel(t, "a b c d")
		_, err := m.Sentence(ctx)
		if !errors.Is(err, ErrEmptyCorpus) {
			t.Errorf("expected ErrEmptyCorpus, got %v", err)
		}
		if errors.Is(err, ErrNoContinuation) {
			t.Error("a corpus without sentence ends must not report ErrNoContinuation")
		}
		if _, err := m.Paragraph(ctx, 2); !errors.Is(err, ErrEmptyCorpus) {
			t.Errorf("Paragraph: expected ErrEmptyCorpus, got %v", err)
		}
	})

	t.Run("Trailing fragment start", func(t *testing.T) {
		// Starts are 0 ("Done.") and 1 ("trailing"), which has no following word.
		m := setupTestModel(t, "Done. trailing")
		var sawDeadEnd, sawSentence bool
		rng := NewSeededRand(3)
		for i := 0; i < 50; i++ {
			sentence, err := m.Sentence(ctx, WithRand(rng))
			switch {
			case errors.Is(err, ErrNoContinuation):
				sawDeadEnd = true
			case err == nil && sentence == "Done.":
				sawSentence = true
			default:
				t.Fatalf("unexpected result %q, %v", sentence, err)
			}
		}
		if !sawDeadEnd || !sawSentence {
			t.Errorf("expected both outcomes over 50 draws, dead end: %v, sentence: %v", sawDeadEnd, sawSentence)
		}
	})

	t.Run("Max words", func(t *testing.T) {
		m := setupTestModel(t, "a b c d e f g h.")
		if _, err := m.Sentence(ctx, WithMaxWords(4)); !errors.Is(err, ErrSentenceTooLong) {
			t.Errorf("expected ErrSentenceTooLong, got %v", err)
		}
		sentence, err := m.Sentence(ctx, WithMaxWords(8))
		if err != nil || sentence != "A b c d e f g h." {
			t.Errorf("Sentence(WithMaxWords(8)) = %q, %v", sentence, err)
		}
	})

	t.Run("Cancelled context", func(t *testing.T) {
		m := setupTestModel(t, "a b c d e f g h.")
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := m.Sentence(cctx); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestParagraph(t *testing.T) {
	ctx := context.Background()
	m := setupTestModel(t, fishCorpus)

	testCases := []struct {
		name  string
		count int
	}{
		{name: "Zero sentences", count: 0},
		{name: "One sentence", count: 1},
		{name: "Several sentences", count: 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			paragraph, err := m.Paragraph(ctx, tc.count, WithRand(NewSeededRand(9)))
			if err != nil {
				t.Fatalf("Paragraph() failed: %v", err)
			}
			if tc.count == 0 {
				if paragraph != "" {
					t.Errorf("Paragraph(0) = %q, want empty string", paragraph)
				}
				return
			}
			if strings.HasPrefix(paragraph, " ") || strings.HasSuffix(paragraph, " ") || strings.Contains(paragraph, "  ") {
				t.Errorf("Paragraph() = %q has stray separators", paragraph)
			}
			// Every fish sentence has exactly four words.
			words := strings.Split(paragraph, " ")
			if len(words) != tc.count*4 {
				t.Fatalf("Paragraph(%d) has %d words, want %d", tc.count, len(words), tc.count*4)
			}
			var terminals int
			for _, w := range words {
				if strings.HasSuffix(w, ".") {
					terminals++
				}
			}
			if terminals != tc.count {
				t.Errorf("Paragraph(%d) has %d sentence ends", tc.count, terminals)
			}
		})
	}

	t.Run("Negative count", func(t *testing.T) {
		if _, err := m.Paragraph(ctx, -1); !errors.Is(err, ErrInvalidSentenceCount) {
			t.Errorf("expected ErrInvalidSentenceCount, got %v", err)
		}
	})
}

func TestConcurrentGeneration(t *testing.T) {
	m := setupTestModel(t, fishCorpus)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()
			rng := NewSeededRand(seed)
			for j := 0; j < 100; j++ {
				if _, err := m.Paragraph(ctx, 3, WithRand(rng)); err != nil {
					errs <- err
					return
				}
			}
		}(uint64(i))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent Paragraph() failed: %v", err)
	}
}

func BenchmarkSentence(b *testing.B) {
	m := setupTestModel(b, createBenchmarkCorpus())
	ctx := context.Background()

	genOpts := map[string][]GenerateOption{
		"GlobalRand": {WithMaxWords(200)},
		"SeededRand": {WithMaxWords(200), WithRand(NewSeededRand(1))},
	}

	for name, opts := range genOpts {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				s, _ := m.Sentence(ctx, opts...)
				b.SetBytes(int64(len(s)))
			}
		})
	}
}
