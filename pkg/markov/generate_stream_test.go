package markov

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSentenceStream(t *testing.T) {
	ctx := context.Background()
	m := setupTestModel(t, fishCorpus)

	t.Run("Successful stream", func(t *testing.T) {
		stream, err := m.SentenceStream(ctx, 5, WithRand(NewSeededRand(5)))
		if err != nil {
			t.Fatalf("SentenceStream failed: %v", err)
		}

		var count int
		for sentence := range stream {
			if sentence != "One fish two fish." && sentence != "Red fish blue fish." {
				t.Errorf("unexpected sentence from stream: %q", sentence)
			}
			count++
		}
		if count != 5 {
			t.Errorf("expected 5 sentences, got %d", count)
		}
	})

	t.Run("Matches Paragraph for the same seed", func(t *testing.T) {
		stream, err := m.SentenceStream(ctx, 4, WithRand(NewSeededRand(11)))
		if err != nil {
			t.Fatalf("SentenceStream failed: %v", err)
		}
		var joined string
		for sentence := range stream {
			if joined != "" {
				joined += " "
			}
			joined += sentence
		}
		paragraph, err := m.Paragraph(ctx, 4, WithRand(NewSeededRand(11)))
		if err != nil {
			t.Fatalf("Paragraph failed: %v", err)
		}
		if joined != paragraph {
			t.Errorf("stream %q differs from paragraph %q", joined, paragraph)
		}
	})

	t.Run("Stream cancellation", func(t *testing.T) {
		ctxCancel, cancel := context.WithCancel(ctx)
		defer cancel()

		stream, err := m.SentenceStream(ctxCancel, 1000)
		if err != nil {
			t.Fatalf("SentenceStream failed: %v", err)
		}

		// Read one sentence, then cancel
		<-stream
		cancel()

		timeout := time.After(100 * time.Millisecond)
		for {
			select {
			case _, ok := <-stream:
				if !ok {
					return
				}
			case <-timeout:
				t.Fatal("timed out waiting for stream channel to close after cancellation")
			}
		}
	})

	t.Run("Invalid arguments", func(t *testing.T) {
		if _, err := m.SentenceStream(ctx, -1); !errors.Is(err, ErrInvalidSentenceCount) {
			t.Errorf("expected ErrInvalidSentenceCount, got %v", err)
		}
		empty := setupTestModel(t, "")
		if _, err := empty.SentenceStream(ctx, 1); !errors.Is(err, ErrEmptyCorpus) {
			t.Errorf("expected ErrEmptyCorpus, got %v", err)
		}
		unterminated := setupTestModel(t, "a b c d")
		if _, err := unterminated.SentenceStream(ctx, 1); !errors.Is(err, ErrEmptyCorpus) {
			t.Errorf("expected ErrEmptyCorpus for a corpus without sentence ends, got %v", err)
		}
	})
}
