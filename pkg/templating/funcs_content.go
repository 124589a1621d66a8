package templating

import (
	"context"
	"log/slog"
	"strings"

	"github.com/CTAG07/markovtext/pkg/markov"
)

// The content functions run inside Execute, which already holds the read
// lock, so they access tm.model and tm.config directly.

func (tm *TemplateManager) generateOptions() []markov.GenerateOption {
	return []markov.GenerateOption{markov.WithMaxWords(tm.config.MaxWords)}
}

// markovSentence generates one sentence. Generation failures are logged and
// render as an empty string so a single dead end does not break the page.
func (tm *TemplateManager) markovSentence() string {
	if tm.model == nil {
		return ""
	}
	sentence, err := tm.model.Sentence(context.Background(), tm.generateOptions()...)
	if err != nil {
		tm.logger.Error("markovSentence: generation failed", slog.String("error", err.Error()))
		return ""
	}
	return sentence
}

// markovParagraph generates a paragraph of n sentences, clamped to MaxSentences.
func (tm *TemplateManager) markovParagraph(n int) string {
	if tm.model == nil || n <= 0 {
		return ""
	}
	n = min(n, tm.config.MaxSentences)
	paragraph, err := tm.model.Paragraph(context.Background(), n, tm.generateOptions()...)
	if err != nil {
		tm.logger.Error("markovParagraph: generation failed", slog.Int("sentences", n), slog.String("error", err.Error()))
		return ""
	}
	return paragraph
}

// markovParagraphs generates count paragraphs separated by blank lines. Each
// paragraph has between minSentences and maxSentences sentences inclusive.
func (tm *TemplateManager) markovParagraphs(count, minSentences, maxSentences int) string {
	count = min(count, tm.config.MaxParagraphs)
	if tm.model == nil || count <= 0 {
		return ""
	}
	if minSentences > maxSentences {
		minSentences, maxSentences = maxSentences, minSentences
	}
	minSentences = max(minSentences, 1)
	maxSentences = min(max(maxSentences, minSentences), tm.config.MaxSentences)
	minSentences = min(minSentences, maxSentences)

	paragraphs := make([]string, 0, count)
	for i := 0; i < count; i++ {
		if p := tm.markovParagraph(randomInt(minSentences, maxSentences+1)); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return strings.Join(paragraphs, "\n\n")
}
