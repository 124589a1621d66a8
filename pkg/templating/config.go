package templating

// TemplateConfig holds all configuration options for the templating engine.
type TemplateConfig struct {
	// MaxParagraphs sets a hard upper limit on the count argument of markovParagraphs.
	MaxParagraphs int `json:"max_paragraphs"`

	// MaxSentences sets a hard upper limit on the number of sentences in a single paragraph.
	MaxSentences int `json:"max_sentences"`

	// MaxWords caps the length of any generated sentence. 0 leaves sentences unbounded.
	MaxWords int `json:"max_words"`

	// MaxRepeat sets a hard upper limit on the count argument of repeat.
	MaxRepeat int `json:"max_repeat"`
}

// DefaultConfig returns a TemplateConfig with safe default values.
func DefaultConfig() TemplateConfig {
	return TemplateConfig{
		MaxParagraphs: 20,
		MaxSentences:  50,
		MaxWords:      200,
		MaxRepeat:     1000,
	}
}
