package markov

// Stats holds aggregated statistics for a Model.
type Stats struct {
	Tokens         int `json:"tokens" yaml:"tokens"`                   // The number of words in the corpus
	Vocabulary     int `json:"vocabulary" yaml:"vocabulary"`           // The number of distinct words
	Sentences      int `json:"sentences" yaml:"sentences"`             // The number of sentence-ending words
	Starts         int `json:"starts" yaml:"starts"`                   // The number of recorded sentence starts, duplicates included
	UniqueStarters int `json:"unique_starters" yaml:"unique_starters"` // The number of distinct words that can start a sentence
	Pairs          int `json:"pairs" yaml:"pairs"`                     // The number of distinct word pairs with a continuation
	Continuations  int `json:"continuations" yaml:"continuations"`     // The total number of recorded continuations; the number of trained transitions
}

// Stats returns a snapshot of statistics for the model.
func (m *Model) Stats() Stats {
	vocab := make(map[string]struct{}, len(m.tokens))
	for _, token := range m.tokens {
		vocab[token] = struct{}{}
	}

	starters := make(map[string]struct{})
	for _, start := range m.starts {
		starters[m.tokens[start]] = struct{}{}
	}

	var continuations int
	for _, next := range m.pairs {
		continuations += len(next)
	}

	return Stats{
		Tokens:         len(m.tokens),
		Vocabulary:     len(vocab),
		Sentences:      len(m.ends),
		Starts:         len(m.starts),
		UniqueStarters: len(starters),
		Pairs:          len(m.pairs),
		Continuations:  continuations,
	}
}
