package markov

import (
	"encoding/json"
	"io"
	"log/slog"
	"sort"
)

// ExportedModel is the serializable view of a model's index, used for
// inspecting what was learned from a corpus.
type ExportedModel struct {
	Tokens []string       `json:"tokens"`
	Starts []int          `json:"starts"`
	Ends   []int          `json:"ends"`
	Pairs  []ExportedPair `json:"pairs"`
}

// ExportedPair is the serializable representation of a single pair and its
// continuations, used within an ExportedModel.
type ExportedPair struct {
	First         string `json:"first"`
	Second        string `json:"second"`
	Continuations []int  `json:"continuations"`
}

// Export returns a snapshot of the model's index. Pairs are ordered by the
// position of their first continuation, which is corpus order.
func (m *Model) Export() ExportedModel {
	pairs := make([]ExportedPair, 0, len(m.pairs))
	for pair, next := range m.pairs {
		pairs = append(pairs, ExportedPair{
			First:         pair.First,
			Second:        pair.Second,
			Continuations: append([]int(nil), next...),
		})
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].Continuations[0] < pairs[j].Continuations[0]
	})

	return ExportedModel{
		Tokens: append([]string{}, m.tokens...),
		Starts: append([]int{}, m.starts...),
		Ends:   append([]int{}, m.ends...),
		Pairs:  pairs,
	}
}

// WriteJSON serializes the model's index as indented JSON to w. There is no
// matching import: a model is always rebuilt from its corpus.
func (m *Model) WriteJSON(w io.Writer) error {
	exported := m.Export()

	m.logger.Info("Model exported",
		slog.Int("tokens_exported", len(exported.Tokens)),
		slog.Int("pairs_exported", len(exported.Pairs)),
	)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exported)
}
