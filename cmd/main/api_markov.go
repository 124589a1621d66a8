package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/CTAG07/markovtext/pkg/markov"
)

// MarkovAPI holds the dependencies for the generation API handlers.
type MarkovAPI struct {
	model  *markov.Model
	config *Config
	logger *slog.Logger
}

// NewMarkovAPI creates a new instance of the MarkovAPI.
func NewMarkovAPI(model *markov.Model, config *Config, logger *slog.Logger) *MarkovAPI {
	return &MarkovAPI{
		model:  model,
		config: config,
		logger: logger,
	}
}

// RegisterRoutes sets up the routing for all generation endpoints.
func (m *MarkovAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/sentence", m.handleSentence)
	mux.HandleFunc("/api/paragraph", m.handleParagraph)
	mux.HandleFunc("/api/stats", m.handleStats)
}

type SentenceResponse struct {
	Sentence string `json:"sentence"`
}

type ParagraphResponse struct {
	Paragraph string `json:"paragraph"`
	Sentences int    `json:"sentences"`
}

// options builds the generation options for a request. The configured seed is
// ignored here; only an explicit seed query parameter makes a response
// reproducible.
func (m *MarkovAPI) options(r *http.Request) ([]markov.GenerateOption, error) {
	opts := []markov.GenerateOption{markov.WithMaxWords(m.config.Generate.MaxWords)}
	raw := r.URL.Query().Get("seed")
	if raw == "" {
		return opts, nil
	}
	seed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid seed %q", raw)
	}
	return append(opts, markov.WithRand(markov.NewSeededRand(seed))), nil
}

// handleSentence generates a single sentence.
func (m *MarkovAPI) handleSentence(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	logger := requestLogger(m.logger, r)
	opts, err := m.options(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	sentence, err := m.model.Sentence(r.Context(), opts...)
	if err != nil {
		logger.Error("Failed to generate sentence", "error", err)
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate sentence: %v", err))
		return
	}
	logger.Debug("Sentence generated", slog.Int("length", len(sentence)))
	respondWithJSON(w, http.StatusOK, SentenceResponse{Sentence: sentence})
}

// handleParagraph generates a paragraph of n sentences. n defaults to 1.
func (m *MarkovAPI) handleParagraph(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	logger := requestLogger(m.logger, r)

	n := 1
	if raw := r.URL.Query().Get("n"); raw != "" {
		var err error
		if n, err = strconv.Atoi(raw); err != nil {
			respondWithError(w, http.StatusBadRequest, fmt.Sprintf("invalid sentence count %q", raw))
			return
		}
	}
	if n < 0 {
		respondWithError(w, http.StatusBadRequest, "sentence count must not be negative")
		return
	}
	if limit := m.config.Server.MaxParagraphSentences; limit > 0 && n > limit {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("sentence count must not exceed %d", limit))
		return
	}
	opts, err := m.options(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	paragraph, err := m.model.Paragraph(r.Context(), n, opts...)
	if err != nil {
		logger.Error("Failed to generate paragraph", slog.Int("sentences", n), "error", err)
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate paragraph: %v", err))
		return
	}
	respondWithJSON(w, http.StatusOK, ParagraphResponse{Paragraph: paragraph, Sentences: n})
}

// handleStats reports statistics about the loaded chain.
func (m *MarkovAPI) handleStats(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	respondWithJSON(w, http.StatusOK, m.model.Stats())
}
