package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/CTAG07/markovtext/pkg/markov"
	"github.com/CTAG07/markovtext/pkg/templating"
)

const shutdownTimeout = 10 * time.Second

// Server wires the API handlers and the optional template pages together.
type Server struct {
	config    *Config
	logger    *slog.Logger
	tm        *templating.TemplateManager
	markovAPI *MarkovAPI
	serverAPI *ServerAPI
	mux       *http.ServeMux
}

// NewServer creates the server and registers its routes. tm may be nil, in
// which case only the API is served.
func NewServer(config *Config, logger *slog.Logger, model *markov.Model, tm *templating.TemplateManager, actionChan chan string) *Server {
	s := &Server{
		config:    config,
		logger:    logger,
		tm:        tm,
		markovAPI: NewMarkovAPI(model, config, logger),
		serverAPI: NewServerAPI(config, actionChan, tm, logger),
		mux:       http.NewServeMux(),
	}
	s.markovAPI.RegisterRoutes(s.mux)
	s.serverAPI.RegisterRoutes(s.mux)
	s.mux.HandleFunc("/", s.handlePage)
	return s
}

// Handler returns the root handler with request IDs attached.
func (s *Server) Handler() http.Handler {
	return withRequestID(s.mux)
}

// handlePage renders a random template filled with generated text.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	if s.tm == nil {
		http.NotFound(w, r)
		return
	}
	templateName := s.tm.GetRandomTemplate()
	if templateName == "" {
		http.NotFound(w, r)
		return
	}
	logger := requestLogger(s.logger, r)
	logger.Info("Serving page", "template", templateName, "path", r.URL.Path, "remote_addr", r.RemoteAddr)

	var buf bytes.Buffer
	data := TemplateInput{Corpus: s.config.Corpus.DisplayName(), Path: r.URL.Path}
	if err := s.tm.Execute(&buf, templateName, data); err != nil {
		logger.Error("Failed to execute template", "template", templateName, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Cache-Control", "no-store, no-cache")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (a *app) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve generated text over HTTP",
		Long: `Serve generated text over HTTP. The JSON API lives under /api/; if the
template directory holds any *.tmpl.html files, every other path renders a
random one of them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			model, err := a.loadModel(ctx)
			if err != nil {
				return err
			}

			var tm *templating.TemplateManager
			if dir := a.config.Templates.TemplateDir; dir != "" {
				if _, statErr := os.Stat(dir); statErr == nil {
					limits := a.config.Templates.TemplateConfig
					if tm, err = templating.NewTemplateManager(a.logger, model, &limits, dir); err != nil {
						return fmt.Errorf("failed to create template manager: %w", err)
					}
				} else {
					a.logger.Warn("Template directory unavailable, serving API only", "template_dir", dir, "error", statErr)
				}
			}

			actionChan := make(chan string, 1)
			server := NewServer(a.config, a.logger, model, tm, actionChan)
			httpServer := &http.Server{
				Addr:        a.config.Server.Addr,
				Handler:     server.Handler(),
				ReadTimeout: time.Duration(a.config.Server.ReadTimeoutSec) * time.Second,
			}

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.run(ctx, httpServer, actionChan)
		},
	}
}

// run serves until ctx is cancelled or the listener fails, handling actions
// sent by the API in between.
func (s *Server) run(ctx context.Context, httpServer *http.Server, actionChan chan string) error {
	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("Starting markovtext server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	for {
		select {
		case err := <-errChan:
			if err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		case action := <-actionChan:
			if action == actionRefresh && s.tm != nil {
				if err := s.tm.Refresh(); err != nil {
					s.logger.Error("Template refresh failed", "error", err)
				}
				continue
			}
			s.logger.Info("Stopping server for " + action)
		case <-ctx.Done():
			s.logger.Info("Signal received, shutting down")
		}
		break
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("Server stopped")
	return nil
}
