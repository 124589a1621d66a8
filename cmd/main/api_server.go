package main

import (
	"log/slog"
	"net/http"

	"github.com/CTAG07/markovtext/pkg/templating"
)

const actionRefresh = "refresh"

// ServerAPI holds the dependencies for the server management handlers.
type ServerAPI struct {
	config     *Config
	actionChan chan string
	tm         *templating.TemplateManager
	logger     *slog.Logger
}

// VersionInfo defines the structure for build/version information.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
}

// NewServerAPI creates a new instance of the ServerAPI. tm may be nil when no
// templates are served.
func NewServerAPI(config *Config, actionChan chan string, tm *templating.TemplateManager, logger *slog.Logger) *ServerAPI {
	return &ServerAPI{
		config:     config,
		actionChan: actionChan,
		tm:         tm,
		logger:     logger,
	}
}

// RegisterRoutes sets up the routing for the server management endpoints.
func (a *ServerAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/health", a.handleHealth)
	mux.HandleFunc("/api/version", a.handleVersion)
	mux.HandleFunc("/api/config", a.handleConfig)
	mux.HandleFunc("/api/templates/refresh", a.handleRefresh)
}

func (a *ServerAPI) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *ServerAPI) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	respondWithJSON(w, http.StatusOK, VersionInfo{Version: Version, Commit: Commit, BuildDate: BuildDate})
}

// handleConfig returns the effective configuration after file, environment
// and flag values have been merged.
func (a *ServerAPI) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	respondWithJSON(w, http.StatusOK, a.config)
}

// handleRefresh queues a reload of the template directory.
func (a *ServerAPI) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	if a.tm == nil {
		respondWithError(w, http.StatusNotFound, "Templates are not enabled")
		return
	}
	a.signal(w, r, actionRefresh)
}

// signal hands action to the main loop without blocking the request.
func (a *ServerAPI) signal(w http.ResponseWriter, r *http.Request, action string) {
	select {
	case a.actionChan <- action:
		requestLogger(a.logger, r).Info("Server action requested", slog.String("action", action))
		respondWithJSON(w, http.StatusAccepted, map[string]string{"status": action + " initiated"})
	default:
		respondWithError(w, http.StatusConflict, "Another server action is already pending")
	}
}
