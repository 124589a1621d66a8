package templating

import (
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"sync"

	"github.com/CTAG07/markovtext/pkg/markov"
)

// TemplateManager loads templates from a directory and renders them with
// text generated from a markov.Model. All methods are concurrent-safe.
type TemplateManager struct {
	logger         *slog.Logger
	config         *TemplateConfig
	model          *markov.Model
	templates      *template.Template
	cleanTemplates *template.Template
	templateNames  []string
	funcMap        template.FuncMap
	templateDir    string
	mu             sync.RWMutex
}

// NewTemplateManager creates a TemplateManager that reads its templates from
// templateDir and performs an initial Refresh. A nil config is replaced by
// DefaultConfig.
func NewTemplateManager(logger *slog.Logger, model *markov.Model, config *TemplateConfig, templateDir string) (*TemplateManager, error) {
	if config == nil {
		cfg := DefaultConfig()
		config = &cfg
	}
	tm := &TemplateManager{
		logger:      logger,
		model:       model,
		config:      config,
		templateDir: templateDir,
	}
	tm.funcMap = tm.makeFuncMap()

	if err := tm.Refresh(); err != nil {
		return nil, err
	}

	logger.Info("Template manager initialized", slog.String("template_dir", templateDir))
	return tm, nil
}

func (tm *TemplateManager) makeFuncMap() template.FuncMap {
	return template.FuncMap{
		// Content (funcs_content.go)
		"markovSentence":   tm.markovSentence,
		"markovParagraph":  tm.markovParagraph,
		"markovParagraphs": tm.markovParagraphs,

		// Logic (funcs_logic.go)
		"repeat":       tm.repeat,
		"list":         list,
		"randomChoice": randomChoice,
		"randomInt":    randomInt,

		// Arithmetic (funcs_simple.go)
		"add":   add,
		"sub":   sub,
		"mod":   mod,
		"inc":   inc,
		"dec":   dec,
		"isSet": isSet,
	}
}

// SetConfig replaces the safety limits used by the template functions.
func (tm *TemplateManager) SetConfig(config *TemplateConfig) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.config = config
}

// SetModel swaps the model used for generated content.
func (tm *TemplateManager) SetModel(model *markov.Model) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.model = model
}

// Refresh reloads all templates and partials from the template directory.
// A directory without templates is not an error; it only yields an empty set.
func (tm *TemplateManager) Refresh() error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	filePattern := filepath.Join(tm.templateDir, "*.tmpl.html")
	tm.logger.Debug("Loading template files", slog.String("pattern", filePattern))

	parsed, err := template.New("").Funcs(tm.funcMap).ParseGlob(filePattern)
	names := []string{}
	if err != nil {
		if !isNoMatch(err) {
			tm.logger.Error("Failed to parse template files", slog.String("error", err.Error()))
			return err
		}
		parsed = template.New("").Funcs(tm.funcMap)
	} else {
		for _, t := range parsed.Templates() {
			if strings.HasSuffix(t.Name(), ".tmpl.html") {
				names = append(names, t.Name())
			}
		}
	}

	filePattern = filepath.Join(tm.templateDir, "*.part.html")
	tm.logger.Debug("Loading partial files", slog.String("pattern", filePattern))

	withParts, err := parsed.ParseGlob(filePattern)
	if err != nil {
		if !isNoMatch(err) {
			tm.logger.Error("Failed to parse partial files", slog.String("error", err.Error()))
			return err
		}
		withParts = parsed
	}

	if len(names) == 0 {
		tm.logger.Warn("No template files found", slog.String("template_dir", tm.templateDir))
	}

	clean, err := withParts.Clone()
	if err != nil {
		return fmt.Errorf("could not clone templates: %w", err)
	}

	tm.templates = withParts
	tm.cleanTemplates = clean
	tm.templateNames = names
	tm.logger.Info("Loaded templates", slog.Int("count", len(names)))
	return nil
}

func isNoMatch(err error) bool {
	return strings.Contains(err.Error(), "pattern matches no files")
}

// Execute renders the named template to w.
func (tm *TemplateManager) Execute(w io.Writer, name string, data any) error {
	if name == "" {
		return nil
	}
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.templates.ExecuteTemplate(w, name, data)
}

// ExecuteTemplateString parses content against the loaded partials and
// executes it once, without adding it to the template set.
func (tm *TemplateManager) ExecuteTemplateString(w io.Writer, content string, data any) error {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	set, err := tm.cleanTemplates.Clone()
	if err != nil {
		return fmt.Errorf("failed to clone templates: %w", err)
	}
	t, err := set.Parse(content)
	if err != nil {
		return fmt.Errorf("failed to parse template string: %w", err)
	}
	return t.Execute(w, data)
}

// GetRandomTemplate returns the name of a random full template, or "" if none
// are loaded.
func (tm *TemplateManager) GetRandomTemplate() string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	if len(tm.templateNames) == 0 {
		return ""
	}
	return tm.templateNames[rand.IntN(len(tm.templateNames))]
}

// GetConfig returns a copy of the current configuration.
func (tm *TemplateManager) GetConfig() TemplateConfig {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return *tm.config
}

// GetTemplateNames returns the names of every loaded template and partial.
func (tm *TemplateManager) GetTemplateNames() []string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	var names []string
	for _, t := range tm.templates.Templates() {
		// The unnamed root template is not executable on its own.
		if strings.HasSuffix(t.Name(), ".html") {
			names = append(names, t.Name())
		}
	}
	return names
}
