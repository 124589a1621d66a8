package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/CTAG07/markovtext/pkg/templating"
	"github.com/go-viper/mapstructure/v2"
	"github.com/natefinch/atomic"
	"github.com/spf13/viper"
)

const envPrefix = "MARKOVTEXT"

// ServerConfig holds the configuration for the HTTP server and logging.
type ServerConfig struct {
	Addr                  string `json:"addr"`
	LogLevel              string `json:"log_level"`
	ReadTimeoutSec        int    `json:"read_timeout_sec"`
	MaxParagraphSentences int    `json:"max_paragraph_sentences"`
}

// CorpusConfig selects the corpus that feeds the model. File takes precedence
// over Name when both are set.
type CorpusConfig struct {
	File         string `json:"file"`
	Name         string `json:"name"`
	DatabasePath string `json:"database_path"`
}

// DisplayName is the name shown to templates for the configured corpus.
func (c *CorpusConfig) DisplayName() string {
	if c.File != "" {
		return c.File
	}
	return c.Name
}

// GenerateConfig holds defaults applied to every generation request.
type GenerateConfig struct {
	// Seed makes output reproducible. 0 uses the shared random source.
	Seed     uint64 `json:"seed"`
	MaxWords int    `json:"max_words"`
}

// TemplateConfig extends the templating limits with the directory to load from.
type TemplateConfig struct {
	TemplateDir string `json:"template_dir"`
	templating.TemplateConfig
}

// Config is the top-level configuration struct that aggregates all other configs.
type Config struct {
	Server    *ServerConfig   `json:"server_config"`
	Corpus    *CorpusConfig   `json:"corpus_config"`
	Generate  *GenerateConfig `json:"generate_config"`
	Templates *TemplateConfig `json:"template_config"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: &ServerConfig{
			Addr:                  ":7280",
			LogLevel:              "info",
			ReadTimeoutSec:        10,
			MaxParagraphSentences: 100,
		},
		Corpus: &CorpusConfig{
			DatabasePath: "./markovtext.db",
		},
		Generate: &GenerateConfig{
			MaxWords: 0,
		},
		Templates: &TemplateConfig{
			TemplateDir:    "./templates",
			TemplateConfig: templating.DefaultConfig(),
		},
	}
}

// LoadConfig reads the JSON configuration at path into v and decodes it.
// Values missing from the file keep their defaults, and MARKOVTEXT_*
// environment variables override both, e.g. MARKOVTEXT_SERVER_CONFIG_ADDR.
// If the file doesn't exist, it is created with default values.
func LoadConfig(v *viper.Viper, path string) (*Config, error) {
	config := DefaultConfig()
	defaults, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal default config: %w", err)
	}

	v.SetConfigType("json")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Reading the defaults first registers every key, which AutomaticEnv
	// needs in order to apply overrides during Unmarshal.
	if err = v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err = v.MergeConfig(bytes.NewReader(file)); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case os.IsNotExist(err):
		if err = atomic.WriteFile(path, bytes.NewReader(defaults)); err != nil {
			// The defaults are still usable, so this is only a warning.
			fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
		}
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = v.Unmarshal(config, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "json"
		dc.Squash = true
	}); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return config, nil
}
