package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markovtext.json")

	config, err := LoadConfig(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var written Config
	require.NoError(t, json.Unmarshal(data, &written))
	assert.Equal(t, DefaultConfig(), &written)
}

func TestLoadConfigMergesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markovtext.json")
	partial := `{
  "server_config": {"addr": ":9000"},
  "generate_config": {"seed": 42},
  "template_config": {"max_paragraphs": 3, "template_dir": "/srv/tmpl"}
}`
	require.NoError(t, os.WriteFile(path, []byte(partial), 0644))

	config, err := LoadConfig(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", config.Server.Addr)
	assert.Equal(t, uint64(42), config.Generate.Seed)
	assert.Equal(t, 3, config.Templates.MaxParagraphs)
	assert.Equal(t, "/srv/tmpl", config.Templates.TemplateDir)

	// Untouched keys keep their defaults.
	defaults := DefaultConfig()
	assert.Equal(t, defaults.Server.LogLevel, config.Server.LogLevel)
	assert.Equal(t, defaults.Templates.MaxSentences, config.Templates.MaxSentences)
	assert.Equal(t, defaults.Corpus.DatabasePath, config.Corpus.DatabasePath)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markovtext.json")
	t.Setenv("MARKOVTEXT_SERVER_CONFIG_LOG_LEVEL", "debug")
	t.Setenv("MARKOVTEXT_CORPUS_CONFIG_NAME", "poems")
	t.Setenv("MARKOVTEXT_TEMPLATE_CONFIG_MAX_REPEAT", "7")

	config, err := LoadConfig(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "debug", config.Server.LogLevel)
	assert.Equal(t, "poems", config.Corpus.Name)
	assert.Equal(t, 7, config.Templates.MaxRepeat)
}

func TestLoadConfigInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markovtext.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadConfig(viper.New(), path)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestCorpusDisplayName(t *testing.T) {
	c := &CorpusConfig{Name: "poems"}
	assert.Equal(t, "poems", c.DisplayName())

	c.File = "corpus.txt"
	assert.Equal(t, "corpus.txt", c.DisplayName())

	assert.Empty(t, (&CorpusConfig{}).DisplayName())
}
