package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigExpandsEnvAndMergesDefaults(t *testing.T) {
	t.Setenv("TEST_API_KEY", "sk-123")
	path := writeConfig(t, `
backend:
    type: openai
    api_key: ${TEST_API_KEY}
    model: gpt-4o-mini
book:
    num_chapters: 12
model_profiles:
    creative:
        temperature: 1.1
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "sk-123", cfg.Backend.APIKey)
	require.Equal(t, 12, cfg.Book.NumChapters)
	require.Equal(t, 4, cfg.Book.NumCharacters)
	require.Equal(t, "./output", cfg.OutputDir)

	// explicit values survive, unset fields fall back to the defaults
	require.Equal(t, 1.1, cfg.ModelProfiles.Creative.Temperature)
	require.Equal(t, 0.95, cfg.ModelProfiles.Creative.TopP)
	require.Equal(t, 1.5, cfg.ModelProfiles.CharacterGeneration.Temperature)
	require.Equal(t, 1024, cfg.ModelProfiles.Review.MaxOutputTokens)
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, `
backend:
    type: carrier_pigeon
    model: gpt-4o-mini
`)
	_, err := LoadConfig(path)
	require.ErrorContains(t, err, "validate configs")
}

func TestLoadConfigRequiresModel(t *testing.T) {
	path := writeConfig(t, `
backend:
    type: llm
`)
	_, err := LoadConfig(path)
	require.ErrorContains(t, err, "validate configs")
}

func TestLoadRestrictedWords(t *testing.T) {
	words, err := LoadRestrictedWords("")
	require.NoError(t, err)
	require.Contains(t, words, "suddenly")

	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("# weak verbs\nWalked\n\ngazed\n"), 0o644))
	words, err = LoadRestrictedWords(path)
	require.NoError(t, err)
	require.Equal(t, []string{"walked", "gazed"}, words)
}
