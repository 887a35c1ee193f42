// Package configs loads and validates the YAML run configuration.
package configs

import (
	"GoScribeAI/app/clients"
	"GoScribeAI/app/models"
)

type Config struct {
	Backend             BackendConfig    `yaml:"backend" validate:"required"`
	ModelProfiles       models.Profiles  `yaml:"model_profiles"`
	Book                BookConfig       `yaml:"book"`
	Lore                LoreConfig       `yaml:"lore"`
	Clients             []clients.Config `yaml:"clients,omitempty"`
	Retrieval           RetrievalConfig  `yaml:"retrieval"`
	HistoryDB           string           `yaml:"history_db,omitempty"`
	OutputDir           string           `yaml:"output_dir" validate:"required"`
	RestrictedWordsFile string           `yaml:"restricted_words_file,omitempty"`
}

type BackendConfig struct {
	Type           string `yaml:"type" validate:"oneof=llm openai"`
	BaseURL        string `yaml:"base_url,omitempty"`
	APIKey         string `yaml:"api_key,omitempty"`
	Model          string `yaml:"model" validate:"required"`
	EmbeddingModel string `yaml:"embedding_model,omitempty"`
}

type BookConfig struct {
	NumChapters   int `yaml:"num_chapters" validate:"gte=1"`
	NumCharacters int `yaml:"num_characters" validate:"gte=1"`
}

type LoreConfig struct {
	NumEras          int `yaml:"num_eras" validate:"gte=1"`
	NumFactions      int `yaml:"num_factions" validate:"gte=1"`
	NumCharacters    int `yaml:"num_characters" validate:"gte=1"`
	NumConflicts     int `yaml:"num_conflicts" validate:"gte=1"`
	ChaptersPerRoute int `yaml:"chapters_per_route" validate:"gte=1"`
}

type RetrievalConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Words stripped out during the vocabulary edit pass when no word file is
// configured.
var defaultRestrictedWords = []string{
	"very", "really", "just", "quite", "suddenly", "basically", "actually", "literally",
}

func (c *Config) applyDefaults() {
	if c.Backend.Type == "" {
		c.Backend.Type = "llm"
	}
	if c.Book.NumChapters == 0 {
		c.Book.NumChapters = 8
	}
	if c.Book.NumCharacters == 0 {
		c.Book.NumCharacters = 4
	}
	if c.Lore.NumEras == 0 {
		c.Lore.NumEras = 4
	}
	if c.Lore.NumFactions == 0 {
		c.Lore.NumFactions = 4
	}
	if c.Lore.NumCharacters == 0 {
		c.Lore.NumCharacters = 5
	}
	if c.Lore.NumConflicts == 0 {
		c.Lore.NumConflicts = 3
	}
	if c.Lore.ChaptersPerRoute == 0 {
		c.Lore.ChaptersPerRoute = 10
	}
	if c.OutputDir == "" {
		c.OutputDir = "./output"
	}

	defaults := models.DefaultProfiles()
	mergeProfile(&c.ModelProfiles.CharacterGeneration, defaults.CharacterGeneration)
	mergeProfile(&c.ModelProfiles.Creative, defaults.Creative)
	mergeProfile(&c.ModelProfiles.Review, defaults.Review)
}

func mergeProfile(p *models.Profile, def models.Profile) {
	if p.Temperature == 0 {
		p.Temperature = def.Temperature
	}
	if p.TopP == 0 {
		p.TopP = def.TopP
	}
	if p.MaxOutputTokens == 0 {
		p.MaxOutputTokens = def.MaxOutputTokens
	}
}
