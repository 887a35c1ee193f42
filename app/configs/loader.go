package configs

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read configs file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err = yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	cfg.applyDefaults()

	if err = validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate configs: %w", err)
	}

	return &cfg, nil
}

// LoadRestrictedWords reads one word per line, ignoring blanks and comments.
// An empty path returns the built-in list.
func LoadRestrictedWords(path string) ([]string, error) {
	if path == "" {
		return defaultRestrictedWords, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read restricted words: %w", err)
	}
	var words []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.ToLower(line))
	}
	if len(words) == 0 {
		return defaultRestrictedWords, nil
	}
	return words, nil
}
