// Package clients connects pipeline notices to external messaging services.
package clients

import (
	"GoScribeAI/app/pipeline"
)

// Interface is a connected notification client. Every client receives every
// pipeline notice; delivery failures are logged, never fatal.
type Interface interface {
	pipeline.Notifier
}

// Config defines the configuration for a client connector
type Config struct {
	Type    string            `yaml:"type" json:"type"`
	Enabled bool              `yaml:"enabled" json:"enabled"`
	Config  map[string]string `yaml:"config,omitempty" json:"config,omitempty"`
}
