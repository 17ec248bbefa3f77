package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// PipelinePath points at a single .hcl file or a directory of them.
	PipelinePath string
	// StatusPath optionally points at a JSON status snapshot to overlay.
	StatusPath string

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it, or an error describing the
// first problem found.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.PipelinePath == "" {
		return nil, errors.New("PipelinePath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
