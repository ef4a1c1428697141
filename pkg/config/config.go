package config

import (
	"errors"
	"fmt"

	"github.com/joeshaw/envdecode"
)

// Config holds CLI defaults.
type Config struct {
	// LogLevel. ENV: ATTRKIT_LOG_LEVEL
	LogLevel string `env:"ATTRKIT_LOG_LEVEL,strict"`
	// LogFormat is one of text, logfmt, json. ENV: ATTRKIT_LOG_FORMAT
	LogFormat string `env:"ATTRKIT_LOG_FORMAT,strict"`
	// Theme is the path of a partial theme file. ENV: ATTRKIT_THEME
	Theme string `env:"ATTRKIT_THEME,strict"`
	// ShowInherited keeps inherited members. ENV: ATTRKIT_SHOW_INHERITED
	ShowInherited bool `env:"ATTRKIT_SHOW_INHERITED,strict"`
	// ShowIncluded keeps included members. ENV: ATTRKIT_SHOW_INCLUDED
	ShowIncluded bool `env:"ATTRKIT_SHOW_INCLUDED,strict"`
}

// Default returns the configuration used when no environment variable is
// set.
func Default() Config {
	return Config{
		LogLevel:      "warn",
		LogFormat:     "text",
		ShowInherited: true,
		ShowIncluded:  true,
	}
}

// FromEnv returns [Default] overridden by any ATTRKIT_* variables that are
// set.
func FromEnv() (Config, error) {
	cfg := Default()

	err := envdecode.Decode(&cfg)
	if err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Default(), fmt.Errorf("decode environment: %w", err)
	}

	return cfg, nil
}
