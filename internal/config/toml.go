// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Translator TranslatorConfig `toml:"translator"`
	Practice   PracticeConfig   `toml:"practice"`
	Log        LogConfig        `toml:"log"`
}

// TranslatorConfig maps translation endpoint settings.
type TranslatorConfig struct {
	URL     *string `toml:"url"`
	Timeout *string `toml:"timeout"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	RichPunct *bool `toml:"rich-punct"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level  *string `toml:"level"`
	Format *string `toml:"format"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
