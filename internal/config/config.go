package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/penwyp/go-claude-statusline/internal/core/constants"
	"github.com/penwyp/go-claude-statusline/internal/core/pricing"
)

const fileName = ".go-claude-statusline.yaml"

// Config holds the settings that may come from the YAML file. Command line
// flags override any value set here.
type Config struct {
	Dirs             []string             `yaml:"dirs"`
	Timezone         string               `yaml:"timezone"`
	Output           string               `yaml:"output"`
	ContextWindow    int64                `yaml:"context_window"`
	EffectiveContext bool                 `yaml:"effective_context"`
	NoColor          bool                 `yaml:"no_color"`
	Width            int                  `yaml:"width"`
	LogFile          string               `yaml:"log_file"`
	LogLevel         string               `yaml:"log_level"`
	LogFormat        string               `yaml:"log_format"`
	Pricing          pricing.SourceConfig `yaml:"pricing"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Timezone:      "Local",
		Output:        "line",
		ContextWindow: constants.DefaultContextWindow,
		LogLevel:      "info",
		LogFormat:     "text",
		Pricing:       pricing.SourceConfig{PricingSource: pricing.SourceDefault},
	}
}

// DefaultPath returns ~/.go-claude-statusline.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fileName), nil
}

// Load reads the config at path over the defaults. A missing file yields the
// defaults; a malformed one is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
