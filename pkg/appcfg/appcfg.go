package appcfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the application-wide defaults. Per-command flags override
// the values read here.
type Config struct {
	LogLevel             string `yaml:"log_level"` // "debug"|"info"|"warn"|"error"
	HideSecretsInConsole bool   `yaml:"hide_secrets_in_console"`
	Workers              int    `yaml:"workers"`

	Explorer ExplorerConfig `yaml:"explorer"`
}

// ExplorerConfig controls the block-explorer HTTP clients.
type ExplorerConfig struct {
	TimeoutSeconds int      `yaml:"timeout_seconds"`
	UserAgent      string   `yaml:"user_agent"`
	DelaySeconds   float64  `yaml:"delay_seconds"` // pause between addresses
	Order          []string `yaml:"order"`         // fallback order for check-multi
}

func Default() *Config {
	return &Config{
		LogLevel:             "info",
		HideSecretsInConsole: true,
		Workers:              1,
		Explorer: ExplorerConfig{
			TimeoutSeconds: 15,
			UserAgent:      "walletkit/1.0",
			DelaySeconds:   3.0,
			Order:          []string{"blockcypher", "blockchain", "blockstream"},
		},
	}
}

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open app config %q: %w", path, err)
	}
	defer f.Close()

	c := Default()
	if err := yaml.NewDecoder(f).Decode(c); err != nil {
		return nil, fmt.Errorf("decode app yaml %q: %w", path, err)
	}

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Explorer.TimeoutSeconds <= 0 {
		c.Explorer.TimeoutSeconds = 15
	}
	if len(c.Explorer.Order) == 0 {
		c.Explorer.Order = Default().Explorer.Order
	}
	return c, nil
}
