package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds server configuration loaded from /etc/webfront/config.yaml.
// Zero values mean "use the built-in default"; the serve command merges
// flags over the file and fills in defaults last.
type Config struct {
	ListenAddr  string  `yaml:"listen_addr"`
	AssetRoot   string  `yaml:"asset_root"`
	WatchAssets bool    `yaml:"watch_assets"`
	MaxRPS      float64 `yaml:"max_rps"`
	Burst       int     `yaml:"burst"`
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return "/etc/webfront/config.yaml"
}

// Load reads a YAML config file from path. If the file does not exist,
// it returns an empty Config and no error. An empty or all-comment file
// also returns an empty Config with no error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
