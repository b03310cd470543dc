// Package config loads CLI-wide defaults from ~/.topo/config.yaml.
// Adapted from the teacher's internal/config/config.go + wing.go +
// paths.go, collapsed from a user-then-project merge to a single
// user-config layer since this system has no project-local override
// concept (see DESIGN.md).
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config carries CLI-wide default values loaded from the config file.
// No operation and no cmd/topo subcommand reads it; each uses its own
// built-in defaults.
type Config struct {
	DefaultField string  `yaml:"default_field"`
	DefaultSeed  int64   `yaml:"default_seed"`
	CachePath    string  `yaml:"cache_path"`
	BM25K1       float64 `yaml:"bm25_k1"`
	BM25B        float64 `yaml:"bm25_b"`
	LSHBands     int     `yaml:"lsh_bands"`
	LSHRows      int     `yaml:"lsh_rows"`
}

// Default returns the built-in defaults used when no config file exists
// or a field is left unset in one that does.
func Default() Config {
	return Config{
		DefaultField: "content",
		DefaultSeed:  42,
		CachePath:    "",
		BM25K1:       1.5,
		BM25B:        0.75,
		LSHBands:     16,
		LSHRows:      8,
	}
}

// Path returns the default config file location, ~/.topo/config.yaml.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".topo", "config.yaml"), nil
}

// Load reads the config file at path, merging it over Default(). A
// missing file is not an error: it yields the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadDefaultPath loads the config at the default path, falling back to
// built-in defaults on any resolution failure.
func LoadDefaultPath() Config {
	path, err := Path()
	if err != nil {
		return Default()
	}
	cfg, err := Load(path)
	if err != nil {
		return Default()
	}
	return cfg
}
