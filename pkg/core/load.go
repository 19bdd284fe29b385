package core

import (
	"fmt"
	"os"

	"github.com/joeydtaylor/steeze-plugin/pkg/manifest"
	toml "github.com/pelletier/go-toml/v2"
)

// LoadConfig reads, decodes and validates the manifest at path.
func LoadConfig(path string) (manifest.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return manifest.Config{}, fmt.Errorf("read manifest: %w", err)
	}
	return ParseConfig(b)
}

func ParseConfig(b []byte) (manifest.Config, error) {
	var cfg manifest.Config
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return manifest.Config{}, fmt.Errorf("decode manifest: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return manifest.Config{}, err
	}
	return cfg, nil
}

// Unresolved lists handler names the manifest references but nothing registered.
func Unresolved(cfg manifest.Config) []string {
	var missing []string
	for _, n := range cfg.HandlerNames() {
		if _, ok := Lookup(n); !ok {
			missing = append(missing, n)
		}
	}
	return missing
}
