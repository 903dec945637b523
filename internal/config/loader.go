package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load reads the arcade configuration and validates it.
// Search order: customPath -> ~/.arcade/arcade.{yaml,toml} -> ./configs/arcade.{yaml,toml}
// -> embedded default. Files only need the keys they override.
// A custom path that cannot be read or parsed is an error; the other
// locations are skipped silently when missing or broken.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return Config{}, err
		}
		return cfg, cfg.Validate()
	}

	for _, path := range searchPaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if cfg, err := loadFile(path); err == nil {
			return cfg, cfg.Validate()
		}
	}

	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil
	}
	return cfg, cfg.Validate()
}

func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		dir := filepath.Join(home, ".arcade")
		paths = append(paths, filepath.Join(dir, "arcade.yaml"), filepath.Join(dir, "arcade.toml"))
	}
	return append(paths, filepath.Join("configs", "arcade.yaml"), filepath.Join("configs", "arcade.toml"))
}

// loadFile decodes a YAML or TOML file on top of the defaults.
func loadFile(path string) (Config, error) {
	cfg := Default()

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		meta, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Config{}, fmt.Errorf("config: unknown keys in %s: %s", path, strings.Join(keys, ", "))
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
