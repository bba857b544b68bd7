package runtimeconfig

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// LoadFile reads a TOML configuration file over the defaults. Unset keys
// keep their default values; the merged config is validated before return.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
