package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config is the layered CLI configuration: defaults, then sapwood.yaml,
// then SAPWOOD_* environment variables, then flags.
type Config struct {
	Log  LogConfig  `koanf:"log"`
	Mesh MeshConfig `koanf:"mesh"`
}

// LogConfig controls slog output.
type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn, error
}

// MeshConfig tunes mesh evaluation.
type MeshConfig struct {
	Cells   int `koanf:"cells"`   // marching cubes resolution
	Workers int `koanf:"workers"` // 0 means one per CPU
}

// configFiles are the config names probed in the working directory when no
// explicit --config is given.
var configFiles = []string{"sapwood.yaml", "sapwood.yml"}

// findConfigFile returns the config path to use, or "" for none.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range configFiles {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// loadConfig layers the configuration sources. A missing explicit config
// file is an error; a missing default one is not.
func loadConfig(explicit string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"log.level":    "info",
		"mesh.cells":   200,
		"mesh.workers": 0,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path := findConfigFile(explicit); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if explicit != "" || !os.IsNotExist(err) {
				return nil, fmt.Errorf("loading config %s: %w", path, err)
			}
		}
	}

	// SAPWOOD_LOG_LEVEL=debug -> log.level=debug
	if err := k.Load(env.Provider("SAPWOOD_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "SAPWOOD_")), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	// --mesh-cells -> mesh.cells
	if flags != nil {
		if err := k.Load(posflag.ProviderWithValue(flags, ".", k,
			func(key, value string) (string, interface{}) {
				return strings.ReplaceAll(key, "-", "."), value
			}), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
