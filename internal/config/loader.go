package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "crossing.yaml"

// SourceEmbedded is reported when the embedded default file was used.
const SourceEmbedded = "embedded"

// LoadCrossing loads the simulation tuning and reports where it came from.
// Search order: customPath -> ~/.crossing/configs/crossing.yaml -> ./configs/crossing.yaml -> embedded default.
//
// Files are decoded on top of the defaults, so a file only needs the keys it changes.
// A custom path that cannot be read, parsed or validated is an error; files found
// on the search path are skipped when broken.
func LoadCrossing(customPath string) (CrossingConfig, string, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return CrossingConfig{}, "", fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return CrossingConfig{}, "", fmt.Errorf("failed to load config %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	candidates := []string{filepath.Join("configs", configFile)}
	if p := userConfigPath(configFile); p != "" {
		candidates = append([]string{p}, candidates...)
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data); err == nil {
			return cfg, path, nil
		}
	}

	cfg, err := Parse(defaultCrossingYAML)
	if err != nil {
		return DefaultCrossingConfig(), "builtin", nil
	}
	return cfg, SourceEmbedded, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (CrossingConfig, error) {
	cfg := DefaultCrossingConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CrossingConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := mergeBiomes(data, &cfg); err != nil {
		return CrossingConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return CrossingConfig{}, err
	}
	return cfg, nil
}

// mergeBiomes redecodes each biome entry on top of its default. yaml.v3
// decodes map values into zero structs, which would drop the unset keys.
func mergeBiomes(data []byte, cfg *CrossingConfig) error {
	var raw struct {
		Biomes map[string]yaml.Node `yaml:"biomes"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Biomes == nil {
		cfg.Biomes = make(map[string]BiomeRules, len(raw.Biomes))
	}
	defaults := DefaultCrossingConfig().Biomes
	for id, node := range raw.Biomes {
		rules := defaults[id]
		if err := node.Decode(&rules); err != nil {
			return fmt.Errorf("failed to parse biomes.%s: %w", id, err)
		}
		cfg.Biomes[id] = rules
	}
	return nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".crossing", "configs", filename)
}
