package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file name looked up in the search path.
const FileName = "quest.yaml"

// Load loads the quest configuration.
// Search order: customPath -> ~/.realmquest/quest.yaml -> ./configs/quest.yaml -> embedded default
//
// Only an explicit customPath reports read or validation errors; discovered
// files that fail are skipped in favor of the next candidate.
func Load(customPath string) (QuestConfig, error) {
	if customPath != "" {
		return LoadFile(customPath)
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if cfg, err := LoadFile(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, err := LoadFile(filepath.Join("configs", FileName)); err == nil {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultQuestYAML)
	if err != nil {
		return DefaultQuestConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadFile reads and parses a single configuration file.
func LoadFile(path string) (QuestConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return QuestConfig{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return QuestConfig{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse validates a YAML document against the schema, layers it onto
// DefaultQuestConfig and checks the result for consistency.
func Parse(data []byte) (QuestConfig, error) {
	if err := validateSchema(data); err != nil {
		return QuestConfig{}, err
	}

	cfg := DefaultQuestConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return QuestConfig{}, fmt.Errorf("failed to parse yaml: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return QuestConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".realmquest", filename)
}
