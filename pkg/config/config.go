/*
Package config manages TOML config for wordgram.
*/
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bastiangx/wordgram/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Search SearchConfig `toml:"search"`
	Dict   DictConfig   `toml:"dict"`
	Server ServerConfig `toml:"server"`
}

// SearchConfig has options for the anagram search itself.
type SearchConfig struct {
	// MaxWords bounds non-completing words in lazy mode, -1 for no bound.
	MaxWords               int  `toml:"max_words"`
	Limit                  int  `toml:"limit"`
	Prune                  bool `toml:"prune"`
	CaseSensitiveExclusion bool `toml:"case_sensitive_exclusion"`
	Sort                   bool `toml:"sort"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	Path      string `toml:"path"`
	MaxWords  int    `toml:"max_words"`
	Dedupe    bool   `toml:"dedupe"`
	CacheSize int    `toml:"cache_size"`
}

// ServerConfig has IPC server related options.
type ServerConfig struct {
	MaxLimit int `toml:"max_limit"`
	MaxInput int `toml:"max_input"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/wordgram
// 2. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "wordgram")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: ~/.config/wordgram/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if utils.FileExists(customConfigPath) {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s. Trying default path...", customConfigPath)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			MaxWords:               -1,
			Limit:                  0,
			Prune:                  true,
			CaseSensitiveExclusion: false,
			Sort:                   false,
		},
		Dict: DictConfig{
			Path:      utils.DefaultDictPath,
			MaxWords:  0,
			Dedupe:    true,
			CacheSize: 256,
		},
		Server: ServerConfig{
			MaxLimit: 1000,
			MaxInput: 64,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file, recovering what it can from a broken one
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	unknown, err := utils.LoadTOMLFile(configPath, config)
	if err != nil {
		return tryPartialParse(configPath)
	}
	if len(unknown) > 0 {
		log.Warnf("Ignoring unknown keys in %s: %s", configPath, strings.Join(unknown, ", "))
	}
	return config, nil
}

// tryPartialParse keeps every key that still has the right type
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	table, err := utils.ParseTOMLTable(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := table.Section("search"); ok {
		section.SetInt("max_words", &config.Search.MaxWords)
		section.SetInt("limit", &config.Search.Limit)
		section.SetBool("prune", &config.Search.Prune)
		section.SetBool("case_sensitive_exclusion", &config.Search.CaseSensitiveExclusion)
		section.SetBool("sort", &config.Search.Sort)
	}
	if section, ok := table.Section("dict"); ok {
		section.SetString("path", &config.Dict.Path)
		section.SetInt("max_words", &config.Dict.MaxWords)
		section.SetBool("dedupe", &config.Dict.Dedupe)
		section.SetInt("cache_size", &config.Dict.CacheSize)
	}
	if section, ok := table.Section("server"); ok {
		section.SetInt("max_limit", &config.Server.MaxLimit)
		section.SetInt("max_input", &config.Server.MaxInput)
	}
	return config, nil
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "builtin defaults"
	}
	return utils.GetAbsolutePath(configPath)
}
