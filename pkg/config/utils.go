package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"pip-follow/pkg/logger"
)

// initializeConfig creates or loads the configuration.
func initializeConfig(providedPath string, defaultPath string, log *logger.Logger) (*Config, error) {
	var config *Config
	var err error

	// Try provided path first if specified
	if providedPath != "" {
		config, err = loadConfigFromPath(providedPath, log)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from provided path: %w", err)
		}
		return config, nil
	}

	// Try default path, create if doesn't exist
	if _, err := os.Stat(defaultPath); os.IsNotExist(err) {
		config, err = DefaultConfig(log)
		if err != nil {
			return nil, err
		}

		if err := writeConfigFile(defaultPath, config); err != nil {
			return nil, err
		}
		log.Info("Wrote default configuration", "path", defaultPath)
		return config, nil
	}

	config, err = loadConfigFromPath(defaultPath, log)
	if err != nil {
		log.Warn("Falling back to default configuration", "path", defaultPath)
		config, err = DefaultConfig(log)
		if err != nil {
			return nil, err
		}
	}

	return config, nil
}

// writeConfigFile persists a configuration as indented JSON.
func writeConfigFile(path string, config *Config) error {
	data, err := json.MarshalIndent(struct {
		TitlePattern  string `json:"title_pattern"`
		AppIDPattern  string `json:"app_id_pattern"`
		NotifyCommand string `json:"notify_command"`
	}{
		TitlePattern:  config.titlePattern,
		AppIDPattern:  config.appIDPattern,
		NotifyCommand: config.notifyCommand,
	}, "", "    ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// FindConfig locates and initializes the configuration.
func FindConfig(providedPath string, log *logger.Logger) (*Config, error) {
	log.Info("Looking for configuration", "provided_path", providedPath)

	// Get user config directory
	homeConfigDir, err := os.UserConfigDir()
	if err != nil {
		log.Error("Failed to get user config directory", err)
		return nil, err
	}

	// Setup default paths
	defaultConfigDir := filepath.Join(homeConfigDir, "pip-follow")
	defaultConfigPath := filepath.Join(defaultConfigDir, "config.json")

	log.Debug("Configuration paths",
		"config_dir", defaultConfigDir,
		"config_path", defaultConfigPath)

	if err := os.MkdirAll(defaultConfigDir, 0755); err != nil {
		log.Error("Failed to create config directory", err, "path", defaultConfigDir)
		return nil, err
	}

	return initializeConfig(providedPath, defaultConfigPath, log)
}
