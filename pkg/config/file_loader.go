package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"pip-follow/pkg/logger"
)

// compile validates and compiles the configured patterns.
// An empty app_id pattern compiles to a match-everything rule, which
// keeps "no app-id restriction" expressible from the config file.
func (c *Config) compile() error {
	titleRegex, err := regexp.Compile(c.titlePattern)
	if err != nil {
		return fmt.Errorf("invalid title pattern %q: %w", c.titlePattern, err)
	}

	appIDRegex, err := regexp.Compile(c.appIDPattern)
	if err != nil {
		return fmt.Errorf("invalid app_id pattern %q: %w", c.appIDPattern, err)
	}

	c.titleRegex = titleRegex
	c.appIDRegex = appIDRegex
	return nil
}

// LoadFromFile loads the configuration from a JSON file.
func (c *Config) LoadFromFile(path string, log *logger.Logger) error {
	log.Debug("Loading configuration from file", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error("Failed to read config file", err, "path", path)
		return err
	}
	log.Debug("Config file read successfully", "size_bytes", len(data))

	// Use a temporary struct to unmarshal JSON
	var temp struct {
		TitlePattern  string `json:"title_pattern"`
		AppIDPattern  string `json:"app_id_pattern"`
		NotifyCommand string `json:"notify_command"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		log.Error("Failed to parse config JSON", err)
		return err
	}
	log.Debug("Config JSON parsed successfully")

	if temp.TitlePattern == "" {
		return fmt.Errorf("config %s: title_pattern must not be empty", path)
	}

	// Assign to private fields
	c.titlePattern = temp.TitlePattern
	c.appIDPattern = temp.AppIDPattern
	c.notifyCommand = temp.NotifyCommand

	return c.compile()
}

// loadConfigFromPath loads the configuration from a file.
func loadConfigFromPath(path string, log *logger.Logger) (*Config, error) {
	config := &Config{log: log}
	if err := config.LoadFromFile(path, log); err != nil {
		return nil, err
	}
	return config, nil
}
