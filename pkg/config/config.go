package config

import (
	"regexp"

	"pip-follow/pkg/logger"
)

// Config holds the application configuration.
type Config struct {
	// Configurable via JSON file (private fields to enforce immutability)
	titlePattern  string
	appIDPattern  string
	notifyCommand string

	// Internal fields
	titleRegex *regexp.Regexp
	appIDRegex *regexp.Regexp
	log        *logger.Logger
}

// New creates a new Config instance with the provided logger.
func New(log *logger.Logger) *Config {
	return &Config{
		log: log,
	}
}

// GetTitlePattern returns the raw title pattern.
func (c *Config) GetTitlePattern() string {
	return c.titlePattern
}

// GetAppIDPattern returns the raw application id pattern.
func (c *Config) GetAppIDPattern() string {
	return c.appIDPattern
}

// GetNotifyCommand returns the custom notification command, if any.
func (c *Config) GetNotifyCommand() string {
	return c.notifyCommand
}

// TitleRegex returns the compiled title pattern.
func (c *Config) TitleRegex() *regexp.Regexp {
	return c.titleRegex
}

// AppIDRegex returns the compiled application id pattern.
func (c *Config) AppIDRegex() *regexp.Regexp {
	return c.appIDRegex
}
