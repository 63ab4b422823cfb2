package config

import (
	"fmt"

	"pip-follow/pkg/logger"
)

const (
	// DefaultTitlePattern matches the title Firefox gives its detached
	// Picture-in-Picture player window.
	DefaultTitlePattern = `^Picture-in-Picture$`

	// DefaultAppIDPattern matches firefox and derivatives (firefox-esr,
	// org.mozilla.firefox) by suffix.
	DefaultAppIDPattern = `firefox$`
)

// DefaultConfig creates a default configuration.
func DefaultConfig(log *logger.Logger) (*Config, error) {
	log.Debug("Creating default configuration")

	config := &Config{
		titlePattern:  DefaultTitlePattern,
		appIDPattern:  DefaultAppIDPattern,
		notifyCommand: "",
		log:           log,
	}

	log.Info("Created default configuration",
		"title_pattern", config.titlePattern,
		"app_id_pattern", config.appIDPattern)

	if err := config.compile(); err != nil {
		log.Error("Failed to compile default config patterns", err)
		return nil, fmt.Errorf("failed to compile default config: %w", err)
	}

	return config, nil
}
