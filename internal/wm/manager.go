package wm

import (
	"fmt"
	"os"

	"pip-follow/pkg/global"
)

// Manager selects and wraps the compositor backend for the session.
type Manager struct {
	compositor Compositor
}

// NewManager creates a compositor backend based on the session type.
func NewManager() (*Manager, error) {
	log := global.GetLogger()

	sessionType := os.Getenv("XDG_SESSION_TYPE")
	log.Info("Session type detected", "session", sessionType)

	if sessionType != "" && sessionType != "wayland" {
		return nil, fmt.Errorf("unsupported session type: %s (niri requires wayland)", sessionType)
	}

	if os.Getenv(NiriSocketEnv) == "" {
		return nil, fmt.Errorf("unsupported compositor: only niri is supported (%s is not set)", NiriSocketEnv)
	}

	log.Debug("Initializing compositor support", "type", "niri")
	compositor, err := NewNiri(log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize niri support: %w", err)
	}

	log.Info("Compositor initialized", "name", compositor.Name())
	return &Manager{compositor: compositor}, nil
}

// Compositor returns the selected backend.
func (m *Manager) Compositor() Compositor {
	return m.compositor
}
