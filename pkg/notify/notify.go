package notify

import (
	"fmt"
	"os/exec"

	"pip-follow/pkg/logger"
)

// NotificationType represents the type of notification
type NotificationType int

const (
	Error NotificationType = iota
	Info
)

const notificationTitle = "pip-follow"

// NotifyService handles system notifications
type NotifyService struct {
	log           *logger.Logger
	notifyCommand string
}

// NewNotifyService creates a new notification service
func NewNotifyService(notifyCommand string, log *logger.Logger) *NotifyService {
	return &NotifyService{
		log:           log,
		notifyCommand: notifyCommand,
	}
}

// Show displays a notification of the specified type. Delivery is best
// effort: a configured command is tried first, then the known desktop
// notification tools, and finally the log.
func (n *NotifyService) Show(message string, nType NotificationType) error {
	if n.notifyCommand != "" {
		if err := n.executeNotifyCommand(message, nType); err == nil {
			return nil
		}
		n.log.Warn("Custom notification command failed", "command", n.notifyCommand)
	}

	if err := n.trySystemNotification(notificationTitle, message, nType); err == nil {
		return nil
	}

	if nType == Error {
		n.log.Error("Notification (no desktop tool available)", nil, "message", message)
	} else {
		n.log.Info("Notification (no desktop tool available)", "message", message)
	}
	return nil
}

func (n *NotifyService) executeNotifyCommand(message string, nType NotificationType) error {
	typeStr := "ERROR"
	if nType == Info {
		typeStr = "INFO"
	}

	n.log.Debug("Executing custom notify command",
		"command", n.notifyCommand,
		"type", typeStr)

	cmd := exec.Command("sh", "-c", fmt.Sprintf("%s '%s' '%s'", n.notifyCommand, typeStr, message))
	return cmd.Run()
}
