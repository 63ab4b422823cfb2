package ipc

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"pip-follow/pkg/global"
)

const socketPath = "/tmp/pip-follow.sock"

type Request struct {
	Command string `json:"command"`
}

type Response struct {
	Status   string          `json:"status"`
	Message  string          `json:"message"`
	Tracking *TrackingStatus `json:"tracking,omitempty"`
}

// TrackingStatus is the daemon's answer to a status query.
type TrackingStatus struct {
	Tracking     bool    `json:"tracking"`
	WindowID     *uint64 `json:"window_id,omitempty"`
	Compositor   string  `json:"compositor"`
	TitlePattern string  `json:"title_pattern"`
	AppIDPattern string  `json:"app_id_pattern"`
}

// StatusProvider exposes the daemon's current tracking state to the
// control socket.
type StatusProvider interface {
	Status() TrackingStatus
}

// StartSocketServer serves control requests on the unix socket. It blocks,
// so callers run it in a goroutine.
func StartSocketServer(provider StatusProvider) {
	log := global.GetLogger()

	// Remove the socket file if it already exists
	if err := os.Remove(socketPath); err != nil && !os.IsNotExist(err) {
		log.Error("Failed to remove existing socket file", err)
		return
	}

	// Create the directory for the socket file
	dir := filepath.Dir(socketPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Error("Failed to create socket directory", err)
		return
	}

	// Listen on the Unix domain socket
	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		log.Error("Failed to start socket server", err)
		return
	}
	defer listener.Close()

	log.Info("Socket server started", "path", socketPath)

	for {
		conn, err := listener.Accept()
		if err != nil {
			log.Error("Failed to accept connection", err)
			continue
		}

		log.Debug("New connection accepted", "remote_addr", conn.RemoteAddr())

		go handleConnection(conn, provider)
	}
}

func handleConnection(conn net.Conn, provider StatusProvider) {
	log := global.GetLogger()
	defer conn.Close()

	var req Request
	decoder := json.NewDecoder(conn)
	if err := decoder.Decode(&req); err != nil {
		log.Error("Failed to decode request", err)
		return
	}

	log.Debug("Received request", "command", req.Command)

	var resp Response
	switch req.Command {
	case "status":
		status := provider.Status()
		message := "No window is currently tracked"
		if status.Tracking {
			message = fmt.Sprintf("Tracking window %d", *status.WindowID)
		}
		resp = Response{
			Status:   "success",
			Message:  message,
			Tracking: &status,
		}
	default:
		log.Error("Unknown command received", fmt.Errorf("command: %s", req.Command))
		resp = Response{Status: "error", Message: "Unknown command"}
	}

	encoder := json.NewEncoder(conn)
	if err := encoder.Encode(resp); err != nil {
		log.Error("Failed to encode response", err)
	}
}
