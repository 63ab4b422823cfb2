package ipc

import (
	"encoding/json"
	"net"

	"pip-follow/pkg/global"
)

// SendCommand connects to a running daemon and performs one control
// request/response round trip.
func SendCommand(command string) (Response, error) {
	log := global.GetLogger()

	log.Debug("Connecting to control socket", "path", socketPath)

	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		log.Error("Failed to connect to control socket", err)
		return Response{}, err
	}
	defer conn.Close()

	req := Request{Command: command}
	encoder := json.NewEncoder(conn)
	if err := encoder.Encode(req); err != nil {
		log.Error("Failed to encode request", err)
		return Response{}, err
	}

	var resp Response
	decoder := json.NewDecoder(conn)
	if err := decoder.Decode(&resp); err != nil {
		log.Error("Failed to decode response", err)
		return Response{}, err
	}

	log.Debug("Response received", "status", resp.Status, "message", resp.Message)
	return resp, nil
}
