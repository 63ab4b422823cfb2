package wm

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"

	"pip-follow/pkg/logger"
)

// NiriSocketEnv holds the path of niri's IPC socket.
const NiriSocketEnv = "NIRI_SOCKET"

// ErrEventStreamUnsupported is returned by Subscribe when the compositor
// answers the event stream request with anything but an acknowledgement.
var ErrEventStreamUnsupported = errors.New("compositor rejected the event stream request")

// Niri talks to the niri compositor over its IPC socket. The protocol is
// one JSON value per line in both directions. Two independent connections
// are held: one dedicated to the event stream, one for request/response
// round trips.
type Niri struct {
	log      *logger.Logger
	events   *niriConn
	requests *niriConn
}

type niriConn struct {
	conn   net.Conn
	reader *bufio.Reader
}

func dialNiri(path string) (*niriConn, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to niri socket: %w", err)
	}
	return newNiriConn(conn), nil
}

func newNiriConn(conn net.Conn) *niriConn {
	return &niriConn{conn: conn, reader: bufio.NewReader(conn)}
}

// send writes one request line and reads back one reply line.
func (c *niriConn) send(request interface{}) (json.RawMessage, error) {
	data, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	data = append(data, '\n')

	if _, err := c.conn.Write(data); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	line, err := c.reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read reply: %w", err)
	}

	var reply struct {
		Ok  json.RawMessage `json:"Ok"`
		Err *string         `json:"Err"`
	}
	if err := json.Unmarshal(line, &reply); err != nil {
		return nil, fmt.Errorf("failed to parse reply: %w", err)
	}
	if reply.Err != nil {
		return nil, fmt.Errorf("niri refused the request: %s", *reply.Err)
	}

	return reply.Ok, nil
}

func (c *niriConn) close() error {
	return c.conn.Close()
}

// NewNiri opens both connections to the niri socket advertised in the
// environment.
func NewNiri(log *logger.Logger) (*Niri, error) {
	path := os.Getenv(NiriSocketEnv)
	if path == "" {
		return nil, fmt.Errorf("%s is not set; niri does not appear to be running", NiriSocketEnv)
	}

	events, err := dialNiri(path)
	if err != nil {
		return nil, err
	}

	requests, err := dialNiri(path)
	if err != nil {
		events.close()
		return nil, err
	}

	log.Debug("Connected to niri socket", "path", path)

	return &Niri{log: log, events: events, requests: requests}, nil
}

// newNiriFromConns wires a backend onto existing connections. Used by tests.
func newNiriFromConns(log *logger.Logger, events, requests net.Conn) *Niri {
	return &Niri{
		log:      log,
		events:   newNiriConn(events),
		requests: newNiriConn(requests),
	}
}

func (n *Niri) Name() string {
	return "niri"
}

// Subscribe switches the event connection into streaming mode.
func (n *Niri) Subscribe() error {
	ok, err := n.events.send("EventStream")
	if err != nil {
		return fmt.Errorf("event stream request failed: %w", err)
	}
	if !isHandled(ok) {
		return ErrEventStreamUnsupported
	}

	n.log.Debug("Event stream established")
	return nil
}

// Windows fetches a snapshot of all currently open windows.
func (n *Niri) Windows() ([]Window, error) {
	ok, err := n.requests.send("Windows")
	if err != nil {
		return nil, fmt.Errorf("windows request failed: %w", err)
	}

	var payload struct {
		Windows []Window `json:"Windows"`
	}
	if err := json.Unmarshal(ok, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse windows reply: %w", err)
	}

	return payload.Windows, nil
}

type moveWindowToWorkspaceAction struct {
	WindowID  WindowID     `json:"window_id"`
	Reference workspaceRef `json:"reference"`
	Focus     bool         `json:"focus"`
}

type workspaceRef struct {
	ID WorkspaceID `json:"Id"`
}

type actionRequest struct {
	Action struct {
		MoveWindowToWorkspace *moveWindowToWorkspaceAction `json:"MoveWindowToWorkspace,omitempty"`
	} `json:"Action"`
}

// MoveWindowToWorkspace dispatches a move action on the request channel.
func (n *Niri) MoveWindowToWorkspace(id WindowID, workspace WorkspaceID, focus bool) error {
	var req actionRequest
	req.Action.MoveWindowToWorkspace = &moveWindowToWorkspaceAction{
		WindowID:  id,
		Reference: workspaceRef{ID: workspace},
		Focus:     focus,
	}

	if _, err := n.requests.send(req); err != nil {
		return fmt.Errorf("move window action failed: %w", err)
	}

	return nil
}

// NextEvent blocks until the next event line arrives on the stream
// connection. Lines that fail to decode are skipped, never fatal. Stream
// end surfaces as the underlying read error (io.EOF on a clean close).
func (n *Niri) NextEvent() (Event, error) {
	for {
		line, err := n.events.reader.ReadBytes('\n')
		if err != nil {
			return Event{}, err
		}

		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			n.log.Warn("Skipping undecodable event", "line", string(bytes.TrimSpace(line)))
			continue
		}

		return event, nil
	}
}

// Close releases both connections.
func (n *Niri) Close() error {
	errEvents := n.events.close()
	errRequests := n.requests.close()
	if errEvents != nil {
		return errEvents
	}
	return errRequests
}

// isHandled reports whether an Ok payload is the plain acknowledgement.
func isHandled(ok json.RawMessage) bool {
	var s string
	if err := json.Unmarshal(ok, &s); err != nil {
		return false
	}
	return s == "Handled"
}
