package wm

import (
	"bufio"
	"encoding/json"
	"io"
	"net"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pip-follow/pkg/logger"
)

// fakeCompositor scripts the far end of the niri socket pair over
// in-memory connections.
type fakeCompositor struct {
	events       *bufio.ReadWriter
	requests     *bufio.ReadWriter
	eventsConn   net.Conn
	requestsConn net.Conn
}

func newTestNiri(t *testing.T) (*Niri, *fakeCompositor) {
	t.Helper()

	log, err := logger.NewLogger(logger.WithLevel(zerolog.Disabled))
	require.NoError(t, err)

	eventsClient, eventsServer := net.Pipe()
	requestsClient, requestsServer := net.Pipe()
	t.Cleanup(func() {
		eventsServer.Close()
		requestsServer.Close()
	})

	niri := newNiriFromConns(log, eventsClient, requestsClient)
	t.Cleanup(func() { niri.Close() })

	fake := &fakeCompositor{
		events:       bufio.NewReadWriter(bufio.NewReader(eventsServer), bufio.NewWriter(eventsServer)),
		requests:     bufio.NewReadWriter(bufio.NewReader(requestsServer), bufio.NewWriter(requestsServer)),
		eventsConn:   eventsServer,
		requestsConn: requestsServer,
	}
	return niri, fake
}

// respond reads one request line and answers with the given reply line.
// It runs in a goroutine because net.Pipe is fully synchronous.
func respond(t *testing.T, rw *bufio.ReadWriter, reply string, gotRequest chan<- string) {
	t.Helper()

	go func() {
		line, err := rw.ReadString('\n')
		if err != nil {
			gotRequest <- ""
			return
		}
		gotRequest <- line
		rw.WriteString(reply + "\n")
		rw.Flush()
	}()
}

func TestSubscribeHandled(t *testing.T) {
	niri, fake := newTestNiri(t)

	gotRequest := make(chan string, 1)
	respond(t, fake.events, `{"Ok":"Handled"}`, gotRequest)

	require.NoError(t, niri.Subscribe())
	assert.JSONEq(t, `"EventStream"`, <-gotRequest)
}

func TestSubscribeRefused(t *testing.T) {
	niri, fake := newTestNiri(t)

	gotRequest := make(chan string, 1)
	respond(t, fake.events, `{"Err":"unknown request"}`, gotRequest)

	err := niri.Subscribe()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown request")
	<-gotRequest
}

func TestSubscribeUnexpectedReply(t *testing.T) {
	niri, fake := newTestNiri(t)

	gotRequest := make(chan string, 1)
	respond(t, fake.events, `{"Ok":{"Version":"25.01"}}`, gotRequest)

	err := niri.Subscribe()
	require.ErrorIs(t, err, ErrEventStreamUnsupported)
	<-gotRequest
}

func TestWindowsSnapshot(t *testing.T) {
	niri, fake := newTestNiri(t)

	gotRequest := make(chan string, 1)
	respond(t, fake.requests,
		`{"Ok":{"Windows":[`+
			`{"id":1,"title":"Picture-in-Picture","app_id":"firefox"},`+
			`{"id":2,"title":null,"app_id":null}]}}`,
		gotRequest)

	windows, err := niri.Windows()
	require.NoError(t, err)
	assert.JSONEq(t, `"Windows"`, <-gotRequest)

	require.Len(t, windows, 2)
	assert.Equal(t, WindowID(1), windows[0].ID)
	require.NotNil(t, windows[0].Title)
	assert.Equal(t, "Picture-in-Picture", *windows[0].Title)
	require.NotNil(t, windows[0].AppID)
	assert.Equal(t, "firefox", *windows[0].AppID)

	assert.Equal(t, WindowID(2), windows[1].ID)
	assert.Nil(t, windows[1].Title)
	assert.Nil(t, windows[1].AppID)
}

func TestMoveWindowToWorkspaceWire(t *testing.T) {
	niri, fake := newTestNiri(t)

	gotRequest := make(chan string, 1)
	respond(t, fake.requests, `{"Ok":"Handled"}`, gotRequest)

	require.NoError(t, niri.MoveWindowToWorkspace(2, 7, false))

	var req struct {
		Action struct {
			MoveWindowToWorkspace struct {
				WindowID  uint64 `json:"window_id"`
				Reference struct {
					ID uint64 `json:"Id"`
				} `json:"reference"`
				Focus bool `json:"focus"`
			} `json:"MoveWindowToWorkspace"`
		} `json:"Action"`
	}
	require.NoError(t, json.Unmarshal([]byte(<-gotRequest), &req))
	assert.Equal(t, uint64(2), req.Action.MoveWindowToWorkspace.WindowID)
	assert.Equal(t, uint64(7), req.Action.MoveWindowToWorkspace.Reference.ID)
	assert.False(t, req.Action.MoveWindowToWorkspace.Focus)
}

func TestMoveWindowToWorkspaceRefused(t *testing.T) {
	niri, fake := newTestNiri(t)

	gotRequest := make(chan string, 1)
	respond(t, fake.requests, `{"Err":"no such window"}`, gotRequest)

	err := niri.MoveWindowToWorkspace(2, 7, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such window")
	<-gotRequest
}

func TestNextEventDecodesKnownVariants(t *testing.T) {
	niri, fake := newTestNiri(t)

	go func() {
		fake.events.WriteString(`{"WorkspaceActivated":{"id":5,"focused":true}}` + "\n")
		fake.events.WriteString(`{"WindowOpenedOrChanged":{"window":{"id":3,"title":"Picture-in-Picture","app_id":"firefox"}}}` + "\n")
		fake.events.WriteString(`{"WindowClosed":{"id":3}}` + "\n")
		fake.events.Flush()
	}()

	event, err := niri.NextEvent()
	require.NoError(t, err)
	require.NotNil(t, event.WorkspaceActivated)
	assert.Equal(t, WorkspaceID(5), event.WorkspaceActivated.ID)
	assert.True(t, event.WorkspaceActivated.Focused)

	event, err = niri.NextEvent()
	require.NoError(t, err)
	require.NotNil(t, event.WindowOpenedOrChanged)
	assert.Equal(t, WindowID(3), event.WindowOpenedOrChanged.Window.ID)

	event, err = niri.NextEvent()
	require.NoError(t, err)
	require.NotNil(t, event.WindowClosed)
	assert.Equal(t, WindowID(3), event.WindowClosed.ID)
}

func TestNextEventPassesUnknownVariantsThrough(t *testing.T) {
	niri, fake := newTestNiri(t)

	go func() {
		fake.events.WriteString(`{"KeyboardLayoutsChanged":{"keyboard_layouts":{}}}` + "\n")
		fake.events.Flush()
	}()

	event, err := niri.NextEvent()
	require.NoError(t, err)
	assert.Nil(t, event.WorkspaceActivated)
	assert.Nil(t, event.WindowOpenedOrChanged)
	assert.Nil(t, event.WindowClosed)
}

func TestNextEventSkipsUndecodableLines(t *testing.T) {
	niri, fake := newTestNiri(t)

	go func() {
		fake.events.WriteString("not json\n")
		fake.events.WriteString(`{"WindowClosed":{"id":9}}` + "\n")
		fake.events.Flush()
	}()

	event, err := niri.NextEvent()
	require.NoError(t, err)
	require.NotNil(t, event.WindowClosed)
	assert.Equal(t, WindowID(9), event.WindowClosed.ID)
}

func TestNextEventStreamEnd(t *testing.T) {
	niri, fake := newTestNiri(t)

	fake.eventsConn.Close()

	_, err := niri.NextEvent()
	require.ErrorIs(t, err, io.EOF)
}
