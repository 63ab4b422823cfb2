package wm

// WindowID is the compositor-assigned identifier of a window. It is only
// ever compared for equality or handed back in commands.
type WindowID uint64

// WorkspaceID is the compositor-assigned identifier of a workspace.
type WorkspaceID uint64

// Window is a snapshot of a window's matchable attributes. Title and AppID
// are optional on the wire; a nil field means the compositor reported none.
type Window struct {
	ID    WindowID `json:"id"`
	Title *string  `json:"title"`
	AppID *string  `json:"app_id"`
}

// Event mirrors the compositor's event envelope. For the event kinds the
// daemon consumes, exactly one branch is non-nil; unknown kinds decode with
// all branches nil and are passed through untouched.
type Event struct {
	WorkspaceActivated    *WorkspaceActivatedEvent    `json:"WorkspaceActivated,omitempty"`
	WindowOpenedOrChanged *WindowOpenedOrChangedEvent `json:"WindowOpenedOrChanged,omitempty"`
	WindowClosed          *WindowClosedEvent          `json:"WindowClosed,omitempty"`
}

// WorkspaceActivatedEvent reports that a workspace became active on some
// output. Focused is true only when the workspace also gained global focus.
type WorkspaceActivatedEvent struct {
	ID      WorkspaceID `json:"id"`
	Focused bool        `json:"focused"`
}

// WindowOpenedOrChangedEvent carries the full new descriptor of a window
// that opened or changed attributes.
type WindowOpenedOrChangedEvent struct {
	Window Window `json:"window"`
}

// WindowClosedEvent reports that a window was closed.
type WindowClosedEvent struct {
	ID WindowID `json:"id"`
}

// Compositor is the two-channel boundary to the window manager: a
// subscription-based event stream plus a synchronous request channel.
type Compositor interface {
	// Subscribe requests the event stream. On failure the daemon runs in
	// no-op mode; it never escalates into a crash.
	Subscribe() error
	// Windows returns a snapshot of all currently open windows.
	Windows() ([]Window, error)
	// MoveWindowToWorkspace moves a window to the given workspace,
	// optionally shifting input focus to it.
	MoveWindowToWorkspace(id WindowID, workspace WorkspaceID, focus bool) error
	// NextEvent blocks until the next event arrives or the stream ends.
	NextEvent() (Event, error)
	// Name returns the compositor name for logging/display.
	Name() string
	// Close releases both channels.
	Close() error
}
