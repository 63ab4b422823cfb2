package tracker

import (
	"strconv"

	"pip-follow/internal/wm"
	"pip-follow/pkg/logger"
)

// Move is the only outgoing command the tracker ever produces: relocate a
// window to a workspace, optionally focusing it. The daemon always sends
// it with Focus false so the video follows without stealing input.
type Move struct {
	Window    wm.WindowID
	Workspace wm.WorkspaceID
	Focus     bool
}

// Tracker follows at most one window across workspace switches. It is
// driven by a single consumer feeding it one event at a time; it holds no
// other state and needs no locking.
type Tracker struct {
	log     *logger.Logger
	matcher Matcher
	tracked *wm.WindowID
}

// New creates an idle tracker using the given matcher.
func New(matcher Matcher, log *logger.Logger) *Tracker {
	return &Tracker{
		log:     log,
		matcher: matcher,
	}
}

// Tracked returns the currently tracked window id, if any.
func (t *Tracker) Tracked() (wm.WindowID, bool) {
	if t.tracked == nil {
		return 0, false
	}
	return *t.tracked, true
}

// Seed scans the startup window snapshot in order and tracks the first
// match. Remaining windows are ignored; if none match the tracker stays
// idle.
func (t *Tracker) Seed(windows []wm.Window) {
	for _, w := range windows {
		if t.matcher.Matches(w) {
			t.log.Info("Found a matching window", "window_id", w.ID)
			t.track(w.ID)
			return
		}

		t.log.Debug("Ignoring window", "window", describeWindow(w))
	}
}

// HandleEvent runs one state machine step and returns the move command to
// dispatch, if any. Event kinds the tracker does not consume pass through
// with no state change.
func (t *Tracker) HandleEvent(event wm.Event) *Move {
	switch {
	case event.WorkspaceActivated != nil:
		return t.handleWorkspaceActivated(event.WorkspaceActivated)
	case event.WindowOpenedOrChanged != nil:
		t.handleWindowOpenedOrChanged(event.WindowOpenedOrChanged)
	case event.WindowClosed != nil:
		t.handleWindowClosed(event.WindowClosed)
	}

	return nil
}

func (t *Tracker) handleWorkspaceActivated(event *wm.WorkspaceActivatedEvent) *Move {
	if !event.Focused || t.tracked == nil {
		t.log.Debug("Workspace activated but nothing to move",
			"workspace_id", event.ID,
			"focused", event.Focused)
		return nil
	}

	t.log.Info("Workspace focused, moving window",
		"workspace_id", event.ID,
		"window_id", *t.tracked)

	return &Move{
		Window:    *t.tracked,
		Workspace: event.ID,
		Focus:     false,
	}
}

func (t *Tracker) handleWindowOpenedOrChanged(event *wm.WindowOpenedOrChangedEvent) {
	window := event.Window

	// A window that stops matching stays tracked; only closure untracks.
	if !t.matcher.Matches(window) {
		return
	}
	if t.tracked != nil && *t.tracked == window.ID {
		return
	}

	t.log.Info("Window matched patterns", "window_id", window.ID)
	t.track(window.ID)
}

func (t *Tracker) handleWindowClosed(event *wm.WindowClosedEvent) {
	if t.tracked == nil || *t.tracked != event.ID {
		return
	}

	t.log.Info("Tracked window closed", "window_id", event.ID)
	t.tracked = nil
}

func (t *Tracker) track(id wm.WindowID) {
	tracked := id
	t.tracked = &tracked
}

// describeWindow prefers the title for log output, falling back to the id.
func describeWindow(w wm.Window) string {
	if w.Title != nil {
		return *w.Title
	}
	return strconv.FormatUint(uint64(w.ID), 10)
}
