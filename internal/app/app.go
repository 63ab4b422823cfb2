package app

import (
	"fmt"
	"sync"

	"pip-follow/internal/ipc"
	"pip-follow/internal/tracker"
	"pip-follow/internal/wm"
	"pip-follow/pkg/config"
	"pip-follow/pkg/global"
	"pip-follow/pkg/logger"
	"pip-follow/pkg/notify"
)

// PipFollow wires the tracker to the compositor: it performs the startup
// handshake, feeds the event stream into the tracker one event at a time,
// and forwards produced move commands on the request channel.
type PipFollow struct {
	config     *config.Config
	log        *logger.Logger
	compositor wm.Compositor
	tracker    *tracker.Tracker

	// Guards tracker access between the event loop and the control socket.
	mu sync.RWMutex
}

// NewPipFollow creates the application from the global config and logger.
func NewPipFollow() (*PipFollow, error) {
	cfg := global.GetConfig()
	log := global.GetLogger()

	log.Debug("Detecting compositor")
	manager, err := wm.NewManager()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize compositor support: %w", err)
	}

	matcher := tracker.NewMatcher(
		tracker.NewRegexpRule(cfg.TitleRegex()),
		tracker.NewRegexpRule(cfg.AppIDRegex()),
	)

	return &PipFollow{
		config:     cfg,
		log:        log,
		compositor: manager.Compositor(),
		tracker:    tracker.New(matcher, log),
	}, nil
}

// Run performs the handshake and drives the event loop until the stream
// ends. A compositor that refuses the event stream is not an error: the
// daemon simply has nothing to do and exits cleanly.
func (p *PipFollow) Run() error {
	defer p.compositor.Close()

	if err := p.compositor.Subscribe(); err != nil {
		p.log.Info("Compositor does not provide an event stream, nothing to do",
			"compositor", p.compositor.Name(),
			"reason", err.Error())
		global.GetNotifier().Show("Compositor does not provide an event stream", notify.Info)
		return nil
	}

	go ipc.StartSocketServer(p)

	p.seed()
	p.eventLoop()

	return nil
}

// seed fetches the startup window snapshot and hands it to the tracker.
// A failed snapshot only means tracking starts from the event stream.
func (p *PipFollow) seed() {
	p.log.Info("Trying to fetch existing windows...")

	windows, err := p.compositor.Windows()
	if err != nil {
		p.log.Warn("Failed to fetch window snapshot", "error", err.Error())
		return
	}

	p.mu.Lock()
	p.tracker.Seed(windows)
	p.mu.Unlock()

	if id, ok := p.trackedWindow(); ok {
		global.GetNotifier().Show(fmt.Sprintf("Following window %d across workspaces", id), notify.Info)
	}
}

// eventLoop pulls events until the stream ends. Stream end is the normal
// end of life for the daemon, not an error.
func (p *PipFollow) eventLoop() {
	p.log.Info("Starting read of events")

	for {
		event, err := p.compositor.NextEvent()
		if err != nil {
			p.log.Info("Event stream ended", "reason", err.Error())
			return
		}

		p.handleEvent(event)
	}
}

// handleEvent runs one tracker step and dispatches the resulting command,
// if any. A failed move is logged and dropped: the window still exists, so
// the next focused-workspace event retries naturally.
func (p *PipFollow) handleEvent(event wm.Event) {
	before, hadBefore := p.trackedWindow()

	p.mu.Lock()
	move := p.tracker.HandleEvent(event)
	p.mu.Unlock()

	after, hasAfter := p.trackedWindow()
	p.notifyTransition(before, hadBefore, after, hasAfter)

	if move == nil {
		return
	}

	if err := p.compositor.MoveWindowToWorkspace(move.Window, move.Workspace, move.Focus); err != nil {
		p.log.Error("Failed to move window", err,
			"window_id", move.Window,
			"workspace_id", move.Workspace)
	}
}

// notifyTransition announces acquired/lost tracking on the desktop.
func (p *PipFollow) notifyTransition(before wm.WindowID, hadBefore bool, after wm.WindowID, hasAfter bool) {
	switch {
	case !hadBefore && hasAfter:
		global.GetNotifier().Show(fmt.Sprintf("Following window %d across workspaces", after), notify.Info)
	case hadBefore && !hasAfter:
		global.GetNotifier().Show(fmt.Sprintf("Window %d closed, no longer following", before), notify.Info)
	}
}

func (p *PipFollow) trackedWindow() (wm.WindowID, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.tracker.Tracked()
}

// Status implements ipc.StatusProvider for the control socket.
func (p *PipFollow) Status() ipc.TrackingStatus {
	status := ipc.TrackingStatus{
		Compositor:   p.compositor.Name(),
		TitlePattern: p.config.GetTitlePattern(),
		AppIDPattern: p.config.GetAppIDPattern(),
	}

	if id, ok := p.trackedWindow(); ok {
		windowID := uint64(id)
		status.Tracking = true
		status.WindowID = &windowID
	}

	return status
}
