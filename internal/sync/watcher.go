// Package sync connects a content.Store to a Bubble Tea program. A TUI
// front end creates a Watcher, runs the command from Start in its Init and
// calls WaitForNext after handling each ChangedMsg. The CLI does not use it.
package sync

import (
	"context"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/spacecontent/internal/content"
)

// SyncState represents the current state of the background reload.
type SyncState int

const (
	SyncIdle SyncState = iota
	SyncRunning
	SyncError
)

// SyncStatus holds the state of the most recent reload.
type SyncStatus struct {
	State    SyncState
	LastSync time.Time
	Error    error
}

// ChangedMsg is a tea.Msg carrying the store state after a transition.
type ChangedMsg struct {
	State content.State
}

// reloadTimeout is the maximum time allowed for a single reload.
const reloadTimeout = 30 * time.Second

// msgBuffer is the number of pending state messages kept for the UI.
const msgBuffer = 16

// Watcher forwards content store transitions to the Bubble Tea runtime and
// optionally reloads the current space on an interval.
type Watcher struct {
	store    *content.Store
	interval time.Duration
	logger   *zap.Logger

	msgCh     chan ChangedMsg
	triggerCh chan struct{}
	stopCh    chan struct{}

	mu          gosync.Mutex
	running     bool
	stopped     bool
	status      SyncStatus
	unsubscribe func()
}

// New creates a Watcher for s. An interval of zero disables periodic reloads.
func New(s *content.Store, interval time.Duration, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		store:     s,
		interval:  interval,
		logger:    logger,
		msgCh:     make(chan ChangedMsg, msgBuffer),
		triggerCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}
}

// Start subscribes to the store, starts the reload loop and returns a
// command that delivers the next ChangedMsg.
func (w *Watcher) Start() tea.Cmd {
	w.mu.Lock()
	if w.running || w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.unsubscribe = w.store.Subscribe(w.send)
	w.mu.Unlock()

	go w.loop()

	return w.waitForChange()
}

// Stop unsubscribes from the store and halts the reload loop. A stopped
// Watcher cannot be started again.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	w.unsubscribe()
	close(w.stopCh)
	w.running = false
	w.stopped = true
}

// Refresh triggers an immediate reload of the current space.
func (w *Watcher) Refresh() tea.Cmd {
	select {
	case w.triggerCh <- struct{}{}:
	default:
		// A reload is already pending.
	}
	return nil
}

// Status returns the state of the most recent reload.
func (w *Watcher) Status() SyncStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// WaitForNext returns a tea.Cmd that waits for the next state change.
// Call it after handling a ChangedMsg to keep listening.
func (w *Watcher) WaitForNext() tea.Cmd {
	return w.waitForChange()
}

func (w *Watcher) loop() {
	var tick <-chan time.Time
	if w.interval > 0 {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-w.stopCh:
			return
		case <-tick:
			w.reload()
		case <-w.triggerCh:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	if w.store.CurrentSpaceID() == "" {
		return
	}
	w.setStatus(SyncRunning, nil)

	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	defer cancel()

	if err := w.store.Reload(ctx); err != nil {
		w.logger.Warn("reload failed", zap.Error(err))
		w.setStatus(SyncError, err)
		return
	}
	w.setStatus(SyncIdle, nil)
}

func (w *Watcher) setStatus(state SyncState, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.status.State = state
	w.status.Error = err
	if state == SyncIdle && err == nil {
		w.status.LastSync = time.Now()
	}
}

// send queues a state message without blocking the store. When the buffer
// is full the oldest message is dropped, since later states supersede it.
func (w *Watcher) send(state content.State) {
	msg := ChangedMsg{State: state}
	for {
		select {
		case w.msgCh <- msg:
			return
		default:
		}
		select {
		case <-w.msgCh:
		default:
		}
	}
}

func (w *Watcher) waitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-w.msgCh:
			return msg
		case <-w.stopCh:
			return nil
		}
	}
}
