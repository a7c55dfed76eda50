// Package tracker coalesces window change events into debounced flushes.
//
// Host window-event callbacks enqueue ChangeEvents and return immediately;
// a single event-loop goroutine owns the dirty set and the debounce timer,
// and a single flush goroutine owns disk writes. Move/resize bursts during a
// drag therefore cost one disk write, and callbacks never block on I/O.
package tracker

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/winstate/internal/infrastructure/logging"
	"github.com/GriffinCanCode/winstate/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/winstate/internal/shared/types"
)

// Store is the slice of the state store the tracker drives.
type Store interface {
	Capture(label string, h types.WindowHandle) types.WindowState
	Flush() error
}

// Tracker watches registered windows and schedules debounced flushes.
type Tracker struct {
	log      *logging.Logger
	metrics  *monitoring.Metrics
	store    Store
	debounce time.Duration

	events  chan types.ChangeEvent
	flushCh chan struct{} // capacity 1: a fire during an in-flight flush coalesces

	stop      chan struct{}
	loopDone  chan struct{}
	flushDone chan struct{}
	closeOnce sync.Once

	mu      sync.RWMutex
	windows map[string]types.WindowHandle

	// Owned by the event loop goroutine.
	dirty map[string]struct{}
	timer *time.Timer
}

// New creates a tracker and starts its event loop and flush goroutines.
func New(store Store, debounce time.Duration, queueSize int, log *logging.Logger, metrics *monitoring.Metrics) *Tracker {
	if log == nil {
		log = logging.NewNop()
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	t := &Tracker{
		log:       log,
		metrics:   metrics,
		store:     store,
		debounce:  debounce,
		events:    make(chan types.ChangeEvent, queueSize),
		flushCh:   make(chan struct{}, 1),
		stop:      make(chan struct{}),
		loopDone:  make(chan struct{}),
		flushDone: make(chan struct{}),
		windows:   make(map[string]types.WindowHandle),
		dirty:     make(map[string]struct{}),
	}
	go t.loop()
	go t.flusher()
	return t
}

// Track registers a window for persistence.
func (t *Tracker) Track(label string, h types.WindowHandle) {
	t.mu.Lock()
	t.windows[label] = h
	count := len(t.windows)
	t.mu.Unlock()

	if t.metrics != nil {
		t.metrics.WindowsTracked.Set(float64(count))
	}
	t.log.Debug("tracking window", zap.String("label", label))
}

// Untrack removes a window without a final capture. Use Notify with
// ChangeClosed for the normal close path, which saves last known state.
func (t *Tracker) Untrack(label string) {
	t.mu.Lock()
	delete(t.windows, label)
	count := len(t.windows)
	t.mu.Unlock()

	if t.metrics != nil {
		t.metrics.WindowsTracked.Set(float64(count))
	}
}

// Notify enqueues a change event. It never blocks: when the queue is full
// the event is dropped, which is safe because events carry no payload and
// at least one earlier event for the burst is already queued.
func (t *Tracker) Notify(ev types.ChangeEvent) {
	select {
	case t.events <- ev:
	default:
		if t.metrics != nil {
			t.metrics.EventsTotal.WithLabelValues("dropped").Inc()
		}
	}
}

// SaveAll captures every tracked window regardless of dirty state and
// flushes synchronously. Restore flags govern what gets re-applied later,
// not what is written: the flush always persists full records.
func (t *Tracker) SaveAll() error {
	t.mu.RLock()
	handles := make(map[string]types.WindowHandle, len(t.windows))
	for label, h := range t.windows {
		handles[label] = h
	}
	t.mu.RUnlock()

	for label, h := range handles {
		t.store.Capture(label, h)
	}
	return t.store.Flush()
}

// Close drains the event loop and completes any in-flight flush. Shutdown
// is a hard deadline: the caller is expected to have issued a final SaveAll
// first, and Close guarantees the flush goroutine has finished before it
// returns.
func (t *Tracker) Close() {
	t.closeOnce.Do(func() {
		close(t.stop)
		<-t.loopDone
		close(t.flushCh)
		<-t.flushDone
	})
}

func (t *Tracker) loop() {
	defer close(t.loopDone)

	var timerC <-chan time.Time
	for {
		select {
		case ev := <-t.events:
			timerC = t.handleEvent(ev, timerC)
		case <-timerC:
			timerC = nil
			if t.captureDirty() > 0 {
				t.requestFlush()
			}
		case <-t.stop:
			if t.timer != nil {
				t.timer.Stop()
			}
			return
		}
	}
}

// handleEvent marks the window dirty and arms the debounce timer if idle.
// A pending timer is deliberately not reset: latency between the last
// change of a burst and the flush stays bounded by one debounce interval.
func (t *Tracker) handleEvent(ev types.ChangeEvent, timerC <-chan time.Time) <-chan time.Time {
	if t.metrics != nil {
		t.metrics.EventsTotal.WithLabelValues(string(ev.Kind)).Inc()
	}

	if ev.Kind == types.ChangeClosed {
		t.handleClosed(ev.Label)
		if len(t.dirty) == 0 && timerC != nil {
			t.timer.Stop()
			return nil
		}
		return timerC
	}

	t.mu.RLock()
	_, tracked := t.windows[ev.Label]
	t.mu.RUnlock()
	if !tracked {
		return timerC
	}

	t.dirty[ev.Label] = struct{}{}
	if timerC == nil {
		// A fresh timer per burst. Resetting a timer that already fired
		// would require draining its channel first, and a stale tick would
		// cut the next burst's debounce short.
		if t.timer != nil {
			t.timer.Stop()
		}
		t.timer = time.NewTimer(t.debounce)
		timerC = t.timer.C
	}
	return timerC
}

// handleClosed performs the final capture+flush for a closing window so its
// last known-good state is never lost, then stops tracking it.
func (t *Tracker) handleClosed(label string) {
	t.mu.RLock()
	h, tracked := t.windows[label]
	t.mu.RUnlock()

	_, wasDirty := t.dirty[label]
	delete(t.dirty, label)
	if wasDirty && tracked {
		t.store.Capture(label, h)
		if err := t.store.Flush(); err != nil {
			t.log.Warn("final flush on close failed", zap.String("label", label), zap.Error(err))
		}
	}
	t.Untrack(label)
}

// captureDirty re-reads geometry for every dirty window and clears the
// dirty set, returning how many windows were captured.
func (t *Tracker) captureDirty() int {
	t.mu.RLock()
	handles := make(map[string]types.WindowHandle, len(t.dirty))
	for label := range t.dirty {
		if h, ok := t.windows[label]; ok {
			handles[label] = h
		}
	}
	t.mu.RUnlock()

	for label, h := range handles {
		t.store.Capture(label, h)
	}
	t.dirty = make(map[string]struct{})
	return len(handles)
}

func (t *Tracker) requestFlush() {
	select {
	case t.flushCh <- struct{}{}:
	default:
		// A flush is already queued; the pending one will pick up the
		// just-captured state.
	}
}

func (t *Tracker) flusher() {
	defer close(t.flushDone)
	for range t.flushCh {
		if err := t.store.Flush(); err != nil {
			// Not retried here: the next dirty event or explicit save
			// triggers the retry.
			t.log.Warn("state flush failed", zap.Error(err))
		}
	}
}
