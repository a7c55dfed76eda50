// Package store implements the process-wide window-state table and its
// on-disk persistence.
//
// The table is the single owned copy of all window records: handles are
// borrowed read-only at capture time, and the file on disk is only ever
// replaced atomically, so a crash mid-write leaves the previous valid state
// intact.
package store

import (
	"errors"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/winstate/internal/infrastructure/logging"
	"github.com/GriffinCanCode/winstate/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/winstate/internal/shared/types"
	"github.com/GriffinCanCode/winstate/internal/shared/utils"
)

// codec keeps map keys sorted so the persisted file diffs cleanly between
// runs.
var codec = sonic.Config{SortMapKeys: true}.Froze()

// fileVersion tags the on-disk format. Unknown fields in records are ignored
// on load, so bumps are only needed for incompatible rewrites.
const fileVersion = 1

type stateFile struct {
	Version int                          `json:"version"`
	Windows map[string]types.WindowState `json:"windows"`
}

// Store is the process-wide table of window records keyed by label.
type Store struct {
	log     *logging.Logger
	metrics *monitoring.Metrics
	hasher  *utils.Hasher
	path    string

	mu     sync.RWMutex
	states map[string]types.WindowState

	// flushMu serializes file writes so at most one flush is in flight.
	flushMu sync.Mutex
}

// Open creates a store backed by the file at path and loads it. A missing
// file yields an empty store; a corrupt or unreadable file is logged and
// likewise yields an empty store. Corrupted state must never block host
// startup.
func Open(path string, log *logging.Logger, metrics *monitoring.Metrics) *Store {
	if log == nil {
		log = logging.NewNop()
	}
	s := &Store{
		log:     log,
		metrics: metrics,
		hasher:  utils.DefaultHasher(),
		path:    path,
		states:  make(map[string]types.WindowState),
	}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			ioErr := &types.IOError{Op: "read", Path: s.path, Err: err}
			s.log.Warn("failed to read state file, starting empty", zap.Error(ioErr))
		}
		return
	}

	var file stateFile
	if err := codec.Unmarshal(data, &file); err != nil {
		parseErr := &types.ParseError{Path: s.path, Err: err}
		s.log.Warn("corrupt state file, starting empty", zap.Error(parseErr))
		return
	}

	for label, state := range file.Windows {
		state.Label = label
		s.states[label] = state
	}
	s.log.Debug("loaded window state",
		zap.Int("windows", len(s.states)),
		zap.String("path", s.path))
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the record for label.
func (s *Store) Get(label string) (types.WindowState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[label]
	return state, ok
}

// Labels returns all known labels, sorted.
func (s *Store) Labels() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	labels := make([]string, 0, len(s.states))
	for label := range s.states {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Capture reads the current geometry and attributes from the handle and
// overwrites the in-memory record for label. Every field is captured
// regardless of restore flags, so toggling flags between runs never destroys
// previously saved data.
//
// Capture is best-effort per attribute: a getter failure retains the prior
// record's value. Geometry fields are retained while the window is maximized
// or fullscreen, and zero sizes are never recorded, so the stored rectangle
// always describes the window's normal state.
func (s *Store) Capture(label string, h types.WindowHandle) types.WindowState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.states[label]
	state.Label = label

	maximized, err := h.Maximized()
	if err == nil {
		state.Maximized = maximized
	} else {
		maximized = state.Maximized
	}
	fullscreen, err := h.Fullscreen()
	if err == nil {
		state.Fullscreen = fullscreen
	} else {
		fullscreen = state.Fullscreen
	}

	if !maximized && !fullscreen {
		if x, y, err := h.Position(); err == nil {
			state.X, state.Y = x, y
		} else {
			s.log.Debug("capture position failed", zap.String("label", label), zap.Error(err))
		}
		if width, height, err := h.Size(); err == nil && width > 0 && height > 0 {
			state.Width, state.Height = width, height
		}
	}

	if visible, err := h.Visible(); err == nil {
		state.Visible = visible
	}
	if decorated, err := h.Decorated(); err == nil {
		state.Decorated = decorated
	}
	if monitor, ok := h.CurrentMonitor(); ok {
		state.Monitor = s.hasher.MonitorFingerprint(monitor)
	}

	s.states[label] = state
	return state
}

// Snapshot returns a copy of the in-memory table.
func (s *Store) Snapshot() map[string]types.WindowState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]types.WindowState, len(s.states))
	for label, state := range s.states {
		out[label] = state
	}
	return out
}

// Flush serializes the entire table and atomically replaces the backing
// file. On failure the in-memory table is untouched and eligible for retry
// on the next flush trigger.
func (s *Store) Flush() error {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	start := time.Now()
	file := stateFile{Version: fileVersion, Windows: s.Snapshot()}

	data, err := codec.MarshalIndent(file, "", "  ")
	if err != nil {
		// Records are plain structs; this indicates a programming error.
		s.recordFlushError()
		return &types.IOError{Op: "encode", Path: s.path, Err: err}
	}

	if err := writeFileAtomic(s.path, append(data, '\n'), 0o600); err != nil {
		s.recordFlushError()
		return &types.IOError{Op: "write", Path: s.path, Err: err}
	}

	if s.metrics != nil {
		s.metrics.FlushesTotal.Inc()
		s.metrics.FlushDuration.Observe(time.Since(start).Seconds())
	}
	s.log.Debug("flushed window state",
		zap.Int("windows", len(file.Windows)),
		zap.Duration("took", time.Since(start)))
	return nil
}

func (s *Store) recordFlushError() {
	if s.metrics != nil {
		s.metrics.FlushesTotal.Inc()
		s.metrics.FlushErrors.Inc()
	}
}
