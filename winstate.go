package winstate

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/GriffinCanCode/winstate/internal/domain/restore"
	"github.com/GriffinCanCode/winstate/internal/domain/store"
	"github.com/GriffinCanCode/winstate/internal/domain/tracker"
	"github.com/GriffinCanCode/winstate/internal/infrastructure/config"
	"github.com/GriffinCanCode/winstate/internal/infrastructure/logging"
	"github.com/GriffinCanCode/winstate/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/winstate/internal/shared/paths"
	"github.com/GriffinCanCode/winstate/internal/shared/types"
)

// Re-exported so hosts only import this package.
type (
	Flags           = types.Flags
	WindowState     = types.WindowState
	Rect            = types.Rect
	Monitor         = types.Monitor
	WindowHandle    = types.WindowHandle
	MonitorProvider = types.MonitorProvider
	ChangeKind      = types.ChangeKind
	ChangeEvent     = types.ChangeEvent
	Config          = config.Config
	Logger          = logging.Logger
)

const (
	FlagSize        = types.FlagSize
	FlagPosition    = types.FlagPosition
	FlagMaximized   = types.FlagMaximized
	FlagVisible     = types.FlagVisible
	FlagDecorations = types.FlagDecorations
	FlagFullscreen  = types.FlagFullscreen
	FlagAll         = types.FlagAll
)

const (
	ChangeMoved   = types.ChangeMoved
	ChangeResized = types.ChangeResized
	ChangeState   = types.ChangeState
	ChangeClosed  = types.ChangeClosed
)

// ParseFlags converts attribute names into a Flags value.
func ParseFlags(names []string) (Flags, error) {
	return types.ParseFlags(names)
}

// LoadConfig loads configuration from environment variables, falling back
// to defaults.
func LoadConfig() *Config {
	return config.LoadOrDefault()
}

// LoadConfigFile reads configuration from a YAML file layered over the
// defaults.
func LoadConfigFile(path string) (*Config, error) {
	return config.LoadFile(path)
}

// Options configures a Manager.
type Options struct {
	// AppName names the per-user config directory holding the state file.
	// Required.
	AppName string

	// Config overrides the environment-derived configuration.
	Config *Config

	// Logger overrides the default logger. Nil builds one from Config.
	Logger *Logger

	// Monitors supplies the current monitor layout for restore validation.
	// Nil disables off-screen clamping.
	Monitors MonitorProvider

	// ActiveWindow resolves the label of the currently focused window for
	// RestoreStateCurrent.
	ActiveWindow func() (string, bool)

	// OnRestored fires after a restore sequence completes for a label. The
	// host uses it as the signal to reveal a window that was created
	// hidden.
	OnRestored func(label string)

	// Registerer receives the library's Prometheus metrics. Nil keeps them
	// on a private registry.
	Registerer prometheus.Registerer
}

// Manager is the explicitly owned facade over the state store, change
// tracker, and restore engine. Create one per host application and close it
// on shutdown to guarantee a final synchronous flush.
type Manager struct {
	cfg     *config.Config
	log     *logging.Logger
	metrics *monitoring.Metrics
	store   *store.Store
	tracker *tracker.Tracker
	engine  *restore.Engine

	active     func() (string, bool)
	onRestored func(string)

	mu      sync.RWMutex
	handles map[string]types.WindowHandle

	closeOnce sync.Once
	closeErr  error
}

// New creates and initializes a Manager, loading any previously persisted
// state. A corrupt or missing state file yields an empty table, never an
// error.
func New(opts Options) (*Manager, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.LoadOrDefault()
	}

	log := opts.Logger
	if log == nil {
		var err error
		log, err = logging.New(cfg.Logging.Level, cfg.Logging.Development)
		if err != nil {
			log = logging.NewDefault()
		}
	}

	path, err := paths.StateFile(opts.AppName, cfg.Store.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve state file: %w", err)
	}

	metrics := monitoring.New(opts.Registerer)
	st := store.Open(path, log, metrics)

	return &Manager{
		cfg:        cfg,
		log:        log,
		metrics:    metrics,
		store:      st,
		tracker:    tracker.New(st, cfg.Tracker.Debounce, cfg.Tracker.QueueSize, log, metrics),
		engine:     restore.New(st, opts.Monitors, cfg.Restore.MinOverlap, log, metrics),
		active:     opts.ActiveWindow,
		onRestored: opts.OnRestored,
		handles:    make(map[string]types.WindowHandle),
	}, nil
}

// Track registers a live window under its stable label. Subsequent
// NotifyChange calls for the label schedule debounced captures of this
// handle.
func (m *Manager) Track(label string, h WindowHandle) error {
	if label == "" {
		return fmt.Errorf("window label is required")
	}
	if h == nil {
		return fmt.Errorf("window handle is nil")
	}

	m.mu.Lock()
	m.handles[label] = h
	m.mu.Unlock()

	m.tracker.Track(label, h)
	return nil
}

// Untrack stops persistence for a label without a final capture.
func (m *Manager) Untrack(label string) {
	m.mu.Lock()
	delete(m.handles, label)
	m.mu.Unlock()
	m.tracker.Untrack(label)
}

// NotifyChange enqueues a geometry-or-attribute change event. Safe to call
// from any window-event callback; it never blocks.
func (m *Manager) NotifyChange(label string, kind ChangeKind) {
	m.tracker.Notify(types.ChangeEvent{Label: label, Kind: kind})
}

// WindowClosed records that a window is going away. If it has unsaved
// changes they are captured and flushed synchronously before tracking
// stops, so the last known-good state survives the close.
func (m *Manager) WindowClosed(label string) {
	m.mu.Lock()
	delete(m.handles, label)
	m.mu.Unlock()
	m.tracker.Notify(types.ChangeEvent{Label: label, Kind: types.ChangeClosed})
}

// SaveWindowState force-flushes every tracked window now, bypassing the
// debounce timer. Flags select what a later restore applies; the flush
// itself always writes full records so toggling flags between runs never
// destroys saved data.
func (m *Manager) SaveWindowState(flags Flags) error {
	_ = flags
	return m.tracker.SaveAll()
}

// RestoreState runs the restore engine for one window immediately, applying
// the attribute subset selected by flags. The window must be tracked.
func (m *Manager) RestoreState(label string, flags Flags) error {
	m.mu.RLock()
	h, ok := m.handles[label]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("window %q is not tracked", label)
	}

	m.engine.Restore(label, flags, h)
	if m.onRestored != nil {
		m.onRestored(label)
	}
	return nil
}

// RestoreStateCurrent resolves the currently focused window and restores
// it.
func (m *Manager) RestoreStateCurrent(flags Flags) error {
	if m.active == nil {
		return fmt.Errorf("no active-window resolver configured")
	}
	label, ok := m.active()
	if !ok {
		return fmt.Errorf("no active window")
	}
	return m.RestoreState(label, flags)
}

// State returns the saved record for a label.
func (m *Manager) State(label string) (WindowState, bool) {
	return m.store.Get(label)
}

// Labels returns all labels with saved records, sorted.
func (m *Manager) Labels() []string {
	return m.store.Labels()
}

// Filename returns the path of the persisted state file.
func (m *Manager) Filename() string {
	return m.store.Path()
}

// Close performs the final synchronous drain: every tracked window is
// captured and flushed, then the background goroutines are stopped. Safe to
// call more than once.
func (m *Manager) Close() error {
	m.closeOnce.Do(func() {
		m.closeErr = m.tracker.SaveAll()
		m.tracker.Close()
		_ = m.log.Sync()
	})
	return m.closeErr
}
