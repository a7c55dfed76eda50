package restore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/winstate/internal/infrastructure/config"
	"github.com/GriffinCanCode/winstate/internal/shared/types"
)

type fakeStore struct {
	states   map[string]types.WindowState
	captured []string
}

func (f *fakeStore) Get(label string) (types.WindowState, bool) {
	s, ok := f.states[label]
	return s, ok
}

func (f *fakeStore) Capture(label string, h types.WindowHandle) types.WindowState {
	f.captured = append(f.captured, label)
	return types.WindowState{Label: label}
}

type fakeMonitors struct {
	monitors []types.Monitor
}

func (f *fakeMonitors) Monitors() []types.Monitor { return f.monitors }

type fakeWindow struct {
	x, y          int
	width, height uint32
	maximized     bool
	visible       bool
	decorated     bool
	fullscreen    bool

	applied []string
	errs    map[string]error
}

func (f *fakeWindow) Position() (int, int, error)           { return f.x, f.y, nil }
func (f *fakeWindow) Size() (uint32, uint32, error)         { return f.width, f.height, nil }
func (f *fakeWindow) Maximized() (bool, error)              { return f.maximized, nil }
func (f *fakeWindow) Visible() (bool, error)                { return f.visible, nil }
func (f *fakeWindow) Decorated() (bool, error)              { return f.decorated, nil }
func (f *fakeWindow) Fullscreen() (bool, error)             { return f.fullscreen, nil }
func (f *fakeWindow) CurrentMonitor() (types.Monitor, bool) { return types.Monitor{}, false }

func (f *fakeWindow) set(attr string, apply func()) error {
	if err := f.errs[attr]; err != nil {
		return err
	}
	f.applied = append(f.applied, attr)
	apply()
	return nil
}

func (f *fakeWindow) SetPosition(x, y int) error {
	return f.set("position", func() { f.x, f.y = x, y })
}
func (f *fakeWindow) SetSize(w, h uint32) error {
	return f.set("size", func() { f.width, f.height = w, h })
}
func (f *fakeWindow) SetMaximized(v bool) error {
	return f.set("maximized", func() { f.maximized = v })
}
func (f *fakeWindow) SetVisible(v bool) error {
	return f.set("visible", func() { f.visible = v })
}
func (f *fakeWindow) SetDecorations(v bool) error {
	return f.set("decorations", func() { f.decorated = v })
}
func (f *fakeWindow) SetFullscreen(v bool) error {
	return f.set("fullscreen", func() { f.fullscreen = v })
}

func singleMonitor() *fakeMonitors {
	return &fakeMonitors{monitors: []types.Monitor{
		{Name: "DP-1", WorkArea: types.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}, Primary: true},
	}}
}

func TestRestoreAppliesSavedState(t *testing.T) {
	fs := &fakeStore{states: map[string]types.WindowState{
		"main": {Label: "main", X: 100, Y: 50, Width: 800, Height: 600, Visible: true, Decorated: true},
	}}
	e := New(fs, singleMonitor(), 0.25, nil, nil)
	win := &fakeWindow{}

	require.True(t, e.Restore("main", types.FlagAll, win))
	assert.Equal(t, 100, win.x)
	assert.Equal(t, 50, win.y)
	assert.Equal(t, uint32(800), win.width)
	assert.True(t, win.visible)
	assert.True(t, win.decorated)
}

func TestRestoreOrder(t *testing.T) {
	fs := &fakeStore{states: map[string]types.WindowState{
		"main": {Label: "main", X: 10, Y: 10, Width: 400, Height: 300, Maximized: true, Fullscreen: true, Visible: true, Decorated: true},
	}}
	e := New(fs, singleMonitor(), 0.25, nil, nil)
	win := &fakeWindow{}

	e.Restore("main", types.FlagAll, win)
	assert.Equal(t,
		[]string{"decorations", "size", "position", "maximized", "fullscreen", "visible"},
		win.applied)
}

func TestRestoreMissingRecordSeedsCurrent(t *testing.T) {
	fs := &fakeStore{states: map[string]types.WindowState{}}
	e := New(fs, singleMonitor(), 0.25, nil, nil)
	win := &fakeWindow{x: 5, y: 5, width: 300, height: 200}

	assert.False(t, e.Restore("main", types.FlagAll, win))
	assert.Equal(t, []string{"main"}, fs.captured)
	assert.Empty(t, win.applied, "a restore miss must not touch the window")
}

func TestPartialFlagRestore(t *testing.T) {
	fs := &fakeStore{states: map[string]types.WindowState{
		"main": {Label: "main", X: 100, Y: 50, Width: 800, Height: 600, Maximized: true},
	}}
	e := New(fs, singleMonitor(), 0.25, nil, nil)
	win := &fakeWindow{width: 320, height: 240}

	e.Restore("main", types.FlagPosition, win)

	assert.Equal(t, 100, win.x)
	assert.False(t, win.maximized, "unflagged attributes must not change")
	assert.Equal(t, uint32(320), win.width, "unflagged attributes must not change")
}

func TestClampOffscreenRect(t *testing.T) {
	// Saved on a layout with a monitor at negative x; that monitor is gone.
	fs := &fakeStore{states: map[string]types.WindowState{
		"main": {Label: "main", X: -2500, Y: 100, Width: 800, Height: 600},
	}}
	e := New(fs, singleMonitor(), 0.25, nil, nil)
	win := &fakeWindow{}

	e.Restore("main", types.FlagPosition|types.FlagSize, win)

	bounds := singleMonitor().monitors[0].WorkArea
	assert.GreaterOrEqual(t, win.x, bounds.X)
	assert.GreaterOrEqual(t, win.y, bounds.Y)
	assert.LessOrEqual(t, win.x+int(win.width), bounds.X+bounds.Width)
	assert.LessOrEqual(t, win.y+int(win.height), bounds.Y+bounds.Height)
}

func TestClampOffscreenOrigin(t *testing.T) {
	// {x:-50,y:100,800x600} saved while a monitor covered x<0; now the only
	// monitor starts at x=0. Most of the rectangle's area is still visible,
	// but the origin is not on any monitor, so the position is clamped under
	// the default overlap threshold.
	record := types.WindowState{Label: "main", X: -50, Y: 100, Width: 800, Height: 600}

	fs := &fakeStore{states: map[string]types.WindowState{"main": record}}
	e := New(fs, singleMonitor(), config.Default().Restore.MinOverlap, nil, nil)
	win := &fakeWindow{}

	e.Restore("main", types.FlagPosition|types.FlagSize, win)
	assert.Equal(t, 0, win.x)
	assert.Equal(t, 100, win.y)
	assert.Equal(t, uint32(800), win.width)
}

func TestClampBelowOverlapThreshold(t *testing.T) {
	// Origin on-screen but nearly the whole rectangle hangs off the
	// bottom-right corner: overlap 20x80 of 800x600 is below the default
	// threshold, so the rectangle is clamped.
	fs := &fakeStore{states: map[string]types.WindowState{
		"main": {Label: "main", X: 1900, Y: 1000, Width: 800, Height: 600},
	}}
	e := New(fs, singleMonitor(), 0.25, nil, nil)
	win := &fakeWindow{}

	e.Restore("main", types.FlagPosition|types.FlagSize, win)

	bounds := singleMonitor().monitors[0].WorkArea
	assert.LessOrEqual(t, win.x+int(win.width), bounds.X+bounds.Width)
	assert.LessOrEqual(t, win.y+int(win.height), bounds.Y+bounds.Height)
}

func TestOnscreenRectKeptRaw(t *testing.T) {
	fs := &fakeStore{states: map[string]types.WindowState{
		"main": {Label: "main", X: 600, Y: 300, Width: 800, Height: 600},
	}}
	e := New(fs, singleMonitor(), 0.25, nil, nil)
	win := &fakeWindow{}

	e.Restore("main", types.FlagPosition|types.FlagSize, win)
	assert.Equal(t, 600, win.x)
	assert.Equal(t, 300, win.y)
}

func TestClampPrefersFingerprintedMonitor(t *testing.T) {
	monitors := &fakeMonitors{monitors: []types.Monitor{
		{Name: "DP-1", WorkArea: types.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}, Primary: true},
		{Name: "DP-2", WorkArea: types.Rect{X: 1920, Y: 0, Width: 1920, Height: 1080}},
	}}
	e := New(&fakeStore{}, monitors, 0.25, nil, nil)
	fp := e.hasher.MonitorFingerprint(monitors.monitors[1])

	fs := &fakeStore{states: map[string]types.WindowState{
		"main": {Label: "main", X: 9000, Y: 9000, Width: 800, Height: 600, Monitor: fp},
	}}
	e = New(fs, monitors, 0.25, nil, nil)
	win := &fakeWindow{}
	e.Restore("main", types.FlagPosition|types.FlagSize, win)

	second := monitors.monitors[1].WorkArea
	assert.GreaterOrEqual(t, win.x, second.X)
	assert.LessOrEqual(t, win.x+int(win.width), second.X+second.Width)
}

func TestRestoreBestEffortOnRejection(t *testing.T) {
	fs := &fakeStore{states: map[string]types.WindowState{
		"main": {Label: "main", X: 100, Y: 50, Width: 800, Height: 600, Visible: true},
	}}
	e := New(fs, singleMonitor(), 0.25, nil, nil)
	win := &fakeWindow{errs: map[string]error{"size": errors.New("host rejected")}}

	e.Restore("main", types.FlagAll, win)

	// The size failure must not abort the remaining attributes.
	assert.Equal(t, 100, win.x)
	assert.True(t, win.visible)
}

func TestRestoreWithoutMonitorsAppliesRaw(t *testing.T) {
	fs := &fakeStore{states: map[string]types.WindowState{
		"main": {Label: "main", X: -9999, Y: -9999, Width: 800, Height: 600},
	}}
	e := New(fs, nil, 0.25, nil, nil)
	win := &fakeWindow{}

	e.Restore("main", types.FlagPosition|types.FlagSize, win)
	assert.Equal(t, -9999, win.x)
}
