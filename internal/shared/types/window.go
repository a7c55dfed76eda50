package types

// Rect is an axis-aligned rectangle in virtual-screen coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Area returns the rectangle's area. Degenerate rectangles have area 0.
func (r Rect) Area() int64 {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return int64(r.Width) * int64(r.Height)
}

// Intersect returns the overlap of two rectangles. The result has
// non-positive width or height when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x1 := max(r.X, other.X)
	y1 := max(r.Y, other.Y)
	x2 := min(r.X+r.Width, other.X+other.Width)
	y2 := min(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Contains reports whether the point (x, y) lies within the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Overlaps reports whether the rectangles share any area.
func (r Rect) Overlaps(other Rect) bool {
	return r.Intersect(other).Area() > 0
}

// WindowState is the persisted snapshot for one window label. A capture
// always fills every field; restore selectivity is governed by Flags.
type WindowState struct {
	Label      string `json:"label"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      uint32 `json:"width"`
	Height     uint32 `json:"height"`
	Maximized  bool   `json:"maximized"`
	Visible    bool   `json:"visible"`
	Decorated  bool   `json:"decorated"`
	Fullscreen bool   `json:"fullscreen"`

	// Monitor is an opaque fingerprint of the monitor the window resided on
	// at capture time. Used on restore to pick a clamp target when the saved
	// geometry no longer fits the current monitor layout.
	Monitor string `json:"monitor,omitempty"`
}

// Rect returns the saved outer rectangle.
func (s WindowState) Rect() Rect {
	return Rect{X: s.X, Y: s.Y, Width: int(s.Width), Height: int(s.Height)}
}

// Monitor describes one display's usable work area.
type Monitor struct {
	Name     string `json:"name"`
	WorkArea Rect   `json:"work_area"`
	Primary  bool   `json:"primary"`
}

// WindowHandle is the host's live window object. Implementations are expected
// to be safe for use from the library's flush and restore goroutines.
type WindowHandle interface {
	Position() (x, y int, err error)
	Size() (width, height uint32, err error)
	Maximized() (bool, error)
	Visible() (bool, error)
	Decorated() (bool, error)
	Fullscreen() (bool, error)

	SetPosition(x, y int) error
	SetSize(width, height uint32) error
	SetMaximized(maximized bool) error
	SetVisible(visible bool) error
	SetDecorations(decorated bool) error
	SetFullscreen(fullscreen bool) error

	// CurrentMonitor returns the monitor the window currently resides on,
	// or false when the host cannot determine it.
	CurrentMonitor() (Monitor, bool)
}

// MonitorProvider supplies the current monitor layout.
type MonitorProvider interface {
	Monitors() []Monitor
}

// ChangeKind classifies a window event.
type ChangeKind string

const (
	ChangeMoved   ChangeKind = "moved"
	ChangeResized ChangeKind = "resized"
	ChangeState   ChangeKind = "state" // maximize/fullscreen/decoration/visibility toggles
	ChangeClosed  ChangeKind = "closed"
)

// ChangeEvent is one geometry-or-attribute change notification for a tracked
// window. Events are a message-passing boundary: host callbacks enqueue them
// and the tracker consumes them single-threaded.
type ChangeEvent struct {
	Label string
	Kind  ChangeKind
}
