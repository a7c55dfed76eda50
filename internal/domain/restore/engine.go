// Package restore re-applies saved window geometry against the current
// monitor configuration.
//
// The monitor layout at restore time may differ from the one at save time,
// so saved rectangles are validated against current work areas and clamped
// on-screen before being applied. Application is best-effort per attribute:
// a host rejection skips that attribute and never aborts the rest.
package restore

import (
	"go.uber.org/zap"

	"github.com/GriffinCanCode/winstate/internal/infrastructure/logging"
	"github.com/GriffinCanCode/winstate/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/winstate/internal/shared/types"
	"github.com/GriffinCanCode/winstate/internal/shared/utils"
)

// Store is the slice of the state store the engine reads, plus Capture for
// seeding first-seen windows.
type Store interface {
	Get(label string) (types.WindowState, bool)
	Capture(label string, h types.WindowHandle) types.WindowState
}

// Engine validates and applies saved window state.
type Engine struct {
	log        *logging.Logger
	metrics    *monitoring.Metrics
	store      Store
	monitors   types.MonitorProvider
	hasher     *utils.Hasher
	minOverlap float64
}

// New creates a restore engine. minOverlap is the fraction of a saved
// rectangle that must lie on some monitor for its raw coordinates to be
// trusted.
func New(store Store, monitors types.MonitorProvider, minOverlap float64, log *logging.Logger, metrics *monitoring.Metrics) *Engine {
	if log == nil {
		log = logging.NewNop()
	}
	return &Engine{
		log:        log,
		metrics:    metrics,
		store:      store,
		monitors:   monitors,
		hasher:     utils.DefaultHasher(),
		minOverlap: minOverlap,
	}
}

// Restore applies the subset of the saved record selected by flags to the
// handle. It reports whether a record existed; when none does, the window's
// current geometry is captured instead so the first flush persists it, and
// the window keeps its default-constructed state.
func (e *Engine) Restore(label string, flags types.Flags, h types.WindowHandle) bool {
	state, ok := e.store.Get(label)
	if !ok {
		e.store.Capture(label, h)
		e.log.Debug("no saved state, seeded current geometry", zap.String("label", label))
		return false
	}

	if e.metrics != nil {
		e.metrics.RestoresTotal.Inc()
	}

	rect := state.Rect()
	if flags&(types.FlagPosition|types.FlagSize) != 0 {
		rect = e.validate(state)
	}

	// Fixed order: decorations, size, position, then maximized and
	// fullscreen last so they win over raw geometry when both are flagged.
	// Setting geometry on an already maximized window can be rejected or
	// overridden by the host.
	if flags.Has(types.FlagDecorations) {
		e.apply(label, "decorations", func() error { return h.SetDecorations(state.Decorated) })
	}
	if flags.Has(types.FlagSize) && rect.Width > 0 && rect.Height > 0 {
		e.apply(label, "size", func() error { return h.SetSize(uint32(rect.Width), uint32(rect.Height)) })
	}
	if flags.Has(types.FlagPosition) {
		e.apply(label, "position", func() error { return h.SetPosition(rect.X, rect.Y) })
	}
	if flags.Has(types.FlagMaximized) {
		e.apply(label, "maximized", func() error { return h.SetMaximized(state.Maximized) })
	}
	if flags.Has(types.FlagFullscreen) {
		e.apply(label, "fullscreen", func() error { return h.SetFullscreen(state.Fullscreen) })
	}
	if flags.Has(types.FlagVisible) {
		e.apply(label, "visible", func() error { return h.SetVisible(state.Visible) })
	}

	return true
}

// validate returns the saved rectangle, clamped into a monitor's work area
// when its origin lies outside every current monitor or it no longer
// sufficiently overlaps any of them (for example after a monitor was
// disconnected). This keeps windows from restoring off-screen and
// unreachable.
func (e *Engine) validate(state types.WindowState) types.Rect {
	rect := state.Rect()
	if e.monitors == nil {
		return rect
	}
	monitors := e.monitors.Monitors()
	if len(monitors) == 0 || rect.Area() == 0 {
		return rect
	}

	// A top-left corner outside every work area means the monitor it was
	// saved on is gone; the title bar may be unreachable even when most of
	// the rectangle's area is still visible.
	var originVisible bool
	var best int64
	for _, m := range monitors {
		if m.WorkArea.Contains(rect.X, rect.Y) {
			originVisible = true
		}
		if overlap := rect.Intersect(m.WorkArea).Area(); overlap > best {
			best = overlap
		}
	}
	if originVisible && float64(best) >= e.minOverlap*float64(rect.Area()) {
		return rect
	}

	target := e.clampTarget(state, monitors)
	clamped := clampRect(rect, target.WorkArea)
	if e.metrics != nil {
		e.metrics.RestoresClamped.Inc()
	}
	e.log.Info("saved geometry off-screen, clamping",
		zap.String("label", state.Label),
		zap.String("monitor", target.Name),
		zap.Int("x", clamped.X),
		zap.Int("y", clamped.Y))
	return clamped
}

// clampTarget picks the monitor to clamp into: the one matching the saved
// fingerprint when it is still connected, otherwise the primary, otherwise
// the first.
func (e *Engine) clampTarget(state types.WindowState, monitors []types.Monitor) types.Monitor {
	if state.Monitor != "" {
		for _, m := range monitors {
			if e.hasher.MonitorFingerprint(m) == state.Monitor {
				return m
			}
		}
	}
	for _, m := range monitors {
		if m.Primary {
			return m
		}
	}
	return monitors[0]
}

// apply runs one attribute application, degrading a host rejection to a
// logged GeometryError so the remaining attributes still get applied.
func (e *Engine) apply(label, attr string, fn func() error) {
	if err := fn(); err != nil {
		gerr := &types.GeometryError{Label: label, Attr: attr, Err: err}
		e.log.Warn("attribute apply rejected", zap.Error(gerr))
		if e.metrics != nil {
			e.metrics.AttributeErrors.WithLabelValues(attr).Inc()
		}
	}
}

// clampRect fits r into bounds: sizes shrink to the work area and the
// origin shifts the minimal distance that brings the rectangle fully
// on-screen.
func clampRect(r, bounds types.Rect) types.Rect {
	out := r
	if out.Width > bounds.Width {
		out.Width = bounds.Width
	}
	if out.Height > bounds.Height {
		out.Height = bounds.Height
	}
	if out.X < bounds.X {
		out.X = bounds.X
	} else if out.X+out.Width > bounds.X+bounds.Width {
		out.X = bounds.X + bounds.Width - out.Width
	}
	if out.Y < bounds.Y {
		out.Y = bounds.Y
	} else if out.Y+out.Height > bounds.Y+bounds.Height {
		out.Y = bounds.Y + bounds.Height - out.Height
	}
	return out
}
