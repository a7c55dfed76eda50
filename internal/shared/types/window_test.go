package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	b := Rect{X: 50, Y: 50, Width: 100, Height: 100}

	got := a.Intersect(b)
	assert.Equal(t, Rect{X: 50, Y: 50, Width: 50, Height: 50}, got)
	assert.Equal(t, int64(2500), got.Area())
	assert.True(t, a.Overlaps(b))
}

func TestRectDisjoint(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 20, Y: 0, Width: 10, Height: 10}

	assert.False(t, a.Overlaps(b))
	assert.Equal(t, int64(0), a.Intersect(b).Area())

	// Touching edges share no area.
	c := Rect{X: 10, Y: 0, Width: 10, Height: 10}
	assert.False(t, a.Overlaps(c))
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

	assert.True(t, r.Contains(0, 0))
	assert.True(t, r.Contains(1919, 1079))
	assert.False(t, r.Contains(-50, 100), "point left of the work area")
	assert.False(t, r.Contains(1920, 0), "right edge is exclusive")
}

func TestWindowStateRect(t *testing.T) {
	s := WindowState{X: -50, Y: 100, Width: 800, Height: 600}
	assert.Equal(t, Rect{X: -50, Y: 100, Width: 800, Height: 600}, s.Rect())
}
