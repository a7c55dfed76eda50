package types

import (
	"fmt"
	"strings"
)

// Flags is a bitset of independent persistence toggles. Flags combine with
// bitwise OR; FlagAll is the union of every toggle.
type Flags uint8

const (
	FlagSize Flags = 1 << iota
	FlagPosition
	FlagMaximized
	FlagVisible
	FlagDecorations
	FlagFullscreen

	// FlagAll selects every attribute.
	FlagAll = FlagSize | FlagPosition | FlagMaximized | FlagVisible | FlagDecorations | FlagFullscreen
)

var flagNames = map[Flags]string{
	FlagSize:        "size",
	FlagPosition:    "position",
	FlagMaximized:   "maximized",
	FlagVisible:     "visible",
	FlagDecorations: "decorations",
	FlagFullscreen:  "fullscreen",
}

// Has reports whether every bit in f is set.
func (f Flags) Has(bit Flags) bool {
	return f&bit == bit
}

// String returns a stable "size|position|..." rendering.
func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for bit := FlagSize; bit <= FlagFullscreen; bit <<= 1 {
		if f.Has(bit) {
			parts = append(parts, flagNames[bit])
		}
	}
	return strings.Join(parts, "|")
}

// ParseFlags converts attribute names into a Flags value. An empty list means
// FlagAll, matching the default of the command surface. "all" is accepted as
// an alias.
func ParseFlags(names []string) (Flags, error) {
	if len(names) == 0 {
		return FlagAll, nil
	}
	var f Flags
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "all":
			f |= FlagAll
		case "size":
			f |= FlagSize
		case "position":
			f |= FlagPosition
		case "maximized":
			f |= FlagMaximized
		case "visible":
			f |= FlagVisible
		case "decorations":
			f |= FlagDecorations
		case "fullscreen":
			f |= FlagFullscreen
		default:
			return 0, fmt.Errorf("unknown state flag %q", name)
		}
	}
	return f, nil
}
