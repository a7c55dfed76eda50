package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/GriffinCanCode/winstate/internal/shared/types"
)

// Hasher provides deterministic hashing for identity fingerprints.
type Hasher struct{}

// DefaultHasher returns a sha256-backed hasher.
func DefaultHasher() *Hasher {
	return &Hasher{}
}

// HashFields hashes the concatenation of fields with a fixed delimiter.
// Field order matters: a monitor's name and geometry are positional.
func (h *Hasher) HashFields(fields ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(fields, "|")))
	return hex.EncodeToString(sum[:])
}

// ShortHash truncates a full hash to 8 characters for storage and display.
func (h *Hasher) ShortHash(full string) string {
	if len(full) < 8 {
		return full
	}
	return full[:8]
}

// MonitorFingerprint derives an opaque stable identity for a monitor from
// its name and work-area geometry. A monitor that moves or changes
// resolution gets a new fingerprint, which is the desired behavior: saved
// coordinates are only trusted against the exact layout they were captured
// on.
func (h *Hasher) MonitorFingerprint(m types.Monitor) string {
	full := h.HashFields(
		m.Name,
		fmt.Sprintf("%d,%d", m.WorkArea.X, m.WorkArea.Y),
		fmt.Sprintf("%dx%d", m.WorkArea.Width, m.WorkArea.Height),
	)
	return h.ShortHash(full)
}
