// Package paths resolves the per-user location of the persisted state file.
//
// The state file lives in the host application's slice of the OS config
// directory (e.g. ~/.config/<app>/ on Linux). App names are validated before
// they become path components so a hostile label can never escape the
// directory.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFilename is the state file written when the host does not override
// it. The leading dot mirrors the file most desktop shells already ship.
const DefaultFilename = ".window-state.json"

// ValidateAppName checks that a host application name is safe to use as a
// single path component.
func ValidateAppName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("app name is required")
	}
	if name != filepath.Base(name) || strings.ContainsRune(name, os.PathSeparator) {
		return fmt.Errorf("invalid app name %q", name)
	}
	if name == "." || name == ".." || strings.Contains(name, "..") {
		return fmt.Errorf("invalid app name %q", name)
	}
	return nil
}

// StateDir returns the per-user configuration directory for the given app.
func StateDir(appName string) (string, error) {
	if err := ValidateAppName(appName); err != nil {
		return "", err
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(base, appName), nil
}

// StateFile returns the full path of the persisted state file. An empty
// filename selects DefaultFilename.
func StateFile(appName, filename string) (string, error) {
	dir, err := StateDir(appName)
	if err != nil {
		return "", err
	}
	if filename == "" {
		filename = DefaultFilename
	}
	if filename != filepath.Base(filename) {
		return "", fmt.Errorf("invalid state filename %q", filename)
	}
	return filepath.Join(dir, filename), nil
}
