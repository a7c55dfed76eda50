// Package types defines the shared data model for window-state persistence.
//
// The central record is WindowState: a full geometry/attribute snapshot for
// one window label. Flags select which attributes a restore (or forced save)
// operation acts on. WindowHandle and MonitorProvider are the host-side
// collaborators; the library never creates windows or enumerates monitors
// itself.
package types
