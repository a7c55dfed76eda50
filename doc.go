// Package winstate persists and restores window geometry across process
// restarts for desktop application shells.
//
// A Manager owns the state table for one host application. Hosts register
// each live window under a stable label, forward geometry-change events,
// and ask for a restore when a window is (re)created:
//
//	mgr, err := winstate.New(winstate.Options{
//		AppName:  "my-shell",
//		Monitors: monitorProvider,
//	})
//	if err != nil {
//		return err
//	}
//	defer mgr.Close()
//
//	mgr.Track("main", handle)
//	mgr.RestoreState("main", winstate.FlagAll)
//
//	// from the window's event callback:
//	mgr.NotifyChange("main", winstate.ChangeMoved)
//
// Change events are debounced: a drag that fires hundreds of move events
// produces one disk write. The state file is replaced atomically and a
// corrupt or missing file degrades to an empty store; no failure in this
// package is ever fatal to the host.
package winstate
