//go:build windows

package app

import "os"

// On Windows there is no SIGTSTP/SIGCONT; treat suspend as no-op.
func contSignals() []os.Signal {
	return nil
}

func (app *Application) suspendToShell() {
}

func (app *Application) resumeAfterStop() bool {
	return false
}
