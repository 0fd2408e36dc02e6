package app

import (
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rpick/internal/state"
	inputui "github.com/kk-code-lab/rpick/internal/ui/input"
	renderui "github.com/kk-code-lab/rpick/internal/ui/render"
	"github.com/kk-code-lab/rpick/internal/watch"
	"github.com/rs/zerolog"
)

// Options configures an Application.
type Options struct {
	Browser statepkg.Options

	// Watch reloads the listing when the shown directory changes on disk.
	Watch         bool
	WatchDebounce time.Duration

	// DoubleClick is the longest gap between two clicks on the same row
	// that still counts as a double-click.
	DoubleClick time.Duration
}

// Result is the outcome of a picker session.
type Result struct {
	Path     string
	Selected bool
}

// Application represents the running picker.
type Application struct {
	screen   tcell.Screen
	browser  *statepkg.Browser
	renderer *renderui.Renderer
	input    *inputui.InputHandler
	actionCh chan statepkg.Action
	watcher  *watch.Watcher
	logger   zerolog.Logger

	shouldQuit  bool
	result      Result
	watchedPath string

	doubleClick   time.Duration
	lastButtons   tcell.ButtonMask
	lastClickRow  int
	lastClickTime time.Time
}

// Close cleans up resources.
func (app *Application) Close() error {
	var err error
	if app.watcher != nil {
		err = app.watcher.Close()
	}
	app.browser.Dispose()
	app.screen.Fini()
	return err
}

// Result returns what the session finished with. Selected is false until
// a path was confirmed.
func (app *Application) Result() Result {
	return app.result
}

// State exposes the picker state.
func (app *Application) State() *statepkg.PickerState {
	return app.browser.State()
}

// GetCwd returns current working directory.
func GetCwd() (string, error) {
	return os.Getwd()
}
