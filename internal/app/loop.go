package app

import (
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	fsutil "github.com/kk-code-lab/rpick/internal/fs"
	statepkg "github.com/kk-code-lab/rpick/internal/state"
	"github.com/kk-code-lab/rpick/internal/ui/input"
	renderui "github.com/kk-code-lab/rpick/internal/ui/render"
	"github.com/kk-code-lab/rpick/internal/watch"
)

const defaultDoubleClick = 300 * time.Millisecond

// NewApplication opens the terminal and loads the start directory.
func NewApplication(host fsutil.Host, opts Options) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	// Parse mouse sequences so modified clicks don't leak as key events.
	screen.EnableMouse()

	app, err := newApplicationWithScreen(screen, host, opts)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return app, nil
}

func newApplicationWithScreen(screen tcell.Screen, host fsutil.Host, opts Options) (*Application, error) {
	actionCh := make(chan statepkg.Action, 32)
	app := &Application{
		screen:       screen,
		renderer:     renderui.NewRenderer(screen),
		input:        input.NewInputHandler(actionCh),
		actionCh:     actionCh,
		logger:       opts.Browser.Logger,
		doubleClick:  opts.DoubleClick,
		lastClickRow: -1,
	}
	if app.doubleClick <= 0 {
		app.doubleClick = defaultDoubleClick
	}

	browserOpts := opts.Browser
	browserOpts.Path = expandUserPath(browserOpts.Path)
	browser, err := statepkg.NewBrowser(host, browserOpts, app.onFinished)
	if err != nil {
		return nil, err
	}
	app.browser = browser

	w, h := screen.Size()
	app.dispatch(statepkg.ResizeAction{Width: w, Height: h})

	if opts.Watch {
		watcher, err := watch.New(app.notifyChanged,
			watch.WithDebounce(opts.WatchDebounce),
			watch.WithLogger(app.logger))
		if err != nil {
			app.logger.Warn().Err(err).Msg("directory watching disabled")
		} else {
			app.watcher = watcher
			app.syncWatcher()
		}
	}

	return app, nil
}

func (app *Application) onFinished(path string, ok bool) {
	app.result = Result{Path: path, Selected: ok}
	app.shouldQuit = true
}

// notifyChanged runs on the watcher goroutine; a full channel drops the
// event since the next one reloads the same directory anyway.
func (app *Application) notifyChanged(path string) {
	select {
	case app.actionCh <- statepkg.DirectoryChangedAction{Path: path}:
	default:
	}
	_ = app.screen.PostEvent(tcell.NewEventInterrupt("fs-change"))
}

// Run processes events until the picker confirms or cancels. The screen
// stays open until Close.
func (app *Application) Run() {
	app.renderer.Render(app.browser.State())
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.browser.State())
			renderPending = false
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.step() {
			renderPending = true
		}
	}
}

// step drains queued actions, then applies deferred navigation.
func (app *Application) step() bool {
	changed := app.processActions()
	if app.applyPendingNavigation() {
		changed = true
	}
	app.syncWatcher()
	return changed
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey, *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			// Let the queued cancel reach the browser before leaving.
			app.processActions()
			app.shouldQuit = true
		}
	case *tcell.EventMouse:
		app.handleMouse(ev)
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

// handleMouse maps primary-button presses to breadcrumb, row and button
// actions using the geometry of the last frame.
func (app *Application) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && app.lastButtons&tcell.Button1 == 0
	app.lastButtons = buttons
	if !pressed {
		return
	}

	state := app.browser.State()
	if state.HelpVisible {
		app.actionCh <- statepkg.HelpHideAction{}
		return
	}

	layout, ok := app.renderer.LastLayout()
	if !ok {
		return
	}

	x, y := ev.Position()
	hit := layout.HitTest(x, y, state.ScrollOffset)
	switch hit.Kind {
	case renderui.HitRootCrumb:
		app.actionCh <- statepkg.RootCrumbAction{}
	case renderui.HitCrumb:
		app.actionCh <- statepkg.BreadcrumbAction{Segment: hit.Index}
	case renderui.HitRow:
		if hit.Index >= len(state.Rows()) {
			return
		}
		doubleClick := app.lastClickRow == hit.Index && time.Since(app.lastClickTime) <= app.doubleClick
		if doubleClick {
			app.actionCh <- statepkg.ActivateRowAction{Row: hit.Index}
			app.lastClickRow = -1
			return
		}
		app.actionCh <- statepkg.SelectRowAction{Row: hit.Index}
		app.lastClickRow = hit.Index
		app.lastClickTime = time.Now()
	case renderui.HitCancel:
		app.actionCh <- statepkg.CancelAction{}
	case renderui.HitSelect:
		app.actionCh <- statepkg.ConfirmAction{}
	}
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	if _, ok := action.(statepkg.SuspendAction); ok {
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	}

	app.dispatch(action)
	return true
}

func (app *Application) dispatch(action statepkg.Action) {
	if err := app.browser.Dispatch(action); err != nil {
		if errors.Is(err, statepkg.ErrBrowserDisposed) {
			app.shouldQuit = true
			return
		}
		app.logger.Error().Err(err).Msg("action failed")
	}
	app.input.SetState(app.browser.State())
}

func (app *Application) applyPendingNavigation() bool {
	if !app.browser.State().HasPendingNavigation() {
		return false
	}
	app.dispatch(statepkg.ApplyPendingNavigationAction{})
	return true
}

// syncWatcher points the watcher at the directory being shown.
func (app *Application) syncWatcher() {
	if app.watcher == nil {
		return
	}
	current := app.browser.State().CurrentPath
	if current == app.watchedPath {
		return
	}
	app.watchedPath = current
	if err := app.watcher.Watch(current); err != nil {
		app.logger.Debug().Err(err).Str("path", current).Msg("watch failed")
	}
}
