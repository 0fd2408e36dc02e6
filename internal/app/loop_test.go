//go:build !windows

package app

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	fsutil "github.com/kk-code-lab/rpick/internal/fs"
	statepkg "github.com/kk-code-lab/rpick/internal/state"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// newTestApp builds an application over an in-memory tree:
//
//	/w/dirA /w/dirB /w/a.txt /w/b.txt
//
// Rows are dirA, dirB, a.txt, b.txt and row i is drawn at y=i+1.
func newTestApp(t *testing.T, start string) (*Application, tcell.SimulationScreen) {
	t.Helper()
	mem := afero.NewMemMapFs()
	for _, d := range []string{"/w/dirA", "/w/dirB"} {
		if err := mem.MkdirAll(d, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", d, err)
		}
	}
	for _, f := range []string{"/w/a.txt", "/w/b.txt"} {
		if err := afero.WriteFile(mem, f, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", f, err)
		}
	}
	host := fsutil.NewLocalHost(fsutil.WithFs(mem), fsutil.WithRoots(fsutil.StaticRoots([]string{"/"})))

	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(60, 12)

	app, err := newApplicationWithScreen(screen, host, Options{
		Browser: statepkg.Options{
			Path:   start,
			Mode:   statepkg.ModeFile,
			Logger: zerolog.Nop(),
		},
	})
	if err != nil {
		t.Fatalf("newApplicationWithScreen: %v", err)
	}
	app.renderer.Render(app.State())
	return app, screen
}

func click(app *Application, x, y int) {
	app.handleMouse(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	app.handleMouse(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
	app.step()
	app.renderer.Render(app.State())
}

func TestNewApplicationLoadsStartDirectory(t *testing.T) {
	app, _ := newTestApp(t, "/w")
	state := app.State()

	if state.CurrentPath != "/w" {
		t.Fatalf("CurrentPath = %q, want /w", state.CurrentPath)
	}
	if state.ScreenWidth != 60 || state.ScreenHeight != 12 {
		t.Fatalf("screen size not applied: %dx%d", state.ScreenWidth, state.ScreenHeight)
	}
	if len(state.Rows()) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(state.Rows()))
	}
}

func TestMouseClickSelectsRow(t *testing.T) {
	app, _ := newTestApp(t, "/w")

	click(app, 4, 3)

	if app.State().SelectedFile != 0 {
		t.Fatalf("expected a.txt selected, got file index %d", app.State().SelectedFile)
	}
	if app.shouldQuit {
		t.Fatalf("single click must not finish the picker")
	}
}

func TestMouseHeldButtonDoesNotRepeat(t *testing.T) {
	app, _ := newTestApp(t, "/w")

	app.handleMouse(tcell.NewEventMouse(4, 1, tcell.Button1, tcell.ModNone))
	app.handleMouse(tcell.NewEventMouse(4, 1, tcell.Button1, tcell.ModNone))
	app.step()

	if app.State().CurrentPath != "/w" {
		t.Fatalf("drag over a row must not count as a double-click")
	}
}

func TestMouseDoubleClickEntersDirectory(t *testing.T) {
	app, _ := newTestApp(t, "/w")

	click(app, 4, 1)
	click(app, 4, 1)

	if got := app.State().CurrentPath; got != "/w/dirA" {
		t.Fatalf("CurrentPath = %q, want /w/dirA", got)
	}
	if app.State().HasPendingNavigation() {
		t.Fatalf("navigation should be applied by the loop step")
	}
}

func TestMouseDoubleClickConfirmsFile(t *testing.T) {
	app, _ := newTestApp(t, "/w")

	click(app, 4, 4)
	click(app, 4, 4)

	if got := app.Result(); !got.Selected || got.Path != "/w/b.txt" {
		t.Fatalf("Result = %+v, want /w/b.txt selected", got)
	}
	if !app.shouldQuit {
		t.Fatalf("confirming should stop the loop")
	}
}

func TestMouseBreadcrumbNavigates(t *testing.T) {
	app, _ := newTestApp(t, "/w/dirA")
	layout, ok := app.renderer.LastLayout()
	if !ok || len(layout.Crumbs) != 3 {
		t.Fatalf("unexpected crumbs %+v", layout.Crumbs)
	}

	click(app, layout.Crumbs[1].Start, 0)

	if got := app.State().CurrentPath; got != "/w" {
		t.Fatalf("CurrentPath = %q, want /w", got)
	}
}

func TestMouseButtons(t *testing.T) {
	app, _ := newTestApp(t, "/w")
	layout, _ := app.renderer.LastLayout()

	click(app, layout.SelectButton.Start, 11)
	if app.shouldQuit {
		t.Fatalf("select without a selection must be ignored")
	}

	click(app, 4, 3)
	click(app, layout.SelectButton.Start, 11)
	if got := app.Result(); !got.Selected || got.Path != "/w/a.txt" {
		t.Fatalf("Result = %+v, want /w/a.txt selected", got)
	}

	app, _ = newTestApp(t, "/w")
	click(app, layout.CancelButton.Start, 11)
	if got := app.Result(); got.Selected || !app.shouldQuit {
		t.Fatalf("cancel should finish unselected, got %+v", got)
	}
}

func TestMouseClickClosesHelp(t *testing.T) {
	app, _ := newTestApp(t, "/w")
	app.dispatch(statepkg.HelpToggleAction{})

	click(app, 4, 3)

	if app.State().HelpVisible {
		t.Fatalf("click should close help")
	}
	if app.State().SelectedFile != -1 {
		t.Fatalf("click on help must not select rows")
	}
}

func TestCtrlCCancels(t *testing.T) {
	app, _ := newTestApp(t, "/w")

	app.handleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))

	if !app.shouldQuit {
		t.Fatalf("ctrl+c should stop the loop")
	}
	if got := app.Result(); got.Selected || got.Path != "" {
		t.Fatalf("Result = %+v, want cancelled", got)
	}
}

func TestNotifyChangedQueuesReload(t *testing.T) {
	app, _ := newTestApp(t, "/w")

	app.notifyChanged("/w")

	select {
	case action := <-app.actionCh:
		changed, ok := action.(statepkg.DirectoryChangedAction)
		if !ok || changed.Path != "/w" {
			t.Fatalf("unexpected action %#v", action)
		}
	default:
		t.Fatalf("expected DirectoryChangedAction")
	}
}

func TestRunFinishesOnKeyboardConfirm(t *testing.T) {
	app, screen := newTestApp(t, "/w")

	screen.InjectKey(tcell.KeyEnd, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)

	done := make(chan struct{})
	go func() {
		app.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not finish")
	}

	if got := app.Result(); !got.Selected || got.Path != "/w/b.txt" {
		t.Fatalf("Result = %+v, want /w/b.txt selected", got)
	}
}

func TestExpandUserPath(t *testing.T) {
	orig := userHomeDir
	userHomeDir = func() (string, error) { return "/home/me", nil }
	t.Cleanup(func() { userHomeDir = orig })

	cases := map[string]string{
		"":         "",
		"~":        "/home/me",
		"~/docs":   "/home/me/docs",
		"~other":   "~other",
		"/abs/dir": "/abs/dir",
	}
	for in, want := range cases {
		if got := expandUserPath(in); got != want {
			t.Errorf("expandUserPath(%q) = %q, want %q", in, got, want)
		}
	}
}
