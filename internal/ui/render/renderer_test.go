package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	fsutil "github.com/kk-code-lab/rpick/internal/fs"
	statepkg "github.com/kk-code-lab/rpick/internal/state"
)

func TestTruncateTextToWidth(t *testing.T) {
	r := NewRenderer(nil)

	tests := []struct {
		name   string
		text   string
		width  int
		expect string
	}{
		{
			name:   "fits without truncation",
			text:   "file.txt",
			width:  20,
			expect: "file.txt",
		},
		{
			name:   "adds ellipsis when needed",
			text:   "verylongname",
			width:  6,
			expect: "veryl…",
		},
		{
			name:   "only ellipsis when width too small",
			text:   "example",
			width:  1,
			expect: "…",
		},
		{
			name:   "multi-byte characters respected",
			text:   "你好世界",
			width:  5,
			expect: "你好…",
		},
		{
			name:   "returns empty when width is zero",
			text:   "anything",
			width:  0,
			expect: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := r.truncateTextToWidth(tt.text, tt.width)
			if actual != tt.expect {
				t.Fatalf("expected %q, got %q (width %d)", tt.expect, actual, tt.width)
			}
		})
	}
}

func TestMeasureTextWidth(t *testing.T) {
	r := NewRenderer(nil)

	if got := r.measureTextWidth("abc"); got != 3 {
		t.Fatalf("expected ASCII width 3, got %d", got)
	}

	if got := r.measureTextWidth("你好"); got != 4 {
		t.Fatalf("expected wide rune width 4, got %d", got)
	}
}

func pickerState(mode statepkg.BrowserMode, listing statepkg.Listing) *statepkg.PickerState {
	state := statepkg.NewPickerState(mode, nil)
	state.CurrentPath = listing.Path
	state.Listing = listing
	return state
}

func homeListing(rootCount int) statepkg.Listing {
	return statepkg.Listing{
		Path:                   "/home/user",
		Breadcrumb:             []string{"", "home", "user"},
		Directories:            []string{"a.proj", "b"},
		NonMatchingDirectories: []string{"c"},
		Files:                  []string{"notes.txt"},
		NonMatchingFiles:       []string{"image.png"},
		RootCount:              rootCount,
	}
}

func TestComputeLayoutPlacesCrumbsAndButtons(t *testing.T) {
	r := NewRenderer(nil)
	layout := r.computeLayout(pickerState(statepkg.ModeFile, homeListing(1)), 40, 10)

	if layout.ListTop != 1 || layout.ListBottom != 9 {
		t.Fatalf("list rows = [%d,%d), want [1,9)", layout.ListTop, layout.ListBottom)
	}
	if len(layout.Crumbs) != 3 || layout.CrumbsTruncated {
		t.Fatalf("expected 3 untruncated crumbs, got %+v", layout.Crumbs)
	}
	want := []Span{{6, 7}, {10, 14}, {17, 21}}
	for i, crumb := range layout.Crumbs {
		if crumb.Span != want[i] {
			t.Fatalf("crumb %d span = %+v, want %+v", i, crumb.Span, want[i])
		}
		if crumb.Segment != i || crumb.Root {
			t.Fatalf("crumb %d = %+v", i, crumb)
		}
	}
	if !layout.Crumbs[2].Current {
		t.Fatalf("last crumb should be current")
	}
	if layout.SelectButton != (Span{31, 39}) || layout.CancelButton != (Span{22, 30}) {
		t.Fatalf("buttons cancel=%+v select=%+v", layout.CancelButton, layout.SelectButton)
	}
}

func TestComputeLayoutRootCrumbThreshold(t *testing.T) {
	r := NewRenderer(nil)

	single := r.computeLayout(pickerState(statepkg.ModeFile, homeListing(1)), 60, 10)
	if single.Crumbs[0].Root {
		t.Fatalf("root crumb must be hidden with a single root")
	}

	multi := r.computeLayout(pickerState(statepkg.ModeFile, homeListing(2)), 60, 10)
	if len(multi.Crumbs) != 4 || !multi.Crumbs[0].Root || multi.Crumbs[0].Label != statepkg.RootCrumbLabel {
		t.Fatalf("expected leading root crumb, got %+v", multi.Crumbs)
	}
}

func TestComputeLayoutRootLevelShowsOnlyRootCrumb(t *testing.T) {
	r := NewRenderer(nil)
	listing := statepkg.Listing{Directories: []string{"C:\\", "D:\\"}, RootCount: 2}
	layout := r.computeLayout(pickerState(statepkg.ModeDirectory, listing), 40, 10)

	if len(layout.Crumbs) != 1 || !layout.Crumbs[0].Root || !layout.Crumbs[0].Current {
		t.Fatalf("expected single current root crumb, got %+v", layout.Crumbs)
	}
}

func TestComputeLayoutTruncatesLeadingCrumbs(t *testing.T) {
	r := NewRenderer(nil)
	listing := homeListing(1)
	listing.Path = "/home/user/projects/deep"
	listing.Breadcrumb = []string{"", "home", "user", "projects", "deep"}

	layout := r.computeLayout(pickerState(statepkg.ModeFile, listing), 20, 10)
	if !layout.CrumbsTruncated {
		t.Fatalf("expected truncated crumbs")
	}
	if len(layout.Crumbs) != 1 || layout.Crumbs[0].Label != "deep" || layout.Crumbs[0].Segment != 4 {
		t.Fatalf("expected only the current crumb, got %+v", layout.Crumbs)
	}
	if layout.Crumbs[0].Start != 10 {
		t.Fatalf("crumb should start after the ellipsis, got %d", layout.Crumbs[0].Start)
	}
}

func TestHitTest(t *testing.T) {
	r := NewRenderer(nil)
	layout := r.computeLayout(pickerState(statepkg.ModeFile, homeListing(2)), 60, 10)

	tests := []struct {
		name   string
		x, y   int
		scroll int
		want   Hit
	}{
		{"root crumb", 6, 0, 0, Hit{Kind: HitRootCrumb, Index: -1}},
		{"path crumb", layout.Crumbs[2].Start, 0, 0, Hit{Kind: HitCrumb, Index: 1}},
		{"separator maps to previous crumb", layout.Crumbs[2].End, 0, 0, Hit{Kind: HitCrumb, Index: 1}},
		{"title", 1, 0, 0, Hit{Kind: HitNone}},
		{"first row", 3, 1, 0, Hit{Kind: HitRow, Index: 0}},
		{"scrolled row", 3, 2, 5, Hit{Kind: HitRow, Index: 6}},
		{"cancel", layout.CancelButton.Start, 9, 0, Hit{Kind: HitCancel}},
		{"select", layout.SelectButton.End - 1, 9, 0, Hit{Kind: HitSelect}},
		{"footer text", 0, 9, 0, Hit{Kind: HitNone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := layout.HitTest(tt.x, tt.y, tt.scroll); got != tt.want {
				t.Fatalf("HitTest(%d,%d) = %+v, want %+v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func newSimulationRenderer(t *testing.T, w, h int) (*Renderer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)
	return NewRenderer(screen), screen
}

func screenLine(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		mainc, _, _, _ := screen.GetContent(x, y)
		if mainc == 0 {
			mainc = ' '
		}
		b.WriteRune(mainc)
	}
	return strings.TrimRight(b.String(), " ")
}

func TestRenderDrawsHeaderListAndFooter(t *testing.T) {
	r, screen := newSimulationRenderer(t, 50, 10)
	state := pickerState(statepkg.ModeFile, homeListing(1))

	r.Render(state)

	if got := screenLine(screen, 0); !strings.HasPrefix(got, "rpick / › home › user") {
		t.Fatalf("header = %q", got)
	}
	wantRows := []string{" / a.proj", " / b", " / c", "   notes.txt", "   image.png"}
	for i, want := range wantRows {
		if got := screenLine(screen, i+1); got != want {
			t.Fatalf("row %d = %q, want %q", i, got, want)
		}
	}
	footer := screenLine(screen, 9)
	if !strings.Contains(footer, cancelLabel) || !strings.Contains(footer, selectLabel) {
		t.Fatalf("footer missing buttons: %q", footer)
	}
	if _, ok := r.LastLayout(); !ok {
		t.Fatalf("expected layout after render")
	}
}

func TestRenderHighlightsSelectedRow(t *testing.T) {
	r, screen := newSimulationRenderer(t, 50, 10)
	state := pickerState(statepkg.ModeFile, homeListing(1))
	state.SelectedFile = 0
	state.Cursor = 3

	r.Render(state)

	_, _, style, _ := screen.GetContent(4, 4)
	_, bg, _ := style.Decompose()
	if bg != r.theme.SelectionBg {
		t.Fatalf("selected row background = %v, want %v", bg, r.theme.SelectionBg)
	}
	if footer := screenLine(screen, 9); !strings.Contains(footer, "/home/user/notes.txt") {
		t.Fatalf("footer should show the selection path, got %q", footer)
	}
}

func TestRenderFooterShowsError(t *testing.T) {
	r, screen := newSimulationRenderer(t, 60, 10)
	state := pickerState(statepkg.ModeFile, statepkg.Listing{Path: "/gone", Breadcrumb: []string{"", "gone"}, RootCount: 1})
	state.LastError = errors.New("path not found: /gone")

	r.Render(state)

	if footer := screenLine(screen, 9); !strings.Contains(footer, "path not found") {
		t.Fatalf("footer should report the error, got %q", footer)
	}
	if row := screenLine(screen, 1); row != "   (empty)" {
		t.Fatalf("empty listing row = %q", row)
	}
}

func TestRenderHelpOverlay(t *testing.T) {
	r, screen := newSimulationRenderer(t, 60, 30)
	state := pickerState(statepkg.ModeFile, homeListing(1))
	state.HelpVisible = true

	r.Render(state)

	if got := screenLine(screen, 0); !strings.Contains(got, "Help") {
		t.Fatalf("expected help title, got %q", got)
	}
	if got := screenLine(screen, 2); got != "  Navigation" {
		t.Fatalf("expected first section, got %q", got)
	}
}

func TestBuildFooterHelpSegments(t *testing.T) {
	state := pickerState(statepkg.ModeFile, homeListing(1))
	got := buildFooterHelpSegments(state)
	if got[0] != "[file]" || got[len(got)-1] != "?: help" {
		t.Fatalf("unexpected footer segments %v", got)
	}
	for _, seg := range got {
		if strings.Contains(seg, "select") {
			t.Fatalf("select hint shown without a selection: %v", got)
		}
	}

	state.SelectedFile = 0
	if got := buildFooterHelpText(state); !strings.Contains(got, "^S: select") {
		t.Fatalf("expected select hint, got %q", got)
	}

	state = statepkg.NewPickerState(statepkg.ModeDirectory, fsutil.MustCompilePattern("*.proj"))
	if got := buildFooterHelpSegments(state); got[0] != "[directory *.proj]" {
		t.Fatalf("mode segment = %q", got[0])
	}
}

func TestBuildHelpOverlayLinesReflectsState(t *testing.T) {
	state := pickerState(statepkg.ModeFile, homeListing(1))
	lines := strings.Join(buildHelpOverlayLines(state), "\n")
	if !strings.Contains(lines, "Show hidden entries") || !strings.Contains(lines, "Select highlighted file") {
		t.Fatalf("unexpected help lines:\n%s", lines)
	}

	state.ShowHidden = true
	state.Mode = statepkg.ModeDirectory
	lines = strings.Join(buildHelpOverlayLines(state), "\n")
	if !strings.Contains(lines, "Hide hidden entries") || !strings.Contains(lines, "current directory") {
		t.Fatalf("help should reflect state:\n%s", lines)
	}
}
