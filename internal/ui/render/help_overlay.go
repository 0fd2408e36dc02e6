package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rpick/internal/state"
	textutil "github.com/kk-code-lab/rpick/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

func buildHelpOverlayLines(state *statepkg.PickerState) []string {
	hiddenDesc := "Show hidden entries"
	if state != nil && state.ShowHidden {
		hiddenDesc = "Hide hidden entries"
	}
	confirmDesc := "Select highlighted file"
	if state != nil && state.Mode == statepkg.ModeDirectory {
		confirmDesc = "Select highlighted or current directory"
	}

	sections := []helpOverlaySection{
		{
			title: "Navigation",
			entries: []helpOverlayEntry{
				{keys: "↑/↓ j/k", desc: "Move highlight"},
				{keys: "PgUp/PgDn", desc: "Move by a page"},
				{keys: "Home/End", desc: "First / last entry"},
				{keys: "↵ or →", desc: "Open directory"},
				{keys: "← or Backspace", desc: "Parent directory"},
				{keys: "\\", desc: "Drive / root list"},
				{keys: "~", desc: "Go home"},
			},
		},
		{
			title: "Actions",
			entries: []helpOverlayEntry{
				{keys: "Ctrl+S or s", desc: confirmDesc},
				{keys: ".", desc: hiddenDesc},
				{keys: "r", desc: "Refresh directory"},
			},
		},
		{
			title: "Mouse",
			entries: []helpOverlayEntry{
				{keys: "click", desc: "Highlight entry / open breadcrumb"},
				{keys: "double-click", desc: "Open directory or select file"},
			},
		},
		{
			title: "Exit",
			entries: []helpOverlayEntry{
				{keys: "Esc or q", desc: "Cancel"},
				{keys: "Ctrl+C", desc: "Cancel immediately"},
				{keys: "?", desc: "Close this help"},
			},
		},
	}

	lines := make([]string, 0, 32)
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}

	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	key := textutil.SanitizeTerminalText(entry.keys)
	desc := textutil.SanitizeTerminalText(entry.desc)
	return fmt.Sprintf("  %-16s %s", key, desc)
}

func (r *Renderer) drawHelpOverlay(state *statepkg.PickerState, w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	for y := 0; y < h; y++ {
		r.fill(0, w, y, baseStyle)
	}

	title := " Help "
	headerStyle := baseStyle.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg).Bold(true)
	titleStart := 0
	titleWidth := r.measureTextWidth(title)
	if w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, headerStyle)

	lines := buildHelpOverlayLines(state)
	row := 2
	maxRow := h - 1
	for _, line := range lines {
		if row >= maxRow {
			break
		}
		text := strings.TrimRight(line, " ")
		text = r.truncateTextToWidth(text, w-4)
		r.drawTextLine(2, row, w-4, text, baseStyle)
		row++
	}

	if h > 0 {
		footer := r.truncateTextToWidth("? toggle · Esc/q close", w)
		r.drawTextLine(0, h-1, w, footer, headerStyle)
	}
}
