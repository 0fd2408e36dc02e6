package render

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rpick/internal/state"
	textutil "github.com/kk-code-lab/rpick/internal/textutil"
)

// Renderer handles all UI rendering
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes

	lastLayout Layout
	hasLayout  bool
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// LastLayout returns the geometry of the last rendered frame.
func (r *Renderer) LastLayout() (Layout, bool) {
	return r.lastLayout, r.hasLayout
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.PickerState) {
	r.screen.Clear()

	w, h := r.screen.Size()
	layout := r.computeLayout(state, w, h)
	r.lastLayout = layout
	r.hasLayout = true

	if state != nil && state.HelpVisible {
		r.drawHelpOverlay(state, w, h)
		r.screen.Show()
		return
	}

	r.drawHeader(layout)
	r.drawList(state, layout)
	r.drawFooter(state, layout)

	r.screen.Show()
}

// drawHeader renders the title and the breadcrumb trail.
func (r *Renderer) drawHeader(layout Layout) {
	w := layout.Width
	headerStyle := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)
	titleStyle := headerStyle.Bold(true)

	endX := r.drawTextLine(0, 0, w, headerTitle, titleStyle)
	if endX < w {
		r.screen.SetContent(endX, 0, ' ', nil, headerStyle)
		endX++
	}

	if layout.CrumbsTruncated && endX < w {
		endX = r.drawTextLine(endX, 0, w-endX, ellipsis+crumbSeparator, headerStyle)
	}

	for i, crumb := range layout.Crumbs {
		if i > 0 && endX < w {
			endX = r.drawTextLine(endX, 0, w-endX, crumbSeparator, headerStyle)
		}
		if endX >= w {
			break
		}
		style := headerStyle.Underline(true)
		if crumb.Current {
			style = headerStyle.Bold(true)
		}
		label := r.truncateTextToWidth(crumb.Label, crumb.End-crumb.Start)
		endX = r.drawTextLine(crumb.Start, 0, w-crumb.Start, label, style)
	}

	r.fill(endX, w, 0, headerStyle)
}

// drawList renders the visible slice of the combined listing.
func (r *Renderer) drawList(state *statepkg.PickerState, layout Layout) {
	w := layout.Width
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	if state == nil {
		for y := layout.ListTop; y < layout.ListBottom; y++ {
			r.fill(0, w, y, baseStyle)
		}
		return
	}

	rows := state.Rows()
	y := layout.ListTop
	for idx := state.ScrollOffset; idx < len(rows) && y < layout.ListBottom; idx++ {
		row := rows[idx]
		rowStyle := r.rowStyle(state, row, baseStyle)

		icon := " "
		if row.Kind == statepkg.RowDirectory || row.Kind == statepkg.RowNonMatchingDirectory {
			icon = "/"
		}
		prefix := fmt.Sprintf(" %s ", icon)
		name := r.truncateTextToWidth(textutil.DisplayName(row.Name), w-r.measureTextWidth(prefix))

		endX := r.drawTextLine(0, y, w, prefix+name, rowStyle)
		r.fill(endX, w, y, rowStyle)
		y++
	}

	if len(rows) == 0 && y < layout.ListBottom {
		emptyStyle := baseStyle.Foreground(r.theme.NonMatchingFg)
		endX := r.drawTextLine(0, y, w, "   (empty)", emptyStyle)
		r.fill(endX, w, y, baseStyle)
		y++
	}

	for ; y < layout.ListBottom; y++ {
		r.fill(0, w, y, baseStyle)
	}
}

func (r *Renderer) rowStyle(state *statepkg.PickerState, row statepkg.Row, base tcell.Style) tcell.Style {
	if state.IsRowSelected(row) {
		return tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
	}
	switch row.Kind {
	case statepkg.RowDirectory:
		return base.Foreground(r.theme.DirectoryFg)
	case statepkg.RowFile:
		if !row.Selectable {
			return base.Foreground(r.theme.NonMatchingFg)
		}
		return base.Foreground(r.theme.FileFg)
	default:
		return base.Foreground(r.theme.NonMatchingFg)
	}
}

// drawFooter renders the status text and the Cancel/Select buttons.
func (r *Renderer) drawFooter(state *statepkg.PickerState, layout Layout) {
	w, h := layout.Width, layout.Height
	if h <= 1 {
		return
	}
	y := h - 1
	footerStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)

	statusWidth := w
	if layout.CancelButton.End > 0 {
		statusWidth = layout.CancelButton.Start - 1
	}

	text, style := r.footerStatus(state, footerStyle)
	text = r.truncateTextToWidth(textutil.SanitizeTerminalText(text), statusWidth)
	endX := r.drawTextLine(0, y, statusWidth, text, style)
	r.fill(endX, w, y, footerStyle)

	if layout.CancelButton.End == 0 {
		return
	}
	buttonStyle := footerStyle.Foreground(r.theme.ButtonFg)
	r.drawTextLine(layout.CancelButton.Start, y, layout.CancelButton.End-layout.CancelButton.Start, cancelLabel, buttonStyle)

	selectStyle := footerStyle.Foreground(r.theme.ButtonDisabledFg)
	if state != nil && state.CanConfirm() {
		selectStyle = buttonStyle.Bold(true)
	}
	r.drawTextLine(layout.SelectButton.Start, y, layout.SelectButton.End-layout.SelectButton.Start, selectLabel, selectStyle)
}

func (r *Renderer) footerStatus(state *statepkg.PickerState, base tcell.Style) (string, tcell.Style) {
	if state == nil {
		return "", base
	}
	if state.LastError != nil {
		return " " + state.LastError.Error(), base.Foreground(r.theme.ErrorFg)
	}
	if path, ok := state.SelectionPath(); ok {
		return " " + textutil.DisplayName(path), base
	}
	return buildFooterHelpText(state), base
}
