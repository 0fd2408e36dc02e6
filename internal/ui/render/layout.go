package render

import (
	statepkg "github.com/kk-code-lab/rpick/internal/state"
	textutil "github.com/kk-code-lab/rpick/internal/textutil"
)

const (
	headerTitle    = "rpick"
	crumbSeparator = " › "
	ellipsis       = "…"
	cancelLabel    = "[Cancel]"
	selectLabel    = "[Select]"
)

// Span is a half-open column range [Start, End).
type Span struct {
	Start int
	End   int
}

func (s Span) Contains(x int) bool {
	return x >= s.Start && x < s.End
}

// Crumb is one clickable breadcrumb entry in the header.
type Crumb struct {
	Span
	Label   string
	Segment int  // index into Listing.Breadcrumb; -1 for the root crumb
	Root    bool // the synthetic root-selection crumb
	Current bool
}

// Layout records where the last frame placed its interactive parts.
type Layout struct {
	Width  int
	Height int

	// List rows occupy ListTop <= y < ListBottom.
	ListTop    int
	ListBottom int

	Crumbs          []Crumb
	CrumbsTruncated bool
	CrumbStart      int

	CancelButton Span
	SelectButton Span
}

// HitKind classifies a mouse position.
type HitKind int

const (
	HitNone HitKind = iota
	HitCrumb
	HitRootCrumb
	HitRow
	HitCancel
	HitSelect
)

// Hit is the result of Layout.HitTest. Index is the breadcrumb segment for
// HitCrumb and the display row for HitRow.
type Hit struct {
	Kind  HitKind
	Index int
}

// HitTest maps a screen cell to the element under it. scrollOffset is the
// list scroll at the time of the click.
func (l Layout) HitTest(x, y, scrollOffset int) Hit {
	switch {
	case y == 0:
		return l.hitCrumb(x)
	case y >= l.ListTop && y < l.ListBottom:
		return Hit{Kind: HitRow, Index: scrollOffset + y - l.ListTop}
	case y == l.Height-1:
		if l.CancelButton.Contains(x) {
			return Hit{Kind: HitCancel}
		}
		if l.SelectButton.Contains(x) {
			return Hit{Kind: HitSelect}
		}
	}
	return Hit{Kind: HitNone}
}

func (l Layout) hitCrumb(x int) Hit {
	for i, crumb := range l.Crumbs {
		// A click on the separator before a crumb belongs to the previous one.
		onSeparator := i > 0 && x >= l.Crumbs[i-1].End && x < crumb.Start
		target := crumb
		if onSeparator {
			target = l.Crumbs[i-1]
		} else if !crumb.Contains(x) {
			continue
		}
		if target.Root {
			return Hit{Kind: HitRootCrumb, Index: -1}
		}
		return Hit{Kind: HitCrumb, Index: target.Segment}
	}
	return Hit{Kind: HitNone}
}

// computeLayout places the header crumbs, list area and footer buttons.
func (r *Renderer) computeLayout(state *statepkg.PickerState, w, h int) Layout {
	l := Layout{
		Width:      w,
		Height:     h,
		ListTop:    1,
		ListBottom: h - 1,
	}
	if l.ListBottom < l.ListTop {
		l.ListBottom = l.ListTop
	}

	l.CrumbStart = r.measureTextWidth(headerTitle) + 1
	l.Crumbs, l.CrumbsTruncated = r.layoutCrumbs(state, l.CrumbStart, w)

	selectW := r.measureTextWidth(selectLabel)
	cancelW := r.measureTextWidth(cancelLabel)
	selectStart := w - selectW - 1
	cancelStart := selectStart - 1 - cancelW
	if cancelStart >= 0 {
		l.CancelButton = Span{Start: cancelStart, End: cancelStart + cancelW}
		l.SelectButton = Span{Start: selectStart, End: selectStart + selectW}
	}
	return l
}

func crumbItems(state *statepkg.PickerState) []Crumb {
	if state == nil {
		return nil
	}
	if state.Listing.IsRootLevel() {
		return []Crumb{{Label: statepkg.RootCrumbLabel, Segment: -1, Root: true, Current: true}}
	}

	segments := state.Listing.Breadcrumb
	items := make([]Crumb, 0, len(segments)+1)
	if state.ShowRootCrumb() {
		items = append(items, Crumb{Label: statepkg.RootCrumbLabel, Segment: -1, Root: true})
	}
	for i, segment := range segments {
		items = append(items, Crumb{
			Label:   textutil.DisplayName(statepkg.CrumbLabel(segment)),
			Segment: i,
			Current: i == len(segments)-1,
		})
	}
	return items
}

// layoutCrumbs drops leading crumbs behind an ellipsis until the rest fits.
func (r *Renderer) layoutCrumbs(state *statepkg.PickerState, start, w int) ([]Crumb, bool) {
	items := crumbItems(state)
	if len(items) == 0 {
		return nil, false
	}

	available := w - start
	sepW := r.measureTextWidth(crumbSeparator)
	first := 0
	for first < len(items)-1 && r.crumbsWidth(items[first:], first > 0, sepW) > available {
		first++
	}
	truncated := first > 0

	x := start
	if truncated {
		x += r.measureTextWidth(ellipsis) + sepW
	}
	crumbs := make([]Crumb, 0, len(items)-first)
	for i, item := range items[first:] {
		if i > 0 {
			x += sepW
		}
		end := x + r.measureTextWidth(item.Label)
		if end > w {
			end = w
		}
		item.Span = Span{Start: x, End: end}
		crumbs = append(crumbs, item)
		x = end
	}
	return crumbs, truncated
}

func (r *Renderer) crumbsWidth(items []Crumb, withEllipsis bool, sepW int) int {
	width := 0
	for i, item := range items {
		if i > 0 {
			width += sepW
		}
		width += r.measureTextWidth(item.Label)
	}
	if withEllipsis {
		width += r.measureTextWidth(ellipsis) + sepW
	}
	return width
}
