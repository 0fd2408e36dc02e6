package state

import (
	"fmt"

	fsutil "github.com/kk-code-lab/rpick/internal/fs"
)

// HiddenToggler is implemented by hosts that can include hidden entries.
type HiddenToggler interface {
	SetShowHidden(show bool)
}

// StateReducer applies actions to a PickerState.
type StateReducer struct {
	resolver *Resolver
}

// NewStateReducer creates a reducer that lists directories through resolver.
func NewStateReducer(resolver *Resolver) *StateReducer {
	return &StateReducer{resolver: resolver}
}

// Reduce applies action to state. Filesystem failures are recorded in
// state.LastError; the returned error is reserved for unknown actions.
func (r *StateReducer) Reduce(state *PickerState, action Action) (*PickerState, error) {
	switch a := action.(type) {

	// ===== MOVEMENT =====

	case NavigateDownAction:
		r.moveCursor(state, state.nextSelectable(state.Cursor, 1))
		return state, nil

	case NavigateUpAction:
		pos := state.nextSelectable(state.Cursor, -1)
		if state.Cursor < 0 {
			pos = state.nextSelectable(len(state.Rows()), -1)
		}
		r.moveCursor(state, pos)
		return state, nil

	case PageDownAction:
		r.moveCursor(state, state.nearestSelectable(state.Cursor+state.ListHeight(), -1))
		return state, nil

	case PageUpAction:
		r.moveCursor(state, state.nearestSelectable(state.Cursor-state.ListHeight(), 1))
		return state, nil

	case HomeAction:
		r.moveCursor(state, state.nearestSelectable(0, 1))
		return state, nil

	case EndAction:
		r.moveCursor(state, state.nearestSelectable(len(state.Rows())-1, -1))
		return state, nil

	// ===== SELECTION =====

	case SelectRowAction:
		if state.selectRow(a.Row) {
			state.updateScrollVisibility()
		}
		return state, nil

	case SelectDirectoryAction:
		state.selectDirectory(a.Index)
		state.updateScrollVisibility()
		return state, nil

	case SelectNonMatchingDirectoryAction:
		state.selectNonMatchingDirectory(a.Index)
		state.updateScrollVisibility()
		return state, nil

	case SelectFileAction:
		state.selectFile(a.Index)
		state.updateScrollVisibility()
		return state, nil

	case ActivateAction:
		r.activate(state)
		return state, nil

	case ActivateRowAction:
		if !state.selectRow(a.Row) {
			return state, nil
		}
		state.updateScrollVisibility()
		r.activate(state)
		return state, nil

	// ===== NAVIGATION =====

	case GoUpAction:
		if target, ok := state.upTarget(); ok {
			state.requestNavigate(target)
		}
		return state, nil

	case BreadcrumbAction:
		if target, ok := BreadcrumbPath(state.Listing.Breadcrumb, a.Segment); ok {
			state.requestNavigate(target)
		}
		return state, nil

	case RootCrumbAction:
		if state.ShowRootCrumb() {
			state.requestNavigate("")
		}
		return state, nil

	case RequestNavigateAction:
		state.requestNavigate(a.Path)
		return state, nil

	case ApplyPendingNavigationAction:
		if path, ok := state.takePending(); ok {
			r.load(state, path)
		}
		return state, nil

	case SetDirectoryAction:
		state.requestNavigate(a.Path)
		if path, ok := state.takePending(); ok {
			r.load(state, path)
		}
		return state, nil

	// ===== REFRESH =====

	case RefreshAction:
		r.load(state, state.CurrentPath)
		return state, nil

	case DirectoryChangedAction:
		if !state.loaded || fsutil.Normalize(a.Path) != state.CurrentPath {
			return state, nil
		}
		r.reloadKeepingSelection(state)
		return state, nil

	case ToggleHiddenAction:
		state.ShowHidden = !state.ShowHidden
		if toggler, ok := r.resolver.Host().(HiddenToggler); ok {
			toggler.SetShowHidden(state.ShowHidden)
		}
		r.reloadKeepingSelection(state)
		return state, nil

	// ===== VIEW =====

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.updateScrollVisibility()
		return state, nil

	case HelpToggleAction:
		state.HelpVisible = !state.HelpVisible
		return state, nil

	case HelpHideAction:
		if state.HelpVisible {
			state.HelpVisible = false
		}
		return state, nil

	// ===== COMPLETION =====

	case ConfirmAction:
		if path, ok := state.SelectionPath(); ok {
			state.finish(path, true)
		}
		return state, nil

	case CancelAction:
		state.finish("", false)
		return state, nil

	default:
		return state, fmt.Errorf("unknown action: %T", action)
	}
}

func (r *StateReducer) moveCursor(state *PickerState, pos int) {
	if pos < 0 || pos == state.Cursor {
		return
	}
	if state.selectRow(pos) {
		state.updateScrollVisibility()
	}
}

func (r *StateReducer) activate(state *PickerState) {
	row, ok := state.CursorRow()
	if !ok || !row.Selectable {
		return
	}
	switch row.Kind {
	case RowDirectory, RowNonMatchingDirectory:
		state.requestNavigate(state.rowPath(row))
	case RowFile:
		if path, ok := state.SelectionPath(); ok {
			state.finish(path, true)
		}
	}
}

// load resolves path into state, resetting selection and scroll.
func (r *StateReducer) load(state *PickerState, path string) {
	listing, err := r.resolver.Resolve(path, state.Pattern, state.Mode)
	state.CurrentPath = listing.Path
	state.Listing = listing
	state.loaded = true
	state.LastError = err
	state.clearSelection()
	state.ScrollOffset = 0
	state.invalidateRows()
}

// reloadKeepingSelection re-resolves the current path and restores the
// highlighted entry by name when it still exists.
func (r *StateReducer) reloadKeepingSelection(state *PickerState) {
	kind, name, hadSelection := state.selectedName()
	scroll := state.ScrollOffset

	r.load(state, state.CurrentPath)

	if hadSelection && state.selectByName(kind, name) {
		state.ScrollOffset = scroll
		state.updateScrollVisibility()
	}
}
