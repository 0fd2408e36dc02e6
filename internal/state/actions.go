package state

// Action is the base interface for all state mutations
type Action interface{}

// ===== MOVEMENT ACTIONS =====

type NavigateUpAction struct{}
type NavigateDownAction struct{}
type PageUpAction struct{}
type PageDownAction struct{}
type HomeAction struct{}
type EndAction struct{}

// ===== SELECTION ACTIONS =====

// SelectRowAction highlights the row at a display position.
type SelectRowAction struct {
	Row int
}

type SelectDirectoryAction struct {
	Index int
}
type SelectNonMatchingDirectoryAction struct {
	Index int
}
type SelectFileAction struct {
	Index int
}

// ActivateAction opens the highlighted row: directories are entered, files
// in file mode are confirmed.
type ActivateAction struct{}

// ActivateRowAction highlights and activates the row at a display position.
type ActivateRowAction struct {
	Row int
}

// ===== NAVIGATION ACTIONS =====

type GoUpAction struct{}
type BreadcrumbAction struct {
	Segment int
}
type RootCrumbAction struct{}

// RequestNavigateAction stages a path; it is loaded by the next
// ApplyPendingNavigationAction.
type RequestNavigateAction struct {
	Path string
}
type ApplyPendingNavigationAction struct{}

// SetDirectoryAction navigates immediately.
type SetDirectoryAction struct {
	Path string
}

// ===== REFRESH ACTIONS =====

// RefreshAction reloads the current directory and clears the selection.
type RefreshAction struct{}

// DirectoryChangedAction reports an external change to Path. The listing is
// reloaded only if Path is still current, keeping the highlighted entry.
type DirectoryChangedAction struct {
	Path string
}

type ToggleHiddenAction struct{}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

type HelpToggleAction struct{}
type HelpHideAction struct{}

// ===== COMPLETION ACTIONS =====

type ConfirmAction struct{}
type CancelAction struct{} // esc / q / [Cancel]

// ===== APPLICATION ACTIONS =====

// SuspendAction is handled by the application loop, never by the reducer.
type SuspendAction struct{}
