package state

import (
	fsutil "github.com/kk-code-lab/rpick/internal/fs"
)

func (s *PickerState) requestNavigate(path string) {
	s.pendingPath = fsutil.Normalize(path)
	s.hasPending = true
}

// takePending returns the staged path and clears it. ok is false when
// nothing is staged or the staged path is already loaded.
func (s *PickerState) takePending() (string, bool) {
	if !s.hasPending {
		return "", false
	}
	path := s.pendingPath
	s.pendingPath = ""
	s.hasPending = false
	if s.loaded && path == s.CurrentPath {
		return "", false
	}
	return path, true
}

// HasPendingNavigation reports whether a navigation is staged.
func (s *PickerState) HasPendingNavigation() bool {
	return s.hasPending
}

// PendingPath returns the staged path, if any.
func (s *PickerState) PendingPath() (string, bool) {
	return s.pendingPath, s.hasPending
}

// upTarget is where go-up leads from the current path.
func (s *PickerState) upTarget() (string, bool) {
	if s.CurrentPath == "" {
		return "", false
	}
	if parent, ok := fsutil.Parent(s.CurrentPath); ok {
		return parent, true
	}
	if s.ShowRootCrumb() {
		return "", true
	}
	return "", false
}

// rowPath is the path a directory row leads to.
func (s *PickerState) rowPath(row Row) string {
	return fsutil.Combine(s.CurrentPath, row.Name)
}

// selectedName returns the base name of the highlighted entry.
func (s *PickerState) selectedName() (RowKind, string, bool) {
	l := s.Listing
	switch {
	case s.SelectedDirectory >= 0 && s.SelectedDirectory < len(l.Directories):
		return RowDirectory, l.Directories[s.SelectedDirectory], true
	case s.SelectedNonMatchingDirectory >= 0 && s.SelectedNonMatchingDirectory < len(l.NonMatchingDirectories):
		return RowNonMatchingDirectory, l.NonMatchingDirectories[s.SelectedNonMatchingDirectory], true
	case s.SelectedFile >= 0 && s.SelectedFile < len(l.Files):
		return RowFile, l.Files[s.SelectedFile], true
	default:
		return 0, "", false
	}
}

// selectByName highlights name in the list of kind, if present.
func (s *PickerState) selectByName(kind RowKind, name string) bool {
	for pos, row := range s.Rows() {
		if row.Kind == kind && row.Name == name {
			return s.selectRow(pos)
		}
	}
	return false
}
