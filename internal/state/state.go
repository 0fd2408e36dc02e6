package state

import (
	"fmt"
	"strings"

	fsutil "github.com/kk-code-lab/rpick/internal/fs"
)

// BrowserMode selects whether the picker returns a file or a directory.
type BrowserMode int

const (
	ModeFile BrowserMode = iota
	ModeDirectory
)

func (m BrowserMode) String() string {
	switch m {
	case ModeFile:
		return "file"
	case ModeDirectory:
		return "directory"
	default:
		return fmt.Sprintf("BrowserMode(%d)", int(m))
	}
}

// ParseBrowserMode accepts "file"/"directory" (and the short "f"/"d", "dir").
func ParseBrowserMode(s string) (BrowserMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "file", "f":
		return ModeFile, nil
	case "directory", "dir", "d", "folder":
		return ModeDirectory, nil
	default:
		return ModeFile, fmt.Errorf("unknown browser mode %q", s)
	}
}

// ===== STATE DEFINITIONS =====

// Listing is everything the resolver derives from one directory path.
// Name lists hold base names sorted ascending; at the root-selection level
// Directories holds full root paths.
type Listing struct {
	Path                    string
	Breadcrumb              []string
	Directories             []string
	NonMatchingDirectories  []string
	Files                   []string
	NonMatchingFiles        []string
	CurrentDirectoryMatches bool
	RootCount               int
}

// IsRootLevel reports whether the listing is the drive/root selection level.
func (l Listing) IsRootLevel() bool {
	return l.Path == ""
}

// PickerState is the single source of truth for one picker.
type PickerState struct {
	// Navigation
	CurrentPath string
	Listing     Listing
	pendingPath string
	hasPending  bool
	loaded      bool

	// Filtering
	Mode       BrowserMode
	Pattern    *fsutil.Pattern
	ShowHidden bool

	// Selection (mutually exclusive, -1 = none)
	SelectedDirectory            int
	SelectedNonMatchingDirectory int
	SelectedFile                 int

	// Viewport
	Cursor       int
	ScrollOffset int
	ScreenWidth  int
	ScreenHeight int

	// Completion
	Finished    bool
	Selected    bool
	Result      string
	FinishSeq   int
	HelpVisible bool

	// Error state
	LastError error

	rowsCache []Row
	rowsDirty bool
}

// NewPickerState returns an empty, not yet loaded state.
func NewPickerState(mode BrowserMode, pattern *fsutil.Pattern) *PickerState {
	s := &PickerState{
		Mode:    mode,
		Pattern: pattern,
	}
	s.clearSelection()
	return s
}

// ===== SELECTION =====

func (s *PickerState) clearSelection() {
	s.SelectedDirectory = -1
	s.SelectedNonMatchingDirectory = -1
	s.SelectedFile = -1
	s.Cursor = -1
}

func (s *PickerState) selectDirectory(idx int) {
	if idx < 0 || idx >= len(s.Listing.Directories) {
		return
	}
	s.SelectedDirectory = idx
	s.SelectedNonMatchingDirectory = -1
	s.SelectedFile = -1
	s.Cursor = s.rowPosition(RowDirectory, idx)
}

func (s *PickerState) selectNonMatchingDirectory(idx int) {
	if idx < 0 || idx >= len(s.Listing.NonMatchingDirectories) {
		return
	}
	s.SelectedNonMatchingDirectory = idx
	s.SelectedDirectory = -1
	s.SelectedFile = -1
	s.Cursor = s.rowPosition(RowNonMatchingDirectory, idx)
}

func (s *PickerState) selectFile(idx int) {
	if s.Mode != ModeFile || idx < 0 || idx >= len(s.Listing.Files) {
		return
	}
	s.SelectedFile = idx
	s.SelectedDirectory = -1
	s.SelectedNonMatchingDirectory = -1
	s.Cursor = s.rowPosition(RowFile, idx)
}

// CanConfirm reports whether the Select control is enabled.
func (s *PickerState) CanConfirm() bool {
	switch {
	case s.Mode == ModeFile:
		return s.SelectedFile >= 0
	case s.Pattern == nil:
		return s.SelectedDirectory >= 0
	default:
		return s.SelectedDirectory >= 0 ||
			(s.Listing.CurrentDirectoryMatches &&
				s.SelectedNonMatchingDirectory == -1 &&
				s.SelectedFile == -1)
	}
}

// SelectionPath is the path Confirm would report. ok is false when
// confirming is not allowed.
func (s *PickerState) SelectionPath() (string, bool) {
	if !s.CanConfirm() {
		return "", false
	}
	if s.Mode == ModeFile {
		return fsutil.Combine(s.CurrentPath, s.Listing.Files[s.SelectedFile]), true
	}
	if s.SelectedDirectory >= 0 {
		return fsutil.Combine(s.CurrentPath, s.Listing.Directories[s.SelectedDirectory]), true
	}
	return s.CurrentPath, true
}

func (s *PickerState) finish(path string, selected bool) {
	s.Finished = true
	s.Selected = selected
	s.Result = path
	s.FinishSeq++
}

// ShowRootCrumb reports whether the synthetic root ("PC") crumb is offered.
func (s *PickerState) ShowRootCrumb() bool {
	return ShowRootCrumb(s.Listing.RootCount)
}
