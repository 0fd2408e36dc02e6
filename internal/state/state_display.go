package state

// RowKind identifies which list a display row belongs to.
type RowKind int

const (
	RowDirectory RowKind = iota
	RowNonMatchingDirectory
	RowFile
	RowNonMatchingFile
)

// Row is one line of the combined listing, in display order: matching
// directories, non-matching directories, files, non-matching files.
type Row struct {
	Kind       RowKind
	Index      int
	Name       string
	Selectable bool
}

// Rows returns the combined listing in display order.
func (s *PickerState) Rows() []Row {
	if !s.rowsDirty && s.rowsCache != nil {
		return s.rowsCache
	}

	l := s.Listing
	rows := make([]Row, 0, len(l.Directories)+len(l.NonMatchingDirectories)+len(l.Files)+len(l.NonMatchingFiles))
	for i, name := range l.Directories {
		rows = append(rows, Row{Kind: RowDirectory, Index: i, Name: name, Selectable: true})
	}
	for i, name := range l.NonMatchingDirectories {
		rows = append(rows, Row{Kind: RowNonMatchingDirectory, Index: i, Name: name, Selectable: true})
	}
	for i, name := range l.Files {
		rows = append(rows, Row{Kind: RowFile, Index: i, Name: name, Selectable: s.Mode == ModeFile})
	}
	for i, name := range l.NonMatchingFiles {
		rows = append(rows, Row{Kind: RowNonMatchingFile, Index: i, Name: name})
	}

	s.rowsCache = rows
	s.rowsDirty = false
	return rows
}

func (s *PickerState) invalidateRows() {
	s.rowsDirty = true
	s.rowsCache = nil
}

// CursorRow returns the row under the cursor, if any.
func (s *PickerState) CursorRow() (Row, bool) {
	rows := s.Rows()
	if s.Cursor < 0 || s.Cursor >= len(rows) {
		return Row{}, false
	}
	return rows[s.Cursor], true
}

// IsRowSelected reports whether row is the highlighted entry.
func (s *PickerState) IsRowSelected(row Row) bool {
	switch row.Kind {
	case RowDirectory:
		return s.SelectedDirectory == row.Index
	case RowNonMatchingDirectory:
		return s.SelectedNonMatchingDirectory == row.Index
	case RowFile:
		return s.SelectedFile == row.Index
	default:
		return false
	}
}

func (s *PickerState) rowPosition(kind RowKind, idx int) int {
	for pos, row := range s.Rows() {
		if row.Kind == kind && row.Index == idx {
			return pos
		}
	}
	return -1
}

func (s *PickerState) selectRow(pos int) bool {
	rows := s.Rows()
	if pos < 0 || pos >= len(rows) || !rows[pos].Selectable {
		return false
	}
	row := rows[pos]
	switch row.Kind {
	case RowDirectory:
		s.selectDirectory(row.Index)
	case RowNonMatchingDirectory:
		s.selectNonMatchingDirectory(row.Index)
	case RowFile:
		s.selectFile(row.Index)
	}
	return true
}

// nextSelectable walks from pos in direction step and returns the first
// selectable row position, or -1.
func (s *PickerState) nextSelectable(pos, step int) int {
	rows := s.Rows()
	for i := pos + step; i >= 0 && i < len(rows); i += step {
		if rows[i].Selectable {
			return i
		}
	}
	return -1
}

// ListHeight is the number of rows visible between header and footer.
func (s *PickerState) ListHeight() int {
	h := s.ScreenHeight - 2
	if h < 1 {
		return 1
	}
	return h
}

func (s *PickerState) updateScrollVisibility() {
	visible := s.ListHeight()
	if s.Cursor >= 0 {
		if s.Cursor < s.ScrollOffset {
			s.ScrollOffset = s.Cursor
		} else if s.Cursor >= s.ScrollOffset+visible {
			s.ScrollOffset = s.Cursor - visible + 1
		}
	}
	s.clampScroll()
}

func (s *PickerState) clampScroll() {
	maxOffset := len(s.Rows()) - s.ListHeight()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.ScrollOffset > maxOffset {
		s.ScrollOffset = maxOffset
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
}

// nearestSelectable returns the selectable row closest to pos (clamped into
// range), searching first in direction step and then the other way.
func (s *PickerState) nearestSelectable(pos, step int) int {
	rows := s.Rows()
	if len(rows) == 0 {
		return -1
	}
	if pos < 0 {
		pos = 0
	}
	if pos >= len(rows) {
		pos = len(rows) - 1
	}
	if rows[pos].Selectable {
		return pos
	}
	if next := s.nextSelectable(pos, step); next >= 0 {
		return next
	}
	return s.nextSelectable(pos, -step)
}
