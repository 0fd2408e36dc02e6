//go:build !windows

package state

import (
	"os"
	"testing"

	fsutil "github.com/kk-code-lab/rpick/internal/fs"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

type testTree struct {
	roots []string
	dirs  []string
	files []string
}

func newTestHost(t *testing.T, tree testTree) *fsutil.LocalHost {
	t.Helper()
	mem := afero.NewMemMapFs()
	for _, d := range tree.dirs {
		if err := mem.MkdirAll(d, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", d, err)
		}
	}
	for _, f := range tree.files {
		if err := afero.WriteFile(mem, f, []byte("data"), 0o644); err != nil {
			t.Fatalf("write %s: %v", f, err)
		}
	}
	roots := tree.roots
	if len(roots) == 0 {
		roots = []string{"/"}
	}
	return fsutil.NewLocalHost(fsutil.WithFs(mem), fsutil.WithRoots(fsutil.StaticRoots(roots)))
}

func newTestReducer(host fsutil.Host) *StateReducer {
	return NewStateReducer(NewResolver(host, zerolog.Nop()))
}

// loadState builds a state for mode/pattern and loads path.
func loadState(t *testing.T, host fsutil.Host, path string, mode BrowserMode, pattern string) (*PickerState, *StateReducer) {
	t.Helper()
	state := NewPickerState(mode, fsutil.MustCompilePattern(pattern))
	state.ScreenWidth = 80
	state.ScreenHeight = 24
	reducer := newTestReducer(host)
	mustReduce(t, reducer, state, SetDirectoryAction{Path: path})
	return state, reducer
}

func mustReduce(t *testing.T, reducer *StateReducer, state *PickerState, action Action) {
	t.Helper()
	if _, err := reducer.Reduce(state, action); err != nil {
		t.Fatalf("Reduce(%T) failed: %v", action, err)
	}
}

// deniedHost fails every listing with a permission error.
type deniedHost struct {
	fsutil.Host
}

func (deniedHost) ListDirectories(string) ([]string, error) { return nil, os.ErrPermission }
func (deniedHost) ListFiles(string) ([]string, error)       { return nil, os.ErrPermission }

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
