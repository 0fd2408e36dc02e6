package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Host is the filesystem surface the picker depends on. Listing methods
// return full paths; callers reduce them to base names.
type Host interface {
	ListDirectories(path string) ([]string, error)
	ListDirectoriesMatching(path string, pattern *Pattern) ([]string, error)
	ListFiles(path string) ([]string, error)
	ListFilesMatching(path string, pattern *Pattern) ([]string, error)
	ListRoots() ([]string, error)
	Parent(path string) (string, bool)
	Combine(base, name string) string
	BaseName(path string) string
}

// LocalHost implements Host on top of an afero filesystem.
type LocalHost struct {
	fs         afero.Fs
	roots      RootLister
	showHidden bool
}

// HostOption configures a LocalHost.
type HostOption func(*LocalHost)

// WithFs swaps the backing filesystem (afero.NewMemMapFs in tests).
func WithFs(fs afero.Fs) HostOption {
	return func(h *LocalHost) {
		h.fs = fs
	}
}

// WithRoots overrides how filesystem roots are discovered.
func WithRoots(roots RootLister) HostOption {
	return func(h *LocalHost) {
		h.roots = roots
	}
}

// WithHidden controls whether hidden entries are listed.
func WithHidden(show bool) HostOption {
	return func(h *LocalHost) {
		h.showHidden = show
	}
}

// NewLocalHost builds a host backed by the OS filesystem unless overridden.
func NewLocalHost(opts ...HostOption) *LocalHost {
	h := &LocalHost{
		fs:    afero.NewOsFs(),
		roots: PartitionRoots{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SetShowHidden toggles listing of hidden entries.
func (h *LocalHost) SetShowHidden(show bool) {
	h.showHidden = show
}

// ShowHidden reports whether hidden entries are listed.
func (h *LocalHost) ShowHidden() bool {
	return h.showHidden
}

func (h *LocalHost) ListDirectories(path string) ([]string, error) {
	return h.list(path, true, nil)
}

func (h *LocalHost) ListDirectoriesMatching(path string, pattern *Pattern) ([]string, error) {
	return h.list(path, true, pattern)
}

func (h *LocalHost) ListFiles(path string) ([]string, error) {
	return h.list(path, false, nil)
}

func (h *LocalHost) ListFilesMatching(path string, pattern *Pattern) ([]string, error) {
	return h.list(path, false, pattern)
}

func (h *LocalHost) ListRoots() ([]string, error) {
	if h.roots == nil {
		return StaticRoots(nil).Roots()
	}
	return h.roots.Roots()
}

func (h *LocalHost) Parent(path string) (string, bool) {
	return Parent(path)
}

func (h *LocalHost) Combine(base, name string) string {
	return Combine(base, name)
}

func (h *LocalHost) BaseName(path string) string {
	return BaseName(path)
}

func (h *LocalHost) list(path string, dirs bool, pattern *Pattern) ([]string, error) {
	entries, err := h.ReadEntries(path)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir != dirs || !pattern.Match(entry.Name) {
			continue
		}
		paths = append(paths, entry.FullPath)
	}
	return paths, nil
}

// ReadEntries reads the visible entries of the directory at path.
// Symlinks report the kind of their target.
func (h *LocalHost) ReadEntries(path string) ([]Entry, error) {
	dirPath := Normalize(path)

	info, err := h.fs.Stat(dirPath)
	if err != nil {
		return nil, Classify(dirPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrPathNotFound, dirPath)
	}

	infos, err := afero.ReadDir(h.fs, dirPath)
	if err != nil {
		return nil, Classify(dirPath, err)
	}

	entries := make([]Entry, 0, len(infos))
	for _, fi := range infos {
		name := fi.Name()
		fullPath := filepath.Join(dirPath, name)

		if ShouldHideFromListing(fullPath, name) {
			continue
		}

		isDir := fi.IsDir()
		isSymlink := fi.Mode()&os.ModeSymlink != 0
		if isSymlink {
			if target, err := h.fs.Stat(fullPath); err == nil {
				isDir = target.IsDir()
			}
		}

		entry := Entry{
			Name:      name,
			FullPath:  fullPath,
			IsDir:     isDir,
			IsSymlink: isSymlink,
			Mode:      fi.Mode(),
		}
		if !h.showHidden && entry.IsHidden() {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
