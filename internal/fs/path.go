package fs

import (
	"path/filepath"
	"runtime"
	"strings"
)

// Separator is the host path separator as a string.
const Separator = string(filepath.Separator)

// Normalize cleans path using the host separator convention and resolves
// relative paths against the working directory. The empty string is the
// root-selection sentinel and is returned unchanged, as is a bare volume
// name such as "C:".
func Normalize(path string) string {
	if path == "" {
		return ""
	}
	clean := filepath.Clean(filepath.FromSlash(path))
	if filepath.IsAbs(clean) || filepath.VolumeName(clean) == clean {
		return clean
	}
	if abs, err := filepath.Abs(clean); err == nil {
		return abs
	}
	return clean
}

// IsRoot reports whether path is a filesystem root such as "/" or `C:\`.
func IsRoot(path string) bool {
	if path == "" {
		return false
	}
	clean := Normalize(path)
	return filepath.Dir(clean) == clean
}

// Parent returns the parent directory of path. Roots and the empty sentinel
// have no parent.
func Parent(path string) (string, bool) {
	if path == "" || IsRoot(path) {
		return "", false
	}
	return filepath.Dir(Normalize(path)), true
}

// Combine joins name onto base. An empty base yields name as-is so root
// paths listed at the selection level survive unchanged.
func Combine(base, name string) string {
	if base == "" {
		return name
	}
	if name == "" {
		return base
	}
	return filepath.Join(base, name)
}

// BaseName returns the last path component of path.
func BaseName(path string) string {
	if path == "" {
		return ""
	}
	trimmed := strings.TrimRight(path, `/\`)
	if trimmed == "" || filepath.VolumeName(trimmed) == trimmed {
		return path
	}
	return filepath.Base(path)
}

// VolumeRoot turns a bare volume name such as "C:" into its root `C:\`.
func VolumeRoot(path string) string {
	if path != "" && filepath.VolumeName(path) == path {
		return path + Separator
	}
	return path
}

func defaultRoot() string {
	if runtime.GOOS == "windows" {
		return `C:\`
	}
	return Separator
}
