package app

import (
	"os"
	"path/filepath"
)

var userHomeDir = os.UserHomeDir

// expandUserPath resolves a leading "~" or "~/" against the home directory.
func expandUserPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	if len(path) == 1 {
		if home, err := userHomeDir(); err == nil {
			return home
		}
		return path
	}

	sep := path[1]
	if sep != '/' && sep != '\\' {
		return path
	}

	home, err := userHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[2:])
}
