package state

import (
	"strings"

	fsutil "github.com/kk-code-lab/rpick/internal/fs"
)

// RootCrumbLabel is the synthetic crumb leading to the root-selection level.
const RootCrumbLabel = "PC"

// SplitBreadcrumb splits a browse path into its breadcrumb segments.
//
//	""            -> []
//	"/"           -> [""]
//	"/home/user"  -> ["", "home", "user"]
//	`C:\Users\me` -> ["C:", "Users", "me"]
//
// The leading empty segment of a Unix path stands for the root, so joining
// the segments with the separator gives back the path.
func SplitBreadcrumb(path string) []string {
	if path == "" {
		return []string{}
	}
	clean := fsutil.Normalize(path)
	if fsutil.IsRoot(clean) {
		return []string{strings.TrimSuffix(clean, fsutil.Separator)}
	}
	return strings.Split(clean, fsutil.Separator)
}

// BreadcrumbPath returns the path that segment idx navigates to.
func BreadcrumbPath(segments []string, idx int) (string, bool) {
	if idx < 0 || idx >= len(segments) {
		return "", false
	}
	joined := strings.Join(segments[:idx+1], fsutil.Separator)
	if joined == "" {
		return fsutil.Separator, true
	}
	return fsutil.VolumeRoot(joined), true
}

// JoinBreadcrumb rebuilds the full path from its segments.
func JoinBreadcrumb(segments []string) string {
	path, ok := BreadcrumbPath(segments, len(segments)-1)
	if !ok {
		return ""
	}
	return path
}

// ShowRootCrumb decides whether the root-selection crumb is worth showing:
// only when there is more than one root to choose from.
func ShowRootCrumb(rootCount int) bool {
	return rootCount > 1
}

// CrumbLabel is the display text for a segment.
func CrumbLabel(segment string) string {
	if segment == "" {
		return fsutil.Separator
	}
	return segment
}
