package fs

import (
	"fmt"
	"sort"

	"github.com/shirou/gopsutil/v3/disk"
)

// RootLister enumerates the filesystem roots shown at the root-selection level.
type RootLister interface {
	Roots() ([]string, error)
}

// PartitionRoots lists mounted partitions (logical drives on Windows).
type PartitionRoots struct {
	// All includes pseudo and duplicate filesystems.
	All bool
}

var partitionsFn = disk.Partitions

func (p PartitionRoots) Roots() ([]string, error) {
	parts, err := partitionsFn(p.All)
	if err != nil {
		return nil, fmt.Errorf("cannot list partitions: %w", err)
	}

	mountpoints := make([]string, 0, len(parts))
	for _, part := range parts {
		mountpoints = append(mountpoints, part.Mountpoint)
	}
	return StaticRoots(mountpoints).Roots()
}

// StaticRoots is a fixed root list, mostly for tests and restricted hosts.
type StaticRoots []string

func (s StaticRoots) Roots() ([]string, error) {
	seen := make(map[string]struct{}, len(s))
	roots := make([]string, 0, len(s))
	for _, root := range s {
		if root == "" {
			continue
		}
		root = VolumeRoot(Normalize(root))
		if _, ok := seen[root]; ok {
			continue
		}
		seen[root] = struct{}{}
		roots = append(roots, root)
	}
	if len(roots) == 0 {
		roots = append(roots, defaultRoot())
	}
	sort.Strings(roots)
	return roots, nil
}
