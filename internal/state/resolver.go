package state

import (
	"sort"

	fsutil "github.com/kk-code-lab/rpick/internal/fs"
	"github.com/rs/zerolog"
)

// Resolver turns a browse path into a categorized Listing.
type Resolver struct {
	host   fsutil.Host
	logger zerolog.Logger
}

// NewResolver creates a resolver over host.
func NewResolver(host fsutil.Host, logger zerolog.Logger) *Resolver {
	return &Resolver{host: host, logger: logger}
}

// Host exposes the filesystem the resolver reads from.
func (r *Resolver) Host() fsutil.Host {
	return r.host
}

// Resolve lists path. On failure it returns a Listing that still carries the
// breadcrumb but no entries, together with the classified error.
func (r *Resolver) Resolve(path string, pattern *fsutil.Pattern, mode BrowserMode) (Listing, error) {
	path = fsutil.Normalize(path)
	listing := Listing{
		Path:                   path,
		Breadcrumb:             SplitBreadcrumb(path),
		Directories:            []string{},
		NonMatchingDirectories: []string{},
		Files:                  []string{},
		NonMatchingFiles:       []string{},
	}

	roots, rootsErr := r.host.ListRoots()
	if rootsErr != nil {
		r.logger.Warn().Err(rootsErr).Msg("cannot list filesystem roots")
	}
	listing.RootCount = len(roots)

	if path == "" {
		if rootsErr != nil {
			return listing, rootsErr
		}
		listing.Directories = sortedCopy(roots)
		return listing, nil
	}

	dirs, nonDirs, err := r.partition(path, pattern, mode == ModeDirectory, true)
	if err != nil {
		r.logger.Warn().Err(err).Str("path", path).Msg("cannot list directories")
		return listing, err
	}
	files, nonFiles, err := r.partition(path, pattern, mode == ModeFile, false)
	if err != nil {
		r.logger.Warn().Err(err).Str("path", path).Msg("cannot list files")
		return listing, err
	}

	listing.Directories = dirs
	listing.NonMatchingDirectories = nonDirs
	listing.Files = files
	listing.NonMatchingFiles = nonFiles
	listing.CurrentDirectoryMatches = r.currentDirectoryMatches(path, pattern)

	r.logger.Debug().
		Str("path", path).
		Int("dirs", len(dirs)).
		Int("non_matching_dirs", len(nonDirs)).
		Int("files", len(files)).
		Int("non_matching_files", len(nonFiles)).
		Msg("resolved directory")
	return listing, nil
}

// partition lists directories (or files) of path. When filter is set and a
// pattern exists the result is split into matching and non-matching names.
func (r *Resolver) partition(path string, pattern *fsutil.Pattern, filter, dirs bool) ([]string, []string, error) {
	list, listMatching := r.host.ListFiles, r.host.ListFilesMatching
	if dirs {
		list, listMatching = r.host.ListDirectories, r.host.ListDirectoriesMatching
	}

	all, err := list(path)
	if err != nil {
		return nil, nil, fsutil.Classify(path, err)
	}
	if !filter || pattern == nil {
		return r.baseNames(all), []string{}, nil
	}

	matching, err := listMatching(path, pattern)
	if err != nil {
		return nil, nil, fsutil.Classify(path, err)
	}

	// The two reads are not atomic; the full listing decides which names
	// exist and the matching one only classifies them.
	matched := make(map[string]struct{}, len(matching))
	for _, p := range matching {
		matched[p] = struct{}{}
	}
	var hits, rest []string
	for _, p := range all {
		if _, ok := matched[p]; ok || pattern.Match(r.host.BaseName(p)) {
			hits = append(hits, p)
		} else {
			rest = append(rest, p)
		}
	}
	return r.baseNames(hits), r.baseNames(rest), nil
}

func (r *Resolver) currentDirectoryMatches(path string, pattern *fsutil.Pattern) bool {
	if pattern == nil {
		return false
	}
	parent, ok := r.host.Parent(path)
	if !ok {
		return false
	}
	siblings, err := r.host.ListDirectoriesMatching(parent, pattern)
	if err != nil {
		r.logger.Debug().Err(err).Str("parent", parent).Msg("cannot list parent for pattern match")
		return false
	}
	for _, sibling := range siblings {
		if fsutil.Normalize(sibling) == path {
			return true
		}
	}
	return false
}

func (r *Resolver) baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = r.host.BaseName(p)
	}
	sort.Strings(names)
	return names
}

func sortedCopy(values []string) []string {
	out := append([]string(nil), values...)
	sort.Strings(out)
	if out == nil {
		out = []string{}
	}
	return out
}
