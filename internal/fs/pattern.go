package fs

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/gobwas/glob"
)

// Pattern is a compiled selection pattern matched against base names.
// A nil *Pattern matches everything.
type Pattern struct {
	raw      string
	matcher  glob.Glob
	foldCase bool
}

// CompilePattern compiles raw into a Pattern. An empty raw pattern means
// "no filtering" and yields a nil Pattern.
//
// Supported syntax: '*', '?', '[abc]', '[a-z]', '[!x]' and '{foo,bar}'.
// "*.*" matches every name, dotted or not.
func CompilePattern(raw string) (*Pattern, error) {
	if raw == "" {
		return nil, nil
	}
	if strings.ContainsAny(raw, `/\`) {
		return nil, fmt.Errorf("%w %q: must not contain a path separator", ErrInvalidPattern, raw)
	}

	foldCase := runtime.GOOS == "windows"
	source := raw
	if source == "*.*" {
		source = "*"
	}
	if foldCase {
		source = strings.ToLower(source)
	}

	matcher, err := glob.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, raw, err)
	}
	return &Pattern{raw: raw, matcher: matcher, foldCase: foldCase}, nil
}

// MustCompilePattern is like CompilePattern but panics on error.
func MustCompilePattern(raw string) *Pattern {
	p, err := CompilePattern(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// Match reports whether name satisfies the pattern.
func (p *Pattern) Match(name string) bool {
	if p == nil {
		return true
	}
	if p.foldCase {
		name = strings.ToLower(name)
	}
	return p.matcher.Match(name)
}

func (p *Pattern) String() string {
	if p == nil {
		return ""
	}
	return p.raw
}
