package core

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Pattern is a compiled path specification.
//
// Wildcards are only understood inside the segments after Root: '*' matches
// any run of characters within one path segment and '?' matches exactly one
// character. Everything else is literal, so "[", "{" and "\" carry no glob
// meaning. Root is the literal directory prefix the walk starts from, which
// keeps a narrow pattern from scanning the whole filesystem.
type Pattern struct {
	Spec string
	Root string

	matcher glob.Glob
}

// CompilePattern makes spec absolute and splits it into its traversal root
// and, if it holds '*' or '?', an anchored matcher.
func CompilePattern(spec string) (*Pattern, error) {
	abs, err := filepath.Abs(spec)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", spec, err)
	}

	first := strings.IndexAny(abs, "*?")
	if first < 0 {
		return &Pattern{Spec: spec, Root: abs}, nil
	}

	sep := strings.LastIndexByte(abs[:first], filepath.Separator)
	g, err := glob.Compile(globSource(abs), filepath.Separator)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", spec, err)
	}

	return &Pattern{Spec: spec, Root: abs[:sep+1], matcher: g}, nil
}

// Wildcard reports whether the path spec held a wildcard.
func (p *Pattern) Wildcard() bool {
	return p.matcher != nil
}

// Match reports whether the absolute path is selected by the path spec.
// Unwildcarded specs accept every candidate under their root.
func (p *Pattern) Match(path string) bool {
	if p.matcher == nil {
		return true
	}
	return p.matcher.Match(path)
}

// globSource quotes every literal run of s and keeps '*' and '?' as glob
// operators. Runs of '*' collapse to one so "**" never spans segments.
func globSource(s string) string {
	var b, lit strings.Builder
	flush := func() {
		b.WriteString(glob.QuoteMeta(lit.String()))
		lit.Reset()
	}

	prev := rune(0)
	for _, r := range s {
		switch r {
		case '*':
			flush()
			if prev != '*' {
				b.WriteByte('*')
			}
		case '?':
			flush()
			b.WriteByte('?')
		default:
			lit.WriteRune(r)
		}
		prev = r
	}
	flush()

	return b.String()
}
