package lint

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/sofmeright/flatconf/src/config"
)

// Pattern is a compiled path glob. Patterns and paths use "/" separators.
//
// Within a segment, *, ?, [...] and {a,b} behave as usual. A segment that is
// exactly "**" matches zero or more whole segments. A trailing "/" matches
// everything below that directory.
type Pattern struct {
	raw      string
	negate   bool
	segments []segment
}

type segment struct {
	globstar bool
	g        glob.Glob
}

// CompilePattern parses a glob. A leading "!" marks the pattern as negated;
// whether negation is meaningful is up to the caller.
func CompilePattern(raw string) (*Pattern, error) {
	p := filepath.ToSlash(strings.TrimSpace(raw))
	pat := &Pattern{raw: raw}

	if strings.HasPrefix(p, "!") {
		pat.negate = true
		p = p[1:]
	}
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimPrefix(p, "/")
	if strings.HasSuffix(p, "/") {
		p += "**"
	}
	if p == "" {
		return nil, fmt.Errorf("%w: %q is empty", config.ErrBadPattern, raw)
	}

	for _, part := range strings.Split(p, "/") {
		switch part {
		case "":
			return nil, fmt.Errorf("%w: %q has an empty path segment", config.ErrBadPattern, raw)
		case ".", "..":
			return nil, fmt.Errorf("%w: %q must not contain %q segments", config.ErrBadPattern, raw, part)
		case "**":
			// Consecutive globstars are equivalent to one.
			if n := len(pat.segments); n > 0 && pat.segments[n-1].globstar {
				continue
			}
			pat.segments = append(pat.segments, segment{globstar: true})
			continue
		}
		if err := validateSegment(part); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", config.ErrBadPattern, raw, err)
		}
		g, err := glob.Compile(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", config.ErrBadPattern, raw, err)
		}
		pat.segments = append(pat.segments, segment{g: g})
	}
	return pat, nil
}

// String returns the pattern as written.
func (p *Pattern) String() string { return p.raw }

// Negated reports whether the pattern started with "!".
func (p *Pattern) Negated() bool { return p.negate }

// Match reports whether a normalized, relative, forward-slash path matches.
// Negation is not applied here.
func (p *Pattern) Match(relPath string) bool {
	if relPath == "" {
		return false
	}
	return matchSegments(p.segments, strings.Split(relPath, "/"))
}

// validateSegment rejects unbalanced character classes and brace groups
// up front so errors read the same whatever the glob engine reports.
func validateSegment(part string) error {
	if _, err := path.Match(part, ""); err != nil {
		return fmt.Errorf("unbalanced character class")
	}
	depth := 0
	escaped := false
	for _, c := range part {
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth < 0 {
				return fmt.Errorf("unexpected '}'")
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("unclosed '{'")
	}
	return nil
}

func matchSegments(segs []segment, parts []string) bool {
	for len(segs) > 0 {
		s := segs[0]
		if s.globstar {
			rest := segs[1:]
			if len(rest) == 0 {
				return true
			}
			// Try the remainder of the pattern against every tail.
			for i := 0; i <= len(parts); i++ {
				if matchSegments(rest, parts[i:]) {
					return true
				}
			}
			return false
		}
		if len(parts) == 0 || !s.g.Match(parts[0]) {
			return false
		}
		segs, parts = segs[1:], parts[1:]
	}
	return len(parts) == 0
}

// MatchGlob compiles pattern and matches it against path in one step.
// Malformed patterns never match.
func MatchGlob(pattern, p string) bool {
	pat, err := CompilePattern(pattern)
	if err != nil {
		return false
	}
	return pat.Match(normalizeSlashPath(p))
}

// patternList is an ordered set of compiled patterns.
type patternList []*Pattern

func compilePatterns(raw []string, allowNegation bool) (patternList, []error) {
	var (
		list patternList
		errs []error
	)
	for _, r := range raw {
		p, err := CompilePattern(r)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if p.negate && !allowNegation {
			errs = append(errs, fmt.Errorf("%w: %q: negated patterns are only allowed in ignores", config.ErrBadPattern, r))
			continue
		}
		list = append(list, p)
	}
	return list, errs
}

// matchAny reports whether any pattern matches.
func (l patternList) matchAny(relPath string) bool {
	for _, p := range l {
		if p.Match(relPath) {
			return true
		}
	}
	return false
}

// excludes applies ignore semantics: the last matching pattern decides, and
// a negated match re-includes the path.
func (l patternList) excludes(relPath string) bool {
	excluded := false
	for _, p := range l {
		if p.Match(relPath) {
			excluded = !p.negate
		}
	}
	return excluded
}

// normalizeSlashPath converts a path to forward slashes, cleans it and
// strips a leading "./".
func normalizeSlashPath(p string) string {
	p = path.Clean(filepath.ToSlash(p))
	p = strings.TrimPrefix(p, "./")
	return p
}
