// Package ignorefilter composes gitignore-family rules discovered while
// walking a tree with caller-supplied include/exclude globs into a
// single admit predicate per directory entry.
package ignorefilter

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/monochromegane/go-gitignore"
)

const matcherCacheSize = 256

// Filter holds the include/exclude glob configuration for a single
// walk request and a directory-scoped cache of compiled gitignore
// matchers, so a deep tree doesn't reparse the same .gitignore file
// once per descendant.
type Filter struct {
	includeGlobs    []string
	excludeGlobs    []string
	caseInsensitive bool
	matchers        *lru.Cache[string, gitignore.IgnoreMatcher]
}

// New builds a Filter for one walk. includeGlobs/excludeGlobs are
// matched against forward-slashed display paths, never against
// absolute filesystem paths.
func New(includeGlobs, excludeGlobs []string, caseInsensitive bool) *Filter {
	cache, _ := lru.New[string, gitignore.IgnoreMatcher](matcherCacheSize)
	return &Filter{
		includeGlobs:    includeGlobs,
		excludeGlobs:    excludeGlobs,
		caseInsensitive: caseInsensitive,
		matchers:        cache,
	}
}

// Scope is the gitignore rule chain in effect for one directory,
// accumulated root to leaf as the walker descends. The zero Scope (via
// Filter.Root) has no inherited rules.
type Scope struct {
	f        *Filter
	matchers []gitignore.IgnoreMatcher // root -> leaf; entries may be nil
}

// Root returns the scope for the top of a walk; callers descend from
// here via Enter, one call per directory level.
func (f *Filter) Root(dir string) *Scope {
	return (&Scope{f: f}).Enter(dir)
}

// Enter returns the child scope for subdir, a direct descendant of the
// receiver's directory, appending the rules of subdir's own .gitignore
// to the inherited chain if present. subdir's .ignore is read only when
// it has no parsable .gitignore; the two files are never combined.
func (s *Scope) Enter(subdir string) *Scope {
	next := &Scope{f: s.f, matchers: s.matchers}
	if m := s.f.loadMatcher(subdir); m != nil {
		merged := make([]gitignore.IgnoreMatcher, len(s.matchers), len(s.matchers)+1)
		copy(merged, s.matchers)
		next.matchers = append(merged, m)
	}
	return next
}

func (f *Filter) loadMatcher(dir string) gitignore.IgnoreMatcher {
	if m, ok := f.matchers.Get(dir); ok {
		return m
	}
	var m gitignore.IgnoreMatcher
	for _, name := range []string{".gitignore", ".ignore"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if parsed, err := gitignore.NewGitIgnore(p); err == nil {
			m = parsed
			break
		}
	}
	f.matchers.Add(dir, m)
	return m
}

// IgnoredByVCS reports whether absPath, a direct child of the scope's
// directory, is excluded by the accumulated gitignore chain. The path
// is ignored as soon as any matcher in the chain matches it; a negation
// in a deeper .gitignore does not re-admit a path that a shallower one
// ignores. A ".git" directory is always ignored, gitignore file or not.
func (s *Scope) IgnoredByVCS(absPath string, isDir bool, name string) bool {
	if isDir && name == ".git" {
		return true
	}
	for i := len(s.matchers) - 1; i >= 0; i-- {
		if s.matchers[i] == nil {
			continue
		}
		if s.matchers[i].Match(absPath, isDir) {
			return true
		}
	}
	return false
}

// AdmitResult applies the include/exclude contract: (no include_globs
// OR any include matches) AND no exclude matches, always against the
// display path (forward-slashed, relative to the walk base).
func (f *Filter) AdmitResult(displayPath string) bool {
	display := filepath.ToSlash(displayPath)
	for _, pattern := range f.excludeGlobs {
		if f.globMatch(pattern, display) {
			return false
		}
	}
	if len(f.includeGlobs) == 0 {
		return true
	}
	for _, pattern := range f.includeGlobs {
		if f.globMatch(pattern, display) {
			return true
		}
	}
	return false
}

// PrunesDescent reports whether an exclude glob is a literal directory
// prefix of displayPath (e.g. "vendor/**" pruning "vendor"), letting a
// walker skip an entire subtree early. This is purely an optimization:
// a walker may ignore it and still be correct, since AdmitResult would
// reject every descendant anyway.
func (f *Filter) PrunesDescent(displayPath string) bool {
	display := filepath.ToSlash(displayPath) + "/"
	for _, pattern := range f.excludeGlobs {
		prefix := strings.TrimSuffix(pattern, "**")
		if prefix == pattern || prefix == "" {
			continue
		}
		prefix = strings.TrimSuffix(prefix, "/")
		if f.caseInsensitive {
			if strings.HasPrefix(strings.ToLower(display), strings.ToLower(prefix)+"/") {
				return true
			}
			continue
		}
		if strings.HasPrefix(display, prefix+"/") {
			return true
		}
	}
	return false
}

func (f *Filter) globMatch(pattern, display string) bool {
	if f.caseInsensitive {
		ok, _ := doublestar.Match(strings.ToLower(pattern), strings.ToLower(display))
		return ok
	}
	ok, _ := doublestar.Match(pattern, display)
	return ok
}
