// Package pathmeta implements stat and path_info: both are diagnostic
// operations that report non-existence as data rather than raising an
// admission error. Neither caches its lookup; this server keeps no
// per-request file cache, so every call re-probes the filesystem.
package pathmeta

import (
	"os"
	"path/filepath"

	"github.com/irvingoujAtDevolution/complement-mcp/internal/fsroot"
)

// StatResult is the response shape of stat(path).
type StatResult struct {
	Path     string
	Exists   bool
	IsFile   bool
	IsDir    bool
	Size     int64 // only meaningful when Exists && IsFile
	Modified int64 // unix seconds UTC, only meaningful when Exists
}

// Stat resolves path under cfg and reports its existence/type without
// ever failing on a missing target.
func Stat(cfg *fsroot.ServerConfig, path string) (StatResult, error) {
	ap, err := cfg.Resolve(path, fsroot.ReadOnly)
	if err != nil {
		return StatResult{}, err
	}
	result := StatResult{Path: ap.DisplayPath()}
	if ap.Kind == fsroot.KindMissing {
		return result, nil
	}

	info, err := os.Stat(ap.Resolved)
	if err != nil {
		// Raced out from under us between Resolve's probe and here;
		// treat as missing rather than surfacing IoError, consistent
		// with stat's never-fails contract.
		return result, nil
	}
	result.Exists = true
	result.IsDir = info.IsDir()
	result.IsFile = !info.IsDir()
	if result.IsFile {
		result.Size = info.Size()
	}
	result.Modified = info.ModTime().UTC().Unix()
	return result, nil
}

// InfoResult is the response shape of path_info(path).
type InfoResult struct {
	InputPath     string
	ResolvedPath  string
	Exists        bool
	IsFile        bool
	IsDir         bool
	IsAbsolute    bool
	CanonicalPath string // empty when Exists is false
	RepoRoot      string // empty when the path has no enclosing git repo
}

// PathInfo never fails for a syntactically valid path string: it is a
// diagnostic escape hatch, reporting existence and repo-root discovery
// without raising RootEscapesRepository or NotInsideGitRepository.
func PathInfo(cfg *fsroot.ServerConfig, rawPath string) InfoResult {
	input := rawPath
	if input == "" {
		input = "."
	}
	clean := filepath.Clean(filepath.FromSlash(input))
	isAbs := filepath.IsAbs(clean)

	var resolved string
	if isAbs {
		resolved = clean
	} else {
		resolved = filepath.Join(cfg.Root(), clean)
	}

	out := InfoResult{InputPath: input, ResolvedPath: resolved, IsAbsolute: isAbs}

	canonical, err := filepath.EvalSymlinks(resolved)
	if err != nil {
		return out // does not exist: Exists stays false, CanonicalPath/RepoRoot stay empty
	}
	info, err := os.Stat(canonical)
	if err != nil {
		return out
	}
	out.Exists = true
	out.IsDir = info.IsDir()
	out.IsFile = !info.IsDir()
	out.CanonicalPath = canonical

	if repoRoot, err := findGitRootSoft(canonical); err == nil && repoRoot != "" {
		out.RepoRoot = repoRoot
	}
	return out
}

// findGitRootSoft mirrors fsroot's ancestor-walk but never returns an
// admission error: path_info treats "no enclosing repo" as an omitted
// field, not a failure.
func findGitRootSoft(start string) (string, error) {
	dir := start
	info, err := os.Stat(start)
	if err == nil && !info.IsDir() {
		dir = filepath.Dir(start)
	}
	for {
		if _, err := os.Lstat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}
