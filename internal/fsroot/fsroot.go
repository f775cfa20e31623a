// Package fsroot resolves raw, user-supplied path strings into admitted,
// canonical paths under one of two containment policies: relative inputs
// are locked to a fixed server root, absolute inputs are locked to their
// enclosing git repository.
package fsroot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/irvingoujAtDevolution/complement-mcp/internal/fserrors"
)

// Policy distinguishes operations that only read from ones that mutate
// the filesystem. Write-policy admission of an absolute path still goes
// through the same UnderGitRepo check as ReadOnly; the policy only
// documents caller intent and lets Mutator reject root-escaping writes
// with the same taxonomy as reads.
type Policy int

const (
	ReadOnly Policy = iota
	Write
)

// Mode records which containment tier admitted a path.
type Mode int

const (
	UnderServerRoot Mode = iota
	UnderGitRepo
)

// Kind is the filesystem type observed at resolution time.
type Kind int

const (
	KindMissing Kind = iota
	KindFile
	KindDirectory
)

// ServerConfig is process-scoped and immutable after Load.
type ServerConfig struct {
	root            string // absolute, canonical
	repoRoot        string // enclosing git repo root of root; may equal root
	caseInsensitive bool
}

// Load canonicalizes rawRoot and discovers its enclosing git repository,
// if any. It succeeds even when rawRoot has no enclosing git repository:
// relative-path operations never need repoRoot, only absolute-path ones
// do, and those fail with NotInsideGitRepository at resolution time, not
// at server startup.
func Load(rawRoot string) (*ServerConfig, error) {
	if strings.TrimSpace(rawRoot) == "" {
		rawRoot = "."
	}
	abs, err := filepath.Abs(rawRoot)
	if err != nil {
		return nil, fserrors.Wrap(fserrors.IoError, err, "fsroot: resolve server root %q", rawRoot)
	}
	abs, err = filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fserrors.Wrap(fserrors.IoError, err, "fsroot: canonicalize server root %q", rawRoot)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fserrors.Wrap(fserrors.IoError, err, "fsroot: stat server root %q", abs)
	}
	if !info.IsDir() {
		return nil, fserrors.New(fserrors.NotADirectory, "fsroot: server root %q is not a directory", abs)
	}
	repoRoot, _ := findGitRoot(abs)
	if repoRoot == "" {
		repoRoot = abs
	}
	return &ServerConfig{root: abs, repoRoot: repoRoot, caseInsensitive: detectCaseInsensitive(abs)}, nil
}

// Root returns the canonical, absolute server root.
func (c *ServerConfig) Root() string { return c.root }

// RepoRoot returns the server root's enclosing git repository root, or
// the server root itself when it isn't inside a git working tree.
func (c *ServerConfig) RepoRoot() string { return c.repoRoot }

// CaseInsensitive reports whether the server root lives on a
// case-insensitive filesystem, which glob matching honors by lowering
// both the pattern and the candidate before comparing.
func (c *ServerConfig) CaseInsensitive() bool { return c.caseInsensitive }

// detectCaseInsensitive probes the filesystem directly rather than
// trusting runtime.GOOS, since a case-sensitive volume can be mounted
// on a normally case-insensitive OS and vice versa. Falls back to a
// GOOS-based guess when root has no letters to case-flip or the probe
// stat fails.
func detectCaseInsensitive(root string) bool {
	upper := strings.ToUpper(root)
	if upper == root {
		return runtime.GOOS != "linux"
	}
	lo, err := os.Stat(root)
	if err != nil {
		return runtime.GOOS != "linux"
	}
	hi, err := os.Stat(upper)
	if err != nil {
		return runtime.GOOS != "linux"
	}
	return os.SameFile(lo, hi)
}

// AdmittedPath is the result of a successful Resolve call.
type AdmittedPath struct {
	Input      string
	Resolved   string
	ServerRoot string
	RepoRoot   string // set only when Mode == UnderGitRepo
	Mode       Mode
	Kind       Kind
}

// WalkBase is the directory that walker-family operations (list_files,
// find_files, search_text) compute display paths relative to:
// absolute-rooted walks display relative to themselves, relative-rooted
// walks display relative to the server root.
func (p *AdmittedPath) WalkBase() string {
	if p.Mode == UnderGitRepo {
		return p.Resolved
	}
	return p.ServerRoot
}

// DisplayPath is the path form used in single-entity responses (stat,
// read_file, mutation results): relative to the server root when the
// path resolved under it, otherwise relative to the enclosing repo
// root.
func (p *AdmittedPath) DisplayPath() string {
	base := p.ServerRoot
	if p.Mode == UnderGitRepo {
		base = p.RepoRoot
	}
	rel, err := filepath.Rel(base, p.Resolved)
	if err != nil {
		return filepath.ToSlash(p.Resolved)
	}
	return filepath.ToSlash(rel)
}

// Resolve normalizes, classifies, canonicalizes, and contains input: a
// raw path string becomes an AdmittedPath locked to one of the two
// containment tiers.
func (c *ServerConfig) Resolve(input string, _ Policy) (*AdmittedPath, error) {
	raw := input
	if raw == "" {
		raw = "."
	}
	clean := filepath.Clean(filepath.FromSlash(raw))

	if isAbsolute(clean) {
		return c.resolveAbsolute(raw, clean)
	}
	return c.resolveRelative(raw, clean)
}

func (c *ServerConfig) resolveRelative(raw, clean string) (*AdmittedPath, error) {
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return nil, fserrors.New(fserrors.RootEscapesRepository, "fsroot: %q escapes server root", raw)
	}
	joined := filepath.Join(c.root, clean)
	resolved, err := canonicalizeBestEffort(joined)
	if err != nil {
		return nil, fserrors.Wrap(fserrors.IoError, err, "fsroot: resolve %q", raw)
	}
	if !hasPathPrefix(resolved, c.root) {
		return nil, fserrors.New(fserrors.RootEscapesRepository, "fsroot: %q resolves outside server root", raw)
	}
	kind, err := probeKind(resolved)
	if err != nil {
		return nil, fserrors.Wrap(fserrors.IoError, err, "fsroot: stat %q", raw)
	}
	return &AdmittedPath{
		Input:      raw,
		Resolved:   resolved,
		ServerRoot: c.root,
		Mode:       UnderServerRoot,
		Kind:       kind,
	}, nil
}

func (c *ServerConfig) resolveAbsolute(raw, clean string) (*AdmittedPath, error) {
	resolved, err := canonicalizeBestEffort(clean)
	if err != nil {
		return nil, fserrors.Wrap(fserrors.IoError, err, "fsroot: resolve %q", raw)
	}
	repoRoot, err := findGitRoot(resolved)
	if err != nil {
		return nil, fserrors.Wrap(fserrors.IoError, err, "fsroot: locate git root for %q", raw)
	}
	if repoRoot == "" {
		return nil, fserrors.New(fserrors.NotInsideGitRepository, "fsroot: %q is not inside a git repository", raw)
	}
	kind, err := probeKind(resolved)
	if err != nil {
		return nil, fserrors.Wrap(fserrors.IoError, err, "fsroot: stat %q", raw)
	}
	return &AdmittedPath{
		Input:      raw,
		Resolved:   resolved,
		ServerRoot: c.root,
		RepoRoot:   repoRoot,
		Mode:       UnderGitRepo,
		Kind:       kind,
	}, nil
}

func isAbsolute(clean string) bool {
	if filepath.IsAbs(clean) {
		return true
	}
	return runtime.GOOS == "windows" && filepath.VolumeName(clean) != ""
}

// canonicalizeBestEffort resolves symlinks on the longest existing
// ancestor of path and lexically rejoins the (not-yet-existing)
// remainder, so missing targets (create_file, overwrite_file on a new
// path) still canonicalize without erroring.
func canonicalizeBestEffort(path string) (string, error) {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved, nil
	}

	var tail []string
	dir := filepath.Clean(path)
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("fsroot: no existing ancestor for %q", path)
		}
		tail = append([]string{filepath.Base(dir)}, tail...)
		dir = parent
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			return filepath.Join(append([]string{resolved}, tail...)...), nil
		}
		if _, err := os.Stat(dir); err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}
}

func probeKind(path string) (Kind, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return KindMissing, nil
	}
	if err != nil {
		return KindMissing, err
	}
	if info.IsDir() {
		return KindDirectory, nil
	}
	return KindFile, nil
}

// findGitRoot walks ancestors of start looking for a ".git" entry (file
// or directory, matching worktree and submodule layouts alike).
func findGitRoot(start string) (string, error) {
	dir := start
	for {
		_, err := os.Lstat(filepath.Join(dir, ".git"))
		if err == nil {
			return dir, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func hasPathPrefix(path, root string) bool {
	path = filepath.Clean(path)
	root = filepath.Clean(root)
	if runtime.GOOS == "windows" {
		path = strings.ToLower(path)
		root = strings.ToLower(root)
	}
	if root == "" {
		return true
	}
	if path == root {
		return true
	}
	sep := string(os.PathSeparator)
	if !strings.HasSuffix(root, sep) {
		root += sep
	}
	if !strings.HasSuffix(path, sep) {
		path += sep
	}
	return strings.HasPrefix(path, root)
}
