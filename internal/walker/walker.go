// Package walker enumerates the entries under an admitted root as a
// bounded, deterministically ordered sequence, honoring a per-walk
// ignorefilter.Filter and skip/max_results paging. The walk is
// pull-based and early-stoppable: it never buffers an entire tree, only
// as many entries as a caller's skip+max_results demands.
package walker

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/irvingoujAtDevolution/complement-mcp/internal/fserrors"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/ignorefilter"
)

// Entry is one admitted filesystem entry, in display-path form.
type Entry struct {
	Path     string // forward-slash, relative to the walk base
	IsDir    bool
	Size     int64 // only set when Options.IncludeMetadata
	Modified int64 // unix seconds UTC, only set when Options.IncludeMetadata
}

// Options configures a single walk.
type Options struct {
	Recursive       bool
	IncludeDirs     bool
	IncludeMetadata bool
	Skip            int
	MaxResults      int
	Filter          *ignorefilter.Filter
}

// Result is the bounded, ordered output of a walk.
type Result struct {
	Entries []Entry
	HasMore bool
}

// dirNode is one directory queued for traversal, carrying the
// ignorefilter scope accumulated down to it.
type dirNode struct {
	abs     string
	display string // "" at the walk base
	scope   *ignorefilter.Scope
}

// Walk enumerates baseAbs (an admitted directory) according to opts.
// Directories are traversed depth-first, each directory's children
// sorted by name before recursing, so results are stable across calls
// over an unchanged tree. A subdirectory's entries appear together at
// its name's position among its siblings, so the order is not strict
// lexicographic order of full display paths when a sibling name holds
// a byte below '/' (e.g. "a/b" precedes "a.txt").
func Walk(ctx context.Context, baseAbs string, opts Options) (Result, error) {
	if opts.MaxResults <= 0 {
		opts.MaxResults = 500
	}
	if opts.Filter == nil {
		opts.Filter = ignorefilter.New(nil, nil, false)
	}

	var entries []Entry
	seen := 0
	hasMore := false

	var walk func(dirNode) (stop bool, err error)
	walk = func(node dirNode) (bool, error) {
		if err := ctx.Err(); err != nil {
			return true, fserrors.Wrap(fserrors.Cancelled, err, "walk: cancelled")
		}

		children, err := readSortedDir(node.abs)
		if err != nil {
			return true, fserrors.Wrap(fserrors.IoError, err, "walk: read %q", node.abs)
		}

		for _, child := range children {
			childAbs := filepath.Join(node.abs, child.Name())
			childDisplay := joinDisplay(node.display, child.Name())
			isDir := child.IsDir()

			if node.scope.IgnoredByVCS(childAbs, isDir, child.Name()) {
				continue
			}

			if isDir {
				childScope := node.scope.Enter(childAbs)
				if opts.IncludeDirs && opts.Filter.AdmitResult(childDisplay) {
					if seen >= opts.Skip {
						if len(entries) >= opts.MaxResults {
							hasMore = true
							return true, nil
						}
						entries = append(entries, buildEntry(childDisplay, childAbs, true, opts.IncludeMetadata))
					}
					seen++
				}
				if opts.Recursive && !opts.Filter.PrunesDescent(childDisplay) {
					stop, err := walk(dirNode{abs: childAbs, display: childDisplay, scope: childScope})
					if err != nil || stop {
						return stop, err
					}
				}
				continue
			}

			if !opts.Filter.AdmitResult(childDisplay) {
				continue
			}
			if seen >= opts.Skip {
				if len(entries) >= opts.MaxResults {
					hasMore = true
					return true, nil
				}
				entries = append(entries, buildEntry(childDisplay, childAbs, false, opts.IncludeMetadata))
			}
			seen++
		}
		return false, nil
	}

	root := dirNode{abs: baseAbs, display: "", scope: opts.Filter.Root(baseAbs)}
	if _, err := walk(root); err != nil {
		return Result{}, err
	}

	// hasMore was already latched on overflow; when the walk ran to
	// completion it's false unless set above.
	return Result{Entries: entries, HasMore: hasMore}, nil
}

func buildEntry(display, abs string, isDir, includeMetadata bool) Entry {
	e := Entry{Path: display, IsDir: isDir}
	if !includeMetadata {
		return e
	}
	info, err := os.Stat(abs)
	if err != nil {
		return e
	}
	if !isDir {
		e.Size = info.Size()
	}
	e.Modified = info.ModTime().UTC().Unix()
	return e
}

func joinDisplay(base, name string) string {
	if base == "" {
		return name
	}
	return base + "/" + name
}

// readSortedDir lists dir's direct children sorted by name, giving a
// byte-ordered, case-sensitive-on-POSIX traversal order.
func readSortedDir(dir string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}
