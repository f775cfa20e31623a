// Package finder enumerates entries whose basename or display path
// contains a query substring, reusing internal/walker for ordering,
// filtering, and paging.
package finder

import (
	"context"
	"path"
	"strings"

	"github.com/irvingoujAtDevolution/complement-mcp/internal/common/utils"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/ignorefilter"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/walker"
)

// MatchMode selects whether query is matched against the basename or
// the full display path.
type MatchMode int

const (
	MatchName MatchMode = iota
	MatchPath
)

// Options configures one find.
type Options struct {
	Recursive     bool
	MatchMode     MatchMode
	CaseSensitive bool
	IncludeDirs   bool
	Skip          int
	MaxResults    int
	Filter        *ignorefilter.Filter
}

// Find walks baseAbs and returns entries whose name or path contains
// query, honoring the same filter/paging rules as internal/walker.
func Find(ctx context.Context, baseAbs, query string, opts Options) (walker.Result, error) {
	if opts.MaxResults <= 0 {
		opts.MaxResults = 500
	}
	if opts.Filter == nil {
		opts.Filter = ignorefilter.New(nil, nil, false)
	}

	needle := query
	if !opts.CaseSensitive {
		needle = strings.ToLower(needle)
	}
	matches := func(e walker.Entry) bool {
		candidate := e.Path
		if opts.MatchMode == MatchName {
			candidate = path.Base(e.Path)
		}
		if !opts.CaseSensitive {
			candidate = strings.ToLower(candidate)
		}
		return strings.Contains(candidate, needle)
	}

	all, err := walker.Walk(ctx, baseAbs, walker.Options{
		Recursive:   opts.Recursive,
		IncludeDirs: opts.IncludeDirs,
		MaxResults:  1 << 30,
		Filter:      opts.Filter,
	})
	if err != nil {
		return walker.Result{}, err
	}

	matched := utils.Filter(all.Entries, matches)

	if opts.Skip >= len(matched) {
		return walker.Result{Entries: nil, HasMore: false}, nil
	}
	end := utils.MinInt(opts.Skip+opts.MaxResults, len(matched))
	hasMore := opts.Skip+opts.MaxResults < len(matched)
	return walker.Result{Entries: matched[opts.Skip:end], HasMore: hasMore}, nil
}
