// Package search implements literal/regex text search with line-based
// regex application, independent per-hit context, and silent skipping
// of non-UTF-8 files. It reuses internal/walker for ordered, filtered
// file enumeration. A pattern is applied to each line's text
// independently (never spanning a newline), and every non-overlapping
// match on a line yields its own hit with its own context window.
package search

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/irvingoujAtDevolution/complement-mcp/internal/common/utils"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/fserrors"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/ignorefilter"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/walker"
)

// Mode selects literal substring matching or regex matching.
type Mode int

const (
	Literal Mode = iota
	Regex
)

const DefaultMaxResults = 200
const DefaultContextLines = 2

// maxEnumeratedFiles bounds the walker's internal file enumeration,
// not the hit count: search needs the full ordered file list to apply
// skip/max_results over hits, not files.
const maxEnumeratedFiles = 1 << 30

// Hit is one match.
type Hit struct {
	Path          string
	Line          int
	Column        int
	LineText      string
	ContextBefore []string
	ContextAfter  []string
}

// Options configures one search.
type Options struct {
	Mode          Mode
	CaseSensitive bool
	ContextLines  int
	Skip          int
	MaxResults    int
	Filter        *ignorefilter.Filter
}

// Result is the bounded, ordered output of a search.
type Result struct {
	Hits    []Hit
	HasMore bool
}

// Search scans every admitted file under baseAbs, in walker order, for
// query and returns up to opts.MaxResults hits after discarding
// opts.Skip, plus HasMore.
func Search(ctx context.Context, baseAbs, query string, opts Options) (Result, error) {
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	if opts.ContextLines < 0 {
		opts.ContextLines = DefaultContextLines
	}
	if opts.Filter == nil {
		opts.Filter = ignorefilter.New(nil, nil, false)
	}

	re, err := compile(query, opts.Mode, opts.CaseSensitive)
	if err != nil {
		return Result{}, err
	}

	files, err := walker.Walk(ctx, baseAbs, walker.Options{
		Recursive:  true,
		MaxResults: maxEnumeratedFiles,
		Filter:     opts.Filter,
	})
	if err != nil {
		return Result{}, err
	}

	var hits []Hit
	seen := 0
	hasMore := false

	for _, entry := range files.Entries {
		if entry.IsDir {
			continue
		}
		if err := ctx.Err(); err != nil {
			return Result{}, fserrors.Wrap(fserrors.Cancelled, err, "search_text: cancelled")
		}

		abs := filepath.Join(baseAbs, filepath.FromSlash(entry.Path))
		raw, err := os.ReadFile(abs)
		if err != nil || len(raw) == 0 || !utf8.Valid(raw) {
			continue // binary/unreadable files are silently skipped
		}

		lines := splitLines(raw)
		done := false
		for idx, line := range lines {
			locs := re.FindAllStringIndex(line, -1)
			for _, loc := range locs {
				seen++
				if seen <= opts.Skip {
					continue
				}
				if len(hits) >= opts.MaxResults {
					hasMore = true
					done = true
					break
				}
				hits = append(hits, Hit{
					Path:          entry.Path,
					Line:          idx + 1,
					Column:        loc[0] + 1,
					LineText:      line,
					ContextBefore: contextBefore(lines, idx, opts.ContextLines),
					ContextAfter:  contextAfter(lines, idx, opts.ContextLines),
				})
			}
			if done {
				break
			}
		}
		if done {
			break
		}
	}

	return Result{Hits: hits, HasMore: hasMore}, nil
}

func compile(query string, mode Mode, caseSensitive bool) (*regexp.Regexp, error) {
	pattern := query
	if mode == Literal {
		pattern = regexp.QuoteMeta(query)
	}
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fserrors.Wrap(fserrors.InvalidRegex, err, "search_text: invalid pattern %q", query)
	}
	return re, nil
}

// splitLines breaks raw into lines on "\n" without discarding a
// trailing "\r", matching read_file's line-mode convention so line
// text and context stay byte-consistent with a direct read.
func splitLines(raw []byte) []string {
	s := string(raw)
	lines := strings.Split(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" && strings.HasSuffix(s, "\n") {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func contextBefore(lines []string, idx, n int) []string {
	start := utils.ClampInt(idx-n, 0, idx)
	return append([]string{}, lines[start:idx]...)
}

func contextAfter(lines []string, idx, n int) []string {
	end := utils.ClampInt(idx+1+n, idx+1, len(lines))
	return append([]string{}, lines[idx+1:end]...)
}
