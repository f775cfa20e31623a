package fstool

import (
	"context"
	"encoding/json"

	"github.com/irvingoujAtDevolution/complement-mcp/internal/fserrors"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/fsroot"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/search"
)

type searchTextTool struct{ cfg *fsroot.ServerConfig }

func newSearchTextTool(cfg *fsroot.ServerConfig) *searchTextTool { return &searchTextTool{cfg: cfg} }

func (t *searchTextTool) Spec() ToolSpec {
	return ToolSpec{Name: "fs.search_text", Description: "Search admitted files for a literal substring or line-based regex, with per-hit context."}
}

type searchTextInput struct {
	Query         string   `json:"query"`
	Mode          string   `json:"mode"`
	CaseSensitive bool     `json:"case_sensitive"`
	Root          string   `json:"root"`
	IncludeGlobs  []string `json:"include_globs"`
	ExcludeGlobs  []string `json:"exclude_globs"`
	MaxResults    int      `json:"max_results"`
	ContextLines  *int     `json:"context_lines"`
	Skip          int      `json:"skip"`
}

type hitJSON struct {
	Path          string   `json:"path"`
	Line          int      `json:"line"`
	Column        int      `json:"column"`
	LineText      string   `json:"line_text"`
	ContextBefore []string `json:"context_before"`
	ContextAfter  []string `json:"context_after"`
}

type searchTextOutput struct {
	Hits    []hitJSON `json:"hits"`
	HasMore bool      `json:"has_more"`
}

func (t *searchTextTool) Call(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in searchTextInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, err
	}
	if in.Query == "" {
		return nil, fserrors.New(fserrors.InvalidArgument, "search_text: query is required")
	}
	if in.Root == "" {
		in.Root = "."
	}
	mode := search.Literal
	switch in.Mode {
	case "", "literal":
		mode = search.Literal
	case "regex":
		mode = search.Regex
	default:
		return nil, fserrors.New(fserrors.InvalidArgument, "search_text: unknown mode %q", in.Mode)
	}
	contextLines := search.DefaultContextLines
	if in.ContextLines != nil {
		contextLines = *in.ContextLines
	}

	ap, err := resolveWalkRoot(t.cfg, in.Root)
	if err != nil {
		return nil, err
	}
	filter := buildFilter(t.cfg, in.IncludeGlobs, in.ExcludeGlobs)

	res, err := search.Search(ctx, ap.WalkBase(), in.Query, search.Options{
		Mode:          mode,
		CaseSensitive: in.CaseSensitive,
		ContextLines:  contextLines,
		Skip:          in.Skip,
		MaxResults:    in.MaxResults,
		Filter:        filter,
	})
	if err != nil {
		return nil, err
	}

	out := searchTextOutput{HasMore: res.HasMore}
	for _, h := range res.Hits {
		out.Hits = append(out.Hits, hitJSON{
			Path:          h.Path,
			Line:          h.Line,
			Column:        h.Column,
			LineText:      h.LineText,
			ContextBefore: h.ContextBefore,
			ContextAfter:  h.ContextAfter,
		})
	}
	if out.Hits == nil {
		out.Hits = []hitJSON{}
	}
	return json.Marshal(out)
}
