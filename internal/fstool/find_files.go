package fstool

import (
	"context"
	"encoding/json"

	"github.com/irvingoujAtDevolution/complement-mcp/internal/finder"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/fserrors"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/fsroot"
)

type findFilesTool struct{ cfg *fsroot.ServerConfig }

func newFindFilesTool(cfg *fsroot.ServerConfig) *findFilesTool { return &findFilesTool{cfg: cfg} }

func (t *findFilesTool) Spec() ToolSpec {
	return ToolSpec{Name: "fs.find_files", Description: "Find entries whose name or path contains a query substring."}
}

type findFilesInput struct {
	Query         string   `json:"query"`
	Root          string   `json:"root"`
	Recursive     *bool    `json:"recursive"`
	MatchMode     string   `json:"match_mode"`
	CaseSensitive bool     `json:"case_sensitive"`
	IncludeGlobs  []string `json:"include_globs"`
	ExcludeGlobs  []string `json:"exclude_globs"`
	IncludeDirs   bool     `json:"include_dirs"`
	MaxResults    int      `json:"max_results"`
	Skip          int      `json:"skip"`
}

type findFilesOutput struct {
	Matches []entryJSON `json:"matches"`
	HasMore bool        `json:"has_more"`
}

func (t *findFilesTool) Call(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in findFilesInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, err
	}
	if in.Query == "" {
		return nil, fserrors.New(fserrors.InvalidArgument, "find_files: query is required")
	}
	if in.Root == "" {
		in.Root = "."
	}
	recursive := true
	if in.Recursive != nil {
		recursive = *in.Recursive
	}
	mode := finder.MatchName
	switch in.MatchMode {
	case "", "name":
		mode = finder.MatchName
	case "path":
		mode = finder.MatchPath
	default:
		return nil, fserrors.New(fserrors.InvalidArgument, "find_files: unknown match_mode %q", in.MatchMode)
	}

	ap, err := resolveWalkRoot(t.cfg, in.Root)
	if err != nil {
		return nil, err
	}
	filter := buildFilter(t.cfg, in.IncludeGlobs, in.ExcludeGlobs)

	res, err := finder.Find(ctx, ap.WalkBase(), in.Query, finder.Options{
		Recursive:     recursive,
		MatchMode:     mode,
		CaseSensitive: in.CaseSensitive,
		IncludeDirs:   in.IncludeDirs,
		Skip:          in.Skip,
		MaxResults:    in.MaxResults,
		Filter:        filter,
	})
	if err != nil {
		return nil, err
	}

	out := findFilesOutput{HasMore: res.HasMore}
	for _, e := range res.Entries {
		out.Matches = append(out.Matches, toEntryJSON(e, false))
	}
	if out.Matches == nil {
		out.Matches = []entryJSON{}
	}
	return json.Marshal(out)
}
