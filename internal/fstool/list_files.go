package fstool

import (
	"context"
	"encoding/json"

	"github.com/irvingoujAtDevolution/complement-mcp/internal/fsroot"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/walker"
)

type listFilesTool struct{ cfg *fsroot.ServerConfig }

func newListFilesTool(cfg *fsroot.ServerConfig) *listFilesTool { return &listFilesTool{cfg: cfg} }

func (t *listFilesTool) Spec() ToolSpec {
	return ToolSpec{Name: "fs.list_files", Description: "List entries under a directory, gitignore- and glob-aware, with bounded paging."}
}

type listFilesInput struct {
	Root            string   `json:"root"`
	Recursive       *bool    `json:"recursive"`
	IncludeGlobs    []string `json:"include_globs"`
	ExcludeGlobs    []string `json:"exclude_globs"`
	MaxResults      int      `json:"max_results"`
	IncludeDirs     bool     `json:"include_dirs"`
	IncludeMetadata bool     `json:"include_metadata"`
	Skip            int      `json:"skip"`
}

type listFilesOutput struct {
	Entries []entryJSON `json:"entries"`
	HasMore bool        `json:"has_more"`
}

func (t *listFilesTool) Call(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in listFilesInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, err
	}
	if in.Root == "" {
		in.Root = "."
	}
	recursive := true
	if in.Recursive != nil {
		recursive = *in.Recursive
	}

	ap, err := resolveWalkRoot(t.cfg, in.Root)
	if err != nil {
		return nil, err
	}
	filter := buildFilter(t.cfg, in.IncludeGlobs, in.ExcludeGlobs)

	res, err := walker.Walk(ctx, ap.WalkBase(), walker.Options{
		Recursive:       recursive,
		IncludeDirs:     in.IncludeDirs,
		IncludeMetadata: in.IncludeMetadata,
		Skip:            in.Skip,
		MaxResults:      in.MaxResults,
		Filter:          filter,
	})
	if err != nil {
		return nil, err
	}

	out := listFilesOutput{HasMore: res.HasMore}
	for _, e := range res.Entries {
		out.Entries = append(out.Entries, toEntryJSON(e, in.IncludeMetadata))
	}
	return json.Marshal(out)
}
