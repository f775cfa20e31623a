package fstool

import (
	"context"
	"encoding/json"

	"github.com/irvingoujAtDevolution/complement-mcp/internal/fsroot"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/pathmeta"
)

type pathInfoTool struct{ cfg *fsroot.ServerConfig }

func newPathInfoTool(cfg *fsroot.ServerConfig) *pathInfoTool { return &pathInfoTool{cfg: cfg} }

func (t *pathInfoTool) Spec() ToolSpec {
	return ToolSpec{Name: "fs.path_info", Description: "Resolve a path and report its existence, canonical form, and enclosing repo root; never fails."}
}

type pathInfoInput struct {
	Path string `json:"path"`
}

type pathInfoOutput struct {
	InputPath     string `json:"input_path"`
	ResolvedPath  string `json:"resolved_path"`
	Exists        bool   `json:"exists"`
	IsFile        bool   `json:"is_file"`
	IsDir         bool   `json:"is_dir"`
	IsAbsolute    bool   `json:"is_absolute"`
	CanonicalPath string `json:"canonical_path,omitempty"`
	RepoRoot      string `json:"repo_root,omitempty"`
}

func (t *pathInfoTool) Call(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in pathInfoInput
	if len(input) > 0 {
		if err := json.Unmarshal(input, &in); err != nil {
			return nil, err
		}
	}
	res := pathmeta.PathInfo(t.cfg, in.Path)
	out := pathInfoOutput{
		InputPath:     res.InputPath,
		ResolvedPath:  res.ResolvedPath,
		Exists:        res.Exists,
		IsFile:        res.IsFile,
		IsDir:         res.IsDir,
		IsAbsolute:    res.IsAbsolute,
		CanonicalPath: res.CanonicalPath,
		RepoRoot:      res.RepoRoot,
	}
	return json.Marshal(out)
}
