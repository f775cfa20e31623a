package fstool

import (
	"context"
	"encoding/json"

	"github.com/irvingoujAtDevolution/complement-mcp/internal/fsroot"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/pathmeta"
)

type statTool struct{ cfg *fsroot.ServerConfig }

func newStatTool(cfg *fsroot.ServerConfig) *statTool { return &statTool{cfg: cfg} }

func (t *statTool) Spec() ToolSpec {
	return ToolSpec{Name: "fs.stat", Description: "Report whether a path exists and its type, never failing on a missing target."}
}

type statInput struct {
	Path string `json:"path"`
}

type statOutput struct {
	Path     string `json:"path"`
	Exists   bool   `json:"exists"`
	IsFile   bool   `json:"is_file"`
	IsDir    bool   `json:"is_dir"`
	Size     *int64 `json:"size,omitempty"`
	Modified *int64 `json:"modified,omitempty"`
}

func (t *statTool) Call(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in statInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, err
	}
	res, err := pathmeta.Stat(t.cfg, in.Path)
	if err != nil {
		return nil, err
	}
	out := statOutput{Path: res.Path, Exists: res.Exists, IsFile: res.IsFile, IsDir: res.IsDir}
	if res.Exists {
		mod := res.Modified
		out.Modified = &mod
		if res.IsFile {
			size := res.Size
			out.Size = &size
		}
	}
	return json.Marshal(out)
}
