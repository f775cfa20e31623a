package fstool

import (
	"context"
	"encoding/json"

	"github.com/irvingoujAtDevolution/complement-mcp/internal/fserrors"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/fsroot"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/mutator"
)

type deletePathTool struct{ cfg *fsroot.ServerConfig }

func newDeletePathTool(cfg *fsroot.ServerConfig) *deletePathTool { return &deletePathTool{cfg: cfg} }

func (t *deletePathTool) Spec() ToolSpec {
	return ToolSpec{Name: "fs.delete_path", Description: "Delete a file, or a directory tree when recursive=true."}
}

type deletePathInput struct {
	Path      string `json:"path"`
	Recursive bool   `json:"recursive"`
	Force     bool   `json:"force"`
}

type deletePathOutput struct {
	Path      string `json:"path"`
	Existed   bool   `json:"existed"`
	IsDir     bool   `json:"is_dir"`
	Removed   bool   `json:"removed"`
	Recursive bool   `json:"recursive"`
}

func (t *deletePathTool) Call(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in deletePathInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, err
	}
	if in.Path == "" {
		return nil, fserrors.New(fserrors.InvalidArgument, "delete_path: path is required")
	}
	res, err := mutator.DeletePath(t.cfg, in.Path, in.Recursive, in.Force)
	if err != nil {
		return nil, err
	}
	return json.Marshal(deletePathOutput{
		Path:      res.Path,
		Existed:   res.Existed,
		IsDir:     res.IsDir,
		Removed:   res.Removed,
		Recursive: res.Recursive,
	})
}
