package fstool

import (
	"context"
	"encoding/json"

	"github.com/irvingoujAtDevolution/complement-mcp/internal/fserrors"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/fsroot"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/mutator"
)

type overwriteFileTool struct{ cfg *fsroot.ServerConfig }

func newOverwriteFileTool(cfg *fsroot.ServerConfig) *overwriteFileTool {
	return &overwriteFileTool{cfg: cfg}
}

func (t *overwriteFileTool) Spec() ToolSpec {
	return ToolSpec{Name: "fs.overwrite_file", Description: "Replace the entire contents of an existing regular file."}
}

type overwriteFileInput struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

type overwriteFileOutput struct {
	Path string `json:"path"`
}

func (t *overwriteFileTool) Call(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in overwriteFileInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, err
	}
	if in.Path == "" {
		return nil, fserrors.New(fserrors.InvalidArgument, "overwrite_file: path is required")
	}
	path, err := mutator.OverwriteFile(t.cfg, in.Path, in.Content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(overwriteFileOutput{Path: path})
}
