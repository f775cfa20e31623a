package fstool

import (
	"context"
	"encoding/json"

	"github.com/irvingoujAtDevolution/complement-mcp/internal/fserrors"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/fsroot"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/mutator"
)

type createFileTool struct{ cfg *fsroot.ServerConfig }

func newCreateFileTool(cfg *fsroot.ServerConfig) *createFileTool { return &createFileTool{cfg: cfg} }

func (t *createFileTool) Spec() ToolSpec {
	return ToolSpec{Name: "fs.create_file", Description: "Create a new file, optionally overwriting or creating missing parent directories."}
}

type createFileInput struct {
	Path          string `json:"path"`
	Content       string `json:"content"`
	Overwrite     bool   `json:"overwrite"`
	CreateParents bool   `json:"create_parents"`
}

type createFileOutput struct {
	Path        string `json:"path"`
	Created     bool   `json:"created"`
	Overwritten bool   `json:"overwritten"`
}

func (t *createFileTool) Call(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in createFileInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, err
	}
	if in.Path == "" {
		return nil, fserrors.New(fserrors.InvalidArgument, "create_file: path is required")
	}
	res, err := mutator.CreateFile(t.cfg, in.Path, in.Content, in.Overwrite, in.CreateParents)
	if err != nil {
		return nil, err
	}
	return json.Marshal(createFileOutput{Path: res.Path, Created: res.Created, Overwritten: res.Overwritten})
}
