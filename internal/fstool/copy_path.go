package fstool

import (
	"context"
	"encoding/json"

	"github.com/irvingoujAtDevolution/complement-mcp/internal/fserrors"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/fsroot"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/mutator"
)

type copyPathTool struct{ cfg *fsroot.ServerConfig }

func newCopyPathTool(cfg *fsroot.ServerConfig) *copyPathTool { return &copyPathTool{cfg: cfg} }

func (t *copyPathTool) Spec() ToolSpec {
	return ToolSpec{Name: "fs.copy_path", Description: "Copy a regular file to a new location."}
}

type copyPathInput struct {
	From          string `json:"from"`
	To            string `json:"to"`
	Overwrite     bool   `json:"overwrite"`
	CreateParents *bool  `json:"create_parents"`
}

type copyPathOutput struct {
	From        string `json:"from"`
	To          string `json:"to"`
	BytesCopied int64  `json:"bytes_copied"`
	Overwritten bool   `json:"overwritten"`
}

func (t *copyPathTool) Call(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in copyPathInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, err
	}
	if in.From == "" || in.To == "" {
		return nil, fserrors.New(fserrors.InvalidArgument, "copy_path: from and to are required")
	}
	createParents := true
	if in.CreateParents != nil {
		createParents = *in.CreateParents
	}
	res, err := mutator.CopyPath(t.cfg, in.From, in.To, in.Overwrite, createParents)
	if err != nil {
		return nil, err
	}
	return json.Marshal(copyPathOutput{From: res.From, To: res.To, BytesCopied: res.BytesCopied, Overwritten: res.Overwritten})
}
