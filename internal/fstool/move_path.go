package fstool

import (
	"context"
	"encoding/json"

	"github.com/irvingoujAtDevolution/complement-mcp/internal/fserrors"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/fsroot"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/mutator"
)

type movePathTool struct{ cfg *fsroot.ServerConfig }

func newMovePathTool(cfg *fsroot.ServerConfig) *movePathTool { return &movePathTool{cfg: cfg} }

func (t *movePathTool) Spec() ToolSpec {
	return ToolSpec{Name: "fs.move_path", Description: "Move or rename a path, preferring an atomic rename on the same volume."}
}

type movePathInput struct {
	From          string `json:"from"`
	To            string `json:"to"`
	Overwrite     bool   `json:"overwrite"`
	CreateParents *bool  `json:"create_parents"`
}

type movePathOutput struct {
	From        string `json:"from"`
	To          string `json:"to"`
	Existed     bool   `json:"existed"`
	Overwritten bool   `json:"overwritten"`
	Recursive   bool   `json:"recursive"`
}

func (t *movePathTool) Call(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in movePathInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, err
	}
	if in.From == "" || in.To == "" {
		return nil, fserrors.New(fserrors.InvalidArgument, "move_path: from and to are required")
	}
	createParents := true
	if in.CreateParents != nil {
		createParents = *in.CreateParents
	}
	res, err := mutator.MovePath(t.cfg, in.From, in.To, in.Overwrite, createParents)
	if err != nil {
		return nil, err
	}
	return json.Marshal(movePathOutput{From: res.From, To: res.To, Existed: res.Existed, Overwritten: res.Overwritten, Recursive: res.Recursive})
}
