// Package fstool wires the core components (fsroot, walker,
// ignorefilter, reader, search, finder, pathmeta, mutator) onto the
// `fs.*` tool surface exposed over JSON-RPC, one file per operation,
// each with a typed JSON input/output shape.
package fstool

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/irvingoujAtDevolution/complement-mcp/internal/fsroot"
)

// ToolSpec documents a tool's name for advertisement to the RPC layer.
type ToolSpec struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Tool is a single fs.* operation: decode JSON input, run, encode JSON
// output.
type Tool interface {
	Spec() ToolSpec
	Call(ctx context.Context, input json.RawMessage) (json.RawMessage, error)
}

// Registry dispatches fs.* calls by name.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: map[string]Tool{}}
}

// Register adds or replaces a tool by name.
func (r *Registry) Register(t Tool) {
	if r == nil || t == nil {
		return
	}
	spec := t.Spec()
	if spec.Name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tools == nil {
		r.tools = map[string]Tool{}
	}
	r.tools[spec.Name] = t
}

// Call invokes a registered tool by name.
func (r *Registry) Call(ctx context.Context, name string, input json.RawMessage) (json.RawMessage, error) {
	if r == nil {
		return nil, fmt.Errorf("fstool: registry is nil")
	}
	r.mu.RLock()
	t, ok := r.tools[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("fstool: unknown tool %q", name)
	}
	return t.Call(ctx, input)
}

// Specs returns every registered tool's spec, for RPC-layer advertisement.
func (r *Registry) Specs() []ToolSpec {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ToolSpec, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t.Spec())
	}
	return out
}

// NewDefaultRegistry registers the read-only fs.* operations against
// cfg, plus the five mutation tools when allowWrite is true, mirroring
// internal/mcp/host.go's RegisterDefaultTools wiring.
func NewDefaultRegistry(cfg *fsroot.ServerConfig, allowWrite bool) *Registry {
	r := NewRegistry()
	r.Register(newListFilesTool(cfg))
	r.Register(newFindFilesTool(cfg))
	r.Register(newReadFileTool(cfg))
	r.Register(newSearchTextTool(cfg))
	r.Register(newStatTool(cfg))
	r.Register(newPathInfoTool(cfg))
	if allowWrite {
		r.Register(newOverwriteFileTool(cfg))
		r.Register(newCreateFileTool(cfg))
		r.Register(newDeletePathTool(cfg))
		r.Register(newCopyPathTool(cfg))
		r.Register(newMovePathTool(cfg))
	}
	return r
}
