package fstool

import (
	"github.com/irvingoujAtDevolution/complement-mcp/internal/fserrors"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/fsroot"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/ignorefilter"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/walker"
)

// entryJSON is the wire shape of a walked or found directory entry.
type entryJSON struct {
	Path     string `json:"path"`
	IsDir    bool   `json:"is_dir"`
	Size     *int64 `json:"size,omitempty"`
	Modified *int64 `json:"modified,omitempty"`
}

func toEntryJSON(e walker.Entry, includeMetadata bool) entryJSON {
	out := entryJSON{Path: e.Path, IsDir: e.IsDir}
	if includeMetadata && !e.IsDir {
		size := e.Size
		out.Size = &size
	}
	if includeMetadata {
		mod := e.Modified
		out.Modified = &mod
	}
	return out
}

// resolveWalkRoot admits root under cfg and returns the admitted path;
// callers walk from its WalkBase. A missing or non-directory root is
// rejected here with its matching taxonomy code, rather than falling
// through to the walker and surfacing as an uncategorized IoError.
func resolveWalkRoot(cfg *fsroot.ServerConfig, root string) (*fsroot.AdmittedPath, error) {
	ap, err := cfg.Resolve(root, fsroot.ReadOnly)
	if err != nil {
		return nil, err
	}
	switch ap.Kind {
	case fsroot.KindMissing:
		return nil, fserrors.New(fserrors.NotFound, "%q does not exist", root)
	case fsroot.KindFile:
		return nil, fserrors.New(fserrors.NotADirectory, "%q is not a directory", root)
	}
	return ap, nil
}

func buildFilter(cfg *fsroot.ServerConfig, includeGlobs, excludeGlobs []string) *ignorefilter.Filter {
	return ignorefilter.New(includeGlobs, excludeGlobs, cfg.CaseInsensitive())
}
