package fstool

import (
	"context"
	"encoding/json"

	"github.com/irvingoujAtDevolution/complement-mcp/internal/fserrors"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/fsroot"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/reader"
)

type readFileTool struct{ cfg *fsroot.ServerConfig }

func newReadFileTool(cfg *fsroot.ServerConfig) *readFileTool { return &readFileTool{cfg: cfg} }

func (t *readFileTool) Spec() ToolSpec {
	return ToolSpec{Name: "fs.read_file", Description: "Read a windowed slice of a text file, by byte range or line range."}
}

type readFileInput struct {
	Path        string `json:"path"`
	RangeType   string `json:"range_type"`
	OffsetBytes *int64 `json:"offset_bytes"`
	MaxBytes    *int64 `json:"max_bytes"`
	StartLine   *int64 `json:"start_line"`
	MaxLines    *int64 `json:"max_lines"`
}

type rangeJSON struct {
	RangeType   string `json:"range_type"`
	OffsetBytes *int64 `json:"offset_bytes,omitempty"`
	MaxBytes    *int64 `json:"max_bytes,omitempty"`
	StartLine   *int64 `json:"start_line,omitempty"`
	MaxLines    *int64 `json:"max_lines,omitempty"`
}

type readFileOutput struct {
	Path        string    `json:"path"`
	Content     string    `json:"content"`
	IsTruncated bool      `json:"is_truncated"`
	Range       rangeJSON `json:"range"`
}

func (t *readFileTool) Call(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in readFileInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, err
	}
	if in.Path == "" {
		return nil, fserrors.New(fserrors.InvalidArgument, "read_file: path is required")
	}

	ap, err := t.cfg.Resolve(in.Path, fsroot.ReadOnly)
	if err != nil {
		return nil, err
	}
	switch ap.Kind {
	case fsroot.KindMissing:
		return nil, fserrors.New(fserrors.NotFound, "read_file: %q does not exist", in.Path)
	case fsroot.KindDirectory:
		return nil, fserrors.New(fserrors.NotAFile, "read_file: %q is a directory", in.Path)
	}

	var rangeType reader.RangeType
	switch in.RangeType {
	case "":
		rangeType = reader.RangeUnset
	case "bytes":
		rangeType = reader.RangeBytes
	case "lines":
		rangeType = reader.RangeLines
	default:
		return nil, fserrors.New(fserrors.InvalidArgument, "read_file: unknown range_type %q", in.RangeType)
	}

	res, err := reader.Read(ap.Resolved, reader.Request{
		RangeType:   rangeType,
		OffsetBytes: in.OffsetBytes,
		MaxBytes:    in.MaxBytes,
		StartLine:   in.StartLine,
		MaxLines:    in.MaxLines,
	})
	if err != nil {
		return nil, err
	}

	out := readFileOutput{
		Path:        ap.DisplayPath(),
		Content:     res.Content,
		IsTruncated: res.IsTruncated,
	}
	if res.Range.Type == reader.RangeBytes {
		out.Range = rangeJSON{RangeType: "bytes", OffsetBytes: &res.Range.OffsetBytes, MaxBytes: &res.Range.MaxBytes}
	} else {
		out.Range = rangeJSON{RangeType: "lines", StartLine: &res.Range.StartLine, MaxLines: &res.Range.MaxLines}
	}
	return json.Marshal(out)
}
