// Package reader implements windowed, UTF-8-validated file reads with
// two mutually exclusive range models: a byte window and a line
// window. Reads go through os.Open rather than memory-mapping. A byte
// window reads only the requested span; a line window reads and
// UTF-8-validates the whole file before slicing out its lines.
package reader

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"unicode/utf8"

	"github.com/irvingoujAtDevolution/complement-mcp/internal/fserrors"
)

const (
	DefaultMaxBytes = 64 * 1024
	DefaultMaxLines = 200
)

// RangeType distinguishes the two window models. The zero value is
// unset, used only while parsing a request before the implicit-mode
// rule below picks one.
type RangeType int

const (
	RangeUnset RangeType = iota
	RangeBytes
	RangeLines
)

// Range is the effective window applied to a read, echoed back to the
// caller so responses are self-describing.
type Range struct {
	Type        RangeType
	OffsetBytes int64
	MaxBytes    int64
	StartLine   int64
	MaxLines    int64
}

// Request carries the raw, possibly-partial field set a caller
// supplied, before defaulting and mode resolution.
type Request struct {
	RangeType   RangeType // RangeUnset if the caller didn't specify one
	OffsetBytes *int64
	MaxBytes    *int64
	StartLine   *int64
	MaxLines    *int64
}

// Result is a single windowed read.
type Result struct {
	Content     string
	IsTruncated bool
	Range       Range
}

// Read validates req against path's file and returns the requested
// window. path must already be an admitted, existing regular file;
// Read itself only opens and reads it.
func Read(path string, req Request) (Result, error) {
	hasBytes := req.OffsetBytes != nil || req.MaxBytes != nil
	hasLines := req.StartLine != nil || req.MaxLines != nil

	mode := req.RangeType
	if mode == RangeUnset {
		if hasLines {
			mode = RangeLines
		} else {
			mode = RangeBytes
		}
	}

	if mode == RangeBytes && hasLines {
		return Result{}, fserrors.New(fserrors.InvalidArgument, "read_file: range_type=bytes but line fields were given")
	}
	if mode == RangeLines && hasBytes {
		return Result{}, fserrors.New(fserrors.InvalidArgument, "read_file: range_type=lines but byte fields were given")
	}

	if mode == RangeLines {
		return readLines(path, req)
	}
	return readBytes(path, req)
}

func readBytes(path string, req Request) (Result, error) {
	offset := int64(0)
	if req.OffsetBytes != nil {
		offset = *req.OffsetBytes
	}
	maxBytes := int64(DefaultMaxBytes)
	if req.MaxBytes != nil {
		maxBytes = *req.MaxBytes
	}

	f, err := os.Open(path)
	if err != nil {
		return Result{}, fserrors.Wrap(fserrors.IoError, err, "read_file: open %q", path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Result{}, fserrors.Wrap(fserrors.IoError, err, "read_file: stat %q", path)
	}

	if offset > 0 {
		if _, err := f.Seek(offset, io.SeekStart); err != nil {
			return Result{}, fserrors.Wrap(fserrors.IoError, err, "read_file: seek %q", path)
		}
	}

	buf := make([]byte, maxBytes)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return Result{}, fserrors.Wrap(fserrors.IoError, err, "read_file: read %q", path)
	}
	buf = buf[:n]

	if !utf8.Valid(buf) {
		return Result{}, fserrors.New(fserrors.NonUtf8Content, "read_file: %q is not valid UTF-8 in the requested byte range", path)
	}

	isTruncated := offset+int64(n) < info.Size()

	return Result{
		Content:     string(buf),
		IsTruncated: isTruncated,
		Range: Range{
			Type:        RangeBytes,
			OffsetBytes: offset,
			MaxBytes:    maxBytes,
		},
	}, nil
}

func readLines(path string, req Request) (Result, error) {
	startLine := int64(1)
	if req.StartLine != nil {
		startLine = *req.StartLine
	}
	if startLine < 1 {
		return Result{}, fserrors.New(fserrors.InvalidArgument, "read_file: start_line must be positive, got %d", startLine)
	}
	maxLines := int64(DefaultMaxLines)
	if req.MaxLines != nil {
		maxLines = *req.MaxLines
	}

	f, err := os.Open(path)
	if err != nil {
		return Result{}, fserrors.Wrap(fserrors.IoError, err, "read_file: open %q", path)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return Result{}, fserrors.Wrap(fserrors.IoError, err, "read_file: read %q", path)
	}
	if !utf8.Valid(raw) {
		return Result{}, fserrors.New(fserrors.NonUtf8Content, "read_file: %q is not valid UTF-8", path)
	}

	var content []byte
	var currentLine, collected int64
	isTruncated := false

	br := bufio.NewReader(bytes.NewReader(raw))
	for {
		line, err := br.ReadString('\n')
		if len(line) == 0 && err != nil {
			break
		}
		currentLine++

		if currentLine < startLine {
			if err != nil {
				break
			}
			continue
		}

		trimmed := line
		hadNewline := len(trimmed) > 0 && trimmed[len(trimmed)-1] == '\n'
		if hadNewline {
			trimmed = trimmed[:len(trimmed)-1]
		}
		if collected > 0 {
			content = append(content, '\n')
		}
		content = append(content, trimmed...)
		collected++

		if err != nil {
			break
		}
		if collected >= maxLines {
			// Peek whether anything remains past this line.
			if _, peekErr := br.ReadByte(); peekErr == nil {
				isTruncated = true
			}
			break
		}
	}

	return Result{
		Content:     string(content),
		IsTruncated: isTruncated,
		Range: Range{
			Type:      RangeLines,
			StartLine: startLine,
			MaxLines:  maxLines,
		},
	}, nil
}
