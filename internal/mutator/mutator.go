// Package mutator implements the write-policy filesystem operations:
// create_file, overwrite_file, delete_path, copy_path, move_path. Each
// operation resolves its endpoint(s) through fsroot before touching the
// filesystem and reports a structured, taxonomy-coded fserrors.Error
// (AlreadyExists, InvalidArgument, RootEscapesRepository, and so on)
// rather than a bare OS error.
package mutator

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/fserrors"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/fsroot"
)

// OverwriteFile requires path to already exist as a regular file and
// replaces its entire contents.
func OverwriteFile(cfg *fsroot.ServerConfig, path, content string) (string, error) {
	ap, err := cfg.Resolve(path, fsroot.Write)
	if err != nil {
		return "", err
	}
	switch ap.Kind {
	case fsroot.KindMissing:
		return "", fserrors.New(fserrors.NotFound, "overwrite_file: %q does not exist", path)
	case fsroot.KindDirectory:
		return "", fserrors.New(fserrors.NotAFile, "overwrite_file: %q is a directory", path)
	}
	if err := os.WriteFile(ap.Resolved, []byte(content), 0o644); err != nil {
		return "", fserrors.Wrap(fserrors.IoError, err, "overwrite_file: write %q", path)
	}
	return ap.DisplayPath(), nil
}

// CreateResult reports what create_file actually did.
type CreateResult struct {
	Path        string
	Created     bool
	Overwritten bool
}

// CreateFile writes content to path, creating it if missing. overwrite
// permits replacing an existing file; createParents permits creating
// missing ancestor directories.
func CreateFile(cfg *fsroot.ServerConfig, path, content string, overwrite, createParents bool) (CreateResult, error) {
	ap, err := cfg.Resolve(path, fsroot.Write)
	if err != nil {
		return CreateResult{}, err
	}
	if ap.Kind == fsroot.KindDirectory {
		return CreateResult{}, fserrors.New(fserrors.NotAFile, "create_file: %q is a directory", path)
	}
	existed := ap.Kind == fsroot.KindFile
	if existed && !overwrite {
		return CreateResult{}, fserrors.New(fserrors.AlreadyExists, "create_file: %q already exists", path)
	}

	parent := filepath.Dir(ap.Resolved)
	if _, err := os.Stat(parent); err != nil {
		if !createParents {
			return CreateResult{}, fserrors.New(fserrors.ParentMissing, "create_file: parent directory of %q does not exist", path)
		}
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return CreateResult{}, fserrors.Wrap(fserrors.IoError, err, "create_file: create parents of %q", path)
		}
	}

	if err := os.WriteFile(ap.Resolved, []byte(content), 0o644); err != nil {
		return CreateResult{}, fserrors.Wrap(fserrors.IoError, err, "create_file: write %q", path)
	}
	return CreateResult{Path: ap.DisplayPath(), Created: !existed, Overwritten: existed}, nil
}

// DeleteResult reports what delete_path actually did.
type DeleteResult struct {
	Path      string
	Existed   bool
	IsDir     bool
	Removed   bool
	Recursive bool
}

// DeletePath removes path. Directories require recursive=true even
// when empty; a missing path with force=true succeeds with
// existed=false rather than failing.
func DeletePath(cfg *fsroot.ServerConfig, path string, recursive, force bool) (DeleteResult, error) {
	ap, err := cfg.Resolve(path, fsroot.Write)
	if err != nil {
		return DeleteResult{}, err
	}
	display := ap.DisplayPath()

	if ap.Kind == fsroot.KindMissing {
		if force {
			return DeleteResult{Path: display, Existed: false}, nil
		}
		return DeleteResult{}, fserrors.New(fserrors.NotFound, "delete_path: %q does not exist", path)
	}

	isDir := ap.Kind == fsroot.KindDirectory
	if isDir && !recursive {
		return DeleteResult{}, fserrors.New(fserrors.InvalidArgument, "delete_path: %q is a directory; recursive=true is required", path)
	}

	if isDir {
		if err := os.RemoveAll(ap.Resolved); err != nil {
			return DeleteResult{}, fserrors.Wrap(fserrors.IoError, err, "delete_path: remove %q", path)
		}
	} else if err := os.Remove(ap.Resolved); err != nil {
		return DeleteResult{}, fserrors.Wrap(fserrors.IoError, err, "delete_path: remove %q", path)
	}

	return DeleteResult{Path: display, Existed: true, IsDir: isDir, Removed: true, Recursive: recursive}, nil
}

// CopyResult reports what copy_path actually did.
type CopyResult struct {
	From        string
	To          string
	BytesCopied int64
	Overwritten bool
}

// CopyPath copies a regular file from 'from' to 'to'. Both endpoints
// admit under the same two-tier policy; copying across repositories
// (e.g. one absolute endpoint in a different git tree than the other)
// is rejected as RootEscapesRepository.
func CopyPath(cfg *fsroot.ServerConfig, from, to string, overwrite, createParents bool) (CopyResult, error) {
	src, dst, err := resolveEndpoints(cfg, from, to)
	if err != nil {
		return CopyResult{}, err
	}
	if src.Kind != fsroot.KindFile {
		return CopyResult{}, fserrors.New(fserrors.NotAFile, "copy_path: %q is not a regular file", from)
	}

	existed := dst.Kind == fsroot.KindFile
	if existed && !overwrite {
		return CopyResult{}, fserrors.New(fserrors.AlreadyExists, "copy_path: %q already exists", to)
	}
	if dst.Kind == fsroot.KindDirectory {
		return CopyResult{}, fserrors.New(fserrors.NotAFile, "copy_path: %q is a directory", to)
	}

	parent := filepath.Dir(dst.Resolved)
	if _, err := os.Stat(parent); err != nil {
		if !createParents {
			return CopyResult{}, fserrors.New(fserrors.ParentMissing, "copy_path: parent directory of %q does not exist", to)
		}
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return CopyResult{}, fserrors.Wrap(fserrors.IoError, err, "copy_path: create parents of %q", to)
		}
	}

	n, err := copyFileContents(src.Resolved, dst.Resolved)
	if err != nil {
		return CopyResult{}, err
	}

	return CopyResult{From: src.DisplayPath(), To: dst.DisplayPath(), BytesCopied: n, Overwritten: existed}, nil
}

// MoveResult reports what move_path actually did.
type MoveResult struct {
	From        string
	To          string
	Existed     bool
	Overwritten bool
	Recursive   bool
}

// MovePath renames 'from' to 'to' with an atomic os.Rename. Both
// endpoints must admit to the same enclosure (moves across
// repositories are rejected as RootEscapesRepository); when the rename
// fails because the endpoints sit on different volumes, it falls back
// to copy-then-delete.
func MovePath(cfg *fsroot.ServerConfig, from, to string, overwrite, createParents bool) (MoveResult, error) {
	src, dst, err := resolveEndpoints(cfg, from, to)
	if err != nil {
		return MoveResult{}, err
	}
	if src.Kind == fsroot.KindMissing {
		return MoveResult{}, fserrors.New(fserrors.NotFound, "move_path: %q does not exist", from)
	}

	existed := dst.Kind != fsroot.KindMissing
	if existed && !overwrite {
		return MoveResult{}, fserrors.New(fserrors.AlreadyExists, "move_path: %q already exists", to)
	}

	parent := filepath.Dir(dst.Resolved)
	if _, err := os.Stat(parent); err != nil {
		if !createParents {
			return MoveResult{}, fserrors.New(fserrors.ParentMissing, "move_path: parent directory of %q does not exist", to)
		}
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return MoveResult{}, fserrors.Wrap(fserrors.IoError, err, "move_path: create parents of %q", to)
		}
	}

	// os.Rename already replaces an existing destination file
	// atomically on the same volume, so the common overwrite case needs
	// no pre-emptive removal. Only the cases os.Rename can't handle
	// itself - crossing a volume boundary, or replacing a non-empty
	// directory - fall back to clearing the destination first.
	if err := os.Rename(src.Resolved, dst.Resolved); err != nil {
		switch {
		case isCrossDeviceErr(err):
			if existed {
				if err := os.RemoveAll(dst.Resolved); err != nil {
					return MoveResult{}, fserrors.Wrap(fserrors.IoError, err, "move_path: clear existing %q", to)
				}
			}
			if err := copyTree(src.Resolved, dst.Resolved); err != nil {
				return MoveResult{}, err
			}
			if err := os.RemoveAll(src.Resolved); err != nil {
				return MoveResult{}, fserrors.Wrap(fserrors.IoError, err, "move_path: remove source %q after copy", from)
			}
		case existed && isNotEmptyDirErr(err):
			if err := os.RemoveAll(dst.Resolved); err != nil {
				return MoveResult{}, fserrors.Wrap(fserrors.IoError, err, "move_path: clear existing %q", to)
			}
			if err := os.Rename(src.Resolved, dst.Resolved); err != nil {
				return MoveResult{}, fserrors.Wrap(fserrors.IoError, err, "move_path: rename %q to %q", from, to)
			}
		default:
			return MoveResult{}, fserrors.Wrap(fserrors.IoError, err, "move_path: rename %q to %q", from, to)
		}
	}

	return MoveResult{From: src.DisplayPath(), To: dst.DisplayPath(), Existed: existed, Overwritten: existed, Recursive: src.Kind == fsroot.KindDirectory}, nil
}

func resolveEndpoints(cfg *fsroot.ServerConfig, from, to string) (*fsroot.AdmittedPath, *fsroot.AdmittedPath, error) {
	src, err := cfg.Resolve(from, fsroot.Write)
	if err != nil {
		return nil, nil, err
	}
	dst, err := cfg.Resolve(to, fsroot.Write)
	if err != nil {
		return nil, nil, err
	}
	if src.Mode != dst.Mode || (src.Mode == fsroot.UnderGitRepo && src.RepoRoot != dst.RepoRoot) {
		return nil, nil, fserrors.New(fserrors.RootEscapesRepository, "move/copy across repositories is not permitted: %q vs %q", from, to)
	}
	return src, dst, nil
}

func copyFileContents(srcAbs, dstAbs string) (int64, error) {
	in, err := os.Open(srcAbs)
	if err != nil {
		return 0, fserrors.Wrap(fserrors.IoError, err, "copy: open source %q", srcAbs)
	}
	defer in.Close()

	out, err := os.OpenFile(dstAbs, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, fserrors.Wrap(fserrors.IoError, err, "copy: open destination %q", dstAbs)
	}
	defer out.Close()

	n, err := io.Copy(out, in)
	if err != nil {
		return 0, fserrors.Wrap(fserrors.IoError, err, "copy: %s -> %s", srcAbs, dstAbs)
	}
	log.Printf("mutator: copied %s (%s -> %s)", humanize.Bytes(uint64(n)), srcAbs, dstAbs)
	return n, nil
}

// copyTree copies a single file or, for a directory source, its full
// contents, used as the cross-device fallback for MovePath.
func copyTree(srcAbs, dstAbs string) error {
	info, err := os.Stat(srcAbs)
	if err != nil {
		return fserrors.Wrap(fserrors.IoError, err, "move: stat source %q", srcAbs)
	}
	if !info.IsDir() {
		_, err := copyFileContents(srcAbs, dstAbs)
		return err
	}
	return filepath.Walk(srcAbs, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(srcAbs, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dstAbs, rel)
		if fi.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		_, err = copyFileContents(p, target)
		return err
	})
}

// isCrossDeviceErr reports whether a failed os.Rename failed because
// source and destination are on different volumes, the one case
// MovePath falls back to copy-then-delete for. The underlying syscall
// error text ("cross-device link", "invalid cross-device link") is
// stable across Go's os.Rename implementations on Unix; Windows
// renames across volumes fail with a distinct, also-detected message.
func isCrossDeviceErr(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "cross-device") || strings.Contains(msg, "different disk drive")
}

// isNotEmptyDirErr reports whether a failed os.Rename failed because
// the destination is a non-empty directory - the one same-volume case
// os.Rename can't replace atomically, since it requires dst to either
// be missing or an empty directory.
func isNotEmptyDirErr(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "directory not empty") || strings.Contains(msg, "directory is not empty")
}
