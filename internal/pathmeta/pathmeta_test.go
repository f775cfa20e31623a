package pathmeta

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/irvingoujAtDevolution/complement-mcp/internal/fsroot"
)

func TestStatExistingFile(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, "a.txt")
	if err := os.WriteFile(p, []byte("hi"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := fsroot.Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	res, err := Stat(cfg, "a.txt")
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if !res.Exists || !res.IsFile || res.IsDir || res.Size != 2 {
		t.Fatalf("got %+v", res)
	}
}

func TestStatMissingNeverErrors(t *testing.T) {
	root := t.TempDir()
	cfg, err := fsroot.Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	res, err := Stat(cfg, "no/such/thing")
	if err != nil {
		t.Fatalf("Stat returned error, want none: %v", err)
	}
	if res.Exists || res.IsFile || res.IsDir {
		t.Fatalf("got %+v, want all-false", res)
	}
}

func TestPathInfoMissingNeverFails(t *testing.T) {
	root := t.TempDir()
	cfg, err := fsroot.Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	info := PathInfo(cfg, "no/such/thing")
	if info.Exists {
		t.Fatalf("got %+v, want Exists=false", info)
	}
	if info.CanonicalPath != "" || info.RepoRoot != "" {
		t.Fatalf("expected omitted canonical/repo fields, got %+v", info)
	}
}

func TestPathInfoExistingOutsideGitRepo(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, "a.txt")
	if err := os.WriteFile(p, []byte("hi"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := fsroot.Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	info := PathInfo(cfg, "a.txt")
	if !info.Exists || !info.IsFile {
		t.Fatalf("got %+v", info)
	}
	if info.RepoRoot != "" {
		t.Fatalf("expected no repo root outside a git tree, got %q", info.RepoRoot)
	}
}

func TestPathInfoDiscoversRepoRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	p := filepath.Join(root, "a.txt")
	if err := os.WriteFile(p, []byte("hi"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := fsroot.Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	info := PathInfo(cfg, "a.txt")
	if info.RepoRoot != root {
		t.Fatalf("repoRoot = %q, want %q", info.RepoRoot, root)
	}
}
