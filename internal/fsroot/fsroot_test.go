package fsroot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/irvingoujAtDevolution/complement-mcp/internal/fserrors"
)

func write(t *testing.T, root, rel, content string) string {
	t.Helper()
	p := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestResolveRelativeUnderRoot(t *testing.T) {
	root := t.TempDir()
	write(t, root, "src/main.go", "package main")

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	ap, err := cfg.Resolve("src/main.go", ReadOnly)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ap.Mode != UnderServerRoot {
		t.Fatalf("mode = %v, want UnderServerRoot", ap.Mode)
	}
	if ap.Kind != KindFile {
		t.Fatalf("kind = %v, want KindFile", ap.Kind)
	}
	if got := ap.DisplayPath(); got != "src/main.go" {
		t.Fatalf("display = %q, want src/main.go", got)
	}
}

func TestResolveRelativeEscapeRejected(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "repo")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	write(t, parent, "outside/secret.txt", "nope")

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	_, err = cfg.Resolve("../outside", ReadOnly)
	if err == nil {
		t.Fatalf("expected error escaping root")
	}
	if code, _ := fserrors.CodeOf(err); code != fserrors.RootEscapesRepository {
		t.Fatalf("code = %v, want RootEscapesRepository", code)
	}
}

func TestResolveAbsoluteRequiresGitRepo(t *testing.T) {
	root := t.TempDir()
	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	noGit := t.TempDir()
	_, err = cfg.Resolve(noGit, ReadOnly)
	if err == nil {
		t.Fatalf("expected error for non-git absolute root")
	}
	if code, _ := fserrors.CodeOf(err); code != fserrors.NotInsideGitRepository {
		t.Fatalf("code = %v, want NotInsideGitRepository", code)
	}
}

func TestResolveAbsoluteUnderGitRepo(t *testing.T) {
	repo := t.TempDir()
	if err := os.Mkdir(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	write(t, repo, "sub/x.txt", "hi")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	sub := filepath.Join(repo, "sub")
	ap, err := cfg.Resolve(sub, ReadOnly)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ap.Mode != UnderGitRepo {
		t.Fatalf("mode = %v, want UnderGitRepo", ap.Mode)
	}
	if ap.RepoRoot != repo {
		t.Fatalf("repoRoot = %q, want %q", ap.RepoRoot, repo)
	}
}

func TestResolveMissingTargetForCreate(t *testing.T) {
	root := t.TempDir()
	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	ap, err := cfg.Resolve("new/file.txt", Write)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ap.Kind != KindMissing {
		t.Fatalf("kind = %v, want KindMissing", ap.Kind)
	}
}

func TestResolveEmptyInputIsRoot(t *testing.T) {
	root := t.TempDir()
	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	ap, err := cfg.Resolve("", ReadOnly)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ap.Resolved != cfg.Root() {
		t.Fatalf("resolved = %q, want %q", ap.Resolved, cfg.Root())
	}
	if ap.Kind != KindDirectory {
		t.Fatalf("kind = %v, want KindDirectory", ap.Kind)
	}
}
