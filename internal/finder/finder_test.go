package finder

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, root, rel string) {
	t.Helper()
	p := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestFindByName(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "src/widget_test.go")
	touch(t, root, "src/widget.go")
	touch(t, root, "src/other.go")

	res, err := Find(context.Background(), root, "widget", Options{Recursive: true, MatchMode: MatchName, MaxResults: 100})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(res.Entries) != 2 {
		t.Fatalf("entries = %+v, want 2", res.Entries)
	}
}

func TestFindByPath(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "pkg/widget/file.go")
	touch(t, root, "pkg/other/file.go")

	res, err := Find(context.Background(), root, "widget", Options{Recursive: true, MatchMode: MatchPath, MaxResults: 100})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(res.Entries) != 1 || res.Entries[0].Path != "pkg/widget/file.go" {
		t.Fatalf("entries = %+v", res.Entries)
	}
}

func TestFindCaseInsensitiveByDefault(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "README.md")

	res, err := Find(context.Background(), root, "readme", Options{Recursive: true, MatchMode: MatchName, MaxResults: 100})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(res.Entries) != 1 {
		t.Fatalf("entries = %+v, want README.md to match case-insensitively", res.Entries)
	}
}

func TestFindCaseSensitive(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "README.md")

	res, err := Find(context.Background(), root, "readme", Options{Recursive: true, MatchMode: MatchName, CaseSensitive: true, MaxResults: 100})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(res.Entries) != 0 {
		t.Fatalf("entries = %+v, want no case-sensitive match", res.Entries)
	}
}

func TestFindPaging(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "match_a.go")
	touch(t, root, "match_b.go")
	touch(t, root, "match_c.go")
	touch(t, root, "skip.go")

	res, err := Find(context.Background(), root, "match", Options{Recursive: true, MatchMode: MatchName, Skip: 1, MaxResults: 1})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(res.Entries) != 1 || res.Entries[0].Path != "match_b.go" || !res.HasMore {
		t.Fatalf("got %+v", res)
	}
}
