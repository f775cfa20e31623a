package walker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/irvingoujAtDevolution/complement-mcp/internal/ignorefilter"
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

func TestWalkRecursiveLexicographicOrder(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "b.txt")
	touch(t, root, "a.txt")
	touch(t, root, "sub/c.txt")

	res, err := Walk(context.Background(), root, Options{Recursive: true, MaxResults: 100})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	want := []string{"a.txt", "b.txt", "sub/c.txt"}
	if len(res.Entries) != len(want) {
		t.Fatalf("entries = %+v, want %v", res.Entries, want)
	}
	for i, w := range want {
		if res.Entries[i].Path != w {
			t.Fatalf("entries[%d] = %q, want %q", i, res.Entries[i].Path, w)
		}
	}
	if res.HasMore {
		t.Fatalf("did not expect has_more")
	}
}

func TestWalkNonRecursiveOneLevel(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "top.txt")
	touch(t, root, "sub/nested.txt")

	res, err := Walk(context.Background(), root, Options{Recursive: false, MaxResults: 100})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(res.Entries) != 1 || res.Entries[0].Path != "top.txt" {
		t.Fatalf("entries = %+v, want just top.txt", res.Entries)
	}
}

func TestWalkPagingDisjoint(t *testing.T) {
	root := t.TempDir()
	names := []string{"a", "b", "c", "d", "e"}
	for _, n := range names {
		touch(t, root, n+".txt")
	}

	var all []string
	for skip := 0; ; skip += 2 {
		res, err := Walk(context.Background(), root, Options{Recursive: true, Skip: skip, MaxResults: 2})
		if err != nil {
			t.Fatalf("Walk: %v", err)
		}
		for _, e := range res.Entries {
			all = append(all, e.Path)
		}
		if !res.HasMore {
			break
		}
	}
	if len(all) != len(names) {
		t.Fatalf("paged union = %v, want all %d entries", all, len(names))
	}
	for i, n := range names {
		if all[i] != n+".txt" {
			t.Fatalf("paged[%d] = %q, want %q", i, all[i], n+".txt")
		}
	}
}

func TestWalkIncludeDirs(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "sub/file.txt")

	res, err := Walk(context.Background(), root, Options{Recursive: true, IncludeDirs: true, MaxResults: 100})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	var sawDir bool
	for _, e := range res.Entries {
		if e.Path == "sub" && e.IsDir {
			sawDir = true
		}
	}
	if !sawDir {
		t.Fatalf("expected sub directory entry, got %+v", res.Entries)
	}
}

func TestWalkHonorsFilterExclude(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "keep.go")
	touch(t, root, "drop.log")

	f := ignorefilter.New(nil, []string{"**/*.log"}, false)
	res, err := Walk(context.Background(), root, Options{Recursive: true, MaxResults: 100, Filter: f})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(res.Entries) != 1 || res.Entries[0].Path != "keep.go" {
		t.Fatalf("entries = %+v, want just keep.go", res.Entries)
	}
}

func TestWalkAlwaysSkipsDotGit(t *testing.T) {
	root := t.TempDir()
	touch(t, root, ".git/HEAD")
	touch(t, root, "main.go")

	res, err := Walk(context.Background(), root, Options{Recursive: true, MaxResults: 100})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(res.Entries) != 1 || res.Entries[0].Path != "main.go" {
		t.Fatalf("entries = %+v, want just main.go", res.Entries)
	}
}
