package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestSearchLiteralSingleHit(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "hello world\ngoodbye world\n")

	res, err := Search(context.Background(), root, "goodbye", Options{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Hits) != 1 {
		t.Fatalf("hits = %+v, want 1", res.Hits)
	}
	h := res.Hits[0]
	if h.Line != 2 || h.Column != 1 || h.Path != "a.txt" {
		t.Fatalf("hit = %+v", h)
	}
}

func TestSearchMultipleHitsPerLine(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "foo foo foo\n")

	res, err := Search(context.Background(), root, "foo", Options{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Hits) != 3 {
		t.Fatalf("hits = %+v, want 3", res.Hits)
	}
	if res.Hits[0].Column != 1 || res.Hits[1].Column != 5 || res.Hits[2].Column != 9 {
		t.Fatalf("columns = %d,%d,%d", res.Hits[0].Column, res.Hits[1].Column, res.Hits[2].Column)
	}
}

func TestSearchRegexLineBounded(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "const DEFAULT_MAX_LINES: usize = 200\nother line\n")

	res, err := Search(context.Background(), root, `const DEFAULT_MAX_[A-Z_]+: \w+ = \d+`, Options{Mode: Regex})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Hits) != 1 || res.Hits[0].Line != 1 {
		t.Fatalf("hits = %+v", res.Hits)
	}
}

func TestSearchRegexContainingNewlineMatchesNothing(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "one\ntwo\n")

	res, err := Search(context.Background(), root, "one\\ntwo", Options{Mode: Regex})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Hits) != 0 {
		t.Fatalf("hits = %+v, want none (line-bounded regex)", res.Hits)
	}
}

func TestSearchContextLines(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "one\ntwo\nMATCH\nfour\nfive\n")

	res, err := Search(context.Background(), root, "MATCH", Options{ContextLines: 1})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Hits) != 1 {
		t.Fatalf("hits = %+v", res.Hits)
	}
	h := res.Hits[0]
	if len(h.ContextBefore) != 1 || h.ContextBefore[0] != "two" {
		t.Fatalf("context before = %v", h.ContextBefore)
	}
	if len(h.ContextAfter) != 1 || h.ContextAfter[0] != "four" {
		t.Fatalf("context after = %v", h.ContextAfter)
	}
}

func TestSearchSkipsBinaryFiles(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "bin.dat"), []byte{0xff, 0xfe, 0x00, 'f', 'o', 'o'}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	writeFile(t, root, "ok.txt", "foo\n")

	res, err := Search(context.Background(), root, "foo", Options{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Hits) != 1 || res.Hits[0].Path != "ok.txt" {
		t.Fatalf("hits = %+v, want only ok.txt", res.Hits)
	}
}

func TestSearchSkipAndPaging(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "x\nx\nx\nx\n")

	res, err := Search(context.Background(), root, "x", Options{Skip: 1, MaxResults: 2})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Hits) != 2 || !res.HasMore {
		t.Fatalf("got %+v", res)
	}
	if res.Hits[0].Line != 2 || res.Hits[1].Line != 3 {
		t.Fatalf("hits = %+v", res.Hits)
	}
}
