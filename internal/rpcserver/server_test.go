package rpcserver

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/irvingoujAtDevolution/complement-mcp/internal/fsroot"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/fstool"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	root := t.TempDir()
	cfg, err := fsroot.Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	registry := fstool.NewDefaultRegistry(cfg, true)
	return New(registry), root
}

func roundTrip(t *testing.T, s *Server, requests []string) []Message {
	t.Helper()
	in := strings.NewReader(strings.Join(requests, "\n") + "\n")
	var out bytes.Buffer
	s.SetStdin(in)
	s.SetStdout(&out)

	if err := s.Serve(context.Background()); err != nil {
		t.Fatalf("Serve: %v", err)
	}

	var responses []Message
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var m Message
		if err := json.Unmarshal(scanner.Bytes(), &m); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		responses = append(responses, m)
	}
	return responses
}

func TestToolsListReturnsRegisteredTools(t *testing.T) {
	s, _ := newTestServer(t)
	responses := roundTrip(t, s, []string{`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`})
	if len(responses) != 1 {
		t.Fatalf("got %d responses, want 1", len(responses))
	}
	if responses[0].Error != nil {
		t.Fatalf("unexpected error: %+v", responses[0].Error)
	}
}

func TestToolsCallDispatchesToRegistry(t *testing.T) {
	s, root := newTestServer(t)
	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	req := `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"fs.read_file","arguments":{"path":"a.txt"}}}`
	responses := roundTrip(t, s, []string{req})
	if len(responses) != 1 {
		t.Fatalf("got %d responses, want 1", len(responses))
	}
	if responses[0].Error != nil {
		t.Fatalf("unexpected error: %+v", responses[0].Error)
	}
	result, ok := responses[0].Result.(map[string]any)
	if !ok {
		t.Fatalf("result = %#v, want object", responses[0].Result)
	}
	if result["content"] != "hello" {
		t.Fatalf("content = %v, want hello", result["content"])
	}
}

func TestToolsCallUnknownToolReturnsError(t *testing.T) {
	s, _ := newTestServer(t)
	req := `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"fs.nonexistent","arguments":{}}}`
	responses := roundTrip(t, s, []string{req})
	if len(responses) != 1 {
		t.Fatalf("got %d responses, want 1", len(responses))
	}
	if responses[0].Error == nil {
		t.Fatalf("expected an error response")
	}
}

func TestUnknownMethodReturnsMethodNotFound(t *testing.T) {
	s, _ := newTestServer(t)
	responses := roundTrip(t, s, []string{`{"jsonrpc":"2.0","id":4,"method":"bogus/method"}`})
	if len(responses) != 1 {
		t.Fatalf("got %d responses, want 1", len(responses))
	}
	if responses[0].Error == nil || responses[0].Error.Code != MethodNotFound {
		t.Fatalf("error = %+v, want MethodNotFound", responses[0].Error)
	}
}

func TestNotificationProducesNoResponse(t *testing.T) {
	s, _ := newTestServer(t)
	responses := roundTrip(t, s, []string{`{"jsonrpc":"2.0","method":"notifications/initialized"}`})
	if len(responses) != 0 {
		t.Fatalf("got %d responses, want 0 for a notification", len(responses))
	}
}
