package rpcserver

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/irvingoujAtDevolution/complement-mcp/internal/fserrors"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/fstool"
)

// Server reads JSON-RPC requests from stdin and dispatches tools/call
// onto a fstool.Registry, one line in, one line out.
type Server struct {
	stdin    io.Reader
	stdout   io.Writer
	scanner  *bufio.Scanner
	registry *fstool.Registry
	logger   *log.Logger
}

// New builds a Server around registry, reading from stdin and writing
// to stdout.
func New(registry *fstool.Registry) *Server {
	return &Server{
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		registry: registry,
		logger:   log.New(os.Stderr, "rpcserver: ", log.LstdFlags),
	}
}

// SetStdin overrides the input stream, for tests.
func (s *Server) SetStdin(r io.Reader) { s.stdin = r; s.scanner = nil }

// SetStdout overrides the output stream, for tests.
func (s *Server) SetStdout(w io.Writer) { s.stdout = w }

// Serve runs the read-dispatch-write loop until stdin is exhausted, ctx
// is cancelled, or a transport-level error occurs.
func (s *Server) Serve(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		msg, err := s.readMessage()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		response := s.handleMessage(ctx, msg)
		if response == nil {
			continue
		}
		if err := s.writeMessage(response); err != nil {
			s.logger.Printf("write response: %v", err)
		}
	}
}

func (s *Server) handleMessage(ctx context.Context, msg *Message) *Message {
	switch {
	case msg.IsRequest():
		return s.handleRequest(ctx, msg)
	case msg.IsNotification():
		s.logger.Printf("notification %q ignored", msg.Method)
		return nil
	default:
		return newErrorMessage(msg.Id, InvalidRequest, "message is neither a request nor a notification")
	}
}

func (s *Server) handleRequest(ctx context.Context, msg *Message) *Message {
	switch msg.Method {
	case "initialize":
		return newResultMessage(msg.Id, map[string]any{
			"protocolVersion": "2024-11-05",
			"serverInfo":      map[string]string{"name": "complement-mcp", "version": "0.1.0"},
		})
	case "tools/list":
		return newResultMessage(msg.Id, map[string]any{"tools": s.registry.Specs()})
	case "tools/call":
		return s.handleToolsCall(ctx, msg)
	default:
		return newErrorMessage(msg.Id, MethodNotFound, fmt.Sprintf("method not found: %s", msg.Method))
	}
}

type toolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

func (s *Server) handleToolsCall(ctx context.Context, msg *Message) *Message {
	raw, err := json.Marshal(msg.Params)
	if err != nil {
		return newErrorMessage(msg.Id, InvalidParams, "params must be a JSON object")
	}
	var params toolCallParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return newErrorMessage(msg.Id, InvalidParams, fmt.Sprintf("invalid tools/call params: %v", err))
	}
	if params.Name == "" {
		return newErrorMessage(msg.Id, InvalidParams, "tools/call requires a tool name")
	}
	if params.Arguments == nil {
		params.Arguments = json.RawMessage(`{}`)
	}

	callID := uuid.New().String()
	s.logger.Printf("call %s tool=%s", callID, params.Name)

	out, err := s.registry.Call(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Printf("call %s tool=%s failed: %v", callID, params.Name, err)
		return newErrorMessage(msg.Id, rpcCodeFor(err), err.Error())
	}

	var result any
	if err := json.Unmarshal(out, &result); err != nil {
		return newErrorMessage(msg.Id, InternalError, fmt.Sprintf("tool %s returned invalid JSON: %v", params.Name, err))
	}
	return newResultMessage(msg.Id, result)
}

// rpcCodeFor maps the fs.* error taxonomy onto JSON-RPC error codes:
// InvalidArgument and InvalidRegex become InvalidParams, every other
// taxonomy code collapses to ToolError, and an error carrying no
// taxonomy code (an unknown tool, undecodable arguments) becomes
// InternalError.
func rpcCodeFor(err error) int {
	code, ok := fserrors.CodeOf(err)
	if !ok {
		return InternalError
	}
	switch code {
	case fserrors.InvalidArgument, fserrors.InvalidRegex:
		return InvalidParams
	default:
		return ToolError
	}
}
