package rpcserver

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// MaxMessageSize bounds a single incoming JSON-RPC line read from
// stdin; responses written to stdout are not size-limited.
const MaxMessageSize = 4 * 1024 * 1024

func (s *Server) readMessage() (*Message, error) {
	if s.scanner == nil {
		s.scanner = bufio.NewScanner(s.stdin)
		s.scanner.Buffer(make([]byte, 64*1024), MaxMessageSize)
	}

	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return nil, fmt.Errorf("rpcserver: read stdin: %w", err)
		}
		return nil, io.EOF
	}

	var msg Message
	if err := json.Unmarshal(s.scanner.Bytes(), &msg); err != nil {
		return nil, fmt.Errorf("rpcserver: decode message: %w", err)
	}
	return &msg, nil
}

func (s *Server) writeMessage(msg *Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("rpcserver: encode message: %w", err)
	}
	if _, err := fmt.Fprintf(s.stdout, "%s\n", data); err != nil {
		return fmt.Errorf("rpcserver: write stdout: %w", err)
	}
	return nil
}
