// ABOUTME: MCP server initialization and configuration for diary.
// ABOUTME: Holds one in-memory session journal and exposes it as tools for AI agents.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/diary/internal/journal"
	"github.com/2389-research/diary/internal/logger"
	"github.com/2389-research/diary/internal/storage"
)

// Server wraps the MCP server with a session journal. Tool handlers may run
// concurrently, so every journal access goes through mu.
type Server struct {
	mcp     *gomcp.Server
	mu      sync.RWMutex
	journal *journal.Journal
	remote  *storage.RemoteClient
	log     *slog.Logger
}

// ServerOption configures optional Server dependencies.
type ServerOption func(*Server)

// WithRemoteClient sets the remote journal used by import_remote_entries.
func WithRemoteClient(rc *storage.RemoteClient) ServerOption {
	return func(s *Server) {
		s.remote = rc
	}
}

// WithLogger sets the logger for tool activity.
func WithLogger(log *slog.Logger) ServerOption {
	return func(s *Server) {
		s.log = log
	}
}

// NewServer creates an MCP server over the given session journal.
func NewServer(j *journal.Journal, version string, opts ...ServerOption) (*Server, error) {
	if j == nil {
		return nil, fmt.Errorf("journal is required")
	}

	mcpServer := gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "diary",
			Version: version,
		},
		nil,
	)

	s := &Server{
		mcp:     mcpServer,
		journal: j,
		log:     logger.Discard(),
	}

	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.WithComponent(s.log, "mcp").With("session", j.ID.String())

	s.registerJournalTools()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Info("mcp server starting")
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}
