// Package mcp exposes annotation validation as MCP tools over the stdio
// transport, using the MCP SDK (github.com/modelcontextprotocol/go-sdk/mcp).
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/annocheck/internal/validate"
)

// Server is the MCP server for annotation validation tools.
type Server struct {
	mcp      *mcp.Server
	validate *validate.Service
	content  validate.ContentSource
	logger   *zap.Logger
}

// Config configures the MCP server.
type Config struct {
	// Name is the server implementation name (default: "annocheck")
	Name string

	// Version is the server version (default: "1.0.0")
	Version string

	// Logger for structured logging
	Logger *zap.Logger
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Name:    "annocheck",
		Version: "1.0.0",
		Logger:  zap.NewNop(),
	}
}

// NewServer creates a new MCP server with the given services. content is the
// publication source used by the fetch and cache tools; it is usually the
// same fetcher the validation service wraps.
func NewServer(cfg *Config, validateSvc *validate.Service, content validate.ContentSource) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Name == "" {
		cfg.Name = "annocheck"
	}
	if cfg.Version == "" {
		cfg.Version = "1.0.0"
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if validateSvc == nil {
		return nil, fmt.Errorf("validate service is required")
	}
	if content == nil {
		return nil, fmt.Errorf("content source is required")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    cfg.Name,
			Version: cfg.Version,
		},
		nil,
	)

	s := &Server{
		mcp:      mcpServer,
		validate: validateSvc,
		content:  content,
		logger:   cfg.Logger.Named("mcp"),
	}

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on the stdio transport.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting MCP server on stdio transport")
	transport := &mcp.StdioTransport{}
	if err := s.mcp.Run(ctx, transport); err != nil {
		return fmt.Errorf("server run failed: %w", err)
	}
	return nil
}
