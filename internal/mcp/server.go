package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Fuabioo/dehash/internal/core"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "dehash"
	serverVersion = "0.1.0"
)

// Server wraps the MCP server with dehash-specific state.
type Server struct {
	mcp    *server.MCPServer
	cfg    *core.Config
	logger *slog.Logger
}

// NewServer creates and configures the MCP server with all dehash tools registered.
// A nil logger discards all log output.
func NewServer(logger *slog.Logger) (*Server, error) {
	configDir, err := core.ConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	cfg, err := core.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
	}

	s.mcp = server.NewMCPServer(serverName, serverVersion)
	s.registerTools()

	return s, nil
}

func (s *Server) registerTools() {
	// dehash_process
	s.mcp.AddTool(mcp.NewTool("dehash_process",
		mcp.WithDescription("Strips content hashes from an exported archive (or every archive in a directory), rewrites links, and writes the cleaned copy next to the source"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute path to a zip file or a directory of zip files")),
		mcp.WithString("prefix",
			mcp.Description("Output name prefix (default: \"new_\")")),
		mcp.WithBoolean("force",
			mcp.Description("Overwrite existing output archives (default: false)")),
	), s.handleProcess)

	// dehash_scan
	s.mcp.AddTool(mcp.NewTool("dehash_scan",
		mcp.WithDescription("Lists the renames dehash_process would perform on an archive without writing anything"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute path to the zip file")),
	), s.handleScan)
}

// Serve starts the MCP server on stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	stdioServer := server.NewStdioServer(s.mcp)
	if err := stdioServer.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		return fmt.Errorf("failed to serve MCP: %w", err)
	}
	return nil
}

// Serve creates a new MCP server and starts serving on stdio.
func Serve(logger *slog.Logger) error {
	srv, err := NewServer(logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if err := srv.Serve(context.Background()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
