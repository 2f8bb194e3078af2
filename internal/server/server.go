package server

import (
	"context"

	"github.com/go-kit/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gcloud-datastore/implicitenv/internal/environ"
	"github.com/gcloud-datastore/implicitenv/internal/platform"
	"github.com/gcloud-datastore/implicitenv/internal/runtime"
	"github.com/gcloud-datastore/implicitenv/internal/tools"
)

// Version, Commit, Built are set by ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Built   = "unknown"
)

// Server wraps the MCP server with the implied environment.
type Server struct {
	server *mcp.Server
	client platform.Client
	env    *environ.Environment
	rtInfo runtime.Info
	logger log.Logger
}

// New creates a new implicitenv MCP server with all tools registered.
func New(client platform.Client, env *environ.Environment, rtInfo runtime.Info, logger log.Logger) *Server {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	srv := mcp.NewServer(
		&mcp.Implementation{Name: "implicitenv", Version: Version},
		&mcp.ServerOptions{Instructions: BuildInstructions(rtInfo)},
	)

	s := &Server{
		server: srv,
		client: client,
		env:    env,
		rtInfo: rtInfo,
		logger: logger,
	}

	s.registerTools()
	s.registerResources()
	return s
}

func (s *Server) registerTools() {
	tools.RegisterEnvironment(s.server, s.client, s.env, s.logger)
}

// Run starts the MCP server on stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// MCPServer returns the underlying MCP server (for testing).
func (s *Server) MCPServer() *mcp.Server {
	return s.server
}
