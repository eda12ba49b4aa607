package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/timerestrict/internal/services/timerestrict/admin"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverName = "timerestrict"

// Deps are the admin collaborators the tools call into.
type Deps struct {
	Console  *admin.Console
	Schedule admin.ScheduleEditor
	Bypass   admin.BypassEditor
	Checker  admin.Checker
}

func (d Deps) validate() error {
	switch {
	case d.Console == nil:
		return fmt.Errorf("admin console is required")
	case d.Schedule == nil:
		return fmt.Errorf("schedule is required")
	case d.Bypass == nil:
		return fmt.Errorf("bypass list is required")
	case d.Checker == nil:
		return fmt.Errorf("checker is required")
	}
	return nil
}

// Server serves the admin tools.
type Server struct {
	mcpServer *mcp.Server
}

// NewServer registers every tool against deps.
func NewServer(deps Deps, version string) (*Server, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil)
	mcp.AddTool(server, StatusTool(), StatusHandler(deps))
	mcp.AddTool(server, CheckTool(), CheckHandler(deps))
	mcp.AddTool(server, SetTool(), SetHandler(deps))
	mcp.AddTool(server, ClearTool(), ClearHandler(deps))
	mcp.AddTool(server, BypassAddTool(), BypassAddHandler(deps))
	mcp.AddTool(server, BypassRemoveTool(), BypassRemoveHandler(deps))
	mcp.AddTool(server, BypassListTool(), BypassListHandler(deps))
	return &Server{mcpServer: server}, nil
}

// Serve runs the server on stdio until the client disconnects or ctx ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
