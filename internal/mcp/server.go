// Package mcp exposes the user operations as Model Context Protocol tools.
package mcp

import (
	"context"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"example.com/userapi/internal/domain"
	"example.com/userapi/internal/usecase"
)

const ServerName = "userapi"

type UserService interface {
	List(ctx context.Context) (usecase.UserPage, error)
	CreateFromPayload(ctx context.Context, payload map[string]any) (domain.User, error)
	Get(ctx context.Context, id int64) (domain.User, error)
	Delete(ctx context.Context, id int64) (domain.User, error)
}

type InfoService interface {
	Info(totalEndpoints int) domain.APIInfo
}

// Server wraps the MCP server with the services it dispatches to.
type Server struct {
	mcp   *server.MCPServer
	users UserService
	info  InfoService
	tools int
}

func NewServer(users UserService, info InfoService, version string) *Server {
	s := &Server{
		mcp:   server.NewMCPServer(ServerName, version, server.WithToolCapabilities(false)),
		users: users,
		info:  info,
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.addTool(listUsersTool(), s.handleListUsers)
	s.addTool(createUserTool(), s.handleCreateUser)
	s.addTool(getUserTool(), s.handleGetUser)
	s.addTool(deleteUserTool(), s.handleDeleteUser)
	s.addTool(apiInfoTool(), s.handleAPIInfo)
}

func (s *Server) addTool(tool mcp.Tool, handler server.ToolHandlerFunc) {
	s.mcp.AddTool(tool, handler)
	s.tools++
}

// Serve speaks MCP over the given streams until ctx is done or in closes.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}
