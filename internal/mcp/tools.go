package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog/log"

	"example.com/userapi/internal/usecase"
)

func listUsersTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_users",
		Description: "List every user record with the total count",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{},
		},
	}
}

func createUserTool() mcp.Tool {
	return mcp.Tool{
		Name:        "create_user",
		Description: "Create a user record; the id is assigned by the store",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"name": map[string]any{
					"type":        "string",
					"description": "Full name, at most 100 characters, not digits only",
				},
				"email": map[string]any{
					"type":        "string",
					"description": "Email address",
				},
				"age": map[string]any{
					"type":        "integer",
					"description": "Age in years",
					"minimum":     1,
					"maximum":     120,
				},
				"city": map[string]any{
					"type":        "string",
					"description": "Optional city, at most 50 characters",
				},
			},
			Required: []string{"name", "email", "age"},
		},
	}
}

func idSchema(desc string) mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]any{
			"id": map[string]any{
				"type":        "integer",
				"description": desc,
			},
		},
		Required: []string{"id"},
	}
}

func getUserTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_user",
		Description: "Fetch one user record by id",
		InputSchema: idSchema("Id of the user to fetch"),
	}
}

func deleteUserTool() mcp.Tool {
	return mcp.Tool{
		Name:        "delete_user",
		Description: "Delete one user record by id and return it",
		InputSchema: idSchema("Id of the user to delete"),
	}
}

func apiInfoTool() mcp.Tool {
	return mcp.Tool{
		Name:        "api_info",
		Description: "Describe the API: name, version, description and how many tools it serves",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{},
		},
	}
}

func (s *Server) handleAPIInfo(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(formatJSON(s.info.Info(s.tools))), nil
}

func (s *Server) handleListUsers(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page, err := s.users.List(ctx)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(formatJSON(page)), nil
}

func (s *Server) handleCreateUser(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]any)
	user, err := s.users.CreateFromPayload(ctx, args)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(formatJSON(user)), nil
}

func (s *Server) handleGetUser(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := idArg(request)
	if err != nil {
		return toolError(err), nil
	}
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(formatJSON(user)), nil
}

func (s *Server) handleDeleteUser(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := idArg(request)
	if err != nil {
		return toolError(err), nil
	}
	user, err := s.users.Delete(ctx, id)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(formatJSON(user)), nil
}

// idArg accepts the id as a JSON number or a string.
func idArg(request mcp.CallToolRequest) (int64, error) {
	args, _ := request.Params.Arguments.(map[string]any)
	var raw string
	switch v := args["id"].(type) {
	case float64:
		raw = strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		raw = v.String()
	case string:
		raw = v
	case nil:
	default:
		raw = fmt.Sprint(v)
	}
	return usecase.ParseUserID(raw)
}

func toolError(err error) *mcp.CallToolResult {
	var (
		verr *usecase.ValidationError
		nf   *usecase.NotFoundError
		bad  *usecase.BadRequestError
	)
	switch {
	case errors.As(err, &verr):
		return mcp.NewToolResultError(formatJSON(map[string]any{
			"message": "invalid data",
			"errors":  verr.Fields,
		}))
	case errors.As(err, &bad):
		return mcp.NewToolResultError(bad.Error())
	case errors.As(err, &nf):
		return mcp.NewToolResultError(nf.Error())
	default:
		log.Error().Err(err).Msg("mcp tool failed")
		return mcp.NewToolResultError("internal error")
	}
}

func formatJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(b)
}
