package tools

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/emelia-io/emelia-mcp/internal/emelia"
)

func (h *Handler) registerAuthTools(s *mcpserver.MCPServer) {
	s.AddTool(
		mcp.NewTool("authenticate",
			mcp.WithDescription("Store your Emelia API key for this session. Every other tool requires this first (unless the key was supplied via EMELIA_API_KEY). The key is kept in memory only and is not validated locally."),
			mcp.WithString("api_key",
				mcp.Required(),
				mcp.Description("Your Emelia API key (Settings > API in the Emelia dashboard)"),
			),
		),
		h.authenticate,
	)

	s.AddTool(
		mcp.NewTool("logout",
			mcp.WithDescription("Forget the stored Emelia API key. Idempotent."),
		),
		h.logout,
	)

	s.AddTool(
		mcp.NewTool("get_account_info",
			mcp.WithDescription("Show the Emelia account the current API key belongs to."),
		),
		h.getAccountInfo,
	)
}

func (h *Handler) authenticate(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("api_key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return mcp.NewToolResultError("api_key must not be empty"), nil
	}

	h.client.Session().SetKey(key)
	h.log.Info("session.authenticated")
	return mcp.NewToolResultText("Authenticated. The API key is stored for this session only."), nil
}

func (h *Handler) logout(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.client.Session().ClearKey()
	h.log.Info("session.cleared")
	return mcp.NewToolResultText("Logged out. The API key has been forgotten."), nil
}

func (h *Handler) getAccountInfo(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireAuth("get_account_info"); res != nil {
		return res, nil
	}

	out, err := emelia.Dispatch[emelia.AccountResponse](ctx, h.client, http.MethodGet, "/users/me", nil)
	if err != nil {
		return failure("fetch account info"), nil
	}
	if out.User == nil {
		return apiRejection("fetch account info", out.Envelope), nil
	}

	u := out.User
	var b strings.Builder
	fmt.Fprintf(&b, "Account: %s\n", fullName(u.FirstName, u.LastName))
	fmt.Fprintf(&b, "Email: %s\n", orUnknown(u.Email))
	fmt.Fprintf(&b, "Plan: %s\n", orUnknown(u.Plan))
	if u.Credits > 0 {
		fmt.Fprintf(&b, "Credits: %d\n", u.Credits)
	}
	return mcp.NewToolResultText(b.String()), nil
}
