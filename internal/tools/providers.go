package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/emelia-io/emelia-mcp/internal/emelia"
)

func (h *Handler) registerProviderTools(s *mcpserver.MCPServer) {
	s.AddTool(
		mcp.NewTool("list_providers",
			mcp.WithDescription("List the sending mailboxes (email providers) connected to the account, with their warmup state."),
		),
		h.listProviders,
	)

	s.AddTool(
		mcp.NewTool("get_provider",
			mcp.WithDescription("Show one sending mailbox."),
			mcp.WithString("provider_id", mcp.Required(), mcp.Description("Provider id")),
		),
		h.getProvider,
	)
}

func (h *Handler) listProviders(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireAuth("list_providers"); res != nil {
		return res, nil
	}

	out, err := emelia.Dispatch[emelia.ProvidersResponse](ctx, h.client, http.MethodGet, "/providers", nil)
	if err != nil {
		return failure("list providers"), nil
	}
	if len(out.Providers) == 0 {
		return mcp.NewToolResultText("No providers found. Connect a sending mailbox in the Emelia dashboard first."), nil
	}

	var b strings.Builder
	b.WriteString("Sending providers:\n\n")
	for i, p := range out.Providers {
		warmup := "off"
		if p.WarmupOn {
			warmup = "on"
		}
		fmt.Fprintf(&b, "%d. %s [%s]\n   type: %s | daily limit: %d | warmup: %s | id: %s\n",
			i+1, orUnknown(p.Email), orUnknown(p.Status), orUnknown(p.Kind), p.DailyLimit, warmup, p.ID)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (h *Handler) getProvider(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireAuth("get_provider"); res != nil {
		return res, nil
	}
	id, err := req.RequireString("provider_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := emelia.Dispatch[emelia.ProviderResponse](ctx, h.client, http.MethodGet, "/providers/"+url.PathEscape(id), nil)
	if err != nil {
		return failure("fetch the provider"), nil
	}
	if out.Provider == nil {
		return apiRejection("fetch the provider", out.Envelope), nil
	}

	p := out.Provider
	warmup := "off"
	if p.WarmupOn {
		warmup = "on"
	}
	return mcp.NewToolResultText(fmt.Sprintf("Provider: %s\nType: %s\nStatus: %s\nDaily limit: %d\nWarmup: %s\nId: %s\n",
		orUnknown(p.Email), orUnknown(p.Kind), orUnknown(p.Status), p.DailyLimit, warmup, p.ID)), nil
}
