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

func (h *Handler) registerBlacklistTools(s *mcpserver.MCPServer) {
	s.AddTool(
		mcp.NewTool("list_blacklists",
			mcp.WithDescription("List the blacklists (suppressed emails/domains) on the account."),
		),
		h.listBlacklists,
	)

	s.AddTool(
		mcp.NewTool("add_to_blacklist",
			mcp.WithDescription("Add one or more emails or domains to a blacklist."),
			mcp.WithString("blacklist_id", mcp.Required(), mcp.Description("Blacklist id")),
			mcp.WithString("values", mcp.Required(), mcp.Description("Comma-separated emails or domains to suppress")),
		),
		h.addToBlacklist,
	)

	s.AddTool(
		mcp.NewTool("remove_from_blacklist",
			mcp.WithDescription("Remove a value from a blacklist."),
			mcp.WithString("blacklist_id", mcp.Required(), mcp.Description("Blacklist id")),
			mcp.WithString("value", mcp.Required(), mcp.Description("The email or domain to remove")),
		),
		h.removeFromBlacklist,
	)
}

func (h *Handler) listBlacklists(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireAuth("list_blacklists"); res != nil {
		return res, nil
	}

	out, err := emelia.Dispatch[emelia.BlacklistsResponse](ctx, h.client, http.MethodGet, "/blacklists", nil)
	if err != nil {
		return failure("list blacklists"), nil
	}
	if len(out.Blacklists) == 0 {
		return mcp.NewToolResultText("No blacklists found."), nil
	}

	var b strings.Builder
	b.WriteString("Blacklists:\n\n")
	for i, bl := range out.Blacklists {
		fmt.Fprintf(&b, "%d. %s (%d entries)\n   id: %s\n", i+1, orUnknown(bl.Name), bl.Count, bl.ID)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (h *Handler) addToBlacklist(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireAuth("add_to_blacklist"); res != nil {
		return res, nil
	}
	id, err := req.RequireString("blacklist_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	raw, err := req.RequireString("values")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var values []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return mcp.NewToolResultError("values must contain at least one email or domain"), nil
	}

	body := map[string]any{"values": values}
	out, err := emelia.Dispatch[emelia.Envelope](ctx, h.client, http.MethodPost, "/blacklists/"+url.PathEscape(id), &emelia.RequestOptions{Body: body})
	if err != nil {
		return failure("update the blacklist"), nil
	}
	if !out.Success {
		return apiRejection("update the blacklist", *out), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%d value(s) added to blacklist %s.", len(values), id)), nil
}

func (h *Handler) removeFromBlacklist(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireAuth("remove_from_blacklist"); res != nil {
		return res, nil
	}
	id, err := req.RequireString("blacklist_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return mcp.NewToolResultError("value must not be empty"), nil
	}

	q := url.Values{}
	q.Set("value", value)

	out, err := emelia.Dispatch[emelia.Envelope](ctx, h.client, http.MethodDelete, "/blacklists/"+url.PathEscape(id), &emelia.RequestOptions{Query: q})
	if err != nil {
		return failure("update the blacklist"), nil
	}
	if !out.Success {
		return apiRejection("update the blacklist", *out), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s removed from blacklist %s.", value, id)), nil
}
