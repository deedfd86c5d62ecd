// Package tools registers the MCP tools and renders API responses as
// flat text. Every handler is thin glue: validate input, build URL and
// optional body, one dispatcher call, one text block. No handler calls
// another handler or paginates on its own.
package tools

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/emelia-io/emelia-mcp/internal/emelia"
)

type Handler struct {
	client *emelia.Client
	log    *zap.Logger
}

func NewHandler(client *emelia.Client, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{client: client, log: log}
}

// Register adds every tool to the MCP server.
func Register(s *mcpserver.MCPServer, h *Handler) {
	h.registerAuthTools(s)
	h.registerCampaignTools(s)
	h.registerAdvancedTools(s)
	h.registerContactTools(s)
	h.registerBlacklistTools(s)
	h.registerProviderTools(s)
	h.registerStatsTools(s)
}

// requireAuth duplicates the dispatcher's credential check so the user
// gets a tool-specific message before any network attempt. Returns nil
// when a key is set.
func (h *Handler) requireAuth(tool string) *mcp.CallToolResult {
	if h.client.Session().Authenticated() {
		return nil
	}
	return mcp.NewToolResultError(
		"Not authenticated. Run the authenticate tool with your Emelia API key before using " + tool + ".")
}

// failure renders the uniform "request failed" outcome. The error kind is
// already in the log; the user only needs to know the call did not land.
func failure(what string) *mcp.CallToolResult {
	return mcp.NewToolResultError("Could not " + what + ". The Emelia API request failed; check the server log for details.")
}

// apiRejection renders a response the API itself flagged as failed.
func apiRejection(what string, env emelia.Envelope) *mcp.CallToolResult {
	msg := strings.TrimSpace(env.Error)
	if msg == "" {
		msg = "the API did not confirm the operation"
	}
	return mcp.NewToolResultError(fmt.Sprintf("Could not %s: %s", what, msg))
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}

func clampPage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 25
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage
}

func fullName(first, last string) string {
	name := strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
	if name == "" {
		return "unknown"
	}
	return name
}

func percent(part, total int) string {
	if total <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", float64(part)*100/float64(total))
}

func writeStats(b *strings.Builder, st emelia.CampaignStats) {
	fmt.Fprintf(b, "Contacts: %d\n", st.Total)
	fmt.Fprintf(b, "Sent: %d | Delivered: %d\n", st.Sent, st.Delivered)
	fmt.Fprintf(b, "Opens: %d (%s) | Clicks: %d (%s)\n",
		st.Opens, percent(st.Opens, st.Delivered),
		st.Clicks, percent(st.Clicks, st.Delivered))
	fmt.Fprintf(b, "Replies: %d (%s) | Bounces: %d | Unsubscribes: %d\n",
		st.Replies, percent(st.Replies, st.Delivered),
		st.Bounces, st.Unsubscribes)
}
