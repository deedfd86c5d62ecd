package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/emelia-io/emelia-mcp/internal/emelia"
)

func (h *Handler) registerStatsTools(s *mcpserver.MCPServer) {
	s.AddTool(
		mcp.NewTool("get_global_stats",
			mcp.WithDescription("Show account-wide sending statistics over a date range."),
			mcp.WithString("start_date", mcp.Description("Range start, YYYY-MM-DD (default 30 days ago)")),
			mcp.WithString("end_date", mcp.Description("Range end, YYYY-MM-DD (default today)")),
		),
		h.getGlobalStats,
	)
}

func (h *Handler) getGlobalStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireAuth("get_global_stats"); res != nil {
		return res, nil
	}

	const day = "2006-01-02"
	start := strings.TrimSpace(req.GetString("start_date", ""))
	end := strings.TrimSpace(req.GetString("end_date", ""))
	if start == "" {
		start = time.Now().AddDate(0, 0, -30).Format(day)
	}
	if end == "" {
		end = time.Now().Format(day)
	}
	if _, err := time.Parse(day, start); err != nil {
		return mcp.NewToolResultError("start_date must be YYYY-MM-DD"), nil
	}
	if _, err := time.Parse(day, end); err != nil {
		return mcp.NewToolResultError("end_date must be YYYY-MM-DD"), nil
	}

	q := url.Values{}
	q.Set("start", start)
	q.Set("end", end)

	out, err := emelia.Dispatch[emelia.GlobalStatsResponse](ctx, h.client, http.MethodGet, "/stats", &emelia.RequestOptions{Query: q})
	if err != nil {
		return failure("fetch global stats"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Account stats from %s to %s:\n\n", start, end)
	writeStats(&b, out.Stats)
	return mcp.NewToolResultText(b.String()), nil
}
