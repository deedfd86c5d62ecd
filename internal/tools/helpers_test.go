package tools

import (
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/emelia-io/emelia-mcp/internal/emelia"
)

func newTestHandler(t *testing.T, baseURL string, authed bool) *Handler {
	t.Helper()
	sess := emelia.NewSession()
	if authed {
		sess.SetKey("test-key")
	}
	client := emelia.NewClient(baseURL, 5*time.Second, sess, nil)
	return NewHandler(client, nil)
}

func callReq(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatalf("result has no content: %+v", res)
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return tc.Text
}
