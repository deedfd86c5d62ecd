// Package server assembles the MCP server: one Emelia API client shared
// by every tool, served over stdio.
package server

import (
	"fmt"
	"strings"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/emelia-io/emelia-mcp/internal/emelia"
	"github.com/emelia-io/emelia-mcp/internal/tools"
)

const (
	Name    = "emelia-mcp"
	Version = "1.0.0"
)

// New builds the MCP server with every Emelia tool registered.
func New(client *emelia.Client, log *zap.Logger) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer(
		Name,
		Version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithInstructions(buildInstructions(client)),
	)

	h := tools.NewHandler(client, log)
	tools.Register(s, h)
	return s
}

// Run serves MCP over stdio until the host closes stdin.
func Run(s *mcpserver.MCPServer) error {
	return mcpserver.ServeStdio(s)
}

func buildInstructions(client *emelia.Client) string {
	var sb strings.Builder
	sb.WriteString("Emelia cold-outreach tools (campaigns, contacts, blacklists, providers).\n\n")
	if client.Session().Authenticated() {
		sb.WriteString("An API key is already configured for this session.\n")
	} else {
		sb.WriteString("Call the authenticate tool with your Emelia API key before anything else.\n")
	}
	sb.WriteString(fmt.Sprintf("All requests go to %s; this server stores nothing locally.\n", client.BaseURL()))
	return sb.String()
}
