package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	healthURI = "health://status"
	infoURI   = "info://server"
)

const healthText = "✅ Baseball MCP Server is running"

func addResources(server *mcp.Server, cfg ServerConfig, registry []toolInfo) {
	server.AddResource(&mcp.Resource{
		URI:         healthURI,
		Name:        "health",
		Description: "Server health check",
		MIMEType:    "text/plain",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{URI: healthURI, MIMEType: "text/plain", Text: healthText}},
		}, nil
	})

	info := serverInfo(cfg, registry)
	server.AddResource(&mcp.Resource{
		URI:         infoURI,
		Name:        "info",
		Description: "Server information and capabilities",
		MIMEType:    "text/markdown",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{URI: infoURI, MIMEType: "text/markdown", Text: info}},
		}, nil
	})
}

func serverInfo(cfg ServerConfig, registry []toolInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Baseball MCP Server %s\n\n", serverVersion)
	b.WriteString("## Available Tools:\n")
	for _, t := range registry {
		fmt.Fprintf(&b, "- **%s**: %s\n", t.Name, t.Description)
	}
	b.WriteString(`
## Data Sources:
- MLB Stats API (player register)
- FanGraphs (season leaderboards)
- Baseball-Reference (date range totals)
- Baseball Savant (Statcast)
`)
	fmt.Fprintf(&b, "\n**Source mode**: %s\n", cfg.SourceName)
	fmt.Fprintf(&b, "**Chart mode**: %s\n", cfg.ChartMode)
	return b.String()
}
