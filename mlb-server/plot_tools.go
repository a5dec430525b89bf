package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerPlotTools(server *mcp.Server, registry *[]toolInfo, cfg ServerConfig) {
	addTool(server, registry, &mcp.Tool{
		Name:        "create_spray_chart",
		Description: "Spray chart of a batter's hits for a season from Statcast data",
	}, handle(cfg, "creating spray chart", buildSprayChart))

	addTool(server, registry, &mcp.Tool{
		Name:        "create_stat_comparison_chart",
		Description: "Bar chart comparing 2-4 players across up to 4 metrics",
	}, handle(cfg, "creating comparison chart", buildComparisonChart))
}
