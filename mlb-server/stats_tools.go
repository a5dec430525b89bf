package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerStatsTools(server *mcp.Server, registry *[]toolInfo, cfg ServerConfig) {
	addTool(server, registry, &mcp.Tool{
		Name:        "get_batting_stats",
		Description: "Season batting leaderboard from FanGraphs with insights",
	}, handle(cfg, "retrieving batting statistics", buildBattingStats))

	addTool(server, registry, &mcp.Tool{
		Name:        "get_pitching_stats",
		Description: "Season pitching leaderboard from FanGraphs with insights",
	}, handle(cfg, "retrieving pitching statistics", buildPitchingStats))

	addTool(server, registry, &mcp.Tool{
		Name:        "get_player_batting_stats_range",
		Description: "One player's batting totals per season over a range of seasons",
	}, handle(cfg, "retrieving player batting statistics", buildPlayerBattingRange))

	addTool(server, registry, &mcp.Tool{
		Name:        "get_team_batting_stats",
		Description: "Team batting statistics for a season, optionally for one team",
	}, handle(cfg, "retrieving team batting statistics", buildTeamBattingStats))
}
