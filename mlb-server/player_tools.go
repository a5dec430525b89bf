package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerPlayerTools(server *mcp.Server, registry *[]toolInfo, cfg ServerConfig) {
	addTool(server, registry, &mcp.Tool{
		Name:        "lookup_player_id",
		Description: "Look up a player's MLBAM, FanGraphs and Baseball-Reference ids by name",
	}, handle(cfg, "looking up player", buildLookupPlayerID))

	addTool(server, registry, &mcp.Tool{
		Name:        "reverse_lookup_player",
		Description: "Look up a player's name and details from an id",
	}, handle(cfg, "performing reverse lookup", buildReverseLookup))

	addTool(server, registry, &mcp.Tool{
		Name:        "search_players_fuzzy",
		Description: "Search players by partial name, filtered by years played",
	}, handle(cfg, "searching players", buildSearchPlayersFuzzy))

	addTool(server, registry, &mcp.Tool{
		Name:        "get_player_career_span",
		Description: "Career span and identifiers for a player",
	}, handle(cfg, "getting career information", buildCareerSpan))
}
