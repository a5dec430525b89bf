package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/diamondstats/baseball-mcp/internal/format"
	"github.com/diamondstats/baseball-mcp/internal/reply"
)

type LookupPlayerIDArgs struct {
	PlayerName string `json:"player_name" jsonschema:"Player name, e.g. Mike Trout (required)"`
	FuzzyMatch *bool  `json:"fuzzy_match,omitempty" jsonschema:"Match similar names (default true)"`
	Limit      *int   `json:"limit,omitempty" jsonschema:"Maximum results (default 10, max 50)"`
}

const lookupUsage = `

### How to Use These Results:
- **key_mlbam**: Use for Statcast data queries
- **key_fangraphs**: Use for FanGraphs statistics
- **key_bbref**: Use for Baseball Reference statistics
- **mlb_played_first/last**: Career span in MLB`

func buildLookupPlayerID(ctx context.Context, cfg ServerConfig, args LookupPlayerIDArgs) (reply.Reply, error) {
	name, err := cfg.Validator.PlayerName(args.PlayerName)
	if err != nil {
		return reply.Reply{}, err
	}
	limit, err := cfg.Validator.PageSize(intOr(args.Limit, 10), 50)
	if err != nil {
		return reply.Reply{}, err
	}

	players, err := cfg.Source.LookupPlayer(ctx, name, boolOr(args.FuzzyMatch, true))
	if err != nil {
		return reply.Reply{}, err
	}
	if players.Empty() {
		msg := fmt.Sprintf("❌ No players found for '%s'", name)
		if _, suggestions, _ := cfg.Validator.SuggestPlayerNames(name); len(suggestions) > 0 {
			msg += "\n\n**Suggestions to try:**\n- " + strings.Join(suggestions, "\n- ")
		}
		return reply.Text(msg), nil
	}

	note := ""
	if players.Len() > limit {
		players = players.Head(limit)
		note = fmt.Sprintf("\n\n*Note: Results limited to %d entries*", limit)
	}
	out := format.Markdown(players, fmt.Sprintf("Player Lookup Results for '%s'", name))
	return reply.Text(out + lookupUsage + note), nil
}
