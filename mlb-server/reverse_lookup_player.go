package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/diamondstats/baseball-mcp/internal/format"
	"github.com/diamondstats/baseball-mcp/internal/reply"
	"github.com/diamondstats/baseball-mcp/internal/source"
	"github.com/diamondstats/baseball-mcp/internal/table"
)

type ReverseLookupArgs struct {
	PlayerID string `json:"player_id" jsonschema:"Player id (required)"`
	IDType   string `json:"id_type,omitempty" jsonschema:"Id type: mlbam|fangraphs|bbref (default mlbam)"`
}

// cellOr returns the display text of a cell, or def when it is missing.
func cellOr(t *table.Table, i int, col, def string) string {
	if s := t.Text(i, col); s != "" {
		return s
	}
	return def
}

// shownInHeader lists the register columns printed above Additional Details.
var shownInHeader = map[string]bool{
	source.ColNameFirst:   true,
	source.ColNameLast:    true,
	source.ColPlayedFirst: true,
	source.ColPlayedLast:  true,
	source.ColMLBAM:       true,
	source.ColFanGraphs:   true,
	source.ColBRef:        true,
}

func buildReverseLookup(ctx context.Context, cfg ServerConfig, args ReverseLookupArgs) (reply.Reply, error) {
	id := strings.TrimSpace(args.PlayerID)
	if id == "" {
		return reply.Reply{}, invalid("Player ID cannot be empty")
	}
	kind, err := cfg.Validator.OneOf(stringOr(args.IDType, string(source.IDMLBAM)), source.IDTypes(), "ID type")
	if err != nil {
		return reply.Reply{}, err
	}

	players, err := cfg.Source.ReverseLookup(ctx, id, source.IDType(kind))
	if err != nil {
		return reply.Reply{}, err
	}
	if players.Empty() {
		return reply.Textf("❌ No player found with %s ID: %s", kind, id), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Player Information\n\n")
	fmt.Fprintf(&b, "**Name**: %s %s\n", cellOr(players, 0, source.ColNameFirst, "Unknown"), cellOr(players, 0, source.ColNameLast, "Unknown"))
	fmt.Fprintf(&b, "**MLB Career**: %s - %s\n\n", cellOr(players, 0, source.ColPlayedFirst, "Unknown"), cellOr(players, 0, source.ColPlayedLast, "Unknown"))
	b.WriteString("## Player IDs:\n")
	fmt.Fprintf(&b, "- **MLB AM ID**: %s\n", cellOr(players, 0, source.ColMLBAM, "N/A"))
	fmt.Fprintf(&b, "- **FanGraphs ID**: %s\n", cellOr(players, 0, source.ColFanGraphs, "N/A"))
	fmt.Fprintf(&b, "- **Baseball Reference ID**: %s\n\n", cellOr(players, 0, source.ColBRef, "N/A"))
	b.WriteString("## Additional Details:\n")
	for _, col := range players.Names() {
		if shownInHeader[col] {
			continue
		}
		fmt.Fprintf(&b, "- **%s**: %s\n", format.Title(strings.ReplaceAll(col, "_", " ")), cellOr(players, 0, col, "N/A"))
	}
	return reply.Text(b.String()), nil
}
