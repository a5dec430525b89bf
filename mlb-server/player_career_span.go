package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/diamondstats/baseball-mcp/internal/reply"
	"github.com/diamondstats/baseball-mcp/internal/source"
)

type CareerSpanArgs struct {
	PlayerName string `json:"player_name" jsonschema:"Player name (required)"`
}

const maxAlternatives = 3

func buildCareerSpan(ctx context.Context, cfg ServerConfig, args CareerSpanArgs) (reply.Reply, error) {
	name, err := cfg.Validator.PlayerName(args.PlayerName)
	if err != nil {
		return reply.Reply{}, err
	}
	players, err := cfg.Source.LookupPlayer(ctx, name, true)
	if err != nil {
		return reply.Reply{}, err
	}
	if players.Empty() {
		return reply.Textf("❌ No players found for '%s'", name), nil
	}

	first, okFirst := players.Float(0, source.ColPlayedFirst)
	last, okLast := players.Float(0, source.ColPlayedLast)
	firstText := cellOr(players, 0, source.ColPlayedFirst, "Unknown")
	lastText := cellOr(players, 0, source.ColPlayedLast, "Unknown")
	span := firstText + " - " + lastText
	seasons := 0
	if okFirst && okLast {
		seasons = int(last-first) + 1
		span = fmt.Sprintf("%s (%d seasons)", span, seasons)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Career Information: %s %s\n\n", players.Text(0, source.ColNameFirst), players.Text(0, source.ColNameLast))
	fmt.Fprintf(&b, "## Career Span\n**MLB Career**: %s\n\n", span)
	b.WriteString("## Player Identifiers\n")
	fmt.Fprintf(&b, "- **MLB AM ID**: %s\n", cellOr(players, 0, source.ColMLBAM, "N/A"))
	fmt.Fprintf(&b, "- **FanGraphs ID**: %s\n", cellOr(players, 0, source.ColFanGraphs, "N/A"))
	fmt.Fprintf(&b, "- **Baseball Reference ID**: %s\n\n", cellOr(players, 0, source.ColBRef, "N/A"))
	b.WriteString("## Quick Facts\n")
	fmt.Fprintf(&b, "- **Birth Year**: %s\n", cellOr(players, 0, source.ColBirthYear, "Unknown"))
	fmt.Fprintf(&b, "- **Career Started**: %s\n", firstText)
	fmt.Fprintf(&b, "- **Career Ended**: %s\n", lastText)
	if seasons > 0 {
		fmt.Fprintf(&b, "- **Career Length**: %d seasons\n", seasons)
	}

	if players.Len() > 1 {
		var alts []string
		for i := 1; i < players.Len() && len(alts) < maxAlternatives; i++ {
			alts = append(alts, strings.TrimSpace(players.Text(i, source.ColNameFirst)+" "+players.Text(i, source.ColNameLast)))
		}
		fmt.Fprintf(&b, "\n\n*Note: Multiple players found. Also showing: %s*", strings.Join(alts, ", "))
	}
	return reply.Text(b.String()), nil
}
