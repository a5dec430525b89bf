package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/diamondstats/baseball-mcp/internal/format"
	"github.com/diamondstats/baseball-mcp/internal/reply"
)

type TeamBattingArgs struct {
	Season int    `json:"season" jsonschema:"Season year (required)"`
	Team   string `json:"team,omitempty" jsonschema:"Team abbreviation, e.g. NYY (default all teams)"`
	League string `json:"league,omitempty" jsonschema:"all|al|nl (default all)"`
}

func buildTeamBattingStats(ctx context.Context, cfg ServerConfig, args TeamBattingArgs) (reply.Reply, error) {
	season, err := cfg.Validator.Season(args.Season)
	if err != nil {
		return reply.Reply{}, err
	}
	var team string
	if strings.TrimSpace(args.Team) != "" {
		if team, err = cfg.Validator.Team(args.Team); err != nil {
			return reply.Reply{}, err
		}
	}
	league, err := cfg.Validator.OneOf(stringOr(args.League, "all"), leagues, "league")
	if err != nil {
		return reply.Reply{}, err
	}

	teams, err := cfg.Source.TeamBatting(ctx, season, league)
	if err != nil {
		return reply.Reply{}, err
	}
	if teams.Empty() {
		return reply.Textf("❌ No team batting statistics found for %d", season), nil
	}

	if team != "" {
		want := format.CanonicalTeam(team)
		row := teams.Filter(func(i int) bool { return format.CanonicalTeam(teams.Text(i, "Team")) == want })
		if row.Empty() {
			return reply.Textf("❌ No batting statistics found for %s in %d", team, season), nil
		}
		return reply.Text(format.Markdown(row, fmt.Sprintf("%s %d Batting Statistics", team, season))), nil
	}

	var b strings.Builder
	b.WriteString(format.Markdown(teams, fmt.Sprintf("%d Team Batting Statistics", season)))
	b.WriteString("\n\n### League Insights\n")
	b.WriteString(format.JoinInsights(format.SummaryInsights(teams, fmt.Sprintf("%d team batting performance", season))))
	return reply.Text(b.String()), nil
}
