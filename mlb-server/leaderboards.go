package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/diamondstats/baseball-mcp/internal/format"
	"github.com/diamondstats/baseball-mcp/internal/reply"
	"github.com/diamondstats/baseball-mcp/internal/source"
	"github.com/diamondstats/baseball-mcp/internal/validate"
)

type LeaderboardArgs struct {
	Season       int    `json:"season" jsonschema:"Season year, e.g. 2023 (required)"`
	SplitSeasons *bool  `json:"split_seasons,omitempty" jsonschema:"Split seasons for traded players (default true)"`
	StatColumns  string `json:"stat_columns,omitempty" jsonschema:"standard|advanced|batted_ball|more|pitch_type|plate_discipline (default standard)"`
	League       string `json:"league,omitempty" jsonschema:"all|al|nl (default all)"`
	Qual         *int   `json:"qual,omitempty" jsonschema:"Minimum PA (batting, default 50) or IP (pitching, default 20)"`
}

// leaderboard describes what differs between the batting and pitching tools.
type leaderboard struct {
	kind     string // "batting" or "pitching"
	qualUnit string
	qualMax  float64
	qualDef  int
	context  string // insight context; %d season, %d qual
	about    string
	pitching bool
}

var battingBoard = leaderboard{
	kind:     "batting",
	qualUnit: "PA",
	qualMax:  700,
	qualDef:  50,
	context:  "%d season with %d+ plate appearances",
	about:    "Standard batting statistics including traditional metrics like AVG, OBP, SLG, HR, RBI, and advanced metrics like WAR.",
}

var pitchingBoard = leaderboard{
	kind:     "pitching",
	qualUnit: "IP",
	qualMax:  300,
	qualDef:  20,
	context:  "%d season with %d+ innings pitched",
	about:    "Standard pitching statistics including traditional metrics like ERA, WHIP, K/9, BB/9, and advanced metrics like WAR.",
	pitching: true,
}

// groupAbout describes the non-standard column groups.
var groupAbout = map[string]string{
	source.GroupAdvanced:        "Rate and value metrics such as BB%, K%, ISO, BABIP, wOBA and WAR.",
	source.GroupBattedBall:      "Batted ball profile: ground ball, line drive and fly ball rates, pull/center/opposite and contact quality.",
	source.GroupPlateDiscipline: "Swing and contact rates inside and outside the zone.",
}

func buildBattingStats(ctx context.Context, cfg ServerConfig, args LeaderboardArgs) (reply.Reply, error) {
	return buildLeaderboard(ctx, cfg, battingBoard, args)
}

func buildPitchingStats(ctx context.Context, cfg ServerConfig, args LeaderboardArgs) (reply.Reply, error) {
	return buildLeaderboard(ctx, cfg, pitchingBoard, args)
}

func buildLeaderboard(ctx context.Context, cfg ServerConfig, lb leaderboard, args LeaderboardArgs) (reply.Reply, error) {
	season, err := cfg.Validator.Season(args.Season)
	if err != nil {
		return reply.Reply{}, err
	}
	q, err := cfg.Validator.NumericRange(intOr(args.Qual, lb.qualDef), validate.Bound(0), validate.Bound(lb.qualMax), "qual")
	if err != nil {
		return reply.Reply{}, err
	}
	qual := int(q)
	group, err := cfg.Validator.OneOf(stringOr(args.StatColumns, source.GroupStandard), source.ColumnGroups(), "stat_columns")
	if err != nil {
		return reply.Reply{}, err
	}
	league, err := cfg.Validator.OneOf(stringOr(args.League, "all"), leagues, "league")
	if err != nil {
		return reply.Reply{}, err
	}

	cfg.Log.Debug().Str("stats", lb.kind).Int("season", season).Int("qual", qual).Str("columns", group).Str("league", league).Msg("leaderboard query")
	query := cfg.Source.BattingStats
	if lb.pitching {
		query = cfg.Source.PitchingStats
	}
	board, err := query(ctx, source.StatsQuery{
		Season:       season,
		League:       league,
		Qual:         qual,
		SplitSeasons: boolOr(args.SplitSeasons, true),
		Columns:      group,
	})
	if err != nil {
		return reply.Reply{}, err
	}
	if board.Empty() {
		if lb.pitching {
			return reply.Textf("❌ No %s statistics found for %d with qualifier %d+ IP", lb.kind, season, qual), nil
		}
		return reply.Textf("❌ No %s statistics found for %d with qualifier %d+", lb.kind, season, qual), nil
	}

	label := "Standard"
	if source.HasGroup(group) {
		label = format.Title(strings.ReplaceAll(group, "_", " "))
	}
	title := fmt.Sprintf("%d %s Statistics (%s Stats) - Min %d %s", season, format.Title(lb.kind), label, qual, lb.qualUnit)

	var b strings.Builder
	b.WriteString(format.Markdown(board, title))
	b.WriteString("\n\n### Season Insights\n")
	b.WriteString(format.JoinInsights(format.SummaryInsights(board, fmt.Sprintf(lb.context, season, qual))))
	if about, ok := groupAbout[group]; ok {
		fmt.Fprintf(&b, "\n\n**About %s Stats**: %s", label, about)
	} else {
		fmt.Fprintf(&b, "\n\n**About Standard Stats**: %s", lb.about)
	}
	if !source.HasGroup(group) {
		fmt.Fprintf(&b, "\n\n*Note: Stat type '%s' has no dedicated column set; standard columns are shown.*", group)
	}
	return reply.Text(b.String()), nil
}
