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

type PlayerBattingRangeArgs struct {
	StartSeason int    `json:"start_season" jsonschema:"First season (required)"`
	EndSeason   int    `json:"end_season" jsonschema:"Last season (required)"`
	PlayerName  string `json:"player_name" jsonschema:"Player name (required)"`
}

// Daily totals call batting average BA; leaderboards call it AVG.
var careerColumns = []string{"AVG", "BA", "OBP", "SLG", "OPS", "HR", "RBI"}

// nameMatcher reports whether a daily-totals Name cell belongs to the player.
func nameMatcher(names ...string) func(string) bool {
	want := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			want = append(want, n)
		}
	}
	return func(cell string) bool {
		cell = strings.ToLower(cell)
		for _, w := range want {
			if strings.Contains(cell, w) {
				return true
			}
		}
		return false
	}
}

// seasonTotals collects the player's rows from each season's date range
// totals, adding a leading Season column.
func seasonTotals(ctx context.Context, src source.Source, start, end int, match func(string) bool) (*table.Table, error) {
	var out *table.Table
	for season := start; season <= end; season++ {
		from, to := source.SeasonWindow(season)
		t, err := src.BattingStatsRange(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("season %d: %w", season, err)
		}
		rows := t.Filter(func(i int) bool { return match(t.Text(i, "Name")) })
		if out == nil {
			out = table.New(append([]table.Column{{Name: "Season", Kind: table.KindInt}}, t.Columns...)...)
		}
		for i := range rows.Rows {
			cells := []any{int64(season)}
			for _, name := range out.Names()[1:] {
				cells = append(cells, rows.Value(i, name))
			}
			if err := out.Append(cells...); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func buildPlayerBattingRange(ctx context.Context, cfg ServerConfig, args PlayerBattingRangeArgs) (reply.Reply, error) {
	start, err := cfg.Validator.Season(args.StartSeason)
	if err != nil {
		return reply.Reply{}, err
	}
	end, err := cfg.Validator.Season(args.EndSeason)
	if err != nil {
		return reply.Reply{}, err
	}
	name, err := cfg.Validator.PlayerName(args.PlayerName)
	if err != nil {
		return reply.Reply{}, err
	}
	if start > end {
		return reply.Reply{}, invalid("Start season must be before or equal to end season")
	}

	players, err := cfg.Source.LookupPlayer(ctx, name, true)
	if err != nil {
		return reply.Reply{}, err
	}
	if players.Empty() {
		return reply.Textf("❌ Player '%s' not found", name), nil
	}
	registered := players.Text(0, source.ColNameFirst) + " " + players.Text(0, source.ColNameLast)

	stats, err := seasonTotals(ctx, cfg.Source, start, end, nameMatcher(name, registered))
	if err != nil {
		return reply.Reply{}, err
	}
	if stats == nil || stats.Empty() {
		return reply.Textf("❌ No batting statistics found for %s from %d to %d", name, start, end), nil
	}

	var b strings.Builder
	b.WriteString(format.Markdown(stats, fmt.Sprintf("%s Batting Statistics (%d-%d)", name, start, end)))
	if stats.Len() > 1 {
		var lines []string
		for _, col := range careerColumns {
			values := format.ColumnValues(stats, col)
			if len(values) == 0 {
				continue
			}
			best, worst := values[0], values[0]
			for _, v := range values {
				best, worst = max(best, v), min(worst, v)
			}
			lines = append(lines, fmt.Sprintf("- **%s**: Avg %.3f, Best %.3f, Worst %.3f", col, format.Mean(values), best, worst))
		}
		if len(lines) > 0 {
			fmt.Fprintf(&b, "\n\n### Career Summary (%d-%d)\n%s\n", start, end, strings.Join(lines, "\n"))
		}
	}
	return reply.Text(b.String()), nil
}
