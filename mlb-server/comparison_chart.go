package main

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/diamondstats/baseball-mcp/internal/chart"
	"github.com/diamondstats/baseball-mcp/internal/format"
	"github.com/diamondstats/baseball-mcp/internal/render"
	"github.com/diamondstats/baseball-mcp/internal/reply"
	"github.com/diamondstats/baseball-mcp/internal/source"
	"github.com/diamondstats/baseball-mcp/internal/table"
)

type ComparisonChartArgs struct {
	PlayerNames []string `json:"player_names" jsonschema:"Two to four player names (required)"`
	Season      int      `json:"season" jsonschema:"Season year (required)"`
	StatType    string   `json:"stat_type,omitempty" jsonschema:"batting|pitching (default batting)"`
	Metrics     []string `json:"metrics,omitempty" jsonschema:"Up to 4 leaderboard columns (defaults depend on stat_type)"`
}

const (
	minCompared = 2
	maxCompared = 4
	maxMetrics  = 4
)

var (
	statTypes       = []string{"batting", "pitching"}
	battingMetrics  = []string{"AVG", "OBP", "SLG", "HR"}
	pitchingMetrics = []string{"ERA", "WHIP", "K/9", "WAR"}
	// Pitching metrics where the larger value leads.
	pitchingHigher = []string{"K/9", "WAR", "K%"}
)

// shortName turns "Aaron Judge" into "A. Judge".
func shortName(name string) string {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return name
	}
	return string([]rune(parts[0])[0]) + ". " + strings.Join(parts[1:], " ")
}

func higherIsBetter(statType, metric string) bool {
	return statType == "batting" || slices.Contains(pitchingHigher, metric)
}

type compared struct {
	name string
	row  int
}

func buildComparisonChart(ctx context.Context, cfg ServerConfig, args ComparisonChartArgs) (reply.Reply, error) {
	if len(args.PlayerNames) < minCompared {
		return reply.Reply{}, invalid("Need at least 2 players for comparison")
	}
	if len(args.PlayerNames) > maxCompared {
		return reply.Reply{}, invalid("Maximum 4 players allowed for compact comparison")
	}
	names := make([]string, 0, len(args.PlayerNames))
	for _, n := range args.PlayerNames {
		clean, err := cfg.Validator.PlayerName(n)
		if err != nil {
			return reply.Reply{}, err
		}
		names = append(names, clean)
	}
	season, err := cfg.Validator.Season(args.Season)
	if err != nil {
		return reply.Reply{}, err
	}
	statType, err := cfg.Validator.OneOf(stringOr(args.StatType, "batting"), statTypes, "stat_type")
	if err != nil {
		return reply.Reply{}, err
	}
	metrics := args.Metrics
	if len(metrics) == 0 {
		metrics = battingMetrics
		if statType == "pitching" {
			metrics = pitchingMetrics
		}
	}
	metrics = metrics[:min(len(metrics), maxMetrics)]

	query := cfg.Source.BattingStats
	if statType == "pitching" {
		query = cfg.Source.PitchingStats
	}
	board, err := query(ctx, source.StatsQuery{Season: season, League: "all", Qual: 1, SplitSeasons: true, Columns: source.GroupAll})
	if err != nil {
		return reply.Reply{}, err
	}

	var players []compared
	for _, name := range names {
		want := strings.ToLower(name)
		for i := range board.Rows {
			if strings.Contains(strings.ToLower(board.Text(i, "Name")), want) {
				players = append(players, compared{name: name, row: i})
				break
			}
		}
	}
	if len(players) < minCompared {
		return reply.Textf("❌ Could not find sufficient stats for comparison in %d", season), nil
	}

	title := fmt.Sprintf("%d %s Comparison", season, format.Title(statType))
	panels := make([]render.Panel, 0, len(metrics))
	for _, m := range metrics {
		p := render.Panel{Metric: m}
		for _, pl := range players {
			v, ok := board.Float(pl.row, m)
			if !ok {
				continue
			}
			p.Bars = append(p.Bars, render.Bar{Label: shortName(pl.name), Value: v, Text: barText(board, m, v)})
		}
		panels = append(panels, p)
	}
	png, err := render.Comparison(title, panels)
	if err != nil {
		return reply.Reply{}, fmt.Errorf("render comparison chart: %w", err)
	}

	cd := chart.ChartData{Type: chart.ComparisonChart, Title: title}
	cd.SetImage(format.ImageDataURI(png))
	cd.Insights = comparisonInsights(board, statType, metrics, players)
	cd.TabularData = comparisonTable(board, metrics, players)
	return chartReply(cfg, cd)
}

// barText labels a bar: counts as integers, rates with two decimals.
func barText(board *table.Table, metric string, v float64) string {
	if j := board.Index(metric); j >= 0 && board.Columns[j].Kind == table.KindInt {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

func comparisonInsights(board *table.Table, statType string, metrics []string, players []compared) []string {
	lines := []string{
		fmt.Sprintf("%s **%s Comparison Summary**", chart.GlyphSummary, format.Title(statType)),
		fmt.Sprintf("- Players compared: %d", len(players)),
		fmt.Sprintf("- Metrics analyzed: %s", strings.Join(metrics, ", ")),
		chart.GlyphFocus + " **Metric Leaders:**",
	}
	for _, m := range metrics {
		high := higherIsBetter(statType, m)
		leader, best, found := "", 0.0, false
		for _, p := range players {
			v, ok := board.Float(p.row, m)
			if !ok {
				continue
			}
			if !found || (high && v > best) || (!high && v < best) {
				leader, best, found = p.name, v, true
			}
		}
		if !found {
			continue
		}
		dir := "lowest"
		if high {
			dir = "highest"
		}
		lines = append(lines, fmt.Sprintf("- %s (%s): %s (%s)", m, dir, leader, barText(board, m, best)))
	}
	return lines
}

func comparisonTable(board *table.Table, metrics []string, players []compared) []string {
	header := "| Player | " + strings.Join(metrics, " | ") + " |"
	sep := "| --- |" + strings.Repeat(" --- |", len(metrics))
	rows := []string{header, sep}
	for _, p := range players {
		cells := []string{p.name}
		for _, m := range metrics {
			cells = append(cells, tableCell(board, p.row, m))
		}
		rows = append(rows, "| "+strings.Join(cells, " | ")+" |")
	}
	return rows
}

func tableCell(board *table.Table, row int, metric string) string {
	v, ok := board.Float(row, metric)
	if !ok {
		return "N/A"
	}
	if j := board.Index(metric); board.Columns[j].Kind == table.KindInt {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.3f", v)
}
