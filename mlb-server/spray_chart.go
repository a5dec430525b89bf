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

type SprayChartArgs struct {
	PlayerName string `json:"player_name" jsonschema:"Batter name (required)"`
	Season     int    `json:"season" jsonschema:"Season year, 2015 or later (required)"`
	GameType   string `json:"game_type,omitempty" jsonschema:"regular|postseason|all (default regular)"`
	ChartType  string `json:"chart_type,omitempty" jsonschema:"standard|heat_map|overlay (default standard)"`
}

var (
	gameTypes  = []string{"regular", "postseason", "all"}
	chartTypes = []string{string(render.Standard), string(render.HeatMap), string(render.Overlay)}
	hitEvents  = []string{"single", "double", "triple", "home_run"}

	// Statcast game_type codes.
	postseasonGames = []string{"F", "D", "L", "W"}
)

// fieldSplit is the distance either side of the plate's x coordinate that
// still counts as center field.
const fieldSplit = 15

func keepGame(gameType, code string) bool {
	switch gameType {
	case "regular":
		return code == "R"
	case "postseason":
		return slices.Contains(postseasonGames, code)
	}
	return true
}

func buildSprayChart(ctx context.Context, cfg ServerConfig, args SprayChartArgs) (reply.Reply, error) {
	name, err := cfg.Validator.PlayerName(args.PlayerName)
	if err != nil {
		return reply.Reply{}, err
	}
	season, err := cfg.Validator.Season(args.Season)
	if err != nil {
		return reply.Reply{}, err
	}
	start, end, err := cfg.Validator.StatcastRange(source.StatcastWindow(season))
	if err != nil {
		return reply.Reply{}, err
	}
	gameType, err := cfg.Validator.OneOf(stringOr(args.GameType, "regular"), gameTypes, "game_type")
	if err != nil {
		return reply.Reply{}, err
	}
	mode, err := cfg.Validator.OneOf(stringOr(args.ChartType, string(render.Standard)), chartTypes, "chart_type")
	if err != nil {
		return reply.Reply{}, err
	}

	players, err := cfg.Source.LookupPlayer(ctx, name, true)
	if err != nil {
		return reply.Reply{}, err
	}
	if players.Empty() {
		return reply.Textf("❌ Player '%s' not found", name), nil
	}
	mlbam, ok := players.Float(0, source.ColMLBAM)
	if !ok {
		return reply.Textf("❌ No MLB AM ID found for %s (required for Statcast data)", name), nil
	}

	pitches, err := cfg.Source.StatcastBatter(ctx, start, end, int64(mlbam))
	if err != nil {
		return reply.Reply{}, err
	}
	if pitches.Empty() {
		return reply.Textf("❌ No Statcast data found for %s in %d", name, season), nil
	}
	hits := pitches.Filter(func(i int) bool {
		return keepGame(gameType, pitches.Text(i, "game_type")) && slices.Contains(hitEvents, pitches.Text(i, "events"))
	})
	if hits.Empty() {
		return reply.Textf("❌ No hit data found for %s in %d", name, season), nil
	}

	title := fmt.Sprintf("%s - %d Spray Chart", name, season)
	var plotted []render.Hit
	for i := range hits.Rows {
		x, okX := hits.Float(i, "hc_x")
		y, okY := hits.Float(i, "hc_y")
		if okX && okY {
			plotted = append(plotted, render.Hit{X: x, Y: y, Event: hits.Text(i, "events")})
		}
	}
	png, err := render.Spray(title, plotted, render.SprayMode(mode))
	if err != nil {
		return reply.Reply{}, fmt.Errorf("render spray chart: %w", err)
	}

	cd := chart.ChartData{Type: chart.SprayChart, Title: title}
	cd.SetImage(format.ImageDataURI(png))
	counts := eventCounts(hits)
	cd.Insights = sprayInsights(hits, counts)
	cd.TabularData = hitTypeTable(hits.Len(), counts)
	return chartReply(cfg, cd)
}

type eventCount struct {
	event string
	n     int
}

// eventCounts tallies hits per event, most frequent first.
func eventCounts(hits *table.Table) []eventCount {
	byEvent := map[string]int{}
	for i := range hits.Rows {
		byEvent[hits.Text(i, "events")]++
	}
	out := make([]eventCount, 0, len(byEvent))
	for e, n := range byEvent {
		out = append(out, eventCount{e, n})
	}
	slices.SortFunc(out, func(a, b eventCount) int {
		if a.n != b.n {
			return b.n - a.n
		}
		return strings.Compare(a.event, b.event)
	})
	return out
}

func pct(n, total int) float64 {
	return float64(n) / float64(total) * 100
}

func sprayInsights(hits *table.Table, counts []eventCount) []string {
	total := hits.Len()
	lines := []string{fmt.Sprintf("%s **Total Hits Tracked: %d**", chart.GlyphSummary, total)}
	for _, c := range counts {
		lines = append(lines, fmt.Sprintf("- %s: %d (%.1f%%)", format.Title(c.event), c.n, pct(c.n, total)))
	}

	var left, center, right int
	for _, x := range format.ColumnValues(hits, "hc_x") {
		switch {
		case x < render.PlateX-fieldSplit:
			left++
		case x > render.PlateX+fieldSplit:
			right++
		default:
			center++
		}
	}
	// Shares are of all hits, as in the header; hits without coordinates
	// fall in no field.
	if left+center+right > 0 {
		lines = append(lines,
			chart.GlyphFocus+" **Field Distribution:**",
			fmt.Sprintf("- Left Field: %d (%.1f%%)", left, pct(left, total)),
			fmt.Sprintf("- Center Field: %d (%.1f%%)", center, pct(center, total)),
			fmt.Sprintf("- Right Field: %d (%.1f%%)", right, pct(right, total)),
		)
	}

	if speeds := format.ColumnValues(hits, "launch_speed"); len(speeds) > 0 {
		lines = append(lines,
			chart.GlyphVelocity+" **Exit Velocity:**",
			fmt.Sprintf("- Average: %.1f mph", format.Mean(speeds)),
			fmt.Sprintf("- Maximum: %.1f mph", slices.Max(speeds)),
		)
	}
	return lines
}

func hitTypeTable(total int, counts []eventCount) []string {
	rows := []string{"| Hit Type | Count | Percentage |", "| --- | --- | --- |"}
	for _, c := range counts {
		rows = append(rows, fmt.Sprintf("| %s | %d | %.1f%% |", format.Title(c.event), c.n, pct(c.n, total)))
	}
	return append(rows, fmt.Sprintf("| **Total** | **%d** | **100.0%%** |", total))
}
