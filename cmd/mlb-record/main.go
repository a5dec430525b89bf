// Command mlb-record fetches leaderboards, date range totals and Statcast
// searches from the live services and records them as tables, so the server
// can later answer the same queries with --source=store.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/diamondstats/baseball-mcp/internal/fetch"
	"github.com/diamondstats/baseball-mcp/internal/source"
	"github.com/diamondstats/baseball-mcp/internal/store"
	"github.com/diamondstats/baseball-mcp/internal/validate"
)

type options struct {
	Seasons  []int
	Players  []string
	Ranges   bool
	Statcast bool
}

func main() {
	var (
		recordRoot = flag.String("record-root", "data/recorded", "root directory for recorded tables")
		seasons    = flag.String("seasons", "2024", "comma-separated seasons, or a span like 2021-2024")
		players    = flag.String("players", "", "comma-separated player names for register and Statcast rows")
		ranges     = flag.Bool("ranges", true, "record per-season date range batting totals")
		statcast   = flag.Bool("statcast", true, "record Statcast searches for -players")
		sleepMS    = flag.Int("sleep-ms", 250, "sleep between requests in ms")
		timeout    = flag.Duration("timeout", 60*time.Second, "timeout per request")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).With().Timestamp().Logger()
	if !*verbose {
		log = log.Level(zerolog.InfoLevel)
	}

	years, err := parseSeasons(*seasons)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -seasons")
	}

	c := fetch.NewClient()
	c.Sleep = time.Duration(*sleepMS) * time.Millisecond
	c.HTTP.Timeout = *timeout
	h := source.NewHTTP(c)
	h.Recorder = store.NewJSONStore(*recordRoot)
	h.Log = log

	opts := options{Seasons: years, Players: splitList(*players), Ranges: *ranges, Statcast: *statcast}
	failed := record(context.Background(), h, opts, log)
	if failed > 0 {
		log.Error().Int("failed", failed).Msg("recording finished with errors")
		os.Exit(1)
	}
	log.Info().Str("root", *recordRoot).Msg("recording finished")
}

// record issues every query the options name against src and returns the
// number that failed. Tables are recorded by the source as a side effect.
func record(ctx context.Context, src source.Source, opts options, log zerolog.Logger) int {
	failed := 0
	step := func(what string, err error) {
		if err != nil {
			failed++
			log.Warn().Err(err).Str("query", what).Msg("query failed")
			return
		}
		log.Info().Str("query", what).Msg("recorded")
	}

	for _, season := range opts.Seasons {
		q := source.StatsQuery{Season: season, League: "all", SplitSeasons: true, Columns: source.GroupAll}
		_, err := src.BattingStats(ctx, q)
		step(fmt.Sprintf("batting %d", season), err)
		_, err = src.PitchingStats(ctx, q)
		step(fmt.Sprintf("pitching %d", season), err)
		_, err = src.TeamBatting(ctx, season, "all")
		step(fmt.Sprintf("team batting %d", season), err)
		if opts.Ranges {
			start, end := source.SeasonWindow(season)
			_, err = src.BattingStatsRange(ctx, start, end)
			step(fmt.Sprintf("batting range %s..%s", start, end), err)
		}
	}

	for _, name := range opts.Players {
		players, err := src.LookupPlayer(ctx, name, true)
		step("player "+name, err)
		if err != nil || players.Empty() || !opts.Statcast {
			continue
		}
		mlbam, ok := players.Float(0, source.ColMLBAM)
		if !ok {
			log.Warn().Str("player", name).Msg("no MLBAM id, skipping Statcast")
			continue
		}
		for _, season := range opts.Seasons {
			if season < validate.FirstStatcastYear {
				continue
			}
			start, end := source.StatcastWindow(season)
			_, err := src.StatcastBatter(ctx, start, end, int64(mlbam))
			step(fmt.Sprintf("statcast %s %d", name, season), err)
		}
	}
	return failed
}

// parseSeasons accepts "2023,2024" or "2021-2024".
func parseSeasons(s string) ([]int, error) {
	var out []int
	for _, part := range splitList(s) {
		from, to, isSpan := strings.Cut(part, "-")
		start, err := strconv.Atoi(strings.TrimSpace(from))
		if err != nil {
			return nil, fmt.Errorf("season %q: %w", part, err)
		}
		end := start
		if isSpan {
			if end, err = strconv.Atoi(strings.TrimSpace(to)); err != nil {
				return nil, fmt.Errorf("season %q: %w", part, err)
			}
		}
		if end < start {
			return nil, fmt.Errorf("season span %q runs backwards", part)
		}
		for y := start; y <= end; y++ {
			out = append(out, y)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no seasons given")
	}
	return out, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
