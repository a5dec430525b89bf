package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/diamondstats/baseball-mcp/internal/config"
	"github.com/diamondstats/baseball-mcp/internal/source"
	"github.com/diamondstats/baseball-mcp/internal/store"
	"github.com/diamondstats/baseball-mcp/internal/table"
	"github.com/diamondstats/baseball-mcp/internal/validate"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// writeTable records a table fixture under key.
func writeTable(t *testing.T, dir, key string, header []string, rows ...[]string) {
	t.Helper()
	if err := store.NewJSONStore(dir).WriteTable(key, table.FromRecords(header, rows), false); err != nil {
		t.Fatalf("write %s: %v", key, err)
	}
}

func writeRegister(t *testing.T, dir string) {
	t.Helper()
	reg := source.NewRegister()
	rows := [][]any{
		{"Judge", "Aaron", 592450, 15640, "judgeaa01", 2016, 2024, 1992},
		{"Trout", "Mike", 545361, 10155, "troutmi01", 2011, 2024, 1991},
		{"Ohtani", "Shohei", 660271, 19755, "ohtansh01", 2018, 2024, 1994},
		{"Trout", "Steve", nil, 1007, "troutst01", 1978, 1989, 1957},
		{"Cobb", "Ty", nil, nil, "cobbty01", 1905, 1928, 1886},
	}
	for _, r := range rows {
		if err := reg.Append(r...); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.NewJSONStore(dir).WriteTable(store.RegisterKey, reg, false); err != nil {
		t.Fatal(err)
	}
}

func writeLeaderboards(t *testing.T, dir string) {
	t.Helper()
	writeTable(t, dir, store.BattingKey(2024),
		[]string{"IDfg", "Season", "Name", "Team", "G", "PA", "HR", "RBI", "AVG", "OBP", "SLG", "OPS", "K%", "WAR"},
		[]string{"15640", "2024", "Aaron Judge", "NYY", "158", "704", "58", "144", "0.322", "0.458", "0.701", "1.159", "0.249", "10.8"},
		[]string{"19755", "2024", "Shohei Ohtani", "LAD", "159", "731", "54", "130", "0.310", "0.390", "0.646", "1.036", "0.228", "9.1"},
		[]string{"10155", "2024", "Mike Trout", "LAA", "29", "126", "10", "14", "0.220", "0.325", "0.541", "0.866", "0.254", "1.7"},
		[]string{"1", "2024", "Bench Guy", "KCR", "8", "12", "0", "1", "0.100", "0.167", "0.100", "0.267", "0.333", "-0.1"},
	)
	writeTable(t, dir, store.BattingKey(2020),
		[]string{"IDfg", "Season", "Name", "Team", "PA", "HR", "AVG", "WAR"},
		[]string{"1", "2020", "Bench Guy", "KCR", "12", "0", "0.100", "-0.1"},
	)
	writeTable(t, dir, store.PitchingKey(2024),
		[]string{"IDfg", "Season", "Name", "Team", "IP", "ERA", "WHIP", "K/9", "WAR"},
		[]string{"22267", "2024", "Tarik Skubal", "DET", "192", "2.39", "0.92", "10.39", "6.4"},
		[]string{"10603", "2024", "Chris Sale", "ATL", "177.2", "2.38", "1.01", "11.36", "6.4"},
		[]string{"2", "2024", "Mop Up", "COL", "8", "9.00", "2.10", "5.00", "-0.3"},
	)
	writeTable(t, dir, store.TeamBattingKey(2024),
		[]string{"Season", "Team", "G", "PA", "HR", "AVG", "OBP", "SLG", "WAR"},
		[]string{"2024", "NYY", "162", "6245", "237", "0.248", "0.329", "0.444", "30.1"},
		[]string{"2024", "LAD", "162", "6227", "233", "0.258", "0.335", "0.446", "33.5"},
		[]string{"2024", "SDP", "162", "6092", "190", "0.263", "0.324", "0.420", "28.0"},
	)
}

func writeRanges(t *testing.T, dir string) {
	t.Helper()
	header := []string{"Name", "Tm", "PA", "HR", "RBI", "BA", "OBP", "SLG", "OPS"}
	writeTable(t, dir, store.BattingRangeKey("2023-03-01", "2023-11-01"), header,
		[]string{"Aaron Judge", "New York", "458", "37", "75", ".267", ".406", ".613", "1.019"},
		[]string{"Mookie Betts", "Los Angeles", "693", "39", "107", ".307", ".408", ".579", ".987"},
	)
	writeTable(t, dir, store.BattingRangeKey("2024-03-01", "2024-11-01"), header,
		[]string{"Aaron Judge", "New York", "704", "58", "144", ".322", ".458", ".701", "1.159"},
	)
}

func writeStatcast(t *testing.T, dir string) {
	t.Helper()
	writeTable(t, dir, store.StatcastBatterKey(592450, "2024-03-01", "2024-11-30"),
		[]string{"events", "hc_x", "hc_y", "launch_speed", "game_type"},
		[]string{"home_run", "60.5", "50.2", "110.2", "R"},
		[]string{"single", "125.0", "150.0", "95.0", "R"},
		[]string{"double", "180.1", "120.4", "100.0", "R"},
		[]string{"field_out", "120.0", "100.0", "90.0", "R"},
		[]string{"single", "100.0", "140.0", "88.0", "F"},
		[]string{"", "", "", "", "R"},
	)
}

// tmpCfg returns a server configuration reading fixtures from a temp store.
func tmpCfg(t *testing.T) (string, ServerConfig) {
	t.Helper()
	dir := t.TempDir()
	writeRegister(t, dir)
	writeLeaderboards(t, dir)
	writeRanges(t, dir)
	writeStatcast(t, dir)
	return dir, ServerConfig{
		Source:         source.NewStore(store.NewJSONStore(dir)),
		Validator:      validate.Validator{Now: func() time.Time { return testNow }},
		Log:            zerolog.Nop(),
		ChartMode:      config.ChartArtifact,
		ResponseFormat: config.FormatPlain,
		Compact:        true,
		SourceName:     config.SourceStore,
	}
}

var errUpstream = errors.New("upstream unavailable")

// failingSource fails every query.
type failingSource struct {
	source.Source
}

func (failingSource) LookupPlayer(context.Context, string, bool) (*table.Table, error) {
	return nil, errUpstream
}

func (failingSource) BattingStats(context.Context, source.StatsQuery) (*table.Table, error) {
	return nil, errUpstream
}

func ptr[T any](v T) *T { return &v }
