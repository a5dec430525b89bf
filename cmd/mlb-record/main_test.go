package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diamondstats/baseball-mcp/internal/source"
	"github.com/diamondstats/baseball-mcp/internal/table"
)

// callLog records the queries it receives.
type callLog struct {
	calls []string
}

func (c *callLog) add(format string, args ...any) *table.Table {
	c.calls = append(c.calls, fmt.Sprintf(format, args...))
	return table.New()
}

func (c *callLog) LookupPlayer(_ context.Context, name string, _ bool) (*table.Table, error) {
	c.add("lookup %s", name)
	reg := source.NewRegister()
	switch name {
	case "Aaron Judge":
		_ = reg.Append("Judge", "Aaron", 592450, 15640, "judgeaa01", 2016, 2024, 1992)
	case "Ty Cobb":
		_ = reg.Append("Cobb", "Ty", nil, nil, "cobbty01", 1905, 1928, 1886)
	case "Broken":
		return nil, errors.New("boom")
	}
	return reg, nil
}

func (c *callLog) ReverseLookup(context.Context, string, source.IDType) (*table.Table, error) {
	return nil, source.ErrNotSupported
}

func (c *callLog) BattingStats(_ context.Context, q source.StatsQuery) (*table.Table, error) {
	return c.add("batting %d %s", q.Season, q.Columns), nil
}

func (c *callLog) PitchingStats(_ context.Context, q source.StatsQuery) (*table.Table, error) {
	return c.add("pitching %d %s", q.Season, q.Columns), nil
}

func (c *callLog) BattingStatsRange(_ context.Context, start, end string) (*table.Table, error) {
	return c.add("range %s %s", start, end), nil
}

func (c *callLog) TeamBatting(_ context.Context, season int, league string) (*table.Table, error) {
	return c.add("team %d %s", season, league), nil
}

func (c *callLog) StatcastBatter(_ context.Context, start, end string, id int64) (*table.Table, error) {
	return c.add("statcast %d %s %s", id, start, end), nil
}

func TestRecord(t *testing.T) {
	src := &callLog{}
	failed := record(context.Background(), src, options{
		Seasons:  []int{2014, 2015},
		Players:  []string{"Aaron Judge", "Ty Cobb", "Broken"},
		Ranges:   true,
		Statcast: true,
	}, zerolog.Nop())

	assert.Equal(t, 1, failed)
	want := []string{
		"batting 2014 all", "pitching 2014 all", "team 2014 all", "range 2014-03-01 2014-11-01",
		"batting 2015 all", "pitching 2015 all", "team 2015 all", "range 2015-03-01 2015-11-01",
		"lookup Aaron Judge", "statcast 592450 2015-03-01 2015-11-30",
		"lookup Ty Cobb",
		"lookup Broken",
	}
	if diff := cmp.Diff(want, src.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestRecord_NoRangesNoStatcast(t *testing.T) {
	src := &callLog{}
	failed := record(context.Background(), src, options{Seasons: []int{2024}, Players: []string{"Aaron Judge"}}, zerolog.Nop())

	assert.Zero(t, failed)
	assert.Equal(t, []string{"batting 2024 all", "pitching 2024 all", "team 2024 all", "lookup Aaron Judge"}, src.calls)
}

func TestParseSeasons(t *testing.T) {
	got, err := parseSeasons("2021-2023, 2025")
	require.NoError(t, err)
	assert.Equal(t, []int{2021, 2022, 2023, 2025}, got)

	for _, bad := range []string{"", "20x4", "2024-2021", "2021-"} {
		_, err := parseSeasons(bad)
		assert.Error(t, err, bad)
	}
}
