package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/diamondstats/baseball-mcp/internal/store"
	"github.com/diamondstats/baseball-mcp/internal/table"
)

// ErrNotRecorded reports a query whose table was never recorded.
var ErrNotRecorded = errors.New("table not recorded")

// Store answers queries from tables recorded under a JSONStore, typically by
// mlb-record or an HTTP source with a Recorder.
type Store struct {
	st *store.JSONStore
}

func NewStore(st *store.JSONStore) *Store {
	return &Store{st: st}
}

func (s *Store) read(key string) (*table.Table, error) {
	t, err := s.st.ReadTable(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", key, ErrNotRecorded)
	}
	return t, err
}

func (s *Store) LookupPlayer(_ context.Context, name string, fuzzy bool) (*table.Table, error) {
	reg, err := s.read(store.RegisterKey)
	if err != nil {
		return nil, err
	}
	return MatchPlayers(reg, name, fuzzy), nil
}

func (s *Store) ReverseLookup(_ context.Context, id string, kind IDType) (*table.Table, error) {
	reg, err := s.read(store.RegisterKey)
	if err != nil {
		return nil, err
	}
	return ReverseMatch(reg, id, kind)
}

func (s *Store) BattingStats(_ context.Context, q StatsQuery) (*table.Table, error) {
	t, err := s.read(store.BattingKey(q.Season))
	if err != nil {
		return nil, err
	}
	return leaderboard(t, q, false), nil
}

func (s *Store) PitchingStats(_ context.Context, q StatsQuery) (*table.Table, error) {
	t, err := s.read(store.PitchingKey(q.Season))
	if err != nil {
		return nil, err
	}
	return leaderboard(t, q, true), nil
}

func (s *Store) BattingStatsRange(_ context.Context, start, end string) (*table.Table, error) {
	return s.read(store.BattingRangeKey(start, end))
}

func (s *Store) TeamBatting(_ context.Context, season int, league string) (*table.Table, error) {
	t, err := s.read(store.TeamBattingKey(season))
	if err != nil {
		return nil, err
	}
	return teamTable(t, league), nil
}

func (s *Store) StatcastBatter(_ context.Context, start, end string, playerID int64) (*table.Table, error) {
	return s.read(store.StatcastBatterKey(playerID, start, end))
}
