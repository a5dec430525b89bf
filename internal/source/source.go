// Package source retrieves baseball tables. HTTP talks to the public
// services; Store answers the same queries from tables recorded on disk.
package source

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/diamondstats/baseball-mcp/internal/table"
)

// ErrNotSupported is returned for queries a source cannot answer.
var ErrNotSupported = errors.New("not supported by this source")

type IDType string

const (
	IDMLBAM     IDType = "mlbam"
	IDFanGraphs IDType = "fangraphs"
	IDBRef      IDType = "bbref"
)

// IDTypes lists the accepted identifier kinds.
func IDTypes() []string {
	return []string{string(IDMLBAM), string(IDFanGraphs), string(IDBRef)}
}

// StatsQuery selects a season leaderboard.
type StatsQuery struct {
	Season       int
	League       string // "all", "al" or "nl"
	Qual         int
	SplitSeasons bool
	Columns      string // column group, see ColumnGroups
}

type Source interface {
	// LookupPlayer returns register rows (see RegisterColumns) for a name.
	// With fuzzy set, near misses are ranked by similarity.
	LookupPlayer(ctx context.Context, name string, fuzzy bool) (*table.Table, error)
	ReverseLookup(ctx context.Context, id string, kind IDType) (*table.Table, error)
	BattingStats(ctx context.Context, q StatsQuery) (*table.Table, error)
	PitchingStats(ctx context.Context, q StatsQuery) (*table.Table, error)
	// BattingStatsRange returns per-player batting totals between two dates.
	BattingStatsRange(ctx context.Context, start, end string) (*table.Table, error)
	TeamBatting(ctx context.Context, season int, league string) (*table.Table, error)
	// StatcastBatter returns pitch-level rows for one batter.
	StatcastBatter(ctx context.Context, start, end string, playerID int64) (*table.Table, error)
}

// Register columns, in display order.
const (
	ColNameLast    = "name_last"
	ColNameFirst   = "name_first"
	ColMLBAM       = "key_mlbam"
	ColFanGraphs   = "key_fangraphs"
	ColBRef        = "key_bbref"
	ColPlayedFirst = "mlb_played_first"
	ColPlayedLast  = "mlb_played_last"
	ColBirthYear   = "birth_year"
)

var registerColumns = []table.Column{
	{Name: ColNameLast, Kind: table.KindString},
	{Name: ColNameFirst, Kind: table.KindString},
	{Name: ColMLBAM, Kind: table.KindInt},
	{Name: ColFanGraphs, Kind: table.KindInt},
	{Name: ColBRef, Kind: table.KindString},
	{Name: ColPlayedFirst, Kind: table.KindInt},
	{Name: ColPlayedLast, Kind: table.KindInt},
	{Name: ColBirthYear, Kind: table.KindInt},
}

// NewRegister returns an empty player register table.
func NewRegister() *table.Table {
	return table.New(registerColumns...)
}

func idColumn(kind IDType) (string, error) {
	switch kind {
	case IDMLBAM:
		return ColMLBAM, nil
	case IDFanGraphs:
		return ColFanGraphs, nil
	case IDBRef:
		return ColBRef, nil
	}
	return "", fmt.Errorf("unknown id type %q", kind)
}

// ReverseMatch returns the register rows whose id column equals id.
func ReverseMatch(register *table.Table, id string, kind IDType) (*table.Table, error) {
	col, err := idColumn(kind)
	if err != nil {
		return nil, err
	}
	id = strings.TrimSpace(id)
	return register.Filter(func(i int) bool {
		return strings.EqualFold(register.Text(i, col), id)
	}), nil
}

// Column groups per leaderboard.
const (
	GroupStandard        = "standard"
	GroupAdvanced        = "advanced"
	GroupBattedBall      = "batted_ball"
	GroupMore            = "more"
	GroupPitchType       = "pitch_type"
	GroupPlateDiscipline = "plate_discipline"
	// GroupAll keeps every leaderboard column. It is not offered to callers.
	GroupAll = "all"
)

// ColumnGroups lists the accepted stat_columns values.
func ColumnGroups() []string {
	return []string{GroupStandard, GroupAdvanced, GroupBattedBall, GroupMore, GroupPitchType, GroupPlateDiscipline}
}

var lead = []string{"IDfg", "Season", "Name", "Team"}

var battingGroups = map[string][]string{
	GroupStandard: {"Age", "G", "AB", "PA", "H", "1B", "2B", "3B", "HR", "R", "RBI", "BB", "SO", "SB", "CS",
		"AVG", "OBP", "SLG", "OPS", "wOBA", "wRC+", "WAR"},
	GroupAdvanced: {"PA", "BB%", "K%", "BB/K", "ISO", "BABIP", "wOBA", "wRAA", "wRC", "wRC+", "Off", "Def", "WAR"},
	GroupBattedBall: {"BABIP", "GB/FB", "LD%", "GB%", "FB%", "IFFB%", "HR/FB", "Pull%", "Cent%", "Oppo%",
		"Soft%", "Med%", "Hard%"},
	GroupPlateDiscipline: {"O-Swing%", "Z-Swing%", "Swing%", "O-Contact%", "Z-Contact%", "Contact%", "Zone%",
		"F-Strike%", "SwStr%"},
}

var pitchingGroups = map[string][]string{
	GroupStandard: {"Age", "W", "L", "ERA", "G", "GS", "SV", "IP", "H", "R", "ER", "HR", "BB", "SO", "WHIP",
		"K/9", "BB/9", "FIP", "WAR"},
	GroupAdvanced: {"IP", "K/9", "BB/9", "K/BB", "HR/9", "K%", "BB%", "AVG", "WHIP", "BABIP", "LOB%", "ERA-",
		"FIP-", "xFIP", "SIERA", "WAR"},
	GroupBattedBall: {"BABIP", "GB/FB", "LD%", "GB%", "FB%", "IFFB%", "HR/FB", "Pull%", "Cent%", "Oppo%",
		"Soft%", "Med%", "Hard%"},
	GroupPlateDiscipline: {"O-Swing%", "Z-Swing%", "Swing%", "O-Contact%", "Z-Contact%", "Contact%", "Zone%",
		"F-Strike%", "SwStr%"},
}

var teamBattingColumns = []string{"Season", "Team", "G", "PA", "AB", "H", "HR", "R", "RBI", "BB", "SO", "SB",
	"AVG", "OBP", "SLG", "OPS", "wOBA", "wRC+", "WAR"}

// HasGroup reports whether a column group has its own column set. Groups
// without one fall back to the standard columns.
func HasGroup(group string) bool {
	_, ok := battingGroups[group]
	return ok
}

// Columns returns the display columns of a batting or pitching group.
func Columns(pitching bool, group string) []string {
	groups := battingGroups
	if pitching {
		groups = pitchingGroups
	}
	cols, ok := groups[group]
	if !ok {
		cols = groups[GroupStandard]
	}
	return append(append([]string(nil), lead...), cols...)
}

// SeasonWindow is the date span used for a season's date range totals.
func SeasonWindow(season int) (start, end string) {
	return fmt.Sprintf("%d-03-01", season), fmt.Sprintf("%d-11-01", season)
}

// StatcastWindow is the date span used for a season's Statcast search.
func StatcastWindow(season int) (start, end string) {
	return fmt.Sprintf("%d-03-01", season), fmt.Sprintf("%d-11-30", season)
}
