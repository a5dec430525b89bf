package source

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/diamondstats/baseball-mcp/internal/format"
	"github.com/diamondstats/baseball-mcp/internal/table"
)

const fuzzyResults = 5

func normalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func fullName(t *table.Table, i int) string {
	return normalizeName(t.Text(i, ColNameFirst) + " " + t.Text(i, ColNameLast))
}

// MatchPlayers returns register rows whose full or last name equals name,
// ignoring case and spacing. With fuzzy set and no exact match, the closest
// few names by edit-distance similarity are returned, best first.
func MatchPlayers(register *table.Table, name string, fuzzy bool) *table.Table {
	want := normalizeName(name)
	exact := register.Filter(func(i int) bool {
		return fullName(register, i) == want || normalizeName(register.Text(i, ColNameLast)) == want
	})
	if !exact.Empty() || !fuzzy {
		return exact
	}

	type scored struct {
		row   int
		score float64
	}
	var ranked []scored
	for i := range register.Rows {
		if s := levenshtein.Similarity(want, fullName(register, i), nil); s > 0 {
			ranked = append(ranked, scored{i, s})
		}
	}
	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].score > ranked[b].score })
	if len(ranked) > fuzzyResults {
		ranked = ranked[:fuzzyResults]
	}
	out := &table.Table{Columns: register.Columns, Rows: make([][]any, 0, len(ranked))}
	for _, r := range ranked {
		out.Rows = append(out.Rows, register.Rows[r.row])
	}
	return out
}

// leaderboard narrows a full season leaderboard to q: the qualifier applies
// to plate appearances (innings for pitchers), the league to the row's team,
// and the column group picks the displayed columns.
func leaderboard(t *table.Table, q StatsQuery, pitching bool) *table.Table {
	qualCol := "PA"
	if pitching {
		qualCol = "IP"
	}
	league := strings.ToLower(q.League)
	out := t.Filter(func(i int) bool {
		if q.Qual > 0 {
			v, ok := t.Float(i, qualCol)
			if !ok || v < float64(q.Qual) {
				return false
			}
		}
		return inLeague(t, i, league)
	})
	if q.Columns == GroupAll {
		return out
	}
	return out.Select(Columns(pitching, q.Columns)...)
}

func inLeague(t *table.Table, i int, league string) bool {
	if league == "" || league == "all" {
		return true
	}
	l, ok := format.TeamLeague(t.Text(i, "Team"))
	return ok && string(l) == league
}

// teamTable narrows a team leaderboard to one league and the team columns.
func teamTable(t *table.Table, league string) *table.Table {
	league = strings.ToLower(league)
	return t.Filter(func(i int) bool { return inLeague(t, i, league) }).Select(teamBattingColumns...)
}
