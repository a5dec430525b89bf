package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diamondstats/baseball-mcp/internal/fetch"
	"github.com/diamondstats/baseball-mcp/internal/store"
	"github.com/diamondstats/baseball-mcp/internal/table"
)

const peopleJSON = `{"people":[{
  "id": 545361, "firstName": "Michael", "useName": "Mike", "lastName": "Trout",
  "birthDate": "1991-08-07", "mlbDebutDate": "2011-07-08", "active": true,
  "xrefIds": [{"xrefId": "troutmi01", "xrefType": "bbref"}, {"xrefId": "10155", "xrefType": "fangraphs"}]
}]}`

const leadersJSON = `{"data":[
  {"Name":"<a href=\"/p/1\">Aaron Judge</a>","Team":"<a href=\"/t\">NYY</a>","Season":2024,"playerid":15640,"PA":704,"HR":58,"AVG":0.322,"WAR":10.8},
  {"Name":"<a href=\"/p/2\">Shohei Ohtani</a>","Team":"<a href=\"/t\">LAD</a>","Season":2024,"playerid":19755,"PA":731,"HR":54,"AVG":0.310,"WAR":9.1},
  {"PlayerName":"Luis Arraez","Name":"<a>Luis Arraez</a>","TeamName":"SDP","Season":2024,"playerid":18568,"PA":672,"HR":4,"AVG":0.314,"WAR":2.2},
  {"Name":"<a>Bench Guy</a>","Team":"<a>KCR</a>","Season":2024,"playerid":1,"PA":12,"HR":0,"AVG":0.1,"WAR":-0.1}
]}`

const dailyHTML = `<html><body>
<table id="daily">
<thead><tr><th>Rk</th><th>Name</th><th>Age</th><th>Tm</th><th>PA</th><th>HR</th><th>BA</th></tr></thead>
<tbody>
<tr><th>1</th><td><a href="/p">Mike Trout</a></td><td>28</td><td>Los Angeles</td><td>241</td><td>17</td><td>.281</td></tr>
<tr class="thead"><th>Rk</th><th>Name</th><th>Age</th><th>Tm</th><th>PA</th><th>HR</th><th>BA</th></tr>
<tr><th>2</th><td>Mookie Betts</td><td>27</td><td>Los Angeles</td><td>246</td><td>16</td><td>.292</td></tr>
</tbody>
</table>
</body></html>`

const statcastCSV = "\xef\xbb\xbfevents,hc_x,hc_y,launch_speed,game_type\n" +
	"single,100.5,150.2,95.1,R\n" +
	"home_run,60.1,40.3,108.4,R\n" +
	",,,,R\n"

func newTestHTTP(t *testing.T) (*HTTP, *int) {
	t.Helper()
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/people/search", func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("names") == "Mike Trout" || r.URL.Query().Get("names") == "Trout" {
			_, _ = w.Write([]byte(peopleJSON))
			return
		}
		_, _ = w.Write([]byte(`{"people":[]}`))
	})
	mux.HandleFunc("/api/v1/people/545361", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(peopleJSON))
	})
	mux.HandleFunc("/fg", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "0", r.URL.Query().Get("qual"))
		_, _ = w.Write([]byte(leadersJSON))
	})
	mux.HandleFunc("/leagues/daily.fcgi", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(dailyHTML))
	})
	mux.HandleFunc("/statcast_search/csv", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(statcastCSV))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := fetch.NewClient()
	c.Base = fetch.Endpoints{MLB: srv.URL + "/api/v1", FanGraphs: srv.URL + "/fg", BRef: srv.URL, Savant: srv.URL}
	h := NewHTTP(c)
	h.Now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }
	return h, &calls
}

func TestHTTP_LookupPlayer(t *testing.T) {
	h, _ := newTestHTTP(t)
	got, err := h.LookupPlayer(context.Background(), "Mike Trout", true)
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())

	assert.Equal(t, "Trout", got.Text(0, ColNameLast))
	assert.Equal(t, "Mike", got.Text(0, ColNameFirst))
	assert.Equal(t, int64(545361), got.Value(0, ColMLBAM))
	assert.Equal(t, int64(10155), got.Value(0, ColFanGraphs))
	assert.Equal(t, "troutmi01", got.Text(0, ColBRef))
	assert.Equal(t, int64(2011), got.Value(0, ColPlayedFirst))
	assert.Equal(t, int64(2026), got.Value(0, ColPlayedLast))
	assert.Equal(t, int64(1991), got.Value(0, ColBirthYear))
}

func TestHTTP_LookupPlayer_FuzzyWidens(t *testing.T) {
	h, calls := newTestHTTP(t)
	got, err := h.LookupPlayer(context.Background(), "Mik Trout", true)
	require.NoError(t, err)
	assert.Equal(t, 2, *calls)
	require.Equal(t, 1, got.Len())
	assert.Equal(t, "Trout", got.Text(0, ColNameLast))

	*calls = 0
	got, err = h.LookupPlayer(context.Background(), "Mik Trout", false)
	require.NoError(t, err)
	assert.Equal(t, 1, *calls)
	assert.True(t, got.Empty())
}

func TestHTTP_ReverseLookup(t *testing.T) {
	h, _ := newTestHTTP(t)
	got, err := h.ReverseLookup(context.Background(), "545361", IDMLBAM)
	require.NoError(t, err)
	assert.Equal(t, "Trout", got.Text(0, ColNameLast))

	_, err = h.ReverseLookup(context.Background(), "troutmi01", IDBRef)
	assert.True(t, errors.Is(err, ErrNotSupported))
}

func TestHTTP_BattingStats(t *testing.T) {
	h, _ := newTestHTTP(t)
	got, err := h.BattingStats(context.Background(), StatsQuery{Season: 2024, League: "all", Qual: 50, Columns: GroupStandard})
	require.NoError(t, err)

	assert.Equal(t, []string{"IDfg", "Season", "Name", "Team", "PA", "HR", "AVG", "WAR"}, got.Names())
	require.Equal(t, 3, got.Len())
	assert.Equal(t, "Aaron Judge", got.Text(0, "Name"))
	assert.Equal(t, "NYY", got.Text(0, "Team"))
	assert.Equal(t, "Luis Arraez", got.Text(2, "Name"))
	assert.Equal(t, "SD", got.Text(2, "Team"))
	assert.Equal(t, int64(15640), got.Value(0, "IDfg"))
}

func TestHTTP_BattingStats_League(t *testing.T) {
	h, _ := newTestHTTP(t)
	got, err := h.BattingStats(context.Background(), StatsQuery{Season: 2024, League: "AL", Qual: 0})
	require.NoError(t, err)
	var names []string
	for i := range got.Rows {
		names = append(names, got.Text(i, "Name"))
	}
	assert.Equal(t, []string{"Aaron Judge", "Bench Guy"}, names)
}

func TestHTTP_BattingStatsRange(t *testing.T) {
	h, _ := newTestHTTP(t)
	got, err := h.BattingStatsRange(context.Background(), "2020-03-01", "2020-11-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Age", "Tm", "PA", "HR", "BA"}, got.Names())
	require.Equal(t, 2, got.Len())
	assert.Equal(t, "Mike Trout", got.Text(0, "Name"))
	assert.Equal(t, 0.281, got.Value(0, "BA"))
}

func TestHTTP_StatcastRecorded(t *testing.T) {
	h, _ := newTestHTTP(t)
	h.Recorder = store.NewJSONStore(t.TempDir())

	got, err := h.StatcastBatter(context.Background(), "2020-03-01", "2020-11-30", 545361)
	require.NoError(t, err)
	assert.Equal(t, []string{"events", "hc_x", "hc_y", "launch_speed", "game_type"}, got.Names())
	assert.Equal(t, 3, got.Len())
	assert.Nil(t, got.Value(2, "hc_x"))

	replay := NewStore(h.Recorder)
	again, err := replay.StatcastBatter(context.Background(), "2020-03-01", "2020-11-30", 545361)
	require.NoError(t, err)
	assert.Equal(t, got.Rows, again.Rows)
}

func TestHTTP_RecordsRegister(t *testing.T) {
	h, _ := newTestHTTP(t)
	h.Recorder = store.NewJSONStore(t.TempDir())

	_, err := h.LookupPlayer(context.Background(), "Mike Trout", false)
	require.NoError(t, err)
	_, err = h.ReverseLookup(context.Background(), "545361", IDMLBAM)
	require.NoError(t, err)

	replay := NewStore(h.Recorder)
	got, err := replay.ReverseLookup(context.Background(), "10155", IDFanGraphs)
	require.NoError(t, err)
	require.Equal(t, 1, got.Len(), "register rows are merged by MLBAM id")
	assert.Equal(t, "Mike", got.Text(0, ColNameFirst))
}

func register(t *testing.T) *table.Table {
	t.Helper()
	reg := NewRegister()
	require.NoError(t, reg.Append("Trout", "Mike", 545361, 10155, "troutmi01", 2011, 2024, 1991))
	require.NoError(t, reg.Append("Judge", "Aaron", 592450, 15640, "judgeaa01", 2016, 2024, 1992))
	require.NoError(t, reg.Append("Trout", "Steve", 123, nil, "troutst01", 1978, 1989, 1957))
	require.NoError(t, reg.Append("Pujols", "Albert", 405395, 1177, "pujolal01", 2001, 2022, 1980))
	return reg
}

func TestMatchPlayers(t *testing.T) {
	reg := register(t)

	got := MatchPlayers(reg, "mike  TROUT", false)
	require.Equal(t, 1, got.Len())
	assert.Equal(t, int64(545361), got.Value(0, ColMLBAM))

	got = MatchPlayers(reg, "Trout", false)
	assert.Equal(t, 2, got.Len())

	got = MatchPlayers(reg, "Albert Pujol", false)
	assert.True(t, got.Empty())

	got = MatchPlayers(reg, "Albert Pujol", true)
	require.False(t, got.Empty())
	assert.Equal(t, "Pujols", got.Text(0, ColNameLast))
	assert.LessOrEqual(t, got.Len(), fuzzyResults)
}

func TestStore_Leaderboards(t *testing.T) {
	st := store.NewJSONStore(t.TempDir())
	board, err := parseLeaders([]byte(leadersJSON))
	require.NoError(t, err)
	require.NoError(t, st.WriteTable(store.BattingKey(2024), board, false))
	require.NoError(t, st.WriteTable(store.RegisterKey, register(t), false))

	src := NewStore(st)
	got, err := src.BattingStats(context.Background(), StatsQuery{Season: 2024, League: "nl", Qual: 50})
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())
	assert.Equal(t, "Shohei Ohtani", got.Text(0, "Name"))

	all, err := src.BattingStats(context.Background(), StatsQuery{Season: 2024, League: "all", Columns: GroupAll})
	require.NoError(t, err)
	assert.Equal(t, 4, all.Len())
	assert.Equal(t, board.Names(), all.Names())

	_, err = src.PitchingStats(context.Background(), StatsQuery{Season: 2024})
	assert.True(t, errors.Is(err, ErrNotRecorded))

	players, err := src.LookupPlayer(context.Background(), "Aaron Judge", true)
	require.NoError(t, err)
	assert.Equal(t, 1, players.Len())
}

func TestColumns(t *testing.T) {
	assert.Equal(t, "IDfg", Columns(false, GroupAdvanced)[0])
	assert.Contains(t, Columns(true, GroupStandard), "ERA")
	assert.Equal(t, Columns(false, GroupStandard), Columns(false, GroupPitchType))
	assert.False(t, HasGroup(GroupMore))
	assert.True(t, HasGroup(GroupBattedBall))
}

func TestSeasonWindows(t *testing.T) {
	start, end := SeasonWindow(2024)
	assert.Equal(t, "2024-03-01", start)
	assert.Equal(t, "2024-11-01", end)

	start, end = StatcastWindow(2024)
	assert.Equal(t, "2024-03-01", start)
	assert.Equal(t, "2024-11-30", end)
}
