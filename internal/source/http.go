package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/diamondstats/baseball-mcp/internal/fetch"
	"github.com/diamondstats/baseball-mcp/internal/format"
	"github.com/diamondstats/baseball-mcp/internal/store"
	"github.com/diamondstats/baseball-mcp/internal/table"
)

// HTTP answers queries from the MLB Stats API, FanGraphs,
// Baseball-Reference and Baseball Savant. Leaderboards are always fetched
// whole and narrowed locally, so a recorded table serves any later query.
type HTTP struct {
	Client *fetch.Client
	// Recorder, when set, receives every table fetched.
	Recorder *store.JSONStore
	Log      zerolog.Logger
	Now      func() time.Time
}

func NewHTTP(c *fetch.Client) *HTTP {
	return &HTTP{Client: c, Log: zerolog.Nop(), Now: time.Now}
}

func (h *HTTP) record(key string, t *table.Table) {
	if h.Recorder == nil {
		return
	}
	if err := h.Recorder.WriteTable(key, t, true); err != nil {
		h.Log.Warn().Err(err).Str("key", key).Msg("record table")
		return
	}
	h.Log.Debug().Str("key", key).Int("rows", t.Len()).Msg("recorded table")
}

// recordRegister merges players into the recorded register, keyed by MLBAM id.
func (h *HTTP) recordRegister(players *table.Table) {
	if h.Recorder == nil || players.Empty() {
		return
	}
	reg, err := h.Recorder.ReadTable(store.RegisterKey)
	if errors.Is(err, fs.ErrNotExist) {
		reg, err = NewRegister(), nil
	}
	if err != nil {
		h.Log.Warn().Err(err).Msg("read recorded register")
		return
	}
	seen := make(map[string]bool, reg.Len())
	for i := range reg.Rows {
		seen[reg.Text(i, ColMLBAM)] = true
	}
	for i, row := range players.Rows {
		if id := players.Text(i, ColMLBAM); !seen[id] {
			seen[id] = true
			reg.Rows = append(reg.Rows, row)
		}
	}
	h.record(store.RegisterKey, reg)
}

type person struct {
	ID             int64  `json:"id"`
	FirstName      string `json:"firstName"`
	UseName        string `json:"useName"`
	LastName       string `json:"lastName"`
	BirthDate      string `json:"birthDate"`
	MLBDebutDate   string `json:"mlbDebutDate"`
	LastPlayedDate string `json:"lastPlayedDate"`
	Active         bool   `json:"active"`
	XrefIDs        []struct {
		XrefID   string `json:"xrefId"`
		XrefType string `json:"xrefType"`
	} `json:"xrefIds"`
}

func year(date string) any {
	if len(date) < 4 {
		return nil
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return nil
	}
	return y
}

func (h *HTTP) registerFrom(body []byte) (*table.Table, error) {
	var resp struct {
		People []person `json:"people"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode people: %w", err)
	}
	reg := NewRegister()
	for _, p := range resp.People {
		first := p.UseName
		if first == "" {
			first = p.FirstName
		}
		var fg, bref any
		for _, x := range p.XrefIDs {
			switch x.XrefType {
			case "fangraphs":
				fg = x.XrefID
			case "bbref":
				bref = x.XrefID
			}
		}
		last := year(p.LastPlayedDate)
		if last == nil && p.Active && p.MLBDebutDate != "" {
			last = h.Now().Year()
		}
		if err := reg.Append(p.LastName, first, p.ID, fg, bref, year(p.MLBDebutDate), last, year(p.BirthDate)); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func (h *HTTP) LookupPlayer(ctx context.Context, name string, fuzzy bool) (*table.Table, error) {
	body, err := h.Client.PeopleSearch(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("search people: %w", err)
	}
	reg, err := h.registerFrom(body)
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(name)
	if reg.Empty() && fuzzy && len(fields) > 1 {
		// widen to the last name and rank the candidates
		body, err = h.Client.PeopleSearch(ctx, fields[len(fields)-1])
		if err != nil {
			return nil, fmt.Errorf("search people: %w", err)
		}
		if reg, err = h.registerFrom(body); err != nil {
			return nil, err
		}
		reg = MatchPlayers(reg, name, true)
	}
	h.recordRegister(reg)
	return reg, nil
}

func (h *HTTP) ReverseLookup(ctx context.Context, id string, kind IDType) (*table.Table, error) {
	if kind != IDMLBAM {
		return nil, fmt.Errorf("reverse lookup by %s id: %w", kind, ErrNotSupported)
	}
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return NewRegister(), nil
	}
	body, err := h.Client.Person(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("get person %d: %w", n, err)
	}
	reg, err := h.registerFrom(body)
	if err != nil {
		return nil, err
	}
	h.recordRegister(reg)
	return reg, nil
}

func (h *HTTP) leaders(ctx context.Context, q fetch.LeadersQuery, key string) (*table.Table, error) {
	body, err := h.Client.Leaders(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("fetch %s leaders: %w", q.Stats, err)
	}
	t, err := parseLeaders(body)
	if err != nil {
		return nil, err
	}
	h.record(key, t)
	return t, nil
}

func (h *HTTP) BattingStats(ctx context.Context, q StatsQuery) (*table.Table, error) {
	t, err := h.leaders(ctx, fetch.LeadersQuery{Stats: "bat", Start: q.Season, End: q.Season, Split: true}, store.BattingKey(q.Season))
	if err != nil {
		return nil, err
	}
	return leaderboard(t, q, false), nil
}

func (h *HTTP) PitchingStats(ctx context.Context, q StatsQuery) (*table.Table, error) {
	t, err := h.leaders(ctx, fetch.LeadersQuery{Stats: "pit", Start: q.Season, End: q.Season, Split: true}, store.PitchingKey(q.Season))
	if err != nil {
		return nil, err
	}
	return leaderboard(t, q, true), nil
}

func (h *HTTP) TeamBatting(ctx context.Context, season int, league string) (*table.Table, error) {
	t, err := h.leaders(ctx, fetch.LeadersQuery{Stats: "bat", Start: season, End: season, Split: true, Teams: true}, store.TeamBattingKey(season))
	if err != nil {
		return nil, err
	}
	return teamTable(t, league), nil
}

func (h *HTTP) BattingStatsRange(ctx context.Context, start, end string) (*table.Table, error) {
	body, err := h.Client.DailyBatting(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch daily batting: %w", err)
	}
	t, err := parseDaily(body)
	if err != nil {
		return nil, err
	}
	h.record(store.BattingRangeKey(start, end), t)
	return t, nil
}

func (h *HTTP) StatcastBatter(ctx context.Context, start, end string, playerID int64) (*table.Table, error) {
	body, err := h.Client.StatcastBatter(ctx, playerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch statcast: %w", err)
	}
	t, err := parseCSV(body)
	if err != nil {
		return nil, err
	}
	h.record(store.StatcastBatterKey(playerID, start, end), t)
	return t, nil
}

// Leaderboard keys that carry display copies of Name and Team.
const (
	fgPlayerName = "PlayerName"
	fgTeamName   = "TeamName"
	fgTeamAbbr   = "TeamNameAbb"
	fgPlayerID   = "playerid"
)

func parseLeaders(body []byte) (*table.Table, error) {
	var resp struct {
		Data []map[string]any `json:"data"`
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode leaders: %w", err)
	}

	keys := map[string]bool{}
	for _, rec := range resp.Data {
		for k := range rec {
			keys[k] = true
		}
		if v, ok := rec[fgPlayerName]; ok {
			rec["Name"] = v
		}
		if _, ok := rec["IDfg"]; !ok {
			if v, ok := rec[fgPlayerID]; ok {
				rec["IDfg"] = v
				keys["IDfg"] = true
			}
		}
		for _, k := range []string{fgTeamAbbr, fgTeamName} {
			if v, ok := rec[k]; ok {
				rec["Team"] = v
				break
			}
		}
		rec["Name"] = cellText(rec["Name"])
		rec["Team"] = format.CanonicalTeam(cellText(rec["Team"]))
	}
	delete(keys, fgPlayerName)
	delete(keys, fgTeamName)
	delete(keys, fgTeamAbbr)
	delete(keys, fgPlayerID)

	cols := []string{}
	for _, k := range lead {
		if keys[k] || k == "Name" || k == "Team" {
			cols = append(cols, k)
			delete(keys, k)
		}
	}
	rest := make([]string, 0, len(keys))
	for k := range keys {
		rest = append(rest, k)
	}
	sort.Strings(rest)
	return table.FromMaps(append(cols, rest...), resp.Data), nil
}

// cellText strips markup from a leaderboard cell.
func cellText(v any) string {
	s, _ := v.(string)
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(doc.Text())
}

// parseDaily reads the Baseball-Reference daily totals table.
func parseDaily(body []byte) (*table.Table, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse daily batting: %w", err)
	}
	tbl := doc.Find("table#daily").First()
	if tbl.Length() == 0 {
		tbl = doc.Find("table").First()
	}
	if tbl.Length() == 0 {
		return nil, errors.New("daily batting table not found")
	}

	var header []string
	tbl.Find("thead tr").Last().Find("th").Each(func(_ int, s *goquery.Selection) {
		header = append(header, strings.TrimSpace(s.Text()))
	})
	var records [][]string
	tbl.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.HasClass("thead") {
			return
		}
		cells := tr.Find("th, td")
		if cells.Length() != len(header) {
			return
		}
		rec := make([]string, 0, len(header))
		cells.Each(func(_ int, c *goquery.Selection) {
			rec = append(rec, strings.TrimSpace(c.Text()))
		})
		records = append(records, rec)
	})

	t := table.FromRecords(header, records)
	if len(header) > 0 && header[0] == "Rk" {
		t = t.Select(header[1:]...)
	}
	return t, nil
}

var utf8BOM = []byte("\xef\xbb\xbf")

func parseCSV(body []byte) (*table.Table, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(body, utf8BOM)))
	r.LazyQuotes = true
	recs, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(recs) == 0 {
		return table.New(), nil
	}
	return table.FromRecords(recs[0], recs[1:]), nil
}
