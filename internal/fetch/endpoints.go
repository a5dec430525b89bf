package fetch

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Endpoints holds the base URLs of the upstream services.
type Endpoints struct {
	MLB       string
	FanGraphs string
	BRef      string
	Savant    string
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		MLB:       "https://statsapi.mlb.com/api/v1",
		FanGraphs: "https://www.fangraphs.com/api/leaders/major-league/data",
		BRef:      "https://www.baseball-reference.com",
		Savant:    "https://baseballsavant.mlb.com",
	}
}

const (
	acceptJSON = "application/json"
	acceptHTML = "text/html"
	acceptCSV  = "text/csv"
)

// /people/search?names={name}
func (c *Client) PeopleSearch(ctx context.Context, name string) ([]byte, error) {
	q := url.Values{"names": {name}, "hydrate": {"xrefId"}}
	return c.Get(ctx, c.Base.MLB+"/people/search?"+q.Encode(), acceptJSON)
}

// /people/{id}
func (c *Client) Person(ctx context.Context, id int64) ([]byte, error) {
	return c.Get(ctx, fmt.Sprintf("%s/people/%d?hydrate=xrefId", c.Base.MLB, id), acceptJSON)
}

// LeadersQuery selects a FanGraphs leaderboard.
type LeadersQuery struct {
	Stats  string // "bat" or "pit"
	League string // "all", "al" or "nl"
	Qual   int
	Start  int
	End    int
	Split  bool // one row per player season
	Teams  bool // team totals instead of players
}

func (q LeadersQuery) values() url.Values {
	ind := "0"
	if q.Split {
		ind = "1"
	}
	team := "0"
	if q.Teams {
		team = "0,ts"
	}
	league := q.League
	if league == "" {
		league = "all"
	}
	return url.Values{
		"pos":       {"all"},
		"stats":     {q.Stats},
		"lg":        {league},
		"qual":      {strconv.Itoa(q.Qual)},
		"season":    {strconv.Itoa(q.End)},
		"season1":   {strconv.Itoa(q.Start)},
		"ind":       {ind},
		"team":      {team},
		"month":     {"0"},
		"type":      {"8"},
		"pageitems": {"2000000000"},
		"pagenum":   {"1"},
	}
}

// /api/leaders/major-league/data
func (c *Client) Leaders(ctx context.Context, q LeadersQuery) ([]byte, error) {
	return c.Get(ctx, c.Base.FanGraphs+"?"+q.values().Encode(), acceptJSON)
}

// /leagues/daily.fcgi, batting totals between two dates
func (c *Client) DailyBatting(ctx context.Context, start, end string) ([]byte, error) {
	q := url.Values{
		"type":      {"b"},
		"dates":     {"fromandto"},
		"fromandto": {start + "." + end},
		"level":     {"mlb"},
	}
	return c.Get(ctx, c.Base.BRef+"/leagues/daily.fcgi?"+q.Encode(), acceptHTML)
}

// /statcast_search/csv, pitch-level rows for one batter
func (c *Client) StatcastBatter(ctx context.Context, playerID int64, start, end string) ([]byte, error) {
	q := url.Values{
		"all":              {"true"},
		"player_type":      {"batter"},
		"batters_lookup[]": {strconv.FormatInt(playerID, 10)},
		"game_date_gt":     {start},
		"game_date_lt":     {end},
		"type":             {"details"},
	}
	return c.Get(ctx, c.Base.Savant+"/statcast_search/csv?"+q.Encode(), acceptCSV)
}
