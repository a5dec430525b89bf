package format

import (
	"encoding/base64"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/diamondstats/baseball-mcp/internal/table"
)

type League string

const (
	AL League = "al"
	NL League = "nl"
)

type franchise struct {
	Code   string
	Name   string
	League League
}

var franchises = []franchise{
	{"LAA", "Los Angeles Angels", AL},
	{"HOU", "Houston Astros", AL},
	{"OAK", "Oakland Athletics", AL},
	{"TOR", "Toronto Blue Jays", AL},
	{"ATL", "Atlanta Braves", NL},
	{"MIL", "Milwaukee Brewers", NL},
	{"STL", "St. Louis Cardinals", NL},
	{"CHC", "Chicago Cubs", NL},
	{"ARI", "Arizona Diamondbacks", NL},
	{"LAD", "Los Angeles Dodgers", NL},
	{"SF", "San Francisco Giants", NL},
	{"CLE", "Cleveland Guardians", AL},
	{"SEA", "Seattle Mariners", AL},
	{"MIA", "Miami Marlins", NL},
	{"NYM", "New York Mets", NL},
	{"WSH", "Washington Nationals", NL},
	{"BAL", "Baltimore Orioles", AL},
	{"SD", "San Diego Padres", NL},
	{"PHI", "Philadelphia Phillies", NL},
	{"PIT", "Pittsburgh Pirates", NL},
	{"TEX", "Texas Rangers", AL},
	{"TB", "Tampa Bay Rays", AL},
	{"BOS", "Boston Red Sox", AL},
	{"CIN", "Cincinnati Reds", NL},
	{"COL", "Colorado Rockies", NL},
	{"KC", "Kansas City Royals", AL},
	{"DET", "Detroit Tigers", AL},
	{"MIN", "Minnesota Twins", AL},
	{"CWS", "Chicago White Sox", AL},
	{"NYY", "New York Yankees", AL},
}

var franchiseByCode = func() map[string]string {
	m := make(map[string]string, len(franchises))
	for _, f := range franchises {
		m[f.Code] = f.Name
	}
	return m
}()

var franchiseLeague = func() map[string]League {
	m := make(map[string]League, len(franchises))
	for _, f := range franchises {
		m[f.Code] = f.League
	}
	return m
}()

// Abbreviations used by FanGraphs and Baseball-Reference that differ from
// the canonical codes.
var teamAliases = map[string]string{
	"ANA": "LAA",
	"CHW": "CWS",
	"KCR": "KC",
	"SDP": "SD",
	"SFG": "SF",
	"TBR": "TB",
	"WSN": "WSH",
	"ATH": "OAK",
}

// CanonicalTeam maps upstream team abbreviations onto the canonical codes.
func CanonicalTeam(code string) string {
	upper := strings.ToUpper(strings.TrimSpace(code))
	if c, ok := teamAliases[upper]; ok {
		return c
	}
	return upper
}

// TeamLeague reports the league of a team code.
func TeamLeague(code string) (League, bool) {
	l, ok := franchiseLeague[CanonicalTeam(code)]
	return l, ok
}

// TeamName returns the franchise name for a team code.
func TeamName(code string) (string, bool) {
	name, ok := franchiseByCode[strings.ToUpper(code)]
	return name, ok
}

// ResolveTeam maps an abbreviation or a fragment of a franchise name to its
// code. Unknown input is returned unchanged.
func ResolveTeam(in string) string {
	upper := strings.ToUpper(in)
	if _, ok := franchiseByCode[upper]; ok {
		return upper
	}
	lower := strings.ToLower(in)
	for _, f := range franchises {
		if strings.Contains(strings.ToLower(f.Name), lower) {
			return f.Code
		}
	}
	return in
}

var titleCaser = cases.Title(language.English)

// Title title-cases s, treating underscores as spaces ("home_run" becomes
// "Home Run").
func Title(s string) string {
	return titleCaser.String(strings.ReplaceAll(s, "_", " "))
}

var (
	nonWordRE    = regexp.MustCompile(`[^\w\s]`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// CleanColumnNames strips punctuation from column names and joins words
// with underscores.
func CleanColumnNames(t *table.Table) *table.Table {
	return t.Rename(func(name string) string {
		name = nonWordRE.ReplaceAllString(name, "")
		name = whitespaceRE.ReplaceAllString(name, "_")
		return strings.TrimSpace(name)
	})
}

// DataURIPrefix starts every encoded PNG.
const DataURIPrefix = "data:image/png;base64,"

// ImageDataURI wraps PNG bytes in a data URI.
func ImageDataURI(png []byte) string {
	return DataURIPrefix + base64.StdEncoding.EncodeToString(png)
}

// EncodeImageBase64 reads a rendered image buffer and returns its data URI.
func EncodeImageBase64(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read image buffer: %w", err)
	}
	return ImageDataURI(b), nil
}
