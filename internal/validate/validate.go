// Package validate normalizes and range-checks tool inputs.
//
// Every check returns either the normalized value or a *ValidationError whose
// message is shown to the caller verbatim.
package validate

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ValidationError is a terminal input error for the current call.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func errorf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

const (
	FirstSeason       = 1871
	FirstStatcastYear = 2015
	maxRangeDays      = 365 * 5
	dateLayout        = "2006-01-02"
)

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"01-02-2006",
	"2006/01/02",
	"1/2/2006",
	"1-2-2006",
	"2006-1-2",
	"2006/1/2",
}

var playerNameRE = regexp.MustCompile(`^[a-zA-Z\s\-'.]+$`)

var teams = newSet(
	"LAA", "HOU", "OAK", "TOR", "ATL", "MIL", "STL", "CHC",
	"ARI", "LAD", "SF", "CLE", "SEA", "MIA", "NYM", "WSH",
	"BAL", "SD", "PHI", "PIT", "TEX", "TB", "BOS", "CIN",
	"COL", "KC", "DET", "MIN", "CWS", "NYY",
)

var positions = newSet("C", "1B", "2B", "3B", "SS", "LF", "CF", "RF", "DH", "P")

var statSources = newSet("fangraphs", "baseball_reference", "bref", "fg")

var (
	truthy = newSet("true", "1", "yes", "on")
	falsy  = newSet("false", "0", "no", "off")
)

type set map[string]struct{}

func newSet(items ...string) set {
	s := make(set, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

func (s set) has(v string) bool {
	_, ok := s[v]
	return ok
}

func (s set) sorted() string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return strings.Join(out, ", ")
}

// Teams returns the valid team codes, sorted.
func Teams() []string {
	return strings.Split(teams.sorted(), ", ")
}

// Validator carries the clock used for season bounds. The zero value uses
// time.Now.
type Validator struct {
	Now func() time.Time
}

func (v Validator) now() time.Time {
	if v.Now != nil {
		return v.Now()
	}
	return time.Now()
}

func (v Validator) PlayerName(name string) (string, error) {
	cleaned := strings.TrimSpace(name)
	if cleaned == "" {
		return "", errorf("Player name must be a non-empty string")
	}
	n := len([]rune(cleaned))
	if n < 2 {
		return "", errorf("Player name must be at least 2 characters long")
	}
	if n > 50 {
		return "", errorf("Player name is unusually long")
	}
	if !playerNameRE.MatchString(cleaned) {
		return "", errorf("Player name contains invalid characters")
	}
	return cleaned, nil
}

// Season accepts an int or a numeric string and checks it against
// [1871, current year + 1].
func (v Validator) Season(season any) (int, error) {
	n, ok := toInt(season)
	if !ok {
		return 0, errorf("Season must be a valid year")
	}
	if n < FirstSeason {
		return 0, errorf("Season cannot be before %d", FirstSeason)
	}
	maxSeason := v.now().Year() + 1
	if n > maxSeason {
		return 0, errorf("Season cannot be after %d", maxSeason)
	}
	return n, nil
}

func (v Validator) Date(s string) (string, error) {
	t, err := parseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(dateLayout), nil
}

func parseDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, errorf("Date must be a non-empty string")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errorf("Invalid date format: %s. Use YYYY-MM-DD format", s)
}

// DateRange requires start strictly before end and a span of at most five
// years.
func (v Validator) DateRange(start, end string) (string, string, error) {
	s, err := parseDate(start)
	if err != nil {
		return "", "", err
	}
	e, err := parseDate(end)
	if err != nil {
		return "", "", err
	}
	if !s.Before(e) {
		return "", "", errorf("Start date must be before end date")
	}
	if days := int(e.Sub(s).Hours() / 24); days > maxRangeDays {
		return "", "", errorf("Date range cannot exceed 5 years")
	}
	return s.Format(dateLayout), e.Format(dateLayout), nil
}

// StatcastRange is DateRange plus the 2015 Statcast floor.
func (v Validator) StatcastRange(start, end string) (string, string, error) {
	s, e, err := v.DateRange(start, end)
	if err != nil {
		return "", "", err
	}
	if year, _ := strconv.Atoi(s[:4]); year < FirstStatcastYear {
		return "", "", errorf("Statcast data is only available from %d onwards", FirstStatcastYear)
	}
	return s, e, nil
}

func (v Validator) Team(team string) (string, error) {
	if strings.TrimSpace(team) == "" {
		return "", errorf("Team must be a non-empty string")
	}
	upper := strings.ToUpper(strings.TrimSpace(team))
	if !teams.has(upper) {
		return "", errorf("Invalid team abbreviation: %s. Valid teams: %s", team, teams.sorted())
	}
	return upper, nil
}

func (v Validator) Position(pos string) (string, error) {
	if strings.TrimSpace(pos) == "" {
		return "", errorf("Position must be a non-empty string")
	}
	upper := strings.ToUpper(strings.TrimSpace(pos))
	if !positions.has(upper) {
		return "", errorf("Invalid position: %s. Valid positions: %s", pos, positions.sorted())
	}
	return upper, nil
}

func (v Validator) StatSource(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", errorf("Source must be a non-empty string")
	}
	lower := strings.ToLower(strings.TrimSpace(src))
	if !statSources.has(lower) {
		return "", errorf("Invalid statistics source: %s. Valid sources: %s", src, statSources.sorted())
	}
	return lower, nil
}

// PageSize accepts an int or numeric string in [1, max].
func (v Validator) PageSize(size any, max int) (int, error) {
	n, ok := toInt(size)
	if !ok {
		return 0, errorf("Page size must be a valid integer")
	}
	if n < 1 {
		return 0, errorf("Page size must be at least 1")
	}
	if n > max {
		return 0, errorf("Page size cannot exceed %d", max)
	}
	return n, nil
}

// NumericRange coerces value to float64 and applies the optional bounds.
func (v Validator) NumericRange(value any, min, max *float64, name string) (float64, error) {
	if name == "" {
		name = "parameter"
	}
	f, ok := toFloat(value)
	if !ok {
		return 0, errorf("%s must be a valid number", name)
	}
	if min != nil && f < *min {
		return 0, errorf("%s must be at least %s", name, formatBound(*min))
	}
	if max != nil && f > *max {
		return 0, errorf("%s cannot exceed %s", name, formatBound(*max))
	}
	return f, nil
}

// Bound is a helper for NumericRange limits.
func Bound(f float64) *float64 { return &f }

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (v Validator) Boolean(value any, name string) (bool, error) {
	if name == "" {
		name = "parameter"
	}
	switch x := value.(type) {
	case bool:
		return x, nil
	case string:
		s := strings.ToLower(strings.TrimSpace(x))
		if truthy.has(s) {
			return true, nil
		}
		if falsy.has(s) {
			return false, nil
		}
	}
	return false, errorf("%s must be a boolean value (true/false)", name)
}

// OneOf lower-cases value and checks it against options.
func (v Validator) OneOf(value string, options []string, name string) (string, error) {
	lower := strings.ToLower(strings.TrimSpace(value))
	for _, o := range options {
		if lower == o {
			return lower, nil
		}
	}
	return "", errorf("Invalid %s. Valid options: %s", name, strings.Join(options, ", "))
}

var sanitizeRE = regexp.MustCompile(`[<>"';]`)

// Sanitize strips markup and quoting characters from free text.
func (v Validator) Sanitize(text string) string {
	return strings.TrimSpace(sanitizeRE.ReplaceAllString(text, ""))
}

var nameAbbreviations = []struct{ abbr, full string }{
	{"jr", "Jr."},
	{"sr", "Sr."},
	{"ii", "II"},
	{"iii", "III"},
}

// SuggestPlayerNames validates name and proposes alternative spellings to
// retry a failed lookup with.
func (v Validator) SuggestPlayerNames(name string) (string, []string, error) {
	cleaned, err := v.PlayerName(name)
	if err != nil {
		return "", nil, err
	}
	var suggestions []string
	parts := strings.Fields(cleaned)
	if !strings.Contains(cleaned, ",") && len(parts) == 2 {
		suggestions = append(suggestions, parts[1]+", "+parts[0])
	}
	lower := strings.ToLower(cleaned)
	for _, a := range nameAbbreviations {
		if strings.Contains(lower, a.abbr) && !strings.Contains(cleaned, a.full) {
			suggestions = append(suggestions, strings.ReplaceAll(cleaned, a.abbr, a.full))
		}
	}
	return cleaned, suggestions, nil
}

func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case float64:
		if x != math.Trunc(x) {
			return 0, false
		}
		return int(x), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		return n, err == nil
	default:
		return 0, false
	}
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case float64:
		return x, !math.IsNaN(x)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil && !math.IsNaN(f)
	default:
		return 0, false
	}
}
