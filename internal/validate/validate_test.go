package validate

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(year int) Validator {
	return Validator{Now: func() time.Time { return time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC) }}
}

func requireValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "want *ValidationError, got %v", err)
	return ve
}

func TestSeason(t *testing.T) {
	v := fixedClock(2026)

	for _, y := range []int{1871, 1950, 2024, 2026, 2027} {
		got, err := v.Season(y)
		require.NoError(t, err, "season %d", y)
		assert.Equal(t, y, got)
	}
	for _, y := range []int{1870, 2028, 0, -5} {
		_, err := v.Season(y)
		requireValidationError(t, err)
	}

	got, err := v.Season("2019")
	require.NoError(t, err)
	assert.Equal(t, 2019, got)

	_, err = v.Season("twenty")
	assert.Equal(t, "Season must be a valid year", requireValidationError(t, err).Msg)

	_, err = v.Season(2028)
	assert.Equal(t, "Season cannot be after 2027", requireValidationError(t, err).Msg)
}

func TestPlayerName(t *testing.T) {
	var v Validator

	got, err := v.PlayerName("Mike Trout")
	require.NoError(t, err)
	assert.Equal(t, "Mike Trout", got)

	got, err = v.PlayerName("  Travis d'Arnaud ")
	require.NoError(t, err)
	assert.Equal(t, "Travis d'Arnaud", got)

	_, err = v.PlayerName("J.D. Martinez-Smith")
	assert.NoError(t, err)

	cases := map[string]string{
		"":                     "Player name must be a non-empty string",
		"   ":                  "Player name must be a non-empty string",
		"A":                    "Player name must be at least 2 characters long",
		"Robert'); DROP TABLE": "Player name contains invalid characters",
		"Player 99":            "Player name contains invalid characters",
	}
	for in, want := range cases {
		_, err := v.PlayerName(in)
		assert.Equal(t, want, requireValidationError(t, err).Msg, "input %q", in)
	}

	long := "Abcdefghij Abcdefghij Abcdefghij Abcdefghij Abcdefghij"
	_, err = v.PlayerName(long)
	assert.Equal(t, "Player name is unusually long", requireValidationError(t, err).Msg)
}

func TestDate(t *testing.T) {
	var v Validator
	for _, in := range []string{"2023-04-01", "04/01/2023", "04-01-2023", "2023/04/01"} {
		got, err := v.Date(in)
		require.NoError(t, err, in)
		assert.Equal(t, "2023-04-01", got, in)
	}
	unpadded := map[string]string{
		"1/5/2024": "2024-01-05",
		"2024-1-5": "2024-01-05",
		"3-7-2023": "2023-03-07",
		"2023/3/7": "2023-03-07",
	}
	for in, want := range unpadded {
		got, err := v.Date(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	s, e, err := v.StatcastRange("4/5/2015", "10/4/2015")
	require.NoError(t, err)
	assert.Equal(t, "2015-04-05", s)
	assert.Equal(t, "2015-10-04", e)

	_, err = v.Date("April 1 2023")
	assert.Contains(t, requireValidationError(t, err).Msg, "Invalid date format")
}

func TestDateRange(t *testing.T) {
	var v Validator

	s, e, err := v.DateRange("03/28/2024", "2024-09-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-28", s)
	assert.Equal(t, "2024-09-29", e)

	_, _, err = v.DateRange("2024-05-01", "2024-05-01")
	assert.Equal(t, "Start date must be before end date", requireValidationError(t, err).Msg)

	_, _, err = v.DateRange("2024-05-02", "2024-05-01")
	requireValidationError(t, err)

	// 5*365 days is the limit; leap days push a calendar five years over it.
	_, _, err = v.DateRange("2015-01-01", "2019-12-31")
	assert.NoError(t, err)
	_, _, err = v.DateRange("2015-01-01", "2020-01-02")
	assert.Equal(t, "Date range cannot exceed 5 years", requireValidationError(t, err).Msg)
}

func TestStatcastRange(t *testing.T) {
	var v Validator
	_, _, err := v.StatcastRange("2014-04-01", "2015-04-01")
	assert.Equal(t, "Statcast data is only available from 2015 onwards", requireValidationError(t, err).Msg)

	s, e, err := v.StatcastRange("2015-04-05", "2015-10-04")
	require.NoError(t, err)
	assert.Equal(t, "2015-04-05", s)
	assert.Equal(t, "2015-10-04", e)
}

func TestTeam(t *testing.T) {
	var v Validator
	got, err := v.Team("bos")
	require.NoError(t, err)
	assert.Equal(t, "BOS", got)

	got, err = v.Team(" nyy ")
	require.NoError(t, err)
	assert.Equal(t, "NYY", got)

	_, err = v.Team("XYZ")
	msg := requireValidationError(t, err).Msg
	assert.Contains(t, msg, "Invalid team abbreviation: XYZ")
	assert.Contains(t, msg, "ARI, ATL, BAL")

	assert.Len(t, Teams(), 30)
}

func TestPositionAndSource(t *testing.T) {
	var v Validator
	got, err := v.Position("ss")
	require.NoError(t, err)
	assert.Equal(t, "SS", got)
	_, err = v.Position("QB")
	requireValidationError(t, err)

	src, err := v.StatSource(" FG ")
	require.NoError(t, err)
	assert.Equal(t, "fg", src)
	_, err = v.StatSource("espn")
	requireValidationError(t, err)
}

func TestPageSizeAndNumericRange(t *testing.T) {
	var v Validator
	n, err := v.PageSize("25", 50)
	require.NoError(t, err)
	assert.Equal(t, 25, n)

	_, err = v.PageSize(0, 50)
	assert.Equal(t, "Page size must be at least 1", requireValidationError(t, err).Msg)
	_, err = v.PageSize(51, 50)
	assert.Equal(t, "Page size cannot exceed 50", requireValidationError(t, err).Msg)

	f, err := v.NumericRange(50, Bound(0), Bound(700), "qual")
	require.NoError(t, err)
	assert.Equal(t, 50.0, f)

	_, err = v.NumericRange(701, Bound(0), Bound(700), "qual")
	assert.Equal(t, "qual cannot exceed 700", requireValidationError(t, err).Msg)
	_, err = v.NumericRange(-1, Bound(0), nil, "qual")
	assert.Equal(t, "qual must be at least 0", requireValidationError(t, err).Msg)
	_, err = v.NumericRange("abc", nil, nil, "")
	assert.Equal(t, "parameter must be a valid number", requireValidationError(t, err).Msg)
}

func TestBoolean(t *testing.T) {
	var v Validator
	for _, in := range []any{true, "true", "1", "YES", " on "} {
		got, err := v.Boolean(in, "flag")
		require.NoError(t, err)
		assert.True(t, got, "%v", in)
	}
	for _, in := range []any{false, "false", "0", "No", "off"} {
		got, err := v.Boolean(in, "flag")
		require.NoError(t, err)
		assert.False(t, got, "%v", in)
	}
	_, err := v.Boolean("maybe", "flag")
	assert.Equal(t, "flag must be a boolean value (true/false)", requireValidationError(t, err).Msg)
	_, err = v.Boolean(1, "flag")
	requireValidationError(t, err)
}

func TestSanitizeAndSuggestions(t *testing.T) {
	var v Validator
	assert.Equal(t, "script trout", v.Sanitize(` <script> trout"; `))

	cleaned, sugg, err := v.SuggestPlayerNames("Ken Griffey jr")
	require.NoError(t, err)
	assert.Equal(t, "Ken Griffey jr", cleaned)
	assert.Contains(t, sugg, "Ken Griffey Jr.")

	_, sugg, err = v.SuggestPlayerNames("Mike Trout")
	require.NoError(t, err)
	assert.Equal(t, []string{"Trout, Mike"}, sugg)
}

func TestOneOf(t *testing.T) {
	var v Validator
	got, err := v.OneOf("AL", []string{"all", "al", "nl"}, "league")
	require.NoError(t, err)
	assert.Equal(t, "al", got)

	_, err = v.OneOf("xl", []string{"all", "al", "nl"}, "league")
	assert.Equal(t, "Invalid league. Valid options: all, al, nl", requireValidationError(t, err).Msg)
}
