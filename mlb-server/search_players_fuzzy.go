package main

import (
	"context"
	"fmt"

	"github.com/diamondstats/baseball-mcp/internal/format"
	"github.com/diamondstats/baseball-mcp/internal/reply"
	"github.com/diamondstats/baseball-mcp/internal/source"
	"github.com/diamondstats/baseball-mcp/internal/table"
	"github.com/diamondstats/baseball-mcp/internal/validate"
)

type SearchPlayersFuzzyArgs struct {
	SearchTerm     string `json:"search_term" jsonschema:"Partial name or search term (required)"`
	MinYearsPlayed *int   `json:"min_years_played,omitempty" jsonschema:"Minimum MLB seasons played, 0-30 (default 1)"`
	Limit          *int   `json:"limit,omitempty" jsonschema:"Maximum results (default 20, max 100)"`
}

// withYearsPlayed adds a years_played column computed from the career span.
func withYearsPlayed(players *table.Table) (*table.Table, error) {
	years := make([]any, players.Len())
	for i := range years {
		first, okFirst := players.Float(i, source.ColPlayedFirst)
		last, okLast := players.Float(i, source.ColPlayedLast)
		if okFirst && okLast {
			years[i] = int64(last - first + 1)
		}
	}
	return players.WithColumn(table.Column{Name: "years_played", Kind: table.KindInt}, years)
}

func buildSearchPlayersFuzzy(ctx context.Context, cfg ServerConfig, args SearchPlayersFuzzyArgs) (reply.Reply, error) {
	term := cfg.Validator.Sanitize(args.SearchTerm)
	if len([]rune(term)) < 2 {
		return reply.Reply{}, invalid("Search term must be at least 2 characters")
	}
	minYears, err := cfg.Validator.NumericRange(intOr(args.MinYearsPlayed, 1), validate.Bound(0), validate.Bound(30), "min_years_played")
	if err != nil {
		return reply.Reply{}, err
	}
	limit, err := cfg.Validator.PageSize(intOr(args.Limit, 20), 100)
	if err != nil {
		return reply.Reply{}, err
	}

	players, err := cfg.Source.LookupPlayer(ctx, term, true)
	if err != nil {
		return reply.Reply{}, err
	}
	if players.Empty() {
		return reply.Textf("❌ No players found matching '%s'", term), nil
	}

	if minYears > 0 {
		if players, err = withYearsPlayed(players); err != nil {
			return reply.Reply{}, err
		}
		players = players.Filter(func(i int) bool {
			n, ok := players.Float(i, "years_played")
			return ok && n >= minYears
		})
		if players.Empty() {
			return reply.Textf("❌ No players found matching '%s' with at least %d years played", term, int(minYears)), nil
		}
	}
	players = players.Head(limit)

	out := format.Markdown(players, fmt.Sprintf("Fuzzy Search Results for '%s'", term))
	insights := format.SummaryInsights(players, fmt.Sprintf("Searched for players matching '%s'", term))
	out += "\n\n### Search Insights\n" + format.JoinInsights(insights)
	return reply.Text(out), nil
}
