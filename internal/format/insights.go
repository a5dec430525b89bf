package format

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/diamondstats/baseball-mcp/internal/table"
)

// NoAnalysis is the single insight returned for an empty table.
const NoAnalysis = "No data available for analysis."

// identityColumns is searched in order for a column naming each row.
var identityColumns = []string{"Name", "Player", "Team", "name", "player", "team"}

const maxInsightColumns = 3

// SummaryInsights returns a record-count line, an optional context line and
// up to three extreme-value lines, one per leading numeric column.
func SummaryInsights(t *table.Table, context string) []string {
	if t.Empty() {
		return []string{NoAnalysis}
	}
	out := []string{fmt.Sprintf("📊 **Dataset contains %d records**", t.Len())}
	if context != "" {
		out = append(out, fmt.Sprintf("🔍 **Context**: %s", context))
	}

	nameCol := ""
	for _, c := range identityColumns {
		if t.Has(c) {
			nameCol = c
			break
		}
	}

	numeric := t.NumericColumns()
	if len(numeric) > maxInsightColumns {
		numeric = numeric[:maxInsightColumns]
	}
	for _, col := range numeric {
		maxIdx, minIdx := extremes(t, col)
		if maxIdx < 0 {
			continue
		}
		maxVal := table.FormatCell(t.Value(maxIdx, col))
		minVal := table.FormatCell(t.Value(minIdx, col))
		if nameCol != "" {
			out = append(out, fmt.Sprintf("🏆 **%s**: Highest = %s (%s), Lowest = %s (%s)",
				col, maxVal, t.Text(maxIdx, nameCol), minVal, t.Text(minIdx, nameCol)))
		} else {
			out = append(out, fmt.Sprintf("📈 **%s**: Range = %s to %s", col, minVal, maxVal))
		}
	}
	return out
}

// JoinInsights renders insight lines as a markdown block.
func JoinInsights(lines []string) string {
	return strings.Join(lines, "\n")
}

// extremes returns the first row holding the column maximum and the first
// row holding the minimum, or -1 when every cell is missing.
func extremes(t *table.Table, col string) (maxIdx, minIdx int) {
	maxIdx, minIdx = -1, -1
	var hi, lo float64
	for i := range t.Rows {
		f, ok := t.Float(i, col)
		if !ok {
			continue
		}
		if maxIdx < 0 || f > hi {
			hi, maxIdx = f, i
		}
		if minIdx < 0 || f < lo {
			lo, minIdx = f, i
		}
	}
	return maxIdx, minIdx
}

// ColumnValues returns the non-missing numeric values of col.
func ColumnValues(t *table.Table, col string) []float64 {
	out := make([]float64, 0, t.Len())
	for i := range t.Rows {
		if f, ok := t.Float(i, col); ok {
			out = append(out, f)
		}
	}
	return out
}

// StatisticalContext summarizes one numeric column. It returns "" when the
// column is absent or has no values.
func StatisticalContext(t *table.Table, col string) string {
	if t.Empty() || !t.Has(col) {
		return ""
	}
	values := ColumnValues(t, col)
	if len(values) == 0 {
		return ""
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	return fmt.Sprintf(`
### Statistical Summary for %s
- **Count**: %d
- **Average**: %.3f
- **Median**: %.3f
- **Range**: %.3f - %.3f
- **25th-75th Percentile**: %.3f - %.3f
`, col, len(values), Mean(values), Quantile(sorted, 0.5),
		sorted[0], sorted[len(sorted)-1],
		Quantile(sorted, 0.25), Quantile(sorted, 0.75))
}

func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Quantile uses linear interpolation between closest ranks. sorted must be
// in ascending order.
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}

var keyMetrics = map[string][]string{
	"batting":  {"AVG", "OBP", "SLG", "OPS", "wRC+", "HR", "RBI"},
	"pitching": {"ERA", "WHIP", "K/9", "BB/9", "FIP", "xFIP", "WAR"},
}

// PlayerStatsResponse formats one player's season table and appends the
// statistical context of the first key metric present.
func PlayerStatsResponse(t *table.Table, player string, season int, statType string) string {
	if t.Empty() {
		return fmt.Sprintf("No %s statistics found for %s in %d.", statType, player, season)
	}
	title := fmt.Sprintf("%s - %d %s Statistics", player, season, Title(statType))
	out := Markdown(t, title)
	for _, m := range keyMetrics[statType] {
		if t.Has(m) {
			out += StatisticalContext(t, m)
			break
		}
	}
	return out
}
