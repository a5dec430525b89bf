// Package format turns statistics tables into markdown and derives short
// descriptive insights from them.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/diamondstats/baseball-mcp/internal/table"
)

// NoData is the body used for an empty table.
const NoData = "No data available."

// Markdown renders t as a pipe table under a "## title" heading. Float
// columns are rounded to three decimals and numeric columns right-aligned.
func Markdown(t *table.Table, title string) string {
	if t.Empty() {
		return fmt.Sprintf("## %s\n\n%s", title, NoData)
	}
	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "## %s\n\n", title)
	}
	b.WriteString(pipeTable(t))
	return b.String()
}

func pipeTable(t *table.Table) string {
	cells := make([][]string, len(t.Rows))
	widths := make([]int, len(t.Columns))
	for j, c := range t.Columns {
		widths[j] = max(runewidth.StringWidth(c.Name), 3)
	}
	for i, row := range t.Rows {
		cells[i] = make([]string, len(row))
		for j, v := range row {
			s := formatMarkdownCell(v, t.Columns[j].Kind)
			cells[i][j] = s
			widths[j] = max(widths[j], runewidth.StringWidth(s))
		}
	}

	var b strings.Builder
	writeRow := func(vals []string) {
		b.WriteString("|")
		for j, v := range vals {
			b.WriteString(" ")
			if t.Columns[j].IsNumeric() {
				b.WriteString(runewidth.FillLeft(v, widths[j]))
			} else {
				b.WriteString(runewidth.FillRight(v, widths[j]))
			}
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}

	writeRow(t.Names())
	b.WriteString("|")
	for j, c := range t.Columns {
		dashes := strings.Repeat("-", widths[j]+1)
		if c.IsNumeric() {
			b.WriteString(dashes + ":|")
		} else {
			b.WriteString(":" + dashes + "|")
		}
	}
	b.WriteString("\n")
	for _, row := range cells {
		writeRow(row)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func formatMarkdownCell(v any, kind table.Kind) string {
	if f, ok := v.(float64); ok && kind == table.KindFloat {
		return table.FormatCell(Round3(f))
	}
	return strings.ReplaceAll(table.FormatCell(v), "|", `\|`)
}

// Round3 rounds to three decimal places.
func Round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
