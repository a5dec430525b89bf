package chart

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var titlePatterns = []struct {
	typ Type
	re  *regexp.Regexp
}{
	{SprayChart, regexp.MustCompile(`# (.+) - (\d+) Spray Chart`)},
	{ComparisonChart, regexp.MustCompile(`# (\d+) (Batting|Pitching) Comparison`)},
}

var imageRE = regexp.MustCompile(`!\[.*?\]\(data:image/png;base64,([^)]+)\)`)

// DetectType reports which chart title pattern text contains.
func DetectType(text string) (Type, bool) {
	for _, p := range titlePatterns {
		if p.re.MatchString(text) {
			return p.typ, true
		}
	}
	return "", false
}

type lineKind int

const (
	lineOther lineKind = iota
	lineTitle
	lineImage
	lineCategory
	lineDetail
	lineTableRow
)

// classify tags one trimmed line. inSection is true once a category line has
// been seen; detail lines only count inside a section.
func classify(line string, inSection bool) lineKind {
	switch {
	case strings.HasPrefix(line, "# "):
		return lineTitle
	case imageRE.MatchString(line):
		return lineImage
	case IsCategory(line):
		return lineCategory
	case strings.HasPrefix(line, "-") && inSection:
		return lineDetail
	case strings.Contains(line, "|") && !strings.HasPrefix(line, "#"):
		return lineTableRow
	}
	return lineOther
}

// Extract recovers a ChartData from formatted tool output in one pass over
// its lines. Unrecognized lines are dropped.
func Extract(text string, typ Type) ChartData {
	cd := ChartData{Type: typ, Insights: []string{}, TabularData: []string{}}
	inSection := false
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		switch classify(line, inSection) {
		case lineTitle:
			if cd.Title == "" {
				cd.Title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
			}
		case lineImage:
			if cd.ImageData == "" {
				cd.ImageData = imageRE.FindStringSubmatch(line)[1]
			}
		case lineCategory:
			inSection = true
			cd.Insights = append(cd.Insights, line)
		case lineDetail:
			cd.Insights = append(cd.Insights, line)
		case lineTableRow:
			cd.TabularData = append(cd.TabularData, line)
		}
	}
	return cd
}

// TabularSummary lays the insights out as markdown tables, one per category.
func TabularSummary(cd ChartData) string {
	var rows []string
	for _, insight := range cd.Insights {
		insight = strings.TrimSpace(insight)
		switch {
		case IsCategory(insight):
			if len(rows) > 0 {
				rows = append(rows, "")
			}
			rows = append(rows, fmt.Sprintf("| **%s** | |", stripEmphasis(insight)), "| --- | --- |")
		case strings.HasPrefix(insight, "-"):
			clean := strings.TrimSpace(strings.TrimPrefix(insight, "-"))
			if k, v, ok := strings.Cut(clean, ":"); ok {
				rows = append(rows, fmt.Sprintf("| %s | %s |", strings.TrimSpace(k), strings.TrimSpace(v)))
			} else {
				rows = append(rows, fmt.Sprintf("| %s | |", clean))
			}
		}
	}
	return strings.Join(rows, "\n")
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// markdownHTML renders markdown (GFM tables enabled) to HTML. Raw HTML in
// the source is omitted by the renderer.
func markdownHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// Document is an HTML rendering of a chart with its tabular summary.
type Document struct {
	Title   string `json:"title"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

// FormatForArtifact renders the chart image next to its tabular summary.
func FormatForArtifact(cd ChartData) (Document, error) {
	summary, err := markdownHTML(TabularSummary(cd))
	if err != nil {
		return Document{}, err
	}
	content, err := render(summaryTemplate, summaryView{
		Title:    cd.titleOr(defaultTitle),
		ImageURI: safeURL(cd.imageURI()),
		Summary:  safeHTML(summary),
	})
	if err != nil {
		return Document{}, err
	}
	return Document{Title: cd.Title, Type: ArtifactType, Content: content}, nil
}
