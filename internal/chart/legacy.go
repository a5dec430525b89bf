package chart

import (
	"regexp"
	"strings"
)

// MarkerPrefix tags a serialized artifact inside plain text output.
const MarkerPrefix = "CHART_ARTIFACT:"

// Detection describes chart content found in a text response.
type Detection struct {
	// Payload holds the text after MarkerPrefix when the response carries a
	// serialized artifact.
	Payload string
	// Raw is set when the response only matches a chart title or image
	// pattern and still needs Extract.
	Raw string
}

func (d Detection) Marked() bool { return d.Payload != "" }

// DetectResponse looks for a serialized artifact marker first and falls back
// to the raw chart patterns.
func DetectResponse(text string) (Detection, bool) {
	if i := strings.Index(text, MarkerPrefix); i >= 0 {
		payload := strings.TrimSpace(text[i+len(MarkerPrefix):])
		if payload == "" {
			return Detection{}, false
		}
		return Detection{Payload: payload}, true
	}
	if _, ok := DetectType(text); ok || imageRE.MatchString(text) {
		return Detection{Raw: text}, true
	}
	return Detection{}, false
}

// InlineMarkdown renders cd as markdown with the image embedded as a data
// URI. Hosts that cannot display HTML documents get this form.
func InlineMarkdown(cd ChartData) string {
	title := cd.titleOr(defaultTitle)
	var b strings.Builder
	b.WriteString("# " + title + "\n\n")
	if uri := cd.imageURI(); uri != "" {
		b.WriteString("![" + title + "](" + uri + ")\n\n")
	}
	if len(cd.Insights) > 0 {
		b.WriteString("## Insights\n\n")
		for i, insight := range cd.Insights {
			insight = strings.TrimSpace(insight)
			if insight == "" {
				continue
			}
			if i > 0 && IsCategory(insight) {
				b.WriteString("\n")
			}
			b.WriteString(insight + "\n")
		}
	}
	if len(cd.TabularData) > 0 {
		b.WriteString("\n")
		for _, row := range cd.TabularData {
			b.WriteString(row + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

type Summary struct {
	Title      string   `json:"title"`
	KeyMetrics []string `json:"key_metrics"`
	Sections   []string `json:"insights"`
}

var (
	headingRE = regexp.MustCompile(`# (.+)`)
	metricRE  = regexp.MustCompile(`- (.+): (.+)`)
	sectionRE = regexp.MustCompile(`(📊|🎯|⚡) \*\*(.+?)\*\*`)
)

const maxKeyMetrics = 5

// ExtractSummary pulls the heading, the first few "- key: value" metrics and
// the section names out of a chart response.
func ExtractSummary(text string) Summary {
	s := Summary{KeyMetrics: []string{}, Sections: []string{}}
	if m := headingRE.FindStringSubmatch(text); m != nil {
		s.Title = m[1]
	}
	for _, m := range metricRE.FindAllStringSubmatch(text, maxKeyMetrics) {
		s.KeyMetrics = append(s.KeyMetrics, m[1]+": "+m[2])
	}
	for _, m := range sectionRE.FindAllStringSubmatch(text, -1) {
		s.Sections = append(s.Sections, m[2])
	}
	return s
}

var compactKeywords = []string{"spray chart", "comparison", "inline", "compact"}

// ShouldUseCompact reports whether a response reads like a chart that fits
// the compact layout.
func ShouldUseCompact(text string) bool {
	lower := strings.ToLower(text)
	for _, k := range compactKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
