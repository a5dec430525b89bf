// Package chart packages rendered charts for a host UI.
//
// A ChartData record carries a chart's title, PNG payload, insight lines and
// markdown table rows. NewArtifact turns it into a self-contained HTML
// document. Detect and Extract go the other way and recover a ChartData from
// formatted text; that direction is a best-effort heuristic, so callers that
// already hold a ChartData should pass it along directly.
package chart

import (
	"encoding/base64"
	"strings"
)

type Type string

const (
	SprayChart      Type = "spray_chart"
	ComparisonChart Type = "comparison_chart"
)

// Category glyphs open an insight section. Detail lines start with "-".
const (
	GlyphSummary  = "📊"
	GlyphFocus    = "🎯"
	GlyphVelocity = "⚡"
)

var categoryGlyphs = []string{GlyphSummary, GlyphFocus, GlyphVelocity}

const dataURIPrefix = "data:image/png;base64,"

type ChartData struct {
	Type        Type     `json:"type"`
	Title       string   `json:"title"`
	ImageData   string   `json:"image_data"`
	Insights    []string `json:"insights"`
	TabularData []string `json:"tabular_data"`
}

// IsCategory reports whether an insight line is a category header.
func IsCategory(line string) bool {
	line = strings.TrimSpace(line)
	for _, g := range categoryGlyphs {
		if strings.HasPrefix(line, g) {
			return true
		}
	}
	return false
}

// SetImage stores a PNG payload given either bare base64 or a data URI.
func (cd *ChartData) SetImage(data string) {
	cd.ImageData = strings.TrimPrefix(strings.TrimSpace(data), dataURIPrefix)
}

// imageURI returns the data URI for the chart image, or "" when the payload
// is missing or not valid base64.
func (cd ChartData) imageURI() string {
	data := strings.TrimPrefix(strings.TrimSpace(cd.ImageData), dataURIPrefix)
	if data == "" {
		return ""
	}
	if _, err := base64.StdEncoding.DecodeString(data); err != nil {
		return ""
	}
	return dataURIPrefix + data
}

func (cd ChartData) titleOr(def string) string {
	if strings.TrimSpace(cd.Title) == "" {
		return def
	}
	return cd.Title
}

func stripEmphasis(s string) string {
	return strings.ReplaceAll(s, "*", "")
}
