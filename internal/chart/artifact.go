package chart

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/google/uuid"
)

const (
	ArtifactType = "text/html"
	defaultTitle = "Baseball Chart"
	idPrefix     = "baseball_chart_"
)

// Artifact is a renderable document handed to the host. ID is a display
// handle only.
type Artifact struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	ArtifactType string `json:"artifact_type"`
}

// NewID returns a fresh artifact id.
func NewID() string {
	return idPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

type metricView struct {
	Label string
	Value string
}

type compactView struct {
	Title    string
	ImageURI template.URL
	Metrics  []metricView
}

type insightView struct {
	Text     string
	Category bool
}

type fullView struct {
	Title    string
	ImageURI template.URL
	Insights []insightView
	Table    template.HTML
}

type summaryView struct {
	Title    string
	ImageURI template.URL
	Summary  template.HTML
}

// NewArtifact renders cd as a complete HTML document. Compact mode shows the
// image beside headline metric cards; full mode lists every insight and the
// chart's data table. Missing images and empty insights fall back to
// placeholder text, so every call yields a whole document.
func NewArtifact(cd ChartData, compact bool) (Artifact, error) {
	var (
		content string
		err     error
	)
	if compact {
		content, err = compactContent(cd)
	} else {
		content, err = fullContent(cd)
	}
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{
		ID:           NewID(),
		Title:        cd.titleOr(defaultTitle),
		Content:      content,
		ArtifactType: ArtifactType,
	}, nil
}

func compactContent(cd ChartData) (string, error) {
	view := compactView{
		Title:    cd.titleOr(defaultTitle),
		ImageURI: safeURL(cd.imageURI()),
	}
	for _, m := range SummaryMetrics(cd.Insights).All() {
		view.Metrics = append(view.Metrics, metricView{Label: m.Label, Value: m.Value})
	}
	return render(compactTemplate, view)
}

func fullContent(cd ChartData) (string, error) {
	view := fullView{
		Title:    cd.titleOr(defaultTitle),
		ImageURI: safeURL(cd.imageURI()),
		Insights: insightItems(cd.Insights),
	}
	if len(cd.TabularData) > 0 {
		tbl, err := markdownHTML(strings.Join(cd.TabularData, "\n"))
		if err != nil {
			return "", err
		}
		view.Table = safeHTML(tbl)
	}
	return render(fullTemplate, view)
}

func insightItems(insights []string) []insightView {
	out := make([]insightView, 0, len(insights))
	for _, insight := range insights {
		insight = strings.TrimSpace(insight)
		switch {
		case insight == "":
		case IsCategory(insight):
			out = append(out, insightView{Text: stripEmphasis(insight), Category: true})
		case strings.HasPrefix(insight, "- "):
			out = append(out, insightView{Text: strings.TrimPrefix(insight, "- ")})
		default:
			out = append(out, insightView{Text: insight})
		}
	}
	return out
}

// ChartResponse pairs an artifact with a short plain-text summary for hosts
// that show both.
type ChartResponse struct {
	Artifact Artifact `json:"artifact"`
	Summary  string   `json:"summary"`
}

const maxHighlights = 3

func NewChartResponse(cd ChartData, compact bool) (ChartResponse, error) {
	art, err := NewArtifact(cd, compact)
	if err != nil {
		return ChartResponse{}, err
	}
	mode := "detailed"
	if compact {
		mode = "compact"
	}
	lines := []string{
		fmt.Sprintf("I've created a %s chart display for: **%s**", mode, cd.titleOr("Chart")),
		"",
		"**Key Highlights:**",
	}
	for i, insight := range cd.Insights {
		if i == maxHighlights {
			break
		}
		if strings.TrimSpace(insight) == "" || IsCategory(insight) {
			continue
		}
		clean := stripEmphasis(strings.ReplaceAll(insight, "- ", ""))
		lines = append(lines, "• "+clean)
	}
	if len(cd.Insights) > maxHighlights {
		lines = append(lines, "• ... and more details in the chart above")
	}
	return ChartResponse{Artifact: art, Summary: strings.Join(lines, "\n")}, nil
}

// safeURL marks a data URI built by imageURI as trusted for src attributes.
func safeURL(uri string) template.URL { return template.URL(uri) }

// safeHTML marks goldmark output (raw HTML disabled) as trusted.
func safeHTML(s string) template.HTML { return template.HTML(s) }

func render(t *template.Template, view any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return strings.TrimSpace(buf.String()), nil
}
