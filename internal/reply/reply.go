// Package reply carries a tool's answer to the transport boundary: either
// plain text or a chart artifact with a short summary.
package reply

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/diamondstats/baseball-mcp/internal/chart"
)

type Kind string

const (
	KindText     Kind = "text"
	KindArtifact Kind = "artifact"
)

type Reply struct {
	Kind     Kind            `json:"kind"`
	Text     string          `json:"text,omitempty"`
	Artifact *chart.Artifact `json:"artifact,omitempty"`
	Summary  string          `json:"summary,omitempty"`
	// Failed marks validation and upstream errors.
	Failed bool `json:"failed,omitempty"`
}

func Text(s string) Reply { return Reply{Kind: KindText, Text: s} }

func Textf(format string, args ...any) Reply { return Text(fmt.Sprintf(format, args...)) }

// Failure is a text reply flagged as an error.
func Failure(s string) Reply { return Reply{Kind: KindText, Text: s, Failed: true} }

func FromArtifact(a chart.Artifact, summary string) Reply {
	return Reply{Kind: KindArtifact, Artifact: &a, Summary: summary}
}

// FromChart packages cd as an artifact reply with a highlights summary.
func FromChart(cd chart.ChartData, compact bool) (Reply, error) {
	resp, err := chart.NewChartResponse(cd, compact)
	if err != nil {
		return Reply{}, err
	}
	return FromArtifact(resp.Artifact, resp.Summary), nil
}

func (r Reply) IsArtifact() bool { return r.Kind == KindArtifact && r.Artifact != nil }

// String is the plain text a host without artifact support should show.
func (r Reply) String() string {
	if r.IsArtifact() {
		if r.Summary != "" {
			return r.Summary
		}
		return r.Artifact.Title
	}
	return r.Text
}

var ErrNoPayload = errors.New("reply: no chart artifact payload")

// Encode renders r in the prefixed text form: text replies unchanged,
// artifacts as MarkerPrefix followed by the artifact JSON.
func Encode(r Reply) (string, error) {
	if !r.IsArtifact() {
		return r.Text, nil
	}
	b, err := json.Marshal(r.Artifact)
	if err != nil {
		return "", fmt.Errorf("encode artifact: %w", err)
	}
	return chart.MarkerPrefix + string(b), nil
}

// Decode parses the prefixed text form. Text without the marker decodes to a
// text reply.
func Decode(s string) (Reply, error) {
	d, ok := chart.DetectResponse(s)
	if !ok || !d.Marked() {
		if strings.Contains(s, chart.MarkerPrefix) {
			return Reply{}, ErrNoPayload
		}
		return Text(s), nil
	}
	var a chart.Artifact
	if err := json.Unmarshal([]byte(d.Payload), &a); err != nil {
		return Reply{}, fmt.Errorf("decode artifact: %w", err)
	}
	if a.ArtifactType == "" {
		a.ArtifactType = chart.ArtifactType
	}
	return FromArtifact(a, ""), nil
}

// Detect recovers a reply from any text response. A marked payload decodes
// to its artifact; raw chart markdown is re-extracted and packaged.
func Detect(s string, compact bool) (Reply, bool, error) {
	d, ok := chart.DetectResponse(s)
	if !ok {
		return Reply{}, false, nil
	}
	if d.Marked() {
		r, err := Decode(s)
		return r, err == nil, err
	}
	typ, _ := chart.DetectType(d.Raw)
	r, err := FromChart(chart.Extract(d.Raw, typ), compact)
	if err != nil {
		return Reply{}, false, err
	}
	return r, true, nil
}
