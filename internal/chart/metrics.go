package chart

import "strings"

// Metrics is an insertion-ordered label/value list. Setting an existing
// label replaces its value in place.
type Metrics struct {
	labels []string
	values map[string]string
}

func (m *Metrics) Set(label, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[label]; !ok {
		m.labels = append(m.labels, label)
	}
	m.values[label] = value
}

func (m *Metrics) Get(label string) (string, bool) {
	v, ok := m.values[label]
	return v, ok
}

func (m *Metrics) Len() int { return len(m.labels) }

// Metric is one label/value pair.
type Metric struct {
	Label string
	Value string
}

// All returns the pairs in insertion order.
func (m *Metrics) All() []Metric {
	out := make([]Metric, len(m.labels))
	for i, l := range m.labels {
		out[i] = Metric{Label: l, Value: m.values[l]}
	}
	return out
}

// SummaryMetrics picks the headline numbers out of insight lines:
// the total hit count, "- label: count (pct%)" detail lines, field
// distribution lines and the average exit velocity.
func SummaryMetrics(insights []string) *Metrics {
	m := &Metrics{}
	for _, insight := range insights {
		insight = strings.TrimSpace(insight)
		switch {
		case strings.Contains(insight, "Total Hits"):
			m.Set("Total Hits", stripEmphasis(strings.TrimSpace(lastField(insight))))
		case strings.HasPrefix(insight, "- ") && strings.Contains(insight, ":") && strings.Contains(insight, "%"):
			setPair(m, insight)
		case strings.Contains(insight, "Field:") && strings.Contains(insight, "%"):
			setPair(m, insight)
		case strings.Contains(insight, "Average:") && strings.Contains(insight, "mph"):
			m.Set("Avg Exit Velocity", strings.TrimSpace(lastField(insight)))
		}
	}
	return m
}

func lastField(s string) string {
	i := strings.LastIndex(s, ":")
	return s[i+1:]
}

// setPair records "label: value" lines that hold exactly one colon.
func setPair(m *Metrics, insight string) {
	parts := strings.Split(strings.ReplaceAll(insight, "- ", ""), ":")
	if len(parts) != 2 {
		return
	}
	m.Set(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
}
