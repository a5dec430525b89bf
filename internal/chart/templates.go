package chart

import "html/template"

const baseStyle = `
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; margin: 0; padding: 20px; background: #f8f9fa; color: #212529; }
.container { max-width: 1200px; margin: 0 auto; background: #fff; border-radius: 8px; box-shadow: 0 2px 8px rgba(0,0,0,0.08); overflow: hidden; }
.header { background: linear-gradient(135deg, #1e3c72 0%, #2a5298 100%); color: #fff; padding: 16px 24px; }
.header h1 { margin: 0; font-size: 1.5em; }
.chart-img { max-width: 100%; height: auto; border-radius: 4px; }
.placeholder { color: #6c757d; font-style: italic; }
table { border-collapse: collapse; width: 100%; font-size: 0.9em; }
th, td { border: 1px solid #dee2e6; padding: 6px 10px; text-align: left; }
th { background: #e9ecef; }
`

var compactTemplate = template.Must(template.New("compact").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>` + baseStyle + `
.content { display: flex; gap: 20px; padding: 20px; flex-wrap: wrap; }
.chart-section { flex: 2; min-width: 300px; text-align: center; }
.summary-section { flex: 1; min-width: 220px; }
.metric-card { background: #f1f3f5; border-left: 4px solid #2a5298; border-radius: 4px; padding: 10px 12px; margin-bottom: 10px; }
.metric-label { font-size: 0.8em; color: #495057; text-transform: uppercase; }
.metric-value { font-size: 1.2em; font-weight: 600; }
</style>
</head>
<body>
<div class="container">
<div class="header"><h1>{{.Title}}</h1></div>
<div class="content">
<div class="chart-section">
{{- if .ImageURI}}
<img class="chart-img" src="{{.ImageURI}}" alt="{{.Title}}">
{{- else}}
<p class="placeholder">No chart available</p>
{{- end}}
</div>
<div class="summary-section">
<h3>Summary</h3>
{{- range .Metrics}}
<div class="metric-card"><div class="metric-label">{{.Label}}</div><div class="metric-value">{{.Value}}</div></div>
{{- else}}
<p class="placeholder">No summary data available</p>
{{- end}}
</div>
</div>
</div>
</body>
</html>
`))

var fullTemplate = template.Must(template.New("full").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>` + baseStyle + `
.chart-container { padding: 20px; text-align: center; }
.insights { padding: 0 24px 20px; }
.insights ul { list-style: none; padding: 0; }
.insights li { padding: 4px 0 4px 16px; }
.insights li.category { padding-left: 0; margin-top: 12px; font-weight: 600; color: #1e3c72; }
.data-section { padding: 0 24px 24px; overflow-x: auto; }
</style>
</head>
<body>
<div class="container">
<div class="header"><h1>{{.Title}}</h1></div>
<div class="chart-container">
{{- if .ImageURI}}
<img class="chart-img" src="{{.ImageURI}}" alt="{{.Title}}">
{{- else}}
<p class="placeholder">No chart data available</p>
{{- end}}
</div>
<div class="insights">
<h2>Insights</h2>
<ul>
{{- range .Insights}}
{{- if .Category}}
<li class="category">{{.Text}}</li>
{{- else}}
<li>{{.Text}}</li>
{{- end}}
{{- else}}
<li class="placeholder">No insights available</li>
{{- end}}
</ul>
</div>
{{- if .Table}}
<div class="data-section">
<h2>Data</h2>
{{.Table}}
</div>
{{- end}}
</div>
</body>
</html>
`))

var summaryTemplate = template.Must(template.New("summary").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>` + baseStyle + `
.layout { display: flex; gap: 24px; padding: 20px; flex-wrap: wrap; }
.layout > div { flex: 1; min-width: 300px; }
</style>
</head>
<body>
<div class="container">
<div class="header"><h1>{{.Title}}</h1></div>
<div class="layout">
<div class="chart-section">
{{- if .ImageURI}}
<img class="chart-img" src="{{.ImageURI}}" alt="{{.Title}}">
{{- else}}
<p class="placeholder">No chart available</p>
{{- end}}
</div>
<div class="summary-section">
{{.Summary}}
</div>
</div>
</div>
</body>
</html>
`))
