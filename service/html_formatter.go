package service

import (
	"html/template"
	"io"
	"strings"

	"github.com/ludo-technologies/domscan/domain"
	"github.com/ludo-technologies/domscan/internal/constants"
)

// HTMLData represents the data for HTML template
type HTMLData struct {
	ToolName            string
	Response            *domain.AnalysisResponse
	Metrics             []domain.Metric
	Thresholds          map[domain.Metric]domain.Threshold
	ShowRecommendations bool
}

// WriteHTML writes the analysis result as a standalone HTML page
func (f *OutputFormatterImpl) WriteHTML(response *domain.AnalysisResponse, writer io.Writer) error {
	data := HTMLData{
		ToolName:            constants.ToolName,
		Response:            response,
		Metrics:             domain.Metrics,
		Thresholds:          domain.Thresholds,
		ShowRecommendations: f.showRecommendations,
	}

	funcMap := template.FuncMap{
		"label": func(m domain.Metric) string {
			return m.Label()
		},
		"value": func(r *domain.Report, m domain.Metric) int {
			return r.Value(m)
		},
		"status": func(r *domain.Report, m domain.Metric) string {
			return string(r.StatusByMetric[m])
		},
		"statusClass": statusClass,
		"lower":       strings.ToLower,
	}

	tmpl, err := template.New("report").Funcs(funcMap).Parse(htmlTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(writer, data)
}

// statusClass maps a metric or overall status to its badge class.
// EXCELLENT is shared by both status kinds.
func statusClass(status string) string {
	switch status {
	case string(domain.StatusExcellent):
		return "status-excellent"
	case string(domain.StatusWarning):
		return "status-warning"
	case string(domain.OverallAcceptable):
		return "status-acceptable"
	default:
		return "status-critical"
	}
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.ToolName}} DOM Complexity Report</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            background: #f3f4f6;
        }
        .container { max-width: 1100px; margin: 0 auto; padding: 20px; }
        .card {
            background: white;
            border-radius: 10px;
            padding: 24px;
            margin-bottom: 20px;
            box-shadow: 0 4px 12px rgba(0,0,0,0.08);
        }
        h1 { color: #4f46e5; }
        h2 { margin-bottom: 8px; word-break: break-all; }
        .subtitle { color: #666; font-size: 14px; }
        table { width: 100%; border-collapse: collapse; margin: 12px 0; }
        th, td { text-align: left; padding: 8px; border-bottom: 1px solid #e5e7eb; }
        th { background: #f9fafb; }
        .badge { display: inline-block; padding: 2px 10px; border-radius: 12px; color: white; font-weight: bold; font-size: 13px; }
        .status-excellent { background: #10b981; }
        .status-warning { background: #f59e0b; }
        .status-acceptable { background: #eab308; }
        .status-critical { background: #ef4444; }
        .path { font-family: monospace; font-size: 13px; color: #374151; }
        ul.recommendations { margin: 8px 0 0 20px; }
        .severity-critical { color: #b91c1c; font-weight: bold; }
        .severity-moderate { color: #b45309; font-weight: bold; }
    </style>
</head>
<body>
<div class="container">
    <div class="card">
        <h1>DOM Complexity Report</h1>
        <div class="subtitle">Generated {{.Response.GeneratedAt}} by {{.ToolName}} {{.Response.Version}} &middot; run {{.Response.RunID}}</div>
        {{with .Response.Summary}}
        <table>
            <tr><th>Documents analyzed</th><td>{{.DocumentsAnalyzed}}</td></tr>
            {{if .DocumentsFailed}}<tr><th>Documents failed</th><td>{{.DocumentsFailed}}</td></tr>{{end}}
            <tr><th>Excellent / Acceptable / Needs optimization</th><td>{{.ExcellentDocuments}} / {{.AcceptableDocuments}} / {{.NeedsOptimizationDocuments}}</td></tr>
            <tr><th>Max nodes / depth / children</th><td>{{.MaxNodeCount}} / {{.MaxDepth}} / {{.MaxChildCount}}</td></tr>
            <tr><th>Worst status</th><td><span class="badge {{statusClass (print .WorstStatus)}}">{{.WorstStatus}}</span></td></tr>
        </table>
        {{end}}
    </div>

    {{$root := .}}
    {{range .Response.Documents}}{{if .Report}}
    <div class="card">
        <h2>{{.Source}}</h2>
        <div class="subtitle">root: {{.Root}} &middot; parser: {{.ParserMode}} &middot; scope: {{.Report.Scope}}</div>
        <table>
            <tr><th>Metric</th><th>Value</th><th>Status</th><th>Excellent &le;</th><th>Warning &le;</th></tr>
            {{$report := .Report}}
            {{range $root.Metrics}}
            {{$th := index $root.Thresholds .}}
            <tr>
                <td>{{label .}}</td>
                <td>{{value $report .}}</td>
                <td><span class="badge {{statusClass (status $report .)}}">{{status $report .}}</span></td>
                <td>{{$th.Excellent}}</td>
                <td>{{$th.Warning}}</td>
            </tr>
            {{end}}
        </table>
        {{with .Report.LargestParent}}{{if .Identifier}}<p>Largest parent: <span class="path">{{.Path}}</span> ({{.ChildCount}} children)</p>{{end}}{{end}}
        {{with .Report.DeepestElement}}{{if .Identifier}}<p>Deepest element: <span class="path">{{.Path}}</span> (depth {{.Depth}})</p>{{end}}{{end}}
        <p>Overall: <span class="badge {{statusClass (print .Report.OverallStatus)}}">{{.Report.OverallStatus}}</span></p>
        {{if and $root.ShowRecommendations .Report.Recommendations}}
        <ul class="recommendations">
            {{range .Report.Recommendations}}<li><span class="severity-{{lower (print .Severity)}}">{{.Severity}}</span> {{.Message}}</li>{{end}}
        </ul>
        {{end}}
    </div>
    {{end}}{{end}}

    {{if or .Response.Warnings .Response.Errors}}
    <div class="card">
        {{range .Response.Warnings}}<p>Warning: {{.}}</p>{{end}}
        {{range .Response.Errors}}<p>Error: {{.}}</p>{{end}}
    </div>
    {{end}}
</div>
</body>
</html>
`
