package report

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/reqlens/reqlens-cli/internal/core/domain"
)

const htmlReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Requirements Comparison Report</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0; background: #f5f6fa; color: #2d3436; }
.container { max-width: 960px; margin: 0 auto; padding: 24px; }
header { background: linear-gradient(135deg, #667eea, #764ba2); color: #fff; padding: 32px 24px; border-radius: 8px; }
header h1 { margin: 0 0 8px; }
header p { margin: 4px 0; opacity: 0.9; }
.stats { display: flex; gap: 16px; margin: 24px 0; flex-wrap: wrap; }
.stat-card { flex: 1; min-width: 160px; background: #fff; border-radius: 8px; padding: 16px; text-align: center; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
.stat-card .value { font-size: 28px; font-weight: 700; }
.stat-card.exact .value { color: #27ae60; }
.stat-card.similar .value { color: #f39c12; }
.stat-card.delta .value { color: #2980b9; }
.stat-card.score .value { color: #764ba2; }
section { background: #fff; border-radius: 8px; padding: 20px 24px; margin-bottom: 20px; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
section h2 { margin-top: 0; }
table { width: 100%; border-collapse: collapse; }
th, td { text-align: left; padding: 8px 12px; border-bottom: 1px solid #ecf0f1; }
th { background: #f8f9fa; }
.feature { border-left: 3px solid #f39c12; padding: 8px 12px; margin: 12px 0; background: #fffdf7; }
.feature .gap { color: #636e72; white-space: pre-wrap; margin-top: 8px; }
.muted { color: #95a5a6; }
</style>
</head>
<body>
<div class="container">
<header>
<h1>Requirements Comparison Report</h1>
<p>Generated: {{.Generated}}</p>
<p>New: {{.Result.NewDocument}} ({{.Result.NewCount}} features) &middot; Existing: {{.Result.ExistingDocument}} ({{.Result.ExistingCount}} features)</p>
</header>
{{if .IncludeStatistics}}
<div class="stats">
<div class="stat-card exact"><div class="value">{{.Result.Statistics.ExactCount}}</div><div>Exact Matches</div></div>
<div class="stat-card similar"><div class="value">{{.Result.Statistics.SimilarCount}}</div><div>Similar Features</div></div>
<div class="stat-card delta"><div class="value">{{.Result.Statistics.DeltaCount}}</div><div>New Features</div></div>
<div class="stat-card score"><div class="value">{{printf "%.1f" .Result.Statistics.ReusabilityScore}}%</div><div>Reusability</div></div>
</div>
{{end}}
<section>
<h2>Exact Matches ({{len .Result.ExactMatches}})</h2>
{{if .Result.ExactMatches}}
<table>
<tr><th>New Feature</th><th>Existing Feature</th><th>Similarity</th></tr>
{{range .Result.ExactMatches}}<tr><td>{{.New.Title}}</td><td>{{.Matched.Title}}</td><td>{{pct .Score}}</td></tr>
{{end}}</table>
{{else}}<p class="muted">No exact matches found.</p>{{end}}
</section>
<section>
<h2>Similar Features ({{len .Result.SimilarMatches}})</h2>
{{if .Result.SimilarMatches}}
{{range .Result.SimilarMatches}}<div class="feature">
<strong>{{.New.Title}}</strong> matches <em>{{.Matched.Title}}</em> ({{pct .Score}} similar)
{{if .GapAnalysis}}<div class="gap">{{deref .GapAnalysis}}</div>{{end}}
</div>
{{end}}
{{else}}<p class="muted">No similar features found.</p>{{end}}
</section>
<section>
<h2>New Features - Delta ({{len .Result.DeltaFeatures}})</h2>
{{if .Result.DeltaFeatures}}
<ol>
{{range .Result.DeltaFeatures}}<li><strong>{{.Title}}</strong>{{if and .Description (ne .Description .Title)}} &mdash; {{.Description}}{{end}}</li>
{{end}}</ol>
{{else}}<p class="muted">No new features. Everything already exists.</p>{{end}}
</section>
{{if .Recommendations}}
<section>
<h2>Strategic Recommendations</h2>
<ul>
{{range .Recommendations}}<li>{{.}}</li>
{{end}}</ul>
</section>
{{end}}
</div>
</body>
</html>
`

type htmlReportData struct {
	Generated         string
	Result            *domain.ComparisonResult
	Recommendations   []string
	IncludeStatistics bool
}

var htmlTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"pct": func(score float64) string {
		return fmt.Sprintf("%.1f%%", score*100)
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}).Parse(htmlReportTemplate))

func buildHTML(result *domain.ComparisonResult, recommendations []string, opts Options) (string, error) {
	data := htmlReportData{
		Generated:         result.Timestamp.Format("2006-01-02 15:04:05"),
		Result:            result,
		IncludeStatistics: opts.IncludeStatistics,
	}
	if opts.IncludeRecommendations {
		data.Recommendations = recommendations
	}

	var b strings.Builder
	if err := htmlTmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
