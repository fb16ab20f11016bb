package render

import (
	"html/template"
	"io"
	"time"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Tournament Ranking</title>
<style>
:root { --bg: #fff; --fg: #1a1a2e; --card-bg: #f8f9fa; --border: #dee2e6; --table-alt: #f1f3f5; --muted: #6c757d; }
@media (prefers-color-scheme: dark) {
  :root { --bg: #1a1a2e; --fg: #e9ecef; --card-bg: #16213e; --border: #495057; --table-alt: #0f3460; --muted: #adb5bd; }
}
* { box-sizing: border-box; margin: 0; padding: 0; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: var(--bg); color: var(--fg); line-height: 1.5; padding: 1rem; max-width: 900px; margin: 0 auto; }
header { margin-bottom: 1.5rem; }
header h1 { font-size: 1.5rem; margin-bottom: .25rem; }
header p { color: var(--muted); font-size: .875rem; }
table { width: 100%; border-collapse: collapse; font-size: .875rem; background: var(--card-bg); }
th, td { padding: .5rem .625rem; text-align: left; border-bottom: 1px solid var(--border); }
thead { position: sticky; top: 0; background: var(--card-bg); }
tr:nth-child(even) { background: var(--table-alt); }
td:first-child { font-weight: 700; }
</style>
</head>
<body>
<header>
  <h1>Tournament Ranking</h1>
  <p>Generated {{.GeneratedAt}} &middot; {{len .Rows}} team(s)</p>
</header>
<table>
  <thead>
    <tr><th>Rank</th><th>Team</th><th>Points</th><th>Heatmap</th></tr>
  </thead>
  <tbody>
{{range .Rows}}    <tr><td>{{.Rank}}</td><td>{{.Team}}</td><td>{{.Points}}</td><td>{{.Heatmap}}</td></tr>
{{end}}  </tbody>
</table>
</body>
</html>
`

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

type pageData struct {
	GeneratedAt string
	Rows        []Row
}

// RenderPage writes a complete ranking page for the given records. Unlike
// TableRenderer, a page is a full document per call, so repeated renders of
// the same records are idempotent.
func RenderPage(w io.Writer, records []TeamRanking) error {
	return pageTmpl.Execute(w, pageData{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Rows:        Rows(records),
	})
}
