// Package reporter renders comparison run verdicts for human consumption:
// a timestamped HTML report file per run, and a console summary.
package reporter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/sprig/v3"

	"github.com/mariogalea/qualitymatters-apiveritas/comparer"
	"github.com/mariogalea/qualitymatters-apiveritas/internal/fileutil"
	"github.com/mariogalea/qualitymatters-apiveritas/payload"
)

// reportTemplate renders one run verdict as a standalone HTML page.
const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>apiveritas — {{ .Suite }}</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin-bottom: 2em; }
th, td { border: 1px solid #ccc; padding: 0.4em 0.8em; text-align: left; vertical-align: top; }
.matched { color: #2e7d32; }
.unmatched { color: #c62828; }
.informational { color: #8a6d3b; }
pre { background: #f6f6f6; padding: 0.6em; overflow-x: auto; font-size: 0.85em; }
.meta { color: #666; font-size: 0.9em; }
</style>
</head>
<body>
<h1>Contract comparison — {{ .Suite }}</h1>
<p class="meta">
run {{ .RunID }} ·
baseline <strong>{{ .OldFolder }}</strong> vs candidate <strong>{{ .NewFolder }}</strong>
</p>
<p>
<span class="matched">{{ .MatchedCount }} matched</span> ·
<span class="{{ if .AnyDifferences }}unmatched{{ else }}matched{{ end }}">{{ .DiffCount }} with differences</span> ·
{{ .TotalFiles }} {{ if eq .TotalFiles 1 }}file{{ else }}files{{ end }} compared
</p>
<table>
<tr><th>File</th><th>Status</th><th>Differences</th></tr>
{{- range .Results }}
<tr>
<td>{{ .FileName }}</td>
<td>{{ if .Matched }}<span class="matched">matched</span>{{ else }}<span class="unmatched">differences</span>{{ end }}</td>
<td>
{{- if .Differences }}
<ul>
{{- range .Differences }}
<li class="{{ if .IsBlocking }}unmatched{{ else }}informational{{ end }}"><code>{{ .Path }}</code> [{{ .Kind }}] {{ .Message }}</li>
{{- end }}
</ul>
{{- else }}&mdash;{{ end }}
</td>
</tr>
{{- end }}
</table>
{{- range .Results }}
{{- if not .Matched }}
<h2>{{ .FileName }}</h2>
<table>
<tr><th>Baseline ({{ $.OldFolder }})</th><th>Candidate ({{ $.NewFolder }})</th></tr>
<tr><td><pre>{{ prettyJSON .OldContent }}</pre></td><td><pre>{{ prettyJSON .NewContent }}</pre></td></tr>
</table>
{{- end }}
{{- end }}
</body>
</html>
`

// HTMLReporter writes one timestamped HTML report file per run.
type HTMLReporter struct {
	// Dir is the directory report files are written to
	Dir string

	tmpl *template.Template
	now  func() time.Time
}

// NewHTML creates an HTML reporter writing into dir.
func NewHTML(dir string) (*HTMLReporter, error) {
	funcs := sprig.HtmlFuncMap()
	funcs["prettyJSON"] = prettyJSON

	tmpl, err := template.New("report").Funcs(funcs).Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing report template: %w", err)
	}

	return &HTMLReporter{Dir: dir, tmpl: tmpl, now: time.Now}, nil
}

// Write renders the verdict and returns the path of the written report.
// Concurrent runs writing reports in the same second collide on the file
// name; last writer wins.
func (r *HTMLReporter) Write(verdict *comparer.RunVerdict) (string, error) {
	if err := os.MkdirAll(r.Dir, fileutil.OwnerAll); err != nil {
		return "", fmt.Errorf("creating reports directory: %w", err)
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, verdict); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}

	path := filepath.Join(r.Dir, fmt.Sprintf("report-%s.html", r.now().Format("2006.01.02.150405")))
	if err := os.WriteFile(path, buf.Bytes(), fileutil.ReadableByAll); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

func prettyJSON(v payload.Value) string {
	data, err := json.MarshalIndent(v.Interface(), "", "  ")
	if err != nil {
		return v.String()
	}
	return string(data)
}
