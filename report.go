package main

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

var reportTemplate = template.Must(template.New("report").Parse(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>Project Tracker Report</title>
    <style>
      body { margin: 24px; font-family: ui-monospace, Menlo, Consolas, monospace; background: #0f1115; color: #e8e8e8; }
      h1 { font-size: 20px; margin: 0 0 6px; }
      .meta { color: #a6adbb; margin-bottom: 18px; }
      .changes { margin: 0 0 22px; padding: 12px 16px; background: #171a21; border: 1px solid #2a2f3a; border-radius: 8px; }
      table { width: 100%; border-collapse: collapse; background: #171a21; border: 1px solid #2a2f3a; }
      th, td { padding: 10px 12px; border-bottom: 1px solid #2a2f3a; text-align: left; vertical-align: top; font-size: 12px; }
      th { background: #11141a; color: #7bdff2; position: sticky; top: 0; }
    </style>
  </head>
  <body>
    <h1>Project Tracker Report</h1>
    <div class="meta">Generated {{.Generated}} • {{len .Rows}} project(s)</div>
    <div class="changes">
      <strong>Changes</strong>
      <ul>{{range .Changes}}<li>{{.}}</li>{{else}}<li>No changes</li>{{end}}</ul>
    </div>
    <table>
      <thead>
        <tr>
          <th>Project</th><th>Path</th><th>Types</th><th>Version</th><th>Branch</th>
          <th>Modified</th><th>Unpushed</th><th>Category</th><th>Technologies</th>
          <th>Description</th><th>Last scan</th>
        </tr>
      </thead>
      <tbody>
        {{range .Rows}}<tr>
          <td>{{.Name}}</td><td>{{.Path}}</td><td>{{.Types}}</td><td>{{.Version}}</td><td>{{.Branch}}</td>
          <td>{{.Modified}}</td><td>{{.Unpushed}}</td><td>{{.Category}}</td><td>{{.Technologies}}</td>
          <td>{{.Description}}</td><td>{{.LastScan}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>
  </body>
</html>
`))

// reportRow is one project line of the report, already formatted
type reportRow struct {
	Name         string
	Path         string
	Types        string
	Version      string
	Branch       string
	Modified     string
	Unpushed     string
	Category     string
	Technologies string
	Description  string
	LastScan     string
}

func newReportRow(name string, p ProjectRecord) reportRow {
	row := reportRow{
		Name:     name,
		Path:     p.Path,
		Types:    strings.Join(p.Types, ", "),
		Version:  valueOr(p.Version, ""),
		LastScan: p.LastScan.Format(time.RFC3339),
	}
	if p.Git != nil {
		row.Branch = p.Git.Branch
		row.Modified = strconv.Itoa(p.Git.ModifiedFiles)
		row.Unpushed = strconv.Itoa(p.Git.UnpushedCommits)
	}
	if p.Analysis != nil {
		row.Category = p.Analysis.Category
		row.Technologies = strings.Join(p.Analysis.Technologies, ", ")
		row.Description = truncateRunes(p.Analysis.Description, 200)
	}
	return row
}

// writeReport renders state and changes as an HTML page at path
func writeReport(path string, state State, changes []Change, generated time.Time) error {
	names := make([]string, 0, len(state))
	for name := range state {
		names = append(names, name)
	}
	sort.Strings(names)

	data := struct {
		Generated string
		Rows      []reportRow
		Changes   []string
	}{
		Generated: generated.Format("2006-01-02 15:04"),
	}
	for _, name := range names {
		data.Rows = append(data.Rows, newReportRow(name, state[name]))
	}
	for _, c := range changes {
		data.Changes = append(data.Changes, c.String())
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
