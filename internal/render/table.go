package render

import (
	"fmt"
	"html/template"
	"io"
)

// rowTemplate renders one ranking row. Team names come from an external
// file, so they go through html/template escaping.
var rowTemplate = template.Must(template.New("row").Parse(
	"<tr><td>{{.Rank}}</td><td>{{.Team}}</td><td>{{.Points}}</td><td>{{.Heatmap}}</td></tr>\n"))

// Row is one rendered table row.
type Row struct {
	Rank    int
	Team    string
	Points  string
	Heatmap string
}

// TableRenderer appends ranking rows to a target writer bound once at
// construction. Rendering is additive: every Render call appends its rows
// after whatever the target already holds, and each call numbers ranks from
// 1 for its own pass. Callers that want a fresh table build a fresh renderer
// around a fresh target.
type TableRenderer struct {
	target io.Writer
}

// NewTableRenderer binds a renderer to its target.
func NewTableRenderer(target io.Writer) *TableRenderer {
	return &TableRenderer{target: target}
}

// Render appends one row per record, in record order. Displayed rank is the
// 1-based position within this pass; points never reorder anything.
func (r *TableRenderer) Render(records []TeamRanking) error {
	for i, rec := range records {
		row := Row{
			Rank:    i + 1,
			Team:    rec.Team,
			Points:  FormatPoints(rec.Points),
			Heatmap: FlattenHeatmap(rec.Heatmap),
		}
		if err := rowTemplate.Execute(r.target, row); err != nil {
			return fmt.Errorf("render row %d: %w", i+1, err)
		}
	}
	return nil
}

// Rows converts records to their rendered row values without writing markup.
// The page template consumes this form.
func Rows(records []TeamRanking) []Row {
	rows := make([]Row, len(records))
	for i, rec := range records {
		rows[i] = Row{
			Rank:    i + 1,
			Team:    rec.Team,
			Points:  FormatPoints(rec.Points),
			Heatmap: FlattenHeatmap(rec.Heatmap),
		}
	}
	return rows
}
