package texreport

import (
	"strings"

	"github.com/npillmayer/markcombo/matrix"
	"github.com/npillmayer/markcombo/unidata"
)

// Builder creates a report from a classified matrix.
type Builder func(m *matrix.Matrix, r Renderer) string

// BuilderByName returns the builder "grid" or "paragraph".
func BuilderByName(name string) (Builder, bool) {
	switch name {
	case "grid":
		return Grid, true
	case "paragraph":
		return Paragraph, true
	}
	return nil, false
}

// Grid emits one grid per base group × mark group × font. Columns are
// bases, rows are marks.
func Grid(m *matrix.Matrix, r Renderer) string {
	var out []string
	for _, bg := range m.BaseGroups() {
		for _, mg := range m.MarkGroups() {
			for _, f := range m.Fonts() {
				out = append(out, fontSection(m, r, mg.Items, bg.Items, f, ""))
			}
		}
	}
	tracer().Debugf("grid report with %d sections", len(out))
	return strings.Join(out, "\n\n")
}

// Paragraph emits one section per mark and font, with the bases of all
// base groups inlined.
func Paragraph(m *matrix.Matrix, r Renderer) string {
	var out []string
	bases := m.AllBases()
	for _, mark := range m.AllMarks() {
		for _, f := range m.Fonts() {
			out = append(out, fontSection(m, r, []rune{mark}, bases, f, unidata.Format(mark)))
		}
	}
	tracer().Debugf("paragraph report with %d sections", len(out))
	return strings.Join(out, "\n\n")
}

// fontSection builds the section of one font. Fonts which failed are
// skipped with a comment.
func fontSection(m *matrix.Matrix, r Renderer, marks, bases []rune, f matrix.FontSpec, label string) string {
	if err := m.Failed(f.Key); err != nil {
		return "% font " + f.Key + " omitted: classification failed"
	}
	if label == "" {
		label = f.DisplayLabel()
	}
	var out []string
	if len(marks) > 5 {
		out = append(out, `\newpage`)
	}
	out = append(out, `\subsection*{`+label+`}`, "")
	open := styleGroup(f.Style)
	if open != "" {
		out = append(out, open)
	}
	out = append(out, "% grid. columns are bases, rows are marks.")
	var rows []string
	for _, row := range m.GridRows(marks, bases, f.Key) {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = r.Cell(c)
		}
		rows = append(rows, strings.Join(cells, " "), "")
	}
	out = append(out, strings.Join(rows, "\n"))
	if open != "" {
		out = append(out, "}")
	}
	return strings.Join(out, "\n")
}

func styleGroup(s matrix.Style) string {
	switch s {
	case matrix.Italic:
		return `{\itshape`
	case matrix.Bold:
		return `{\bfseries`
	case matrix.BoldItalic:
		return `{\bfseries\itshape`
	}
	return ""
}
