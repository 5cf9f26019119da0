package matrix

import (
	"slices"

	"github.com/npillmayer/markcombo/classify"
	"github.com/npillmayer/markcombo/unidata"
)

// Cell is one combination of the grid together with its result.
type Cell struct {
	Key
	Result classify.Result
}

// Lookup returns the result stored for a combination.
func (m *Matrix) Lookup(mark, base rune, font string) (classify.Result, bool) {
	r, ok := m.grid[Key{Mark: mark, Base: base, Font: font}]
	return r, ok
}

// Get returns the result stored for a combination. For a combination
// which has never been classified, Get returns classify.Placeholder. This
// is an inconsistency of the caller: it is traced and counted.
func (m *Matrix) Get(mark, base rune, font string) classify.Result {
	if r, ok := m.Lookup(mark, base, font); ok {
		return r
	}
	n := m.missed.Add(1)
	tracer().Errorf("combination U+%04X+U+%04X in font %s has not been classified (%d so far)",
		base, mark, font, n)
	return classify.Placeholder
}

// Inconsistencies returns how many times Get has been asked for an
// unclassified combination.
func (m *Matrix) Inconsistencies() int64 {
	return m.missed.Load()
}

// Len returns the number of classified combinations.
func (m *Matrix) Len() int {
	return len(m.grid)
}

// BaseGroups returns the base groups in configuration order.
func (m *Matrix) BaseGroups() []unidata.Group {
	return slices.Clone(m.conf.BaseGroups)
}

// MarkGroups returns the mark groups in configuration order.
func (m *Matrix) MarkGroups() []unidata.Group {
	return slices.Clone(m.conf.MarkGroups)
}

// Fonts returns the font specs in configuration order, including fonts
// which failed.
func (m *Matrix) Fonts() []FontSpec {
	return slices.Clone(m.conf.Fonts)
}

// Font returns the spec of a font.
func (m *Matrix) Font(key string) (FontSpec, bool) {
	for _, f := range m.conf.Fonts {
		if f.Key == key {
			return f, true
		}
	}
	return FontSpec{}, false
}

// AllBases returns the distinct bases of all base groups, in order.
func (m *Matrix) AllBases() []rune {
	return slices.Clone(m.bases)
}

// AllMarks returns the distinct marks of all mark groups, in order.
func (m *Matrix) AllMarks() []rune {
	return slices.Clone(m.marks)
}

// Row returns the cells of one mark across bases in one font.
func (m *Matrix) Row(mark rune, bases []rune, font string) []Cell {
	row := make([]Cell, len(bases))
	for i, base := range bases {
		row[i] = Cell{
			Key:    Key{Mark: mark, Base: base, Font: font},
			Result: m.Get(mark, base, font),
		}
	}
	return row
}

// GridRows returns one row per mark, row-major by mark.
func (m *Matrix) GridRows(marks, bases []rune, font string) [][]Cell {
	rows := make([][]Cell, len(marks))
	for i, mark := range marks {
		rows[i] = m.Row(mark, bases, font)
	}
	return rows
}

// Paragraph returns the cells of one mark with the bases of all base
// groups inlined.
func (m *Matrix) Paragraph(mark rune, font string) []Cell {
	return m.Row(mark, m.bases, font)
}

// Stats summarizes the classification of one font.
type Stats struct {
	Font       string
	Total      int
	Categories map[classify.Category]int
	Flags      map[classify.Flags]int // count per single flag
	Err        error                  // set if the font failed
}

// Stats returns the summary of one font.
func (m *Matrix) Stats(font string) Stats {
	st := Stats{
		Font:       font,
		Categories: make(map[classify.Category]int),
		Flags:      make(map[classify.Flags]int),
		Err:        m.failed[font],
	}
	for k, r := range m.grid {
		if k.Font != font {
			continue
		}
		st.Total++
		st.Categories[r.Category()]++
		for _, f := range classify.AllFlags() {
			if r.Flags().Has(f) {
				st.Flags[f]++
			}
		}
	}
	return st
}
