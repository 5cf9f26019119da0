package texreport

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/markcombo/classify"
	"github.com/npillmayer/markcombo/matrix"
	"github.com/npillmayer/markcombo/unidata"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shaped = []classify.GlyphRecord{{GID: 1}, {GID: 2, Cluster: 1}}

func cell(base, mark rune, cat classify.Category, flags classify.Flags, glyphs []classify.GlyphRecord) matrix.Cell {
	return matrix.Cell{
		Key:    matrix.Key{Mark: mark, Base: base, Font: "regular"},
		Result: classify.NewResult(cat, flags, glyphs),
	}
}

func TestTeXCodepoint(t *testing.T) {
	assert.Equal(t, `\char"0061`, tex('a'))
	assert.Equal(t, `\char"1D43`, tex(0x1D43))
}

func TestClassicCells(t *testing.T) {
	r := Classic{}
	for _, tc := range []struct {
		c    matrix.Cell
		want string
	}{
		{cell('a', 0x0301, classify.Fallback, classify.MissingBase, nil), `\NOBM{\char"0061}`},
		{cell('i', 0x0300, classify.Fallback, classify.MissingPrecomposed, nil), `\NOPR{\char"0069}`},
		{cell('j', 0x0301, classify.Fallback, classify.GsubSubstituted, shaped), `\GSUB{\char"006A\char"0301}`},
		{cell('a', 0x0301, classify.Precomposed, classify.GsubPrecExpected|classify.GsubPrecOccurred, shaped[:1]),
			`\PREC{\char"0061\char"0301}`},
		{cell('A', 0x035B, classify.Anchored, 0, shaped), `\ANCH{\char"0041\char"035B}`},
		{cell('b', 0x0301, classify.Fallback, 0, shaped), `\FALL{\char"0062\char"0301}`},
	} {
		assert.Equal(t, tc.want, r.Cell(tc.c))
	}
}

func TestSanityCells(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "markcombo.report")
	defer teardown()
	//
	sup := classify.Supported
	dotless := classify.GsubDotlessExpected
	r := NewSanity()
	for _, tc := range []struct {
		name string
		c    matrix.Cell
		want string
	}{
		{"unsupported", cell('p', 0x0325, classify.Anchored, 0, shaped),
			`\UNSUPP{\char"0070\char"0325}`},
		{"anchored", cell('n', 0x0325, classify.Anchored, sup, shaped),
			`\ANCH{\char"006E\char"0325}`},
		{"precomposed", cell('a', 0x0301, classify.Precomposed, sup|classify.GsubPrecExpected|classify.GsubPrecOccurred, shaped[:1]),
			`\PREC{\char"0061\char"0301}`},
		{"supported fallback", cell('n', 0x0325, classify.Fallback, sup, shaped),
			`\IPAFALL{\char"006E\char"0325}`},
		{"missing precomposed", cell('e', 0x0301, classify.Fallback, sup|classify.MissingPrecomposed, shaped),
			`\MISSINGPRE{\UNSUPP{\char"0065\char"0301}}`},
		{"missing mark", cell('a', 0x0325, classify.Fallback, sup|classify.MissingMark, shaped),
			`\MISSINGGLYPH{\UNSUPP{\char"0061}}`},
		{"missing base", cell('a', 0x0325, classify.Fallback, classify.MissingBase, shaped),
			`\MISSINGGLYPH{\UNSUPP{\char"0061\char"0325}}`},
		{"dotless failed", cell('i', 0x0301, classify.Fallback, sup|dotless, shaped),
			`\GSUBOVERLAY{\UNSUPP{\char"0069\char"0301}}`},
		{"dotless failed but precomposed", cell('i', 0x0301, classify.Precomposed, sup|dotless, shaped[:1]),
			`\PREC{\char"0069\char"0301}`},
		{"dotless occurred", cell('i', 0x0301, classify.Anchored, sup|dotless|classify.GsubDotlessOccurred, shaped),
			`\ANCH{\char"0069\char"0301}`},
		{"altcap failed", cell('A', 0x0301, classify.Anchored, sup|classify.GsubAltcapExpected, shaped),
			`\GSUBOVERLAY{\ANCH{\char"0041\char"0301}}`},
		{"all overlays", cell('I', 0x0301, classify.Fallback, classify.GsubAltcapExpected|classify.MissingPrecomposed, shaped),
			`\MISSINGPRE{\GSUBOVERLAY{\UNSUPP{\char"0049\char"0301}}}`},
	} {
		assert.Equal(t, tc.want, r.Cell(tc.c), tc.name)
	}
}

func TestSanitySignificance(t *testing.T) {
	never := NewSanity(WithSignificance(func(matrix.Cell) bool { return false }))
	c := cell('i', 0x0301, classify.Fallback, classify.Supported|classify.GsubDotlessExpected, shaped)
	assert.Equal(t, `\IPAFALL{\char"0069\char"0301}`, never.Cell(c))
	altcap := cell('A', 0x0301, classify.Anchored, classify.Supported|classify.GsubAltcapExpected, shaped)
	assert.True(t, strings.HasPrefix(never.Cell(altcap), `\GSUBOVERLAY`), "alt-cap failures are always significant")
}

func TestPreamble(t *testing.T) {
	p := Preamble(Classic{})
	assert.Contains(t, p, `\providecommand{\NOBM}[1]{#1}`)
	assert.Contains(t, p, `\providecommand{\FALL}[1]{#1}`)
	assert.Contains(t, Preamble(NewSanity()), `\providecommand{\MISSINGGLYPH}[1]{#1}`)
}

// --- Builders --------------------------------------------------------------

type nullView struct{}

func (nullView) HasGlyph(rune) bool { return true }
func (nullView) NominalGlyph(cp rune) (classify.GlyphID, bool) { return classify.GlyphID(cp), true }
func (nullView) Shape(rune, rune) ([]classify.GlyphRecord, error) { return shaped, nil }
func (nullView) GlyphName(classify.GlyphID) string { return "" }
func (nullView) CodepointForGlyph(classify.GlyphID) (rune, bool) { return 0, false }
func (nullView) HasAnchor(classify.GlyphID, classify.AttachmentClass) bool { return false }
func (nullView) AttachmentClassForMark(rune) classify.AttachmentClass { return classify.NoClass }

// stub anchors every combination with base 'a'.
type stub struct{}

func (stub) Name() string { return "stub" }

func (stub) Classify(base, mark rune, _ classify.AttachmentClass, _ classify.FontView) (classify.Result, error) {
	if base == 'a' {
		return classify.NewResult(classify.Anchored, classify.Supported, shaped), nil
	}
	return classify.NewResult(classify.Fallback, 0, shaped), nil
}

func classified(t *testing.T, marks []rune, fonts ...matrix.FontSpec) *matrix.Matrix {
	conf := matrix.Config{
		BaseGroups: []unidata.Group{{Name: "B", Kind: unidata.KindBase, Items: []rune{'a', 'b'}}},
		MarkGroups: []unidata.Group{{Name: "M", Kind: unidata.KindMark, Items: marks}},
		Fonts:      fonts,
	}
	loader := func(spec matrix.FontSpec) (classify.FontView, error) {
		if spec.Key == "broken" {
			return nil, errors.New("cannot parse font")
		}
		return nullView{}, nil
	}
	m, err := matrix.New(conf, stub{}, matrix.WithLoader(loader))
	require.NoError(t, err)
	m.ClassifyAll()
	return m
}

func TestGridBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "markcombo.report")
	defer teardown()
	//
	m := classified(t, []rune{0x0301},
		matrix.FontSpec{Key: "regular"},
		matrix.FontSpec{Key: "italic", Label: "Italic", Style: matrix.Italic})
	out := Grid(m, Classic{})
	want := `\subsection*{regular}

% grid. columns are bases, rows are marks.
\ANCH{\char"0061\char"0301} \FALL{\char"0062\char"0301}
` + "\n\n" + `\subsection*{Italic}

{\itshape
% grid. columns are bases, rows are marks.
\ANCH{\char"0061\char"0301} \FALL{\char"0062\char"0301}

}`
	assert.Equal(t, want, out)
	assert.Equal(t, int64(0), m.Inconsistencies())
}

func TestGridBuilderLargeMarkGroup(t *testing.T) {
	m := classified(t, []rune{0x0300, 0x0301, 0x0302, 0x0303, 0x0304, 0x0306},
		matrix.FontSpec{Key: "bold", Style: matrix.Bold},
		matrix.FontSpec{Key: "bi", Style: matrix.BoldItalic})
	out := Grid(m, NewSanity())
	assert.Equal(t, 2, strings.Count(out, `\newpage`))
	assert.Contains(t, out, "{\\bfseries\n")
	assert.Contains(t, out, `{\bfseries\itshape`)
	assert.Equal(t, 12, strings.Count(out, `\ANCH{`))
}

func TestParagraphBuilder(t *testing.T) {
	m := classified(t, []rune{0x0301, 0x0325},
		matrix.FontSpec{Key: "regular"},
		matrix.FontSpec{Key: "broken"})
	out := Paragraph(m, Classic{})
	assert.Equal(t, 1, strings.Count(out, `\subsection*{U+0301}`))
	assert.Equal(t, 1, strings.Count(out, `\subsection*{U+0325}`))
	assert.Equal(t, 2, strings.Count(out, "% font broken omitted"))
	assert.Less(t, strings.Index(out, "U+0301"), strings.Index(out, "U+0325"))
	assert.NotContains(t, out, `\newpage`)
	assert.Equal(t, int64(0), m.Inconsistencies())
}

func TestBuilderByName(t *testing.T) {
	_, ok := BuilderByName("grid")
	assert.True(t, ok)
	_, ok = BuilderByName("paragraph")
	assert.True(t, ok)
	_, ok = BuilderByName("table")
	assert.False(t, ok)
}
