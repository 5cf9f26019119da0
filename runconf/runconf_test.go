package runconf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/markcombo/classify"
	"github.com/npillmayer/markcombo/fontview"
	"github.com/npillmayer/markcombo/matrix"
	"github.com/npillmayer/markcombo/texreport"
	"github.com/npillmayer/markcombo/unidata"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

const sample = `
workers: 2
fonts:
  - key: regular
    path: fonts/Regular.otf
    lookup_index: 7
    label: Serif Regular
  - key: italic
    path: /abs/Italic.otf
    style: semibold_italic
    classes: { U+0301: 4, U+0363: 0 }
report:
  fonts: [italic, regular]
  base_groups: [BASE_COMMON]
  mark_groups: [MARK_COMMON, MARK_BELOW]
  builder: paragraph
  outdir: tex/input
`

func TestParseSample(t *testing.T) {
	conf, err := Parse([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, "sanity", conf.Report.Classifier, "default classifier")
	assert.Equal(t, "curated", conf.Classes)
	assert.Equal(t, "Info", conf.Trace)
	assert.Equal(t, 2, conf.Workers)
	require.Len(t, conf.Fonts, 2)
	assert.Equal(t, 7, *conf.Fonts[0].LookupIndex)
	assert.Nil(t, conf.Fonts[1].LookupIndex)
	assert.Equal(t, 4, conf.Fonts[1].Classes[unidata.Codepoint(0x0301)])
	assert.Equal(t, filepath.Join("tex", "input", "combinations.tex"), conf.OutPath())
}

func TestDefaultReportFonts(t *testing.T) {
	conf, err := Parse([]byte(`
fonts:
  - { key: a, path: a.ttf }
  - { key: b, path: b.ttf }
report: { base_groups: [BASE_LATIN], mark_groups: [MARK_ABOVE] }
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, conf.Report.Fonts)
}

func TestValidationErrors(t *testing.T) {
	for name, data := range map[string]string{
		"empty":           "",
		"unknown key":     sample + "colour: red\n",
		"duplicate font":  "fonts: [{key: a, path: a}, {key: a, path: b}]\nreport: {base_groups: [X], mark_groups: [Y]}\n",
		"missing path":    "fonts: [{key: a}]\nreport: {base_groups: [X], mark_groups: [Y]}\n",
		"unknown font":    "fonts: [{key: a, path: a}]\nreport: {fonts: [b], base_groups: [X], mark_groups: [Y]}\n",
		"no groups":       "fonts: [{key: a, path: a}]\n",
		"bad classifier":  "fonts: [{key: a, path: a}]\nreport: {classifier: fancy, base_groups: [X], mark_groups: [Y]}\n",
		"bad builder":     "fonts: [{key: a, path: a}]\nreport: {builder: table, base_groups: [X], mark_groups: [Y]}\n",
		"bad style":       "fonts: [{key: a, path: a, style: wide}]\nreport: {base_groups: [X], mark_groups: [Y]}\n",
		"bad trace level": "trace: Verbose\nfonts: [{key: a, path: a}]\nreport: {base_groups: [X], mark_groups: [Y]}\n",
		"bad language":    "language: '!!'\nfonts: [{key: a, path: a}]\nreport: {base_groups: [X], mark_groups: [Y]}\n",
		"bad classes":     "classes: guessed\nfonts: [{key: a, path: a}]\nreport: {base_groups: [X], mark_groups: [Y]}\n",
	} {
		_, err := Parse([]byte(data))
		assert.Error(t, err, name)
	}
}

func TestMatrixConfig(t *testing.T) {
	conf, err := Parse([]byte(sample))
	require.NoError(t, err)
	conf.dir = "/work"
	mc, err := conf.MatrixConfig(unidata.Default())
	require.NoError(t, err)
	require.Len(t, mc.Fonts, 2)
	italic, regular := mc.Fonts[0], mc.Fonts[1]
	assert.Equal(t, "italic", italic.Key, "report order wins")
	assert.Equal(t, matrix.BoldItalic, italic.Style)
	assert.Equal(t, fontview.NoLookup, italic.LookupIndex)
	assert.Equal(t, "/abs/Italic.otf", italic.Path)
	assert.Equal(t, 4, italic.Classes[0x0301], "font override")
	assert.Equal(t, 0, italic.Classes[0x0363])
	assert.Equal(t, 1, italic.Classes[0x0325], "curated default")
	assert.Equal(t, filepath.Join("/work", "fonts", "Regular.otf"), regular.Path)
	assert.Equal(t, 7, regular.LookupIndex)
	assert.Equal(t, 0, regular.Classes[0x0301])
	require.Len(t, mc.MarkGroups, 2)
	assert.Equal(t, "MARK_BELOW", mc.MarkGroups[1].Name)

	conf.Classes = "font"
	mc, err = conf.MatrixConfig(unidata.Default())
	require.NoError(t, err)
	assert.Len(t, mc.Fonts[1].Classes, 0, "no curated classes")

	conf.Report.BaseGroups = []string{"BASE_KLINGON"}
	_, err = conf.MatrixConfig(unidata.Default())
	assert.Error(t, err)
}

func TestClassifierSelection(t *testing.T) {
	conf, err := Parse([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, "sanity", conf.Classifier(unidata.Default()).Name())
	assert.Equal(t, "sanity", conf.Renderer().Name())
	conf.Report.Classifier = "classic"
	assert.Equal(t, "classic", conf.Classifier(unidata.Default()).Name())
	assert.Equal(t, texreport.Classic{}, conf.Renderer())
	assert.NotNil(t, conf.Builder())
}

func TestTraceLevels(t *testing.T) {
	assert.NoError(t, checkTraceLevel("Debug"))
	assert.NoError(t, checkTraceLevel("error"))
	assert.Error(t, checkTraceLevel("Loud"))
	assert.Error(t, SetupTracing("Loud"))
}

// TestRunWithGoFont runs a complete report over the Go font, loaded from a
// run file in a temporary directory.
func TestRunWithGoFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "markcombo")
	defer teardown()
	//
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.ttf"), goregular.TTF, 0o644))
	run := `
fonts:
  - key: go
    path: go.ttf
    label: Go Regular
report:
  base_groups: [BASE_COMMON]
  mark_groups: [MARK_COMMON]
  classifier: classic
`
	path := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(run), 0o644))
	conf, err := Load(path)
	require.NoError(t, err)
	data, err := conf.GroundTruthData()
	require.NoError(t, err)
	mc, err := conf.MatrixConfig(data)
	require.NoError(t, err)
	m, err := matrix.New(mc, conf.Classifier(data), conf.MatrixOptions()...)
	require.NoError(t, err)
	require.NoError(t, m.ClassifyAll())
	bases, _ := data.Group("BASE_COMMON")
	assert.Equal(t, len(bases.Items)*len(classify.DotRemovalMarks), m.Len())
	r, ok := m.Lookup(0x0301, 'a', "go")
	require.True(t, ok)
	v, _ := m.View("go")
	if v.HasGlyph('a') && v.HasGlyph(0x0301) {
		assert.True(t, r.Shaped())
	}
	tex := conf.Builder()(m, conf.Renderer())
	assert.True(t, strings.HasPrefix(tex, `\newpage`), "MARK_COMMON has more than five marks")
	assert.Contains(t, tex, `\subsection*{Go Regular}`)
	assert.Equal(t, int64(0), m.Inconsistencies())
	assert.Equal(t, filepath.Join(dir, "combinations.tex"), conf.OutPath())
}
