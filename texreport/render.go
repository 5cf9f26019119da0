/*
Package texreport renders a classified combination matrix as a LaTeX
fragment.

Every cell of a report is the base+mark sequence written with \char
commands, wrapped in a macro telling how the combination renders. The
macros are not defined here; the enclosing document has to provide them
(see Preamble for neutral defaults).
*/
package texreport

import (
	"fmt"
	"strings"

	"github.com/npillmayer/markcombo/classify"
	"github.com/npillmayer/markcombo/matrix"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'markcombo.report'
func tracer() tracing.Trace {
	return tracing.Select("markcombo.report")
}

// Renderer maps one grid cell to TeX.
type Renderer interface {
	Name() string
	Cell(c matrix.Cell) string
	Macros() []string // names of the macros a renderer emits
}

// tex returns TeX code for a Unicode codepoint.
func tex(cp rune) string {
	return fmt.Sprintf(`\char"%04X`, cp)
}

func wrap(macro, s string) string {
	return `\` + macro + "{" + s + "}"
}

// --- Classic ---------------------------------------------------------------

// Classic renders results of the classic classifier. Every cell is wrapped
// in exactly one macro.
type Classic struct{}

var _ Renderer = Classic{}

func (Classic) Name() string { return "classic" }

func (Classic) Macros() []string {
	return []string{"NOBM", "NOPR", "GSUB", "PREC", "ANCH", "FALL"}
}

// Cell renders a cell. Combinations which have not been shaped show the
// base only.
func (Classic) Cell(c matrix.Cell) string {
	raw := tex(c.Base)
	if c.Result.Shaped() {
		raw += tex(c.Mark)
	}
	fl := c.Result.Flags()
	switch {
	case fl.MissingGlyph():
		return wrap("NOBM", raw)
	case fl.Has(classify.MissingPrecomposed):
		return wrap("NOPR", raw)
	case fl.Has(classify.GsubSubstituted):
		return wrap("GSUB", raw)
	}
	switch c.Result.Category() {
	case classify.Precomposed:
		return wrap("PREC", raw)
	case classify.Anchored:
		return wrap("ANCH", raw)
	}
	return wrap("FALL", raw)
}

// --- Sanity ----------------------------------------------------------------

// Significance decides whether a failed dotless substitution counts as a
// substitution failure of a cell.
type Significance func(c matrix.Cell) bool

// DefaultSignificance considers a failed dotless substitution significant
// unless the combination rendered precomposed.
func DefaultSignificance(c matrix.Cell) bool {
	return c.Result.Category() != classify.Precomposed
}

// Sanity renders results of the sanity classifier: a base wrapper by
// category and semantic support, plus overlays for substitution failures
// and missing glyphs.
type Sanity struct {
	significant Significance
}

var _ Renderer = (*Sanity)(nil)

// Option configures a Sanity renderer.
type Option func(*Sanity)

// WithSignificance replaces the significance predicate for dotless
// substitution failures.
func WithSignificance(pred Significance) Option {
	return func(s *Sanity) {
		if pred != nil {
			s.significant = pred
		}
	}
}

// NewSanity creates a Sanity renderer.
func NewSanity(opts ...Option) *Sanity {
	s := &Sanity{significant: DefaultSignificance}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sanity) Name() string { return "sanity" }

func (s *Sanity) Macros() []string {
	return []string{"UNSUPP", "PREC", "ANCH", "IPAFALL", "GSUBOVERLAY", "MISSINGPRE", "MISSINGGLYPH"}
}

// Cell renders a cell. A missing mark is suppressed and shows the base only.
func (s *Sanity) Cell(c matrix.Cell) string {
	fl := c.Result.Flags()
	raw := tex(c.Base)
	if !fl.Has(classify.MissingMark) {
		raw += tex(c.Mark)
	}
	gsubFailed := s.gsubFailed(c)
	var wrapped string
	switch {
	case !fl.Has(classify.Supported):
		wrapped = wrap("UNSUPP", raw)
	case c.Result.Category() == classify.Precomposed:
		wrapped = wrap("PREC", raw)
	case c.Result.Category() == classify.Anchored:
		wrapped = wrap("ANCH", raw)
	case fl.MissingGlyph() || fl.Has(classify.MissingPrecomposed) || gsubFailed:
		wrapped = wrap("UNSUPP", raw)
	default:
		wrapped = wrap("IPAFALL", raw)
	}
	if gsubFailed {
		wrapped = wrap("GSUBOVERLAY", wrapped)
	}
	if fl.Has(classify.MissingPrecomposed) {
		wrapped = wrap("MISSINGPRE", wrapped)
	}
	if fl.MissingGlyph() {
		wrapped = wrap("MISSINGGLYPH", wrapped)
	}
	return wrapped
}

// gsubFailed reports an expected substitution which did not occur.
func (s *Sanity) gsubFailed(c matrix.Cell) bool {
	fl := c.Result.Flags()
	if fl.AltcapFailed() {
		return true
	}
	return fl.DotlessFailed() && s.significant(c)
}

// Preamble returns \providecommand definitions for the macros of r which
// typeset their argument unchanged.
func Preamble(r Renderer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%% macros of the %s renderer\n", r.Name())
	for _, m := range r.Macros() {
		fmt.Fprintf(&b, "\\providecommand{\\%s}[1]{#1}\n", m)
	}
	return b.String()
}
