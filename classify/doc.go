/*
Package classify decides how a font renders a base character combined with a
combining mark.

A classification combines several independent signals into one [Category]:
glyph presence, Unicode canonical composition, three kinds of glyph
substitution (precomposition, dotless i/j, alternate marks above capitals)
and the anchor data of a curated mark-to-base attachment lookup. The
individual signals are kept in a [Flags] value, so report builders may
render a combination by how it renders and still show what went wrong.

Fonts are accessed through the [FontView] interface only. Package fontview
provides an implementation on top of real font files; tests use synthetic
views.

There are two classifiers:

▪︎ [Sanity] is the flag-rich decision path and the one to use for reports.

▪︎ [Classic] is the older, simpler path. It detects generic substitutions
but knows nothing about dotless forms or semantic support.

Both are pure functions of their inputs and the (read-only) font state,
apart from invoking the font's shaper.
*/
package classify

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'markcombo.classify'
func tracer() tracing.Trace {
	return tracing.Select("markcombo.classify")
}
