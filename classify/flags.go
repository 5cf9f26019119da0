package classify

import "strings"

// Flags is a set of diagnostic conditions of a classification.
// The zero value has no flag set.
type Flags uint16

const (
	MissingBase         Flags = 1 << iota // base codepoint has no glyph
	MissingMark                           // mark codepoint has no glyph
	MissingPrecomposed                    // Unicode has a precomposed form the font did not deliver
	GsubPrecExpected                      // precomposed glyph exists, composition expected
	GsubPrecOccurred                      // shaping collapsed the pair into one glyph
	GsubDotlessExpected                   // i/j below a dot-removing mark
	GsubDotlessOccurred                   // shaper substituted a dotless i/j
	GsubAltcapExpected                    // uppercase base below an above-mark
	GsubAltcapOccurred                    // shaper substituted the mark
	Supported                             // combination is semantically valid
	GsubSubstituted                       // any input glyph has been replaced
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{MissingBase, "missing_base"},
	{MissingMark, "missing_mark"},
	{MissingPrecomposed, "missing_precomposed"},
	{GsubPrecExpected, "gsub_prec_expected"},
	{GsubPrecOccurred, "gsub_prec_occurred"},
	{GsubDotlessExpected, "gsub_dotless_expected"},
	{GsubDotlessOccurred, "gsub_dotless_occurred"},
	{GsubAltcapExpected, "gsub_altcap_expected"},
	{GsubAltcapOccurred, "gsub_altcap_occurred"},
	{Supported, "supported"},
	{GsubSubstituted, "gsub_substituted"},
}

// gsubFlags are all flags derived from shaping output.
const gsubFlags = GsubPrecExpected | GsubPrecOccurred | GsubDotlessExpected |
	GsubDotlessOccurred | GsubAltcapExpected | GsubAltcapOccurred | GsubSubstituted

// Has reports whether all flags in f are set.
func (fl Flags) Has(f Flags) bool {
	return fl&f == f
}

// Any reports whether at least one flag in f is set.
func (fl Flags) Any(f Flags) bool {
	return fl&f != 0
}

// MissingGlyph reports whether base or mark glyph is missing.
func (fl Flags) MissingGlyph() bool {
	return fl.Any(MissingBase | MissingMark)
}

// DotlessFailed reports an expected dotless substitution which did not occur.
func (fl Flags) DotlessFailed() bool {
	return fl.Has(GsubDotlessExpected) && !fl.Has(GsubDotlessOccurred)
}

// AltcapFailed reports an expected mark substitution above a capital which
// did not occur.
func (fl Flags) AltcapFailed() bool {
	return fl.Has(GsubAltcapExpected) && !fl.Has(GsubAltcapOccurred)
}

// Names returns the names of all flags set, in declaration order.
func (fl Flags) Names() []string {
	names := make([]string, 0, len(flagNames))
	for _, fn := range flagNames {
		if fl.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return names
}

func (fl Flags) String() string {
	return "{" + strings.Join(fl.Names(), ",") + "}"
}

// FlagByName returns the flag for a name as returned by Names.
func FlagByName(name string) (Flags, bool) {
	for _, fn := range flagNames {
		if fn.name == name {
			return fn.flag, true
		}
	}
	return 0, false
}

// AllFlags lists every flag in declaration order.
func AllFlags() []Flags {
	all := make([]Flags, len(flagNames))
	for i, fn := range flagNames {
		all[i] = fn.flag
	}
	return all
}

// flagBuilder accumulates flags during a classification. Classifiers hand
// out the built value only.
type flagBuilder struct {
	flags Flags
}

func (b *flagBuilder) set(f Flags, condition bool) *flagBuilder {
	if condition {
		b.flags |= f
	}
	return b
}

func (b *flagBuilder) has(f Flags) bool {
	return b.flags.Has(f)
}

func (b *flagBuilder) build() Flags {
	return b.flags
}
