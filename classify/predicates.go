package classify

import (
	"slices"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// DotRemovalMarks are the combining marks sitting on the dot of i and j.
// Above capital letters, fonts often substitute flatter variants of them.
var DotRemovalMarks = []rune{
	0x0300, // grave
	0x0301, // acute
	0x0302, // circumflex
	0x0303, // tilde
	0x0304, // macron
	0x0306, // breve
	0x0307, // dot above
	0x0308, // diaeresis
	0x030A, // ring above
	0x030B, // double acute
	0x030C, // caron
}

// DefaultDotlessNames are the glyph names identifying dotless i and j.
var DefaultDotlessNames = []string{
	"dotlessi", "uni0131", "idotless",
	"dotlessj", "uni0237", "jdotless",
}

// IsDotRemovalMark reports whether mark is one of DotRemovalMarks.
func IsDotRemovalMark(mark rune) bool {
	return slices.Contains(DotRemovalMarks, mark)
}

// Compose returns the canonical composition of base+mark, if Unicode
// defines it as a single codepoint.
func Compose(base, mark rune) (rune, bool) {
	nfc := norm.NFC.String(string([]rune{base, mark}))
	if utf8.RuneCountInString(nfc) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(nfc)
	return r, true
}

// DotlessExpected reports whether a font should substitute a dotless form
// for base when followed by mark.
func DotlessExpected(base, mark rune) bool {
	return (base == 'i' || base == 'j') && IsDotRemovalMark(mark)
}

// AltCapExpected reports whether a font might substitute a capital form of
// mark above base.
func AltCapExpected(base, mark rune) bool {
	return unicode.IsUpper(base) && IsDotRemovalMark(mark)
}

// IsDotlessName reports whether name is one of names.
func IsDotlessName(name string, names []string) bool {
	return name != "" && slices.Contains(names, name)
}

// Substituted reports whether shaping replaced the cmap glyph of either base
// or mark.
func Substituted(base, mark rune, glyphs []GlyphRecord, font FontView) bool {
	if len(glyphs) == 0 {
		return false
	}
	if gid, ok := font.NominalGlyph(base); ok && glyphs[0].GID != gid {
		return true
	}
	if gid, ok := font.NominalGlyph(mark); ok {
		if len(glyphs) < 2 || glyphs[1].GID != gid {
			return true
		}
	}
	return false
}
