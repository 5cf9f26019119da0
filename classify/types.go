package classify

import "fmt"

// Category is the rendering outcome of a base+mark combination.
type Category uint8

const (
	// Fallback: the mark is positioned without anchor data (or cannot be
	// rendered at all, see the missing flags).
	Fallback Category = iota
	// Anchored: the base glyph carries anchor data for the mark's class.
	Anchored
	// Precomposed: shaping collapsed the pair into one precomposed glyph.
	Precomposed
)

func (c Category) String() string {
	switch c {
	case Fallback:
		return "fallback"
	case Anchored:
		return "anchored"
	case Precomposed:
		return "precomposed"
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// GlyphID is a glyph index within one font. Glyph IDs of different fonts
// are not comparable.
type GlyphID uint32

// AttachmentClass groups marks sharing anchor geometry within one font.
// Class assignment is font-specific.
type AttachmentClass int

// NoClass signals that there is no curated attachment class for a mark in
// a font.
const NoClass AttachmentClass = -1

// Valid reports whether c denotes a real class index.
func (c AttachmentClass) Valid() bool {
	return c >= 0
}

func (c AttachmentClass) String() string {
	if !c.Valid() {
		return "<none>"
	}
	return fmt.Sprintf("class %d", int(c))
}

// Position holds the positioning values of a shaped glyph, in font units.
type Position struct {
	XAdvance, YAdvance int32
	XOffset, YOffset   int32
}

// GlyphRecord is one glyph of a shaped glyph sequence.
type GlyphRecord struct {
	GID     GlyphID
	Cluster uint32 // index of the input rune this glyph originates from
	Pos     Position
}

// FontView is the read-only lookup service of one font, as far as
// classification is concerned.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type FontView interface {
	// HasGlyph reports whether the cmap maps cp to a glyph.
	HasGlyph(cp rune) bool
	// NominalGlyph returns the glyph the cmap assigns to cp.
	NominalGlyph(cp rune) (GlyphID, bool)
	// Shape shapes the two-codepoint sequence base+mark.
	Shape(base, mark rune) ([]GlyphRecord, error)
	// GlyphName returns the name of a glyph, or "" if it has none.
	GlyphName(gid GlyphID) string
	// CodepointForGlyph is the inverse cmap.
	CodepointForGlyph(gid GlyphID) (rune, bool)
	// HasAnchor reports whether a base glyph carries anchor data for
	// class within the font's curated mark-to-base lookup.
	HasAnchor(base GlyphID, class AttachmentClass) bool
	// AttachmentClassForMark returns the attachment class of a mark, or
	// NoClass.
	AttachmentClassForMark(mark rune) AttachmentClass
}

// GroundTruth knows which bases a combining mark is linguistically defined
// to combine with, independent of any font.
type GroundTruth interface {
	SupportedBases(mark rune) []rune
}

// Classifier classifies one (base, mark, class, font) tuple.
//
// Recognized conditions (missing glyphs, missing precomposed forms, unknown
// classes) are encoded in the result. An error is returned only if the font
// lookup service fails; callers should treat it as fatal for the font.
type Classifier interface {
	Name() string
	Classify(base, mark rune, class AttachmentClass, font FontView) (Result, error)
}

// Result is the outcome of classifying one combination. It is immutable.
type Result struct {
	category Category
	flags    Flags
	glyphs   []GlyphRecord // nil if the pair has not been shaped
}

// NewResult creates a result. glyphs is copied.
func NewResult(category Category, flags Flags, glyphs []GlyphRecord) Result {
	r := Result{category: category, flags: flags}
	if glyphs != nil {
		r.glyphs = make([]GlyphRecord, len(glyphs))
		copy(r.glyphs, glyphs)
	}
	return r
}

// Placeholder is the result for combinations which have never been
// classified: fallback, no flags, not shaped.
var Placeholder = Result{category: Fallback}

// Category returns the rendering category.
func (r Result) Category() Category {
	return r.category
}

// Flags returns the diagnostic flags.
func (r Result) Flags() Flags {
	return r.flags
}

// Shaped reports whether the pair has been shaped.
func (r Result) Shaped() bool {
	return r.glyphs != nil
}

// Glyphs returns a copy of the shaped glyph sequence, or nil.
func (r Result) Glyphs() []GlyphRecord {
	if r.glyphs == nil {
		return nil
	}
	g := make([]GlyphRecord, len(r.glyphs))
	copy(g, r.glyphs)
	return g
}

// GlyphCount returns the length of the shaped glyph sequence.
func (r Result) GlyphCount() int {
	return len(r.glyphs)
}

func (r Result) String() string {
	return fmt.Sprintf("%s %s glyphs=%d", r.category, r.flags, len(r.glyphs))
}
