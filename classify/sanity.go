package classify

import (
	"fmt"
	"slices"
)

// Sanity is the flag-rich classifier. It reconciles glyph presence,
// precomposition, dotless and alternate-capital substitutions and anchor
// data, and attaches a semantic-support verdict from a GroundTruth.
type Sanity struct {
	truth        GroundTruth
	dotlessNames []string
}

var _ Classifier = (*Sanity)(nil)

// Option configures a Sanity classifier.
type Option func(*Sanity)

// WithDotlessNames replaces the glyph names recognized as dotless i/j.
func WithDotlessNames(names ...string) Option {
	return func(s *Sanity) {
		s.dotlessNames = slices.Clone(names)
	}
}

// NewSanity creates a flag-rich classifier. truth may be nil, in which case
// no combination is flagged as supported.
func NewSanity(truth GroundTruth, opts ...Option) *Sanity {
	s := &Sanity{
		truth:        truth,
		dotlessNames: DefaultDotlessNames,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns "sanity".
func (s *Sanity) Name() string {
	return "sanity"
}

// Classify classifies base+mark for font. class is the mark's attachment
// class in this font, or NoClass.
func (s *Sanity) Classify(base, mark rune, class AttachmentClass, font FontView) (Result, error) {
	var fb flagBuilder
	fb.set(Supported, s.supports(base, mark))
	//
	// missing glyphs short-circuit all substitution and anchor reasoning
	fb.set(MissingBase, !font.HasGlyph(base))
	fb.set(MissingMark, !font.HasGlyph(mark))
	if fb.has(MissingBase) || fb.has(MissingMark) {
		glyphs, err := shape(font, base, mark)
		if err != nil {
			return Result{}, err
		}
		return NewResult(Fallback, fb.build(), glyphs), nil
	}
	glyphs, err := shape(font, base, mark)
	if err != nil {
		return Result{}, err
	}
	//
	// expectations
	composed, hasComposition := Compose(base, mark)
	composedInFont := hasComposition && font.HasGlyph(composed)
	fb.set(GsubPrecExpected, composedInFont)
	fb.set(GsubDotlessExpected, DotlessExpected(base, mark))
	fb.set(GsubAltcapExpected, AltCapExpected(base, mark))
	//
	// occurrences
	fb.set(GsubPrecOccurred, fb.has(GsubPrecExpected) && len(glyphs) == 1)
	fb.set(GsubDotlessOccurred, fb.has(GsubDotlessExpected) && len(glyphs) > 0 &&
		IsDotlessName(font.GlyphName(glyphs[0].GID), s.dotlessNames))
	fb.set(GsubAltcapOccurred, fb.has(GsubAltcapExpected) && altMarkSubstituted(mark, glyphs, font))
	fb.set(GsubSubstituted, Substituted(base, mark, glyphs, font))
	fb.set(MissingPrecomposed, (fb.has(GsubPrecExpected) && !fb.has(GsubPrecOccurred)) ||
		(hasComposition && !composedInFont))
	//
	// category
	category := Fallback
	if fb.has(GsubPrecOccurred) {
		category = Precomposed
	} else if class.Valid() {
		if lookup, ok := anchorGlyph(base, glyphs, fb.has(GsubDotlessOccurred), font); ok &&
			font.HasAnchor(lookup, class) {
			category = Anchored
		}
	}
	flags := fb.build()
	tracer().Debugf("U+%04X U+%04X (%s) -> %s %s", base, mark, class, category, flags)
	return NewResult(category, flags, glyphs), nil
}

func (s *Sanity) supports(base, mark rune) bool {
	if s.truth == nil {
		return false
	}
	return slices.Contains(s.truth.SupportedBases(mark), base)
}

// anchorGlyph selects the glyph whose anchor data applies. After a dotless
// substitution the dotless glyph carries its own anchors, so the lookup is
// re-derived from the shaped glyph's codepoint.
func anchorGlyph(base rune, glyphs []GlyphRecord, dotless bool, font FontView) (GlyphID, bool) {
	if dotless && len(glyphs) > 0 {
		shaped := glyphs[0].GID
		if cp, ok := font.CodepointForGlyph(shaped); ok {
			if gid, ok := font.NominalGlyph(cp); ok {
				return gid, true
			}
		}
		return shaped, true
	}
	return font.NominalGlyph(base)
}

// altMarkSubstituted reports whether the second shaped glyph differs from
// the mark's cmap glyph.
func altMarkSubstituted(mark rune, glyphs []GlyphRecord, font FontView) bool {
	if len(glyphs) < 2 {
		return false
	}
	gid, ok := font.NominalGlyph(mark)
	return ok && glyphs[1].GID != gid
}

func shape(font FontView, base, mark rune) ([]GlyphRecord, error) {
	glyphs, err := font.Shape(base, mark)
	if err != nil {
		return nil, fmt.Errorf("shaping U+%04X U+%04X: %w", base, mark, err)
	}
	if glyphs == nil {
		glyphs = []GlyphRecord{}
	}
	return glyphs, nil
}
