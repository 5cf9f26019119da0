package classify

// Classic is the simple classifier of the first reports. It stops at the
// first recognized condition and does not shape combinations which cannot
// be rendered properly anyway.
//
// Classic reports generic substitutions with GsubSubstituted and does not
// evaluate semantic support.
type Classic struct{}

var _ Classifier = Classic{}

// NewClassic creates a classic classifier.
func NewClassic() Classic {
	return Classic{}
}

// Name returns "classic".
func (Classic) Name() string {
	return "classic"
}

// Classify classifies base+mark for font.
func (Classic) Classify(base, mark rune, class AttachmentClass, font FontView) (Result, error) {
	var fb flagBuilder
	fb.set(MissingBase, !font.HasGlyph(base))
	fb.set(MissingMark, !font.HasGlyph(mark))
	if fb.has(MissingBase) || fb.has(MissingMark) {
		return NewResult(Fallback, fb.build(), nil), nil
	}
	composed, hasComposition := Compose(base, mark)
	if hasComposition && !font.HasGlyph(composed) {
		fb.set(MissingPrecomposed, true)
		return NewResult(Fallback, fb.build(), nil), nil
	}
	glyphs, err := shape(font, base, mark)
	if err != nil {
		return Result{}, err
	}
	if Substituted(base, mark, glyphs, font) && len(glyphs) > 1 {
		fb.set(GsubSubstituted, true)
		return NewResult(Fallback, fb.build(), glyphs), nil
	}
	if hasComposition {
		fb.set(GsubPrecExpected, true)
		if len(glyphs) == 1 {
			fb.set(GsubPrecOccurred, true)
			return NewResult(Precomposed, fb.build(), glyphs), nil
		}
	}
	category := Fallback
	if gid, ok := font.NominalGlyph(base); ok && class.Valid() && font.HasAnchor(gid, class) {
		category = Anchored
	}
	return NewResult(category, fb.build(), glyphs), nil
}
