package classify

import "errors"

// fakeFont is a synthetic font view. Shaping maps codepoints through the
// cmap, composes pairs with a precomposed glyph and applies explicit
// substitutions.
type fakeFont struct {
	cmap       map[rune]GlyphID
	names      map[GlyphID]string
	anchors    map[GlyphID][]AttachmentClass
	classes    map[rune]AttachmentClass
	subst      map[[2]rune][]GlyphID // explicit shaping results
	noCompose  bool                  // do not compose precomposed pairs
	shapeErr   error
	shapeCalls int
}

var errShapingFailed = errors.New("shaper exploded")

// latinFont is a small Latin font:
// a, i, j, A, ı (dotlessi), á, grave, acute, acute.cap.
// 'a' and 'ı' carry class-0 anchors, 'i' carries none.
func latinFont() *fakeFont {
	return &fakeFont{
		cmap: map[rune]GlyphID{
			'a':    1,
			'i':    2,
			'j':    3,
			'A':    4,
			0x0131: 5,  // dotless i
			0x00E1: 6,  // a acute
			0x0300: 10, // grave
			0x0301: 11, // acute
			0x035B: 13, // zigzag above, never composes
		},
		names: map[GlyphID]string{
			1: "a", 2: "i", 3: "j", 4: "A", 5: "dotlessi", 6: "aacute",
			10: "gravecomb", 11: "acutecomb", 12: "acutecomb.cap", 13: "zigzagcomb",
		},
		anchors: map[GlyphID][]AttachmentClass{
			1: {0, 1},
			4: {0},
			5: {0},
		},
		classes: map[rune]AttachmentClass{
			0x0300: 0,
			0x0301: 0,
			0x035B: 0,
		},
		subst: map[[2]rune][]GlyphID{},
	}
}

func (f *fakeFont) HasGlyph(cp rune) bool {
	_, ok := f.cmap[cp]
	return ok
}

func (f *fakeFont) NominalGlyph(cp rune) (GlyphID, bool) {
	gid, ok := f.cmap[cp]
	return gid, ok
}

func (f *fakeFont) Shape(base, mark rune) ([]GlyphRecord, error) {
	f.shapeCalls++
	if f.shapeErr != nil {
		return nil, f.shapeErr
	}
	if gids, ok := f.subst[[2]rune{base, mark}]; ok {
		glyphs := make([]GlyphRecord, len(gids))
		for i, gid := range gids {
			glyphs[i] = GlyphRecord{GID: gid, Cluster: uint32(i)}
		}
		return glyphs, nil
	}
	if !f.noCompose {
		if composed, ok := Compose(base, mark); ok {
			if gid, ok := f.cmap[composed]; ok {
				return []GlyphRecord{{GID: gid, Pos: Position{XAdvance: 500}}}, nil
			}
		}
	}
	return []GlyphRecord{
		{GID: f.cmap[base], Cluster: 0, Pos: Position{XAdvance: 500}},
		{GID: f.cmap[mark], Cluster: 1, Pos: Position{XOffset: -250}},
	}, nil
}

func (f *fakeFont) GlyphName(gid GlyphID) string {
	return f.names[gid]
}

func (f *fakeFont) CodepointForGlyph(gid GlyphID) (rune, bool) {
	for cp, g := range f.cmap {
		if g == gid {
			return cp, true
		}
	}
	return 0, false
}

func (f *fakeFont) HasAnchor(base GlyphID, class AttachmentClass) bool {
	for _, c := range f.anchors[base] {
		if c == class {
			return true
		}
	}
	return false
}

func (f *fakeFont) AttachmentClassForMark(mark rune) AttachmentClass {
	if c, ok := f.classes[mark]; ok {
		return c
	}
	return NoClass
}

// truthTable is a synthetic ground truth.
type truthTable map[rune][]rune

func (t truthTable) SupportedBases(mark rune) []rune {
	return t[mark]
}
