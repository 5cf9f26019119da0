package fontview

import (
	"fmt"

	"github.com/go-text/typesetting/harfbuzz"
	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/markcombo/classify"
)

// Shape shapes the sequence base+mark and returns the glyphs in output
// order. Script and direction are guessed from the input.
func (v *View) Shape(base, mark rune) (glyphs []classify.GlyphRecord, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	defer func() {
		// the shaper panics on some malformed fonts
		if r := recover(); r != nil {
			err = &ShapeError{Font: v.key, Base: base, Mark: mark, Cause: fmt.Sprint(r)}
			glyphs = nil
		}
	}()
	buf := harfbuzz.NewBuffer()
	buf.AddRunes([]rune{base, mark}, 0, -1)
	buf.Props.Language = language.NewLanguage(v.lang.String())
	buf.GuessSegmentProperties()
	buf.Shape(v.shaper, nil)
	glyphs = make([]classify.GlyphRecord, len(buf.Info))
	for i, info := range buf.Info {
		glyphs[i] = classify.GlyphRecord{
			GID:     classify.GlyphID(info.Glyph),
			Cluster: uint32(info.Cluster),
		}
		if i < len(buf.Pos) {
			pos := buf.Pos[i]
			glyphs[i].Pos = classify.Position{
				XAdvance: int32(pos.XAdvance),
				YAdvance: int32(pos.YAdvance),
				XOffset:  int32(pos.XOffset),
				YOffset:  int32(pos.YOffset),
			}
		}
	}
	return glyphs, nil
}
