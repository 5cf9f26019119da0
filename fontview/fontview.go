/*
Package fontview provides the font lookup service used for classification.

A View wraps one OpenType font file and exposes exactly what the classifier
consumes: cmap presence and inverse cmap, glyph names, shaping of a
base+mark pair, and the anchor data of one curated GPOS mark-to-base lookup.

Font tables and shaping are handled by go-text/typesetting; font naming
uses golang.org/x/image/font/sfnt.

Views are loaded once per font and are read-only afterwards. They are safe
for concurrent use; shaping calls of one view are serialized.
*/
package fontview

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype/tables"
	"github.com/go-text/typesetting/harfbuzz"
	"github.com/npillmayer/markcombo/classify"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
	xlanguage "golang.org/x/text/language"
)

// tracer traces with key 'markcombo.fontview'
func tracer() tracing.Trace {
	return tracing.Select("markcombo.fontview")
}

// NoLookup as a lookup index loads a font without anchor data.
const NoLookup = -1

// View is the lookup service of one font.
type View struct {
	key      string
	fullname string
	nglyphs  int
	face     *font.Face
	lookup   []markBase // mark-to-base subtables of the curated lookup
	classes  map[rune]classify.AttachmentClass
	inverse  map[classify.GlyphID]rune
	lang     xlanguage.Tag
	mu       sync.Mutex // guards shaper
	shaper   *harfbuzz.Font
}

var _ classify.FontView = (*View)(nil)

// Option configures a View.
type Option func(*View)

// WithClasses sets curated attachment classes for marks. They take
// precedence over the mark classes found in the font's lookup.
func WithClasses(classes map[rune]int) Option {
	return func(v *View) {
		for mark, c := range classes {
			v.classes[mark] = classify.AttachmentClass(c)
		}
	}
}

// WithLanguage sets the language used for shaping. Default is English.
func WithLanguage(tag xlanguage.Tag) Option {
	return func(v *View) {
		v.lang = tag
	}
}

// Load reads and parses a font file. key identifies the font in error
// messages; lookupIndex is the index of the curated mark-to-base lookup in
// the font's GPOS lookup list, or NoLookup.
func Load(key, path string, lookupIndex int, opts ...Option) (*View, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Font: key, Path: path, Err: err}
	}
	v, err := Parse(key, data, lookupIndex, opts...)
	if err != nil {
		var lerr *LoadError
		if errors.As(err, &lerr) {
			lerr.Path = path
		}
		return nil, err
	}
	tracer().Infof("loaded font %s (%s) from %s", key, v.fullname, path)
	return v, nil
}

// Parse creates a view from the binary data of a font.
func Parse(key string, data []byte, lookupIndex int, opts ...Option) (*View, error) {
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, &LoadError{Font: key, Err: err}
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, &LoadError{Font: key, Err: err}
	}
	v := &View{
		key:     key,
		nglyphs: sf.NumGlyphs(),
		face:    face,
		classes: make(map[rune]classify.AttachmentClass),
		lang:    xlanguage.English,
	}
	if v.fullname, err = sf.Name(nil, sfnt.NameIDFull); err != nil {
		tracer().Debugf("font %s has no full name: %v", key, err)
	}
	if v.lookup, err = markBaseSubtables(face, lookupIndex); err != nil {
		return nil, &LoadError{Font: key, Err: err}
	}
	v.inverse = inverseCmap(face.Cmap)
	for _, opt := range opts {
		opt(v)
	}
	v.shaper = harfbuzz.NewFont(face)
	return v, nil
}

// markBase is a mark-to-base subtable together with its number of mark
// classes. Anchor rows of the base array are only valid below that count.
type markBase struct {
	tables.MarkBasePos
	classCount int
}

func newMarkBase(sub tables.MarkBasePos) markBase {
	mb := markBase{MarkBasePos: sub}
	for _, rec := range sub.MarkArray.MarkRecords {
		mb.classCount = max(mb.classCount, int(rec.MarkClass)+1)
	}
	return mb
}

// anchor reports whether base glyph gid has an anchor for class.
func (mb markBase) anchor(gid classify.GlyphID, class classify.AttachmentClass) (found bool) {
	defer func() {
		// mark records may name classes beyond the base array's rows in malformed fonts
		if r := recover(); r != nil {
			tracer().Errorf("malformed mark-to-base subtable, glyph %d class %d: %v", gid, class, r)
			found = false
		}
	}()
	if int(class) >= mb.classCount {
		return false
	}
	inx, ok := mb.BaseCoverage.Index(tables.GlyphID(gid))
	if !ok {
		return false
	}
	anchors := mb.BaseArray.Anchors()
	if inx >= anchors.Len() {
		return false
	}
	return anchors.Anchor(inx, int(class)) != nil
}

// markClass returns the class of mark glyph gid.
func (mb markBase) markClass(gid classify.GlyphID) (classify.AttachmentClass, bool) {
	inx, ok := mb.Cov().Index(tables.GlyphID(gid))
	if !ok || inx >= len(mb.MarkArray.MarkRecords) {
		return classify.NoClass, false
	}
	return classify.AttachmentClass(mb.MarkArray.MarkRecords[inx].MarkClass), true
}

// markBaseSubtables collects the mark-to-base subtables of GPOS lookup
// number index.
func markBaseSubtables(face *font.Face, index int) ([]markBase, error) {
	if index == NoLookup {
		return nil, nil
	}
	lookups := face.GPOS.Lookups
	if index < 0 || index >= len(lookups) {
		return nil, fmt.Errorf("GPOS lookup index %d out of range (font has %d lookups)",
			index, len(lookups))
	}
	var subtables []markBase
	for _, sub := range lookups[index].Subtables {
		if mb, ok := sub.(tables.MarkBasePos); ok {
			subtables = append(subtables, newMarkBase(mb))
		}
	}
	if len(subtables) == 0 {
		tracer().Errorf("GPOS lookup %d is not a mark-to-base lookup", index)
	}
	return subtables, nil
}

// inverseCmap maps glyphs back to codepoints. If several codepoints share a
// glyph, the lowest one wins.
func inverseCmap(cmap font.Cmap) map[classify.GlyphID]rune {
	inv := make(map[classify.GlyphID]rune)
	if cmap == nil {
		return inv
	}
	iter := cmap.Iter()
	for iter.Next() {
		r, gid := iter.Char()
		g := classify.GlyphID(gid)
		if prev, ok := inv[g]; !ok || r < prev {
			inv[g] = r
		}
	}
	return inv
}

// Key returns the font key the view has been loaded with.
func (v *View) Key() string {
	return v.key
}

// FullName returns the full font name from the font's name table.
func (v *View) FullName() string {
	return v.fullname
}

// NumGlyphs returns the number of glyphs in the font.
func (v *View) NumGlyphs() int {
	return v.nglyphs
}

// HasAnchorLookup reports whether the view carries mark-to-base data.
func (v *View) HasAnchorLookup() bool {
	return len(v.lookup) > 0
}

// HasGlyph reports whether the cmap maps cp to a glyph.
func (v *View) HasGlyph(cp rune) bool {
	_, ok := v.NominalGlyph(cp)
	return ok
}

// NominalGlyph returns the cmap glyph of cp.
func (v *View) NominalGlyph(cp rune) (classify.GlyphID, bool) {
	gid, ok := v.face.NominalGlyph(cp)
	return classify.GlyphID(gid), ok
}

// GlyphName returns the name of a glyph from the post or CFF table.
func (v *View) GlyphName(gid classify.GlyphID) string {
	return v.face.GlyphName(font.GID(gid))
}

// CodepointForGlyph returns the codepoint mapped to gid by the cmap.
func (v *View) CodepointForGlyph(gid classify.GlyphID) (rune, bool) {
	r, ok := v.inverse[gid]
	return r, ok
}

// HasAnchor reports whether base has an anchor for class in the curated
// mark-to-base lookup.
func (v *View) HasAnchor(base classify.GlyphID, class classify.AttachmentClass) bool {
	if !class.Valid() {
		return false
	}
	for _, sub := range v.lookup {
		if sub.anchor(base, class) {
			return true
		}
	}
	return false
}

// AttachmentClassForMark returns the curated class of mark, or else the
// mark class of mark's glyph in the curated lookup.
func (v *View) AttachmentClassForMark(mark rune) classify.AttachmentClass {
	if c, ok := v.classes[mark]; ok {
		return c
	}
	gid, ok := v.face.NominalGlyph(mark)
	if !ok {
		return classify.NoClass
	}
	for _, sub := range v.lookup {
		if c, ok := sub.markClass(classify.GlyphID(gid)); ok {
			return c
		}
	}
	return classify.NoClass
}
