/*
Package markcombo diagnoses how fonts render combinations of base letters
and combining marks, for typographic quality reports.

Every combination of a base codepoint, a mark codepoint and a font is put
into one of three categories:

▪︎ "precomposed": shaping collapsed the pair into a single precomposed glyph.

▪︎ "anchored": the base glyph carries mark-to-base anchor data for the
mark's attachment class, so the mark is positioned by the font.

▪︎ "fallback": the mark is placed without anchor data (or cannot be
rendered at all).

Diagnostic flags tell about missing glyphs, missing precomposed forms and
expected glyph substitutions (dotless i/j, alternate marks above
capitals), and whether a combination is semantically valid at all.

The packages of this module, leaves first:

▪︎ classify: the classifiers and their font interface.

▪︎ fontview: the font lookup service for OpenType files.

▪︎ unidata: Unicode ground truth (codepoint groups, semantic support).

▪︎ matrix: runs a classifier over bases × marks × fonts.

▪︎ texreport: renders a classified matrix as LaTeX.

▪︎ runconf: run files.

This package has convenience functions tying them together.

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package markcombo

import (
	"errors"
	"fmt"
	"slices"

	"github.com/npillmayer/markcombo/classify"
	"github.com/npillmayer/markcombo/matrix"
	"github.com/npillmayer/markcombo/runconf"
	"github.com/npillmayer/markcombo/unidata"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'markcombo'
func tracer() tracing.Trace {
	return tracing.Select("markcombo")
}

// ClassifyFonts classifies every base with every mark in a set of fonts,
// using the sanity classifier and the built-in ground truth.
//
// This is a convenience API for a common use-case. The returned matrix
// holds the results of all fonts which could be classified; err names the
// fonts which could not.
func ClassifyFonts(bases, marks []rune, fonts ...matrix.FontSpec) (*matrix.Matrix, error) {
	data := unidata.Default()
	fonts = slices.Clone(fonts)
	for i := range fonts {
		if fonts[i].Classes == nil {
			fonts[i].Classes = data.MarkClasses()
		}
	}
	conf := matrix.Config{
		BaseGroups: []unidata.Group{{Name: "BASES", Label: "Bases", Kind: unidata.KindBase, Items: bases}},
		MarkGroups: []unidata.Group{{Name: "MARKS", Label: "Marks", Kind: unidata.KindMark, Items: marks}},
		Fonts:      fonts,
	}
	m, err := matrix.New(conf, classify.NewSanity(data.Support()))
	if err != nil {
		return nil, err
	}
	return m, m.ClassifyAll()
}

// Run is a report run prepared from a run file.
type Run struct {
	Conf   *runconf.Config
	Data   *unidata.Data
	Matrix *matrix.Matrix
}

// Prepare loads the ground truth of a run and creates its matrix. Fonts are
// not loaded yet.
func Prepare(conf *runconf.Config) (*Run, error) {
	run := &Run{Conf: conf}
	var err error
	if run.Data, err = conf.GroundTruthData(); err != nil {
		return nil, err
	}
	mc, err := conf.MatrixConfig(run.Data)
	if err != nil {
		return nil, err
	}
	if run.Matrix, err = matrix.New(mc, conf.Classifier(run.Data), conf.MatrixOptions()...); err != nil {
		return nil, err
	}
	return run, nil
}

// Report classifies all combinations of the run and builds its TeX
// fragment. A report is built even if some fonts failed; they are named in
// the error.
func (run *Run) Report() (string, error) {
	err := run.Matrix.ClassifyAll()
	if err != nil {
		tracer().Errorf("report is incomplete: %v", err)
	}
	tex := run.Conf.Builder()(run.Matrix, run.Conf.Renderer())
	if n := run.Matrix.Inconsistencies(); n > 0 {
		err = errors.Join(err, fmt.Errorf("report requested %d unclassified combinations", n))
	}
	return tex, err
}
