/*
Package matrix runs a classifier over the cross product of bases × marks ×
fonts and keeps the results in a grid addressable by (mark, base, font).

A Matrix is created from an explicit Config. Fonts are loaded once, then a
single classification pass fills the grid, which is read-only afterwards
and may be traversed by report builders from multiple goroutines.

	m, err := matrix.New(conf, classify.NewSanity(truth))
	...
	err = m.ClassifyAll()  // errors name the failed fonts; other fonts complete
	cells := m.Paragraph(0x0301, "regular")

A font which fails to load or to shape contributes no combinations at all.
*/
package matrix

import (
	"errors"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/npillmayer/markcombo/classify"
	"github.com/npillmayer/markcombo/fontview"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'markcombo.matrix'
func tracer() tracing.Trace {
	return tracing.Select("markcombo.matrix")
}

// Key addresses one combination of the grid.
type Key struct {
	Mark rune
	Base rune
	Font string
}

// Loader creates the font view for a font spec.
type Loader func(FontSpec) (classify.FontView, error)

// LoadFontView is the default loader. It loads a font file with fontview.
func LoadFontView(spec FontSpec) (classify.FontView, error) {
	v, err := fontview.Load(spec.Key, spec.Path, spec.LookupIndex, fontview.WithClasses(spec.Classes))
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Option configures a Matrix.
type Option func(*Matrix)

// WithLoader replaces the font loader.
func WithLoader(loader Loader) Option {
	return func(m *Matrix) {
		if loader != nil {
			m.loader = loader
		}
	}
}

// WithWorkers limits the number of concurrent classification workers.
// Default is GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(m *Matrix) {
		if n > 0 {
			m.workers = n
		}
	}
}

// Matrix is a combination matrix.
type Matrix struct {
	conf       Config
	classifier classify.Classifier
	loader     Loader
	workers    int
	bases      []rune // distinct bases of all base groups, in order
	marks      []rune // distinct marks of all mark groups, in order
	loaded     bool
	views      map[string]classify.FontView
	failed     map[string]error
	grid       map[Key]classify.Result // nil until classified
	missed     atomic.Int64
}

// New creates a matrix. The configuration is validated, fonts are not
// loaded yet.
func New(conf Config, classifier classify.Classifier, opts ...Option) (*Matrix, error) {
	if classifier == nil {
		return nil, errors.New("matrix needs a classifier")
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	m := &Matrix{
		conf:       conf,
		classifier: classifier,
		loader:     LoadFontView,
		workers:    runtime.GOMAXPROCS(0),
		views:      make(map[string]classify.FontView, len(conf.Fonts)),
		failed:     make(map[string]error),
	}
	for _, opt := range opts {
		opt(m)
	}
	for _, g := range conf.BaseGroups {
		m.bases = appendDistinct(m.bases, g.Items)
	}
	for _, g := range conf.MarkGroups {
		m.marks = appendDistinct(m.marks, g.Items)
	}
	return m, nil
}

func appendDistinct(list []rune, items []rune) []rune {
	for _, r := range items {
		if !slices.Contains(list, r) {
			list = append(list, r)
		}
	}
	return list
}

// LoadFonts loads the font view of every configured font. Fonts which fail
// to load are excluded from classification; the returned error contains a
// *FontError for each of them. LoadFonts is idempotent.
func (m *Matrix) LoadFonts() error {
	if m.loaded {
		return m.loadErrors()
	}
	for _, spec := range m.conf.Fonts {
		v, err := m.loader(spec)
		if err == nil && v == nil {
			err = errors.New("loader returned no font view")
		}
		if err != nil {
			tracer().Errorf("cannot load font %s: %v", spec.Key, err)
			m.failed[spec.Key] = &FontError{Font: spec.Key, Op: "load", Err: err}
			continue
		}
		m.views[spec.Key] = v
	}
	m.loaded = true
	return m.loadErrors()
}

func (m *Matrix) loadErrors() error {
	var errs []error
	for _, spec := range m.conf.Fonts {
		if err := m.failed[spec.Key]; err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// unit is the work of one worker: all combinations of one font with the
// marks of one mark group. Units own disjoint sets of keys.
type unit struct {
	font  string
	view  classify.FontView
	marks []rune
}

type partial struct {
	font string
	grid map[Key]classify.Result
	err  error
}

// ClassifyAll classifies every combination of every mark with every base
// in every font. Fonts are loaded first if necessary.
//
// A font with a load or shaping failure contributes no entries to the
// grid; the returned error contains a *FontError for every failed font,
// while all other fonts are classified completely. A matrix is classified
// only once.
func (m *Matrix) ClassifyAll() error {
	if m.grid != nil {
		return errors.New("matrix has already been classified")
	}
	m.LoadFonts()
	units := m.units()
	tracer().Infof("classifying %d marks × %d bases in %d fonts with %s classifier (%d units)",
		len(m.marks), len(m.bases), len(m.views), m.classifier.Name(), len(units))
	jobs := make(chan unit)
	results := make(chan partial, len(units))
	var wg sync.WaitGroup
	workers := min(m.workers, max(len(units), 1))
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for u := range jobs {
				results <- m.classifyUnit(u)
			}
		}()
	}
	for _, u := range units {
		jobs <- u
	}
	close(jobs)
	wg.Wait()
	close(results)
	m.merge(results)
	tracer().Infof("grid holds %d combinations", len(m.grid))
	return m.loadErrors()
}

// units splits the work into (font, mark group) pairs. A mark occurring in
// more than one group is assigned to the first one.
func (m *Matrix) units() []unit {
	var units []unit
	for _, spec := range m.conf.Fonts {
		v, ok := m.views[spec.Key]
		if !ok {
			continue
		}
		var claimed []rune
		for _, g := range m.conf.MarkGroups {
			var marks []rune
			for _, mark := range g.Items {
				if !slices.Contains(claimed, mark) {
					claimed = append(claimed, mark)
					marks = append(marks, mark)
				}
			}
			if len(marks) > 0 {
				units = append(units, unit{font: spec.Key, view: v, marks: marks})
			}
		}
	}
	return units
}

func (m *Matrix) classifyUnit(u unit) partial {
	p := partial{font: u.font, grid: make(map[Key]classify.Result, len(u.marks)*len(m.bases))}
	for _, mark := range u.marks {
		class := u.view.AttachmentClassForMark(mark) // per font, never shared
		for _, base := range m.bases {
			r, err := m.classifier.Classify(base, mark, class, u.view)
			if err != nil {
				p.err = err
				return p
			}
			p.grid[Key{Mark: mark, Base: base, Font: u.font}] = r
		}
	}
	return p
}

// merge unites the partial grids. Partial grids of a font with a failed
// unit are dropped.
func (m *Matrix) merge(results <-chan partial) {
	var partials []partial
	for p := range results {
		if p.err != nil && m.failed[p.font] == nil {
			tracer().Errorf("classification of font %s failed: %v", p.font, p.err)
			m.failed[p.font] = &FontError{Font: p.font, Op: "classify", Err: p.err}
		}
		partials = append(partials, p)
	}
	m.grid = make(map[Key]classify.Result)
	for _, p := range partials {
		if m.failed[p.font] != nil {
			continue
		}
		for k, r := range p.grid {
			m.grid[k] = r
		}
	}
}

// Classifier returns the classifier of the matrix.
func (m *Matrix) Classifier() classify.Classifier {
	return m.classifier
}

// View returns the font view of a successfully loaded font.
func (m *Matrix) View(font string) (classify.FontView, bool) {
	v, ok := m.views[font]
	return v, ok
}

// Failed returns the error of a font which failed to load or classify, or
// nil.
func (m *Matrix) Failed(font string) error {
	return m.failed[font]
}

// Probe classifies a single combination in every loaded font without
// touching the grid.
func (m *Matrix) Probe(base, mark rune) ([]Cell, error) {
	var cells []Cell
	var errs []error
	for _, spec := range m.conf.Fonts {
		v, ok := m.views[spec.Key]
		if !ok {
			continue
		}
		r, err := m.classifier.Classify(base, mark, v.AttachmentClassForMark(mark), v)
		if err != nil {
			errs = append(errs, &FontError{Font: spec.Key, Op: "classify", Err: err})
			continue
		}
		cells = append(cells, Cell{Key: Key{Mark: mark, Base: base, Font: spec.Key}, Result: r})
	}
	return cells, errors.Join(errs...)
}
