/*
Package runconf reads the configuration of a report run from a YAML file.

A run file names the fonts to analyse, the codepoint groups and classifier
to use, and where to put the resulting TeX fragment:

	fonts:
	  - key: regular
	    path: fonts/LibertinusSerif-Regular.otf
	    lookup_index: 7
	    label: Libertinus Serif
	  - key: italic
	    path: fonts/LibertinusSerif-Italic.otf
	    lookup_index: 7
	    style: italic
	    classes: { U+0301: 0 }
	report:
	  base_groups: [BASE_COMMON]
	  mark_groups: [MARK_COMMON]
	  classifier: sanity
	  builder: grid
	  outfile: common_mark_base.tex
	  outdir: tex/input

Relative paths are resolved against the directory of the run file.
*/
package runconf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/npillmayer/markcombo/classify"
	"github.com/npillmayer/markcombo/fontview"
	"github.com/npillmayer/markcombo/matrix"
	"github.com/npillmayer/markcombo/texreport"
	"github.com/npillmayer/markcombo/unidata"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// tracer traces with key 'markcombo'
func tracer() tracing.Trace {
	return tracing.Select("markcombo")
}

// Config is the content of a run file.
type Config struct {
	GroundTruth string `yaml:"ground_truth"` // unidata file, default is the embedded data
	Classes     string `yaml:"classes"`      // "curated" or "font"
	Workers     int    `yaml:"workers"`
	Trace       string `yaml:"trace"`
	Language    string `yaml:"language"` // BCP 47 tag used for shaping
	Fonts       []Font `yaml:"fonts"`
	Report      Report `yaml:"report"`
	dir         string
}

// Font is one entry of the font registry.
type Font struct {
	Key         string                    `yaml:"key"`
	Path        string                    `yaml:"path"`
	LookupIndex *int                      `yaml:"lookup_index"` // missing: no anchor data
	Label       string                    `yaml:"label"`
	Style       string                    `yaml:"style"`
	Classes     map[unidata.Codepoint]int `yaml:"classes"`
}

// Report selects what to report.
type Report struct {
	Fonts        []string `yaml:"fonts"` // default: all fonts
	BaseGroups   []string `yaml:"base_groups"`
	MarkGroups   []string `yaml:"mark_groups"`
	Classifier   string   `yaml:"classifier"`
	Builder      string   `yaml:"builder"`
	Outfile      string   `yaml:"outfile"`
	Outdir       string   `yaml:"outdir"`
	DotlessNames []string `yaml:"dotless_names"`
}

// Load reads a run file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	conf, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	conf.dir = filepath.Dir(path)
	tracer().Infof("run configuration %s: %d fonts, classifier %s", path, len(conf.Fonts), conf.Report.Classifier)
	return conf, nil
}

// Parse decodes and validates a run file. Unknown keys are errors.
func Parse(b []byte) (*Config, error) {
	conf := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(conf); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	conf.setDefaults()
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (conf *Config) setDefaults() {
	def := func(s *string, v string) {
		if *s == "" {
			*s = v
		}
	}
	def(&conf.Classes, "curated")
	def(&conf.Trace, "Info")
	def(&conf.Language, "en")
	def(&conf.Report.Classifier, "sanity")
	def(&conf.Report.Builder, "grid")
	def(&conf.Report.Outfile, "combinations.tex")
	if len(conf.Report.Fonts) == 0 {
		for _, f := range conf.Fonts {
			conf.Report.Fonts = append(conf.Report.Fonts, f.Key)
		}
	}
}

// Validate checks the configuration for errors which do not need any
// file access.
func (conf *Config) Validate() error {
	var errs []error
	keys := make(map[string]bool, len(conf.Fonts))
	for i, f := range conf.Fonts {
		switch {
		case f.Key == "":
			errs = append(errs, fmt.Errorf("font #%d: missing key", i+1))
		case keys[f.Key]:
			errs = append(errs, fmt.Errorf("font %s: duplicate key", f.Key))
		case f.Path == "":
			errs = append(errs, fmt.Errorf("font %s: missing path", f.Key))
		}
		keys[f.Key] = true
		if _, err := matrix.ParseStyle(f.Style); err != nil {
			errs = append(errs, fmt.Errorf("font %s: %w", f.Key, err))
		}
	}
	if len(conf.Report.Fonts) == 0 {
		errs = append(errs, errors.New("no fonts to report"))
	}
	for _, k := range conf.Report.Fonts {
		if !keys[k] {
			errs = append(errs, fmt.Errorf("report: unknown font %q", k))
		}
	}
	if len(conf.Report.BaseGroups) == 0 || len(conf.Report.MarkGroups) == 0 {
		errs = append(errs, errors.New("report: base_groups and mark_groups are required"))
	}
	if conf.Report.Classifier != "sanity" && conf.Report.Classifier != "classic" {
		errs = append(errs, fmt.Errorf("report: unknown classifier %q", conf.Report.Classifier))
	}
	if _, ok := texreport.BuilderByName(conf.Report.Builder); !ok {
		errs = append(errs, fmt.Errorf("report: unknown builder %q", conf.Report.Builder))
	}
	if conf.Classes != "curated" && conf.Classes != "font" {
		errs = append(errs, fmt.Errorf("classes must be 'curated' or 'font', is %q", conf.Classes))
	}
	if err := checkTraceLevel(conf.Trace); err != nil {
		errs = append(errs, err)
	}
	if _, err := language.Parse(conf.Language); err != nil {
		errs = append(errs, fmt.Errorf("language: %w", err))
	}
	if conf.Workers < 0 {
		errs = append(errs, errors.New("workers must not be negative"))
	}
	return errors.Join(errs...)
}

// resolve makes a path relative to the run file absolute.
func (conf *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || conf.dir == "" {
		return path
	}
	return filepath.Join(conf.dir, path)
}

// GroundTruthData loads the configured ground truth data.
func (conf *Config) GroundTruthData() (*unidata.Data, error) {
	if conf.GroundTruth == "" {
		return unidata.Default(), nil
	}
	return unidata.Load(conf.resolve(conf.GroundTruth))
}

// MatrixConfig assembles the matrix configuration of the report.
func (conf *Config) MatrixConfig(data *unidata.Data) (matrix.Config, error) {
	var mc matrix.Config
	var err error
	if mc.BaseGroups, err = data.Select(conf.Report.BaseGroups...); err != nil {
		return mc, err
	}
	if mc.MarkGroups, err = data.Select(conf.Report.MarkGroups...); err != nil {
		return mc, err
	}
	for _, key := range conf.Report.Fonts {
		f := conf.font(key)
		spec := matrix.FontSpec{
			Key:         f.Key,
			Path:        conf.resolve(f.Path),
			LookupIndex: fontview.NoLookup,
			Label:       f.Label,
		}
		if f.LookupIndex != nil {
			spec.LookupIndex = *f.LookupIndex
		}
		spec.Style, _ = matrix.ParseStyle(f.Style)
		spec.Classes = make(map[rune]int)
		if conf.Classes == "curated" {
			spec.Classes = data.MarkClasses()
		}
		for mark, c := range f.Classes {
			spec.Classes[rune(mark)] = c
		}
		mc.Fonts = append(mc.Fonts, spec)
	}
	return mc, mc.Validate()
}

func (conf *Config) font(key string) Font {
	for _, f := range conf.Fonts {
		if f.Key == key {
			return f
		}
	}
	return Font{Key: key}
}

// Classifier creates the configured classifier.
func (conf *Config) Classifier(data *unidata.Data) classify.Classifier {
	if conf.Report.Classifier == "classic" {
		return classify.NewClassic()
	}
	var opts []classify.Option
	if len(conf.Report.DotlessNames) > 0 {
		opts = append(opts, classify.WithDotlessNames(conf.Report.DotlessNames...))
	}
	return classify.NewSanity(data.Support(), opts...)
}

// Renderer returns the renderer matching the configured classifier.
func (conf *Config) Renderer() texreport.Renderer {
	if conf.Report.Classifier == "classic" {
		return texreport.Classic{}
	}
	return texreport.NewSanity()
}

// Builder returns the configured report builder.
func (conf *Config) Builder() texreport.Builder {
	b, _ := texreport.BuilderByName(conf.Report.Builder)
	return b
}

// OutPath returns the path of the TeX fragment to write.
func (conf *Config) OutPath() string {
	dir := conf.Report.Outdir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(conf.resolve(dir), conf.Report.Outfile)
}

// MatrixOptions returns the matrix options for the run: a font loader
// using the configured shaping language, and the worker limit.
func (conf *Config) MatrixOptions() []matrix.Option {
	tag, err := language.Parse(conf.Language)
	if err != nil {
		tag = language.English
	}
	loader := func(spec matrix.FontSpec) (classify.FontView, error) {
		v, err := fontview.Load(spec.Key, spec.Path, spec.LookupIndex,
			fontview.WithClasses(spec.Classes), fontview.WithLanguage(tag))
		if err != nil {
			return nil, err
		}
		return v, nil
	}
	return []matrix.Option{matrix.WithLoader(loader), matrix.WithWorkers(conf.Workers)}
}
