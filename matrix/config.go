package matrix

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/markcombo/unidata"
)

// Style is the typographic style of a font. Reports use it to select a
// style group for the font's section.
type Style uint8

const (
	Regular Style = iota
	Italic
	Bold
	BoldItalic
)

var styleNames = []string{"regular", "italic", "bold", "bold_italic"}

func (s Style) String() string {
	if int(s) < len(styleNames) {
		return styleNames[s]
	}
	return fmt.Sprintf("Style(%d)", uint8(s))
}

// ParseStyle parses a style name. Semibold variants count as bold.
func ParseStyle(name string) (Style, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "-", "_")
	switch n {
	case "", "regular", "roman":
		return Regular, nil
	case "italic", "oblique":
		return Italic, nil
	case "bold", "semibold":
		return Bold, nil
	case "bold_italic", "semibold_italic", "bolditalic":
		return BoldItalic, nil
	}
	return Regular, fmt.Errorf("unknown font style %q", name)
}

// UnmarshalText lets styles appear by name in configuration files.
func (s *Style) UnmarshalText(text []byte) error {
	st, err := ParseStyle(string(text))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// FontSpec describes one font of a matrix.
type FontSpec struct {
	Key         string       // unique key of the font within a matrix
	Path        string       // path of the font file
	LookupIndex int          // GPOS lookup holding mark-to-base anchors, or -1
	Label       string       // section label for reports
	Style       Style        // style group for reports
	Classes     map[rune]int // curated attachment classes, may be nil
}

// Config is the explicit input of a combination matrix.
type Config struct {
	BaseGroups []unidata.Group
	MarkGroups []unidata.Group
	Fonts      []FontSpec
}

// Validate checks a configuration for structural errors.
func (conf Config) Validate() error {
	var errs []error
	if len(conf.Fonts) == 0 {
		errs = append(errs, errors.New("no fonts configured"))
	}
	if len(conf.BaseGroups) == 0 {
		errs = append(errs, errors.New("no base groups configured"))
	}
	if len(conf.MarkGroups) == 0 {
		errs = append(errs, errors.New("no mark groups configured"))
	}
	seen := make(map[string]bool, len(conf.Fonts))
	for i, f := range conf.Fonts {
		if f.Key == "" {
			errs = append(errs, fmt.Errorf("font #%d has no key", i+1))
			continue
		}
		if seen[f.Key] {
			errs = append(errs, fmt.Errorf("duplicate font key %q", f.Key))
		}
		seen[f.Key] = true
		for mark, c := range f.Classes {
			if c < 0 {
				errs = append(errs, fmt.Errorf("font %s: negative attachment class for U+%04X", f.Key, mark))
			}
		}
	}
	return errors.Join(errs...)
}

// DisplayLabel returns the report label of a font, defaulting to its key.
func (f FontSpec) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Key
}
