/*
Package unidata holds the Unicode ground truth for combination reports:
named groups of base and mark codepoints, the semantic support table
(which bases a combining mark is defined to combine with), and curated mark
attachment classes.

A default data set for Latin and IPA is compiled into the package. Clients
may load their own data in the same YAML format:

	groups:
	  BASE_LATIN:
	    label: Latin lowercase
	    kind: base
	    items: [a, b, c]
	support:
	  U+0325: [n, m]
	classes:
	  U+0325: 1

The order of groups in the file is preserved.
*/
package unidata

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/npillmayer/markcombo/classify"
	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

// tracer traces with key 'markcombo'
func tracer() tracing.Trace {
	return tracing.Select("markcombo")
}

//go:embed ipa.yaml
var ipaYAML []byte

// Kind tells whether a group holds base letters or combining marks.
type Kind string

const (
	KindBase Kind = "base"
	KindMark Kind = "mark"
)

// Group is a named, ordered list of codepoints.
type Group struct {
	Name  string
	Label string
	Kind  Kind
	Items []rune
}

// Data is a set of Unicode ground truth. It is immutable after loading.
type Data struct {
	groups  []Group
	support SupportTable
	classes map[rune]int
}

// SupportTable maps a combining mark to the bases it is semantically valid
// to combine with.
type SupportTable map[rune][]rune

var _ classify.GroundTruth = SupportTable(nil)

// SupportedBases returns the bases mark is defined to combine with. The
// result must not be modified.
func (t SupportTable) SupportedBases(mark rune) []rune {
	return t[mark]
}

// Supports reports whether base+mark is a semantically valid combination.
func (t SupportTable) Supports(base, mark rune) bool {
	return slices.Contains(t[mark], base)
}

var (
	defaultData *Data
	defaultOnce sync.Once
)

// Default returns the compiled-in Latin/IPA data.
func Default() *Data {
	defaultOnce.Do(func() {
		var err error
		if defaultData, err = Parse(ipaYAML); err != nil {
			panic(fmt.Sprintf("unidata: corrupt embedded data: %v", err))
		}
	})
	return defaultData
}

// Load reads ground truth data from a YAML file.
func Load(path string) (*Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tracer().Infof("loaded %d codepoint groups from %s", len(d.groups), path)
	return d, nil
}

// file is the YAML layout of a data set.
type file struct {
	Groups  orderedGroups             `yaml:"groups"`
	Support map[Codepoint][]Codepoint `yaml:"support"`
	Classes map[Codepoint]int         `yaml:"classes"`
}

// Parse decodes ground truth data in YAML format.
func Parse(b []byte) (*Data, error) {
	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("unidata: %w", err)
	}
	d := &Data{
		groups:  f.Groups,
		support: make(SupportTable, len(f.Support)),
		classes: make(map[rune]int, len(f.Classes)),
	}
	for mark, bases := range f.Support {
		d.support[rune(mark)] = runes(bases)
	}
	for mark, class := range f.Classes {
		if class < 0 {
			return nil, fmt.Errorf("unidata: negative attachment class %d for U+%04X", class, mark)
		}
		d.classes[rune(mark)] = class
	}
	return d, nil
}

// Groups returns all groups in file order.
func (d *Data) Groups() []Group {
	return slices.Clone(d.groups)
}

// Group returns a group by name.
func (d *Data) Group(name string) (Group, bool) {
	for _, g := range d.groups {
		if g.Name == name {
			return g, true
		}
	}
	return Group{}, false
}

// Select returns the named groups in the order given.
func (d *Data) Select(names ...string) ([]Group, error) {
	groups := make([]Group, 0, len(names))
	for _, name := range names {
		g, ok := d.Group(name)
		if !ok {
			return nil, fmt.Errorf("unknown codepoint group %q", name)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// Support returns the semantic support table.
func (d *Data) Support() SupportTable {
	return d.support
}

// MarkClass returns the curated attachment class of a mark.
func (d *Data) MarkClass(mark rune) (int, bool) {
	c, ok := d.classes[mark]
	return c, ok
}

// MarkClasses returns a copy of all curated attachment classes.
func (d *Data) MarkClasses() map[rune]int {
	m := make(map[rune]int, len(d.classes))
	for k, v := range d.classes {
		m[k] = v
	}
	return m
}

// --- YAML decoding ---------------------------------------------------------

type orderedGroups []Group

// UnmarshalYAML decodes a mapping of groups, keeping the order of keys.
func (og *orderedGroups) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: groups must be a mapping", node.Line)
	}
	var groups []Group
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		var g struct {
			Label string      `yaml:"label"`
			Kind  Kind        `yaml:"kind"`
			Items []Codepoint `yaml:"items"`
		}
		if err := node.Content[i+1].Decode(&g); err != nil {
			return fmt.Errorf("group %s: %w", name, err)
		}
		switch g.Kind {
		case KindBase, KindMark:
		case "":
			g.Kind = KindBase
		default:
			return fmt.Errorf("group %s: unknown kind %q", name, g.Kind)
		}
		if g.Label == "" {
			g.Label = name
		}
		groups = append(groups, Group{Name: name, Label: g.Label, Kind: g.Kind, Items: runes(g.Items)})
	}
	*og = groups
	return nil
}

// Codepoint is a rune written as U+XXXX, 0xXXXX or a literal character.
type Codepoint rune

// UnmarshalYAML decodes a codepoint from a scalar node.
func (cp *Codepoint) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: codepoint must be a scalar", node.Line)
	}
	r, err := ParseCodepoint(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*cp = Codepoint(r)
	return nil
}

func runes(cps []Codepoint) []rune {
	r := make([]rune, len(cps))
	for i, cp := range cps {
		r[i] = rune(cp)
	}
	return r
}
