package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/markcombo/classify"
	"github.com/npillmayer/markcombo/matrix"
	"github.com/npillmayer/markcombo/unidata"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runQueryCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	s := openSession(args["config"].Value, mustFlagString(flags["trace"], "trace"))
	if err := s.Matrix.LoadFonts(); err != nil {
		pterm.Error.Println(err.Error())
	}
	repl, err := readline.New("combo > ")
	if err != nil {
		fatalf("%v", err)
	}
	defer repl.Close()
	pterm.Info.Printf("Classifier is %s. Enter base and mark, e.g. \"i U+0300\" or \"U+0041,U+030C\"\n",
		s.Matrix.Classifier().Name())
	pterm.Info.Println("Quit with <ctrl>D")
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if line == "help" || line == "?" {
			pterm.Println("<base> <mark>   classify a combination in all fonts")
			pterm.Println("                codepoints as U+XXXX, 0xXXXX or literal characters")
			continue
		}
		base, mark, err := parseQuery(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		tracer().Debugf("query U+%04X U+%04X", base, mark)
		printProbe(s, base, mark)
	}
}

// parseQuery parses a line holding a base and a mark codepoint.
func parseQuery(line string) (base, mark rune, err error) {
	cps, err := unidata.ParseCodepoints(line)
	if err != nil {
		return 0, 0, err
	}
	if len(cps) != 2 {
		return 0, 0, errors.New("expected exactly two codepoints: base and mark")
	}
	return cps[0], cps[1], nil
}

func printProbe(s *session, base, mark rune) {
	cells, err := s.Matrix.Probe(base, mark)
	if err != nil {
		pterm.Error.Println(err.Error())
	}
	supported := s.Data.Support().Supports(base, mark)
	pterm.Printf("%s + %s (%q), semantically supported: %v\n",
		unidata.Format(base), unidata.Format(mark), string([]rune{base, mark}), supported)
	data := [][]string{
		{"Font", "Category", "Flags", "Glyphs"},
	}
	for _, c := range cells {
		data = append(data, []string{
			c.Font,
			c.Result.Category().String(),
			strings.Join(c.Result.Flags().Names(), " "),
			glyphList(s.Matrix, c),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// glyphList formats the shaped glyphs of a cell as name(id).
func glyphList(m *matrix.Matrix, c matrix.Cell) string {
	if !c.Result.Shaped() {
		return "(not shaped)"
	}
	v, ok := m.View(c.Font)
	if !ok {
		return "?"
	}
	return formatGlyphs(c.Result.Glyphs(), v)
}

func formatGlyphs(glyphs []classify.GlyphRecord, v classify.FontView) string {
	parts := make([]string, len(glyphs))
	for i, g := range glyphs {
		name := v.GlyphName(g.GID)
		if name == "" {
			name = "?"
		}
		parts[i] = fmt.Sprintf("%s(%d)", name, g.GID)
	}
	return strings.Join(parts, " ")
}
