package main

import (
	"fmt"

	"github.com/npillmayer/markcombo/fontview"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runFontsCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	s := openSession(args["config"].Value, "Error")
	if err := s.Matrix.LoadFonts(); err != nil {
		pterm.Error.Println(err.Error())
	}
	data := [][]string{
		{"Key", "Full name", "Glyphs", "Lookup", "Anchors", "Style", "Path"},
	}
	for _, f := range s.Matrix.Fonts() {
		name, glyphs, anchors := "-", "-", "-"
		if v, ok := s.Matrix.View(f.Key); ok {
			if fv, ok := v.(*fontview.View); ok {
				name = fv.FullName()
				glyphs = fmt.Sprintf("%d", fv.NumGlyphs())
				anchors = fmt.Sprintf("%v", fv.HasAnchorLookup())
			}
		} else {
			name = "(failed to load)"
		}
		lookup := "none"
		if f.LookupIndex != fontview.NoLookup {
			lookup = fmt.Sprintf("%d", f.LookupIndex)
		}
		data = append(data, []string{f.Key, name, glyphs, lookup, anchors, f.Style.String(), f.Path})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
