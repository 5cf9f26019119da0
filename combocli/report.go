package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/npillmayer/markcombo/classify"
	"github.com/npillmayer/markcombo/matrix"
	"github.com/npillmayer/markcombo/texreport"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runReportCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	s := openSession(args["config"].Value, mustFlagString(flags["trace"], "trace"))
	tex, err := s.Report()
	if err != nil {
		pterm.Error.Println(err.Error())
	}
	if mustFlagBool(flags["preamble"], "preamble") {
		tex = texreport.Preamble(s.Conf.Renderer()) + "\n" + tex
	}
	if mustFlagBool(flags["stdout"], "stdout") {
		fmt.Println(tex)
	} else {
		out := s.Conf.OutPath()
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			fatalf("%v", err)
		}
		if err := os.WriteFile(out, []byte(tex+"\n"), 0o644); err != nil {
			fatalf("%v", err)
		}
		pterm.Info.Printf("Wrote LaTeX fragment to %s\n", out)
	}
	printStats(s.Matrix)
	if err != nil {
		os.Exit(2)
	}
}

func printStats(m *matrix.Matrix) {
	data := [][]string{
		{"Font", "Combinations", "Precomposed", "Anchored", "Fallback", "Missing glyph", "Missing precomposed", "Status"},
	}
	for _, f := range m.Fonts() {
		st := m.Stats(f.Key)
		status := "ok"
		if st.Err != nil {
			status = "FAILED"
		}
		data = append(data, []string{
			f.Key,
			fmt.Sprintf("%d", st.Total),
			fmt.Sprintf("%d", st.Categories[classify.Precomposed]),
			fmt.Sprintf("%d", st.Categories[classify.Anchored]),
			fmt.Sprintf("%d", st.Categories[classify.Fallback]),
			fmt.Sprintf("%d", st.Flags[classify.MissingBase]+st.Flags[classify.MissingMark]),
			fmt.Sprintf("%d", st.Flags[classify.MissingPrecomposed]),
			status,
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
