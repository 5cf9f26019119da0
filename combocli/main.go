/*
Command combocli classifies base+mark combinations of fonts and writes TeX
reports.

	combocli report run.yaml        # classify and write the configured report
	combocli query run.yaml         # interactive: classify single combinations
	combocli fonts run.yaml         # list the configured fonts

The run file format is described in package runconf.
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/markcombo"
	"github.com/npillmayer/markcombo/runconf"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

// tracer traces with key 'markcombo'
func tracer() tracing.Trace {
	return tracing.Select("markcombo")
}

func main() {
	initDisplay()
	commando.
		SetExecutableName("combocli").
		SetVersion("v0.1.0").
		SetDescription("Classify how fonts render base letters combined with combining marks.")

	commando.
		Register("report").
		SetDescription("Classify all combinations of a run file and write a TeX fragment.").
		SetShortDescription("write a TeX report").
		AddArgument("config", "run file (YAML)", "").
		AddFlag("trace,t", "trace level [Debug|Info|Error], overrides the run file", commando.String, "-").
		AddFlag("preamble,p", "prepend \\providecommand definitions for the report macros", commando.Bool, nil).
		AddFlag("stdout", "print the report instead of writing the output file", commando.Bool, nil).
		SetAction(runReportCommand)

	commando.
		Register("query").
		SetDescription("Classify single combinations interactively in all fonts of a run file.").
		SetShortDescription("interactive queries").
		AddArgument("config", "run file (YAML)", "").
		AddFlag("trace,t", "trace level [Debug|Info|Error], overrides the run file", commando.String, "Error").
		SetAction(runQueryCommand)

	commando.
		Register("fonts").
		SetDescription("Load and list the fonts of a run file.").
		SetShortDescription("list fonts").
		AddArgument("config", "run file (YAML)", "").
		SetAction(runFontsCommand)

	commando.Parse(nil)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// session is what every command needs: a prepared run.
type session struct {
	*markcombo.Run
}

func openSession(path, tlevel string) *session {
	conf, err := runconf.Load(strings.TrimSpace(path))
	if err != nil {
		fatalf("%v", err)
	}
	if tlevel == "" || tlevel == "-" {
		tlevel = conf.Trace
	}
	if err := runconf.SetupTracing(tlevel); err != nil {
		fatalf("%v", err)
	}
	run, err := markcombo.Prepare(conf)
	if err != nil {
		fatalf("%v", err)
	}
	return &session{Run: run}
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return s
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "combocli: "+format+"\n", args...)
	os.Exit(1)
}
