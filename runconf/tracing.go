package runconf

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
)

// TraceKeys are the tracer keys of all packages of this module.
var TraceKeys = []string{
	"markcombo",
	"markcombo.classify",
	"markcombo.fontview",
	"markcombo.matrix",
	"markcombo.report",
}

func checkTraceLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug", "info", "error":
		return nil
	}
	return fmt.Errorf("invalid trace level %q [Debug|Info|Error]", level)
}

func setTraceLevel(t tracing.Trace, level string) {
	switch strings.ToLower(level) {
	case "debug":
		t.SetTraceLevel(tracing.LevelDebug)
	case "info":
		t.SetTraceLevel(tracing.LevelInfo)
	default:
		t.SetTraceLevel(tracing.LevelError)
	}
}

// SetupTracing routes all tracers to Go's log package with the given level.
func SetupTracing(level string) error {
	if err := checkTraceLevel(level); err != nil {
		return err
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range TraceKeys {
		conf["trace."+key] = level
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return fmt.Errorf("configuring tracing: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	for _, key := range TraceKeys {
		setTraceLevel(tracing.Select(key), level)
	}
	return nil
}
