package validate

import (
	"fmt"
	"os"
	"time"
)

// SourceGate (D0) checks the configured input files exist, are regular
// files, and are non-empty. Runs before any load is attempted.
type SourceGate struct{}

// NewSourceGate creates the D0 source gate.
func NewSourceGate() *SourceGate {
	return &SourceGate{}
}

// Name returns "D0".
func (sourceGate *SourceGate) Name() string { return GateSource }

// Describe returns the gate's report label.
func (sourceGate *SourceGate) Describe() string { return "source files" }

// Halting reports that a D0 failure stops the run.
func (sourceGate *SourceGate) Halting() bool { return true }

// Run stats each configured path. The law workbook is optional: an
// empty law path records no check.
func (sourceGate *SourceGate) Run(ctx *Context) *GateResult {
	startTime := time.Now()
	gateResult := newResult(sourceGate)

	checkFile(gateResult, "panel_file", ctx.PanelPath)
	if ctx.LawPath != "" {
		checkFile(gateResult, "law_file", ctx.LawPath)
	}

	return gateResult.finish(startTime)
}

func checkFile(gateResult *GateResult, name, path string) {
	if path == "" {
		gateResult.addCheck(name, false, "not configured", "existing file")
		return
	}

	info, err := os.Stat(path)
	switch {
	case err != nil:
		gateResult.addCheck(name, false, fmt.Sprintf("%s (missing)", path), "existing file")
	case !info.Mode().IsRegular():
		gateResult.addCheck(name, false, fmt.Sprintf("%s (not a regular file)", path), "regular file")
	case info.Size() == 0:
		gateResult.addCheck(name, false, fmt.Sprintf("%s (empty)", path), "non-empty file")
	default:
		gateResult.addCheck(name, true, fmt.Sprintf("%s (%d bytes)", path, info.Size()), "non-empty file")
	}
}
