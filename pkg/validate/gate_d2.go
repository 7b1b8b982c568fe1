package validate

import (
	"fmt"
	"time"

	"github.com/coolbeans/civitas/pkg/vdem"
)

// ColumnGate (D2) asserts every required panel column appears exactly
// once in the header. Downstream projection assumes exact column
// identity; a renamed or duplicated column silently shifts meaning.
type ColumnGate struct{}

// NewColumnGate creates the D2 column gate.
func NewColumnGate() *ColumnGate {
	return &ColumnGate{}
}

// Name returns "D2".
func (columnGate *ColumnGate) Name() string { return GateColumns }

// Describe returns the gate's report label.
func (columnGate *ColumnGate) Describe() string { return "required columns" }

// Halting reports that a D2 failure stops the run.
func (columnGate *ColumnGate) Halting() bool { return true }

// Run checks header occurrences for every required column.
func (columnGate *ColumnGate) Run(ctx *Context) *GateResult {
	startTime := time.Now()
	gateResult := newResult(columnGate)

	if ctx.Panel == nil {
		gateResult.addCheck("panel_loaded", false, "no panel", "loaded panel")
		return gateResult.finish(startTime)
	}

	for _, column := range vdem.RequiredColumns() {
		occurrences := ctx.Panel.Header.Occurrences(column)
		observed := fmt.Sprintf("%d occurrences", occurrences)
		if occurrences == 0 {
			observed = "absent"
		}
		gateResult.addCheck(column, occurrences == 1, observed, "1 occurrence")
	}

	return gateResult.finish(startTime)
}
