package validate

import (
	"strconv"
	"time"
)

// ShapeGate (D1) asserts the loaded panel matches the pinned row and
// column counts. The analysis is written against one exact export of
// the dataset; any other shape means the wrong file was supplied.
type ShapeGate struct{}

// NewShapeGate creates the D1 shape gate.
func NewShapeGate() *ShapeGate {
	return &ShapeGate{}
}

// Name returns "D1".
func (shapeGate *ShapeGate) Name() string { return GateShape }

// Describe returns the gate's report label.
func (shapeGate *ShapeGate) Describe() string { return "panel shape" }

// Halting reports that a D1 failure stops the run.
func (shapeGate *ShapeGate) Halting() bool { return true }

// Run compares the observed panel shape against ctx.Expected. Rows count
// data rows only, the header line is excluded.
func (shapeGate *ShapeGate) Run(ctx *Context) *GateResult {
	startTime := time.Now()
	gateResult := newResult(shapeGate)

	if ctx.Panel == nil {
		gateResult.addCheck("panel_loaded", false, "no panel", "loaded panel")
		return gateResult.finish(startTime)
	}

	observed := ctx.Panel.Shape
	expected := ctx.Expected
	gateResult.addCheck("rows", observed.Rows == expected.Rows,
		strconv.Itoa(observed.Rows), strconv.Itoa(expected.Rows))
	gateResult.addCheck("columns", observed.Columns == expected.Columns,
		strconv.Itoa(observed.Columns), strconv.Itoa(expected.Columns))

	return gateResult.finish(startTime)
}
