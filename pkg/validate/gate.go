// Package validate runs the dataset gate pipeline: ordered checkpoints
// that assert the loaded inputs are the datasets the analysis was
// written against. Gates D0 through D2 are halting assertions; D3
// samples value domains and only warns.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/coolbeans/civitas/pkg/ngolaw"
	"github.com/coolbeans/civitas/pkg/vdem"
)

// Gate identifiers, in pipeline order.
const (
	GateSource  = "D0"
	GateShape   = "D1"
	GateColumns = "D2"
	GateValues  = "D3"
)

// Sentinel errors for the halting assertions, so callers can tell the
// checked failure modes apart from ordinary I/O failures.
var (
	ErrSourceMissing  = errors.New("source file missing or empty")
	ErrShapeMismatch  = errors.New("panel shape mismatch")
	ErrColumnMismatch = errors.New("panel column mismatch")
)

// Gate is one checkpoint in the dataset validation pipeline.
type Gate interface {
	// Name returns the gate identifier (e.g. "D1").
	Name() string

	// Describe returns a short label for reports.
	Describe() string

	// Halting reports whether a failure of this gate stops the run.
	Halting() bool

	// Run evaluates the gate against the provided context.
	Run(ctx *Context) *GateResult
}

// Context carries everything a gate may inspect. Fields are populated
// incrementally: D0 sees only the configured paths, the later gates
// also see the loaded datasets.
type Context struct {
	// PanelPath is the democracy panel CSV (D0+).
	PanelPath string

	// LawPath is the NGO-law workbook (D0+). Optional: empty means the
	// run was configured without the law dataset.
	LawPath string

	// Panel is available once the panel load succeeded (D1+).
	Panel *vdem.Panel

	// Laws is available once the workbook load succeeded (D3).
	Laws *ngolaw.Dataset

	// Expected is the pinned panel shape asserted by D1.
	Expected vdem.Shape
}

// Check is one named assertion inside a gate, with the observed and
// expected values rendered for the report.
type Check struct {
	Name     string `json:"name"`
	Passed   bool   `json:"passed"`
	Observed string `json:"observed"`
	Expected string `json:"expected"`
}

// Warning is a non-fatal finding. Warnings never fail a gate.
type Warning struct {
	Check   string `json:"check"`
	Message string `json:"message"`
	Rows    int    `json:"rows,omitempty"`
}

// GateResult captures the outcome of a single gate execution.
type GateResult struct {
	Gate     string        `json:"gate"`
	Label    string        `json:"label"`
	Passed   bool          `json:"passed"`
	Halting  bool          `json:"halting"`
	Checks   []Check       `json:"checks,omitempty"`
	Warnings []Warning     `json:"warnings,omitempty"`
	Duration time.Duration `json:"duration"`
}

// newResult seeds a result for the gate. Callers record checks and
// warnings, then finish() derives Passed and stamps the duration.
func newResult(gate Gate) *GateResult {
	return &GateResult{Gate: gate.Name(), Label: gate.Describe(), Halting: gate.Halting()}
}

func (gateResult *GateResult) addCheck(name string, passed bool, observed, expected string) {
	gateResult.Checks = append(gateResult.Checks, Check{
		Name:     name,
		Passed:   passed,
		Observed: observed,
		Expected: expected,
	})
}

func (gateResult *GateResult) warn(check, message string, rows int) {
	gateResult.Warnings = append(gateResult.Warnings, Warning{Check: check, Message: message, Rows: rows})
}

func (gateResult *GateResult) finish(startTime time.Time) *GateResult {
	gateResult.Passed = true
	for _, check := range gateResult.Checks {
		if !check.Passed {
			gateResult.Passed = false
			break
		}
	}
	gateResult.Duration = time.Since(startTime)
	return gateResult
}

// Report aggregates results from all gates in one pipeline run.
type Report struct {
	Results     []*GateResult `json:"results"`
	Passed      bool          `json:"passed"`
	GatesPassed int           `json:"gates_passed"`
	GatesFailed int           `json:"gates_failed"`
	HaltedAt    string        `json:"halted_at,omitempty"`
	Duration    time.Duration `json:"duration"`
}

// ToJSON serializes the report as indented JSON.
func (report *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

// String returns a human-readable report.
func (report *Report) String() string {
	var reportBuilder strings.Builder

	reportBuilder.WriteString("Dataset Gate Report\n")
	reportBuilder.WriteString("===================\n\n")

	for _, gateResult := range report.Results {
		statusLabel := "PASS"
		if !gateResult.Passed {
			statusLabel = "FAIL"
		}
		reportBuilder.WriteString(fmt.Sprintf("[%s] Gate %s: %s (%v)\n",
			statusLabel, gateResult.Gate, gateResult.Label, gateResult.Duration))

		for _, check := range gateResult.Checks {
			marker := "ok  "
			if !check.Passed {
				marker = "FAIL"
			}
			reportBuilder.WriteString(fmt.Sprintf("  %s %s: observed %s, expected %s\n",
				marker, check.Name, check.Observed, check.Expected))
		}

		for _, warning := range gateResult.Warnings {
			reportBuilder.WriteString(fmt.Sprintf("  WARNING [%s]: %s\n", warning.Check, warning.Message))
		}

		reportBuilder.WriteString("\n")
	}

	reportBuilder.WriteString(fmt.Sprintf("Summary: %d passed, %d failed\n", report.GatesPassed, report.GatesFailed))

	overallStatus := "PASS"
	if !report.Passed {
		overallStatus = "FAIL"
	}
	reportBuilder.WriteString(fmt.Sprintf("Status: %s\n", overallStatus))

	if report.HaltedAt != "" {
		reportBuilder.WriteString(fmt.Sprintf("Pipeline halted at: %s\n", report.HaltedAt))
	}

	reportBuilder.WriteString(fmt.Sprintf("Total Duration: %v\n", report.Duration))

	return reportBuilder.String()
}

// ToMarkdown renders the report as Markdown, suitable for CI job
// summaries and PR comments.
func (report *Report) ToMarkdown() string {
	var markdownBuilder strings.Builder

	markdownBuilder.WriteString(fmt.Sprintf("# Dataset Gate Report %s\n\n", statusBadge(report.Passed)))

	markdownBuilder.WriteString("## Summary\n\n")
	markdownBuilder.WriteString("| Metric | Value |\n")
	markdownBuilder.WriteString("|--------|-------|\n")
	markdownBuilder.WriteString(fmt.Sprintf("| **Gates Passed** | %d |\n", report.GatesPassed))
	markdownBuilder.WriteString(fmt.Sprintf("| **Gates Failed** | %d |\n", report.GatesFailed))
	if report.HaltedAt != "" {
		markdownBuilder.WriteString(fmt.Sprintf("| **Halted At** | %s |\n", report.HaltedAt))
	}
	markdownBuilder.WriteString("\n")

	for _, gateResult := range report.Results {
		markdownBuilder.WriteString(fmt.Sprintf("## Gate %s: %s %s\n\n",
			gateResult.Gate, gateResult.Label, statusBadge(gateResult.Passed)))

		if len(gateResult.Checks) > 0 {
			markdownBuilder.WriteString("| Check | Status | Observed | Expected |\n")
			markdownBuilder.WriteString("|-------|--------|----------|----------|\n")
			for _, check := range gateResult.Checks {
				markdownBuilder.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
					check.Name, statusBadge(check.Passed), check.Observed, check.Expected))
			}
			markdownBuilder.WriteString("\n")
		}

		if len(gateResult.Warnings) > 0 {
			markdownBuilder.WriteString("**Warnings:**\n\n")
			for _, warning := range gateResult.Warnings {
				markdownBuilder.WriteString(fmt.Sprintf("- `%s`: %s\n", warning.Check, warning.Message))
			}
			markdownBuilder.WriteString("\n")
		}
	}

	return markdownBuilder.String()
}

func statusBadge(passed bool) string {
	if passed {
		return "`PASS`"
	}
	return "`FAIL`"
}

// Err maps a failed report onto the checked error of the gate that
// halted the run. A passing report returns nil.
func (report *Report) Err() error {
	if report.Passed {
		return nil
	}
	if report.HaltedAt == "" {
		return fmt.Errorf("dataset validation failed: %d gate(s) did not pass", report.GatesFailed)
	}

	for _, gateResult := range report.Results {
		if gateResult.Gate != report.HaltedAt {
			continue
		}
		failures := make([]string, 0, len(gateResult.Checks))
		for _, check := range gateResult.Checks {
			if !check.Passed {
				failures = append(failures, fmt.Sprintf("%s: observed %s, expected %s",
					check.Name, check.Observed, check.Expected))
			}
		}
		if len(failures) > 0 {
			return fmt.Errorf("gate %s (%s): %s: %w",
				gateResult.Gate, gateResult.Label, strings.Join(failures, "; "), sentinelFor(gateResult.Gate))
		}
	}
	return fmt.Errorf("dataset validation halted at gate %s", report.HaltedAt)
}

func sentinelFor(gateName string) error {
	switch gateName {
	case GateSource:
		return ErrSourceMissing
	case GateShape:
		return ErrShapeMismatch
	case GateColumns:
		return ErrColumnMismatch
	}
	return errors.New("gate assertion failed")
}

// Pipeline executes gates in registration order and collects results.
type Pipeline struct {
	gates []Gate
}

// NewPipeline creates an empty pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{gates: make([]Gate, 0)}
}

// Register adds a gate. Gates execute in registration order.
func (pipeline *Pipeline) Register(gate Gate) {
	pipeline.gates = append(pipeline.gates, gate)
}

// DefaultPipeline returns a pipeline with the four standard gates
// (D0 through D3) registered.
func DefaultPipeline() *Pipeline {
	pipeline := NewPipeline()
	pipeline.Register(NewSourceGate())
	pipeline.Register(NewShapeGate())
	pipeline.Register(NewColumnGate())
	pipeline.Register(NewValueGate())
	return pipeline
}

// Run executes all registered gates in order against the provided
// context. A failed halting gate stops the pipeline; the remaining
// gates do not run.
func (pipeline *Pipeline) Run(ctx *Context) *Report {
	pipelineStartTime := time.Now()

	report := &Report{
		Results: make([]*GateResult, 0, len(pipeline.gates)),
		Passed:  true,
	}

	for _, gate := range pipeline.gates {
		gateResult := gate.Run(ctx)
		report.Results = append(report.Results, gateResult)

		if gateResult.Passed {
			report.GatesPassed++
			continue
		}

		report.GatesFailed++
		report.Passed = false
		if gateResult.Halting {
			report.HaltedAt = gateResult.Gate
			break
		}
	}

	report.Duration = time.Since(pipelineStartTime)
	return report
}
