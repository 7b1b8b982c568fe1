package validate

import (
	"fmt"
	"time"

	"github.com/coolbeans/civitas/pkg/ngolaw"
	"github.com/coolbeans/civitas/pkg/vdem"
)

// Value domain bounds for the sampled checks. Years far outside the
// panel's era or ordinals off their scales point at a corrupted or
// mislabeled export.
const (
	minPlausibleYear = 1789
	maxPlausibleYear = 2100
	maxRegimeOrdinal = 3
	maxScaleOrdinal  = 4
)

// ValueGate (D3) samples value domains across the loaded records: year
// range, ordinal scales, index bounds, and law-name resolution losses.
// Informational only: findings become warnings and the gate never fails.
type ValueGate struct{}

// NewValueGate creates the D3 value gate.
func NewValueGate() *ValueGate {
	return &ValueGate{}
}

// Name returns "D3".
func (valueGate *ValueGate) Name() string { return GateValues }

// Describe returns the gate's report label.
func (valueGate *ValueGate) Describe() string { return "value domains" }

// Halting reports that D3 findings never stop the run.
func (valueGate *ValueGate) Halting() bool { return false }

// Run counts out-of-domain values and reports each class as a warning.
func (valueGate *ValueGate) Run(ctx *Context) *GateResult {
	startTime := time.Now()
	gateResult := newResult(valueGate)

	if ctx.Panel != nil {
		checkPanelDomains(gateResult, ctx.Panel)
	}
	if ctx.Laws != nil {
		checkLawResolution(gateResult, ctx.Laws)
	}

	return gateResult.finish(startTime)
}

func checkPanelDomains(gateResult *GateResult, panel *vdem.Panel) {
	yearsOut := 0
	regimesOut := 0
	ordinalsOut := 0
	indexesOut := 0

	for _, record := range panel.Records {
		if record.Year < minPlausibleYear || record.Year > maxPlausibleYear {
			yearsOut++
		}
		if record.RegimeOrdinal.Valid && (record.RegimeOrdinal.Value < 0 || record.RegimeOrdinal.Value > maxRegimeOrdinal) {
			regimesOut++
		}
		if outOfScale(record.MultipartyOrdinal) || outOfScale(record.CSORepressionOrdinal) {
			ordinalsOut++
		}
		if record.CivilSocietyIndex.Valid && (record.CivilSocietyIndex.Value < 0 || record.CivilSocietyIndex.Value > 1) {
			indexesOut++
		}
	}

	warnDomain(gateResult, "year_domain", yearsOut, fmt.Sprintf("[%d, %d]", minPlausibleYear, maxPlausibleYear))
	warnDomain(gateResult, "regime_domain", regimesOut, fmt.Sprintf("[0, %d]", maxRegimeOrdinal))
	warnDomain(gateResult, "ordinal_domain", ordinalsOut, fmt.Sprintf("[0, %d]", maxScaleOrdinal))
	warnDomain(gateResult, "index_domain", indexesOut, "[0, 1]")

	if panel.SkippedRows > 0 {
		gateResult.warn("skipped_rows",
			fmt.Sprintf("%d rows lacked a country code or parseable year", panel.SkippedRows),
			panel.SkippedRows)
	}
}

func warnDomain(gateResult *GateResult, name string, outOfDomain int, domain string) {
	if outOfDomain == 0 {
		return
	}
	gateResult.warn(name, fmt.Sprintf("%d rows outside %s", outOfDomain, domain), outOfDomain)
}

func checkLawResolution(gateResult *GateResult, laws *ngolaw.Dataset) {
	dropped := laws.Resolution.DroppedRows()
	if dropped > 0 {
		gateResult.warn("law_name_resolution",
			fmt.Sprintf("%d law rows dropped: %d country names did not resolve",
				dropped, laws.Resolution.UnmatchedCount()),
			dropped)
	}
	if laws.SkippedRows > 0 {
		gateResult.warn("law_skipped_rows",
			fmt.Sprintf("%d law rows lacked a country name or parseable year", laws.SkippedRows),
			laws.SkippedRows)
	}
}

func outOfScale(ordinal vdem.Ordinal) bool {
	return ordinal.Valid && (ordinal.Value < 0 || ordinal.Value > maxScaleOrdinal)
}
