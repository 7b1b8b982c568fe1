// Package vdem loads the V-Dem country-year panel and derives the
// indicator fields the report series are built from.
//
// The source file is a very wide CSV (thousands of columns); the loader
// projects each row onto the handful of variables the pipeline uses and
// keeps the observed file shape for the validation gates. Missing cells
// are carried as explicitly-invalid values and stay out of every
// denominator downstream.
package vdem

// Ordinal is an integer-coded measurement that may be missing.
type Ordinal struct {
	Value int
	Valid bool
}

// Index is a continuous measurement that may be missing.
type Index struct {
	Value float64
	Valid bool
}

// Flag is a derived boolean; Valid is false when the source value is
// missing, in which case the observation is excluded rather than counted
// as false.
type Flag struct {
	Value bool
	Valid bool
}

// Threshold rules for derived indicators. The ordinal scales run 0–4.
const (
	// MultipartyThreshold is the v2elmulpar_ord value at or above which a
	// country-year counts as allowing multiple parties.
	MultipartyThreshold = 2

	// CSORepressionCeiling is the v2csreprss_ord value at or below which
	// civil society organizations count as severely repressed.
	CSORepressionCeiling = 1
)

// Record is one (country, year) row of the panel, projected onto the
// variables the pipeline uses. Records are immutable once loaded.
type Record struct {
	CountryName string
	CountryCode string
	Year        int

	// RegimeOrdinal is the Regimes of the World category (v2x_regime, 0–3).
	RegimeOrdinal Ordinal

	// MultipartyOrdinal is the multiparty-elections ordinal (v2elmulpar_ord, 0–4).
	MultipartyOrdinal Ordinal

	// CSORepressionOrdinal is the CSO-repression ordinal (v2csreprss_ord, 0–4).
	CSORepressionOrdinal Ordinal

	// CivilSocietyIndex is the core civil society index (v2xcs_ccsi, 0–1).
	CivilSocietyIndex Index
}

// Regime returns the Regimes of the World category for this record.
func (record *Record) Regime() (Regime, bool) {
	if !record.RegimeOrdinal.Valid {
		return 0, false
	}
	return Regime(record.RegimeOrdinal.Value), true
}

// MultipartyAllowed reports whether multiple parties were allowed this
// country-year: true iff the multiparty ordinal is at or above
// MultipartyThreshold. Missing source values yield an invalid flag.
func (record *Record) MultipartyAllowed() Flag {
	if !record.MultipartyOrdinal.Valid {
		return Flag{}
	}
	return Flag{Value: record.MultipartyOrdinal.Value >= MultipartyThreshold, Valid: true}
}

// CSORepressed reports whether civil society organizations were severely
// repressed this country-year: true iff the repression ordinal is at or
// below CSORepressionCeiling.
func (record *Record) CSORepressed() Flag {
	if !record.CSORepressionOrdinal.Valid {
		return Flag{}
	}
	return Flag{Value: record.CSORepressionOrdinal.Value <= CSORepressionCeiling, Valid: true}
}

// Autocracy reports whether the record falls on the autocratic side of the
// Regimes of the World classification.
func (record *Record) Autocracy() Flag {
	regime, ok := record.Regime()
	if !ok {
		return Flag{}
	}
	return Flag{Value: regime.IsAutocracy(), Valid: true}
}
