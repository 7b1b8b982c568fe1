package vdem

// Regime is a Regimes of the World (RoW) category.
type Regime int

// RoW categories, in ascending order of democratic quality.
const (
	ClosedAutocracy Regime = iota
	ElectoralAutocracy
	ElectoralDemocracy
	LiberalDemocracy
)

// String returns the RoW category name.
func (regime Regime) String() string {
	switch regime {
	case ClosedAutocracy:
		return "closed autocracy"
	case ElectoralAutocracy:
		return "electoral autocracy"
	case ElectoralDemocracy:
		return "electoral democracy"
	case LiberalDemocracy:
		return "liberal democracy"
	default:
		return "unknown"
	}
}

// IsAutocracy reports whether the category falls on the autocratic side
// of the classification (closed or electoral autocracy).
func (regime Regime) IsAutocracy() bool {
	return regime <= ElectoralAutocracy
}

// Fixed historical window for the predominant-regime classification.
// Bounds are inclusive.
const (
	WindowStart = 1990
	WindowEnd   = 2013
)

// GenerallyAutocraticThreshold is the minimum fraction of observed window
// years classified autocratic for a country to carry the label.
const GenerallyAutocraticThreshold = 0.5

// RegimeProfile summarizes a country's regime record over the fixed
// window. Countries with no observed window years get no profile at all;
// they are excluded from label-grouped series rather than defaulted.
type RegimeProfile struct {
	CountryCode     string
	YearsObserved   int
	AutocraticYears int
}

// AutocraticFraction returns the share of observed window years
// classified autocratic.
func (profile RegimeProfile) AutocraticFraction() float64 {
	if profile.YearsObserved == 0 {
		return 0
	}
	return float64(profile.AutocraticYears) / float64(profile.YearsObserved)
}

// GenerallyAutocratic reports whether the autocratic fraction meets the
// threshold (inclusive).
func (profile RegimeProfile) GenerallyAutocratic() bool {
	return profile.YearsObserved > 0 && profile.AutocraticFraction() >= GenerallyAutocraticThreshold
}

// ClassifyWindow computes a RegimeProfile per country code from panel
// records over the fixed [WindowStart, WindowEnd] window.
func ClassifyWindow(records []Record) map[string]RegimeProfile {
	return ClassifyWindowRange(records, WindowStart, WindowEnd)
}

// ClassifyWindowRange computes a RegimeProfile per country code from
// panel records. Only years inside [start, end] with a valid regime
// category count toward the fractions; countries observed zero times in
// the window are absent from the result.
func ClassifyWindowRange(records []Record, start, end int) map[string]RegimeProfile {
	profiles := make(map[string]RegimeProfile)

	for i := range records {
		record := &records[i]
		if record.Year < start || record.Year > end {
			continue
		}
		autocracy := record.Autocracy()
		if !autocracy.Valid {
			continue
		}

		profile := profiles[record.CountryCode]
		profile.CountryCode = record.CountryCode
		profile.YearsObserved++
		if autocracy.Value {
			profile.AutocraticYears++
		}
		profiles[record.CountryCode] = profile
	}

	return profiles
}
