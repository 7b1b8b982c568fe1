// Package ngolaw loads the NGO-law legal-coding workbook: per-country,
// per-year answers to a closed set of law questions. Observations are
// sparse over years; BuildPanel densifies them by carrying the most
// recent answer forward.
package ngolaw

// Record is one observed answer: a country answered one law question in
// one year. Flag true means the law or burden is present.
type Record struct {
	CountryName string
	CountryCode string
	Year        int
	Question    Question
	Flag        bool
}

// Resolution tallies country-name resolution over one loaded workbook.
// Unmatched names are accepted data loss: their rows are dropped and
// counted here, never turned into an error.
type Resolution struct {
	// Resolved maps each raw sheet name that resolved to its country code.
	Resolved map[string]string

	// Unmatched maps each raw sheet name that did not resolve to the
	// number of data rows dropped because of it.
	Unmatched map[string]int
}

// ResolvedCount returns the number of distinct resolved names.
func (resolution *Resolution) ResolvedCount() int {
	return len(resolution.Resolved)
}

// UnmatchedCount returns the number of distinct unresolved names.
func (resolution *Resolution) UnmatchedCount() int {
	return len(resolution.Unmatched)
}

// DroppedRows returns how many data rows were dropped for lack of a
// country-code match.
func (resolution *Resolution) DroppedRows() int {
	dropped := 0
	for _, rows := range resolution.Unmatched {
		dropped += rows
	}
	return dropped
}

// Dataset is one loaded workbook sheet.
type Dataset struct {
	Records    []Record
	Resolution Resolution

	// SkippedRows counts data rows without a country name or a
	// parseable year.
	SkippedRows int

	// Sheet and Path identify the source the dataset was read from.
	Sheet string
	Path  string
}
