package ngolaw

import "sort"

// Panel is the dense yearly view of the law dataset over a fixed year
// range: for each (country, question), the answer in force each year
// after forward-filling sparse observations. A country carries false
// until its first observation; later observations override the carried
// value, including explicit zeros that repeal an earlier law.
type Panel struct {
	Start int
	End   int

	flags map[string]map[Question][]bool
}

// BuildPanel forward-fills records into a dense panel covering
// [start, end]. Observations before start seed the carried value;
// observations after end are ignored. Duplicate (country, year,
// question) observations resolve to the last record in input order.
func BuildPanel(records []Record, start, end int) *Panel {
	panel := &Panel{Start: start, End: end, flags: make(map[string]map[Question][]bool)}
	if end < start {
		return panel
	}

	observed := make(map[string]map[Question]map[int]bool)
	for _, record := range records {
		if record.CountryCode == "" || record.Year > end {
			continue
		}
		byQuestion := observed[record.CountryCode]
		if byQuestion == nil {
			byQuestion = make(map[Question]map[int]bool)
			observed[record.CountryCode] = byQuestion
		}
		byYear := byQuestion[record.Question]
		if byYear == nil {
			byYear = make(map[int]bool)
			byQuestion[record.Question] = byYear
		}
		byYear[record.Year] = record.Flag
	}

	for code, byQuestion := range observed {
		filled := make(map[Question][]bool, len(byQuestion))
		for question, byYear := range byQuestion {
			filled[question] = fillSeries(byYear, start, end)
		}
		panel.flags[code] = filled
	}
	return panel
}

// fillSeries carries the most recent observed value across [start, end].
func fillSeries(byYear map[int]bool, start, end int) []bool {
	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)

	series := make([]bool, end-start+1)
	carry := false
	next := 0
	for year := start; year <= end; year++ {
		for next < len(years) && years[next] <= year {
			carry = byYear[years[next]]
			next++
		}
		series[year-start] = carry
	}
	return series
}

// Countries returns the panel's country codes in sorted order.
func (panel *Panel) Countries() []string {
	codes := make([]string, 0, len(panel.flags))
	for code := range panel.flags {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Has reports whether the country appears in the panel at all.
func (panel *Panel) Has(code string) bool {
	_, ok := panel.flags[code]
	return ok
}

// Flag reports the filled answer for one (country, question, year). The
// second return is false when the country is absent from the panel or
// the year falls outside the panel range. A country observed only on
// other questions answers false: no observation means no law.
func (panel *Panel) Flag(code string, question Question, year int) (value, ok bool) {
	if year < panel.Start || year > panel.End {
		return false, false
	}
	byQuestion, present := panel.flags[code]
	if !present {
		return false, false
	}
	series, present := byQuestion[question]
	if !present {
		return false, true
	}
	return series[year-panel.Start], true
}

// AnyRestriction reports whether at least one law question is in force
// for the country in the given year.
func (panel *Panel) AnyRestriction(code string, year int) (value, ok bool) {
	if year < panel.Start || year > panel.End {
		return false, false
	}
	byQuestion, present := panel.flags[code]
	if !present {
		return false, false
	}
	for _, series := range byQuestion {
		if series[year-panel.Start] {
			return true, true
		}
	}
	return false, true
}
