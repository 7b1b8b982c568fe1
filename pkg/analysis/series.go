package analysis

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/coolbeans/civitas/pkg/ngolaw"
	"github.com/coolbeans/civitas/pkg/vdem"
)

// Series names, as used by the CLI and the figure manifest.
const (
	SeriesElections    = "elections"
	SeriesCivilSociety = "civil-society"
	SeriesNGOLaws      = "ngo-laws"
)

// Group labels attached to aggregate cells.
const (
	GroupAutocracies         = "autocracies"
	GroupDemocracies         = "democracies"
	GroupGenerallyAutocratic = "generally autocratic"
	GroupOtherCountries      = "other countries"
)

// SeriesKind tells rendering and export which point type a series carries.
type SeriesKind string

const (
	KindProportion SeriesKind = "proportion"
	KindMean       SeriesKind = "mean"
)

// Series is one named aggregate table, ready for rendering or export.
type Series struct {
	Name        string            `json:"name"`
	Title       string            `json:"title"`
	Kind        SeriesKind        `json:"kind"`
	Proportions []ProportionPoint `json:"proportions,omitempty"`
	Means       []MeanPoint       `json:"means,omitempty"`
}

// Len returns the number of points in the series.
func (s *Series) Len() int {
	if s.Kind == KindMean {
		return len(s.Means)
	}
	return len(s.Proportions)
}

// BuildElectionsSeries computes, per year, the share of autocratic
// country-years that allow multiparty elections. Only records with both
// a valid regime and a valid multiparty ordinal contribute; democracies
// and missing values stay out of the denominator.
func BuildElectionsSeries(records []vdem.Record) *Series {
	observations := make([]BoolObservation, 0, len(records))
	for _, record := range records {
		autocracy := record.Autocracy()
		multiparty := record.MultipartyAllowed()
		if !autocracy.Valid || !multiparty.Valid || !autocracy.Value {
			continue
		}
		observations = append(observations, BoolObservation{
			Year:  record.Year,
			Group: GroupAutocracies,
			Value: multiparty.Value,
		})
	}
	return &Series{
		Name:        SeriesElections,
		Title:       "Share of autocracies holding multiparty elections",
		Kind:        KindProportion,
		Proportions: AggregateProportions(observations),
	}
}

// BuildCivilSocietySeries computes the mean core civil society index
// per year, split into autocracies and democracies by each year's
// regime classification.
func BuildCivilSocietySeries(records []vdem.Record) *Series {
	observations := make([]ValueObservation, 0, len(records))
	for _, record := range records {
		autocracy := record.Autocracy()
		if !autocracy.Valid || !record.CivilSocietyIndex.Valid {
			continue
		}
		group := GroupDemocracies
		if autocracy.Value {
			group = GroupAutocracies
		}
		observations = append(observations, ValueObservation{
			Year:  record.Year,
			Group: group,
			Value: record.CivilSocietyIndex.Value,
		})
	}
	return &Series{
		Name:  SeriesCivilSociety,
		Title: "Core civil society index by regime type",
		Kind:  KindMean,
		Means: AggregateMeans(observations),
	}
}

// BuildNGOLawSeries computes, per year across the filled law panel, the
// share of countries with at least one restrictive NGO law in force,
// split by the generally-autocratic label. Countries without a label
// (no observed window years) are excluded.
func BuildNGOLawSeries(panel *ngolaw.Panel, profiles map[string]vdem.RegimeProfile) *Series {
	observations := make([]BoolObservation, 0)
	for _, code := range panel.Countries() {
		profile, labeled := profiles[code]
		if !labeled {
			continue
		}
		group := GroupOtherCountries
		if profile.GenerallyAutocratic() {
			group = GroupGenerallyAutocratic
		}
		for year := panel.Start; year <= panel.End; year++ {
			restricted, ok := panel.AnyRestriction(code, year)
			if !ok {
				continue
			}
			observations = append(observations, BoolObservation{
				Year:  year,
				Group: group,
				Value: restricted,
			})
		}
	}
	return &Series{
		Name:        SeriesNGOLaws,
		Title:       "Share of countries with a restrictive NGO law in force",
		Kind:        KindProportion,
		Proportions: AggregateProportions(observations),
	}
}

// ToJSON serializes the series as indented JSON.
func (s *Series) ToJSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// ToCSV renders the series as CSV, one row per (year, group) cell.
// Mean rows leave the interval columns empty when no CI is known.
func (s *Series) ToCSV() string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	switch s.Kind {
	case KindMean:
		w.Write([]string{"year", "group", "mean", "n", "ci_low", "ci_high"})
		for _, point := range s.Means {
			row := []string{
				strconv.Itoa(point.Year),
				point.Group,
				formatFloat(point.Mean),
				strconv.Itoa(point.N),
				"",
				"",
			}
			if point.CIKnown {
				row[4] = formatFloat(point.CILow)
				row[5] = formatFloat(point.CIHigh)
			}
			w.Write(row)
		}
	default:
		w.Write([]string{"year", "group", "proportion", "count", "n", "ci_low", "ci_high"})
		for _, point := range s.Proportions {
			w.Write([]string{
				strconv.Itoa(point.Year),
				point.Group,
				formatFloat(point.Proportion),
				strconv.Itoa(point.Count),
				strconv.Itoa(point.N),
				formatFloat(point.CILow),
				formatFloat(point.CIHigh),
			})
		}
	}

	w.Flush()
	return sb.String()
}

// String returns a human-readable table of the series.
func (s *Series) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s [%s]\n", s.Title, s.Name))
	sb.WriteString(strings.Repeat("=", len(s.Title)+len(s.Name)+3) + "\n\n")

	switch s.Kind {
	case KindMean:
		sb.WriteString("+------+------------------------+------------+-------+------------------+\n")
		sb.WriteString("| Year | Group                  |       Mean |     N | 95% CI           |\n")
		sb.WriteString("+------+------------------------+------------+-------+------------------+\n")
		for _, point := range s.Means {
			ci := "n < 2"
			if point.CIKnown {
				ci = fmt.Sprintf("[%6.3f, %6.3f]", point.CILow, point.CIHigh)
			}
			sb.WriteString(fmt.Sprintf("| %4d | %-22s | %10.3f | %5d | %-16s |\n",
				point.Year, truncateLabel(point.Group, 22), point.Mean, point.N, ci))
		}
		sb.WriteString("+------+------------------------+------------+-------+------------------+\n")
	default:
		sb.WriteString("+------+------------------------+------------+-------+-------+------------------+\n")
		sb.WriteString("| Year | Group                  | Proportion | Count |     N | 95% CI           |\n")
		sb.WriteString("+------+------------------------+------------+-------+-------+------------------+\n")
		for _, point := range s.Proportions {
			ci := fmt.Sprintf("[%6.3f, %6.3f]", point.CILow, point.CIHigh)
			sb.WriteString(fmt.Sprintf("| %4d | %-22s | %10.3f | %5d | %5d | %-16s |\n",
				point.Year, truncateLabel(point.Group, 22), point.Proportion, point.Count, point.N, ci))
		}
		sb.WriteString("+------+------------------------+------------+-------+-------+------------------+\n")
	}

	sb.WriteString(fmt.Sprintf("\n%d cells\n", s.Len()))
	return sb.String()
}

func truncateLabel(label string, max int) string {
	if len(label) <= max {
		return label
	}
	return label[:max-3] + "..."
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
