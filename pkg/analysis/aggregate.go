// Package analysis turns loaded panel records into the aggregate series
// behind the report's figures: per-year proportions and means, grouped
// by regime side or autocracy label, with normal-approximation
// confidence intervals. Missing values never enter a denominator, and
// (year, group) cells with no observations are dropped rather than
// emitted as NaN.
package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// zCritical95 is the 95% normal critical value used for all intervals.
const zCritical95 = 1.96

// BoolObservation is one (year, group) boolean draw.
type BoolObservation struct {
	Year  int
	Group string
	Value bool
}

// ValueObservation is one (year, group) continuous draw.
type ValueObservation struct {
	Year  int
	Group string
	Value float64
}

// ProportionPoint is one (year, group) cell of a proportion series.
type ProportionPoint struct {
	Year       int     `json:"year"`
	Group      string  `json:"group"`
	Proportion float64 `json:"proportion"`
	Count      int     `json:"count"`
	N          int     `json:"n"`
	CILow      float64 `json:"ci_low"`
	CIHigh     float64 `json:"ci_high"`
}

// MeanPoint is one (year, group) cell of a mean series. CIKnown is
// false when the cell holds a single observation and no interval can
// be computed.
type MeanPoint struct {
	Year    int     `json:"year"`
	Group   string  `json:"group"`
	Mean    float64 `json:"mean"`
	N       int     `json:"n"`
	CILow   float64 `json:"ci_low,omitempty"`
	CIHigh  float64 `json:"ci_high,omitempty"`
	CIKnown bool    `json:"ci_known"`
}

type cellKey struct {
	year  int
	group string
}

// AggregateProportions groups observations by (year, group) and returns
// one point per non-empty cell, sorted by year then group.
func AggregateProportions(observations []BoolObservation) []ProportionPoint {
	type cell struct {
		hits int
		n    int
	}
	cells := make(map[cellKey]*cell)
	for _, observation := range observations {
		key := cellKey{year: observation.Year, group: observation.Group}
		c := cells[key]
		if c == nil {
			c = &cell{}
			cells[key] = c
		}
		c.n++
		if observation.Value {
			c.hits++
		}
	}

	points := make([]ProportionPoint, 0, len(cells))
	for key, c := range cells {
		proportion := float64(c.hits) / float64(c.n)
		low, high := proportionInterval(proportion, c.n)
		points = append(points, ProportionPoint{
			Year:       key.year,
			Group:      key.group,
			Proportion: proportion,
			Count:      c.hits,
			N:          c.n,
			CILow:      low,
			CIHigh:     high,
		})
	}

	sort.Slice(points, func(i, j int) bool {
		if points[i].Year != points[j].Year {
			return points[i].Year < points[j].Year
		}
		return points[i].Group < points[j].Group
	})
	return points
}

// AggregateMeans groups observations by (year, group) and returns one
// point per non-empty cell, sorted by year then group.
func AggregateMeans(observations []ValueObservation) []MeanPoint {
	samples := make(map[cellKey][]float64)
	for _, observation := range observations {
		key := cellKey{year: observation.Year, group: observation.Group}
		samples[key] = append(samples[key], observation.Value)
	}

	points := make([]MeanPoint, 0, len(samples))
	for key, values := range samples {
		point := MeanPoint{
			Year:  key.year,
			Group: key.group,
			Mean:  stat.Mean(values, nil),
			N:     len(values),
		}
		if len(values) >= 2 {
			halfWidth := zCritical95 * stat.StdDev(values, nil) / math.Sqrt(float64(len(values)))
			point.CILow = point.Mean - halfWidth
			point.CIHigh = point.Mean + halfWidth
			point.CIKnown = true
		}
		points = append(points, point)
	}

	sort.Slice(points, func(i, j int) bool {
		if points[i].Year != points[j].Year {
			return points[i].Year < points[j].Year
		}
		return points[i].Group < points[j].Group
	})
	return points
}

// proportionInterval is the normal approximation p +/- z*sqrt(p(1-p)/n),
// clamped to [0, 1].
func proportionInterval(p float64, n int) (low, high float64) {
	halfWidth := zCritical95 * math.Sqrt(p*(1-p)/float64(n))
	return clamp01(p - halfWidth), clamp01(p + halfWidth)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
