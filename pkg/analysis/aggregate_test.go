package analysis

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAggregateProportions_HandComputed(t *testing.T) {
	observations := []BoolObservation{
		{Year: 2000, Group: "g", Value: true},
		{Year: 2000, Group: "g", Value: true},
		{Year: 2000, Group: "g", Value: false},
		{Year: 2000, Group: "g", Value: false},
	}

	points := AggregateProportions(observations)

	if len(points) != 1 {
		t.Fatalf("points: got %d, want 1", len(points))
	}
	point := points[0]
	if !almostEqual(point.Proportion, 0.5) || point.Count != 2 || point.N != 4 {
		t.Errorf("cell: got p=%v count=%d n=%d, want p=0.5 count=2 n=4", point.Proportion, point.Count, point.N)
	}

	// 1.96 * sqrt(0.25/4) = 0.49
	if !almostEqual(point.CILow, 0.01) || !almostEqual(point.CIHigh, 0.99) {
		t.Errorf("CI: got [%v, %v], want [0.01, 0.99]", point.CILow, point.CIHigh)
	}
}

func TestAggregateProportions_ClampedToUnitInterval(t *testing.T) {
	observations := make([]BoolObservation, 0, 10)
	for i := 0; i < 9; i++ {
		observations = append(observations, BoolObservation{Year: 2000, Group: "g", Value: true})
	}
	observations = append(observations, BoolObservation{Year: 2000, Group: "g", Value: false})

	point := AggregateProportions(observations)[0]

	if !almostEqual(point.Proportion, 0.9) {
		t.Fatalf("proportion: got %v, want 0.9", point.Proportion)
	}
	if point.CIHigh != 1.0 {
		t.Errorf("CIHigh: got %v, want clamped 1.0", point.CIHigh)
	}
	if point.CILow < 0 || point.CILow > point.Proportion {
		t.Errorf("CILow: got %v, want within [0, p]", point.CILow)
	}
}

func TestAggregateProportions_DegenerateCell(t *testing.T) {
	points := AggregateProportions([]BoolObservation{{Year: 2000, Group: "g", Value: true}})

	point := points[0]
	if point.Proportion != 1.0 || point.CILow != 1.0 || point.CIHigh != 1.0 {
		t.Errorf("all-true single cell: got p=%v CI=[%v, %v], want all 1.0", point.Proportion, point.CILow, point.CIHigh)
	}
}

func TestAggregateProportions_NoObservationsNoCells(t *testing.T) {
	if points := AggregateProportions(nil); len(points) != 0 {
		t.Errorf("points: got %d, want 0", len(points))
	}
}

func TestAggregateProportions_SortedByYearThenGroup(t *testing.T) {
	observations := []BoolObservation{
		{Year: 2001, Group: "b", Value: true},
		{Year: 2000, Group: "b", Value: true},
		{Year: 2001, Group: "a", Value: true},
		{Year: 2000, Group: "a", Value: true},
	}

	points := AggregateProportions(observations)

	wantOrder := []struct {
		year  int
		group string
	}{
		{2000, "a"}, {2000, "b"}, {2001, "a"}, {2001, "b"},
	}
	for i, want := range wantOrder {
		if points[i].Year != want.year || points[i].Group != want.group {
			t.Errorf("points[%d]: got (%d, %s), want (%d, %s)", i, points[i].Year, points[i].Group, want.year, want.group)
		}
	}
}

func TestAggregateProportions_AlwaysWithinUnitInterval(t *testing.T) {
	observations := []BoolObservation{
		{Year: 2000, Group: "g", Value: true},
		{Year: 2000, Group: "g", Value: false},
		{Year: 2001, Group: "g", Value: true},
		{Year: 2002, Group: "g", Value: false},
	}

	for _, point := range AggregateProportions(observations) {
		if point.Proportion < 0 || point.Proportion > 1 {
			t.Errorf("proportion out of range: %v", point.Proportion)
		}
		if point.CILow < 0 || point.CIHigh > 1 || point.CILow > point.CIHigh {
			t.Errorf("CI out of range: [%v, %v]", point.CILow, point.CIHigh)
		}
	}
}

func TestAggregateMeans_HandComputed(t *testing.T) {
	observations := []ValueObservation{
		{Year: 2000, Group: "g", Value: 0.2},
		{Year: 2000, Group: "g", Value: 0.4},
	}

	points := AggregateMeans(observations)

	if len(points) != 1 {
		t.Fatalf("points: got %d, want 1", len(points))
	}
	point := points[0]
	if !almostEqual(point.Mean, 0.3) || point.N != 2 {
		t.Errorf("cell: got mean=%v n=%d, want mean=0.3 n=2", point.Mean, point.N)
	}

	// sd = sqrt(0.02), half width = 1.96*sd/sqrt(2) = 0.196
	if !point.CIKnown {
		t.Fatal("CIKnown: got false, want true for n=2")
	}
	if !almostEqual(point.CILow, 0.104) || !almostEqual(point.CIHigh, 0.496) {
		t.Errorf("CI: got [%v, %v], want [0.104, 0.496]", point.CILow, point.CIHigh)
	}
}

func TestAggregateMeans_SingleObservationHasNoInterval(t *testing.T) {
	points := AggregateMeans([]ValueObservation{{Year: 2000, Group: "g", Value: 0.7}})

	point := points[0]
	if point.CIKnown {
		t.Error("CIKnown: got true, want false for n=1")
	}
	if !almostEqual(point.Mean, 0.7) {
		t.Errorf("mean: got %v, want 0.7", point.Mean)
	}
}

func TestAggregateMeans_GroupsIndependent(t *testing.T) {
	observations := []ValueObservation{
		{Year: 2000, Group: "a", Value: 0.0},
		{Year: 2000, Group: "a", Value: 1.0},
		{Year: 2000, Group: "b", Value: 0.4},
	}

	points := AggregateMeans(observations)

	if len(points) != 2 {
		t.Fatalf("points: got %d, want 2", len(points))
	}
	if points[0].Group != "a" || !almostEqual(points[0].Mean, 0.5) || points[0].N != 2 {
		t.Errorf("group a: got %+v", points[0])
	}
	if points[1].Group != "b" || !almostEqual(points[1].Mean, 0.4) || points[1].N != 1 {
		t.Errorf("group b: got %+v", points[1])
	}
}
