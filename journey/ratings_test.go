package journey

import "testing"

func TestSignedRating_SymmetricAroundNeutral(t *testing.T) {
	t.Parallel()

	if SignedRating(3) != 0 {
		t.Fatalf("SignedRating(3)=%d, want 0", SignedRating(3))
	}
	if SignedRating(5) != -SignedRating(1) {
		t.Fatalf("SignedRating(5)=%d, SignedRating(1)=%d; want negation", SignedRating(5), SignedRating(1))
	}
	if SignedRating(4) != -SignedRating(2) {
		t.Fatalf("SignedRating(4)=%d, SignedRating(2)=%d; want negation", SignedRating(4), SignedRating(2))
	}
	if SignedRating(5) != 2 || SignedRating(1) != -2 {
		t.Fatalf("scale endpoints: got %d and %d, want 2 and -2", SignedRating(5), SignedRating(1))
	}
}

func TestAverageByStep_AlwaysOneRowPerStepInTaxonomyOrder(t *testing.T) {
	t.Parallel()

	taxonomy := testTaxonomy()
	assignments := []StepAssignment{
		{StepName: "Booking", Rating: 5, Date: "2025-01-17"},
		{StepName: "Booking", Rating: 3, Date: "2025-01-18"},
		{StepName: "Arrival", Rating: 1, Date: "2025-01-19"},
	}

	averages := AverageByStep(assignments, taxonomy.JourneySteps)
	if len(averages) != len(taxonomy.JourneySteps) {
		t.Fatalf("len(averages)=%d, want %d rows", len(averages), len(taxonomy.JourneySteps))
	}
	for i, s := range taxonomy.JourneySteps {
		if averages[i].StepName != s.StepName {
			t.Fatalf("row %d is %q, want taxonomy order %q", i, averages[i].StepName, s.StepName)
		}
	}

	byName := make(map[string]float64, len(averages))
	for _, a := range averages {
		byName[a.StepName] = a.Mean
	}
	// Booking: (+2 + 0) / 2 = 1. Arrival: -2. Everything else neutral.
	if byName["Booking"] != 1 {
		t.Fatalf("Booking mean=%v, want 1", byName["Booking"])
	}
	if byName["Arrival"] != -2 {
		t.Fatalf("Arrival mean=%v, want -2", byName["Arrival"])
	}
	if byName["Awareness"] != 0 {
		t.Fatalf("step with no assignments should be 0, got %v", byName["Awareness"])
	}
}

func TestAverageByStep_NoAssignments(t *testing.T) {
	t.Parallel()

	averages := AverageByStep(nil, testTaxonomy().JourneySteps)
	if len(averages) != TaxonomySize {
		t.Fatalf("len(averages)=%d, want %d", len(averages), TaxonomySize)
	}
	for _, a := range averages {
		if a.Mean != 0 {
			t.Fatalf("%s mean=%v, want 0", a.StepName, a.Mean)
		}
	}
}
