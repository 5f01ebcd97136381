package journey

// signedScale recenters 1-5 star ratings so "3" (neutral) is the zero
// point, making under- and over-performance visually symmetric.
var signedScale = map[int]int{5: 2, 4: 1, 3: 0, 2: -1, 1: -2}

// SignedRating maps a validated 1-5 rating onto the -2..+2 scale.
func SignedRating(rating int) int {
	return signedScale[rating]
}

// AverageByStep computes the mean signed rating per journey step, reindexed
// to full taxonomy order. Steps with no assignments get a mean of 0 (a step
// nobody reviewed is neutral, not missing), so the result always has
// exactly one row per taxonomy step.
func AverageByStep(assignments []StepAssignment, steps []JourneyStep) []StepAverage {
	sums := make(map[string]float64, len(steps))
	counts := make(map[string]int, len(steps))
	for _, a := range assignments {
		sums[a.StepName] += float64(SignedRating(a.Rating))
		counts[a.StepName]++
	}

	out := make([]StepAverage, 0, len(steps))
	for _, s := range steps {
		mean := 0.0
		if c := counts[s.StepName]; c > 0 {
			mean = sums[s.StepName] / float64(c)
		}
		out = append(out, StepAverage{StepName: s.StepName, Mean: mean})
	}
	return out
}
