package journey

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/voyagelens/journey-mapper/journey/fileutils"
)

// TaxonomySize is the fixed number of steps in a journey taxonomy.
const TaxonomySize = 10

// ParseTaxonomyResponse defensively cleans the taxonomy generator's raw
// response, parses it, and validates the taxonomy shape: a journey_steps
// key holding exactly TaxonomySize steps with unique, non-empty names.
// Structural errors include the raw response for diagnosis.
func ParseTaxonomyResponse(raw string) ([]JourneyStep, error) {
	cleaned := fileutils.StripCodeFences(raw)
	cleaned = strings.ReplaceAll(cleaned, "\n", "")

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &top); err != nil {
		return nil, fmt.Errorf("invalid JSON in taxonomy response: %w (raw response: %s)", err, raw)
	}
	stepsRaw, ok := top["journey_steps"]
	if !ok {
		return nil, fmt.Errorf("taxonomy response missing journey_steps (raw response: %s)", raw)
	}

	var steps []JourneyStep
	if err := json.Unmarshal(stepsRaw, &steps); err != nil {
		return nil, fmt.Errorf("invalid journey_steps in taxonomy response: %w (raw response: %s)", err, raw)
	}
	if len(steps) != TaxonomySize {
		return nil, fmt.Errorf("taxonomy has %d steps, want exactly %d", len(steps), TaxonomySize)
	}

	seen := make(map[string]struct{}, len(steps))
	for i, s := range steps {
		if strings.TrimSpace(s.StepName) == "" {
			return nil, fmt.Errorf("taxonomy step %d has an empty step_name", i+1)
		}
		if _, dup := seen[s.StepName]; dup {
			return nil, fmt.Errorf("duplicate step_name in taxonomy: %q", s.StepName)
		}
		seen[s.StepName] = struct{}{}
	}
	return steps, nil
}

// ValidateAssignments re-validates every assignment the classifier returned
// against the taxonomy, trusting nothing about the classifier's formatting
// instructions. Any single bad item aborts the whole batch: a malformed
// assignment would silently corrupt the aggregate statistics downstream, so
// there is no per-item skip here.
func ValidateAssignments(raw string, taxonomy JourneyTaxonomy) ([]StepAssignment, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(fileutils.StripCodeFences(raw)), &top); err != nil {
		return nil, fmt.Errorf("invalid JSON in classifier response: %w (raw response: %s)", err, raw)
	}
	itemsRaw, ok := top["reviews_by_journey_step"]
	if !ok {
		return nil, fmt.Errorf("classifier response missing reviews_by_journey_step (raw response: %s)", raw)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(itemsRaw, &items); err != nil {
		return nil, fmt.Errorf("invalid reviews_by_journey_step in classifier response: %w (raw response: %s)", err, raw)
	}

	validSteps := taxonomy.StepNames()
	out := make([]StepAssignment, 0, len(items))
	for i, item := range items {
		a, err := validateAssignment(item, validSteps)
		if err != nil {
			return nil, fmt.Errorf("assignment %d: %w", i+1, err)
		}
		out = append(out, a)
	}
	return out, nil
}

func validateAssignment(item json.RawMessage, validSteps map[string]struct{}) (StepAssignment, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil {
		return StepAssignment{}, fmt.Errorf("not an object: %w", err)
	}

	var missing []string
	for _, name := range []string{"step_name", "rating", "date"} {
		if _, ok := fields[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return StepAssignment{}, fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	var stepName string
	if err := json.Unmarshal(fields["step_name"], &stepName); err != nil {
		return StepAssignment{}, fmt.Errorf("step_name is not a string: %w", err)
	}
	var dateStr string
	if err := json.Unmarshal(fields["date"], &dateStr); err != nil {
		return StepAssignment{}, fmt.Errorf("date is not a string: %w", err)
	}

	date, err := NormalizeDate(dateStr)
	if err != nil {
		return StepAssignment{}, err
	}
	// Defense against a normalizer bug: the result must itself be a strict
	// YYYY-MM-DD calendar date.
	if !IsISODate(date) {
		return StepAssignment{}, fmt.Errorf("normalized date is not YYYY-MM-DD: %q", date)
	}

	// Exact, case-sensitive membership. No fuzzy matching, no fallback bucket.
	if _, ok := validSteps[stepName]; !ok {
		return StepAssignment{}, fmt.Errorf("invalid step_name: %q", stepName)
	}

	var ratingNum json.Number
	if err := json.Unmarshal(fields["rating"], &ratingNum); err != nil {
		return StepAssignment{}, fmt.Errorf("invalid rating value: %s", fields["rating"])
	}
	rating, err := ratingNum.Int64()
	if err != nil || rating < 1 || rating > 5 {
		return StepAssignment{}, fmt.Errorf("invalid rating value: %s", ratingNum)
	}

	return StepAssignment{StepName: stepName, Rating: int(rating), Date: date}, nil
}
