package journey

// RawReview is one collected customer review, exactly as the review
// collector wrote it. Inputs are immutable; one file per collection run.
type RawReview struct {
	DateOfExperience string `json:"reviewDateOfExperience"`
	Title            string `json:"reviewTitle"`
	Rating           int    `json:"reviewRatingScore"`
	Description      string `json:"reviewDescription"`
}

// ChunkSummary is the persisted output of one summarization call: the raw
// model text (markdown-stripped) kept as an opaque blob, keyed on disk to
// the chunk file it came from.
type ChunkSummary struct {
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

// AggregatedSummary wraps every per-chunk summary of a run as an ordered
// list with provenance.
type AggregatedSummary struct {
	Metadata AggregatedMetadata `json:"metadata"`
	Analyses []ChunkAnalysis    `json:"analyses"`
}

type AggregatedMetadata struct {
	TotalFiles  int      `json:"total_files"`
	Timestamp   string   `json:"timestamp"`
	SourceFiles []string `json:"source_files"`
}

// ChunkAnalysis pairs a summary with the chunk summary file it came from.
type ChunkAnalysis struct {
	File     string `json:"file"`
	Analysis string `json:"analysis"`
}

// JourneyStep is one named stage of the customer journey.
type JourneyStep struct {
	StepNumber  int    `json:"step_number"`
	StepName    string `json:"step_name"`
	Description string `json:"description"`
}

// JourneyTaxonomy is the persisted, ordered set of exactly TaxonomySize
// journey steps for one business. Immutable once generated; versioned by
// its generation timestamp.
type JourneyTaxonomy struct {
	SourceFile   string        `json:"source_file"`
	Timestamp    string        `json:"timestamp"`
	JourneySteps []JourneyStep `json:"journey_steps"`
}

// StepNames returns the set of valid step names for membership checks.
func (t JourneyTaxonomy) StepNames() map[string]struct{} {
	names := make(map[string]struct{}, len(t.JourneySteps))
	for _, s := range t.JourneySteps {
		names[s.StepName] = struct{}{}
	}
	return names
}

// StepAssignment is one validated review-to-step assignment. The original
// review identity is not retained; date, rating, and step name are the full
// surviving record.
type StepAssignment struct {
	StepName string `json:"step_name"`
	Rating   int    `json:"rating"`
	Date     string `json:"date"`
}

// MappedReviews is the persisted, fully validated assignment collection
// with provenance back to the summary and taxonomy files it was built from.
type MappedReviews struct {
	Metadata MappedMetadata   `json:"metadata"`
	Reviews  []StepAssignment `json:"reviews_by_journey_step"`
}

type MappedMetadata struct {
	SummarySource string `json:"summary_source"`
	JourneySource string `json:"journey_source"`
	Timestamp     string `json:"timestamp"`
}

// StepAverage is the mean signed rating for one journey step. Ordering of a
// StepAverage slice always follows taxonomy order.
type StepAverage struct {
	StepName string  `json:"step_name"`
	Mean     float64 `json:"mean_signed_rating"`
}
