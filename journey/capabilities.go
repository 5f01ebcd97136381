package journey

import "context"

// The external text-analysis calls are modeled as narrow prompt-in,
// raw-text-out capabilities so the validation core is testable without live
// network calls. Implementations return the model's output verbatim; all
// parsing and validation happens in the pipeline.

// Summarizer produces one structured sentiment summary per batch of
// rendered review text (not per review).
type Summarizer interface {
	SummarizeBatch(ctx context.Context, batchText string) (string, error)
}

// TaxonomyGenerator proposes the ordered journey taxonomy for the business
// described by the aggregated summaries.
type TaxonomyGenerator interface {
	GenerateJourney(ctx context.Context, aggregatedJSON string) (string, error)
}

// Classifier assigns every summarized review to exactly one journey step.
type Classifier interface {
	MapReviews(ctx context.Context, journeyJSON, aggregatedJSON string) (string, error)
}
