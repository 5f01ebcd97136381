package journey

import (
	"fmt"
	"strings"
)

// RenderReviewBatch formats one chunk of reviews into the prompt body the
// summarizer receives: one fixed template per review plus a separator line.
func RenderReviewBatch(reviews []RawReview) string {
	rendered := make([]string, 0, len(reviews))
	for _, r := range reviews {
		rendered = append(rendered, fmt.Sprintf(
			"Date: %s\nTitle: %s\nRating: %d/5\nDescription: %s\n%s",
			r.DateOfExperience, r.Title, r.Rating, r.Description, strings.Repeat("=", 50)))
	}
	return strings.Join(rendered, "\n")
}

// SentimentSystemPrompt instructs the summarizer. The batch of rendered
// review text is sent as the user message.
const SentimentSystemPrompt = `You are a data processing assistant. You are tasked with analyzing the sentiment of customer reviews for a company. The reviews are in the form of text data. Your task is to read each review and determine the sentiment. You should then provide a brief summary of the sentiment analysis for each review - sentiment summary. The reviews are from a variety of sources, so you may encounter different writing styles and topics. Your goal is to provide an accurate and consistent analysis of the sentiment of each review. Please highlight specific details that evidence the customer experience.

Date format always "YYYY-MM-DD"

Return ONLY this exact JSON structure:

{
  "date": "string",
  "title": "string",
  "rating": "integer",
  "sentimentSummary": "string"
}
`

// JourneySystemPrompt frames the taxonomy generation call.
const JourneySystemPrompt = "You are analyzing customer journey data."

// JourneyPrompt demands exactly TaxonomySize named, de-duplicated,
// domain-specific journey steps, excluding a generic "feedback" step.
const JourneyPrompt = `Review the provided data to determine the type of service the company offers. Identify 10 steps in a typical customer journey, starting when a potential customer becomes aware of the product or service through decision-making, purchase, using the product or service, and following up.

Output:
- Provide a descriptive list of named customer journey stages.
- Ensure several of the steps describe the customer's use of the product or service.
- DO NOT include "feedback" as a step.
- Title each step to reflect its relevance to the service offered.
- Capture every significant stage in the journey comprehensively but DO NOT describe the steps or the experiences within them.
- Ensure you have identified 10 distinct steps.

Please return the response in this JSON format:
{
    "journey_steps": [
        {
            "step_number": 1,
            "step_name": "name",
            "description": "brief description"
        }
    ]
}`

// MappingSystemPrompt frames the classification call.
const MappingSystemPrompt = "You are mapping customer reviews to journey steps."

// MappingPrompt gives the classifier its strict formatting instructions.
// The pipeline does not trust these instructions; everything the classifier
// returns is independently re-validated.
const MappingPrompt = `Map each review to the most relevant customer journey step.

Rules:
1. Use ONLY the journey steps provided - do not create new steps
2. Match each review to exactly one journey step
3. Convert dates to YYYY-MM-DD format (e.g., 2028-01-17)
4. Use exact step names from the journey steps list

Return ONLY this JSON structure:
{
    "reviews_by_journey_step": [
        {
            "step_name": "exact step name from journey steps",
            "rating": 5,
            "date": "YYYY-MM-DD"
        }
    ]
}

Requirements:
- date must match original review date exactly and in the format YYYY-MM-DD (e.g., 2028-01-17)
- rating must be integer 1-5
- step_name must exactly match one from provided journey steps
- all fields are required`
