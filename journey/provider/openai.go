// Package provider implements the pipeline's external text-analysis
// capabilities on the OpenAI Responses API with strict structured outputs.
package provider

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/voyagelens/journey-mapper/journey"
)

// Client is the production implementation of the pipeline's Summarizer,
// TaxonomyGenerator, and Classifier capabilities. Each call is a single
// request-response round trip: the pipeline's failure policy is skip or
// abort, never retry.
type Client struct {
	api          *openai.Client
	summaryModel string
	journeyModel string
}

// New constructs a Client. journeyModel is used for taxonomy generation and
// review classification; summaryModel for per-chunk sentiment summaries.
func New(apiKey, summaryModel, journeyModel string) *Client {
	c := openai.NewClient(option.WithAPIKey(apiKey))
	return &Client{
		api:          &c,
		summaryModel: summaryModel,
		journeyModel: journeyModel,
	}
}

// sentimentResponse is the summarizer's invocation contract. The pipeline
// persists the returned text as an opaque blob; the schema only constrains
// what the model may produce.
type sentimentResponse struct {
	Date             string `json:"date"`
	Title            string `json:"title"`
	Rating           int    `json:"rating"`
	SentimentSummary string `json:"sentimentSummary"`
}

type journeyStepsResponse struct {
	JourneySteps []struct {
		StepNumber  int    `json:"step_number"`
		StepName    string `json:"step_name"`
		Description string `json:"description"`
	} `json:"journey_steps"`
}

type mappedReviewsResponse struct {
	ReviewsByJourneyStep []struct {
		StepName string `json:"step_name"`
		Rating   int    `json:"rating"`
		Date     string `json:"date"`
	} `json:"reviews_by_journey_step"`
}

var (
	sentimentSchema = generateSchema[sentimentResponse]()
	journeySchema   = generateSchema[journeyStepsResponse]()
	mappingSchema   = generateSchema[mappedReviewsResponse]()
)

func (c *Client) SummarizeBatch(ctx context.Context, batchText string) (string, error) {
	return c.call(ctx, c.summaryModel, journey.SentimentSystemPrompt,
		[]string{batchText},
		"SentimentSummary", sentimentSchema)
}

func (c *Client) GenerateJourney(ctx context.Context, aggregatedJSON string) (string, error) {
	return c.call(ctx, c.journeyModel, journey.JourneySystemPrompt,
		[]string{aggregatedJSON, journey.JourneyPrompt},
		"JourneySteps", journeySchema)
}

func (c *Client) MapReviews(ctx context.Context, journeyJSON, aggregatedJSON string) (string, error) {
	return c.call(ctx, c.journeyModel, journey.MappingSystemPrompt,
		[]string{"Journey steps: " + journeyJSON, "Reviews: " + aggregatedJSON, journey.MappingPrompt},
		"MappedReviews", mappingSchema)
}

func (c *Client) call(ctx context.Context, model, instructions string, userMessages []string, schemaName string, schema map[string]interface{}) (string, error) {
	if c.api == nil {
		return "", errors.New("provider: client is nil")
	}
	if model == "" {
		return "", errors.New("provider: model is empty")
	}

	input := make([]responses.ResponseInputItemUnionParam, 0, len(userMessages))
	for _, m := range userMessages {
		input = append(input, responses.ResponseInputItemParamOfMessage(m, responses.EasyInputMessageRoleUser))
	}

	params := responses.ResponseNewParams{
		Model:        model,
		Instructions: openai.String(instructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: input,
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:   schemaName,
					Schema: schema,
					Strict: openai.Bool(true),
					Type:   "json_schema",
				},
			},
		},
	}

	resp, err := c.api.Responses.New(ctx, params)
	if err != nil {
		return "", err
	}
	out := resp.OutputText()
	if strings.TrimSpace(out) == "" {
		return "", errors.New("empty response from model")
	}
	return out, nil
}
