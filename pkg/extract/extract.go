// Package extract turns sanitized paper text into structured facts by calling
// the text-understanding service under a fixed schema contract.
package extract

import (
	"context"

	"github.com/pkoukk/tiktoken-go"

	"papergraph/internal/util"
	"papergraph/pkg/ai"
	"papergraph/pkg/logger"
)

// Text beyond this many whitespace-delimited tokens is cut before the model
// call. Roughly sized to leave context-window room for prompt and response.
const defaultMaxWords = 6000

const defaultMaxTries = 3

const logSnippetLen = 500

// CausalRelationship is one extracted cause-effect assertion.
type CausalRelationship struct {
	Cause  string `json:"cause" jsonschema_description:"Description of the cause"`
	Effect string `json:"effect" jsonschema_description:"Description of the effect"`
	Why    string `json:"why" jsonschema_description:"Explanation of why the cause leads to the effect, incorporating underlying mechanisms or concepts"`
}

// Result holds the facts extracted from one paper. Absent categories are
// empty collections, never an error.
type Result struct {
	Equations           []string             `json:"equations" jsonschema_description:"Explicitly mentioned equations, by name or descriptive phrase"`
	Methodologies       []string             `json:"methodologies" jsonschema_description:"Specific methodologies mentioned in the text"`
	Technologies        []string             `json:"technologies" jsonschema_description:"Novel technologies mentioned in the text"`
	CausalRelationships []CausalRelationship `json:"causal_relationships" jsonschema_description:"Cause-and-effect relationships identified in the text"`
}

// Client extracts structured facts from paper text. It is a fail-soft
// boundary: any service or parse failure degrades to an empty Result.
type Client struct {
	aiClient ai.PaperAIClient
	maxWords int
	maxTries int
}

// ClientParams configures a new extraction client. Zero values fall back to
// the package defaults.
type ClientParams struct {
	MaxWords int
	MaxTries int
}

// NewClient creates an extraction client over the given AI backend.
func NewClient(aiClient ai.PaperAIClient, params ClientParams) *Client {
	maxWords := params.MaxWords
	if maxWords <= 0 {
		maxWords = defaultMaxWords
	}
	maxTries := params.MaxTries
	if maxTries <= 0 {
		maxTries = defaultMaxTries
	}
	return &Client{
		aiClient: aiClient,
		maxWords: maxWords,
		maxTries: maxTries,
	}
}

// ExtractFacts analyzes text and returns the extracted facts. Input longer
// than the word budget is truncated with a warning. Transient service errors
// are retried; if the service keeps failing or returns something that cannot
// be parsed into the schema, the error is logged and an all-empty Result is
// returned. ExtractFacts never fails the caller.
func (c *Client) ExtractFacts(ctx context.Context, text string) Result {
	text, truncated := util.TruncateWords(text, c.maxWords)
	if truncated {
		logger.Warn("[Extract] Text truncated for model processing",
			"max_words", c.maxWords,
			"model_tokens", countModelTokens(text),
		)
	}

	result, err := util.RetryWithContext(ctx, c.maxTries, func(ctx context.Context) (Result, error) {
		var res Result
		err := c.aiClient.GenerateCompletionWithFormat(
			ctx,
			"extract_scientific_facts",
			"Extract equations, methodologies, technologies and causal relationships from a research paper.",
			text,
			&res,
			ai.WithSystemPrompts(ai.ExtractFactsPrompt),
		)
		return res, err
	})
	if err != nil {
		logger.Error("[Extract] Fact extraction failed, continuing with empty result",
			"err", truncateForLog(err.Error()),
		)
		return Result{}
	}

	return result
}

// countModelTokens reports the tiktoken token count of text for truncation
// diagnostics. Returns -1 when the encoder is unavailable.
func countModelTokens(text string) int {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return -1
	}
	return len(enc.Encode(text, nil, nil))
}

func truncateForLog(s string) string {
	if len(s) <= logSnippetLen {
		return s
	}
	return s[:logSnippetLen] + "..."
}
