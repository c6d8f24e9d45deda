package openai

import (
	"papergraph/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// PaperOpenAIClient is a client for the chat-completion service used during
// fact extraction. It speaks the OpenAI wire protocol, which also covers
// OpenRouter and other compatible providers via a custom base URL.
//
// A PaperOpenAIClient should be created using NewPaperOpenAIClient.
type PaperOpenAIClient struct {
	extractionModel string

	chatURL string
	chatKey string

	ai.MetricsRecorder

	ChatClient *openai.Client
}

// NewPaperOpenAIClientParams defines the configuration parameters for creating
// a new PaperOpenAIClient.
//
// ExtractionModel specifies the model used for information extraction.
// ChatURL and ChatKey configure the chat/completion API endpoint; an empty
// ChatURL falls back to the official OpenAI endpoint.
type NewPaperOpenAIClientParams struct {
	ExtractionModel string

	ChatURL string
	ChatKey string
}

// NewPaperOpenAIClient creates and returns a new PaperOpenAIClient configured
// with the provided parameters.
//
// Example:
//
//	params := openai.NewPaperOpenAIClientParams{
//		ExtractionModel: "mistralai/mixtral-8x7b-instruct",
//		ChatURL:         "https://openrouter.ai/api/v1",
//		ChatKey:         os.Getenv("OPENROUTER_API_KEY"),
//	}
//	client := openai.NewPaperOpenAIClient(params)
func NewPaperOpenAIClient(
	params NewPaperOpenAIClientParams,
) *PaperOpenAIClient {
	chatClient := newOpenaiClient(params.ChatURL, params.ChatKey)

	return &PaperOpenAIClient{
		extractionModel: params.ExtractionModel,

		chatURL: params.ChatURL,
		chatKey: params.ChatKey,

		ChatClient: chatClient,
	}
}

func newOpenaiClient(
	baseURL string,
	apiKey string,
) *openai.Client {
	if apiKey == "" {
		return nil
	}
	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}

	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(options...)

	return &client
}
