package ollama

import (
	"net/http"
	"net/url"

	"papergraph/pkg/ai"

	"github.com/ollama/ollama/api"
)

// PaperOllamaClient implements the ai.PaperAIClient interface using Ollama as
// the backend, for running fact extraction against locally-hosted models.
type PaperOllamaClient struct {
	extractionModel string

	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client

	ai.MetricsRecorder

	Client *api.Client
}

// NewPaperOllamaClientParams contains configuration options for creating a new PaperOllamaClient.
type NewPaperOllamaClientParams struct {
	ExtractionModel string

	BaseURL string
	ApiKey  string
}

type headerTransport struct {
	headers map[string]string
	rt      http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so original request isn't modified
	r := req.Clone(req.Context())
	for k, v := range t.headers {
		// don't overwrite if already set
		if r.Header.Get(k) == "" {
			r.Header.Set(k, v)
		}
	}
	return t.rt.RoundTrip(r)
}

// NewPaperOllamaClient creates a new Ollama-based AI client with the specified
// configuration. It connects to the Ollama server at the given BaseURL (or the
// default if empty) and uses the configured model for extraction.
func NewPaperOllamaClient(
	params NewPaperOllamaClientParams,
) (*PaperOllamaClient, error) {
	var (
		u   *url.URL
		err error
	)

	if params.BaseURL != "" {
		u, err = url.Parse(params.BaseURL)
		if err != nil {
			return nil, err
		}
	}

	httpClient := &http.Client{
		Transport: &headerTransport{
			headers: map[string]string{
				"Authorization": "Bearer " + params.ApiKey,
			},
			rt: http.DefaultTransport,
		},
	}

	cli := api.NewClient(u, httpClient)

	return &PaperOllamaClient{
		extractionModel: params.ExtractionModel,

		baseURL:    u,
		apiKey:     params.ApiKey,
		httpClient: httpClient,

		Client: cli,
	}, nil
}
