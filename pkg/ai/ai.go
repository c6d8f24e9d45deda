package ai

import (
	"context"
	"sync"
)

// GenerateOptions holds configuration for AI generation requests.
type GenerateOptions struct {
	Model         string   // Model identifier to use for generation
	SystemPrompts []string // System prompts prepended to the request
	Temperature   float64  // Sampling temperature (0.0-2.0)
}

// GenerateOption is a functional option for configuring AI generation requests.
type GenerateOption func(*GenerateOptions)

// WithModel returns a GenerateOption that sets the model to use for generation.
func WithModel(model string) GenerateOption {
	return func(o *GenerateOptions) {
		o.Model = model
	}
}

// WithSystemPrompts returns a GenerateOption that sets the system prompts
// to prepend to the generation request.
func WithSystemPrompts(prompts ...string) GenerateOption {
	return func(o *GenerateOptions) {
		o.SystemPrompts = prompts
	}
}

// WithTemperature returns a GenerateOption that sets the sampling temperature.
// Higher values (e.g., 1.0) produce more random outputs, while lower values
// (e.g., 0.2) make outputs more focused and deterministic.
func WithTemperature(temp float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.Temperature = temp
	}
}

// ModelMetrics contains accumulated usage metrics from AI model operations.
type ModelMetrics struct {
	InputTokens  int   `json:"input_tokens"`
	OutputTokens int   `json:"output_tokens"`
	TotalTokens  int   `json:"total_tokens"`
	DurationMs   int64 `json:"duration_ms"`
}

// MetricsRecorder accumulates ModelMetrics across requests. Embedded by the
// client implementations so metric bookkeeping lives in one place.
type MetricsRecorder struct {
	mu      sync.Mutex
	metrics ModelMetrics
}

// Record adds the metrics of a single request to the running totals.
func (m *MetricsRecorder) Record(metrics ModelMetrics) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metrics.InputTokens += metrics.InputTokens
	m.metrics.OutputTokens += metrics.OutputTokens
	m.metrics.TotalTokens += metrics.TotalTokens
	m.metrics.DurationMs += metrics.DurationMs
}

// GetMetrics returns the accumulated metrics.
func (m *MetricsRecorder) GetMetrics() ModelMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.metrics
}

// ResetMetrics zeroes the accumulated metrics.
func (m *MetricsRecorder) ResetMetrics() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metrics = ModelMetrics{}
}

// PaperAIClient defines the interface for the text-understanding service used
// during fact extraction. Implementations handle plain and structured
// completions against a chat-completion style API.
type PaperAIClient interface {
	GenerateCompletion(
		ctx context.Context,
		prompt string,
		opts ...GenerateOption,
	) (string, error)
	GenerateCompletionWithFormat(
		ctx context.Context,
		name string,
		description string,
		prompt string,
		out any,
		opts ...GenerateOption,
	) error

	ResetMetrics()
	GetMetrics() ModelMetrics
}
