// Package openai adapts an OpenAI-compatible API to the oracle contracts:
// embeddings, timeline-event extraction, narrative text, and secondary
// drug-pair checks.
package openai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kaira-health/medkb/internal/domain"
	"github.com/kaira-health/medkb/internal/metrics"
)

// Oracle is the OpenAI-backed implementation of every oracle capability.
type Oracle struct {
	client         *openai.Client
	embeddingModel openai.EmbeddingModel
	chatModel      string
	logger         *zap.Logger
}

// Config holds the oracle provider settings.
type Config struct {
	APIKey         string
	BaseURL        string
	EmbeddingModel string
	ChatModel      string
	Timeout        time.Duration
	Logger         *zap.Logger
}

// New creates an OpenAI-compatible oracle client.
func New(cfg *Config) *Oracle {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Oracle{
		client:         openai.NewClientWithConfig(clientCfg),
		embeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		chatModel:      cfg.ChatModel,
		logger:         cfg.Logger,
	}
}

// Embed implements domain.Embedder via the embeddings endpoint. The
// request pins the fixed dimension so oracle vectors stay comparable with
// fallback vectors.
func (o *Oracle) Embed(ctx context.Context, text string) ([]float32, error) {
	req := openai.EmbeddingRequest{
		Input:          []string{text},
		Model:          o.embeddingModel,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
		Dimensions:     domain.EmbeddingDimensions,
	}

	start := time.Now()
	resp, err := o.client.CreateEmbeddings(ctx, req)
	duration := time.Since(start)

	if err != nil {
		metrics.OracleRequestsTotal.WithLabelValues("embed", "error").Inc()
		return nil, parseAPIError("embed", err)
	}
	if len(resp.Data) == 0 {
		metrics.OracleRequestsTotal.WithLabelValues("embed", "error").Inc()
		return nil, fmt.Errorf("empty embedding response: %w", domain.ErrOracleUnavailable)
	}

	metrics.OracleRequestsTotal.WithLabelValues("embed", "success").Inc()
	metrics.OracleRequestDuration.WithLabelValues("embed").Observe(duration.Seconds())
	return resp.Data[0].Embedding, nil
}

const eventsSystemPrompt = `You extract clinical events from medical document text.
Respond with a JSON array only, no prose. Each element:
{"date":"YYYY-MM-DD","description":"...","type":"...","value":"...","doctor":"...","hospital":"..."}
type must be one of: medication, diagnosis, lab_result, vital_signs, procedure, visit.
Omit events you cannot date; use the document date for undated findings.`

// GenerateEvents implements domain.EventGenerator. The raw completion is
// validated strictly; any malformed element rejects the whole batch.
func (o *Oracle) GenerateEvents(ctx context.Context, documentText string, documentDate time.Time) ([]domain.TimelineEvent, error) {
	prompt := fmt.Sprintf("Document date: %s\n\n%s", documentDate.Format("2006-01-02"), documentText)

	raw, err := o.complete(ctx, "events", eventsSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	events, err := domain.ParseOracleEvents([]byte(raw), "")
	if err != nil {
		o.logger.Warn("oracle returned malformed events", zap.Error(err))
		return nil, err
	}
	return events, nil
}

const textSystemPrompt = `You are a careful clinical writing assistant.
Restate only the facts you are given; never add diagnoses, values, or advice of your own.`

// GenerateText implements domain.TextGenerator.
func (o *Oracle) GenerateText(ctx context.Context, prompt string) (string, error) {
	return o.complete(ctx, "text", textSystemPrompt, prompt)
}

const pairSystemPrompt = `You check whether two drugs have a clinically relevant interaction.
Respond with JSON only: {"interacts":true|false,"severity":"mild|moderate|severe|contraindicated","effect":"...","management":"..."}.
When unsure, respond {"interacts":false}.`

// CheckPair asks the oracle whether two drugs interact. A negative or
// unparseable verdict yields (nil, error-or-nil) so the caller never
// treats oracle noise as a finding.
func (o *Oracle) CheckPair(ctx context.Context, drugA, drugB string) (*domain.DrugInteraction, error) {
	raw, err := o.complete(ctx, "pair_check", pairSystemPrompt, fmt.Sprintf("Drug A: %s\nDrug B: %s", drugA, drugB))
	if err != nil {
		return nil, err
	}

	verdict, err := parsePairVerdict(raw, drugA, drugB)
	if err != nil {
		o.logger.Warn("oracle returned malformed pair verdict",
			zap.String("drug_a", drugA),
			zap.String("drug_b", drugB),
			zap.Error(err),
		)
		return nil, err
	}
	return verdict, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (o *Oracle) HealthCheck(ctx context.Context) error {
	if _, err := o.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", parseAPIError("health", err))
	}
	return nil
}

// complete runs one chat completion and returns the first choice.
func (o *Oracle) complete(ctx context.Context, capability, system, user string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: o.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}

	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		metrics.OracleRequestsTotal.WithLabelValues(capability, "error").Inc()
		return "", parseAPIError(capability, err)
	}
	if len(resp.Choices) == 0 {
		metrics.OracleRequestsTotal.WithLabelValues(capability, "error").Inc()
		return "", fmt.Errorf("empty completion response: %w", domain.ErrOracleUnavailable)
	}

	metrics.OracleRequestsTotal.WithLabelValues(capability, "success").Inc()
	metrics.OracleRequestDuration.WithLabelValues(capability).Observe(duration.Seconds())
	return resp.Choices[0].Message.Content, nil
}
