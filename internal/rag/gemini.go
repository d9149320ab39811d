// Package rag implements retrieval-augmented generation over the local movie
// index: embedding, retrieval, prompting and ingestion.
package rag

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	json "github.com/goccy/go-json"

	"github.com/amaumene/gostreamfinder/internal/config"
	"github.com/amaumene/gostreamfinder/internal/constants"
	apperrors "github.com/amaumene/gostreamfinder/internal/errors"
	"github.com/amaumene/gostreamfinder/internal/metrics"
	"github.com/amaumene/gostreamfinder/pkg/httputil"
	"github.com/amaumene/gostreamfinder/pkg/logger"
	"github.com/amaumene/gostreamfinder/pkg/ratelimiter"
	"github.com/amaumene/gostreamfinder/pkg/security"
)

// Embedding task types understood by the embedding model.
const (
	taskRetrievalQuery    = "RETRIEVAL_QUERY"
	taskRetrievalDocument = "RETRIEVAL_DOCUMENT"
)

// Generator produces a text completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Embedder turns text into vectors.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
}

var (
	_ Generator = (*GeminiClient)(nil)
	_ Embedder  = (*GeminiClient)(nil)
)

// GeminiClient talks to the Generative Language REST API.
type GeminiClient struct {
	apiKey         string
	baseURL        string
	model          string
	embeddingModel string
	httpClient     *http.Client
	rateLimiter    ratelimiter.RateLimiter
	logger         logger.Logger

	retryAttempts uint
	retryDelay    time.Duration
}

// NewGemini builds a client from configuration. A nil httpClient or limiter is
// replaced by one derived from cfg.
func NewGemini(cfg config.GeminiConfig, httpClient *http.Client, limiter ratelimiter.RateLimiter, log logger.Logger) (*GeminiClient, error) {
	keys := security.NewAPIKeyValidator()

	apiKey := keys.SanitizeAPIKey(cfg.APIKey)
	if apiKey == "" {
		return nil, apperrors.NewMissingCredentialError("GEMINI_API_KEY")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = constants.GeminiBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = constants.DefaultGeminiModel
	}
	embeddingModel := cfg.EmbeddingModel
	if embeddingModel == "" {
		embeddingModel = constants.DefaultEmbeddingModel
	}
	if httpClient == nil {
		httpClient = httputil.NewHTTPClient(cfg.Timeout)
	}
	if limiter == nil {
		limiter = ratelimiter.NewTokenBucket(constants.GeminiRateBurst, constants.GeminiRateLimit)
	}
	if log == nil {
		log = logger.NewNop()
	}

	log.Debugf("[Gemini] client configured for %s (model: %s, embeddings: %s, key: %s)",
		baseURL, model, embeddingModel, keys.MaskAPIKey(apiKey))

	return &GeminiClient{
		apiKey:         apiKey,
		baseURL:        baseURL,
		model:          model,
		embeddingModel: embeddingModel,
		httpClient:     httpClient,
		rateLimiter:    limiter,
		logger:         log,
		retryAttempts:  constants.GeminiRetryAttempts,
		retryDelay:     constants.GeminiRetryDelay,
	}, nil
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type generateRequest struct {
	Contents []geminiContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

type embedRequest struct {
	Model    string        `json:"model"`
	Content  geminiContent `json:"content"`
	TaskType string        `json:"taskType,omitempty"`
}

type embedValues struct {
	Values []float32 `json:"values"`
}

type embedResponse struct {
	Embedding embedValues `json:"embedding"`
}

type batchEmbedRequest struct {
	Requests []embedRequest `json:"requests"`
}

type batchEmbedResponse struct {
	Embeddings []embedValues `json:"embeddings"`
}

// Generate returns the text of the first candidate.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	text, err := g.generate(ctx, prompt)
	metrics.RecordLLMRequest("generate", err, time.Since(start))
	return text, err
}

func (g *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	body := generateRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
	}

	var resp generateResponse
	if err := g.post(ctx, "generate", g.model+":generateContent", body, &resp); err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", apperrors.NewGenerationError("model returned no candidates", nil)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}

// EmbedQuery embeds a search query.
func (g *GeminiClient) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	start := time.Now()
	vec, err := g.embed(ctx, text)
	metrics.RecordLLMRequest("embed", err, time.Since(start))
	return vec, err
}

func (g *GeminiClient) embed(ctx context.Context, text string) ([]float32, error) {
	body := g.embedRequest(text, taskRetrievalQuery)

	var resp embedResponse
	if err := g.post(ctx, "embed", g.embeddingModel+":embedContent", body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Embedding.Values) == 0 {
		return nil, apperrors.NewGenerationError("embedding response was empty", nil)
	}
	return resp.Embedding.Values, nil
}

// EmbedDocuments embeds texts in batches of at most MaxEmbedBatchSize and
// returns one vector per text, in order.
func (g *GeminiClient) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += constants.MaxEmbedBatchSize {
		end := min(start+constants.MaxEmbedBatchSize, len(texts))

		began := time.Now()
		batch, err := g.embedBatch(ctx, texts[start:end])
		metrics.RecordLLMRequest("embed_batch", err, time.Since(began))
		if err != nil {
			return nil, fmt.Errorf("embedding documents %d-%d: %w", start, end-1, err)
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}

func (g *GeminiClient) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	body := batchEmbedRequest{Requests: make([]embedRequest, len(texts))}
	for i, text := range texts {
		body.Requests[i] = g.embedRequest(text, taskRetrievalDocument)
	}

	var resp batchEmbedResponse
	if err := g.post(ctx, "embed_batch", g.embeddingModel+":batchEmbedContents", body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, apperrors.NewGenerationError(
			fmt.Sprintf("expected %d embeddings, got %d", len(texts), len(resp.Embeddings)), nil)
	}

	vectors := make([][]float32, len(resp.Embeddings))
	for i, e := range resp.Embeddings {
		vectors[i] = e.Values
	}
	return vectors, nil
}

func (g *GeminiClient) embedRequest(text, taskType string) embedRequest {
	return embedRequest{
		Model:    "models/" + g.embeddingModel,
		Content:  geminiContent{Parts: []geminiPart{{Text: text}}},
		TaskType: taskType,
	}
}

// post sends a JSON body to models/{method} and decodes a 200 response.
// 429 and 5xx responses and transport errors are retried with backoff; other
// statuses fail immediately.
func (g *GeminiClient) post(ctx context.Context, operation, method string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", operation, err)
	}
	endpoint := fmt.Sprintf("%s/models/%s", g.baseURL, method)

	return retry.Do(
		func() error {
			if err := g.rateLimiter.Wait(ctx); err != nil {
				return retry.Unrecoverable(apperrors.NewUpstreamError("Gemini", operation+" rate limit wait aborted", err))
			}

			req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
			if err != nil {
				return retry.Unrecoverable(apperrors.NewUpstreamError("Gemini", "failed to build request", err))
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("x-goog-api-key", g.apiKey)

			resp, err := g.httpClient.Do(req)
			if err != nil {
				return apperrors.NewUpstreamError("Gemini", operation+" request failed", err)
			}
			defer resp.Body.Close()

			switch {
			case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
				return apperrors.NewUpstreamStatusError("Gemini", resp.StatusCode)
			case resp.StatusCode != http.StatusOK:
				return retry.Unrecoverable(apperrors.NewUpstreamStatusError("Gemini", resp.StatusCode))
			}

			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return retry.Unrecoverable(apperrors.NewUpstreamError("Gemini", "failed to decode "+operation+" response", err))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(g.retryAttempts),
		retry.Delay(g.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			g.logger.Warnf("[Gemini] %s attempt %d/%d failed: %v", operation, n+1, g.retryAttempts, err)
		}),
	)
}
