package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/notedex/internal/domain"
	"github.com/kailas-cloud/notedex/internal/domain/semantic"
	"github.com/kailas-cloud/notedex/internal/metrics"
)

// Scorer rates query text against vocabulary tags using embeddings from an
// OpenAI-compatible API. Tag phrase vectors are embedded once and cached
// for the process lifetime; only the query text is embedded per request.
type Scorer struct {
	client  *openai.Client
	model   openai.EmbeddingModel
	timeout time.Duration
	logger  *zap.Logger

	mu         sync.Mutex
	tagVectors map[semantic.Tag][]float32
}

// Config holds the similarity provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewScorer creates an OpenAI-compatible similarity scorer.
func NewScorer(cfg *Config) *Scorer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Scorer{
		client:     openai.NewClientWithConfig(clientCfg),
		model:      openai.EmbeddingModel(cfg.Model),
		timeout:    cfg.Timeout,
		logger:     cfg.Logger,
		tagVectors: make(map[semantic.Tag][]float32),
	}
}

// Score implements semantic.Similarity. It embeds the text together with
// any tag phrases missing from the cache in a single API call and returns
// per-tag cosine similarity scaled into [0, MaxSimilarityWeight].
func (s *Scorer) Score(ctx context.Context, text string, tags []semantic.Tag) (map[semantic.Tag]float64, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.mu.Lock()
	var missing []semantic.Tag
	for _, tag := range tags {
		if _, ok := s.tagVectors[tag]; !ok {
			missing = append(missing, tag)
		}
	}
	s.mu.Unlock()

	input := make([]string, 0, len(missing)+1)
	input = append(input, text)
	for _, tag := range missing {
		input = append(input, tagPhrase(tag))
	}

	start := time.Now()
	resp, err := s.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:          input,
		Model:          s.model,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	})
	if err != nil {
		metrics.SimilarityRequestsTotal.WithLabelValues("error").Inc()
		return nil, parseAPIError(err)
	}
	if len(resp.Data) != len(input) {
		metrics.SimilarityRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("embedding response has %d vectors for %d inputs: %w",
			len(resp.Data), len(input), domain.ErrSemanticUnavailable)
	}
	metrics.SimilarityRequestsTotal.WithLabelValues("success").Inc()

	if s.logger != nil {
		s.logger.Debug("similarity embeddings fetched",
			zap.Int("inputs", len(input)),
			zap.Duration("duration", time.Since(start)))
	}

	textVec := resp.Data[0].Embedding

	s.mu.Lock()
	for i, tag := range missing {
		s.tagVectors[tag] = resp.Data[i+1].Embedding
	}
	scores := make(map[semantic.Tag]float64, len(tags))
	for _, tag := range tags {
		vec, ok := s.tagVectors[tag]
		if !ok {
			continue
		}
		sim := cosine(textVec, vec)
		if sim <= 0 {
			continue
		}
		scores[tag] = sim * semantic.MaxSimilarityWeight
	}
	s.mu.Unlock()

	return scores, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (s *Scorer) HealthCheck(ctx context.Context) error {
	if _, err := s.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// tagPhrase renders a vocabulary tag as natural text for embedding.
func tagPhrase(tag semantic.Tag) string {
	return strings.ReplaceAll(string(tag), "_", " ")
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrSemanticUnavailable so callers can
// degrade to lexical-only tagging.
func parseAPIError(err error) error {
	wrap := domain.ErrSemanticUnavailable

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail != "" {
			return fmt.Errorf("similarity API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("similarity API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("similarity API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("similarity request failed: %w", wrap)
}

// extractDetail pulls the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
