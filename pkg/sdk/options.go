package notedex

import (
	"time"

	"go.uber.org/zap"
)

type clientConfig struct {
	driver    string
	addrs     []string
	password  string
	keyPrefix string

	defaultPageSize int
	maxPageSize     int
	resultLimit     int

	semanticAPIKey  string
	semanticBaseURL string
	semanticModel   string
	semanticTimeout time.Duration

	logger *zap.Logger
}

// Option configures the client.
type Option func(*clientConfig)

// WithMemory uses the in-process store. Data does not survive the client.
func WithMemory() Option {
	return func(c *clientConfig) { c.driver = "memory" }
}

// WithRedis connects to a Redis-compatible store.
func WithRedis(addr, password string) Option {
	return func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithKeyPrefix overrides the storage key prefix (default "notedex:").
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) { c.keyPrefix = prefix }
}

// WithResultLimit caps search result lists. Zero means unlimited.
func WithResultLimit(limit int) Option {
	return func(c *clientConfig) { c.resultLimit = limit }
}

// WithPagination overrides the list page size bounds.
func WithPagination(defaultSize, maxSize int) Option {
	return func(c *clientConfig) {
		c.defaultPageSize = defaultSize
		c.maxPageSize = maxSize
	}
}

// WithSimilarity enables embedding-based semantic gap fill through an
// OpenAI-compatible API. Without it, tagging is lexical-only.
func WithSimilarity(apiKey, baseURL, model string) Option {
	return func(c *clientConfig) {
		c.semanticAPIKey = apiKey
		c.semanticBaseURL = baseURL
		c.semanticModel = model
	}
}

// WithSimilarityTimeout bounds each similarity API call.
func WithSimilarityTimeout(d time.Duration) Option {
	return func(c *clientConfig) { c.semanticTimeout = d }
}

// WithLogger attaches a zap logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) { c.logger = logger }
}
