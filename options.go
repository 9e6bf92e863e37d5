package medkb

import (
	"time"

	"go.uber.org/zap"
)

// Option configures an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	logger *zap.Logger

	oracleAPIKey         string
	oracleBaseURL        string
	oracleEmbeddingModel string
	oracleChatModel      string

	cacheAddrs    []string
	cachePassword string
	cacheTTL      time.Duration

	knowledgePath  string
	topK           int
	maxConcurrency int
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) { c.logger = logger }
}

// WithOpenAI enables the oracle via an OpenAI-compatible API. Without this
// option every capability runs on the deterministic path.
func WithOpenAI(apiKey, baseURL, embeddingModel, chatModel string) Option {
	return func(c *engineConfig) {
		c.oracleAPIKey = apiKey
		c.oracleBaseURL = baseURL
		c.oracleEmbeddingModel = embeddingModel
		c.oracleChatModel = chatModel
	}
}

// WithRedisCache caches oracle embeddings in Redis with the given TTL.
func WithRedisCache(addrs []string, password string, ttl time.Duration) Option {
	return func(c *engineConfig) {
		c.cacheAddrs = addrs
		c.cachePassword = password
		c.cacheTTL = ttl
	}
}

// WithKnowledgeFile overrides the built-in clinical reference tables with
// a YAML file.
func WithKnowledgeFile(path string) Option {
	return func(c *engineConfig) { c.knowledgePath = path }
}

// WithTopK sets the retrieval depth for Ask. Default 5.
func WithTopK(k int) Option {
	return func(c *engineConfig) { c.topK = k }
}

// WithMaxConcurrency bounds chunk vectorization and timeline extraction
// fan-out. Default 4.
func WithMaxConcurrency(n int) Option {
	return func(c *engineConfig) { c.maxConcurrency = n }
}
