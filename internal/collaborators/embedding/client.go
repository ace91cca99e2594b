// internal/collaborators/embedding/client.go
package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"talent-match-workers/internal/common/config"
	"talent-match-workers/internal/common/errors"
	"talent-match-workers/internal/common/http"
	"talent-match-workers/internal/common/logger"
	"talent-match-workers/internal/common/metrics"

	"github.com/redis/go-redis/v9"
)

// Client calls the sentence-embedding service and caches vectors in Redis,
// keyed by the SHA-256 of the input text. Implements matching.EmbeddingProvider.
type Client struct {
	http     *http.Client
	redis    *redis.Client
	baseURL  string
	cacheTTL time.Duration
	logger   logger.Logger
}

type embedRequest struct {
	Text string `json:"text"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

func NewClient(cfg config.EmbeddingConfig, redisClient *redis.Client, log logger.Logger) *Client {
	httpClient := http.NewClient(time.Duration(cfg.Timeout) * time.Millisecond)
	if cfg.APIKey != "" {
		httpClient.SetBearerToken(cfg.APIKey)
	}
	return &Client{
		http:     httpClient,
		redis:    redisClient,
		baseURL:  cfg.BaseURL,
		cacheTTL: time.Duration(cfg.CacheTTL) * time.Second,
		logger:   log.WithFields(map[string]interface{}{"component": "embedding-client"}),
	}
}

// Embed returns the dense vector for text, serving from cache when possible.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	key := cacheKey(text)

	if vector, ok := c.fromCache(ctx, key); ok {
		metrics.EmbeddingCacheHits.WithLabelValues("hit").Inc()
		return vector, nil
	}
	metrics.EmbeddingCacheHits.WithLabelValues("miss").Inc()

	vector, err := c.fetch(ctx, text)
	if err != nil {
		return nil, err
	}

	c.toCache(ctx, key, vector)
	return vector, nil
}

func (c *Client) fetch(ctx context.Context, text string) ([]float32, error) {
	var parsed embedResponse
	if err := c.http.PostJSON(ctx, c.baseURL+"/embed", embedRequest{Text: text}, &parsed); err != nil {
		if ctx.Err() != nil {
			return nil, errors.NewEmbeddingTimeoutError()
		}
		return nil, errors.NewEmbeddingUnavailableError(err)
	}
	if len(parsed.Embedding) == 0 {
		return nil, errors.NewEmbeddingUnavailableError(fmt.Errorf("embedding service returned empty vector"))
	}

	return parsed.Embedding, nil
}

func (c *Client) fromCache(ctx context.Context, key string) ([]float32, bool) {
	if c.redis == nil {
		return nil, false
	}

	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var vector []float32
	if err := json.Unmarshal(data, &vector); err != nil {
		c.logger.Warn("corrupt cached vector, refetching", map[string]interface{}{
			"key":   key,
			"error": err,
		})
		return nil, false
	}
	return vector, true
}

func (c *Client) toCache(ctx context.Context, key string, vector []float32) {
	if c.redis == nil {
		return
	}

	data, err := json.Marshal(vector)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.cacheTTL).Err(); err != nil {
		c.logger.Warn("failed to cache vector", map[string]interface{}{
			"key":   key,
			"error": err,
		})
	}
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "embedding:vector:" + hex.EncodeToString(sum[:])
}
