// internal/collaborators/embedding/client_test.go
package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"talent-match-workers/internal/common/config"
	"talent-match-workers/internal/common/errors"
	"talent-match-workers/internal/common/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) config.EmbeddingConfig {
	return config.EmbeddingConfig{
		BaseURL:  baseURL,
		Timeout:  2000,
		CacheTTL: 60,
	}
}

func newTestRedis(t *testing.T) *redis.Client {
	mini := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mini.Addr()})
}

func embeddingServer(t *testing.T, calls *int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/embed", r.URL.Path)

		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.Text)

		json.NewEncoder(w).Encode(embedResponse{Embedding: []float32{0.1, 0.2, 0.3}})
	}))
}

func TestClient_Embed(t *testing.T) {
	var calls int32
	server := embeddingServer(t, &calls)
	defer server.Close()

	client := NewClient(testConfig(server.URL), newTestRedis(t), logger.NewNoOpLogger())

	vector, err := client.Embed(context.Background(), "python engineer")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vector)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_Embed_CacheHit(t *testing.T) {
	var calls int32
	server := embeddingServer(t, &calls)
	defer server.Close()

	client := NewClient(testConfig(server.URL), newTestRedis(t), logger.NewNoOpLogger())

	first, err := client.Embed(context.Background(), "cached text")
	require.NoError(t, err)

	second, err := client.Embed(context.Background(), "cached text")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second call must come from cache")
}

func TestClient_Embed_DistinctTextsDistinctKeys(t *testing.T) {
	var calls int32
	server := embeddingServer(t, &calls)
	defer server.Close()

	client := NewClient(testConfig(server.URL), newTestRedis(t), logger.NewNoOpLogger())

	_, err := client.Embed(context.Background(), "text one")
	require.NoError(t, err)
	_, err = client.Embed(context.Background(), "text two")
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_Embed_CorruptCacheRefetches(t *testing.T) {
	var calls int32
	server := embeddingServer(t, &calls)
	defer server.Close()

	mini := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	client := NewClient(testConfig(server.URL), redisClient, logger.NewNoOpLogger())

	mini.Set(cacheKey("poisoned"), "not-json")

	vector, err := client.Embed(context.Background(), "poisoned")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vector)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_Embed_NoRedis(t *testing.T) {
	var calls int32
	server := embeddingServer(t, &calls)
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil, logger.NewNoOpLogger())

	_, err := client.Embed(context.Background(), "no cache")
	require.NoError(t, err)
	_, err = client.Embed(context.Background(), "no cache")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_Embed_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), newTestRedis(t), logger.NewNoOpLogger())

	_, err := client.Embed(context.Background(), "anything")
	require.Error(t, err)

	var stdErr *errors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeEmbeddingUnavailable, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestClient_Embed_Unreachable(t *testing.T) {
	client := NewClient(testConfig("http://127.0.0.1:1"), newTestRedis(t), logger.NewNoOpLogger())

	_, err := client.Embed(context.Background(), "anything")
	assert.Error(t, err)
}

func TestClient_Embed_EmptyVectorRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(embedResponse{Embedding: nil})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), newTestRedis(t), logger.NewNoOpLogger())

	_, err := client.Embed(context.Background(), "anything")
	assert.Error(t, err)
}

func TestClient_Embed_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(embedResponse{Embedding: []float32{1}})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), newTestRedis(t), logger.NewNoOpLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.Embed(ctx, "slow")
	require.Error(t, err)

	var stdErr *errors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeEmbeddingTimeout, stdErr.Code)
}
