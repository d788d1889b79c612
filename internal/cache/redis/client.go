package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cs-copilot/backend/internal/analysis"
	"github.com/cs-copilot/backend/internal/metrics"
	"github.com/cs-copilot/backend/pkg/logger"
	"github.com/cs-copilot/backend/pkg/utils"
)

// Client caches analysis results keyed by a hash of the email body and
// the full customer profile. Deterministic post-processing stays cheap
// enough to recompute, so only the LLM-backed analysis is cached.
type Client struct {
	client *redis.Client
	ttl    time.Duration
}

func NewClient(host string, port int, password string, db, ttlSec int) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	if ttlSec <= 0 {
		ttlSec = 3600
	}

	logger.Info("Redis client initialized", zap.String("addr", fmt.Sprintf("%s:%d", host, port)))

	return &Client{
		client: client,
		ttl:    time.Duration(ttlSec) * time.Second,
	}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Key derives the cache key from the email body and the full customer
// profile. The cached result embeds profile-derived context, so two
// requests may only share a key when every profile field matches.
func Key(email string, profile *analysis.CustomerProfile) string {
	payload := email
	if profile != nil {
		if data, err := json.Marshal(profile); err == nil {
			payload += "|" + string(data)
		}
	}
	return utils.HashString(payload)
}

func (c *Client) SetAnalysis(ctx context.Context, key string, result *analysis.AnalysisResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	if err := c.client.Set(ctx, "analysis:"+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set analysis cache: %w", err)
	}

	logger.Debug("Analysis cached", zap.String("key", key))
	return nil
}

func (c *Client) GetAnalysis(ctx context.Context, key string) (*analysis.AnalysisResult, bool, error) {
	data, err := c.client.Get(ctx, "analysis:"+key).Bytes()
	if err == redis.Nil {
		metrics.CacheMisses.WithLabelValues("analysis").Inc()
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get analysis cache: %w", err)
	}

	var result analysis.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal analysis: %w", err)
	}

	metrics.CacheHits.WithLabelValues("analysis").Inc()
	logger.Debug("Analysis cache hit", zap.String("key", key))
	return &result, true, nil
}
