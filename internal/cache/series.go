package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ridvanpektas1990-bit/amz/internal/config"
	"github.com/ridvanpektas1990-bit/amz/internal/domain"
)

const (
	weeklySeriesKeyPrefix = "sales:weekly"
	scanBatchSize         = 100
	defaultSeriesTTL      = 5 * time.Minute
)

type WeeklySeriesCache interface {
	GetSeries(ctx context.Context, filter *domain.SalesFilter) (*domain.WeeklySeries, bool, error)
	SetSeries(ctx context.Context, filter *domain.SalesFilter, series *domain.WeeklySeries) error
	InvalidateTenant(ctx context.Context, tenantID string) error
}

type redisSeriesCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopSeriesCache struct{}

func NewWeeklySeriesCache(cfg config.CacheConfig) (WeeklySeriesCache, error) {
	if !cfg.Enabled {
		return &noopSeriesCache{}, nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.SeriesTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultSeriesTTL
	}

	return &redisSeriesCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopWeeklySeriesCache() WeeklySeriesCache {
	return &noopSeriesCache{}
}

func (c *redisSeriesCache) GetSeries(ctx context.Context, filter *domain.SalesFilter) (*domain.WeeklySeries, bool, error) {
	key := buildSeriesKey(filter)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var series domain.WeeklySeries
	if err := json.Unmarshal(payload, &series); err != nil {
		return nil, false, fmt.Errorf("decode weekly series cache: %w", err)
	}

	return &series, true, nil
}

func (c *redisSeriesCache) SetSeries(ctx context.Context, filter *domain.SalesFilter, series *domain.WeeklySeries) error {
	key := buildSeriesKey(filter)
	payload, err := json.Marshal(series)
	if err != nil {
		return fmt.Errorf("encode weekly series cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

// InvalidateTenant drops every cached series for a tenant. Called after a
// backfill rewrites the tenant's demand facts.
func (c *redisSeriesCache) InvalidateTenant(ctx context.Context, tenantID string) error {
	pattern := weeklySeriesKeyPrefix + ":" + tenantID + ":*"

	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete failed: %w", err)
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return nil
}

func (n *noopSeriesCache) GetSeries(ctx context.Context, filter *domain.SalesFilter) (*domain.WeeklySeries, bool, error) {
	return nil, false, nil
}

func (n *noopSeriesCache) SetSeries(ctx context.Context, filter *domain.SalesFilter, series *domain.WeeklySeries) error {
	return nil
}

func (n *noopSeriesCache) InvalidateTenant(ctx context.Context, tenantID string) error {
	return nil
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}

	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

func buildSeriesKey(filter *domain.SalesFilter) string {
	raw := strings.Join([]string{
		"sku=" + filter.SKU,
		"year=" + strconv.Itoa(filter.Year),
	}, "|")
	hash := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s:%s", weeklySeriesKeyPrefix, filter.TenantID, hex.EncodeToString(hash[:]))
}
