package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"
	"go.uber.org/zap"
)

const defaultCacheTTL = 24 * time.Hour

// CachedSource keeps the encoded dataset in a process-wide cache so that
// calendars for different divisions share one download
type CachedSource struct {
	source HolidaySource
	key    string
	cache  *bigcache.BigCache
	logger *zap.Logger
}

// NewCachedSource wraps source; key identifies the dataset (usually its URL)
func NewCachedSource(source HolidaySource, key string, ttl time.Duration, logger *zap.Logger) (*CachedSource, error) {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	// one dataset per key, a few hundred KB at most
	config := bigcache.DefaultConfig(ttl)
	config.Shards = 2
	config.MaxEntriesInWindow = 2
	config.MaxEntrySize = 128 * 1024
	config.HardMaxCacheSize = 8 // MB
	config.Verbose = false

	cache, err := bigcache.New(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize holiday cache: %w", err)
	}

	return &CachedSource{
		source: source,
		key:    key,
		cache:  cache,
		logger: logger,
	}, nil
}

// Fetch returns the cached dataset or fetches it through the wrapped source
func (c *CachedSource) Fetch() (Dataset, error) {
	data, err := c.cache.Get(c.key)
	switch {
	case err == nil:
		dataset, decodeErr := decodeDataset(data)
		if decodeErr == nil {
			c.logger.Debug("Using cached holiday dataset", zap.String("key", c.key))
			return dataset, nil
		}
		c.logger.Warn("Discarding unreadable cached dataset",
			zap.String("key", c.key),
			zap.Error(decodeErr))
	case !errors.Is(err, bigcache.ErrEntryNotFound):
		c.logger.Warn("Holiday cache lookup failed",
			zap.String("key", c.key),
			zap.Error(err))
	}

	dataset, err := c.source.Fetch()
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(dataset)
	if err != nil {
		c.logger.Warn("Failed to encode holiday dataset for cache", zap.Error(err))
		return dataset, nil
	}
	if err := c.cache.Set(c.key, encoded); err != nil {
		c.logger.Warn("Failed to cache holiday dataset",
			zap.String("key", c.key),
			zap.Error(err))
	}

	return dataset, nil
}

// ClearCache drops the cached dataset
func (c *CachedSource) ClearCache() error {
	if err := c.cache.Reset(); err != nil {
		return fmt.Errorf("failed to clear holiday cache: %w", err)
	}
	c.logger.Info("Holiday cache cleared")
	return nil
}

// Close releases the cache
func (c *CachedSource) Close() error {
	return c.cache.Close()
}
