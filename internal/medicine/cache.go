// internal/medicine/cache.go
package medicine

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"medassist-workers/internal/common/logger"
	"medassist-workers/internal/models"
)

const cacheKeyPrefix = "medicines:"

// CachedCatalog serves category lookups from Redis, falling through to next
// on a miss. Cache failures are logged and never fail the lookup.
type CachedCatalog struct {
	next   Catalog
	redis  redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedCatalog(next Catalog, client redis.Cmdable, ttl time.Duration, log logger.Logger) *CachedCatalog {
	return &CachedCatalog{
		next:   next,
		redis:  client,
		ttl:    ttl,
		logger: log.With(map[string]interface{}{"component": "medicine-cache"}),
	}
}

func (c *CachedCatalog) ForCategory(ctx context.Context, category models.Category) ([]models.Medicine, error) {
	key := cacheKeyPrefix + string(category)

	raw, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var meds []models.Medicine
		if jsonErr := json.Unmarshal(raw, &meds); jsonErr == nil {
			return meds, nil
		}
		c.logger.Warn("discarding corrupt cache entry", map[string]interface{}{"key": key})
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
	}

	meds, err := c.next.ForCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(meds)
	if err == nil {
		if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}
	return meds, nil
}
