package provider

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"barkwise/models"
	"barkwise/utils"
)

// cachedProfile is the cache envelope. Reviews are excluded from the
// provider's own JSON form, so they travel as a sibling field.
type cachedProfile struct {
	Provider *models.Provider `json:"provider"`
	Reviews  []models.Review  `json:"reviews,omitempty"`
}

// cachedProvider returns the cached profile document, or nil on a miss or
// when caching is disabled. Social proof and distance are never cached;
// callers recompute them per request.
func (s *DefaultProviderService) cachedProvider(id string) *models.Provider {
	if s.Cache == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := s.Cache.Get(ctx, utils.ProviderCachePrefix+id).Result()
	if err != nil {
		if err != redis.Nil {
			utils.GetLogger().Debug("cachedProvider: cache read failed",
				zap.Error(err), zap.String("providerID", id))
		}
		return nil
	}
	var profile cachedProfile
	if err := json.Unmarshal([]byte(data), &profile); err != nil || profile.Provider == nil {
		utils.GetLogger().Warn("cachedProvider: dropping corrupt cache entry",
			zap.String("providerID", id))
		utils.InvalidateProviderProfile(s.Cache, id)
		return nil
	}
	profile.Provider.Reviews = profile.Reviews
	return profile.Provider
}

func (s *DefaultProviderService) cacheProvider(p *models.Provider) {
	if s.Cache == nil || p == nil {
		return
	}
	data, err := json.Marshal(cachedProfile{Provider: p, Reviews: p.Reviews})
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.Cache.Set(ctx, utils.ProviderCachePrefix+p.ID, data, utils.ProviderCacheTTL).Err(); err != nil {
		utils.GetLogger().Debug("cacheProvider: cache write failed",
			zap.Error(err), zap.String("providerID", p.ID))
	}
}

func (s *DefaultProviderService) invalidate(id string) {
	utils.InvalidateProviderProfile(s.Cache, id)
}
