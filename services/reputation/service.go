package reputation

import (
	"fmt"
	"sync"

	providerRepo "barkwise/database/repository/provider"
	quoteRepo "barkwise/database/repository/quote"
	"barkwise/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ReputationService recomputes a provider's derived reputation fields
// from their full quote-target history.
type ReputationService interface {
	Recompute(providerID string) (Stats, error)
}

// DefaultReputationService is the production implementation. Cache may be
// nil; when set, the provider's cached profile is invalidated after every
// recompute so stale tiers never outlive the write.
type DefaultReputationService struct {
	Quotes    quoteRepo.QuoteRepository
	Providers providerRepo.ProviderRepository
	Cache     *redis.Client

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// providerLock returns the mutex serializing recomputes for one provider.
// The history read and the derived-field write must form a single critical
// section or a slower recompute can overwrite a fresher one.
func (s *DefaultReputationService) providerLock(providerID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks == nil {
		s.locks = make(map[string]*sync.Mutex)
	}
	l, ok := s.locks[providerID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[providerID] = l
	}
	return l
}

func (s *DefaultReputationService) Recompute(providerID string) (Stats, error) {
	l := s.providerLock(providerID)
	l.Lock()
	defer l.Unlock()

	targets, err := s.Quotes.TargetsForProvider(providerID)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to load quote history for provider %s: %w", providerID, err)
	}
	stats := Compute(targets)
	if err := s.Providers.SetReputation(providerID, stats.ResponseMinutes, stats.ResponseRate, stats.ResponseStreak, stats.Tier); err != nil {
		return Stats{}, fmt.Errorf("failed to store reputation for provider %s: %w", providerID, err)
	}
	utils.InvalidateProviderProfile(s.Cache, providerID)
	utils.GetLogger().Debug("Recompute: provider reputation updated",
		zap.String("providerID", providerID),
		zap.String("tier", stats.Tier),
		zap.Int("rate", stats.ResponseRate),
		zap.Int("streak", stats.ResponseStreak))
	return stats, nil
}
