package provider

import (
	"errors"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	providerRepo "barkwise/database/repository/provider"
	"barkwise/models"
	"barkwise/utils"
)

// Directory sort orders.
const (
	SortRelevance = "relevance"
	SortDistance  = "distance"
	SortRating    = "rating"
	SortPriceLow  = "price_low"
	SortPriceHigh = "price_high"
)

const maxDirectoryLimit = 200

func (s *DefaultProviderService) GetProvider(id, viewerID string) (*models.Provider, error) {
	p := s.cachedProvider(id)
	if p == nil {
		var err error
		p, err = s.Repo.GetByID(id)
		if err != nil {
			if errors.Is(err, providerRepo.ErrNotFound) {
				return nil, utils.NotFoundErr("Provider not found")
			}
			utils.GetLogger().Error("GetProvider: failed to fetch provider",
				zap.Error(err), zap.String("providerID", id))
			return nil, err
		}
		s.cacheProvider(p)
	}
	// Cancelled listings exist only for their owner.
	if p.Status != models.ProviderActive && p.OwnerID != viewerID {
		return nil, utils.NotFoundErr("Provider not found")
	}
	s.annotate([]*models.Provider{p}, viewerID)
	return p, nil
}

func (s *DefaultProviderService) ListProviders(q ListQuery) ([]*models.Provider, error) {
	sortKey := strings.ToLower(strings.TrimSpace(q.SortBy))
	if sortKey == "" {
		sortKey = SortRelevance
	}
	switch sortKey {
	case SortRelevance, SortDistance, SortRating, SortPriceLow, SortPriceHigh:
	default:
		return nil, utils.InvalidErr("Invalid sort_by value. Allowed: relevance, distance, rating, price_low, price_high")
	}

	originLat, originLng, hasOrigin := resolveOrigin(q.Suburb, q.UserLat, q.UserLng)

	collect := func(withSuburb bool) ([]*models.Provider, error) {
		filter := providerRepo.ListFilter{
			Category:  q.Category,
			MinRating: q.MinRating,
			Query:     q.Q,
		}
		if withSuburb {
			filter.Suburb = q.Suburb
		}
		if q.IncludeInactive && q.ViewerID != "" {
			filter.IncludeOwnerID = q.ViewerID
		}
		rows, err := s.Repo.List(filter)
		if err != nil {
			utils.GetLogger().Error("ListProviders: directory query failed", zap.Error(err))
			return nil, err
		}
		providers := make([]*models.Provider, 0, len(rows))
		for i := range rows {
			providers = append(providers, &rows[i])
		}
		if !hasOrigin {
			return providers, nil
		}
		kept := make([]*models.Provider, 0, len(providers))
		for _, p := range providers {
			d := haversineKM(originLat, originLng, p.Latitude, p.Longitude)
			if q.MaxDistanceKM != nil && d > *q.MaxDistanceKM {
				continue
			}
			rounded := math.Round(d*10) / 10
			p.DistanceKM = &rounded
			kept = append(kept, p)
		}
		return kept, nil
	}

	// A suburb with no matches falls back to the broader directory instead
	// of a blank screen.
	result, err := collect(q.Suburb != "")
	if err != nil {
		return nil, err
	}
	if q.Suburb != "" && len(result) == 0 {
		if result, err = collect(false); err != nil {
			return nil, err
		}
	}

	sortProviders(result, sortKey)

	limit := q.Limit
	if limit <= 0 || limit > maxDirectoryLimit {
		limit = maxDirectoryLimit
	}
	if len(result) > limit {
		result = result[:limit]
	}

	s.annotate(result, q.ViewerID)
	return result, nil
}

func sortProviders(providers []*models.Provider, sortKey string) {
	dist := func(p *models.Provider) float64 {
		if p.DistanceKM != nil {
			return *p.DistanceKM
		}
		return 9999
	}
	switch sortKey {
	case SortDistance:
		sort.SliceStable(providers, func(i, j int) bool {
			if dist(providers[i]) != dist(providers[j]) {
				return dist(providers[i]) < dist(providers[j])
			}
			return providers[i].Rating > providers[j].Rating
		})
	case SortRating:
		sort.SliceStable(providers, func(i, j int) bool {
			if providers[i].Rating != providers[j].Rating {
				return providers[i].Rating > providers[j].Rating
			}
			return dist(providers[i]) < dist(providers[j])
		})
	case SortPriceLow:
		sort.SliceStable(providers, func(i, j int) bool {
			if providers[i].PriceFrom != providers[j].PriceFrom {
				return providers[i].PriceFrom < providers[j].PriceFrom
			}
			return dist(providers[i]) < dist(providers[j])
		})
	case SortPriceHigh:
		sort.SliceStable(providers, func(i, j int) bool {
			if providers[i].PriceFrom != providers[j].PriceFrom {
				return providers[i].PriceFrom > providers[j].PriceFrom
			}
			return dist(providers[i]) < dist(providers[j])
		})
	default: // relevance
		sort.SliceStable(providers, func(i, j int) bool {
			ti, tj := models.TierScore(providers[i].Tier), models.TierScore(providers[j].Tier)
			if ti != tj {
				return ti > tj
			}
			if providers[i].Rating != providers[j].Rating {
				return providers[i].Rating > providers[j].Rating
			}
			return providers[i].ReviewCount > providers[j].ReviewCount
		})
	}
}
