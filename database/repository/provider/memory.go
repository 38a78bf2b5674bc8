package providerRepo

import (
	"sort"
	"strings"
	"sync"
	"time"

	"barkwise/models"
)

// MemoryProviderRepo is an in-memory ProviderRepository used in tests.
type MemoryProviderRepo struct {
	mu        sync.Mutex
	providers map[string]*models.Provider
	blackouts []models.ProviderBlackout
}

// NewMemoryProviderRepo returns an empty in-memory repository.
func NewMemoryProviderRepo() *MemoryProviderRepo {
	return &MemoryProviderRepo{providers: make(map[string]*models.Provider)}
}

func (r *MemoryProviderRepo) Create(provider *models.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *provider
	r.providers[provider.ID] = &cp
	return nil
}

func (r *MemoryProviderRepo) GetByID(id string) (*models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *MemoryProviderRepo) Update(provider *models.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.providers[provider.ID]; !ok {
		return ErrNotFound
	}
	cp := *provider
	r.providers[provider.ID] = &cp
	return nil
}

func (r *MemoryProviderRepo) List(filter ListFilter) ([]models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Provider
	for _, p := range r.providers {
		if p.Status != models.ProviderActive {
			if filter.IncludeOwnerID == "" || p.OwnerID != filter.IncludeOwnerID {
				continue
			}
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Suburb != "" && !strings.EqualFold(p.Suburb, filter.Suburb) {
			continue
		}
		if filter.MinRating > 0 && p.Rating < filter.MinRating {
			continue
		}
		if filter.ExcludeOwnerID != "" && p.OwnerID == filter.ExcludeOwnerID {
			continue
		}
		if filter.Query != "" {
			searchable := strings.ToLower(strings.Join([]string{p.Name, p.Description, p.Category, p.Suburb}, " "))
			if !strings.Contains(searchable, strings.ToLower(filter.Query)) {
				continue
			}
		}
		out = append(out, *p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].ReviewCount > out[j].ReviewCount
	})
	if filter.Limit > 0 && int64(len(out)) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *MemoryProviderRepo) SetStatus(id, status string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[id]
	if !ok {
		return ErrNotFound
	}
	p.Status = status
	p.UpdatedAt = at
	return nil
}

func (r *MemoryProviderRepo) SetReputation(id string, responseMinutes, responseRate, responseStreak int, tier string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[id]
	if !ok {
		return ErrNotFound
	}
	p.ResponseMinutes = responseMinutes
	p.ResponseRate = responseRate
	p.ResponseStreak = responseStreak
	p.Tier = tier
	return nil
}

func (r *MemoryProviderRepo) SetVetVerification(id, vetUserID string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[id]
	if !ok {
		return ErrNotFound
	}
	p.VetChecked = true
	p.VetCheckedBy = vetUserID
	p.VetCheckedUntil = &until
	return nil
}

func (r *MemoryProviderRepo) AddReview(id string, review models.Review, rating float64, reviewCount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[id]
	if !ok {
		return ErrNotFound
	}
	p.Reviews = append(p.Reviews, review)
	p.Rating = rating
	p.ReviewCount = reviewCount
	return nil
}

func (r *MemoryProviderRepo) CreateBlackout(blackout *models.ProviderBlackout) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.blackouts {
		if b.ProviderID == blackout.ProviderID && b.Date == blackout.Date && b.Slot == blackout.Slot {
			return ErrBlackoutExists
		}
	}
	r.blackouts = append(r.blackouts, *blackout)
	return nil
}

func (r *MemoryProviderRepo) ListBlackouts(providerID, date string) ([]models.ProviderBlackout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ProviderBlackout
	for _, b := range r.blackouts {
		if b.ProviderID != providerID {
			continue
		}
		if date != "" && b.Date != date {
			continue
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Slot < out[j].Slot
	})
	return out, nil
}
