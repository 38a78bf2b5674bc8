package quoteRepo

import (
	"sort"
	"sync"
	"time"

	"barkwise/models"
)

// MemoryQuoteRepo is an in-memory QuoteRepository used in tests. The
// repo-wide mutex gives the same exactly-once respond guarantee the
// Mongo conditional update provides.
type MemoryQuoteRepo struct {
	mu     sync.Mutex
	quotes map[string]*models.QuoteRequest
}

// NewMemoryQuoteRepo returns an empty in-memory repository.
func NewMemoryQuoteRepo() *MemoryQuoteRepo {
	return &MemoryQuoteRepo{quotes: make(map[string]*models.QuoteRequest)}
}

func (r *MemoryQuoteRepo) Create(quote *models.QuoteRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := cloneQuote(quote)
	r.quotes[quote.ID] = cp
	return nil
}

func (r *MemoryQuoteRepo) GetByID(id string) (*models.QuoteRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quotes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneQuote(q), nil
}

func (r *MemoryQuoteRepo) ListByRequester(requesterID string) ([]models.QuoteRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.QuoteRequest
	for _, q := range r.quotes {
		if q.RequesterID == requesterID {
			out = append(out, *cloneQuote(q))
		}
	}
	sortQuotesNewestFirst(out)
	return out, nil
}

func (r *MemoryQuoteRepo) ListForProviderOwner(ownerID string) ([]models.QuoteRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.QuoteRequest
	for _, q := range r.quotes {
		for _, t := range q.Targets {
			if t.ProviderOwnerID == ownerID {
				out = append(out, *cloneQuote(q))
				break
			}
		}
	}
	sortQuotesNewestFirst(out)
	return out, nil
}

func (r *MemoryQuoteRepo) RespondTarget(quoteID, targetID, status, message string, respondedAt time.Time) (*models.QuoteRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quotes[quoteID]
	if !ok {
		return nil, ErrNotFound
	}
	for i := range q.Targets {
		if q.Targets[i].ID != targetID {
			continue
		}
		if q.Targets[i].Status != models.TargetPending {
			return nil, ErrTargetNotPending
		}
		at := respondedAt
		q.Targets[i].Status = status
		q.Targets[i].ResponseMessage = message
		q.Targets[i].RespondedAt = &at
		q.Status = models.AggregateQuoteStatus(q.Targets)
		q.UpdatedAt = respondedAt
		return cloneQuote(q), nil
	}
	return nil, ErrTargetNotPending
}

func (r *MemoryQuoteRepo) SetReminderFlags(quoteID, targetID string, sent15, sent60 bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quotes[quoteID]
	if !ok {
		return ErrNotFound
	}
	for i := range q.Targets {
		if q.Targets[i].ID != targetID {
			continue
		}
		if sent15 {
			q.Targets[i].Reminder15Sent = true
		}
		if sent60 {
			q.Targets[i].Reminder60Sent = true
		}
		return nil
	}
	return ErrNotFound
}

func (r *MemoryQuoteRepo) TargetsForProvider(providerID string) ([]models.QuoteTarget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.QuoteTarget
	for _, q := range r.quotes {
		for _, t := range q.Targets {
			if t.ProviderID == providerID {
				out = append(out, t)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func cloneQuote(q *models.QuoteRequest) *models.QuoteRequest {
	cp := *q
	cp.Targets = make([]models.QuoteTarget, len(q.Targets))
	copy(cp.Targets, q.Targets)
	return &cp
}

func sortQuotesNewestFirst(quotes []models.QuoteRequest) {
	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].CreatedAt.After(quotes[j].CreatedAt)
	})
}
