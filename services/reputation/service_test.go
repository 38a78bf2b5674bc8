package reputation_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	providerRepo "barkwise/database/repository/provider"
	quoteRepo "barkwise/database/repository/quote"
	"barkwise/models"
	"barkwise/services/reputation"
)

// Concurrent respond-then-recompute flows for the same provider must leave
// the stored reputation matching the full response history: a slower
// recompute may never overwrite a fresher one.
func TestConcurrentRecomputesStoreFreshReputation(t *testing.T) {
	quotes := quoteRepo.NewMemoryQuoteRepo()
	providers := providerRepo.NewMemoryProviderRepo()
	if err := providers.Create(&models.Provider{
		ID: "p1", OwnerID: "o1", Name: "Groomer p1",
		Category: models.CategoryGrooming, Suburb: "Newtown",
		Status: models.ProviderActive,
	}); err != nil {
		t.Fatalf("seed provider: %v", err)
	}
	svc := &reputation.DefaultReputationService{Quotes: quotes, Providers: providers}

	base := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	const responses = 8
	for i := 0; i < responses; i++ {
		created := base.Add(time.Duration(i) * time.Hour)
		err := quotes.Create(&models.QuoteRequest{
			ID:          fmt.Sprintf("qr_%d", i),
			RequesterID: "requester",
			Status:      models.QuotePending,
			CreatedAt:   created,
			UpdatedAt:   created,
			Targets: []models.QuoteTarget{{
				ID:         fmt.Sprintf("qrt_%d", i),
				ProviderID: "p1", ProviderOwnerID: "o1",
				Status:    models.TargetPending,
				CreatedAt: created,
			}},
		})
		if err != nil {
			t.Fatalf("seed quote %d: %v", i, err)
		}
	}

	var wg sync.WaitGroup
	for i := 0; i < responses; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			respondedAt := base.Add(time.Duration(i)*time.Hour + 2*time.Minute)
			_, err := quotes.RespondTarget(fmt.Sprintf("qr_%d", i), fmt.Sprintf("qrt_%d", i),
				models.TargetAccepted, "", respondedAt)
			if err != nil {
				t.Errorf("respond %d: %v", i, err)
				return
			}
			if _, err := svc.Recompute("p1"); err != nil {
				t.Errorf("recompute %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	history, err := quotes.TargetsForProvider("p1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	want := reputation.Compute(history)
	p, err := providers.GetByID("p1")
	if err != nil {
		t.Fatalf("get provider: %v", err)
	}
	if p.Tier != want.Tier || p.ResponseRate != want.ResponseRate ||
		p.ResponseStreak != want.ResponseStreak || p.ResponseMinutes != want.ResponseMinutes {
		t.Fatalf("stored reputation lags history: got tier=%s rate=%d streak=%d minutes=%d, want tier=%s rate=%d streak=%d minutes=%d",
			p.Tier, p.ResponseRate, p.ResponseStreak, p.ResponseMinutes,
			want.Tier, want.ResponseRate, want.ResponseStreak, want.ResponseMinutes)
	}
}
