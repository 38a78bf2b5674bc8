package quote_test

import (
	"strings"
	"sync"
	"testing"
	"time"

	notificationRepo "barkwise/database/repository/notification"
	providerRepo "barkwise/database/repository/provider"
	quoteRepo "barkwise/database/repository/quote"
	"barkwise/models"
	"barkwise/services/notification"
	"barkwise/services/quote"
	"barkwise/services/reputation"
	"barkwise/utils"
)

type stubScheduler struct {
	scheduled []string
}

func (s *stubScheduler) ScheduleQuoteReminders(quoteRequestID string, createdAt time.Time) error {
	s.scheduled = append(s.scheduled, quoteRequestID)
	return nil
}

type quoteEnv struct {
	Service       *quote.DefaultQuoteService
	Quotes        *quoteRepo.MemoryQuoteRepo
	Providers     *providerRepo.MemoryProviderRepo
	Notifications *notificationRepo.MemoryNotificationRepo
	Scheduler     *stubScheduler
	Now           time.Time
}

func newQuoteEnv(t *testing.T) *quoteEnv {
	t.Helper()
	env := &quoteEnv{Now: time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)}
	env.Quotes = quoteRepo.NewMemoryQuoteRepo()
	env.Providers = providerRepo.NewMemoryProviderRepo()
	env.Notifications = notificationRepo.NewMemoryNotificationRepo()
	env.Scheduler = &stubScheduler{}
	rep := &reputation.DefaultReputationService{Quotes: env.Quotes, Providers: env.Providers}
	env.Service = quote.NewDefaultQuoteService(
		env.Quotes, env.Providers,
		notification.NewDefaultNotificationService(env.Notifications),
		rep, env.Scheduler,
	)
	env.Service.Now = func() time.Time { return env.Now }
	return env
}

func (env *quoteEnv) seedProvider(t *testing.T, id, ownerID, suburb string, rating float64) {
	t.Helper()
	err := env.Providers.Create(&models.Provider{
		ID: id, OwnerID: ownerID, Name: "Groomer " + id,
		Category: models.CategoryGrooming, Suburb: suburb,
		Rating: rating, Status: models.ProviderActive,
	})
	if err != nil {
		t.Fatalf("seed provider %s: %v", id, err)
	}
}

func (env *quoteEnv) notificationsFor(t *testing.T, userID string) []models.Notification {
	t.Helper()
	list, err := env.Notifications.ListByUser(userID, 100)
	if err != nil {
		t.Fatalf("list notifications for %s: %v", userID, err)
	}
	return list
}

func groomingRequest(suburb string) quote.CreateQuoteInput {
	return quote.CreateQuoteInput{
		Category:        models.CategoryGrooming,
		Suburb:          suburb,
		PreferredWindow: "Saturday morning",
		PetDetails:      "Cavoodle, 8kg",
	}
}

func TestCreateQuoteFanoutPrefersSuburbTopRated(t *testing.T) {
	env := newQuoteEnv(t)
	env.seedProvider(t, "p1", "o1", "Newtown", 4.9)
	env.seedProvider(t, "p2", "o2", "Newtown", 4.7)
	env.seedProvider(t, "p3", "o3", "Newtown", 4.5)
	env.seedProvider(t, "p4", "o4", "Newtown", 4.3)
	env.seedProvider(t, "p5", "o5", "Redfern", 5.0)

	q, err := env.Service.CreateQuoteRequest("requester", groomingRequest("Newtown"))
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}
	if q.Status != models.QuotePending {
		t.Fatalf("expected pending, got %s", q.Status)
	}
	if len(q.Targets) != 3 {
		t.Fatalf("fanout should cap at 3 targets, got %d", len(q.Targets))
	}
	wantProviders := []string{"p1", "p2", "p3"}
	for i, target := range q.Targets {
		if target.ProviderID != wantProviders[i] {
			t.Fatalf("target %d: expected %s, got %s", i, wantProviders[i], target.ProviderID)
		}
		if target.ProviderName != "Groomer "+target.ProviderID {
			t.Fatalf("target %d missing denormalised name: %q", i, target.ProviderName)
		}
		if target.Status != models.TargetPending {
			t.Fatalf("target %d: expected pending, got %s", i, target.Status)
		}
	}

	if len(env.Scheduler.scheduled) != 1 || env.Scheduler.scheduled[0] != q.ID {
		t.Fatalf("expected one reminder schedule for %s, got %v", q.ID, env.Scheduler.scheduled)
	}
	got := env.notificationsFor(t, "o1")
	if len(got) != 1 || got[0].Title != "New quote request" {
		t.Fatalf("expected quote notification for o1, got %+v", got)
	}
	if !strings.Contains(got[0].Body, "grooming request in Newtown") {
		t.Fatalf("unexpected notification body %q", got[0].Body)
	}
	if len(env.notificationsFor(t, "o4")) != 0 {
		t.Fatal("provider outside the fanout should not be notified")
	}
}

func TestCreateQuoteFallsBackToCategoryPool(t *testing.T) {
	env := newQuoteEnv(t)
	env.seedProvider(t, "p1", "o1", "Newtown", 4.8)
	env.seedProvider(t, "p2", "o2", "Redfern", 4.2)

	q, err := env.Service.CreateQuoteRequest("requester", groomingRequest("Erskineville"))
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}
	if len(q.Targets) != 2 {
		t.Fatalf("expected category-wide fallback with 2 targets, got %d", len(q.Targets))
	}
	if q.Suburb != "Erskineville" {
		t.Fatalf("request keeps the asked suburb, got %s", q.Suburb)
	}
}

func TestCreateQuoteExcludesRequesterListings(t *testing.T) {
	env := newQuoteEnv(t)
	env.seedProvider(t, "p1", "requester", "Newtown", 4.8)

	_, err := env.Service.CreateQuoteRequest("requester", groomingRequest("Newtown"))
	if !utils.IsNotFound(err) {
		t.Fatalf("own listings never match; expected not found, got %v", err)
	}
}

func TestCreateQuoteValidation(t *testing.T) {
	env := newQuoteEnv(t)
	env.seedProvider(t, "p1", "o1", "Newtown", 4.8)

	cases := []struct {
		name  string
		input quote.CreateQuoteInput
	}{
		{"bad category", quote.CreateQuoteInput{Category: "boarding", Suburb: "Newtown", PreferredWindow: "am", PetDetails: "dog"}},
		{"missing suburb", quote.CreateQuoteInput{Category: models.CategoryGrooming, Suburb: " ", PreferredWindow: "am", PetDetails: "dog"}},
		{"missing window", quote.CreateQuoteInput{Category: models.CategoryGrooming, Suburb: "Newtown", PreferredWindow: "", PetDetails: "dog"}},
		{"missing pet details", quote.CreateQuoteInput{Category: models.CategoryGrooming, Suburb: "Newtown", PreferredWindow: "am", PetDetails: "  "}},
	}
	for _, tc := range cases {
		if _, err := env.Service.CreateQuoteRequest("requester", tc.input); !utils.IsInvalid(err) {
			t.Fatalf("%s: expected invalid error, got %v", tc.name, err)
		}
	}
}

func TestRespondAppliesOnceAndKeepsFirstAnswer(t *testing.T) {
	env := newQuoteEnv(t)
	env.seedProvider(t, "p1", "o1", "Newtown", 4.8)
	env.seedProvider(t, "p2", "o2", "Newtown", 4.5)
	q, err := env.Service.CreateQuoteRequest("requester", groomingRequest("Newtown"))
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}

	env.Now = env.Now.Add(5 * time.Minute)
	respondedAt := env.Now
	updated, err := env.Service.RespondToQuoteTarget(q.ID, "p1", "o1", models.TargetAccepted, "Can do Saturday")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if updated.Status != models.QuoteResponded {
		t.Fatalf("expected responded aggregate, got %s", updated.Status)
	}

	env.Now = env.Now.Add(25 * time.Minute)
	_, err = env.Service.RespondToQuoteTarget(q.ID, "p1", "o1", models.TargetDeclined, "changed my mind")
	if !utils.IsConflict(err) {
		t.Fatalf("second response must conflict, got %v", err)
	}

	stored, err := env.Service.GetQuoteRequest(q.ID)
	if err != nil {
		t.Fatalf("get quote: %v", err)
	}
	var target models.QuoteTarget
	for _, candidate := range stored.Targets {
		if candidate.ProviderID == "p1" {
			target = candidate
		}
	}
	if target.Status != models.TargetAccepted || target.ResponseMessage != "Can do Saturday" {
		t.Fatalf("first answer must survive the conflict, got %+v", target)
	}
	if target.RespondedAt == nil || !target.RespondedAt.Equal(respondedAt) {
		t.Fatalf("responded timestamp must not move, got %v", target.RespondedAt)
	}

	got := env.notificationsFor(t, "requester")
	if len(got) != 1 || got[0].Title != "Quote response received" {
		t.Fatalf("expected one requester notification, got %+v", got)
	}
	if !strings.Contains(got[0].Body, "Groomer p1 accepted") {
		t.Fatalf("unexpected notification body %q", got[0].Body)
	}
}

func TestRespondRecomputesProviderReputation(t *testing.T) {
	env := newQuoteEnv(t)
	env.seedProvider(t, "p1", "o1", "Newtown", 4.8)
	q, err := env.Service.CreateQuoteRequest("requester", groomingRequest("Newtown"))
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}

	env.Now = env.Now.Add(3 * time.Minute)
	if _, err := env.Service.RespondToQuoteTarget(q.ID, "p1", "o1", models.TargetAccepted, ""); err != nil {
		t.Fatalf("respond: %v", err)
	}

	p, err := env.Providers.GetByID("p1")
	if err != nil {
		t.Fatalf("get provider: %v", err)
	}
	if p.ResponseRate != 100 || p.ResponseStreak != 1 || p.ResponseMinutes != 3 {
		t.Fatalf("reputation not recomputed, got rate=%d streak=%d minutes=%d",
			p.ResponseRate, p.ResponseStreak, p.ResponseMinutes)
	}
}

func TestRespondPermissionAndLookupErrors(t *testing.T) {
	env := newQuoteEnv(t)
	env.seedProvider(t, "p1", "o1", "Newtown", 4.8)
	q, err := env.Service.CreateQuoteRequest("requester", groomingRequest("Newtown"))
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}

	if _, err := env.Service.RespondToQuoteTarget(q.ID, "p1", "o1", "maybe", ""); !utils.IsInvalid(err) {
		t.Fatalf("expected invalid decision error, got %v", err)
	}
	if _, err := env.Service.RespondToQuoteTarget(q.ID, "p1", "intruder", models.TargetAccepted, ""); !utils.IsPermission(err) {
		t.Fatalf("expected permission error, got %v", err)
	}
	if _, err := env.Service.RespondToQuoteTarget(q.ID, "p9", "o1", models.TargetAccepted, ""); !utils.IsNotFound(err) {
		t.Fatalf("expected target not found, got %v", err)
	}
	if _, err := env.Service.RespondToQuoteTarget("qr_missing", "p1", "o1", models.TargetAccepted, ""); !utils.IsNotFound(err) {
		t.Fatalf("expected quote not found, got %v", err)
	}
}

func TestAllDeclinedClosesRequest(t *testing.T) {
	env := newQuoteEnv(t)
	env.seedProvider(t, "p1", "o1", "Newtown", 4.8)
	env.seedProvider(t, "p2", "o2", "Newtown", 4.5)
	q, err := env.Service.CreateQuoteRequest("requester", groomingRequest("Newtown"))
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}

	first, err := env.Service.RespondToQuoteTarget(q.ID, "p1", "o1", models.TargetDeclined, "booked out")
	if err != nil {
		t.Fatalf("first decline: %v", err)
	}
	if first.Status != models.QuoteResponded {
		t.Fatalf("one decline of two leaves responded, got %s", first.Status)
	}
	second, err := env.Service.RespondToQuoteTarget(q.ID, "p2", "o2", models.TargetDeclined, "")
	if err != nil {
		t.Fatalf("second decline: %v", err)
	}
	if second.Status != models.QuoteClosed {
		t.Fatalf("all declines close the request, got %s", second.Status)
	}

	stored, err := env.Service.GetQuoteRequest(q.ID)
	if err != nil {
		t.Fatalf("get quote: %v", err)
	}
	if stored.Status != models.QuoteClosed {
		t.Fatalf("closed is terminal, got %s", stored.Status)
	}
}

// staleReadQuoteRepo serves reads from a snapshot taken at construction
// while writes go to the live repository, reproducing two responders who
// both loaded the request before either had written.
type staleReadQuoteRepo struct {
	*quoteRepo.MemoryQuoteRepo
	snapshot *models.QuoteRequest
}

func (r *staleReadQuoteRepo) GetByID(id string) (*models.QuoteRequest, error) {
	if r.snapshot != nil && r.snapshot.ID == id {
		cp := *r.snapshot
		cp.Targets = append([]models.QuoteTarget(nil), r.snapshot.Targets...)
		return &cp, nil
	}
	return r.MemoryQuoteRepo.GetByID(id)
}

func TestDeclinesFromStaleReadsStillCloseRequest(t *testing.T) {
	env := newQuoteEnv(t)
	env.seedProvider(t, "p1", "o1", "Newtown", 4.8)
	env.seedProvider(t, "p2", "o2", "Newtown", 4.5)
	q, err := env.Service.CreateQuoteRequest("requester", groomingRequest("Newtown"))
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}

	snapshot, err := env.Quotes.GetByID(q.ID)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	env.Service.Quotes = &staleReadQuoteRepo{MemoryQuoteRepo: env.Quotes, snapshot: snapshot}

	if _, err := env.Service.RespondToQuoteTarget(q.ID, "p1", "o1", models.TargetDeclined, ""); err != nil {
		t.Fatalf("first decline: %v", err)
	}
	second, err := env.Service.RespondToQuoteTarget(q.ID, "p2", "o2", models.TargetDeclined, "")
	if err != nil {
		t.Fatalf("second decline: %v", err)
	}
	if second.Status != models.QuoteClosed {
		t.Fatalf("second decline must observe the first, got %s", second.Status)
	}

	stored, err := env.Quotes.GetByID(q.ID)
	if err != nil {
		t.Fatalf("get quote: %v", err)
	}
	if stored.Status != models.QuoteClosed {
		t.Fatalf("all targets declined; persisted status must be closed, got %s", stored.Status)
	}
}

func TestConcurrentDeclinesPersistClosedAggregate(t *testing.T) {
	env := newQuoteEnv(t)
	env.seedProvider(t, "p1", "o1", "Newtown", 4.8)
	env.seedProvider(t, "p2", "o2", "Newtown", 4.5)
	q, err := env.Service.CreateQuoteRequest("requester", groomingRequest("Newtown"))
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}

	var wg sync.WaitGroup
	for _, resp := range []struct{ providerID, ownerID string }{{"p1", "o1"}, {"p2", "o2"}} {
		wg.Add(1)
		go func(providerID, ownerID string) {
			defer wg.Done()
			if _, err := env.Service.RespondToQuoteTarget(q.ID, providerID, ownerID, models.TargetDeclined, ""); err != nil {
				t.Errorf("decline %s: %v", providerID, err)
			}
		}(resp.providerID, resp.ownerID)
	}
	wg.Wait()

	stored, err := env.Quotes.GetByID(q.ID)
	if err != nil {
		t.Fatalf("get quote: %v", err)
	}
	if stored.Status != models.QuoteClosed {
		t.Fatalf("all targets declined; persisted status must be closed, got %s", stored.Status)
	}
}

func TestListQuoteRequestsByRole(t *testing.T) {
	env := newQuoteEnv(t)
	env.seedProvider(t, "p1", "o1", "Newtown", 4.8)
	if _, err := env.Service.CreateQuoteRequest("requester", groomingRequest("Newtown")); err != nil {
		t.Fatalf("create quote: %v", err)
	}

	mine, err := env.Service.ListQuoteRequestsForRequester("requester")
	if err != nil || len(mine) != 1 {
		t.Fatalf("expected 1 request for requester, got %d (%v)", len(mine), err)
	}
	incoming, err := env.Service.ListIncomingQuoteRequests("o1")
	if err != nil || len(incoming) != 1 {
		t.Fatalf("expected 1 incoming request for o1, got %d (%v)", len(incoming), err)
	}
	none, err := env.Service.ListIncomingQuoteRequests("stranger")
	if err != nil || len(none) != 0 {
		t.Fatalf("expected no incoming requests for stranger, got %d (%v)", len(none), err)
	}
}

func TestDispatchRemindersTierProgression(t *testing.T) {
	env := newQuoteEnv(t)
	env.seedProvider(t, "p1", "o1", "Newtown", 4.8)
	q, err := env.Service.CreateQuoteRequest("requester", groomingRequest("Newtown"))
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}

	env.Now = env.Now.Add(10 * time.Minute)
	due, err := env.Service.DispatchQuoteReminders(q.ID)
	if err != nil || len(due) != 0 {
		t.Fatalf("nothing is due before 15 minutes, got %d (%v)", len(due), err)
	}

	env.Now = env.Now.Add(10 * time.Minute) // 20m elapsed
	due, err = env.Service.DispatchQuoteReminders(q.ID)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(due) != 1 || due[0].Tier != quote.ReminderTier15 || due[0].ElapsedMinutes != 20 {
		t.Fatalf("expected one 15m reminder at 20m, got %+v", due)
	}

	due, err = env.Service.DispatchQuoteReminders(q.ID)
	if err != nil || len(due) != 0 {
		t.Fatalf("15m tier is idempotent, got %d (%v)", len(due), err)
	}

	env.Now = env.Now.Add(45 * time.Minute) // 65m elapsed
	due, err = env.Service.DispatchQuoteReminders(q.ID)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(due) != 1 || due[0].Tier != quote.ReminderTier60 {
		t.Fatalf("expected one 60m reminder, got %+v", due)
	}

	due, err = env.Service.DispatchQuoteReminders(q.ID)
	if err != nil || len(due) != 0 {
		t.Fatalf("60m tier is idempotent, got %d (%v)", len(due), err)
	}
	if got := env.notificationsFor(t, "o1"); len(got) != 3 {
		// creation notice plus two reminder tiers
		t.Fatalf("expected 3 notifications for o1, got %d", len(got))
	}
}

func TestDispatchSixtySwallowsUnsentFifteen(t *testing.T) {
	env := newQuoteEnv(t)
	env.seedProvider(t, "p1", "o1", "Newtown", 4.8)
	q, err := env.Service.CreateQuoteRequest("requester", groomingRequest("Newtown"))
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}

	env.Now = env.Now.Add(90 * time.Minute)
	due, err := env.Service.DispatchQuoteReminders(q.ID)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(due) != 1 || due[0].Tier != quote.ReminderTier60 {
		t.Fatalf("a late sweep sends only the 60m tier, got %+v", due)
	}

	stored, err := env.Service.GetQuoteRequest(q.ID)
	if err != nil {
		t.Fatalf("get quote: %v", err)
	}
	if !stored.Targets[0].Reminder15Sent || !stored.Targets[0].Reminder60Sent {
		t.Fatalf("both flags must be set after the 60m tier, got %+v", stored.Targets[0])
	}
}

func TestDispatchSkipsRespondedTargets(t *testing.T) {
	env := newQuoteEnv(t)
	env.seedProvider(t, "p1", "o1", "Newtown", 4.8)
	env.seedProvider(t, "p2", "o2", "Newtown", 4.5)
	q, err := env.Service.CreateQuoteRequest("requester", groomingRequest("Newtown"))
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}
	if _, err := env.Service.RespondToQuoteTarget(q.ID, "p1", "o1", models.TargetAccepted, ""); err != nil {
		t.Fatalf("respond: %v", err)
	}

	env.Now = env.Now.Add(20 * time.Minute)
	due, err := env.Service.DispatchQuoteReminders(q.ID)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(due) != 1 || due[0].ProviderID != "p2" {
		t.Fatalf("only the pending target is nudged, got %+v", due)
	}
}

func TestDispatchUnknownQuote(t *testing.T) {
	env := newQuoteEnv(t)
	if _, err := env.Service.DispatchQuoteReminders("qr_missing"); !utils.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
