package availability_test

import (
	"testing"
	"time"

	bookingRepo "barkwise/database/repository/booking"
	providerRepo "barkwise/database/repository/provider"
	"barkwise/models"
	"barkwise/services/availability"
	"barkwise/utils"
)

type availabilityEnv struct {
	Service   *availability.DefaultAvailabilityService
	Providers *providerRepo.MemoryProviderRepo
	Bookings  *bookingRepo.MemoryBookingRepo
}

func newAvailabilityEnv(t *testing.T) availabilityEnv {
	t.Helper()
	providers := providerRepo.NewMemoryProviderRepo()
	bookings := bookingRepo.NewMemoryBookingRepo()
	err := providers.Create(&models.Provider{
		ID:       "prov1",
		OwnerID:  "owner1",
		Name:     "Newtown Walks",
		Category: models.CategoryDogWalking,
		Suburb:   "Newtown",
		Status:   models.ProviderActive,
	})
	if err != nil {
		t.Fatalf("seed provider: %v", err)
	}
	return availabilityEnv{
		Service:   &availability.DefaultAvailabilityService{Providers: providers, Bookings: bookings},
		Providers: providers,
		Bookings:  bookings,
	}
}

func slotByTime(t *testing.T, slots []models.SlotAvailability, slot string) models.SlotAvailability {
	t.Helper()
	for _, s := range slots {
		if s.Slot == slot {
			return s
		}
	}
	t.Fatalf("slot %s missing from resolution", slot)
	return models.SlotAvailability{}
}

func TestResolveReturnsFullTemplate(t *testing.T) {
	env := newAvailabilityEnv(t)
	slots, err := env.Service.Resolve("prov1", "2026-09-01")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := []string{"09:00", "11:00", "14:00", "16:00", "18:00"}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(slots))
	}
	for i, s := range slots {
		if s.Slot != want[i] {
			t.Fatalf("slot %d: expected %s, got %s", i, want[i], s.Slot)
		}
		if !s.Available || s.Reason != "" {
			t.Fatalf("slot %s should be free, got available=%v reason=%q", s.Slot, s.Available, s.Reason)
		}
	}
}

func TestResolveBlocksBlackoutsAndBookings(t *testing.T) {
	env := newAvailabilityEnv(t)
	err := env.Providers.CreateBlackout(&models.ProviderBlackout{
		ID: "blk1", ProviderID: "prov1", Date: "2026-09-01", Slot: "11:00", Reason: "vet visit",
	})
	if err != nil {
		t.Fatalf("seed blackout: %v", err)
	}
	err = env.Bookings.Create(&models.Booking{
		ID: "bk1", OwnerID: "user1", ProviderID: "prov1",
		Date: "2026-09-01", Slot: "14:00", Status: models.BookingPending,
	})
	if err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	slots, err := env.Service.Resolve("prov1", "2026-09-01")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	for _, blocked := range []string{"11:00", "14:00"} {
		s := slotByTime(t, slots, blocked)
		if s.Available {
			t.Fatalf("slot %s should be blocked", blocked)
		}
		if s.Reason != availability.SlotUnavailable {
			t.Fatalf("slot %s: expected reason %q, got %q", blocked, availability.SlotUnavailable, s.Reason)
		}
	}
	for _, free := range []string{"09:00", "16:00", "18:00"} {
		if s := slotByTime(t, slots, free); !s.Available {
			t.Fatalf("slot %s should be free", free)
		}
	}
}

func TestResolveCancelledBookingFreesSlot(t *testing.T) {
	env := newAvailabilityEnv(t)
	err := env.Bookings.Create(&models.Booking{
		ID: "bk1", OwnerID: "user1", ProviderID: "prov1",
		Date: "2026-09-01", Slot: "09:00", Status: models.BookingConfirmed,
	})
	if err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	slots, err := env.Service.Resolve("prov1", "2026-09-01")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if slotByTime(t, slots, "09:00").Available {
		t.Fatal("confirmed booking should block the slot")
	}

	if err := env.Bookings.UpdateStatus("bk1", models.BookingCancelledByOwner, "", time.Now()); err != nil {
		t.Fatalf("cancel booking: %v", err)
	}
	slots, err = env.Service.Resolve("prov1", "2026-09-01")
	if err != nil {
		t.Fatalf("resolve after cancel: %v", err)
	}
	if !slotByTime(t, slots, "09:00").Available {
		t.Fatal("cancelled booking should free the slot")
	}
}

func TestResolveScopedToDate(t *testing.T) {
	env := newAvailabilityEnv(t)
	err := env.Providers.CreateBlackout(&models.ProviderBlackout{
		ID: "blk1", ProviderID: "prov1", Date: "2026-09-01", Slot: "09:00",
	})
	if err != nil {
		t.Fatalf("seed blackout: %v", err)
	}
	slots, err := env.Service.Resolve("prov1", "2026-09-02")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	for _, s := range slots {
		if !s.Available {
			t.Fatalf("slot %s on another date should be free", s.Slot)
		}
	}
}

func TestResolveInvalidDate(t *testing.T) {
	env := newAvailabilityEnv(t)
	if _, err := env.Service.Resolve("prov1", "01-09-2026"); !utils.IsInvalid(err) {
		t.Fatalf("expected invalid date error, got %v", err)
	}
}

func TestResolveUnknownProvider(t *testing.T) {
	env := newAvailabilityEnv(t)
	if _, err := env.Service.Resolve("ghost", "2026-09-01"); !utils.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
