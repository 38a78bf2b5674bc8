package booking_test

import (
	"strings"
	"testing"
	"time"

	bookingRepo "barkwise/database/repository/booking"
	holdRepo "barkwise/database/repository/hold"
	notificationRepo "barkwise/database/repository/notification"
	providerRepo "barkwise/database/repository/provider"
	"barkwise/models"
	"barkwise/services/booking"
	"barkwise/services/notification"
	"barkwise/utils"
)

type bookingEnv struct {
	Service       *booking.DefaultBookingService
	Providers     *providerRepo.MemoryProviderRepo
	Bookings      *bookingRepo.MemoryBookingRepo
	Holds         *holdRepo.MemoryHoldStore
	Notifications *notificationRepo.MemoryNotificationRepo
	Now           time.Time
}

func newBookingEnv(t *testing.T) *bookingEnv {
	t.Helper()
	env := &bookingEnv{Now: time.Date(2026, 8, 25, 8, 0, 0, 0, time.UTC)}
	env.Providers = providerRepo.NewMemoryProviderRepo()
	env.Bookings = bookingRepo.NewMemoryBookingRepo()
	env.Holds = holdRepo.NewMemoryHoldStore()
	env.Notifications = notificationRepo.NewMemoryNotificationRepo()
	dispatcher := notification.NewDefaultNotificationService(env.Notifications)
	env.Service = booking.NewDefaultBookingService(env.Bookings, env.Providers, env.Holds, dispatcher)
	clock := func() time.Time { return env.Now }
	env.Service.Now = clock
	env.Holds.Now = clock
	dispatcher.Now = clock
	return env
}

func (env *bookingEnv) seedProvider(t *testing.T, id, ownerID string) {
	t.Helper()
	err := env.Providers.Create(&models.Provider{
		ID:       id,
		OwnerID:  ownerID,
		Name:     "Soapy Paws",
		Category: models.CategoryGrooming,
		Suburb:   "Newtown",
		Status:   models.ProviderActive,
	})
	if err != nil {
		t.Fatalf("seed provider %s: %v", id, err)
	}
}

func bookingInput(slot string) booking.CreateBookingInput {
	return booking.CreateBookingInput{
		ProviderID: "prov1",
		PetName:    "Biscuit",
		Date:       "2026-08-25",
		Slot:       slot,
	}
}

func TestCreateBookingPendingAndNotifiesProvider(t *testing.T) {
	env := newBookingEnv(t)
	env.seedProvider(t, "prov1", "powner1")

	input := bookingInput("14:00")
	input.Note = "Please be gentle"
	b, err := env.Service.CreateBooking("owner1", input)
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if b.Status != models.BookingPending {
		t.Fatalf("new bookings await confirmation, got %s", b.Status)
	}
	if b.Note != "Please be gentle" || !b.CreatedAt.Equal(env.Now) {
		t.Fatalf("unexpected booking %+v", b)
	}

	mine, err := env.Service.ListBookingsForUser("owner1")
	if err != nil || len(mine) != 1 || mine[0].ID != b.ID {
		t.Fatalf("booking should be listed for its owner, got %+v (%v)", mine, err)
	}

	got, err := env.Notifications.ListByUser("powner1", 10)
	if err != nil || len(got) != 1 {
		t.Fatalf("expected one provider notification, got %+v (%v)", got, err)
	}
	if got[0].Title != "New booking request" || got[0].Body != "Biscuit requested 2026-08-25 14:00" {
		t.Fatalf("unexpected notification %+v", got[0])
	}
}

func TestCreateBookingOwnListingSkipsNotification(t *testing.T) {
	env := newBookingEnv(t)
	env.seedProvider(t, "prov1", "powner1")

	if _, err := env.Service.CreateBooking("powner1", bookingInput("14:00")); err != nil {
		t.Fatalf("create booking: %v", err)
	}
	got, err := env.Notifications.ListByUser("powner1", 10)
	if err != nil || len(got) != 0 {
		t.Fatalf("booking your own listing should stay quiet, got %+v (%v)", got, err)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	env := newBookingEnv(t)
	env.seedProvider(t, "prov1", "powner1")
	env.seedProvider(t, "prov2", "powner2")
	if err := env.Providers.SetStatus("prov2", models.ProviderCancelled, env.Now); err != nil {
		t.Fatalf("cancel prov2: %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(*booking.CreateBookingInput)
		check   func(error) bool
		message string
	}{
		{"bad date", func(in *booking.CreateBookingInput) { in.Date = "25-08-2026" }, utils.IsInvalid, "Invalid date"},
		{"bad slot format", func(in *booking.CreateBookingInput) { in.Slot = "2pm" }, utils.IsInvalid, "Invalid time_slot"},
		{"unknown provider", func(in *booking.CreateBookingInput) { in.ProviderID = "prov9" }, utils.IsNotFound, "Provider not found"},
		{"cancelled provider", func(in *booking.CreateBookingInput) { in.ProviderID = "prov2" }, utils.IsNotFound, "Provider not found"},
		{"off-template slot", func(in *booking.CreateBookingInput) { in.Slot = "10:00" }, utils.IsInvalid, "Time slot not available"},
		{"inside cutoff", func(in *booking.CreateBookingInput) { in.Slot = "09:00" }, utils.IsInvalid, "Booking cutoff applies"},
	}
	for _, tc := range cases {
		input := bookingInput("14:00")
		tc.mutate(&input)
		_, err := env.Service.CreateBooking("owner1", input)
		if err == nil || !tc.check(err) {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !strings.Contains(err.Error(), tc.message) {
			t.Fatalf("%s: message %q should mention %q", tc.name, err, tc.message)
		}
	}
}

func TestCreateBookingCutoffBoundary(t *testing.T) {
	env := newBookingEnv(t)
	env.seedProvider(t, "prov1", "powner1")
	env.Now = time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)

	// 11:00 is exactly the two-hour lead time away and still bookable.
	if _, err := env.Service.CreateBooking("owner1", bookingInput("11:00")); err != nil {
		t.Fatalf("slot at the cutoff boundary should book, got %v", err)
	}
}

func TestCreateBookingSlotConflicts(t *testing.T) {
	env := newBookingEnv(t)
	env.seedProvider(t, "prov1", "powner1")

	first, err := env.Service.CreateBooking("owner1", bookingInput("14:00"))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	_, err = env.Service.CreateBooking("owner2", bookingInput("14:00"))
	if !utils.IsConflict(err) || !strings.Contains(err.Error(), "(booked)") {
		t.Fatalf("booked slot should conflict, got %v", err)
	}

	if _, err := env.Service.CreateProviderBlackout("prov1", "powner1", "2026-08-25", "16:00", "family day"); err != nil {
		t.Fatalf("create blackout: %v", err)
	}
	_, err = env.Service.CreateBooking("owner2", bookingInput("16:00"))
	if !utils.IsConflict(err) || !strings.Contains(err.Error(), "(blackout)") {
		t.Fatalf("blackout slot should conflict, got %v", err)
	}

	// Cancelling the booking frees its slot.
	if _, err := env.Service.UpdateBookingStatus(first.ID, "owner1", models.BookingCancelledByOwner, ""); err != nil {
		t.Fatalf("cancel booking: %v", err)
	}
	if _, err := env.Service.CreateBooking("owner2", bookingInput("14:00")); err != nil {
		t.Fatalf("freed slot should book, got %v", err)
	}
}

func TestHoldNeverBlocksBooking(t *testing.T) {
	env := newBookingEnv(t)
	env.seedProvider(t, "prov1", "powner1")

	_, err := env.Service.CreateBookingHold("owner1", booking.HoldInput{
		ProviderID: "prov1", Date: "2026-08-25", Slot: "18:00",
	})
	if err != nil {
		t.Fatalf("create hold: %v", err)
	}
	if _, err := env.Service.CreateBooking("owner2", bookingInput("18:00")); err != nil {
		t.Fatalf("holds are advisory, booking should succeed: %v", err)
	}
}

func TestHoldLifecycle(t *testing.T) {
	env := newBookingEnv(t)
	env.seedProvider(t, "prov1", "powner1")

	hold, err := env.Service.CreateBookingHold("owner1", booking.HoldInput{
		ProviderID: "prov1", Date: "2026-08-25", Slot: "16:00",
	})
	if err != nil {
		t.Fatalf("create hold: %v", err)
	}
	if !hold.ExpiresAt.Equal(env.Now.Add(15 * time.Minute)) {
		t.Fatalf("holds expire after 15 minutes, got %v", hold.ExpiresAt)
	}

	fetched, err := env.Service.GetBookingHold(hold.ID)
	if err != nil || fetched.Slot != "16:00" {
		t.Fatalf("get hold: %+v (%v)", fetched, err)
	}

	env.Now = env.Now.Add(16 * time.Minute)
	if _, err := env.Service.GetBookingHold(hold.ID); !utils.IsNotFound(err) {
		t.Fatalf("expired holds read as missing, got %v", err)
	}
	if _, err := env.Service.GetBookingHold("hold_missing"); !utils.IsNotFound(err) {
		t.Fatalf("unknown holds read as missing, got %v", err)
	}
}

func TestUpdateBookingStatusLifecycle(t *testing.T) {
	env := newBookingEnv(t)
	env.seedProvider(t, "prov1", "powner1")
	b, err := env.Service.CreateBooking("owner1", bookingInput("14:00"))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	env.Now = env.Now.Add(5 * time.Minute)
	confirmed, err := env.Service.UpdateBookingStatus(b.ID, "powner1", models.BookingConfirmed, "")
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.Status != models.BookingConfirmed || !confirmed.UpdatedAt.Equal(env.Now) {
		t.Fatalf("unexpected booking after confirm %+v", confirmed)
	}
	got, err := env.Notifications.ListByUser("owner1", 10)
	if err != nil || len(got) != 1 {
		t.Fatalf("owner should hear about the confirmation, got %+v (%v)", got, err)
	}
	if got[0].Title != "Booking updated" || got[0].Body != "Booking "+b.ID+" is now "+models.BookingConfirmed {
		t.Fatalf("unexpected notification %+v", got[0])
	}

	cancelled, err := env.Service.UpdateBookingStatus(b.ID, "owner1", models.BookingCancelledByOwner, "")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != models.BookingCancelledByOwner {
		t.Fatalf("unexpected status %s", cancelled.Status)
	}
	got, err = env.Notifications.ListByUser("powner1", 10)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	// Creation ping plus the owner's cancellation.
	if len(got) != 2 || got[0].Body != "Booking "+b.ID+" is now "+models.BookingCancelledByOwner {
		t.Fatalf("provider should hear about the cancellation, got %+v", got)
	}

	if _, err := env.Service.UpdateBookingStatus(b.ID, "powner1", models.BookingCancelledByProvider, ""); !utils.IsConflict(err) {
		t.Fatalf("terminal bookings refuse further transitions, got %v", err)
	}
}

func TestUpdateBookingStatusInvalidTransition(t *testing.T) {
	env := newBookingEnv(t)
	env.seedProvider(t, "prov1", "powner1")
	b, err := env.Service.CreateBooking("owner1", bookingInput("14:00"))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	if _, err := env.Service.UpdateBookingStatus(b.ID, "powner1", models.BookingPending, ""); !utils.IsInvalid(err) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if _, err := env.Service.UpdateBookingStatus(b.ID, "powner1", models.BookingConfirmed, ""); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if _, err := env.Service.UpdateBookingStatus(b.ID, "powner1", models.BookingConfirmed, ""); !utils.IsInvalid(err) {
		t.Fatalf("re-confirming should be an invalid transition, got %v", err)
	}
	if _, err := env.Service.UpdateBookingStatus("bk_missing", "powner1", models.BookingConfirmed, ""); !utils.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateBookingStatusPermissions(t *testing.T) {
	env := newBookingEnv(t)
	env.seedProvider(t, "prov1", "powner1")
	b, err := env.Service.CreateBooking("owner1", bookingInput("14:00"))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	if _, err := env.Service.UpdateBookingStatus(b.ID, "stranger", models.BookingConfirmed, ""); !utils.IsPermission(err) {
		t.Fatalf("only the provider confirms, got %v", err)
	}
	if _, err := env.Service.UpdateBookingStatus(b.ID, "powner1", models.BookingCancelledByOwner, ""); !utils.IsPermission(err) {
		t.Fatalf("only the owner cancels as owner, got %v", err)
	}
	if _, err := env.Service.UpdateBookingStatus(b.ID, "owner1", models.BookingCancelledByProvider, ""); !utils.IsPermission(err) {
		t.Fatalf("only the provider cancels as provider, got %v", err)
	}
}

func TestUpdateBookingStatusNoteHandling(t *testing.T) {
	env := newBookingEnv(t)
	env.seedProvider(t, "prov1", "powner1")
	input := bookingInput("14:00")
	input.Note = "Gate code 1234"
	b, err := env.Service.CreateBooking("owner1", input)
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	confirmed, err := env.Service.UpdateBookingStatus(b.ID, "powner1", models.BookingConfirmed, "")
	if err != nil || confirmed.Note != "Gate code 1234" {
		t.Fatalf("empty note should preserve the existing one, got %+v (%v)", confirmed, err)
	}
	cancelled, err := env.Service.UpdateBookingStatus(b.ID, "powner1", models.BookingCancelledByProvider, "Van broke down")
	if err != nil || cancelled.Note != "Van broke down" {
		t.Fatalf("a new note should replace the old one, got %+v (%v)", cancelled, err)
	}
}

func TestCreateProviderBlackoutGuards(t *testing.T) {
	env := newBookingEnv(t)
	env.seedProvider(t, "prov1", "powner1")

	blackout, err := env.Service.CreateProviderBlackout("prov1", "powner1", "2026-08-26", "09:00", "family day")
	if err != nil {
		t.Fatalf("create blackout: %v", err)
	}
	if blackout.Reason != "family day" || !blackout.CreatedAt.Equal(env.Now) {
		t.Fatalf("unexpected blackout %+v", blackout)
	}

	if _, err := env.Service.CreateProviderBlackout("prov1", "powner1", "2026-08-26", "09:00", ""); !utils.IsConflict(err) {
		t.Fatalf("duplicate blackout should conflict, got %v", err)
	}
	if _, err := env.Service.CreateProviderBlackout("prov1", "stranger", "2026-08-26", "11:00", ""); !utils.IsPermission(err) {
		t.Fatalf("only the owner creates blackouts, got %v", err)
	}
	if _, err := env.Service.CreateProviderBlackout("prov1", "powner1", "someday", "09:00", ""); !utils.IsInvalid(err) {
		t.Fatalf("expected invalid date, got %v", err)
	}
	if _, err := env.Service.CreateProviderBlackout("prov9", "powner1", "2026-08-26", "09:00", ""); !utils.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListProviderBlackoutsFiltersByDate(t *testing.T) {
	env := newBookingEnv(t)
	env.seedProvider(t, "prov1", "powner1")
	for _, day := range []string{"2026-08-26", "2026-08-27"} {
		if _, err := env.Service.CreateProviderBlackout("prov1", "powner1", day, "09:00", ""); err != nil {
			t.Fatalf("create blackout %s: %v", day, err)
		}
	}

	all, err := env.Service.ListProviderBlackouts("prov1", "")
	if err != nil || len(all) != 2 {
		t.Fatalf("expected both blackouts, got %+v (%v)", all, err)
	}
	day, err := env.Service.ListProviderBlackouts("prov1", "2026-08-27")
	if err != nil || len(day) != 1 || day[0].Date != "2026-08-27" {
		t.Fatalf("expected the single day, got %+v (%v)", day, err)
	}
	if _, err := env.Service.ListProviderBlackouts("prov1", "someday"); !utils.IsInvalid(err) {
		t.Fatalf("expected invalid date, got %v", err)
	}
}

func TestListBookingsForProviderOwnerOnly(t *testing.T) {
	env := newBookingEnv(t)
	env.seedProvider(t, "prov1", "powner1")
	if _, err := env.Service.CreateBooking("owner1", bookingInput("14:00")); err != nil {
		t.Fatalf("create booking: %v", err)
	}
	other := bookingInput("16:00")
	other.Date = "2026-08-26"
	if _, err := env.Service.CreateBooking("owner2", other); err != nil {
		t.Fatalf("create booking: %v", err)
	}

	all, err := env.Service.ListBookingsForProvider("prov1", "powner1", "")
	if err != nil || len(all) != 2 {
		t.Fatalf("expected both bookings, got %+v (%v)", all, err)
	}
	day, err := env.Service.ListBookingsForProvider("prov1", "powner1", "2026-08-26")
	if err != nil || len(day) != 1 || day[0].OwnerID != "owner2" {
		t.Fatalf("expected the single day, got %+v (%v)", day, err)
	}
	if _, err := env.Service.ListBookingsForProvider("prov1", "stranger", ""); !utils.IsPermission(err) {
		t.Fatalf("expected permission error, got %v", err)
	}
	if _, err := env.Service.ListBookingsForProvider("prov1", "powner1", "someday"); !utils.IsInvalid(err) {
		t.Fatalf("expected invalid date, got %v", err)
	}
	if _, err := env.Service.ListBookingsForProvider("prov9", "powner1", ""); !utils.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListBookingsForUserNewestFirst(t *testing.T) {
	env := newBookingEnv(t)
	env.seedProvider(t, "prov1", "powner1")

	if _, err := env.Service.CreateBooking("owner1", bookingInput("14:00")); err != nil {
		t.Fatalf("create booking: %v", err)
	}
	env.Now = env.Now.Add(time.Minute)
	second := bookingInput("16:00")
	if _, err := env.Service.CreateBooking("owner1", second); err != nil {
		t.Fatalf("create booking: %v", err)
	}

	mine, err := env.Service.ListBookingsForUser("owner1")
	if err != nil || len(mine) != 2 {
		t.Fatalf("expected two bookings, got %+v (%v)", mine, err)
	}
	if mine[0].Slot != "16:00" || mine[1].Slot != "14:00" {
		t.Fatalf("bookings should list newest first, got %s then %s", mine[0].Slot, mine[1].Slot)
	}
}
