package reputation_test

import (
	"testing"
	"time"

	"barkwise/models"
	"barkwise/services/reputation"
)

var scorerBase = time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)

func answered(created time.Time, after time.Duration) models.QuoteTarget {
	at := created.Add(after)
	return models.QuoteTarget{Status: models.TargetAccepted, CreatedAt: created, RespondedAt: &at}
}

func declined(created time.Time, after time.Duration) models.QuoteTarget {
	at := created.Add(after)
	return models.QuoteTarget{Status: models.TargetDeclined, CreatedAt: created, RespondedAt: &at}
}

func unanswered(created time.Time) models.QuoteTarget {
	return models.QuoteTarget{Status: models.TargetPending, CreatedAt: created}
}

func TestComputeEmptyHistory(t *testing.T) {
	stats := reputation.Compute(nil)
	if stats.Tier != models.TierNone {
		t.Fatalf("expected tier none, got %s", stats.Tier)
	}
	if stats.ResponseMinutes != 0 || stats.ResponseRate != 0 || stats.ResponseStreak != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}

func TestComputeTwoTargetsNeverTiered(t *testing.T) {
	targets := []models.QuoteTarget{
		answered(scorerBase, 2*time.Minute),
		answered(scorerBase.Add(time.Hour), 2*time.Minute),
	}
	stats := reputation.Compute(targets)
	if stats.ResponseRate != 100 {
		t.Fatalf("expected 100%% rate, got %d", stats.ResponseRate)
	}
	if stats.Tier != models.TierNone {
		t.Fatalf("two targets is not enough history for a tier, got %s", stats.Tier)
	}
}

func TestComputeGoldAtThreeFastResponses(t *testing.T) {
	var targets []models.QuoteTarget
	for i := 0; i < 3; i++ {
		targets = append(targets, answered(scorerBase.Add(time.Duration(i)*time.Hour), 2*time.Minute))
	}
	stats := reputation.Compute(targets)
	if stats.ResponseRate != 100 || stats.ResponseStreak != 3 || stats.ResponseMinutes != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	// Streak 3 satisfies gold but not the platinum streak requirement.
	if stats.Tier != models.TierGold {
		t.Fatalf("expected gold, got %s", stats.Tier)
	}
}

func TestComputePlatinum(t *testing.T) {
	var targets []models.QuoteTarget
	for i := 0; i < 5; i++ {
		targets = append(targets, answered(scorerBase.Add(time.Duration(i)*time.Hour), 10*time.Minute))
	}
	stats := reputation.Compute(targets)
	if stats.Tier != models.TierPlatinum {
		t.Fatalf("expected platinum, got %s (stats %+v)", stats.Tier, stats)
	}
}

func TestComputeSilverIgnoresStreak(t *testing.T) {
	// Newest target unanswered kills the streak, but silver only needs
	// rate and speed.
	targets := []models.QuoteTarget{
		answered(scorerBase, 30*time.Minute),
		answered(scorerBase.Add(time.Hour), 30*time.Minute),
		answered(scorerBase.Add(2*time.Hour), 30*time.Minute),
		unanswered(scorerBase.Add(3 * time.Hour)),
	}
	stats := reputation.Compute(targets)
	if stats.ResponseRate != 75 || stats.ResponseStreak != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats.Tier != models.TierSilver {
		t.Fatalf("expected silver, got %s", stats.Tier)
	}
}

func TestComputeBronze(t *testing.T) {
	targets := []models.QuoteTarget{
		answered(scorerBase, 50*time.Minute),
		answered(scorerBase.Add(time.Hour), 50*time.Minute),
		answered(scorerBase.Add(2*time.Hour), 50*time.Minute),
		unanswered(scorerBase.Add(3 * time.Hour)),
		unanswered(scorerBase.Add(4 * time.Hour)),
	}
	stats := reputation.Compute(targets)
	if stats.ResponseRate != 60 {
		t.Fatalf("expected 60%% rate, got %d", stats.ResponseRate)
	}
	if stats.Tier != models.TierBronze {
		t.Fatalf("expected bronze, got %s", stats.Tier)
	}
}

func TestComputeStreakStopsAtFirstUnanswered(t *testing.T) {
	targets := []models.QuoteTarget{
		answered(scorerBase, 5*time.Minute),
		answered(scorerBase.Add(time.Hour), 5*time.Minute),
		unanswered(scorerBase.Add(2 * time.Hour)),
		answered(scorerBase.Add(3*time.Hour), 5*time.Minute),
		answered(scorerBase.Add(4*time.Hour), 5*time.Minute),
	}
	stats := reputation.Compute(targets)
	if stats.ResponseStreak != 2 {
		t.Fatalf("expected streak 2 counted from the newest target, got %d", stats.ResponseStreak)
	}
	if stats.ResponseRate != 80 {
		t.Fatalf("expected 80%% rate, got %d", stats.ResponseRate)
	}
}

func TestComputeMinutesFlooredAtOne(t *testing.T) {
	var targets []models.QuoteTarget
	for i := 0; i < 3; i++ {
		targets = append(targets, answered(scorerBase.Add(time.Duration(i)*time.Hour), 20*time.Second))
	}
	stats := reputation.Compute(targets)
	if stats.ResponseMinutes != 1 {
		t.Fatalf("sub-minute averages should floor to 1, got %d", stats.ResponseMinutes)
	}
	if stats.Tier != models.TierGold {
		t.Fatalf("expected gold, got %s", stats.Tier)
	}
}

func TestComputeDeclinesCountAsResponses(t *testing.T) {
	var targets []models.QuoteTarget
	for i := 0; i < 3; i++ {
		targets = append(targets, declined(scorerBase.Add(time.Duration(i)*time.Hour), 5*time.Minute))
	}
	stats := reputation.Compute(targets)
	if stats.ResponseRate != 100 {
		t.Fatalf("declines are responses; expected 100%%, got %d", stats.ResponseRate)
	}
	if stats.Tier != models.TierGold {
		t.Fatalf("expected gold, got %s", stats.Tier)
	}
}

func TestSocialProofLineOrder(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	vetUntil := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	highlightUntil := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	p := &models.Provider{
		Suburb:           "Newtown",
		Tier:             models.TierGold,
		ResponseRate:     96,
		ResponseStreak:   6,
		ResponseMinutes:  12,
		VetChecked:       true,
		VetCheckedUntil:  &vetUntil,
		HighlightedUntil: &highlightUntil,
	}
	lines := reputation.SocialProofLines(p, 4, 2, now)
	want := []string{
		"Vet-checked until 2026-09-30",
		"Quote Sprint Gold • 96% response rate • 6 streak",
		"Used by 4 pet owners in Newtown this month",
		"2 members from your groups booked this provider",
		"Typically responds in about 12 min",
		"Highlighted vet owner until 2026-09-15",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %v", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestSocialProofSkipsExpiredAndEmptySignals(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	expired := now.Add(-time.Hour)
	p := &models.Provider{
		Suburb:          "Newtown",
		Tier:            models.TierNone,
		VetChecked:      true,
		VetCheckedUntil: &expired,
	}
	if lines := reputation.SocialProofLines(p, 0, 0, now); len(lines) != 0 {
		t.Fatalf("expected no lines, got %v", lines)
	}
}
