package group

import (
	"testing"
	"time"

	"barkwise/models"
)

func TestMonthCycle(t *testing.T) {
	now := time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC)
	start, end, key := monthCycle(now)
	if !start.Equal(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start %v", start)
	}
	if !end.Equal(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected end %v", end)
	}
	if key != "202608" {
		t.Fatalf("unexpected key %s", key)
	}
}

func TestWeekCycleAnchorsOnMonday(t *testing.T) {
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	for _, day := range []time.Time{
		monday,
		monday.AddDate(0, 0, 1),
		monday.AddDate(0, 0, 6), // Sunday
	} {
		start, end, key := weekCycle(day.Add(13 * time.Hour))
		if !start.Equal(monday) {
			t.Fatalf("%v: unexpected start %v", day, start)
		}
		if !end.Equal(monday.AddDate(0, 0, 7)) {
			t.Fatalf("%v: unexpected end %v", day, end)
		}
		if key != "2026W35" {
			t.Fatalf("%v: unexpected key %s", day, key)
		}
	}

	_, _, nextKey := weekCycle(monday.AddDate(0, 0, 7))
	if nextKey != "2026W36" {
		t.Fatalf("next Monday should roll the cycle, got %s", nextKey)
	}
}

func TestChallengeIDEmbedsCycle(t *testing.T) {
	got := challengeID("g1", models.ChallengeGrowth, "202608")
	if got != "gc_pack_builder_g1_202608" {
		t.Fatalf("unexpected id %s", got)
	}
}

func TestChallengeTemplateScalesWithGroupSize(t *testing.T) {
	cases := []struct {
		members       int
		growthTarget  int
		cleanupTarget int
	}{
		{1, 5, 8},
		{100, 28, 39},
		{500, 30, 40},
	}
	for _, tc := range cases {
		g := &models.Group{MemberCount: tc.members}
		if _, _, target, _ := challengeTemplate(g, models.ChallengeGrowth); target != tc.growthTarget {
			t.Fatalf("members=%d: growth target %d, want %d", tc.members, target, tc.growthTarget)
		}
		if _, _, target, _ := challengeTemplate(g, models.ChallengeCleanup); target != tc.cleanupTarget {
			t.Fatalf("members=%d: cleanup target %d, want %d", tc.members, target, tc.cleanupTarget)
		}
	}
}
