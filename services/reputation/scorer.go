package reputation

import (
	"math"
	"sort"

	"barkwise/models"
)

// Stats is the derived quote-response reputation for one provider.
// ResponseMinutes is 0 when no response history exists yet.
type Stats struct {
	ResponseMinutes int
	ResponseRate    int
	ResponseStreak  int
	Tier            string
}

// Compute derives reputation stats from every quote target ever addressed
// to a provider. Targets may arrive in any order; the streak is counted
// from the newest-created end and stops at the first unanswered target.
func Compute(targets []models.QuoteTarget) Stats {
	if len(targets) == 0 {
		return Stats{Tier: models.TierNone}
	}

	ordered := make([]models.QuoteTarget, len(targets))
	copy(ordered, targets)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	total := len(ordered)
	responded := 0
	var minuteSamples []float64
	for _, t := range ordered {
		if !t.Responded() {
			continue
		}
		responded++
		if t.RespondedAt != nil {
			diff := t.RespondedAt.Sub(t.CreatedAt).Minutes()
			if diff >= 0 {
				minuteSamples = append(minuteSamples, diff)
			}
		}
	}

	rate := int(math.Round(float64(responded) / float64(total) * 100))
	if rate < 0 {
		rate = 0
	}
	if rate > 100 {
		rate = 100
	}

	streak := 0
	for _, t := range ordered {
		if !t.Responded() {
			break
		}
		streak++
	}

	avgKnown := len(minuteSamples) > 0
	avgMinutes := 0
	if avgKnown {
		sum := 0.0
		for _, m := range minuteSamples {
			sum += m
		}
		avgMinutes = int(math.Round(sum / float64(len(minuteSamples))))
	}

	stats := Stats{
		ResponseRate:   rate,
		ResponseStreak: streak,
		Tier:           tierFor(total, rate, streak, avgMinutes, avgKnown),
	}
	if avgKnown {
		stats.ResponseMinutes = avgMinutes
		if stats.ResponseMinutes < 1 {
			stats.ResponseMinutes = 1
		}
	}
	return stats
}

// tierFor walks the tier ladder top-down; fewer than three targets is
// never enough history for any tier.
func tierFor(total, rate, streak, avgMinutes int, avgKnown bool) string {
	switch {
	case total < 3:
		return models.TierNone
	case rate >= 95 && avgKnown && avgMinutes <= 15 && streak >= 5:
		return models.TierPlatinum
	case rate >= 90 && avgKnown && avgMinutes <= 20 && streak >= 3:
		return models.TierGold
	case rate >= 75 && avgKnown && avgMinutes <= 35:
		return models.TierSilver
	case rate >= 60 && avgKnown && avgMinutes <= 60:
		return models.TierBronze
	default:
		return models.TierNone
	}
}
