package reputation

import (
	"fmt"
	"strings"
	"time"

	"barkwise/models"
)

// SocialProofLines renders the ordered trust summary for a listing. Every
// line is conditional, and trust signals (vet check, quote sprint) come
// before volume signals; consumers rely on that order.
func SocialProofLines(p *models.Provider, localBookers, sharedGroupBookers int, now time.Time) []string {
	lines := []string{}
	if p.VetChecked && p.VetCheckedUntil != nil && p.VetCheckedUntil.After(now) {
		lines = append(lines, fmt.Sprintf("Vet-checked until %s", p.VetCheckedUntil.Format("2006-01-02")))
	}
	if p.Tier != "" && p.Tier != models.TierNone {
		lines = append(lines, fmt.Sprintf("Quote Sprint %s • %d%% response rate • %d streak",
			titleTier(p.Tier), p.ResponseRate, p.ResponseStreak))
	}
	if localBookers > 0 {
		lines = append(lines, fmt.Sprintf("Used by %d pet owners in %s this month", localBookers, p.Suburb))
	}
	if sharedGroupBookers > 0 {
		lines = append(lines, fmt.Sprintf("%d members from your groups booked this provider", sharedGroupBookers))
	}
	if p.ResponseMinutes > 0 {
		lines = append(lines, fmt.Sprintf("Typically responds in about %d min", p.ResponseMinutes))
	}
	if p.HighlightedUntil != nil && p.HighlightedUntil.After(now) {
		lines = append(lines, fmt.Sprintf("Highlighted vet owner until %s", p.HighlightedUntil.Format("2006-01-02")))
	}
	return lines
}

func titleTier(tier string) string {
	if tier == "" {
		return tier
	}
	return strings.ToUpper(tier[:1]) + tier[1:]
}
