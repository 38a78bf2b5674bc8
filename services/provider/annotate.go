package provider

import (
	"time"

	"go.uber.org/zap"

	"barkwise/models"
	"barkwise/services/reputation"
	"barkwise/utils"
)

// annotate attaches the social-proof lines to each provider. Annotation is
// decorative: count lookups that fail are logged and treated as zero so a
// flaky aggregate never breaks a directory read.
func (s *DefaultProviderService) annotate(providers []*models.Provider, viewerID string) {
	if len(providers) == 0 {
		return
	}
	now := s.now()
	ids := make([]string, 0, len(providers))
	for _, p := range providers {
		ids = append(ids, p.ID)
	}

	local, err := s.Bookings.DistinctOwnersSince(ids, monthStart(now))
	if err != nil {
		utils.GetLogger().Warn("annotate: failed to count local bookers", zap.Error(err))
		local = map[string]int{}
	}
	shared := s.sharedGroupBookers(ids, viewerID)

	for _, p := range providers {
		p.SocialProof = reputation.SocialProofLines(p, local[p.ID], shared[p.ID], now)
	}
}

func monthStart(now time.Time) string {
	return now.Format("2006-01") + "-01"
}

// sharedGroupBookers counts, per provider, the distinct booking owners who
// share at least one group membership with the viewer. A viewer with their
// own booking counts themselves.
func (s *DefaultProviderService) sharedGroupBookers(providerIDs []string, viewerID string) map[string]int {
	counts := make(map[string]int)
	if viewerID == "" {
		return counts
	}
	owners, err := s.Bookings.ActiveOwnerIDs(providerIDs)
	if err != nil {
		utils.GetLogger().Warn("sharedGroupBookers: failed to list booking owners", zap.Error(err))
		return counts
	}

	userIDs := []string{viewerID}
	seen := map[string]bool{viewerID: true}
	for _, list := range owners {
		for _, id := range list {
			if !seen[id] {
				seen[id] = true
				userIDs = append(userIDs, id)
			}
		}
	}
	groupsByUser, err := s.Groups.MemberGroupIDs(userIDs)
	if err != nil {
		utils.GetLogger().Warn("sharedGroupBookers: failed to load memberships", zap.Error(err))
		return counts
	}
	viewerGroups := make(map[string]bool, len(groupsByUser[viewerID]))
	for _, gid := range groupsByUser[viewerID] {
		viewerGroups[gid] = true
	}
	if len(viewerGroups) == 0 {
		return counts
	}

	for pid, ownerIDs := range owners {
		for _, uid := range ownerIDs {
			for _, gid := range groupsByUser[uid] {
				if viewerGroups[gid] {
					counts[pid]++
					break
				}
			}
		}
	}
	return counts
}
