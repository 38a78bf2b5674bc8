package group

import (
	"fmt"
	"sort"

	"barkwise/models"
	"barkwise/utils"
)

func (s *DefaultGroupService) ListChallenges(groupID, viewerID string) ([]models.ChallengeView, error) {
	g, err := s.fetchGroup(groupID)
	if err != nil {
		return nil, err
	}
	views := make([]models.ChallengeView, 0, 2)
	for _, challengeType := range []string{models.ChallengeGrowth, models.ChallengeCleanup} {
		challenge, err := s.deriveChallenge(g, challengeType)
		if err != nil {
			return nil, err
		}
		mine := 0
		if viewerID != "" {
			if mine, err = s.Repo.UserContribution(challenge.ID, viewerID); err != nil {
				return nil, err
			}
		}
		views = append(views, models.ChallengeView{Challenge: *challenge, MyContribution: mine})
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Challenge.Type < views[j].Challenge.Type
	})
	return views, nil
}

// Participate logs a member's contribution to a challenge. A completed
// challenge absorbs no further contributions; crossing the target awards
// the badge and tells the owner; every fifth personal contribution earns
// the contributor a recognition nudge.
func (s *DefaultGroupService) Participate(groupID, userID, challengeType string, count int) (*models.ParticipationResult, error) {
	if !models.ValidChallengeType(challengeType) {
		return nil, utils.InvalidErr("Invalid challenge type. Allowed: %s, %s",
			models.ChallengeGrowth, models.ChallengeCleanup)
	}
	if count < 1 {
		return nil, utils.InvalidErr("contribution_count must be at least 1")
	}
	g, err := s.fetchGroup(groupID)
	if err != nil {
		return nil, err
	}
	m, err := s.Repo.GetMembership(groupID, userID)
	if err != nil {
		return nil, err
	}
	if m == nil || m.Status != models.MembershipMember {
		return nil, utils.PermissionErr("Only members can contribute to group challenges")
	}

	challenge, err := s.deriveChallenge(g, challengeType)
	if err != nil {
		return nil, err
	}
	if challenge.Status == models.ChallengeCompleted {
		mine, err := s.Repo.UserContribution(challenge.ID, userID)
		if err != nil {
			return nil, err
		}
		return &models.ParticipationResult{
			Challenge:      *challenge,
			MyContribution: mine,
			Contribution:   0,
			RewardUnlocked: false,
			UnlockedBadges: []string{},
		}, nil
	}

	if err := s.Repo.AddContribution(challenge.ID, g.ID, challengeType, userID, count); err != nil {
		return nil, err
	}
	growth, cleanup := 0, 0
	if challengeType == models.ChallengeGrowth {
		growth = count
	} else {
		cleanup = count
	}
	if err := s.Repo.AddRewardPoints(g.ID, userID, growth, cleanup); err != nil {
		return nil, err
	}

	progress, err := s.Repo.ChallengeTotal(challenge.ID)
	if err != nil {
		return nil, err
	}
	challenge.ProgressCount = progress

	// The challenge was active on entry, so reaching the target here is
	// the crossing that unlocks the badge.
	unlockedBadges := []string{}
	if progress >= challenge.TargetCount {
		challenge.Status = models.ChallengeCompleted
		badge := badgeFor(challengeType)
		if err := s.Repo.AddBadge(g.ID, badge); err != nil {
			return nil, err
		}
		unlockedBadges = append(unlockedBadges, badge)
		if g.OwnerID != "" && g.OwnerID != userID {
			s.Notifier.Notify(g.OwnerID, "Group challenge completed",
				fmt.Sprintf("%s completed %s.", g.Name, challenge.Title),
				"community", "group:"+g.ID)
		}
	}

	mine, err := s.Repo.UserContribution(challenge.ID, userID)
	if err != nil {
		return nil, err
	}
	rewardUnlocked := len(unlockedBadges) > 0 || (mine > 0 && mine%5 == 0)
	if rewardUnlocked {
		s.Notifier.Notify(userID, "Community reward unlocked",
			fmt.Sprintf("You earned recognition in %s.", challenge.Title),
			"community", "group:"+g.ID)
	}

	return &models.ParticipationResult{
		Challenge:      *challenge,
		MyContribution: mine,
		Contribution:   count,
		RewardUnlocked: rewardUnlocked,
		UnlockedBadges: unlockedBadges,
	}, nil
}
