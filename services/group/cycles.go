package group

import (
	"fmt"
	"time"

	"barkwise/models"
)

// monthCycle returns the current calendar-month window and its cycle key
// (YYYYMM).
func monthCycle(now time.Time) (start, end time.Time, key string) {
	start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0)
	return start, end, start.Format("200601")
}

// weekCycle returns the current Monday-anchored week and its ISO week key
// (e.g. 2026W35).
func weekCycle(now time.Time) (start, end time.Time, key string) {
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -daysSinceMonday)
	end = start.AddDate(0, 0, 7)
	isoYear, isoWeek := start.ISOWeek()
	return start, end, fmt.Sprintf("%dW%02d", isoYear, isoWeek)
}

func challengeID(groupID, challengeType, cycle string) string {
	return fmt.Sprintf("gc_%s_%s_%s", challengeType, groupID, cycle)
}

// challengeTemplate scales the cycle target with the group's size.
func challengeTemplate(g *models.Group, challengeType string) (title, description string, target int, rewardLabel string) {
	if challengeType == models.ChallengeGrowth {
		target = clamp(g.MemberCount/4+3, 5, 30)
		return "Pack Builder",
			"Grow your local pack together. Every new approved member helps.",
			target,
			"Group badge: Pack Builder"
	}
	target = clamp(g.MemberCount/3+6, 8, 40)
	return "Clean Park Streak",
		"Log cleanup check-ins as a group. Team progress unlocks shared rewards.",
		target,
		"Group badge: Clean Park Collective"
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func badgeFor(challengeType string) string {
	if challengeType == models.ChallengeGrowth {
		return models.BadgePackBuilder
	}
	return models.BadgeCleanPark
}

// deriveChallenge materialises the group's current challenge of the given
// type from the clock, the group size and the contribution ledger. The
// cycle key in the ID scopes progress to the running month or week.
func (s *DefaultGroupService) deriveChallenge(g *models.Group, challengeType string) (*models.GroupChallenge, error) {
	now := s.now()
	var start, end time.Time
	var cycle string
	if challengeType == models.ChallengeGrowth {
		start, end, cycle = monthCycle(now)
	} else {
		start, end, cycle = weekCycle(now)
	}
	id := challengeID(g.ID, challengeType, cycle)
	progress, err := s.Repo.ChallengeTotal(id)
	if err != nil {
		return nil, err
	}
	title, description, target, rewardLabel := challengeTemplate(g, challengeType)
	status := models.ChallengeActive
	if progress >= target {
		status = models.ChallengeCompleted
	}
	return &models.GroupChallenge{
		ID:            id,
		GroupID:       g.ID,
		Type:          challengeType,
		Title:         title,
		Description:   description,
		TargetCount:   target,
		ProgressCount: progress,
		Status:        status,
		RewardLabel:   rewardLabel,
		StartAt:       start,
		EndAt:         end,
	}, nil
}
