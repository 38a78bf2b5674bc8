package group

import (
	"fmt"

	"go.uber.org/zap"

	"barkwise/models"
	"barkwise/utils"
)

// applyGrowthReward credits the growth challenge for a newly added member:
// the contributor's ledger entry and growth points go up by count, the
// newcomer collects one growth point, and a newly met target awards the
// badge without notifying anyone.
func (s *DefaultGroupService) applyGrowthReward(g *models.Group, contributorID, newcomerID string, count int) error {
	challenge, err := s.deriveChallenge(g, models.ChallengeGrowth)
	if err != nil {
		return err
	}
	completedBefore := challenge.Status == models.ChallengeCompleted

	if contributorID != "" {
		if err := s.Repo.AddContribution(challenge.ID, g.ID, models.ChallengeGrowth, contributorID, count); err != nil {
			return err
		}
		if err := s.Repo.AddRewardPoints(g.ID, contributorID, count, 0); err != nil {
			return err
		}
	}
	if newcomerID != "" {
		if err := s.Repo.AddRewardPoints(g.ID, newcomerID, 1, 0); err != nil {
			return err
		}
	}

	if !completedBefore && contributorID != "" {
		progress, err := s.Repo.ChallengeTotal(challenge.ID)
		if err != nil {
			return err
		}
		if progress >= challenge.TargetCount {
			if err := s.Repo.AddBadge(g.ID, models.BadgePackBuilder); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *DefaultGroupService) JoinGroup(groupID, userID string) (*models.GroupView, error) {
	g, err := s.fetchGroup(groupID)
	if err != nil {
		return nil, err
	}
	existing, err := s.Repo.GetMembership(groupID, userID)
	if err != nil {
		return nil, err
	}

	created := false
	status := ""
	if existing != nil {
		status = existing.Status
	} else {
		created = true
		status = models.MembershipPending
		if g.Official {
			status = models.MembershipMember
		}
		m := &models.GroupMembership{
			GroupID:   groupID,
			UserID:    userID,
			Status:    status,
			CreatedAt: s.now(),
		}
		if err := s.Repo.UpsertMembership(m); err != nil {
			utils.GetLogger().Error("JoinGroup: failed to store membership",
				zap.Error(err), zap.String("groupID", groupID), zap.String("userID", userID))
			return nil, err
		}
		if status == models.MembershipMember {
			if err := s.Repo.IncrementMemberCount(groupID, 1); err != nil {
				return nil, err
			}
			g.MemberCount++
			if err := s.applyGrowthReward(g, userID, userID, 1); err != nil {
				utils.GetLogger().Error("JoinGroup: failed to apply growth reward",
					zap.Error(err), zap.String("groupID", groupID))
			}
		}
	}

	view, err := s.buildView(g, userID)
	if err != nil {
		return nil, err
	}
	// A repeat join is a pure read; only a fresh request pings the owner.
	if created && status == models.MembershipPending && g.OwnerID != "" && g.OwnerID != userID {
		s.Notifier.Notify(g.OwnerID, "New group join request",
			fmt.Sprintf("%s requested to join %s", userID, g.Name),
			"community", "group:"+g.ID)
	}
	if created && status == models.MembershipMember {
		s.Notifier.Notify(userID, "Pack Builder points earned",
			fmt.Sprintf("You helped grow %s.", g.Name),
			"community", "group:"+g.ID)
	}
	return view, nil
}

// AddMember is the owner's direct add, skipping the request queue. Adding
// an existing member or applicant is a no-op.
func (s *DefaultGroupService) AddMember(groupID, requesterID, memberID string) (*models.GroupView, error) {
	g, err := s.fetchGroup(groupID)
	if err != nil {
		return nil, err
	}
	if g.OwnerID != requesterID {
		return nil, utils.PermissionErr("Only group owner can add members")
	}

	existing, err := s.Repo.GetMembership(groupID, memberID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		m := &models.GroupMembership{
			GroupID:   groupID,
			UserID:    memberID,
			Status:    models.MembershipMember,
			CreatedAt: s.now(),
		}
		if err := s.Repo.UpsertMembership(m); err != nil {
			return nil, err
		}
		if err := s.Repo.IncrementMemberCount(groupID, 1); err != nil {
			return nil, err
		}
		g.MemberCount++
		if err := s.applyGrowthReward(g, requesterID, memberID, 1); err != nil {
			utils.GetLogger().Error("AddMember: failed to apply growth reward",
				zap.Error(err), zap.String("groupID", groupID))
		}
	}
	return s.buildView(g, requesterID)
}

func (s *DefaultGroupService) ListJoinRequests(groupID, requesterID string) ([]models.GroupMembership, error) {
	g, err := s.fetchGroup(groupID)
	if err != nil {
		return nil, err
	}
	if g.OwnerID == "" || g.OwnerID != requesterID {
		return nil, utils.PermissionErr("Only group admins can view requests")
	}
	return s.Repo.ListMemberships(groupID, models.MembershipPending)
}

func (s *DefaultGroupService) ModerateJoinRequest(groupID, requesterID, memberID, action string) (*models.GroupView, error) {
	if action != "approve" && action != "reject" {
		return nil, utils.InvalidErr("Invalid action. Allowed: approve, reject")
	}
	g, err := s.fetchGroup(groupID)
	if err != nil {
		return nil, err
	}
	if g.OwnerID == "" || g.OwnerID != requesterID {
		return nil, utils.PermissionErr("Only group admins can moderate requests")
	}

	record, err := s.Repo.GetMembership(groupID, memberID)
	if err != nil {
		return nil, err
	}
	if record == nil || record.Status != models.MembershipPending {
		return nil, utils.NotFoundErr("Pending request not found")
	}

	if action == "approve" {
		record.Status = models.MembershipMember
		if err := s.Repo.UpsertMembership(record); err != nil {
			return nil, err
		}
		if err := s.Repo.IncrementMemberCount(groupID, 1); err != nil {
			return nil, err
		}
		g.MemberCount++
		if err := s.applyGrowthReward(g, requesterID, memberID, 1); err != nil {
			utils.GetLogger().Error("ModerateJoinRequest: failed to apply growth reward",
				zap.Error(err), zap.String("groupID", groupID))
		}
	} else {
		if err := s.Repo.DeleteMembership(groupID, memberID); err != nil {
			return nil, err
		}
	}

	view, err := s.buildView(g, requesterID)
	if err != nil {
		return nil, err
	}
	outcome := "approved"
	if action == "reject" {
		outcome = "rejected"
	}
	s.Notifier.Notify(memberID, "Group request updated",
		fmt.Sprintf("Your request for %s was %s", g.Name, outcome),
		"community", "group:"+g.ID)
	return view, nil
}
