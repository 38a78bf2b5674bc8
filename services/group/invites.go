package group

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"barkwise/config"
	groupRepo "barkwise/database/repository/group"
	"barkwise/models"
	"barkwise/utils"
)

// InviteURL is the deep link a client opens to join through an invite.
func InviteURL(token, groupID string) string {
	return fmt.Sprintf("barkwise://join?invite_token=%s&group_id=%s", token, groupID)
}

func (s *DefaultGroupService) CreateGroupInvite(groupID, inviterID string) (*models.GroupInvite, error) {
	g, err := s.fetchGroup(groupID)
	if err != nil {
		return nil, err
	}
	m, err := s.Repo.GetMembership(groupID, inviterID)
	if err != nil {
		return nil, err
	}
	isMember := m != nil && m.Status == models.MembershipMember
	isAdmin := g.OwnerID != "" && g.OwnerID == inviterID
	if !isMember && !isAdmin {
		return nil, utils.PermissionErr("Only members can create invite links")
	}

	now := s.now()
	invite := &models.GroupInvite{
		Token:     utils.NewID("inv"),
		GroupID:   g.ID,
		GroupName: g.Name,
		Suburb:    g.Suburb,
		InviterID: inviterID,
		ExpiresAt: now.Add(config.InviteTTL()),
		CreatedAt: now,
	}
	if err := s.Repo.CreateInvite(invite); err != nil {
		utils.GetLogger().Error("CreateGroupInvite: failed to store invite",
			zap.Error(err), zap.String("groupID", groupID))
		return nil, err
	}
	invite.InviteURL = InviteURL(invite.Token, g.ID)
	return invite, nil
}

func (s *DefaultGroupService) ResolveGroupInvite(token string) (*models.GroupInvite, error) {
	invite, err := s.Repo.GetInvite(token)
	if err != nil {
		if errors.Is(err, groupRepo.ErrInviteNotFound) {
			return nil, utils.NotFoundErr("Invite not found")
		}
		return nil, err
	}
	if !invite.ExpiresAt.After(s.now()) {
		return nil, utils.ConflictErr("Invite expired")
	}
	invite.InviteURL = InviteURL(invite.Token, invite.GroupID)
	return invite, nil
}

// RedeemGroupInvite joins the authenticated user through an invite link,
// crediting the inviter's growth ledger. Redeeming while already a member
// or applicant changes nothing.
func (s *DefaultGroupService) RedeemGroupInvite(token, newUserID string) (*models.GroupView, error) {
	invite, err := s.ResolveGroupInvite(token)
	if err != nil {
		return nil, err
	}
	g, err := s.fetchGroup(invite.GroupID)
	if err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetMembership(g.ID, newUserID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		m := &models.GroupMembership{
			GroupID:   g.ID,
			UserID:    newUserID,
			Status:    models.MembershipMember,
			CreatedAt: s.now(),
		}
		if err := s.Repo.UpsertMembership(m); err != nil {
			return nil, err
		}
		if err := s.Repo.IncrementMemberCount(g.ID, 1); err != nil {
			return nil, err
		}
		g.MemberCount++
		if err := s.applyGrowthReward(g, invite.InviterID, newUserID, 1); err != nil {
			utils.GetLogger().Error("RedeemGroupInvite: failed to apply growth reward",
				zap.Error(err), zap.String("groupID", g.ID))
		}

		if invite.InviterID != "" {
			s.Notifier.Notify(invite.InviterID, "Pack Builder progress",
				fmt.Sprintf("A new member joined %s. Challenge progress increased.", g.Name),
				"community", "group:"+g.ID)
		}
		s.Notifier.Notify(newUserID, "Welcome reward unlocked",
			fmt.Sprintf("You earned Pack Builder points by joining %s.", g.Name),
			"community", "group:"+g.ID)
	}
	return s.buildView(g, newUserID)
}
