package group

import (
	"time"

	groupRepo "barkwise/database/repository/group"
	"barkwise/models"
	"barkwise/services/notification"
)

// GroupService manages suburb communities, their memberships, the two
// recurring challenges and invite links.
type GroupService interface {
	CreateGroup(ownerID, name, suburb string) (*models.GroupView, error)
	EnsureOfficialGroup(suburb string) (*models.Group, error)
	GetGroup(groupID, viewerID string) (*models.GroupView, error)
	ListGroups(suburb, viewerID string) ([]*models.GroupView, error)

	JoinGroup(groupID, userID string) (*models.GroupView, error)
	AddMember(groupID, requesterID, memberID string) (*models.GroupView, error)
	ListJoinRequests(groupID, requesterID string) ([]models.GroupMembership, error)
	ModerateJoinRequest(groupID, requesterID, memberID, action string) (*models.GroupView, error)

	ListChallenges(groupID, viewerID string) ([]models.ChallengeView, error)
	Participate(groupID, userID, challengeType string, count int) (*models.ParticipationResult, error)

	CreateGroupInvite(groupID, inviterID string) (*models.GroupInvite, error)
	ResolveGroupInvite(token string) (*models.GroupInvite, error)
	RedeemGroupInvite(token, newUserID string) (*models.GroupView, error)
}

// DefaultGroupService implements GroupService.
type DefaultGroupService struct {
	Repo     groupRepo.GroupRepository
	Notifier notification.Dispatcher
	Now      func() time.Time
}

func NewDefaultGroupService(repo groupRepo.GroupRepository, notifier notification.Dispatcher) *DefaultGroupService {
	return &DefaultGroupService{
		Repo:     repo,
		Notifier: notifier,
		Now:      time.Now,
	}
}

func (s *DefaultGroupService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
