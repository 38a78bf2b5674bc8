package groupRepo

import (
	"errors"

	"barkwise/models"
)

// Sentinel errors returned by implementations.
var (
	ErrNotFound       = errors.New("group not found")
	ErrInviteNotFound = errors.New("invite not found")
)

// GroupRepository defines data access for groups, memberships, the
// challenge contribution ledger, reward points and invites. The Find*
// lookups return (nil, nil) when nothing matches; GetByID and GetInvite
// return the sentinel errors instead.
type GroupRepository interface {
	CreateGroup(group *models.Group) error
	GetByID(id string) (*models.Group, error)
	FindByNameSuburb(name, suburb string) (*models.Group, error)
	FindOfficialBySuburb(suburb string) (*models.Group, error)
	ListGroups(suburb string) ([]models.Group, error)
	IncrementMemberCount(id string, delta int) error
	// AddBadge inserts a badge into the group's badge set; inserting an
	// existing badge is a no-op.
	AddBadge(id, badge string) error

	UpsertMembership(membership *models.GroupMembership) error
	GetMembership(groupID, userID string) (*models.GroupMembership, error)
	DeleteMembership(groupID, userID string) error
	ListMemberships(groupID, status string) ([]models.GroupMembership, error)
	CountMemberships(groupID, status string) (int, error)
	// MemberGroupIDs maps each given user to the groups they are a full
	// member of.
	MemberGroupIDs(userIDs []string) (map[string][]string, error)

	// AddContribution increments the ledger entry keyed by challenge and
	// contributor. The challenge id embeds the cycle key, so a new cycle
	// naturally starts from zero.
	AddContribution(challengeID, groupID, challengeType, userID string, count int) error
	ChallengeTotal(challengeID string) (int, error)
	UserContribution(challengeID, userID string) (int, error)

	AddRewardPoints(groupID, userID string, growth, cleanup int) error
	RewardPointsFor(groupID, userID string) (models.RewardPoints, error)
	// SumRewardPoints is the group's cooperative score: every member's
	// growth plus cleanup points.
	SumRewardPoints(groupID string) (int, error)

	CreateInvite(invite *models.GroupInvite) error
	GetInvite(token string) (*models.GroupInvite, error)
}
