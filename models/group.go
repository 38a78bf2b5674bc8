package models

import "time"

// Challenge types. The growth challenge runs on a monthly cycle, the
// cleanup challenge on an ISO-week cycle.
const (
	ChallengeGrowth  = "pack_builder"
	ChallengeCleanup = "clean_park_streak"
)

// ValidChallengeType reports whether t is a known challenge type.
func ValidChallengeType(t string) bool {
	return t == ChallengeGrowth || t == ChallengeCleanup
}

// Badges awarded on challenge completion.
const (
	BadgePackBuilder = "Pack Builder"
	BadgeCleanPark   = "Clean Park Collective"
)

// Challenge statuses.
const (
	ChallengeActive    = "active"
	ChallengeCompleted = "completed"
)

// Membership statuses.
const (
	MembershipNone    = "none"
	MembershipMember  = "member"
	MembershipPending = "pending"
)

// Group is a suburb community. Official groups are system-owned, one per
// suburb; user groups carry their creator as owner.
type Group struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Suburb      string    `bson:"suburb" json:"suburb"`
	OwnerID     string    `bson:"ownerId,omitempty" json:"ownerId,omitempty"`
	Official    bool      `bson:"official" json:"official"`
	MemberCount int       `bson:"memberCount" json:"memberCount"`
	Badges      []string  `bson:"badges,omitempty" json:"badges,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// GroupMembership links a user to a group as "member" or "pending".
type GroupMembership struct {
	GroupID   string    `bson:"groupId" json:"groupId"`
	UserID    string    `bson:"userId" json:"userId"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// GroupChallenge is derived on read, never stored. The cycle key baked
// into the ID makes a new week or month start progress at zero without
// any reset job.
type GroupChallenge struct {
	ID            string    `json:"id"` // gc_{type}_{groupID}_{cycleKey}
	GroupID       string    `json:"groupId"`
	Type          string    `json:"type"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	TargetCount   int       `json:"targetCount"`
	ProgressCount int       `json:"progressCount"`
	Status        string    `json:"status"` // active | completed
	RewardLabel   string    `json:"rewardLabel"`
	StartAt       time.Time `json:"startAt"`
	EndAt         time.Time `json:"endAt"`
}

// RewardPoints accumulates a member's recognition within one group.
type RewardPoints struct {
	GroupID string `bson:"groupId" json:"groupId"`
	UserID  string `bson:"userId" json:"userId"`
	Growth  int    `bson:"growth" json:"growth"`
	Cleanup int    `bson:"cleanup" json:"cleanup"`
}

// Total is the member's combined score used for the cooperative score.
func (p RewardPoints) Total() int { return p.Growth + p.Cleanup }

// GroupInvite is a shareable join link with a 48-hour expiry.
type GroupInvite struct {
	Token     string    `bson:"token" json:"token"`
	GroupID   string    `bson:"groupId" json:"groupId"`
	GroupName string    `bson:"groupName" json:"groupName"`
	Suburb    string    `bson:"suburb" json:"suburb"`
	InviterID string    `bson:"inviterId" json:"inviterId"`
	ExpiresAt time.Time `bson:"expiresAt" json:"expiresAt"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	InviteURL string    `bson:"-" json:"inviteUrl,omitempty"`
}

// GroupView is the read model returned for a group, personalised to the
// viewer where one is known.
type GroupView struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Suburb              string   `json:"suburb"`
	MemberCount         int      `json:"memberCount"`
	Official            bool     `json:"official"`
	OwnerID             string   `json:"ownerId,omitempty"`
	MembershipStatus    string   `json:"membershipStatus"`
	IsAdmin             bool     `json:"isAdmin"`
	PendingRequestCount int      `json:"pendingRequestCount"`
	Badges              []string `json:"badges"`
	CooperativeScore    int      `json:"cooperativeScore"`
	MyGrowthPoints      int      `json:"myGrowthPoints"`
	MyCleanupPoints     int      `json:"myCleanupPoints"`
}

// ChallengeView pairs a derived challenge with the viewer's own ledger count.
type ChallengeView struct {
	Challenge      GroupChallenge `json:"challenge"`
	MyContribution int            `json:"myContributionCount"`
}

// ParticipationResult reports the outcome of a challenge contribution.
type ParticipationResult struct {
	Challenge      GroupChallenge `json:"challenge"`
	MyContribution int            `json:"myContributionCount"`
	Contribution   int            `json:"contributionCount"`
	RewardUnlocked bool           `json:"rewardUnlocked"`
	UnlockedBadges []string       `json:"unlockedBadges"`
}
