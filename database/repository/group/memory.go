package groupRepo

import (
	"sort"
	"strings"
	"sync"

	"barkwise/models"
)

type contributionKey struct {
	challengeID string
	userID      string
}

type pointsKey struct {
	groupID string
	userID  string
}

// MemoryGroupRepo is an in-memory GroupRepository used in tests.
type MemoryGroupRepo struct {
	mu            sync.Mutex
	groups        map[string]*models.Group
	order         []string
	memberships   map[pointsKey]*models.GroupMembership
	contributions map[contributionKey]int
	points        map[pointsKey]*models.RewardPoints
	invites       map[string]*models.GroupInvite
}

// NewMemoryGroupRepo returns an empty in-memory repository.
func NewMemoryGroupRepo() *MemoryGroupRepo {
	return &MemoryGroupRepo{
		groups:        make(map[string]*models.Group),
		memberships:   make(map[pointsKey]*models.GroupMembership),
		contributions: make(map[contributionKey]int),
		points:        make(map[pointsKey]*models.RewardPoints),
		invites:       make(map[string]*models.GroupInvite),
	}
}

func (r *MemoryGroupRepo) CreateGroup(group *models.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *group
	r.groups[group.ID] = &cp
	r.order = append(r.order, group.ID)
	return nil
}

func (r *MemoryGroupRepo) GetByID(id string) (*models.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.groups[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *MemoryGroupRepo) FindByNameSuburb(name, suburb string) (*models.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.order {
		g := r.groups[id]
		if strings.EqualFold(g.Name, name) && strings.EqualFold(g.Suburb, suburb) {
			cp := *g
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemoryGroupRepo) FindOfficialBySuburb(suburb string) (*models.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.order {
		g := r.groups[id]
		if g.Official && strings.EqualFold(g.Suburb, suburb) {
			cp := *g
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemoryGroupRepo) ListGroups(suburb string) ([]models.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Group
	for _, id := range r.order {
		g := r.groups[id]
		if suburb != "" && !strings.EqualFold(g.Suburb, suburb) {
			continue
		}
		out = append(out, *g)
	}
	return out, nil
}

func (r *MemoryGroupRepo) IncrementMemberCount(id string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.groups[id]
	if !ok {
		return ErrNotFound
	}
	g.MemberCount += delta
	return nil
}

func (r *MemoryGroupRepo) AddBadge(id, badge string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.groups[id]
	if !ok {
		return ErrNotFound
	}
	for _, b := range g.Badges {
		if b == badge {
			return nil
		}
	}
	g.Badges = append(g.Badges, badge)
	return nil
}

func (r *MemoryGroupRepo) UpsertMembership(membership *models.GroupMembership) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *membership
	r.memberships[pointsKey{membership.GroupID, membership.UserID}] = &cp
	return nil
}

func (r *MemoryGroupRepo) GetMembership(groupID, userID string) (*models.GroupMembership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.memberships[pointsKey{groupID, userID}]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *MemoryGroupRepo) DeleteMembership(groupID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.memberships, pointsKey{groupID, userID})
	return nil
}

func (r *MemoryGroupRepo) ListMemberships(groupID, status string) ([]models.GroupMembership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.GroupMembership
	for _, m := range r.memberships {
		if m.GroupID != groupID {
			continue
		}
		if status != "" && m.Status != status {
			continue
		}
		out = append(out, *m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].UserID < out[j].UserID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryGroupRepo) CountMemberships(groupID, status string) (int, error) {
	memberships, err := r.ListMemberships(groupID, status)
	if err != nil {
		return 0, err
	}
	return len(memberships), nil
}

func (r *MemoryGroupRepo) MemberGroupIDs(userIDs []string) (map[string][]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		wanted[id] = true
	}
	out := make(map[string][]string)
	for _, m := range r.memberships {
		if m.Status != models.MembershipMember || !wanted[m.UserID] {
			continue
		}
		out[m.UserID] = append(out[m.UserID], m.GroupID)
	}
	return out, nil
}

func (r *MemoryGroupRepo) AddContribution(challengeID, groupID, challengeType, userID string, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contributions[contributionKey{challengeID, userID}] += count
	return nil
}

func (r *MemoryGroupRepo) ChallengeTotal(challengeID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for key, count := range r.contributions {
		if key.challengeID == challengeID {
			total += count
		}
	}
	return total, nil
}

func (r *MemoryGroupRepo) UserContribution(challengeID, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.contributions[contributionKey{challengeID, userID}], nil
}

func (r *MemoryGroupRepo) AddRewardPoints(groupID, userID string, growth, cleanup int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pointsKey{groupID, userID}
	p, ok := r.points[key]
	if !ok {
		p = &models.RewardPoints{GroupID: groupID, UserID: userID}
		r.points[key] = p
	}
	p.Growth += growth
	p.Cleanup += cleanup
	return nil
}

func (r *MemoryGroupRepo) RewardPointsFor(groupID, userID string) (models.RewardPoints, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.points[pointsKey{groupID, userID}]; ok {
		return *p, nil
	}
	return models.RewardPoints{GroupID: groupID, UserID: userID}, nil
}

func (r *MemoryGroupRepo) SumRewardPoints(groupID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for key, p := range r.points {
		if key.groupID == groupID {
			total += p.Total()
		}
	}
	return total, nil
}

func (r *MemoryGroupRepo) CreateInvite(invite *models.GroupInvite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *invite
	r.invites[invite.Token] = &cp
	return nil
}

func (r *MemoryGroupRepo) GetInvite(token string) (*models.GroupInvite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invites[token]
	if !ok {
		return nil, ErrInviteNotFound
	}
	cp := *inv
	return &cp, nil
}
