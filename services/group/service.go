package group

import (
	"errors"
	"sort"
	"strings"
	"unicode"

	"go.uber.org/zap"

	groupRepo "barkwise/database/repository/group"
	"barkwise/models"
	"barkwise/utils"
)

// normalizeSuburb collapses whitespace and title-cases each word, so
// "surry  hills" and "Surry Hills" address the same community.
func normalizeSuburb(suburb string) string {
	words := strings.Fields(suburb)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func (s *DefaultGroupService) fetchGroup(groupID string) (*models.Group, error) {
	g, err := s.Repo.GetByID(groupID)
	if err != nil {
		if errors.Is(err, groupRepo.ErrNotFound) {
			return nil, utils.NotFoundErr("Group not found")
		}
		utils.GetLogger().Error("fetchGroup: failed to load group",
			zap.Error(err), zap.String("groupID", groupID))
		return nil, err
	}
	return g, nil
}

// EnsureOfficialGroup returns the suburb's system-owned community, creating
// it on first touch. Official groups start empty and have no owner.
func (s *DefaultGroupService) EnsureOfficialGroup(suburb string) (*models.Group, error) {
	normalized := normalizeSuburb(suburb)
	if normalized == "" {
		return nil, utils.InvalidErr("Suburb is required")
	}
	existing, err := s.Repo.FindOfficialBySuburb(normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	g := &models.Group{
		ID:        utils.NewID("g_official"),
		Name:      normalized + " Official Pet Community",
		Suburb:    normalized,
		Official:  true,
		CreatedAt: s.now(),
	}
	if err := s.Repo.CreateGroup(g); err != nil {
		utils.GetLogger().Error("EnsureOfficialGroup: failed to create group",
			zap.Error(err), zap.String("suburb", normalized))
		return nil, err
	}
	return g, nil
}

func (s *DefaultGroupService) CreateGroup(ownerID, name, suburb string) (*models.GroupView, error) {
	trimmedName := strings.TrimSpace(name)
	if trimmedName == "" {
		return nil, utils.InvalidErr("Name is required")
	}
	normalized := normalizeSuburb(suburb)
	if normalized == "" {
		return nil, utils.InvalidErr("Suburb is required")
	}
	if _, err := s.EnsureOfficialGroup(normalized); err != nil {
		return nil, err
	}

	existing, err := s.Repo.FindByNameSuburb(trimmedName, normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.ConflictErr("Group with same name already exists in suburb")
	}

	now := s.now()
	g := &models.Group{
		ID:          utils.NewID("g_user"),
		Name:        trimmedName,
		Suburb:      normalized,
		OwnerID:     ownerID,
		MemberCount: 1,
		CreatedAt:   now,
	}
	if err := s.Repo.CreateGroup(g); err != nil {
		utils.GetLogger().Error("CreateGroup: failed to create group",
			zap.Error(err), zap.String("name", trimmedName))
		return nil, err
	}
	m := &models.GroupMembership{
		GroupID:   g.ID,
		UserID:    ownerID,
		Status:    models.MembershipMember,
		CreatedAt: now,
	}
	if err := s.Repo.UpsertMembership(m); err != nil {
		return nil, err
	}
	return s.buildView(g, ownerID)
}

func (s *DefaultGroupService) GetGroup(groupID, viewerID string) (*models.GroupView, error) {
	g, err := s.fetchGroup(groupID)
	if err != nil {
		return nil, err
	}
	return s.buildView(g, viewerID)
}

func (s *DefaultGroupService) ListGroups(suburb, viewerID string) ([]*models.GroupView, error) {
	if suburb != "" {
		if _, err := s.EnsureOfficialGroup(suburb); err != nil {
			return nil, err
		}
		suburb = normalizeSuburb(suburb)
	}
	groups, err := s.Repo.ListGroups(suburb)
	if err != nil {
		utils.GetLogger().Error("ListGroups: failed to list groups", zap.Error(err))
		return nil, err
	}

	views := make([]*models.GroupView, 0, len(groups))
	for i := range groups {
		view, err := s.buildView(&groups[i], viewerID)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	sort.SliceStable(views, func(i, j int) bool {
		a, b := viewRank(views[i]), viewRank(views[j])
		for k := range a {
			if a[k] != b[k] {
				return a[k] > b[k]
			}
		}
		return false
	})
	return views, nil
}

// viewRank orders the directory: the viewer's groups first, then pending
// applications, official communities, and the most decorated and active
// groups.
func viewRank(v *models.GroupView) [6]int {
	var rank [6]int
	if v.MembershipStatus == models.MembershipMember {
		rank[0] = 1
	}
	if v.MembershipStatus == models.MembershipPending {
		rank[1] = 1
	}
	if v.Official {
		rank[2] = 1
	}
	rank[3] = len(v.Badges)
	rank[4] = v.CooperativeScore
	rank[5] = v.MemberCount
	return rank
}

// buildView assembles the personalised read model for one group.
func (s *DefaultGroupService) buildView(g *models.Group, viewerID string) (*models.GroupView, error) {
	membership := models.MembershipNone
	var myPoints models.RewardPoints
	if viewerID != "" {
		m, err := s.Repo.GetMembership(g.ID, viewerID)
		if err != nil {
			return nil, err
		}
		if m != nil {
			membership = m.Status
		}
		myPoints, err = s.Repo.RewardPointsFor(g.ID, viewerID)
		if err != nil {
			return nil, err
		}
	}
	pending, err := s.Repo.CountMemberships(g.ID, models.MembershipPending)
	if err != nil {
		return nil, err
	}
	coop, err := s.Repo.SumRewardPoints(g.ID)
	if err != nil {
		return nil, err
	}
	badges := append([]string(nil), g.Badges...)
	sort.Strings(badges)
	if badges == nil {
		badges = []string{}
	}

	return &models.GroupView{
		ID:                  g.ID,
		Name:                g.Name,
		Suburb:              g.Suburb,
		MemberCount:         g.MemberCount,
		Official:            g.Official,
		OwnerID:             g.OwnerID,
		MembershipStatus:    membership,
		IsAdmin:             g.OwnerID != "" && g.OwnerID == viewerID,
		PendingRequestCount: pending,
		Badges:              badges,
		CooperativeScore:    coop,
		MyGrowthPoints:      myPoints.Growth,
		MyCleanupPoints:     myPoints.Cleanup,
	}, nil
}
