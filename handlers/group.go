package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"barkwise/middleware"
	"barkwise/services/group"
	"barkwise/utils"
)

// GroupHandler serves the community group endpoints.
type GroupHandler struct {
	Service group.GroupService
}

// CreateGroupHandler handles POST /api/community/groups.
func (h *GroupHandler) CreateGroupHandler(c *gin.Context) {
	var input struct {
		Name   string `json:"name"`
		Suburb string `json:"suburb"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	view, err := h.Service.CreateGroup(middleware.UserID(c), input.Name, input.Suburb)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// ListGroupsHandler handles GET /api/community/groups.
func (h *GroupHandler) ListGroupsHandler(c *gin.Context) {
	views, err := h.Service.ListGroups(c.Query("suburb"), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// GetGroupHandler handles GET /api/community/groups/:id.
func (h *GroupHandler) GetGroupHandler(c *gin.Context) {
	view, err := h.Service.GetGroup(c.Param("id"), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// JoinGroupHandler handles POST /api/community/groups/:id/join.
func (h *GroupHandler) JoinGroupHandler(c *gin.Context) {
	view, err := h.Service.JoinGroup(c.Param("id"), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// AddMemberHandler handles POST /api/community/groups/:id/members.
func (h *GroupHandler) AddMemberHandler(c *gin.Context) {
	var input struct {
		UserID string `json:"userId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	view, err := h.Service.AddMember(c.Param("id"), middleware.UserID(c), input.UserID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ListJoinRequestsHandler handles GET /api/community/groups/:id/join-requests.
func (h *GroupHandler) ListJoinRequestsHandler(c *gin.Context) {
	requests, err := h.Service.ListJoinRequests(c.Param("id"), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// ModerateJoinRequestHandler handles POST /api/community/groups/:id/join-requests.
func (h *GroupHandler) ModerateJoinRequestHandler(c *gin.Context) {
	var input struct {
		UserID string `json:"userId"`
		Action string `json:"action"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	view, err := h.Service.ModerateJoinRequest(c.Param("id"), middleware.UserID(c), input.UserID, input.Action)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ListChallengesHandler handles GET /api/community/groups/:id/challenges.
func (h *GroupHandler) ListChallengesHandler(c *gin.Context) {
	challenges, err := h.Service.ListChallenges(c.Param("id"), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, challenges)
}

// ParticipateHandler handles POST /api/community/groups/:id/challenges/participate.
func (h *GroupHandler) ParticipateHandler(c *gin.Context) {
	var input struct {
		ChallengeType     string `json:"challengeType"`
		ContributionCount int    `json:"contributionCount"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if input.ContributionCount == 0 {
		input.ContributionCount = 1
	}
	result, err := h.Service.Participate(c.Param("id"), middleware.UserID(c), input.ChallengeType, input.ContributionCount)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateInviteHandler handles POST /api/community/invites.
func (h *GroupHandler) CreateInviteHandler(c *gin.Context) {
	var input struct {
		GroupID string `json:"groupId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	invite, err := h.Service.CreateGroupInvite(input.GroupID, middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invite)
}

// ResolveInviteHandler handles GET /api/community/invites/:token.
func (h *GroupHandler) ResolveInviteHandler(c *gin.Context) {
	invite, err := h.Service.ResolveGroupInvite(c.Param("token"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invite)
}

// RedeemInviteHandler handles POST /api/community/invites/:token/redeem.
func (h *GroupHandler) RedeemInviteHandler(c *gin.Context) {
	view, err := h.Service.RedeemGroupInvite(c.Param("token"), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
