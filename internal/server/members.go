package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/models"
)

type memberRequest struct {
	Name           *string   `json:"name"`
	Role           *string   `json:"role"`
	Email          *string   `json:"email"`
	ProfilePicture *string   `json:"profilePicture"`
	Projects       *[]string `json:"projects"`
}

// handleListMembers returns all team members.
func (s *Server) handleListMembers(c *gin.Context) {
	members, err := s.store.ListMembers(c.Request.Context())
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, members)
}

// handleCreateMember adds a team member.
func (s *Server) handleCreateMember(c *gin.Context) {
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	m := models.TeamMember{
		Name:           getString(req.Name),
		Role:           getString(req.Role),
		Email:          getString(req.Email),
		ProfilePicture: getString(req.ProfilePicture),
	}
	if req.Projects != nil {
		m.Projects = *req.Projects
	}

	member, err := s.store.CreateMember(c.Request.Context(), m)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, member)
}

// handleGetMember returns one team member.
func (s *Server) handleGetMember(c *gin.Context) {
	member, err := s.store.GetMember(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, member)
}

// handleUpdateMember changes only the fields present in the body.
func (s *Server) handleUpdateMember(c *gin.Context) {
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	member, err := s.store.UpdateMember(c.Request.Context(), c.Param("id"), models.TeamMemberPatch{
		Name:           req.Name,
		Role:           req.Role,
		Email:          req.Email,
		ProfilePicture: req.ProfilePicture,
		Projects:       req.Projects,
	})
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, member)
}

// handleDeleteMember removes a member and echoes the deleted record.
func (s *Server) handleDeleteMember(c *gin.Context) {
	member, err := s.store.DeleteMember(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, member)
}
