package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/teamuphq/teamup/errors"
	"github.com/teamuphq/teamup/models"
	"github.com/teamuphq/teamup/server/response"
)

func (s *Server) handleCreateTeam() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		var team models.Team
		if err := c.ShouldBindJSON(&team); err != nil {
			response.JSON(c, "team name is required", http.StatusBadRequest, nil, err)
			return
		}

		created, apiErr := s.TeamService.CreateTeam(userID, &team)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "team created", http.StatusCreated, created, nil)
	}
}

func (s *Server) handleGetUserTeams() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		teams, apiErr := s.TeamService.GetUserTeams(userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "teams retrieved", http.StatusOK, teams, nil)
	}
}

func (s *Server) handleAddTeamMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		var request models.TeamMemberRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		team, apiErr := s.TeamService.AddMember(userID, request.TeamID, request.UserID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "member added successfully", http.StatusOK, team, nil)
	}
}

func (s *Server) handleRemoveTeamMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		var request models.TeamMemberRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		team, apiErr := s.TeamService.RemoveMember(userID, request.TeamID, request.UserID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "member removed successfully", http.StatusOK, team, nil)
	}
}

func (s *Server) handleDeleteTeam() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}
		teamID, err := paramUint(c, "teamID")
		if err != nil {
			response.JSON(c, "invalid team id", http.StatusBadRequest, nil, err)
			return
		}

		if apiErr := s.TeamService.DeleteTeam(userID, teamID); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "team deleted", http.StatusOK, nil, nil)
	}
}
