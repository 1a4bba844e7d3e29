package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	errs "github.com/teamuphq/teamup/errors"
	"github.com/teamuphq/teamup/models"
	"github.com/teamuphq/teamup/server/response"
)

func (s *Server) handleGetAllUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		year, _ := strconv.Atoi(c.Query("year_of_study"))
		filter := &models.UserFilter{
			Skill:       c.Query("skill"),
			Branch:      c.Query("branch"),
			Interest:    c.Query("interest"),
			Search:      c.Query("search"),
			YearOfStudy: year,
		}

		users, apiErr := s.AuthService.GetAllUsers(filter)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "users retrieved", http.StatusOK, users, nil)
	}
}

func (s *Server) handleGetUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := paramUint(c, "userID")
		if err != nil {
			response.JSON(c, "invalid user id", http.StatusBadRequest, nil, err)
			return
		}

		user, apiErr := s.AuthService.GetUserByID(userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "user retrieved", http.StatusOK, user, nil)
	}
}

func (s *Server) handleGetOnlineUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.Hub == nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		response.JSON(c, "online users retrieved", http.StatusOK, gin.H{
			"user_ids": s.Hub.Presence().OnlineUserIDs(),
		}, nil)
	}
}

func paramUint(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
