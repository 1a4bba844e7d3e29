package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/teamuphq/teamup/errors"
	"github.com/teamuphq/teamup/models"
	"github.com/teamuphq/teamup/server/response"
)

func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.SignupRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		user, apiErr := s.AuthService.SignupUser(&request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "user registered successfully", http.StatusCreated, user.Response(), nil)
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.LoginRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		loginResponse, apiErr := s.AuthService.LoginUser(&request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, loginResponse, nil)
	}
}

func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken, exists := c.Get("access_token")
		if !exists {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		if apiErr := s.AuthService.LogoutUser(accessToken.(string)); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "logged out successfully", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleShowProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		user, apiErr := s.AuthService.GetUserProfile(userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "profile retrieved", http.StatusOK, user.Response(), nil)
	}
}

func (s *Server) handleEditUserProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		var request models.EditProfileRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		user, apiErr := s.AuthService.EditUserProfile(userID, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "profile updated", http.StatusOK, user.Response(), nil)
	}
}

func (s *Server) handleUploadProfileImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		fileHeader, err := c.FormFile("image")
		if err != nil {
			response.JSON(c, "image file is required", http.StatusBadRequest, nil, err)
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		user, apiErr := s.MediaService.UploadProfileImage(userID, file, fileHeader.Filename)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "profile picture updated", http.StatusOK, user.Response(), nil)
	}
}
