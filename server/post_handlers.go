package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/teamuphq/teamup/errors"
	"github.com/teamuphq/teamup/models"
	"github.com/teamuphq/teamup/server/response"
)

func (s *Server) handleCreatePost() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		var post models.BoardPost
		if err := c.ShouldBindJSON(&post); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		created, apiErr := s.PostService.CreatePost(userID, &post)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "post created", http.StatusCreated, created, nil)
	}
}

func (s *Server) handleGetAllPosts() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := &models.PostFilter{
			Tag:    c.Query("tag"),
			Type:   c.Query("type"),
			Skill:  c.Query("skill"),
			Search: c.Query("search"),
		}

		posts, apiErr := s.PostService.GetAllPosts(filter)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "posts retrieved", http.StatusOK, posts, nil)
	}
}

func (s *Server) handleGetPost() gin.HandlerFunc {
	return func(c *gin.Context) {
		postID, err := paramUint(c, "postID")
		if err != nil {
			response.JSON(c, "invalid post id", http.StatusBadRequest, nil, err)
			return
		}

		post, apiErr := s.PostService.GetPost(postID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "post retrieved", http.StatusOK, post, nil)
	}
}

func (s *Server) handleUpdatePost() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}
		postID, err := paramUint(c, "postID")
		if err != nil {
			response.JSON(c, "invalid post id", http.StatusBadRequest, nil, err)
			return
		}

		var request models.UpdatePostRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		post, apiErr := s.PostService.UpdatePost(postID, userID, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "post updated", http.StatusOK, post, nil)
	}
}

func (s *Server) handleDeletePost() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}
		postID, err := paramUint(c, "postID")
		if err != nil {
			response.JSON(c, "invalid post id", http.StatusBadRequest, nil, err)
			return
		}

		if apiErr := s.PostService.DeletePost(postID, userID); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "post deleted", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleLikePost() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}
		postID, err := paramUint(c, "postID")
		if err != nil {
			response.JSON(c, "invalid post id", http.StatusBadRequest, nil, err)
			return
		}

		if apiErr := s.PostService.LikePost(postID, userID); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "post liked", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleUnlikePost() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}
		postID, err := paramUint(c, "postID")
		if err != nil {
			response.JSON(c, "invalid post id", http.StatusBadRequest, nil, err)
			return
		}

		if apiErr := s.PostService.UnlikePost(postID, userID); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "post unliked", http.StatusOK, nil, nil)
	}
}
