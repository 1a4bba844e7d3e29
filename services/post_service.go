package services

import (
	"errors"
	"log"
	"net/http"

	"github.com/teamuphq/teamup/config"
	"github.com/teamuphq/teamup/db"
	apiError "github.com/teamuphq/teamup/errors"
	"github.com/teamuphq/teamup/models"
	"gorm.io/gorm"
)

type PostService interface {
	CreatePost(authorID uint, post *models.BoardPost) (*models.BoardPost, *apiError.Error)
	GetPost(postID uint) (*models.BoardPost, *apiError.Error)
	GetAllPosts(filter *models.PostFilter) ([]models.BoardPost, *apiError.Error)
	UpdatePost(postID, userID uint, request *models.UpdatePostRequest) (*models.BoardPost, *apiError.Error)
	DeletePost(postID, userID uint) *apiError.Error
	LikePost(postID, userID uint) *apiError.Error
	UnlikePost(postID, userID uint) *apiError.Error
}

type postService struct {
	Config   *config.Config
	postRepo db.PostRepository
}

func NewPostService(postRepo db.PostRepository, conf *config.Config) PostService {
	return &postService{
		Config:   conf,
		postRepo: postRepo,
	}
}

func (s *postService) CreatePost(authorID uint, post *models.BoardPost) (*models.BoardPost, *apiError.Error) {
	if err := models.ValidateWhiteSpaces(post); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}
	post.AuthorID = authorID
	post.Tags = normalizeTags(post.Tags)
	post.SkillsRequired = normalizeTags(post.SkillsRequired)
	if post.Type == "" {
		post.Type = models.PostTypeProject
	}

	post, err := s.postRepo.CreatePost(post)
	if err != nil {
		log.Printf("CreatePost error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return post, nil
}

func (s *postService) GetPost(postID uint) (*models.BoardPost, *apiError.Error) {
	post, err := s.postRepo.FindPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("post not found", http.StatusNotFound)
		}
		log.Printf("GetPost error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return post, nil
}

func (s *postService) GetAllPosts(filter *models.PostFilter) ([]models.BoardPost, *apiError.Error) {
	posts, err := s.postRepo.GetAllPosts(filter)
	if err != nil {
		log.Printf("GetAllPosts error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return posts, nil
}

func (s *postService) UpdatePost(postID, userID uint, request *models.UpdatePostRequest) (*models.BoardPost, *apiError.Error) {
	post, apiErr := s.authorOwned(postID, userID)
	if apiErr != nil {
		return nil, apiErr
	}
	if err := models.ValidateWhiteSpaces(request); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	if request.Title != "" {
		post.Title = request.Title
	}
	if request.Description != "" {
		post.Description = request.Description
	}
	if request.Tags != nil {
		post.Tags = normalizeTags(request.Tags)
	}
	if request.SkillsRequired != nil {
		post.SkillsRequired = normalizeTags(request.SkillsRequired)
	}
	if request.Type != "" {
		post.Type = request.Type
	}

	if err := s.postRepo.UpdatePost(post); err != nil {
		log.Printf("UpdatePost error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return post, nil
}

func (s *postService) DeletePost(postID, userID uint) *apiError.Error {
	post, apiErr := s.authorOwned(postID, userID)
	if apiErr != nil {
		return apiErr
	}
	if err := s.postRepo.DeletePost(post.ID); err != nil {
		log.Printf("DeletePost error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *postService) LikePost(postID, userID uint) *apiError.Error {
	if _, apiErr := s.GetPost(postID); apiErr != nil {
		return apiErr
	}
	if err := s.postRepo.LikePost(postID, userID); err != nil {
		log.Printf("LikePost error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *postService) UnlikePost(postID, userID uint) *apiError.Error {
	if _, apiErr := s.GetPost(postID); apiErr != nil {
		return apiErr
	}
	if err := s.postRepo.UnlikePost(postID, userID); err != nil {
		log.Printf("UnlikePost error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *postService) authorOwned(postID, userID uint) (*models.BoardPost, *apiError.Error) {
	post, apiErr := s.GetPost(postID)
	if apiErr != nil {
		return nil, apiErr
	}
	if post.AuthorID != userID {
		return nil, apiError.New("you are not the author of this post", http.StatusForbidden)
	}
	return post, nil
}
