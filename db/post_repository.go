package db

import (
	"github.com/pkg/errors"
	"github.com/teamuphq/teamup/models"
	"gorm.io/gorm"
)

type PostRepository interface {
	CreatePost(post *models.BoardPost) (*models.BoardPost, error)
	FindPostByID(id uint) (*models.BoardPost, error)
	GetAllPosts(filter *models.PostFilter) ([]models.BoardPost, error)
	UpdatePost(post *models.BoardPost) error
	DeletePost(id uint) error
	LikePost(postID, userID uint) error
	UnlikePost(postID, userID uint) error
	CountLikes(postID uint) (int64, error)
}

type postRepo struct {
	DB *gorm.DB
}

func NewPostRepo(db *GormDB) PostRepository {
	return &postRepo{db.DB}
}

func (p *postRepo) CreatePost(post *models.BoardPost) (*models.BoardPost, error) {
	if err := p.DB.Create(post).Error; err != nil {
		return nil, errors.Wrap(err, "could not create post")
	}
	return post, nil
}

func (p *postRepo) FindPostByID(id uint) (*models.BoardPost, error) {
	var post models.BoardPost
	if err := p.DB.Preload("Author").First(&post, id).Error; err != nil {
		return nil, err
	}
	likes, err := p.CountLikes(post.ID)
	if err != nil {
		return nil, err
	}
	post.LikeCount = likes
	return &post, nil
}

func (p *postRepo) GetAllPosts(filter *models.PostFilter) ([]models.BoardPost, error) {
	var posts []models.BoardPost
	query := p.DB.Preload("Author").Order("created_at DESC")
	if filter != nil {
		if filter.Tag != "" {
			query = query.Where("tags LIKE ?", "%"+filter.Tag+"%")
		}
		if filter.Skill != "" {
			query = query.Where("skills_required LIKE ?", "%"+filter.Skill+"%")
		}
		if filter.Type != "" {
			query = query.Where("type = ?", filter.Type)
		}
		if filter.Search != "" {
			query = query.Where("title LIKE ?", "%"+filter.Search+"%")
		}
	}
	if err := query.Find(&posts).Error; err != nil {
		return nil, errors.Wrap(err, "could not list posts")
	}
	return posts, nil
}

func (p *postRepo) UpdatePost(post *models.BoardPost) error {
	err := p.DB.Save(post).Error
	return errors.Wrap(err, "could not update post")
}

func (p *postRepo) DeletePost(id uint) error {
	err := p.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.BoardPost{}, id).Error
	})
	return errors.Wrap(err, "could not delete post")
}

func (p *postRepo) LikePost(postID, userID uint) error {
	like := models.PostLike{PostID: postID, UserID: userID}
	err := p.DB.Where(models.PostLike{PostID: postID, UserID: userID}).FirstOrCreate(&like).Error
	return errors.Wrap(err, "could not like post")
}

func (p *postRepo) UnlikePost(postID, userID uint) error {
	err := p.DB.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.PostLike{}).Error
	return errors.Wrap(err, "could not unlike post")
}

func (p *postRepo) CountLikes(postID uint) (int64, error) {
	var count int64
	err := p.DB.Model(&models.PostLike{}).Where("post_id = ?", postID).Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "gorm count error")
	}
	return count, nil
}
