package db

import (
	"log"

	"github.com/pkg/errors"
	"github.com/teamuphq/teamup/models"
	"gorm.io/gorm"
)

type AuthRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	IsEmailExist(email string) error
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id uint) (*models.User, error)
	UserExists(id uint) (bool, error)
	UpdateUser(user *models.User) error
	GetAllUsers(filter *models.UserFilter) ([]models.User, error)
	UpsertUserImage(userID uint, pictureURL string, thumbnailURL string) error
	AddToBlackList(blacklist *models.Blacklist) error
	IsTokenInBlacklist(token string) bool
}

type authRepo struct {
	DB *gorm.DB
}

func NewAuthRepo(db *GormDB) AuthRepository {
	return &authRepo{db.DB}
}

func (a *authRepo) CreateUser(user *models.User) (*models.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if err := a.DB.Create(user).Error; err != nil {
		log.Printf("CreateUser error: %v", err)
		return nil, err
	}
	return user, nil
}

func (a *authRepo) IsEmailExist(email string) error {
	var count int64
	err := a.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return errors.New("email already in use")
	}
	return nil
}

func (a *authRepo) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := a.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *authRepo) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	err := a.DB.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *authRepo) UserExists(id uint) (bool, error) {
	var count int64
	err := a.DB.Model(&models.User{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "gorm count error")
	}
	return count > 0, nil
}

func (a *authRepo) UpdateUser(user *models.User) error {
	return a.DB.Save(user).Error
}

func (a *authRepo) GetAllUsers(filter *models.UserFilter) ([]models.User, error) {
	var users []models.User
	query := a.DB.Model(&models.User{})
	if filter != nil {
		if filter.Skill != "" {
			query = query.Where("skills LIKE ?", "%"+filter.Skill+"%")
		}
		if filter.Interest != "" {
			query = query.Where("interests LIKE ?", "%"+filter.Interest+"%")
		}
		if filter.Branch != "" {
			query = query.Where("branch LIKE ?", "%"+filter.Branch+"%")
		}
		if filter.YearOfStudy != 0 {
			query = query.Where("year_of_study = ?", filter.YearOfStudy)
		}
		if filter.Search != "" {
			query = query.Where("name LIKE ?", "%"+filter.Search+"%")
		}
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "could not list users")
	}
	return users, nil
}

func (a *authRepo) UpsertUserImage(userID uint, pictureURL string, thumbnailURL string) error {
	err := a.DB.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"profile_picture": pictureURL,
		"thumb_nail_url":  thumbnailURL,
	}).Error
	if err != nil {
		return errors.Wrap(err, "could not update user image")
	}
	return nil
}

func (a *authRepo) AddToBlackList(blacklist *models.Blacklist) error {
	err := a.DB.Create(blacklist).Error
	return errors.Wrap(err, "gorm.create error")
}

func (a *authRepo) IsTokenInBlacklist(token string) bool {
	var count int64
	// on error err on the side of letting the request through to the JWT check
	if err := a.DB.Model(&models.Blacklist{}).Where("token = ?", token).Count(&count).Error; err != nil {
		log.Printf("IsTokenInBlacklist error: %v", err)
		return false
	}
	return count > 0
}
