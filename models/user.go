package models

import (
	"errors"
	"fmt"
	"strings"

	goval "github.com/go-passwd/validator"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/leebenson/conform"
	"golang.org/x/crypto/bcrypt"
)

var (
	validate *validator.Validate
	trans    ut.Translator
)

func init() {
	validate = validator.New()
	enLocale := en.New()
	trans, _ = ut.New(enLocale, enLocale).GetTranslator("en")
	if err := entranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		panic(err)
	}
}

// User represents a user of the application
type User struct {
	Model
	Name           string      `json:"name" binding:"required,min=2,max=50" conform:"trim"`
	Email          string      `json:"email" gorm:"unique;not null" binding:"required,email" conform:"trim,lower"`
	Password       string      `json:"password,omitempty" gorm:"-"`
	HashedPassword string      `json:"-"`
	Role           string      `json:"role" gorm:"default:student"`
	Bio            string      `json:"bio" conform:"trim"`
	Branch         string      `json:"branch" conform:"trim"`
	YearOfStudy    int         `json:"year_of_study"`
	Skills         []string    `json:"skills" gorm:"serializer:json"`
	Interests      []string    `json:"interests" gorm:"serializer:json"`
	SocialLinks    SocialLinks `json:"social_links" gorm:"serializer:json"`
	ProfilePicture string      `json:"profile_picture,omitempty"`
	ThumbNailURL   string      `json:"thumbnail_url,omitempty"`
	IsBlocked      bool        `json:"is_blocked" gorm:"default:false"`
}

type SocialLinks struct {
	Linkedin  string `json:"linkedin" conform:"trim"`
	Github    string `json:"github" conform:"trim"`
	Instagram string `json:"instagram" conform:"trim"`
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50" conform:"trim"`
	Email    string `json:"email" binding:"required,email" conform:"trim,lower"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" conform:"trim,lower"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	UserResponse
	AccessToken string `json:"access_token"`
}

// UserResponse is the public projection of a profile
type UserResponse struct {
	ID             uint        `json:"id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Bio            string      `json:"bio,omitempty"`
	Branch         string      `json:"branch,omitempty"`
	YearOfStudy    int         `json:"year_of_study,omitempty"`
	Skills         []string    `json:"skills,omitempty"`
	Interests      []string    `json:"interests,omitempty"`
	SocialLinks    SocialLinks `json:"social_links"`
	ProfilePicture string      `json:"profile_picture,omitempty"`
	ThumbNailURL   string      `json:"thumbnail_url,omitempty"`
}

type EditProfileRequest struct {
	Name        string      `json:"name" conform:"trim"`
	Bio         string      `json:"bio" validate:"max=200" conform:"trim"`
	Branch      string      `json:"branch" validate:"max=100" conform:"trim"`
	YearOfStudy int         `json:"year_of_study" validate:"omitempty,min=1,max=5"`
	Skills      []string    `json:"skills"`
	Interests   []string    `json:"interests"`
	SocialLinks SocialLinks `json:"social_links"`
}

// UserFilter narrows directory searches
type UserFilter struct {
	Skill       string
	Branch      string
	YearOfStudy int
	Interest    string
	Search      string
}

func (u *User) Response() UserResponse {
	return UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Bio:            u.Bio,
		Branch:         u.Branch,
		YearOfStudy:    u.YearOfStudy,
		Skills:         u.Skills,
		Interests:      u.Interests,
		SocialLinks:    u.SocialLinks,
		ProfilePicture: u.ProfilePicture,
		ThumbNailURL:   u.ThumbNailURL,
	}
}

func ValidatePassword(password string) error {
	passwordValidator := goval.New(goval.MinLength(6, errors.New("password cant be less than 6 characters")),
		goval.MaxLength(64, errors.New("password cant be more than 64 characters")))
	return passwordValidator.Validate(password)
}

func ValidateWhiteSpaces(data interface{}) error {
	return conform.Strings(data)
}

// ValidateStruct runs the `validate` tags on a request struct and collapses
// the violations into one translated error.
func ValidateStruct(data interface{}) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	messages := make([]string, 0)
	for _, e := range TranslateError(err, trans) {
		messages = append(messages, strings.TrimSuffix(e.Error(), "; "))
	}
	return errors.New(strings.Join(messages, "; "))
}

func TranslateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []error{err}
	}
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans) + "; ")
		errs = append(errs, translatedErr)
	}
	return errs
}

// VerifyPassword verifies the collected password with the user's hashed password
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}

type Blacklist struct {
	Model
	Email string `json:"email"`
	Token string `json:"token" gorm:"index"`
}
