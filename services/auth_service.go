package services

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/teamuphq/teamup/config"
	"github.com/teamuphq/teamup/db"
	apiError "github.com/teamuphq/teamup/errors"
	"github.com/teamuphq/teamup/mailingservices"
	"github.com/teamuphq/teamup/models"
	"github.com/teamuphq/teamup/services/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService interface
type AuthService interface {
	SignupUser(request *models.SignupRequest) (*models.User, *apiError.Error)
	LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error)
	LogoutUser(accessToken string) *apiError.Error
	GetUserProfile(userID uint) (*models.User, *apiError.Error)
	EditUserProfile(userID uint, request *models.EditProfileRequest) (*models.User, *apiError.Error)
	GetAllUsers(filter *models.UserFilter) ([]models.UserResponse, *apiError.Error)
	GetUserByID(userID uint) (*models.UserResponse, *apiError.Error)
}

// authService struct
type authService struct {
	Config   *config.Config
	authRepo db.AuthRepository
	mail     mailingservices.Mailer
}

// NewAuthService instantiate an authService
func NewAuthService(authRepo db.AuthRepository, mail mailingservices.Mailer, conf *config.Config) AuthService {
	return &authService{
		Config:   conf,
		authRepo: authRepo,
		mail:     mail,
	}
}

func (s *authService) SignupUser(request *models.SignupRequest) (*models.User, *apiError.Error) {
	if err := models.ValidateWhiteSpaces(request); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}
	if err := models.ValidatePassword(request.Password); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	if err := s.authRepo.IsEmailExist(request.Email); err != nil {
		return nil, apiError.New("user already exists", http.StatusBadRequest)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("SignupUser error hashing password: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	user := &models.User{
		Name:           request.Name,
		Email:          request.Email,
		HashedPassword: string(hashedPassword),
	}
	user, err = s.authRepo.CreateUser(user)
	if err != nil {
		log.Printf("SignupUser error creating user: %v", err)
		return nil, apiError.GetUniqueContraintError(err)
	}

	if s.mail != nil {
		s.mail.SendWelcome(user.Email, user.Name)
	}
	return user, nil
}

func (s *authService) LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error) {
	user, err := s.authRepo.FindUserByEmail(loginRequest.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("invalid email or password", http.StatusBadRequest)
		}
		log.Printf("LoginUser error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if user.IsBlocked {
		return nil, apiError.New("account is blocked", http.StatusForbidden)
	}

	if err := user.VerifyPassword(loginRequest.Password); err != nil {
		return nil, apiError.New("invalid email or password", http.StatusBadRequest)
	}

	validity := time.Duration(s.Config.JWTExpiryMinutes) * time.Minute
	accessToken, err := jwt.GenerateToken(user.ID, s.Config.JWTSecret, validity)
	if err != nil {
		log.Printf("LoginUser error generating token: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return &models.LoginResponse{
		UserResponse: user.Response(),
		AccessToken:  accessToken,
	}, nil
}

func (s *authService) LogoutUser(accessToken string) *apiError.Error {
	blacklist := &models.Blacklist{Token: accessToken}
	if err := s.authRepo.AddToBlackList(blacklist); err != nil {
		log.Printf("LogoutUser error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *authService) GetUserProfile(userID uint) (*models.User, *apiError.Error) {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("user not found", http.StatusNotFound)
		}
		log.Printf("GetUserProfile error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return user, nil
}

func (s *authService) EditUserProfile(userID uint, request *models.EditProfileRequest) (*models.User, *apiError.Error) {
	if err := models.ValidateWhiteSpaces(request); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}
	if err := models.ValidateStruct(request); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	user, apiErr := s.GetUserProfile(userID)
	if apiErr != nil {
		return nil, apiErr
	}

	if request.Name != "" {
		user.Name = request.Name
	}
	user.Bio = request.Bio
	user.Branch = request.Branch
	if request.YearOfStudy != 0 {
		user.YearOfStudy = request.YearOfStudy
	}
	user.Skills = normalizeTags(request.Skills)
	user.Interests = normalizeTags(request.Interests)
	user.SocialLinks = request.SocialLinks

	if err := s.authRepo.UpdateUser(user); err != nil {
		log.Printf("EditUserProfile error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return user, nil
}

func (s *authService) GetAllUsers(filter *models.UserFilter) ([]models.UserResponse, *apiError.Error) {
	users, err := s.authRepo.GetAllUsers(filter)
	if err != nil {
		log.Printf("GetAllUsers error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	responses := make([]models.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].Response())
	}
	return responses, nil
}

func (s *authService) GetUserByID(userID uint) (*models.UserResponse, *apiError.Error) {
	user, apiErr := s.GetUserProfile(userID)
	if apiErr != nil {
		return nil, apiErr
	}
	resp := user.Response()
	return &resp, nil
}
