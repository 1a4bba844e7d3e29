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

type TeamService interface {
	CreateTeam(creatorID uint, team *models.Team) (*models.Team, *apiError.Error)
	GetUserTeams(userID uint) ([]models.Team, *apiError.Error)
	AddMember(actingUserID, teamID, userID uint) (*models.Team, *apiError.Error)
	RemoveMember(actingUserID, teamID, userID uint) (*models.Team, *apiError.Error)
	DeleteTeam(actingUserID, teamID uint) *apiError.Error
}

type teamService struct {
	Config   *config.Config
	teamRepo db.TeamRepository
	authRepo db.AuthRepository
}

func NewTeamService(teamRepo db.TeamRepository, authRepo db.AuthRepository, conf *config.Config) TeamService {
	return &teamService{
		Config:   conf,
		teamRepo: teamRepo,
		authRepo: authRepo,
	}
}

func (s *teamService) CreateTeam(creatorID uint, team *models.Team) (*models.Team, *apiError.Error) {
	if err := models.ValidateWhiteSpaces(team); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}
	creator, err := s.authRepo.FindUserByID(creatorID)
	if err != nil {
		log.Printf("CreateTeam error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	team.CreatedBy = creatorID
	team, err = s.teamRepo.CreateTeam(team, creator)
	if err != nil {
		log.Printf("CreateTeam error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return team, nil
}

func (s *teamService) GetUserTeams(userID uint) ([]models.Team, *apiError.Error) {
	teams, err := s.teamRepo.GetUserTeams(userID)
	if err != nil {
		log.Printf("GetUserTeams error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return teams, nil
}

func (s *teamService) AddMember(actingUserID, teamID, userID uint) (*models.Team, *apiError.Error) {
	team, apiErr := s.memberOf(teamID, actingUserID)
	if apiErr != nil {
		return nil, apiErr
	}

	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("user not found", http.StatusNotFound)
		}
		log.Printf("AddMember error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if err := s.teamRepo.AddMember(team, user); err != nil {
		log.Printf("AddMember error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return s.reload(teamID)
}

func (s *teamService) RemoveMember(actingUserID, teamID, userID uint) (*models.Team, *apiError.Error) {
	team, apiErr := s.memberOf(teamID, actingUserID)
	if apiErr != nil {
		return nil, apiErr
	}

	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("user not found", http.StatusNotFound)
		}
		log.Printf("RemoveMember error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if err := s.teamRepo.RemoveMember(team, user); err != nil {
		log.Printf("RemoveMember error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return s.reload(teamID)
}

func (s *teamService) DeleteTeam(actingUserID, teamID uint) *apiError.Error {
	team, apiErr := s.findTeam(teamID)
	if apiErr != nil {
		return apiErr
	}
	if team.CreatedBy != actingUserID {
		return apiError.New("only the team creator can delete the team", http.StatusForbidden)
	}
	if err := s.teamRepo.DeleteTeam(teamID); err != nil {
		log.Printf("DeleteTeam error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *teamService) findTeam(teamID uint) (*models.Team, *apiError.Error) {
	team, err := s.teamRepo.FindTeamByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("team not found", http.StatusNotFound)
		}
		log.Printf("findTeam error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return team, nil
}

func (s *teamService) memberOf(teamID, userID uint) (*models.Team, *apiError.Error) {
	team, apiErr := s.findTeam(teamID)
	if apiErr != nil {
		return nil, apiErr
	}
	for _, m := range team.Members {
		if m.ID == userID {
			return team, nil
		}
	}
	return nil, apiError.New("you are not a member of this team", http.StatusForbidden)
}

func (s *teamService) reload(teamID uint) (*models.Team, *apiError.Error) {
	return s.findTeam(teamID)
}
