package db

import (
	"github.com/pkg/errors"
	"github.com/teamuphq/teamup/models"
	"gorm.io/gorm"
)

type TeamRepository interface {
	CreateTeam(team *models.Team, creator *models.User) (*models.Team, error)
	FindTeamByID(id uint) (*models.Team, error)
	GetUserTeams(userID uint) ([]models.Team, error)
	AddMember(team *models.Team, user *models.User) error
	RemoveMember(team *models.Team, user *models.User) error
	DeleteTeam(id uint) error
}

type teamRepo struct {
	DB *gorm.DB
}

func NewTeamRepo(db *GormDB) TeamRepository {
	return &teamRepo{db.DB}
}

func (t *teamRepo) CreateTeam(team *models.Team, creator *models.User) (*models.Team, error) {
	err := t.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}
		return tx.Model(team).Association("Members").Append(creator)
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create team")
	}
	return team, nil
}

func (t *teamRepo) FindTeamByID(id uint) (*models.Team, error) {
	var team models.Team
	if err := t.DB.Preload("Members").First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (t *teamRepo) GetUserTeams(userID uint) ([]models.Team, error) {
	var teams []models.Team
	err := t.DB.Preload("Members").
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.user_id = ?", userID).
		Find(&teams).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not list teams")
	}
	return teams, nil
}

func (t *teamRepo) AddMember(team *models.Team, user *models.User) error {
	for _, m := range team.Members {
		if m.ID == user.ID {
			return nil
		}
	}
	err := t.DB.Model(team).Association("Members").Append(user)
	return errors.Wrap(err, "could not add team member")
}

func (t *teamRepo) RemoveMember(team *models.Team, user *models.User) error {
	err := t.DB.Model(team).Association("Members").Delete(user)
	return errors.Wrap(err, "could not remove team member")
}

func (t *teamRepo) DeleteTeam(id uint) error {
	err := t.DB.Select("Members").Delete(&models.Team{Model: models.Model{ID: id}}).Error
	return errors.Wrap(err, "could not delete team")
}
