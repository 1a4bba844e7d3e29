package models

// Team groups users working together on a listing
type Team struct {
	Model
	Name        string `json:"name" binding:"required" conform:"trim"`
	Description string `json:"description" conform:"trim"`
	CreatedBy   uint   `json:"created_by" gorm:"not null"`

	Members []User `json:"members,omitempty" gorm:"many2many:team_members;"`
}

type TeamMemberRequest struct {
	TeamID uint `json:"team_id" binding:"required"`
	UserID uint `json:"user_id" binding:"required"`
}
