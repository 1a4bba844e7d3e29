package models

const (
	PostTypeProject = "project"
	PostTypeTeam    = "team"
)

// BoardPost is a project or team listing on the board
type BoardPost struct {
	Model
	Title          string   `json:"title" binding:"required,min=5,max=150" conform:"trim"`
	Description    string   `json:"description" binding:"required,min=10" conform:"trim"`
	Tags           []string `json:"tags" gorm:"serializer:json"`
	SkillsRequired []string `json:"skills_required" gorm:"serializer:json"`
	Type           string   `json:"type" gorm:"default:project"`
	AuthorID       uint     `json:"author_id" gorm:"not null;index"`
	LikeCount      int64    `json:"like_count" gorm:"-"`

	Author User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

type UpdatePostRequest struct {
	Title          string   `json:"title" binding:"omitempty,min=5,max=150" conform:"trim"`
	Description    string   `json:"description" binding:"omitempty,min=10" conform:"trim"`
	Tags           []string `json:"tags"`
	SkillsRequired []string `json:"skills_required"`
	Type           string   `json:"type" binding:"omitempty,oneof=project team"`
}

type PostLike struct {
	Model
	PostID uint `json:"post_id" gorm:"not null;uniqueIndex:idx_post_like"`
	UserID uint `json:"user_id" gorm:"not null;uniqueIndex:idx_post_like"`
}

type PostFilter struct {
	Tag    string
	Type   string
	Skill  string
	Search string
}
