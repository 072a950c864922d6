package schema

import (
	"time"
)

// Resource types a skill can be learned from.
const (
	ResourceVideo   = "video"
	ResourceCourse  = "course"
	ResourceArticle = "article"
)

// Skill progress states.
const (
	StatusStarted    = "started"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Skill categories.
const (
	CategoryFrontend = "frontend"
	CategoryBackend  = "backend"
	CategoryData     = "data"
	CategoryDevops   = "devops"
	CategoryOther    = "other"
)

// Skill is one tracked learning item.
// Data volume: hundreds per user.
type Skill struct {
	ID                   int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SkillName            string    `gorm:"size:200;not null" json:"skill_name"`
	ResourceType         string    `gorm:"size:20;default:video" json:"resource_type"`
	Platform             string    `gorm:"size:100" json:"platform"`
	Status               string    `gorm:"size:20;index;default:started" json:"status"`
	HoursSpent           float64   `gorm:"default:0" json:"hours_spent"`
	DifficultyRating     int       `gorm:"default:3" json:"difficulty_rating"` // 1-5
	Notes                string    `gorm:"type:text" json:"notes"`
	Category             string    `gorm:"size:20;index;default:other" json:"category"`
	RecommendedResources JSONMap   `gorm:"type:text" json:"recommended_resources"` // cached AI resource blob
	MasteryPrediction    JSONMap   `gorm:"type:text" json:"mastery_prediction"`    // cached AI prediction blob
	CreatedAt            time.Time `gorm:"autoCreateTime" json:"created_date"`
}

// TableName sets the table name.
func (Skill) TableName() string {
	return "skills"
}

// ValidResourceType reports whether t is an allowed resource type.
func ValidResourceType(t string) bool {
	switch t {
	case ResourceVideo, ResourceCourse, ResourceArticle:
		return true
	}
	return false
}

// ValidStatus reports whether s is an allowed status.
func ValidStatus(s string) bool {
	switch s {
	case StatusStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ValidCategory reports whether c is an allowed category.
func ValidCategory(c string) bool {
	switch c {
	case CategoryFrontend, CategoryBackend, CategoryData, CategoryDevops, CategoryOther:
		return true
	}
	return false
}
