// Package dto carries the external API contract. Persistence details stay in
// internal/schema; business logic stays in internal/service.
package dto

import (
	"github.com/jxsim-x/skillstack-learning-tracker/internal/schema"
	"github.com/jxsim-x/skillstack-learning-tracker/internal/service"
)

// MilestoneDTO is the celebration attached to a streak read.
type MilestoneDTO struct {
	Message string `json:"message"`
	Badge   string `json:"badge"`
}

// ProfileDTO is the streak state as exposed to clients.
type ProfileDTO struct {
	ID                int64         `json:"id"`
	CurrentStreak     int           `json:"current_streak"`
	LongestStreak     int           `json:"longest_streak"`
	LastActivityDate  string        `json:"last_activity_date"`
	TotalLearningDays int           `json:"total_learning_days"`
	StreakStartedDate string        `json:"streak_started_date"`
	MilestoneMessage  *MilestoneDTO `json:"milestone_message"`
}

// FromProfile builds the client view of a profile. Clients always see
// longest_streak >= current_streak, whatever the stored row says.
func FromProfile(p *schema.Profile) ProfileDTO {
	longest := p.LongestStreak
	if p.CurrentStreak > longest {
		longest = p.CurrentStreak
	}

	out := ProfileDTO{
		ID:                p.ID,
		CurrentStreak:     p.CurrentStreak,
		LongestStreak:     longest,
		LastActivityDate:  p.LastActivityDate,
		TotalLearningDays: p.TotalLearningDays,
		StreakStartedDate: p.StreakStartedDate,
	}
	if m, ok := service.MilestoneFor(p.CurrentStreak); ok {
		out.MilestoneMessage = &MilestoneDTO{Message: m.Message, Badge: m.Badge}
	}
	return out
}

// SettingsDTO is the read shape of the settings endpoint. The credential
// itself is never echoed back.
type SettingsDTO struct {
	AIConfigured bool   `json:"ai_configured"`
	BaseURL      string `json:"base_url"`
	Model        string `json:"model"`
	LogLevel     string `json:"log_level"`
}

// SettingsUpdateDTO is the write shape. Nil fields are left unchanged.
type SettingsUpdateDTO struct {
	APIKey  *string `json:"api_key"`
	BaseURL *string `json:"base_url"`
	Model   *string `json:"model"`
}

// SkillUpdateDTO is the PATCH shape for a skill. Nil fields are left
// unchanged.
type SkillUpdateDTO struct {
	SkillName        *string  `json:"skill_name"`
	ResourceType     *string  `json:"resource_type"`
	Platform         *string  `json:"platform"`
	Status           *string  `json:"status"`
	HoursSpent       *float64 `json:"hours_spent"`
	DifficultyRating *int     `json:"difficulty_rating"`
	Notes            *string  `json:"notes"`
	Category         *string  `json:"category"`
}

// Apply copies the set fields onto the skill.
func (u *SkillUpdateDTO) Apply(s *schema.Skill) {
	if u.SkillName != nil {
		s.SkillName = *u.SkillName
	}
	if u.ResourceType != nil {
		s.ResourceType = *u.ResourceType
	}
	if u.Platform != nil {
		s.Platform = *u.Platform
	}
	if u.Status != nil {
		s.Status = *u.Status
	}
	if u.HoursSpent != nil {
		s.HoursSpent = *u.HoursSpent
	}
	if u.DifficultyRating != nil {
		s.DifficultyRating = *u.DifficultyRating
	}
	if u.Notes != nil {
		s.Notes = *u.Notes
	}
	if u.Category != nil {
		s.Category = *u.Category
	}
}
