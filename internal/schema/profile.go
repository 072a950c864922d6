package schema

import "time"

// ProfileID is the fixed primary key of the single profile row.
// The tracker is single-user; the profile is intentionally unary.
const ProfileID = 1

// DateLayout is the calendar-date format used for streak bookkeeping.
// Dates are stored as plain strings so "same day" compares exactly,
// independent of time zone drift within a day.
const DateLayout = "2006-01-02"

// Profile holds the streak state for the one user.
type Profile struct {
	ID                int64     `gorm:"primaryKey" json:"id"`
	CurrentStreak     int       `gorm:"default:0" json:"current_streak"`
	LongestStreak     int       `gorm:"default:0" json:"longest_streak"`
	LastActivityDate  string    `gorm:"size:10" json:"last_activity_date"`  // YYYY-MM-DD, empty = never active
	TotalLearningDays int       `gorm:"default:0" json:"total_learning_days"`
	StreakStartedDate string    `gorm:"size:10" json:"streak_started_date"` // YYYY-MM-DD, empty = unset
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name.
func (Profile) TableName() string {
	return "profiles"
}
