package service

import (
	"time"

	"github.com/jxsim-x/skillstack-learning-tracker/internal/schema"
)

// AdvanceStreak applies one learning-activity event to the profile and
// returns the next state. Pure: "today" is caller-supplied so the transition
// is testable and never reads the wall clock.
//
// Branches, in order:
//   - first-ever activity: streak and total days start at 1
//   - same day: no-op, re-invocations do not double-count
//   - consecutive day: streak and total days advance by one
//   - gap of 2+ days (or an out-of-order date): streak resets, the longest
//     streak record is kept
func AdvanceStreak(p schema.Profile, today time.Time) schema.Profile {
	day := today.Format(schema.DateLayout)
	yesterday := today.AddDate(0, 0, -1).Format(schema.DateLayout)

	switch {
	case p.LastActivityDate == "":
		p.CurrentStreak = 1
		if p.LongestStreak < 1 {
			p.LongestStreak = 1
		}
		p.TotalLearningDays = 1
		p.StreakStartedDate = day
	case p.LastActivityDate == day:
		// already counted today
	case p.LastActivityDate == yesterday:
		p.CurrentStreak++
		p.TotalLearningDays++
		if p.CurrentStreak > p.LongestStreak {
			p.LongestStreak = p.CurrentStreak
		}
	default:
		p.CurrentStreak = 1
		p.TotalLearningDays++
		p.StreakStartedDate = day
	}

	p.LastActivityDate = day
	return p
}

// Milestone is a celebratory message and badge for a streak length.
type Milestone struct {
	Message string `json:"message"`
	Badge   string `json:"badge"`
}

// milestones maps exact streak-day counts to their celebration.
var milestones = map[int]Milestone{
	1:   {Message: "50% of people never start. But you did! 🚀", Badge: "🏅"},
	3:   {Message: "Only 30% make it to Day 3. You're ahead of the curve! 💪", Badge: "⭐"},
	7:   {Message: "Week 1 complete! 80% quit by now. You're unstoppable! 🔥", Badge: "🏆"},
	14:  {Message: "Two weeks strong! You're building real discipline. 💎", Badge: "💫"},
	21:  {Message: "21 days! Scientists say habits form now. You're a pro! 🧠", Badge: "👑"},
	30:  {Message: "ONE MONTH! This is legendary commitment! 🎯", Badge: "🌟"},
	50:  {Message: "50 days! You're in the top 1% of learners! 🚀", Badge: "💥"},
	75:  {Message: "75 days! Your dedication is truly inspiring! 🌈", Badge: "🎖️"},
	100: {Message: "💯 DAYS! EXTRAORDINARY! You're unstoppable! 🔥🔥🔥", Badge: "🏅🏅🏅"},
	365: {Message: "🎉 ONE YEAR! You're a learning CHAMPION! 🏆🎊", Badge: "👑👑👑"},
}

// MilestoneFor returns the milestone for an exact streak length.
// Only exact matches celebrate: day 8 is not "at least a week".
func MilestoneFor(currentStreak int) (Milestone, bool) {
	m, ok := milestones[currentStreak]
	return m, ok
}
