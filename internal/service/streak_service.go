package service

import (
	"context"
	"time"

	"github.com/jxsim-x/skillstack-learning-tracker/internal/eventbus"
	"github.com/jxsim-x/skillstack-learning-tracker/internal/repository"
	"github.com/jxsim-x/skillstack-learning-tracker/internal/schema"
)

// StreakService applies activity events to the singleton profile.
type StreakService struct {
	profiles *repository.ProfileRepository
	hub      *eventbus.Hub
}

// NewStreakService creates the service.
func NewStreakService(profiles *repository.ProfileRepository, hub *eventbus.Hub) *StreakService {
	return &StreakService{profiles: profiles, hub: hub}
}

// Profile returns the current streak state, creating the profile on first read.
func (s *StreakService) Profile(ctx context.Context) (*schema.Profile, error) {
	return s.profiles.Get(ctx)
}

// RecordActivity advances the streak for the given day and persists the
// result. Same-day re-invocations are no-ops, which also defuses most
// concurrent-update races; the remaining stale-read race is accepted
// (last writer wins).
func (s *StreakService) RecordActivity(ctx context.Context, today time.Time) (*schema.Profile, error) {
	profile, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, err
	}

	before := *profile
	next := AdvanceStreak(*profile, today)
	if err := s.profiles.Save(ctx, &next); err != nil {
		return nil, err
	}

	if next.CurrentStreak != before.CurrentStreak || before.LastActivityDate == "" {
		s.hub.Publish(eventbus.Event{
			Type: eventbus.TypeStreakUpdated,
			Data: map[string]any{
				"current_streak": next.CurrentStreak,
				"longest_streak": next.LongestStreak,
			},
		})
		if m, ok := MilestoneFor(next.CurrentStreak); ok {
			s.hub.Publish(eventbus.Event{
				Type: eventbus.TypeStreakMilestone,
				Data: map[string]any{
					"streak":  next.CurrentStreak,
					"message": m.Message,
					"badge":   m.Badge,
				},
			})
		}
	}

	return &next, nil
}
