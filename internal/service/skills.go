package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jxsim-x/skillstack-learning-tracker/internal/eventbus"
	"github.com/jxsim-x/skillstack-learning-tracker/internal/repository"
	"github.com/jxsim-x/skillstack-learning-tracker/internal/schema"
)

// ValidationError is a rejected write. It is the only error class the API
// surfaces to users; enrichment failures are absorbed into degraded results.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// SkillService owns skill CRUD, enrichment caching and dashboard aggregates.
type SkillService struct {
	skills   *repository.SkillRepository
	profiles *repository.ProfileRepository
	enricher *Enricher
	hub      *eventbus.Hub
}

// NewSkillService creates the service.
func NewSkillService(
	skills *repository.SkillRepository,
	profiles *repository.ProfileRepository,
	enricher *Enricher,
	hub *eventbus.Hub,
) *SkillService {
	return &SkillService{
		skills:   skills,
		profiles: profiles,
		enricher: enricher,
		hub:      hub,
	}
}

// validateSkill enforces the write invariants.
func validateSkill(s *schema.Skill) error {
	if s.SkillName == "" {
		return &ValidationError{Field: "skill_name", Reason: "must not be empty"}
	}
	if s.DifficultyRating < 1 || s.DifficultyRating > 5 {
		return &ValidationError{Field: "difficulty_rating", Reason: "must be between 1 and 5"}
	}
	if s.HoursSpent < 0 {
		return &ValidationError{Field: "hours_spent", Reason: "cannot be negative"}
	}
	if s.ResourceType != "" && !schema.ValidResourceType(s.ResourceType) {
		return &ValidationError{Field: "resource_type", Reason: "unknown resource type"}
	}
	if s.Status != "" && !schema.ValidStatus(s.Status) {
		return &ValidationError{Field: "status", Reason: "unknown status"}
	}
	if s.Category != "" && !schema.ValidCategory(s.Category) {
		return &ValidationError{Field: "category", Reason: "unknown category"}
	}
	return nil
}

// applyDefaults fills the original model defaults on a new skill.
func applyDefaults(s *schema.Skill) {
	if s.ResourceType == "" {
		s.ResourceType = schema.ResourceVideo
	}
	if s.Status == "" {
		s.Status = schema.StatusStarted
	}
	if s.DifficultyRating == 0 {
		s.DifficultyRating = 3
	}
	if s.RecommendedResources == nil {
		s.RecommendedResources = schema.JSONMap{}
	}
	if s.MasteryPrediction == nil {
		s.MasteryPrediction = schema.JSONMap{}
	}
}

// Create validates and stores a new skill. An omitted category is
// auto-classified by the provider (defaulting to "other" when disabled).
func (s *SkillService) Create(ctx context.Context, skill *schema.Skill) error {
	if skill.DifficultyRating == 0 {
		skill.DifficultyRating = 3
	}
	if err := validateSkill(skill); err != nil {
		return err
	}
	applyDefaults(skill)
	if skill.Category == "" {
		skill.Category = s.enricher.Categorize(ctx, skill.SkillName)
	}
	return s.skills.Create(ctx, skill)
}

// Get returns a skill or nil when it does not exist.
func (s *SkillService) Get(ctx context.Context, id int64) (*schema.Skill, error) {
	return s.skills.GetByID(ctx, id)
}

// List returns skills matching the filter.
func (s *SkillService) List(ctx context.Context, filter repository.SkillFilter) ([]schema.Skill, error) {
	return s.skills.List(ctx, filter)
}

// Update validates and saves an edited skill.
func (s *SkillService) Update(ctx context.Context, skill *schema.Skill) error {
	if err := validateSkill(skill); err != nil {
		return err
	}
	applyDefaults(skill)
	return s.skills.Update(ctx, skill)
}

// Delete removes a skill.
func (s *SkillService) Delete(ctx context.Context, id int64) error {
	return s.skills.Delete(ctx, id)
}

// EnrichResources returns resource recommendations for the skill and caches
// them on the record. A cached non-fallback blob short-circuits the provider
// call unless refresh is set.
func (s *SkillService) EnrichResources(ctx context.Context, skill *schema.Skill, refresh bool) (schema.JSONMap, error) {
	if !refresh && cachedBlobUsable(skill.RecommendedResources) {
		return skill.RecommendedResources, nil
	}

	result := s.enricher.Recommend(ctx, skill.SkillName, skill.ResourceType)
	skill.RecommendedResources = result
	if err := s.skills.Update(ctx, skill); err != nil {
		return nil, err
	}

	s.hub.Publish(eventbus.Event{
		Type: eventbus.TypeSkillEnriched,
		Data: map[string]any{"skill_id": skill.ID, "kind": "resources"},
	})
	return result, nil
}

// cachedBlobUsable reports whether a stored enrichment blob can be served
// without a fresh provider call. Fallback blobs are advisory only.
func cachedBlobUsable(blob schema.JSONMap) bool {
	if len(blob) == 0 {
		return false
	}
	_, isFallback := blob["note"]
	return !isFallback
}

// PredictMastery computes the mastery projection for the skill and caches it.
func (s *SkillService) PredictMastery(ctx context.Context, skill *schema.Skill) (schema.JSONMap, error) {
	result := s.enricher.PredictMastery(ctx, skill.SkillName, skill.DifficultyRating, skill.HoursSpent)
	skill.MasteryPrediction = result
	if err := s.skills.Update(ctx, skill); err != nil {
		return nil, err
	}

	s.hub.Publish(eventbus.Event{
		Type: eventbus.TypeSkillEnriched,
		Data: map[string]any{"skill_id": skill.ID, "kind": "mastery"},
	})
	return result, nil
}

// TopSkill is one row of the dashboard's top-10 listing.
type TopSkill struct {
	ID         int64   `json:"id"`
	SkillName  string  `json:"skill_name"`
	HoursSpent float64 `json:"hours_spent"`
	Status     string  `json:"status"`
}

// DashboardStats aggregates the dashboard view.
type DashboardStats struct {
	TotalSkills          int64                      `json:"total_skills"`
	CompletedSkills      int64                      `json:"completed_skills"`
	CompletionPercentage float64                    `json:"completion_percentage"`
	TotalHours           float64                    `json:"total_hours"`
	SkillsByCategory     []repository.CategoryCount `json:"skills_by_category"`
	TopSkills            []TopSkill                 `json:"top_skills"`
	CurrentStreak        int                        `json:"current_streak"`
}

// Dashboard computes the aggregate dashboard stats.
func (s *SkillService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	total, err := s.skills.Count(ctx)
	if err != nil {
		return nil, err
	}
	completed, err := s.skills.CountByStatus(ctx, schema.StatusCompleted)
	if err != nil {
		return nil, err
	}
	hours, err := s.skills.SumHours(ctx)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.skills.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	top, err := s.skills.TopByHours(ctx, 10)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, err
	}

	pct := 0.0
	if total > 0 {
		pct = round1(float64(completed) / float64(total) * 100)
	}

	topSkills := make([]TopSkill, 0, len(top))
	for _, sk := range top {
		topSkills = append(topSkills, TopSkill{
			ID:         sk.ID,
			SkillName:  sk.SkillName,
			HoursSpent: sk.HoursSpent,
			Status:     sk.Status,
		})
	}

	return &DashboardStats{
		TotalSkills:          total,
		CompletedSkills:      completed,
		CompletionPercentage: pct,
		TotalHours:           hours,
		SkillsByCategory:     byCategory,
		TopSkills:            topSkills,
		CurrentStreak:        profile.CurrentStreak,
	}, nil
}

// WeeklyStats aggregates the trailing 7-day window ending at now.
func (s *SkillService) WeeklyStats(ctx context.Context, now time.Time) (WeeklyStats, error) {
	cutoff := now.AddDate(0, 0, -7)
	recent, err := s.skills.CreatedSince(ctx, cutoff)
	if err != nil {
		return WeeklyStats{}, err
	}

	stats := WeeklyStats{SkillsAdded: int64(len(recent))}
	for _, sk := range recent {
		stats.HoursLogged += sk.HoursSpent
		if sk.Status == schema.StatusCompleted {
			stats.CompletedThisWeek++
		}
	}
	return stats, nil
}

// WeeklySummary builds the trailing-window stats and enriches them.
func (s *SkillService) WeeklySummary(ctx context.Context, now time.Time) (WeeklySummary, error) {
	stats, err := s.WeeklyStats(ctx, now)
	if err != nil {
		return WeeklySummary{}, err
	}
	return s.enricher.Summarize(ctx, stats), nil
}
