package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jxsim-x/skillstack-learning-tracker/internal/eventbus"
	"github.com/jxsim-x/skillstack-learning-tracker/internal/repository"
	"github.com/jxsim-x/skillstack-learning-tracker/internal/schema"
	"github.com/jxsim-x/skillstack-learning-tracker/internal/testutil"
)

func newTestSkillService(t *testing.T, gen TextGenerator) (*SkillService, *repository.SkillRepository) {
	t.Helper()
	db := testutil.OpenTestDB(t)
	skills := repository.NewSkillRepository(db)
	profiles := repository.NewProfileRepository(db)
	return NewSkillService(skills, profiles, NewEnricher(gen), eventbus.NewHub()), skills
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestSkillService(t, &fakeGenerator{})
	ctx := context.Background()

	cases := []struct {
		name  string
		skill schema.Skill
		field string
	}{
		{"empty name", schema.Skill{DifficultyRating: 3}, "skill_name"},
		{"difficulty too high", schema.Skill{SkillName: "Go", DifficultyRating: 6}, "difficulty_rating"},
		{"negative hours", schema.Skill{SkillName: "Go", DifficultyRating: 3, HoursSpent: -1}, "hours_spent"},
		{"bad status", schema.Skill{SkillName: "Go", DifficultyRating: 3, Status: "paused"}, "status"},
		{"bad category", schema.Skill{SkillName: "Go", DifficultyRating: 3, Category: "ml"}, "category"},
		{"bad resource type", schema.Skill{SkillName: "Go", DifficultyRating: 3, ResourceType: "podcast"}, "resource_type"},
	}
	for _, tc := range cases {
		err := svc.Create(ctx, &tc.skill)
		var vErr *ValidationError
		if !errors.As(err, &vErr) || vErr.Field != tc.field {
			t.Fatalf("%s: err=%v, want ValidationError on %s", tc.name, err, tc.field)
		}
	}
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc, repo := newTestSkillService(t, &fakeGenerator{})
	ctx := context.Background()

	skill := &schema.Skill{SkillName: "Go"}
	if err := svc.Create(ctx, skill); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	got, err := repo.GetByID(ctx, skill.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.ResourceType != schema.ResourceVideo || got.Status != schema.StatusStarted {
		t.Fatalf("defaults not applied: %+v", got)
	}
	if got.DifficultyRating != 3 {
		t.Fatalf("difficulty=%d, want default 3", got.DifficultyRating)
	}
	if got.Category != schema.CategoryOther {
		t.Fatalf("category=%q, disabled provider should default to other", got.Category)
	}
}

func TestCreateAutoCategorize(t *testing.T) {
	svc, _ := newTestSkillService(t, &fakeGenerator{configured: true, response: "frontend"})
	ctx := context.Background()

	skill := &schema.Skill{SkillName: "React"}
	if err := svc.Create(ctx, skill); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if skill.Category != schema.CategoryFrontend {
		t.Fatalf("category=%q, want frontend", skill.Category)
	}

	// An explicit category must not trigger the provider.
	gen := &fakeGenerator{configured: true, response: "frontend"}
	svc2, _ := newTestSkillService(t, gen)
	explicit := &schema.Skill{SkillName: "Spark", Category: schema.CategoryData}
	if err := svc2.Create(ctx, explicit); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if explicit.Category != schema.CategoryData || len(gen.prompts) != 0 {
		t.Fatalf("explicit category overridden: %q (provider calls: %d)", explicit.Category, len(gen.prompts))
	}
}

func TestEnrichResourcesCaching(t *testing.T) {
	gen := &fakeGenerator{
		configured: true,
		response:   `{"videos": ["v"], "documentation": ["d"], "courses": ["c"]}`,
	}
	svc, repo := newTestSkillService(t, gen)
	ctx := context.Background()

	skill := &schema.Skill{SkillName: "Go", Category: schema.CategoryBackend}
	if err := svc.Create(ctx, skill); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	first, err := svc.EnrichResources(ctx, skill, false)
	if err != nil {
		t.Fatalf("EnrichResources error: %v", err)
	}
	if first["videos"] == nil {
		t.Fatalf("first=%v", first)
	}
	calls := len(gen.prompts)

	// Cached blob is served without another provider call.
	reloaded, _ := repo.GetByID(ctx, skill.ID)
	second, err := svc.EnrichResources(ctx, reloaded, false)
	if err != nil {
		t.Fatalf("EnrichResources error: %v", err)
	}
	if len(gen.prompts) != calls {
		t.Fatalf("cached call hit the provider (%d -> %d calls)", calls, len(gen.prompts))
	}
	if second["videos"] == nil {
		t.Fatalf("second=%v", second)
	}

	// refresh=true forces a new call.
	if _, err := svc.EnrichResources(ctx, reloaded, true); err != nil {
		t.Fatalf("EnrichResources error: %v", err)
	}
	if len(gen.prompts) != calls+1 {
		t.Fatalf("refresh did not hit the provider")
	}
}

func TestEnrichResourcesFallbackNotCachedAsFresh(t *testing.T) {
	gen := &fakeGenerator{configured: true, err: errors.New("down")}
	svc, repo := newTestSkillService(t, gen)
	ctx := context.Background()

	skill := &schema.Skill{SkillName: "Go", Category: schema.CategoryBackend}
	if err := svc.Create(ctx, skill); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := svc.EnrichResources(ctx, skill, false); err != nil {
		t.Fatalf("EnrichResources error: %v", err)
	}
	calls := len(gen.prompts)

	// A fallback blob is advisory: the next request tries the provider again.
	reloaded, _ := repo.GetByID(ctx, skill.ID)
	if _, err := svc.EnrichResources(ctx, reloaded, false); err != nil {
		t.Fatalf("EnrichResources error: %v", err)
	}
	if len(gen.prompts) != calls+1 {
		t.Fatal("fallback blob should not be treated as a fresh cache")
	}
}

func TestPredictMasteryCachesBlob(t *testing.T) {
	svc, repo := newTestSkillService(t, &fakeGenerator{})
	ctx := context.Background()

	skill := &schema.Skill{SkillName: "Go", DifficultyRating: 3, HoursSpent: 30, Category: schema.CategoryBackend}
	if err := svc.Create(ctx, skill); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	result, err := svc.PredictMastery(ctx, skill)
	if err != nil {
		t.Fatalf("PredictMastery error: %v", err)
	}
	if result["estimated_total_hours"] != 60.0 {
		t.Fatalf("result=%v", result)
	}

	got, _ := repo.GetByID(ctx, skill.ID)
	if got.MasteryPrediction["estimated_total_hours"] != 60.0 {
		t.Fatalf("prediction not cached on record: %v", got.MasteryPrediction)
	}
}

func TestDashboard(t *testing.T) {
	svc, _ := newTestSkillService(t, &fakeGenerator{})
	ctx := context.Background()

	seed := []*schema.Skill{
		{SkillName: "Docker", Status: schema.StatusCompleted, Category: schema.CategoryDevops, HoursSpent: 10, DifficultyRating: 3},
		{SkillName: "Go", Status: schema.StatusStarted, Category: schema.CategoryBackend, HoursSpent: 30, DifficultyRating: 4},
		{SkillName: "Vue", Status: schema.StatusStarted, Category: schema.CategoryFrontend, HoursSpent: 5, DifficultyRating: 2},
		{SkillName: "Bash", Status: schema.StatusCompleted, Category: schema.CategoryDevops, HoursSpent: 3, DifficultyRating: 1},
	}
	for _, s := range seed {
		if err := svc.Create(ctx, s); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	stats, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard error: %v", err)
	}
	if stats.TotalSkills != 4 || stats.CompletedSkills != 2 {
		t.Fatalf("counts=%d/%d", stats.TotalSkills, stats.CompletedSkills)
	}
	if stats.CompletionPercentage != 50.0 {
		t.Fatalf("pct=%v", stats.CompletionPercentage)
	}
	if stats.TotalHours != 48 {
		t.Fatalf("hours=%v", stats.TotalHours)
	}
	if len(stats.TopSkills) != 4 || stats.TopSkills[0].SkillName != "Go" {
		t.Fatalf("top=%+v", stats.TopSkills)
	}
	if stats.SkillsByCategory[0].Category != schema.CategoryDevops {
		t.Fatalf("byCategory=%+v", stats.SkillsByCategory)
	}
	if stats.CurrentStreak != 0 {
		t.Fatalf("streak=%d, want 0 for a fresh profile", stats.CurrentStreak)
	}
}

func TestWeeklySummaryEndToEnd(t *testing.T) {
	svc, _ := newTestSkillService(t, &fakeGenerator{})
	ctx := context.Background()

	if err := svc.Create(ctx, &schema.Skill{SkillName: "Go", HoursSpent: 6, Status: schema.StatusCompleted, Category: schema.CategoryBackend}); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := svc.Create(ctx, &schema.Skill{SkillName: "Vue", HoursSpent: 2, Category: schema.CategoryFrontend}); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	summary, err := svc.WeeklySummary(ctx, time.Now())
	if err != nil {
		t.Fatalf("WeeklySummary error: %v", err)
	}
	if summary.Stats.SkillsAdded != 2 || summary.Stats.HoursLogged != 8 || summary.Stats.CompletedThisWeek != 1 {
		t.Fatalf("stats=%+v", summary.Stats)
	}
	if summary.AIMessage == "" {
		t.Fatal("disabled provider should still produce a message")
	}
}

func TestRecordActivityPersistsAndPublishes(t *testing.T) {
	db := testutil.OpenTestDB(t)
	hub := eventbus.NewHub()
	svc := NewStreakService(repository.NewProfileRepository(db), hub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := hub.Subscribe(ctx, 8)

	today := day("2026-08-28")
	got, err := svc.RecordActivity(ctx, today)
	if err != nil {
		t.Fatalf("RecordActivity error: %v", err)
	}
	if got.CurrentStreak != 1 {
		t.Fatalf("streak=%d, want 1", got.CurrentStreak)
	}

	// Day 1 is a milestone: both events should arrive.
	types := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case evt := <-events:
			types[evt.Type] = true
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for events")
		}
	}
	if !types[eventbus.TypeStreakUpdated] || !types[eventbus.TypeStreakMilestone] {
		t.Fatalf("events=%v", types)
	}

	// Same-day repeat is a persisted no-op.
	again, err := svc.RecordActivity(ctx, today)
	if err != nil {
		t.Fatalf("RecordActivity error: %v", err)
	}
	if again.CurrentStreak != 1 || again.TotalLearningDays != 1 {
		t.Fatalf("again=%+v", again)
	}

	stored, err := svc.Profile(ctx)
	if err != nil {
		t.Fatalf("Profile error: %v", err)
	}
	if stored.LastActivityDate != "2026-08-28" {
		t.Fatalf("stored=%+v", stored)
	}
}
