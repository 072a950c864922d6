package repository

import (
	"context"
	"testing"

	"github.com/jxsim-x/skillstack-learning-tracker/internal/schema"
	"github.com/jxsim-x/skillstack-learning-tracker/internal/testutil"
)

func TestProfileRepositoryLazyInit(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	profile, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if profile.ID != schema.ProfileID {
		t.Fatalf("id=%d, want %d", profile.ID, schema.ProfileID)
	}
	if profile.CurrentStreak != 0 || profile.TotalLearningDays != 0 || profile.LastActivityDate != "" {
		t.Fatalf("fresh profile should be all-zero, got %+v", profile)
	}

	// Second Get must return the same row, not create another.
	again, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if again.ID != schema.ProfileID {
		t.Fatalf("id=%d, want %d", again.ID, schema.ProfileID)
	}

	var count int64
	if err := db.Model(&schema.Profile{}).Count(&count).Error; err != nil {
		t.Fatalf("count error: %v", err)
	}
	if count != 1 {
		t.Fatalf("profile rows=%d, want 1", count)
	}
}

func TestProfileRepositorySave(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	profile, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}

	profile.CurrentStreak = 3
	profile.LongestStreak = 5
	profile.LastActivityDate = "2026-08-28"
	if err := repo.Save(ctx, profile); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.CurrentStreak != 3 || got.LongestStreak != 5 || got.LastActivityDate != "2026-08-28" {
		t.Fatalf("got=%+v", got)
	}
}
