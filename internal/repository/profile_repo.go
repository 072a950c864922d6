package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jxsim-x/skillstack-learning-tracker/internal/schema"
	"gorm.io/gorm"
)

// ProfileRepository owns the single Profile row.
// The tracker is single-user: every call operates on schema.ProfileID.
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates the repository.
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Get returns the profile, lazily creating it with zero defaults on first use.
func (r *ProfileRepository) Get(ctx context.Context) (*schema.Profile, error) {
	var profile schema.Profile
	err := r.db.WithContext(ctx).First(&profile, schema.ProfileID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			profile = schema.Profile{ID: schema.ProfileID}
			if err := r.db.WithContext(ctx).Create(&profile).Error; err != nil {
				return nil, fmt.Errorf("init profile: %w", err)
			}
			return &profile, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}

// Save persists the profile. Last writer wins; concurrent same-day updates
// are idempotent at the streak level so no locking is taken here.
func (r *ProfileRepository) Save(ctx context.Context, profile *schema.Profile) error {
	profile.ID = schema.ProfileID
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
