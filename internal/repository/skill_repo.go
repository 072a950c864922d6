package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jxsim-x/skillstack-learning-tracker/internal/schema"
	"gorm.io/gorm"
)

// SkillFilter narrows a List call. Zero values mean "no filter".
type SkillFilter struct {
	Status   string
	Category string
	Search   string // substring match on skill_name
}

// CategoryCount is one row of the grouped category aggregate.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// SkillRepository owns Skill persistence.
type SkillRepository struct {
	db *gorm.DB
}

// NewSkillRepository creates the repository.
func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{db: db}
}

// Create inserts a skill.
func (r *SkillRepository) Create(ctx context.Context, skill *schema.Skill) error {
	if err := r.db.WithContext(ctx).Create(skill).Error; err != nil {
		return fmt.Errorf("create skill: %w", err)
	}
	return nil
}

// GetByID returns a skill or nil when it does not exist.
func (r *SkillRepository) GetByID(ctx context.Context, id int64) (*schema.Skill, error) {
	var skill schema.Skill
	err := r.db.WithContext(ctx).First(&skill, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get skill: %w", err)
	}
	return &skill, nil
}

// Update saves all fields of an existing skill.
func (r *SkillRepository) Update(ctx context.Context, skill *schema.Skill) error {
	if err := r.db.WithContext(ctx).Save(skill).Error; err != nil {
		return fmt.Errorf("update skill: %w", err)
	}
	return nil
}

// Delete removes a skill by id.
func (r *SkillRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&schema.Skill{}, id).Error; err != nil {
		return fmt.Errorf("delete skill: %w", err)
	}
	return nil
}

// List returns skills matching the filter, newest first.
func (r *SkillRepository) List(ctx context.Context, filter SkillFilter) ([]schema.Skill, error) {
	q := r.db.WithContext(ctx).Model(&schema.Skill{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		q = q.Where("skill_name LIKE ?", "%"+filter.Search+"%")
	}

	var skills []schema.Skill
	if err := q.Order("created_at DESC").Find(&skills).Error; err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	return skills, nil
}

// Count returns the total number of skills.
func (r *SkillRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&schema.Skill{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count skills: %w", err)
	}
	return count, nil
}

// CountByStatus returns the number of skills in the given status.
func (r *SkillRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&schema.Skill{}).
		Where("status = ?", status).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count skills by status: %w", err)
	}
	return count, nil
}

// SumHours returns the total hours logged across all skills.
func (r *SkillRepository) SumHours(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&schema.Skill{}).
		Select("COALESCE(SUM(hours_spent), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("sum hours: %w", err)
	}
	return total, nil
}

// CountByCategory groups skills by category, most populated first.
func (r *SkillRepository) CountByCategory(ctx context.Context) ([]CategoryCount, error) {
	var rows []CategoryCount
	err := r.db.WithContext(ctx).Model(&schema.Skill{}).
		Select("category, COUNT(id) AS count").
		Group("category").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count skills by category: %w", err)
	}
	return rows, nil
}

// TopByHours returns the N skills with the most hours logged.
func (r *SkillRepository) TopByHours(ctx context.Context, limit int) ([]schema.Skill, error) {
	var skills []schema.Skill
	err := r.db.WithContext(ctx).
		Order("hours_spent DESC").
		Limit(limit).
		Find(&skills).Error
	if err != nil {
		return nil, fmt.Errorf("top skills: %w", err)
	}
	return skills, nil
}

// CreatedSince returns skills created at or after the cutoff.
func (r *SkillRepository) CreatedSince(ctx context.Context, cutoff time.Time) ([]schema.Skill, error) {
	var skills []schema.Skill
	err := r.db.WithContext(ctx).
		Where("created_at >= ?", cutoff).
		Find(&skills).Error
	if err != nil {
		return nil, fmt.Errorf("skills created since %s: %w", cutoff.Format(schema.DateLayout), err)
	}
	return skills, nil
}
