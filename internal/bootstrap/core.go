package bootstrap

import (
	"time"

	"github.com/jxsim-x/skillstack-learning-tracker/internal/ai"
	"github.com/jxsim-x/skillstack-learning-tracker/internal/eventbus"
	"github.com/jxsim-x/skillstack-learning-tracker/internal/pkg/config"
	"github.com/jxsim-x/skillstack-learning-tracker/internal/repository"
	"github.com/jxsim-x/skillstack-learning-tracker/internal/service"
)

// Core holds the wired application dependencies.
type Core struct {
	Cfg     *config.Config
	CfgPath string
	DB      *repository.Database
	Hub     *eventbus.Hub

	Provider *ai.Provider

	Repos struct {
		Skills   *repository.SkillRepository
		Profiles *repository.ProfileRepository
	}

	Services struct {
		Skills *service.SkillService
		Streak *service.StreakService
	}
}

// NewCore builds the dependency graph from a loaded config.
func NewCore(cfg *config.Config, cfgPath string) (*Core, error) {
	db, err := repository.NewDatabase(cfg.Storage.DBPath)
	if err != nil {
		return nil, err
	}

	c := &Core{Cfg: cfg, CfgPath: cfgPath, DB: db, Hub: eventbus.NewHub()}

	c.Repos.Skills = repository.NewSkillRepository(db.DB)
	c.Repos.Profiles = repository.NewProfileRepository(db.DB)

	c.Provider = ai.NewProvider(ai.NewClient(&ai.Config{
		APIKey:  cfg.AI.APIKey,
		BaseURL: cfg.AI.BaseURL,
		Model:   cfg.AI.Model,
		Timeout: time.Duration(cfg.AI.TimeoutSec) * time.Second,
	}))

	enricher := service.NewEnricher(c.Provider)
	c.Services.Skills = service.NewSkillService(c.Repos.Skills, c.Repos.Profiles, enricher, c.Hub)
	c.Services.Streak = service.NewStreakService(c.Repos.Profiles, c.Hub)

	return c, nil
}

// Close releases held resources.
func (c *Core) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
