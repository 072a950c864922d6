package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/jxsim-x/skillstack-learning-tracker/internal/ai"
	"github.com/jxsim-x/skillstack-learning-tracker/internal/bootstrap"
	"github.com/jxsim-x/skillstack-learning-tracker/internal/dto"
	"github.com/jxsim-x/skillstack-learning-tracker/internal/pkg/buildinfo"
	"github.com/jxsim-x/skillstack-learning-tracker/internal/pkg/config"
	"github.com/jxsim-x/skillstack-learning-tracker/internal/repository"
	"github.com/jxsim-x/skillstack-learning-tracker/internal/schema"
	"github.com/jxsim-x/skillstack-learning-tracker/internal/service"
)

// API holds the handler dependencies.
type API struct {
	core      *bootstrap.Core
	startTime time.Time
	now       func() time.Time // injectable clock for streak and summary handlers
}

// NewAPI creates the handler set.
func NewAPI(core *bootstrap.Core) *API {
	return &API{core: core, startTime: time.Now(), now: time.Now}
}

// Routes builds the request mux.
func (a *API) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", a.handleHealth)
	mux.HandleFunc("GET /api/events", a.handleSSE)

	mux.HandleFunc("GET /api/skills", a.handleListSkills)
	mux.HandleFunc("POST /api/skills", a.handleCreateSkill)
	mux.HandleFunc("GET /api/skills/{id}", a.handleGetSkill)
	mux.HandleFunc("PUT /api/skills/{id}", a.handleUpdateSkill)
	mux.HandleFunc("PATCH /api/skills/{id}", a.handleUpdateSkill)
	mux.HandleFunc("DELETE /api/skills/{id}", a.handleDeleteSkill)
	mux.HandleFunc("POST /api/skills/{id}/ai-resources", a.handleAIResources)
	mux.HandleFunc("POST /api/skills/{id}/mastery-predict", a.handleMasteryPredict)

	mux.HandleFunc("GET /api/profile/streak", a.handleStreak)
	mux.HandleFunc("POST /api/profile/update-streak", a.handleUpdateStreak)

	mux.HandleFunc("GET /api/dashboard-stats", a.handleDashboardStats)
	mux.HandleFunc("POST /api/weekly-summary", a.handleWeeklySummary)

	mux.HandleFunc("GET /api/settings", a.handleGetSettings)
	mux.HandleFunc("PUT /api/settings", a.handlePutSettings)

	return mux
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"name":       a.core.Cfg.App.Name,
		"version":    buildinfo.Version,
		"started_at": a.startTime.Format(time.RFC3339),
	})
}

// writeServiceError maps a service failure onto a status code. Validation is
// the only user-visible failure class; everything else is internal.
func writeServiceError(w http.ResponseWriter, err error) {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		writeError(w, http.StatusBadRequest, vErr.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func (a *API) skillFromPath(w http.ResponseWriter, r *http.Request) *schema.Skill {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid skill id")
		return nil
	}
	skill, err := a.core.Services.Skills.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return nil
	}
	if skill == nil {
		writeError(w, http.StatusNotFound, "skill not found")
		return nil
	}
	return skill
}

func (a *API) handleListSkills(w http.ResponseWriter, r *http.Request) {
	filter := repository.SkillFilter{
		Status:   r.URL.Query().Get("status"),
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}
	skills, err := a.core.Services.Skills.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if skills == nil {
		skills = []schema.Skill{}
	}
	writeJSON(w, http.StatusOK, skills)
}

func (a *API) handleCreateSkill(w http.ResponseWriter, r *http.Request) {
	var skill schema.Skill
	if err := json.NewDecoder(r.Body).Decode(&skill); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	skill.ID = 0

	if err := a.core.Services.Skills.Create(r.Context(), &skill); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, skill)
}

func (a *API) handleGetSkill(w http.ResponseWriter, r *http.Request) {
	skill := a.skillFromPath(w, r)
	if skill == nil {
		return
	}
	writeJSON(w, http.StatusOK, skill)
}

func (a *API) handleUpdateSkill(w http.ResponseWriter, r *http.Request) {
	skill := a.skillFromPath(w, r)
	if skill == nil {
		return
	}

	var update dto.SkillUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	update.Apply(skill)

	if err := a.core.Services.Skills.Update(r.Context(), skill); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, skill)
}

func (a *API) handleDeleteSkill(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid skill id")
		return
	}
	if err := a.core.Services.Skills.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleAIResources(w http.ResponseWriter, r *http.Request) {
	skill := a.skillFromPath(w, r)
	if skill == nil {
		return
	}
	refresh := r.URL.Query().Get("refresh") == "true"

	// Enrichment never fails outward; only a storage error can surface here.
	resources, err := a.core.Services.Skills.EnrichResources(r.Context(), skill, refresh)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"skill_id":   skill.ID,
		"skill_name": skill.SkillName,
		"resources":  resources,
	})
}

func (a *API) handleMasteryPredict(w http.ResponseWriter, r *http.Request) {
	skill := a.skillFromPath(w, r)
	if skill == nil {
		return
	}

	prediction, err := a.core.Services.Skills.PredictMastery(r.Context(), skill)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"skill_id":   skill.ID,
		"skill_name": skill.SkillName,
		"prediction": prediction,
	})
}

func (a *API) handleStreak(w http.ResponseWriter, r *http.Request) {
	profile, err := a.core.Services.Streak.Profile(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromProfile(profile))
}

func (a *API) handleUpdateStreak(w http.ResponseWriter, r *http.Request) {
	profile, err := a.core.Services.Streak.RecordActivity(r.Context(), a.now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromProfile(profile))
}

func (a *API) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.core.Services.Skills.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (a *API) handleWeeklySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := a.core.Services.Skills.WeeklySummary(r.Context(), a.now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (a *API) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	cfg := a.core.Cfg
	writeJSON(w, http.StatusOK, dto.SettingsDTO{
		AIConfigured: a.core.Provider.Configured(),
		BaseURL:      cfg.AI.BaseURL,
		Model:        cfg.AI.Model,
		LogLevel:     cfg.App.LogLevel,
	})
}

func (a *API) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var update dto.SettingsUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cfg := a.core.Cfg
	if update.APIKey != nil {
		cfg.AI.APIKey = *update.APIKey
	}
	if update.BaseURL != nil {
		cfg.AI.BaseURL = *update.BaseURL
	}
	if update.Model != nil {
		cfg.AI.Model = *update.Model
	}

	a.core.Provider.Reconfigure(&ai.Config{
		APIKey:  cfg.AI.APIKey,
		BaseURL: cfg.AI.BaseURL,
		Model:   cfg.AI.Model,
		Timeout: time.Duration(cfg.AI.TimeoutSec) * time.Second,
	})

	if a.core.CfgPath != "" {
		if err := config.WriteFile(a.core.CfgPath, cfg); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	a.handleGetSettings(w, r)
}

func (a *API) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "stream not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ctx := r.Context()
	sub := a.core.Hub.Subscribe(ctx, 32)

	_, _ = io.WriteString(w, "event: ready\ndata: {}\n\n")
	flusher.Flush()

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = io.WriteString(w, "event: ping\ndata: {}\n\n")
			flusher.Flush()
		case evt, ok := <-sub:
			if !ok {
				return
			}
			b, _ := json.Marshal(evt)
			_, _ = io.WriteString(w, "event: "+evt.Type+"\n")
			_, _ = io.WriteString(w, "data: ")
			_, _ = w.Write(b)
			_, _ = io.WriteString(w, "\n\n")
			flusher.Flush()
		}
	}
}
