package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"strings"

	"github.com/jxsim-x/skillstack-learning-tracker/internal/ai"
	"github.com/jxsim-x/skillstack-learning-tracker/internal/schema"
)

// TextGenerator is the provider dependency of the enrichment pipeline.
// *ai.Client satisfies it; tests substitute fakes.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Configured() bool
}

// Enricher produces AI-generated supplementary content with deterministic
// fallbacks. No method returns a provider or extraction error to its caller:
// every failure path terminates in a degraded-but-complete result.
type Enricher struct {
	gen TextGenerator
}

// NewEnricher creates the enricher.
func NewEnricher(gen TextGenerator) *Enricher {
	return &Enricher{gen: gen}
}

// logEnrichFailure records why an enrichment attempt degraded, keeping
// extraction failures distinguishable from provider failures.
func logEnrichFailure(op, skillName string, err error) {
	var extractErr *ai.ExtractionError
	kind := "provider"
	if errors.As(err, &extractErr) {
		kind = "extraction"
	}
	slog.Warn("enrichment degraded to fallback", "op", op, "skill", skillName, "kind", kind, "error", err)
}

// Recommend returns learning-resource links for a skill.
// Unconfigured provider → empty lists (disabled state, not a failure).
// Provider or extraction failure → deterministic search-URL fallback.
func (e *Enricher) Recommend(ctx context.Context, skillName, resourceType string) schema.JSONMap {
	if e.gen == nil || !e.gen.Configured() {
		return schema.JSONMap{
			"videos":        []any{},
			"documentation": []any{},
			"courses":       []any{},
		}
	}

	prompt := fmt.Sprintf(`For learning %s, provide 3 REAL YouTube channel/video URLs and 2 REAL documentation links.

Return ONLY this JSON format (no other text):
{
  "videos": [
    "Video Title 1 - https://www.youtube.com/watch?v=VIDEOID1",
    "Video Title 2 - https://www.youtube.com/watch?v=VIDEOID2",
    "Video Title 3 - https://www.youtube.com/watch?v=VIDEOID3"
  ],
  "documentation": [
    "Official Docs - https://official-documentation-url.com",
    "Guide - https://guide-or-tutorial-url.com"
  ],
  "courses": [
    "Course Name - https://www.udemy.com/course/actual-course-id"
  ]
}

IMPORTANT:
- Use REAL direct links (youtube.com/watch?v=... NOT /results?search)
- Use ACTUAL documentation URLs (official docs, github, etc)
- Preferred resource type: %s
- Return ONLY JSON`, skillName, resourceType)

	raw, err := e.gen.Generate(ctx, prompt)
	if err != nil {
		logEnrichFailure("recommend", skillName, err)
		return fallbackResources(skillName)
	}

	result, err := ai.ExtractJSON(raw)
	if err != nil {
		logEnrichFailure("recommend", skillName, err)
		return fallbackResources(skillName)
	}

	slog.Info("AI resources generated", "skill", skillName)
	return schema.JSONMap(result)
}

// fallbackResources builds search-engine links from the skill name. Query
// escaping keeps arbitrary names (spaces, punctuation) from breaking the URLs.
func fallbackResources(skillName string) schema.JSONMap {
	q := url.QueryEscape(skillName)
	return schema.JSONMap{
		"videos": []any{
			fmt.Sprintf("%s Tutorial - https://www.youtube.com/results?search_query=%s+tutorial", skillName, q),
			fmt.Sprintf("Learn %s - https://www.youtube.com/results?search_query=%s+course+beginners", skillName, q),
			fmt.Sprintf("%s for Beginners - https://www.youtube.com/results?search_query=%s+getting+started", skillName, q),
		},
		"documentation": []any{
			fmt.Sprintf("Official %s Docs - https://www.google.com/search?q=%s+official+documentation", skillName, q),
			fmt.Sprintf("%s Guide - https://github.com/search?q=%s+documentation", skillName, q),
		},
		"courses": []any{
			fmt.Sprintf("Learn %s - https://www.udemy.com/courses/search/?q=%s", skillName, q),
		},
		"note": "Fallback links - AI temporarily unavailable",
	}
}

// PredictMastery estimates the time to master a skill. The deterministic
// baseline (difficulty × 20 hours at a 10-hour/week pace) is always computed;
// an AI-generated richer version replaces it only when the full
// prompt→generate→extract path succeeds.
func (e *Enricher) PredictMastery(ctx context.Context, skillName string, difficultyRating int, hoursSpent float64) schema.JSONMap {
	baseHours := float64(difficultyRating) * 20
	remaining := math.Max(0, baseHours-hoursSpent)

	completionPct := 0.0
	if baseHours > 0 {
		completionPct = round1(hoursSpent / baseHours * 100)
	}
	if completionPct > 100 {
		completionPct = 100
	}

	estimatedWeeks := 1.0
	if remaining > 0 {
		estimatedWeeks = round1(remaining / 10)
	}

	if e.gen != nil && e.gen.Configured() {
		prompt := fmt.Sprintf(`Learning prediction for: %s
Difficulty: %d/5
Hours spent: %g

Respond with ONLY valid JSON:
{
  "estimated_weeks": <number>,
  "estimated_total_hours": <number>,
  "completion_percentage": <number>,
  "tips": ["tip1", "tip2", "tip3"],
  "ai_tools": ["tool1", "tool2"]
}

Provide:
- Estimated weeks to complete (at 10 hours/week)
- Total hours needed
- Current completion percentage
- 3 specific learning tips
- 2 AI tools that can help

Return ONLY JSON, no explanations.`, skillName, difficultyRating, hoursSpent)

		raw, err := e.gen.Generate(ctx, prompt)
		if err == nil {
			if result, exErr := ai.ExtractJSON(raw); exErr == nil {
				slog.Info("mastery prediction generated", "skill", skillName, "source", "ai")
				return schema.JSONMap(result)
			} else {
				logEnrichFailure("predict", skillName, exErr)
			}
		} else {
			logEnrichFailure("predict", skillName, err)
		}
	}

	slog.Info("mastery prediction generated", "skill", skillName, "source", "calculated")
	return schema.JSONMap{
		"estimated_weeks":       estimatedWeeks,
		"estimated_total_hours": baseHours,
		"completion_percentage": completionPct,
		"tips": []any{
			fmt.Sprintf("Practice %s daily for consistency", skillName),
			"Build real-world projects to apply concepts",
			"Join online communities for support",
		},
		"ai_tools": []any{
			"ChatGPT for code help",
			"GitHub Copilot for faster coding",
		},
	}
}

// WeeklyStats are the trailing 7-day aggregates fed into the summary.
type WeeklyStats struct {
	SkillsAdded       int64   `json:"skills_added"`
	HoursLogged       float64 `json:"hours_logged"`
	CompletedThisWeek int64   `json:"completed_this_week"`
}

// WeeklySummary pairs the stats with a motivational message.
type WeeklySummary struct {
	Stats     WeeklyStats `json:"stats"`
	AIMessage string      `json:"ai_message"`
	Error     string      `json:"error,omitempty"`
}

// Summarize produces the weekly motivational summary. The provider's raw
// text is the payload; no JSON extraction is involved.
func (e *Enricher) Summarize(ctx context.Context, stats WeeklyStats) WeeklySummary {
	if e.gen == nil || !e.gen.Configured() {
		return WeeklySummary{
			Stats:     stats,
			AIMessage: "Great week of learning! Keep up the momentum!",
		}
	}

	prompt := fmt.Sprintf(`You are a motivational learning coach. Generate an encouraging weekly summary.

This week's stats:
- Skills added: %d
- Hours logged: %g
- Skills completed: %d

Write a 2-3 sentence motivational message:
- Celebrate achievements
- Encourage consistency
- Be positive and energetic

Keep it under 150 characters. Use emojis.`, stats.SkillsAdded, stats.HoursLogged, stats.CompletedThisWeek)

	raw, err := e.gen.Generate(ctx, prompt)
	if err != nil {
		logEnrichFailure("weekly-summary", "", err)
		return WeeklySummary{
			Stats:     stats,
			AIMessage: "Keep learning and growing!",
			Error:     err.Error(),
		}
	}

	return WeeklySummary{
		Stats:     stats,
		AIMessage: strings.TrimSpace(raw),
	}
}

// Categorize asks the provider to place a skill name into one of the fixed
// categories. Anything other than a clean, valid answer defaults to "other".
func (e *Enricher) Categorize(ctx context.Context, skillName string) string {
	if e.gen == nil || !e.gen.Configured() {
		return schema.CategoryOther
	}

	prompt := fmt.Sprintf(`Categorize the skill "%s" into exactly ONE of these categories:
- frontend
- backend
- data
- devops
- other

Respond with ONLY the category word, nothing else.`, skillName)

	raw, err := e.gen.Generate(ctx, prompt)
	if err != nil {
		logEnrichFailure("categorize", skillName, err)
		return schema.CategoryOther
	}

	category := strings.ToLower(strings.TrimSpace(raw))
	if !schema.ValidCategory(category) {
		slog.Warn("invalid category from provider", "skill", skillName, "category", category)
		return schema.CategoryOther
	}
	return category
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
