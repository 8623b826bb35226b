package routes

import (
	"context"
	"math"
	"time"

	"ecopulse/analytics"
	"ecopulse/database"
	"ecopulse/emissions"
	"ecopulse/middleware"
	"ecopulse/models"

	"github.com/gofiber/fiber/v2"
)

type insightHandler struct {
	gen analytics.Generator
}

func SetupInsightRoutes(api fiber.Router, gen analytics.Generator) {
	h := &insightHandler{gen: gen}

	insights := api.Group("/insights", middleware.JWTMiddleware)
	insights.Get("/generate", h.generate)
	insights.Get("/report", h.report)
}

func (h *insightHandler) loadSnapshot(orgID uint) ([]models.Activity, []models.EnergyRecord, []models.Goal) {
	var activities []models.Activity
	database.DB.Where("organization_id = ?", orgID).
		Order("created_at DESC").Limit(maxActivitiesScan).Find(&activities)

	var records []models.EnergyRecord
	database.DB.Where("organization_id = ?", orgID).
		Order("date DESC").Limit(maxEnergyScan).Find(&records)

	var goals []models.Goal
	database.DB.Where("organization_id = ?", orgID).
		Order("created_at DESC").Limit(maxGoalsScan).Find(&goals)

	return activities, records, goals
}

func (h *insightHandler) generate(c *fiber.Ctx) error {
	orgID := c.Locals("org_id").(uint)
	activities, records, goals := h.loadSnapshot(orgID)

	ctx, cancel := context.WithTimeout(c.Context(), generatorTimeout)
	defer cancel()

	return c.JSON(analytics.BuildInsights(ctx, activities, records, goals, h.gen))
}

// report construit le rapport exécutif : synthèse, ventilations par catégorie
// et par mois, avancée des objectifs. Entièrement calculé localement, sans
// collaborateur.
func (h *insightHandler) report(c *fiber.Ctx) error {
	orgID := c.Locals("org_id").(uint)
	activities, records, goals := h.loadSnapshot(orgID)

	var org models.Organization
	database.DB.First(&org, orgID)

	summary := analytics.Aggregate(activities, records)

	topCategory, _ := analytics.DominantCategory(summary.ByCategory)
	if topCategory == "" {
		topCategory = "N/A"
	}

	var trees float64
	if summary.CombinedKg > 0 {
		trees = math.Round(summary.CombinedKg/emissions.TreesAbsorptionKgPerYear*10) / 10
	}

	var completed int
	goalItems := make([]fiber.Map, 0, 5)
	for i := range goals {
		goal := goals[i]

		var since []models.Activity
		database.DB.Where("organization_id = ? AND created_at >= ?", orgID, goal.CreatedAt).
			Limit(maxActivitiesScan).Find(&since)
		progress := analytics.ComputeGoalProgress(goal, since)
		if progress.Status == models.GoalStatusCompleted {
			completed++
		}
		if len(goalItems) < 5 {
			goalItems = append(goalItems, fiber.Map{
				"title":    goal.Title,
				"progress": progress.ProgressPercent,
			})
		}
	}

	period := fiber.Map{"start": "", "end": ""}
	if len(activities) > 0 {
		// activités triées par création décroissante : la dernière du slice est
		// la plus ancienne
		period["start"] = activities[len(activities)-1].Date.Format("2006-01-02")
		period["end"] = activities[0].Date.Format("2006-01-02")
	}

	score := analytics.SustainabilityScore(summary.CombinedKg, 0, completed)

	return c.JSON(fiber.Map{
		"report_date":  time.Now().UTC().Format(time.RFC3339),
		"organization": org.Name,
		"period":       period,
		"executive_summary": fiber.Map{
			"total_carbon_footprint_kg": summary.CombinedKg,
			"total_activities_tracked":  len(activities),
			"sustainability_score":      score,
			"trees_equivalent":          trees,
			"top_emission_source":       topCategory,
		},
		"emissions_breakdown": fiber.Map{
			"by_category":        summary.ByCategory,
			"by_month":           summary.Monthly,
			"activity_emissions": summary.ActivityKg,
			"energy_emissions":   summary.EnergyKg,
		},
		"goals_progress": fiber.Map{
			"active":    len(goals) - completed,
			"completed": completed,
			"goals":     goalItems,
		},
		"recommendations": []string{
			"Continue tracking all activities for comprehensive reporting",
			"Focus on reducing emissions in top categories",
			"Set achievable monthly reduction targets",
			"Consider carbon offset programs for remaining emissions",
		},
	})
}
