package routes

import (
	"math"

	"ecopulse/analytics"
	"ecopulse/database"
	"ecopulse/emissions"
	"ecopulse/middleware"
	"ecopulse/models"

	"github.com/gofiber/fiber/v2"
)

const maxOrgsScan = 100

func SetupDashboardRoutes(api fiber.Router) {
	dashboard := api.Group("/dashboard", middleware.JWTMiddleware)
	dashboard.Get("/stats", dashboardStats)
	dashboard.Get("/leaderboard", leaderboard)
}

func dashboardStats(c *fiber.Ctx) error {
	orgID := c.Locals("org_id").(uint)

	var activities []models.Activity
	database.DB.Where("organization_id = ?", orgID).
		Order("created_at DESC").Limit(maxActivitiesScan).Find(&activities)

	var records []models.EnergyRecord
	database.DB.Where("organization_id = ?", orgID).
		Order("date DESC").Limit(maxEnergyScan).Find(&records)

	var goals []models.Goal
	database.DB.Where("organization_id = ?", orgID).
		Order("created_at DESC").Limit(maxGoalsScan).Find(&goals)

	summary := analytics.Aggregate(activities, records)

	// l'énergie apparaît comme pseudo-catégorie sur le tableau de bord
	byCategory := summary.ByCategory
	byCategory["energy"] = summary.EnergyKg

	var active, completed int
	for _, g := range goals {
		if g.Status == models.GoalStatusCompleted {
			completed++
		} else {
			active++
		}
	}

	var trees float64
	if summary.CombinedKg > 0 {
		trees = math.Round(summary.CombinedKg/emissions.TreesAbsorptionKgPerYear*10) / 10
	}

	return c.JSON(fiber.Map{
		"total_emissions_kg":     summary.CombinedKg,
		"total_activities":       len(activities),
		"emissions_by_category":  byCategory,
		"monthly_trend":          analytics.MonthlyTrend(activities, records, 12),
		"trees_saved_equivalent": trees,
		"sustainability_score":   math.Round(analytics.SustainabilityScore(summary.CombinedKg, 0, completed)),
		"active_goals":           active,
		"completed_goals":        completed,
	})
}

// leaderboard classe toutes les organisations ; chaque registre est chargé
// indépendamment, aucune organisation ne bloque sur les données d'une autre.
func leaderboard(c *fiber.Ctx) error {
	var orgs []models.Organization
	database.DB.Limit(maxOrgsScan).Find(&orgs)

	ledgers := make([]analytics.OrgLedger, 0, len(orgs))
	for _, org := range orgs {
		var activities []models.Activity
		database.DB.Where("organization_id = ?", org.ID).
			Order("created_at DESC").Limit(maxActivitiesScan).Find(&activities)
		ledgers = append(ledgers, analytics.OrgLedger{Org: org, Activities: activities})
	}

	return c.JSON(analytics.RankOrganizations(ledgers))
}
