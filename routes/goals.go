package routes

import (
	"time"

	"ecopulse/analytics"
	"ecopulse/database"
	"ecopulse/middleware"
	"ecopulse/models"

	"github.com/gofiber/fiber/v2"
)

const maxGoalsScan = 100

func SetupGoalRoutes(api fiber.Router) {
	goals := api.Group("/goals", middleware.JWTMiddleware)
	goals.Post("/", createGoal)
	goals.Get("/", listGoals)
	goals.Delete("/:id", deleteGoal)
}

type goalPayload struct {
	Title                  string   `json:"title"`
	Description            string   `json:"description"`
	TargetReductionPercent float64  `json:"target_reduction_percent"`
	TargetDate             string   `json:"target_date"`
	BaselineEmissionsKg    *float64 `json:"baseline_emissions_kg"`
}

type goalResponse struct {
	models.Goal
	CurrentEmissionsKg float64 `json:"current_emissions_kg"`
	ProgressPercent    float64 `json:"progress_percent"`
}

// createGoal fixe la baseline : valeur explicite, sinon total des activités des
// 30 derniers jours (fenêtre par timestamp de création), avec une baseline
// nominale quand ce total est nul.
func createGoal(c *fiber.Ctx) error {
	orgID := c.Locals("org_id").(uint)

	var body goalPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
	}
	targetDate, err := parseDate(body.TargetDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Date invalide, format attendu YYYY-MM-DD"})
	}

	var baseline float64
	if body.BaselineEmissionsKg != nil && *body.BaselineEmissionsKg > 0 {
		baseline = *body.BaselineEmissionsKg
	} else {
		var trailing []models.Activity
		thirtyDaysAgo := time.Now().UTC().AddDate(0, 0, -30)
		database.DB.Where("organization_id = ? AND created_at >= ?", orgID, thirtyDaysAgo).
			Limit(maxActivitiesScan).Find(&trailing)
		baseline = analytics.BaselineFromTrailing(trailing)
	}

	goal := models.Goal{
		OrganizationID:         orgID,
		Title:                  body.Title,
		Description:            body.Description,
		TargetReductionPercent: body.TargetReductionPercent,
		TargetDate:             targetDate,
		BaselineEmissionsKg:    baseline,
		Status:                 models.GoalStatusActive,
	}
	if err := database.DB.Create(&goal).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erreur création objectif"})
	}

	return c.Status(fiber.StatusCreated).JSON(goalResponse{
		Goal:               goal,
		CurrentEmissionsKg: baseline,
		ProgressPercent:    0,
	})
}

// listGoals recalcule émissions courantes et progression à chaque lecture. Un
// passage à "completed" est persisté pour que le statut ne revienne jamais en
// arrière, même si de nouvelles activités font retomber la progression.
func listGoals(c *fiber.Ctx) error {
	orgID := c.Locals("org_id").(uint)

	var goals []models.Goal
	database.DB.Where("organization_id = ?", orgID).
		Order("created_at DESC").Limit(maxGoalsScan).Find(&goals)

	out := make([]goalResponse, 0, len(goals))
	for i := range goals {
		goal := goals[i]

		var since []models.Activity
		database.DB.Where("organization_id = ? AND created_at >= ?", orgID, goal.CreatedAt).
			Limit(maxActivitiesScan).Find(&since)

		progress := analytics.ComputeGoalProgress(goal, since)
		if progress.Status == models.GoalStatusCompleted && goal.Status != models.GoalStatusCompleted {
			database.DB.Model(&goal).Update("status", models.GoalStatusCompleted)
		}
		goal.Status = progress.Status

		out = append(out, goalResponse{
			Goal:               goal,
			CurrentEmissionsKg: progress.CurrentEmissionsKg,
			ProgressPercent:    progress.ProgressPercent,
		})
	}
	return c.JSON(out)
}

func deleteGoal(c *fiber.Ctx) error {
	orgID := c.Locals("org_id").(uint)

	result := database.DB.Where("id = ? AND organization_id = ?", c.Params("id"), orgID).
		Delete(&models.Goal{})
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Objectif introuvable"})
	}
	return c.JSON(fiber.Map{"message": "Objectif supprimé"})
}
