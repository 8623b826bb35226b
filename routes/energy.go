package routes

import (
	"context"
	"time"

	"ecopulse/analytics"
	"ecopulse/database"
	"ecopulse/emissions"
	"ecopulse/middleware"
	"ecopulse/models"

	"github.com/gofiber/fiber/v2"
)

// maxEnergyScan borne l'historique énergie chargé par requête (un an).
const maxEnergyScan = 365

// generatorTimeout borne chaque appel au collaborateur de génération : au-delà,
// le moteur sert son repli local sans bloquer la requête.
const generatorTimeout = 25 * time.Second

type energyHandler struct {
	table *emissions.Table
	gen   analytics.Generator
}

func SetupEnergyRoutes(api fiber.Router, table *emissions.Table, gen analytics.Generator) {
	h := &energyHandler{table: table, gen: gen}

	energy := api.Group("/energy", middleware.JWTMiddleware)
	energy.Post("/", h.create)
	energy.Get("/", h.list)
	energy.Get("/forecast", h.forecast)
}

type energyPayload struct {
	Date               string  `json:"date"`
	ElectricityKwh     float64 `json:"electricity_kwh"`
	NumPeople          int     `json:"num_people"`
	NumSystems         int     `json:"num_systems"`
	ACHours            float64 `json:"ac_hours"`
	OutdoorTempCelsius float64 `json:"outdoor_temp_celsius"`
	Notes              string  `json:"notes"`
}

func (h *energyHandler) create(c *fiber.Ctx) error {
	var body energyPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
	}
	date, err := parseDate(body.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Date invalide, format attendu YYYY-MM-DD"})
	}

	record := models.EnergyRecord{
		OrganizationID:     c.Locals("org_id").(uint),
		Date:               date,
		ElectricityKwh:     body.ElectricityKwh,
		NumPeople:          body.NumPeople,
		NumSystems:         body.NumSystems,
		ACHours:            body.ACHours,
		OutdoorTempCelsius: body.OutdoorTempCelsius,
		EmissionKg:         h.table.EnergyEmission(body.ElectricityKwh),
		Notes:              body.Notes,
	}
	if err := database.DB.Create(&record).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erreur enregistrement relevé"})
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (h *energyHandler) list(c *fiber.Ctx) error {
	orgID := c.Locals("org_id").(uint)

	limit := c.QueryInt("limit", maxEnergyScan)
	if limit <= 0 || limit > maxEnergyScan {
		limit = maxEnergyScan
	}

	var records []models.EnergyRecord
	database.DB.Where("organization_id = ?", orgID).
		Order("date DESC").Limit(limit).Find(&records)
	return c.JSON(records)
}

func (h *energyHandler) forecast(c *fiber.Ctx) error {
	orgID := c.Locals("org_id").(uint)

	var records []models.EnergyRecord
	database.DB.Where("organization_id = ?", orgID).
		Order("date DESC").Limit(maxEnergyScan).Find(&records)

	ctx, cancel := context.WithTimeout(c.Context(), generatorTimeout)
	defer cancel()

	return c.JSON(analytics.BuildForecast(ctx, records, h.gen))
}
