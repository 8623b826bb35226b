package routes

import (
	"time"

	"ecopulse/database"
	"ecopulse/emissions"
	"ecopulse/middleware"
	"ecopulse/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// maxActivitiesScan borne l'instantané chargé pour les agrégations : jamais de
// scan illimité.
const maxActivitiesScan = 1000

type activityHandler struct {
	table *emissions.Table
}

func SetupActivityRoutes(api fiber.Router, table *emissions.Table) {
	h := &activityHandler{table: table}

	activities := api.Group("/activities", middleware.JWTMiddleware)
	activities.Post("/travel", h.createTravel)
	activities.Post("/events", h.createEvent)
	activities.Post("/infrastructure", h.createInfrastructure)
	activities.Post("/marketing", h.createMarketing)
	activities.Post("/office", h.createOffice)
	activities.Post("/staff-welfare", h.createStaffWelfare)
	activities.Get("/", h.list)
	activities.Delete("/:id", h.remove)
}

type travelPayload struct {
	Description string   `json:"description"`
	Date        string   `json:"date"`
	VehicleType string   `json:"vehicle_type"`
	DistanceKm  float64  `json:"distance_km"`
	Passengers  int      `json:"passengers"`
	Cost        *float64 `json:"cost"`
}

func (h *activityHandler) createTravel(c *fiber.Ctx) error {
	var body travelPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
	}
	date, err := parseDate(body.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Date invalide, format attendu YYYY-MM-DD"})
	}

	emission := h.table.TravelEmission(body.VehicleType, body.DistanceKm, body.Passengers)
	return h.persist(c, models.Activity{
		Category:    string(emissions.CategoryTravel),
		Subtype:     body.VehicleType,
		Description: body.Description,
		Date:        date,
		Details: datatypes.JSONMap{
			"vehicle_type": body.VehicleType,
			"distance_km":  body.DistanceKm,
			"passengers":   body.Passengers,
		},
		EmissionKg: emission,
		Cost:       body.Cost,
	})
}

type eventPayload struct {
	Description   string   `json:"description"`
	Date          string   `json:"date"`
	EventType     string   `json:"event_type"`
	Attendees     int      `json:"attendees"`
	DurationHours float64  `json:"duration_hours"`
	HasCatering   bool     `json:"has_catering"`
	HasTravel     bool     `json:"has_travel"`
	Cost          *float64 `json:"cost"`
}

func (h *activityHandler) createEvent(c *fiber.Ctx) error {
	var body eventPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
	}
	date, err := parseDate(body.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Date invalide, format attendu YYYY-MM-DD"})
	}

	emission := h.table.EventEmission(body.EventType, body.Attendees, body.DurationHours, body.HasCatering, body.HasTravel)
	return h.persist(c, models.Activity{
		Category:    string(emissions.CategoryEvents),
		Subtype:     body.EventType,
		Description: body.Description,
		Date:        date,
		Details: datatypes.JSONMap{
			"event_type":     body.EventType,
			"attendees":      body.Attendees,
			"duration_hours": body.DurationHours,
			"has_catering":   body.HasCatering,
			"has_travel":     body.HasTravel,
		},
		EmissionKg: emission,
		Cost:       body.Cost,
	})
}

type infrastructurePayload struct {
	Description   string   `json:"description"`
	Date          string   `json:"date"`
	EquipmentType string   `json:"equipment_type"`
	UsageHours    float64  `json:"usage_hours"`
	PowerRatingKw float64  `json:"power_rating_kw"`
	Quantity      int      `json:"quantity"`
	Cost          *float64 `json:"cost"`
}

func (h *activityHandler) createInfrastructure(c *fiber.Ctx) error {
	var body infrastructurePayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
	}
	date, err := parseDate(body.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Date invalide, format attendu YYYY-MM-DD"})
	}
	if body.PowerRatingKw == 0 {
		body.PowerRatingKw = 1.0
	}
	if body.Quantity == 0 {
		body.Quantity = 1
	}

	emission := h.table.InfrastructureEmission(body.EquipmentType, body.UsageHours, body.PowerRatingKw, body.Quantity)
	return h.persist(c, models.Activity{
		Category:    string(emissions.CategoryInfrastructure),
		Subtype:     body.EquipmentType,
		Description: body.Description,
		Date:        date,
		Details: datatypes.JSONMap{
			"equipment_type":  body.EquipmentType,
			"usage_hours":     body.UsageHours,
			"power_rating_kw": body.PowerRatingKw,
			"quantity":        body.Quantity,
		},
		EmissionKg: emission,
		Cost:       body.Cost,
	})
}

type marketingPayload struct {
	Description   string   `json:"description"`
	Date          string   `json:"date"`
	MarketingType string   `json:"marketing_type"`
	Quantity      int      `json:"quantity"`
	DurationDays  int      `json:"duration_days"`
	Cost          *float64 `json:"cost"`
}

func (h *activityHandler) createMarketing(c *fiber.Ctx) error {
	var body marketingPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
	}
	date, err := parseDate(body.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Date invalide, format attendu YYYY-MM-DD"})
	}
	if body.DurationDays == 0 {
		body.DurationDays = 1
	}

	emission := h.table.MarketingEmission(body.MarketingType, body.Quantity, body.DurationDays)
	return h.persist(c, models.Activity{
		Category:    string(emissions.CategoryMarketing),
		Subtype:     body.MarketingType,
		Description: body.Description,
		Date:        date,
		Details: datatypes.JSONMap{
			"marketing_type": body.MarketingType,
			"quantity":       body.Quantity,
			"duration_days":  body.DurationDays,
		},
		EmissionKg: emission,
		Cost:       body.Cost,
	})
}

type officePayload struct {
	Description  string   `json:"description"`
	Date         string   `json:"date"`
	ActivityType string   `json:"activity_type"`
	Quantity     float64  `json:"quantity"`
	Cost         *float64 `json:"cost"`
}

func (h *activityHandler) createOffice(c *fiber.Ctx) error {
	var body officePayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
	}
	date, err := parseDate(body.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Date invalide, format attendu YYYY-MM-DD"})
	}

	emission := h.table.OfficeEmission(body.ActivityType, body.Quantity)
	return h.persist(c, models.Activity{
		Category:    string(emissions.CategoryOffice),
		Subtype:     body.ActivityType,
		Description: body.Description,
		Date:        date,
		Details: datatypes.JSONMap{
			"activity_type": body.ActivityType,
			"quantity":      body.Quantity,
		},
		EmissionKg: emission,
		Cost:       body.Cost,
	})
}

type staffWelfarePayload struct {
	Description   string   `json:"description"`
	Date          string   `json:"date"`
	WelfareType   string   `json:"welfare_type"`
	Category      string   `json:"category"`
	Beneficiaries int      `json:"beneficiaries"`
	Cost          *float64 `json:"cost"`
}

func (h *activityHandler) createStaffWelfare(c *fiber.Ctx) error {
	var body staffWelfarePayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
	}
	date, err := parseDate(body.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Date invalide, format attendu YYYY-MM-DD"})
	}
	if body.Beneficiaries == 0 {
		body.Beneficiaries = 1
	}

	emission := h.table.StaffWelfareEmission(body.WelfareType, body.Beneficiaries)
	return h.persist(c, models.Activity{
		Category:    string(emissions.CategoryStaffWelfare),
		Subtype:     body.WelfareType,
		Description: body.Description,
		Date:        date,
		Details: datatypes.JSONMap{
			"welfare_type":  body.WelfareType,
			"category":      body.Category,
			"beneficiaries": body.Beneficiaries,
		},
		EmissionKg: emission,
		Cost:       body.Cost,
	})
}

// persist fixe l'organisation et le créateur depuis le token puis enregistre.
// L'émission calculée est stockée telle quelle et ne sera jamais recalculée.
func (h *activityHandler) persist(c *fiber.Ctx, activity models.Activity) error {
	activity.OrganizationID = c.Locals("org_id").(uint)
	activity.CreatedBy = c.Locals("user_id").(uint)

	if err := database.DB.Create(&activity).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erreur enregistrement activité"})
	}
	return c.Status(fiber.StatusCreated).JSON(activity)
}

func (h *activityHandler) list(c *fiber.Ctx) error {
	orgID := c.Locals("org_id").(uint)

	limit := c.QueryInt("limit", 100)
	if limit <= 0 || limit > maxActivitiesScan {
		limit = 100
	}

	query := database.DB.Where("organization_id = ?", orgID)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var activities []models.Activity
	query.Order("created_at DESC").Limit(limit).Find(&activities)
	return c.JSON(activities)
}

func (h *activityHandler) remove(c *fiber.Ctx) error {
	orgID := c.Locals("org_id").(uint)

	result := database.DB.Where("id = ? AND organization_id = ?", c.Params("id"), orgID).
		Delete(&models.Activity{})
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Activité introuvable"})
	}
	return c.JSON(fiber.Map{"message": "Activité supprimée"})
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}
