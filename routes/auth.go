package routes

import (
	"os"
	"time"

	"ecopulse/database"
	"ecopulse/middleware"
	"ecopulse/models"
	"ecopulse/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

func SetupAuthRoutes(api fiber.Router) {
	auth := api.Group("/auth")
	auth.Post("/register", register)
	auth.Post("/login", login)
	auth.Get("/me", middleware.JWTMiddleware, me)
}

type registerPayload struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	OrganizationName string `json:"organization_name"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID               uint   `json:"id"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	OrganizationID   uint   `json:"organization_id"`
	OrganizationName string `json:"organization_name"`
	CreatedAt        string `json:"created_at"`
}

// register crée l'organisation puis son premier utilisateur, et renvoie
// directement un token de session.
func register(c *fiber.Ctx) error {
	var body registerPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
	}
	if body.Email == "" || body.Password == "" || body.OrganizationName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email, mot de passe et organisation requis"})
	}

	var existing models.User
	database.DB.Where("email = ?", body.Email).First(&existing)
	if existing.ID != 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email déjà enregistré"})
	}

	hash, err := utils.HashPassword(body.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Impossible de hasher le mot de passe"})
	}

	org := models.Organization{
		Name: body.OrganizationName,
		Slug: utils.OrgSlug(body.OrganizationName),
	}
	if err := database.DB.Create(&org).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erreur création organisation"})
	}

	user := models.User{
		Name:           body.Name,
		Email:          body.Email,
		Password:       hash,
		OrganizationID: org.ID,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erreur création utilisateur"})
	}

	token, err := signToken(user.ID, org.ID)
	if err != nil {
		log.Error().Err(err).Msg("signature du token impossible")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erreur génération du token"})
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
		"user": userResponse{
			ID:               user.ID,
			Email:            user.Email,
			Name:             user.Name,
			OrganizationID:   org.ID,
			OrganizationName: org.Name,
			CreatedAt:        user.CreatedAt.UTC().Format(time.RFC3339),
		},
	})
}

func login(c *fiber.Ctx) error {
	var body loginPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
	}

	var user models.User
	database.DB.Where("email = ?", body.Email).First(&user)
	if user.ID == 0 || !utils.CheckPassword(user.Password, body.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Email ou mot de passe invalide"})
	}

	var org models.Organization
	database.DB.First(&org, user.OrganizationID)

	token, err := signToken(user.ID, user.OrganizationID)
	if err != nil {
		log.Error().Err(err).Msg("signature du token impossible")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erreur génération du token"})
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
		"user": userResponse{
			ID:               user.ID,
			Email:            user.Email,
			Name:             user.Name,
			OrganizationID:   user.OrganizationID,
			OrganizationName: org.Name,
			CreatedAt:        user.CreatedAt.UTC().Format(time.RFC3339),
		},
	})
}

func me(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var user models.User
	database.DB.First(&user, userID)
	if user.ID == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Utilisateur introuvable"})
	}

	var org models.Organization
	database.DB.First(&org, user.OrganizationID)

	return c.JSON(userResponse{
		ID:               user.ID,
		Email:            user.Email,
		Name:             user.Name,
		OrganizationID:   user.OrganizationID,
		OrganizationName: org.Name,
		CreatedAt:        user.CreatedAt.UTC().Format(time.RFC3339),
	})
}

func signToken(userID, orgID uint) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"org_id":  orgID,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
