package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ecopulse/analytics"
	"ecopulse/database"
	"ecopulse/emissions"
	"ecopulse/integrations/mistral"
	"ecopulse/routes"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("pas de .env trouvé")
	}

	database.ConnectDB()

	// table de facteurs chargée une fois puis injectée partout en lecture seule
	table := emissions.DefaultTable()

	// collaborateur de génération optionnel : sans clé, les replis locaux
	// prennent le relais
	var gen analytics.Generator
	if client, err := mistral.NewClientFromEnv(); err != nil {
		log.Warn().Err(err).Msg("Mistral désactivé")
	} else {
		gen = client
	}

	app := fiber.New()

	// CORS
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes API (AVANT les routes statiques)
	api := app.Group("/api")
	routes.SetupAuthRoutes(api)
	routes.SetupActivityRoutes(api, table)
	routes.SetupEnergyRoutes(api, table, gen)
	routes.SetupGoalRoutes(api)
	routes.SetupInsightRoutes(api, gen)
	routes.SetupDashboardRoutes(api)
	routes.SetupFactorRoutes(api, table)

	// Servir les fichiers statiques depuis le dossier public
	app.Static("/", "./public")

	// Route par défaut (doit être APRÈS Static)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendFile("./public/index.html")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3030"
	}
	log.Info().Str("port", port).Msg("serveur démarré")
	log.Fatal().Err(app.Listen(":" + port)).Msg("serveur arrêté")
}
