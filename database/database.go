package database

import (
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ecopulse/models"
)

var DB *gorm.DB

func ConnectDB() {
	dsn := os.Getenv("DATABASE_URL")
	var dialector gorm.Dialector

	switch {
	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://"):
		dialector = postgres.Open(dsn)
	case dsn != "":
		// DSN postgres supposé même sans préfixe de schéma
		dialector = postgres.Open(dsn)
	default:
		dbPath := "ecopulse.db"
		dialector = sqlite.Open(dbPath)
		dsn = dbPath
	}

	database, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connexion DB impossible")
	}

	if err := database.AutoMigrate(
		&models.Organization{},
		&models.User{},
		&models.Activity{},
		&models.EnergyRecord{},
		&models.Goal{},
	); err != nil {
		log.Fatal().Err(err).Msg("migration DB impossible")
	}

	DB = database
	log.Info().Str("dsn", dsn).Msg("DB connectée et migrée")
}
