package models

import "gorm.io/gorm"

const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
)

// Organization regroupe les utilisateurs et toutes les données carbone d'une ONG.
// Les totaux (émissions, nombre d'activités) sont toujours recalculés à la lecture,
// jamais stockés ici.
type Organization struct {
	gorm.Model
	Name string `json:"name"`
	Slug string `gorm:"uniqueIndex" json:"slug"`
}
