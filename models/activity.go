package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Activity est un événement opérationnel enregistré (déplacement, événement,
// usage d'équipement...). EmissionKg est calculé une seule fois à la création
// avec la table de facteurs courante, puis ne change plus jamais.
type Activity struct {
	gorm.Model
	OrganizationID uint              `gorm:"index" json:"organization_id"`
	CreatedBy      uint              `json:"created_by"`
	Category       string            `gorm:"index" json:"activity_category"`
	Subtype        string            `json:"activity_type"`
	Description    string            `json:"description"`
	Date           time.Time         `json:"date"`
	Details        datatypes.JSONMap `json:"details"`
	EmissionKg     float64           `json:"carbon_emission_kg"`
	Cost           *float64          `json:"cost"`
}

// EnergyRecord est un relevé énergétique journalier. Même invariant
// d'immutabilité que pour Activity : EmissionKg = kWh × facteur électricité,
// figé à la création.
type EnergyRecord struct {
	gorm.Model
	OrganizationID     uint      `gorm:"index" json:"organization_id"`
	Date               time.Time `json:"date"`
	ElectricityKwh     float64   `json:"electricity_kwh"`
	NumPeople          int       `json:"num_people"`
	NumSystems         int       `json:"num_systems"`
	ACHours            float64   `json:"ac_hours"`
	OutdoorTempCelsius float64   `json:"outdoor_temp_celsius"`
	EmissionKg         float64   `json:"carbon_emission_kg"`
	Notes              string    `json:"notes"`
}
