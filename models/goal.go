package models

import (
	"time"

	"gorm.io/gorm"
)

// Goal est un objectif de réduction. Seuls la baseline et le statut sont
// persistés ; les émissions courantes et la progression sont recalculées à
// chaque lecture. Le passage à "completed" est définitif.
type Goal struct {
	gorm.Model
	OrganizationID         uint      `gorm:"index" json:"organization_id"`
	Title                  string    `json:"title"`
	Description            string    `json:"description"`
	TargetReductionPercent float64   `json:"target_reduction_percent"`
	TargetDate             time.Time `json:"target_date"`
	BaselineEmissionsKg    float64   `json:"baseline_emissions_kg"`
	Status                 string    `json:"status"`
}
