// Package analytics regroupe les calculs dérivés du registre d'activités :
// agrégats, objectifs, score, insights, classement et prévision énergie.
// Toutes les fonctions sont pures et déterministes : elles reçoivent des
// enregistrements déjà chargés (instantané borné) et ne touchent jamais au
// stockage.
package analytics

import (
	"math"
	"sort"
	"time"

	"ecopulse/models"
)

// MonthlyPoint est un point de la série mensuelle, clé "YYYY-MM" issue de la
// date d'occurrence (pas de la date de création).
type MonthlyPoint struct {
	Month      string  `json:"month"`
	EmissionKg float64 `json:"emissions"`
}

// Summary est le résultat d'une agrégation pour une organisation.
type Summary struct {
	ByCategory map[string]float64 `json:"by_category"`
	Monthly    []MonthlyPoint     `json:"monthly_series"`
	ActivityKg float64            `json:"activity_emissions_kg"`
	EnergyKg   float64            `json:"energy_emissions_kg"`
	CombinedKg float64            `json:"total_emissions_kg"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// TotalEmissions somme les émissions des activités.
func TotalEmissions(activities []models.Activity) float64 {
	var total float64
	for _, a := range activities {
		total += a.EmissionKg
	}
	return total
}

// TotalEnergyEmissions somme les émissions des relevés énergie.
func TotalEnergyEmissions(records []models.EnergyRecord) float64 {
	var total float64
	for _, r := range records {
		total += r.EmissionKg
	}
	return total
}

// ByCategory ventile les émissions par catégorie. Les catégories dont la
// contribution est nulle n'apparaissent pas dans la carte.
func ByCategory(activities []models.Activity) map[string]float64 {
	sums := make(map[string]float64)
	for _, a := range activities {
		cat := a.Category
		if cat == "" {
			cat = "other"
		}
		sums[cat] += a.EmissionKg
	}
	out := make(map[string]float64, len(sums))
	for cat, sum := range sums {
		if sum == 0 {
			continue
		}
		out[cat] = round2(sum)
	}
	return out
}

// MonthlyTrend construit la série mensuelle triée par mois croissant, à partir
// des dates d'occurrence des activités et des relevés énergie. lastN > 0
// tronque aux N mois les plus récents.
func MonthlyTrend(activities []models.Activity, records []models.EnergyRecord, lastN int) []MonthlyPoint {
	byMonth := make(map[string]float64)
	for _, a := range activities {
		if a.Date.IsZero() {
			continue
		}
		byMonth[a.Date.Format("2006-01")] += a.EmissionKg
	}
	for _, r := range records {
		if r.Date.IsZero() {
			continue
		}
		byMonth[r.Date.Format("2006-01")] += r.EmissionKg
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	if lastN > 0 && len(months) > lastN {
		months = months[len(months)-lastN:]
	}

	series := make([]MonthlyPoint, 0, len(months))
	for _, m := range months {
		series = append(series, MonthlyPoint{Month: m, EmissionKg: round2(byMonth[m])})
	}
	return series
}

// FilterCreatedSince garde les activités créées à partir de l'instant donné.
// C'est la fenêtre par timestamp de création (baseline d'objectif, 30 jours
// glissants), à ne pas confondre avec la fenêtre par date d'occurrence de la
// série mensuelle.
func FilterCreatedSince(activities []models.Activity, since time.Time) []models.Activity {
	out := make([]models.Activity, 0, len(activities))
	for _, a := range activities {
		if a.CreatedAt.Before(since) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Aggregate produit l'agrégat complet : ventilation par catégorie, série
// mensuelle et totaux combinés activités + énergie.
func Aggregate(activities []models.Activity, records []models.EnergyRecord) Summary {
	activityKg := TotalEmissions(activities)
	energyKg := TotalEnergyEmissions(records)
	return Summary{
		ByCategory: ByCategory(activities),
		Monthly:    MonthlyTrend(activities, records, 0),
		ActivityKg: round2(activityKg),
		EnergyKg:   round2(energyKg),
		CombinedKg: round2(activityKg + energyKg),
	}
}

// reductionPercent compare les `window` activités les plus récentes (ordre de
// création, les plus récentes d'abord) à la fenêtre précédente de même taille.
// Avec moins de 2×window+1 activités la tendance est indéfinie et vaut zéro.
// Le résultat peut être négatif quand les émissions récentes augmentent.
func reductionPercent(newestFirst []models.Activity, window int) float64 {
	if window <= 0 || len(newestFirst) <= 2*window {
		return 0
	}
	var recent, older float64
	for _, a := range newestFirst[:window] {
		recent += a.EmissionKg
	}
	for _, a := range newestFirst[window : 2*window] {
		older += a.EmissionKg
	}
	if older <= 0 {
		return 0
	}
	return (older - recent) / older * 100
}
