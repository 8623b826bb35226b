package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog/log"

	"ecopulse/emissions"
	"ecopulse/models"
)

// Generator est le collaborateur de génération de texte optionnel (Mistral en
// production). Il ne produit que des champs textuels : tous les chiffres du
// rapport sont calculés localement et ne dépendent jamais de sa disponibilité.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// insightTrendWindow est la fenêtre de tendance du rapport d'insights :
// les 30 activités les plus récentes contre les 30 précédentes. Le classement
// utilise sa propre fenêtre, plus courte, volontairement distincte.
const insightTrendWindow = 30

type RiskAssessment struct {
	Level   string   `json:"level"`
	Factors []string `json:"factors"`
}

type ROIMetrics struct {
	TotalCostTracked        float64 `json:"total_cost_tracked"`
	CostPerKgCO2            float64 `json:"cost_per_kg_co2"`
	PotentialSavingsPercent float64 `json:"potential_savings_percent"`
}

type DataSummary struct {
	TotalActivities  int `json:"total_activities"`
	EnergyDataPoints int `json:"energy_data_points"`
	ActiveGoals      int `json:"active_goals"`
	CompletedGoals   int `json:"completed_goals"`
}

// InsightReport est le rapport complet renvoyé par l'endpoint insights.
type InsightReport struct {
	TotalEmissionsKg     float64            `json:"total_emissions_kg"`
	ActivityEmissionsKg  float64            `json:"activity_emissions_kg"`
	EnergyEmissionsKg    float64            `json:"energy_emissions_kg"`
	EmissionsByCategory  map[string]float64 `json:"emissions_by_category"`
	TreesSavedEquivalent float64            `json:"trees_saved_equivalent"`
	SustainabilityScore  float64            `json:"sustainability_score"`
	RiskAssessment       RiskAssessment     `json:"risk_assessment"`
	ROIMetrics           ROIMetrics         `json:"roi_metrics"`
	Recommendations      []string           `json:"recommendations"`
	DataSummary          DataSummary        `json:"data_summary"`
}

// BuildInsights calcule le rapport d'une organisation. Les activités et les
// goals arrivent triés par création décroissante (instantané borné chargé par
// la route). gen peut être nil : le rapport est alors complet avec les
// recommandations de repli.
func BuildInsights(ctx context.Context, activities []models.Activity, records []models.EnergyRecord, goals []models.Goal, gen Generator) InsightReport {
	activityKg := TotalEmissions(activities)
	energyKg := TotalEnergyEmissions(records)
	combined := activityKg + energyKg

	byCategory := ByCategory(activities)
	topCategory, topKg := DominantCategory(byCategory)

	var trees float64
	if combined > 0 {
		trees = combined / emissions.TreesAbsorptionKgPerYear
	}

	active, completed := countGoalStatuses(goals)

	reduction := reductionPercent(activities, insightTrendWindow)
	score := SustainabilityScore(combined, maxf(reduction, 0), completed)

	level, factors := assessRisk(combined, topCategory, topKg)

	var totalCost float64
	for _, a := range activities {
		if a.Cost != nil {
			totalCost += *a.Cost
		}
	}
	var costPerKg float64
	if combined > 0 {
		costPerKg = totalCost / combined
	}
	savings := 5.0
	if combined > 1000 {
		savings = 15.0
	}

	return InsightReport{
		TotalEmissionsKg:     round2(combined),
		ActivityEmissionsKg:  round2(activityKg),
		EnergyEmissionsKg:    round2(energyKg),
		EmissionsByCategory:  byCategory,
		TreesSavedEquivalent: round1(trees),
		SustainabilityScore:  math.Round(score),
		RiskAssessment:       RiskAssessment{Level: level, Factors: factors},
		ROIMetrics: ROIMetrics{
			TotalCostTracked:        round2(totalCost),
			CostPerKgCO2:            round2(costPerKg),
			PotentialSavingsPercent: savings,
		},
		Recommendations: recommendations(ctx, gen, activities, byCategory, topCategory, topKg, combined, score, level),
		DataSummary: DataSummary{
			TotalActivities:  len(activities),
			EnergyDataPoints: len(records),
			ActiveGoals:      active,
			CompletedGoals:   completed,
		},
	}
}

// assessRisk dérive le niveau de risque et ses motifs.
func assessRisk(combined float64, topCategory string, topKg float64) (string, []string) {
	level := "low"
	factors := []string{}
	switch {
	case combined > 10000:
		level = "high"
		factors = append(factors, "High total emissions")
	case combined > 5000:
		level = "medium"
		factors = append(factors, "Moderate emissions level")
	}
	if topCategory != "" && topKg > combined*0.5 {
		factors = append(factors, fmt.Sprintf("Heavy reliance on %s activities", topCategory))
	}
	return level, factors
}

// DominantCategory renvoie la catégorie la plus émettrice et son total. Les
// égalités se résolvent par ordre alphabétique : le résultat est stable d'un
// appel à l'autre malgré l'itération de carte.
func DominantCategory(byCategory map[string]float64) (string, float64) {
	var name string
	var kg float64
	for cat, sum := range byCategory {
		if sum > kg || (sum == kg && name != "" && cat < name) {
			name = cat
			kg = sum
		}
	}
	return name, kg
}

func countGoalStatuses(goals []models.Goal) (active, completed int) {
	for _, g := range goals {
		switch g.Status {
		case models.GoalStatusCompleted:
			completed++
		default:
			active++
		}
	}
	return active, completed
}

// recommendations interroge le collaborateur quand il est disponible et que le
// registre n'est pas vide ; toute indisponibilité, erreur ou réponse qui n'est
// pas un tableau JSON de chaînes retombe sur une liste fixe. Ce repli est
// toujours atteignable sans collaborateur.
func recommendations(ctx context.Context, gen Generator, activities []models.Activity, byCategory map[string]float64, topCategory string, topKg, combined, score float64, riskLevel string) []string {
	if len(activities) == 0 {
		return starterRecommendations()
	}
	if gen == nil {
		return fallbackRecommendations(topCategory)
	}

	prompt := buildInsightsPrompt(byCategory, topCategory, topKg, combined, len(activities), score, riskLevel)
	raw, err := gen.Generate(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("génération des recommandations indisponible, repli local")
		return fallbackRecommendations(topCategory)
	}

	recs, err := parseRecommendationList(raw)
	if err != nil {
		log.Warn().Err(err).Msg("réponse du collaborateur illisible, repli local")
		return fallbackRecommendations(topCategory)
	}
	return recs
}

func buildInsightsPrompt(byCategory map[string]float64, topCategory string, topKg, combined float64, activityCount int, score float64, riskLevel string) string {
	breakdown, _ := json.Marshal(byCategory)
	return fmt.Sprintf(`Analyze this NGO's carbon footprint and provide recommendations:

Total Emissions: %.2f kg CO2
Emissions by Category: %s
Top Emitting Category: %s (%.2f kg)
Total Activities: %d
Sustainability Score: %.0f/100
Risk Level: %s

Provide exactly 5 specific, actionable recommendations to reduce emissions. Each should be a single sentence. Focus on cost-effective solutions suitable for NGOs with limited budgets. Return as a JSON array of strings.`,
		combined, breakdown, topCategory, topKg, activityCount, score, riskLevel)
}

// parseRecommendationList n'accepte qu'un tableau JSON de chaînes non vide.
func parseRecommendationList(raw string) ([]string, error) {
	var recs []string
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &recs); err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("liste de recommandations vide")
	}
	return recs, nil
}

// starterRecommendations s'affiche tant qu'aucune activité n'a été saisie.
func starterRecommendations() []string {
	return []string{
		"Start tracking activities to get personalized recommendations",
		"Add energy consumption data for comprehensive analysis",
		"Set emission reduction goals to improve sustainability score",
	}
}

// fallbackRecommendations est la liste générique servie dès que le
// collaborateur manque ou répond de travers.
func fallbackRecommendations(topCategory string) []string {
	if topCategory == "" {
		topCategory = "top"
	}
	return []string{
		"Consider switching to electric or hybrid vehicles for travel activities",
		fmt.Sprintf("Reduce %s emissions by 20%% through efficiency improvements", topCategory),
		"Implement virtual meetings to reduce event-related travel",
		"Install energy monitoring systems to track consumption in real-time",
		"Set monthly emission reduction targets for each department",
	}
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
