package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"ecopulse/models"
)

// forecastMinRecords est le seuil en dessous duquel aucune prévision n'est
// produite : on renvoie un sentinelle "données insuffisantes", pas une erreur.
const forecastMinRecords = 3

// ForecastFigures est la partie prévision proprement dite. Le collaborateur
// peut la remplacer entièrement ; le repli local est kWh moyen × 30.
type ForecastFigures struct {
	MonthlyForecastKwh float64  `json:"monthly_forecast_kwh"`
	Confidence         string   `json:"confidence"`
	Recommendations    []string `json:"recommendations"`
}

// ForecastFactors sont les moyennes historiques, toujours calculées localement.
type ForecastFactors struct {
	AvgPeople      float64 `json:"avg_people"`
	AvgSystems     float64 `json:"avg_systems"`
	AvgACHours     float64 `json:"avg_ac_hours"`
	AvgTempCelsius float64 `json:"avg_temp_celsius"`
}

// Forecast est la réponse complète de l'estimateur.
type Forecast struct {
	SufficientData       bool             `json:"sufficient_data"`
	DataPoints           int              `json:"data_points"`
	Message              string           `json:"message,omitempty"`
	HistoricalAverageKwh float64          `json:"historical_average_kwh,omitempty"`
	Figures              *ForecastFigures `json:"forecast"`
	Factors              *ForecastFactors `json:"factors,omitempty"`
}

// BuildForecast produit la prévision mensuelle d'une organisation à partir de
// ses relevés énergie (jusqu'à 365, les plus récents d'abord). Les moyennes et
// la prévision de base sont toujours calculées ici ; le collaborateur, s'il
// répond un objet JSON valide, ne remplace que les champs textuels et le
// chiffre de prévision.
func BuildForecast(ctx context.Context, records []models.EnergyRecord, gen Generator) Forecast {
	if len(records) < forecastMinRecords {
		return Forecast{
			SufficientData: false,
			DataPoints:     len(records),
			Message:        "Need at least 3 data points for forecasting",
		}
	}

	n := float64(len(records))
	var kwh, people, systems, ac, temp float64
	for _, r := range records {
		kwh += r.ElectricityKwh
		people += float64(r.NumPeople)
		systems += float64(r.NumSystems)
		ac += r.ACHours
		temp += r.OutdoorTempCelsius
	}
	avgKwh := kwh / n
	factors := &ForecastFactors{
		AvgPeople:      round1(people / n),
		AvgSystems:     round1(systems / n),
		AvgACHours:     round1(ac / n),
		AvgTempCelsius: round1(temp / n),
	}

	figures := baselineFigures(avgKwh)
	if gen != nil {
		if aiFigures, ok := generatedFigures(ctx, gen, avgKwh, factors, len(records)); ok {
			figures = aiFigures
		}
	}

	return Forecast{
		SufficientData:       true,
		DataPoints:           len(records),
		HistoricalAverageKwh: round2(avgKwh),
		Figures:              figures,
		Factors:              factors,
	}
}

// baselineFigures est la prévision heuristique locale, toujours atteignable.
func baselineFigures(avgKwh float64) *ForecastFigures {
	return &ForecastFigures{
		MonthlyForecastKwh: round2(avgKwh * 30),
		Confidence:         "low",
		Recommendations: []string{
			"Add more data points for accurate forecasting",
			"Track AC usage patterns",
			"Monitor occupancy trends",
		},
	}
}

// generatedFigures interroge le collaborateur et n'accepte qu'un objet JSON au
// format attendu. Toute erreur ou réponse malformée est loggée puis ignorée.
func generatedFigures(ctx context.Context, gen Generator, avgKwh float64, factors *ForecastFactors, dataPoints int) (*ForecastFigures, bool) {
	prompt := fmt.Sprintf(`Based on the following historical data for an NGO:
- Average daily electricity: %.2f kWh
- Average occupancy: %.0f people
- Average systems running: %.0f
- Average AC usage: %.1f hours/day
- Average outdoor temp: %.1f°C
- Total data points: %d

Provide a brief forecast for the next month's energy consumption and 3 specific recommendations to reduce energy usage. Format as JSON with keys: 'monthly_forecast_kwh', 'confidence', 'recommendations' (array of strings).`,
		avgKwh, factors.AvgPeople, factors.AvgSystems, factors.AvgACHours, factors.AvgTempCelsius, dataPoints)

	raw, err := gen.Generate(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("prévision du collaborateur indisponible, repli local")
		return nil, false
	}

	var figures ForecastFigures
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &figures); err != nil {
		log.Warn().Err(err).Msg("prévision du collaborateur illisible, repli local")
		return nil, false
	}
	if figures.MonthlyForecastKwh <= 0 || figures.Confidence == "" {
		return nil, false
	}
	return &figures, true
}
