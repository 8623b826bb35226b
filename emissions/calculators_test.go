package emissions

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTravelEmissionPerPassenger(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		name       string
		vehicle    string
		distanceKm float64
		passengers int
		want       float64
	}{
		{"voiture essence seule", "petrol_car", 100, 1, 21},
		{"émission répartie entre passagers", "diesel_car", 100, 4, 6.75},
		{"zéro passager traité comme un", "petrol_car", 100, 0, 21},
		{"sous-type inconnu sur le défaut", "rickshaw", 100, 1, 21},
		{"vélo toujours nul", "bicycle", 500, 1, 0},
		{"marche toujours nulle", "walking", 42, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, table.TravelEmission(tt.vehicle, tt.distanceKm, tt.passengers))
		})
	}
}

func TestTravelEmissionPassengerFloor(t *testing.T) {
	table := DefaultTable()
	// passengers=0 se comporte exactement comme passengers=1
	require.Equal(t,
		table.TravelEmission("bus", 250, 1),
		table.TravelEmission("bus", 250, 0),
	)
}

func TestEventEmission(t *testing.T) {
	table := DefaultTable()

	// 2.5 × 10 participants × 2h
	require.Equal(t, 50.0, table.EventEmission("indoor_conference", 10, 2, false, false))
	// + 2.5 kg/participant de traiteur
	require.Equal(t, 75.0, table.EventEmission("indoor_conference", 10, 2, true, false))
	// + 5 kg/participant de déplacement
	require.Equal(t, 125.0, table.EventEmission("indoor_conference", 10, 2, true, true))
	// défaut 1.5 pour un type inconnu
	require.Equal(t, 30.0, table.EventEmission("flash_mob", 10, 2, false, false))
}

func TestInfrastructureEmissionAppliesToKwh(t *testing.T) {
	table := DefaultTable()

	// electricity = 0.5 ; 0.5 × (2 kW × 8 h × 3) = 24
	require.Equal(t, 24.0, table.InfrastructureEmission("electricity", 8, 2, 3))
	// le facteur s'applique aux kWh calculés, pas à la quantité seule
	require.Equal(t, 0.5*4*10*2, table.InfrastructureEmission("electricity", 10, 4, 2))
}

func TestMarketingEmissionBranchesOnKind(t *testing.T) {
	table := DefaultTable()

	// numérique : facteur × quantité × jours
	require.Equal(t, 60.0, table.MarketingEmission("digital_campaign", 1000, 3))
	// physique : la durée est ignorée
	require.Equal(t, 0.5, table.MarketingEmission("printed_brochure", 10, 5))
	require.Equal(t, table.MarketingEmission("printed_banner", 2, 1), table.MarketingEmission("printed_banner", 2, 30))
	// sous-type inconnu : défaut 0.02, formule physique
	require.Equal(t, 0.2, table.MarketingEmission("skywriting", 10, 7))
}

func TestOfficeEmission(t *testing.T) {
	table := DefaultTable()

	require.Equal(t, 2.5, table.OfficeEmission("paper_usage", 500))
	require.Equal(t, 15.0, table.OfficeEmission("courier_national", 3))
	// quantité en litres
	require.Equal(t, 0.3, table.OfficeEmission("water_consumption", 1000))
}

func TestStaffWelfareEmission(t *testing.T) {
	table := DefaultTable()

	require.Equal(t, 150.0, table.StaffWelfareEmission("team_outing_local", 10))
	// défaut 1.0
	require.Equal(t, 7.0, table.StaffWelfareEmission("mystery_perk", 7))
}

func TestEnergyEmission(t *testing.T) {
	table := DefaultTable()
	require.Equal(t, 60.0, table.EnergyEmission(120))
}

func TestEmissionsRoundedToTwoDecimals(t *testing.T) {
	table := DefaultTable()
	// 0.041 × 123 / 7 = 0.7204…, arrondi à la persistance
	require.Equal(t, 0.72, table.TravelEmission("train", 123, 7))
}
