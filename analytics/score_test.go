package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSustainabilityScoreBands(t *testing.T) {
	tests := []struct {
		name string
		kg   float64
		want float64
	}{
		{"petite empreinte", 500, 80},
		{"empreinte moyenne", 3000, 70},
		{"grosse empreinte", 8000, 60},
		{"très grosse empreinte", 20000, 50},
		{"borne basse du palier moyen", 1000, 70},
		{"borne basse du palier haut", 5000, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SustainabilityScore(tt.kg, 0, 0))
		})
	}
}

func TestSustainabilityScoreBonuses(t *testing.T) {
	// réduction : 0.5 point par pourcent, plafonné à 15
	require.Equal(t, 55.0, SustainabilityScore(20000, 10, 0))
	require.Equal(t, 65.0, SustainabilityScore(20000, 30, 0))
	require.Equal(t, 65.0, SustainabilityScore(20000, 90, 0))

	// objectifs : 1 point par objectif complété, plafonné à 5
	require.Equal(t, 53.0, SustainabilityScore(20000, 0, 3))
	require.Equal(t, 55.0, SustainabilityScore(20000, 0, 12))
}

func TestSustainabilityScoreCappedAt100(t *testing.T) {
	// 50 + 30 + 15 + 5 = 100 exactement
	require.Equal(t, 100.0, SustainabilityScore(500, 30, 5))
	// toute combinaison supérieure reste écrêtée
	require.Equal(t, 100.0, SustainabilityScore(0, 200, 50))
}

func TestSustainabilityScoreMonotonicInReduction(t *testing.T) {
	prev := SustainabilityScore(3000, 0, 0)
	for _, reduction := range []float64{5, 10, 20, 30, 50} {
		score := SustainabilityScore(3000, reduction, 0)
		require.GreaterOrEqual(t, score, prev)
		prev = score
	}
}
