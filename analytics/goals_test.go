package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ecopulse/models"
)

func TestBaselineFromTrailing(t *testing.T) {
	require.Equal(t, 1000.0, BaselineFromTrailing(nil))

	trailing := []models.Activity{
		activity("travel", day(-5), 120),
		activity("events", day(-2), 80),
	}
	require.Equal(t, 200.0, BaselineFromTrailing(trailing))
}

func TestComputeGoalProgress(t *testing.T) {
	goal := models.Goal{
		TargetReductionPercent: 20,
		BaselineEmissionsKg:    1000,
		Status:                 models.GoalStatusActive,
	}

	tests := []struct {
		name         string
		currentKg    float64
		wantProgress float64
		wantStatus   string
	}{
		{"aucun changement", 1000, 0, models.GoalStatusActive},
		{"à mi-chemin de l'objectif", 900, 50, models.GoalStatusActive},
		{"objectif atteint exactement", 800, 100, models.GoalStatusCompleted},
		{"dépassement borné à 100", 600, 100, models.GoalStatusCompleted},
		{"émissions en hausse bornées à 0", 1200, 0, models.GoalStatusActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeGoalProgress(goal, []models.Activity{activity("travel", day(0), tt.currentKg)})
			require.Equal(t, tt.wantProgress, got.ProgressPercent)
			require.Equal(t, tt.wantStatus, got.Status)
			require.Equal(t, tt.currentKg, got.CurrentEmissionsKg)
		})
	}
}

func TestComputeGoalProgressZeroBaseline(t *testing.T) {
	goal := models.Goal{TargetReductionPercent: 20, Status: models.GoalStatusActive}

	got := ComputeGoalProgress(goal, []models.Activity{activity("travel", day(0), 500)})

	// baseline nulle : réduction indéfinie, progression zéro, pas de panique
	require.Equal(t, 0.0, got.ProgressPercent)
	require.Equal(t, models.GoalStatusActive, got.Status)
}

func TestComputeGoalProgressZeroTarget(t *testing.T) {
	goal := models.Goal{BaselineEmissionsKg: 1000, Status: models.GoalStatusActive}

	// réduction non négative : atteint
	got := ComputeGoalProgress(goal, []models.Activity{activity("travel", day(0), 900)})
	require.Equal(t, 100.0, got.ProgressPercent)
	require.Equal(t, models.GoalStatusCompleted, got.Status)

	// réduction négative : zéro
	got = ComputeGoalProgress(goal, []models.Activity{activity("travel", day(0), 1100)})
	require.Equal(t, 0.0, got.ProgressPercent)
	require.Equal(t, models.GoalStatusActive, got.Status)
}

func TestCompletedStatusIsSticky(t *testing.T) {
	goal := models.Goal{
		TargetReductionPercent: 20,
		BaselineEmissionsKg:    1000,
		Status:                 models.GoalStatusCompleted,
	}

	// la progression recalculée repasse sous 100 mais le statut reste acquis
	got := ComputeGoalProgress(goal, []models.Activity{activity("travel", day(0), 1000)})
	require.Equal(t, 0.0, got.ProgressPercent)
	require.Equal(t, models.GoalStatusCompleted, got.Status)
}

func TestFullEliminationCompletesGoal(t *testing.T) {
	goal := models.Goal{TargetReductionPercent: 20, BaselineEmissionsKg: 1000}

	got := ComputeGoalProgress(goal, nil)
	// zéro émission courante : élimination complète, objectif atteint
	require.Equal(t, 100.0, got.ProgressPercent)
	require.Equal(t, models.GoalStatusCompleted, got.Status)
}
