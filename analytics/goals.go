package analytics

import "ecopulse/models"

// defaultBaselineKg est la baseline nominale retenue quand une organisation
// crée un objectif sans aucune émission sur les 30 derniers jours. Une
// baseline nulle ne doit jamais exister : elle produirait une division par
// zéro à chaque lecture de progression.
const defaultBaselineKg = 1000.0

// GoalProgress est la vue dérivée d'un objectif, recalculée à chaque lecture.
type GoalProgress struct {
	CurrentEmissionsKg float64 `json:"current_emissions_kg"`
	ProgressPercent    float64 `json:"progress_percent"`
	Status             string  `json:"status"`
}

// BaselineFromTrailing calcule la baseline d'un nouvel objectif : total des
// activités des 30 derniers jours, ou la baseline nominale si ce total est nul.
func BaselineFromTrailing(trailing []models.Activity) float64 {
	baseline := TotalEmissions(trailing)
	if baseline == 0 {
		return defaultBaselineKg
	}
	return baseline
}

// ComputeGoalProgress évalue un objectif contre les activités créées depuis sa
// création. La réduction vaut (baseline − courant) / baseline × 100 quand la
// baseline est positive, zéro sinon. La progression est la réduction normalisée
// par l'objectif de réduction, bornée à [0, 100].
//
// Cas limite documenté : quand TargetReductionPercent vaut zéro, toute
// réduction non négative signifie que l'objectif est atteint (progression 100) ;
// une réduction négative donne zéro. Jamais de division par zéro.
//
// Le statut "completed" est définitif : un objectif déjà complété le reste même
// si la progression recalculée repasse sous 100.
func ComputeGoalProgress(goal models.Goal, sinceCreation []models.Activity) GoalProgress {
	current := TotalEmissions(sinceCreation)

	var reduction float64
	if goal.BaselineEmissionsKg > 0 {
		reduction = (goal.BaselineEmissionsKg - current) / goal.BaselineEmissionsKg * 100
	}

	var progress float64
	switch {
	case goal.TargetReductionPercent == 0:
		if reduction >= 0 {
			progress = 100
		}
	default:
		progress = clamp(reduction/goal.TargetReductionPercent*100, 0, 100)
	}

	status := goal.Status
	if status == "" {
		status = models.GoalStatusActive
	}
	if progress >= 100 {
		status = models.GoalStatusCompleted
	}

	return GoalProgress{
		CurrentEmissionsKg: round2(current),
		ProgressPercent:    round2(progress),
		Status:             status,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
