package analytics

// SustainabilityScore combine taille de l'empreinte, tendance de réduction et
// objectifs complétés en un score borné. Base 50, bonus d'empreinte par paliers
// décroissants, bonus de réduction plafonné à 15, bonus d'objectifs plafonné à
// 5, le tout écrêté à 100.
//
// Les appelants doivent fournir une réduction déjà bornée à ≥ 0 : le score ne
// la re-borne pas lui-même.
func SustainabilityScore(totalEmissionsKg, reductionPercent float64, goalsCompleted int) float64 {
	score := 50.0

	switch {
	case totalEmissionsKg < 1000:
		score += 30
	case totalEmissionsKg < 5000:
		score += 20
	case totalEmissionsKg < 10000:
		score += 10
	}

	score += min2(reductionPercent*0.5, 15)
	score += min2(float64(goalsCompleted)*1, 5)

	return min2(score, 100)
}

func min2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
