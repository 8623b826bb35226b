package analytics

import (
	"sort"

	"ecopulse/models"
)

// leaderboardTrendWindow est la fenêtre de réduction du classement : les 15
// activités les plus récentes contre les 15 précédentes. Plus courte que celle
// des insights pour que le classement réagisse vite ; les deux fenêtres restent
// des paramètres indépendants.
const leaderboardTrendWindow = 15

// leaderboardSize borne la sortie au top 20.
const leaderboardSize = 20

// LeaderboardEntry est une ligne du classement inter-organisations.
type LeaderboardEntry struct {
	OrganizationID   uint    `json:"organization_id"`
	OrganizationName string  `json:"organization_name"`
	TotalEmissionsKg float64 `json:"total_emissions_kg"`
	ReductionPercent float64 `json:"reduction_percent"`
	Rank             int     `json:"rank"`
}

// OrgLedger associe une organisation à son registre d'activités, triées par
// création décroissante.
type OrgLedger struct {
	Org        models.Organization
	Activities []models.Activity
}

// RankOrganizations classe les organisations : meilleure réduction d'abord,
// puis total d'émissions croissant en cas d'égalité. Les rangs sont denses,
// 1..N sans trou, et la sortie tronquée au top 20. La réduction est bornée à
// zéro minimum avant classement.
func RankOrganizations(ledgers []OrgLedger) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(ledgers))
	for _, l := range ledgers {
		reduction := maxf(reductionPercent(l.Activities, leaderboardTrendWindow), 0)
		entries = append(entries, LeaderboardEntry{
			OrganizationID:   l.Org.ID,
			OrganizationName: l.Org.Name,
			TotalEmissionsKg: round2(TotalEmissions(l.Activities)),
			ReductionPercent: round1(reduction),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].ReductionPercent != entries[j].ReductionPercent {
			return entries[i].ReductionPercent > entries[j].ReductionPercent
		}
		return entries[i].TotalEmissionsKg < entries[j].TotalEmissionsKg
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	if len(entries) > leaderboardSize {
		entries = entries[:leaderboardSize]
	}
	return entries
}
