package analytics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ecopulse/models"
)

// ledgerWith construit un registre de 31 activités, les plus récentes d'abord :
// 15 récentes de somme recentSum, 15 précédentes de somme olderSum, plus une
// activité de queue qui fait dépasser le seuil de tendance.
func ledgerWith(id uint, name string, recentSum, olderSum, tail float64) OrgLedger {
	var activities []models.Activity
	for i := 0; i < 15; i++ {
		activities = append(activities, activity("travel", day(-i), recentSum/15))
	}
	for i := 0; i < 15; i++ {
		activities = append(activities, activity("travel", day(-15-i), olderSum/15))
	}
	activities = append(activities, activity("travel", day(-31), tail))
	return OrgLedger{
		Org:        models.Organization{Model: gorm.Model{ID: id}, Name: name},
		Activities: activities,
	}
}

func TestRankOrganizationsTieBreaksOnLowerTotal(t *testing.T) {
	ledgers := []OrgLedger{
		// réduction 10 %, total 200
		ledgerWith(1, "Alpha", 90, 100, 10),
		// réduction 10 %, total 100
		ledgerWith(2, "Beta", 45, 50, 5),
		// réduction 5 %, total 50
		ledgerWith(3, "Gamma", 19, 20, 11),
	}

	got := RankOrganizations(ledgers)

	require.Len(t, got, 3)
	require.Equal(t, "Beta", got[0].OrganizationName)
	require.Equal(t, "Alpha", got[1].OrganizationName)
	require.Equal(t, "Gamma", got[2].OrganizationName)
	require.Equal(t, []int{1, 2, 3}, []int{got[0].Rank, got[1].Rank, got[2].Rank})
	require.Equal(t, 10.0, got[0].ReductionPercent)
	require.Equal(t, 100.0, got[0].TotalEmissionsKg)
	require.Equal(t, 5.0, got[2].ReductionPercent)
}

func TestRankOrganizationsClampsNegativeReduction(t *testing.T) {
	// émissions récentes en hausse : la tendance négative s'affiche comme 0
	ledgers := []OrgLedger{ledgerWith(1, "Alpha", 120, 100, 5)}

	got := RankOrganizations(ledgers)

	require.Equal(t, 0.0, got[0].ReductionPercent)
}

func TestRankOrganizationsShortLedgerHasZeroTrend(t *testing.T) {
	org := models.Organization{Model: gorm.Model{ID: 1}, Name: "Alpha"}
	activities := []models.Activity{
		activity("travel", day(0), 10),
		activity("travel", day(-1), 50),
	}

	got := RankOrganizations([]OrgLedger{{Org: org, Activities: activities}})

	require.Equal(t, 0.0, got[0].ReductionPercent)
	require.Equal(t, 60.0, got[0].TotalEmissionsKg)
}

func TestRankOrganizationsTruncatesToTop20(t *testing.T) {
	var ledgers []OrgLedger
	for i := 1; i <= 25; i++ {
		ledgers = append(ledgers, ledgerWith(uint(i), fmt.Sprintf("Org %d", i), 90, 100, float64(i)))
	}

	got := RankOrganizations(ledgers)

	require.Len(t, got, 20)
	require.Equal(t, 20, got[19].Rank)
	// mêmes réductions partout : les totaux les plus faibles gagnent
	require.Equal(t, "Org 1", got[0].OrganizationName)
}
