package stats

import (
	"fmt"
	"testing"
	"time"

	model "github.com/RaidenNguyen/HanziLaoshi/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profile(id, name string, createdAt time.Time) model.Profile {
	return model.Profile{ID: id, FullName: name, CreatedAt: createdAt, CurrentHSKLevel: 1}
}

func progressRows(userID string, mastered, learning int) []model.ProgressRow {
	rows := make([]model.ProgressRow, 0, mastered+learning)
	for i := 0; i < mastered; i++ {
		rows = append(rows, model.ProgressRow{UserID: userID, Status: model.StatusMastered})
	}
	for i := 0; i < learning; i++ {
		rows = append(rows, model.ProgressRow{UserID: userID, Status: model.StatusLearning})
	}
	return rows
}

func TestBuildDashboardStats_SignupWindows(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)

	profiles := []model.Profile{
		profile("u1", "Ancien", now.AddDate(0, 0, -10)),   // hors fenêtres
		profile("u2", "Semaine", now.AddDate(0, 0, -3)),   // cette semaine
		profile("u3", "Aujourdhui", now.Add(-time.Hour)),  // aujourd'hui et cette semaine
		profile("u4", "Minuit", StartOfDay(now)),          // pile à minuit: compte aujourd'hui
	}

	dash := BuildDashboardStats(profiles, nil, 500, now)

	assert.Equal(t, 4, dash.TotalUsers)
	assert.Equal(t, 2, dash.NewUsersToday)
	assert.Equal(t, 3, dash.NewUsersThisWeek)
	assert.Equal(t, 500, dash.TotalVocabulary)
}

func TestBuildDashboardStats_GlobalCounters(t *testing.T) {
	now := time.Now()
	profiles := []model.Profile{profile("u1", "A", now), profile("u2", "B", now)}

	rows := append(progressRows("u1", 3, 2), progressRows("u2", 1, 4)...)
	dash := BuildDashboardStats(profiles, rows, 100, now)

	assert.Equal(t, 4, dash.TotalMastered)
	assert.Equal(t, 6, dash.TotalLearning)
}

func TestBuildDashboardStats_TopLearners(t *testing.T) {
	now := time.Now()
	var profiles []model.Profile
	var rows []model.ProgressRow
	for i := 1; i <= 7; i++ {
		id := fmt.Sprintf("u%d", i)
		profiles = append(profiles, profile(id, id, now))
		rows = append(rows, progressRows(id, i, 0)...)
	}

	dash := BuildDashboardStats(profiles, rows, 100, now)

	require.Len(t, dash.TopLearners, 5)
	assert.Equal(t, "u7", dash.TopLearners[0].ID)
	assert.Equal(t, 7, dash.TopLearners[0].Mastered)
	assert.Equal(t, "u3", dash.TopLearners[4].ID)
}

func TestBuildDashboardStats_TopLearnersTieBreak(t *testing.T) {
	now := time.Now()
	profiles := []model.Profile{
		profile("b", "Deuxième", now),
		profile("a", "Premier", now),
	}
	rows := append(progressRows("a", 2, 0), progressRows("b", 2, 0)...)

	dash := BuildDashboardStats(profiles, rows, 10, now)

	// Égalité parfaite: id croissant
	require.Len(t, dash.TopLearners, 2)
	assert.Equal(t, "a", dash.TopLearners[0].ID)
	assert.Equal(t, "b", dash.TopLearners[1].ID)
}

func TestBuildDashboardStats_RecentUsers(t *testing.T) {
	now := time.Now()
	var profiles []model.Profile
	for i := 1; i <= 7; i++ {
		profiles = append(profiles, profile(fmt.Sprintf("u%d", i), "x", now.Add(-time.Duration(i)*time.Hour)))
	}

	dash := BuildDashboardStats(profiles, nil, 0, now)

	require.Len(t, dash.RecentUsers, 5)
	assert.Equal(t, "u1", dash.RecentUsers[0].ID)
	assert.Equal(t, "u5", dash.RecentUsers[4].ID)
}

func TestBuildRankings_Order(t *testing.T) {
	now := time.Now()
	profiles := []model.Profile{
		profile("u1", "A", now),
		profile("u2", "B", now),
		profile("u3", "C", now),
	}

	rows := append(progressRows("u1", 5, 0), progressRows("u2", 8, 1)...)
	rows = append(rows, progressRows("u3", 5, 3)...)

	rankings := BuildRankings(profiles, rows)

	require.Len(t, rankings, 3)
	assert.Equal(t, "u2", rankings[0].ID)
	// Même mastered: totalKnown départage
	assert.Equal(t, "u3", rankings[1].ID)
	assert.Equal(t, "u1", rankings[2].ID)

	assert.Equal(t, 9, rankings[0].TotalKnown)
	assert.Equal(t, 8, rankings[1].TotalKnown)
}

func TestBuildRankings_FullTieKeepsInsertionOrder(t *testing.T) {
	now := time.Now()
	profiles := []model.Profile{
		profile("zz", "Inscrit en premier", now),
		profile("aa", "Inscrit en second", now),
	}
	rows := append(progressRows("zz", 2, 1), progressRows("aa", 2, 1)...)

	rankings := BuildRankings(profiles, rows)

	require.Len(t, rankings, 2)
	assert.Equal(t, "zz", rankings[0].ID)
	assert.Equal(t, "aa", rankings[1].ID)
}

func TestBuildRankings_UserWithoutProgress(t *testing.T) {
	profiles := []model.Profile{profile("u1", "A", time.Now())}

	rankings := BuildRankings(profiles, nil)

	require.Len(t, rankings, 1)
	assert.Equal(t, 0, rankings[0].Mastered)
	assert.Equal(t, 0, rankings[0].TotalKnown)
	assert.Equal(t, 1, rankings[0].CurrentHSKLevel)
}

func TestBuildLevelBreakdown_SevenBucketsAlways(t *testing.T) {
	breakdown := BuildLevelBreakdown(nil, nil)

	require.Len(t, breakdown, 7)
	for _, b := range breakdown {
		assert.Zero(t, b.Total)
		assert.Zero(t, b.New)
	}
	assert.Equal(t, "7-9", breakdown[6].Bucket)
}

func TestBuildLevelBreakdown_PartitionInvariant(t *testing.T) {
	totals := map[int]int{1: 500, 2: 300, 7: 100, 8: 100, 9: 50}

	rows := []model.LeveledProgressRow{
		{Status: model.StatusMastered, HSKLevel: 1},
		{Status: model.StatusMastered, HSKLevel: 1},
		{Status: model.StatusLearning, HSKLevel: 1},
		{Status: model.StatusMastered, HSKLevel: 7},
		{Status: model.StatusLearning, HSKLevel: 9},
	}

	breakdown := BuildLevelBreakdown(totals, rows)
	require.Len(t, breakdown, 7)

	for _, b := range breakdown {
		assert.Equal(t, b.Total, b.Mastered+b.Learning+b.New, "bucket %s", b.Bucket)
	}

	// Le bucket combiné agrège les niveaux 7, 8 et 9
	combined := breakdown[6]
	assert.Equal(t, 250, combined.Total)
	assert.Equal(t, 1, combined.Mastered)
	assert.Equal(t, 1, combined.Learning)
	assert.Equal(t, 248, combined.New)
}

func TestBuildLevelBreakdown_IgnoresInvalidLevels(t *testing.T) {
	rows := []model.LeveledProgressRow{
		{Status: model.StatusMastered, HSKLevel: 0},
		{Status: model.StatusMastered, HSKLevel: 42},
	}

	breakdown := BuildLevelBreakdown(map[int]int{1: 10}, rows)
	for _, b := range breakdown {
		assert.Zero(t, b.Mastered)
	}
}
