// Package stats regroupe toute l'agrégation en mémoire: dashboard admin,
// classement des utilisateurs et ventilation par niveau. Les trois rapports
// partagent les mêmes règles de regroupement (buckets HSK, statut dérivé)
package stats

import (
	"sort"
	"time"

	"github.com/RaidenNguyen/HanziLaoshi/internal/hsk"
	model "github.com/RaidenNguyen/HanziLaoshi/internal/models"
)

// userTally est le comptage mastered/learning d'un utilisateur
type userTally struct {
	mastered int
	learning int
}

func tallyByUser(rows []model.ProgressRow) map[string]userTally {
	tallies := make(map[string]userTally)
	for _, r := range rows {
		t := tallies[r.UserID]
		switch r.Status {
		case model.StatusMastered:
			t.mastered++
		case model.StatusLearning:
			t.learning++
		}
		tallies[r.UserID] = t
	}
	return tallies
}

// StartOfDay retourne minuit local du jour de t
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// BuildDashboardStats calcule les statistiques globales du dashboard admin
// à partir des lignes brutes. Aucun cache: chaque appel repart des lignes
// courantes
func BuildDashboardStats(profiles []model.Profile, rows []model.ProgressRow, totalVocabulary int, now time.Time) model.DashboardStats {
	today := StartOfDay(now)
	weekAgo := StartOfDay(now.AddDate(0, 0, -7))

	dash := model.DashboardStats{
		TotalUsers:      len(profiles),
		TotalVocabulary: totalVocabulary,
		GeneratedAt:     now,
	}

	for _, p := range profiles {
		if !p.CreatedAt.Before(today) {
			dash.NewUsersToday++
		}
		if !p.CreatedAt.Before(weekAgo) {
			dash.NewUsersThisWeek++
		}
	}

	for _, r := range rows {
		switch r.Status {
		case model.StatusMastered:
			dash.TotalMastered++
		case model.StatusLearning:
			dash.TotalLearning++
		}
	}

	// Histogramme des utilisateurs par niveau HSK, niveau 1 par défaut
	levelCounts := make(map[int]int)
	for _, p := range profiles {
		lvl := p.CurrentHSKLevel
		if lvl == 0 {
			lvl = 1
		}
		levelCounts[lvl]++
	}
	for lvl, count := range levelCounts {
		dash.HSKDistribution = append(dash.HSKDistribution, model.LevelCount{Level: lvl, Count: count})
	}
	sort.Slice(dash.HSKDistribution, func(i, j int) bool {
		return dash.HSKDistribution[i].Level < dash.HSKDistribution[j].Level
	})

	dash.TopLearners = topLearners(profiles, rows, 5)
	dash.RecentUsers = recentUsers(profiles, 5)

	return dash
}

// topLearners classe les utilisateurs par nombre de mots maîtrisés.
// Égalité parfaite: id de profil croissant, pour un podium déterministe
func topLearners(profiles []model.Profile, rows []model.ProgressRow, limit int) []model.TopLearner {
	tallies := tallyByUser(rows)

	learners := make([]model.TopLearner, 0, len(profiles))
	for _, p := range profiles {
		t := tallies[p.ID]
		learners = append(learners, model.TopLearner{
			ID:        p.ID,
			FullName:  p.FullName,
			AvatarURL: p.AvatarURL,
			Mastered:  t.mastered,
			Learning:  t.learning,
		})
	}

	sort.Slice(learners, func(i, j int) bool {
		if learners[i].Mastered != learners[j].Mastered {
			return learners[i].Mastered > learners[j].Mastered
		}
		return learners[i].ID < learners[j].ID
	})

	if len(learners) > limit {
		learners = learners[:limit]
	}
	return learners
}

// recentUsers retourne les derniers profils créés, du plus récent au plus ancien
func recentUsers(profiles []model.Profile, limit int) []model.RecentUser {
	sorted := make([]model.Profile, len(profiles))
	copy(sorted, profiles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	recent := make([]model.RecentUser, 0, len(sorted))
	for _, p := range sorted {
		recent = append(recent, model.RecentUser{
			ID:        p.ID,
			FullName:  p.FullName,
			Email:     p.Email,
			AvatarURL: p.AvatarURL,
			CreatedAt: p.CreatedAt,
		})
	}
	return recent
}

// BuildRankings construit le classement complet: mastered décroissant,
// puis totalKnown décroissant. Le tri est stable: une égalité parfaite
// conserve l'ordre d'insertion des profils
func BuildRankings(profiles []model.Profile, rows []model.ProgressRow) []model.RankedUser {
	tallies := tallyByUser(rows)

	rankings := make([]model.RankedUser, 0, len(profiles))
	for _, p := range profiles {
		t := tallies[p.ID]
		lvl := p.CurrentHSKLevel
		if lvl == 0 {
			lvl = 1
		}
		rankings = append(rankings, model.RankedUser{
			ID:              p.ID,
			FullName:        p.FullName,
			AvatarURL:       p.AvatarURL,
			CurrentHSKLevel: lvl,
			Mastered:        t.mastered,
			Learning:        t.learning,
			TotalKnown:      t.mastered + t.learning,
		})
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		if rankings[i].Mastered != rankings[j].Mastered {
			return rankings[i].Mastered > rankings[j].Mastered
		}
		return rankings[i].TotalKnown > rankings[j].TotalKnown
	})

	return rankings
}

// BuildLevelBreakdown ventile la progression d'un utilisateur sur les 7
// buckets (1 à 6 puis 7-9). totalsByLevel donne le nombre de mots du
// vocabulaire par niveau individuel. Produit toujours exactement 7 buckets,
// même sans données
func BuildLevelBreakdown(totalsByLevel map[int]int, rows []model.LeveledProgressRow) []model.BucketStats {
	mastered := make(map[int]int)
	learning := make(map[int]int)
	for _, r := range rows {
		if !hsk.ValidLevel(r.HSKLevel) {
			continue
		}
		switch r.Status {
		case model.StatusMastered:
			mastered[r.HSKLevel]++
		case model.StatusLearning:
			learning[r.HSKLevel]++
		}
	}

	buckets := hsk.Buckets()
	breakdown := make([]model.BucketStats, 0, len(buckets))
	for _, b := range buckets {
		bs := model.BucketStats{Bucket: b.ID}
		for _, lvl := range b.Levels {
			bs.Total += totalsByLevel[lvl]
			bs.Mastered += mastered[lvl]
			bs.Learning += learning[lvl]
		}
		bs.New = bs.Total - bs.Mastered - bs.Learning
		breakdown = append(breakdown, bs)
	}
	return breakdown
}
