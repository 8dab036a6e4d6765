package handler

import (
	"context"
	"net/http"

	"github.com/RaidenNguyen/HanziLaoshi/internal/database"
	"github.com/RaidenNguyen/HanziLaoshi/internal/middleware"
	model "github.com/RaidenNguyen/HanziLaoshi/internal/models"
	"github.com/RaidenNguyen/HanziLaoshi/internal/scanner"
	"github.com/RaidenNguyen/HanziLaoshi/internal/stats"
	"github.com/RaidenNguyen/HanziLaoshi/internal/utils"
	"github.com/gorilla/mux"
)

// GetRankings retourne le classement complet des utilisateurs avec l'id
// de l'appelant pour la mise en évidence côté client. Sans session:
// classement vide
func GetRankings(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Success(w, model.Rankings{Rankings: []model.RankedUser{}})
		return
	}

	profiles, err := fetchAllProfiles()
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load profiles", err)
		return
	}

	rows, err := fetchAllProgressRows()
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load progress", err)
		return
	}

	utils.Success(w, model.Rankings{
		Rankings:      stats.BuildRankings(profiles, rows),
		CurrentUserID: user.ID,
	})
}

// GetUserLevelBreakdown ventile la progression d'un utilisateur donné.
// Accessible à l'utilisateur lui-même et aux admins
func GetUserLevelBreakdown(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	targetID := mux.Vars(r)["userId"]
	if targetID != user.ID && !user.IsAdmin() {
		utils.ErrorSimple(w, http.StatusForbidden, "access denied")
		return
	}

	// Vérifie que le profil cible existe avant d'agréger
	ctx := context.Background()
	var exists bool
	err = database.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM profiles WHERE id = $1)`, targetID,
	).Scan(&exists)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not check profile", err)
		return
	}
	if !exists {
		utils.ErrorSimple(w, http.StatusNotFound, "user not found")
		return
	}

	breakdown, err := levelBreakdownForUser(targetID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not build level breakdown", err)
		return
	}

	utils.Success(w, breakdown)
}

// fetchAllProfiles charge tous les profils, ordre de création croissant.
// L'ordre d'insertion sert de départage final du classement
func fetchAllProfiles() ([]model.Profile, error) {
	ctx := context.Background()

	rows, err := database.DB.Query(ctx, `
		SELECT id, full_name, email, avatar_url, current_hsk_level,
		       role, email_verified, created_at, updated_at
		FROM profiles
		ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []model.Profile
	for rows.Next() {
		p, err := scanner.ScanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, nil
}

// fetchAllProgressRows charge toutes les lignes (user_id, status)
func fetchAllProgressRows() ([]model.ProgressRow, error) {
	ctx := context.Background()

	rows, err := database.DB.Query(ctx,
		`SELECT user_id, status FROM user_vocabulary`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var progressRows []model.ProgressRow
	for rows.Next() {
		var row model.ProgressRow
		if err := rows.Scan(&row.UserID, &row.Status); err != nil {
			return nil, err
		}
		progressRows = append(progressRows, row)
	}
	return progressRows, nil
}
