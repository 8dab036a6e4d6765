package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/RaidenNguyen/HanziLaoshi/internal/database"
	"github.com/RaidenNguyen/HanziLaoshi/internal/middleware"
	model "github.com/RaidenNguyen/HanziLaoshi/internal/models"
	"github.com/RaidenNguyen/HanziLaoshi/internal/scanner"
	"github.com/RaidenNguyen/HanziLaoshi/internal/stats"
	"github.com/RaidenNguyen/HanziLaoshi/internal/utils"
	"github.com/gorilla/mux"
)

// GetDashboardStats construit le tableau de bord admin: compteurs globaux,
// fenêtres jour/semaine, top 5 et derniers inscrits. Tout est recalculé à
// chaque appel depuis les lignes courantes
func GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdmin(r) {
		utils.ErrorSimple(w, http.StatusForbidden, "admin privileges required")
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

	ctx := context.Background()
	var totalVocabulary int
	err = database.DB.QueryRow(ctx, `SELECT COUNT(*) FROM vocabulary`).Scan(&totalVocabulary)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not count vocabulary", err)
		return
	}

	utils.Success(w, stats.BuildDashboardStats(profiles, rows, totalVocabulary, time.Now()))
}

// GetUsers liste tous les utilisateurs, du plus récent au plus ancien
func GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()

	rows, err := database.DB.Query(ctx, `
		SELECT id, full_name, email, avatar_url, current_hsk_level,
		       role, email_verified, created_at, updated_at
		FROM profiles
		ORDER BY created_at DESC, id ASC`,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load users", err)
		return
	}
	defer rows.Close()

	users := []model.Profile{}
	for rows.Next() {
		p, err := scanner.ScanProfile(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan user", err)
			return
		}
		users = append(users, *p)
	}

	utils.Success(w, users)
}

// UpdateRoleRequest est le corps du changement de rôle
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateUserRole change le rôle d'un utilisateur (user ou admin)
func UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	var req UpdateRoleRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Role != model.RoleUser && req.Role != model.RoleAdmin {
		utils.ErrorSimple(w, http.StatusBadRequest, "role must be user or admin")
		return
	}

	targetID := mux.Vars(r)["userId"]
	ctx := context.Background()

	tag, err := database.DB.Exec(ctx,
		`UPDATE profiles SET role = $1, updated_at = NOW() WHERE id = $2`,
		req.Role, targetID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update role", err)
		return
	}
	if tag.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "user not found")
		return
	}

	utils.Message(w, "role updated")
}

// DeleteUser supprime un utilisateur et toutes ses données (progression,
// sessions, profil). Un admin ne peut pas se supprimer lui-même
func DeleteUser(w http.ResponseWriter, r *http.Request) {
	admin, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	targetID := mux.Vars(r)["userId"]
	if targetID == admin.ID {
		utils.ErrorSimple(w, http.StatusBadRequest, "Không thể xóa chính mình")
		return
	}

	ctx := context.Background()

	tx, err := database.DB.Begin(ctx)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not start transaction", err)
		return
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM user_vocabulary WHERE user_id = $1`, targetID); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete user progress", err)
		return
	}
	if _, err := tx.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, targetID); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete user sessions", err)
		return
	}

	tag, err := tx.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, targetID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete user", err)
		return
	}
	if tag.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "user not found")
		return
	}

	if err := tx.Commit(ctx); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not commit deletion", err)
		return
	}

	utils.Message(w, "Đã xóa người dùng")
}
