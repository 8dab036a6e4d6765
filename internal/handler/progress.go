package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/RaidenNguyen/HanziLaoshi/internal/database"
	"github.com/RaidenNguyen/HanziLaoshi/internal/middleware"
	model "github.com/RaidenNguyen/HanziLaoshi/internal/models"
	"github.com/RaidenNguyen/HanziLaoshi/internal/stats"
	"github.com/RaidenNguyen/HanziLaoshi/internal/utils"
)

// UpsertProgressRequest est le corps de POST /progress
type UpsertProgressRequest struct {
	VocabID      string   `json:"vocabId"`
	Status       string   `json:"status"`
	MasteryScore *float64 `json:"masteryScore"`
}

// UpsertProgress enregistre (ou met à jour) le statut d'un mot pour
// l'appelant. Seuls learning et mastered sont stockables: remettre un
// mot à "new" n'existe pas
func UpsertProgress(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req UpsertProgressRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.VocabID = strings.TrimSpace(req.VocabID)
	if req.VocabID == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "vocabId is required")
		return
	}
	if req.Status != model.StatusLearning && req.Status != model.StatusMastered {
		utils.ErrorSimple(w, http.StatusBadRequest, "status must be learning or mastered")
		return
	}
	if req.MasteryScore != nil && (*req.MasteryScore < 0 || *req.MasteryScore > 100) {
		utils.ErrorSimple(w, http.StatusBadRequest, "masteryScore must be between 0 and 100")
		return
	}

	ctx := context.Background()

	// Le mot doit exister avant d'accepter la progression
	var exists bool
	err = database.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM vocabulary WHERE id = $1)`, req.VocabID,
	).Scan(&exists)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not check vocabulary", err)
		return
	}
	if !exists {
		utils.ErrorSimple(w, http.StatusNotFound, "vocabulary word not found")
		return
	}

	var progress model.UserProgress
	err = database.DB.QueryRow(ctx, `
		INSERT INTO user_vocabulary (user_id, vocab_id, status, mastery_score, last_reviewed)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, vocab_id)
		DO UPDATE SET
			status = EXCLUDED.status,
			mastery_score = COALESCE(EXCLUDED.mastery_score, user_vocabulary.mastery_score),
			last_reviewed = NOW()
		RETURNING user_id, vocab_id, status, mastery_score, last_reviewed`,
		user.ID, req.VocabID, req.Status, req.MasteryScore,
	).Scan(&progress.UserID, &progress.VocabID, &progress.Status, &progress.MasteryScore, &progress.LastReviewed)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not save progress", err)
		return
	}

	utils.Success(w, progress)
}

// GetMyLevelBreakdown ventile la progression de l'appelant sur les 7 buckets
func GetMyLevelBreakdown(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	breakdown, err := levelBreakdownForUser(user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not build level breakdown", err)
		return
	}

	utils.Success(w, breakdown)
}

// levelBreakdownForUser charge les totaux du vocabulaire et les lignes de
// progression d'un utilisateur, puis délègue l'agrégation à stats
func levelBreakdownForUser(userID string) ([]model.BucketStats, error) {
	ctx := context.Background()

	totalRows, err := database.DB.Query(ctx,
		`SELECT hsk_level, COUNT(*) FROM vocabulary GROUP BY hsk_level`,
	)
	if err != nil {
		return nil, err
	}
	defer totalRows.Close()

	totals := make(map[int]int)
	for totalRows.Next() {
		var level, count int
		if err := totalRows.Scan(&level, &count); err != nil {
			return nil, err
		}
		totals[level] = count
	}

	rows, err := database.DB.Query(ctx, `
		SELECT uv.status, v.hsk_level
		FROM user_vocabulary uv
		INNER JOIN vocabulary v ON v.id = uv.vocab_id
		WHERE uv.user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var progressRows []model.LeveledProgressRow
	for rows.Next() {
		var row model.LeveledProgressRow
		if err := rows.Scan(&row.Status, &row.HSKLevel); err != nil {
			return nil, err
		}
		progressRows = append(progressRows, row)
	}

	return stats.BuildLevelBreakdown(totals, progressRows), nil
}
