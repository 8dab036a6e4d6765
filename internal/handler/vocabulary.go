package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/RaidenNguyen/HanziLaoshi/internal/database"
	"github.com/RaidenNguyen/HanziLaoshi/internal/hsk"
	"github.com/RaidenNguyen/HanziLaoshi/internal/middleware"
	model "github.com/RaidenNguyen/HanziLaoshi/internal/models"
	"github.com/RaidenNguyen/HanziLaoshi/internal/paging"
	"github.com/RaidenNguyen/HanziLaoshi/internal/scanner"
	"github.com/RaidenNguyen/HanziLaoshi/internal/utils"
	"github.com/gorilla/mux"
)

// DefaultPageSize est la taille de page par défaut pour le parcours du
// vocabulaire; le filtre par statut utilise la même valeur que le front
const (
	DefaultPageSize  = 20
	FilteredPageSize = 25
)

// VocabularyPage est la réponse paginée du parcours de vocabulaire
type VocabularyPage struct {
	Data  []model.VocabularyWithProgress `json:"data"`
	Total int                            `json:"total"`
	Page  int                            `json:"page"`
	Limit int                            `json:"limit"`
}

func parsePageParams(r *http.Request, defaultLimit int) paging.Page {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))
	return paging.Normalize(page, limit, defaultLimit)
}

// GetLevels retourne les 7 buckets de niveaux avec le nombre de mots de chacun
func GetLevels(w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()

	rows, err := database.DB.Query(ctx,
		`SELECT hsk_level, COUNT(*) FROM vocabulary GROUP BY hsk_level`,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not count vocabulary", err)
		return
	}
	defer rows.Close()

	totals := make(map[int]int)
	for rows.Next() {
		var level, count int
		if err := rows.Scan(&level, &count); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan vocabulary count", err)
			return
		}
		totals[level] = count
	}

	type levelBucket struct {
		hsk.Bucket
		TotalWords int `json:"totalWords"`
	}

	buckets := hsk.Buckets()
	result := make([]levelBucket, 0, len(buckets))
	for _, b := range buckets {
		lb := levelBucket{Bucket: b}
		for _, lvl := range b.Levels {
			lb.TotalWords += totals[lvl]
		}
		result = append(result, lb)
	}

	utils.Success(w, result)
}

// GetVocabulary liste une page de mots d'un bucket de niveaux, chaque mot
// portant la progression de l'appelant. Sans session: résultat vide
func GetVocabulary(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Success(w, VocabularyPage{Data: []model.VocabularyWithProgress{}})
		return
	}

	bucket, err := hsk.ParseBucket(mux.Vars(r)["level"])
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
		return
	}

	page := parsePageParams(r, DefaultPageSize)
	ctx := context.Background()

	var total int
	err = database.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM vocabulary WHERE hsk_level = ANY($1)`,
		bucket.Levels,
	).Scan(&total)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not count vocabulary", err)
		return
	}

	rows, err := database.DB.Query(ctx, `
		SELECT
			v.id, v.hsk_level, v.hanzi, v.pinyin, v.meaning,
			v.audio_url, v.example, v.example_pinyin, v.example_meaning, v.created_at,
			uv.status, uv.mastery_score, uv.last_reviewed
		FROM vocabulary v
		LEFT JOIN user_vocabulary uv ON uv.vocab_id = v.id AND uv.user_id = $1
		WHERE v.hsk_level = ANY($2)
		ORDER BY v.created_at ASC, v.id ASC
		LIMIT $3 OFFSET $4`,
		user.ID, bucket.Levels, page.Limit, page.Offset(),
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query vocabulary", err)
		return
	}
	defer rows.Close()

	items := []model.VocabularyWithProgress{}
	for rows.Next() {
		item, err := scanner.ScanVocabularyWithProgress(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan vocabulary row", err)
			return
		}
		items = append(items, *item)
	}

	utils.Success(w, VocabularyPage{Data: items, Total: total, Page: page.Number, Limit: page.Limit})
}

// GetFilteredVocabulary retourne une page de mots filtrés par statut.
// Le statut "new" est dérivé: mots du niveau sans ligne de progression.
// Son total est la taille de l'ensemble différence, pas un count SQL
func GetFilteredVocabulary(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Success(w, VocabularyPage{Data: []model.VocabularyWithProgress{}})
		return
	}

	bucket, err := hsk.ParseBucket(mux.Vars(r)["level"])
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
		return
	}

	status := r.URL.Query().Get("status")
	page := parsePageParams(r, FilteredPageSize)

	switch status {
	case model.StatusNew:
		newVocabularyPage(w, user.ID, bucket, page)
	case model.StatusLearning, model.StatusMastered:
		statusVocabularyPage(w, user.ID, bucket, status, page)
	default:
		utils.ErrorSimple(w, http.StatusBadRequest, "status must be new, learning or mastered")
	}
}

// newVocabularyPage calcule l'ensemble différence (mots du niveau moins
// mots déjà commencés) puis le pagine en mémoire
func newVocabularyPage(w http.ResponseWriter, userID string, bucket hsk.Bucket, page paging.Page) {
	ctx := context.Background()

	rows, err := database.DB.Query(ctx,
		`SELECT id FROM vocabulary WHERE hsk_level = ANY($1) ORDER BY created_at ASC, id ASC`,
		bucket.Levels,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query vocabulary ids", err)
		return
	}
	defer rows.Close()

	var levelIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan vocabulary id", err)
			return
		}
		levelIDs = append(levelIDs, id)
	}

	startedRows, err := database.DB.Query(ctx,
		`SELECT vocab_id FROM user_vocabulary WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query user progress", err)
		return
	}
	defer startedRows.Close()

	started := make(map[string]bool)
	for startedRows.Next() {
		var id string
		if err := startedRows.Scan(&id); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan progress row", err)
			return
		}
		started[id] = true
	}

	// Différence: mots du niveau jamais commencés, ordre de création conservé
	newIDs := make([]string, 0, len(levelIDs))
	for _, id := range levelIDs {
		if !started[id] {
			newIDs = append(newIDs, id)
		}
	}

	total := len(newIDs)
	pagedIDs := paging.Slice(newIDs, page)

	items := []model.VocabularyWithProgress{}
	if len(pagedIDs) > 0 {
		detailRows, err := database.DB.Query(ctx, `
			SELECT
				id, hsk_level, hanzi, pinyin, meaning,
				audio_url, example, example_pinyin, example_meaning, created_at
			FROM vocabulary
			WHERE id = ANY($1)
			ORDER BY created_at ASC, id ASC`,
			pagedIDs,
		)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not query vocabulary details", err)
			return
		}
		defer detailRows.Close()

		for detailRows.Next() {
			item, err := scanner.ScanVocabularyItem(detailRows)
			if err != nil {
				utils.Error(w, http.StatusInternalServerError, "could not scan vocabulary row", err)
				return
			}
			items = append(items, model.VocabularyWithProgress{VocabularyItem: *item})
		}
	}

	utils.Success(w, VocabularyPage{Data: items, Total: total, Page: page.Number, Limit: page.Limit})
}

// statusVocabularyPage filtre directement sur le statut stocké; le total
// est le count exact des lignes jointes
func statusVocabularyPage(w http.ResponseWriter, userID string, bucket hsk.Bucket, status string, page paging.Page) {
	ctx := context.Background()

	var total int
	err := database.DB.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM vocabulary v
		INNER JOIN user_vocabulary uv ON uv.vocab_id = v.id
		WHERE v.hsk_level = ANY($1) AND uv.user_id = $2 AND uv.status = $3`,
		bucket.Levels, userID, status,
	).Scan(&total)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not count filtered vocabulary", err)
		return
	}

	rows, err := database.DB.Query(ctx, `
		SELECT
			v.id, v.hsk_level, v.hanzi, v.pinyin, v.meaning,
			v.audio_url, v.example, v.example_pinyin, v.example_meaning, v.created_at,
			uv.status, uv.mastery_score, uv.last_reviewed
		FROM vocabulary v
		INNER JOIN user_vocabulary uv ON uv.vocab_id = v.id
		WHERE v.hsk_level = ANY($1) AND uv.user_id = $2 AND uv.status = $3
		ORDER BY v.created_at ASC, v.id ASC
		LIMIT $4 OFFSET $5`,
		bucket.Levels, userID, status, page.Limit, page.Offset(),
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query filtered vocabulary", err)
		return
	}
	defer rows.Close()

	items := []model.VocabularyWithProgress{}
	for rows.Next() {
		item, err := scanner.ScanVocabularyWithProgress(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan vocabulary row", err)
			return
		}
		items = append(items, *item)
	}

	utils.Success(w, VocabularyPage{Data: items, Total: total, Page: page.Number, Limit: page.Limit})
}
