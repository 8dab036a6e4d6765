package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/RaidenNguyen/HanziLaoshi/internal/config"
	"github.com/RaidenNguyen/HanziLaoshi/internal/database"
	"github.com/RaidenNguyen/HanziLaoshi/internal/hsk"
	model "github.com/RaidenNguyen/HanziLaoshi/internal/models"
	"github.com/RaidenNguyen/HanziLaoshi/internal/scanner"
	"github.com/RaidenNguyen/HanziLaoshi/internal/services"
	"github.com/RaidenNguyen/HanziLaoshi/internal/utils"
	"github.com/gorilla/mux"
)

// VocabularyRequest est le corps de création/modification d'un mot
type VocabularyRequest struct {
	HSKLevel       int    `json:"hskLevel"`
	Hanzi          string `json:"hanzi"`
	Pinyin         string `json:"pinyin"`
	Meaning        string `json:"meaning"`
	AudioURL       string `json:"audioUrl"`
	Example        string `json:"example"`
	ExamplePinyin  string `json:"examplePinyin"`
	ExampleMeaning string `json:"exampleMeaning"`
}

func (req *VocabularyRequest) validate() string {
	req.Hanzi = strings.TrimSpace(req.Hanzi)
	req.Pinyin = strings.TrimSpace(req.Pinyin)
	req.Meaning = strings.TrimSpace(req.Meaning)

	if req.Hanzi == "" || req.Pinyin == "" || req.Meaning == "" {
		return "hanzi, pinyin and meaning are required"
	}
	if !hsk.ValidLevel(req.HSKLevel) {
		return "hskLevel must be between 1 and 9"
	}
	return ""
}

// AdminListVocabulary liste le vocabulaire pour le back-office, avec un
// filtre de niveau individuel optionnel (?level=1..9)
func AdminListVocabulary(w http.ResponseWriter, r *http.Request) {
	page := parsePageParams(r, DefaultPageSize)
	ctx := context.Background()

	levels := make([]int, 0, hsk.MaxLevel)
	if raw := r.URL.Query().Get("level"); raw != "" {
		level, err := strconv.Atoi(raw)
		if err != nil || !hsk.ValidLevel(level) {
			utils.ErrorSimple(w, http.StatusBadRequest, "level must be between 1 and 9")
			return
		}
		levels = append(levels, level)
	} else {
		for l := hsk.MinLevel; l <= hsk.MaxLevel; l++ {
			levels = append(levels, l)
		}
	}

	var total int
	err := database.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM vocabulary WHERE hsk_level = ANY($1)`, levels,
	).Scan(&total)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not count vocabulary", err)
		return
	}

	rows, err := database.DB.Query(ctx, `
		SELECT id, hsk_level, hanzi, pinyin, meaning,
		       audio_url, example, example_pinyin, example_meaning, created_at
		FROM vocabulary
		WHERE hsk_level = ANY($1)
		ORDER BY hsk_level ASC, created_at ASC, id ASC
		LIMIT $2 OFFSET $3`,
		levels, page.Limit, page.Offset(),
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query vocabulary", err)
		return
	}
	defer rows.Close()

	items := []model.VocabularyItem{}
	for rows.Next() {
		item, err := scanner.ScanVocabularyItem(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan vocabulary row", err)
			return
		}
		items = append(items, *item)
	}

	utils.Success(w, map[string]any{
		"data":  items,
		"total": total,
		"page":  page.Number,
		"limit": page.Limit,
	})
}

// CreateVocabulary ajoute un mot au vocabulaire
func CreateVocabulary(w http.ResponseWriter, r *http.Request) {
	var req VocabularyRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		utils.ErrorSimple(w, http.StatusBadRequest, msg)
		return
	}

	ctx := context.Background()

	var item model.VocabularyItem
	err := database.DB.QueryRow(ctx, `
		INSERT INTO vocabulary
			(hsk_level, hanzi, pinyin, meaning, audio_url, example, example_pinyin, example_meaning)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, hsk_level, hanzi, pinyin, meaning, created_at`,
		req.HSKLevel, req.Hanzi, req.Pinyin, req.Meaning,
		req.AudioURL, req.Example, req.ExamplePinyin, req.ExampleMeaning,
	).Scan(&item.ID, &item.HSKLevel, &item.Hanzi, &item.Pinyin, &item.Meaning, &item.CreatedAt)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create vocabulary", err)
		return
	}

	item.AudioURL = req.AudioURL
	item.Example = req.Example
	item.ExamplePinyin = req.ExamplePinyin
	item.ExampleMeaning = req.ExampleMeaning

	utils.JSON(w, http.StatusCreated, utils.APIResponse{Success: true, Data: item})
}

// UpdateVocabulary remplace les champs d'un mot existant
func UpdateVocabulary(w http.ResponseWriter, r *http.Request) {
	var req VocabularyRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		utils.ErrorSimple(w, http.StatusBadRequest, msg)
		return
	}

	vocabID := mux.Vars(r)["vocabId"]
	ctx := context.Background()

	tag, err := database.DB.Exec(ctx, `
		UPDATE vocabulary
		SET hsk_level = $1, hanzi = $2, pinyin = $3, meaning = $4,
		    audio_url = $5, example = $6, example_pinyin = $7, example_meaning = $8
		WHERE id = $9`,
		req.HSKLevel, req.Hanzi, req.Pinyin, req.Meaning,
		req.AudioURL, req.Example, req.ExamplePinyin, req.ExampleMeaning,
		vocabID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update vocabulary", err)
		return
	}
	if tag.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "vocabulary word not found")
		return
	}

	utils.Message(w, "vocabulary updated")
}

// UploadVocabularyAudio attache une prononciation audio à un mot
func UploadVocabularyAudio(w http.ResponseWriter, r *http.Request) {
	vocabID := mux.Vars(r)["vocabId"]

	// 10 MB max
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.Error(w, http.StatusBadRequest, "could not parse multipart form", err)
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "missing audio file", err)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "audio/") {
		utils.ErrorSimple(w, http.StatusBadRequest, "file must be an audio recording")
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load config", err)
		return
	}

	cloudinary, err := services.NewCloudinaryService(cfg)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "audio storage is not configured", err)
		return
	}

	audioURL, err := cloudinary.UploadAudio(r.Context(), file, vocabID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not upload audio", err)
		return
	}

	tag, err := database.DB.Exec(context.Background(),
		`UPDATE vocabulary SET audio_url = $1 WHERE id = $2`,
		audioURL, vocabID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update vocabulary", err)
		return
	}
	if tag.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "vocabulary word not found")
		return
	}

	utils.Success(w, map[string]string{"audioUrl": audioURL})
}

// DeleteVocabulary supprime un mot et toutes les progressions qui s'y
// rattachent
func DeleteVocabulary(w http.ResponseWriter, r *http.Request) {
	vocabID := mux.Vars(r)["vocabId"]
	ctx := context.Background()

	tx, err := database.DB.Begin(ctx)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not start transaction", err)
		return
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM user_vocabulary WHERE vocab_id = $1`, vocabID); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete word progress", err)
		return
	}

	tag, err := tx.Exec(ctx, `DELETE FROM vocabulary WHERE id = $1`, vocabID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete vocabulary", err)
		return
	}
	if tag.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "vocabulary word not found")
		return
	}

	if err := tx.Commit(ctx); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not commit deletion", err)
		return
	}

	utils.Message(w, "vocabulary deleted")
}
