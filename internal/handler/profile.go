package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/RaidenNguyen/HanziLaoshi/internal/config"
	"github.com/RaidenNguyen/HanziLaoshi/internal/database"
	"github.com/RaidenNguyen/HanziLaoshi/internal/hsk"
	"github.com/RaidenNguyen/HanziLaoshi/internal/middleware"
	"github.com/RaidenNguyen/HanziLaoshi/internal/services"
	"github.com/RaidenNguyen/HanziLaoshi/internal/utils"
)

// GetProfile retourne le profil de l'appelant
func GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	utils.Success(w, user)
}

// UpdateProfile met à jour le nom et le niveau HSK courant de l'appelant
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var payload struct {
		FullName        string `json:"fullName"`
		CurrentHSKLevel int    `json:"currentHskLevel"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	payload.FullName = strings.TrimSpace(payload.FullName)
	if payload.FullName == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "Vui lòng nhập họ tên")
		return
	}
	if !hsk.ValidLevel(payload.CurrentHSKLevel) {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid HSK level")
		return
	}

	_, err = database.DB.Exec(context.Background(),
		`UPDATE profiles SET full_name=$1, current_hsk_level=$2, updated_at=NOW() WHERE id=$3`,
		payload.FullName, payload.CurrentHSKLevel, user.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update profile", err)
		return
	}

	user.FullName = payload.FullName
	user.CurrentHSKLevel = payload.CurrentHSKLevel
	utils.Success(w, user)
}

// UploadAvatar upload l'image vers Cloudinary puis met à jour le profil
func UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	// 10 MB max
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.Error(w, http.StatusBadRequest, "could not parse multipart form", err)
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "missing avatar file", err)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		utils.ErrorSimple(w, http.StatusBadRequest, "avatar must be an image")
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load config", err)
		return
	}

	cloudinary, err := services.NewCloudinaryService(cfg)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "avatar storage is not configured", err)
		return
	}

	ctx := r.Context()
	avatarURL, err := cloudinary.UploadAvatar(ctx, file, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not upload avatar", err)
		return
	}

	_, err = database.DB.Exec(context.Background(),
		`UPDATE profiles SET avatar_url=$1, updated_at=NOW() WHERE id=$2`,
		avatarURL, user.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update profile", err)
		return
	}

	utils.Success(w, map[string]string{"avatarUrl": avatarURL})
}
