package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/RaidenNguyen/HanziLaoshi/internal/config"
	"github.com/RaidenNguyen/HanziLaoshi/internal/database"
	"github.com/RaidenNguyen/HanziLaoshi/internal/logger"
	"github.com/RaidenNguyen/HanziLaoshi/internal/middleware"
	model "github.com/RaidenNguyen/HanziLaoshi/internal/models"
	"github.com/RaidenNguyen/HanziLaoshi/internal/utils"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"golang.org/x/crypto/bcrypt"
)

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	HSKGoal         string `json:"hskGoal"` // "hsk1".."hsk9" ou un nombre brut
}

// parseHSKGoal extrait le niveau depuis "hsk3", "3", etc. Niveau 1 par défaut
func parseHSKGoal(goal string) int {
	if m := regexp.MustCompile(`\d+`).FindString(goal); m != "" {
		if n, err := strconv.Atoi(m); err == nil && n >= 1 && n <= 9 {
			return n
		}
	}
	return 1
}

func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx := context.Background()
	var user model.Profile
	var hashedPassword string

	err := database.DB.QueryRow(ctx,
		`SELECT id, full_name, email, COALESCE(avatar_url,'') as avatar_url, current_hsk_level,
		 role, email_verified, created_at, updated_at, password_hash
		 FROM profiles WHERE email=$1`,
		strings.ToLower(strings.TrimSpace(req.Email)),
	).Scan(&user.ID, &user.FullName, &user.Email, &user.AvatarURL, &user.CurrentHSKLevel,
		&user.Role, &user.EmailVerified, &user.CreatedAt, &user.UpdatedAt, &hashedPassword)

	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(req.Password)); err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	ip, userAgent := utils.ExtractIPAndUserAgent(r)
	token, err := utils.CreateSession(ctx, user.ID, ip, userAgent)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

func Logout(w http.ResponseWriter, r *http.Request) {
	// Derrière AuthMiddleware le token validé est dans le contexte
	token, err := middleware.GetTokenFromContext(r)
	if err != nil {
		if token, err = utils.GetToken(r); err != nil {
			utils.ErrorSimple(w, http.StatusBadRequest, "missing token")
			return
		}
	}

	if err := utils.InvalidateSession(context.Background(), token); err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, "session not found or already logged out")
		return
	}

	utils.Success(w, map[string]bool{"success": true})
}

// Register (alias de Signup pour correspondre à l'API du front)
func Register(w http.ResponseWriter, r *http.Request) {
	Signup(w, r)
}

func Signup(w http.ResponseWriter, r *http.Request) {
	var payload SignupRequest
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// Validation avant tout appel externe
	payload.FullName = strings.TrimSpace(payload.FullName)
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))

	if payload.FullName == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "Vui lòng nhập họ tên")
		return
	}
	if !emailRegexp.MatchString(payload.Email) {
		utils.ErrorSimple(w, http.StatusBadRequest, "Email không hợp lệ")
		return
	}
	if len(payload.Password) < 6 {
		utils.ErrorSimple(w, http.StatusBadRequest, "Mật khẩu phải có ít nhất 6 ký tự.")
		return
	}
	if payload.Password != payload.ConfirmPassword {
		utils.ErrorSimple(w, http.StatusBadRequest, "Mật khẩu xác nhận không khớp")
		return
	}

	hskLevel := parseHSKGoal(payload.HSKGoal)

	ctx := context.Background()
	hashed, _ := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)

	var user model.Profile
	err := database.DB.QueryRow(ctx,
		`INSERT INTO profiles(full_name, email, password_hash, avatar_url, current_hsk_level, role, created_at, updated_at)
		 VALUES($1, $2, $3, $4, $5, 'user', NOW(), NOW())
		 RETURNING id, full_name, email, avatar_url, current_hsk_level, role, email_verified, created_at, updated_at`,
		payload.FullName, payload.Email, string(hashed), utils.DefaultAvatarURL(payload.FullName), hskLevel,
	).Scan(&user.ID, &user.FullName, &user.Email, &user.AvatarURL, &user.CurrentHSKLevel,
		&user.Role, &user.EmailVerified, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			utils.ErrorSimple(w, http.StatusConflict, "Email này đã được đăng ký. Vui lòng đăng nhập.")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not create user", err)
		return
	}

	// Lien de vérification email loggé côté serveur (l'envoi d'email est
	// assuré par un service externe en production)
	cfg, cfgErr := config.LoadConfig()
	if cfgErr == nil {
		verifyToken, tokenErr := utils.MintActionToken(cfg.TokenSecret, user.ID, utils.TokenTypeEmail, utils.EmailTokenDuration)
		if tokenErr == nil {
			logger.Info("Email verification link for %s: %s/auth/callback?token_hash=%s&type=%s",
				user.Email, cfg.URL, verifyToken, utils.TokenTypeEmail)
		}
	}

	utils.JSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Data:    map[string]interface{}{"user": user},
		Message: "Đăng ký thành công! Vui lòng kiểm tra email để xác thực.",
	})
}

// ForgotPassword génère un lien de réinitialisation de mot de passe.
// Répond toujours succès pour ne pas révéler si l'email existe
func ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	if !emailRegexp.MatchString(payload.Email) {
		utils.ErrorSimple(w, http.StatusBadRequest, "Email không hợp lệ")
		return
	}

	ctx := context.Background()

	var userID string
	err := database.DB.QueryRow(ctx,
		`SELECT id FROM profiles WHERE email=$1`,
		payload.Email,
	).Scan(&userID)

	if err == nil {
		cfg, cfgErr := config.LoadConfig()
		if cfgErr == nil {
			resetToken, tokenErr := utils.MintActionToken(cfg.TokenSecret, userID, utils.TokenTypeRecovery, utils.RecoveryTokenDuration)
			if tokenErr == nil {
				logger.Info("Password reset link for %s: %s/auth/callback?token_hash=%s&type=%s&next=/reset-password",
					payload.Email, cfg.URL, resetToken, utils.TokenTypeRecovery)
			}
		}
	} else if !errors.Is(err, pgx.ErrNoRows) {
		utils.Error(w, http.StatusInternalServerError, "could not check user", err)
		return
	}

	utils.Message(w, "Kiểm tra email của bạn để đặt lại mật khẩu")
}

// ResetPassword applique un nouveau mot de passe à partir d'un token recovery
func ResetPassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Token           string `json:"token"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if len(payload.Password) < 6 {
		utils.ErrorSimple(w, http.StatusBadRequest, "Mật khẩu phải có ít nhất 6 ký tự.")
		return
	}
	if payload.Password != payload.ConfirmPassword {
		utils.ErrorSimple(w, http.StatusBadRequest, "Mật khẩu xác nhận không khớp")
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load config", err)
		return
	}

	userID, _, err := utils.ParseActionToken(cfg.TokenSecret, payload.Token, utils.TokenTypeRecovery)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "Link không hợp lệ hoặc đã hết hạn. Vui lòng thử lại.")
		return
	}

	ctx := context.Background()
	hashed, _ := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)

	res, err := database.DB.Exec(ctx,
		`UPDATE profiles SET password_hash=$1, updated_at=NOW() WHERE id=$2`,
		string(hashed), userID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update password", err)
		return
	}
	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "user not found")
		return
	}

	// Invalider les sessions actives: l'utilisateur devra se reconnecter
	_, _ = database.DB.Exec(ctx,
		`UPDATE sessions SET is_active=false, deleted_at=NOW()
		 WHERE user_id=$1 AND is_active=true AND deleted_at IS NULL`,
		userID,
	)

	utils.Message(w, "Đặt lại mật khẩu thành công! Vui lòng đăng nhập.")
}

// VerifyEmail marque l'email d'un utilisateur comme vérifié
func VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Token string `json:"token"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load config", err)
		return
	}

	userID, _, err := utils.ParseActionToken(cfg.TokenSecret, payload.Token, utils.TokenTypeEmail)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "Link không hợp lệ hoặc đã hết hạn. Vui lòng thử lại.")
		return
	}

	_, err = database.DB.Exec(context.Background(),
		`UPDATE profiles SET email_verified=true, updated_at=NOW() WHERE id=$1`,
		userID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not verify email", err)
		return
	}

	utils.Message(w, "Xác thực email thành công! Vui lòng đăng nhập.")
}

// AuthCallback est la cible des liens email: ?code=... ou
// ?token_hash=...&type=... avec une destination optionnelle ?next=...
// Succès -> redirection vers next avec un message; échec -> /login?error=...
func AuthCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	tokenHash := query.Get("token_hash")
	tokenType := query.Get("type")
	code := query.Get("code")
	next := query.Get("next")
	if next == "" {
		next = "/"
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load config", err)
		return
	}

	redirectError := func(message string) {
		http.Redirect(w, r, cfg.URL+"/login?error="+url.QueryEscape(message), http.StatusFound)
	}

	// ?code=... : lien court, le type est porté par le token lui-même
	if code != "" {
		tokenHash = code
		tokenType = ""
	}

	if tokenHash == "" {
		redirectError("Link không hợp lệ (Thiếu code/token). Vui lòng thử lại.")
		return
	}

	userID, parsedType, err := utils.ParseActionToken(cfg.TokenSecret, tokenHash, tokenType)
	if err != nil {
		logger.Error("Auth callback verification failed: %v", err)
		redirectError("Link không hợp lệ hoặc đã hết hạn. Vui lòng thử lại.")
		return
	}

	isPasswordReset := parsedType == utils.TokenTypeRecovery || next == "/reset-password"

	if parsedType == utils.TokenTypeEmail {
		_, err = database.DB.Exec(context.Background(),
			`UPDATE profiles SET email_verified=true, updated_at=NOW() WHERE id=$1`,
			userID,
		)
		if err != nil {
			logger.Error("Could not mark email as verified: %v", err)
			redirectError("Không thể xác thực email. Vui lòng thử lại sau")
			return
		}
	}

	redirectTo, err := url.Parse(cfg.URL + next)
	if err != nil {
		redirectError("Link không hợp lệ. Vui lòng thử lại.")
		return
	}

	params := redirectTo.Query()
	if isPasswordReset {
		// Le token repart vers le formulaire de réinitialisation
		params.Set("token", tokenHash)
	} else {
		params.Set("message", "Xác thực email thành công! Vui lòng đăng nhập.")
	}
	redirectTo.RawQuery = params.Encode()

	http.Redirect(w, r, redirectTo.String(), http.StatusFound)
}
