package middleware

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/RaidenNguyen/HanziLaoshi/internal/database"
	model "github.com/RaidenNguyen/HanziLaoshi/internal/models"
	"github.com/RaidenNguyen/HanziLaoshi/internal/utils"
	"github.com/jackc/pgx/v5"
)

// Context keys
type contextKey string

const (
	userContextKey  = contextKey("user")
	tokenContextKey = contextKey("token")
)

// AuthMiddleware valide le token et injecte l'utilisateur dans le contexte
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Récupérer le token depuis le header Authorization
		token := r.Header.Get("Authorization")
		if token == "" {
			utils.ErrorSimple(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		// Valider le token et récupérer l'utilisateur
		user, err := validateTokenAndGetUser(r.Context(), token)
		if err != nil {
			utils.ErrorSimple(w, http.StatusUnauthorized, fmt.Sprintf("invalid token: %v", err))
			return
		}

		// Injecter l'utilisateur et le token dans le contexte
		ctx := context.WithValue(r.Context(), userContextKey, *user)
		ctx = context.WithValue(ctx, tokenContextKey, token)

		// Appeler le handler suivant avec le contexte enrichi
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth injecte l'utilisateur dans le contexte si un token valide
// est présent, et laisse passer la requête dans tous les cas. Les handlers
// en lecture seule dégradent alors vers un résultat vide au lieu d'un 401
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token != "" {
			if user, err := validateTokenAndGetUser(r.Context(), token); err == nil {
				ctx := context.WithValue(r.Context(), userContextKey, *user)
				ctx = context.WithValue(ctx, tokenContextKey, token)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// AdminMiddleware refuse la requête si l'appelant n'a pas le rôle admin.
// Se place après AuthMiddleware
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := GetUserFromContext(r)
		if err != nil {
			utils.ErrorSimple(w, http.StatusUnauthorized, "missing authorization token")
			return
		}
		if !user.IsAdmin() {
			utils.ErrorSimple(w, http.StatusForbidden, "admin privileges required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// validateTokenAndGetUser valide le token et retourne l'utilisateur associé
func validateTokenAndGetUser(ctx context.Context, token string) (*model.Profile, error) {
	var p model.Profile
	var avatar sql.NullString
	var level sql.NullInt64

	query := `
	SELECT
		p.id, p.full_name, p.email, p.avatar_url, p.current_hsk_level,
		p.role, p.email_verified, p.created_at, p.updated_at
	FROM profiles p
	JOIN sessions s ON p.id = s.user_id
	WHERE s.token = $1
		AND s.is_active = true
		AND s.expires_at > NOW()
		AND s.deleted_at IS NULL`

	// Requête pour valider le token et récupérer l'utilisateur
	err := database.DB.QueryRow(ctx, query, token).Scan(
		&p.ID, &p.FullName, &p.Email, &avatar, &level,
		&p.Role, &p.EmailVerified, &p.CreatedAt, &p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("token not found or expired")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// Convertir les valeurs NULL
	p.AvatarURL = utils.NullStringToString(avatar)
	p.CurrentHSKLevel = utils.NullInt64ToInt(level)
	if p.CurrentHSKLevel == 0 {
		p.CurrentHSKLevel = 1
	}

	return &p, nil
}

// GetUserFromContext récupère l'utilisateur depuis le contexte de la requête
func GetUserFromContext(r *http.Request) (model.Profile, error) {
	user, ok := r.Context().Value(userContextKey).(model.Profile)
	if !ok {
		return model.Profile{}, fmt.Errorf("user not found in context")
	}
	return user, nil
}

// GetTokenFromContext récupère le token depuis le contexte de la requête
func GetTokenFromContext(r *http.Request) (string, error) {
	token, ok := r.Context().Value(tokenContextKey).(string)
	if !ok || token == "" {
		return "", fmt.Errorf("token not found in context")
	}
	return token, nil
}

// IsAdmin est un helper pour vérifier le rôle admin dans un handler.
// Chaque mutation admin revérifie le rôle même derrière AdminMiddleware
func IsAdmin(r *http.Request) bool {
	user, err := GetUserFromContext(r)
	if err != nil {
		return false
	}
	return user.IsAdmin()
}
