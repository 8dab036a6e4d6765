package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Types de tokens d'action envoyés par lien email. Les valeurs suivent les
// paramètres du callback (?token_hash=...&type=...)
const (
	TokenTypeEmail    = "email"    // vérification d'adresse après inscription
	TokenTypeRecovery = "recovery" // réinitialisation de mot de passe
)

// Durées de validité des tokens d'action
const (
	EmailTokenDuration    = 24 * time.Hour
	RecoveryTokenDuration = 1 * time.Hour
)

type actionClaims struct {
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// MintActionToken signe un token d'action à usage unique pour un utilisateur
func MintActionToken(secret, userID, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := actionClaims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseActionToken valide un token d'action et retourne l'utilisateur et le
// type de token. wantType vide accepte n'importe quel type
func ParseActionToken(secret, tokenString, wantType string) (string, string, error) {
	var claims actionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", err
	}
	if !token.Valid {
		return "", "", fmt.Errorf("invalid token")
	}
	if wantType != "" && claims.TokenType != wantType {
		return "", "", fmt.Errorf("unexpected token type %q", claims.TokenType)
	}
	if claims.Subject == "" {
		return "", "", fmt.Errorf("token has no subject")
	}

	return claims.Subject, claims.TokenType, nil
}
