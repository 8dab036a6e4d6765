package model

import (
	"time"
)

// Rôles possibles d'un profil
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Profile struct {
	ID              string    `json:"id,omitempty"`
	FullName        string    `json:"fullName"`
	Email           string    `json:"email"`
	AvatarURL       string    `json:"avatarUrl,omitempty"`
	CurrentHSKLevel int       `json:"currentHskLevel"`
	Role            string    `json:"role"`
	EmailVerified   bool      `json:"emailVerified"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt,omitempty"`
}

// IsAdmin indique si le profil a le rôle administrateur
func (p Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
