package utils

import (
	"fmt"
	"net/url"
)

// DefaultAvatarURL retourne un avatar par défaut généré depuis les
// initiales de l'utilisateur (API DiceBear). Utilisé à l'inscription tant
// que l'utilisateur n'a pas uploadé sa propre image
func DefaultAvatarURL(fullName string) string {
	return fmt.Sprintf("https://api.dicebear.com/7.x/initials/svg?seed=%s", url.QueryEscape(fullName))
}
