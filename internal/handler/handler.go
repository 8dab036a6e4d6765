package handler

import (
	"net/http"

	"github.com/RaidenNguyen/HanziLaoshi/internal/game"
	"github.com/RaidenNguyen/HanziLaoshi/internal/utils"
)

// games est le gestionnaire des parties en cours, partagé par tous les
// handlers de jeu. Mémoire vive uniquement
var games = game.NewManager()

// HealthCheck vérifie que l'API répond
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.Success(w, map[string]string{"status": "ok"})
}
