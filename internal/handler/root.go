package handler

import (
	"net/http"

	"github.com/RaidenNguyen/HanziLaoshi/internal/utils"
)

// RootHandler affiche toutes les routes disponibles de l'API
func RootHandler(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{
		"name":    "HanziLaoshi API",
		"version": "1.0.0",
		"status":  "running",
		"routes": map[string]interface{}{
			"auth": []map[string]string{
				{"method": "POST", "path": "/auth/login", "description": "Connexion utilisateur"},
				{"method": "POST", "path": "/auth/logout", "description": "Déconnexion utilisateur"},
				{"method": "POST", "path": "/auth/signup", "description": "Inscription utilisateur"},
				{"method": "POST", "path": "/auth/register", "description": "Inscription utilisateur (alias)"},
				{"method": "POST", "path": "/auth/forgot-password", "description": "Demander un lien de réinitialisation"},
				{"method": "POST", "path": "/auth/reset-password", "description": "Réinitialiser le mot de passe"},
				{"method": "POST", "path": "/auth/verify-email", "description": "Vérifier l'email"},
				{"method": "GET", "path": "/auth/callback", "description": "Callback des liens email (vérification, récupération)"},
			},
			"profile": []map[string]string{
				{"method": "GET", "path": "/profile", "description": "Profil de l'utilisateur connecté"},
				{"method": "PUT", "path": "/profile", "description": "Mettre à jour le profil (nom, niveau HSK visé)"},
				{"method": "POST", "path": "/profile/avatar", "description": "Upload avatar utilisateur"},
			},
			"vocabulary": []map[string]string{
				{"method": "GET", "path": "/levels", "description": "Les 7 niveaux HSK (1-6 et 7-9) avec le nombre de mots"},
				{"method": "GET", "path": "/levels/{level}/vocabulary", "description": "Mots d'un niveau avec progression (paginé)"},
				{"method": "GET", "path": "/levels/{level}/vocabulary/filtered", "description": "Mots filtrés par statut new/learning/mastered (paginé)"},
			},
			"progress": []map[string]string{
				{"method": "POST", "path": "/progress", "description": "Marquer un mot learning ou mastered"},
				{"method": "GET", "path": "/progress/levels", "description": "Ventilation de ma progression par niveau"},
			},
			"ranking": []map[string]string{
				{"method": "GET", "path": "/ranking", "description": "Classement des apprenants"},
				{"method": "GET", "path": "/ranking/{userId}/levels", "description": "Ventilation par niveau d'un utilisateur"},
			},
			"games": []map[string]string{
				{"method": "GET", "path": "/games/vocabulary/{level}", "description": "Mots d'un niveau mélangés pour les jeux"},
				{"method": "POST", "path": "/games/matching/start", "description": "Démarrer un jeu d'association"},
				{"method": "POST", "path": "/games/matching/{sessionId}/pick", "description": "Sélectionner une carte (hanzi ou sens)"},
				{"method": "POST", "path": "/games/matching/{sessionId}/next", "description": "Manche suivante"},
				{"method": "POST", "path": "/games/memory/start", "description": "Démarrer un memory"},
				{"method": "POST", "path": "/games/memory/{sessionId}/flip", "description": "Retourner une carte"},
				{"method": "POST", "path": "/games/memory/{sessionId}/next", "description": "Manche suivante"},
				{"method": "POST", "path": "/games/battle/start", "description": "Démarrer une bataille de frappe"},
				{"method": "POST", "path": "/games/battle/{sessionId}/attack", "description": "Attaquer avec une saisie"},
				{"method": "POST", "path": "/games/battle/{sessionId}/skip", "description": "Passer le mot courant"},
				{"method": "POST", "path": "/games/battle/{sessionId}/page", "description": "Charger une autre page de mots"},
				{"method": "GET", "path": "/games/{sessionId}", "description": "État d'une partie en cours"},
				{"method": "DELETE", "path": "/games/{sessionId}", "description": "Abandonner une partie"},
			},
			"admin": []map[string]string{
				{"method": "GET", "path": "/admin/stats", "description": "Tableau de bord (compteurs, top 5, derniers inscrits)"},
				{"method": "GET", "path": "/admin/users", "description": "Liste des utilisateurs"},
				{"method": "PUT", "path": "/admin/users/{userId}/role", "description": "Changer le rôle d'un utilisateur"},
				{"method": "DELETE", "path": "/admin/users/{userId}", "description": "Supprimer un utilisateur"},
				{"method": "GET", "path": "/admin/vocabulary", "description": "Liste du vocabulaire (paginé, filtre ?level=)"},
				{"method": "POST", "path": "/admin/vocabulary", "description": "Ajouter un mot"},
				{"method": "PUT", "path": "/admin/vocabulary/{vocabId}", "description": "Modifier un mot"},
				{"method": "DELETE", "path": "/admin/vocabulary/{vocabId}", "description": "Supprimer un mot"},
				{"method": "POST", "path": "/admin/vocabulary/{vocabId}/audio", "description": "Upload audio de prononciation"},
			},
			"health": []map[string]string{
				{"method": "GET", "path": "/health", "description": "Vérifier que l'API répond"},
			},
		},
	}

	utils.Success(w, routes)
}
