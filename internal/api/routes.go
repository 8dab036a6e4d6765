package api

import (
	"net/http"

	"github.com/RaidenNguyen/HanziLaoshi/internal/handler"
	"github.com/RaidenNguyen/HanziLaoshi/internal/middleware"
	"github.com/RaidenNguyen/HanziLaoshi/internal/utils"
	"github.com/fatih/color"
	"github.com/gorilla/mux"
)

func SetupRouter() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.OptionalAuth)

	authenticatedRoutes := r.PathPrefix("/").Subrouter()
	authenticatedRoutes.Use(middleware.AuthMiddleware)
	authenticatedRoutes.Use(middleware.LoggerMiddleware)

	adminRoutes := authenticatedRoutes.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(middleware.AdminMiddleware)

	// Root - API documentation
	r.HandleFunc("/", handler.RootHandler).Methods(http.MethodGet)

	// Auth
	r.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/auth/logout", handler.Logout).Methods(http.MethodPost)
	r.HandleFunc("/auth/signup", handler.Signup).Methods(http.MethodPost)
	r.HandleFunc("/auth/register", handler.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/forgot-password", handler.ForgotPassword).Methods(http.MethodPost)
	r.HandleFunc("/auth/reset-password", handler.ResetPassword).Methods(http.MethodPost)
	r.HandleFunc("/auth/verify-email", handler.VerifyEmail).Methods(http.MethodPost)
	r.HandleFunc("/auth/callback", handler.AuthCallback).Methods(http.MethodGet)

	// Profile
	authenticatedRoutes.HandleFunc("/profile", handler.GetProfile).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/profile", handler.UpdateProfile).Methods(http.MethodPut, http.MethodPatch)
	authenticatedRoutes.HandleFunc("/profile/avatar", handler.UploadAvatar).Methods(http.MethodPost)

	// Vocabulary - lecture dégradée sans session (résultat vide)
	r.HandleFunc("/levels", handler.GetLevels).Methods(http.MethodGet)
	r.HandleFunc("/levels/{level}/vocabulary", handler.GetVocabulary).Methods(http.MethodGet)
	r.HandleFunc("/levels/{level}/vocabulary/filtered", handler.GetFilteredVocabulary).Methods(http.MethodGet)

	// Progress
	authenticatedRoutes.HandleFunc("/progress", handler.UpsertProgress).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/progress/levels", handler.GetMyLevelBreakdown).Methods(http.MethodGet)

	// Ranking - lecture dégradée sans session
	r.HandleFunc("/ranking", handler.GetRankings).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/ranking/{userId}/levels", handler.GetUserLevelBreakdown).Methods(http.MethodGet)

	// Games
	authenticatedRoutes.HandleFunc("/games/vocabulary/{level}", handler.GetGameVocabulary).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/games/matching/start", handler.StartMatching).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/games/matching/{sessionId}/pick", handler.MatchingPick).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/games/matching/{sessionId}/next", handler.MatchingNextRound).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/games/memory/start", handler.StartMemory).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/games/memory/{sessionId}/flip", handler.MemoryFlip).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/games/memory/{sessionId}/next", handler.MemoryNextRound).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/games/battle/start", handler.StartBattle).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/games/battle/{sessionId}/attack", handler.BattleAttack).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/games/battle/{sessionId}/skip", handler.BattleSkip).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/games/battle/{sessionId}/page", handler.BattleLoadPage).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/games/{sessionId}", handler.GetGameState).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/games/{sessionId}", handler.AbandonGame).Methods(http.MethodDelete)

	// Admin
	adminRoutes.HandleFunc("/stats", handler.GetDashboardStats).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/users", handler.GetUsers).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/users/{userId}/role", handler.UpdateUserRole).Methods(http.MethodPut)
	adminRoutes.HandleFunc("/users/{userId}", handler.DeleteUser).Methods(http.MethodDelete)
	adminRoutes.HandleFunc("/vocabulary", handler.AdminListVocabulary).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/vocabulary", handler.CreateVocabulary).Methods(http.MethodPost)
	adminRoutes.HandleFunc("/vocabulary/{vocabId}", handler.UpdateVocabulary).Methods(http.MethodPut)
	adminRoutes.HandleFunc("/vocabulary/{vocabId}", handler.DeleteVocabulary).Methods(http.MethodDelete)
	adminRoutes.HandleFunc("/vocabulary/{vocabId}/audio", handler.UploadVocabularyAudio).Methods(http.MethodPost)

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.LogError("404 Not Found: %s %s", r.Method, r.URL.Path)
		color.Yellow("[404] %s %s (route non trouvée)", r.Method, r.URL.Path)
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
