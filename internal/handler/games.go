package handler

import (
	"context"
	"math/rand"
	"net/http"
	"strconv"

	"github.com/RaidenNguyen/HanziLaoshi/internal/database"
	"github.com/RaidenNguyen/HanziLaoshi/internal/game"
	"github.com/RaidenNguyen/HanziLaoshi/internal/hsk"
	"github.com/RaidenNguyen/HanziLaoshi/internal/middleware"
	"github.com/RaidenNguyen/HanziLaoshi/internal/paging"
	"github.com/RaidenNguyen/HanziLaoshi/internal/utils"
	"github.com/gorilla/mux"
)

// StartGameRequest est le corps commun des démarrages de partie
type StartGameRequest struct {
	Level string `json:"level"`
	Page  int    `json:"page"`
}

// GetGameVocabulary retourne tous les mots d'un bucket dans un ordre
// aléatoire, pour les jeux pilotés côté client
func GetGameVocabulary(w http.ResponseWriter, r *http.Request) {
	if _, err := middleware.GetUserFromContext(r); err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	bucket, err := hsk.ParseBucket(mux.Vars(r)["level"])
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
		return
	}

	words, err := fetchGameWords(bucket, true)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load game vocabulary", err)
		return
	}

	utils.Success(w, words)
}

// fetchGameWords charge les mots d'un bucket sous forme de game.Word.
// shuffle mélange le paquet (Fisher-Yates) pour les jeux de cartes;
// la bataille garde l'ordre de création, stable d'une page à l'autre
func fetchGameWords(bucket hsk.Bucket, shuffle bool) ([]game.Word, error) {
	ctx := context.Background()

	rows, err := database.DB.Query(ctx, `
		SELECT id, hanzi, pinyin, meaning, hsk_level
		FROM vocabulary
		WHERE hsk_level = ANY($1)
		ORDER BY created_at ASC, id ASC`,
		bucket.Levels,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []game.Word
	for rows.Next() {
		var word game.Word
		if err := rows.Scan(&word.ID, &word.Hanzi, &word.Pinyin, &word.Meaning, &word.HSKLevel); err != nil {
			return nil, err
		}
		words = append(words, word)
	}

	if shuffle {
		rand.Shuffle(len(words), func(i, j int) {
			words[i], words[j] = words[j], words[i]
		})
	}
	return words, nil
}

func startGameSession(w http.ResponseWriter, r *http.Request, start func(userID string, words []game.Word) (*game.Session, error)) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req StartGameRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bucket, err := hsk.ParseBucket(req.Level)
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
		return
	}

	words, err := fetchGameWords(bucket, true)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load game vocabulary", err)
		return
	}

	session, err := start(user.ID, words)
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
		return
	}

	session.Lock()
	defer session.Unlock()

	utils.Success(w, map[string]any{
		"sessionId": session.ID,
		"level":     bucket.ID,
		"state":     sessionState(session),
	})
}

// sessionState retourne la vue du moteur actif. Appelé sous verrou
func sessionState(s *game.Session) any {
	switch {
	case s.Matching != nil:
		return s.Matching.State()
	case s.Memory != nil:
		return s.Memory.State()
	case s.Battle != nil:
		return s.Battle.State()
	}
	return nil
}

// gameSession résout la session de l'appelant depuis l'URL
func gameSession(w http.ResponseWriter, r *http.Request) *game.Session {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return nil
	}

	session, err := games.Get(mux.Vars(r)["sessionId"], user.ID)
	if err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, err.Error())
		return nil
	}
	return session
}

// GetGameState retourne l'état courant d'une partie, quel que soit le jeu
func GetGameState(w http.ResponseWriter, r *http.Request) {
	session := gameSession(w, r)
	if session == nil {
		return
	}

	session.Lock()
	defer session.Unlock()
	utils.Success(w, sessionState(session))
}

// AbandonGame supprime une partie en cours
func AbandonGame(w http.ResponseWriter, r *http.Request) {
	session := gameSession(w, r)
	if session == nil {
		return
	}

	games.Delete(session.ID)
	utils.Message(w, "game abandoned")
}

// ---- Jeu d'association ----

// StartMatching démarre une partie d'association sur un bucket de niveaux
func StartMatching(w http.ResponseWriter, r *http.Request) {
	startGameSession(w, r, games.StartMatching)
}

// MatchingPickRequest est le corps de la sélection d'une carte
type MatchingPickRequest struct {
	Side string `json:"side"`
	ID   string `json:"id"`
}

// MatchingPick sélectionne une carte. Quand les deux colonnes sont
// sélectionnées, la paire est résolue et le score mis à jour
func MatchingPick(w http.ResponseWriter, r *http.Request) {
	session := gameSession(w, r)
	if session == nil {
		return
	}

	var req MatchingPickRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session.Lock()
	defer session.Unlock()

	if session.Matching == nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "session is not a matching game")
		return
	}

	result, err := session.Matching.Pick(req.Side, req.ID)
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.Success(w, map[string]any{
		"result": result,
		"state":  session.Matching.State(),
	})
}

// MatchingNextRound passe à la manche suivante
func MatchingNextRound(w http.ResponseWriter, r *http.Request) {
	session := gameSession(w, r)
	if session == nil {
		return
	}

	session.Lock()
	defer session.Unlock()

	if session.Matching == nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "session is not a matching game")
		return
	}
	if err := session.Matching.NextRound(); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.Success(w, session.Matching.State())
}

// ---- Memory ----

// StartMemory démarre une partie de memory sur un bucket de niveaux
func StartMemory(w http.ResponseWriter, r *http.Request) {
	startGameSession(w, r, games.StartMemory)
}

// MemoryFlipRequest est le corps du retournement d'une carte
type MemoryFlipRequest struct {
	CardID string `json:"cardId"`
}

// MemoryFlip retourne une carte. Le deuxième retournement d'une paire
// est résolu immédiatement: le client anime le délai, le serveur tranche
func MemoryFlip(w http.ResponseWriter, r *http.Request) {
	session := gameSession(w, r)
	if session == nil {
		return
	}

	var req MemoryFlipRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session.Lock()
	defer session.Unlock()

	if session.Memory == nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "session is not a memory game")
		return
	}

	outcome, err := session.Memory.Flip(req.CardID)
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
		return
	}
	if outcome.Checking {
		outcome, err = session.Memory.Resolve()
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not resolve pair", err)
			return
		}
	}

	utils.Success(w, map[string]any{
		"outcome": outcome,
		"state":   session.Memory.State(),
	})
}

// MemoryNextRound passe à la manche suivante
func MemoryNextRound(w http.ResponseWriter, r *http.Request) {
	session := gameSession(w, r)
	if session == nil {
		return
	}

	session.Lock()
	defer session.Unlock()

	if session.Memory == nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "session is not a memory game")
		return
	}
	if err := session.Memory.NextRound(); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.Success(w, session.Memory.State())
}

// ---- Bataille de frappe ----

// battlePageWords charge une page de mots du bucket, ordre stable
func battlePageWords(bucket hsk.Bucket, pageNumber int) ([]game.Word, int, error) {
	words, err := fetchGameWords(bucket, false)
	if err != nil {
		return nil, 0, err
	}

	page := paging.Normalize(pageNumber, game.BattleWordsPerPage, game.BattleWordsPerPage)
	return paging.Slice(words, page), paging.TotalPages(len(words), page.Limit), nil
}

// StartBattle démarre une bataille de frappe sur une page du bucket
func StartBattle(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req StartGameRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bucket, err := hsk.ParseBucket(req.Level)
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
		return
	}

	words, totalPages, err := battlePageWords(bucket, req.Page)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load game vocabulary", err)
		return
	}

	session, err := games.StartBattle(user.ID, words)
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
		return
	}

	session.Lock()
	defer session.Unlock()

	utils.Success(w, map[string]any{
		"sessionId":  session.ID,
		"level":      bucket.ID,
		"totalPages": totalPages,
		"state":      session.Battle.State(),
	})
}

// BattleAttackRequest est le corps d'une frappe
type BattleAttackRequest struct {
	Input string `json:"input"`
}

// BattleAttack compare la saisie au mot courant (hanzi, insensible à la
// casse) et met le score à jour
func BattleAttack(w http.ResponseWriter, r *http.Request) {
	session := gameSession(w, r)
	if session == nil {
		return
	}

	var req BattleAttackRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session.Lock()
	defer session.Unlock()

	if session.Battle == nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "session is not a typing battle")
		return
	}

	outcome, err := session.Battle.Attack(req.Input)
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.Success(w, map[string]any{
		"outcome": outcome,
		"state":   session.Battle.State(),
	})
}

// BattleSkip abandonne le mot courant: passage au suivant, série remise
// à zéro
func BattleSkip(w http.ResponseWriter, r *http.Request) {
	session := gameSession(w, r)
	if session == nil {
		return
	}

	session.Lock()
	defer session.Unlock()

	if session.Battle == nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "session is not a typing battle")
		return
	}

	outcome, err := session.Battle.Skip()
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.Success(w, map[string]any{
		"outcome": outcome,
		"state":   session.Battle.State(),
	})
}

// BattleLoadPage charge une autre page de mots dans la bataille en cours.
// Le score et la série survivent au changement de page
func BattleLoadPage(w http.ResponseWriter, r *http.Request) {
	session := gameSession(w, r)
	if session == nil {
		return
	}

	var req StartGameRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bucket, err := hsk.ParseBucket(req.Level)
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
		return
	}

	words, totalPages, err := battlePageWords(bucket, req.Page)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load game vocabulary", err)
		return
	}
	if len(words) == 0 {
		utils.ErrorSimple(w, http.StatusBadRequest, "page "+strconv.Itoa(req.Page)+" has no words")
		return
	}

	session.Lock()
	defer session.Unlock()

	if session.Battle == nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "session is not a typing battle")
		return
	}
	if err := session.Battle.LoadPage(words); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.Success(w, map[string]any{
		"totalPages": totalPages,
		"state":      session.Battle.State(),
	})
}
