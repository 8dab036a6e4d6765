package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// sessionTTL: une partie abandonnée est purgée au bout de deux heures
const sessionTTL = 2 * time.Hour

// Session porte une partie en cours. Un seul des trois moteurs est non-nil
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time

	mu       sync.Mutex
	Matching *MatchingGame
	Memory   *MemoryGame
	Battle   *BattleGame
}

// Lock verrouille la session le temps d'un événement de jeu
func (s *Session) Lock() { s.mu.Lock() }

// Unlock libère la session
func (s *Session) Unlock() { s.mu.Unlock() }

// Manager garde les parties en cours en mémoire. L'état est volontairement
// éphémère: un redémarrage du serveur remet tous les jeux à zéro, seule la
// progression flashcards persiste en base
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

func (m *Manager) create(userID string) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	m.mu.Lock()
	m.prune()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// prune supprime les parties expirées. Appelé sous verrou
func (m *Manager) prune() {
	cutoff := time.Now().Add(-sessionTTL)
	for id, s := range m.sessions {
		if s.CreatedAt.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}

// StartMatching crée une partie d'association
func (m *Manager) StartMatching(userID string, words []Word) (*Session, error) {
	g, err := NewMatchingGame(words)
	if err != nil {
		return nil, err
	}
	s := m.create(userID)
	s.Matching = g
	return s, nil
}

// StartMemory crée une partie de memory
func (m *Manager) StartMemory(userID string, words []Word) (*Session, error) {
	g, err := NewMemoryGame(words)
	if err != nil {
		return nil, err
	}
	s := m.create(userID)
	s.Memory = g
	return s, nil
}

// StartBattle crée une bataille de frappe
func (m *Manager) StartBattle(userID string, words []Word) (*Session, error) {
	g, err := NewBattleGame(words)
	if err != nil {
		return nil, err
	}
	s := m.create(userID)
	s.Battle = g
	return s, nil
}

// Get retourne la session d'un joueur. Une session ne peut être jouée que
// par l'utilisateur qui l'a créée
func (m *Manager) Get(id, userID string) (*Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("game session not found")
	}
	if s.UserID != userID {
		return nil, fmt.Errorf("game session belongs to another user")
	}
	return s, nil
}

// Delete supprime une session (abandon explicite)
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
