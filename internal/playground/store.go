package playground

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/stylescout/stylescout/internal/llm"
)

// ErrSessionNotFound is returned when no session exists for an ID.
var ErrSessionNotFound = errors.New("session not found")

// Store is a mutex-guarded in-memory session store. Sessions are not
// persisted: closing or reloading the app loses selection state.
type Store struct {
	mu sync.Mutex
	m  map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{m: make(map[string]*Session)}
}

// Create seeds a new session with the uploaded photo and its analysis and
// returns a copy.
func (s *Store) Create(image []byte, mimeType string, mode llm.AnalysisMode, analysis *llm.AnalysisResult) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	session := &Session{
		ID:        newSessionID(),
		CreatedAt: now,
		UpdatedAt: now,
		Image:     image,
		MIMEType:  mimeType,
		Analysis:  analysis,
		Mode:      mode,
		ViewMode:  ViewRecommended,
		Phase:     PhaseIdle,
	}
	s.m[session.ID] = session
	return *session
}

// Get returns a copy of the session with the given ID.
func (s *Store) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.m[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return *session, nil
}

// Update applies fn to the session under the store lock and returns a copy
// of the updated state. An error from fn aborts without touching UpdatedAt.
func (s *Store) Update(id string, fn func(*Session) error) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.m[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	if fn != nil {
		if err := fn(session); err != nil {
			return *session, err
		}
	}
	session.UpdatedAt = time.Now()
	return *session, nil
}

// Delete removes a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
}

// Sweep drops sessions that have not been touched within maxAge and returns
// how many were removed.
func (s *Store) Sweep(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, session := range s.m {
		if session.UpdatedAt.Before(cutoff) {
			delete(s.m, id)
			removed++
		}
	}
	if removed > 0 {
		log.Debug().Int("removed", removed).Msg("swept expired playground sessions")
	}
	return removed
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}

func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing is unrecoverable for ID generation
		panic(err)
	}
	return hex.EncodeToString(b)
}
