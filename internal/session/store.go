// Package session provides the in-memory conversation session store.
//
// Sessions are volatile: they live for the process lifetime and are dropped
// on shutdown. Mutations against unknown session ids are silent no-ops; the
// boolean returns let callers observe the miss without treating it as an
// error.
package session

import (
	"log/slog"
	"sync"
	"time"
)

// Entry is one processed conversation turn. Immutable once appended.
type Entry struct {
	Timestamp   time.Time `json:"timestamp"`
	UserMessage string    `json:"user_message"`
	AIResponse  string    `json:"ai_response"`
	ToolsUsed   []string  `json:"tools_used"`
}

// Session is a snapshot of one conversation's state. Values returned by the
// store are copies; mutating them does not affect the stored record.
type Session struct {
	ID               string         `json:"session_id"`
	CreatedAt        time.Time      `json:"created_at"`
	Preferences      map[string]any `json:"preferences"`
	FinancialProfile map[string]any `json:"financial_profile"`
	History          []Entry        `json:"conversation_history"`
}

// record is the mutable stored form. Its mutex guards history and both maps
// so concurrent turns on the same session cannot lose updates; turns on
// different sessions only contend on the store map itself.
type record struct {
	mu        sync.Mutex
	id        string
	createdAt time.Time
	prefs     map[string]any
	profile   map[string]any
	history   []Entry
}

// Store maps session ids to session records.
type Store struct {
	mu         sync.RWMutex
	sessions   map[string]*record
	maxHistory int
	logger     *slog.Logger
}

// NewStore creates a store. maxHistory bounds per-session history length:
// appends beyond the limit evict the oldest entries. Zero means unbounded.
func NewStore(maxHistory int, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		sessions:   make(map[string]*record),
		maxHistory: maxHistory,
		logger:     logger,
	}
}

// GetOrCreate returns the session with the given id, creating it with the
// supplied preferences if it does not exist. Never fails; preferences are
// stored as given, so callers validate them against the schema first.
func (s *Store) GetOrCreate(id string, preferences map[string]any) Session {
	s.mu.Lock()
	rec, ok := s.sessions[id]
	if !ok {
		rec = &record{
			id:        id,
			createdAt: time.Now(),
			prefs:     cloneMap(preferences),
			profile:   make(map[string]any),
		}
		s.sessions[id] = rec
		s.logger.Info("created new session", "session_id", id)
	}
	s.mu.Unlock()

	return rec.snapshot()
}

// Get returns a snapshot of the session, or false if the id is unknown.
func (s *Store) Get(id string) (Session, bool) {
	s.mu.RLock()
	rec, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return Session{}, false
	}
	return rec.snapshot(), true
}

// Append adds an entry to the session history. Returns false (and does
// nothing) if the id is unknown. When the store has a history limit, only
// the most recent entries are kept.
func (s *Store) Append(id string, entry Entry) bool {
	s.mu.RLock()
	rec, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return false
	}

	rec.mu.Lock()
	rec.history = append(rec.history, entry)
	if s.maxHistory > 0 && len(rec.history) > s.maxHistory {
		rec.history = rec.history[len(rec.history)-s.maxHistory:]
	}
	rec.mu.Unlock()
	return true
}

// MergePreferences shallow-merges the given keys into session preferences
// after validating them against the preference schema. Returns false if the
// id is unknown.
func (s *Store) MergePreferences(id string, preferences map[string]any) (bool, error) {
	if err := ValidatePreferences(preferences); err != nil {
		return false, err
	}
	return s.merge(id, preferences, func(r *record) map[string]any { return r.prefs }), nil
}

// MergeProfile shallow-merges the given keys into the financial profile
// after validating them against the profile schema. Returns false if the id
// is unknown.
func (s *Store) MergeProfile(id string, profile map[string]any) (bool, error) {
	if err := ValidateProfile(profile); err != nil {
		return false, err
	}
	return s.merge(id, profile, func(r *record) map[string]any { return r.profile }), nil
}

func (s *Store) merge(id string, partial map[string]any, target func(*record) map[string]any) bool {
	s.mu.RLock()
	rec, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return false
	}

	rec.mu.Lock()
	dst := target(rec)
	for k, v := range partial {
		dst[k] = v
	}
	rec.mu.Unlock()
	return true
}

// Delete removes a session. Idempotent; returns whether a record existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if ok {
		s.logger.Info("deleted session", "session_id", id)
	}
	return ok
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (r *record) snapshot() Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	history := make([]Entry, len(r.history))
	copy(history, r.history)

	return Session{
		ID:               r.id,
		CreatedAt:        r.createdAt,
		Preferences:      cloneMap(r.prefs),
		FinancialProfile: cloneMap(r.profile),
		History:          history,
	}
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
