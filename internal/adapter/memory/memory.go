// Package memory implements in-memory repositories for development and testing.
package memory

import (
	"context"
	"sync"
	"time"

	"weightlog/internal/domain"
)

// DB holds one document and the session table in memory.
type DB struct {
	mu       sync.Mutex
	doc      *domain.Document
	sessions map[string]*domain.Session

	saves int
}

// New creates a new in-memory database with an empty document.
func New() *DB {
	return &DB{
		doc:      domain.NewDocument(),
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.DocumentRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- DocumentRepository ---

// Load returns a copy of the stored document.
func (db *DB) Load(ctx context.Context) (*domain.Document, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.doc.Clone(), nil
}

// Save replaces the stored document with a copy of doc.
func (db *DB) Save(ctx context.Context, doc *domain.Document) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	c := doc.Clone()
	c.Normalize()
	db.doc = c
	db.saves++
	return nil
}

// Saves reports how many times Save has been called.
func (db *DB) Saves() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.saves
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, username, token string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		Username:  username,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token. Expired sessions are dropped and
// reported as absent.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		if time.Now().After(s.ExpiresAt) {
			delete(r.db.sessions, token)
			return nil, nil
		}
		c := *s
		return &c, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}
