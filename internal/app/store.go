// Package app holds the application services and business logic.
package app

import (
	"context"
	"sync"

	"weightlog/internal/domain"
)

// Store runs load, mutate and save cycles against a DocumentRepository.
// Every call loads the document fresh and saves it in full; the mutex only
// keeps calls made through this Store from interleaving.
type Store struct {
	mu   sync.Mutex
	repo domain.DocumentRepository
}

// NewStore creates a Store backed by the given repository.
func NewStore(repo domain.DocumentRepository) *Store {
	return &Store{repo: repo}
}

// View loads the document and passes it to fn without saving.
func (s *Store) View(ctx context.Context, fn func(doc *domain.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	return fn(doc)
}

// Update loads the document, lets fn produce the next version and saves it.
// Nothing is saved if fn fails.
func (s *Store) Update(ctx context.Context, fn func(doc *domain.Document) (*domain.Document, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	next, err := fn(doc)
	if err != nil {
		return err
	}
	return s.repo.Save(ctx, next)
}

// Replace saves doc over whatever is stored, without loading first.
func (s *Store) Replace(ctx context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Save(ctx, doc)
}
