package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"weightlog/internal/domain"
)

// RecordService encapsulates direct record, profile and goal edits.
type RecordService struct {
	store *Store
	newID func() string
	now   func() time.Time
}

// NewRecordService creates a RecordService on top of the given store.
func NewRecordService(store *Store) *RecordService {
	return &RecordService{store: store, newID: uuid.NewString, now: time.Now}
}

// ListRecords returns all records, newest first.
func (s *RecordService) ListRecords(ctx context.Context) ([]domain.WeightRecord, error) {
	var out []domain.WeightRecord
	err := s.store.View(ctx, func(doc *domain.Document) error {
		out = doc.Records
		return nil
	})
	return out, err
}

// GetProfile returns the stored profile, or nil.
func (s *RecordService) GetProfile(ctx context.Context) (*domain.UserProfile, error) {
	var out *domain.UserProfile
	err := s.store.View(ctx, func(doc *domain.Document) error {
		out = doc.Profile
		return nil
	})
	return out, err
}

// GetGoal returns the stored goal, or nil.
func (s *RecordService) GetGoal(ctx context.Context) (*domain.Goal, error) {
	var out *domain.Goal
	err := s.store.View(ctx, func(doc *domain.Document) error {
		out = doc.Goal
		return nil
	})
	return out, err
}

// SaveRecord upserts r by date. The weight is stored as given; only the
// import path enforces bounds. A missing id or created_at is generated.
func (s *RecordService) SaveRecord(ctx context.Context, r domain.WeightRecord) (domain.WeightRecord, error) {
	if r.ID == "" {
		r.ID = s.newID()
	}
	if r.CreatedAt == "" {
		r.CreatedAt = s.timestamp()
	}
	err := s.store.Update(ctx, func(doc *domain.Document) (*domain.Document, error) {
		doc.Upsert(r)
		return doc, nil
	})
	if err != nil {
		return r, err
	}
	slog.DebugContext(ctx, "record saved", "id", r.ID, "date", r.Date)
	return r, nil
}

// DeleteRecord removes every record with the given id. Deleting an unknown
// id is not an error.
func (s *RecordService) DeleteRecord(ctx context.Context, id string) error {
	var n int
	err := s.store.Update(ctx, func(doc *domain.Document) (*domain.Document, error) {
		n = doc.DeleteByID(id)
		return doc, nil
	})
	if err != nil {
		return err
	}
	slog.DebugContext(ctx, "record deleted", "id", id, "removed", n)
	return nil
}

// UpdateProfile overwrites the profile.
func (s *RecordService) UpdateProfile(ctx context.Context, p domain.UserProfile) error {
	return s.store.Update(ctx, func(doc *domain.Document) (*domain.Document, error) {
		doc.Profile = &p
		return doc, nil
	})
}

// UpdateGoal overwrites the goal, stamping created_at when it is missing.
func (s *RecordService) UpdateGoal(ctx context.Context, g domain.Goal) error {
	if g.CreatedAt == "" {
		g.CreatedAt = s.timestamp()
	}
	return s.store.Update(ctx, func(doc *domain.Document) (*domain.Document, error) {
		doc.Goal = &g
		return doc, nil
	})
}

func (s *RecordService) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}
