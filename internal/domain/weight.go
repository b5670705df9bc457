package domain

import "context"

// Accepted weight range in kilograms for imported records.
const (
	MinWeightKg = 20.0
	MaxWeightKg = 300.0
)

// DocumentVersion is the version tag written into new documents.
const DocumentVersion = 1

// WeightRecord represents a single dated weight measurement.
type WeightRecord struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"`
	Weight    float64 `json:"weight"`
	Note      string  `json:"note,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// UserProfile holds the owner's body data. At most one per document.
type UserProfile struct {
	Height     float64 `json:"height"`
	Gender     string  `json:"gender,omitempty"`
	WeightUnit string  `json:"weight_unit,omitempty"`
}

// Goal is the owner's target weight. At most one per document.
type Goal struct {
	TargetWeight float64 `json:"target_weight"`
	TargetDate   string  `json:"target_date,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// Document is the whole persisted state. It is always read and written in
// full.
type Document struct {
	Records []WeightRecord `json:"records"`
	Profile *UserProfile   `json:"profile,omitempty"`
	Goal    *Goal          `json:"goal,omitempty"`
	Version int            `json:"version"`
}

// ImportResult summarises a bulk import.
type ImportResult struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

// DocumentRepository is the port for whole-document persistence.
type DocumentRepository interface {
	Load(ctx context.Context) (*Document, error)
	Save(ctx context.Context, doc *Document) error
}

// ValidWeight reports whether w lies in the accepted import range.
func ValidWeight(w float64) bool {
	return w >= MinWeightKg && w <= MaxWeightKg
}
