// Package codec encodes and decodes the JSON and CSV forms of weight data:
// the backing document, backups, exports and import payloads.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"weightlog/internal/domain"
)

// Wire shapes with pointer fields so that missing required fields are
// detected instead of silently decoding as zero values.

type wireRecord struct {
	ID        *string  `json:"id"`
	Date      *string  `json:"date"`
	Weight    *float64 `json:"weight"`
	Note      *string  `json:"note"`
	CreatedAt *string  `json:"created_at"`
}

type wireProfile struct {
	Height     *float64 `json:"height"`
	Gender     *string  `json:"gender"`
	WeightUnit *string  `json:"weight_unit"`
}

type wireGoal struct {
	TargetWeight *float64 `json:"target_weight"`
	TargetDate   *string  `json:"target_date"`
	CreatedAt    *string  `json:"created_at"`
}

type wireDocument struct {
	Records *[]wireRecord `json:"records"`
	Profile *wireProfile  `json:"profile"`
	Goal    *wireGoal     `json:"goal"`
	Version *int          `json:"version"`
}

func missing(field string) error {
	return fmt.Errorf("missing field `%s`", field)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (w wireRecord) record() (domain.WeightRecord, error) {
	switch {
	case w.ID == nil:
		return domain.WeightRecord{}, missing("id")
	case w.Date == nil:
		return domain.WeightRecord{}, missing("date")
	case w.Weight == nil:
		return domain.WeightRecord{}, missing("weight")
	case w.CreatedAt == nil:
		return domain.WeightRecord{}, missing("created_at")
	}
	return domain.WeightRecord{
		ID:        *w.ID,
		Date:      *w.Date,
		Weight:    *w.Weight,
		Note:      deref(w.Note),
		CreatedAt: *w.CreatedAt,
	}, nil
}

func records(ws []wireRecord) ([]domain.WeightRecord, error) {
	out := make([]domain.WeightRecord, 0, len(ws))
	for i, w := range ws {
		r, err := w.record()
		if err != nil {
			return nil, fmt.Errorf("records[%d]: %w", i, err)
		}
		out = append(out, r)
	}
	return out, nil
}

func (w wireDocument) document() (*domain.Document, error) {
	if w.Records == nil {
		return nil, missing("records")
	}
	if w.Version == nil {
		return nil, missing("version")
	}
	recs, err := records(*w.Records)
	if err != nil {
		return nil, err
	}
	doc := &domain.Document{Records: recs, Version: *w.Version}
	if p := w.Profile; p != nil {
		if p.Height == nil {
			return nil, fmt.Errorf("profile: %w", missing("height"))
		}
		doc.Profile = &domain.UserProfile{Height: *p.Height, Gender: deref(p.Gender), WeightUnit: deref(p.WeightUnit)}
	}
	if g := w.Goal; g != nil {
		if g.TargetWeight == nil {
			return nil, fmt.Errorf("goal: %w", missing("target_weight"))
		}
		if g.CreatedAt == nil {
			return nil, fmt.Errorf("goal: %w", missing("created_at"))
		}
		doc.Goal = &domain.Goal{TargetWeight: *g.TargetWeight, TargetDate: deref(g.TargetDate), CreatedAt: *g.CreatedAt}
	}
	return doc, nil
}

// DecodeDocument parses data strictly as a full document. Errors wrap
// domain.ErrInvalidDocument.
func DecodeDocument(data []byte) (*domain.Document, error) {
	var w wireDocument
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
	}
	doc, err := w.document()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
	}
	return doc, nil
}

// DecodeRecords parses data as a bare JSON array of records.
func DecodeRecords(data []byte) ([]domain.WeightRecord, error) {
	var ws *[]wireRecord
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, errors.New("expected an array of records")
	}
	return records(*ws)
}

// DecodeImportJSON extracts records from an import payload. A full document
// is tried first, then a bare array of records.
func DecodeImportJSON(data []byte) ([]domain.WeightRecord, error) {
	attempts := []func([]byte) ([]domain.WeightRecord, error){
		func(b []byte) ([]domain.WeightRecord, error) {
			doc, err := DecodeDocument(b)
			if err != nil {
				return nil, err
			}
			return doc.Records, nil
		},
		DecodeRecords,
	}
	for _, attempt := range attempts {
		if recs, err := attempt(data); err == nil {
			return recs, nil
		}
	}
	return nil, domain.ErrInvalidImportFormat
}

// EncodeDocument renders the full document as indented JSON.
func EncodeDocument(doc *domain.Document) ([]byte, error) {
	out := *doc
	out.Normalize()
	return json.MarshalIndent(&out, "", "  ")
}

// EncodeRecordsJSON renders records as an indented JSON array.
func EncodeRecordsJSON(records []domain.WeightRecord) ([]byte, error) {
	if records == nil {
		records = []domain.WeightRecord{}
	}
	return json.MarshalIndent(records, "", "  ")
}
