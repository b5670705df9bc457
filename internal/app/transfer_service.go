package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"weightlog/internal/atomicfile"
	"weightlog/internal/codec"
	"weightlog/internal/domain"
)

// TransferService handles export, import, backup and restore.
type TransferService struct {
	store *Store
	csv   codec.CSVReader
}

// NewTransferService creates a TransferService on top of the given store.
func NewTransferService(store *Store) *TransferService {
	return &TransferService{
		store: store,
		csv:   codec.CSVReader{NewID: uuid.NewString, Now: time.Now},
	}
}

// ExportTo writes all records to w in the given format ("json" or "csv").
func (s *TransferService) ExportTo(ctx context.Context, format string, w io.Writer) error {
	data, err := s.render(ctx, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Export writes all records to the file at path. Nothing is written for an
// unsupported format.
func (s *TransferService) Export(ctx context.Context, format, path string) error {
	data, err := s.render(ctx, format)
	if err != nil {
		return err
	}
	if err := atomicfile.Write(path, data, 0o644); err != nil { //nolint:gosec // export is meant to be shared
		return fmt.Errorf("failed to write export file: %w", err)
	}
	slog.InfoContext(ctx, "exported records", "format", format, "path", path)
	return nil
}

func (s *TransferService) render(ctx context.Context, format string) ([]byte, error) {
	var data []byte
	err := s.store.View(ctx, func(doc *domain.Document) error {
		var err error
		data, err = codec.EncodeExport(format, doc.Records)
		return err
	})
	return data, err
}

// ImportJSONData merges records from a JSON document or record array.
func (s *TransferService) ImportJSONData(ctx context.Context, data []byte, policy domain.ConflictResolution) (*domain.ImportResult, error) {
	recs, err := codec.DecodeImportJSON(data)
	if err != nil {
		return nil, err
	}
	cands := make([]domain.Candidate, len(recs))
	for i, r := range recs {
		cands[i] = domain.Candidate{Record: r}
	}
	return s.merge(ctx, "json", cands, policy)
}

// ImportCSVData merges records parsed from CSV text.
func (s *TransferService) ImportCSVData(ctx context.Context, data []byte, policy domain.ConflictResolution) (*domain.ImportResult, error) {
	return s.merge(ctx, "csv", s.csv.Decode(data), policy)
}

// ImportJSON reads path and merges its records into the store.
func (s *TransferService) ImportJSON(ctx context.Context, path string, policy domain.ConflictResolution) (*domain.ImportResult, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return s.ImportJSONData(ctx, data, policy)
}

// ImportCSV reads path and merges its rows into the store.
func (s *TransferService) ImportCSV(ctx context.Context, path string, policy domain.ConflictResolution) (*domain.ImportResult, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return s.ImportCSVData(ctx, data, policy)
}

func (s *TransferService) merge(ctx context.Context, source string, cands []domain.Candidate, policy domain.ConflictResolution) (*domain.ImportResult, error) {
	var res domain.ImportResult
	err := s.store.Update(ctx, func(doc *domain.Document) (*domain.Document, error) {
		next, r := domain.Merge(doc, cands, policy)
		res = r
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "import finished",
		"source", source,
		"policy", policy.String(),
		"success", res.Success,
		"failed", res.Failed,
		"skipped", res.Skipped,
	)
	return &res, nil
}

// BackupTo writes the whole document to w.
func (s *TransferService) BackupTo(ctx context.Context, w io.Writer) error {
	data, err := s.backupBytes(ctx)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// CreateBackup writes the whole document to the file at path. The document
// is read before the target is touched, so path may be the store's own file
// and an existing backup survives a failed read.
func (s *TransferService) CreateBackup(ctx context.Context, path string) error {
	data, err := s.backupBytes(ctx)
	if err != nil {
		return err
	}
	if err := atomicfile.Write(path, data, 0o644); err != nil { //nolint:gosec // backups are the owner's files
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	slog.InfoContext(ctx, "backup created", "path", path)
	return nil
}

func (s *TransferService) backupBytes(ctx context.Context) ([]byte, error) {
	var data []byte
	err := s.store.View(ctx, func(doc *domain.Document) error {
		var err error
		data, err = codec.EncodeDocument(doc)
		if err != nil {
			return fmt.Errorf("failed to serialize data: %w", err)
		}
		return nil
	})
	return data, err
}

// RestoreData replaces the stored document with the backup in data. No
// merge takes place.
func (s *TransferService) RestoreData(ctx context.Context, data []byte) error {
	doc, err := codec.DecodeDocument(data)
	if err != nil {
		return fmt.Errorf("failed to parse backup file: %w", err)
	}
	return s.store.Replace(ctx, doc)
}

// RestoreBackup replaces the stored document with the backup at path.
func (s *TransferService) RestoreBackup(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}
	if err := s.RestoreData(ctx, data); err != nil {
		return err
	}
	slog.InfoContext(ctx, "backup restored", "path", path)
	return nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}
