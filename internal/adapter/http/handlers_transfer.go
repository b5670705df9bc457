package adapthttp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"weightlog/internal/codec"
	"weightlog/internal/domain"
)

type pathRequest struct {
	Path string `json:"path"`
}

type exportRequest struct {
	Format string `json:"format"`
	Path   string `json:"path"`
}

type importRequest struct {
	Path       string `json:"path"`
	Resolution struct {
		OnConflict string `json:"on_conflict"`
	} `json:"resolution"`
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		format := stringQuery(r, "format", codec.FormatJSON)
		var buf bytes.Buffer
		if err := s.transfer.ExportTo(ctx, format, &buf); err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		contentType := "application/json; charset=utf-8"
		if format == codec.FormatCSV {
			contentType = "text/csv; charset=utf-8"
		}
		download(w, contentType, "weight-records."+format, buf.Bytes())

	case http.MethodPost:
		var body exportRequest
		if err := parseJSON(r, &body); err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		path, err := s.serverPath(body.Path)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		if err := s.transfer.Export(ctx, body.Format, path); err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

type importFunc func(ctx context.Context, path string, policy domain.ConflictResolution) (*domain.ImportResult, error)

func (s *Server) handleImport(fn importFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var body importRequest
		if err := parseJSON(r, &body); err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		path, err := s.serverPath(body.Path)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		res, err := fn(r.Context(), path, domain.ParseConflictResolution(body.Resolution.OnConflict))
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func (s *Server) handleBackup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		var buf bytes.Buffer
		if err := s.transfer.BackupTo(ctx, &buf); err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		download(w, "application/json; charset=utf-8", "weight-backup.json", buf.Bytes())

	case http.MethodPost:
		var body pathRequest
		if err := parseJSON(r, &body); err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		path, err := s.serverPath(body.Path)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		if err := s.transfer.CreateBackup(ctx, path); err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleRestore accepts either {"path": ...} naming a backup on the server
// or, with ?upload=1, the backup document itself as the body.
func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	if r.URL.Query().Get("upload") != "" {
		if err := requireJSON(r); err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.uploadLimit))
		if err != nil {
			err = fmt.Errorf("failed to read body: %w", err)
			writeError(w, statusFor(err), err)
			return
		}
		if err := s.transfer.RestoreData(ctx, data); err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}

	var body pathRequest
	if err := parseJSON(r, &body); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	path, err := s.serverPath(body.Path)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if err := s.transfer.RestoreBackup(ctx, path); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// serverPath resolves a client-supplied file name inside the configured file
// root. Absolute names and names climbing out of the root are rejected.
func (s *Server) serverPath(name string) (string, error) {
	if s.fileRoot == "" {
		return "", errFileAccessOff
	}
	if name == "" {
		return "", errPathRequired
	}
	if !filepath.IsLocal(name) {
		return "", fmt.Errorf("%w: %q", errPathOutsideRoot, name)
	}
	return filepath.Join(s.fileRoot, name), nil
}

func download(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
