package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"weightlog/internal/domain"
)

func TestLoad_MissingFileIsEmptyDocument(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "nope", "data.json"))
	doc, err := r.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(domain.NewDocument(), doc); diff != "" {
		t.Errorf("unexpected document (-want +got):\n%s", diff)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), ".weightlogger", "data.json")
	r := New(path)

	doc := &domain.Document{
		Records: []domain.WeightRecord{
			{ID: "2", Date: "2024-01-02", Weight: 70, Note: "n", CreatedAt: "t2"},
			{ID: "1", Date: "2024-01-01", Weight: 71, CreatedAt: "t1"},
		},
		Profile: &domain.UserProfile{Height: 170},
		Goal:    &domain.Goal{TargetWeight: 65, CreatedAt: "t0"},
		Version: 1,
	}
	if err := r.Save(ctx, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := r.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(doc, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the data file, got %d entries", len(entries))
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := New(path).Load(context.Background())
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !errors.Is(err, domain.ErrInvalidDocument) {
		t.Errorf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestSave_OverwritesWholeFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")
	r := New(path)

	big := domain.NewDocument()
	for _, d := range []string{"2024-01-03", "2024-01-02", "2024-01-01"} {
		big.Records = append(big.Records, domain.WeightRecord{ID: d, Date: d, Weight: 70, CreatedAt: "t"})
	}
	if err := r.Save(ctx, big); err != nil {
		t.Fatal(err)
	}
	if err := r.Save(ctx, domain.NewDocument()); err != nil {
		t.Fatal(err)
	}
	got, err := r.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Records) != 0 {
		t.Errorf("expected empty document after overwrite, got %d records", len(got.Records))
	}
}

func TestWatch_FiresOnSave(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	r := New(path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func() {
			select {
			case fired <- struct{}{}:
			default:
			}
		})
	}()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-fired:
			cancel()
			if err := <-done; err != nil {
				t.Fatalf("Watch: %v", err)
			}
			return
		case <-tick.C:
			// The watcher may not be registered yet; keep saving until it fires.
			if err := r.Save(context.Background(), domain.NewDocument()); err != nil {
				t.Fatal(err)
			}
		case <-deadline:
			t.Fatal("watch callback never fired")
		}
	}
}
