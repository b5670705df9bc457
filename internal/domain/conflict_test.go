package domain_test

import (
	"testing"

	"weightlog/internal/domain"
)

func TestParseConflictResolution(t *testing.T) {
	tests := []struct {
		in   string
		want domain.ConflictResolution
	}{
		{"overwrite", domain.Overwrite},
		{"keep", domain.Keep},
		{"skip", domain.Skip},
		{"", domain.Skip},
		{"Overwrite", domain.Skip},
		{"merge", domain.Skip},
	}
	for _, tc := range tests {
		if got := domain.ParseConflictResolution(tc.in); got != tc.want {
			t.Errorf("ParseConflictResolution(%q) = %v; want %v", tc.in, got, tc.want)
		}
	}
}

func storeWith(records ...domain.WeightRecord) *domain.Document {
	doc := domain.NewDocument()
	doc.Records = append(doc.Records, records...)
	return doc
}

func TestMerge_ConflictPolicies(t *testing.T) {
	existing := rec("old", "2024-01-01", 70)
	incoming := []domain.Candidate{{Record: rec("new", "2024-01-01", 75)}}

	tests := []struct {
		name        string
		policy      domain.ConflictResolution
		wantWeights []float64
		wantSuccess int
		wantSkipped int
	}{
		{"overwrite", domain.Overwrite, []float64{75}, 1, 0},
		{"skip", domain.Skip, []float64{70}, 0, 1},
		{"keep", domain.Keep, []float64{70, 75}, 1, 0},
		{"unknown falls back to skip", domain.ParseConflictResolution("bogus"), []float64{70}, 0, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := storeWith(existing)
			out, res := domain.Merge(doc, incoming, tc.policy)

			if res.Success != tc.wantSuccess || res.Skipped != tc.wantSkipped || res.Failed != 0 {
				t.Errorf("unexpected result: %+v", res)
			}
			if len(out.Records) != len(tc.wantWeights) {
				t.Fatalf("expected %d records, got %d", len(tc.wantWeights), len(out.Records))
			}
			for i, w := range tc.wantWeights {
				if out.Records[i].Date != "2024-01-01" || out.Records[i].Weight != w {
					t.Errorf("record %d = %+v; want weight %v on 2024-01-01", i, out.Records[i], w)
				}
			}
			if len(doc.Records) != 1 || doc.Records[0].Weight != 70 {
				t.Errorf("merge modified its input: %v", doc.Records)
			}
		})
	}
}

func TestMerge_ValidationBoundary(t *testing.T) {
	candidates := []domain.Candidate{
		{Record: rec("a", "2024-01-01", 19.999)},
		{Record: rec("b", "2024-01-02", 20.0)},
		{Record: rec("c", "2024-01-03", 300.0)},
		{Record: rec("d", "2024-01-04", 300.001)},
	}
	out, res := domain.Merge(domain.NewDocument(), candidates, domain.Skip)

	if res.Success != 2 || res.Failed != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	want := []string{
		"Invalid weight value: 19.999 on 2024-01-01",
		"Invalid weight value: 300.001 on 2024-01-04",
	}
	if len(res.Errors) != len(want) {
		t.Fatalf("expected %d errors, got %v", len(want), res.Errors)
	}
	for i := range want {
		if res.Errors[i] != want[i] {
			t.Errorf("error %d = %q; want %q", i, res.Errors[i], want[i])
		}
	}
	if got := dates(out.Records); len(got) != 2 || got[0] != "2024-01-03" || got[1] != "2024-01-02" {
		t.Errorf("unexpected stored dates: %v", got)
	}
}

func TestMerge_SameBatchDuplicatesBothAdded(t *testing.T) {
	candidates := []domain.Candidate{
		{Record: rec("a", "2024-02-01", 70)},
		{Record: rec("b", "2024-02-01", 71)},
	}
	out, res := domain.Merge(domain.NewDocument(), candidates, domain.Skip)

	if res.Success != 2 || res.Skipped != 0 {
		t.Fatalf("expected both staged, got %+v", res)
	}
	if len(out.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out.Records))
	}
}

func TestMerge_RowErrorsKeepInputOrder(t *testing.T) {
	candidates := []domain.Candidate{
		{Source: "Line 2", Err: "Invalid format"},
		{Source: "Line 3", Record: rec("a", "2024-03-01", 10)},
		{Source: "Line 4", Record: rec("b", "2024-03-02", 70)},
		{Source: "Line 5", Err: "Invalid weight value"},
	}
	out, res := domain.Merge(domain.NewDocument(), candidates, domain.Overwrite)

	if res.Failed != 3 || res.Success != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	want := []string{
		"Line 2: Invalid format",
		"Line 3: Invalid weight value: 10 on 2024-03-01",
		"Line 5: Invalid weight value",
	}
	for i := range want {
		if res.Errors[i] != want[i] {
			t.Errorf("error %d = %q; want %q", i, res.Errors[i], want[i])
		}
	}
	if len(out.Records) != 1 {
		t.Errorf("expected 1 record, got %d", len(out.Records))
	}
}

func TestMerge_ResultSorted(t *testing.T) {
	doc := storeWith(rec("x", "2024-01-10", 70), rec("y", "2024-01-01", 70))
	candidates := []domain.Candidate{
		{Record: rec("a", "2024-01-05", 70)},
		{Record: rec("b", "2024-01-20", 70)},
	}
	out, _ := domain.Merge(doc, candidates, domain.Keep)
	assertSorted(t, out.Records)
	if out.Records[0].ID != "b" {
		t.Errorf("expected newest first, got %v", dates(out.Records))
	}
}

func TestMerge_EmptyResultHasNonNilErrors(t *testing.T) {
	_, res := domain.Merge(domain.NewDocument(), nil, domain.Skip)
	if res.Errors == nil {
		t.Error("expected non-nil errors slice")
	}
}
