package codec

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weightlog/internal/domain"
)

func sampleDocument() *domain.Document {
	return &domain.Document{
		Records: []domain.WeightRecord{
			{ID: "b", Date: "2024-01-02", Weight: 70.4, Note: "after run", CreatedAt: "2024-01-02T07:00:00Z"},
			{ID: "a", Date: "2024-01-01", Weight: 71, CreatedAt: "2024-01-01T07:00:00Z"},
		},
		Profile: &domain.UserProfile{Height: 175, Gender: "female", WeightUnit: "jin"},
		Goal:    &domain.Goal{TargetWeight: 65, TargetDate: "2024-06-01", CreatedAt: "2024-01-01T00:00:00Z"},
		Version: 1,
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := sampleDocument()
	data, err := EncodeDocument(doc)
	require.NoError(t, err)

	got, err := DecodeDocument(data)
	require.NoError(t, err)
	if diff := cmp.Diff(doc, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDocument_OmitsAbsentFields(t *testing.T) {
	data, err := EncodeDocument(&domain.Document{Version: 1})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.NotContains(t, raw, "profile")
	assert.NotContains(t, raw, "goal")
	assert.Equal(t, []any{}, raw["records"])
	assert.Contains(t, string(data), "\n  \"records\"")
}

func TestEncodeRecordsJSON_OmitsEmptyNote(t *testing.T) {
	data, err := EncodeRecordsJSON([]domain.WeightRecord{{ID: "a", Date: "2024-01-01", Weight: 70, CreatedAt: "t"}})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "note")
	assert.True(t, strings.HasPrefix(string(data), "[\n"))

	empty, err := EncodeRecordsJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))
}

func TestDecodeDocument_Strict(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bare array", `[{"id":"a","date":"2024-01-01","weight":70,"created_at":"t"}]`},
		{"missing version", `{"records":[]}`},
		{"missing records", `{"version":1}`},
		{"record missing id", `{"records":[{"date":"2024-01-01","weight":70,"created_at":"t"}],"version":1}`},
		{"profile missing height", `{"records":[],"profile":{"gender":"male"},"version":1}`},
		{"goal missing created_at", `{"records":[],"goal":{"target_weight":60},"version":1}`},
		{"not json", `hello`},
		{"fractional version", `{"records":[],"version":1.5}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeDocument([]byte(tc.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidDocument)
		})
	}
}

func TestDecodeDocument_IgnoresUnknownAndNullOptionals(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{"records":[],"profile":null,"goal":null,"version":2,"extra":true}`))
	require.NoError(t, err)
	assert.Nil(t, doc.Profile)
	assert.Nil(t, doc.Goal)
	assert.Equal(t, 2, doc.Version)
}

func TestDecodeImportJSON(t *testing.T) {
	t.Run("full document", func(t *testing.T) {
		data, err := EncodeDocument(sampleDocument())
		require.NoError(t, err)
		recs, err := DecodeImportJSON(data)
		require.NoError(t, err)
		assert.Len(t, recs, 2)
	})

	t.Run("bare array", func(t *testing.T) {
		recs, err := DecodeImportJSON([]byte(`[{"id":"x","date":"2024-05-01","weight":80.5,"note":"n","created_at":"t"}]`))
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, domain.WeightRecord{ID: "x", Date: "2024-05-01", Weight: 80.5, Note: "n", CreatedAt: "t"}, recs[0])
	})

	t.Run("object without version is not a document", func(t *testing.T) {
		_, err := DecodeImportJSON([]byte(`{"records":[]}`))
		assert.ErrorIs(t, err, domain.ErrInvalidImportFormat)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := DecodeImportJSON([]byte(`{{`))
		assert.ErrorIs(t, err, domain.ErrInvalidImportFormat)
	})

	t.Run("null", func(t *testing.T) {
		_, err := DecodeImportJSON([]byte(`null`))
		assert.ErrorIs(t, err, domain.ErrInvalidImportFormat)
	})
}

func TestDocumentSchema(t *testing.T) {
	data, err := DocumentSchema()
	require.NoError(t, err)

	var s map[string]any
	require.NoError(t, json.Unmarshal(data, &s))
	props, ok := s["properties"].(map[string]any)
	require.True(t, ok, "schema has no properties: %s", data)
	assert.Contains(t, props, "records")
	assert.Contains(t, props, "version")
}
