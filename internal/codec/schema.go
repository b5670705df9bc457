package codec

import (
	"encoding/json"

	"github.com/invopop/jsonschema"

	"weightlog/internal/domain"
)

// DocumentSchema returns the JSON Schema of the backing document and backups.
func DocumentSchema() ([]byte, error) {
	r := &jsonschema.Reflector{ExpandedStruct: true}
	s := r.Reflect(&domain.Document{})
	s.Title = "weightlog document"
	return json.MarshalIndent(s, "", "  ")
}
