package render

import (
	"encoding/json"
	"io"

	"github.com/frherrer/docsuite/internal/domain"
)

// WriteJSON writes suite in the serialized form read back by the JSON
// parser.
func WriteJSON(w io.Writer, suite *domain.TestSuite) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(suite)
}

// WriteResourcesJSON writes parsed resource files as a JSON array.
func WriteResourcesJSON(w io.Writer, resources []*domain.ResourceFile) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resources)
}
