package codec

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"spooffinder/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONEncoder writes results as an indented JSON array
type JSONEncoder struct{}

// NewJSONEncoder creates a new JSON encoder
func NewJSONEncoder() *JSONEncoder {
	return &JSONEncoder{}
}

// Format returns the encoder format identifier
func (e *JSONEncoder) Format() string {
	return "json"
}

// Encode writes the results to w as JSON
func (e *JSONEncoder) Encode(results []domain.EnrichmentResult, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(results); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
