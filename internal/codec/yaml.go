package codec

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"spooffinder/internal/domain"
)

// YAMLEncoder writes results as a YAML document
type YAMLEncoder struct{}

// NewYAMLEncoder creates a new YAML encoder
func NewYAMLEncoder() *YAMLEncoder {
	return &YAMLEncoder{}
}

// Format returns the encoder format identifier
func (e *YAMLEncoder) Format() string {
	return "yaml"
}

// Encode writes the results to w as YAML
func (e *YAMLEncoder) Encode(results []domain.EnrichmentResult, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(results); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
