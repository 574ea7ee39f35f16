package codec

import (
	"io"

	"spooffinder/internal/domain"
)

// Encoder interface for writing enrichment results in various formats
type Encoder interface {
	Encode(results []domain.EnrichmentResult, w io.Writer) error
	Format() string
}
