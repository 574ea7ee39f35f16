package service

import (
	"time"

	"spooffinder/internal/domain"
)

// BatchObserver receives progress callbacks while a batch runs. Callbacks
// arrive from worker goroutines, so implementations must be safe for
// concurrent use.
type BatchObserver interface {
	// BatchStarted fires once after dedup, with the number of ASNs to
	// process. Zero means there is nothing to do.
	BatchStarted(total int)
	// TokenInvalid fires for tokens with malformed CIDR/range notation.
	TokenInvalid(token string, err error)
	// TokenUnresolved fires for tokens no backend could resolve.
	TokenUnresolved(token string)
	// ASNStarted fires when a worker picks up an ASN.
	ASNStarted(asn domain.ASN)
	// ASNEnriched fires for every completed enrichment, in completion order.
	ASNEnriched(result *domain.EnrichmentResult)
	// ASNNoData fires when the required sources carried no record.
	ASNNoData(asn domain.ASN)
	// ASNFiltered fires when a result was dropped by the country filter.
	ASNFiltered(asn domain.ASN)
	// BatchFinished fires once after the last worker completes.
	BatchFinished(stats BatchStats)
}

// BatchStats aggregates the outcome counts of one batch run.
type BatchStats struct {
	Tokens     int // raw input tokens submitted
	Invalid    int // malformed CIDR/range tokens
	Unresolved int // tokens no backend could resolve
	Total      int // deduplicated ASNs handed to the workers
	Enriched   int
	NoData     int
	Filtered   int
	Exported   int
	Duration   time.Duration
}

// NopObserver ignores every callback. It is the default observer and a
// convenient embed for partial implementations.
type NopObserver struct{}

func (NopObserver) BatchStarted(int)                     {}
func (NopObserver) TokenInvalid(string, error)           {}
func (NopObserver) TokenUnresolved(string)               {}
func (NopObserver) ASNStarted(domain.ASN)                {}
func (NopObserver) ASNEnriched(*domain.EnrichmentResult) {}
func (NopObserver) ASNNoData(domain.ASN)                 {}
func (NopObserver) ASNFiltered(domain.ASN)               {}
func (NopObserver) BatchFinished(BatchStats)             {}
