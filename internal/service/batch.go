package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"spooffinder/internal/domain"
)

// CountrySource enumerates the ASNs registered to a country code.
type CountrySource interface {
	Enumerate(ctx context.Context, code string) []domain.ASN
}

// Exporter persists qualifying results. Init truncates the sink at run
// start; Append writes one result if it qualifies and reports whether a
// row was written.
type Exporter interface {
	Init() error
	Append(result *domain.EnrichmentResult) (bool, error)
}

// Orchestrator drives resolution and enrichment for one batch run.
type Orchestrator struct {
	resolver *Resolver
	engine   *Engine
	country  CountrySource
	exporter Exporter
	observer BatchObserver
	logger   *zap.Logger
}

// OrchestratorConfig wires an Orchestrator. Resolver and Engine are
// required; the rest defaults to inert implementations.
type OrchestratorConfig struct {
	Resolver *Resolver
	Engine   *Engine
	Country  CountrySource
	Exporter Exporter
	Observer BatchObserver
	Logger   *zap.Logger
}

// NewOrchestrator builds an Orchestrator, filling optional collaborators
// with no-ops.
func NewOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	if cfg.Country == nil {
		cfg.Country = nopCountry{}
	}
	if cfg.Exporter == nil {
		cfg.Exporter = nopExporter{}
	}
	if cfg.Observer == nil {
		cfg.Observer = NopObserver{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Orchestrator{
		resolver: cfg.Resolver,
		engine:   cfg.Engine,
		country:  cfg.Country,
		exporter: cfg.Exporter,
		observer: cfg.Observer,
		logger:   cfg.Logger,
	}
}

type nopCountry struct{}

func (nopCountry) Enumerate(context.Context, string) []domain.ASN { return nil }

type nopExporter struct{}

func (nopExporter) Init() error { return nil }

func (nopExporter) Append(*domain.EnrichmentResult) (bool, error) { return false, nil }

// RunOptions parameterizes one batch run.
type RunOptions struct {
	// Tokens are raw inputs: ASNs, IPs, CIDRs, ranges, domain names.
	Tokens []string
	// Country, when set, enumerates a whole country's ASNs as input.
	Country string
	// Filter drops enriched results whose reported country does not
	// match.
	Filter string
	// Concurrency caps simultaneously active enrichments. Values below
	// one mean one.
	Concurrency int
	// Limit truncates the deduplicated ASN set. Zero means unlimited.
	Limit int
}

type outcome struct {
	asn      domain.ASN
	result   *domain.EnrichmentResult
	err      error
	exported bool
}

// Run executes one batch: resolve tokens, dedup, enrich under the
// concurrency ceiling, export, report. Results arrive in completion
// order. Per-token and per-ASN failures never abort the run.
func (o *Orchestrator) Run(ctx context.Context, opts RunOptions) ([]domain.EnrichmentResult, BatchStats) {
	start := time.Now()
	stats := BatchStats{Tokens: len(opts.Tokens)}

	// The export sink is truncated unconditionally at run start. If that
	// fails the batch still runs; only appends are disabled.
	exportOK := true
	if err := o.exporter.Init(); err != nil {
		o.logger.Error("export init failed, export disabled for this run", zap.Error(err))
		exportOK = false
	}

	var asns []domain.ASN
	if opts.Country != "" {
		asns = o.country.Enumerate(ctx, opts.Country)
	}

	for _, res := range o.resolver.ResolveAll(ctx, opts.Tokens) {
		switch {
		case res.Err != nil:
			stats.Invalid++
			o.logger.Warn("invalid token", zap.String("token", res.Token), zap.Error(res.Err))
			o.observer.TokenInvalid(res.Token, res.Err)
		case res.ASN == "":
			stats.Unresolved++
			o.observer.TokenUnresolved(res.Token)
		default:
			asns = append(asns, res.ASN)
		}
	}

	asns = dedupASNs(asns)
	if opts.Limit > 0 && len(asns) > opts.Limit {
		asns = asns[:opts.Limit]
	}
	stats.Total = len(asns)
	o.observer.BatchStarted(len(asns))

	if len(asns) == 0 {
		stats.Duration = time.Since(start)
		o.observer.BatchFinished(stats)
		return nil, stats
	}

	workers := opts.Concurrency
	if workers < 1 {
		workers = 1
	}
	if workers > len(asns) {
		workers = len(asns)
	}

	workCh := make(chan domain.ASN, len(asns))
	resultCh := make(chan outcome, len(asns))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for asn := range workCh {
				o.observer.ASNStarted(asn)
				out := outcome{asn: asn}
				out.result, out.err = o.engine.Enrich(ctx, asn, opts.Filter)
				if out.result != nil && exportOK {
					written, err := o.exporter.Append(out.result)
					if err != nil {
						o.logger.Error("export append failed",
							zap.String("asn", string(asn)), zap.Error(err))
					}
					out.exported = written
				}
				resultCh <- out
			}
		}()
	}

	for _, asn := range asns {
		workCh <- asn
	}
	close(workCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]domain.EnrichmentResult, 0, len(asns))
	for out := range resultCh {
		switch {
		case out.err != nil:
			stats.NoData++
			o.observer.ASNNoData(out.asn)
		case out.result == nil:
			stats.Filtered++
			o.observer.ASNFiltered(out.asn)
		default:
			stats.Enriched++
			if out.exported {
				stats.Exported++
			}
			results = append(results, *out.result)
			o.observer.ASNEnriched(out.result)
		}
	}

	stats.Duration = time.Since(start)
	o.observer.BatchFinished(stats)
	return results, stats
}

// dedupASNs removes duplicates preserving first-seen order.
func dedupASNs(asns []domain.ASN) []domain.ASN {
	if len(asns) == 0 {
		return nil
	}
	seen := make(map[domain.ASN]bool, len(asns))
	var out []domain.ASN
	for _, a := range asns {
		if seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}
